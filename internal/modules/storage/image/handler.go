package image

import (
	"github.com/gin-gonic/gin"
	"github.com/tourdesk/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/images", authMW, h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file 필드가 필요합니다")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer f.Close()

	result, err := h.svc.Upload(c.Request.Context(), fileHeader.Filename, fileHeader.Size, f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, result)
}
