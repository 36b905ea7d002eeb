package inquiry

import (
	"github.com/gin-gonic/gin"
	"github.com/tourdesk/core/internal/middleware"
	"github.com/tourdesk/core/internal/pkg/pagination"
	"github.com/tourdesk/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	inquiries := rg.Group("/inquiries")
	inquiries.POST("", h.create)

	authed := inquiries.Group("", authMW)
	authed.GET("", h.list)
	authed.GET("/:id", h.get)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateInquiryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	inq, err := h.svc.Create(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, inq)
}

func (h *Handler) list(c *gin.Context) {
	inquiries, meta, err := h.svc.List(c.Query("status"), pagination.FromContext(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paged(c, inquiries, meta)
}

func (h *Handler) get(c *gin.Context) {
	inq, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, inq)
}

func (h *Handler) update(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	var dto UpdateInquiryDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	inq, err := h.svc.Update(c.Param("id"), &dto, caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, inq)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
