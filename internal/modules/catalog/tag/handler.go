package tag

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
	tags := rg.Group("/tags")
	tags.GET("", h.list)
	tags.GET("/:id", h.get)

	authed := tags.Group("", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	tags, err := h.svc.List(c.Query("type"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) get(c *gin.Context) {
	tag, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, tag)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag, err := h.svc.Create(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, tag)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	tag, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, tag)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
