package curation

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
	curations := rg.Group("/curations")
	curations.GET("", h.listActive)

	authed := curations.Group("", authMW)
	authed.GET("/all", h.listAll)
	authed.GET("/:id", h.get)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	authed.PUT("/:id/products", h.replaceMembers)
}

func (h *Handler) listActive(c *gin.Context) {
	curations, err := h.svc.ListActive()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, curations)
}

func (h *Handler) listAll(c *gin.Context) {
	curations, err := h.svc.ListAll()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, curations)
}

func (h *Handler) get(c *gin.Context) {
	cur, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, cur)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateCurationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cur, err := h.svc.Create(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, cur)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateCurationDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	cur, err := h.svc.Update(c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, cur)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) replaceMembers(c *gin.Context) {
	var input MembersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	members, err := h.svc.ReplaceMembers(c.Param("id"), input.ProductIDs)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, members)
}
