package blog

import (
	"github.com/gin-gonic/gin"
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
	posts := rg.Group("/blog")
	posts.GET("", h.listPublished)
	posts.GET("/:slug", h.getPublished)

	authed := posts.Group("", authMW)
	authed.GET("/all/list", h.listAll)
	authed.GET("/all/:id", h.get)
	authed.POST("", h.create)
	authed.PUT("/:slug", h.update)
	authed.PATCH("/:slug", h.update)
	authed.DELETE("/:slug", h.delete)
}

func (h *Handler) listPublished(c *gin.Context) {
	posts, meta, err := h.svc.ListPublished(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, meta)
}

func (h *Handler) getPublished(c *gin.Context) {
	detail, err := h.svc.GetPublished(c.Param("slug"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, detail)
}

func (h *Handler) listAll(c *gin.Context) {
	posts, meta, err := h.svc.ListAll(pagination.FromContext(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, posts, meta)
}

func (h *Handler) get(c *gin.Context) {
	post, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, post)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateBlogPostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Create(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, post)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateBlogPostDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.svc.Update(c.Param("slug"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, post)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
