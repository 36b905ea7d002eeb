package display

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
	banners := rg.Group("/banners")
	banners.GET("", h.visibleBanners)

	authedBanners := banners.Group("", authMW)
	authedBanners.GET("/all", h.listBanners)
	authedBanners.GET("/:id", h.getBanner)
	authedBanners.POST("", h.createBanner)
	authedBanners.PUT("/:id", h.updateBanner)
	authedBanners.PATCH("/:id", h.updateBanner)
	authedBanners.DELETE("/:id", h.deleteBanner)

	icons := rg.Group("/quick-icons")
	icons.GET("", h.visibleQuickIcons)

	authedIcons := icons.Group("", authMW)
	authedIcons.GET("/all", h.listQuickIcons)
	authedIcons.GET("/:id", h.getQuickIcon)
	authedIcons.POST("", h.createQuickIcon)
	authedIcons.PUT("/:id", h.updateQuickIcon)
	authedIcons.PATCH("/:id", h.updateQuickIcon)
	authedIcons.DELETE("/:id", h.deleteQuickIcon)
}

func (h *Handler) visibleBanners(c *gin.Context) {
	banners, err := h.svc.VisibleBanners()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, banners)
}

func (h *Handler) listBanners(c *gin.Context) {
	banners, err := h.svc.ListBanners()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, banners)
}

func (h *Handler) getBanner(c *gin.Context) {
	b, err := h.svc.GetBanner(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) createBanner(c *gin.Context) {
	var dto CreateBannerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.CreateBanner(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, b)
}

func (h *Handler) updateBanner(c *gin.Context) {
	var dto UpdateBannerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.UpdateBanner(c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, b)
}

func (h *Handler) deleteBanner(c *gin.Context) {
	if err := h.svc.DeleteBanner(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) visibleQuickIcons(c *gin.Context) {
	icons, err := h.svc.VisibleQuickIcons()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, icons)
}

func (h *Handler) listQuickIcons(c *gin.Context) {
	icons, err := h.svc.ListQuickIcons()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, icons)
}

func (h *Handler) getQuickIcon(c *gin.Context) {
	icon, err := h.svc.GetQuickIcon(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, icon)
}

func (h *Handler) createQuickIcon(c *gin.Context) {
	var dto CreateQuickIconDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	icon, err := h.svc.CreateQuickIcon(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, icon)
}

func (h *Handler) updateQuickIcon(c *gin.Context) {
	var dto UpdateQuickIconDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	icon, err := h.svc.UpdateQuickIcon(c.Param("id"), &dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, icon)
}

func (h *Handler) deleteQuickIcon(c *gin.Context) {
	if err := h.svc.DeleteQuickIcon(c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
