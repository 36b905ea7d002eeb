package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/tourdesk/core/internal/middleware"
	"github.com/tourdesk/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the admin management surface. The whole group sits
// behind both auth and the SUPER_ADMIN role check.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, superMW gin.HandlerFunc) {
	admins := rg.Group("/admins", authMW, superMW)
	admins.GET("", h.list)
	admins.GET("/:id", h.get)
	admins.POST("", h.create)
	admins.PUT("/:id", h.update)
	admins.PATCH("/:id", h.update)
	admins.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	admins, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, admins)
}

func (h *Handler) get(c *gin.Context) {
	admin, err := h.svc.GetByID(c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, admin)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateAdminDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	admin, err := h.svc.Create(&dto)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, admin)
}

func (h *Handler) update(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	var dto UpdateAdminDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	admin, err := h.svc.Update(c.Param("id"), &dto, caller)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, admin)
}

func (h *Handler) delete(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	if err := h.svc.Delete(c.Param("id"), caller); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
