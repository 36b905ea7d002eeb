package auth

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.login)
	auth.GET("/me", authMW, h.me)
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.svc.Login(&dto, c.ClientIP())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *Handler) me(c *gin.Context) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		response.Unauthorized(c)
		return
	}
	admin, err := h.svc.Me(caller.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, admin)
}
