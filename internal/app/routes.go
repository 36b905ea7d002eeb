package app

import (
	"github.com/gin-gonic/gin"
	"github.com/tourdesk/core/internal/middleware"
	"github.com/tourdesk/core/internal/models"
	adminmod "github.com/tourdesk/core/internal/modules/admin"
	"github.com/tourdesk/core/internal/modules/auth"
	"github.com/tourdesk/core/internal/modules/blog"
	"github.com/tourdesk/core/internal/modules/booking"
	"github.com/tourdesk/core/internal/modules/catalog/category"
	"github.com/tourdesk/core/internal/modules/catalog/curation"
	"github.com/tourdesk/core/internal/modules/catalog/product"
	"github.com/tourdesk/core/internal/modules/catalog/tag"
	"github.com/tourdesk/core/internal/modules/display"
	"github.com/tourdesk/core/internal/modules/inquiry"
	"github.com/tourdesk/core/internal/modules/storage/image"
	pkgredis "github.com/tourdesk/core/internal/pkg/redis"
	"github.com/tourdesk/core/internal/pkg/response"
)

const apiPrefix = "/api/v1"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	superMW := middleware.RequireRole(models.RoleSuperAdmin)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "tourdesk-core",
			"version": "1.0.0",
		})
	})

	api := r.Group(apiPrefix)
	api.Use(middleware.OptionalAuth(db))
	api.Use(middleware.RateLimit(rc.Raw()))
	api.Use(middleware.Idempotence(rc.Raw()))
	api.Use(middleware.HTTPCache(rc.Raw(), middleware.HTTPCacheOptions{
		SkipPaths: []string{apiPrefix + "/auth/*"},
	}))

	category.NewHandler(category.NewService(db)).RegisterRoutes(api, authMW)
	tag.NewHandler(tag.NewService(db)).RegisterRoutes(api, authMW)
	product.NewHandler(product.NewService(db)).RegisterRoutes(api, authMW, superMW)
	curation.NewHandler(curation.NewService(db)).RegisterRoutes(api, authMW)
	display.NewHandler(display.NewService(db)).RegisterRoutes(api, authMW)
	blog.NewHandler(blog.NewService(db)).RegisterRoutes(api, authMW)
	booking.NewHandler(booking.NewService(db)).RegisterRoutes(api, authMW)
	inquiry.NewHandler(inquiry.NewService(db)).RegisterRoutes(api, authMW)
	adminmod.NewHandler(adminmod.NewService(db)).RegisterRoutes(api, authMW, superMW)
	auth.NewHandler(auth.NewService(db)).RegisterRoutes(api, authMW)
	image.NewHandler(image.NewService(a.cfg)).RegisterRoutes(api, authMW)
}
