package main

import (
	"net/url"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/awsugahm/acd2026-api/internal/middleware"
	"github.com/awsugahm/acd2026-api/internal/models"
	"github.com/awsugahm/acd2026-api/pkg/config"
	"github.com/awsugahm/acd2026-api/pkg/logger"
	corsmiddleware "github.com/awsugahm/acd2026-api/pkg/middleware/cors"
	reqidmiddleware "github.com/awsugahm/acd2026-api/pkg/middleware/requestid"
)

func newRouter(cfg *config.Config, app *application, logr *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(app.metrics))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes

	r.GET("/health", app.health.Health)
	r.GET("/ready", app.health.Ready)
	r.GET("/metrics", app.health.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	mountUploads(r, cfg.Uploads.PublicURL, app.uploads.Dir())

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	api.GET("/schedule", app.schedules.PublicGrid)
	api.GET("/sponsors", app.sponsors.PublicGroups)
	api.GET("/speakers", app.content.Speakers)
	api.GET("/tickets", app.content.Tickets)
	api.GET("/faqs", app.content.FAQs)
	api.GET("/event", app.events.Info)
	api.GET("/seo", app.events.Pages)
	api.GET("/seo/:page", app.events.SEO)
	api.POST("/contact", app.contact.Send)
	api.GET("/volunteers/options", app.volunteers.Options)
	api.POST("/volunteers", app.volunteers.Submit)
	api.POST("/volunteers/photo", app.volunteers.UploadPhoto)
	api.GET("/exports/:token", app.exportsAPI.Download)
	api.POST("/auth/login", app.auth.Login)

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(app.authSvc), middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin))

	admin.GET("/me", app.auth.Me)
	admin.GET("/metrics", app.health.Summary)

	schedules := admin.Group("/schedules")
	schedules.GET("", app.schedules.List)
	schedules.GET("/grid", app.schedules.Grid)
	schedules.GET("/available-tracks", app.schedules.AvailableTracks)
	schedules.POST("", app.schedules.Create)
	schedules.GET("/:id", app.schedules.Get)
	schedules.GET("/:id/form", app.schedules.FormValues)
	schedules.PUT("/:id", app.schedules.Update)
	schedules.DELETE("/:id", app.schedules.Delete)

	sponsors := admin.Group("/sponsors")
	sponsors.GET("", app.sponsors.List)
	sponsors.GET("/tiers", app.sponsors.Tiers)
	sponsors.POST("", app.sponsors.Create)
	sponsors.POST("/reorder", app.sponsors.Reorder)
	sponsors.POST("/logo", app.sponsors.UploadLogo)
	sponsors.GET("/:id", app.sponsors.Get)
	sponsors.PUT("/:id", app.sponsors.Update)
	sponsors.DELETE("/:id", app.sponsors.Delete)

	admin.GET("/volunteers", app.volunteers.List)
	admin.POST("/exports/:kind", app.exportsAPI.Create)

	return r
}

// mountUploads serves uploaded images. Exports live in their own directory and
// are only reachable through signed download links.
func mountUploads(r gin.IRoutes, publicURL, dir string) {
	r.Static(uploadsMountPath(publicURL), dir)
}

// uploadsMountPath derives the static route from the public uploads URL so
// stored URLs resolve against this server.
func uploadsMountPath(publicURL string) string {
	if parsed, err := url.Parse(publicURL); err == nil && parsed.Path != "" && parsed.Path != "/" {
		return parsed.Path
	}
	return "/uploads"
}
