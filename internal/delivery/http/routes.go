package http

import (
	"github.com/gin-gonic/gin"
	"github.com/lookalike/web/config"
	"github.com/lookalike/web/internal/usecase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, sessions *usecase.SessionStore, limiters LimiterStore, logger logrus.FieldLogger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes
	router.SetHTMLTemplate(loadTemplates())

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Session routes
	page := router.Group("/")
	page.Use(RateLimitMiddleware(limiters, cfg.Server.RateLimitPerIP, cfg.Server.RateLimitBurst))
	page.Use(SessionMiddleware(sessions, cfg.Session.CookieName, cfg.Session.TTL, cfg.Server.Environment == "production"))
	{
		page.GET("/", handler.Index)
		page.GET("/preview", handler.Preview)
		page.POST("/input/file", handler.UploadFile)
		page.POST("/input/url", handler.SetURL)
		page.POST("/filters", handler.SetFilters)
		page.POST("/search", handler.Search)
		page.GET("/api/v1/state", handler.State)
	}

	return router
}
