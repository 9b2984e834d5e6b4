package v1

import (
	"net/http"
	"time"

	"easein-studio-backend/config"
	"easein-studio-backend/internal/delivery/http/middleware"
	"easein-studio-backend/internal/domain"
	"easein-studio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	HealthUC  domain.HealthUsecase
	PageUC    domain.PageUsecase
	Config    *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(cfg.ExposeMailErrors))
	r.Use(middleware.SecurityHeadersMiddleware())

	r.NoMethod(func(c *gin.Context) {
		if c.Request.URL.Path == ContactPath {
			c.Error(apperror.MethodNotAllowed())
			return
		}
		c.Error(apperror.New(http.StatusMethodNotAllowed, "Method Not Allowed", nil))
	})
	r.NoRoute(func(c *gin.Context) {
		c.Error(apperror.NotFound("Resource not found"))
	})

	// The relay keeps the path the static site already posts to
	NewContactHandler(r, deps.ContactUC, cfg.MaxUploadBytes(),
		middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(cfg.RateLimitContactThreshold, window)),
	)

	v1 := r.Group("/v1")
	v1.Use(middleware.GlobalRateLimitMiddleware(cfg.RateLimitGlobalThreshold, window))

	NewHealthHandler(v1, deps.HealthUC)
	NewPageHandler(v1, deps.PageUC)

	// Swagger
	v1.GET("/swagger/*any", middleware.SwaggerUIHeaders(), ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
