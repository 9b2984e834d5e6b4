package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"easein-studio-backend/config"
	_ "easein-studio-backend/docs" // Important for Swagger
	v1 "easein-studio-backend/internal/delivery/http/v1"
	"easein-studio-backend/internal/usecase"
	"easein-studio-backend/pkg/email"
	"easein-studio-backend/pkg/logger"
	"easein-studio-backend/pkg/redis"
	"easein-studio-backend/pkg/security"
	"easein-studio-backend/pkg/security/antivirus"
	"easein-studio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Easein Studio Contact Relay API
// @version         1.0
// @description     Contact form relay and page behavior profiles for the Easein Studio site.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Setup Loggers
	logger.Init()
	audit := security.InitAuditLogger("easein-contact-relay", cfg.Environment)
	defer audit.Sync() //nolint:errcheck
	logger.Log.Info("Starting contact relay", "port", cfg.Port, "environment", cfg.Environment)

	// 3. Setup Redis (optional; rate limits fall back to memory)
	var redisCheck func(ctx context.Context) error
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limits", "error", err)
		}
		redisCheck = redis.HealthCheck
		defer redis.Close() //nolint:errcheck
	} else {
		logger.Log.Warn("Redis not configured, upload limits are disabled and request limits run in memory")
	}

	// 4. Setup Mail Relay
	relay := email.NewRelay(email.NewSMTPTransports(email.TransportConfigs(cfg))...)
	if !email.IsConfigured(cfg) {
		logger.Log.Warn("SMTP credentials missing - contact submissions will fail to send")
	}
	composer, err := email.NewComposerFromConfig(cfg)
	if err != nil {
		logger.Log.Error("Failed to build mail templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Upload Protection
	scanner := antivirus.FromAddress(cfg.ClamAVAddress, 30*time.Second)
	uploadLimiter := security.NewUploadLimiter(redis.Client, 10, time.Hour)

	// 6. Load Page Profiles
	pages, err := config.LoadPages(cfg.PagesConfigPath)
	if err != nil {
		logger.Log.Error("Invalid page profiles", "path", cfg.PagesConfigPath, "error", err)
		os.Exit(1)
	}

	// 7. Setup UseCases
	contactUC := usecase.NewContactUsecase(relay, composer, validation.Validator(), usecase.ContactOptions{
		Scanner:        scanner,
		UploadLimiter:  uploadLimiter,
		Audit:          audit,
		MaxUploadBytes: cfg.MaxUploadBytes(),
	})
	healthUC := usecase.NewHealthUsecase(usecase.HealthDeps{
		MailConfigured: email.IsConfigured(cfg),
		Transports:     relay.Transports(),
		Redis:          redisCheck,
		Scanner:        scanner,
	})
	pageUC := usecase.NewPageUsecase(pages)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		PageUC:    pageUC,
		Config:    cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// Submissions in flight may still be talking to SMTP
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
