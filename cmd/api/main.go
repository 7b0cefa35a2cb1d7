package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/secureitservices/leadgate/internal/api/router"
	appconfig "github.com/secureitservices/leadgate/internal/config"
	"github.com/secureitservices/leadgate/internal/http/handlers"
	httpmiddleware "github.com/secureitservices/leadgate/internal/http/middleware"
	"github.com/secureitservices/leadgate/internal/leads"
	"github.com/secureitservices/leadgate/internal/notify"
	"github.com/secureitservices/leadgate/internal/observability/metrics"
	"github.com/secureitservices/leadgate/pkg/logging"
)

func main() {
	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting leadgate API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.AdminSecret == "" {
		logger.Warn("ADMIN_SECRET not set; admin endpoints are disabled")
	}

	// Initialize the lead store
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("failed to create data directory", "error", err, "dir", cfg.DataDir)
		os.Exit(1)
	}
	repo, err := leads.NewCSVRepository(filepath.Join(cfg.DataDir, "leads.csv"))
	if err != nil {
		logger.Error("failed to initialize lead store", "error", err)
		os.Exit(1)
	}

	// Rate limiters: Redis centralizes counters across instances; the
	// in-memory fallback counts per instance only.
	globalLimiter, contactLimiter := buildLimiters(cfg, logger)

	// Notification pipeline
	sender := buildEmailSender(cfg, logger)
	notifier := notify.NewLeadNotifier(sender, cfg.NotifyToEmail, cfg.Timezone, logger)

	// Metrics
	intakeMetrics := metrics.NewIntakeMetrics(nil)

	// Initialize handlers
	leadsHandler := leads.NewHandler(repo, notifier, intakeMetrics, logger, cfg.BusinessWhatsApp)
	adminHandler := handlers.NewAdminLeadsHandler(repo, repo.LogPath(), cfg.AdminSecret, cfg.Timezone, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		AdminLeads:         adminHandler,
		Health:             handlers.NewHealthHandler(),
		GlobalLimiter:      globalLimiter,
		ContactLimiter:     contactLimiter,
		Metrics:            intakeMetrics,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:          cfg.StaticDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func buildLimiters(cfg *appconfig.Config, logger *logging.Logger) (httpmiddleware.Limiter, httpmiddleware.Limiter) {
	if cfg.RedisAddr == "" {
		logger.Info("rate limiting in memory; counters are per instance")
		return httpmiddleware.NewSlidingWindowLimiter(cfg.GlobalRateWindow, cfg.GlobalRateLimit),
			httpmiddleware.NewSlidingWindowLimiter(cfg.ContactRateWindow, cfg.ContactRateLimit)
	}

	opts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	logger.Info("rate limiting via redis", "addr", cfg.RedisAddr)
	return httpmiddleware.NewRedisLimiter(client, "ratelimit:global", cfg.GlobalRateWindow, cfg.GlobalRateLimit),
		httpmiddleware.NewRedisLimiter(client, "ratelimit:contact", cfg.ContactRateWindow, cfg.ContactRateLimit)
}

func buildEmailSender(cfg *appconfig.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "sendgrid":
		if s := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.NotifyFromEmail,
			FromName:  cfg.NotifyFromName,
		}, logger); s != nil {
			return s
		}
	case "smtp":
		if s := notify.NewSMTPSender(notify.SMTPConfig{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.NotifyFromEmail,
			FromName:  cfg.NotifyFromName,
		}, logger); s != nil {
			return s
		}
	}
	logger.Warn("email transport not configured; notifications will only be logged", "provider", cfg.EmailProvider)
	return notify.NewStubEmailSender(logger)
}
