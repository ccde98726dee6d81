package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rapidcleanouts/landing/internal/api/router"
	appconfig "github.com/rapidcleanouts/landing/internal/config"
	"github.com/rapidcleanouts/landing/internal/crm"
	"github.com/rapidcleanouts/landing/internal/http/handlers"
	"github.com/rapidcleanouts/landing/internal/leads"
	"github.com/rapidcleanouts/landing/internal/notify"
	"github.com/rapidcleanouts/landing/internal/observability/metrics"
	"github.com/rapidcleanouts/landing/internal/sheets"
	"github.com/rapidcleanouts/landing/internal/uploads"
	"github.com/rapidcleanouts/landing/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting rapidcleanouts landing server",
		"env", cfg.Env,
		"port", cfg.Port,
		"sheets_enabled", cfg.Sheets.Enabled(),
		"crm_enabled", cfg.Zoho.Enabled(),
		"email_enabled", cfg.SMTP.Enabled(),
	)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	store := uploads.NewStore(cfg.UploadDir, cfg.PublicBaseURL, logger)

	// The sheet is the system of record; when it is unconfigured the pipeline
	// keeps a nil sink and fails submissions with a configuration error.
	var sink leads.RowAppender
	if cfg.Sheets.Enabled() {
		client, err := sheets.NewClient(context.Background(), cfg.Sheets, logger)
		if err != nil {
			logger.Error("failed to create sheets client", "error", err)
			os.Exit(1)
		}
		sink = client
	} else {
		logger.Warn("google sheets credentials missing; submissions will fail until configured")
	}

	// Optional integrations: unconfigured means disabled, not an error.
	var crmPusher leads.LeadPusher
	if client := crm.NewZohoClient(cfg.Zoho, logger); client != nil {
		crmPusher = client
	}
	var notifier leads.Notifier
	if sender := notify.NewSMTPSender(cfg.SMTP, logger); sender != nil {
		notifier = notify.NewService(sender, cfg.SMTP.Recipient, logger)
	}

	leadMetrics := metrics.NewLeadMetrics(nil)
	service := leads.NewService(sink, crmPusher, notifier, leadMetrics, logger)
	intake := handlers.NewLeadIntakeHandler(store, service, leadMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadIntake:         intake,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSOrigins,
		UploadDir:          store.Dir(),
		WebDir:             "web",
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
