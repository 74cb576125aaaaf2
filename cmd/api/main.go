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

	"github.com/clinicdesk/scheduler/internal/api/router"
	"github.com/clinicdesk/scheduler/internal/app/bootstrap"
	appconfig "github.com/clinicdesk/scheduler/internal/config"
	"github.com/clinicdesk/scheduler/internal/gateway"
	"github.com/clinicdesk/scheduler/internal/http/handlers"
	"github.com/clinicdesk/scheduler/internal/observability/metrics"
	"github.com/clinicdesk/scheduler/internal/scheduler"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

func main() {
	godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting appointment scheduler",
		"env", cfg.Env,
		"port", cfg.Port,
		"gateway", cfg.GatewayBaseURL,
	)

	coreMetrics := metrics.NewCoreMetrics(nil)

	gatewayClient := gateway.NewClient(cfg.GatewayBaseURL,
		gateway.WithLogger(logger.Component("gateway")),
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.GatewayTimeout}),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient != nil {
		defer redisClient.Close()
	}
	notifier := bootstrap.BuildNotifier(cfg, redisClient, logger)

	svc := scheduler.NewService(gatewayClient, notifier, logger.Component("scheduler")).
		WithMetrics(coreMetrics)

	scanner := bootstrap.BuildScanner(cfg, gatewayClient, coreMetrics, logger)
	scannerDone := make(chan struct{})
	go func() {
		defer close(scannerDone)
		scanner.Run(ctx)
	}()

	r := router.New(&router.Config{
		Logger:         logger,
		Appointments:   handlers.NewAppointmentsHandler(svc, logger.Component("http")),
		Directory:      handlers.NewDirectoryHandler(gatewayClient, logger.Component("http")),
		MetricsHandler: promhttp.Handler(),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// the scanner observes the same context; wait for it to finish
	select {
	case <-scannerDone:
	case <-time.After(5 * time.Second):
		logger.Warn("scanner did not stop in time")
	}

	logger.Info("server stopped")
}
