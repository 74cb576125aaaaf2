// doctorwatch is the doctor-side agent: it holds one doctor session's
// notification channel open and reloads that doctor's pending requests
// from the gateway whenever a ping arrives.
package main

import (
	"context"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/clinicdesk/scheduler/internal/app/bootstrap"
	appconfig "github.com/clinicdesk/scheduler/internal/config"
	"github.com/clinicdesk/scheduler/internal/gateway"
	"github.com/clinicdesk/scheduler/internal/notify"
	"github.com/clinicdesk/scheduler/internal/scheduler"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

func main() {
	godotenv.Load()

	doctorID := flag.Int("doctor", 0, "numeric doctor id for this session")
	flag.Parse()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel).Component("doctorwatch")

	if *doctorID <= 0 {
		logger.Error("a positive -doctor id is required")
		os.Exit(1)
	}

	gatewayClient := gateway.NewClient(cfg.GatewayBaseURL,
		gateway.WithLogger(logger),
		gateway.WithHTTPClient(&http.Client{Timeout: cfg.GatewayTimeout}),
	)
	svc := scheduler.NewService(gatewayClient, nil, logger)
	desk := scheduler.NewDoctorDesk(svc, *doctorID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresh := func() {
		pending, err := desk.PendingRequests(context.Background())
		if err != nil {
			logger.Error("refresh failed", "error", err)
			return
		}
		logger.Info("pending requests refreshed", "doctor_id", *doctorID, "count", len(pending))
		for _, appt := range pending {
			logger.Info("pending request", "appointment_id", appt.ID, "patient", appt.PatientName)
		}
	}

	channel, err := openChannel(ctx, cfg, *doctorID, refresh, logger)
	if err != nil {
		// no live notifications; the doctor falls back to manual refresh
		logger.Warn("notification channel unavailable", "error", err)
	} else {
		defer channel.Close()
	}

	refresh()

	<-ctx.Done()
	logger.Info("session ended", "doctor_id", *doctorID)
}

// openChannel binds this session's inbound channel on whichever
// transport is configured and returns its release handle.
func openChannel(ctx context.Context, cfg *appconfig.Config, doctorID int, onPing func(), logger *logging.Logger) (io.Closer, error) {
	if redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true); redisClient != nil {
		return notify.Subscribe(ctx, redisClient, doctorID, onPing, logger)
	}
	return notify.ListenTCP(cfg.NotifyBasePort, doctorID, onPing, logger)
}
