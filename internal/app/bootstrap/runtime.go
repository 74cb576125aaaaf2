package bootstrap

import (
	"context"
	"net"
	"net/url"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/clinicdesk/scheduler/internal/config"
	"github.com/clinicdesk/scheduler/internal/gateway"
	"github.com/clinicdesk/scheduler/internal/notify"
	"github.com/clinicdesk/scheduler/internal/observability/metrics"
	"github.com/clinicdesk/scheduler/internal/reminder"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || cfg.RedisAddr == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildNotifier selects the notification transport: the pub/sub
// channel when Redis is available, otherwise the legacy TCP channel
// addressed at the gateway's host.
func BuildNotifier(cfg *appconfig.Config, redisClient *redis.Client, logger *logging.Logger) notify.Notifier {
	if logger == nil {
		logger = logging.Default()
	}
	if redisClient != nil {
		logger.Info("using redis notification transport")
		return notify.NewRedisNotifier(redisClient, logger)
	}

	host := gatewayHost(cfg.GatewayBaseURL)
	logger.Info("using tcp notification transport", "host", host, "base_port", cfg.NotifyBasePort)
	return notify.NewTCPNotifier(host, cfg.NotifyBasePort, logger)
}

// BuildScanner wires the reminder scanner against the gateway with a
// log-backed alert sink.
func BuildScanner(cfg *appconfig.Config, client *gateway.Client, m *metrics.CoreMetrics, logger *logging.Logger) *reminder.Scanner {
	if logger == nil {
		logger = logging.Default()
	}
	sink := reminder.LogSink{Logger: logger.Component("reminder")}
	return reminder.NewScanner(client, sink, logger).
		WithInterval(cfg.ReminderInterval).
		WithLookahead(cfg.ReminderLookahead).
		WithMetrics(m)
}

// gatewayHost extracts the host of the gateway base URL; doctor
// clients run alongside it in the legacy deployment.
func gatewayHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return "localhost"
	}
	if host, _, err := net.SplitHostPort(u.Host); err == nil {
		return host
	}
	return u.Host
}
