package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/clinicdesk/scheduler/pkg/logging"
)

// Topic returns the logical pub/sub channel for a doctor. Keying the
// channel by doctor id decouples notification addressing from network
// port allocation.
func Topic(doctorID int) string {
	return fmt.Sprintf("appointments:doctor:%d", doctorID)
}

// RedisNotifier publishes the sentinel on the doctor's topic. A doctor
// with no active subscriber simply misses the ping; Redis pub/sub
// keeps the at-most-once, no-queue semantics of the wire protocol.
type RedisNotifier struct {
	client *redis.Client
	logger *logging.Logger
}

func NewRedisNotifier(client *redis.Client, logger *logging.Logger) *RedisNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisNotifier{client: client, logger: logger}
}

func (n *RedisNotifier) NotifyNewAppointment(ctx context.Context, doctorID int) error {
	if err := n.client.Publish(ctx, Topic(doctorID), Sentinel).Err(); err != nil {
		return fmt.Errorf("notify: publish to doctor %d: %w", doctorID, err)
	}
	return nil
}

var _ Notifier = (*RedisNotifier)(nil)

// Subscription is one doctor session's live subscription. Close it
// when the session ends.
type Subscription struct {
	pubsub *redis.PubSub
}

// Subscribe attaches to the doctor's topic and runs onPing for every
// received sentinel until the subscription is closed.
func Subscribe(ctx context.Context, client *redis.Client, doctorID int, onPing func(), logger *logging.Logger) (*Subscription, error) {
	if logger == nil {
		logger = logging.Default()
	}

	pubsub := client.Subscribe(ctx, Topic(doctorID))
	// Confirm the subscription before returning so callers never miss
	// pings sent immediately after Subscribe.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("notify: subscribe doctor %d: %w", doctorID, err)
	}

	go func() {
		for msg := range pubsub.Channel() {
			if msg.Payload == Sentinel {
				onPing()
			} else {
				logger.Debug("ignoring unexpected payload", "doctor_id", doctorID, "payload", msg.Payload)
			}
		}
	}()

	logger.Info("notification subscription active", "doctor_id", doctorID, "topic", Topic(doctorID))
	return &Subscription{pubsub: pubsub}, nil
}

// Close detaches from the topic and stops the dispatch goroutine.
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}
