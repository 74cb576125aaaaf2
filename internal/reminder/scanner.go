// Package reminder periodically surfaces appointments that start soon.
// It runs independently of the notification channel and always
// re-derives its view from the gateway.
package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/scheduler/internal/appointment"
	"github.com/clinicdesk/scheduler/internal/observability/metrics"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

// Fetcher is the slice of the gateway the scanner needs.
type Fetcher interface {
	ListAppointments(ctx context.Context) ([]appointment.Appointment, error)
}

// Alert describes one imminent appointment. The same appointment
// re-alerts on every cycle until it leaves the lookahead window; there
// is deliberately no cross-cycle suppression.
type Alert struct {
	ID            uuid.UUID
	AppointmentID int
	PatientName   string
	DoctorName    string
	Time          string
	StartsAt      time.Time
}

// Sink receives raised alerts.
type Sink interface {
	Raise(alert Alert)
}

// LogSink writes alerts to the application log.
type LogSink struct {
	Logger *logging.Logger
}

func (s LogSink) Raise(alert Alert) {
	logger := s.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger.Info("upcoming appointment",
		"alert_id", alert.ID.String(),
		"appointment_id", alert.AppointmentID,
		"patient", alert.PatientName,
		"doctor", alert.DoctorName,
		"time", alert.Time,
	)
}

// Scanner polls the gateway on a fixed interval and raises an alert
// for every active appointment starting strictly within the lookahead
// window.
type Scanner struct {
	fetcher   Fetcher
	sink      Sink
	logger    *logging.Logger
	metrics   *metrics.CoreMetrics
	interval  time.Duration
	lookahead time.Duration
	loc       *time.Location
	now       func() time.Time
}

func NewScanner(fetcher Fetcher, sink Sink, logger *logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Scanner{
		fetcher:   fetcher,
		sink:      sink,
		logger:    logger,
		interval:  5 * time.Minute,
		lookahead: time.Hour,
		loc:       time.Local,
		now:       time.Now,
	}
}

func (s *Scanner) WithInterval(d time.Duration) *Scanner {
	if d > 0 {
		s.interval = d
	}
	return s
}

func (s *Scanner) WithLookahead(d time.Duration) *Scanner {
	if d > 0 {
		s.lookahead = d
	}
	return s
}

func (s *Scanner) WithLocation(loc *time.Location) *Scanner {
	if loc != nil {
		s.loc = loc
	}
	return s
}

func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Scanner) WithMetrics(m *metrics.CoreMetrics) *Scanner {
	s.metrics = m
	return s
}

// Run scans once immediately, then on every tick until ctx is
// cancelled. Cancellation interrupts the inter-scan wait promptly and
// no new scan starts afterwards.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scanner stopped")
			return
		case <-ticker.C:
			s.scan(ctx)
		}
	}
}

// scan runs one cycle. A gateway failure skips the cycle; the scanner
// retries on the next tick.
func (s *Scanner) scan(ctx context.Context) {
	appts, err := s.fetcher.ListAppointments(ctx)
	if err != nil {
		s.logger.Error("reminder scan cycle failed", "error", err)
		s.metrics.ObserveScanCycle(false)
		return
	}

	now := s.now()
	cutoff := now.Add(s.lookahead)
	raised := 0

	for _, appt := range appts {
		if !appt.Status.Active() {
			continue
		}
		startsAt, err := appt.StartsAt(s.loc)
		if err != nil {
			s.logger.Debug("skipping appointment without parseable start", "appointment_id", appt.ID, "error", err)
			continue
		}
		if !startsAt.After(now) || !startsAt.Before(cutoff) {
			continue
		}

		s.sink.Raise(Alert{
			ID:            uuid.New(),
			AppointmentID: appt.ID,
			PatientName:   appt.PatientName,
			DoctorName:    appt.DoctorName,
			Time:          appt.Time,
			StartsAt:      startsAt,
		})
		s.metrics.ObserveAlert()
		raised++
	}

	s.metrics.ObserveScanCycle(true)
	s.logger.Debug("reminder scan cycle complete", "appointments", len(appts), "alerts", raised)
}
