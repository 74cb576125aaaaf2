// Package scheduler applies the permitted appointment lifecycle
// transitions, delegates persistence to the gateway, and triggers the
// doctor notification side effect on creation.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicdesk/scheduler/internal/appointment"
	"github.com/clinicdesk/scheduler/internal/notify"
	"github.com/clinicdesk/scheduler/internal/observability/metrics"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

const (
	// DefaultRejectReason is recorded when a doctor rejects without one.
	DefaultRejectReason = "Rejected by doctor"
	// DefaultScheduleNote is recorded when a doctor schedules without notes.
	DefaultScheduleNote = "Approved and scheduled by doctor"

	notifyTimeout = 5 * time.Second
)

// Gateway is the slice of the remote store the controller uses.
type Gateway interface {
	GetAppointment(ctx context.Context, id int) (*appointment.Appointment, error)
	CreateAppointment(ctx context.Context, appt *appointment.Appointment) (int, error)
	UpdateAppointment(ctx context.Context, appt *appointment.Appointment) error
	DeleteAppointment(ctx context.Context, id int) error
	ListAppointments(ctx context.Context) ([]appointment.Appointment, error)
}

// Service validates and applies lifecycle transitions. It holds no
// mutable state of its own; every operation fetches fresh from the
// gateway and writes back through it.
type Service struct {
	gw       Gateway
	notifier notify.Notifier
	logger   *logging.Logger
	metrics  *metrics.CoreMetrics
	loc      *time.Location
	now      func() time.Time
}

func NewService(gw Gateway, notifier notify.Notifier, logger *logging.Logger) *Service {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		gw:       gw,
		notifier: notifier,
		logger:   logger,
		loc:      time.Local,
		now:      time.Now,
	}
}

func (s *Service) WithMetrics(m *metrics.CoreMetrics) *Service {
	s.metrics = m
	return s
}

func (s *Service) WithLocation(loc *time.Location) *Service {
	if loc != nil {
		s.loc = loc
	}
	return s
}

func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// RequestAppointment creates a new on-hold record holding only the
// patient and doctor references. Date, time and notes are deliberately
// withheld until the doctor acts. On success the doctor's channel gets
// exactly one best-effort ping, off this call's critical path.
func (s *Service) RequestAppointment(ctx context.Context, patientID, doctorID int) (*appointment.Appointment, error) {
	if patientID <= 0 {
		return nil, appointment.ErrMissingPatient
	}
	if doctorID <= 0 {
		return nil, appointment.ErrMissingDoctor
	}

	appt := &appointment.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Status:    appointment.StatusOnHold,
	}

	id, err := s.gw.CreateAppointment(ctx, appt)
	if err != nil {
		return nil, err
	}
	appt.ID = id

	go s.notifyDoctor(doctorID)

	return appt, nil
}

// notifyDoctor delivers the creation ping. Failure is logged and
// discarded; it never fails or delays the action that produced it.
func (s *Service) notifyDoctor(doctorID int) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyNewAppointment(ctx, doctorID); err != nil {
		s.metrics.ObserveNotification(false)
		s.logger.Warn("doctor notification not delivered", "doctor_id", doctorID, "error", err)
		return
	}
	s.metrics.ObserveNotification(true)
	s.logger.Debug("doctor notified", "doctor_id", doctorID)
}

// ScheduleAppointment assigns date, time and notes and confirms the
// booking. The target must exist and not be cancelled, and the date
// may not lie before today's wall-clock date.
func (s *Service) ScheduleAppointment(ctx context.Context, id int, date, timeOfDay, notes string) (*appointment.Appointment, error) {
	day, err := time.ParseInLocation(appointment.DateLayout, date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	if _, err := time.Parse(appointment.TimeLayout, timeOfDay); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, timeOfDay)
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	if day.Before(today) {
		return nil, ErrPastDate
	}

	appt, err := s.gw.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return nil, ErrCancelled
	}

	if notes == "" {
		notes = DefaultScheduleNote
	}
	appt.Date = date
	appt.Time = timeOfDay
	appt.Notes = notes
	appt.Status = appointment.StatusScheduled

	if err := s.gw.UpdateAppointment(ctx, appt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment scheduled", "appointment_id", id, "date", date, "time", timeOfDay)
	return appt, nil
}

// RejectAppointment cancels the record with a reason. Rejecting an
// already-cancelled record is a no-op success.
func (s *Service) RejectAppointment(ctx context.Context, id int, reason string) (*appointment.Appointment, error) {
	appt, err := s.gw.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status.Terminal() {
		return appt, nil
	}

	if reason == "" {
		reason = DefaultRejectReason
	}
	appt.Status = appointment.StatusCancelled
	appt.Notes = reason

	if err := s.gw.UpdateAppointment(ctx, appt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment rejected", "appointment_id", id)
	return appt, nil
}

// EditAssignment changes the patient/doctor references of a record the
// doctor has not acted on yet. Every other field is left untouched and
// nobody is re-notified.
func (s *Service) EditAssignment(ctx context.Context, id, patientID, doctorID int) (*appointment.Appointment, error) {
	if patientID <= 0 {
		return nil, appointment.ErrMissingPatient
	}
	if doctorID <= 0 {
		return nil, appointment.ErrMissingDoctor
	}

	appt, err := s.gw.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != appointment.StatusOnHold {
		return nil, ErrNotOnHold
	}

	appt.PatientID = patientID
	appt.DoctorID = doctorID

	if err := s.gw.UpdateAppointment(ctx, appt); err != nil {
		return nil, err
	}
	s.logger.Info("appointment reassigned", "appointment_id", id, "patient_id", patientID, "doctor_id", doctorID)
	return appt, nil
}

// DeleteAppointment destroys the record through the gateway,
// independent of status.
func (s *Service) DeleteAppointment(ctx context.Context, id int) error {
	return s.gw.DeleteAppointment(ctx, id)
}

// ListAppointments returns the full appointment set from the gateway.
func (s *Service) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	return s.gw.ListAppointments(ctx)
}

// PendingForDoctor returns the doctor's open requests, freshly read
// from the gateway.
func (s *Service) PendingForDoctor(ctx context.Context, doctorID int) ([]appointment.Appointment, error) {
	appts, err := s.gw.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	var out []appointment.Appointment
	for _, appt := range appts {
		if appt.DoctorID == doctorID && appt.Status == appointment.StatusOnHold {
			out = append(out, appt)
		}
	}
	return out, nil
}
