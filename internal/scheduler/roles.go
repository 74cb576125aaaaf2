package scheduler

import (
	"context"

	"github.com/clinicdesk/scheduler/internal/appointment"
)

// StaffDesk exposes only the operations front-desk staff may invoke.
type StaffDesk struct {
	svc *Service
}

func NewStaffDesk(svc *Service) *StaffDesk {
	return &StaffDesk{svc: svc}
}

func (d *StaffDesk) RequestAppointment(ctx context.Context, patientID, doctorID int) (*appointment.Appointment, error) {
	return d.svc.RequestAppointment(ctx, patientID, doctorID)
}

func (d *StaffDesk) EditAssignment(ctx context.Context, id, patientID, doctorID int) (*appointment.Appointment, error) {
	return d.svc.EditAssignment(ctx, id, patientID, doctorID)
}

func (d *StaffDesk) DeleteAppointment(ctx context.Context, id int) error {
	return d.svc.DeleteAppointment(ctx, id)
}

// DoctorDesk exposes only the operations a doctor may invoke, bound to
// that doctor's identity. Acting on another doctor's record fails with
// ErrNotAssigned.
type DoctorDesk struct {
	svc      *Service
	doctorID int
}

func NewDoctorDesk(svc *Service, doctorID int) *DoctorDesk {
	return &DoctorDesk{svc: svc, doctorID: doctorID}
}

func (d *DoctorDesk) DoctorID() int {
	return d.doctorID
}

func (d *DoctorDesk) Schedule(ctx context.Context, id int, date, timeOfDay, notes string) (*appointment.Appointment, error) {
	if err := d.checkOwnership(ctx, id); err != nil {
		return nil, err
	}
	return d.svc.ScheduleAppointment(ctx, id, date, timeOfDay, notes)
}

func (d *DoctorDesk) Reject(ctx context.Context, id int, reason string) (*appointment.Appointment, error) {
	if err := d.checkOwnership(ctx, id); err != nil {
		return nil, err
	}
	return d.svc.RejectAppointment(ctx, id, reason)
}

func (d *DoctorDesk) PendingRequests(ctx context.Context) ([]appointment.Appointment, error) {
	return d.svc.PendingForDoctor(ctx, d.doctorID)
}

func (d *DoctorDesk) checkOwnership(ctx context.Context, id int) error {
	appt, err := d.svc.gw.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if appt.DoctorID != d.doctorID {
		return ErrNotAssigned
	}
	return nil
}
