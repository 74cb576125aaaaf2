// Package handlers exposes the appointment lifecycle over HTTP. The
// handlers are thin glue around the scheduler desks; all rules live in
// the scheduler package.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/scheduler/internal/appointment"
	"github.com/clinicdesk/scheduler/internal/gateway"
	"github.com/clinicdesk/scheduler/internal/scheduler"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

// AppointmentsHandler handles HTTP requests for the appointment core.
type AppointmentsHandler struct {
	svc    *scheduler.Service
	staff  *scheduler.StaffDesk
	logger *logging.Logger
}

func NewAppointmentsHandler(svc *scheduler.Service, logger *logging.Logger) *AppointmentsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AppointmentsHandler{
		svc:    svc,
		staff:  scheduler.NewStaffDesk(svc),
		logger: logger,
	}
}

// HealthCheck reports liveness.
func (h *AppointmentsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type requestAppointmentBody struct {
	PatientID int `json:"patient_id"`
	DoctorID  int `json:"doctor_id"`
}

// RequestAppointment handles POST /appointments/requests (staff).
func (h *AppointmentsHandler) RequestAppointment(w http.ResponseWriter, r *http.Request) {
	var body requestAppointmentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.staff.RequestAppointment(r.Context(), body.PatientID, body.DoctorID)
	if err != nil {
		h.writeError(w, "request appointment", err)
		return
	}
	writeJSON(w, http.StatusCreated, appt)
}

// EditAssignment handles PUT /appointments/{id}/assignment (staff).
func (h *AppointmentsHandler) EditAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body requestAppointmentBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := h.staff.EditAssignment(r.Context(), id, body.PatientID, body.DoctorID)
	if err != nil {
		h.writeError(w, "edit assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// DeleteAppointment handles DELETE /appointments/{id} (staff).
func (h *AppointmentsHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.staff.DeleteAppointment(r.Context(), id); err != nil {
		h.writeError(w, "delete appointment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAppointments handles GET /appointments.
func (h *AppointmentsHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appts, err := h.svc.ListAppointments(r.Context())
	if err != nil {
		h.writeError(w, "list appointments", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"appointments": appts,
		"count":        len(appts),
	})
}

type scheduleBody struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

// ScheduleAppointment handles POST /doctors/{doctorID}/appointments/{id}/schedule.
func (h *AppointmentsHandler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	desk, id, ok := h.doctorDesk(w, r)
	if !ok {
		return
	}
	var body scheduleBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := desk.Schedule(r.Context(), id, body.Date, body.Time, body.Notes)
	if err != nil {
		h.writeError(w, "schedule appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

type rejectBody struct {
	Reason string `json:"reason"`
}

// RejectAppointment handles POST /doctors/{doctorID}/appointments/{id}/reject.
func (h *AppointmentsHandler) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	desk, id, ok := h.doctorDesk(w, r)
	if !ok {
		return
	}
	var body rejectBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	appt, err := desk.Reject(r.Context(), id, body.Reason)
	if err != nil {
		h.writeError(w, "reject appointment", err)
		return
	}
	writeJSON(w, http.StatusOK, appt)
}

// PendingRequests handles GET /doctors/{doctorID}/requests.
func (h *AppointmentsHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorID")
	if !ok {
		return
	}
	desk := scheduler.NewDoctorDesk(h.svc, doctorID)

	appts, err := desk.PendingRequests(r.Context())
	if err != nil {
		h.writeError(w, "pending requests", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"requests": appts,
		"count":    len(appts),
	})
}

func (h *AppointmentsHandler) doctorDesk(w http.ResponseWriter, r *http.Request) (*scheduler.DoctorDesk, int, bool) {
	doctorID, ok := pathID(w, r, "doctorID")
	if !ok {
		return nil, 0, false
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return nil, 0, false
	}
	return scheduler.NewDoctorDesk(h.svc, doctorID), id, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps domain errors onto HTTP statuses: validation and
// transition failures are the caller's fault, gateway failures are a
// bad upstream.
func (h *AppointmentsHandler) writeError(w http.ResponseWriter, op string, err error) {
	var gwErr *gateway.Error

	switch {
	case errors.Is(err, appointment.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, scheduler.ErrNotAssigned):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, appointment.ErrMissingPatient),
		errors.Is(err, appointment.ErrMissingDoctor),
		errors.Is(err, scheduler.ErrInvalidDate),
		errors.Is(err, scheduler.ErrInvalidTime),
		errors.Is(err, scheduler.ErrPastDate),
		errors.Is(err, scheduler.ErrCancelled),
		errors.Is(err, scheduler.ErrNotOnHold):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &gwErr):
		h.logger.Error(op+" failed at gateway", "error", err)
		http.Error(w, "gateway unavailable", http.StatusBadGateway)
	default:
		h.logger.Error(op+" failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
