package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/scheduler/internal/appointment"
)

func TestListAppointmentsNormalizesStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/appointments_api.php", r.URL.Path)
		w.Write([]byte(`[
			{"appointment_id":1,"patient_id":4,"doctor_id":2,"appointment_date":"2026-09-10","appointment_time":"10:00","status":"scheduled","notes":"","patient_name":"Ana Silva","doctor_name":"Dr. Reyes"},
			{"appointment_id":2,"patient_id":5,"doctor_id":2,"appointment_date":null,"appointment_time":null,"status":"On Hold","notes":null}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	appts, err := client.ListAppointments(context.Background())
	require.NoError(t, err)
	require.Len(t, appts, 2)
	require.Equal(t, appointment.StatusScheduled, appts[0].Status)
	require.Equal(t, "Ana Silva", appts[0].PatientName)
	require.Equal(t, appointment.StatusOnHold, appts[1].Status)
	require.Empty(t, appts[1].Date)
}

func TestGetAppointmentAcceptsArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/appointments_api.php/9", r.URL.Path)
		w.Write([]byte(`[{"appointment_id":9,"patient_id":1,"doctor_id":3,"status":"Approved","appointment_date":"2026-09-12","appointment_time":"09:30","notes":"follow-up"}]`))
	}))
	defer srv.Close()

	appt, err := NewClient(srv.URL).GetAppointment(context.Background(), 9)
	require.NoError(t, err)
	require.Equal(t, 9, appt.ID)
	require.Equal(t, appointment.StatusConfirmed, appt.Status)
}

func TestGetAppointmentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetAppointment(context.Background(), 404)
	require.ErrorIs(t, err, appointment.ErrNotFound)
}

func TestCreateAppointmentSendsWriteShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"appointment_id":"17","message":"Appointment created successfully"}`))
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).CreateAppointment(context.Background(), &appointment.Appointment{
		PatientID: 4,
		DoctorID:  2,
		Status:    appointment.StatusOnHold,
	})
	require.NoError(t, err)
	require.Equal(t, 17, id)

	// writes use the store's camelCase keys
	require.Equal(t, float64(4), got["patientId"])
	require.Equal(t, float64(2), got["doctorId"])
	require.Equal(t, "on_hold", got["status"])
	require.Equal(t, "", got["appointmentDate"])
}

func TestMutationFailureSurfacesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Missing required patientId or doctorId"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateAppointment(context.Background(), &appointment.Appointment{PatientID: 1, DoctorID: 2})
	require.Error(t, err)

	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	require.Contains(t, gwErr.Message, "Missing required")
}

func TestNon2xxSurfacesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListAppointments(context.Background())
	var gwErr *Error
	require.True(t, errors.As(err, &gwErr))
	require.Equal(t, http.StatusInternalServerError, gwErr.Status)
}

func TestUpdateAndDeleteCheckSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			require.Equal(t, "/appointments_api.php/5", r.URL.Path)
			w.Write([]byte(`{"success":true}`))
		case http.MethodDelete:
			require.Equal(t, "/appointments_api.php/5", r.URL.Path)
			w.Write([]byte(`{"success":true}`))
		default:
			t.Fatalf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	appt := &appointment.Appointment{
		ID: 5, PatientID: 1, DoctorID: 2,
		Date: "2026-09-10", Time: "10:00",
		Status: appointment.StatusScheduled,
	}
	require.NoError(t, client.UpdateAppointment(context.Background(), appt))
	require.NoError(t, client.DeleteAppointment(context.Background(), 5))
}

func TestListDoctors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/doctors_api.php", r.URL.Path)
		w.Write([]byte(`[{"doctor_id":2,"first_name":"Elena","last_name":"Reyes","specialization":"Cardiology"}]`))
	}))
	defer srv.Close()

	doctors, err := NewClient(srv.URL).ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	require.Equal(t, "Elena", doctors[0].FirstName)
}
