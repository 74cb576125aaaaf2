package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicdesk/scheduler/internal/appointment"
	"github.com/clinicdesk/scheduler/internal/gateway"
	"github.com/clinicdesk/scheduler/internal/http/handlers"
	"github.com/clinicdesk/scheduler/internal/scheduler"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

type emptyGateway struct{}

func (emptyGateway) GetAppointment(ctx context.Context, id int) (*appointment.Appointment, error) {
	return nil, appointment.ErrNotFound
}

func (emptyGateway) CreateAppointment(ctx context.Context, appt *appointment.Appointment) (int, error) {
	return 1, nil
}

func (emptyGateway) UpdateAppointment(ctx context.Context, appt *appointment.Appointment) error {
	return nil
}

func (emptyGateway) DeleteAppointment(ctx context.Context, id int) error { return nil }

func (emptyGateway) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	return nil, nil
}

func (emptyGateway) ListPatients(ctx context.Context) ([]gateway.Patient, error) { return nil, nil }

func (emptyGateway) ListDoctors(ctx context.Context) ([]gateway.Doctor, error) { return nil, nil }

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	svc := scheduler.NewService(emptyGateway{}, nil, nil)
	reg := prometheus.NewRegistry()
	return New(&Config{
		Logger:         logging.New("error"),
		Appointments:   handlers.NewAppointmentsHandler(svc, nil),
		Directory:      handlers.NewDirectoryHandler(emptyGateway{}, nil),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestHealthRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDirectoryRoutes(t *testing.T) {
	for _, path := range []string{"/patients", "/doctors"} {
		rec := httptest.NewRecorder()
		newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestListAppointmentsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
