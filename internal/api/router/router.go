package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicdesk/scheduler/internal/http/handlers"
	httpmiddleware "github.com/clinicdesk/scheduler/internal/http/middleware"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	Appointments   *handlers.AppointmentsHandler
	Directory      *handlers.DirectoryHandler
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.AllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.Appointments.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/appointments", func(r chi.Router) {
		r.Get("/", cfg.Appointments.ListAppointments)
		r.Post("/requests", cfg.Appointments.RequestAppointment)
		r.Put("/{id}/assignment", cfg.Appointments.EditAssignment)
		r.Delete("/{id}", cfg.Appointments.DeleteAppointment)
	})

	if cfg.Directory != nil {
		r.Get("/patients", cfg.Directory.ListPatients)
		r.Get("/doctors", cfg.Directory.ListDoctors)
	}

	r.Route("/doctors/{doctorID}", func(r chi.Router) {
		r.Get("/requests", cfg.Appointments.PendingRequests)
		r.Post("/appointments/{id}/schedule", cfg.Appointments.ScheduleAppointment)
		r.Post("/appointments/{id}/reject", cfg.Appointments.RejectAppointment)
	})

	return r
}
