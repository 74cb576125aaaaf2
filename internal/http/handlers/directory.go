package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/clinicdesk/scheduler/internal/gateway"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

// DirectoryStore lists the people records staff pick from when
// booking: patients and doctors.
type DirectoryStore interface {
	ListPatients(ctx context.Context) ([]gateway.Patient, error)
	ListDoctors(ctx context.Context) ([]gateway.Doctor, error)
}

// DirectoryHandler serves the read-only patient and doctor listings.
type DirectoryHandler struct {
	store  DirectoryStore
	logger *logging.Logger
}

func NewDirectoryHandler(store DirectoryStore, logger *logging.Logger) *DirectoryHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DirectoryHandler{store: store, logger: logger}
}

// ListPatients handles GET /patients.
func (h *DirectoryHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.store.ListPatients(r.Context())
	if err != nil {
		h.writeError(w, "list patients", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"patients": patients,
		"count":    len(patients),
	})
}

// ListDoctors handles GET /doctors.
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.store.ListDoctors(r.Context())
	if err != nil {
		h.writeError(w, "list doctors", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

func (h *DirectoryHandler) writeError(w http.ResponseWriter, op string, err error) {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		h.logger.Error(op+" failed at gateway", "error", err)
		http.Error(w, "gateway unavailable", http.StatusBadGateway)
		return
	}
	h.logger.Error(op+" failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
