// Package gateway is the HTTP client for the remote store that owns
// patients, doctors and appointments. The store is authoritative and
// stateless across calls; every component re-derives truth from it
// rather than trusting cached or pushed data.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/clinicdesk/scheduler/internal/appointment"
	"github.com/clinicdesk/scheduler/pkg/logging"
)

// Patient is the gateway's patient record, read-only for this service.
type Patient struct {
	ID        int    `json:"patient_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
}

// Doctor is the gateway's doctor record, read-only for this service.
type Doctor struct {
	ID             int    `json:"doctor_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

// mutationResponse is the gateway's uniform reply to writes. The store
// returns freshly assigned ids as strings, so the id field tolerates
// both encodings.
type mutationResponse struct {
	Success       bool     `json:"success"`
	AppointmentID looseInt `json:"appointment_id"`
	Message       string   `json:"message"`
	ErrorText     string   `json:"error"`
}

// looseInt accepts an integer encoded as either a JSON number or a
// quoted string.
type looseInt int

func (n *looseInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("gateway: parse id %q: %w", b, err)
	}
	*n = looseInt(v)
	return nil
}

// appointmentPayload is the write shape. The store reads camelCase
// keys on writes but returns snake_case records, so the two shapes are
// kept separate on purpose.
type appointmentPayload struct {
	PatientID int    `json:"patientId"`
	DoctorID  int    `json:"doctorId"`
	Date      string `json:"appointmentDate"`
	Time      string `json:"appointmentTime"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// Client is an HTTP client for the remote store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the store at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logging.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListAppointments fetches the full appointment set.
func (c *Client) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	var out []appointment.Appointment
	if err := c.getJSON(ctx, "list appointments", c.baseURL+"/appointments_api.php", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAppointment fetches a single appointment by id. A missing record
// yields appointment.ErrNotFound.
func (c *Client) GetAppointment(ctx context.Context, id int) (*appointment.Appointment, error) {
	op := "get appointment"
	url := c.baseURL + "/appointments_api.php/" + strconv.Itoa(id)

	body, err := c.do(ctx, op, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || string(body) == "null" {
		return nil, appointment.ErrNotFound
	}

	// The store answers with either a bare object or a one-element array.
	if body[0] == '[' {
		var list []appointment.Appointment
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		if len(list) == 0 {
			return nil, appointment.ErrNotFound
		}
		return &list[0], nil
	}

	var appt appointment.Appointment
	if err := json.Unmarshal(body, &appt); err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &appt, nil
}

// CreateAppointment persists a new record and returns its assigned id.
func (c *Client) CreateAppointment(ctx context.Context, appt *appointment.Appointment) (int, error) {
	op := "create appointment"
	resp, err := c.mutate(ctx, op, http.MethodPost, c.baseURL+"/appointments_api.php", payloadFor(appt))
	if err != nil {
		return 0, err
	}
	c.logger.Info("appointment created", "appointment_id", int(resp.AppointmentID), "doctor_id", appt.DoctorID)
	return int(resp.AppointmentID), nil
}

// UpdateAppointment writes the full record back under its id.
func (c *Client) UpdateAppointment(ctx context.Context, appt *appointment.Appointment) error {
	op := "update appointment"
	url := c.baseURL + "/appointments_api.php/" + strconv.Itoa(appt.ID)
	if _, err := c.mutate(ctx, op, http.MethodPut, url, payloadFor(appt)); err != nil {
		return err
	}
	c.logger.Info("appointment updated", "appointment_id", appt.ID, "status", appt.Status)
	return nil
}

// DeleteAppointment removes a record regardless of status.
func (c *Client) DeleteAppointment(ctx context.Context, id int) error {
	op := "delete appointment"
	url := c.baseURL + "/appointments_api.php/" + strconv.Itoa(id)
	if _, err := c.mutate(ctx, op, http.MethodDelete, url, nil); err != nil {
		return err
	}
	c.logger.Info("appointment deleted", "appointment_id", id)
	return nil
}

// ListPatients fetches all patient records.
func (c *Client) ListPatients(ctx context.Context) ([]Patient, error) {
	var out []Patient
	if err := c.getJSON(ctx, "list patients", c.baseURL+"/patients_api.php", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDoctors fetches all doctor records.
func (c *Client) ListDoctors(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	if err := c.getJSON(ctx, "list doctors", c.baseURL+"/doctors_api.php", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func payloadFor(appt *appointment.Appointment) *appointmentPayload {
	return &appointmentPayload{
		PatientID: appt.PatientID,
		DoctorID:  appt.DoctorID,
		Date:      appt.Date,
		Time:      appt.Time,
		Status:    appt.Status.String(),
		Notes:     appt.Notes,
	}
}

func (c *Client) getJSON(ctx context.Context, op, url string, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// mutate issues a write and fails unless the store reports success.
func (c *Client) mutate(ctx context.Context, op, method, url string, payload any) (*mutationResponse, error) {
	body, err := c.do(ctx, op, method, url, payload)
	if err != nil {
		return nil, err
	}

	var resp mutationResponse
	if err := json.Unmarshal(bytes.TrimSpace(body), &resp); err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = resp.ErrorText
		}
		return nil, &Error{Op: op, Message: msg}
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, op, method, url string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &Error{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	c.logger.Debug("gateway request", "method", method, "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Op: op, Status: resp.StatusCode, Message: string(bytes.TrimSpace(body))}
	}
	return body, nil
}
