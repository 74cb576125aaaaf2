package appointment

import "errors"

var (
	// ErrMissingPatient is returned when the patient reference is absent
	ErrMissingPatient = errors.New("patient id is required")

	// ErrMissingDoctor is returned when the doctor reference is absent
	ErrMissingDoctor = errors.New("doctor id is required")

	// ErrNotFound is returned when the gateway has no record for the id
	ErrNotFound = errors.New("appointment not found")
)
