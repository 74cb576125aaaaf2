package scheduler

import "errors"

var (
	// ErrInvalidDate is returned when the date is not a yyyy-MM-dd value
	ErrInvalidDate = errors.New("invalid appointment date")

	// ErrPastDate is returned when scheduling for a day before today
	ErrPastDate = errors.New("appointment date is in the past")

	// ErrInvalidTime is returned when the time is not an HH:mm value
	ErrInvalidTime = errors.New("invalid appointment time")

	// ErrCancelled is returned when acting on a cancelled record
	ErrCancelled = errors.New("appointment is cancelled")

	// ErrNotOnHold is returned when staff edit a record a doctor already acted on
	ErrNotOnHold = errors.New("appointment is no longer on hold")

	// ErrNotAssigned is returned when a doctor acts on another doctor's appointment
	ErrNotAssigned = errors.New("appointment is assigned to a different doctor")
)
