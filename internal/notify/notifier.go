// Package notify carries the per-doctor new-appointment signal from
// the lifecycle controller to a doctor's running client. Delivery is
// at-most-once with no ordering guarantee: the signal carries no data
// beyond a fixed sentinel, so a dropped or duplicated ping only delays
// visibility until the next refresh. The authoritative pending set is
// always reloaded from the gateway.
package notify

import "context"

// Sentinel is the entire notification payload.
const Sentinel = "NEW_APPOINTMENT"

// Notifier delivers a best-effort signal that a new appointment
// request exists for the doctor. Implementations must not queue,
// retry, or persist missed deliveries.
type Notifier interface {
	NotifyNewAppointment(ctx context.Context, doctorID int) error
}

// NopNotifier discards every signal. Used when no transport is
// configured, degrading to manual refresh.
type NopNotifier struct{}

func (NopNotifier) NotifyNewAppointment(ctx context.Context, doctorID int) error {
	return nil
}
