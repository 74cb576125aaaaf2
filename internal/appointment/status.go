package appointment

import (
	"fmt"
	"strings"
)

// Status is the closed appointment status enumeration. The backing
// store historically carried several spellings ("On Hold", "Approved",
// mixed case); ParseStatus folds all of them into these canonical
// values, and writes always emit the canonical form.
type Status string

const (
	StatusOnHold    Status = "on_hold"
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus normalizes a raw status value from the gateway into the
// canonical enumeration. An empty value maps to on_hold, matching
// records created before a doctor has acted on them.
func ParseStatus(raw string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")

	switch key {
	case "", "on_hold", "onhold", "pending":
		return StatusOnHold, nil
	case "scheduled":
		return StatusScheduled, nil
	case "confirmed", "approved":
		return StatusConfirmed, nil
	case "cancelled", "canceled", "rejected":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("appointment: unknown status %q", raw)
}

// Active reports whether the appointment counts as an upcoming booking
// for reminder purposes.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

// Terminal reports whether no further transition is modeled.
func (s Status) Terminal() bool {
	return s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}
