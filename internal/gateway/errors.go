package gateway

import "fmt"

// Error wraps a failed gateway call: transport failure, non-2xx status,
// an unparseable body, or a success=false response. The core never
// assumes a mutation succeeded without checking for it.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("gateway: %s: %s", e.Op, e.Message)
	default:
		return fmt.Sprintf("gateway: %s failed with status %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
