package appointment

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	// DateLayout is the gateway's calendar date format.
	DateLayout = "2006-01-02"
	// TimeLayout is the gateway's wall-clock time format.
	TimeLayout = "15:04"
)

// Appointment is the flat record exchanged with the gateway. Date and
// Time stay strings in the gateway's formats; both may be empty only
// while the record is on hold. PatientName and DoctorName are
// denormalized display labels returned by the gateway and are never
// written back.
type Appointment struct {
	ID          int    `json:"appointment_id"`
	PatientID   int    `json:"patient_id"`
	DoctorID    int    `json:"doctor_id"`
	Date        string `json:"appointment_date"`
	Time        string `json:"appointment_time"`
	Status      Status `json:"status"`
	Notes       string `json:"notes"`
	PatientName string `json:"patient_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
}

// UnmarshalJSON tolerates the gateway's loose field encoding: optional
// strings arrive as empty string or null, and status arrives in any of
// the legacy spellings.
func (a *Appointment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          int         `json:"appointment_id"`
		PatientID   int         `json:"patient_id"`
		DoctorID    int         `json:"doctor_id"`
		Date        *string `json:"appointment_date"`
		Time        *string `json:"appointment_time"`
		RawStatus   *string `json:"status"`
		Notes       *string `json:"notes"`
		PatientName *string `json:"patient_name"`
		DoctorName  *string `json:"doctor_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	a.ID = raw.ID
	a.PatientID = raw.PatientID
	a.DoctorID = raw.DoctorID
	a.Date = deref(raw.Date)
	a.Time = deref(raw.Time)
	a.Notes = deref(raw.Notes)
	a.PatientName = deref(raw.PatientName)
	a.DoctorName = deref(raw.DoctorName)

	status, err := ParseStatus(deref(raw.RawStatus))
	if err != nil {
		return err
	}
	a.Status = status
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Validate checks the record invariant: patient and doctor references
// are always present, and date/time may be absent only while on hold.
func (a *Appointment) Validate() error {
	if a.PatientID <= 0 {
		return ErrMissingPatient
	}
	if a.DoctorID <= 0 {
		return ErrMissingDoctor
	}
	if a.Status != StatusOnHold && (a.Date == "" || a.Time == "") {
		return fmt.Errorf("appointment: status %s requires date and time", a.Status)
	}
	return nil
}

// StartsAt combines the record's date and time into a wall-clock
// instant in the given location. It fails when either part is absent
// or malformed.
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	if a.Date == "" || a.Time == "" {
		return time.Time{}, fmt.Errorf("appointment %d has no scheduled date/time", a.ID)
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, a.Date+" "+a.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment %d: parse start: %w", a.ID, err)
	}
	return t, nil
}
