package appointment

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseStatusNormalizesLegacyValues(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"on_hold", StatusOnHold},
		{"On Hold", StatusOnHold},
		{"ON HOLD", StatusOnHold},
		{"", StatusOnHold},
		{"scheduled", StatusScheduled},
		{"Scheduled", StatusScheduled},
		{"confirmed", StatusConfirmed},
		{"Approved", StatusConfirmed},
		{"cancelled", StatusCancelled},
		{"Canceled", StatusCancelled},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.raw)
		if err != nil {
			t.Fatalf("ParseStatus(%q): %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseStatus(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	if _, err := ParseStatus("archived"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestUnmarshalToleratesNullOptionals(t *testing.T) {
	body := `{"appointment_id":7,"patient_id":3,"doctor_id":2,"appointment_date":null,"appointment_time":"","status":"On Hold","notes":null}`

	var appt Appointment
	if err := json.Unmarshal([]byte(body), &appt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if appt.ID != 7 || appt.PatientID != 3 || appt.DoctorID != 2 {
		t.Fatalf("unexpected ids: %+v", appt)
	}
	if appt.Status != StatusOnHold {
		t.Fatalf("expected on_hold, got %s", appt.Status)
	}
	if appt.Date != "" || appt.Time != "" || appt.Notes != "" {
		t.Fatalf("expected empty optionals, got %+v", appt)
	}
}

func TestValidateInvariant(t *testing.T) {
	appt := Appointment{PatientID: 1, DoctorID: 2, Status: StatusOnHold}
	if err := appt.Validate(); err != nil {
		t.Fatalf("on_hold without date/time should be valid: %v", err)
	}

	appt.Status = StatusScheduled
	if err := appt.Validate(); err == nil {
		t.Fatal("scheduled without date/time should be invalid")
	}

	appt.Date = "2026-09-01"
	appt.Time = "09:00"
	if err := appt.Validate(); err != nil {
		t.Fatalf("scheduled with date/time should be valid: %v", err)
	}

	appt.PatientID = 0
	if err := appt.Validate(); err != ErrMissingPatient {
		t.Fatalf("expected ErrMissingPatient, got %v", err)
	}
}

func TestStartsAt(t *testing.T) {
	appt := Appointment{ID: 1, Date: "2026-09-01", Time: "14:30"}
	got, err := appt.StartsAt(time.UTC)
	if err != nil {
		t.Fatalf("StartsAt: %v", err)
	}
	want := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("StartsAt = %s, want %s", got, want)
	}

	appt.Time = ""
	if _, err := appt.StartsAt(time.UTC); err == nil {
		t.Fatal("expected error with no time")
	}
}
