package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment. The set is closed;
// anything else is rejected at the boundary by ParseStatus.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusCancelled, StatusCompleted:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

// Terminal reports whether no further transition may leave the status.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Actor is the identity attempting an operation, as attested by the
// identity provider. Approved matters only for students proposing.
type Actor struct {
	ID       uuid.UUID
	Role     Role
	Approved bool
}

type Appointment struct {
	ID            uuid.UUID
	RequesterID   uuid.UUID
	RequesterName string
	OwnerID       uuid.UUID
	OwnerName     string
	Title         string
	Description   string
	ScheduledAt   time.Time
	Status        Status
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UpdatedBy     uuid.UUID
}

// TimeOfDay is minutes since midnight. Slots store it instead of a full
// timestamp because availability is a local, wall-clock concept.
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" (24-hour).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay(h*60 + m), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// minuteOf projects an instant onto its wall-clock minute of day.
func minuteOf(at time.Time) TimeOfDay {
	return TimeOfDay(at.Hour()*60 + at.Minute())
}

// AvailabilitySlot is a window during which an owner accepts proposals.
// Exactly one shape is valid: recurring (weekly, Weekday set) or one-off
// (Date set to the calendar day).
type AvailabilitySlot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Recurring bool
	Weekday   time.Weekday
	Date      time.Time
	Start     TimeOfDay
	End       TimeOfDay
}

// Validate checks the structural slot invariants.
func (s AvailabilitySlot) Validate() error {
	if s.Start >= s.End {
		return &ValidationError{Field: "end_time", Reason: "end time must be after start time"}
	}
	if s.Recurring && !s.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "recurring slot must not carry a date"}
	}
	if !s.Recurring && s.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "one-off slot requires a date"}
	}
	return nil
}

// Contains reports whether at falls inside the slot. Ranges are half-open:
// an instant equal to End is outside. Calendar fields are compared as-is,
// in the instant's own location; no timezone normalization happens here.
func (s AvailabilitySlot) Contains(at time.Time) bool {
	m := minuteOf(at)
	if m < s.Start || m >= s.End {
		return false
	}
	if s.Recurring {
		return at.Weekday() == s.Weekday
	}
	ay, am, ad := at.Date()
	sy, sm, sd := s.Date.Date()
	return ay == sy && am == sm && ad == sd
}
