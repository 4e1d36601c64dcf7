package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventAppointmentCreated       = "APPOINTMENT_CREATED"
	EventAppointmentStatusChanged = "APPOINTMENT_STATUS_CHANGED"
	EventAppointmentRemoved       = "APPOINTMENT_REMOVED"
)

// Event is the domain event emitted after every successful mutation.
// Delivery is best-effort; the notification/audit side consumes it.
type Event struct {
	Type          string    `json:"type"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	ActorID       uuid.UUID `json:"actor_id"`
	From          Status    `json:"from,omitempty"`
	To            Status    `json:"to,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// EventLog is the persisted audit form of an Event.
type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID uuid.UUID
	ActorID       uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}
