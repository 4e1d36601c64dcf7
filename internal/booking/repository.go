package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter describes one store-side query shape for appointments.
type ListFilter struct {
	// ParticipantID with Role selects the identity column: students are
	// matched on requester_id, teachers on owner_id. Admins list everything
	// and carry no identity filter.
	ParticipantID uuid.UUID
	Role          Role

	// Status restricts to an exact status; zero value means every status.
	Status Status

	// Limit caps the result when positive.
	Limit int

	// Sorted asks for server-side scheduled_at descending order. A store
	// that cannot serve the combined filter+sort shape must return
	// ErrSortUnsupported rather than silently reordering.
	Sorted bool
}

// AppointmentStore owns appointment records for their full lifetime.
type AppointmentStore interface {
	Create(ctx context.Context, appt *Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// UpdateStatus is a conditional write: it succeeds only when the stored
	// version still equals expectedVersion, bumping the version and stamping
	// updated_at/updated_by. A lost race is ErrConflict.
	UpdateStatus(ctx context.Context, id uuid.UUID, to Status, actor uuid.UUID, at time.Time, expectedVersion int) (*Appointment, error)

	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter) ([]Appointment, error)

	// InsertEvent persists an audit row. Used by the audit worker, never
	// on the mutation path.
	InsertEvent(ctx context.Context, ev EventLog) error
}

// SlotStore reads declared availability. The core never writes slots;
// owners manage them through a separate path. An owner with nothing
// declared yields an empty result, not an error.
type SlotStore interface {
	GetSlots(ctx context.Context, ownerID uuid.UUID) ([]AvailabilitySlot, error)
}
