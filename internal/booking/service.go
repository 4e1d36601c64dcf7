package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service implements the appointment lifecycle over injected stores.
// It holds no state of its own beyond its collaborators.
type Service struct {
	appts  AppointmentStore
	slots  SlotStore
	events EventPublisher
	policy AvailabilityPolicy
	log    zerolog.Logger
	now    func() time.Time
}

func NewService(appts AppointmentStore, slots SlotStore, events EventPublisher, policy AvailabilityPolicy, log zerolog.Logger) *Service {
	return &Service{
		appts:  appts,
		slots:  slots,
		events: events,
		policy: policy,
		log:    log,
		now:    time.Now,
	}
}

type ProposeInput struct {
	OwnerID       uuid.UUID
	OwnerName     string
	RequesterID   uuid.UUID
	RequesterName string
	Title         string
	Description   string
	ScheduledAt   time.Time
}

// Propose creates a pending appointment after validating the proposal
// against the owner's declared availability. The actor must be the
// requester, the owner acting on the requester's behalf, or an admin.
func (s *Service) Propose(ctx context.Context, in ProposeInput, actor Actor) (*Appointment, error) {
	if err := validateProposal(in); err != nil {
		return nil, err
	}

	switch {
	case actor.Role == RoleAdmin:
	case actor.ID == in.RequesterID:
		if !actor.Approved {
			return nil, fmt.Errorf("requester not approved: %w", ErrForbidden)
		}
	case actor.ID == in.OwnerID:
		// Owner booking on behalf of a requester.
	default:
		return nil, ErrForbidden
	}

	now := s.now()
	if !in.ScheduledAt.After(now) {
		return nil, &ValidationError{Field: "scheduled_at", Reason: "must be in the future"}
	}

	// Availability is re-checked here even if the caller pre-checked via
	// IsSlotAvailable; slots may have changed in between.
	slots, err := s.slots.GetSlots(ctx, in.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	if !evaluateAvailability(s.policy, slots, in.ScheduledAt) {
		return nil, &ValidationError{Field: "scheduled_at", Reason: "outside the owner's declared availability"}
	}

	appt := &Appointment{
		ID:            uuid.New(),
		RequesterID:   in.RequesterID,
		RequesterName: in.RequesterName,
		OwnerID:       in.OwnerID,
		OwnerName:     in.OwnerName,
		Title:         in.Title,
		Description:   in.Description,
		ScheduledAt:   in.ScheduledAt,
		Status:        StatusPending,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
		UpdatedBy:     actor.ID,
	}

	if err := s.appts.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.emit(ctx, Event{
		Type:          EventAppointmentCreated,
		AppointmentID: appt.ID,
		ActorID:       actor.ID,
		To:            StatusPending,
		OccurredAt:    now,
	})

	return appt, nil
}

func validateProposal(in ProposeInput) error {
	if in.OwnerID == uuid.Nil {
		return &ValidationError{Field: "owner_id", Reason: "required"}
	}
	if in.RequesterID == uuid.Nil {
		return &ValidationError{Field: "requester_id", Reason: "required"}
	}
	if in.RequesterID == in.OwnerID {
		return &ValidationError{Field: "requester_id", Reason: "requester and owner must differ"}
	}
	if strings.TrimSpace(in.Title) == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if strings.TrimSpace(in.Description) == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if in.ScheduledAt.IsZero() {
		return &ValidationError{Field: "scheduled_at", Reason: "required"}
	}
	return nil
}

// ChangeStatus applies one lifecycle transition. The write is conditional
// on the version observed by the read; a concurrent change surfaces as
// ErrConflict and the caller re-reads before retrying.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, to Status, actor Actor) (*Appointment, error) {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(appt.Status, to) {
		return nil, fmt.Errorf("%s -> %s: %w", appt.Status, to, ErrInvalidTransition)
	}
	if err := authorizeTransition(appt, to, actor); err != nil {
		return nil, err
	}

	from := appt.Status
	now := s.now()

	updated, err := s.appts.UpdateStatus(ctx, id, to, actor.ID, now, appt.Version)
	if err != nil {
		return nil, err
	}

	s.emit(ctx, Event{
		Type:          EventAppointmentStatusChanged,
		AppointmentID: id,
		ActorID:       actor.ID,
		From:          from,
		To:            to,
		OccurredAt:    now,
	})

	return updated, nil
}

// Remove permanently deletes an appointment. Only its parties or an admin
// may do so; the removal is announced like any other transition so the
// audit trail keeps a record even though no status remains.
func (s *Service) Remove(ctx context.Context, id uuid.UUID, actor Actor) error {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeRemove(appt, actor); err != nil {
		return err
	}

	if err := s.appts.Delete(ctx, id); err != nil {
		return err
	}

	s.emit(ctx, Event{
		Type:          EventAppointmentRemoved,
		AppointmentID: id,
		ActorID:       actor.ID,
		From:          appt.Status,
		OccurredAt:    s.now(),
	})

	return nil
}

// Get returns one appointment, visible to its parties and admins.
func (s *Service) Get(ctx context.Context, id uuid.UUID, actor Actor) (*Appointment, error) {
	appt, err := s.appts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeRead(appt, actor); err != nil {
		return nil, err
	}
	return appt, nil
}

// IsSlotAvailable answers whether an instant falls inside the owner's
// declared availability under the configured policy. Callers use it to
// short-circuit obviously invalid proposals; Propose re-validates.
func (s *Service) IsSlotAvailable(ctx context.Context, ownerID uuid.UUID, at time.Time) (bool, error) {
	slots, err := s.slots.GetSlots(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("load availability: %w", err)
	}
	return evaluateAvailability(s.policy, slots, at), nil
}

// emit publishes a domain event without ever failing the mutation that
// produced it.
func (s *Service) emit(ctx context.Context, ev Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn().
			Err(err).
			Str("event", ev.Type).
			Str("appointment_id", ev.AppointmentID.String()).
			Msg("event publish failed")
	}
}
