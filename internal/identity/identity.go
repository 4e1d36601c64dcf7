// Package identity supplies the caller's attested identity: a stable id,
// a role, and the approval flag for requesters. The booking core trusts
// these values for every authorization decision.
package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/campusbook/teacher-booking/internal/booking"
)

type Identity struct {
	ID       uuid.UUID
	Name     string
	Role     booking.Role
	Approved bool
}

// Actor converts the identity to the domain's actor shape.
func (id Identity) Actor() booking.Actor {
	return booking.Actor{ID: id.ID, Role: id.Role, Approved: id.Approved}
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
