package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campusbook/teacher-booking/internal/booking"
)

func TestJWTRoundTrip(t *testing.T) {
	const secret = "test-secret"

	id := Identity{
		ID:       uuid.New(),
		Name:     "Ada Lovelace",
		Role:     booking.RoleTeacher,
		Approved: true,
	}

	tok, err := SignJWT(secret, id, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := ParseJWT(secret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, id)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	id := Identity{ID: uuid.New(), Name: "X", Role: booking.RoleStudent, Approved: true}

	tok, err := SignJWT("secret-a", id, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("secret-b", tok); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	id := Identity{ID: uuid.New(), Name: "X", Role: booking.RoleStudent}

	tok, err := SignJWT("secret", id, -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("secret", tok); err == nil {
		t.Fatal("expected expiry failure")
	}
}

func TestJWTRejectsUnknownRole(t *testing.T) {
	id := Identity{ID: uuid.New(), Name: "X", Role: booking.Role("superuser")}

	tok, err := SignJWT("secret", id, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT("secret", tok); err == nil {
		t.Fatal("expected role rejection")
	}
}

func TestIdentityContext(t *testing.T) {
	id := Identity{ID: uuid.New(), Name: "X", Role: booking.RoleAdmin}

	ctx := WithIdentity(context.Background(), id)
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected identity in context, got %+v ok=%v", got, ok)
	}

	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("expected no identity in fresh context")
	}
}
