package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campusbook/teacher-booking/internal/booking"
	"github.com/campusbook/teacher-booking/internal/identity"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if seen == "" {
			t.Fatal("expected a request id in context")
		}
		if rec.Header().Get("X-Request-ID") != seen {
			t.Fatal("expected request id echoed in response header")
		}
	})

	t.Run("preserves a provided id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "req-123")

		rec := httptest.NewRecorder()
		RequestIDMiddleware(next).ServeHTTP(rec, req)

		if seen != "req-123" {
			t.Fatalf("expected req-123, got %q", seen)
		}
	})
}

func TestAuthMiddleware(t *testing.T) {
	const secret = "test-secret"

	var caller identity.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, _ = identity.FromContext(r.Context())
	})
	handler := AuthMiddleware(secret)(next)

	t.Run("missing token is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointments", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token reaches the handler with identity", func(t *testing.T) {
		id := identity.Identity{ID: uuid.New(), Name: "Ada", Role: booking.RoleTeacher, Approved: true}
		tok, err := identity.SignJWT(secret, id, time.Hour)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
		req.Header.Set("Authorization", "Bearer "+tok)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if caller != id {
			t.Fatalf("expected identity %+v in context, got %+v", id, caller)
		}
	})
}
