package identity

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusbook/teacher-booking/internal/booking"
)

type Claims struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Approved bool   `json:"approved"`
	jwt.RegisteredClaims
}

// SignJWT mints a bearer token for the given identity. Used by tooling;
// in production the auth collaborator issues these.
func SignJWT(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Name:     id.Name,
		Role:     string(id.Role),
		Approved: id.Approved,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString([]byte(secret))
}

// ParseJWT verifies a bearer token and returns the identity it attests.
func ParseJWT(secret, token string) (Identity, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	uid, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid subject claim: %w", err)
	}
	role, err := booking.ParseRole(claims.Role)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid role claim: %w", err)
	}

	return Identity{
		ID:       uid,
		Name:     claims.Name,
		Role:     role,
		Approved: claims.Approved,
	}, nil
}
