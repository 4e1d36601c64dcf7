package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campusbook/teacher-booking/internal/booking"
)

type ProposeAppointmentRequest struct {
	OwnerID     string `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	// RequesterID/RequesterName are only honored when an owner or admin
	// books on a requester's behalf; students always book as themselves.
	RequesterID   string `json:"requester_id,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ScheduledAt   string `json:"scheduled_at"` // RFC 3339
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	RequesterID   uuid.UUID `json:"requester_id"`
	RequesterName string    `json:"requester_name"`
	OwnerID       uuid.UUID `json:"owner_id"`
	OwnerName     string    `json:"owner_name"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	UpdatedBy     uuid.UUID `json:"updated_by"`
}

func toAppointmentResponse(a *booking.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		RequesterID:   a.RequesterID,
		RequesterName: a.RequesterName,
		OwnerID:       a.OwnerID,
		OwnerName:     a.OwnerName,
		Title:         a.Title,
		Description:   a.Description,
		ScheduledAt:   a.ScheduledAt,
		Status:        string(a.Status),
		Version:       a.Version,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		UpdatedBy:     a.UpdatedBy,
	}
}

type AvailabilityResponse struct {
	OwnerID   uuid.UUID `json:"owner_id"`
	At        time.Time `json:"at"`
	Available bool      `json:"available"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}
