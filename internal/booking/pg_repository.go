package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository implements AppointmentStore and SlotStore over Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const appointmentColumns = `id, requester_id, requester_name, owner_id, owner_name,
	title, description, scheduled_at, status, version, created_at, updated_at, updated_by`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var status string

	err := row.Scan(
		&a.ID,
		&a.RequesterID,
		&a.RequesterName,
		&a.OwnerID,
		&a.OwnerName,
		&a.Title,
		&a.Description,
		&a.ScheduledAt,
		&status,
		&a.Version,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	a.Status, err = ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("stored appointment %s: %w", a.ID, err)
	}
	return &a, nil
}

func (r *PgRepository) Create(ctx context.Context, appt *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		appt.ID,
		appt.RequesterID,
		appt.RequesterName,
		appt.OwnerID,
		appt.OwnerName,
		appt.Title,
		appt.Description,
		appt.ScheduledAt,
		string(appt.Status),
		appt.Version,
		appt.CreatedAt,
		appt.UpdatedAt,
		appt.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

func (r *PgRepository) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1
	`, id)
	return scanAppointment(row)
}

// UpdateStatus is the conditional write at the heart of the concurrency
// model: the row must still carry the version the caller read. No rows
// updated means either a lost race (ErrConflict) or a vanished record
// (ErrNotFound); a follow-up existence check tells them apart.
func (r *PgRepository) UpdateStatus(ctx context.Context, id uuid.UUID, to Status, actor uuid.UUID, at time.Time, expectedVersion int) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE appointments
		SET status = $2,
		    version = version + 1,
		    updated_at = $3,
		    updated_by = $4
		WHERE id = $1
		  AND version = $5
		RETURNING `+appointmentColumns+`
	`, id, string(to), at, actor, expectedVersion)

	appt, err := scanAppointment(row)
	if err == nil {
		return appt, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	var exists bool
	if checkErr := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)
	`, id).Scan(&exists); checkErr != nil {
		return nil, fmt.Errorf("check appointment after stale update: %w", checkErr)
	}
	if exists {
		return nil, ErrConflict
	}
	return nil, ErrNotFound
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List serves every filter shape; Postgres can always sort, so the
// ErrSortUnsupported escape hatch is never taken by this implementation.
func (r *PgRepository) List(ctx context.Context, f ListFilter) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	var args []any
	var where []string

	switch f.Role {
	case RoleStudent:
		args = append(args, f.ParticipantID)
		where = append(where, fmt.Sprintf("requester_id = $%d", len(args)))
	case RoleTeacher:
		args = append(args, f.ParticipantID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	case RoleAdmin:
		// Admins list across all appointments.
	default:
		return nil, fmt.Errorf("list appointments: unsupported role %q", f.Role)
	}

	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	if f.Sorted {
		query += " ORDER BY scheduled_at DESC, created_at DESC, id"
	}
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var result []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return result, nil
}

func (r *PgRepository) GetSlots(ctx context.Context, ownerID uuid.UUID) ([]AvailabilitySlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, is_recurring, day_of_week, slot_date, start_minutes, end_minutes
		FROM availability_slots
		WHERE owner_id = $1
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	defer rows.Close()

	var slots []AvailabilitySlot
	for rows.Next() {
		var s AvailabilitySlot
		var dayOfWeek *int16
		var slotDate *time.Time
		var start, end int

		err := rows.Scan(&s.ID, &s.OwnerID, &s.Recurring, &dayOfWeek, &slotDate, &start, &end)
		if err != nil {
			return nil, err
		}

		if dayOfWeek != nil {
			s.Weekday = time.Weekday(*dayOfWeek)
		}
		if slotDate != nil {
			s.Date = *slotDate
		}
		s.Start = TimeOfDay(start)
		s.End = TimeOfDay(end)
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list availability slots: %w", err)
	}
	return slots, nil
}

func (r *PgRepository) InsertEvent(ctx context.Context, ev EventLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO event_logs (event_type, appointment_id, actor_id, payload, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`, ev.EventType, ev.AppointmentID, ev.ActorID, ev.Payload, nullableTime(ev.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}
	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
