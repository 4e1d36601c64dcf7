// Seeds local development data: teachers with availability slots, and a
// mixed-status appointment population against them. Writes directly to
// Postgres; availability CRUD is otherwise outside this service.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbook/teacher-booking/internal/booking"
	"github.com/campusbook/teacher-booking/internal/db"
	"github.com/campusbook/teacher-booking/migrations"
)

type seedUser struct {
	id   uuid.UUID
	name string
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := migrations.Apply(context.Background(), pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	teachers := makeUsers(10)
	students := makeUsers(40)

	if err := seedSlots(context.Background(), pool, teachers); err != nil {
		log.Fatalf("seed availability slots: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, teachers, students, 200); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func makeUsers(count int) []seedUser {
	users := make([]seedUser, count)
	for i := range users {
		users[i] = seedUser{id: uuid.New(), name: gofakeit.Name()}
	}
	return users
}

func seedSlots(ctx context.Context, pool *pgxpool.Pool, teachers []seedUser) error {
	log.Printf("seeding availability for %d teachers", len(teachers))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range teachers {
		// A few weekly office-hour windows per teacher.
		for i := 0; i < gofakeit.Number(2, 4); i++ {
			day := gofakeit.Number(1, 5) // Monday..Friday
			startHour := gofakeit.Number(8, 15)
			start := startHour * 60
			end := start + 60*gofakeit.Number(1, 3)
			if end > 17*60 {
				end = 17 * 60
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO availability_slots (id, owner_id, is_recurring, day_of_week, slot_date, start_minutes, end_minutes)
				VALUES ($1, $2, TRUE, $3, NULL, $4, $5)
			`, uuid.New(), t.id, day, start, end)
			if err != nil {
				return err
			}
		}

		// Occasionally a one-off extra day.
		if gofakeit.Bool() {
			date := time.Now().AddDate(0, 0, gofakeit.Number(1, 21))
			_, err := tx.Exec(ctx, `
				INSERT INTO availability_slots (id, owner_id, is_recurring, day_of_week, slot_date, start_minutes, end_minutes)
				VALUES ($1, $2, FALSE, NULL, $3, $4, $5)
			`, uuid.New(), t.id, date, 10*60, 12*60)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("availability slots seeded")
	return nil
}

func seedAppointments(ctx context.Context, pool *pgxpool.Pool, teachers, students []seedUser, count int) error {
	log.Printf("seeding %d appointments", count)

	statuses := []booking.Status{
		booking.StatusPending,
		booking.StatusApproved,
		booking.StatusCancelled,
		booking.StatusCompleted,
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		teacher := teachers[gofakeit.Number(0, len(teachers)-1)]
		student := students[gofakeit.Number(0, len(students)-1)]
		status := statuses[gofakeit.Number(0, len(statuses)-1)]

		scheduledAt := time.Now().AddDate(0, 0, gofakeit.Number(-30, 30)).
			Truncate(time.Hour).Add(time.Duration(gofakeit.Number(9, 16)) * time.Hour)
		createdAt := scheduledAt.AddDate(0, 0, -gofakeit.Number(1, 14))

		version := 1
		updatedBy := student.id
		if status != booking.StatusPending {
			version = 2
			updatedBy = teacher.id
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO appointments (id, requester_id, requester_name, owner_id, owner_name,
				title, description, scheduled_at, status, version, created_at, updated_at, updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		`,
			uuid.New(), student.id, student.name, teacher.id, teacher.name,
			gofakeit.Sentence(4), gofakeit.Sentence(12), scheduledAt,
			string(status), version, createdAt, createdAt, updatedBy,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("appointments seeded")
	return nil
}
