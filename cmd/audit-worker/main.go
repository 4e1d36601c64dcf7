// The audit worker subscribes to the domain-event channel and persists
// each event as an event_logs row. Events are best-effort: a gap in the
// log is acceptable, duplicates are not produced.
package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusbook/teacher-booking/internal/booking"
	"github.com/campusbook/teacher-booking/internal/config"
	"github.com/campusbook/teacher-booking/internal/db"
	redisclient "github.com/campusbook/teacher-booking/internal/redis"
	"github.com/campusbook/teacher-booking/migrations"
	"github.com/campusbook/teacher-booking/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New("dev")
		l.Fatal().Err(err).Msg("config load error")
	}

	log := logger.New(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("audit-worker starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()

	if err := migrations.Apply(rootCtx, pgPool); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing redis")
		}
	}()

	repo := booking.NewPgRepository(pgPool)

	pubsub := rdb.Subscribe(rootCtx, redisclient.EventChannel)
	defer pubsub.Close()
	log.Info().Str("channel", redisclient.EventChannel).Msg("subscribed")

	ch := pubsub.Channel()
	for {
		select {
		case <-rootCtx.Done():
			log.Info().Msg("shutdown signal received, stopping audit worker")
			return
		case msg, ok := <-ch:
			if !ok {
				log.Info().Msg("subscription closed")
				return
			}
			handleMessage(rootCtx, log, repo, []byte(msg.Payload))
		}
	}
}

func handleMessage(ctx context.Context, log zerolog.Logger, repo *booking.PgRepository, payload []byte) {
	var ev booking.Event
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Warn().Err(err).Msg("undecodable event payload, skipping")
		return
	}

	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := repo.InsertEvent(insertCtx, booking.EventLog{
		EventType:     ev.Type,
		AppointmentID: ev.AppointmentID,
		ActorID:       ev.ActorID,
		Payload:       payload,
		CreatedAt:     ev.OccurredAt,
	})
	if err != nil {
		log.Warn().
			Err(err).
			Str("event", ev.Type).
			Str("appointment_id", ev.AppointmentID.String()).
			Msg("failed to persist event log")
		return
	}

	log.Debug().
		Str("event", ev.Type).
		Str("appointment_id", ev.AppointmentID.String()).
		Msg("event logged")
}
