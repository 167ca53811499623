package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/config"
	"github.com/skillswap/skillswap-api/internal/domain/booking"
	"github.com/skillswap/skillswap-api/internal/domain/credit"
	"github.com/skillswap/skillswap-api/internal/domain/offering"
	"github.com/skillswap/skillswap-api/internal/domain/user"
	"github.com/skillswap/skillswap-api/internal/pkg/database"
)

// The sweeper promotes confirmed bookings whose last session date has
// passed: it credits the provider and advances completed-session counters.
// It runs separately from the API so request latency never pays for it.
func main() {
	cfg := config.Load()
	setupLogger(cfg)

	log.Info().
		Str("env", cfg.Env).
		Dur("interval", cfg.SweepInterval).
		Msg("Starting SkillSwap completion sweeper")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	userRepo := user.NewRepository(db)
	creditRepo := credit.NewRepository(db)
	offeringRepo := offering.NewRepository(db)
	bookingRepo := booking.NewRepository(db, creditRepo, userRepo)
	bookingService := booking.NewService(bookingRepo, offeringRepo, cfg.BookingHorizonDays)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweep(ctx, bookingService)

	ticker := time.NewTicker(cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Sweeper exited properly")
			return
		case <-ticker.C:
			sweep(ctx, bookingService)
		}
	}
}

func sweep(ctx context.Context, svc *booking.Service) {
	start := time.Now()
	completed, err := svc.SweepCompleted(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Completion sweep failed")
		return
	}
	log.Info().
		Int("completed", completed).
		Dur("duration", time.Since(start)).
		Msg("Completion sweep finished")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		})
	}
}
