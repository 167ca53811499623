package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/domain/credit"
	"github.com/skillswap/skillswap-api/internal/domain/user"
	"github.com/skillswap/skillswap-api/internal/pkg/schedule"
)

// Repository persists bookings. The write paths compose the credit ledger
// inside the same transaction so that money and slot claims commit or roll
// back together.
type Repository struct {
	db         *sqlx.DB
	creditRepo *credit.Repository
	userRepo   user.Repository
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB, creditRepo *credit.Repository, userRepo user.Repository) *Repository {
	return &Repository{db: db, creditRepo: creditRepo, userRepo: userRepo}
}

const bookingSelectColumns = `
	id, offering_id, requester_id, provider_id, time_slot, session_dates,
	last_session_date, total_sessions_booked, credits_used, status,
	created_at, updated_at
`

// CreateConfirmed atomically debits the requester, re-checks the
// per-requester session cap, claims the (slot, date) pairs and records the
// booking. The wallet row lock taken by the debit serializes concurrent
// submissions from the same requester, which makes the in-transaction cap
// recount safe; concurrent claims on the same dates are resolved by the
// unique index on booking_slot_dates.
func (r *Repository) CreateConfirmed(ctx context.Context, b *Booking, sessionCap int) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.creditRepo.DebitTx(ctx, tx, b.RequesterID, b.CreditsUsed, b.ReferenceID(), "booking debit: "+b.OfferingID.String()); err != nil {
		return err
	}

	var alreadyBooked int
	if err := tx.GetContext(ctx, &alreadyBooked, `
		SELECT COALESCE(SUM(total_sessions_booked), 0)
		FROM bookings
		WHERE offering_id = $1 AND requester_id = $2 AND status <> 'CANCELLED'
	`, b.OfferingID, b.RequesterID); err != nil {
		return err
	}
	if alreadyBooked+b.TotalSessionsBooked > sessionCap {
		return ErrLimitExceeded
	}

	for _, raw := range b.SessionDates {
		date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO booking_slot_dates (booking_id, offering_id, time_slot, session_date)
			VALUES ($1, $2, $3, $4)
		`, b.ID, b.OfferingID, b.TimeSlot, date); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				return ErrSlotTaken
			}
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (
			id, offering_id, requester_id, provider_id, time_slot, session_dates,
			last_session_date, total_sessions_booked, credits_used, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		b.ID, b.OfferingID, b.RequesterID, b.ProviderID, b.TimeSlot, b.SessionDates,
		b.LastSessionDate, b.TotalSessionsBooked, b.CreditsUsed, b.Status,
		b.CreatedAt, b.UpdatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT ` + bookingSelectColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *Repository) ListByRequester(ctx context.Context, requesterID uuid.UUID) ([]Booking, error) {
	query := `
		SELECT ` + bookingSelectColumns + `
		FROM bookings
		WHERE requester_id = $1
		ORDER BY created_at DESC
	`
	bookings := []Booking{}
	err := r.db.SelectContext(ctx, &bookings, query, requesterID)
	return bookings, err
}

// GetBookedSlots returns the live (date, slot) claims of an offering.
// Claim rows exist only while a booking is CONFIRMED.
func (r *Repository) GetBookedSlots(ctx context.Context, offeringID uuid.UUID) ([]schedule.BookedSlot, error) {
	rows := []struct {
		SessionDate time.Time `db:"session_date"`
		TimeSlot    string    `db:"time_slot"`
	}{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT session_date, time_slot
		FROM booking_slot_dates
		WHERE offering_id = $1
		ORDER BY session_date
	`, offeringID)
	if err != nil {
		return nil, err
	}

	booked := make([]schedule.BookedSlot, 0, len(rows))
	for _, row := range rows {
		booked = append(booked, schedule.BookedSlot{Date: row.SessionDate, TimeSlot: row.TimeSlot})
	}
	return booked, nil
}

// Cancel atomically flips a CONFIRMED booking to CANCELLED, releases its
// slot claims and refunds the requester. The refund reuses the booking's
// ledger reference, so a retried cancel is a no-op.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var b Booking
	err = tx.GetContext(ctx, &b, `SELECT `+bookingSelectColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if b.Status != StatusConfirmed {
		return ErrNotCancellable
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_slot_dates WHERE booking_id = $1`, id); err != nil {
		return err
	}

	if err := r.creditRepo.RefundTx(ctx, tx, b.RequesterID, b.CreditsUsed, b.ReferenceID(), "booking cancelled"); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status = 'CANCELLED', updated_at = now() WHERE id = $1
	`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// SweepCompleted promotes CONFIRMED bookings whose last session date has
// passed: the provider is credited, both parties' completed-session counts
// advance and the stale slot claims are dropped. Each booking commits in
// its own transaction; SKIP LOCKED lets concurrent sweepers partition the
// work.
func (r *Repository) SweepCompleted(ctx context.Context, now time.Time) (int, error) {
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM bookings
		WHERE status = 'CONFIRMED' AND last_session_date < $1
		ORDER BY last_session_date
	`, schedule.DateKey(now)); err != nil {
		return 0, err
	}

	completed := 0
	for _, id := range ids {
		if err := r.completeOne(ctx, id, now); err != nil {
			log.Error().Err(err).Str("booking_id", id.String()).Msg("failed to complete booking")
			continue
		}
		completed++
	}
	return completed, nil
}

func (r *Repository) completeOne(ctx context.Context, id uuid.UUID, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var b Booking
	err = tx.GetContext(ctx, &b, `
		SELECT `+bookingSelectColumns+` FROM bookings WHERE id = $1 FOR UPDATE SKIP LOCKED
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if b.Status != StatusConfirmed || !b.LastSessionDate.Before(schedule.DateKey(now)) {
		return nil
	}

	if err := r.creditRepo.CreditTx(ctx, tx, b.ProviderID, b.CreditsUsed, b.ReferenceID(), "teaching sessions completed"); err != nil {
		return err
	}

	if err := r.userRepo.IncrementSessionsCompleted(ctx, tx, b.ProviderID, b.TotalSessionsBooked); err != nil {
		return err
	}
	if err := r.userRepo.IncrementSessionsCompleted(ctx, tx, b.RequesterID, b.TotalSessionsBooked); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM booking_slot_dates WHERE booking_id = $1`, id); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status = 'COMPLETED', updated_at = now() WHERE id = $1
	`, id); err != nil {
		return err
	}

	return tx.Commit()
}
