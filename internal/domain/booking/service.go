package booking

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/domain/offering"
	"github.com/skillswap/skillswap-api/internal/pkg/schedule"
)

// Service handles booking business logic
type Service struct {
	repo         *Repository
	offeringRepo offering.Repository
	horizonDays  int
}

// NewService creates booking service
func NewService(repo *Repository, offeringRepo offering.Repository, horizonDays int) *Service {
	if horizonDays <= 0 {
		horizonDays = schedule.DefaultHorizonDays
	}
	return &Service{repo: repo, offeringRepo: offeringRepo, horizonDays: horizonDays}
}

// Create books session dates in one time slot of an offering. Checks run
// against a fresh read of the offering; the debit, the session-cap recount
// and the slot claims happen in one transaction so a failed booking leaves
// no trace.
func (s *Service) Create(ctx context.Context, requesterID uuid.UUID, req *CreateRequest) (*Booking, error) {
	o, err := s.offeringRepo.GetByID(ctx, req.OfferingID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, offering.ErrNotFound
	}
	if !o.IsActive {
		return nil, offering.ErrInactive
	}

	if !containsSlot(o.AvailableTimeSlots, req.TimeSlot) {
		return nil, ErrSlotNotOffered
	}

	days, err := schedule.NormalizeWeekdays(o.AvailableDays)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dates, err := parseDistinctDates(req.SessionDates)
	if err != nil {
		return nil, err
	}
	for _, d := range dates {
		if !schedule.IsBookable(d, days, now, s.horizonDays) {
			return nil, ErrDateUnavailable
		}
	}

	b := &Booking{
		ID:                  uuid.New(),
		OfferingID:          o.ID,
		RequesterID:         requesterID,
		ProviderID:          o.ProviderID,
		TimeSlot:            req.TimeSlot,
		SessionDates:        formatDates(dates),
		LastSessionDate:     dates[len(dates)-1],
		TotalSessionsBooked: len(dates),
		CreditsUsed:         o.CreditsPerSession * len(dates),
		Status:              StatusConfirmed,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.repo.CreateConfirmed(ctx, b, o.TotalSessions); err != nil {
		return nil, err
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("offering_id", o.ID.String()).
		Str("requester_id", requesterID.String()).
		Int("sessions", b.TotalSessionsBooked).
		Int("credits_used", b.CreditsUsed).
		Msg("booking confirmed")

	return b, nil
}

// ListMine returns the requester's bookings
func (s *Service) ListMine(ctx context.Context, requesterID uuid.UUID) ([]Booking, error) {
	return s.repo.ListByRequester(ctx, requesterID)
}

// Cancel cancels a confirmed booking. Allowed for the requester or the
// offering's provider; the requester is refunded in full.
func (s *Service) Cancel(ctx context.Context, bookingID, userID uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	if b.RequesterID != userID && b.ProviderID != userID {
		return ErrNotParticipant
	}

	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		return err
	}

	log.Info().
		Str("booking_id", bookingID.String()).
		Str("cancelled_by", userID.String()).
		Int("credits_refunded", b.CreditsUsed).
		Msg("booking cancelled")
	return nil
}

// SweepCompleted promotes past bookings to COMPLETED and pays providers
func (s *Service) SweepCompleted(ctx context.Context) (int, error) {
	return s.repo.SweepCompleted(ctx, time.Now())
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// parseDistinctDates parses, deduplicate-checks and sorts session dates
func parseDistinctDates(raw []string) ([]time.Time, error) {
	seen := make(map[string]bool, len(raw))
	dates := make([]time.Time, 0, len(raw))
	for _, r := range raw {
		d, err := time.ParseInLocation("2006-01-02", r, time.UTC)
		if err != nil {
			return nil, ErrDateUnavailable
		}
		key := d.Format("2006-01-02")
		if seen[key] {
			return nil, ErrDuplicateDates
		}
		seen[key] = true
		dates = append(dates, schedule.DateKey(d))
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func formatDates(dates []time.Time) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}
