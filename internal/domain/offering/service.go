package offering

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/domain/user"
	"github.com/skillswap/skillswap-api/internal/pkg/schedule"
)

// SlotSource reports already-reserved (date, slot) pairs of an offering
type SlotSource interface {
	GetBookedSlots(ctx context.Context, offeringID uuid.UUID) ([]schedule.BookedSlot, error)
}

// Service handles offering business logic
type Service struct {
	repo        Repository
	userRepo    user.Repository
	slots       SlotSource
	horizonDays int
}

// NewService creates offering service
func NewService(repo Repository, userRepo user.Repository, slots SlotSource, horizonDays int) *Service {
	if horizonDays <= 0 {
		horizonDays = schedule.DefaultHorizonDays
	}
	return &Service{repo: repo, userRepo: userRepo, slots: slots, horizonDays: horizonDays}
}

// Create validates and persists a new offering. The provider's name is
// denormalized into the offering at creation time.
func (s *Service) Create(ctx context.Context, providerID uuid.UUID, req *CreateRequest) (*Offering, error) {
	// Struct tags cover ranges and formats; slot duration needs the
	// cross-field check here.
	for _, raw := range req.AvailableTimeSlots {
		slot, err := schedule.ParseSlot(raw)
		if err != nil {
			return nil, ErrInvalidSlot
		}
		if slot.Duration() != req.SessionDuration {
			return nil, ErrInvalidSlot
		}
	}
	if _, err := schedule.NormalizeWeekdays(req.AvailableDays); err != nil {
		return nil, err
	}

	provider, err := s.userRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, user.ErrNotFound
	}

	now := time.Now()
	o := &Offering{
		ID:                 uuid.New(),
		ProviderID:         providerID,
		TeacherName:        provider.Name,
		SkillName:          strings.TrimSpace(req.SkillName),
		Category:           strings.TrimSpace(req.Category),
		Description:        strings.TrimSpace(req.Description),
		ExperienceLevel:    req.ExperienceLevel,
		Prerequisites:      strings.TrimSpace(req.Prerequisites),
		CreditsPerSession:  req.CreditsPerSession,
		SessionDurationMin: req.SessionDuration,
		TotalSessions:      req.TotalSessions,
		TotalCredits:       req.CreditsPerSession * req.TotalSessions,
		AvailableDays:      req.AvailableDays,
		AvailableTimeSlots: req.AvailableTimeSlots,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	log.Info().
		Str("offering_id", o.ID.String()).
		Str("provider_id", providerID.String()).
		Str("skill", o.SkillName).
		Int("total_credits", o.TotalCredits).
		Msg("offering created")

	return o, nil
}

// List returns active offerings with a total count for pagination
func (s *Service) List(ctx context.Context, page, limit int) ([]Offering, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListActive(ctx, limit, (page-1)*limit)
}

// GetDetail returns an offering with its current booked (date, slot) pairs
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (*Offering, []schedule.BookedSlot, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if o == nil {
		return nil, nil, ErrNotFound
	}

	booked, err := s.slots.GetBookedSlots(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return o, booked, nil
}

// GetAvailability computes per-slot bookable dates within the horizon
func (s *Service) GetAvailability(ctx context.Context, id uuid.UUID) (*AvailabilityResponse, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNotFound
	}
	if !o.IsActive {
		return nil, ErrInactive
	}

	booked, err := s.slots.GetBookedSlots(ctx, id)
	if err != nil {
		return nil, err
	}

	dates, err := schedule.AvailableDates(o.AvailableDays, o.AvailableTimeSlots, booked, time.Now(), s.horizonDays)
	if err != nil {
		return nil, err
	}

	resp := &AvailabilityResponse{
		OfferingID:  o.ID,
		HorizonDays: s.horizonDays,
		Slots:       make([]SlotAvailability, 0, len(o.AvailableTimeSlots)),
	}
	for _, raw := range o.AvailableTimeSlots {
		slot, err := schedule.ParseSlot(raw)
		if err != nil {
			return nil, err
		}
		formatted := make([]string, 0, len(dates[raw]))
		for _, d := range dates[raw] {
			formatted = append(formatted, d.Format("2006-01-02"))
		}
		resp.Slots = append(resp.Slots, SlotAvailability{
			TimeSlot: raw,
			Label:    slot.Label(),
			Dates:    formatted,
		})
	}
	return resp, nil
}

// Deactivate takes an offering off the marketplace. Owner only; existing
// confirmed bookings are unaffected.
func (s *Service) Deactivate(ctx context.Context, id, requesterID uuid.UUID) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if o == nil {
		return ErrNotFound
	}
	if o.ProviderID != requesterID {
		return ErrNotOwner
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}

	log.Info().
		Str("offering_id", id.String()).
		Str("provider_id", requesterID.String()).
		Msg("offering deactivated")
	return nil
}
