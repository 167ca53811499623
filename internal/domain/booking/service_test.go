package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/domain/booking"
	"github.com/skillswap/skillswap-api/internal/domain/offering"
)

type fakeOfferingRepo struct {
	byID map[uuid.UUID]*offering.Offering
}

func (r *fakeOfferingRepo) Create(ctx context.Context, o *offering.Offering) error { return nil }
func (r *fakeOfferingRepo) GetByID(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	return r.byID[id], nil
}
func (r *fakeOfferingRepo) ListActive(ctx context.Context, limit, offset int) ([]offering.Offering, int, error) {
	return nil, 0, nil
}
func (r *fakeOfferingRepo) Deactivate(ctx context.Context, id uuid.UUID) error { return nil }

// validation-only service: the repository is never reached on rejection paths
func newValidationService(o *offering.Offering) *booking.Service {
	repo := booking.NewRepository(nil, nil, nil)
	offerings := &fakeOfferingRepo{byID: map[uuid.UUID]*offering.Offering{}}
	if o != nil {
		offerings.byID[o.ID] = o
	}
	return booking.NewService(repo, offerings, 30)
}

func activeOffering() *offering.Offering {
	return &offering.Offering{
		ID:                 uuid.New(),
		ProviderID:         uuid.New(),
		SkillName:          "Guitar Basics",
		CreditsPerSession:  3,
		SessionDurationMin: 60,
		TotalSessions:      8,
		AvailableDays:      []string{"Mon", "Wed"},
		AvailableTimeSlots: []string{"1080-1140"},
		IsActive:           true,
	}
}

// nextWeekday returns the next future date with the given weekday, formatted
func nextWeekday(day time.Weekday) string {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func TestCreateUnknownOffering(t *testing.T) {
	svc := newValidationService(nil)

	_, err := svc.Create(context.Background(), uuid.New(), &booking.CreateRequest{
		OfferingID:   uuid.New(),
		SessionDates: []string{nextWeekday(time.Monday)},
		TimeSlot:     "1080-1140",
	})
	if !errors.Is(err, offering.ErrNotFound) {
		t.Fatalf("expected offering.ErrNotFound, got %v", err)
	}
}

func TestCreateInactiveOffering(t *testing.T) {
	o := activeOffering()
	o.IsActive = false
	svc := newValidationService(o)

	_, err := svc.Create(context.Background(), uuid.New(), &booking.CreateRequest{
		OfferingID:   o.ID,
		SessionDates: []string{nextWeekday(time.Monday)},
		TimeSlot:     "1080-1140",
	})
	if !errors.Is(err, offering.ErrInactive) {
		t.Fatalf("expected offering.ErrInactive, got %v", err)
	}
}

func TestCreateSlotNotOffered(t *testing.T) {
	o := activeOffering()
	svc := newValidationService(o)

	_, err := svc.Create(context.Background(), uuid.New(), &booking.CreateRequest{
		OfferingID:   o.ID,
		SessionDates: []string{nextWeekday(time.Monday)},
		TimeSlot:     "600-660",
	})
	if !errors.Is(err, booking.ErrSlotNotOffered) {
		t.Fatalf("expected ErrSlotNotOffered, got %v", err)
	}
}

func TestCreateWrongWeekday(t *testing.T) {
	o := activeOffering() // Mon and Wed only
	svc := newValidationService(o)

	_, err := svc.Create(context.Background(), uuid.New(), &booking.CreateRequest{
		OfferingID:   o.ID,
		SessionDates: []string{nextWeekday(time.Friday)},
		TimeSlot:     "1080-1140",
	})
	if !errors.Is(err, booking.ErrDateUnavailable) {
		t.Fatalf("expected ErrDateUnavailable, got %v", err)
	}
}

func TestCreatePastDate(t *testing.T) {
	o := activeOffering()
	svc := newValidationService(o)

	past := time.Now().UTC().AddDate(0, 0, -14)
	for past.Weekday() != time.Monday {
		past = past.AddDate(0, 0, -1)
	}

	_, err := svc.Create(context.Background(), uuid.New(), &booking.CreateRequest{
		OfferingID:   o.ID,
		SessionDates: []string{past.Format("2006-01-02")},
		TimeSlot:     "1080-1140",
	})
	if !errors.Is(err, booking.ErrDateUnavailable) {
		t.Fatalf("expected ErrDateUnavailable for past date, got %v", err)
	}
}

func TestCreateBeyondHorizon(t *testing.T) {
	o := activeOffering()
	svc := newValidationService(o)

	far := time.Now().UTC().AddDate(0, 0, 35)
	for far.Weekday() != time.Monday {
		far = far.AddDate(0, 0, 1)
	}

	_, err := svc.Create(context.Background(), uuid.New(), &booking.CreateRequest{
		OfferingID:   o.ID,
		SessionDates: []string{far.Format("2006-01-02")},
		TimeSlot:     "1080-1140",
	})
	if !errors.Is(err, booking.ErrDateUnavailable) {
		t.Fatalf("expected ErrDateUnavailable beyond horizon, got %v", err)
	}
}

func TestCreateDuplicateDates(t *testing.T) {
	o := activeOffering()
	svc := newValidationService(o)

	date := nextWeekday(time.Monday)
	_, err := svc.Create(context.Background(), uuid.New(), &booking.CreateRequest{
		OfferingID:   o.ID,
		SessionDates: []string{date, date},
		TimeSlot:     "1080-1140",
	})
	if !errors.Is(err, booking.ErrDuplicateDates) {
		t.Fatalf("expected ErrDuplicateDates, got %v", err)
	}
}
