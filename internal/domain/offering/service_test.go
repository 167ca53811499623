package offering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap-api/internal/domain/offering"
	"github.com/skillswap/skillswap-api/internal/domain/user"
	"github.com/skillswap/skillswap-api/internal/pkg/schedule"
)

type fakeRepo struct {
	byID map[uuid.UUID]*offering.Offering
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[uuid.UUID]*offering.Offering)}
}

func (r *fakeRepo) Create(ctx context.Context, o *offering.Offering) error {
	cp := *o
	r.byID[o.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*offering.Offering, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeRepo) ListActive(ctx context.Context, limit, offset int) ([]offering.Offering, int, error) {
	var out []offering.Offering
	for _, o := range r.byID {
		if o.IsActive {
			out = append(out, *o)
		}
	}
	return out, len(out), nil
}

func (r *fakeRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	o, ok := r.byID[id]
	if !ok {
		return offering.ErrNotFound
	}
	o.IsActive = false
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status user.Status) error {
	return nil
}
func (r *fakeUserRepo) IncrementSessionsCompleted(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, delta int) error {
	return nil
}

type fakeSlotSource struct {
	booked []schedule.BookedSlot
}

func (s *fakeSlotSource) GetBookedSlots(ctx context.Context, offeringID uuid.UUID) ([]schedule.BookedSlot, error) {
	return s.booked, nil
}

func newTestService(repo offering.Repository, slots *fakeSlotSource, providers ...*user.User) (*offering.Service, uuid.UUID) {
	users := make(map[uuid.UUID]*user.User)
	var providerID uuid.UUID
	for _, p := range providers {
		users[p.ID] = p
		providerID = p.ID
	}
	return offering.NewService(repo, &fakeUserRepo{users: users}, slots, 30), providerID
}

func testProvider(name string) *user.User {
	return &user.User{ID: uuid.New(), Name: name, Status: user.StatusActive}
}

func validCreateRequest() *offering.CreateRequest {
	return &offering.CreateRequest{
		SkillName:          "Guitar Basics",
		Description:        "Learn chords, strumming and basic music theory from scratch.",
		ExperienceLevel:    "Intermediate",
		CreditsPerSession:  3,
		SessionDuration:    60,
		TotalSessions:      8,
		AvailableDays:      []string{"Mon", "Wednesday"},
		AvailableTimeSlots: []string{"1080-1140"},
	}
}

func TestCreateComputesTotalCreditsAndTeacherName(t *testing.T) {
	provider := testProvider("Grace Hopper")
	svc, providerID := newTestService(newFakeRepo(), &fakeSlotSource{}, provider)

	o, err := svc.Create(context.Background(), providerID, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if o.TotalCredits != 24 {
		t.Fatalf("expected totalCredits 24, got %d", o.TotalCredits)
	}
	if o.TeacherName != "Grace Hopper" {
		t.Fatalf("expected denormalized teacher name, got %q", o.TeacherName)
	}
	if !o.IsActive {
		t.Fatal("expected new offering to be active")
	}
}

func TestCreateRejectsSlotDurationMismatch(t *testing.T) {
	provider := testProvider("Ada")
	svc, providerID := newTestService(newFakeRepo(), &fakeSlotSource{}, provider)

	req := validCreateRequest()
	req.AvailableTimeSlots = []string{"1080-1170"} // 90 min slot for a 60 min session

	_, err := svc.Create(context.Background(), providerID, req)
	if !errors.Is(err, offering.ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
}

func TestCreateUnknownProvider(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), &fakeSlotSource{})

	_, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestDeactivateOwnerOnly(t *testing.T) {
	provider := testProvider("Owner")
	repo := newFakeRepo()
	svc, providerID := newTestService(repo, &fakeSlotSource{}, provider)

	o, err := svc.Create(context.Background(), providerID, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Deactivate(context.Background(), o.ID, uuid.New()); !errors.Is(err, offering.ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	if err := svc.Deactivate(context.Background(), o.ID, providerID); err != nil {
		t.Fatalf("owner deactivate failed: %v", err)
	}

	stored, _ := repo.GetByID(context.Background(), o.ID)
	if stored.IsActive {
		t.Fatal("expected offering to be inactive")
	}
}

func TestGetAvailabilityExcludesBookedDates(t *testing.T) {
	provider := testProvider("Teacher")
	repo := newFakeRepo()

	// Book next Monday's 18:00 slot.
	nextMonday := schedule.DateKey(time.Now())
	for nextMonday.Weekday() != time.Monday {
		nextMonday = nextMonday.AddDate(0, 0, 1)
	}
	slots := &fakeSlotSource{booked: []schedule.BookedSlot{
		{Date: nextMonday, TimeSlot: "1080-1140"},
	}}
	svc, providerID := newTestService(repo, slots, provider)

	o, err := svc.Create(context.Background(), providerID, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	availability, err := svc.GetAvailability(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("availability failed: %v", err)
	}
	if len(availability.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(availability.Slots))
	}

	bookedDate := nextMonday.Format("2006-01-02")
	for _, d := range availability.Slots[0].Dates {
		if d == bookedDate {
			t.Fatalf("booked date %s should not be available", bookedDate)
		}
	}
	if availability.Slots[0].Label != "6:00 PM - 7:00 PM" {
		t.Fatalf("unexpected slot label %q", availability.Slots[0].Label)
	}
}

func TestGetAvailabilityInactiveOffering(t *testing.T) {
	provider := testProvider("Teacher")
	repo := newFakeRepo()
	svc, providerID := newTestService(repo, &fakeSlotSource{}, provider)

	o, err := svc.Create(context.Background(), providerID, validCreateRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.Deactivate(context.Background(), o.ID, providerID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err = svc.GetAvailability(context.Background(), o.ID)
	if !errors.Is(err, offering.ErrInactive) {
		t.Fatalf("expected ErrInactive, got %v", err)
	}
}
