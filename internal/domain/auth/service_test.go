package auth_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap-api/internal/domain/auth"
	"github.com/skillswap/skillswap-api/internal/domain/user"
	"github.com/skillswap/skillswap-api/internal/pkg/jwt"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*user.User
	byEmail map[string]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[u.Email]; ok {
		return user.ErrDuplicateEmail
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.byEmail[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status user.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) IncrementSessionsCompleted(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.TotalSessionsCompleted += delta
	}
	return nil
}

type fakeGranter struct {
	mu     sync.Mutex
	grants map[uuid.UUID]int
}

func newFakeGranter() *fakeGranter {
	return &fakeGranter{grants: make(map[uuid.UUID]int)}
}

func (g *fakeGranter) Grant(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.grants[userID] += amount
	return nil
}

func newTestService(repo user.Repository, granter auth.CreditGranter) *auth.Service {
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return auth.NewService(repo, jwtSvc, nil, granter, 10)
}

func TestRegisterGrantsWelcomeCredits(t *testing.T) {
	repo := newFakeUserRepo()
	granter := newFakeGranter()
	svc := newTestService(repo, granter)

	resp, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}
	if resp.User.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
	if granter.grants[resp.User.ID] != 10 {
		t.Fatalf("expected welcome grant of 10, got %d", granter.grants[resp.User.ID])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeGranter())

	req := &auth.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "hunter22222"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	_, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Name: "Bob Again", Email: "BOB@example.com", Password: "hunter22222",
	})
	if !errors.Is(err, auth.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeGranter())

	if _, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Name: "Carol", Email: "carol@example.com", Password: "secret-pass",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), &auth.LoginRequest{
		Email: "carol@example.com", Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.User.Name != "Carol" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}

	_, err = svc.Login(context.Background(), &auth.LoginRequest{
		Email: "carol@example.com", Password: "wrong-pass",
	})
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	_, err = svc.Login(context.Background(), &auth.LoginRequest{
		Email: "nobody@example.com", Password: "whatever123",
	})
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginBannedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeGranter())

	resp, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Name: "Dave", Email: "dave@example.com", Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := repo.UpdateStatus(context.Background(), resp.User.ID, user.StatusBanned); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	_, err = svc.Login(context.Background(), &auth.LoginRequest{
		Email: "dave@example.com", Password: "secret-pass",
	})
	if !errors.Is(err, auth.ErrUserBanned) {
		t.Fatalf("expected ErrUserBanned, got %v", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeGranter())

	resp, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Name: "Erin", Email: "erin@example.com", Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	u, err := svc.GetCurrentUser(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("get current user failed: %v", err)
	}
	if u.Email != "erin@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	_, err = svc.GetCurrentUser(context.Background(), uuid.New())
	if !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRefreshWithoutRedis(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, newFakeGranter())

	resp, err := svc.Register(context.Background(), &auth.RegisterRequest{
		Name: "Frank", Email: "frank@example.com", Password: "secret-pass",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Refresh requires the token store; with Redis disabled every refresh is rejected.
	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	if !errors.Is(err, auth.ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}
