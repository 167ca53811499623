package user

import (
	"time"

	"github.com/google/uuid"
)

// Status represents user lifecycle status (matches user_status enum)
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBanned   Status = "banned"
)

// User represents a member account. Accounts are never deleted, only
// deactivated; the credit balance lives in the credit ledger, not here.
type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`

	TrustScore             int `db:"trust_score"`
	TotalSessionsCompleted int `db:"total_sessions_completed"`

	Status Status `db:"status"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsActive returns true if the account may authenticate and transact
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsBanned returns true if the account is banned
func (u *User) IsBanned() bool {
	return u.Status == StatusBanned
}
