package credit

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType defines supported ledger transaction types
type TransactionType string

const (
	TransactionTypeDebit  TransactionType = "debit"
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeRefund TransactionType = "refund"
	TransactionTypeGrant  TransactionType = "grant"
)

// Account holds a user's running credit balance. Balance is mutated
// only through ledger transactions and never goes negative.
type Account struct {
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Balance   int       `db:"balance" json:"balance"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is an append-only ledger row. Every debit or credit is
// attributable to a booking (or a refund of one) via ReferenceID.
type Transaction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	Amount      int             `db:"amount" json:"amount"`
	Type        TransactionType `db:"type" json:"type"`
	ReferenceID *string         `db:"reference_id" json:"reference_id,omitempty"`
	Description string          `db:"description" json:"description"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
