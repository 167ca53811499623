package credit

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) EnsureAccount(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_credits (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}

func (r *Repository) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	if err := r.EnsureAccount(ctx, userID); err != nil {
		return 0, err
	}

	var balance int
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM user_credits WHERE user_id = $1`, userID)
	return balance, err
}

func (r *Repository) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	var txs []Transaction
	err := r.db.SelectContext(ctx, &txs, `
		SELECT id, user_id, amount, type, reference_id, description, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return txs, err
}

func (r *Repository) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// lockAccount takes the per-user row lock that serializes all balance
// mutations for that user within the surrounding transaction.
func (r *Repository) lockAccount(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int, error) {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO user_credits (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return 0, err
	}

	var balance int
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM user_credits WHERE user_id = $1 FOR UPDATE`, userID)
	return balance, err
}

func (r *Repository) getTransactionAmountByRef(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, txType TransactionType, referenceID string) (int, bool, error) {
	if referenceID == "" {
		return 0, false, nil
	}

	var amount int
	err := tx.GetContext(ctx, &amount, `
		SELECT amount
		FROM credit_transactions
		WHERE user_id = $1 AND type = $2 AND reference_id = $3
		LIMIT 1
	`, userID, string(txType), referenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return amount, true, nil
}

func (r *Repository) updateBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, balance int) error {
	_, err := tx.ExecContext(ctx, `UPDATE user_credits SET balance = $1, updated_at = now() WHERE user_id = $2`, balance, userID)
	return err
}

func (r *Repository) insertTransaction(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TransactionType, referenceID, description string) error {
	var ref interface{}
	if referenceID == "" {
		ref = nil
	} else {
		ref = referenceID
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO credit_transactions (id, user_id, amount, type, reference_id, description)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), userID, amount, string(txType), ref, description)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateReference
		}
		return err
	}
	return nil
}

// applyTx posts one signed ledger entry inside an external transaction.
// Retries with an already-used reference are idempotent as long as the
// amount matches; a different amount is a conflict.
func (r *Repository) applyTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, txType TransactionType, referenceID, description string) error {
	balance, err := r.lockAccount(ctx, tx, userID)
	if err != nil {
		return err
	}

	existingAmount, exists, err := r.getTransactionAmountByRef(ctx, tx, userID, txType, referenceID)
	if err != nil {
		return err
	}
	if exists {
		if existingAmount != amount {
			return ErrReferenceConflict
		}
		return nil
	}

	nextBalance := balance + amount
	if nextBalance < 0 {
		return ErrInsufficientCredits
	}

	if err := r.updateBalance(ctx, tx, userID, nextBalance); err != nil {
		return err
	}

	if err := r.insertTransaction(ctx, tx, userID, amount, txType, referenceID, description); err != nil {
		if errors.Is(err, ErrDuplicateReference) {
			existingAmount, exists, checkErr := r.getTransactionAmountByRef(ctx, tx, userID, txType, referenceID)
			if checkErr != nil {
				return checkErr
			}
			if !exists || existingAmount != amount {
				return ErrReferenceConflict
			}
			return nil
		}
		return err
	}

	return nil
}

func (r *Repository) apply(ctx context.Context, userID uuid.UUID, amount int, txType TransactionType, referenceID, description string) error {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.applyTx(ctx, tx, userID, amount, txType, referenceID, description); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) Debit(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	return r.apply(ctx, userID, -amount, TransactionTypeDebit, referenceID, description)
}

func (r *Repository) Credit(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	return r.apply(ctx, userID, amount, TransactionTypeCredit, referenceID, description)
}

func (r *Repository) Refund(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	return r.apply(ctx, userID, amount, TransactionTypeRefund, referenceID, description)
}

func (r *Repository) Grant(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	return r.apply(ctx, userID, amount, TransactionTypeGrant, referenceID, description)
}

// DebitTx debits inside an external transaction. Used when the debit
// must be atomic with another operation (creating a booking).
func (r *Repository) DebitTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, referenceID, description string) error {
	return r.applyTx(ctx, tx, userID, -amount, TransactionTypeDebit, referenceID, description)
}

// CreditTx credits inside an external transaction
func (r *Repository) CreditTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, referenceID, description string) error {
	return r.applyTx(ctx, tx, userID, amount, TransactionTypeCredit, referenceID, description)
}

// RefundTx refunds inside an external transaction
func (r *Repository) RefundTx(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount int, referenceID, description string) error {
	return r.applyTx(ctx, tx, userID, amount, TransactionTypeRefund, referenceID, description)
}
