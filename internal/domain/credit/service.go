package credit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetBalance(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.GetBalance(ctx, userID)
}

func (s *Service) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListTransactions(ctx, userID, limit, offset)
}

func (s *Service) Debit(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	if amount <= 0 || referenceID == "" {
		return ErrInvalidAmount
	}
	if err := s.repo.Debit(ctx, userID, amount, referenceID, description); err != nil {
		if errors.Is(err, ErrInsufficientCredits) {
			return ErrInsufficientCredits
		}
		return err
	}
	log.Info().Str("user_id", userID.String()).Int("amount", amount).Str("reference_id", referenceID).Msg("credit debit applied")
	return nil
}

func (s *Service) Credit(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	if amount <= 0 || referenceID == "" {
		return ErrInvalidAmount
	}
	if err := s.repo.Credit(ctx, userID, amount, referenceID, description); err != nil {
		return err
	}
	log.Info().Str("user_id", userID.String()).Int("amount", amount).Str("reference_id", referenceID).Msg("credit applied")
	return nil
}

func (s *Service) Refund(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	if amount <= 0 || referenceID == "" {
		return ErrInvalidAmount
	}
	if err := s.repo.Refund(ctx, userID, amount, referenceID, description); err != nil {
		return err
	}
	log.Info().Str("user_id", userID.String()).Int("amount", amount).Str("reference_id", referenceID).Msg("credit refund applied")
	return nil
}

// Grant issues promotional credits, e.g. the welcome balance at registration
func (s *Service) Grant(ctx context.Context, userID uuid.UUID, amount int, referenceID, description string) error {
	if amount <= 0 || referenceID == "" {
		return ErrInvalidAmount
	}
	if err := s.repo.Grant(ctx, userID, amount, referenceID, description); err != nil {
		return err
	}
	log.Info().Str("user_id", userID.String()).Int("amount", amount).Str("reference_id", referenceID).Msg("credit grant applied")
	return nil
}
