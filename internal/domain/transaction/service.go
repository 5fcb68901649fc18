package transaction

import (
	"context"
	"log"

	"centavo/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RewardPoints is credited to the owner for every recorded transaction.
const RewardPoints = 10

// Service contains the business logic for ledger operations.
type Service struct {
	repo     Repository
	userRepo user.Repository
}

// NewService creates a new transaction service.
func NewService(repo Repository, userRepo user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// Record validates and persists a ledger entry, then credits the owner's
// points counter. The points increment is best-effort: a failure is logged
// and the recorded transaction is still returned as a success.
func (s *Service) Record(ctx context.Context, userID int64, kind, category string, amount decimal.Decimal, description string) (*Transaction, error) {
	params := CreateTransactionParams{
		ID:          uuid.New().String(),
		UserID:      userID,
		Kind:        kind,
		Category:    category,
		Amount:      amount,
		Description: description,
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.AddPoints(ctx, userID, RewardPoints); err != nil {
		log.Printf("Failed to award transaction points to user %d: %v", userID, err)
	}

	return tx, nil
}

// List returns the user's ledger entries, newest first. When month is
// non-empty it must be "YYYY-MM" and restricts the listing to that calendar
// month, inclusive of its first and last day.
func (s *Service) List(ctx context.Context, userID int64, month string) ([]*Transaction, error) {
	var filter ListFilter
	if month != "" {
		from, to, err := MonthRange(month)
		if err != nil {
			return nil, err
		}
		filter.From = from
		filter.To = to
	}

	return s.repo.ListByUserID(ctx, userID, filter)
}
