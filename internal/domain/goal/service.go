package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Notifier is told about milestone achievements after they commit.
// Implementations must be best-effort; delivery failures stay out of the
// request path. May be nil.
type Notifier interface {
	MilestoneReached(ctx context.Context, userID int64, goalTitle string, percentage int)
}

// Service contains the business logic for goal operations, including the
// milestone bookkeeping on progress updates.
type Service struct {
	repo     Repository
	notifier Notifier
}

// NewService creates a new goal service. notifier may be nil.
func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// Create validates and persists a goal with its four unachieved milestones.
func (s *Service) Create(ctx context.Context, userID int64, title string, target decimal.Decimal, deadline time.Time, category string) (*Goal, error) {
	params := CreateGoalParams{
		ID:           uuid.New().String(),
		UserID:       userID,
		Title:        title,
		TargetAmount: target,
		Deadline:     deadline,
		Category:     category,
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// List returns the user's goals, newest first.
func (s *Service) List(ctx context.Context, userID int64) ([]*Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// Get returns a goal owned by userID, or ErrGoalNotFound. Ownership failures
// are reported as not-found so goal IDs don't leak across users.
func (s *Service) Get(ctx context.Context, goalID string, userID int64) (*Goal, error) {
	g, err := s.repo.GetByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrGoalNotFound
	}
	return g, nil
}

// UpdateProgress overwrites the goal's current amount and credits every
// newly-crossed milestone. A milestone at threshold t is crossed when
// progress >= t; amounts above the target simply cross everything up to 100.
// Crediting goes through Repository.AwardMilestone, whose conditional update
// makes each credit happen exactly once even under concurrent calls.
// Negative amounts are rejected; amounts above the target are allowed.
func (s *Service) UpdateProgress(ctx context.Context, goalID string, userID int64, amount decimal.Decimal) (*Goal, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	g, err := s.Get(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetCurrentAmount(ctx, goalID, amount); err != nil {
		return nil, err
	}

	progress := amount.Div(g.TargetAmount).Mul(oneHundred)

	for _, t := range MilestoneThresholds {
		if progress.LessThan(decimal.NewFromInt(int64(t))) {
			break
		}
		// The snapshot check only skips work; the conditional update in
		// AwardMilestone is what guarantees exactly-once.
		if m := g.Milestone(t); m != nil && m.Achieved {
			continue
		}

		awarded, err := s.repo.AwardMilestone(ctx, goalID, t, MilestonePoints)
		if err != nil {
			return nil, err
		}
		if awarded && s.notifier != nil {
			s.notifier.MilestoneReached(context.WithoutCancel(ctx), userID, g.Title, t)
		}
	}

	return s.repo.GetByID(ctx, goalID)
}

// Delete removes a goal owned by userID. Previously awarded points are
// never reclaimed.
func (s *Service) Delete(ctx context.Context, goalID string, userID int64) error {
	if _, err := s.Get(ctx, goalID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, goalID)
}
