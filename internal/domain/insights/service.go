package insights

import "context"

// Service assembles the read-side spending insights.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary returns the user's expense breakdown by category and the monthly
// spending trend, oldest month first.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	byCategory, err := s.repo.ExpenseTotalsByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}

	byMonth, err := s.repo.ExpenseTotalsByMonth(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Empty slices, not nulls, so clients always get arrays.
	if byCategory == nil {
		byCategory = []CategoryTotal{}
	}
	if byMonth == nil {
		byMonth = []MonthlyTotal{}
	}

	return &Summary{CategoryBreakdown: byCategory, MonthlyTrends: byMonth}, nil
}

// Totals returns the user's lifetime income and expense sums.
func (s *Service) Totals(ctx context.Context, userID int64) (*Totals, error) {
	return s.repo.TotalsByKind(ctx, userID)
}
