package insights

import "context"

// Repository defines the read-side aggregation queries over the ledger.
// Implementations aggregate in the store (GROUP BY), so every total equals
// the sum of the matching ledger rows by construction.
type Repository interface {
	ExpenseTotalsByCategory(ctx context.Context, userID int64) ([]CategoryTotal, error)
	// ExpenseTotalsByMonth returns totals ordered chronologically.
	ExpenseTotalsByMonth(ctx context.Context, userID int64) ([]MonthlyTotal, error)
	TotalsByKind(ctx context.Context, userID int64) (*Totals, error)
}
