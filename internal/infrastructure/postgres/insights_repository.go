package postgres

import (
	"context"
	"fmt"

	"centavo/internal/domain/insights"
)

// InsightsRepository serves the read-side aggregations. Every total is a
// GROUP BY over the ledger rows, so the numbers always reconcile with the
// entries they summarize.
type InsightsRepository struct {
	db *DB
}

func NewInsightsRepository(db *DB) *InsightsRepository {
	return &InsightsRepository{db: db}
}

func (r *InsightsRepository) ExpenseTotalsByCategory(ctx context.Context, userID int64) ([]insights.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1 AND type = 'expense'
		GROUP BY category
		ORDER BY total DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category totals: %w", err)
	}
	defer rows.Close()

	var totals []insights.CategoryTotal
	for rows.Next() {
		var t insights.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (r *InsightsRepository) ExpenseTotalsByMonth(ctx context.Context, userID int64) ([]insights.MonthlyTotal, error) {
	query := `
		SELECT EXTRACT(YEAR FROM date)::int AS year,
		       EXTRACT(MONTH FROM date)::int AS month,
		       SUM(amount) AS total
		FROM transactions
		WHERE user_id = $1 AND type = 'expense'
		GROUP BY year, month
		ORDER BY year, month
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly totals: %w", err)
	}
	defer rows.Close()

	var totals []insights.MonthlyTotal
	for rows.Next() {
		var t insights.MonthlyTotal
		if err := rows.Scan(&t.Year, &t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

func (r *InsightsRepository) TotalsByKind(ctx context.Context, userID int64) (*insights.Totals, error) {
	query := `
		SELECT COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0) AS income,
		       COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
		FROM transactions
		WHERE user_id = $1
	`

	var t insights.Totals
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&t.Income, &t.Expense)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	return &t, nil
}
