package postgres

import (
	"context"
	"fmt"

	"centavo/internal/domain/transaction"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (id, user_id, type, category, amount, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, type, category, amount, description, date, created_at
	`

	var t transaction.Transaction
	err := r.db.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.Kind, params.Category, params.Amount, params.Description,
	).Scan(
		&t.ID, &t.UserID, &t.Kind, &t.Category, &t.Amount, &t.Description, &t.Date, &t.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &t, nil
}

func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `
		SELECT id, user_id, type, category, amount, description, date, created_at
		FROM transactions
		WHERE user_id = $1
	`
	args := []any{userID}

	if !filter.From.IsZero() {
		args = append(args, filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		var t transaction.Transaction
		err := rows.Scan(
			&t.ID, &t.UserID, &t.Kind, &t.Category, &t.Amount, &t.Description, &t.Date, &t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
