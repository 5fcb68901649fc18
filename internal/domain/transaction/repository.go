package transaction

import (
	"context"
	"time"
)

// ListFilter narrows a ledger listing. A zero filter lists everything.
type ListFilter struct {
	From time.Time
	To   time.Time
}

// Repository defines the interface for ledger data access.
// The ledger is append-only: there is deliberately no Update or Delete.
type Repository interface {
	Create(ctx context.Context, params CreateTransactionParams) (*Transaction, error)
	ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error)
}
