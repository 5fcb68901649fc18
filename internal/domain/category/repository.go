package category

import "context"

// Repository defines the interface for category data access.
type Repository interface {
	Create(ctx context.Context, params CreateCategoryParams) (*Category, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Category, error)
}
