package user

import "context"

// Repository defines the interface for user data access.
// AddPoints is the only way the points counter is mutated: the implementation
// must use the store's atomic increment, never read-modify-write.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	AddPoints(ctx context.Context, userID int64, delta int64) error
}
