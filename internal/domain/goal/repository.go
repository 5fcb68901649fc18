package goal

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for goal data access.
// Defined in the domain layer, implemented in the infrastructure layer.
type Repository interface {
	Create(ctx context.Context, params CreateGoalParams) (*Goal, error)
	// GetByID returns the goal with its milestone records, or ErrGoalNotFound.
	GetByID(ctx context.Context, id string) (*Goal, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Goal, error)
	SetCurrentAmount(ctx context.Context, id string, amount decimal.Decimal) error
	// AwardMilestone flips the milestone's achieved flag, records the awarded
	// points, and increments the owner's points counter in one transaction,
	// guarded by achieved=false. It reports whether this
	// call won the flip; a milestone can be awarded at most once ever, no
	// matter how many concurrent callers observe it as unachieved.
	AwardMilestone(ctx context.Context, goalID string, percentage int, points int64) (bool, error)
	Delete(ctx context.Context, id string) error
}
