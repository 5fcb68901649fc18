package goal

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MilestonePoints is credited once per milestone over the lifetime of a goal.
const MilestonePoints = 100

// MilestoneThresholds are the fixed progress checkpoints, ascending.
var MilestoneThresholds = []int{25, 50, 75, 100}

// Goal categories
const (
	CategorySavings    = "Savings"
	CategoryDebt       = "Debt"
	CategoryInvestment = "Investment"
	CategoryOther      = "Other"
)

var validCategories = map[string]struct{}{
	CategorySavings:    {},
	CategoryDebt:       {},
	CategoryInvestment: {},
	CategoryOther:      {},
}

// Domain errors
var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrInvalidTarget    = errors.New("target amount must be positive")
	ErrNegativeAmount   = errors.New("current amount must not be negative")
	ErrInvalidCategory  = errors.New("invalid goal category")
	ErrMissingTitle     = errors.New("title is required")
	ErrMissingDeadline  = errors.New("deadline is required")
)

// Milestone is one progress checkpoint. Achieved is monotonic: once set it
// never reverts, and PointsAwarded moves 0 -> MilestonePoints exactly once.
type Milestone struct {
	Percentage    int        `json:"percentage"`
	Achieved      bool       `json:"achieved"`
	PointsAwarded int64      `json:"pointsAwarded"`
	AchievedAt    *time.Time `json:"achievedAt,omitempty"`
}

type Goal struct {
	ID            string          `json:"id"`
	UserID        int64           `json:"userId"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      time.Time       `json:"deadline"`
	Category      string          `json:"category"`
	Milestones    []Milestone     `json:"milestones"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Progress returns completion as a percentage. It may exceed 100 when the
// current amount is above the target; callers cap milestone checks at 100.
func (g *Goal) Progress() decimal.Decimal {
	if g.TargetAmount.IsZero() {
		return decimal.Zero
	}
	return g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
}

// Milestone returns the checkpoint record for the given percentage, or nil.
func (g *Goal) Milestone(percentage int) *Milestone {
	for i := range g.Milestones {
		if g.Milestones[i].Percentage == percentage {
			return &g.Milestones[i]
		}
	}
	return nil
}

// NewMilestones returns the fixed set of unachieved checkpoints a goal
// starts with: one per threshold, exactly.
func NewMilestones() []Milestone {
	ms := make([]Milestone, 0, len(MilestoneThresholds))
	for _, t := range MilestoneThresholds {
		ms = append(ms, Milestone{Percentage: t})
	}
	return ms
}

type CreateGoalParams struct {
	ID           string
	UserID       int64
	Title        string
	TargetAmount decimal.Decimal
	Deadline     time.Time
	Category     string
}

func (p CreateGoalParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrMissingTitle
	}
	if !p.TargetAmount.IsPositive() {
		return ErrInvalidTarget
	}
	if p.Deadline.IsZero() {
		return ErrMissingDeadline
	}
	if !IsValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	return nil
}

func IsValidCategory(c string) bool {
	_, ok := validCategories[c]
	return ok
}
