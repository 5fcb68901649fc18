package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds
const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Domain errors
var (
	ErrInvalidKind     = errors.New("invalid transaction type")
	ErrMissingCategory = errors.New("category is required")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidMonth    = errors.New("month must be in YYYY-MM format")
)

// Transaction is one immutable ledger entry. There is no update or delete
// path: once recorded, an entry stays in the ledger as written.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId"`
	Kind        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreateTransactionParams struct {
	ID          string
	UserID      int64
	Kind        string
	Category    string
	Amount      decimal.Decimal
	Description string
}

func (p CreateTransactionParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if !IsValidKind(p.Kind) {
		return ErrInvalidKind
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrMissingCategory
	}
	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func IsValidKind(kind string) bool {
	return kind == KindIncome || kind == KindExpense
}

// MonthRange converts a "YYYY-MM" month into an inclusive [first, last] day
// range in UTC, where the upper bound is the last nanosecond of the month.
func MonthRange(month string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}
