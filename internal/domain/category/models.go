package category

import (
	"errors"
	"strings"
	"time"
)

// Category is a user-defined label for classifying ledger entries. The
// client offers these in its pickers; transactions store the label as text.
type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Kind      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateCategoryParams struct {
	UserID int64
	Name   string
	Kind   string
}

func (p CreateCategoryParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("category name is required")
	}
	if p.Kind != "income" && p.Kind != "expense" {
		return errors.New("category type must be 'income' or 'expense'")
	}
	return nil
}
