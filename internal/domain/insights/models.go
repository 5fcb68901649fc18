package insights

import "github.com/shopspring/decimal"

// CategoryTotal is the summed expense amount for one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyTotal is the summed expense amount for one calendar month.
type MonthlyTotal struct {
	Year  int             `json:"year"`
	Month int             `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// Summary is the insights payload: category breakdown plus chronological
// monthly spending trends.
type Summary struct {
	CategoryBreakdown []CategoryTotal `json:"categoryBreakdown"`
	MonthlyTrends     []MonthlyTotal  `json:"monthlyTrends"`
}

// Totals is a user's lifetime ledger totals by kind, consumed by the
// budget advisor.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
