// Package advisor produces AI-backed budget suggestions and answers
// free-form financial questions, grounding every prompt in the user's own
// income and expense totals.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/insights"
)

var ErrEmptyQuery = errors.New("query is required")

// Generator turns a prompt into generated text. The Gemini client in
// internal/infrastructure/gemini satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Service struct {
	insightsRepo insights.Repository
	generator    Generator
}

func NewService(insightsRepo insights.Repository, generator Generator) *Service {
	return &Service{insightsRepo: insightsRepo, generator: generator}
}

// Suggestions asks the model for a budget allocation based on the user's
// annualized income and monthly expenses.
func (s *Service) Suggestions(ctx context.Context, userID int64) (string, error) {
	totals, err := s.insightsRepo.TotalsByKind(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("loading totals: %w", err)
	}

	prompt := fmt.Sprintf(`User has an annual income of ₹%s and monthly expenses of ₹%s.
Provide budget allocation using the 50-30-20 rule or similar model.
Respond with:

1. Budget allocation (as bullet points or a markdown table).
2. Specific, actionable spending tips (in a numbered or bulleted list).
3. Format the response with clear sections and markdown-like formatting.
`, annualIncome(totals.Income), totals.Expense.String())

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating suggestions: %w", err)
	}
	return text, nil
}

// Advise answers a free-form question in the context of the user's totals.
func (s *Service) Advise(ctx context.Context, userID int64, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	totals, err := s.insightsRepo.TotalsByKind(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("loading totals: %w", err)
	}

	prompt := fmt.Sprintf(`User has an annual income of ₹%s, monthly expenses of ₹%s. They asked: %q. Provide a concise financial recommendation.`,
		annualIncome(totals.Income), totals.Expense.String(), query)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating advice: %w", err)
	}
	return text, nil
}

func annualIncome(monthly decimal.Decimal) string {
	return monthly.Mul(decimal.NewFromInt(12)).String()
}
