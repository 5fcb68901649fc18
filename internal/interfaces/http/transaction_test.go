package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/transaction"
	"centavo/internal/domain/user"
)

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc       func(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error)
	ListByUserIDFunc func(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

func (m *MockTransactionRepo) Create(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) ListByUserID(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, filter)
	}
	return nil, nil
}

// stubUserRepo implements user.Repository just well enough to observe the
// points reward hook
type stubUserRepo struct {
	pointsAdded int64
}

func (s *stubUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	return nil, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (s *stubUserRepo) AddPoints(ctx context.Context, userID int64, delta int64) error {
	s.pointsAdded += delta
	return nil
}

func TestHandleTransactions_Record(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectCreated  bool
		expectPoints   bool
	}{
		{
			name:           "Expense Awards Points",
			body:           `{"type":"expense","category":"Food","amount":"42.50","description":"groceries"}`,
			expectedStatus: http.StatusCreated,
			expectCreated:  true,
			expectPoints:   true,
		},
		{
			name:           "Income Awards Points",
			body:           `{"type":"income","category":"Salary","amount":"5000"}`,
			expectedStatus: http.StatusCreated,
			expectCreated:  true,
			expectPoints:   true,
		},
		{
			name:           "Bad Kind",
			body:           `{"type":"transfer","category":"Food","amount":"10"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Category",
			body:           `{"type":"expense","amount":"10"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero Amount",
			body:           `{"type":"expense","category":"Food","amount":"0"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &MockTransactionRepo{
				CreateFunc: func(ctx context.Context, params transaction.CreateTransactionParams) (*transaction.Transaction, error) {
					created = true
					return &transaction.Transaction{
						ID:       params.ID,
						UserID:   params.UserID,
						Kind:     params.Kind,
						Category: params.Category,
						Amount:   params.Amount,
						Date:     time.Now(),
					}, nil
				},
			}
			userRepo := &stubUserRepo{}
			handler := NewTransactionHandler(transaction.NewService(repo, userRepo))

			req := authedRequest(http.MethodPost, "/api/transactions/", []byte(tt.body), 1)
			rr := httptest.NewRecorder()
			handler.HandleTransactions(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if created != tt.expectCreated {
				t.Errorf("created = %v, want %v", created, tt.expectCreated)
			}
			if tt.expectPoints && userRepo.pointsAdded != transaction.RewardPoints {
				t.Errorf("points added = %d, want %d", userRepo.pointsAdded, transaction.RewardPoints)
			}
			if !tt.expectPoints && userRepo.pointsAdded != 0 {
				t.Errorf("points added = %d, want 0", userRepo.pointsAdded)
			}
		})
	}
}

func TestHandleTransactions_ListWithMonthFilter(t *testing.T) {
	var gotFilter transaction.ListFilter
	repo := &MockTransactionRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			gotFilter = filter
			return []*transaction.Transaction{
				{ID: "t-1", Kind: transaction.KindExpense, Category: "Food", Amount: decimal.NewFromInt(20)},
			}, nil
		},
	}
	handler := NewTransactionHandler(transaction.NewService(repo, &stubUserRepo{}))

	req := authedRequest(http.MethodGet, "/api/transactions/?month=2026-02", nil, 1)
	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	wantFrom := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if !gotFilter.From.Equal(wantFrom) {
		t.Errorf("filter.From = %v, want %v", gotFilter.From, wantFrom)
	}
	// Inclusive upper bound: the last instant of February 28th.
	if gotFilter.To.Before(time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)) ||
		!gotFilter.To.Before(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("filter.To = %v, want end of February", gotFilter.To)
	}

	var got []*transaction.Transaction
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestHandleTransactions_BadMonth(t *testing.T) {
	handler := NewTransactionHandler(transaction.NewService(&MockTransactionRepo{}, &stubUserRepo{}))

	req := authedRequest(http.MethodGet, "/api/transactions/?month=February", nil, 1)
	rr := httptest.NewRecorder()
	handler.HandleTransactions(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
