package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"centavo/internal/domain/user"

	"github.com/shopspring/decimal"
)

// MockRepo implements Repository for testing
type MockRepo struct {
	CreateFunc       func(ctx context.Context, params CreateTransactionParams) (*Transaction, error)
	ListByUserIDFunc func(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error)
}

func (m *MockRepo) Create(ctx context.Context, params CreateTransactionParams) (*Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &Transaction{
		ID:       params.ID,
		UserID:   params.UserID,
		Kind:     params.Kind,
		Category: params.Category,
		Amount:   params.Amount,
		Date:     time.Now(),
	}, nil
}

func (m *MockRepo) ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, filter)
	}
	return nil, nil
}

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	AddPointsFunc func(ctx context.Context, userID int64, delta int64) error
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return nil, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (m *MockUserRepo) AddPoints(ctx context.Context, userID int64, delta int64) error {
	if m.AddPointsFunc != nil {
		return m.AddPointsFunc(ctx, userID, delta)
	}
	return nil
}

func TestRecord_AwardsPoints(t *testing.T) {
	var awardedUser, awardedDelta int64
	userRepo := &MockUserRepo{
		AddPointsFunc: func(ctx context.Context, userID int64, delta int64) error {
			awardedUser = userID
			awardedDelta = delta
			return nil
		},
	}

	svc := NewService(&MockRepo{}, userRepo)

	for _, kind := range []string{KindIncome, KindExpense} {
		awardedUser, awardedDelta = 0, 0

		tx, err := svc.Record(context.Background(), 7, kind, "Food", decimal.NewFromInt(250), "")
		if err != nil {
			t.Fatalf("Record(%s) failed: %v", kind, err)
		}
		if tx.ID == "" {
			t.Error("Record() returned transaction without ID")
		}
		if awardedUser != 7 || awardedDelta != RewardPoints {
			t.Errorf("Record(%s) awarded %d points to user %d, want %d to 7", kind, awardedDelta, awardedUser, RewardPoints)
		}
	}
}

func TestRecord_PointsFailureIsSwallowed(t *testing.T) {
	userRepo := &MockUserRepo{
		AddPointsFunc: func(ctx context.Context, userID int64, delta int64) error {
			return errors.New("points store down")
		},
	}

	svc := NewService(&MockRepo{}, userRepo)

	tx, err := svc.Record(context.Background(), 1, KindExpense, "Rent", decimal.NewFromInt(12000), "june rent")
	if err != nil {
		t.Fatalf("Record() failed despite points error being best-effort: %v", err)
	}
	if tx == nil {
		t.Fatal("Record() returned nil transaction")
	}
}

func TestRecord_Validation(t *testing.T) {
	pointsCalled := false
	userRepo := &MockUserRepo{
		AddPointsFunc: func(ctx context.Context, userID int64, delta int64) error {
			pointsCalled = true
			return nil
		},
	}
	repoCalled := false
	repo := &MockRepo{
		CreateFunc: func(ctx context.Context, params CreateTransactionParams) (*Transaction, error) {
			repoCalled = true
			return nil, nil
		},
	}

	svc := NewService(repo, userRepo)

	tests := []struct {
		name     string
		kind     string
		category string
		amount   decimal.Decimal
		wantErr  error
	}{
		{"unknown kind", "transfer", "Food", decimal.NewFromInt(10), ErrInvalidKind},
		{"empty category", KindExpense, "  ", decimal.NewFromInt(10), ErrMissingCategory},
		{"zero amount", KindExpense, "Food", decimal.Zero, ErrInvalidAmount},
		{"negative amount", KindIncome, "Salary", decimal.NewFromInt(-5), ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(context.Background(), 1, tt.kind, tt.category, tt.amount, "")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if repoCalled {
		t.Error("repository Create() called despite validation failure")
	}
	if pointsCalled {
		t.Error("points awarded despite validation failure")
	}
}

func TestList_MonthFilter(t *testing.T) {
	var gotFilter ListFilter
	repo := &MockRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error) {
			gotFilter = filter
			return nil, nil
		},
	}

	svc := NewService(repo, &MockUserRepo{})

	if _, err := svc.List(context.Background(), 1, "2025-06"); err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	wantFrom := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !gotFilter.From.Equal(wantFrom) {
		t.Errorf("filter.From = %v, want %v", gotFilter.From, wantFrom)
	}
	// Upper bound must still be inside June, and the whole last day must fit.
	lastDay := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)
	if gotFilter.To.Before(lastDay) {
		t.Errorf("filter.To = %v excludes end of June 30", gotFilter.To)
	}
	if gotFilter.To.Month() != time.June {
		t.Errorf("filter.To = %v leaked into July", gotFilter.To)
	}
}

func TestList_InvalidMonth(t *testing.T) {
	svc := NewService(&MockRepo{}, &MockUserRepo{})

	for _, month := range []string{"2025/06", "06-2025", "garbage"} {
		if _, err := svc.List(context.Background(), 1, month); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("List(month=%q) error = %v, want ErrInvalidMonth", month, err)
		}
	}
}

func TestMonthRange_Inclusive(t *testing.T) {
	from, to, err := MonthRange("2025-02")
	if err != nil {
		t.Fatalf("MonthRange() failed: %v", err)
	}
	if from.Day() != 1 || from.Month() != time.February {
		t.Errorf("from = %v, want Feb 1", from)
	}
	if to.Month() != time.February || to.Day() != 28 {
		t.Errorf("to = %v, want last day of Feb 2025", to)
	}
}
