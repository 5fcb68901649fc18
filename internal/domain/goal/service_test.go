package goal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// memRepo is an in-memory Repository with the same atomicity guarantees the
// postgres implementation provides: AwardMilestone is a single conditional
// flip-and-credit under one lock.
type memRepo struct {
	mu     sync.Mutex
	goals  map[string]*Goal
	points map[int64]int64
}

func newMemRepo() *memRepo {
	return &memRepo{
		goals:  make(map[string]*Goal),
		points: make(map[int64]int64),
	}
}

func (r *memRepo) Create(ctx context.Context, params CreateGoalParams) (*Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := &Goal{
		ID:            params.ID,
		UserID:        params.UserID,
		Title:         params.Title,
		TargetAmount:  params.TargetAmount,
		CurrentAmount: decimal.Zero,
		Deadline:      params.Deadline,
		Category:      params.Category,
		Milestones:    NewMilestones(),
		CreatedAt:     time.Now(),
	}
	r.goals[g.ID] = g
	return copyGoal(g), nil
}

func (r *memRepo) GetByID(ctx context.Context, id string) (*Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok {
		return nil, ErrGoalNotFound
	}
	return copyGoal(g), nil
}

func (r *memRepo) ListByUserID(ctx context.Context, userID int64) ([]*Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Goal
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, copyGoal(g))
		}
	}
	return out, nil
}

func (r *memRepo) SetCurrentAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[id]
	if !ok {
		return ErrGoalNotFound
	}
	g.CurrentAmount = amount
	return nil
}

func (r *memRepo) AwardMilestone(ctx context.Context, goalID string, percentage int, points int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.goals[goalID]
	if !ok {
		return false, ErrGoalNotFound
	}
	m := g.Milestone(percentage)
	if m == nil || m.Achieved {
		return false, nil
	}
	now := time.Now()
	m.Achieved = true
	m.PointsAwarded = points
	m.AchievedAt = &now
	r.points[g.UserID] += points
	return true, nil
}

func (r *memRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[id]; !ok {
		return ErrGoalNotFound
	}
	delete(r.goals, id)
	return nil
}

func (r *memRepo) pointsFor(userID int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.points[userID]
}

func copyGoal(g *Goal) *Goal {
	c := *g
	c.Milestones = make([]Milestone, len(g.Milestones))
	copy(c.Milestones, g.Milestones)
	return &c
}

// recordingNotifier counts milestone notifications per threshold.
type recordingNotifier struct {
	mu    sync.Mutex
	calls map[int]int
}

func (n *recordingNotifier) MilestoneReached(ctx context.Context, userID int64, goalTitle string, percentage int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.calls == nil {
		n.calls = make(map[int]int)
	}
	n.calls[percentage]++
}

func mustCreate(t *testing.T, svc *Service, userID int64, target int64) *Goal {
	t.Helper()
	g, err := svc.Create(context.Background(), userID, "Emergency fund", decimal.NewFromInt(target), time.Now().AddDate(1, 0, 0), CategorySavings)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return g
}

func achievedFlags(g *Goal) [4]bool {
	var flags [4]bool
	for i, t := range MilestoneThresholds {
		if m := g.Milestone(t); m != nil {
			flags[i] = m.Achieved
		}
	}
	return flags
}

func TestCreate_InitializesMilestones(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)

	g := mustCreate(t, svc, 1, 1000)

	if len(g.Milestones) != 4 {
		t.Fatalf("Create() produced %d milestones, want 4", len(g.Milestones))
	}
	for _, threshold := range MilestoneThresholds {
		m := g.Milestone(threshold)
		if m == nil {
			t.Fatalf("milestone %d missing", threshold)
		}
		if m.Achieved || m.PointsAwarded != 0 {
			t.Errorf("milestone %d = %+v, want unachieved with 0 points", threshold, m)
		}
	}
	if !g.CurrentAmount.IsZero() {
		t.Errorf("CurrentAmount = %s, want 0", g.CurrentAmount)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	deadline := time.Now().AddDate(0, 6, 0)

	tests := []struct {
		name     string
		title    string
		target   decimal.Decimal
		deadline time.Time
		category string
		wantErr  error
	}{
		{"zero target", "Car", decimal.Zero, deadline, CategorySavings, ErrInvalidTarget},
		{"negative target", "Car", decimal.NewFromInt(-100), deadline, CategorySavings, ErrInvalidTarget},
		{"empty title", " ", decimal.NewFromInt(100), deadline, CategorySavings, ErrMissingTitle},
		{"bad category", "Car", decimal.NewFromInt(100), deadline, "Vacation", ErrInvalidCategory},
		{"zero deadline", "Car", decimal.NewFromInt(100), time.Time{}, CategoryDebt, ErrMissingDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.title, tt.target, tt.deadline, tt.category)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// The canonical progress scenario: target 1000, updates 200 / 300 / 1000.
func TestUpdateProgress_MilestoneScenario(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	g := mustCreate(t, svc, 1, 1000)

	// 20%: no milestone crossed
	updated, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(200))
	if err != nil {
		t.Fatalf("UpdateProgress(200) failed: %v", err)
	}
	if got := achievedFlags(updated); got != [4]bool{false, false, false, false} {
		t.Errorf("after 200: achieved = %v, want none", got)
	}
	if pts := repo.pointsFor(1); pts != 0 {
		t.Errorf("after 200: points = %d, want 0", pts)
	}

	// 30%: crosses 25
	updated, err = svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(300))
	if err != nil {
		t.Fatalf("UpdateProgress(300) failed: %v", err)
	}
	if got := achievedFlags(updated); got != [4]bool{true, false, false, false} {
		t.Errorf("after 300: achieved = %v, want [true false false false]", got)
	}
	if pts := repo.pointsFor(1); pts != 100 {
		t.Errorf("after 300: points = %d, want 100", pts)
	}

	// 100%: crosses 50, 75, 100 in one call
	updated, err = svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("UpdateProgress(1000) failed: %v", err)
	}
	if got := achievedFlags(updated); got != [4]bool{true, true, true, true} {
		t.Errorf("after 1000: achieved = %v, want all true", got)
	}
	if pts := repo.pointsFor(1); pts != 400 {
		t.Errorf("after 1000: points = %d, want 400", pts)
	}

	for _, threshold := range MilestoneThresholds {
		if m := updated.Milestone(threshold); m.PointsAwarded != MilestonePoints {
			t.Errorf("milestone %d pointsAwarded = %d, want %d", threshold, m.PointsAwarded, MilestonePoints)
		}
	}
}

func TestUpdateProgress_AchievedIsMonotonic(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	g := mustCreate(t, svc, 1, 1000)

	if _, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(600)); err != nil {
		t.Fatalf("UpdateProgress(600) failed: %v", err)
	}

	// Dropping back below the thresholds must not revert flags or points.
	updated, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("UpdateProgress(100) failed: %v", err)
	}
	if got := achievedFlags(updated); got != [4]bool{true, true, false, false} {
		t.Errorf("after decrease: achieved = %v, want [true true false false]", got)
	}
	if pts := repo.pointsFor(1); pts != 200 {
		t.Errorf("after decrease: points = %d, want 200", pts)
	}

	// Re-crossing the same thresholds must not re-award.
	if _, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(600)); err != nil {
		t.Fatalf("UpdateProgress(600) again failed: %v", err)
	}
	if pts := repo.pointsFor(1); pts != 200 {
		t.Errorf("after re-cross: points = %d, want 200 (no double award)", pts)
	}
}

func TestUpdateProgress_OvershootAllowed(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	g := mustCreate(t, svc, 1, 1000)

	updated, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(2500))
	if err != nil {
		t.Fatalf("UpdateProgress(2500) failed: %v", err)
	}
	if got := achievedFlags(updated); got != [4]bool{true, true, true, true} {
		t.Errorf("achieved = %v, want all true on overshoot", got)
	}
	if pts := repo.pointsFor(1); pts != 400 {
		t.Errorf("points = %d, want 400 (thresholds cap at 100%%)", pts)
	}
}

func TestUpdateProgress_NegativeAmountRejected(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	g := mustCreate(t, svc, 1, 1000)

	_, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(-50))
	if !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("UpdateProgress(-50) error = %v, want ErrNegativeAmount", err)
	}
}

func TestUpdateProgress_NotFound(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	g := mustCreate(t, svc, 1, 1000)

	if _, err := svc.UpdateProgress(context.Background(), "missing", 1, decimal.NewFromInt(10)); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("unknown goal: error = %v, want ErrGoalNotFound", err)
	}

	// Another user's goal reads as not-found, never as someone else's data.
	if _, err := svc.UpdateProgress(context.Background(), g.ID, 2, decimal.NewFromInt(10)); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("foreign goal: error = %v, want ErrGoalNotFound", err)
	}
	if pts := repo.pointsFor(1); pts != 0 {
		t.Errorf("points mutated on failed update: %d", pts)
	}
}

// Two concurrent updates both crossing 50%% from below must credit the 50%%
// milestone exactly once.
func TestUpdateProgress_ConcurrentCrossingAwardsOnce(t *testing.T) {
	for i := 0; i < 50; i++ {
		repo := newMemRepo()
		notifier := &recordingNotifier{}
		svc := NewService(repo, notifier)
		g := mustCreate(t, svc, 1, 1000)

		var wg sync.WaitGroup
		for _, amount := range []int64{550, 600} {
			wg.Add(1)
			go func(a int64) {
				defer wg.Done()
				if _, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(a)); err != nil {
					t.Errorf("concurrent UpdateProgress(%d) failed: %v", a, err)
				}
			}(amount)
		}
		wg.Wait()

		// Both calls cross 25 and 50; each may only be credited once.
		if pts := repo.pointsFor(1); pts != 200 {
			t.Fatalf("run %d: points = %d, want 200 (one credit per milestone)", i, pts)
		}
		notifier.mu.Lock()
		n50 := notifier.calls[50]
		notifier.mu.Unlock()
		if n50 != 1 {
			t.Fatalf("run %d: %d notifications for 50%% milestone, want 1", i, n50)
		}
	}
}

func TestUpdateProgress_NotifierCalledPerMilestone(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier)
	g := mustCreate(t, svc, 1, 1000)

	if _, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(1000)); err != nil {
		t.Fatalf("UpdateProgress(1000) failed: %v", err)
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	for _, threshold := range MilestoneThresholds {
		if notifier.calls[threshold] != 1 {
			t.Errorf("milestone %d notified %d times, want 1", threshold, notifier.calls[threshold])
		}
	}
}

func TestDelete(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	g := mustCreate(t, svc, 1, 1000)

	if _, err := svc.UpdateProgress(context.Background(), g.ID, 1, decimal.NewFromInt(500)); err != nil {
		t.Fatalf("UpdateProgress(500) failed: %v", err)
	}

	if err := svc.Delete(context.Background(), g.ID, 2); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("Delete by non-owner: error = %v, want ErrGoalNotFound", err)
	}

	if err := svc.Delete(context.Background(), g.ID, 1); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	goals, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(goals) != 0 {
		t.Errorf("List() after delete returned %d goals, want 0", len(goals))
	}

	if err := svc.Delete(context.Background(), g.ID, 1); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("re-Delete: error = %v, want ErrGoalNotFound", err)
	}

	// Deleting the goal never reclaims points.
	if pts := repo.pointsFor(1); pts != 200 {
		t.Errorf("points after delete = %d, want 200", pts)
	}
}

func TestProgress_Formula(t *testing.T) {
	g := &Goal{
		TargetAmount:  decimal.NewFromInt(800),
		CurrentAmount: decimal.NewFromInt(200),
	}
	if p := g.Progress(); !p.Equal(decimal.NewFromInt(25)) {
		t.Errorf("Progress() = %s, want 25", p)
	}
}
