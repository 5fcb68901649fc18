package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"centavo/internal/domain/goal"
)

type GoalRepository struct {
	db *DB
}

func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, params goal.CreateGoalParams) (*goal.Goal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO goals (id, user_id, title, target_amount, deadline, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, title, target_amount, current_amount, deadline, category, created_at, updated_at
	`

	var g goal.Goal
	err = tx.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.Title, params.TargetAmount, params.Deadline, params.Category,
	).Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
		&g.Deadline, &g.Category, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	// Every goal starts with the full set of unachieved milestones.
	for _, t := range goal.MilestoneThresholds {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO goal_milestones (goal_id, percentage) VALUES ($1, $2)`,
			g.ID, t,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create milestone: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit goal: %w", err)
	}

	g.Milestones = goal.NewMilestones()
	return &g, nil
}

func (r *GoalRepository) GetByID(ctx context.Context, id string) (*goal.Goal, error) {
	query := `
		SELECT id, user_id, title, target_amount, current_amount, deadline, category, created_at, updated_at
		FROM goals
		WHERE id = $1
	`

	var g goal.Goal
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
		&g.Deadline, &g.Category, &g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, goal.ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	milestones, err := r.milestonesForGoals(ctx, []string{g.ID})
	if err != nil {
		return nil, err
	}
	g.Milestones = milestones[g.ID]

	return &g, nil
}

func (r *GoalRepository) ListByUserID(ctx context.Context, userID int64) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, title, target_amount, current_amount, deadline, category, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	var ids []string
	for rows.Next() {
		var g goal.Goal
		err := rows.Scan(
			&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
			&g.Deadline, &g.Category, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, &g)
		ids = append(ids, g.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	if len(ids) > 0 {
		milestones, err := r.milestonesForGoals(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, g := range goals {
			g.Milestones = milestones[g.ID]
		}
	}

	return goals, nil
}

func (r *GoalRepository) SetCurrentAmount(ctx context.Context, id string, amount decimal.Decimal) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE goals SET current_amount = $1, updated_at = NOW() WHERE id = $2`,
		amount, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal amount: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return goal.ErrGoalNotFound
	}

	return nil
}

// AwardMilestone flips the milestone and credits the goal owner's points in
// one transaction. The flip is guarded by achieved = false, so of any number
// of concurrent callers exactly one commits the award; the rest see zero
// rows affected and report false.
func (r *GoalRepository) AwardMilestone(ctx context.Context, goalID string, percentage int, points int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE goal_milestones
		SET achieved = true, points_awarded = $1, achieved_at = NOW()
		WHERE goal_id = $2 AND percentage = $3 AND achieved = false
	`, points, goalID, percentage)
	if err != nil {
		return false, fmt.Errorf("failed to award milestone: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		// Already achieved, or no such milestone. Either way nothing to credit.
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users
		SET points = points + $1, updated_at = NOW()
		WHERE id = (SELECT user_id FROM goals WHERE id = $2)
	`, points, goalID)
	if err != nil {
		return false, fmt.Errorf("failed to credit milestone points: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit milestone award: %w", err)
	}

	return true, nil
}

// ListDueWithin returns goals whose deadline falls inside the window and
// whose target has not been reached yet. Used by the reminder scheduler;
// milestones are not loaded.
func (r *GoalRepository) ListDueWithin(ctx context.Context, within time.Duration) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, title, target_amount, current_amount, deadline, category, created_at, updated_at
		FROM goals
		WHERE deadline BETWEEN NOW() AND NOW() + $1::interval
		  AND current_amount < target_amount
		ORDER BY deadline
	`

	rows, err := r.db.QueryContext(ctx, query, fmt.Sprintf("%d seconds", int64(within.Seconds())))
	if err != nil {
		return nil, fmt.Errorf("failed to list due goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal
	for rows.Next() {
		var g goal.Goal
		err := rows.Scan(
			&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
			&g.Deadline, &g.Category, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, &g)
	}

	return goals, rows.Err()
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	// goal_milestones rows go with the goal via ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return goal.ErrGoalNotFound
	}

	return nil
}

func (r *GoalRepository) milestonesForGoals(ctx context.Context, goalIDs []string) (map[string][]goal.Milestone, error) {
	query := `
		SELECT goal_id, percentage, achieved, points_awarded, achieved_at
		FROM goal_milestones
		WHERE goal_id = ANY($1)
		ORDER BY goal_id, percentage
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(goalIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	milestones := make(map[string][]goal.Milestone, len(goalIDs))
	for rows.Next() {
		var goalID string
		var m goal.Milestone
		var achievedAt sql.NullTime
		if err := rows.Scan(&goalID, &m.Percentage, &m.Achieved, &m.PointsAwarded, &achievedAt); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		if achievedAt.Valid {
			m.AchievedAt = &achievedAt.Time
		}
		milestones[goalID] = append(milestones[goalID], m)
	}

	return milestones, rows.Err()
}
