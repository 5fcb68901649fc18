package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"centavo/internal/domain/goal"
)

// GoalSource lists goals whose deadline is approaching and whose target has
// not been reached. Implemented by the postgres goal repository.
type GoalSource interface {
	ListDueWithin(ctx context.Context, within time.Duration) ([]*goal.Goal, error)
}

// ReminderSender delivers a deadline reminder to a goal's owner.
// Implemented by the notification service.
type ReminderSender interface {
	DeadlineApproaching(ctx context.Context, userID int64, goalTitle string, deadline time.Time) error
}

// ReminderJob nudges one user about one goal whose deadline is near.
type ReminderJob struct {
	goal   *goal.Goal
	sender ReminderSender
}

func NewReminderJob(g *goal.Goal, sender ReminderSender) *ReminderJob {
	return &ReminderJob{goal: g, sender: sender}
}

func (j *ReminderJob) Execute(ctx context.Context) error {
	return j.sender.DeadlineApproaching(ctx, j.goal.UserID, j.goal.Title, j.goal.Deadline)
}

func (j *ReminderJob) UserID() string {
	return strconv.FormatInt(j.goal.UserID, 10)
}

func (j *ReminderJob) Description() string {
	return fmt.Sprintf("deadline reminder for goal %q", j.goal.Title)
}

// NewReminderJobProvider returns a job provider that emits one ReminderJob
// per incomplete goal due within the window.
func NewReminderJobProvider(source GoalSource, sender ReminderSender, window time.Duration) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		goals, err := source.ListDueWithin(ctx, window)
		if err != nil {
			return nil, fmt.Errorf("listing goals due within %v: %w", window, err)
		}

		jobs := make([]Job, 0, len(goals))
		for _, g := range goals {
			jobs = append(jobs, NewReminderJob(g, sender))
		}
		return jobs, nil
	}
}
