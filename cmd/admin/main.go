package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"centavo/internal/domain/goal"
	"centavo/internal/domain/notification"
	"centavo/internal/infrastructure/firebase"
	"centavo/internal/infrastructure/postgres"
	"centavo/internal/shared/config"
)

const usage = `Centavo Admin CLI - Management commands for the Centavo API

Usage:
  admin <command> [options]

Commands:
  migrate            Apply pending database migrations
  goal-reminders     Send deadline reminders for goals due soon
  milestone-recheck  Re-evaluate milestone awards for existing goals

Examples:
  # Apply pending migrations
  admin migrate

  # Send reminders for goals due within the next 7 days
  admin goal-reminders --window=168h

  # Recheck milestones for specific users
  admin milestone-recheck --user-id=1,2,3

  # Recheck milestones for all users
  admin milestone-recheck --all

  # Run with timeout
  admin milestone-recheck --all --timeout=1h
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "goal-reminders":
		runGoalReminders(os.Args[2:])
	case "milestone-recheck":
		runMilestoneRecheck(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func connect() (*config.Config, *postgres.DB) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	return cfg, db
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	_, db := connect()
	defer db.Close()

	if err := postgres.RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}

func runGoalReminders(args []string) {
	fs := flag.NewFlagSet("goal-reminders", flag.ExitOnError)

	windowStr := fs.String("window", "168h", "How far ahead to look for deadlines (e.g., 72h, 168h)")
	timeoutStr := fs.String("timeout", "30m", "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin goal-reminders [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin goal-reminders")
		fmt.Println("  admin goal-reminders --window=72h")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	window, err := time.ParseDuration(*windowStr)
	if err != nil {
		log.Fatalf("Invalid window format: %v", err)
	}
	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	cfg, db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	goalRepo := postgres.NewGoalRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase messaging: %v", err)
		}
		messenger = fcmClient
	} else {
		log.Println("No Firebase credentials configured; reminders will only be recorded")
	}

	notificationService := notification.NewService(notificationRepo, messenger)

	goals, err := goalRepo.ListDueWithin(ctx, window)
	if err != nil {
		log.Fatalf("Failed to list due goals: %v", err)
	}

	log.Printf("Found %d goal(s) due within %v", len(goals), window)
	startTime := time.Now()

	var sent, failed int
	for _, g := range goals {
		if err := notificationService.DeadlineApproaching(ctx, g.UserID, g.Title, g.Deadline); err != nil {
			log.Printf("Failed to remind user %d about goal %q: %v", g.UserID, g.Title, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("Reminders completed in %v: %d sent, %d failed", time.Since(startTime), sent, failed)
}

func runMilestoneRecheck(args []string) {
	fs := flag.NewFlagSet("milestone-recheck", flag.ExitOnError)

	userIDStr := fs.String("user-id", "", "User ID(s) to check (comma-separated for multiple)")
	allUsers := fs.Bool("all", false, "Check all users")
	timeoutStr := fs.String("timeout", "30m", "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin milestone-recheck [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin milestone-recheck --user-id=1")
		fmt.Println("  admin milestone-recheck --user-id=1,2,3")
		fmt.Println("  admin milestone-recheck --all --timeout=1h")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userIDStr == "" && !*allUsers {
		fmt.Println("Error: must specify --user-id or --all")
		fs.Usage()
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	_, db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	goalRepo := postgres.NewGoalRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// No notifier: a backfill should credit points, not push to phones.
	goalService := goal.NewService(goalRepo, nil)

	var userIDs []int64
	if *allUsers {
		userIDs, err = userRepo.ListIDs(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		log.Printf("Found %d users", len(userIDs))
	} else {
		for _, p := range strings.Split(*userIDStr, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			id, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				log.Fatalf("Invalid user ID '%s': %v", p, err)
			}
			userIDs = append(userIDs, id)
		}
	}

	if len(userIDs) == 0 {
		log.Println("No users to process")
		return
	}

	log.Printf("Starting milestone recheck for %d user(s)", len(userIDs))
	startTime := time.Now()

	for _, uid := range userIDs {
		checked, awarded, err := recheckUserMilestones(ctx, goalService, uid)
		if err != nil {
			log.Printf("User %d: recheck failed: %v", uid, err)
			continue
		}
		fmt.Printf("\n=== User %d ===\n", uid)
		fmt.Printf("  Goals checked:      %d\n", checked)
		fmt.Printf("  Milestones awarded: %d\n", awarded)
	}

	log.Printf("Milestone recheck completed in %v", time.Since(startTime))
}

// recheckUserMilestones re-applies each goal's current amount, which credits
// any milestone the stored amount has crossed but was never awarded for.
// Already-awarded milestones are untouched.
func recheckUserMilestones(ctx context.Context, svc *goal.Service, userID int64) (checked, awarded int, err error) {
	goals, err := svc.List(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	for _, g := range goals {
		before := achievedCount(g)
		updated, err := svc.UpdateProgress(ctx, g.ID, userID, g.CurrentAmount)
		if err != nil {
			return checked, awarded, fmt.Errorf("goal %s: %w", g.ID, err)
		}
		checked++
		awarded += achievedCount(updated) - before
	}

	return checked, awarded, nil
}

func achievedCount(g *goal.Goal) int {
	var n int
	for _, m := range g.Milestones {
		if m.Achieved {
			n++
		}
	}
	return n
}
