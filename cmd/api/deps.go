package main

import (
	"context"
	"log"

	"centavo/internal/domain/advisor"
	"centavo/internal/domain/goal"
	"centavo/internal/domain/insights"
	"centavo/internal/domain/notification"
	"centavo/internal/domain/transaction"
	"centavo/internal/infrastructure/firebase"
	"centavo/internal/infrastructure/gemini"
	"centavo/internal/infrastructure/postgres"
	httphandlers "centavo/internal/interfaces/http"
	"centavo/internal/shared/auth"
	"centavo/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler         *httphandlers.AuthHandler
	UserHandler         *httphandlers.UserHandler
	TransactionHandler  *httphandlers.TransactionHandler
	GoalHandler         *httphandlers.GoalHandler
	CategoryHandler     *httphandlers.CategoryHandler
	InsightsHandler     *httphandlers.InsightsHandler
	CalculatorHandler   *httphandlers.CalculatorHandler
	AdvisorHandler      *httphandlers.AdvisorHandler
	NotificationHandler *httphandlers.NotificationHandler

	// Auth
	JWT *auth.JWT

	// For the scheduler job provider
	GoalRepo            *postgres.GoalRepository
	NotificationService *notification.Service
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	// Connect to database and apply pending migrations
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	if err := postgres.RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	goalRepo := postgres.NewGoalRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	insightsRepo := postgres.NewInsightsRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Firebase messaging is optional: without credentials, notifications are
	// still recorded but no push is delivered.
	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcmClient, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			log.Printf("Warning: Firebase messaging disabled: %v", err)
		} else {
			messenger = fcmClient
			log.Println("Firebase messaging initialized")
		}
	} else {
		log.Println("Firebase messaging disabled (no credentials configured)")
	}

	// Initialize domain services
	notificationService := notification.NewService(notificationRepo, messenger)
	transactionService := transaction.NewService(transactionRepo, userRepo)
	goalService := goal.NewService(goalRepo, notificationService)
	insightsService := insights.NewService(insightsRepo)

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	advisorService := advisor.NewService(insightsRepo, geminiClient)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret)

	return &Dependencies{
		DB:                  db,
		AuthHandler:         httphandlers.NewAuthHandler(userRepo, jwt),
		UserHandler:         httphandlers.NewUserHandler(userRepo),
		TransactionHandler:  httphandlers.NewTransactionHandler(transactionService),
		GoalHandler:         httphandlers.NewGoalHandler(goalService),
		CategoryHandler:     httphandlers.NewCategoryHandler(categoryRepo),
		InsightsHandler:     httphandlers.NewInsightsHandler(insightsService),
		CalculatorHandler:   httphandlers.NewCalculatorHandler(),
		AdvisorHandler:      httphandlers.NewAdvisorHandler(advisorService),
		NotificationHandler: httphandlers.NewNotificationHandler(notificationService),
		JWT:                 jwt,
		GoalRepo:            goalRepo,
		NotificationService: notificationService,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
