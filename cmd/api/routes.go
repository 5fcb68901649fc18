package main

import (
	"log"
	"net/http"

	httphandlers "centavo/internal/interfaces/http"
	"centavo/internal/shared/config"
	"centavo/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("POST /api/auth/signup", deps.AuthHandler.HandleSignup)
	mux.HandleFunc("POST /api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", deps.AuthHandler.HandleLogout)

	// Investment calculators are stateless and need no account
	mux.HandleFunc("POST /api/calculators/sip", deps.CalculatorHandler.HandleSIP)
	mux.HandleFunc("POST /api/calculators/lumpsum", deps.CalculatorHandler.HandleLumpsum)
	mux.HandleFunc("POST /api/calculators/swp", deps.CalculatorHandler.HandleSWP)
	mux.HandleFunc("POST /api/calculators/inflation", deps.CalculatorHandler.HandleInflation)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protected := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("GET /api/users/me", protected(deps.UserHandler.HandleMe))
	mux.Handle("/api/transactions/", protected(deps.TransactionHandler.HandleTransactions))
	mux.Handle("/api/goals/", protected(deps.GoalHandler.HandleGoals))
	mux.Handle("/api/goals/{id}", protected(deps.GoalHandler.HandleGoalByID))
	mux.Handle("/api/categories/", protected(deps.CategoryHandler.HandleCategories))
	mux.Handle("GET /api/insights", protected(deps.InsightsHandler.HandleInsights))
	mux.Handle("GET /api/budget/suggestions", protected(deps.AdvisorHandler.HandleSuggestions))
	mux.Handle("POST /api/budget/advisor", protected(deps.AdvisorHandler.HandleAdvisor))
	mux.Handle("POST /api/notifications/register-device", protected(deps.NotificationHandler.HandleRegisterDevice))
	mux.Handle("GET /api/notifications/preferences", protected(deps.NotificationHandler.HandlePreferences))
	mux.Handle("POST /api/notifications/preferences", protected(deps.NotificationHandler.HandlePreferences))
	mux.Handle("PUT /api/notifications/{id}", protected(deps.NotificationHandler.HandleNotificationByID))
	mux.Handle("GET /api/notifications/", protected(deps.NotificationHandler.HandleNotifications))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(middleware.Tracing(handler))
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
