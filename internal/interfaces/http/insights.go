package http

import (
	"encoding/json"
	"log"
	"net/http"

	"centavo/internal/domain/insights"
	"centavo/internal/shared/middleware"
)

type InsightsHandler struct {
	service *insights.Service
}

func NewInsightsHandler(service *insights.Service) *InsightsHandler {
	return &InsightsHandler{service: service}
}

// HandleInsights returns the expense breakdown by category and monthly
// spending trends for the authenticated user.
func (h *InsightsHandler) HandleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		log.Printf("Error building insights for user %d: %v", userID, err)
		http.Error(w, "Failed to build insights", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
