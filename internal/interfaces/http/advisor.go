package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"centavo/internal/domain/advisor"
	"centavo/internal/shared/middleware"
)

type AdvisorHandler struct {
	service *advisor.Service
}

func NewAdvisorHandler(service *advisor.Service) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

type AdvisorRequest struct {
	Query string `json:"query"`
}

type SuggestionsResponse struct {
	Suggestions string `json:"suggestions"`
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}

// HandleSuggestions handles GET /api/budget/suggestions
func (h *AdvisorHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	text, err := h.service.Suggestions(r.Context(), userID)
	if err != nil {
		log.Printf("Error generating budget suggestions for user %d: %v", userID, err)
		http.Error(w, "Failed to generate suggestions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuggestionsResponse{Suggestions: text})
}

// HandleAdvisor handles POST /api/budget/advisor
func (h *AdvisorHandler) HandleAdvisor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AdvisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	text, err := h.service.Advise(r.Context(), userID, req.Query)
	if err != nil {
		if errors.Is(err, advisor.ErrEmptyQuery) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error generating advice for user %d: %v", userID, err)
		http.Error(w, "Failed to generate advice", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AdviceResponse{Advice: text})
}
