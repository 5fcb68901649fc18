package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/goal"
	"centavo/internal/shared/middleware"
)

type GoalHandler struct {
	service *goal.Service
}

func NewGoalHandler(service *goal.Service) *GoalHandler {
	return &GoalHandler{service: service}
}

type CreateGoalRequest struct {
	Title        string          `json:"title"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     time.Time       `json:"deadline"`
	Category     string          `json:"category"`
}

type UpdateProgressRequest struct {
	CurrentAmount decimal.Decimal `json:"currentAmount"`
}

// HandleGoals handles POST (create) and GET (list) on /api/goals/.
func (h *GoalHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	case http.MethodGet:
		h.handleList(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *GoalHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.Create(r.Context(), userID, req.Title, req.TargetAmount, req.Deadline, req.Category)
	if err != nil {
		if isGoalValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating goal for user %d: %v", userID, err)
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(g)
}

func (h *GoalHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	goals, err := h.service.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing goals for user %d: %v", userID, err)
		http.Error(w, "Failed to list goals", http.StatusInternalServerError)
		return
	}

	if goals == nil {
		goals = []*goal.Goal{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goals)
}

// HandleGoalByID handles PUT (progress update) and DELETE on /api/goals/{id}.
func (h *GoalHandler) HandleGoalByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goalID := r.PathValue("id")
	if goalID == "" {
		http.Error(w, "Goal ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, goalID, userID)
	case http.MethodPut:
		h.handleUpdateProgress(w, r, goalID, userID)
	case http.MethodDelete:
		h.handleDelete(w, r, goalID, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *GoalHandler) handleGet(w http.ResponseWriter, r *http.Request, goalID string, userID int64) {
	g, err := h.service.Get(r.Context(), goalID, userID)
	if err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting goal %s: %v", goalID, err)
		http.Error(w, "Failed to get goal", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

func (h *GoalHandler) handleUpdateProgress(w http.ResponseWriter, r *http.Request, goalID string, userID int64) {
	var req UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	g, err := h.service.UpdateProgress(r.Context(), goalID, userID, req.CurrentAmount)
	if err != nil {
		switch {
		case errors.Is(err, goal.ErrGoalNotFound):
			http.Error(w, "Goal not found", http.StatusNotFound)
		case errors.Is(err, goal.ErrNegativeAmount):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("Error updating progress for goal %s: %v", goalID, err)
			http.Error(w, "Failed to update goal", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(g)
}

func (h *GoalHandler) handleDelete(w http.ResponseWriter, r *http.Request, goalID string, userID int64) {
	if err := h.service.Delete(r.Context(), goalID, userID); err != nil {
		if errors.Is(err, goal.ErrGoalNotFound) {
			http.Error(w, "Goal not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting goal %s: %v", goalID, err)
		http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isGoalValidationError(err error) bool {
	return errors.Is(err, goal.ErrInvalidTarget) ||
		errors.Is(err, goal.ErrInvalidCategory) ||
		errors.Is(err, goal.ErrMissingTitle) ||
		errors.Is(err, goal.ErrMissingDeadline)
}
