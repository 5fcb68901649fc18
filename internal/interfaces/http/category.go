package http

import (
	"encoding/json"
	"log"
	"net/http"

	"centavo/internal/domain/category"
	"centavo/internal/shared/middleware"
)

type CategoryHandler struct {
	repo category.Repository
}

func NewCategoryHandler(repo category.Repository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"type"`
}

// HandleCategories handles POST (create) and GET (list) on /api/categories/.
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
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

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := category.CreateCategoryParams{
		UserID: userID,
		Name:   req.Name,
		Kind:   req.Kind,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.repo.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating category for user %d: %v", userID, err)
		http.Error(w, "Failed to create category", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	categories, err := h.repo.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing categories for user %d: %v", userID, err)
		http.Error(w, "Failed to list categories", http.StatusInternalServerError)
		return
	}

	if categories == nil {
		categories = []*category.Category{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}
