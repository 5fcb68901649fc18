package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/transaction"
	"centavo/internal/shared/middleware"
)

type TransactionHandler struct {
	service *transaction.Service
}

func NewTransactionHandler(service *transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

type CreateTransactionRequest struct {
	Kind        string          `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// HandleTransactions handles POST (record) and GET (list, optional
// ?month=YYYY-MM) on /api/transactions/.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.handleRecord(w, r, userID)
	case http.MethodGet:
		h.handleList(w, r, userID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TransactionHandler) handleRecord(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	tx, err := h.service.Record(r.Context(), userID, req.Kind, req.Category, req.Amount, req.Description)
	if err != nil {
		if isTransactionValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error recording transaction for user %d: %v", userID, err)
		http.Error(w, "Failed to record transaction", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(tx)
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	month := r.URL.Query().Get("month")

	transactions, err := h.service.List(r.Context(), userID, month)
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidMonth) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

func isTransactionValidationError(err error) bool {
	return errors.Is(err, transaction.ErrInvalidKind) ||
		errors.Is(err, transaction.ErrMissingCategory) ||
		errors.Is(err, transaction.ErrInvalidAmount)
}
