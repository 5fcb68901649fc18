package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"centavo/internal/domain/calculator"
)

// CalculatorHandler serves the stateless investment calculators. No auth:
// the calculators touch no user data.
type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// HandleSIP handles POST /api/calculators/sip
func (h *CalculatorHandler) HandleSIP(w http.ResponseWriter, r *http.Request) {
	var in calculator.SIPInput
	if !decodeCalculatorInput(w, r, &in) {
		return
	}
	res, err := calculator.SIP(in)
	writeCalculatorResult(w, res, err)
}

// HandleLumpsum handles POST /api/calculators/lumpsum
func (h *CalculatorHandler) HandleLumpsum(w http.ResponseWriter, r *http.Request) {
	var in calculator.LumpsumInput
	if !decodeCalculatorInput(w, r, &in) {
		return
	}
	res, err := calculator.Lumpsum(in)
	writeCalculatorResult(w, res, err)
}

// HandleSWP handles POST /api/calculators/swp
func (h *CalculatorHandler) HandleSWP(w http.ResponseWriter, r *http.Request) {
	var in calculator.SWPInput
	if !decodeCalculatorInput(w, r, &in) {
		return
	}
	res, err := calculator.SWP(in)
	writeCalculatorResult(w, res, err)
}

// HandleInflation handles POST /api/calculators/inflation
func (h *CalculatorHandler) HandleInflation(w http.ResponseWriter, r *http.Request) {
	var in calculator.InflationInput
	if !decodeCalculatorInput(w, r, &in) {
		return
	}
	res, err := calculator.Inflation(in)
	writeCalculatorResult(w, res, err)
}

func decodeCalculatorInput(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeCalculatorResult(w http.ResponseWriter, result any, err error) {
	if err != nil {
		if errors.Is(err, calculator.ErrNonPositiveAmount) || errors.Is(err, calculator.ErrNonPositiveYears) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Calculation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
