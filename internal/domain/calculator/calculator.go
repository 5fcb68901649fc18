// Package calculator implements the stateless investment calculators:
// SIP and lumpsum future value, SWP depletion, and inflation discounting.
// All of them are closed-form or simple iterative arithmetic; none touch
// the store.
package calculator

import (
	"errors"
	"math"
)

// Validation errors
var (
	ErrNonPositiveAmount = errors.New("amount must be a positive number")
	ErrNonPositiveYears  = errors.New("years must be a positive number")
)

// ChartData is the label/value pair series the client charts directly.
type ChartData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type SIPInput struct {
	MonthlyInvestment float64 `json:"monthlyInvestment"`
	Years             float64 `json:"years"`
	AnnualReturn      float64 `json:"annualReturn"`
	Inflation         float64 `json:"inflation,omitempty"`
}

type SIPResult struct {
	TotalInvestment float64   `json:"totalInvestment"`
	FutureValue     float64   `json:"futureValue"`
	ChartData       ChartData `json:"chartData"`
}

type LumpsumInput struct {
	InitialAmount float64 `json:"initialAmount"`
	Years         float64 `json:"years"`
	AnnualReturn  float64 `json:"annualReturn"`
	Inflation     float64 `json:"inflation,omitempty"`
}

type LumpsumResult struct {
	InitialAmount float64   `json:"initialAmount"`
	FutureValue   float64   `json:"futureValue"`
	ChartData     ChartData `json:"chartData"`
}

type SWPInput struct {
	InitialAmount    float64 `json:"initialAmount"`
	WithdrawalAmount float64 `json:"withdrawalAmount"`
	Years            float64 `json:"years"`
	AnnualReturn     float64 `json:"annualReturn"`
	Inflation        float64 `json:"inflation,omitempty"`
}

type SWPResult struct {
	RemainingAmount  float64   `json:"remainingAmount"`
	TotalWithdrawals float64   `json:"totalWithdrawals"`
	ChartData        ChartData `json:"chartData"`
}

type InflationInput struct {
	CurrentAmount float64 `json:"currentAmount"`
	InflationRate float64 `json:"inflationRate"`
	Years         float64 `json:"years"`
}

type InflationResult struct {
	CurrentAmount float64   `json:"currentAmount"`
	FutureWorth   float64   `json:"futureWorth"`
	ChartData     ChartData `json:"chartData"`
}

// effectiveAnnualRate converts a nominal percentage return into a real rate,
// deflating by the inflation percentage when one is given.
func effectiveAnnualRate(annualReturn, inflation float64) float64 {
	rate := annualReturn / 100
	if inflation != 0 {
		rate = (1+rate)/(1+inflation/100) - 1
	}
	return rate
}

// monthlyRate is the rate that compounds to the effective annual rate over
// twelve months.
func monthlyRate(effectiveAnnual float64) float64 {
	return math.Pow(1+effectiveAnnual, 1.0/12) - 1
}

// SIP computes the future value of a fixed monthly investment.
func SIP(in SIPInput) (*SIPResult, error) {
	if in.MonthlyInvestment <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if in.Years <= 0 {
		return nil, ErrNonPositiveYears
	}

	months := in.Years * 12
	mr := monthlyRate(effectiveAnnualRate(in.AnnualReturn, in.Inflation))

	var futureValue float64
	if mr == 0 {
		// Zero real return: the annuity formula degenerates to a plain sum.
		futureValue = in.MonthlyInvestment * months
	} else {
		futureValue = in.MonthlyInvestment * ((math.Pow(1+mr, months) - 1) / mr)
	}

	totalInvestment := in.MonthlyInvestment * months
	return &SIPResult{
		TotalInvestment: totalInvestment,
		FutureValue:     futureValue,
		ChartData: ChartData{
			Labels: []string{"Total Investment", "Returns"},
			Data:   []float64{totalInvestment, futureValue - totalInvestment},
		},
	}, nil
}

// Lumpsum computes the future value of a single deposit.
func Lumpsum(in LumpsumInput) (*LumpsumResult, error) {
	if in.InitialAmount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if in.Years <= 0 {
		return nil, ErrNonPositiveYears
	}

	rate := effectiveAnnualRate(in.AnnualReturn, in.Inflation)
	futureValue := in.InitialAmount * math.Pow(1+rate, in.Years)

	return &LumpsumResult{
		InitialAmount: in.InitialAmount,
		FutureValue:   futureValue,
		ChartData: ChartData{
			Labels: []string{"Initial Investment", "Returns"},
			Data:   []float64{in.InitialAmount, futureValue - in.InitialAmount},
		},
	}, nil
}

// SWP simulates monthly withdrawals against a compounding corpus until the
// horizon is reached or the corpus runs out.
func SWP(in SWPInput) (*SWPResult, error) {
	if in.InitialAmount <= 0 || in.WithdrawalAmount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if in.Years <= 0 {
		return nil, ErrNonPositiveYears
	}

	months := int(in.Years * 12)
	mr := monthlyRate(effectiveAnnualRate(in.AnnualReturn, in.Inflation))

	amount := in.InitialAmount
	totalWithdrawals := 0.0
	for i := 0; i < months && amount > 0; i++ {
		amount *= 1 + mr
		if amount < in.WithdrawalAmount {
			totalWithdrawals += amount
			amount = 0
		} else {
			amount -= in.WithdrawalAmount
			totalWithdrawals += in.WithdrawalAmount
		}
	}

	return &SWPResult{
		RemainingAmount:  amount,
		TotalWithdrawals: totalWithdrawals,
		ChartData: ChartData{
			Labels: []string{"Remaining Amount", "Total Withdrawals"},
			Data:   []float64{amount, totalWithdrawals},
		},
	}, nil
}

// Inflation discounts an amount to its purchasing power after the given
// number of years.
func Inflation(in InflationInput) (*InflationResult, error) {
	if in.CurrentAmount <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if in.Years <= 0 {
		return nil, ErrNonPositiveYears
	}

	futureWorth := in.CurrentAmount / math.Pow(1+in.InflationRate/100, in.Years)

	return &InflationResult{
		CurrentAmount: in.CurrentAmount,
		FutureWorth:   futureWorth,
		ChartData: ChartData{
			Labels: []string{"Current Value", "Future Worth"},
			Data:   []float64{in.CurrentAmount, futureWorth},
		},
	}, nil
}
