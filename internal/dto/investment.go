package dto

import (
	"time"

	"github.com/delux1000/deluxwallet/internal/core/invest"
	"github.com/shopspring/decimal"
)

// OpenInvestmentRequest defines a new investment contract.
type OpenInvestmentRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	DurationDays int             `json:"duration" binding:"required,gt=0"`
}

// InvestmentResponse is one contract annotated with its maturity state.
type InvestmentResponse struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	ReturnAmount  decimal.Decimal `json:"returnAmount"`
	DurationDays  int             `json:"duration"`
	StartDate     time.Time       `json:"startDate"`
	CompleteDate  time.Time       `json:"completeDate"`
	Status        string          `json:"status"`
	IsMatured     bool            `json:"isCompleted"`
	DaysRemaining int             `json:"daysLeft"`
}

// ToInvestmentResponse converts an annotated contract view.
func ToInvestmentResponse(v invest.View) InvestmentResponse {
	return InvestmentResponse{
		ID:            v.ID,
		Amount:        v.Amount,
		ReturnAmount:  v.ReturnAmount,
		DurationDays:  v.DurationDays,
		StartDate:     v.StartDate,
		CompleteDate:  v.CompleteDate,
		Status:        string(v.Status),
		IsMatured:     v.IsMatured,
		DaysRemaining: v.DaysRemaining,
	}
}
