package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentStatus is the lifecycle state of an investment contract. The
// status gate is the single source of truth for whether a contract has been
// settled.
type InvestmentStatus string

const (
	InvestmentRunning   InvestmentStatus = "running"
	InvestmentCompleted InvestmentStatus = "completed"
)

// Investment is a fixed-odds investment contract. It references its owning
// account by email only; the contracts live in their own collection.
type Investment struct {
	ID           string           `json:"id"`
	Email        string           `json:"email"`
	FullName     string           `json:"fullName"`
	Amount       decimal.Decimal  `json:"amount"`
	ReturnAmount decimal.Decimal  `json:"returnAmount"`
	DurationDays int              `json:"duration"`
	StartDate    time.Time        `json:"startDate"`
	CompleteDate time.Time        `json:"completeDate"`
	Status       InvestmentStatus `json:"status"`
}

// Matured reports whether the contract's completion time has been reached.
func (i Investment) Matured(now time.Time) bool {
	return !now.Before(i.CompleteDate)
}

// DaysRemaining returns the whole days until completion, rounding partial
// days up, clamped to zero once matured.
func (i Investment) DaysRemaining(now time.Time) int {
	if i.Matured(now) {
		return 0
	}
	const day = 24 * time.Hour
	return int((i.CompleteDate.Sub(now) + day - 1) / day)
}
