package dto

import (
	"github.com/shopspring/decimal"
)

// WithdrawRequest defines a balance withdrawal.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WithdrawToCardRequest defines a withdrawal routed to an active card.
type WithdrawToCardRequest struct {
	CardID string          `json:"cardId" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// WireRequest defines a transfer to another account. The sender is the
// authenticated caller.
type WireRequest struct {
	RecipientEmail string          `json:"recipientEmail" binding:"required,email"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}
