package services

import (
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Notifier delivers customer notifications. Implementations must be
// non-blocking and best-effort; service operations never depend on delivery.
type Notifier interface {
	WelcomeEmail(account domain.Account)
	CardActivationCode(account domain.Account, card domain.Card, code string)
	WireReceipt(recipient domain.Account, senderEmail string, amount decimal.Decimal)
}
