package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of monetary movement.
// The string values are part of the persisted document format.
type TransactionType string

const (
	Credit           TransactionType = "Credit"
	Withdrawal       TransactionType = "Withdrawal"
	WithdrawalToCard TransactionType = "Withdrawal to Card"
	WireSent         TransactionType = "Wire Sent"
	WireReceived     TransactionType = "Wire Received"
	InvestmentTx     TransactionType = "Investment"
	InvestmentReturn TransactionType = "Investment Return"
)

// creditTypes are the kinds that increase an account balance; everything else
// decreases it.
var creditTypes = map[TransactionType]bool{
	Credit:           true,
	WireReceived:     true,
	InvestmentReturn: true,
}

// CardDetails carries the masked card metadata attached to card withdrawals.
type CardDetails struct {
	Last4    string `json:"last4"`
	CardType string `json:"cardType"`
}

// Transaction is one immutable entry in an account's history. Amount is always
// a positive magnitude; BalanceAfter snapshots the balance at append time and
// is never recomputed.
type Transaction struct {
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description"`
	BalanceAfter decimal.Decimal `json:"balanceAfterTransaction"`
	To           string          `json:"to,omitempty"`   // counterparty email on Wire Sent
	From         string          `json:"from,omitempty"` // counterparty email on Wire Received
	Card         *CardDetails    `json:"cardDetails,omitempty"`
}

// Signed returns the amount with the sign implied by the transaction type.
func (t Transaction) Signed() decimal.Decimal {
	if creditTypes[t.Type] {
		return t.Amount
	}
	return t.Amount.Neg()
}

// AuditRecord is one entry in the global transactions log, kept independently
// of per-account histories.
type AuditRecord struct {
	Email  string          `json:"email"`
	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}
