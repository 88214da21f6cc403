package dto

import (
	"time"

	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse is the account view returned to its owner. The PIN and raw
// card numbers never leave the service.
type AccountResponse struct {
	FullName    string          `json:"fullName"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phoneNumber"`
	Balance     decimal.Decimal `json:"balance"`
	Profile     domain.Profile  `json:"profile"`
	Cards       []CardResponse  `json:"cards"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		FullName:    a.FullName,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Balance:     a.Balance,
		Profile:     a.Profile,
		Cards:       ToCardResponses(a.Cards),
	}
}

// UpdateProfileRequest carries the profile fields to merge. Empty fields keep
// their stored value.
type UpdateProfileRequest struct {
	Address               string `json:"address"`
	City                  string `json:"city"`
	Country               string `json:"country"`
	PostalCode            string `json:"postalCode"`
	DefaultWithdrawCardID string `json:"defaultWithdrawCardId"`
}

// TransactionResponse is one history entry of an account.
type TransactionResponse struct {
	Type         string              `json:"type"`
	Amount       decimal.Decimal     `json:"amount"`
	Date         time.Time           `json:"date"`
	Description  string              `json:"description"`
	BalanceAfter decimal.Decimal     `json:"balanceAfterTransaction"`
	To           string              `json:"to,omitempty"`
	From         string              `json:"from,omitempty"`
	Card         *domain.CardDetails `json:"cardDetails,omitempty"`
}

// ToTransactionResponse converts a single history entry.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Type:         string(t.Type),
		Amount:       t.Amount,
		Date:         t.Date,
		Description:  t.Description,
		BalanceAfter: t.BalanceAfter,
		To:           t.To,
		From:         t.From,
		Card:         t.Card,
	}
}

// ToTransactionResponses converts a transaction history.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
