package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardStatus is the lifecycle state of a payment card. Cards are created
// pending and only ever move to active.
type CardStatus string

const (
	CardPending CardStatus = "pending"
	CardActive  CardStatus = "active"
)

// Card is a payment card linked to an account.
type Card struct {
	ID           string     `json:"id"`
	Number       string     `json:"cardNumber"`
	MaskedNumber string     `json:"maskedNumber"`
	ExpiryDate   string     `json:"expiryDate"`
	CVV          string     `json:"cvv"`
	HolderName   string     `json:"cardHolderName"`
	Type         string     `json:"cardType"`
	Status       CardStatus `json:"status"`
	AddedAt      time.Time  `json:"addedDate"`
	ActivatedAt  *time.Time `json:"activatedDate,omitempty"`
	Code         string     `json:"otp,omitempty"` // code submitted at confirmation
}

// Last4 returns the last four digits of the card number.
func (c Card) Last4() string {
	if len(c.Number) < 4 {
		return c.Number
	}
	return c.Number[len(c.Number)-4:]
}

// Profile holds the optional account profile attributes.
type Profile struct {
	Address               string `json:"address"`
	City                  string `json:"city"`
	Country               string `json:"country"`
	PostalCode            string `json:"postalCode"`
	DefaultWithdrawCardID string `json:"defaultWithdrawCardId,omitempty"`
}

// Account is one user record in the accounts collection. Email and phone
// number are both unique identifiers. Transactions is append-only and
// chronological; Balance always equals the sum of signed transaction amounts.
type Account struct {
	FullName     string          `json:"fullName"`
	Email        string          `json:"email"`
	PhoneNumber  string          `json:"phoneNumber"`
	PIN          string          `json:"pin"`
	Balance      decimal.Decimal `json:"balance"`
	Profile      Profile         `json:"profile"`
	Cards        []Card          `json:"cards"`
	Transactions []Transaction   `json:"transactions"`
}

// FindCard returns a pointer to the card with the given ID, or nil.
func (a *Account) FindCard(id string) *Card {
	for i := range a.Cards {
		if a.Cards[i].ID == id {
			return &a.Cards[i]
		}
	}
	return nil
}

// ActiveCard returns the card with the given ID only if it is active.
func (a *Account) ActiveCard(id string) *Card {
	if c := a.FindCard(id); c != nil && c.Status == CardActive {
		return c
	}
	return nil
}

// Apply adjusts the balance by the transaction's signed amount, snapshots the
// resulting balance on the transaction and appends it to the history.
func (a *Account) Apply(txn Transaction) {
	a.Balance = a.Balance.Add(txn.Signed())
	txn.BalanceAfter = a.Balance
	a.Transactions = append(a.Transactions, txn)
}

// HistoryBalance recomputes the balance from the transaction history. It must
// equal Balance at all times.
func (a *Account) HistoryBalance() decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range a.Transactions {
		sum = sum.Add(txn.Signed())
	}
	return sum
}
