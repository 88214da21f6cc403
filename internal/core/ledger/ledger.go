// Package ledger implements the balance and transaction-history engine. Every
// operation works on the accounts collection passed to it and returns the
// updated collection; nothing here performs I/O. Callers are responsible for
// loading the collection, serializing access and persisting the result.
package ledger

import (
	"fmt"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WelcomeBonus is the fixed credit every new account starts with.
var WelcomeBonus = decimal.NewFromInt(1800)

// MinWithdrawal is the floor for withdrawals, in currency units.
var MinWithdrawal = decimal.NewFromInt(100)

const welcomeDescription = "Delux Welcome Bonus"

// RegisterParams carries the fields required to open an account.
type RegisterParams struct {
	FullName    string
	Email       string
	PhoneNumber string
	PIN         string
}

func findAccount(accounts []domain.Account, email string) int {
	for i := range accounts {
		if accounts[i].Email == email {
			return i
		}
	}
	return -1
}

// Register creates a new account with the welcome bonus applied as its first
// transaction. Email and phone number must both be unused.
func Register(accounts []domain.Account, p RegisterParams, now time.Time) ([]domain.Account, *domain.Account, error) {
	if p.FullName == "" || p.Email == "" || p.PhoneNumber == "" || p.PIN == "" {
		return accounts, nil, fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}
	for i := range accounts {
		if accounts[i].Email == p.Email || accounts[i].PhoneNumber == p.PhoneNumber {
			return accounts, nil, fmt.Errorf("%w: email or phone number already registered", apperrors.ErrDuplicate)
		}
	}

	account := domain.Account{
		FullName:    p.FullName,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		PIN:         p.PIN,
		Cards:       []domain.Card{},
	}
	account.Apply(domain.Transaction{
		Type:        domain.Credit,
		Amount:      WelcomeBonus,
		Date:        now,
		Description: welcomeDescription,
	})

	accounts = append(accounts, account)
	return accounts, &accounts[len(accounts)-1], nil
}

// Authenticate matches the identifier against email or phone number and the
// PIN against the stored PIN, both by exact comparison. Side-effect-free.
func Authenticate(accounts []domain.Account, identifier, pin string) (*domain.Account, error) {
	if identifier == "" || pin == "" {
		return nil, fmt.Errorf("%w: identifier and PIN are required", apperrors.ErrValidation)
	}
	for i := range accounts {
		a := &accounts[i]
		if (a.Email == identifier || a.PhoneNumber == identifier) && a.PIN == pin {
			return a, nil
		}
	}
	return nil, apperrors.ErrInvalidCredentials
}

// checkWithdrawal applies the shared withdrawal rules. The balance check runs
// before the minimum-amount check; amounts that fail both report insufficient
// funds. Callers depend on that message priority, so the order must not
// change.
func checkWithdrawal(a *domain.Account, amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return fmt.Errorf("%w: current balance is %s", apperrors.ErrInsufficientFunds, a.Balance)
	}
	if amount.LessThan(MinWithdrawal) {
		return fmt.Errorf("%w: minimum withdrawal amount is %s", apperrors.ErrBelowMinimum, MinWithdrawal)
	}
	return nil
}

// Withdraw debits the account and appends a Withdrawal transaction.
func Withdraw(accounts []domain.Account, email string, amount decimal.Decimal, now time.Time) ([]domain.Account, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return accounts, nil, fmt.Errorf("%w: amount must be a positive number", apperrors.ErrValidation)
	}
	i := findAccount(accounts, email)
	if i < 0 {
		return accounts, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
	}
	a := &accounts[i]
	if err := checkWithdrawal(a, amount); err != nil {
		return accounts, nil, err
	}

	a.Apply(domain.Transaction{
		Type:        domain.Withdrawal,
		Amount:      amount,
		Date:        now,
		Description: fmt.Sprintf("Withdrawal of %s€", amount),
	})
	txn := &a.Transactions[len(a.Transactions)-1]
	return accounts, txn, nil
}

// WithdrawToCard debits the account like Withdraw, but requires an active
// card and annotates the transaction with its masked metadata.
func WithdrawToCard(accounts []domain.Account, email, cardID string, amount decimal.Decimal, now time.Time) ([]domain.Account, *domain.Transaction, error) {
	if !amount.IsPositive() {
		return accounts, nil, fmt.Errorf("%w: amount must be a positive number", apperrors.ErrValidation)
	}
	i := findAccount(accounts, email)
	if i < 0 {
		return accounts, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
	}
	a := &accounts[i]
	card := a.ActiveCard(cardID)
	if card == nil {
		return accounts, nil, apperrors.ErrCardNotEligible
	}
	if err := checkWithdrawal(a, amount); err != nil {
		return accounts, nil, err
	}

	a.Apply(domain.Transaction{
		Type:        domain.WithdrawalToCard,
		Amount:      amount,
		Date:        now,
		Description: fmt.Sprintf("Withdrawal of %s€ to card ending in %s", amount, card.Last4()),
		Card:        &domain.CardDetails{Last4: card.Last4(), CardType: card.Type},
	})
	txn := &a.Transactions[len(a.Transactions)-1]
	return accounts, txn, nil
}

// WireResult reports the matched transaction pair of a completed transfer.
type WireResult struct {
	Sender    *domain.Account
	Recipient *domain.Account
	Sent      domain.Transaction
	Received  domain.Transaction
}

// Wire moves amount from sender to recipient as one logical operation: both
// balance updates and both history entries, sharing a single timestamp,
// belong to the same snapshot of the accounts collection. Transfers to the
// own account are not rejected.
func Wire(accounts []domain.Account, senderEmail, recipientEmail string, amount decimal.Decimal, now time.Time) ([]domain.Account, *WireResult, error) {
	if senderEmail == "" || recipientEmail == "" || !amount.IsPositive() {
		return accounts, nil, fmt.Errorf("%w: sender, recipient and a positive amount are required", apperrors.ErrValidation)
	}
	si := findAccount(accounts, senderEmail)
	if si < 0 {
		return accounts, nil, fmt.Errorf("%w: sender account %s", apperrors.ErrNotFound, senderEmail)
	}
	ri := findAccount(accounts, recipientEmail)
	if ri < 0 {
		return accounts, nil, fmt.Errorf("%w: recipient account %s", apperrors.ErrNotFound, recipientEmail)
	}
	sender := &accounts[si]
	recipient := &accounts[ri]
	if sender.Balance.LessThan(amount) {
		return accounts, nil, fmt.Errorf("%w: sender balance is %s", apperrors.ErrInsufficientFunds, sender.Balance)
	}

	sender.Apply(domain.Transaction{
		Type:        domain.WireSent,
		Amount:      amount,
		Date:        now,
		Description: fmt.Sprintf("Wire transfer to %s", recipientEmail),
		To:          recipientEmail,
	})
	// Captured before the credit lands: on a self-transfer sender and
	// recipient alias the same history.
	sent := sender.Transactions[len(sender.Transactions)-1]
	recipient.Apply(domain.Transaction{
		Type:        domain.WireReceived,
		Amount:      amount,
		Date:        now,
		Description: fmt.Sprintf("Wire transfer from %s", senderEmail),
		From:        senderEmail,
	})

	result := &WireResult{
		Sender:    sender,
		Recipient: recipient,
		Sent:      sent,
		Received:  recipient.Transactions[len(recipient.Transactions)-1],
	}
	return accounts, result, nil
}
