package ledger_test

import (
	"testing"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func registerTestAccount(t *testing.T, accounts []domain.Account, fullName, email, phone string) []domain.Account {
	t.Helper()
	accounts, _, err := ledger.Register(accounts, ledger.RegisterParams{
		FullName:    fullName,
		Email:       email,
		PhoneNumber: phone,
		PIN:         "1234",
	}, testTime)
	require.NoError(t, err)
	return accounts
}

func TestRegister_AppliesWelcomeBonus(t *testing.T) {
	accounts, account, err := ledger.Register(nil, ledger.RegisterParams{
		FullName:    "Ada Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "+4917612345678",
		PIN:         "1234",
	}, testTime)

	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1800)), "balance should equal the welcome bonus")

	require.Len(t, account.Transactions, 1)
	txn := account.Transactions[0]
	assert.Equal(t, domain.Credit, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(1800)))
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(1800)))
	assert.Equal(t, "Delux Welcome Bonus", txn.Description)
}

func TestRegister_MissingFields(t *testing.T) {
	_, _, err := ledger.Register(nil, ledger.RegisterParams{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	}, testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRegister_DuplicateLeavesCollectionUnchanged(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")

	for _, dup := range []ledger.RegisterParams{
		{FullName: "Someone Else", Email: "ada@example.com", PhoneNumber: "+491999", PIN: "0000"},
		{FullName: "Someone Else", Email: "other@example.com", PhoneNumber: "+491761", PIN: "0000"},
	} {
		out, account, err := ledger.Register(accounts, dup, testTime)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		assert.Nil(t, account)
		assert.Len(t, out, 1, "failed registration must not grow the collection")
	}
}

func TestAuthenticate(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")

	byEmail, err := ledger.Authenticate(accounts, "ada@example.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", byEmail.FullName)

	byPhone, err := ledger.Authenticate(accounts, "+491761", "1234")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byPhone.Email)

	_, err = ledger.Authenticate(accounts, "ada@example.com", "9999")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = ledger.Authenticate(accounts, "nobody@example.com", "1234")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestWithdraw(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")

	accounts, txn, err := ledger.Withdraw(accounts, "ada@example.com", decimal.NewFromInt(200), testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.Withdrawal, txn.Type)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(1600)))
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(1600)))
	assert.True(t, accounts[0].HistoryBalance().Equal(accounts[0].Balance))
}

func TestWithdraw_BelowMinimumLeavesBalanceUnchanged(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")

	accounts, txn, err := ledger.Withdraw(accounts, "ada@example.com", decimal.NewFromInt(50), testTime)
	assert.ErrorIs(t, err, apperrors.ErrBelowMinimum)
	assert.Nil(t, txn)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(1800)))
	assert.Len(t, accounts[0].Transactions, 1)
}

func TestWithdraw_InsufficientFundsWinsOverMinimum(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")
	accounts, _, err := ledger.Withdraw(accounts, "ada@example.com", decimal.NewFromInt(1800), testTime)
	require.NoError(t, err)

	// Amount fails both checks; insufficient funds is reported, not the
	// minimum-amount violation.
	_, _, err = ledger.Withdraw(accounts, "ada@example.com", decimal.NewFromInt(50), testTime)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
}

func TestWithdraw_Validation(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")

	_, _, err := ledger.Withdraw(accounts, "ada@example.com", decimal.NewFromInt(-10), testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = ledger.Withdraw(accounts, "nobody@example.com", decimal.NewFromInt(200), testTime)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestWithdrawToCard(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")
	now := testTime
	accounts[0].Cards = []domain.Card{
		{ID: "card-1", Number: "4111111111111111", Type: "visa", Status: domain.CardActive, ActivatedAt: &now},
		{ID: "card-2", Number: "5555444433332222", Type: "mastercard", Status: domain.CardPending},
	}

	accounts, txn, err := ledger.WithdrawToCard(accounts, "ada@example.com", "card-1", decimal.NewFromInt(300), testTime)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalToCard, txn.Type)
	require.NotNil(t, txn.Card)
	assert.Equal(t, "1111", txn.Card.Last4)
	assert.Equal(t, "visa", txn.Card.CardType)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(1500)))

	// A pending card is not eligible.
	_, _, err = ledger.WithdrawToCard(accounts, "ada@example.com", "card-2", decimal.NewFromInt(300), testTime)
	assert.ErrorIs(t, err, apperrors.ErrCardNotEligible)

	_, _, err = ledger.WithdrawToCard(accounts, "ada@example.com", "no-such-card", decimal.NewFromInt(300), testTime)
	assert.ErrorIs(t, err, apperrors.ErrCardNotEligible)
}

func TestWire(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")
	accounts = registerTestAccount(t, accounts, "Charles Babbage", "charles@example.com", "+491762")

	accounts, result, err := ledger.Wire(accounts, "ada@example.com", "charles@example.com", decimal.NewFromInt(500), testTime)
	require.NoError(t, err)

	assert.True(t, result.Sender.Balance.Equal(decimal.NewFromInt(1300)))
	assert.True(t, result.Recipient.Balance.Equal(decimal.NewFromInt(2300)))

	assert.Equal(t, domain.WireSent, result.Sent.Type)
	assert.Equal(t, "charles@example.com", result.Sent.To)
	assert.Equal(t, domain.WireReceived, result.Received.Type)
	assert.Equal(t, "ada@example.com", result.Received.From)
	assert.Equal(t, result.Sent.Date, result.Received.Date, "both legs share one timestamp")

	for i := range accounts {
		assert.True(t, accounts[i].HistoryBalance().Equal(accounts[i].Balance))
	}
}

func TestWire_InsufficientFunds(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")
	accounts = registerTestAccount(t, accounts, "Charles Babbage", "charles@example.com", "+491762")

	out, result, err := ledger.Wire(accounts, "ada@example.com", "charles@example.com", decimal.NewFromInt(2000), testTime)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.Nil(t, result)
	assert.True(t, out[0].Balance.Equal(decimal.NewFromInt(1800)))
	assert.True(t, out[1].Balance.Equal(decimal.NewFromInt(1800)))
}

func TestWire_MissingAccounts(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")

	_, _, err := ledger.Wire(accounts, "ada@example.com", "nobody@example.com", decimal.NewFromInt(200), testTime)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = ledger.Wire(accounts, "nobody@example.com", "ada@example.com", decimal.NewFromInt(200), testTime)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, err = ledger.Wire(accounts, "ada@example.com", "", decimal.NewFromInt(200), testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestWire_SelfTransfer(t *testing.T) {
	accounts := registerTestAccount(t, nil, "Ada Lovelace", "ada@example.com", "+491761")

	accounts, result, err := ledger.Wire(accounts, "ada@example.com", "ada@example.com", decimal.NewFromInt(500), testTime)
	require.NoError(t, err)

	// Debit and credit land on the same account and cancel out.
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(1800)))
	assert.Len(t, accounts[0].Transactions, 3)
	assert.True(t, accounts[0].HistoryBalance().Equal(accounts[0].Balance))
	assert.Equal(t, domain.WireSent, result.Sent.Type)
	assert.Equal(t, domain.WireReceived, result.Received.Type)
}
