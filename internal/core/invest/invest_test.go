package invest_test

import (
	"testing"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/invest"
	"github.com/delux1000/deluxwallet/internal/core/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func seedAccount(t *testing.T, email string) []domain.Account {
	t.Helper()
	accounts, _, err := ledger.Register(nil, ledger.RegisterParams{
		FullName:    "Ada Lovelace",
		Email:       email,
		PhoneNumber: "+491761",
		PIN:         "1234",
	}, testTime)
	require.NoError(t, err)
	return accounts
}

func TestOpen(t *testing.T) {
	accounts := seedAccount(t, "ada@example.com")

	accounts, investments, contract, err := invest.Open(accounts, nil, invest.OpenParams{
		Email:        "ada@example.com",
		Amount:       decimal.NewFromInt(200),
		DurationDays: 7,
	}, "inv-1", testTime)
	require.NoError(t, err)

	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(1600)))
	last := accounts[0].Transactions[len(accounts[0].Transactions)-1]
	assert.Equal(t, domain.InvestmentTx, last.Type)

	require.Len(t, investments, 1)
	assert.Equal(t, "inv-1", contract.ID)
	assert.Equal(t, domain.InvestmentRunning, contract.Status)
	assert.True(t, contract.ReturnAmount.Equal(decimal.NewFromInt(600)), "return is three times the principal")
	assert.Equal(t, testTime.AddDate(0, 0, 7), contract.CompleteDate)
	assert.Equal(t, "Ada Lovelace", contract.FullName)
}

func TestOpen_Rejections(t *testing.T) {
	accounts := seedAccount(t, "ada@example.com")

	_, _, _, err := invest.Open(accounts, nil, invest.OpenParams{
		Email: "ada@example.com", Amount: decimal.NewFromInt(99), DurationDays: 7,
	}, "inv-1", testTime)
	assert.ErrorIs(t, err, apperrors.ErrBelowMinimum)

	_, _, _, err = invest.Open(accounts, nil, invest.OpenParams{
		Email: "ada@example.com", Amount: decimal.NewFromInt(100), DurationDays: 0,
	}, "inv-1", testTime)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, _, err = invest.Open(accounts, nil, invest.OpenParams{
		Email: "nobody@example.com", Amount: decimal.NewFromInt(100), DurationDays: 7,
	}, "inv-1", testTime)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, _, _, err = invest.Open(accounts, nil, invest.OpenParams{
		Email: "ada@example.com", Amount: decimal.NewFromInt(5000), DurationDays: 7,
	}, "inv-1", testTime)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
}

func TestSweep_SettlesExactlyOnce(t *testing.T) {
	accounts := seedAccount(t, "ada@example.com")

	accounts, investments, _, err := invest.Open(accounts, nil, invest.OpenParams{
		Email:        "ada@example.com",
		Amount:       decimal.NewFromInt(100),
		DurationDays: 1,
	}, "inv-1", testTime)
	require.NoError(t, err)
	require.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(1700)))

	// Same day: nothing matured yet.
	accounts, investments, settled, orphaned := invest.Sweep(accounts, investments, testTime.Add(23*time.Hour))
	assert.Empty(t, settled)
	assert.Empty(t, orphaned)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(1700)))
	assert.Equal(t, domain.InvestmentRunning, investments[0].Status)

	// One day later: the contract matures and pays out 3x.
	dayLater := testTime.AddDate(0, 0, 1)
	accounts, investments, settled, orphaned = invest.Sweep(accounts, investments, dayLater)
	require.Len(t, settled, 1)
	assert.Empty(t, orphaned)
	assert.Equal(t, "inv-1", settled[0].InvestmentID)
	assert.True(t, settled[0].Return.Equal(decimal.NewFromInt(300)))
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, domain.InvestmentCompleted, investments[0].Status)

	last := accounts[0].Transactions[len(accounts[0].Transactions)-1]
	assert.Equal(t, domain.InvestmentReturn, last.Type)

	// Re-sweeping later settles nothing further.
	accounts, investments, settled, _ = invest.Sweep(accounts, investments, dayLater.AddDate(0, 0, 30))
	assert.Empty(t, settled)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(2000)))
	assert.True(t, accounts[0].HistoryBalance().Equal(accounts[0].Balance))
}

func TestSweep_OrphanedContractLeftRunning(t *testing.T) {
	investments := []domain.Investment{{
		ID:           "inv-orphan",
		Email:        "gone@example.com",
		Amount:       decimal.NewFromInt(100),
		ReturnAmount: decimal.NewFromInt(300),
		StartDate:    testTime,
		CompleteDate: testTime.AddDate(0, 0, 1),
		Status:       domain.InvestmentRunning,
	}}

	_, investments, settled, orphaned := invest.Sweep(nil, investments, testTime.AddDate(0, 0, 2))
	assert.Empty(t, settled)
	assert.Equal(t, []string{"inv-orphan"}, orphaned)
	assert.Equal(t, domain.InvestmentRunning, investments[0].Status)
}

func TestViews(t *testing.T) {
	investments := []domain.Investment{
		{
			ID: "inv-1", Email: "ada@example.com",
			CompleteDate: testTime.AddDate(0, 0, 3),
			Status:       domain.InvestmentRunning,
		},
		{
			ID: "inv-other", Email: "charles@example.com",
			CompleteDate: testTime.AddDate(0, 0, 3),
			Status:       domain.InvestmentRunning,
		},
		{
			ID: "inv-2", Email: "ada@example.com",
			CompleteDate: testTime.AddDate(0, 0, -1),
			Status:       domain.InvestmentCompleted,
		},
	}

	seq := invest.Views(investments, "ada@example.com", testTime)

	collect := func() []invest.View {
		var out []invest.View
		for v := range seq {
			out = append(out, v)
		}
		return out
	}

	views := collect()
	require.Len(t, views, 2)
	assert.Equal(t, "inv-1", views[0].ID)
	assert.False(t, views[0].IsMatured)
	assert.Equal(t, 3, views[0].DaysRemaining)
	assert.Equal(t, "inv-2", views[1].ID)
	assert.True(t, views[1].IsMatured)
	assert.Equal(t, 0, views[1].DaysRemaining, "days remaining never goes negative")

	// The sequence is restartable.
	assert.Len(t, collect(), 2)

	// Early break is honored.
	count := 0
	for range seq {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestDaysRemaining_RoundsUp(t *testing.T) {
	inv := domain.Investment{CompleteDate: testTime.Add(25 * time.Hour)}
	assert.Equal(t, 2, inv.DaysRemaining(testTime), "a partial day counts as a full day")

	inv = domain.Investment{CompleteDate: testTime.Add(24 * time.Hour)}
	assert.Equal(t, 1, inv.DaysRemaining(testTime))

	inv = domain.Investment{CompleteDate: testTime}
	assert.Equal(t, 0, inv.DaysRemaining(testTime))
	assert.True(t, inv.Matured(testTime))
}
