// Package invest implements the investment-contract engine: contract
// creation, maturity computation and settlement. Like the ledger engine it is
// pure; it operates on the collections handed to it and returns the updated
// collections.
package invest

import (
	"fmt"
	"iter"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MinInvestment is the floor for the invested principal.
var MinInvestment = decimal.NewFromInt(100)

// ReturnMultiplier is the fixed-odds payout factor applied to the principal.
// Not market-linked and not configurable.
var ReturnMultiplier = decimal.NewFromInt(3)

// OpenParams carries the fields required to open a contract.
type OpenParams struct {
	Email        string
	Amount       decimal.Decimal
	DurationDays int
}

// Open debits the principal from the account, appends an Investment
// transaction and creates a running contract whose completion is start plus
// the duration and whose return is three times the principal.
func Open(accounts []domain.Account, investments []domain.Investment, p OpenParams, id string, now time.Time) ([]domain.Account, []domain.Investment, *domain.Investment, error) {
	if p.Amount.LessThan(MinInvestment) {
		return accounts, investments, nil, fmt.Errorf("%w: minimum investment is %s", apperrors.ErrBelowMinimum, MinInvestment)
	}
	if p.DurationDays <= 0 {
		return accounts, investments, nil, fmt.Errorf("%w: duration must be a positive number of days", apperrors.ErrValidation)
	}

	var account *domain.Account
	for i := range accounts {
		if accounts[i].Email == p.Email {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return accounts, investments, nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, p.Email)
	}
	if account.Balance.LessThan(p.Amount) {
		return accounts, investments, nil, fmt.Errorf("%w: current balance is %s", apperrors.ErrInsufficientFunds, account.Balance)
	}

	account.Apply(domain.Transaction{
		Type:        domain.InvestmentTx,
		Amount:      p.Amount,
		Date:        now,
		Description: fmt.Sprintf("Investment of %s€ for %d days", p.Amount, p.DurationDays),
	})

	investments = append(investments, domain.Investment{
		ID:           id,
		Email:        account.Email,
		FullName:     account.FullName,
		Amount:       p.Amount,
		ReturnAmount: p.Amount.Mul(ReturnMultiplier),
		DurationDays: p.DurationDays,
		StartDate:    now,
		CompleteDate: now.AddDate(0, 0, p.DurationDays),
		Status:       domain.InvestmentRunning,
	})
	contract := &investments[len(investments)-1]
	return accounts, investments, contract, nil
}

// View is a contract annotated with its maturity state at a point in time.
// The stored status is not consulted or changed; maturity here is purely
// derived from the completion timestamp.
type View struct {
	domain.Investment
	IsMatured     bool `json:"isCompleted"`
	DaysRemaining int  `json:"daysLeft"`
}

// Views yields the account's contracts annotated for the given time. The
// sequence is finite and can be ranged over any number of times.
func Views(investments []domain.Investment, email string, now time.Time) iter.Seq[View] {
	return func(yield func(View) bool) {
		for _, inv := range investments {
			if inv.Email != email {
				continue
			}
			v := View{
				Investment:    inv,
				IsMatured:     inv.Matured(now),
				DaysRemaining: inv.DaysRemaining(now),
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Settlement records one matured contract paid out during a sweep.
type Settlement struct {
	InvestmentID string
	Email        string
	Return       decimal.Decimal
}

// Sweep settles every running contract whose completion time has passed:
// the owning account is credited the fixed return with an Investment Return
// transaction, and the contract moves to completed. The status transition is
// the sole settlement gate, so re-sweeping with the same or a later time
// settles nothing further. Contracts whose owner is missing from the accounts
// collection are left running and reported as orphaned.
func Sweep(accounts []domain.Account, investments []domain.Investment, now time.Time) ([]domain.Account, []domain.Investment, []Settlement, []string) {
	var settled []Settlement
	var orphaned []string

	index := make(map[string]int, len(accounts))
	for i := range accounts {
		index[accounts[i].Email] = i
	}

	for i := range investments {
		inv := &investments[i]
		if inv.Status != domain.InvestmentRunning || !inv.Matured(now) {
			continue
		}
		ai, ok := index[inv.Email]
		if !ok {
			orphaned = append(orphaned, inv.ID)
			continue
		}

		account := &accounts[ai]
		account.Apply(domain.Transaction{
			Type:        domain.InvestmentReturn,
			Amount:      inv.ReturnAmount,
			Date:        now,
			Description: fmt.Sprintf("Investment return from %s€ investment", inv.Amount),
		})
		inv.Status = domain.InvestmentCompleted
		settled = append(settled, Settlement{
			InvestmentID: inv.ID,
			Email:        inv.Email,
			Return:       inv.ReturnAmount,
		})
	}

	return accounts, investments, settled, orphaned
}
