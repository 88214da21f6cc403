package services

import (
	"context"
	"iter"
	"log/slog"
	"time"

	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/invest"
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
	"github.com/google/uuid"
)

// InvestmentService orchestrates contract creation and listing. Opening a
// contract touches the accounts and investments collections together, so both
// locks are held for the whole read-modify-write cycle.
type InvestmentService struct {
	store ports.DocumentStore
	locks *locking.Manager
}

// NewInvestmentService creates an InvestmentService.
func NewInvestmentService(store ports.DocumentStore, locks *locking.Manager) *InvestmentService {
	return &InvestmentService{store: store, locks: locks}
}

// Open debits the principal and creates a running contract.
func (s *InvestmentService) Open(ctx context.Context, email string, req dto.OpenInvestmentRequest) (*domain.Investment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.Acquire(ctx,
		string(ports.Accounts), string(ports.Investments), string(ports.TransactionsLog))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}
	investments, err := ports.LoadInvestments(ctx, s.store)
	if err != nil {
		return nil, err
	}

	accounts, investments, contract, err := invest.Open(accounts, investments, invest.OpenParams{
		Email:        email,
		Amount:       req.Amount,
		DurationDays: req.DurationDays,
	}, uuid.NewString(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	// Accounts carry the debit, so they go first: a failure after this write
	// leaves a debit without a contract, which the audit trail exposes, while
	// the reverse order could certify a contract that was never funded.
	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}
	if err := persist(ctx, s.store, ports.Investments, investments); err != nil {
		return nil, err
	}

	appendAudit(ctx, s.store, domain.AuditRecord{
		Email:  email,
		Type:   domain.InvestmentTx,
		Amount: contract.Amount,
		Date:   contract.StartDate,
	})

	logger.Info("investment opened",
		slog.String("email", email),
		slog.String("investment_id", contract.ID),
		slog.String("amount", contract.Amount.String()),
		slog.Int("duration_days", contract.DurationDays))
	return contract, nil
}

// List returns the account's contracts annotated with their maturity state at
// the given time. The sequence is finite and restartable; stored state is not
// touched.
func (s *InvestmentService) List(ctx context.Context, email string, now time.Time) (iter.Seq[invest.View], error) {
	investments, err := ports.LoadInvestments(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return invest.Views(investments, email, now), nil
}
