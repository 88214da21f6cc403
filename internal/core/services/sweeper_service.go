package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/invest"
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
)

// SweeperService settles matured investment contracts. It is triggerable, not
// self-scheduling; callers decide when a sweep runs.
type SweeperService struct {
	store ports.DocumentStore
	locks *locking.Manager
}

// NewSweeperService creates a SweeperService.
func NewSweeperService(store ports.DocumentStore, locks *locking.Manager) *SweeperService {
	return &SweeperService{store: store, locks: locks}
}

// Sweep settles every matured running contract and returns the number
// settled. The whole pass runs under the combined accounts+investments locks
// so the two collections persist as one consistent snapshot pair.
//
// Accounts are written before contracts. If the contract write then fails,
// the settled contracts are still running remotely and the next sweep pays
// them again; that duplication is recoverable from the audit trail, whereas
// the reverse order could mark a credit settled that was never paid.
func (s *SweeperService) Sweep(ctx context.Context, now time.Time) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.Acquire(ctx,
		string(ports.Accounts), string(ports.Investments), string(ports.TransactionsLog))
	if err != nil {
		return 0, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return 0, err
	}
	investments, err := ports.LoadInvestments(ctx, s.store)
	if err != nil {
		return 0, err
	}

	accounts, investments, settled, orphaned := invest.Sweep(accounts, investments, now)
	for _, id := range orphaned {
		logger.Warn("matured contract has no owning account, leaving it running",
			slog.String("investment_id", id))
	}
	if len(settled) == 0 {
		return 0, nil
	}

	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return 0, err
	}
	if err := persist(ctx, s.store, ports.Investments, investments); err != nil {
		return 0, err
	}

	records := make([]domain.AuditRecord, 0, len(settled))
	for _, st := range settled {
		records = append(records, domain.AuditRecord{
			Email:  st.Email,
			Type:   domain.InvestmentReturn,
			Amount: st.Return,
			Date:   now,
		})
	}
	appendAudit(ctx, s.store, records...)

	logger.Info("sweep completed", slog.Int("settled", len(settled)))
	return len(settled), nil
}
