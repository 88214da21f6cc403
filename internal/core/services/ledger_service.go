package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/ledger"
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
	"github.com/shopspring/decimal"
)

// LedgerService orchestrates the ledger engine: it serializes access to the
// accounts collection, loads it, runs one engine operation and persists the
// updated snapshot. Business decisions live in the engine; this layer owns
// locking, persistence and side channels (audit log, notifications).
type LedgerService struct {
	store    ports.DocumentStore
	locks    *locking.Manager
	notifier Notifier // optional
}

// NewLedgerService creates a LedgerService. notifier may be nil.
func NewLedgerService(store ports.DocumentStore, locks *locking.Manager, notifier Notifier) *LedgerService {
	return &LedgerService{store: store, locks: locks, notifier: notifier}
}

// Register opens a new account with the welcome bonus.
func (s *LedgerService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.Acquire(ctx, string(ports.Accounts))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	accounts, account, err := ledger.Register(accounts, ledger.RegisterParams{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		PIN:         req.PIN,
	}, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}

	logger.Info("account registered", slog.String("email", account.Email))
	if s.notifier != nil {
		s.notifier.WelcomeEmail(*account)
	}
	return account, nil
}

// Authenticate verifies the identifier (email or phone) and PIN pair.
// Side-effect-free.
func (s *LedgerService) Authenticate(ctx context.Context, identifier, pin string) (*domain.Account, error) {
	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}
	return ledger.Authenticate(accounts, identifier, pin)
}

// GetAccount returns the account for the given email.
func (s *LedgerService) GetAccount(ctx context.Context, email string) (*domain.Account, error) {
	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Email == email {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
}

// UpdateProfile merges the submitted profile fields into the account profile.
// Empty fields keep their current value.
func (s *LedgerService) UpdateProfile(ctx context.Context, email string, req dto.UpdateProfileRequest) (*domain.Profile, error) {
	release, err := s.locks.Acquire(ctx, string(ports.Accounts))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	var account *domain.Account
	for i := range accounts {
		if accounts[i].Email == email {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, email)
	}

	p := &account.Profile
	if req.Address != "" {
		p.Address = req.Address
	}
	if req.City != "" {
		p.City = req.City
	}
	if req.Country != "" {
		p.Country = req.Country
	}
	if req.PostalCode != "" {
		p.PostalCode = req.PostalCode
	}
	if req.DefaultWithdrawCardID != "" {
		p.DefaultWithdrawCardID = req.DefaultWithdrawCardID
	}

	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}
	return p, nil
}

// Withdraw debits the account and records the movement in the account history
// and the global audit log.
func (s *LedgerService) Withdraw(ctx context.Context, email string, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.Acquire(ctx, string(ports.Accounts), string(ports.TransactionsLog))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	accounts, txn, err := ledger.Withdraw(accounts, email, amount, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}

	appendAudit(ctx, s.store, domain.AuditRecord{
		Email:  email,
		Type:   domain.Withdrawal,
		Amount: txn.Amount,
		Date:   txn.Date,
	})

	logger.Info("withdrawal processed",
		slog.String("email", email),
		slog.String("amount", amount.String()))
	return txn, nil
}

// WithdrawToCard debits the account against one of its active cards.
func (s *LedgerService) WithdrawToCard(ctx context.Context, email, cardID string, amount decimal.Decimal) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.Acquire(ctx, string(ports.Accounts), string(ports.TransactionsLog))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	accounts, txn, err := ledger.WithdrawToCard(accounts, email, cardID, amount, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}

	appendAudit(ctx, s.store, domain.AuditRecord{
		Email:  email,
		Type:   domain.WithdrawalToCard,
		Amount: txn.Amount,
		Date:   txn.Date,
	})

	logger.Info("card withdrawal processed",
		slog.String("email", email),
		slog.String("card_id", cardID),
		slog.String("amount", amount.String()))
	return txn, nil
}

// Wire transfers amount from the authenticated sender to the recipient. Both
// balance updates and both history entries land in one persisted snapshot; a
// store failure leaves neither applied.
func (s *LedgerService) Wire(ctx context.Context, senderEmail, recipientEmail string, amount decimal.Decimal) (*ledger.WireResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.Acquire(ctx, string(ports.Accounts), string(ports.TransactionsLog))
	if err != nil {
		return nil, err
	}
	defer release()

	accounts, err := ports.LoadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	accounts, result, err := ledger.Wire(accounts, senderEmail, recipientEmail, amount, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := persist(ctx, s.store, ports.Accounts, accounts); err != nil {
		return nil, err
	}

	appendAudit(ctx, s.store,
		domain.AuditRecord{Email: senderEmail, Type: domain.WireSent, Amount: amount, Date: result.Sent.Date},
		domain.AuditRecord{Email: recipientEmail, Type: domain.WireReceived, Amount: amount, Date: result.Received.Date},
	)

	logger.Info("wire transfer processed",
		slog.String("sender", senderEmail),
		slog.String("recipient", recipientEmail),
		slog.String("amount", amount.String()))
	if s.notifier != nil {
		s.notifier.WireReceipt(*result.Recipient, senderEmail, amount)
	}
	return result, nil
}
