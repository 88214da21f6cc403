package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/delux1000/deluxwallet/internal/adapters/docstore/memory"
	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Instrumented store (based on DocumentStore usage) ---
type trackedStore struct {
	*memory.Store
	GetFn        func(ctx context.Context, collection ports.Collection) (json.RawMessage, error)
	ReplaceFn    func(ctx context.Context, collection ports.Collection, records any) error
	ReplaceCalls []ports.Collection
}

func newTrackedStore() *trackedStore {
	return &trackedStore{Store: memory.New()}
}

func (s *trackedStore) Get(ctx context.Context, collection ports.Collection) (json.RawMessage, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, collection)
	}
	return s.Store.Get(ctx, collection)
}

func (s *trackedStore) Replace(ctx context.Context, collection ports.Collection, records any) error {
	s.ReplaceCalls = append(s.ReplaceCalls, collection)
	if s.ReplaceFn != nil {
		return s.ReplaceFn(ctx, collection, records)
	}
	return s.Store.Replace(ctx, collection, records)
}

func newLockManager() *locking.Manager {
	order := make([]string, 0, len(ports.LockOrder))
	for _, c := range ports.LockOrder {
		order = append(order, string(c))
	}
	return locking.NewManager(time.Second, order)
}

func registerAccount(t *testing.T, svc *services.LedgerService, fullName, email, phone string) *domain.Account {
	t.Helper()
	account, err := svc.Register(context.Background(), dto.RegisterRequest{
		FullName:    fullName,
		Email:       email,
		PhoneNumber: phone,
		PIN:         "1234",
	})
	require.NoError(t, err)
	return account
}

func TestLedgerService_RegisterAndAuthenticate(t *testing.T) {
	store := newTrackedStore()
	svc := services.NewLedgerService(store, newLockManager(), nil)

	account := registerAccount(t, svc, "Ada Lovelace", "ada@example.com", "+491761")
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1800)))

	// The account survives a round trip through the store.
	authed, err := svc.Authenticate(context.Background(), "ada@example.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", authed.FullName)

	_, err = svc.Authenticate(context.Background(), "ada@example.com", "0000")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Register(context.Background(), dto.RegisterRequest{
		FullName: "Other", Email: "ada@example.com", PhoneNumber: "+491999", PIN: "0000",
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestLedgerService_WithdrawWritesAccountsAndAudit(t *testing.T) {
	store := newTrackedStore()
	svc := services.NewLedgerService(store, newLockManager(), nil)
	registerAccount(t, svc, "Ada Lovelace", "ada@example.com", "+491761")

	txn, err := svc.Withdraw(context.Background(), "ada@example.com", decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(1600)))

	log, err := ports.LoadAuditLog(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, domain.Withdrawal, log[0].Type)
	assert.Equal(t, "ada@example.com", log[0].Email)
}

func TestLedgerService_WireFailedPersistLeavesNoPartialState(t *testing.T) {
	store := newTrackedStore()
	svc := services.NewLedgerService(store, newLockManager(), nil)
	registerAccount(t, svc, "Ada Lovelace", "ada@example.com", "+491761")
	registerAccount(t, svc, "Charles Babbage", "charles@example.com", "+491762")

	store.ReplaceFn = func(ctx context.Context, collection ports.Collection, records any) error {
		return errors.New("bin service down")
	}

	_, err := svc.Wire(context.Background(), "ada@example.com", "charles@example.com", decimal.NewFromInt(500))
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)

	// The stored snapshot still carries both pre-transfer balances.
	store.ReplaceFn = nil
	accounts, err := ports.LoadAccounts(context.Background(), store)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	for _, a := range accounts {
		assert.True(t, a.Balance.Equal(decimal.NewFromInt(1800)))
		assert.Len(t, a.Transactions, 1)
	}
}

func TestLedgerService_AuditFailureDoesNotFailOperation(t *testing.T) {
	store := newTrackedStore()
	svc := services.NewLedgerService(store, newLockManager(), nil)
	registerAccount(t, svc, "Ada Lovelace", "ada@example.com", "+491761")

	store.ReplaceFn = func(ctx context.Context, collection ports.Collection, records any) error {
		if collection == ports.TransactionsLog {
			return errors.New("bin service down")
		}
		return store.Store.Replace(ctx, collection, records)
	}

	txn, err := svc.Withdraw(context.Background(), "ada@example.com", decimal.NewFromInt(200))
	require.NoError(t, err, "audit logging is best effort")
	assert.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(1600)))

	account, err := svc.GetAccount(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(1600)), "the debit itself is persisted")
}

func TestLedgerService_UpdateProfileMergesFields(t *testing.T) {
	store := newTrackedStore()
	svc := services.NewLedgerService(store, newLockManager(), nil)
	registerAccount(t, svc, "Ada Lovelace", "ada@example.com", "+491761")

	profile, err := svc.UpdateProfile(context.Background(), "ada@example.com", dto.UpdateProfileRequest{
		Address: "1 Analytical Way",
		City:    "London",
	})
	require.NoError(t, err)
	assert.Equal(t, "London", profile.City)

	// A later partial update keeps the untouched fields.
	profile, err = svc.UpdateProfile(context.Background(), "ada@example.com", dto.UpdateProfileRequest{
		Country: "UK",
	})
	require.NoError(t, err)
	assert.Equal(t, "1 Analytical Way", profile.Address)
	assert.Equal(t, "London", profile.City)
	assert.Equal(t, "UK", profile.Country)
}

func TestLedgerService_GetAccountNotFound(t *testing.T) {
	svc := services.NewLedgerService(newTrackedStore(), newLockManager(), nil)

	_, err := svc.GetAccount(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
