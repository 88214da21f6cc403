package ports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
)

// Collection names the three persisted record sequences.
type Collection string

const (
	Accounts        Collection = "accounts"
	Investments     Collection = "investments"
	TransactionsLog Collection = "transactions_log"
)

// LockOrder is the fixed global acquisition order for collection locks. Any
// operation touching more than one collection must acquire them in this
// order.
var LockOrder = []Collection{Accounts, Investments, TransactionsLog}

// DocumentStore is the whole-document blob API the system persists through.
// There are no partial updates and no transactions: Get returns the full
// current sequence for a collection (an empty sequence when the collection is
// missing or the read transiently fails), and Replace overwrites the full
// sequence. Replace failures must be surfaced.
type DocumentStore interface {
	Get(ctx context.Context, collection Collection) (json.RawMessage, error)
	Replace(ctx context.Context, collection Collection, records any) error
}

// LoadAccounts decodes the accounts collection. A missing or empty document
// is a legitimate "not yet initialized" state, not an error.
func LoadAccounts(ctx context.Context, store DocumentStore) ([]domain.Account, error) {
	return load[domain.Account](ctx, store, Accounts)
}

// LoadInvestments decodes the investment contracts collection.
func LoadInvestments(ctx context.Context, store DocumentStore) ([]domain.Investment, error) {
	return load[domain.Investment](ctx, store, Investments)
}

// LoadAuditLog decodes the global transactions log.
func LoadAuditLog(ctx context.Context, store DocumentStore) ([]domain.AuditRecord, error) {
	return load[domain.AuditRecord](ctx, store, TransactionsLog)
}

func load[T any](ctx context.Context, store DocumentStore, c Collection) ([]T, error) {
	raw, err := store.Get(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", apperrors.ErrStoreUnavailable, c, err)
	}
	if len(raw) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding %s collection: %w", c, err)
	}
	return records, nil
}
