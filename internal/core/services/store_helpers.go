package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/core/domain"
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/middleware"
)

// persist replaces a collection and maps any failure to ErrStoreUnavailable.
// By the time persist is called a mutation has already been computed, so the
// failure must reach the caller.
func persist(ctx context.Context, store ports.DocumentStore, collection ports.Collection, records any) error {
	if err := store.Replace(ctx, collection, records); err != nil {
		return fmt.Errorf("%w: persisting %s: %v", apperrors.ErrStoreUnavailable, collection, err)
	}
	return nil
}

// appendAudit appends records to the global transactions log. The caller must
// hold the transactions_log lock. Audit logging is a best-effort side
// channel: failures are logged and swallowed, never propagated, and never
// roll back the account mutation they describe.
func appendAudit(ctx context.Context, store ports.DocumentStore, records ...domain.AuditRecord) {
	logger := middleware.GetLoggerFromCtx(ctx)

	log, err := ports.LoadAuditLog(ctx, store)
	if err != nil {
		logger.Error("audit log read failed, skipping append", slog.String("error", err.Error()))
		return
	}
	log = append(log, records...)
	if err := store.Replace(ctx, ports.TransactionsLog, log); err != nil {
		logger.Error("audit log append failed", slog.String("error", err.Error()))
	}
}
