package services

import (
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Ledger     *LedgerService
	Cards      *CardService
	Investment *InvestmentService
	Sweeper    *SweeperService
}

// NewContainer wires every service onto the shared document store and lock
// manager. notifier may be nil when notifications are not configured.
func NewContainer(store ports.DocumentStore, locks *locking.Manager, notifier Notifier) *Container {
	return &Container{
		Ledger:     NewLedgerService(store, locks, notifier),
		Cards:      NewCardService(store, locks, notifier),
		Investment: NewInvestmentService(store, locks),
		Sweeper:    NewSweeperService(store, locks),
	}
}
