// Package locking serializes read-modify-write cycles against the document
// store. The store offers whole-document replace with no concurrency token,
// so every mutating operation runs inside an in-process critical section over
// the collections it touches.
package locking

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
)

// Manager hands out one exclusive lock per named collection. Multi-collection
// acquisitions always proceed in the fixed order given at construction, which
// rules out deadlock between concurrent operations.
type Manager struct {
	timeout time.Duration
	rank    map[string]int

	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewManager creates a Manager with the given bounded wait per lock and the
// global acquisition order.
func NewManager(timeout time.Duration, order []string) *Manager {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	return &Manager{
		timeout: timeout,
		rank:    rank,
		locks:   make(map[string]chan struct{}),
	}
}

func (m *Manager) lock(name string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[name]
	if !ok {
		l = make(chan struct{}, 1)
		m.locks[name] = l
	}
	return l
}

// Acquire takes the locks for the named collections, waiting at most the
// configured timeout in total. It returns a release function that must be
// called exactly once. On timeout or context cancellation every lock taken so
// far is released and apperrors.ErrLockTimeout is returned.
func (m *Manager) Acquire(ctx context.Context, names ...string) (func(), error) {
	ordered := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			ordered = append(ordered, name)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		return m.rank[ordered[i]] < m.rank[ordered[j]]
	})

	held := make([]chan struct{}, 0, len(ordered))
	releaseHeld := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()
	for _, name := range ordered {
		l := m.lock(name)
		select {
		case l <- struct{}{}:
			held = append(held, l)
		case <-timer.C:
			releaseHeld()
			return nil, fmt.Errorf("%w: %s", apperrors.ErrLockTimeout, name)
		case <-ctx.Done():
			releaseHeld()
			return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrLockTimeout, name, ctx.Err())
		}
	}

	var once sync.Once
	return func() { once.Do(releaseHeld) }, nil
}
