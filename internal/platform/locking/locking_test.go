package locking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/delux1000/deluxwallet/internal/apperrors"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var order = []string{"accounts", "investments", "transactions_log"}

func TestAcquireRelease(t *testing.T) {
	m := locking.NewManager(time.Second, order)

	release, err := m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	release()

	// Released lock can be taken again.
	release, err = m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	defer release()
}

func TestAcquire_TimesOutWhenHeld(t *testing.T) {
	m := locking.NewManager(50*time.Millisecond, order)

	release, err := m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	defer release()

	_, err = m.Acquire(context.Background(), "accounts")
	assert.ErrorIs(t, err, apperrors.ErrLockTimeout)
}

func TestAcquire_TimeoutReleasesPartialHoldings(t *testing.T) {
	m := locking.NewManager(50*time.Millisecond, order)

	// Hold investments so a multi-lock acquire takes accounts then stalls.
	release, err := m.Acquire(context.Background(), "investments")
	require.NoError(t, err)

	_, err = m.Acquire(context.Background(), "accounts", "investments")
	require.ErrorIs(t, err, apperrors.ErrLockTimeout)
	release()

	// accounts must have been released on the failed attempt.
	release, err = m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	release()
}

func TestAcquire_ContextCancellation(t *testing.T) {
	m := locking.NewManager(time.Minute, order)

	release, err := m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = m.Acquire(ctx, "accounts")
	assert.ErrorIs(t, err, apperrors.ErrLockTimeout)
}

func TestAcquire_DuplicateNames(t *testing.T) {
	m := locking.NewManager(50*time.Millisecond, order)

	release, err := m.Acquire(context.Background(), "accounts", "accounts")
	require.NoError(t, err)
	release()

	release, err = m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	release()
}

func TestReleaseIsIdempotent(t *testing.T) {
	m := locking.NewManager(50*time.Millisecond, order)

	release, err := m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	release()
	release()

	release, err = m.Acquire(context.Background(), "accounts")
	require.NoError(t, err)
	release()
}

func TestConcurrentMultiLockAcquisition(t *testing.T) {
	m := locking.NewManager(5*time.Second, order)

	// Workers request overlapping lock sets in arbitrary caller order; the
	// fixed acquisition order keeps them from deadlocking.
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		names := []string{"transactions_log", "accounts", "investments"}
		if i%2 == 0 {
			names = []string{"investments", "accounts"}
		}
		go func(names []string) {
			defer wg.Done()
			release, err := m.Acquire(context.Background(), names...)
			if err != nil {
				return
			}
			counter++
			release()
		}(names)
	}
	wg.Wait()
	assert.Equal(t, 20, counter, "all workers complete and the critical section is exclusive")
}
