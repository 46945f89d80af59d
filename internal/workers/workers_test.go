// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockWorker counts Run calls and blocks until ctx is done.
type mockWorker struct {
	runCount atomic.Int32
}

func (m *mockWorker) Run(ctx context.Context) {
	m.runCount.Add(1)
	<-ctx.Done()
}

// fakeResetter counts ResetExpiredLocks calls.
type fakeResetter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeResetter) ResetExpiredLocks(context.Context) (int64, error) {
	f.calls.Add(1)
	return 1, f.err
}

func runAsync(ctx context.Context, w Worker) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return done
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1, w2, w3 := &mockWorker{}, &mockWorker{}, &mockWorker{}
	ws := &Workers{workers: []Worker{w1, w2, w3}}

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, ws)

	require.Eventually(t, func() bool {
		return w1.runCount.Load() == 1 && w2.runCount.Load() == 1 && w3.runCount.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}

	// returns immediately without workers
	ws.Run(context.Background())
}

func TestNewWorkers(t *testing.T) {
	services := &service.Services{AccountService: nil}

	t.Run("sweeper enabled", func(t *testing.T) {
		ws := NewWorkers(services, config.Workers{LockSweepInterval: time.Minute}, logger.Nop())
		require.Len(t, ws.workers, 1)
		assert.IsType(t, &lockSweeper{}, ws.workers[0])
	})

	t.Run("sweeper disabled", func(t *testing.T) {
		ws := NewWorkers(services, config.Workers{}, logger.Nop())
		assert.Empty(t, ws.workers)
	})
}

func TestLockSweeper_SweepsUntilCancelled(t *testing.T) {
	resetter := &fakeResetter{}
	sweeper := newLockSweeper(resetter, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, sweeper)

	require.Eventually(t, func() bool { return resetter.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}

	stopped := resetter.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, resetter.calls.Load(), "no sweeps after stop")
}

func TestLockSweeper_KeepsRunningAfterError(t *testing.T) {
	resetter := &fakeResetter{err: errors.New("database is locked")}
	sweeper := newLockSweeper(resetter, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	require.Eventually(t, func() bool { return resetter.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	wg.Wait()
}
