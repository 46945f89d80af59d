// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-guard/internal/logger"
)

// lockSweeper periodically clears the lockout state of accounts whose lock
// has expired, so stale counters do not linger until the next login.
type lockSweeper struct {
	accounts LockResetter
	interval time.Duration
	logger   *logger.Logger
}

func newLockSweeper(accounts LockResetter, interval time.Duration, logger *logger.Logger) *lockSweeper {
	return &lockSweeper{accounts: accounts, interval: interval, logger: logger}
}

func (s *lockSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("lock sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("lock sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *lockSweeper) sweep(ctx context.Context) {
	n, err := s.accounts.ResetExpiredLocks(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Msg("error resetting expired locks")
		}
		return
	}

	if n > 0 {
		s.logger.Info().Int64("accounts", n).Msg("expired locks reset")
	}
}
