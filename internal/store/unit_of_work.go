// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-auth-guard/internal/logger"
)

const (
	defaultMaxRetries  = 3
	defaultBackoffBase = 20 * time.Millisecond
)

// sqlUnitOfWork runs each unit in its own transaction and retries it while
// the failure is classified as [Retryable].
type sqlUnitOfWork struct {
	db         *DB
	maxRetries uint64
	base       time.Duration
}

// NewUnitOfWork constructs a [UnitOfWork] over db.
func NewUnitOfWork(db *DB) UnitOfWork {
	return &sqlUnitOfWork{
		db:         db,
		maxRetries: defaultMaxRetries,
		base:       defaultBackoffBase,
	}
}

// Do implements [UnitOfWork]. fn may run more than once, so it must not have
// side effects outside the repositories it is given.
func (u *sqlUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	log := logger.FromContext(ctx)
	backoff := retry.WithMaxRetries(u.maxRetries, retry.NewExponential(u.base))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := WithTx(ctx, u.db.DB, nil, func(ctx context.Context, tx DBTX) error {
			return fn(ctx, NewRepositories(tx, u.db.dialect))
		})
		if err == nil {
			return nil
		}

		if u.db.errorClassificator != nil && u.db.errorClassificator.Classify(err) == Retryable {
			log.Warn().Err(err).Int("attempt", attempt).Str("func", "*sqlUnitOfWork.Do").Msg("retrying unit of work")
			return retry.RetryableError(err)
		}
		return err
	})
}
