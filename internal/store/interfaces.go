// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-guard/models"
)

// AccountRepository persists accounts and their lockout state.
type AccountRepository interface {
	// Create inserts a new account and returns it with server-assigned
	// fields. Returns ErrUsernameAlreadyExists on a duplicate username.
	Create(ctx context.Context, username, passwordHash string, now time.Time) (models.Account, error)

	// FindByUsername returns ErrAccountNotFound if no account matches.
	FindByUsername(ctx context.Context, username string) (models.Account, error)

	// FindByUsernameForUpdate is FindByUsername that also locks the row
	// until the surrounding transaction ends.
	FindByUsernameForUpdate(ctx context.Context, username string) (models.Account, error)

	// FindByID returns ErrAccountNotFound if no account matches.
	FindByID(ctx context.Context, id int64) (models.Account, error)

	// UpdateLockout stores FailedAttempts, LastFailedAt, LockedUntil and
	// UpdatedAt of account.
	UpdateLockout(ctx context.Context, account models.Account) error

	// UpdatePasswordHash replaces the current password hash.
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string, now time.Time) error

	// ResetExpiredLocks clears the lockout state of every account whose
	// lock expired at or before now and returns the number of accounts
	// reset.
	ResetExpiredLocks(ctx context.Context, now time.Time) (int64, error)
}

// CredentialHistoryRepository persists previously used password hashes.
type CredentialHistoryRepository interface {
	// Add records passwordHash as the newest entry of the account.
	Add(ctx context.Context, accountID int64, passwordHash string, now time.Time) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, accountID int64, limit int) ([]models.CredentialHistoryEntry, error)

	// Prune deletes all but the newest keep entries and returns the number
	// of deleted entries.
	Prune(ctx context.Context, accountID int64, keep int) (int64, error)
}

// UnitOfWork runs a function against repositories bound to one transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// ErrorClassificator decides whether a failed database operation may
// succeed when retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
