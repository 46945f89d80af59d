// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/service"
	"github.com/MKhiriev/go-auth-guard/internal/store"
	"github.com/MKhiriev/go-auth-guard/models"
)

// setupPostgres starts a PostgreSQL container and returns a migrated
// connection to it.
func setupPostgres(t *testing.T) *store.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("auth_test"),
		postgres.WithUsername("auth"),
		postgres.WithPassword("auth"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := store.NewConnect(ctx, config.DB{Driver: config.DriverPostgres, DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func TestPostgres_Repositories(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	accounts := store.NewAccountRepository(db.DB, db.Dialect())
	history := store.NewCredentialHistoryRepository(db.DB, db.Dialect())

	t.Run("create and find", func(t *testing.T) {
		created, err := accounts.Create(ctx, "alice", "hash-1", now)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		found, err := accounts.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "hash-1", found.PasswordHash)

		_, err = accounts.Create(ctx, "alice", "hash-2", now)
		assert.ErrorIs(t, err, store.ErrUsernameAlreadyExists)

		_, err = accounts.FindByID(ctx, created.ID+1000)
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})

	t.Run("history keeps the newest entries", func(t *testing.T) {
		account, err := accounts.Create(ctx, "bob", "h0", now)
		require.NoError(t, err)

		for i, h := range []string{"h0", "h1", "h2", "h3"} {
			require.NoError(t, history.Add(ctx, account.ID, h, now.Add(time.Duration(i)*time.Second)))
		}

		deleted, err := history.Prune(ctx, account.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		recent, err := history.Recent(ctx, account.ID, 10)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "h3", recent[0].PasswordHash)
		assert.Equal(t, "h2", recent[1].PasswordHash)
	})

	t.Run("reset expired locks", func(t *testing.T) {
		expired, err := accounts.Create(ctx, "carol", "h", now)
		require.NoError(t, err)
		live, err := accounts.Create(ctx, "dave", "h", now)
		require.NoError(t, err)

		past, future := now.Add(-time.Minute), now.Add(time.Hour)
		expired.FailedAttempts, expired.LockedUntil, expired.LastFailedAt = 5, &past, &past
		live.FailedAttempts, live.LockedUntil, live.LastFailedAt = 5, &future, &past
		require.NoError(t, accounts.UpdateLockout(ctx, expired))
		require.NoError(t, accounts.UpdateLockout(ctx, live))

		n, err := accounts.ResetExpiredLocks(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := accounts.FindByID(ctx, expired.ID)
		require.NoError(t, err)
		assert.Zero(t, got.FailedAttempts)
		assert.Nil(t, got.LockedUntil)

		got, err = accounts.FindByID(ctx, live.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.FailedAttempts)
		assert.NotNil(t, got.LockedUntil)
	})
}

func TestPostgres_ConcurrentFailedLogins(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	mixedCase, special := true, true
	cfg := config.StructuredConfig{
		App: config.App{TokenSignKey: "it-key", TokenIssuer: "go-auth-guard-it", TokenDuration: time.Hour},
		Auth: config.Auth{
			MaxLoginAttempts:         5,
			LockoutDuration:          15 * time.Minute,
			PasswordMinLength:        12,
			PasswordRequireMixedCase: &mixedCase,
			PasswordRequireSpecial:   &special,
			PasswordHistoryLimit:     5,
			Hash:                     config.Hash{Time: 1, MemoryKiB: 1024, Threads: 1},
		},
	}

	services, err := service.NewServices(store.NewUnitOfWork(db), cfg, models.AppBuildInfo{})
	require.NoError(t, err)

	_, err = services.AccountService.Register(ctx, models.RegisterRequest{
		Username:        "alice",
		Password:        "Sup3r$ecret!",
		ConfirmPassword: "Sup3r$ecret!",
	})
	require.NoError(t, err)

	const attempts = 10
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = services.AccountService.Login(ctx, models.LoginRequest{Username: "alice", Password: "wrong"})
		}()
	}
	wg.Wait()

	var invalid, locked, justLocked int
	for _, err := range errs {
		var lockedErr *service.AccountLockedError
		switch {
		case errors.As(err, &lockedErr):
			locked++
			if lockedErr.JustLocked {
				justLocked++
			}
		case errors.Is(err, service.ErrInvalidCredentials):
			invalid++
		default:
			t.Fatalf("unexpected login error: %v", err)
		}
	}

	assert.Equal(t, 4, invalid)
	assert.Equal(t, 6, locked)
	assert.Equal(t, 1, justLocked)

	account, err := store.NewAccountRepository(db.DB, db.Dialect()).FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, account.IsLocked(time.Now()))
}
