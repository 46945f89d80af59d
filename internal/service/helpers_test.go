// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/crypto"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/store"
)

// testHashParams keep argon2id cheap in tests.
var testHashParams = crypto.Argon2Params{Time: 1, Memory: 1024, Threads: 1}

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func boolPtr(v bool) *bool { return &v }

func testAuthConfig() config.Auth {
	return config.Auth{
		MaxLoginAttempts:         5,
		LockoutDuration:          15 * time.Minute,
		PasswordMinLength:        12,
		PasswordRequireMixedCase: boolPtr(true),
		PasswordRequireSpecial:   boolPtr(true),
		PasswordHistoryLimit:     5,
	}
}

func testAppConfig() config.App {
	return config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "go-auth-guard-test",
		TokenDuration: time.Hour,
	}
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// newTestDB opens a migrated in-memory SQLite database private to t.
func newTestDB(t *testing.T) *store.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := store.NewConnectSQLite(context.Background(), config.DB{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

// newTestAccountService builds the real account service over db with a
// controllable clock.
func newTestAccountService(t *testing.T, db *store.DB, cfg config.Auth, params crypto.Argon2Params) (*accountService, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: testStart}
	svc := NewAccountService(
		store.NewUnitOfWork(db),
		crypto.NewPasswordHasher(params),
		NewTokenService(testAppConfig()),
		cfg,
	).(*accountService)
	svc.now = clock.Now

	return svc, clock
}
