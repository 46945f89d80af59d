// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values used when no configuration source sets a field.
const (
	DefaultTokenIssuer       = "go-auth-guard"
	DefaultTokenDuration     = time.Hour
	DefaultLogLevel          = "debug"
	DefaultMaxLoginAttempts  = 5
	DefaultLockoutDuration   = 15 * time.Minute
	DefaultPasswordMinLength = 12
	DefaultHistoryLimit      = 5
	DefaultDriver            = DriverPostgres
	DefaultHTTPAddress       = "localhost:8080"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultLockSweepInterval = time.Minute

	// argon2id parameters recommended by OWASP.
	DefaultHashTime      uint32 = 1
	DefaultHashMemoryKiB uint32 = 64 * 1024
	DefaultHashThreads   uint8  = 4
)

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
			LogLevel:      DefaultLogLevel,
		},
		Auth: Auth{
			MaxLoginAttempts:         DefaultMaxLoginAttempts,
			LockoutDuration:          DefaultLockoutDuration,
			PasswordMinLength:        DefaultPasswordMinLength,
			PasswordRequireMixedCase: boolPtr(true),
			PasswordRequireSpecial:   boolPtr(true),
			PasswordHistoryLimit:     DefaultHistoryLimit,
			Hash: Hash{
				Time:      DefaultHashTime,
				MemoryKiB: DefaultHashMemoryKiB,
				Threads:   DefaultHashThreads,
			},
		},
		Storage: Storage{
			DB: DB{Driver: DefaultDriver},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Workers: Workers{
			LockSweepInterval: DefaultLockSweepInterval,
		},
	}
}

func boolPtr(b bool) *bool {
	return &b
}
