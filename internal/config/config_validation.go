// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// ErrInvalid*Configs sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Auth.MaxLoginAttempts <= 0 {
		return fmt.Errorf("%w: max login attempts must be positive", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.LockoutDuration <= 0 {
		return fmt.Errorf("%w: lockout duration must be positive", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.PasswordMinLength <= 0 {
		return fmt.Errorf("%w: password min length must be positive", ErrInvalidAuthConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is empty", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is empty", ErrInvalidServerConfigs)
	}

	if cfg.Workers.LockSweepInterval < 0 {
		return fmt.Errorf("%w: negative lock sweep interval", ErrInvalidWorkerConfigs)
	}

	return nil
}
