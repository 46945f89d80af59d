// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, body string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(body)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.App.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/auth"
	return cfg
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a config without any source fails
// validation.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that non-zero fields of later configs
// override earlier ones and zero fields leave them untouched.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenSignKey: "env-key", Version: "1.0.0"}},
		&StructuredConfig{
			App:     App{TokenSignKey: "flag-key"},
			Storage: Storage{DB: DB{DSN: "postgres://flags/auth"}},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.App.TokenSignKey)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "postgres://flags/auth", cfg.Storage.DB.DSN)
	assert.Equal(t, DefaultMaxLoginAttempts, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, DefaultLockoutDuration, cfg.Auth.LockoutDuration)
}

// TestBuild_ExplicitFalseOverridesDefault verifies that a pointer switch set
// to false by a later source replaces the default true.
func TestBuild_ExplicitFalseOverridesDefault(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig(), &StructuredConfig{
		Auth: Auth{PasswordRequireSpecial: boolPtr(false)},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.RequireSpecial())
	assert.True(t, cfg.Auth.RequireMixedCase())
}

func TestBuild_Defaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, validConfig())

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, 12, cfg.Auth.PasswordMinLength)
	assert.True(t, cfg.Auth.RequireMixedCase())
	assert.True(t, cfg.Auth.RequireSpecial())
	assert.Equal(t, 5, cfg.Auth.PasswordHistoryLimit)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "empty token key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero attempts",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.MaxLoginAttempts = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero lockout",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.LockoutDuration = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero min length",
			mutate:  func(cfg *StructuredConfig) { cfg.Auth.PasswordMinLength = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "unknown driver",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.Driver = "mysql" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "negative sweep interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.LockSweepInterval = -time.Second },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_VERSION", "env-version")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
}

func TestWithEnv_SetsError_OnBadValue(t *testing.T) {
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "five")

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags([]string{"-token-sign-key", "k"}))
	require.Len(t, b.configs, 1)
	assert.Equal(t, "k", b.configs[0].App.TokenSignKey)

	b.withFlags([]string{"-nope"})
	assert.Error(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	assert.Same(t, b, b.withJSON())

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, `{"app":{"version":"json-version","token_issuer":"json-issuer"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "json-issuer", b.configs[1].App.TokenIssuer)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload, err := json.Marshal(map[string]any{"app": map[string]any{"version": "last-wins"}})
	require.NoError(t, err)
	path := writeTempJSONConfig(t, string(payload))

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/nonexistent/first.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_AllSources(t *testing.T) {
	path := writeTempJSONConfig(t, `{"auth":{"max_login_attempts":7}}`)
	t.Setenv("APP_TOKEN_SIGN_KEY", "env-key")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://env/auth")
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "3")

	cfg, err := GetStructuredConfig([]string{"-c", path, "-password-min-length", "16"})
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.App.TokenSignKey)
	assert.Equal(t, "postgres://env/auth", cfg.Storage.DB.DSN)
	assert.Equal(t, 16, cfg.Auth.PasswordMinLength)
	assert.Equal(t, 7, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
}
