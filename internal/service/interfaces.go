// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-auth-guard/models"
)

// AccountService is the account directory: registration, login with
// lockout protection, password changes with history enforcement.
type AccountService interface {
	// Register creates an account and its first history entry atomically.
	Register(ctx context.Context, req models.RegisterRequest) (models.Account, error)

	// Login verifies credentials, maintains the lockout state and issues a
	// session token on success. Failures are ErrInvalidCredentials
	// (possibly as *InvalidCredentialsError) or *AccountLockedError.
	Login(ctx context.Context, req models.LoginRequest) (models.Session, error)

	// ChangePassword replaces the password of req.AccountID after verifying
	// the current one and checking the policy and the history.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error

	// GetAccount returns the account or ErrAccountNotFound.
	GetAccount(ctx context.Context, accountID int64) (models.Account, error)

	// PasswordRequirements returns the policy new passwords must satisfy.
	PasswordRequirements() models.PasswordPolicy

	// ResetExpiredLocks clears the lockout state of every account whose
	// lock has expired and returns how many were reset.
	ResetExpiredLocks(ctx context.Context) (int64, error)
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(ctx context.Context, account models.Account) (models.Token, error)

	// Parse returns ErrTokenIsExpired for expired tokens and
	// ErrTokenIsInvalid for anything else that fails verification.
	Parse(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
