// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a typed client for the go-auth-guard HTTP API.
//
// Non-2xx answers are returned as [*APIError], which unwraps to one of the
// sentinels in errors.go so callers can use [errors.Is] (for example
// [ErrForbidden] for a locked account) and [errors.As] to read the decoded
// error body.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-auth-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/auth_api_mock.go -package=mock

// AuthAPI talks to the /api/auth endpoints of a go-auth-guard server.
type AuthAPI interface {
	// SetToken stores the bearer token attached to authenticated calls.
	SetToken(token string)

	// Token returns the stored bearer token or an empty string.
	Token() string

	// PasswordRequirements fetches the active password policy.
	PasswordRequirements(ctx context.Context) (models.PasswordPolicy, error)

	// Register creates a new account.
	Register(ctx context.Context, req models.RegisterRequest) (models.MessageResponse, error)

	// Login authenticates and, on success, stores the returned access token
	// via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error)

	// ChangePassword changes the password of the account behind the stored
	// token.
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.MessageResponse, error)

	// CheckAuth reports the account behind the stored token.
	CheckAuth(ctx context.Context) (models.CheckAuthResponse, error)

	// Protected calls the sample protected endpoint.
	Protected(ctx context.Context) (models.ProtectedResponse, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}
