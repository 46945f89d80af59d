// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrUsernameTaken            = errors.New("username already exists")
	ErrInvalidCredentials       = errors.New("invalid username or password")
	ErrCurrentPasswordIncorrect = fmt.Errorf("current password is incorrect: %w", ErrInvalidCredentials)
	ErrAccountLocked            = errors.New("account is locked")
	ErrPasswordReused           = errors.New("password was used recently")
	ErrAccountNotFound          = errors.New("account not found")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// InvalidCredentialsError is returned by a failed login on an existing
// account that is not locked yet. It matches ErrInvalidCredentials.
type InvalidCredentialsError struct {
	RemainingAttempts int
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrInvalidCredentials, e.RemainingAttempts)
}

func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// AccountLockedError is returned by login while the account is locked.
// JustLocked is set when the current attempt caused the lock.
// It matches ErrAccountLocked.
type AccountLockedError struct {
	LockedUntil time.Time
	JustLocked  bool
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("%s until %s", ErrAccountLocked, e.LockedUntil.Format(time.RFC3339))
}

func (e *AccountLockedError) Unwrap() error {
	return ErrAccountLocked
}
