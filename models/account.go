// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Account represents a registered identity together with its lockout state.
// Lock state is derived solely from LockedUntil compared with the current
// time; there is no separate boolean flag.
type Account struct {
	// ID is the internal unique identifier of the account.
	ID int64 `json:"id"`

	// Username is the unique, immutable login name.
	Username string `json:"username"`

	// PasswordHash is the PHC-encoded hash of the current password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	// FailedAttempts counts consecutive failed logins since the last
	// success or reset.
	FailedAttempts int `json:"-"`

	// LastFailedAt is the time of the most recent failed login, if any.
	LastFailedAt *time.Time `json:"-"`

	// LockedUntil is the lock expiry. The account is locked while it is in
	// the future.
	LockedUntil *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// IsLocked reports whether the account is locked at now.
func (a Account) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}

// HasStaleLock reports whether a lock expiry is recorded but already passed.
func (a Account) HasStaleLock(now time.Time) bool {
	return a.LockedUntil != nil && !a.LockedUntil.After(now)
}

// Public returns the externally visible projection of the account.
func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Username:  a.Username,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// PublicAccount is the account representation returned by the HTTP API.
type PublicAccount struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
