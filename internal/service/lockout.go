// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-auth-guard/models"
)

// lockoutTracker holds the failed-login rules. It mutates accounts in
// memory; callers persist the result inside the login transaction.
type lockoutTracker struct {
	maxAttempts int
	duration    time.Duration
}

func newLockoutTracker(maxAttempts int, duration time.Duration) *lockoutTracker {
	return &lockoutTracker{maxAttempts: maxAttempts, duration: duration}
}

// resetStale clears an expired lock so the next attempt starts from a
// fresh counter. Reports whether the account changed.
func (l *lockoutTracker) resetStale(account *models.Account, now time.Time) bool {
	if !account.HasStaleLock(now) {
		return false
	}
	l.reset(account, now)
	return true
}

// recordFailure counts a failed attempt and locks the account once the
// counter reaches maxAttempts. Reports whether this attempt locked it.
func (l *lockoutTracker) recordFailure(account *models.Account, now time.Time) bool {
	failedAt := now
	account.FailedAttempts++
	account.LastFailedAt = &failedAt
	account.UpdatedAt = now

	if account.FailedAttempts >= l.maxAttempts {
		lockedUntil := now.Add(l.duration)
		account.LockedUntil = &lockedUntil
		return true
	}
	return false
}

// recordSuccess clears the counter. Reports whether anything changed.
func (l *lockoutTracker) recordSuccess(account *models.Account, now time.Time) bool {
	if account.FailedAttempts == 0 && account.LastFailedAt == nil && account.LockedUntil == nil {
		return false
	}
	l.reset(account, now)
	return true
}

func (l *lockoutTracker) reset(account *models.Account, now time.Time) {
	account.FailedAttempts = 0
	account.LastFailedAt = nil
	account.LockedUntil = nil
	account.UpdatedAt = now
}

// remaining is the number of failures left before lockout; zero or less
// means the account is locked.
func (l *lockoutTracker) remaining(account models.Account) int {
	return l.maxAttempts - account.FailedAttempts
}
