// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// CredentialHistoryEntry is one previously set password hash of an account.
// Entries are kept newest first up to the configured history limit.
type CredentialHistoryEntry struct {
	ID           int64
	AccountID    int64
	PasswordHash string
	CreatedAt    time.Time
}

// TableName returns the name of the database table
// associated with the CredentialHistoryEntry model.
func (e CredentialHistoryEntry) TableName() string {
	return "credential_history"
}
