// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Repositories groups the repositories that share one transaction.
type Repositories struct {
	Accounts AccountRepository
	History  CredentialHistoryRepository
}

// NewRepositories binds all repositories to db, which is usually a
// transaction.
func NewRepositories(db DBTX, dialect Dialect) Repositories {
	return Repositories{
		Accounts: NewAccountRepository(db, dialect),
		History:  NewCredentialHistoryRepository(db, dialect),
	}
}
