// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/store"
)

// passwordHistory enforces non-reuse of the newest limit passwords of an
// account. A limit below 1 disables the check; the current password is
// still recorded.
type passwordHistory struct {
	credentials *credentialStore
	limit       int
}

func newPasswordHistory(credentials *credentialStore, limit int) *passwordHistory {
	return &passwordHistory{credentials: credentials, limit: limit}
}

// wouldReuse compares candidate against the newest entries, newest first.
func (h *passwordHistory) wouldReuse(ctx context.Context, repo store.CredentialHistoryRepository, accountID int64, candidate string) (bool, error) {
	if h.limit <= 0 {
		return false, nil
	}

	entries, err := repo.Recent(ctx, accountID, h.limit)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		if h.credentials.verify(ctx, entry.PasswordHash, candidate) {
			logger.FromContext(ctx).Debug().
				Int64("account_id", accountID).
				Int64("history_entry_id", entry.ID).
				Msg("password matches a history entry")
			return true, nil
		}
	}

	return false, nil
}

// record appends hash and evicts everything older than the newest limit
// entries.
func (h *passwordHistory) record(ctx context.Context, repo store.CredentialHistoryRepository, accountID int64, hash string, now time.Time) error {
	if err := repo.Add(ctx, accountID, hash, now); err != nil {
		return err
	}

	_, err := repo.Prune(ctx, accountID, max(h.limit, 1))
	return err
}
