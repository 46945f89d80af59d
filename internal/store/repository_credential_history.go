// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/samber/oops"

	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/models"
)

const credentialHistoryTable = "credential_history"

// credentialHistoryRepository is the SQL implementation of
// [CredentialHistoryRepository]. Recency is the insertion order, so entries
// are ordered by their serial id.
type credentialHistoryRepository struct {
	db DBTX
	sb sq.StatementBuilderType
}

// NewCredentialHistoryRepository constructs a [CredentialHistoryRepository]
// over db.
func NewCredentialHistoryRepository(db DBTX, dialect Dialect) CredentialHistoryRepository {
	return &credentialHistoryRepository{
		db: db,
		sb: dialect.builder(),
	}
}

func (r *credentialHistoryRepository) Add(ctx context.Context, accountID int64, passwordHash string, now time.Time) error {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Insert(credentialHistoryTable).
		Columns("account_id", "password_hash", "created_at").
		Values(accountID, passwordHash, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*credentialHistoryRepository.Add").Int64("account_id", accountID).Msg("error inserting history entry")
		return oops.In("store").Code("history_add").
			With("account_id", accountID).
			Wrap(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return nil
}

func (r *credentialHistoryRepository) Recent(ctx context.Context, accountID int64, limit int) ([]models.CredentialHistoryEntry, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		return nil, nil
	}

	query, args, err := r.sb.Select("id", "account_id", "password_hash", "created_at").
		From(credentialHistoryTable).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialHistoryRepository.Recent").Int64("account_id", accountID).Msg("error selecting history")
		return nil, oops.In("store").Code("history_recent").
			With("account_id", accountID).
			Wrap(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}
	defer rows.Close()

	entries := make([]models.CredentialHistoryEntry, 0, limit)
	for rows.Next() {
		var entry models.CredentialHistoryEntry
		if err = rows.Scan(&entry.ID, &entry.AccountID, &entry.PasswordHash, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entries, nil
}

func (r *credentialHistoryRepository) Prune(ctx context.Context, accountID int64, keep int) (int64, error) {
	log := logger.FromContext(ctx)

	if keep < 1 {
		keep = 1
	}

	query, args, err := r.sb.Delete(credentialHistoryTable).
		Where(sq.Eq{"account_id": accountID}).
		Where(sq.Expr(
			"id NOT IN (SELECT id FROM "+credentialHistoryTable+" WHERE account_id = ? ORDER BY id DESC LIMIT ?)",
			accountID, keep,
		)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*credentialHistoryRepository.Prune").Int64("account_id", accountID).Msg("error pruning history")
		return 0, oops.In("store").Code("history_prune").
			With("account_id", accountID).
			Wrap(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return deleted, nil
}
