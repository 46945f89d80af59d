// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/samber/oops"

	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/models"
)

const accountsTable = "accounts"

var accountColumns = []string{
	"id",
	"username",
	"password_hash",
	"failed_attempts",
	"last_failed_at",
	"locked_until",
	"created_at",
	"updated_at",
}

// accountRepository is the SQL implementation of [AccountRepository] for
// both PostgreSQL and SQLite. It works on whatever [DBTX] it is given,
// usually the transaction of the current unit of work.
type accountRepository struct {
	db      DBTX
	dialect Dialect
	sb      sq.StatementBuilderType
}

// NewAccountRepository constructs an [AccountRepository] over db.
func NewAccountRepository(db DBTX, dialect Dialect) AccountRepository {
	return &accountRepository{
		db:      db,
		dialect: dialect,
		sb:      dialect.builder(),
	}
}

func (r *accountRepository) Create(ctx context.Context, username, passwordHash string, now time.Time) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Insert(accountsTable).
		Columns("username", "password_hash", "failed_attempts", "created_at", "updated_at").
		Values(username, passwordHash, 0, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account := models.Account{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&account.ID); err != nil {
		if r.isUniqueViolation(err) {
			log.Debug().Str("func", "*accountRepository.Create").Msg("username already taken")
			return models.Account{}, ErrUsernameAlreadyExists
		}

		log.Err(err).Str("func", "*accountRepository.Create").Msg("error inserting account")
		return models.Account{}, oops.In("store").Code("account_create").
			With("username", username).
			Wrap(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	return account, nil
}

func (r *accountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByUsername", sq.Eq{"username": username}, false)
}

func (r *accountRepository) FindByUsernameForUpdate(ctx context.Context, username string) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByUsernameForUpdate", sq.Eq{"username": username}, true)
}

func (r *accountRepository) FindByID(ctx context.Context, id int64) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByID", sq.Eq{"id": id}, false)
}

// findOne selects a single account. With forUpdate the row stays locked
// until the transaction ends; SQLite has no row locks and relies on
// BEGIN IMMEDIATE instead.
func (r *accountRepository) findOne(ctx context.Context, funcName string, where sq.Eq, forUpdate bool) (models.Account, error) {
	log := logger.FromContext(ctx)

	builder := r.sb.Select(accountColumns...).From(accountsTable).Where(where)
	if forUpdate && r.dialect == DialectPostgres {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting account")
		return models.Account{}, oops.In("store").Code("account_select").
			With("where", fmt.Sprint(where)).
			Wrap(fmt.Errorf("%w: %w", ErrExecutingQuery, err))
	}

	return account, nil
}

func (r *accountRepository) UpdateLockout(ctx context.Context, account models.Account) error {
	query, args, err := r.sb.Update(accountsTable).
		Set("failed_attempts", account.FailedAttempts).
		Set("last_failed_at", nullTime(account.LastFailedAt)).
		Set("locked_until", nullTime(account.LockedUntil)).
		Set("updated_at", account.UpdatedAt).
		Where(sq.Eq{"id": account.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execSingle(ctx, "*accountRepository.UpdateLockout", "account_update_lockout", account.ID, query, args)
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string, now time.Time) error {
	query, args, err := r.sb.Update(accountsTable).
		Set("password_hash", passwordHash).
		Set("updated_at", now).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execSingle(ctx, "*accountRepository.UpdatePasswordHash", "account_update_password", id, query, args)
}

func (r *accountRepository) ResetExpiredLocks(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.sb.Update(accountsTable).
		Set("failed_attempts", 0).
		Set("last_failed_at", nil).
		Set("locked_until", nil).
		Set("updated_at", now).
		Where(sq.And{
			sq.NotEq{"locked_until": nil},
			sq.LtOrEq{"locked_until": now},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.ResetExpiredLocks").Msg("error resetting expired locks")
		return 0, oops.In("store").Code("account_reset_locks").
			Wrap(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

// execSingle runs an UPDATE that must change exactly one account.
func (r *accountRepository) execSingle(ctx context.Context, funcName, code string, id int64, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Int64("account_id", id).Msg("error updating account")
		return oops.In("store").Code(code).
			With("account_id", id).
			Wrap(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

func (r *accountRepository) isUniqueViolation(err error) bool {
	if r.dialect == DialectPostgres {
		return postgresError(err) == pgerrcode.UniqueViolation
	}
	return isSQLiteUniqueViolation(err)
}

func scanAccount(row *sql.Row) (models.Account, error) {
	var (
		account      models.Account
		lastFailedAt sql.NullTime
		lockedUntil  sql.NullTime
	)

	err := row.Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.FailedAttempts,
		&lastFailedAt,
		&lockedUntil,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return models.Account{}, err
	}

	account.LastFailedAt = timePtr(lastFailedAt)
	account.LockedUntil = timePtr(lockedUntil)

	return account, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
