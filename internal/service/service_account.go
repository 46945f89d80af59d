// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/crypto"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/metrics"
	"github.com/MKhiriev/go-auth-guard/internal/store"
	"github.com/MKhiriev/go-auth-guard/internal/validators"
	"github.com/MKhiriev/go-auth-guard/models"
)

// accountService is the concrete implementation of AccountService.
// Every use case runs as one unit of work, so account and history changes
// are committed together or not at all.
type accountService struct {
	uow store.UnitOfWork

	requestValidator  validators.Validator
	passwordValidator *validators.PasswordValidator

	credentials *credentialStore
	history     *passwordHistory
	lockout     *lockoutTracker
	tokens      TokenService

	now func() time.Time
}

// NewAccountService wires the account directory from the Auth policy.
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(uow store.UnitOfWork, hasher crypto.PasswordHasher, tokens TokenService, cfg config.Auth) AccountService {
	credentials := newCredentialStore(hasher)

	return &accountService{
		uow:              uow,
		requestValidator: validators.NewAccountRequestValidator(),
		passwordValidator: validators.NewPasswordValidator(models.PasswordPolicy{
			MinLength:        cfg.PasswordMinLength,
			RequireMixedCase: cfg.RequireMixedCase(),
			RequireSpecial:   cfg.RequireSpecial(),
			HistoryLimit:     cfg.PasswordHistoryLimit,
		}),
		credentials: credentials,
		history:     newPasswordHistory(credentials, cfg.PasswordHistoryLimit),
		lockout:     newLockoutTracker(cfg.MaxLoginAttempts, cfg.LockoutDuration),
		tokens:      tokens,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register validates the request, hashes the password and stores the
// account together with its first history entry.
//
// Returns the created account or:
//   - a *validators.MissingFieldsError, validators.ErrInvalidUsername or a
//     *validators.PolicyViolation for rejected input.
//   - ErrUsernameTaken if the username is already registered.
func (s *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	log := logger.FromContext(ctx).With().Str("func", "*accountService.Register").Str("username", req.Username).Logger()

	if err := s.requestValidator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("register request rejected")
		metrics.RecordRegistration(metrics.OutcomeRejected)
		return models.Account{}, err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		_, err := repos.Accounts.FindByUsername(ctx, req.Username)
		if err == nil {
			return ErrUsernameTaken
		}
		if errors.Is(err, store.ErrAccountNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return models.Account{}, s.registrationFailed(log, err)
	}

	if err = s.passwordValidator.ValidatePassword(req.Password, req.ConfirmPassword); err != nil {
		log.Debug().Err(err).Msg("password rejected by policy")
		metrics.RecordRegistration(metrics.OutcomeRejected)
		return models.Account{}, err
	}

	hash, err := s.credentials.set(req.Password)
	if err != nil {
		return models.Account{}, s.registrationFailed(log, err)
	}

	var account models.Account
	err = s.uow.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		now := s.now()

		created, err := repos.Accounts.Create(ctx, req.Username, hash, now)
		if err != nil {
			return err
		}
		if err = s.history.record(ctx, repos.History, created.ID, hash, now); err != nil {
			return err
		}

		account = created
		return nil
	})
	if err != nil {
		return models.Account{}, s.registrationFailed(log, err)
	}

	log.Info().Int64("account_id", account.ID).Msg("account registered")
	metrics.RecordRegistration(metrics.OutcomeSuccess)

	return account, nil
}

func (s *accountService) registrationFailed(log zerolog.Logger, err error) error {
	switch {
	case errors.Is(err, ErrUsernameTaken):
		metrics.RecordRegistration(metrics.OutcomeDuplicate)
		return err
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		metrics.RecordRegistration(metrics.OutcomeDuplicate)
		return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	case errors.Is(err, ErrInvalidDataProvided):
		metrics.RecordRegistration(metrics.OutcomeRejected)
		return err
	}

	log.Err(err).Msg("account registration ended with error")
	metrics.RecordRegistration(metrics.OutcomeError)
	return fmt.Errorf("account registration ended with error: %w", err)
}

// loginResult carries the outcome of the login transaction. Failures are
// carried here instead of being returned from the unit of work so that the
// updated lockout state is committed.
type loginResult struct {
	account    models.Account
	unknown    bool
	failure    error
	justLocked bool
}

// Login authenticates username/password.
//
// The account row stays locked for the whole read-modify-write of the
// lockout state, so concurrent attempts on one account are serialised.
// A stale lock is cleared first; a live lock rejects the attempt whatever
// the password. A wrong password counts towards the lockout.
func (s *accountService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	log := logger.FromContext(ctx).With().Str("func", "*accountService.Login").Str("username", req.Username).Logger()

	if err := s.requestValidator.Validate(ctx, req, validators.FieldRequired); err != nil {
		log.Debug().Err(err).Msg("login request rejected")
		return models.Session{}, err
	}

	var result loginResult
	err := s.uow.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		result = loginResult{}
		now := s.now()

		account, err := repos.Accounts.FindByUsernameForUpdate(ctx, req.Username)
		if errors.Is(err, store.ErrAccountNotFound) {
			result.unknown = true
			return nil
		}
		if err != nil {
			return err
		}

		changed := s.lockout.resetStale(&account, now)

		if account.IsLocked(now) {
			result.failure = &AccountLockedError{LockedUntil: *account.LockedUntil}
			return nil
		}

		if !s.credentials.verify(ctx, account.PasswordHash, req.Password) {
			result.justLocked = s.lockout.recordFailure(&account, now)
			if err = repos.Accounts.UpdateLockout(ctx, account); err != nil {
				return err
			}

			if remaining := s.lockout.remaining(account); remaining <= 0 {
				result.failure = &AccountLockedError{LockedUntil: *account.LockedUntil, JustLocked: result.justLocked}
			} else {
				result.failure = &InvalidCredentialsError{RemainingAttempts: remaining}
			}
			return nil
		}

		if s.lockout.recordSuccess(&account, now) || changed {
			if err = repos.Accounts.UpdateLockout(ctx, account); err != nil {
				return err
			}
		}

		if s.credentials.needsUpgrade(account.PasswordHash) {
			if err = s.upgradeHash(ctx, repos, &account, req.Password, now); err != nil {
				return err
			}
		}

		result.account = account
		return nil
	})
	if err != nil {
		log.Err(err).Msg("login ended with error")
		metrics.RecordLogin(metrics.OutcomeError, false)
		return models.Session{}, fmt.Errorf("login ended with error: %w", err)
	}

	switch {
	case result.unknown:
		s.credentials.verifyDummy(ctx, req.Password)
		log.Info().Msg("login for unknown username")
		metrics.RecordLogin(metrics.OutcomeInvalidCredentials, false)
		return models.Session{}, ErrInvalidCredentials

	case result.failure != nil:
		var locked *AccountLockedError
		if errors.As(result.failure, &locked) {
			log.Warn().Time("locked_until", locked.LockedUntil).Bool("just_locked", locked.JustLocked).Msg("login rejected: account locked")
			metrics.RecordLogin(metrics.OutcomeLocked, locked.JustLocked)
		} else {
			log.Info().Err(result.failure).Msg("login rejected: wrong password")
			metrics.RecordLogin(metrics.OutcomeInvalidCredentials, false)
		}
		return models.Session{}, result.failure
	}

	token, err := s.tokens.Issue(ctx, result.account)
	if err != nil {
		metrics.RecordLogin(metrics.OutcomeError, false)
		return models.Session{}, err
	}

	log.Info().Int64("account_id", result.account.ID).Msg("login succeeded")
	metrics.RecordLogin(metrics.OutcomeSuccess, false)

	return models.Session{Token: &token, Account: result.account}, nil
}

// upgradeHash re-hashes a verified password produced with outdated
// parameters or a legacy algorithm. A hashing failure only skips the
// upgrade; a store failure fails the unit of work.
func (s *accountService) upgradeHash(ctx context.Context, repos store.Repositories, account *models.Account, password string, now time.Time) error {
	log := logger.FromContext(ctx)

	hash, err := s.credentials.set(password)
	if err != nil {
		log.Warn().Err(err).Int64("account_id", account.ID).Msg("error re-hashing password")
		return nil
	}
	if err = repos.Accounts.UpdatePasswordHash(ctx, account.ID, hash, now); err != nil {
		return err
	}

	account.PasswordHash = hash
	account.UpdatedAt = now
	log.Info().Int64("account_id", account.ID).Msg("password hash upgraded")
	return nil
}

// ChangePassword verifies the current password, validates the new one
// against the policy and the history, then stores it and records it in the
// history atomically. A wrong current password does not count towards the
// login lockout.
func (s *accountService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx).With().Str("func", "*accountService.ChangePassword").Int64("account_id", req.AccountID).Logger()

	if err := s.requestValidator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Msg("change password request rejected")
		metrics.RecordPasswordChange(metrics.OutcomeRejected)
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		account, err := repos.Accounts.FindByID(ctx, req.AccountID)
		if errors.Is(err, store.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}

		if !s.credentials.verify(ctx, account.PasswordHash, req.CurrentPassword) {
			return ErrCurrentPasswordIncorrect
		}

		if err = s.passwordValidator.ValidatePassword(req.NewPassword, req.ConfirmPassword); err != nil {
			return err
		}

		reused, err := s.history.wouldReuse(ctx, repos.History, account.ID, req.NewPassword)
		if err != nil {
			return err
		}
		if reused {
			return ErrPasswordReused
		}

		hash, err := s.credentials.set(req.NewPassword)
		if err != nil {
			return err
		}

		now := s.now()
		if err = repos.Accounts.UpdatePasswordHash(ctx, account.ID, hash, now); err != nil {
			return err
		}
		return s.history.record(ctx, repos.History, account.ID, hash, now)
	})

	var violation *validators.PolicyViolation
	switch {
	case err == nil:
		log.Info().Msg("password changed")
		metrics.RecordPasswordChange(metrics.OutcomeSuccess)
		return nil
	case errors.Is(err, ErrPasswordReused):
		log.Info().Msg("password change rejected: reuse")
		metrics.RecordPasswordChange(metrics.OutcomeReused)
		return err
	case errors.Is(err, ErrCurrentPasswordIncorrect):
		log.Info().Msg("password change rejected: wrong current password")
		metrics.RecordPasswordChange(metrics.OutcomeInvalidCredentials)
		return err
	case errors.As(err, &violation), errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrInvalidDataProvided):
		log.Debug().Err(err).Msg("password change rejected")
		metrics.RecordPasswordChange(metrics.OutcomeRejected)
		return err
	}

	log.Err(err).Msg("password change ended with error")
	metrics.RecordPasswordChange(metrics.OutcomeError)
	return fmt.Errorf("password change ended with error: %w", err)
}

// GetAccount loads the account behind an authenticated request.
func (s *accountService) GetAccount(ctx context.Context, accountID int64) (models.Account, error) {
	var account models.Account
	err := s.uow.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		found, err := repos.Accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		account = found
		return nil
	})
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.GetAccount").Int64("account_id", accountID).Msg("account lookup failed")
		return models.Account{}, fmt.Errorf("account lookup failed: %w", err)
	}

	return account, nil
}

func (s *accountService) PasswordRequirements() models.PasswordPolicy {
	return s.passwordValidator.Policy()
}

func (s *accountService) ResetExpiredLocks(ctx context.Context) (int64, error) {
	var reset int64
	err := s.uow.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		n, err := repos.Accounts.ResetExpiredLocks(ctx, s.now())
		if err != nil {
			return err
		}
		reset = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error resetting expired locks: %w", err)
	}

	metrics.RecordExpiredLocksReset(reset)
	return reset, nil
}
