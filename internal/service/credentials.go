// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-auth-guard/internal/crypto"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
)

// dummyPassword is hashed once and verified against when a login names an
// unknown account, so both paths cost one hash verification.
const dummyPassword = "go-auth-guard-timing-equaliser"

// credentialStore sets and verifies account passwords.
type credentialStore struct {
	hasher crypto.PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func newCredentialStore(hasher crypto.PasswordHasher) *credentialStore {
	return &credentialStore{hasher: hasher}
}

// set returns the hash to store for plaintext.
func (c *credentialStore) set(plaintext string) (string, error) {
	hash, err := c.hasher.Hash(plaintext)
	if errors.Is(err, crypto.ErrEmptyPassword) {
		return "", fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return hash, nil
}

// verify reports whether plaintext matches hash. An empty or malformed hash
// never matches; the parse error is logged, not returned.
func (c *credentialStore) verify(ctx context.Context, hash, plaintext string) bool {
	if hash == "" || plaintext == "" {
		return false
	}

	ok, err := c.hasher.Verify(plaintext, hash)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*credentialStore.verify").Msg("stored password hash cannot be verified")
		return false
	}
	return ok
}

func (c *credentialStore) needsUpgrade(hash string) bool {
	return c.hasher.NeedsUpgrade(hash)
}

// verifyDummy burns one verification for an unknown account.
func (c *credentialStore) verifyDummy(ctx context.Context, plaintext string) {
	c.dummyOnce.Do(func() {
		hash, err := c.hasher.Hash(dummyPassword)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*credentialStore.verifyDummy").Msg("error hashing dummy password")
			return
		}
		c.dummyHash = hash
	})

	if c.dummyHash != "" {
		_, _ = c.hasher.Verify(plaintext, c.dummyHash)
	}
}
