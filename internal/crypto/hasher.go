// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	argon2Prefix  = "$argon2id$"
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

// Argon2Params holds argon2id tuning parameters. Stored per hasher so they
// can be adjusted per deployment target.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultArgon2Params are the parameters recommended by OWASP:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
}

// passwordHasher is the private implementation of [PasswordHasher].
type passwordHasher struct {
	params Argon2Params
	rand   io.Reader
}

// NewPasswordHasher constructs a [PasswordHasher] producing argon2id hashes
// with the given parameters. Zero fields fall back to [DefaultArgon2Params].
func NewPasswordHasher(params Argon2Params) PasswordHasher {
	if params.Time == 0 {
		params.Time = DefaultArgon2Params.Time
	}
	if params.Memory == 0 {
		params.Memory = DefaultArgon2Params.Memory
	}
	if params.Threads == 0 {
		params.Threads = DefaultArgon2Params.Threads
	}

	return &passwordHasher{
		params: params,
		rand:   rand.Reader,
	}
}

// Hash implements [PasswordHasher].
func (h *passwordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, argon2SaltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, argon2KeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify implements [PasswordHasher].
func (h *passwordHasher) Verify(password, encodedHash string) (bool, error) {
	if isBcrypt(encodedHash) {
		return verifyBcrypt(password, encodedHash)
	}

	hash, err := decodeArgon2(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), hash.salt, hash.params.Time, hash.params.Memory, hash.params.Threads, uint32(len(hash.key)))

	return subtle.ConstantTimeCompare(computed, hash.key) == 1, nil
}

// NeedsUpgrade implements [PasswordHasher].
func (h *passwordHasher) NeedsUpgrade(encodedHash string) bool {
	hash, err := decodeArgon2(encodedHash)
	if err != nil {
		return true
	}

	return hash.params != h.params
}

type argon2Hash struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeArgon2(encodedHash string) (*argon2Hash, error) {
	if !strings.HasPrefix(encodedHash, argon2Prefix) {
		return nil, fmt.Errorf("%w: unsupported algorithm", ErrMalformedHash)
	}

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: invalid format", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if threads == 0 || threads > 255 || time == 0 {
		return nil, fmt.Errorf("%w: invalid parameters", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
	if len(key) == 0 || len(key) > 1024 {
		return nil, fmt.Errorf("%w: invalid key length %d", ErrMalformedHash, len(key))
	}

	return &argon2Hash{
		params: Argon2Params{Time: time, Memory: memory, Threads: uint8(threads)},
		salt:   salt,
		key:    key,
	}, nil
}

func isBcrypt(encodedHash string) bool {
	return strings.HasPrefix(encodedHash, "$2a$") ||
		strings.HasPrefix(encodedHash, "$2b$") ||
		strings.HasPrefix(encodedHash, "$2y$")
}

func verifyBcrypt(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
}
