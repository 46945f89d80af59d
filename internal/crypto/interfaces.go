// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns plaintext passwords into self-describing hashes and
// checks candidates against them.
//
// Hashes are stored in PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// Legacy bcrypt hashes ($2a$, $2b$, $2y$) are accepted by Verify so that
// imported accounts keep working; Hash always produces argon2id.
type PasswordHasher interface {
	// Hash produces an argon2id hash of password with a fresh random salt.
	// Returns ErrEmptyPassword for an empty password.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash.
	// Returns (true, nil) on match, (false, nil) on mismatch and
	// (false, ErrMalformedHash) when encodedHash cannot be parsed.
	Verify(password, encodedHash string) (bool, error)

	// NeedsUpgrade reports whether encodedHash was produced by another
	// algorithm or with parameters other than the configured ones.
	NeedsUpgrade(encodedHash string) bool
}
