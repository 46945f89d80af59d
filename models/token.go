// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the claim set of a session token: the registered claims plus
// the account's username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Token wraps a session JWT with convenience accessors for authentication
// flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [Claims] for claim access (subject, expiry, username, etc.).
//
// AccountID is a cached, parsed copy of the "sub" (subject) claim.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	Claims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`

	// AccountID is the owner identifier extracted from the "sub" claim.
	AccountID int64 `json:"-"`
}

// GetAccountID extracts the account identifier from the token's "sub"
// claim and parses it as a base-10 int64.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (t *Token) GetAccountID() (int64, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting AccountID from token: %w", err)
	}

	accountID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting AccountID from token to int64: %w", err)
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// Session is the result of a successful login.
type Session struct {
	Token   *Token
	Account Account
}
