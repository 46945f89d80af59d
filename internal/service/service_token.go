// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/utils"
	"github.com/MKhiriev/go-auth-guard/models"
)

// tokenService is the concrete implementation of TokenService.
// Tokens are HS256 JWTs; nothing is stored server-side.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time
}

// NewTokenService constructs a TokenService from the App configuration.
// The returned service is safe for concurrent use.
func NewTokenService(cfg config.App) TokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
	}
}

// Issue signs a token for account that expires after the configured
// duration.
func (s *tokenService) Issue(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.tokenIssuer, account, s.tokenDuration, s.tokenSignKey, s.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Int64("account_id", account.ID).Msg("error issuing token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Parse validates signature, issuer and expiry of tokenString.
func (s *tokenService) Parse(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return models.Token{}, ErrTokenIsExpired
	}
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "*tokenService.Parse").Msg("token rejected")
		return models.Token{}, ErrTokenIsInvalid
	}

	return token, nil
}
