// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/utils"
	"github.com/MKhiriev/go-auth-guard/models"
)

type accountCtxKey struct{}

// auth is an HTTP middleware that enforces bearer token authentication.
//
// The token is verified by [service.TokenService.Parse] and its subject must
// name a live account. On success the account and its ID are stored in the
// request context before delegating to next.
//
// Requests are rejected with 401 and a machine readable code when:
//   - the "Authorization" header is absent (authorization_required);
//   - the header is not "Bearer <token>" or the token fails verification
//     (invalid_token);
//   - the token has expired (token_expired);
//   - the account behind the token no longer exists.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.Parse(ctx, tokenString)
		if err != nil {
			log.Info().Err(err).Msg("token rejected")
			writeError(w, r, err)
			return
		}

		account, err := h.services.AccountService.GetAccount(ctx, token.AccountID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx = utils.WithAccountID(ctx, account.ID)
		ctx = context.WithValue(ctx, accountCtxKey{}, account)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accountFromContext(ctx context.Context) (models.Account, bool) {
	account, ok := ctx.Value(accountCtxKey{}).(models.Account)
	return account, ok
}
