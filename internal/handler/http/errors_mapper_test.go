// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-auth-guard/internal/service"
	"github.com/MKhiriev/go-auth-guard/internal/store"
	"github.com/MKhiriev/go-auth-guard/internal/utils"
	"github.com/MKhiriev/go-auth-guard/internal/validators"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid json", fmt.Errorf("%w: unexpected EOF", utils.ErrInvalidJSONBody), http.StatusBadRequest},
		{"duplicate username wraps store error", fmt.Errorf("%w: %w", service.ErrUsernameTaken, store.ErrUsernameAlreadyExists), http.StatusBadRequest},
		{"policy violation", &validators.PolicyViolation{Code: validators.ErrPasswordNoSpecial}, http.StatusBadRequest},
		{"missing fields", &validators.MissingFieldsError{Message: "required"}, http.StatusBadRequest},
		{"password reused", service.ErrPasswordReused, http.StatusBadRequest},
		{"wrong password", &service.InvalidCredentialsError{RemainingAttempts: 1}, http.StatusUnauthorized},
		{"wrong current password", service.ErrCurrentPasswordIncorrect, http.StatusUnauthorized},
		{"locked", &service.AccountLockedError{}, http.StatusForbidden},
		{"token expired", service.ErrTokenIsExpired, http.StatusUnauthorized},
		{"bad header", utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
		{"store failure", fmt.Errorf("login ended with error: %w", store.ErrExecutingQuery), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestErrorResponse_HidesInternalDetail(t *testing.T) {
	body := errorResponse(fmt.Errorf("password change ended with error: %w", errors.New("pq: relation does not exist")))

	assert.Equal(t, "Internal server error", body.Error)
	assert.Empty(t, body.Code)
	assert.Nil(t, body.RemainingAttempts)
	assert.Nil(t, body.LockedUntil)
}
