// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-auth-guard/internal/app"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/service"
	"github.com/MKhiriev/go-auth-guard/internal/utils"
	"github.com/MKhiriev/go-auth-guard/internal/validators"
	"github.com/MKhiriev/go-auth-guard/models"
)

var errorStatusMap = map[error]int{
	utils.ErrInvalidJSONBody:         http.StatusBadRequest,
	service.ErrInvalidDataProvided:   http.StatusBadRequest,
	service.ErrUsernameTaken:         http.StatusBadRequest,
	service.ErrPasswordReused:        http.StatusBadRequest,
	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrAccountLocked:         http.StatusForbidden,
	service.ErrTokenIsExpired:        http.StatusUnauthorized,
	service.ErrTokenIsInvalid:        http.StatusUnauthorized,
	service.ErrAccountNotFound:       http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified: http.StatusInternalServerError,

	validators.ErrRequiredFieldsMissing: http.StatusBadRequest,
	validators.ErrInvalidUsername:       http.StatusBadRequest,
	validators.ErrPasswordMismatch:      http.StatusBadRequest,
	validators.ErrPasswordTooShort:      http.StatusBadRequest,
	validators.ErrPasswordCaseMix:       http.StatusBadRequest,
	validators.ErrPasswordNoSpecial:     http.StatusBadRequest,

	ErrEmptyAuthorizationHeader:         http.StatusUnauthorized,
	utils.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	errRouteNotFound:                    http.StatusNotFound,
	errMethodNotAllowed:                 http.StatusMethodNotAllowed,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse builds the client-facing body for err. Internal failures
// are answered without detail.
func errorResponse(err error) models.ErrorResponse {
	var (
		locked    *service.AccountLockedError
		invalid   *service.InvalidCredentialsError
		violation *validators.PolicyViolation
		missing   *validators.MissingFieldsError
	)

	switch {
	case errors.As(err, &locked):
		msg := app.MsgAccountLocked
		if locked.JustLocked {
			msg = app.MsgAccountNowLocked
		}
		lockedUntil := locked.LockedUntil
		return models.ErrorResponse{Error: msg, LockedUntil: &lockedUntil}
	case errors.As(err, &invalid):
		remaining := invalid.RemainingAttempts
		return models.ErrorResponse{Error: app.MsgInvalidLoginPassword, RemainingAttempts: &remaining}
	case errors.Is(err, service.ErrCurrentPasswordIncorrect):
		return models.ErrorResponse{Error: app.MsgCurrentPasswordIncorrect}
	case errors.Is(err, service.ErrInvalidCredentials):
		return models.ErrorResponse{Error: app.MsgInvalidLoginPassword}
	case errors.Is(err, service.ErrUsernameTaken):
		return models.ErrorResponse{Error: app.MsgUsernameTaken}
	case errors.Is(err, service.ErrPasswordReused):
		return models.ErrorResponse{Error: app.MsgPasswordReused}
	case errors.As(err, &violation):
		return models.ErrorResponse{Error: violation.Message}
	case errors.As(err, &missing):
		return models.ErrorResponse{Error: missing.Message}
	case errors.Is(err, validators.ErrInvalidUsername):
		return models.ErrorResponse{Error: validators.ErrInvalidUsername.Error()}
	case errors.Is(err, utils.ErrInvalidJSONBody), errors.Is(err, service.ErrInvalidDataProvided):
		return models.ErrorResponse{Error: app.MsgInvalidDataProvided}

	case errors.Is(err, ErrEmptyAuthorizationHeader):
		return models.ErrorResponse{Error: app.MsgAuthorizationRequired, Code: app.CodeAuthorizationRequired}
	case errors.Is(err, service.ErrTokenIsExpired):
		return models.ErrorResponse{Error: app.MsgTokenIsExpired, Code: app.CodeTokenExpired}
	case errors.Is(err, service.ErrTokenIsInvalid), errors.Is(err, utils.ErrInvalidAuthorizationHeader):
		return models.ErrorResponse{Error: app.MsgTokenIsInvalid, Code: app.CodeInvalidToken}
	case errors.Is(err, service.ErrAccountNotFound):
		return models.ErrorResponse{Error: app.MsgUserNotFound, Code: app.CodeInvalidToken}

	case errors.Is(err, errRouteNotFound):
		return models.ErrorResponse{Error: app.MsgNotFound}
	case errors.Is(err, errMethodNotAllowed):
		return models.ErrorResponse{Error: app.MsgMethodNotAllowed}
	}

	return models.ErrorResponse{Error: app.MsgInternalServerError}
}

// writeError answers r with the status and body err maps to. Server-side
// failures are logged with their full cause.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("path", r.URL.Path).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("request rejected")
	}

	if _, werr := utils.WriteJSON(w, errorResponse(err), status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}
