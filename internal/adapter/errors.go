// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-auth-guard/models"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	ErrEmptyAddress = errors.New("empty address")
	ErrNoToken      = errors.New("no bearer token set")
)

// APIError is a non-2xx answer of the auth API.
type APIError struct {
	StatusCode int
	Body       models.ErrorResponse

	kind error
}

func (e *APIError) Error() string {
	if e.Body.Code != "" {
		return fmt.Sprintf("%s (http %d, %s): %s", e.kind, e.StatusCode, e.Body.Code, e.Body.Error)
	}
	return fmt.Sprintf("%s (http %d): %s", e.kind, e.StatusCode, e.Body.Error)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
