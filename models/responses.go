// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx answer.
//
// Code is set for token failures ("authorization_required", "invalid_token",
// "token_expired"). RemainingAttempts and LockedUntil are set by the login
// endpoint only.
type ErrorResponse struct {
	Error             string     `json:"error"`
	Code              string     `json:"code,omitempty"`
	RemainingAttempts *int       `json:"remaining_attempts,omitempty"`
	LockedUntil       *time.Time `json:"locked_until,omitempty"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        PublicAccount `json:"user"`
}

// ProtectedResponse is returned by the protected sample endpoint.
type ProtectedResponse struct {
	Message string        `json:"message"`
	User    PublicAccount `json:"user"`
}

// CheckAuthResponse is returned by the check-auth endpoint.
type CheckAuthResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          PublicAccount `json:"user"`
}
