// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human readable messages written into HTTP
// response bodies by the auth API handlers and middleware.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "Invalid data provided"

	// MsgInvalidLoginPassword is returned for any failed login on an
	// unlocked account, whether or not the username exists.
	MsgInvalidLoginPassword = "Invalid username or password"

	// MsgAccountLocked is returned while a lock is in force.
	MsgAccountLocked = "Account is locked"

	// MsgAccountNowLocked is returned when the current attempt caused the lock.
	MsgAccountNowLocked = "Account is now locked"

	MsgUsernameTaken            = "Username already exists"
	MsgCurrentPasswordIncorrect = "Current password is incorrect"
	MsgPasswordReused           = "Password was used recently. Please choose a different password"

	MsgUserRegistered   = "User registered successfully"
	MsgPasswordChanged  = "Password changed successfully"
	MsgProtectedContent = "Protected endpoint"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Internal server error"

	// MsgUserNotFound is returned when a valid token names an account that
	// no longer exists.
	MsgUserNotFound = "User not found"

	MsgNotFound         = "Not found"
	MsgMethodNotAllowed = "Method not allowed"

	// Token failures. Each message goes together with the code below it.
	MsgAuthorizationRequired = "Authorization token is missing"
	MsgTokenIsExpired        = "Token has expired"
	MsgTokenIsInvalid        = "Invalid token"
)

// Machine readable codes sent next to token failure messages.
const (
	CodeAuthorizationRequired = "authorization_required"
	CodeTokenExpired          = "token_expired"
	CodeInvalidToken          = "invalid_token"
)
