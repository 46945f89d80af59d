// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrRequiredFieldsMissing = errors.New("required fields are missing")

	ErrInvalidUsername = errors.New("username must be 3-80 characters long, start with a letter and contain only letters, digits, '_', '.' or '-'")

	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrPasswordCaseMix   = errors.New("password must contain both uppercase and lowercase letters")
	ErrPasswordNoSpecial = errors.New("password must contain at least one special character")
)

// PolicyViolation is returned when a password candidate is rejected by the
// password policy. Code is one of the ErrPassword* sentinels, so callers can
// match with errors.Is; Message is the text shown to the user.
type PolicyViolation struct {
	Code    error
	Message string
}

func (e *PolicyViolation) Error() string {
	return e.Message
}

func (e *PolicyViolation) Unwrap() error {
	return e.Code
}

// MissingFieldsError reports which required fields of a request are empty.
// Message mirrors the wording the API answers with.
type MissingFieldsError struct {
	Message string
}

func (e *MissingFieldsError) Error() string {
	return e.Message
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrRequiredFieldsMissing
}

func newPolicyViolation(code error, format string, args ...any) *PolicyViolation {
	return &PolicyViolation{Code: code, Message: fmt.Sprintf(format, args...)}
}
