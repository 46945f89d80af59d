// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"

	"github.com/MKhiriev/go-auth-guard/models"
)

const (
	FieldUsername = "username"
	FieldRequired = "required"
)

// usernamePattern: 3-80 characters, leading letter, then letters, digits,
// '_', '.' or '-'.
var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.\-]{2,79}$`)

var (
	msgRegisterFieldsRequired       = "Username, password, and password confirmation are required"
	msgLoginFieldsRequired          = "Username and password are required"
	msgChangePasswordFieldsRequired = "Current password, new password, and password confirmation are required"
)

// AccountRequestValidator validates the account request DTOs:
// [models.RegisterRequest], [models.LoginRequest] and
// [models.ChangePasswordRequest].
//
// With no fields given every applicable rule runs. Passing FieldRequired
// and/or FieldUsername restricts validation to those rules.
type AccountRequestValidator struct {
}

func NewAccountRequestValidator() Validator {
	return &AccountRequestValidator{}
}

func (v *AccountRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	checks, err := selectChecks(fields)
	if err != nil {
		return err
	}

	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, checks)
	case *models.RegisterRequest:
		return v.validateRegister(*value, checks)

	case models.LoginRequest:
		return v.validateLogin(value, checks)
	case *models.LoginRequest:
		return v.validateLogin(*value, checks)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, checks)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, checks)

	default:
		return ErrUnsupportedType
	}
}

type checkSet struct {
	required bool
	username bool
}

func selectChecks(fields []string) (checkSet, error) {
	if len(fields) == 0 {
		return checkSet{required: true, username: true}, nil
	}

	var checks checkSet
	for _, f := range fields {
		switch f {
		case FieldRequired:
			checks.required = true
		case FieldUsername:
			checks.username = true
		default:
			return checkSet{}, ErrUnknownField
		}
	}
	return checks, nil
}

func (v *AccountRequestValidator) validateRegister(req models.RegisterRequest, checks checkSet) error {
	if checks.required && (req.Username == "" || req.Password == "" || req.ConfirmPassword == "") {
		return &MissingFieldsError{Message: msgRegisterFieldsRequired}
	}

	if checks.username {
		return ValidateUsername(req.Username)
	}

	return nil
}

// validateLogin only checks presence: login must not reveal which usernames
// are well-formed.
func (v *AccountRequestValidator) validateLogin(req models.LoginRequest, checks checkSet) error {
	if checks.required && (req.Username == "" || req.Password == "") {
		return &MissingFieldsError{Message: msgLoginFieldsRequired}
	}

	return nil
}

func (v *AccountRequestValidator) validateChangePassword(req models.ChangePasswordRequest, checks checkSet) error {
	if checks.required && (req.CurrentPassword == "" || req.NewPassword == "" || req.ConfirmPassword == "") {
		return &MissingFieldsError{Message: msgChangePasswordFieldsRequired}
	}

	return nil
}

// ValidateUsername returns ErrInvalidUsername unless username matches the
// username rules.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}
