// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-auth-guard/models"
)

// SpecialCharacters is the set a password must draw from when the policy
// requires a special character.
const SpecialCharacters = `!@#$%^&*(),.?":{}|<>`

// PasswordCandidate is a new password together with its confirmation.
type PasswordCandidate struct {
	Password     string
	Confirmation string
}

// PasswordValidator checks password candidates against a [models.PasswordPolicy].
// Checks run in a fixed order and stop at the first failure:
// confirmation match, minimal length, mixed case, special character.
type PasswordValidator struct {
	policy models.PasswordPolicy
}

func NewPasswordValidator(policy models.PasswordPolicy) *PasswordValidator {
	return &PasswordValidator{policy: policy}
}

// Validate implements [Validator] for [PasswordCandidate] values.
func (v *PasswordValidator) Validate(ctx context.Context, obj any, _ ...string) error {
	switch value := obj.(type) {
	case PasswordCandidate:
		return v.ValidatePassword(value.Password, value.Confirmation)
	case *PasswordCandidate:
		return v.ValidatePassword(value.Password, value.Confirmation)
	default:
		return ErrUnsupportedType
	}
}

// ValidatePassword returns nil or a *PolicyViolation.
func (v *PasswordValidator) ValidatePassword(candidate, confirmation string) error {
	if candidate != confirmation {
		return newPolicyViolation(ErrPasswordMismatch, "passwords do not match")
	}

	if utf8.RuneCountInString(candidate) < v.policy.MinLength {
		return newPolicyViolation(ErrPasswordTooShort, "password must be at least %d characters long", v.policy.MinLength)
	}

	if v.policy.RequireMixedCase && !hasMixedCase(candidate) {
		return newPolicyViolation(ErrPasswordCaseMix, "password must contain both uppercase and lowercase letters")
	}

	if v.policy.RequireSpecial && !strings.ContainsAny(candidate, SpecialCharacters) {
		return newPolicyViolation(ErrPasswordNoSpecial, "password must contain at least one special character (%s)", SpecialCharacters)
	}

	return nil
}

// Policy returns the policy the validator enforces.
func (v *PasswordValidator) Policy() models.PasswordPolicy {
	return v.policy
}

func hasMixedCase(s string) bool {
	var upper, lower bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
		if upper && lower {
			return true
		}
	}
	return false
}
