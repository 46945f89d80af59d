// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PasswordPolicy describes the rules a new password must satisfy.
// It is also served as-is by the password-requirements endpoint.
type PasswordPolicy struct {
	MinLength        int  `json:"min_length"`
	RequireMixedCase bool `json:"require_mixed_case"`
	RequireSpecial   bool `json:"require_special"`
	HistoryLimit     int  `json:"history_limit"`
}
