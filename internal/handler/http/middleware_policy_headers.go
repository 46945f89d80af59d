// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
)

const (
	passwordMinLengthHeader        = "X-Password-Min-Length"
	passwordRequireMixedCaseHeader = "X-Password-Require-Mixed-Case"
	passwordRequireSpecialHeader   = "X-Password-Require-Special"
)

// withPasswordPolicyHeaders advertises the password policy on every
// response so clients can validate input before submitting it.
func (h *Handler) withPasswordPolicyHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		policy := h.services.AccountService.PasswordRequirements()

		header := w.Header()
		header.Set(passwordMinLengthHeader, strconv.Itoa(policy.MinLength))
		header.Set(passwordRequireMixedCaseHeader, strconv.FormatBool(policy.RequireMixedCase))
		header.Set(passwordRequireSpecialHeader, strconv.FormatBool(policy.RequireSpecial))

		next.ServeHTTP(w, r)
	})
}
