// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-auth-guard/models"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusMethodNotAllowed:    ErrMethodNotAllowed,
	http.StatusInternalServerError: ErrInternalServerError,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	kind, ok := statusErrors[resp.StatusCode()]
	if !ok {
		kind = ErrUnexpectedStatus
	}

	apiErr := &APIError{StatusCode: resp.StatusCode(), kind: kind}

	var body models.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		apiErr.Body = body
		return apiErr
	}

	apiErr.Body.Error = strings.TrimSpace(string(resp.Body()))
	if apiErr.Body.Error == "" {
		apiErr.Body.Error = http.StatusText(resp.StatusCode())
	}

	return apiErr
}
