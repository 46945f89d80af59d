// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the auth service.
//
// It wires the /api/auth routes onto the account directory and the session
// token service. Cross-cutting concerns such as authentication, request
// tracing, access logging with request metrics and the password policy
// response headers are handled here before requests reach the service
// layer. Every error answer is a JSON object with an "error" field.
package http
