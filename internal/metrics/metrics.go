// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus collectors of the auth service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess            = "success"
	OutcomeError              = "error"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeLocked             = "locked"
	OutcomeRejected           = "rejected"
	OutcomeDuplicate          = "duplicate"
	OutcomeReused             = "reused"
)

var (
	// Registrations counts register attempts by outcome.
	Registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of account registrations",
	}, []string{"outcome"})

	// Logins counts login attempts by outcome.
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	}, []string{"outcome"})

	// Lockouts counts accounts that became locked.
	Lockouts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_lockouts_total",
		Help: "Total number of account lockouts",
	})

	// PasswordChanges counts change-password attempts by outcome.
	PasswordChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_password_changes_total",
		Help: "Total number of password changes",
	}, []string{"outcome"})

	// ExpiredLocksReset counts lockouts cleared by the sweeper.
	ExpiredLocksReset = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_expired_locks_reset_total",
		Help: "Total number of expired lockouts reset by the sweeper",
	})

	// RequestDuration tracks HTTP request latency per route.
	RequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auth_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RegisterMetrics registers all collectors with reg.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Registrations)
	reg.MustRegister(Logins)
	reg.MustRegister(Lockouts)
	reg.MustRegister(PasswordChanges)
	reg.MustRegister(ExpiredLocksReset)
	reg.MustRegister(RequestDuration)
}

func RecordRegistration(outcome string) {
	Registrations.WithLabelValues(outcome).Inc()
}

// RecordLogin increments the login counter. A lockout caused by this
// attempt is counted separately as well.
func RecordLogin(outcome string, justLocked bool) {
	Logins.WithLabelValues(outcome).Inc()
	if justLocked {
		Lockouts.Inc()
	}
}

func RecordPasswordChange(outcome string) {
	PasswordChanges.WithLabelValues(outcome).Inc()
}

func RecordExpiredLocksReset(n int64) {
	if n > 0 {
		ExpiredLocksReset.Add(float64(n))
	}
}

func RecordRequestDuration(method, route string, status int, duration time.Duration) {
	RequestDuration.WithLabelValues(method, route, statusLabel(status)).Observe(duration.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
