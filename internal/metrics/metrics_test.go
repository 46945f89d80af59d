// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { RegisterMetrics(reg) })

	// a second registration of the same collectors must fail loudly
	assert.Panics(t, func() { RegisterMetrics(reg) })
}

func TestRecordLogin(t *testing.T) {
	success := testutil.ToFloat64(Logins.WithLabelValues(OutcomeSuccess))
	locked := testutil.ToFloat64(Logins.WithLabelValues(OutcomeLocked))
	lockouts := testutil.ToFloat64(Lockouts)

	RecordLogin(OutcomeSuccess, false)
	RecordLogin(OutcomeLocked, true)
	RecordLogin(OutcomeLocked, false)

	assert.Equal(t, success+1, testutil.ToFloat64(Logins.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, locked+2, testutil.ToFloat64(Logins.WithLabelValues(OutcomeLocked)))
	assert.Equal(t, lockouts+1, testutil.ToFloat64(Lockouts))
}

func TestRecordRegistrationAndPasswordChange(t *testing.T) {
	reg := testutil.ToFloat64(Registrations.WithLabelValues(OutcomeDuplicate))
	change := testutil.ToFloat64(PasswordChanges.WithLabelValues(OutcomeReused))

	RecordRegistration(OutcomeDuplicate)
	RecordPasswordChange(OutcomeReused)

	assert.Equal(t, reg+1, testutil.ToFloat64(Registrations.WithLabelValues(OutcomeDuplicate)))
	assert.Equal(t, change+1, testutil.ToFloat64(PasswordChanges.WithLabelValues(OutcomeReused)))
}

func TestRecordExpiredLocksReset(t *testing.T) {
	before := testutil.ToFloat64(ExpiredLocksReset)

	RecordExpiredLocksReset(0)
	RecordExpiredLocksReset(3)

	assert.Equal(t, before+3, testutil.ToFloat64(ExpiredLocksReset))
}

func TestRecordRequestDuration(t *testing.T) {
	RecordRequestDuration(http.MethodPost, "/api/auth/login", http.StatusUnauthorized, 10*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(RequestDuration), 1)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "2xx", statusLabel(http.StatusCreated))
	assert.Equal(t, "3xx", statusLabel(http.StatusFound))
	assert.Equal(t, "4xx", statusLabel(http.StatusForbidden))
	assert.Equal(t, "5xx", statusLabel(http.StatusInternalServerError))
}
