// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the background maintenance jobs of the service.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// LockResetter clears expired account locks. It is satisfied by
// service.AccountService.
type LockResetter interface {
	ResetExpiredLocks(ctx context.Context) (int64, error)
}
