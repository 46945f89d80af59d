// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrNoCommand      = errors.New("no command given")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArgs    = errors.New("missing command arguments")
	ErrNoInput        = errors.New("input closed before all prompts were answered")
)
