// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command line client of the auth API.
//
// Each command maps to one call of [adapter.AuthAPI]. Passwords are read
// line by line from the input stream so they never appear in the process
// arguments.
package client
