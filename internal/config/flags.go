// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// optionalBool is a flag.Value that remembers whether it was set, so an
// explicit -flag=false can be told apart from an absent flag.
type optionalBool struct {
	value *bool
}

// ParseFlags parses all configuration flags from args (usually os.Args[1:]).
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-driver database driver (pgx or sqlite3)
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-shutdown-timeout graceful shutdown timeout
//	-max-login-attempts failures before lockout
//	-lockout-duration lock duration (e.g., "15m")
//	-password-min-length minimal password length
//	-password-require-mixed-case require upper and lower case letters
//	-password-require-special require a special character
//	-password-history-limit remembered previous passwords
//	-lock-sweep-interval expired lock sweep interval, 0 disables
//	-log-level zerolog level name
func ParseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, driver string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout, shutdownTimeout time.Duration
	var maxLoginAttempts, passwordMinLength, historyLimit int
	var lockoutDuration, lockSweepInterval time.Duration
	var requireMixedCase, requireSpecial optionalBool
	var logLevel string

	fs := flag.NewFlagSet("go-auth-guard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&driver, "driver", "", "Database driver (pgx or sqlite3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.IntVar(&maxLoginAttempts, "max-login-attempts", 0, "Failed logins before lockout")
	fs.DurationVar(&lockoutDuration, "lockout-duration", 0, "Lockout duration (e.g., 15m)")
	fs.IntVar(&passwordMinLength, "password-min-length", 0, "Minimal password length")
	fs.Var(&requireMixedCase, "password-require-mixed-case", "Require upper and lower case letters")
	fs.Var(&requireSpecial, "password-require-special", "Require a special character")
	fs.IntVar(&historyLimit, "password-history-limit", 0, "Number of remembered previous passwords")
	fs.DurationVar(&lockSweepInterval, "lock-sweep-interval", 0, "Expired lock sweep interval")
	fs.StringVar(&logLevel, "log-level", "", "Log level")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			LogLevel:      logLevel,
		},
		Auth: Auth{
			MaxLoginAttempts:         maxLoginAttempts,
			LockoutDuration:          lockoutDuration,
			PasswordMinLength:        passwordMinLength,
			PasswordRequireMixedCase: requireMixedCase.value,
			PasswordRequireSpecial:   requireSpecial.value,
			PasswordHistoryLimit:     historyLimit,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:     serverAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Workers: Workers{
			LockSweepInterval: lockSweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

func (b *optionalBool) String() string {
	if b == nil || b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

// IsBoolFlag allows "-flag" without an explicit value.
func (b *optionalBool) IsBoolFlag() bool {
	return true
}
