// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

// ErrInvalidClientConfigs indicates an unusable command line client setup.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

const (
	defaultClientServerAddress  = "http://localhost:8080"
	defaultClientRequestTimeout = 15 * time.Second
)

// Client holds the settings of the command line client.
type Client struct {
	// ServerAddress is the base URL of the auth API. A bare host:port is
	// accepted and treated as http.
	// Env: AUTH_CLIENT_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout bounds every API call.
	// Env: AUTH_CLIENT_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is a bearer token used by the authenticated commands.
	// Env: AUTH_CLIENT_TOKEN
	Token string `env:"TOKEN"`
}

type clientEnv struct {
	Client Client `envPrefix:"AUTH_CLIENT_"`
}

// GetClientConfig merges defaults, environment and flags (in that order of
// priority, flags win) and returns the config with the positional arguments
// left after flag parsing.
//
// Flags:
//
//	-s server base URL
//	-timeout request timeout
//	-token bearer token
func GetClientConfig(args []string) (*Client, []string, error) {
	cfg := Client{
		ServerAddress:  defaultClientServerAddress,
		RequestTimeout: defaultClientRequestTimeout,
	}

	var fromEnv clientEnv
	if err := parseEnv(&fromEnv); err != nil {
		return nil, nil, err
	}
	cfg.override(fromEnv.Client)

	var fromFlags Client
	fs := flag.NewFlagSet("go-auth-guard-client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&fromFlags.ServerAddress, "s", "", "Auth API base URL")
	fs.DurationVar(&fromFlags.RequestTimeout, "timeout", 0, "Request timeout")
	fs.StringVar(&fromFlags.Token, "token", "", "Bearer token")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}
	cfg.override(fromFlags)

	if cfg.ServerAddress == "" || cfg.RequestTimeout <= 0 {
		return nil, nil, ErrInvalidClientConfigs
	}

	return &cfg, fs.Args(), nil
}

func (c *Client) override(src Client) {
	if src.ServerAddress != "" {
		c.ServerAddress = src.ServerAddress
	}
	if src.RequestTimeout != 0 {
		c.RequestTimeout = src.RequestTimeout
	}
	if src.Token != "" {
		c.Token = src.Token
	}
}
