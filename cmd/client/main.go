// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-auth-guard/internal/adapter"
	"github.com/MKhiriev/go-auth-guard/internal/client"
	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.New(os.Stderr, "go-auth-guard-client")
	level := os.Getenv("AUTH_CLIENT_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	if err := logger.SetLevel(level); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	cfg, args, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, client.Usage)
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if len(args) > 0 && args[0] == "build-info" {
		printBuildInfo()
		return
	}

	api, err := adapter.NewHTTPAuthAPI(*cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating auth api client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	app := client.NewApp(api, os.Stdin, os.Stdout, log)
	if err = app.Run(ctx, args); err != nil {
		if errors.Is(err, client.ErrNoCommand) || errors.Is(err, client.ErrUnknownCommand) {
			fmt.Fprint(os.Stderr, client.Usage)
		}
		stop()
		log.Fatal().Err(err).Msg("command failed")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
