// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/handler"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/metrics"
	"github.com/MKhiriev/go-auth-guard/internal/server"
	"github.com/MKhiriev/go-auth-guard/internal/service"
	"github.com/MKhiriev/go-auth-guard/internal/store"
	"github.com/MKhiriev/go-auth-guard/internal/workers"
	"github.com/MKhiriev/go-auth-guard/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("go-auth-guard")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("driver", cfg.Storage.DB.Driver).
		Str("address", cfg.Server.HTTPAddress).
		Int("max_login_attempts", cfg.Auth.MaxLoginAttempts).
		Dur("lockout_duration", cfg.Auth.LockoutDuration).
		Int("password_history_limit", cfg.Auth.PasswordHistoryLimit).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	metrics.RegisterMetrics(prometheus.DefaultRegisterer)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services, err := service.NewServices(store.NewUnitOfWork(db), *cfg, buildInfo)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	background := workers.NewWorkers(services, cfg.Workers, log)
	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		background.Run(ctx)
	}()

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	stop()
	<-workersDone
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
