// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/crypto"
	"github.com/MKhiriev/go-auth-guard/internal/store"
	"github.com/MKhiriev/go-auth-guard/models"
)

// Services is the set of use cases handed to the transport layer.
// It is built once in main.
type Services struct {
	AccountService AccountService
	TokenService   TokenService
	AppInfoService AppInfoService
}

func NewServices(uow store.UnitOfWork, cfg config.StructuredConfig, buildInfo models.AppBuildInfo) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	hasher := crypto.NewPasswordHasher(crypto.Argon2Params{
		Time:    cfg.Auth.Hash.Time,
		Memory:  cfg.Auth.Hash.MemoryKiB,
		Threads: cfg.Auth.Hash.Threads,
	})
	tokenService := NewTokenService(cfg.App)

	return &Services{
		AccountService: NewAccountService(uow, hasher, tokenService, cfg.Auth),
		TokenService:   tokenService,
		AppInfoService: appInfoService,
	}, nil
}
