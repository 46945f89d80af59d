// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/service"
	"github.com/MKhiriev/go-auth-guard/models"
)

// ─────────────────────────────────────────────
// Fakes
// ─────────────────────────────────────────────

var testPolicy = models.PasswordPolicy{MinLength: 12, RequireMixedCase: true, RequireSpecial: false, HistoryLimit: 5}

// fakeAccountService implements service.AccountService. Unset functions
// return zero values.
type fakeAccountService struct {
	registerFn       func(ctx context.Context, req models.RegisterRequest) (models.Account, error)
	loginFn          func(ctx context.Context, req models.LoginRequest) (models.Session, error)
	changePasswordFn func(ctx context.Context, req models.ChangePasswordRequest) error
	getAccountFn     func(ctx context.Context, accountID int64) (models.Account, error)
	policy           models.PasswordPolicy
}

func (f *fakeAccountService) Register(ctx context.Context, req models.RegisterRequest) (models.Account, error) {
	if f.registerFn == nil {
		return models.Account{}, nil
	}
	return f.registerFn(ctx, req)
}

func (f *fakeAccountService) Login(ctx context.Context, req models.LoginRequest) (models.Session, error) {
	if f.loginFn == nil {
		return models.Session{}, nil
	}
	return f.loginFn(ctx, req)
}

func (f *fakeAccountService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if f.changePasswordFn == nil {
		return nil
	}
	return f.changePasswordFn(ctx, req)
}

func (f *fakeAccountService) GetAccount(ctx context.Context, accountID int64) (models.Account, error) {
	if f.getAccountFn == nil {
		return models.Account{ID: accountID}, nil
	}
	return f.getAccountFn(ctx, accountID)
}

func (f *fakeAccountService) PasswordRequirements() models.PasswordPolicy {
	return f.policy
}

func (f *fakeAccountService) ResetExpiredLocks(context.Context) (int64, error) {
	return 0, nil
}

// fakeTokenService implements service.TokenService.
type fakeTokenService struct {
	parseFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (f *fakeTokenService) Issue(_ context.Context, account models.Account) (models.Token, error) {
	return models.Token{SignedString: "signed", AccountID: account.ID}, nil
}

func (f *fakeTokenService) Parse(ctx context.Context, tokenString string) (models.Token, error) {
	if f.parseFn == nil {
		return models.Token{}, service.ErrTokenIsInvalid
	}
	return f.parseFn(ctx, tokenString)
}

// fakeAppInfoService implements service.AppInfoService.
type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(context.Context) string {
	return f.version
}

func (f *fakeAppInfoService) GetBuildInfo(context.Context) models.AppBuildInfo {
	return models.AppBuildInfo{}
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given services. Nil services are
// replaced with fakes so that every route can be served.
func newTestHandler(accounts service.AccountService, tokens service.TokenService) *Handler {
	if accounts == nil {
		accounts = &fakeAccountService{policy: testPolicy}
	}
	if tokens == nil {
		tokens = &fakeTokenService{}
	}

	return NewHandler(&service.Services{
		AccountService: accounts,
		TokenService:   tokens,
		AppInfoService: &fakeAppInfoService{version: "test-version"},
	}, config.Server{}, logger.Nop())
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return injectNopLogger(req)
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()

	var body models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}
