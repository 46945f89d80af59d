// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-auth-guard/internal/config"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/models"
)

const (
	pathPasswordRequirements = "/api/auth/password-requirements"
	pathRegister             = "/api/auth/register"
	pathLogin                = "/api/auth/login"
	pathChangePassword       = "/api/auth/change-password"
	pathCheckAuth            = "/api/auth/check-auth"
	pathProtected            = "/api/auth/protected"
	pathVersion              = "/api/version"
)

type httpAuthAPI struct {
	client *resty.Client

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAuthAPI constructs a resty backed [AuthAPI] pointed at
// cfg.ServerAddress. A token from cfg is stored right away.
//
// Returns an error if the address is empty or is not a valid URL.
func NewHTTPAuthAPI(cfg config.Client, log *logger.Logger) (AuthAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	a := &httpAuthAPI{client: client, logger: log}
	client.OnAfterResponse(a.logResponse)
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAuthAPI) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAuthAPI) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAuthAPI) PasswordRequirements(ctx context.Context) (models.PasswordPolicy, error) {
	var policy models.PasswordPolicy

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&policy).
		Get(pathPasswordRequirements)
	if err != nil {
		return models.PasswordPolicy{}, fmt.Errorf("password requirements request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PasswordPolicy{}, err
	}

	return policy, nil
}

func (h *httpAuthAPI) Register(ctx context.Context, req models.RegisterRequest) (models.MessageResponse, error) {
	var msg models.MessageResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&msg).
		Post(pathRegister)
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return msg, nil
}

// Login stores the access token on success. A failed login leaves the
// previously stored token untouched.
func (h *httpAuthAPI) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	var session models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&session).
		Post(pathLogin)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(session.AccessToken)
	return session, nil
}

func (h *httpAuthAPI) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.MessageResponse, error) {
	var msg models.MessageResponse

	r, err := h.authedRequest(ctx)
	if err != nil {
		return models.MessageResponse{}, err
	}

	resp, err := r.
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&msg).
		Post(pathChangePassword)
	if err != nil {
		return models.MessageResponse{}, fmt.Errorf("change password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.MessageResponse{}, err
	}

	return msg, nil
}

func (h *httpAuthAPI) CheckAuth(ctx context.Context) (models.CheckAuthResponse, error) {
	var out models.CheckAuthResponse
	if err := h.getAuthed(ctx, pathCheckAuth, &out); err != nil {
		return models.CheckAuthResponse{}, fmt.Errorf("check auth: %w", err)
	}
	return out, nil
}

func (h *httpAuthAPI) Protected(ctx context.Context) (models.ProtectedResponse, error) {
	var out models.ProtectedResponse
	if err := h.getAuthed(ctx, pathProtected, &out); err != nil {
		return models.ProtectedResponse{}, fmt.Errorf("protected: %w", err)
	}
	return out, nil
}

func (h *httpAuthAPI) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(pathVersion)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpAuthAPI) getAuthed(ctx context.Context, path string, result any) error {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := r.SetResult(result).Get(path)
	if err != nil {
		return err
	}

	return mapHTTPError(resp)
}

func (h *httpAuthAPI) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}

func (h *httpAuthAPI) logResponse(_ *resty.Client, resp *resty.Response) error {
	h.logger.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("auth api call")
	return nil
}
