// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-auth-guard/internal/app"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/utils"
	"github.com/MKhiriev/go-auth-guard/models"
)

func (h *Handler) passwordRequirements(w http.ResponseWriter, r *http.Request) {
	policy := h.services.AccountService.PasswordRequirements()
	h.writeJSON(w, r, policy, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := h.services.AccountService.Register(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.MessageResponse{Message: app.MsgUserRegistered}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.services.AccountService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.LoginResponse{
		AccessToken: session.Token.SignedString,
		User:        session.Account.Public(),
	}, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		writeError(w, r, errNoAccountInContext)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.AccountID = accountID

	if err := h.services.AccountService.ChangePassword(ctx, req); err != nil {
		writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, models.MessageResponse{Message: app.MsgPasswordChanged}, http.StatusOK)
}

func (h *Handler) protected(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoAccountInContext)
		return
	}

	h.writeJSON(w, r, models.ProtectedResponse{
		Message: app.MsgProtectedContent,
		User:    account.Public(),
	}, http.StatusOK)
}

func (h *Handler) checkAuth(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, r, errNoAccountInContext)
		return
	}

	h.writeJSON(w, r, models.CheckAuthResponse{
		Authenticated: true,
		User:          account.Public(),
	}, http.StatusOK)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errRouteNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, errMethodNotAllowed)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
