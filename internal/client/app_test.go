// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/internal/mock"
	"github.com/MKhiriev/go-auth-guard/models"
)

func newTestApp(t *testing.T, input string) (*App, *mock.MockAuthAPI, *bytes.Buffer) {
	t.Helper()

	ctrl := gomock.NewController(t)
	api := mock.NewMockAuthAPI(ctrl)
	out := &bytes.Buffer{}

	return NewApp(api, strings.NewReader(input), out, logger.Nop()), api, out
}

func TestApp_Run_NoCommand(t *testing.T) {
	app, _, _ := newTestApp(t, "")
	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrNoCommand)
}

func TestApp_Run_UnknownCommand(t *testing.T) {
	app, _, _ := newTestApp(t, "")
	err := app.Run(context.Background(), []string{"logout"})
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "logout")
}

func TestApp_Register(t *testing.T) {
	app, api, out := newTestApp(t, "Sup3r$ecret!\nSup3r$ecret!\n")

	api.EXPECT().
		Register(gomock.Any(), models.RegisterRequest{
			Username:        "alice",
			Password:        "Sup3r$ecret!",
			ConfirmPassword: "Sup3r$ecret!",
		}).
		Return(models.MessageResponse{Message: "User registered successfully"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"register", "alice"}))
	assert.Contains(t, out.String(), "Password: ")
	assert.Contains(t, out.String(), "Confirm password: ")
	assert.Contains(t, out.String(), "User registered successfully")
}

func TestApp_Register_MissingUsername(t *testing.T) {
	app, _, _ := newTestApp(t, "")
	assert.ErrorIs(t, app.Run(context.Background(), []string{"register"}), ErrMissingArgs)
}

func TestApp_Register_InputClosed(t *testing.T) {
	app, _, _ := newTestApp(t, "only-one-line\n")
	assert.ErrorIs(t, app.Run(context.Background(), []string{"register", "alice"}), ErrNoInput)
}

func TestApp_Login_PrintsSession(t *testing.T) {
	app, api, out := newTestApp(t, " spaced password \r\n")

	api.EXPECT().
		Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: " spaced password "}).
		Return(models.LoginResponse{AccessToken: "tok", User: models.PublicAccount{ID: 1, Username: "alice"}}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"login", "alice"}))

	printed := out.String()
	body := printed[strings.Index(printed, "{"):]
	var session models.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(body), &session))
	assert.Equal(t, "tok", session.AccessToken)
	assert.Equal(t, "alice", session.User.Username)
}

func TestApp_Login_Error(t *testing.T) {
	app, api, _ := newTestApp(t, "wrong\n")
	wantErr := errors.New("unauthorized")

	api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.LoginResponse{}, wantErr)

	assert.ErrorIs(t, app.Run(context.Background(), []string{"login", "alice"}), wantErr)
}

func TestApp_ChangePassword(t *testing.T) {
	app, api, out := newTestApp(t, "old\nnew\nnew\n")

	api.EXPECT().
		ChangePassword(gomock.Any(), models.ChangePasswordRequest{
			CurrentPassword: "old",
			NewPassword:     "new",
			ConfirmPassword: "new",
		}).
		Return(models.MessageResponse{Message: "Password changed successfully"}, nil)

	require.NoError(t, app.Run(context.Background(), []string{"change-password"}))
	assert.Contains(t, out.String(), "Password changed successfully")
}

func TestApp_ReadOnlyCommands(t *testing.T) {
	tests := []struct {
		name   string
		expect func(api *mock.MockAuthAPI)
		want   string
	}{
		{
			name: "requirements",
			expect: func(api *mock.MockAuthAPI) {
				api.EXPECT().PasswordRequirements(gomock.Any()).
					Return(models.PasswordPolicy{MinLength: 12, HistoryLimit: 5}, nil)
			},
			want: `"min_length": 12`,
		},
		{
			name: "check-auth",
			expect: func(api *mock.MockAuthAPI) {
				api.EXPECT().CheckAuth(gomock.Any()).
					Return(models.CheckAuthResponse{Authenticated: true, User: models.PublicAccount{Username: "alice"}}, nil)
			},
			want: `"authenticated": true`,
		},
		{
			name: "protected",
			expect: func(api *mock.MockAuthAPI) {
				api.EXPECT().Protected(gomock.Any()).
					Return(models.ProtectedResponse{Message: "Protected endpoint"}, nil)
			},
			want: "Protected endpoint",
		},
		{
			name: "version",
			expect: func(api *mock.MockAuthAPI) {
				api.EXPECT().Version(gomock.Any()).Return("v1.0.0", nil)
			},
			want: "v1.0.0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, api, out := newTestApp(t, "")
			tt.expect(api)

			require.NoError(t, app.Run(context.Background(), []string{tt.name}))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}
