// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-auth-guard/internal/adapter"
	"github.com/MKhiriev/go-auth-guard/internal/logger"
	"github.com/MKhiriev/go-auth-guard/models"
)

// Usage lists the supported commands.
const Usage = `usage: go-auth-guard-client [-s url] [-timeout d] [-token t] <command> [args]

commands:
  requirements              show the password policy
  register <username>       create an account (reads password twice)
  login <username>          log in and print the access token (reads password)
  change-password           change the password (reads current, new, confirm)
  check-auth                show the account behind the token
  protected                 call the protected sample endpoint
  version                   show the server version
`

type command func(ctx context.Context, args []string) error

// App runs a single client command against an [adapter.AuthAPI].
type App struct {
	api      adapter.AuthAPI
	in       *bufio.Scanner
	out      io.Writer
	commands map[string]command

	logger *logger.Logger
}

// NewApp wires an App reading prompt answers from in and writing results to
// out.
func NewApp(api adapter.AuthAPI, in io.Reader, out io.Writer, log *logger.Logger) *App {
	a := &App{
		api:    api,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: log,
	}

	a.commands = map[string]command{
		"requirements":    a.requirements,
		"register":        a.register,
		"login":           a.login,
		"change-password": a.changePassword,
		"check-auth":      a.checkAuth,
		"protected":       a.protected,
		"version":         a.version,
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	a.logger.Debug().Str("command", args[0]).Msg("running client command")

	return cmd(ctx, args[1:])
}

func (a *App) requirements(ctx context.Context, _ []string) error {
	policy, err := a.api.PasswordRequirements(ctx)
	if err != nil {
		return err
	}
	return a.print(policy)
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: register <username>", ErrMissingArgs)
	}

	password, err := a.prompt("Password")
	if err != nil {
		return err
	}
	confirm, err := a.prompt("Confirm password")
	if err != nil {
		return err
	}

	msg, err := a.api.Register(ctx, models.RegisterRequest{
		Username:        args[0],
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	return a.print(msg)
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: login <username>", ErrMissingArgs)
	}

	password, err := a.prompt("Password")
	if err != nil {
		return err
	}

	session, err := a.api.Login(ctx, models.LoginRequest{Username: args[0], Password: password})
	if err != nil {
		return err
	}
	return a.print(session)
}

func (a *App) changePassword(ctx context.Context, _ []string) error {
	current, err := a.prompt("Current password")
	if err != nil {
		return err
	}
	next, err := a.prompt("New password")
	if err != nil {
		return err
	}
	confirm, err := a.prompt("Confirm new password")
	if err != nil {
		return err
	}

	msg, err := a.api.ChangePassword(ctx, models.ChangePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	return a.print(msg)
}

func (a *App) checkAuth(ctx context.Context, _ []string) error {
	out, err := a.api.CheckAuth(ctx)
	if err != nil {
		return err
	}
	return a.print(out)
}

func (a *App) protected(ctx context.Context, _ []string) error {
	out, err := a.api.Protected(ctx)
	if err != nil {
		return err
	}
	return a.print(out)
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.api.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, v)
	return err
}

// prompt writes label to out and returns the next input line without its
// trailing newline. Leading and trailing spaces are part of a password and
// are kept.
func (a *App) prompt(label string) (string, error) {
	if _, err := fmt.Fprintf(a.out, "%s: ", label); err != nil {
		return "", err
	}

	if !a.in.Scan() {
		if err := a.in.Err(); err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return "", ErrNoInput
	}

	_, _ = fmt.Fprintln(a.out)
	return strings.TrimRight(a.in.Text(), "\r"), nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
