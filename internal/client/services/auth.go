// Package services contains the application services behind the CLI
// commands. This file holds authentication: login, registration, logout and
// the liveness probe.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/client/client"
	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/dmitrijs2005/elegacy/internal/validate"
)

// SessionGate is the part of session.Gate the services rely on.
type SessionGate interface {
	SignIn(ctx context.Context, rec *models.SessionRecord) error
	SignOut(ctx context.Context) error
	Session() *models.SessionRecord
}

// AuthService defines authentication operations for the CLI.
//
// Input is validated before any request is sent. A successful login hands
// the server's payload, untouched, to the session gate.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.SessionRecord, error)
	Register(ctx context.Context, form models.SignupForm) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	gate   SessionGate
	log    logging.Logger
}

func NewAuthService(c client.Client, gate SessionGate, log logging.Logger) AuthService {
	return &authService{client: c, gate: gate, log: log}
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.SessionRecord, error) {
	email = strings.TrimSpace(email)
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.Password(password); err != nil {
		return nil, err
	}

	raw, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	rec, err := models.NewSessionRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("login: %w: %w", client.ErrMalformedResponse, err)
	}
	if err := a.gate.SignIn(ctx, rec); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	a.log.Info(ctx, "signed in", "email", email)
	return rec, nil
}

func (a *authService) Register(ctx context.Context, f models.SignupForm) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)

	if err := validate.Required(f.Name, f.Email, f.Password, f.ConfirmPassword); err != nil {
		return err
	}
	if err := validate.Email(f.Email); err != nil {
		return err
	}
	if err := validate.Password(f.Password); err != nil {
		return err
	}
	if err := validate.Confirm(f.Password, f.ConfirmPassword); err != nil {
		return err
	}

	if err := a.client.Signup(ctx, f.Name, f.Email, f.Password); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.gate.SignOut(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
