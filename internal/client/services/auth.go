package services

import (
	"context"
	"fmt"

	"github.com/avolkovs/flixcli/internal/client/gateway"
	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/avolkovs/flixcli/internal/logging"
)

const minUsernameLength = 3

// AuthService logs users in and out. A successful login is the only
// place a session is established.
type AuthService struct {
	gw       gateway.Gateway
	sessions SessionStore
	log      logging.Logger
}

func NewAuthService(gw gateway.Gateway, sessions SessionStore, log logging.Logger) *AuthService {
	return &AuthService{gw: gw, sessions: sessions, log: log.With("component", "auth")}
}

// Login validates the credentials client-side, authenticates against the
// server, and establishes the session from the returned user snapshot and
// token. Validation failures are reported before any network I/O.
func (a *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if len(username) < minUsernameLength {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLength)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", ErrValidation)
	}

	sess, err := a.gw.Login(ctx, username, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := a.sessions.Establish(ctx, sess.User, sess.Token); err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	a.log.Info(ctx, "logged in", "username", sess.User.Username)
	return sess.User, nil
}

// Register creates a new account. It does not log the user in; the
// service expects a login with the new credentials afterwards.
func (a *AuthService) Register(ctx context.Context, user *models.User) (*models.User, error) {
	if len(user.Username) < minUsernameLength {
		return nil, fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLength)
	}
	if user.Password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", ErrValidation)
	}
	if user.Email == "" {
		return nil, fmt.Errorf("%w: email must not be empty", ErrValidation)
	}

	created, err := a.gw.Register(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return created, nil
}

// Logout clears the session. Logging out while anonymous is a no-op.
func (a *AuthService) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
