package services

import (
	"context"
	"errors"

	"github.com/avolkovs/flixcli/internal/client/models"
)

var (
	// ErrValidation reports client-detected input problems. No network
	// call was issued.
	ErrValidation = errors.New("validation error")

	// ErrNoProfile is returned by operations that need a loaded profile
	// or an established favorites baseline.
	ErrNoProfile = errors.New("no profile loaded")

	// ErrNotEditing is returned when a draft mutation is attempted
	// outside the editing state.
	ErrNotEditing = errors.New("profile is not being edited")
)

// SessionStore is the session surface the services need. Implemented by
// session.Store.
type SessionStore interface {
	Establish(ctx context.Context, user *models.User, token string) error
	Current() (*models.Session, bool)
	Clear(ctx context.Context) error
}
