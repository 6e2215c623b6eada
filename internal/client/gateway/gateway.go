package gateway

import (
	"context"

	"github.com/avolkovs/flixcli/internal/client/models"
)

// Gateway is the single network boundary of the client. Every call maps
// its outcome into one of three shapes: a decoded payload, ErrUnauthorized,
// or a *StatusError describing why the call failed.
//
// The gateway never retries and never touches the session store; callers
// decide what an outcome means for the session.
type Gateway interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Register(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, username string, user *models.User) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
	ListMovies(ctx context.Context) ([]models.Movie, error)
}

// SessionReader supplies the bearer token for authenticated calls.
// Implemented by session.Store.
type SessionReader interface {
	Current() (*models.Session, bool)
}
