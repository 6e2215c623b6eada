package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/avolkovs/flixcli/internal/logging"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeGateway implements gateway.Gateway for unit tests. Unless an error
// or a custom UpdateFn is configured, UpdateUser echoes its input back,
// which matches a server accepting the replace request as-is.
type fakeGateway struct {
	mu sync.Mutex

	LoginSess *models.Session
	LoginErr  error

	RegisterRet *models.User
	RegisterErr error

	GetUserRet *models.User
	GetUserErr error

	UpdateErr error
	UpdateFn  func(call int, username string, u *models.User) (*models.User, error)

	DeleteErr error

	MoviesRet []models.Movie
	MoviesErr error

	LastLoginUsername  string
	LastLoginPassword  string
	LastUpdateUsername string
	LastUpdateUser     *models.User
	LastDeleteUsername string

	LoginCalls  int
	UpdateCalls int
	MovieCalls  int
	// SentFavorites records the favorites list of every UpdateUser call.
	SentFavorites [][]string
}

func (f *fakeGateway) Login(ctx context.Context, username, password string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoginCalls++
	f.LastLoginUsername = username
	f.LastLoginPassword = password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginSess, nil
}

func (f *fakeGateway) Register(ctx context.Context, user *models.User) (*models.User, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	if f.RegisterRet != nil {
		return f.RegisterRet, nil
	}
	return user.Clone(), nil
}

func (f *fakeGateway) GetUser(ctx context.Context, username string) (*models.User, error) {
	if f.GetUserErr != nil {
		return nil, f.GetUserErr
	}
	return f.GetUserRet.Clone(), nil
}

func (f *fakeGateway) UpdateUser(ctx context.Context, username string, u *models.User) (*models.User, error) {
	f.mu.Lock()
	f.UpdateCalls++
	call := f.UpdateCalls
	f.LastUpdateUsername = username
	f.LastUpdateUser = u.Clone()
	f.SentFavorites = append(f.SentFavorites, slices.Clone(u.FavoriteMovies))
	fn := f.UpdateFn
	updateErr := f.UpdateErr
	f.mu.Unlock()

	if fn != nil {
		return fn(call, username, u)
	}
	if updateErr != nil {
		return nil, updateErr
	}
	return u.Clone(), nil
}

func (f *fakeGateway) DeleteUser(ctx context.Context, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastDeleteUsername = username
	return f.DeleteErr
}

func (f *fakeGateway) ListMovies(ctx context.Context) ([]models.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.MovieCalls++
	if f.MoviesErr != nil {
		return nil, f.MoviesErr
	}
	return slices.Clone(f.MoviesRet), nil
}

// fakeSessionStore implements SessionStore in memory.
type fakeSessionStore struct {
	mu           sync.Mutex
	sess         *models.Session
	ClearCalls   int
	EstablishErr error
}

func (f *fakeSessionStore) Establish(ctx context.Context, user *models.User, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EstablishErr != nil {
		return f.EstablishErr
	}
	f.sess = &models.Session{User: user.Clone(), Token: token}
	return nil
}

func (f *fakeSessionStore) Current() (*models.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sess == nil {
		return nil, false
	}
	return &models.Session{User: f.sess.User.Clone(), Token: f.sess.Token}, true
}

func (f *fakeSessionStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	f.sess = nil
	return nil
}

func loggedInStore(user *models.User) *fakeSessionStore {
	return &fakeSessionStore{sess: &models.Session{User: user.Clone(), Token: "tok1"}}
}
