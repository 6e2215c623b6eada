package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/avolkovs/flixcli/internal/client/gateway"
	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/avolkovs/flixcli/internal/logging"
)

// Catalog is a read-only, session-scoped cache of the movie list. The
// client never mutates movies.
type Catalog struct {
	mu       sync.Mutex
	gw       gateway.Gateway
	sessions SessionStore
	log      logging.Logger
	movies   []models.Movie
	loaded   bool
}

func NewCatalog(gw gateway.Gateway, sessions SessionStore, log logging.Logger) *Catalog {
	return &Catalog{gw: gw, sessions: sessions, log: log.With("component", "catalog")}
}

// Movies returns the cached catalog, fetching it on first use. An
// Unauthorized outcome clears the session before being reported.
func (c *Catalog) Movies(ctx context.Context) ([]models.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return slices.Clone(c.movies), nil
	}
	return c.refreshLocked(ctx)
}

// Refresh discards the cache and fetches the catalog again.
func (c *Catalog) Refresh(ctx context.Context) ([]models.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked(ctx)
}

// Invalidate drops the cached catalog, e.g. on logout.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movies = nil
	c.loaded = false
}

func (c *Catalog) refreshLocked(ctx context.Context) ([]models.Movie, error) {
	movies, err := c.gw.ListMovies(ctx)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			if cerr := c.sessions.Clear(ctx); cerr != nil {
				c.log.Error(ctx, "clearing session after auth failure", "err", cerr)
			}
		}
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	c.movies = movies
	c.loaded = true
	return slices.Clone(c.movies), nil
}
