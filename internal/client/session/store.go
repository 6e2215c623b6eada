// Package session holds the authenticated identity: the pairing of the
// cached user record and the bearer token. It is the single source of
// truth for "who is logged in" and the only state shared between the
// client's components.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/avolkovs/flixcli/internal/client/repositories/metadata"
	"github.com/avolkovs/flixcli/internal/dbx"
)

const (
	keyUser  = "user"
	keyToken = "token"
)

// Store keeps the session both in memory (for synchronous reads) and in
// the local database (so a restart does not force re-login). User and
// token are written and erased together; a half-written session is never
// observable, in memory or on disk.
type Store struct {
	mu  sync.RWMutex
	db  *sql.DB
	cur *models.Session
}

// NewStore builds a Store over db and hydrates the in-memory session from
// it. A stored snapshot missing either half of the pair is treated as
// anonymous and wiped.
func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	s := &Store{db: db}

	repo := metadata.NewSQLiteRepository(db)
	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}
	rawToken, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}

	if rawUser == nil || rawToken == nil {
		if rawUser != nil || rawToken != nil {
			if err := s.Clear(ctx); err != nil {
				return nil, err
			}
		}
		return s, nil
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		// Unreadable snapshot, treat as anonymous.
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	s.cur = &models.Session{User: &user, Token: string(rawToken)}
	return s, nil
}

// Establish stores the user snapshot and token as one session, replacing
// any prior one. Both keys are written in a single transaction.
func (s *Store) Establish(ctx context.Context, user *models.User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user snapshot: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUser, raw); err != nil {
			return err
		}
		return repo.Set(ctx, keyToken, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	s.cur = &models.Session{User: user.Clone(), Token: token}
	s.mu.Unlock()
	return nil
}

// Current returns the session and true if one exists. It never blocks;
// the read is served from memory.
func (s *Store) Current() (*models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return nil, false
	}
	return &models.Session{User: s.cur.User.Clone(), Token: s.cur.Token}, true
}

// Clear erases the session, both halves together. Clearing an anonymous
// session is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyUser); err != nil {
			return err
		}
		return repo.Delete(ctx, keyToken)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()
	return nil
}
