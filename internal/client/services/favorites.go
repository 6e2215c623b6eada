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

// Reconciler drives the optimistic toggle-favorite workflow.
//
// It keeps two views of the favorites set: the baseline (last state the
// server confirmed) and the displayed set (baseline plus unconfirmed
// toggles). A toggle is applied to the displayed set immediately; the
// remote write carries whatever the displayed set says at send time, so
// rapid toggles compose and coalesce into at most one follow-up write
// behind the one in flight. On any failed write the displayed set rolls
// back to the baseline current at rollback time.
type Reconciler struct {
	mu        sync.Mutex
	gw        gateway.Gateway
	sessions  SessionStore
	log       logging.Logger
	user      *models.User
	baseline  []string
	displayed []string
	inFlight  bool
}

func NewReconciler(gw gateway.Gateway, sessions SessionStore, log logging.Logger) *Reconciler {
	return &Reconciler{gw: gw, sessions: sessions, log: log.With("component", "favorites")}
}

// Reset installs a server-confirmed user snapshot as the new baseline,
// discarding any unconfirmed local state. Called after login and after a
// profile load.
func (r *Reconciler) Reset(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = user.Clone()
	r.baseline = normalizeSet(user.FavoriteMovies)
	r.displayed = slices.Clone(r.baseline)
}

// Clear drops the baseline and displayed state, e.g. on logout or when a
// profile update forces re-authentication.
func (r *Reconciler) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = nil
	r.baseline = nil
	r.displayed = nil
}

// Displayed returns the favorites list the UI should show right now.
func (r *Reconciler) Displayed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.displayed)
}

// Baseline returns the last server-confirmed favorites list.
func (r *Reconciler) Baseline() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.baseline)
}

// Toggle flips the membership of movieID in the displayed set and
// confirms the change remotely. The optimistic apply happens before any
// network I/O; the returned list is the displayed state after
// reconciliation (or after the optimistic apply, when the change was
// coalesced into a write already in flight).
//
// At most one remote write is outstanding at a time. The caller that owns
// the in-flight write keeps sending until the displayed set it sent
// matches the displayed set at completion, so toggles that land mid-write
// are carried by one follow-up request with the final composed set.
func (r *Reconciler) Toggle(ctx context.Context, movieID string) ([]string, error) {
	r.mu.Lock()
	if r.user == nil {
		r.mu.Unlock()
		return nil, ErrNoProfile
	}
	r.displayed = toggleSet(r.displayed, movieID)
	if r.inFlight {
		// Another toggle owns the write slot; this change rides along
		// with its follow-up request.
		out := slices.Clone(r.displayed)
		r.mu.Unlock()
		return out, nil
	}
	r.inFlight = true
	r.mu.Unlock()

	return r.flush(ctx)
}

func (r *Reconciler) flush(ctx context.Context) ([]string, error) {
	for {
		r.mu.Lock()
		if r.user == nil {
			// Cleared while a write was outstanding (logout, forced
			// re-authentication). Nothing left to reconcile.
			r.inFlight = false
			r.mu.Unlock()
			return nil, ErrNoProfile
		}
		sent := slices.Clone(r.displayed)
		u := r.user.Clone()
		u.FavoriteMovies = slices.Clone(sent)
		username := r.user.Username
		r.mu.Unlock()

		updated, err := r.gw.UpdateUser(ctx, username, u)

		r.mu.Lock()
		switch {
		case err == nil:
			r.user = updated.Clone()
			r.baseline = normalizeSet(updated.FavoriteMovies)
			if sameSet(r.displayed, sent) {
				// No toggles landed mid-flight; the authoritative list
				// becomes the displayed state.
				r.displayed = slices.Clone(r.baseline)
				r.inFlight = false
				out := slices.Clone(r.displayed)
				r.mu.Unlock()
				return out, nil
			}
			// Displayed moved on while the write was in flight: send the
			// composed set before releasing the write slot.
			r.mu.Unlock()

		case errors.Is(err, gateway.ErrUnauthorized):
			r.displayed = slices.Clone(r.baseline)
			r.inFlight = false
			r.user = nil
			r.mu.Unlock()
			if cerr := r.sessions.Clear(ctx); cerr != nil {
				r.log.Error(ctx, "clearing session after auth failure", "err", cerr)
			}
			return nil, fmt.Errorf("favorites update: %w", err)

		default:
			rolledBack := slices.Clone(r.baseline)
			r.displayed = rolledBack
			r.inFlight = false
			r.mu.Unlock()
			r.log.Warn(ctx, "favorites update failed, rolled back", "err", err)
			return slices.Clone(rolledBack), fmt.Errorf("favorites update: %w", err)
		}
	}
}

// toggleSet returns s without id if present, else s with id appended.
func toggleSet(s []string, id string) []string {
	if slices.Contains(s, id) {
		out := make([]string, 0, len(s)-1)
		for _, v := range s {
			if v != id {
				out = append(out, v)
			}
		}
		return out
	}
	return append(slices.Clone(s), id)
}

// normalizeSet drops duplicate ids, preserving first-seen order.
func normalizeSet(s []string) []string {
	seen := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	am := make(map[string]struct{}, len(a))
	for _, v := range a {
		am[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := am[v]; !ok {
			return false
		}
	}
	return true
}
