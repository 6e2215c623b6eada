package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avolkovs/flixcli/internal/client/gateway"
	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/avolkovs/flixcli/internal/logging"
)

// EditorState names the profile editor's position in its lifecycle.
type EditorState string

const (
	StateViewing       EditorState = "viewing"
	StateEditing       EditorState = "editing"
	StateCommitting    EditorState = "committing"
	StateDeregistering EditorState = "deregistering"
)

// Field names a profile field that can be staged into the draft.
type Field string

const (
	FieldUsername Field = "username"
	FieldPassword Field = "password"
	FieldEmail    Field = "email"
	FieldBirthday Field = "birthday"
)

// Editor loads a profile, stages edits in a draft, and commits or
// discards them. The draft and the cached copy stay independent until a
// commit succeeds; a successful commit clears the whole session because
// the credentials may have changed.
type Editor struct {
	gw       gateway.Gateway
	sessions SessionStore
	log      logging.Logger

	state  EditorState
	cached *models.User
	draft  *models.User
}

func NewEditor(gw gateway.Gateway, sessions SessionStore, log logging.Logger) *Editor {
	return &Editor{gw: gw, sessions: sessions, log: log.With("component", "profile"), state: StateViewing}
}

func (e *Editor) State() EditorState { return e.state }

// Cached returns a copy of the last-confirmed profile, or nil before a
// successful Load.
func (e *Editor) Cached() *models.User { return e.cached.Clone() }

// Draft returns a copy of the staged profile. The password field is
// write-only and not included in the copy handed out for display.
func (e *Editor) Draft() *models.User {
	d := e.draft.Clone()
	if d != nil {
		d.Password = ""
	}
	return d
}

// Load fetches the session user's profile and installs both the cached
// copy and a draft initialized to the same value. On Unauthorized the
// session is cleared; on any other failure no partial profile is
// installed.
func (e *Editor) Load(ctx context.Context) error {
	sess, ok := e.sessions.Current()
	if !ok {
		return fmt.Errorf("load profile: %w", gateway.ErrUnauthorized)
	}

	user, err := e.gw.GetUser(ctx, sess.User.Username)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			if cerr := e.sessions.Clear(ctx); cerr != nil {
				e.log.Error(ctx, "clearing session after auth failure", "err", cerr)
			}
		}
		return fmt.Errorf("load profile: %w", err)
	}

	e.cached = user
	e.draft = user.Clone()
	e.state = StateViewing
	return nil
}

// BeginEdit moves Viewing -> Editing with a fresh draft.
func (e *Editor) BeginEdit() error {
	if e.cached == nil {
		return ErrNoProfile
	}
	if e.state != StateViewing {
		return fmt.Errorf("%w: cannot edit while %s", ErrNotEditing, e.state)
	}
	e.draft = e.cached.Clone()
	e.state = StateEditing
	return nil
}

// Stage writes one field into the draft. The cached copy is never
// touched. Values are validated before they enter the draft, so a commit
// never carries a value the client already knows is bad.
func (e *Editor) Stage(field Field, value string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}

	switch field {
	case FieldUsername:
		if len(value) < minUsernameLength {
			return fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLength)
		}
		e.draft.Username = value
	case FieldPassword:
		if value == "" {
			return fmt.Errorf("%w: password must not be empty", ErrValidation)
		}
		e.draft.Password = value
	case FieldEmail:
		if !strings.Contains(value, "@") {
			return fmt.Errorf("%w: email must contain '@'", ErrValidation)
		}
		e.draft.Email = value
	case FieldBirthday:
		day, err := parseBirthday(value)
		if err != nil {
			return err
		}
		e.draft.Birthday = day
	default:
		return fmt.Errorf("%w: unknown field %q", ErrValidation, field)
	}
	return nil
}

// Cancel discards the draft and returns to Viewing. No network call.
func (e *Editor) Cancel() error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.draft = e.cached.Clone()
	e.state = StateViewing
	return nil
}

// Commit sends the full draft as a replace-profile request. On success
// the session is cleared unconditionally and all local profile state is
// dropped: the credentials may have changed, so the user must
// re-authenticate. On failure the draft is kept and the editor returns to
// Editing.
func (e *Editor) Commit(ctx context.Context) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	sess, ok := e.sessions.Current()
	if !ok {
		return fmt.Errorf("commit profile: %w", gateway.ErrUnauthorized)
	}

	e.state = StateCommitting
	_, err := e.gw.UpdateUser(ctx, sess.User.Username, e.draft)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			e.reset()
			if cerr := e.sessions.Clear(ctx); cerr != nil {
				e.log.Error(ctx, "clearing session after auth failure", "err", cerr)
			}
			return fmt.Errorf("commit profile: %w", err)
		}
		e.state = StateEditing
		return fmt.Errorf("commit profile: %w", err)
	}

	e.log.Info(ctx, "profile updated, forcing re-authentication")
	e.reset()
	if err := e.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("invalidate session after update: %w", err)
	}
	return nil
}

// Deregister deletes the account scoped to the current session. On
// success the session and all local profile state are cleared
// unconditionally; on failure nothing is assumed deleted and the editor
// returns to Viewing.
func (e *Editor) Deregister(ctx context.Context) error {
	if e.state != StateViewing {
		return fmt.Errorf("%w: cannot deregister while %s", ErrNotEditing, e.state)
	}
	sess, ok := e.sessions.Current()
	if !ok {
		return fmt.Errorf("deregister: %w", gateway.ErrUnauthorized)
	}

	e.state = StateDeregistering
	err := e.gw.DeleteUser(ctx, sess.User.Username)
	if err != nil {
		if errors.Is(err, gateway.ErrUnauthorized) {
			e.reset()
			if cerr := e.sessions.Clear(ctx); cerr != nil {
				e.log.Error(ctx, "clearing session after auth failure", "err", cerr)
			}
			return fmt.Errorf("deregister: %w", err)
		}
		e.state = StateViewing
		return fmt.Errorf("deregister: %w", err)
	}

	e.log.Info(ctx, "account deregistered")
	e.reset()
	if err := e.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session after deregistration: %w", err)
	}
	return nil
}

func (e *Editor) reset() {
	e.cached = nil
	e.draft = nil
	e.state = StateViewing
}

// parseBirthday accepts a calendar date as YYYY-MM-DD or RFC 3339 and
// normalizes it to YYYY-MM-DD.
func parseBirthday(value string) (string, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("%w: birthday must be a date like 1990-12-31", ErrValidation)
}
