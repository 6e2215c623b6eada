package cli

import (
	"context"
	"fmt"

	"github.com/avolkovs/flixcli/internal/client/services"
)

// ShowProfile loads the profile on first use and prints the cached copy.
// The password is write-only and never displayed.
func (a *App) ShowProfile(ctx context.Context) error {
	if a.profile.Cached() == nil {
		if err := a.profile.Load(ctx); err != nil {
			fmt.Fprintln(a.out, "Could not load profile:", reason(err))
			return err
		}
	}

	user := a.profile.Cached()
	fmt.Fprintf(a.out, "Username: %s\n", user.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", user.Email)
	fmt.Fprintf(a.out, "Birthday: %s\n", user.Birthday)
	fmt.Fprintf(a.out, "Favorites: %d movie(s)\n", len(a.favorites.Displayed()))
	return nil
}

// EditProfile enters editing mode with a fresh draft.
func (a *App) EditProfile(ctx context.Context) error {
	if a.profile.Cached() == nil {
		if err := a.profile.Load(ctx); err != nil {
			fmt.Fprintln(a.out, "Could not load profile:", reason(err))
			return err
		}
	}
	if err := a.profile.BeginEdit(); err != nil {
		fmt.Fprintln(a.out, "Cannot edit:", reason(err))
		return err
	}
	fmt.Fprintln(a.out, "Editing profile. Use 'set <field>' to stage changes, then 'save' or 'cancel'.")
	return nil
}

// StageField prompts for a value and stages it into the draft.
func (a *App) StageField(ctx context.Context, name string) error {
	field, ok := map[string]services.Field{
		"username": services.FieldUsername,
		"password": services.FieldPassword,
		"email":    services.FieldEmail,
		"birthday": services.FieldBirthday,
	}[name]
	if !ok {
		fmt.Fprintf(a.out, "Unknown field %q (username, password, email, birthday)\n", name)
		return nil
	}

	var value string
	if field == services.FieldPassword {
		pw, err := getPassword(a.out)
		if err != nil {
			return err
		}
		value = string(pw)
		wipeBytes(pw)
	} else {
		v, err := getSimpleText(a.reader, "Enter new "+name, a.out)
		if err != nil {
			return err
		}
		value = v
	}

	if err := a.profile.Stage(field, value); err != nil {
		fmt.Fprintln(a.out, "Not staged:", reason(err))
		return err
	}
	fmt.Fprintf(a.out, "Staged %s; 'save' to commit\n", name)
	return nil
}

// SaveProfile commits the draft. A successful save invalidates the
// session, so the user must log in again.
func (a *App) SaveProfile(ctx context.Context) error {
	if err := a.profile.Commit(ctx); err != nil {
		fmt.Fprintln(a.out, "Save failed:", reason(err))
		return err
	}

	a.favorites.Clear()
	a.catalog.Invalidate()
	a.lastListing = nil
	fmt.Fprintln(a.out, "Profile updated. Please log in again to continue.")
	return nil
}

// CancelEdit discards the draft.
func (a *App) CancelEdit(ctx context.Context) error {
	if err := a.profile.Cancel(); err != nil {
		fmt.Fprintln(a.out, "Nothing to cancel:", reason(err))
		return err
	}
	fmt.Fprintln(a.out, "Changes discarded.")
	return nil
}

// Deregister asks for confirmation and deletes the account. On success
// all local state is gone; on failure nothing is assumed deleted.
func (a *App) Deregister(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This permanently deletes your account. Type 'yes' to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}

	if a.profile.Cached() == nil {
		if err := a.profile.Load(ctx); err != nil {
			fmt.Fprintln(a.out, "Could not load profile:", reason(err))
			return err
		}
	}
	if err := a.profile.Deregister(ctx); err != nil {
		fmt.Fprintln(a.out, "Deregistration failed:", reason(err))
		return err
	}

	a.favorites.Clear()
	a.catalog.Invalidate()
	a.lastListing = nil
	fmt.Fprintln(a.out, "Account deregistered.")
	return nil
}
