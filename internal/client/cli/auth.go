package cli

import (
	"context"
	"fmt"

	"github.com/avolkovs/flixcli/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates. On success the
// session is established and the favorites baseline is installed from
// the returned user snapshot.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	user, err := a.auth.Login(ctx, username, string(password))
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", reason(err))
		return err
	}

	a.favorites.Reset(user)
	fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)
	return nil
}

// Register prompts for the new account's fields and creates it. The user
// still has to log in afterwards.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username (min 3 characters)", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	birthday, err := getSimpleText(a.reader, "Enter birthday (YYYY-MM-DD, optional)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipeBytes(password)

	user := &models.User{
		Username: username,
		Password: string(password),
		Email:    email,
		Birthday: birthday,
	}
	if _, err := a.auth.Register(ctx, user); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", reason(err))
		return err
	}

	fmt.Fprintln(a.out, "Account created, please log in.")
	return nil
}

// Logout clears the session and all session-scoped caches.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", reason(err))
		return err
	}
	a.favorites.Clear()
	a.catalog.Invalidate()
	a.lastListing = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
