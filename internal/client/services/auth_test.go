package services

import (
	"context"
	"testing"

	"github.com/avolkovs/flixcli/internal/client/gateway"
	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestLogin_EstablishesSession(t *testing.T) {
	user := &models.User{ID: "u1", Username: "abc", FavoriteMovies: []string{"m1"}}
	gw := &fakeGateway{LoginSess: &models.Session{User: user, Token: "tok1"}}
	store := &fakeSessionStore{}
	svc := NewAuthService(gw, store, discardLogger())

	got, err := svc.Login(context.Background(), "abc", "secret")
	require.NoError(t, err)
	require.Equal(t, "abc", got.Username)
	require.Equal(t, "abc", gw.LastLoginUsername)
	require.Equal(t, "secret", gw.LastLoginPassword)

	sess, ok := store.Current()
	require.True(t, ok)
	require.Equal(t, "tok1", sess.Token)
	require.Equal(t, "abc", sess.User.Username)
}

func TestLogin_ValidationBeforeAnyNetworkCall(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewAuthService(gw, &fakeSessionStore{}, discardLogger())

	_, err := svc.Login(context.Background(), "ab", "secret")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(context.Background(), "abc", "")
	require.ErrorIs(t, err, ErrValidation)

	require.Zero(t, gw.LoginCalls, "validation failures must not reach the gateway")
}

func TestLogin_GatewayFailureLeavesNoSession(t *testing.T) {
	gw := &fakeGateway{LoginErr: &gateway.StatusError{Kind: gateway.KindProtocol, Message: "invalid credentials"}}
	store := &fakeSessionStore{}
	svc := NewAuthService(gw, store, discardLogger())

	_, err := svc.Login(context.Background(), "abc", "wrong")
	require.Error(t, err)
	_, ok := store.Current()
	require.False(t, ok)
}

func TestLogout_ClearsSessionAndIsIdempotent(t *testing.T) {
	store := loggedInStore(&models.User{Username: "abc"})
	svc := NewAuthService(&fakeGateway{}, store, discardLogger())

	require.NoError(t, svc.Logout(context.Background()))
	_, ok := store.Current()
	require.False(t, ok)

	require.NoError(t, svc.Logout(context.Background()), "logging out while anonymous is a no-op")
}

func TestRegister_Validation(t *testing.T) {
	svc := NewAuthService(&fakeGateway{}, &fakeSessionStore{}, discardLogger())

	tests := []struct {
		name string
		user models.User
	}{
		{"short username", models.User{Username: "ab", Password: "p", Email: "a@b.c"}},
		{"empty password", models.User{Username: "abc", Email: "a@b.c"}},
		{"empty email", models.User{Username: "abc", Password: "p"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.user)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	svc := NewAuthService(&fakeGateway{}, &fakeSessionStore{}, discardLogger())

	created, err := svc.Register(context.Background(), &models.User{
		Username: "abc", Password: "secret", Email: "abc@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "abc", created.Username)
}
