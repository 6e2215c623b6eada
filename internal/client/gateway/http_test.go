package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/avolkovs/flixcli/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	sess *models.Session
}

func (f *fakeSessions) Current() (*models.Session, bool) {
	if f.sess == nil {
		return nil, false
	}
	return f.sess, true
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newGateway(t *testing.T, handler http.Handler, sess *models.Session) (*HTTPGateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewHTTPGateway(srv.URL, 2*time.Second, &fakeSessions{sess: sess}, discardLogger())
	return g, srv
}

func loggedIn() *models.Session {
	return &models.Session{
		User:  &models.User{ID: "u1", Username: "abc", FavoriteMovies: []string{"m1"}},
		Token: "tok1",
	}
}

func TestLogin_Success(t *testing.T) {
	var gotBody loginRequest
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"_id": "u1", "Username": "abc", "FavoriteMovies": []string{}},
			"token": "tok1",
		})
	}), nil)

	sess, err := g.Login(context.Background(), "abc", "secret")
	require.NoError(t, err)
	require.Equal(t, "tok1", sess.Token)
	require.Equal(t, "abc", sess.User.Username)
	require.Equal(t, loginRequest{Username: "abc", Password: "secret"}, gotBody)
}

func TestLogin_MessageBodyWithoutToken(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}), nil)

	_, err := g.Login(context.Background(), "abc", "wrong")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindProtocol, se.Kind)
	require.Equal(t, "invalid credentials", se.Message)
}

func TestGetUser_AttachesBearerToken(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/abc", r.URL.Path)
		require.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(models.User{ID: "u1", Username: "abc"})
	}), loggedIn())

	u, err := g.GetUser(context.Background(), "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", u.Username)
}

func TestAuthedCall_NoSessionFailsWithoutNetworkIO(t *testing.T) {
	var hits atomic.Int32
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), nil)

	_, err := g.GetUser(context.Background(), "abc")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Zero(t, hits.Load())
}

func TestAuthedCall_ExpiredTokenFailsWithoutNetworkIO(t *testing.T) {
	var hits atomic.Int32
	sess := loggedIn()
	sess.Token = signedToken(t, time.Now().Add(-time.Hour))

	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}), sess)

	_, err := g.GetUser(context.Background(), "abc")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Zero(t, hits.Load())
}

func TestAuthedCall_401MapsToUnauthorized(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}), loggedIn())

	_, err := g.GetUser(context.Background(), "abc")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestServerError_SurfacesMessageVerbatim(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "username already taken"})
	}), loggedIn())

	_, err := g.GetUser(context.Background(), "abc")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindServer, se.Kind)
	require.Equal(t, http.StatusConflict, se.Status)
	require.Equal(t, "username already taken", se.Message)
}

func TestServerError_FallsBackToStatusLine(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), loggedIn())

	_, err := g.GetUser(context.Background(), "abc")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindServer, se.Kind)
	require.Contains(t, se.Message, "Internal Server Error")
}

func TestTransportFailure_IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewHTTPGateway(url, time.Second, &fakeSessions{sess: loggedIn()}, discardLogger())
	_, err := g.GetUser(context.Background(), "abc")

	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindNetwork, se.Kind)
}

func TestMalformedSuccessBody_IsProtocolError(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	}), loggedIn())

	_, err := g.GetUser(context.Background(), "abc")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindProtocol, se.Kind)
}

func TestUpdateUser_SendsFullUserToSessionUsernamePath(t *testing.T) {
	var gotUser models.User
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/users/abc", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotUser))
		json.NewEncoder(w).Encode(gotUser)
	}), loggedIn())

	update := &models.User{ID: "u1", Username: "abc", Email: "a@b.c", FavoriteMovies: []string{"m1", "m2"}}
	updated, err := g.UpdateUser(context.Background(), "abc", update)
	require.NoError(t, err)
	require.Equal(t, []string{"m1", "m2"}, gotUser.FavoriteMovies)
	require.Equal(t, []string{"m1", "m2"}, updated.FavoriteMovies)
}

func TestDeleteUser_Success(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/users/abc", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}), loggedIn())

	require.NoError(t, g.DeleteUser(context.Background(), "abc"))
}

func TestListMovies_DecodesCatalog(t *testing.T) {
	g, _ := newGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/movies", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Movie{
			{ID: "m1", Title: "Alien", Director: models.Named{Name: "Ridley Scott"}, Genre: models.Named{Name: "Sci-Fi"}},
		})
	}), loggedIn())

	movies, err := g.ListMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 1)
	require.Equal(t, "Alien", movies[0].Title)
	require.Equal(t, "Ridley Scott", movies[0].Director.Name)
}
