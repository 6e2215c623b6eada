// Package gateway performs authenticated JSON-over-HTTP calls against the
// movies-flix service and normalizes transport and status outcomes into
// the client's error taxonomy.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avolkovs/flixcli/internal/client/models"
	"github.com/avolkovs/flixcli/internal/logging"
	"github.com/google/uuid"
)

// HTTPGateway is the Gateway implementation over net/http.
type HTTPGateway struct {
	baseURL  string
	http     *http.Client
	sessions SessionReader
	log      logging.Logger
	now      func() time.Time
}

func NewHTTPGateway(baseURL string, timeout time.Duration, sessions SessionReader, log logging.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		log:      log.With("component", "gateway"),
		now:      time.Now,
	}
}

type loginRequest struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

type loginResponse struct {
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

func (g *HTTPGateway) Login(ctx context.Context, username, password string) (*models.Session, error) {
	raw, err := g.do(ctx, http.MethodPost, "/login", loginRequest{Username: username, Password: password}, false)
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, protocolError("decode login response", err)
	}
	if resp.Token == "" || resp.User == nil {
		// The service reports bad credentials as a 2xx body carrying only
		// a message field.
		msg := resp.Message
		if msg == "" {
			msg = "login response missing token"
		}
		return nil, &StatusError{Kind: KindProtocol, Message: msg}
	}
	return &models.Session{User: resp.User, Token: resp.Token}, nil
}

func (g *HTTPGateway) Register(ctx context.Context, user *models.User) (*models.User, error) {
	raw, err := g.do(ctx, http.MethodPost, "/users", user, false)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (g *HTTPGateway) GetUser(ctx context.Context, username string) (*models.User, error) {
	raw, err := g.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username), nil, true)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (g *HTTPGateway) UpdateUser(ctx context.Context, username string, user *models.User) (*models.User, error) {
	raw, err := g.do(ctx, http.MethodPut, "/users/"+url.PathEscape(username), user, true)
	if err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

func (g *HTTPGateway) DeleteUser(ctx context.Context, username string) error {
	_, err := g.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(username), nil, true)
	return err
}

func (g *HTTPGateway) ListMovies(ctx context.Context) ([]models.Movie, error) {
	raw, err := g.do(ctx, http.MethodGet, "/movies", nil, true)
	if err != nil {
		return nil, err
	}
	var movies []models.Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		return nil, protocolError("decode movie list", err)
	}
	return movies, nil
}

// do runs one request/response cycle. Authenticated calls fail fast with
// ErrUnauthorized when no session exists or the bearer token is already
// expired, without any network I/O.
func (g *HTTPGateway) do(ctx context.Context, method, path string, body any, authed bool) ([]byte, error) {
	var token string
	if authed {
		sess, ok := g.sessions.Current()
		if !ok {
			return nil, ErrUnauthorized
		}
		if tokenExpired(sess.Token, g.now()) {
			return nil, ErrUnauthorized
		}
		token = sess.Token
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, protocolError("encode request body", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, protocolError("build request", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return nil, networkError("server unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkError("read response", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		g.log.Warn(ctx, "request rejected", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return nil, &StatusError{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage(raw, resp.Status)}
	}
	return raw, nil
}

func decodeUser(raw []byte) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, protocolError("decode user payload", err)
	}
	return &user, nil
}

// serverMessage extracts the optional message field of an error body,
// falling back to the HTTP status line.
func serverMessage(raw []byte, fallback string) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fallback
}
