package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dkorchagin/logbook/internal/models"
)

// HTTPClient is the concrete Client over the backend's JSON API.
//
// Every call passes a shared rate limiter before hitting the wire, so
// duplicate UI events (a double-pressed key, a repeated toggle) cannot turn
// into a request storm.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewHTTPClient builds a client for the API rooted at baseURL. The timeout
// bounds every request end to end.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// do executes one JSON request. A non-empty token is attached as a bearer
// credential. When out is non-nil, a 2xx body is decoded into it.
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	// Drain the unread body so the connection goes back to the pool.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type responseMeta struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type authResponse struct {
	AccessToken string       `json:"accessToken"`
	Meta        responseMeta `json:"meta"`
}

// checkAuthResponse applies the auth contract: a non-200 meta status or an
// absent access token is a failure even when the HTTP layer reported success.
func checkAuthResponse(r *authResponse) (string, error) {
	if r.Meta.Status != 0 && r.Meta.Status != http.StatusOK {
		msg := r.Meta.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", r.Meta.Status)
		}
		return "", fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	if r.AccessToken == "" {
		return "", fmt.Errorf("%w: no access token issued", ErrRejected)
	}
	return r.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, &resp); err != nil {
		return "", err
	}
	return checkAuthResponse(&resp)
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &resp); err != nil {
		return "", err
	}
	return checkAuthResponse(&resp)
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*models.Identity, error) {
	var id models.Identity
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *HTTPClient) Notifications(ctx context.Context, token string) ([]models.Notification, error) {
	var items []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) SetFollowBack(ctx context.Context, token, username string, follow bool) error {
	method := http.MethodPost
	if !follow {
		method = http.MethodDelete
	}
	return c.do(ctx, method, "/follows/"+url.PathEscape(username), token, nil, nil)
}
