// Package api is the transport for the memory game REST API. Every request
// goes through Client.Do, which resolves relative paths against the API
// origin, attaches the stored bearer token, and ends the session on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/memoria/internal/logger"
	"github.com/alexisbeaulieu97/memoria/internal/storage"
	memerrors "github.com/alexisbeaulieu97/memoria/pkg/errors"
)

// Endpoint paths consumed by the client.
const (
	PathTopScores   = "/memory/top-scores"
	PathSaveScore   = "/memory/save"
	PathRegister    = "/memory/register"
	PathLogin       = "/memory/login"
	PathPreferences = "/player/preferences"
	PathEmail       = "/player/email"
)

// SessionExpiredMessage is shown to the player when a 401 ends the session.
const SessionExpiredMessage = "Session expired. Please login again."

// TokenStore is the subset of the local store the client needs.
type TokenStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Store      TokenStore
	Logger     *logger.Logger
	// OnUnauthorized runs after a 401 cleared the stored token.
	OnUnauthorized func()
}

// Client issues requests against the game API.
type Client struct {
	baseURL        string
	http           *http.Client
	store          TokenStore
	log            *logger.Logger
	onUnauthorized func()
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Body   any
	// SkipSessionCheck leaves a 401 to the caller instead of ending the
	// session. Login uses it because a 401 there is a bad credential.
	SkipSessionCheck bool
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("api base url is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("token store is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:        base,
		http:           httpClient,
		store:          opts.Store,
		log:            opts.Logger,
		onUnauthorized: opts.OnUnauthorized,
	}, nil
}

// SetUnauthorizedHandler replaces the hook run after a 401.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.onUnauthorized = fn
}

// Token returns the stored session token.
func (c *Client) Token() (string, bool) {
	token, ok := c.store.Get(storage.KeyToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// HasToken reports whether a session token is stored.
func (c *Client) HasToken() bool {
	_, ok := c.Token()
	return ok
}

// SetToken stores a new session token.
func (c *Client) SetToken(token string) error {
	return c.store.Set(storage.KeyToken, token)
}

// ClearToken removes the session token.
func (c *Client) ClearToken() error {
	return c.store.Remove(storage.KeyToken)
}

// URL resolves path against the API origin. Absolute URLs pass through.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "/") {
		return c.baseURL + path
	}
	return path
}

// Do sends req. The caller must close the response body. A 401 without
// SkipSessionCheck clears the token, runs the unauthorized hook, and returns
// an error matching memerrors.ErrUnauthorized.
func (c *Client) Do(ctx context.Context, req Request) (*http.Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, req.Path, err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.URL(req.Path), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, req.Path, err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if token, ok := c.Token(); ok {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug(ctx, "api request", "method", method, "path", req.Path)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.SkipSessionCheck {
		drain(resp)
		c.expireSession(ctx, req.Path)
		return nil, memerrors.NewAPIError(req.Path, resp.StatusCode, SessionExpiredMessage)
	}
	return resp, nil
}

func (c *Client) expireSession(ctx context.Context, path string) {
	c.log.Warn(ctx, "session expired", "path", path)
	if err := c.ClearToken(); err != nil {
		c.log.Error(ctx, "failed to clear session token", "error", err)
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// DecodeJSON decodes the response body into out and closes it.
func DecodeJSON(resp *http.Response, out any) error {
	defer drain(resp)
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Close discards and closes the response body.
func Close(resp *http.Response) {
	drain(resp)
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// IsUnauthorized reports whether err ended the session.
func IsUnauthorized(err error) bool {
	return errors.Is(err, memerrors.ErrUnauthorized)
}
