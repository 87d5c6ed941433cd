package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrNotAuthorized is returned when no usable credentials are available or the
// remote side keeps rejecting them.
var ErrNotAuthorized = errors.New("not authorized")

// Supplier performs authenticated reads.
type Supplier interface {
	IsAuthorized(ctx context.Context) bool
	FetchAuthenticated(ctx context.Context, url string) ([]byte, error)
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Unwrap maps auth failures onto ErrNotAuthorized.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrNotAuthorized
	}
	return nil
}

// Client is the default Supplier.
type Client struct {
	http   *http.Client
	tokens *invalidatingSource
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTokenSource replaces the token source built from Config.Token.
func WithTokenSource(src oauth2.TokenSource) Option {
	return func(cl *Client) {
		if src == nil {
			cl.tokens = nil
			return
		}
		cl.tokens = &invalidatingSource{src: src}
	}
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	c := &Client{http: &http.Client{Timeout: timeout}}
	if cfg.Token != "" {
		c.tokens = &invalidatingSource{src: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsAuthorized reports whether a valid token can currently be obtained.
func (c *Client) IsAuthorized(ctx context.Context) bool {
	if c.tokens == nil {
		return false
	}
	tok, err := c.tokens.Token()
	return err == nil && tok.Valid()
}

// FetchAuthenticated GETs url and returns the body.
func (c *Client) FetchAuthenticated(ctx context.Context, url string) ([]byte, error) {
	body, err := c.fetch(ctx, url)
	var se *StatusError
	if c.tokens != nil && errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
		body, err = c.fetch(ctx, url)
	}
	return body, err
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotAuthorized, err)
		}
		tok.SetAuthHeader(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return body, nil
}

// invalidatingSource caches a token until it expires or is invalidated.
type invalidatingSource struct {
	mu  sync.Mutex
	src oauth2.TokenSource
	tok *oauth2.Token
}

func (s *invalidatingSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tok.Valid() {
		return s.tok, nil
	}
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	s.tok = tok
	return tok, nil
}

func (s *invalidatingSource) Invalidate() {
	s.mu.Lock()
	s.tok = nil
	s.mu.Unlock()
}
