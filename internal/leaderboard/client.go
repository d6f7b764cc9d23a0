package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/hexroute/internal/events"
)

const (
	defaultTimeout = 5 * time.Second
	defaultRetries = 2
	defaultBackoff = 250 * time.Millisecond
)

// Client talks to a leaderboard server.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
	logger  *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRetries sets how many times a failed submission is retried.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
	}
}

// WithBackoff sets the delay before the first retry; it doubles after each.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) { c.backoff = d }
}

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:3001".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		retries: defaultRetries,
		backoff: defaultBackoff,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submit posts a finished breach. Server errors and transport failures are
// retried; rejected submissions are not.
func (c *Client) Submit(ctx context.Context, sub Submission) (Record, error) {
	body, err := json.Marshal(sub)
	if err != nil {
		return Record{}, fmt.Errorf("leaderboard: encode submission: %w", err)
	}

	var rec Record
	delay := c.backoff
	for attempt := 0; ; attempt++ {
		err = c.do(ctx, http.MethodPost, "/api/leaderboard", body, &rec)
		if err == nil {
			return rec, nil
		}
		if attempt >= c.retries || !retryable(err) || ctx.Err() != nil {
			return Record{}, err
		}

		c.logger.Warn("Leaderboard submit failed, retrying", "attempt", attempt+1, "error", err)
		select {
		case <-ctx.Done():
			return Record{}, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

// Top returns the ranked leaderboard.
func (c *Client) Top(ctx context.Context) ([]Ranked, error) {
	var out []Ranked
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Stats returns the leaderboard summary.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard/stats", nil, &out); err != nil {
		return Stats{}, err
	}
	return out, nil
}

// Live connects to the entry feed and delivers entries on the returned
// channel until ctx is cancelled or the connection drops.
func (c *Client) Live(ctx context.Context) (<-chan events.EntryAccepted, error) {
	wsURL, err := c.liveURL()
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{HandshakeTimeout: defaultTimeout}
	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: dial %s: %w", wsURL, err)
	}

	out := make(chan events.EntryAccepted, events.DefaultBuffer)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go func() {
		defer close(out)
		defer conn.Close()
		for {
			var entry events.EntryAccepted
			if err := conn.ReadJSON(&entry); err != nil {
				if ctx.Err() == nil {
					c.logger.Debug("Live feed closed", "error", err)
				}
				return
			}
			select {
			case out <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (c *Client) liveURL() (string, error) {
	u, err := url.Parse(c.baseURL + "/api/leaderboard/live")
	if err != nil {
		return "", fmt.Errorf("leaderboard: bad url %q: %w", c.baseURL, err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&eb)
		return &StatusError{Code: resp.StatusCode, Message: eb.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leaderboard: decode response: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
