package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhidhakal/hready/internal/session"
)

const healthPath = "/health"

// ErrSessionInvalidated is returned when the backend answers 401 or 403.
// The session store has already been cleared by the time a caller sees it;
// reacting (navigating to login, printing a hint) is the caller's job, so
// the transport layer stays testable without any routing present.
var ErrSessionInvalidated = errors.New("session invalidated")

type Options struct {
	Timeout       time.Duration
	HealthTimeout time.Duration
	RetryWait     time.Duration
	WarmUpWait    time.Duration
}

// Client is the single path every domain call goes through. It owns the
// base URL, the default timeout, bearer-token attachment, the
// retry-once-on-transient-failure policy, and the 401/403 session teardown.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         session.Store
	healthTimeout time.Duration
	retryWait     time.Duration
	warmUpWait    time.Duration
	onInvalidated func()

	// sleep is swapped out in tests so retry timing is not wall-clock.
	sleep func(ctx context.Context, d time.Duration) error
}

func New(baseURL string, store session.Store, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.HealthTimeout <= 0 {
		opts.HealthTimeout = 10 * time.Second
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 2 * time.Second
	}
	if opts.WarmUpWait <= 0 {
		opts.WarmUpWait = 3 * time.Second
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: opts.Timeout},
		store:         store,
		healthTimeout: opts.HealthTimeout,
		retryWait:     opts.RetryWait,
		warmUpWait:    opts.WarmUpWait,
		sleep:         sleepCtx,
	}
}

// OnSessionInvalidated registers the hook the application shell runs when
// a 401/403 tears the session down.
func (c *Client) OnSessionInvalidated(fn func()) {
	c.onInvalidated = fn
}

// Do issues one logical request. A transport-level failure (timeout or no
// response at all) is retried exactly once after retryWait; the retry's
// outcome is the caller's outcome. The retried flag lives on this call
// frame, so concurrent calls retry independently and a twice-failing call
// cannot loop. HTTP error statuses other than 401/403 are not transport
// errors: the response comes back and callers branch on StatusCode.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()
	retried := false

	for {
		resp, err := c.attempt(ctx, req, requestID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			if retried {
				slog.Warn("request failed after retry", "method", req.Method, "path", req.Path, "err", err)
				return nil, err
			}
			retried = true
			slog.Debug("transient failure, retrying once", "method", req.Method, "path", req.Path, "err", err)
			if sleepErr := c.sleep(ctx, c.retryWait); sleepErr != nil {
				return nil, sleepErr
			}
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			c.invalidate(resp.StatusCode, req.Path)
			return resp, ErrSessionInvalidated
		}
		return resp, nil
	}
}

func (c *Client) attempt(ctx context.Context, req Request, requestID string) (*Response, error) {
	body, contentType, err := req.encodeBody()
	if err != nil {
		return nil, err
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("X-Request-ID", requestID)
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if sess, ok := c.store.Get(); ok && sess.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: raw}, nil
}

// invalidate is the one place a cross-cutting side effect happens outside
// the call/return flow. The clear is authoritative: once it runs, only a
// fresh login repopulates the store.
func (c *Client) invalidate(status int, path string) {
	slog.Info("session invalidated by backend", "status", status, "path", path)
	if err := c.store.Clear(); err != nil {
		slog.Warn("session clear failed", "err", err)
	}
	if c.onInvalidated != nil {
		c.onInvalidated()
	}
}

// Healthy probes the health endpoint with its own bounded timeout,
// swallowing every failure into false.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// WarmUp absorbs backend cold start before login: one probe and, if it
// fails, one fixed wait. Best effort, never an error — login proceeds
// either way.
func (c *Client) WarmUp(ctx context.Context) {
	if c.Healthy(ctx) {
		return
	}
	slog.Info("backend not ready, waiting before login", "wait", c.warmUpWait)
	_ = c.sleep(ctx, c.warmUpWait)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
