// Package gateway is the typed client for the remote task API.
//
// Every call carries the session's bearer token and a per-attempt deadline.
// Reads are retried with exponential backoff on transport failures, 429 and
// 5xx; writes are attempted exactly once so a lost response never turns into
// a duplicate side effect.
package gateway

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

	"github.com/taskpilot/taskpilot-web/internal/logging"
	"golang.org/x/time/rate"
)

// Options configure a Client. Zero values fall back to package defaults.
type Options struct {
	BaseURL        string
	Timeout        time.Duration
	ReadRetries    int
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	// RPS and Burst shape outbound traffic; RPS <= 0 disables limiting.
	RPS        float64
	Burst      int
	HTTPClient *http.Client
}

// Client talks to the remote task API
type Client struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	readRetries    int
	backoffInitial time.Duration
	backoffMax     time.Duration
	limiter        *rate.Limiter
	metrics        *Metrics
}

// New creates a client for the API rooted at opts.BaseURL
func New(opts Options) *Client {
	c := &Client{
		baseURL:        strings.TrimRight(opts.BaseURL, "/"),
		httpClient:     opts.HTTPClient,
		timeout:        opts.Timeout,
		readRetries:    opts.ReadRetries,
		backoffInitial: opts.BackoffInitial,
		backoffMax:     opts.BackoffMax,
		metrics:        &Metrics{},
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.readRetries < 0 {
		c.readRetries = 0
	}
	if c.backoffInitial <= 0 {
		c.backoffInitial = BackoffInitial
	}
	if c.backoffMax <= 0 {
		c.backoffMax = BackoffMax
	}

	limit, burst := rate.Inf, opts.Burst
	if opts.RPS > 0 {
		limit = rate.Limit(opts.RPS)
	}
	if burst <= 0 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(limit, burst)
	return c
}

func (c *Client) Metrics() *Metrics {
	return c.metrics
}

// envelope is the shape of every API response body.
type envelope struct {
	IsSuccess bool            `json:"isSuccess"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
}

type call struct {
	op     string
	method string
	path   string
	token  string
	body   interface{}
	out    interface{}
	// lenient accepts any 2xx without checking isSuccess.
	lenient bool
}

func (c *Client) do(ctx context.Context, r call) error {
	logger := logging.New(ctx)

	attempts := 1
	if r.method == http.MethodGet {
		attempts += c.readRetries
	}

	backoff := c.backoffInitial
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = c.once(ctx, r)
		if err == nil {
			return nil
		}
		if attempt == attempts || !retryable(err) || ctx.Err() != nil {
			break
		}

		c.metrics.recordRetry()
		logger.Warnf(r.op, "attempt %d/%d failed, retrying in %s: %v", attempt, attempts, backoff, err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			kind := KindTransport
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				kind = KindTimeout
			}
			return &Error{Op: r.op, Kind: kind, Err: ctx.Err()}
		case <-timer.C:
		}
		backoff *= 2
		if backoff > c.backoffMax {
			backoff = c.backoffMax
		}
	}

	logger.Error(r.op, err)
	return err
}

func (c *Client) once(ctx context.Context, r call) (err error) {
	start := time.Now()
	defer func() { c.metrics.recordCall(time.Since(start), err) }()

	if werr := c.limiter.Wait(ctx); werr != nil {
		return &Error{Op: r.op, Kind: KindTimeout, Err: werr}
	}

	actx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(actx, r)
	if err != nil {
		return &Error{Op: r.op, Kind: KindTransport, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := KindTransport
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return &Error{Op: r.op, Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		kind := KindTransport
		if errors.Is(err, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return &Error{Op: r.op, Kind: kind, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Op: r.op, Kind: KindUnauthorized, Status: resp.StatusCode, Message: env.Message}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &Error{Op: r.op, Kind: KindAPI, Status: resp.StatusCode, Message: env.Message}
	case decodeErr != nil:
		return &Error{Op: r.op, Kind: KindDecode, Status: resp.StatusCode, Err: decodeErr}
	case !env.IsSuccess && !r.lenient:
		return &Error{Op: r.op, Kind: KindAPI, Status: resp.StatusCode, Message: env.Message}
	}

	if r.out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, r.out); err != nil {
			return &Error{Op: r.op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r call) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+"/"+strings.TrimLeft(r.path, "/"), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if rid := logging.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}
	return req, nil
}
