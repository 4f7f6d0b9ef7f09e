// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package apiclient implements the fetch gateway for the external customer
// API.  The gateway performs a single authenticated GET per invocation and
// normalises the outcome into a Result: the decoded JSON payload on
// success, or a typed Failure otherwise.  It performs no retries and keeps
// no state between invocations; any retry or caching policy belongs to the
// caller.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxResponseSize limits how much of the upstream body is read.  Customer
// records are small; anything beyond this is upstream misbehaviour.
const maxResponseSize = 10 << 20 // 10 MiB

// Client is the customer API fetch gateway.  It is stateless and safe for
// concurrent use.
type Client struct {
	cfg Config
	cl  *http.Client
	lim *rate.Limiter
	lg  *slog.Logger
}

// Option is a functional option for New.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.  Useful for tests and for
// callers that need a custom transport.
func WithHTTPClient(cl *http.Client) Option {
	return func(c *Client) {
		if cl != nil {
			c.cl = cl
		}
	}
}

// WithLimiter sets a client-side rate limiter that is waited on before the
// single network attempt.  Nil (the default) disables limiting.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.lim = l
	}
}

// WithLogger sets the logger.  Nil falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(c *Client) {
		if lg != nil {
			c.lg = lg
		}
	}
}

// New creates a new gateway client with the given configuration.  It
// returns an error wrapping ErrConfigInvalid if the configuration is
// invalid; this is the only point at which configuration errors surface,
// Fetch itself never fails on them.
func New(cfg Config, opt ...Option) (*Client, error) {
	cfg.apply()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg: cfg,
		cl:  &http.Client{},
		lg:  slog.Default(),
	}
	for _, o := range opt {
		o(c)
	}
	return c, nil
}

// BaseURL returns the configured collection endpoint.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}

// Request identifies a single entity to fetch.
type Request struct {
	// ID is the entity identifier, appended to the base URL as a path
	// segment.
	ID string
	// SubPath is an optional sub-resource ("predictions"), appended after
	// the ID.
	SubPath string
}

// Fetch performs one authenticated GET against the configured endpoint and
// returns the normalised result.  It always returns a Result; all failure
// modes, including transport errors and timeouts, are captured in
// Result.Failure.  Cancelling ctx aborts the in-flight request.
func (c *Client) Fetch(ctx context.Context, req Request) Result {
	start := time.Now()

	target, err := c.requestURL(req)
	if err != nil {
		return c.fail(start, KindConfig, err.Error(), 0)
	}

	if c.lim != nil {
		if err := c.lim.Wait(ctx); err != nil {
			// rate.Limiter reports deadline problems either as ctx.Err() or
			// as its own "would exceed context deadline" error; both mean
			// the wait could not complete in time.
			kind := KindTimeout
			if errors.Is(err, context.Canceled) {
				kind = KindNetwork
			}
			return c.fail(start, kind, err.Error(), 0)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return c.fail(start, KindConfig, err.Error(), 0)
	}
	hreq.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("User-Agent", c.cfg.UserAgent)

	c.lg.DebugContext(ctx, "fetching", "url", target)

	resp, err := c.cl.Do(hreq)
	if err != nil {
		kind := classifyTransport(err)
		c.lg.DebugContext(ctx, "fetch failed", "url", target, "kind", kind, "error", err)
		return c.fail(start, kind, err.Error(), 0)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		// The response never arrived in full; its status code does not
		// describe an API outcome.
		return c.fail(start, classifyTransport(err), err.Error(), 0)
	}
	elapsed := time.Since(start)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return c.fail(start, KindAPI, msg, resp.StatusCode)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return c.fail(start, KindInvalidResponse, err.Error(), resp.StatusCode)
	}

	c.lg.DebugContext(ctx, "fetch ok", "url", target, "status", resp.StatusCode, "took", elapsed)
	return Result{
		Payload:    payload,
		StatusCode: resp.StatusCode,
		Elapsed:    elapsed,
		FetchedAt:  time.Now().UTC(),
	}
}

// requestURL joins the base URL with the entity ID and the optional
// sub-resource path.
func (c *Client) requestURL(req Request) (string, error) {
	elem := []string{req.ID}
	if req.SubPath != "" {
		elem = append(elem, strings.Split(req.SubPath, "/")...)
	}
	return url.JoinPath(c.cfg.BaseURL, elem...)
}

// fail constructs a failure Result.
func (c *Client) fail(start time.Time, kind ErrorKind, msg string, status int) Result {
	return Result{
		StatusCode: status,
		Elapsed:    time.Since(start),
		FetchedAt:  time.Now().UTC(),
		Failure: &Failure{
			Kind:       kind,
			Message:    msg,
			StatusCode: status,
		},
	}
}

// classifyTransport distinguishes timeouts from other transport failures.
func classifyTransport(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return KindTimeout
	}
	return KindNetwork
}
