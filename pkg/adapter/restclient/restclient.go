// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package restclient implements the vehicles and bookings APIs of the
// repo package over the remote REST/JSON backend. It is the only place
// which knows about the wire format of that backend, so:
//   - responses are accepted either as bare JSON values or wrapped in a
//     {"data": value} envelope and are normalized before decoding,
//   - backend field names (e.g., _id, vehicleName, coverImage) are
//     mapped to the model names,
//   - the bearer token of the current identity is attached to each
//     request if a TokenSource yields one,
//   - failures are converted to *cerr.Error values whose status codes
//     follow the response status, keeping the server provided message
//     as a cerr.ServerMessage.
package restclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/log"
)

// DefaultTimeout bounds each request unless WithTimeout or
// WithHTTPClient options are used.
const DefaultTimeout = 10 * time.Second

// maxPayload bounds the size of a response body which is read.
const maxPayload = 8 << 20

// TokenSource provides the bearer token of the current identity. An
// empty token means that no identity is signed in. It is implemented
// by the repo.AuthProvider implementations.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is a REST client of the vehicles and bookings backend. It
// implements both of repo.VehiclesAPI and repo.BookingsAPI interfaces.
// A Client is safe for concurrent use.
type Client struct {
	base   *url.URL
	hc     *http.Client
	tokens TokenSource
}

// Option is a functional option for the Client.
type Option func(c *Client) error

// WithHTTPClient option makes a Client to send its requests using hc.
// The hc timeout is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client must be non-nil")
		}
		c.hc = hc
		return nil
	}
}

// WithTimeout option changes the DefaultTimeout of each request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if c.hc == nil {
			c.hc = &http.Client{}
		}
		c.hc.Timeout = timeout
		return nil
	}
}

// WithTokenSource option makes a Client to authorize its requests
// with the tokens of ts. See also the Authorized method.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) error {
		c.tokens = ts
		return nil
	}
}

// New instantiates a Client for the backend which is served at the
// baseURL (e.g., http://localhost:5000/api).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme %q is not http(s)", u.Scheme)
	}
	c := &Client{base: u}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: DefaultTimeout}
	}
	return c, nil
}

// Authorized returns a copy of c which authorizes its requests with
// the tokens of ts. The copy shares the underlying http.Client with c,
// so clients of many identities may share their connections.
func (c *Client) Authorized(ts TokenSource) *Client {
	cc := *c
	cc.tokens = ts
	return &cc
}

// do sends a method request for the path (relative to the base URL),
// having the query parameters and in as its JSON body (if non-nil).
// A successful response is decoded into out (if non-nil) after its
// envelope is removed.
func (c *Client) do(
	ctx context.Context, method, path string, query url.Values,
	in, out any,
) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return cerr.Upstream(fmt.Errorf("obtaining token: %w", err))
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		log.Warn(
			ctx, "backend request failed",
			slog.String("method", method), slog.String("path", path),
			log.Err("err", err),
		)
		return cerr.Upstream(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	log.Debug(
		ctx, "backend responded",
		slog.String("method", method), slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)
	if err != nil {
		return cerr.Upstream(fmt.Errorf("reading response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	return decode(payload, out)
}

// decode unmarshals the payload into out. If payload is an object with
// a non-null "data" member, that member is decoded instead.
func decode(payload []byte, out any) error {
	payload = bytes.TrimSpace(payload)
	if len(payload) > 0 && payload[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		err := json.Unmarshal(payload, &env)
		if err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
			payload = env.Data
		}
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return cerr.Upstream(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// statusError converts a failed response into a *cerr.Error. The status
// code selects its class and the message (or error) member of payload,
// if any, is kept as a cerr.ServerMessage.
func statusError(code int, payload []byte) error {
	var p struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	var err error = fmt.Errorf("unexpected status %d", code)
	if json.Unmarshal(payload, &p) == nil {
		msg := p.Message
		if msg == "" && len(p.Error) > 0 {
			var s string
			if json.Unmarshal(p.Error, &s) == nil {
				msg = s
			}
		}
		if msg != "" {
			err = cerr.ServerMessage(msg)
		}
	}
	switch code {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return cerr.BadRequest(err)
	case http.StatusUnauthorized:
		return cerr.Authentication(err)
	case http.StatusForbidden:
		return cerr.Authorization(err)
	case http.StatusNotFound:
		return cerr.NotFound(err)
	case http.StatusConflict:
		return cerr.Conflict(err)
	default:
		return cerr.Upstream(err)
	}
}
