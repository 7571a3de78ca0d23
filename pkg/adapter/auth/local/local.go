// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package local provides the identity provider collaborator of one
// client (e.g., one browser session) on top of the local identity use
// cases. A Client keeps the bearer token of its signed-in identity and
// notifies its subscribers (usually a sessionuc.Store) whenever that
// identity changes.
//
// It implements the github.com/goride/goride/pkg/core/repo.AuthProvider
// interface.
package local

import (
	"context"
	"net/http"
	"sync"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/repo"
	"github.com/goride/goride/pkg/core/usecase/identityuc"
)

// Provider lists the identity use cases which are used by a Client.
// It is implemented by the identityuc.UseCase.
type Provider interface {
	Register(ctx context.Context, email, password, displayName, photoURL string) (*identityuc.Credentials, error)
	SignIn(ctx context.Context, email, password string) (*identityuc.Credentials, error)
	Resolve(ctx context.Context, token string) (*model.Session, error)
}

// Client is the identity provider of one client. It is safe for
// concurrent use.
type Client struct {
	provider Provider
	tokens   repo.Tokens

	mu       sync.Mutex
	token    string
	identity *model.Session
	handlers map[int]repo.IdentityHandler
	nextID   int
}

// New instantiates a Client without a signed-in identity. Its tokens
// are issued by the provider and verified by the tokens before use.
func New(p Provider, t repo.Tokens) *Client {
	return &Client{
		provider: p,
		tokens:   t,
		handlers: make(map[int]repo.IdentityHandler),
	}
}

// Register creates a new account and signs it in.
func (c *Client) Register(
	ctx context.Context, email, password, displayName, photoURL string,
) (*model.Session, error) {
	creds, err := c.provider.Register(ctx, email, password, displayName, photoURL)
	if err != nil {
		return nil, err
	}
	c.set(creds.Token, creds.Session)
	return creds.Session, nil
}

// SignIn verifies the email and password and signs that account in,
// replacing any previously signed-in identity.
func (c *Client) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	creds, err := c.provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	c.set(creds.Token, creds.Session)
	return creds.Session, nil
}

// Subscribe registers h for the identity changes and calls it once
// with the current identity.
func (c *Client) Subscribe(h repo.IdentityHandler) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.handlers[id] = h
	current := c.identity
	c.mu.Unlock()
	h(current)
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.handlers, id)
	}
}

// Token returns the bearer token of the signed-in identity, or an empty
// string if no identity is signed in. If the token is expired (or
// otherwise invalid), the identity is signed out and subscribers are
// notified, so an empty string is returned.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return "", nil
	}
	if _, err := c.tokens.Verify(token); err != nil {
		log.Info(ctx, "dropping an invalid bearer token", log.Err("err", err))
		c.clear(token)
		return "", nil
	}
	return token, nil
}

// Refresh resolves the signed-in identity again by the provider, so
// its latest profile is kept and subscribers are notified if it has
// changed. If the provider rejects the token (e.g., the account is
// deleted), the identity is signed out and nil is returned. Other
// failures keep the identity and are returned.
func (c *Client) Refresh(ctx context.Context) (*model.Session, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return nil, nil
	}
	s, err := c.provider.Resolve(ctx, token)
	switch {
	case cerr.Is(err, http.StatusUnauthorized):
		log.Info(ctx, "signed-in identity is revoked", log.Err("err", err))
		c.clear(token)
		return nil, nil
	case err != nil:
		return nil, err
	}
	c.replace(token, s)
	return s, nil
}

// SignOut forgets the signed-in identity and notifies subscribers.
// Tokens are stateless, so an already copied token remains valid until
// its expiration.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return nil
	}
	c.clear(token)
	log.Debug(ctx, "local identity is signed out")
	return nil
}

func (c *Client) set(token string, s *model.Session) {
	c.mu.Lock()
	c.token, c.identity = token, s
	hs := c.snapshot()
	c.mu.Unlock()
	notify(hs, s)
}

// replace updates the identity of token, unless the token is replaced
// in the meantime or the identity is unchanged.
func (c *Client) replace(token string, s *model.Session) {
	c.mu.Lock()
	if c.token != token || (c.identity != nil && *c.identity == *s) {
		c.mu.Unlock()
		return
	}
	c.identity = s
	hs := c.snapshot()
	c.mu.Unlock()
	notify(hs, s)
}

// clear signs out, unless the token is replaced in the meantime.
func (c *Client) clear(token string) {
	c.mu.Lock()
	if c.token != token {
		c.mu.Unlock()
		return
	}
	c.token, c.identity = "", nil
	hs := c.snapshot()
	c.mu.Unlock()
	notify(hs, nil)
}

func (c *Client) snapshot() []repo.IdentityHandler {
	hs := make([]repo.IdentityHandler, 0, len(c.handlers))
	for _, h := range c.handlers {
		hs = append(hs, h)
	}
	return hs
}

func notify(hs []repo.IdentityHandler, s *model.Session) {
	for _, h := range hs {
		if s == nil {
			h(nil)
			continue
		}
		id := *s
		h(&id)
	}
}
