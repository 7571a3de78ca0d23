// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sessionuc contains the session Store which mirrors the
// identity of an external identity provider for one client. The Store
// is passed explicitly to its consumers (e.g., the vehicles and
// bookings use cases) and is the only owner of the mirrored identity.
// Consumers read it, and may Subscribe to its changes, but they may
// not modify it.
package sessionuc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/repo"
)

// ErrNotAttached is returned by SignOut when no identity provider is
// attached to the Store.
var ErrNotAttached = errors.New("no identity provider is attached")

// Store mirrors the current identity of an AuthProvider. It starts in
// the resolving state, without an identity, and leaves it when the
// identity provider reports an identity (or its absence) for the first
// time. A Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	identity  *model.Session
	resolving bool

	auth        repo.AuthProvider
	unsubscribe func()

	observers map[int]repo.IdentityHandler
	nextObs   int
}

// New instantiates a Store in its resolving state. The Attach method
// should be called in order to follow an identity provider.
func New() *Store {
	return &Store{
		resolving: true,
		observers: make(map[int]repo.IdentityHandler),
	}
}

// Attach subscribes the Store to the identity changes of the auth
// provider. Any previously attached provider is detached first.
func (s *Store) Attach(auth repo.AuthProvider) {
	s.Detach()
	s.mu.Lock()
	s.auth = auth
	s.mu.Unlock()
	unsubscribe := auth.Subscribe(s.OnIdentityChange)
	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()
}

// Detach cancels the subscription of the attached identity provider,
// if any. The mirrored identity is kept as is.
func (s *Store) Detach() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe, s.auth = nil, nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// Identity returns a copy of the signed-in identity, or nil if no
// identity is signed in (or it is not resolved yet).
func (s *Store) Identity() *model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// IsResolving reports whether the identity provider has not reported
// the identity yet. It becomes false after the first identity change.
func (s *Store) IsResolving() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolving
}

// OnIdentityChange sets the mirrored identity. It is called by the
// identity provider on its initial resolution, sign-in, and sign-out.
// A nil identity means that no identity is signed in. Observers which
// are registered by the Subscribe method are notified afterwards.
func (s *Store) OnIdentityChange(identity *model.Session) {
	var copied *model.Session
	if identity != nil {
		id := *identity
		copied = &id
	}
	s.mu.Lock()
	s.identity = copied
	s.resolving = false
	observers := make([]repo.IdentityHandler, 0, len(s.observers))
	for _, h := range s.observers {
		observers = append(observers, h)
	}
	s.mu.Unlock()
	for _, h := range observers {
		h(s.Identity())
	}
}

// IsOwner reports whether a resource which is attributed to the email
// address is owned by the signed-in identity. Emails are compared
// exactly (case-sensitive) and false is returned when no identity is
// signed in.
func (s *Store) IsOwner(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil && s.identity.Email == email
}

// SignOut asks the attached identity provider to sign out and clears
// the mirrored identity. If the provider fails, the identity is kept.
func (s *Store) SignOut(ctx context.Context) error {
	s.mu.RLock()
	auth := s.auth
	s.mu.RUnlock()
	if auth == nil {
		return cerr.Upstream(ErrNotAttached)
	}
	if err := auth.SignOut(ctx); err != nil {
		return fmt.Errorf("signing out: %w", err)
	}
	s.OnIdentityChange(nil)
	log.Info(ctx, "signed out")
	return nil
}

// Subscribe registers h to be called after every identity change.
// The returned function cancels the subscription.
func (s *Store) Subscribe(h repo.IdentityHandler) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = h
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}
