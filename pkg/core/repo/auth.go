// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/goride/goride/pkg/core/model"
)

// IdentityHandler is notified about the identity changes. A nil
// session indicates that no identity is signed in.
type IdentityHandler func(s *model.Session)

// AuthProvider represents the identity provider collaborator as seen
// by one client (e.g., one browser session). It owns the signed-in
// identity and its bearer credential; the use cases layer only mirrors
// that identity (see sessionuc.Store).
type AuthProvider interface {
	// Subscribe registers h to be called on every identity change.
	// The h is also called once with the current identity, so the
	// subscriber can finish its identity resolution phase. Returned
	// function cancels the subscription.
	Subscribe(h IdentityHandler) (unsubscribe func())

	// Token returns an opaque bearer credential of the current
	// identity. An empty string (and nil error) is returned when no
	// identity is signed in.
	Token(ctx context.Context) (string, error)

	// SignOut forgets the current identity and notifies subscribers.
	SignOut(ctx context.Context) error
}
