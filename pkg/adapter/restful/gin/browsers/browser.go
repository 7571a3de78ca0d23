// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package browsers keeps the state of each browser which talks to the
// facade. A browser is identified by the goride_sid cookie and owns
// its own identity, session store, catalog, listings, and bookings
// use cases, so the catalog query or an in-flight booking of one
// browser never leaks into another one. Idle browsers are swept
// periodically by a cron job.
package browsers

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/goride/goride/pkg/adapter/auth/local"
	"github.com/goride/goride/pkg/core/usecase/bookingsuc"
	"github.com/goride/goride/pkg/core/usecase/sessionuc"
	"github.com/goride/goride/pkg/core/usecase/vehiclesuc"
)

// Browser groups the per-browser use cases. All fields are set by
// the Factory and are safe for concurrent use.
type Browser struct {
	ID       uuid.UUID
	Auth     *local.Client
	Session  *sessionuc.Store
	Catalog  *vehiclesuc.CatalogStore
	Listings *vehiclesuc.Listings
	Bookings *bookingsuc.UseCase

	lastSeen      atomic.Int64
	catalogLoaded atomic.Bool
}

// Factory creates the use cases of a new browser with the given id.
type Factory func(id uuid.UUID) (*Browser, error)

// CatalogSnapshot returns the catalog of b, fetching it on the first
// call, similar to a catalog page which loads vehicles when it is
// mounted for the first time.
func (b *Browser) CatalogSnapshot(ctx context.Context) vehiclesuc.Snapshot {
	if b.catalogLoaded.CompareAndSwap(false, true) {
		return b.Catalog.Refetch(ctx)
	}
	return b.Catalog.Snapshot()
}

func (b *Browser) touch(now time.Time) {
	b.lastSeen.Store(now.UnixNano())
}

func (b *Browser) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, b.lastSeen.Load()))
}

// close detaches the session store from the identity provider, so
// the browser stops observing identity changes.
func (b *Browser) close() {
	if b.Session != nil {
		b.Session.Detach()
	}
}
