// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/repo"
)

// FetchFailedMessage is reported as the last error of a CatalogStore
// when the vehicles API fails without providing a message.
const FetchFailedMessage = "Failed to fetch vehicles"

// CatalogStore keeps the browsing state of one client, namely its
// current query, the last fetched vehicles, a loading flag, and the
// last fetching error. Every query change triggers a refetch.
//
// Refetches may overlap (e.g., a user changes the sort key while the
// previous filter is still loading). Each refetch takes a generation
// number and its response is discarded if a newer refetch has been
// started in the meantime, so a slow earlier response may never
// overwrite the state which is set by a later one. Discarded requests
// are not cancelled.
//
// A CatalogStore is safe for concurrent use.
type CatalogStore struct {
	api          repo.VehiclesAPI
	fetchTimeout time.Duration

	mu       sync.Mutex
	query    model.FilterState
	vehicles []model.Vehicle
	loading  bool
	lastErr  error
	gen      uint64
}

// Snapshot is a copy of the CatalogStore state.
type Snapshot struct {
	Query     model.FilterState `json:"query"`
	Vehicles  []model.Vehicle   `json:"vehicles"`
	IsLoading bool              `json:"isLoading"`

	// LastError is the user-facing message of the last failure.
	LastError string `json:"lastError,omitempty"`

	// Err is the last failure itself, which keeps its status class.
	Err error `json:"-"`
}

// NewCatalogStore instantiates a CatalogStore which fetches vehicles
// using the api. The store starts with an empty query and no vehicles
// until its first refetch. Options may be used in order to configure
// its initial query or a timeout for each fetch.
func NewCatalogStore(api repo.VehiclesAPI, opts ...CatalogOption) (*CatalogStore, error) {
	s := &CatalogStore{api: api, vehicles: []model.Vehicle{}}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return s, nil
}

// Snapshot returns a copy of the current state.
func (s *CatalogStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *CatalogStore) snapshot() Snapshot {
	ss := Snapshot{
		Query:     s.query,
		Vehicles:  make([]model.Vehicle, len(s.vehicles)),
		IsLoading: s.loading,
		Err:       s.lastErr,
	}
	copy(ss.Vehicles, s.vehicles)
	if s.lastErr != nil {
		ss.LastError = cerr.Message(s.lastErr, FetchFailedMessage)
	}
	return ss
}

// SetFilter merges the partial query into the current query and
// refetches. Non-nil fields of partial overwrite their counterparts
// (an explicit empty value clears a field) and nil fields keep their
// previous values. Known enum fields are validated and a
// cerr.BadRequest error carrying cerr.FieldErrors is returned for
// invalid values without changing the state. Unknown price buckets
// and sort keys are accepted and put no constraint on the result.
//
// Fetching failures are not returned; they are reported by the
// LastError field of the returned Snapshot.
func (s *CatalogStore) SetFilter(ctx context.Context, partial model.FilterState) (Snapshot, error) {
	if err := validateQuery(partial); err != nil {
		return s.Snapshot(), err
	}
	return s.update(ctx, func(q model.FilterState) model.FilterState {
		return q.Merge(partial)
	}), nil
}

// SetSort sets the sort key of the current query and refetches.
func (s *CatalogStore) SetSort(ctx context.Context, key model.SortKey) Snapshot {
	return s.update(ctx, func(q model.FilterState) model.FilterState {
		q.SortKey = &key
		return q
	})
}

// ClearFilters resets the current query to an empty query, dropping
// its sort key too, and refetches all vehicles.
func (s *CatalogStore) ClearFilters(ctx context.Context) Snapshot {
	return s.update(ctx, func(model.FilterState) model.FilterState {
		return model.FilterState{}
	})
}

// Refetch fetches vehicles with the current query.
func (s *CatalogStore) Refetch(ctx context.Context) Snapshot {
	return s.update(ctx, func(q model.FilterState) model.FilterState {
		return q
	})
}

// update changes the query with the fn function and refetches it,
// holding the lock only while the state is read or written, so other
// queries may be issued while the API call is in flight.
func (s *CatalogStore) update(ctx context.Context, fn func(model.FilterState) model.FilterState) Snapshot {
	s.mu.Lock()
	s.query = fn(s.query)
	s.gen++
	gen, q := s.gen, s.query
	s.loading = true
	s.mu.Unlock()

	vehicles, err := s.fetch(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		log.Debug(
			ctx, "discarded a stale catalog response",
			slog.Uint64("generation", gen),
			slog.Uint64("latest", s.gen),
		)
		return s.snapshot()
	}
	s.loading = false
	if err != nil {
		log.Warn(
			ctx, "fetching vehicles failed",
			log.Query("query", q), log.Err("err", err),
		)
		s.lastErr = err
		return s.snapshot()
	}
	s.vehicles = vehicles
	s.lastErr = nil
	return s.snapshot()
}

// fetch lists vehicles from the API and evaluates q over them locally,
// so bucket and ordering semantics hold no matter how the server
// treats the query parameters.
func (s *CatalogStore) fetch(ctx context.Context, q model.FilterState) (vehicles []model.Vehicle, err error) {
	if s.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
	}
	vehicles, err = s.api.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	return Apply(vehicles, q), nil
}

func validateQuery(q model.FilterState) error {
	fe := cerr.FieldErrors{}
	if c := q.CategoryValue(); c != "" {
		if err := c.Validate(); err != nil {
			fe["category"] = "Unknown category"
		}
	}
	if a := q.AvailabilityValue(); a != "" {
		if err := a.Validate(); err != nil {
			fe["availability"] = "Unknown availability"
		}
	}
	if len(fe) > 0 {
		return cerr.BadRequest(fe)
	}
	return nil
}
