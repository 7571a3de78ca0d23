// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/usecase/vehiclesuc"
)

func TestCatalogLastQueryWins(t *testing.T) {
	ctx := context.Background()
	api := newGatedAPI()
	store, err := vehiclesuc.NewCatalogStore(api)
	require.NoError(t, err)

	slow := make(chan vehiclesuc.Snapshot)
	go func() {
		ss, err := store.SetFilter(ctx, model.FilterState{
			Category: ptr(model.CategorySedan),
		})
		assert.NoError(t, err)
		slow <- ss
	}()
	r1 := <-api.calls
	assert.True(t, store.Snapshot().IsLoading)

	fast := make(chan vehiclesuc.Snapshot)
	go func() {
		fast <- store.SetSort(ctx, model.SortPriceHigh)
	}()
	r2 := <-api.calls
	assert.Equal(t, model.SortPriceHigh, r2.q.SortKeyValue())
	assert.Equal(t, model.CategorySedan, r2.q.CategoryValue(),
		"the sort key must be merged into the previous filter")

	r2.reply <- listReply{vehicles: []model.Vehicle{
		{ID: "cheap", Category: model.CategorySedan, PricePerDay: 30},
		{ID: "van", Category: model.CategoryVan, PricePerDay: 70},
		{ID: "pricey", Category: model.CategorySedan, PricePerDay: 80},
	}}
	ss2 := <-fast
	assert.Equal(t, []string{"pricey", "cheap"}, ids(ss2.Vehicles))
	assert.False(t, ss2.IsLoading)

	r1.reply <- listReply{vehicles: []model.Vehicle{
		{ID: "stale", Category: model.CategorySedan, PricePerDay: 10},
	}}
	<-slow

	final := store.Snapshot()
	assert.Equal(t, []string{"pricey", "cheap"}, ids(final.Vehicles))
	assert.Equal(t, model.SortPriceHigh, final.Query.SortKeyValue())
	assert.False(t, final.IsLoading)
	assert.Empty(t, final.LastError)
}

func TestCatalogStaleFailureIsDiscarded(t *testing.T) {
	ctx := context.Background()
	api := newGatedAPI()
	store, err := vehiclesuc.NewCatalogStore(api)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		store.Refetch(ctx)
		close(done)
	}()
	r1 := <-api.calls
	go func() {
		store.ClearFilters(ctx)
	}()
	r2 := <-api.calls
	r1.reply <- listReply{err: cerr.Upstream(errors.New("timeout"))}
	<-done
	ss := store.Snapshot()
	assert.Empty(t, ss.LastError)
	assert.True(t, ss.IsLoading, "the latest refetch is still running")

	r2.reply <- listReply{vehicles: []model.Vehicle{{ID: "1"}}}
	require.Eventually(t, func() bool {
		return !store.Snapshot().IsLoading
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"1"}, ids(store.Snapshot().Vehicles))
}

func TestCatalogFailureKeepsVehicles(t *testing.T) {
	ctx := context.Background()
	api := &memAPI{vehicles: fleet()}
	store, err := vehiclesuc.NewCatalogStore(api)
	require.NoError(t, err)

	ss := store.Refetch(ctx)
	require.Len(t, ss.Vehicles, 6)
	assert.Empty(t, ss.LastError)

	api.listErr = cerr.Upstream(cerr.ServerMessage("Database is down"))
	ss = store.SetSort(ctx, model.SortPriceLow)
	assert.Len(t, ss.Vehicles, 6)
	assert.Equal(t, "Database is down", ss.LastError)
	assert.Equal(t, http.StatusBadGateway, cerr.StatusCode(ss.Err))
	assert.False(t, ss.IsLoading)

	api.listErr = errors.New("connection refused")
	ss = store.Refetch(ctx)
	assert.Equal(t, vehiclesuc.FetchFailedMessage, ss.LastError)

	api.listErr = nil
	ss = store.Refetch(ctx)
	assert.Empty(t, ss.LastError)
	assert.Nil(t, ss.Err)
	assert.Equal(t, []string{"1", "5", "3", "6", "2", "4"}, ids(ss.Vehicles))
}

func TestCatalogAppliesQueryLocally(t *testing.T) {
	ctx := context.Background()
	api := &memAPI{vehicles: fleet()}
	store, err := vehiclesuc.NewCatalogStore(api)
	require.NoError(t, err)

	ss, err := store.SetFilter(ctx, model.FilterState{
		PriceRange: ptr(model.Price51To100),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "5", "6"}, ids(ss.Vehicles))

	ss, err = store.SetFilter(ctx, model.FilterState{
		Availability: ptr(model.Available),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "6"}, ids(ss.Vehicles))
	assert.Equal(t, model.Price51To100, api.lastList.PriceRangeValue())
	assert.Equal(t, model.Available, api.lastList.AvailabilityValue())

	ss, err = store.SetFilter(ctx, model.FilterState{
		PriceRange: ptr(model.PriceRange("")),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "4", "6"}, ids(ss.Vehicles))

	ss = store.ClearFilters(ctx)
	assert.Equal(t, model.FilterState{}, ss.Query)
	assert.Len(t, ss.Vehicles, 6)
}

func TestCatalogRejectsUnknownEnums(t *testing.T) {
	ctx := context.Background()
	api := &memAPI{vehicles: fleet()}
	store, err := vehiclesuc.NewCatalogStore(api)
	require.NoError(t, err)

	_, err = store.SetFilter(ctx, model.FilterState{
		Category:     ptr(model.Category("Truck")),
		Availability: ptr(model.Availability("Soon")),
	})
	require.Error(t, err)
	assert.True(t, cerr.Is(err, http.StatusBadRequest))
	var fe cerr.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "category")
	assert.Contains(t, fe, "availability")
	assert.Equal(t, model.FilterState{}, store.Snapshot().Query)
	assert.Empty(t, store.Snapshot().Vehicles)
}

func TestCatalogOptions(t *testing.T) {
	api := &memAPI{vehicles: fleet()}
	store, err := vehiclesuc.NewCatalogStore(
		api,
		vehiclesuc.WithInitialQuery(model.FilterState{
			Category: ptr(model.CategorySedan),
			SortKey:  ptr(model.SortPriceHigh),
		}),
		vehiclesuc.WithFetchTimeout(time.Second),
	)
	require.NoError(t, err)
	assert.Empty(t, store.Snapshot().Vehicles)
	ss := store.Refetch(context.Background())
	assert.Equal(t, []string{"6", "5", "1"}, ids(ss.Vehicles))

	_, err = vehiclesuc.NewCatalogStore(api, vehiclesuc.WithFetchTimeout(0))
	assert.Error(t, err)
	_, err = vehiclesuc.NewCatalogStore(
		api,
		vehiclesuc.WithFetchTimeout(time.Second),
		vehiclesuc.WithFetchTimeout(time.Second),
	)
	assert.Error(t, err)
	_, err = vehiclesuc.NewCatalogStore(api, vehiclesuc.WithInitialQuery(
		model.FilterState{Category: ptr(model.Category("Bus"))},
	))
	assert.Error(t, err)
}
