// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/usecase/vehiclesuc"
)

var (
	alice = &model.Session{Email: "alice@example.com", DisplayName: "Alice"}
	bob   = &model.Session{Email: "bob@example.com", DisplayName: "Bob"}
)

func sampleData() model.VehicleData {
	return model.VehicleData{
		Name:          "Corolla",
		OwnerName:     "Alice",
		Category:      model.CategorySedan,
		FuelType:      model.FuelHybrid,
		PricePerDay:   45,
		Location:      "Dhaka",
		Description:   "Clean and comfortable",
		CoverImageURL: "https://img.example.com/corolla.jpg",
	}
}

func TestListingsCreate(t *testing.T) {
	ctx := context.Background()
	api := &memAPI{}

	_, err := vehiclesuc.NewListings(api, fakeSession{}).Create(ctx, sampleData())
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, cerr.StatusCode(err))

	l := vehiclesuc.NewListings(api, fakeSession{s: alice})
	bad := sampleData()
	bad.PricePerDay = 0
	bad.CoverImageURL = "not a url"
	_, err = l.Create(ctx, bad)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, cerr.StatusCode(err))
	var fe cerr.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Len(t, fe, 2)
	assert.Contains(t, fe, "pricePerDay")
	assert.Contains(t, fe, "coverImageUrl")
	assert.Empty(t, api.vehicles)

	v, err := l.Create(ctx, sampleData())
	require.NoError(t, err)
	assert.Equal(t, alice.Email, v.OwnerEmail)
	assert.Equal(t, model.Available, v.Availability)
	assert.Equal(t, "Corolla", v.Name)
}

func TestListingsOwnershipGate(t *testing.T) {
	ctx := context.Background()
	api := &memAPI{}
	v, err := vehiclesuc.NewListings(api, fakeSession{s: alice}).Create(ctx, sampleData())
	require.NoError(t, err)

	byBob := vehiclesuc.NewListings(api, fakeSession{s: bob})
	changed := sampleData()
	changed.PricePerDay = 60
	_, err = byBob.Update(ctx, v.ID, changed)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, cerr.StatusCode(err))
	assert.Contains(t, err.Error(), vehiclesuc.MsgNotOwner)
	err = byBob.Delete(ctx, v.ID)
	assert.Equal(t, http.StatusForbidden, cerr.StatusCode(err))
	_, err = byBob.SetAvailability(ctx, v.ID, model.Booked)
	assert.Equal(t, http.StatusForbidden, cerr.StatusCode(err))

	anonymous := vehiclesuc.NewListings(api, fakeSession{})
	_, err = anonymous.Update(ctx, v.ID, changed)
	assert.Equal(t, http.StatusUnauthorized, cerr.StatusCode(err))

	byAlice := vehiclesuc.NewListings(api, fakeSession{s: alice})
	u, err := byAlice.Update(ctx, v.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, 60.0, u.PricePerDay)
	assert.Equal(t, model.Available, u.Availability, "availability is kept")

	u, err = byAlice.SetAvailability(ctx, v.ID, model.Booked)
	require.NoError(t, err)
	assert.Equal(t, model.Booked, u.Availability)
	assert.Equal(t, 60.0, u.PricePerDay)

	_, err = byAlice.SetAvailability(ctx, v.ID, "Reserved")
	assert.Equal(t, http.StatusBadRequest, cerr.StatusCode(err))

	require.NoError(t, byAlice.Delete(ctx, v.ID))
	assert.Empty(t, api.vehicles)
}

func TestListingsGet(t *testing.T) {
	ctx := context.Background()
	api := &memAPI{vehicles: fleet()}
	l := vehiclesuc.NewListings(api, fakeSession{})

	v, err := l.Get(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, "Land Cruiser", v.Name)

	_, err = l.Get(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, cerr.StatusCode(err))
	assert.Equal(t, "[404] "+vehiclesuc.MsgNotFound, err.Error())

	latest, err := l.Latest(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 6)
}

func TestListingsMine(t *testing.T) {
	ctx := context.Background()
	api := &memAPI{}

	_, err := vehiclesuc.NewListings(api, fakeSession{}).Mine(ctx)
	assert.Equal(t, http.StatusUnauthorized, cerr.StatusCode(err))

	_, err = vehiclesuc.NewListings(api, fakeSession{s: alice}).Mine(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, cerr.StatusCode(err))
	assert.Equal(t, "[502] mine is not supported", err.Error())
}
