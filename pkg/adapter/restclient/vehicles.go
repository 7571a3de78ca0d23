// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/goride/goride/pkg/core/model"
)

// List sends GET /vehicles with the q query parameters (see listQuery).
func (c *Client) List(ctx context.Context, q model.FilterState) ([]model.Vehicle, error) {
	var ws []vehicleWire
	if err := c.do(ctx, http.MethodGet, "vehicles", listQuery(q), nil, &ws); err != nil {
		return nil, err
	}
	return vehicles(ws), nil
}

// Get sends GET /vehicles/:id.
func (c *Client) Get(ctx context.Context, id string) (*model.Vehicle, error) {
	var w vehicleWire
	if err := c.do(ctx, http.MethodGet, vehiclePath(id), nil, nil, &w); err != nil {
		return nil, err
	}
	v := w.model()
	return &v, nil
}

// ListMine sends GET /vehicles/my-vehicles. The backend identifies the
// owner by the bearer token.
func (c *Client) ListMine(ctx context.Context) ([]model.Vehicle, error) {
	var ws []vehicleWire
	if err := c.do(ctx, http.MethodGet, "vehicles/my-vehicles", nil, nil, &ws); err != nil {
		return nil, err
	}
	return vehicles(ws), nil
}

// ListLatest sends GET /vehicles/latest.
func (c *Client) ListLatest(ctx context.Context) ([]model.Vehicle, error) {
	var ws []vehicleWire
	if err := c.do(ctx, http.MethodGet, "vehicles/latest", nil, nil, &ws); err != nil {
		return nil, err
	}
	return vehicles(ws), nil
}

// Create sends POST /vehicles.
func (c *Client) Create(ctx context.Context, ownerEmail string, d model.VehicleData) (*model.Vehicle, error) {
	var w vehicleWire
	in := vehicleRequest(ownerEmail, d)
	if err := c.do(ctx, http.MethodPost, "vehicles", nil, in, &w); err != nil {
		return nil, err
	}
	v := w.model()
	return &v, nil
}

// Update sends PUT /vehicles/:id. The owner email is not sent, so it
// may not be changed.
func (c *Client) Update(ctx context.Context, id string, d model.VehicleData) (*model.Vehicle, error) {
	var w vehicleWire
	in := vehicleRequest("", d)
	if err := c.do(ctx, http.MethodPut, vehiclePath(id), nil, in, &w); err != nil {
		return nil, err
	}
	v := w.model()
	return &v, nil
}

// Delete sends DELETE /vehicles/:id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, vehiclePath(id), nil, nil, nil)
}

func vehiclePath(id string) string {
	return "vehicles/" + url.PathEscape(id)
}

// listQuery maps q to the query parameters of the vehicles listing.
// A price bucket is sent as its minPrice and maxPrice bounds, omitting
// the unbounded side. The backend may treat those bounds inclusively,
// so the listing may contain a superset of the bucket and callers
// should filter it locally.
func listQuery(q model.FilterState) url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("category", string(q.CategoryValue()))
	set("location", q.LocationValue())
	set("availability", string(q.AvailabilityValue()))
	set("sort", string(q.SortKeyValue()))
	if lo, hi, ok := q.PriceRangeValue().Bounds(); ok {
		v.Set("minPrice", strconv.FormatFloat(lo, 'f', -1, 64))
		if hi >= 0 {
			v.Set("maxPrice", strconv.FormatFloat(hi, 'f', -1, 64))
		}
	}
	return v
}
