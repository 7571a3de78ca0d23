// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/goride/goride/pkg/core/model"
)

// BookingsAPI adapts a Client to the repo.BookingsAPI interface. Its
// Create method would collide with the vehicles Create method of the
// Client, so bookings are reached through the Client.Bookings method.
type BookingsAPI struct {
	c *Client
}

// Bookings returns the bookings API of the c backend.
func (c *Client) Bookings() BookingsAPI {
	return BookingsAPI{c: c}
}

// Create sends POST /bookings.
func (b BookingsAPI) Create(ctx context.Context, r model.BookingRequest) (*model.Booking, error) {
	var w bookingWire
	in := newBookingRequest(r)
	if err := b.c.do(ctx, http.MethodPost, "bookings", nil, in, &w); err != nil {
		return nil, err
	}
	bk, err := w.model()
	if err != nil {
		return nil, err
	}
	return &bk, nil
}

// ListByUser sends GET /bookings/user/:email.
func (b BookingsAPI) ListByUser(ctx context.Context, email string) ([]model.Booking, error) {
	var ws []bookingWire
	path := "bookings/user/" + url.PathEscape(email)
	if err := b.c.do(ctx, http.MethodGet, path, nil, nil, &ws); err != nil {
		return nil, err
	}
	bs := make([]model.Booking, 0, len(ws))
	for i := range ws {
		bk, err := ws[i].model()
		if err != nil {
			return nil, err
		}
		bs = append(bs, bk)
	}
	return bs, nil
}

// Cancel sends PATCH /bookings/:id/cancel.
func (b BookingsAPI) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	var w bookingWire
	path := "bookings/" + url.PathEscape(id) + "/cancel"
	if err := b.c.do(ctx, http.MethodPatch, path, nil, nil, &w); err != nil {
		return nil, err
	}
	bk, err := w.model()
	if err != nil {
		return nil, err
	}
	return &bk, nil
}
