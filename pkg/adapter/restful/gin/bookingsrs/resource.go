// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsrs realizes the bookings resource, allowing the
// signed-in user of a browser to book vehicles, list and cancel their
// bookings.
package bookingsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goride/goride/pkg/adapter/restful/gin/browsers"
	"github.com/goride/goride/pkg/adapter/restful/gin/serdser"
)

type resource struct {
}

// Register instantiates a resource and registers its REST APIs:
//  1. POST /bookings in order to book a vehicle,
//  2. GET /my-bookings in order to list bookings of the user, and
//  3. DELETE /bookings/:bid in order to cancel a booking.
func Register(r *gin.RouterGroup) {
	rs := &resource{}
	r.POST("bookings", rs.CreateBooking)
	r.GET("my-bookings", rs.MyBookings)
	r.DELETE("bookings/:bid", rs.CancelBooking)
}

func (rs *resource) CreateBooking(c *gin.Context) {
	p := rs.DserProposal(c)
	if p == nil {
		return
	}
	b := browsers.From(c)
	bk, err := b.Bookings.Submit(c, *p)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, bk)
}

func (rs *resource) MyBookings(c *gin.Context) {
	b := browsers.From(c)
	bks, err := b.Bookings.MyBookings(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, bks)
}

func (rs *resource) CancelBooking(c *gin.Context) {
	b := browsers.From(c)
	bk, err := b.Bookings.Cancel(c, c.Param("bid"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, bk)
}
