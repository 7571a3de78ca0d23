// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesrs realizes the catalog and vehicles resources.
// The catalog resource exposes the per-browser catalog store, while
// the vehicles resource exposes the listings use case.
package vehiclesrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/goride/goride/pkg/adapter/restful/gin/browsers"
	"github.com/goride/goride/pkg/adapter/restful/gin/serdser"
	"github.com/goride/goride/pkg/core/model"
)

type resource struct {
}

// Register instantiates a resource and registers its REST APIs:
//  1. GET /catalog for the current catalog snapshot,
//  2. PATCH /catalog/filter for merging a partial filter,
//  3. DELETE /catalog/filter for clearing the filter,
//  4. PUT /catalog/sort for choosing the sort order,
//  5. POST /catalog/refetch for fetching with the current query,
//  6. GET /vehicles/latest and GET /vehicles/:vid for browsing,
//  7. GET /my-vehicles for the listings of the signed-in owner, and
//  8. POST /vehicles, PUT /vehicles/:vid, DELETE /vehicles/:vid, and
//     PATCH /vehicles/:vid/availability for managing listings.
func Register(r *gin.RouterGroup) {
	rs := &resource{}
	r.GET("catalog", rs.GetCatalog)
	r.PATCH("catalog/filter", rs.SetFilter)
	r.DELETE("catalog/filter", rs.ClearFilters)
	r.PUT("catalog/sort", rs.SetSort)
	r.POST("catalog/refetch", rs.Refetch)

	r.GET("vehicles/latest", rs.Latest)
	r.GET("vehicles/:vid", rs.GetVehicle)
	r.GET("my-vehicles", rs.Mine)
	r.POST("vehicles", rs.CreateVehicle)
	r.PUT("vehicles/:vid", rs.UpdateVehicle)
	r.DELETE("vehicles/:vid", rs.DeleteVehicle)
	r.PATCH("vehicles/:vid/availability", rs.SetAvailability)
}

func (rs *resource) GetCatalog(c *gin.Context) {
	b := browsers.From(c)
	c.JSON(http.StatusOK, b.CatalogSnapshot(c))
}

func (rs *resource) SetFilter(c *gin.Context) {
	partial := &model.FilterState{}
	if !serdser.Bind(c, partial, binding.JSON) {
		return
	}
	b := browsers.From(c)
	snap, err := b.Catalog.SetFilter(c, *partial)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (rs *resource) ClearFilters(c *gin.Context) {
	b := browsers.From(c)
	c.JSON(http.StatusOK, b.Catalog.ClearFilters(c))
}

type sortReq struct {
	SortKey model.SortKey `json:"sortKey" binding:"max=32"`
}

func (rs *resource) SetSort(c *gin.Context) {
	req := &sortReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}
	b := browsers.From(c)
	c.JSON(http.StatusOK, b.Catalog.SetSort(c, req.SortKey))
}

func (rs *resource) Refetch(c *gin.Context) {
	b := browsers.From(c)
	c.JSON(http.StatusOK, b.Catalog.Refetch(c))
}

func (rs *resource) Latest(c *gin.Context) {
	b := browsers.From(c)
	vs, err := b.Listings.Latest(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vs)
}

func (rs *resource) GetVehicle(c *gin.Context) {
	b := browsers.From(c)
	v, err := b.Listings.Get(c, c.Param("vid"))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (rs *resource) Mine(c *gin.Context) {
	b := browsers.From(c)
	vs, err := b.Listings.Mine(c)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, vs)
}

func (rs *resource) CreateVehicle(c *gin.Context) {
	d := &model.VehicleData{}
	if !serdser.Bind(c, d, binding.JSON) {
		return
	}
	b := browsers.From(c)
	v, err := b.Listings.Create(c, *d)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, v)
}

func (rs *resource) UpdateVehicle(c *gin.Context) {
	d := &model.VehicleData{}
	if !serdser.Bind(c, d, binding.JSON) {
		return
	}
	b := browsers.From(c)
	v, err := b.Listings.Update(c, c.Param("vid"), *d)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (rs *resource) DeleteVehicle(c *gin.Context) {
	b := browsers.From(c)
	if err := b.Listings.Delete(c, c.Param("vid")); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type availabilityReq struct {
	Availability model.Availability `json:"availability" binding:"required"`
}

func (rs *resource) SetAvailability(c *gin.Context) {
	req := &availabilityReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}
	b := browsers.From(c)
	v, err := b.Listings.SetAvailability(c, c.Param("vid"), req.Availability)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}
