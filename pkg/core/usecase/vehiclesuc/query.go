// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vehiclesuc contains the vehicles related use cases. It
// provides three groups of functionality:
//  1. The Filter and Sort pure functions which evaluate a catalog
//     query over an in-memory list of vehicles,
//  2. The CatalogStore which keeps the browsing state of one client
//     and fetches vehicles from the remote API with the
//     last-query-wins semantics,
//  3. The Listings use case which allows owners to manage their own
//     vehicles after an ownership check.
package vehiclesuc

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goride/goride/pkg/core/model"
)

// Filter returns a new slice containing those vehicles which satisfy
// all constraints of the q query. Constraints are independent, so
// their evaluation order does not matter, and the relative order of
// the kept vehicles is preserved. The vehicles slice is not modified.
//
// The category and availability fields must match exactly, location
// is matched as a case-insensitive substring, and price is checked by
// the model.PriceRange.Contains method. Empty fields and unknown price
// buckets put no constraint. The SortKey field of q is ignored.
func Filter(vehicles []model.Vehicle, q model.FilterState) []model.Vehicle {
	category := q.CategoryValue()
	location := strings.ToLower(q.LocationValue())
	price := q.PriceRangeValue()
	availability := q.AvailabilityValue()

	out := make([]model.Vehicle, 0, len(vehicles))
	for _, v := range vehicles {
		switch {
		case category != "" && v.Category != category:
		case location != "" &&
			!strings.Contains(strings.ToLower(v.Location), location):
		case !price.Contains(v.PricePerDay):
		case availability != "" && v.Availability != availability:
		default:
			out = append(out, v)
		}
	}
	return out
}

// Sort returns a new slice containing vehicles in the key order:
//
//	price-low   ascending price per day
//	price-high  descending price per day
//	name        ascending name, compared by the English collation
//	newest      descending creation time
//
// Sorting is stable, so vehicles with equal keys keep their relative
// order. An empty or unknown key returns a copy of vehicles as is.
func Sort(vehicles []model.Vehicle, key model.SortKey) []model.Vehicle {
	out := make([]model.Vehicle, len(vehicles))
	copy(out, vehicles)
	var compare func(a, b model.Vehicle) int
	switch key {
	case model.SortPriceLow:
		compare = func(a, b model.Vehicle) int {
			return cmp.Compare(a.PricePerDay, b.PricePerDay)
		}
	case model.SortPriceHigh:
		compare = func(a, b model.Vehicle) int {
			return cmp.Compare(b.PricePerDay, a.PricePerDay)
		}
	case model.SortName:
		// a Collator keeps internal buffers and may not be shared
		c := collate.New(language.English)
		compare = func(a, b model.Vehicle) int {
			return c.CompareString(a.Name, b.Name)
		}
	case model.SortNewest:
		compare = func(a, b model.Vehicle) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	default:
		return out
	}
	slices.SortStableFunc(out, compare)
	return out
}

// Apply evaluates the whole q query, filtering vehicles and sorting
// the result by the q.SortKey field.
func Apply(vehicles []model.Vehicle, q model.FilterState) []model.Vehicle {
	return Sort(Filter(vehicles, q), q.SortKeyValue())
}
