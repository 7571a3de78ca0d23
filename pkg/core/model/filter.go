// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// FilterState is the ephemeral browsing query of a catalog. A nil field
// means that no constraint is asked for that attribute. Fields are
// pointers, so a partial FilterState can be merged into another one,
// distinguishing between omitted fields (nil) and fields which are
// explicitly provided (even with an empty value which clears them).
type FilterState struct {
	Category     *Category     `json:"category,omitempty"`
	Location     *string       `json:"location,omitempty"`
	PriceRange   *PriceRange   `json:"priceRange,omitempty"`
	Availability *Availability `json:"availability,omitempty"`
	SortKey      *SortKey      `json:"sortKey,omitempty"`
}

// Merge returns a shallow copy of f where every non-nil field of the
// partial p overwrites its counterpart. Nil fields of p keep the
// values of f.
func (f FilterState) Merge(p FilterState) FilterState {
	if p.Category != nil {
		f.Category = p.Category
	}
	if p.Location != nil {
		f.Location = p.Location
	}
	if p.PriceRange != nil {
		f.PriceRange = p.PriceRange
	}
	if p.Availability != nil {
		f.Availability = p.Availability
	}
	if p.SortKey != nil {
		f.SortKey = p.SortKey
	}
	return f
}

// CategoryValue returns the asked category or an empty string.
func (f FilterState) CategoryValue() Category {
	if f.Category == nil {
		return ""
	}
	return *f.Category
}

// LocationValue returns the asked location or an empty string.
func (f FilterState) LocationValue() string {
	if f.Location == nil {
		return ""
	}
	return *f.Location
}

// PriceRangeValue returns the asked price bucket or an empty string.
func (f FilterState) PriceRangeValue() PriceRange {
	if f.PriceRange == nil {
		return ""
	}
	return *f.PriceRange
}

// AvailabilityValue returns the asked availability or an empty string.
func (f FilterState) AvailabilityValue() Availability {
	if f.Availability == nil {
		return ""
	}
	return *f.Availability
}

// SortKeyValue returns the asked sort key or an empty string.
func (f FilterState) SortKeyValue() SortKey {
	if f.SortKey == nil {
		return ""
	}
	return *f.SortKey
}

// PriceRange is one of the fixed price bucket tokens. Unknown tokens
// (including the empty string) put no constraint on prices.
type PriceRange string

// Known price buckets. Lower bounds are exclusive, except for the
// first bucket, and upper bounds are inclusive.
const (
	PriceUpTo50   PriceRange = "0-50"    // 0 <= price <= 50
	Price51To100  PriceRange = "51-100"  // 50 < price <= 100
	Price101To200 PriceRange = "101-200" // 100 < price <= 200
	PriceAbove200 PriceRange = "201+"    // price > 200
)

const (
	priceUnbounded  float64 = -1
	priceFirstFloor float64 = 0
)

// Bounds returns the lower and upper bounds of the bucket. An upper
// bound of -1 means no upper bound. The ok result is false for an
// unknown bucket. See Contains for the exclusivity of bounds.
func (r PriceRange) Bounds() (lo, hi float64, ok bool) {
	switch r {
	case PriceUpTo50:
		return priceFirstFloor, 50, true
	case Price51To100:
		return 50, 100, true
	case Price101To200:
		return 100, 200, true
	case PriceAbove200:
		return 200, priceUnbounded, true
	default:
		return 0, 0, false
	}
}

// Contains reports whether price falls in the r bucket. An unknown
// bucket contains all prices.
func (r PriceRange) Contains(price float64) bool {
	lo, hi, ok := r.Bounds()
	switch {
	case !ok:
		return true
	case r == PriceUpTo50:
		return price >= lo && price <= hi
	case hi == priceUnbounded:
		return price > lo
	default:
		return price > lo && price <= hi
	}
}

// SortKey selects the ordering of a vehicles list. Unknown keys keep
// the input order.
type SortKey string

// Known sort keys.
const (
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
	SortNewest    SortKey = "newest"
)
