// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package validation contains the pure validators of the core layer.
// Validators never fail for normal inputs; they return structured
// results which carry one user-facing message per invalid field (see
// cerr.FieldErrors), so use cases can wrap them as a BadRequest error
// before any network call takes place.
//
// Booking dates are validated by DateRange and priced by TotalPrice.
// Account credentials are checked by Email and Password, and listings
// are checked by VehicleData.
package validation

import (
	"fmt"
	"time"

	"github.com/goride/goride/pkg/core/cerr"
)

// DateLayout is the layout of calendar dates in requests and responses.
const DateLayout = time.DateOnly

// Messages reported for invalid booking dates.
const (
	MsgStartDateRequired = "Start date is required"
	MsgEndDateRequired   = "End date is required"
	MsgEndBeforeStart    = "End date must be after start date"
)

// DateRangeResult is the outcome of a DateRange validation. Errors may
// contain startDate and endDate keys and Valid is true iff it is empty.
type DateRangeResult struct {
	Valid  bool
	Errors cerr.FieldErrors
}

// DateRange validates a proposed booking date range. A zero time
// represents a missing date. The end date must be strictly after the
// start date, so equal dates are rejected.
func DateRange(start, end time.Time) DateRangeResult {
	errs := cerr.FieldErrors{}
	if start.IsZero() {
		errs["startDate"] = MsgStartDateRequired
	}
	if end.IsZero() {
		errs["endDate"] = MsgEndDateRequired
	}
	if !start.IsZero() && !end.IsZero() && !end.After(start) {
		errs["endDate"] = MsgEndBeforeStart
	}
	return DateRangeResult{Valid: len(errs) == 0, Errors: errs}
}

// TotalPrice computes the price of a booking as the number of whole
// days between start and end (truncated towards zero) multiplied by
// the pricePerDay. Caller must validate the range by DateRange first,
// since an inverted range produces a zero or negative price.
func TotalPrice(start, end time.Time, pricePerDay float64) float64 {
	days := int64(end.Sub(start) / (24 * time.Hour))
	return float64(days) * pricePerDay
}

// ParseDate parses s as a calendar date. Both the 2006-01-02 layout
// and RFC 3339 timestamps are accepted; in the latter case, the time
// of the day is dropped after conversion to UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD: %w", err)
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
