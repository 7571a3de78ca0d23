// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"

	"github.com/goride/goride/pkg/core/model"
)

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// Query returns a group Attr describing the non-empty fields of the
// given catalog query. Empty fields are skipped, so an unconstrained
// query is logged as an empty group.
func Query(key string, q model.FilterState) slog.Attr {
	attrs := make([]any, 0, 5)
	add := func(k, v string) {
		if v != "" {
			attrs = append(attrs, slog.String(k, v))
		}
	}
	add("category", string(q.CategoryValue()))
	add("location", q.LocationValue())
	add("priceRange", string(q.PriceRangeValue()))
	add("availability", string(q.AvailabilityValue()))
	add("sort", string(q.SortKeyValue()))
	return slog.Group(key, attrs...)
}
