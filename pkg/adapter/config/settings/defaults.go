// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// Default stores a copy of v in the `dst` optional setting if it was
// omitted (i.e., *dst is nil). Provided settings are kept as is.
func Default[T any](dst **T, v T) {
	if *dst == nil {
		*dst = &v
	}
}

// RangeError indicates that an optional setting is not in the
// [Min, Max] closed range.
type RangeError[T cmp.Ordered] struct {
	Value    T
	Min, Max T
}

func (e *RangeError[T]) Error() string {
	return fmt.Sprintf("%v is not in [%v, %v]", e.Value, e.Min, e.Max)
}

// InRange checks that the optional `value` setting is between minb and
// maxb (inclusive). Omitted settings (nil) are accepted and the
// returned error is nil exactly when no violation was found. It
// panics if minb is greater than maxb.
func InRange[T cmp.Ordered](value *T, minb, maxb T) error {
	if minb > maxb {
		panic("settings: min is greater than max")
	}
	if value == nil || (*value >= minb && *value <= maxb) {
		return nil
	}
	return &RangeError[T]{Value: *value, Min: minb, Max: maxb}
}
