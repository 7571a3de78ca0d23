// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"maps"
	"slices"
	"strings"
)

// FieldErrors is a field-level validation error, mapping each invalid
// field name to a user-facing message. It is produced before any
// network call and is never retried. Use cases wrap it by BadRequest,
// so adapters may find it with errors.As and report every field.
type FieldErrors map[string]string

// Error returns all messages ordered by their field names.
func (fe FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(fe))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}
