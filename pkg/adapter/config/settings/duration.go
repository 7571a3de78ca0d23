// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings contains the generic helpers of the config package
// and the setting types which need a custom text representation.
package settings

import (
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which is read from and written to the
// configuration files as text, like 1h30m or 250ms.
type Duration time.Duration

// UnmarshalText parses data in the time.ParseDuration format. On
// failure, d is left unchanged.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// String formats d like time.Duration does, but drops the zero
// trailing units, so 2h0m0s becomes 2h and 10m0s becomes 10m.
func (d Duration) String() string {
	s := time.Duration(d).String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}

// MarshalText writes d in its String format, so it can be parsed back
// by UnmarshalText.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LogValue logs d as a slog duration.
func (d Duration) LogValue() slog.Value {
	return slog.DurationValue(time.Duration(d))
}
