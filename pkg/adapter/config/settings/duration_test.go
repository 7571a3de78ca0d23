// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goride/goride/pkg/adapter/config/settings"
)

func TestDurationMarshal(t *testing.T) {
	for _, tc := range []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{90 * time.Second, "1m30s"},
		{10 * time.Minute, "10m"},
		{2 * time.Hour, "2h"},
		{2*time.Hour + 3*time.Minute, "2h3m"},
		{1500 * time.Millisecond, "1.5s"},
	} {
		d := settings.Duration(tc.d)
		assert.Equal(t, tc.want, d.String())
		text, err := d.MarshalText()
		require.NoError(t, err)
		var back settings.Duration
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, d, back)
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d settings.Duration
	require.NoError(t, d.UnmarshalText([]byte("1h15m")))
	assert.Equal(t, settings.Duration(75*time.Minute), d)
	assert.Error(t, d.UnmarshalText([]byte("soon")))
	assert.Equal(t, settings.Duration(75*time.Minute), d, "kept on error")
}

func TestInRange(t *testing.T) {
	v := 20
	err := settings.InRange(&v, 1, 10)
	var re *settings.RangeError[int]
	require.ErrorAs(t, err, &re)
	assert.Equal(t, 20, re.Value)
	assert.EqualError(t, err, "20 is not in [1, 10]")

	assert.NoError(t, settings.InRange(nil, 1, 10))
	v = 10
	assert.NoError(t, settings.InRange(&v, 1, 10))
	assert.Panics(t, func() { _ = settings.InRange(&v, 10, 1) })

	d := settings.Duration(90 * time.Minute)
	err = settings.InRange(&d, 0, settings.Duration(time.Hour))
	assert.EqualError(t, err, "1h30m is not in [0s, 1h]")
}

func TestDefault(t *testing.T) {
	var b *bool
	settings.Default(&b, true)
	require.NotNil(t, b)
	assert.True(t, *b)
	settings.Default(&b, false)
	assert.True(t, *b, "provided values are kept")
}
