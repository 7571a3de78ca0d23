// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package validation_test

import (
	"testing"
	"time"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := validation.ParseDate(s)
	require.NoError(t, err, "parsing %q", s)
	return d
}

func TestDateRange(t *testing.T) {
	for _, tc := range []struct {
		name       string
		start, end string
		errs       cerr.FieldErrors
	}{
		{
			name:  "end before start",
			start: "2025-01-10", end: "2025-01-09",
			errs: cerr.FieldErrors{"endDate": validation.MsgEndBeforeStart},
		},
		{
			name:  "equal dates",
			start: "2025-01-10", end: "2025-01-10",
			errs: cerr.FieldErrors{"endDate": validation.MsgEndBeforeStart},
		},
		{
			name:  "one day",
			start: "2025-01-10", end: "2025-01-11",
			errs: cerr.FieldErrors{},
		},
		{
			name: "missing start",
			end:  "2025-01-11",
			errs: cerr.FieldErrors{"startDate": validation.MsgStartDateRequired},
		},
		{
			name: "missing both",
			errs: cerr.FieldErrors{
				"startDate": validation.MsgStartDateRequired,
				"endDate":   validation.MsgEndDateRequired,
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var start, end time.Time
			if tc.start != "" {
				start = date(t, tc.start)
			}
			if tc.end != "" {
				end = date(t, tc.end)
			}
			res := validation.DateRange(start, end)
			assert.Equal(t, len(tc.errs) == 0, res.Valid)
			assert.Equal(t, tc.errs, res.Errors)
		})
	}
}

func TestTotalPrice(t *testing.T) {
	start, end := date(t, "2025-01-10"), date(t, "2025-01-13")
	assert.Equal(t, 150.0, validation.TotalPrice(start, end, 50))
	assert.Equal(t, -150.0, validation.TotalPrice(end, start, 50),
		"inverted ranges are not rejected by TotalPrice")
	assert.Zero(t, validation.TotalPrice(start, start, 50))
}

func TestParseDate(t *testing.T) {
	d, err := validation.ParseDate("2025-03-04T22:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), d)

	_, err = validation.ParseDate("03/04/2025")
	assert.Error(t, err)
}

func TestEmail(t *testing.T) {
	for s, ok := range map[string]bool{
		"a@x.com":          true,
		"first.last@a.b.c": true,
		"a@x":              false,
		"@x.com":           false,
		"a@@x.com":         false,
		"a@b@x.com":        false,
		"a b@x.com":        false,
		"":                 false,
	} {
		assert.Equal(t, ok, validation.Email(s), "email %q", s)
	}
}

func TestPassword(t *testing.T) {
	assert.Equal(t, validation.PasswordResult{
		IsValid: true, HasUpperCase: true, HasLowerCase: true,
		HasMinLength: true,
	}, validation.Password("Secret1"))
	assert.Equal(t, validation.PasswordResult{
		HasLowerCase: true, HasMinLength: true,
	}, validation.Password("secret1"))
	assert.Equal(t, validation.PasswordResult{
		HasUpperCase: true, HasLowerCase: true,
	}, validation.Password("Ab"))
}

func TestVehicleDataEmpty(t *testing.T) {
	res := validation.VehicleData(model.VehicleData{})
	assert.False(t, res.IsValid)
	assert.ElementsMatch(t, []string{
		"name", "ownerName", "category", "pricePerDay", "location",
		"description", "coverImageUrl", "fuelType",
	}, keys(res.Errors))
}

func TestVehicleDataInvalidValues(t *testing.T) {
	res := validation.VehicleData(model.VehicleData{
		Name:          "Civic",
		OwnerName:     "Ann",
		Category:      "Truck",
		FuelType:      model.FuelHybrid,
		PricePerDay:   -3,
		Location:      "Dhaka",
		Description:   "  ",
		CoverImageURL: "not a url",
		Availability:  "Maybe",
	})
	assert.False(t, res.IsValid)
	assert.ElementsMatch(t, []string{
		"category", "pricePerDay", "description", "coverImageUrl",
		"availability",
	}, keys(res.Errors))
}

func TestVehicleDataValid(t *testing.T) {
	res := validation.VehicleData(model.VehicleData{
		Name:          "Civic",
		OwnerName:     "Ann",
		Category:      model.CategorySedan,
		FuelType:      model.FuelGasoline,
		PricePerDay:   45.5,
		Location:      "Dhaka",
		Description:   "Clean and comfy",
		CoverImageURL: "https://img.example.com/civic.jpg",
	})
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Errors)
}

func keys(fe cerr.FieldErrors) []string {
	ks := make([]string, 0, len(fe))
	for k := range fe {
		ks = append(ks, k)
	}
	return ks
}
