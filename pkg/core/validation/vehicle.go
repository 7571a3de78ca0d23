// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package validation

import (
	"net/url"
	"strings"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/model"
)

// VehicleDataResult is the outcome of a VehicleData validation.
type VehicleDataResult struct {
	IsValid bool
	Errors  cerr.FieldErrors
}

// VehicleData checks that every required field of d is present and
// well-formed. Blank strings count as missing. One message is recorded
// for each invalid field and IsValid is true iff no message exists.
// The availability is optional since new listings are available.
func VehicleData(d model.VehicleData) VehicleDataResult {
	errs := cerr.FieldErrors{}
	blank := func(s string) bool { return strings.TrimSpace(s) == "" }
	if blank(d.Name) {
		errs["name"] = "Vehicle name is required"
	}
	if blank(d.OwnerName) {
		errs["ownerName"] = "Owner name is required"
	}
	switch {
	case d.Category == "":
		errs["category"] = "Category is required"
	case d.Category.Validate() != nil:
		errs["category"] = "Category must be one of Sedan, SUV, Electric, Van"
	}
	if !(d.PricePerDay > 0) {
		errs["pricePerDay"] = "Valid price is required"
	}
	if blank(d.Location) {
		errs["location"] = "Location is required"
	}
	if blank(d.Description) {
		errs["description"] = "Description is required"
	}
	switch {
	case blank(d.CoverImageURL):
		errs["coverImageUrl"] = "Cover image is required"
	case !ImageURL(d.CoverImageURL):
		errs["coverImageUrl"] = "Cover image must be a valid URL"
	}
	switch {
	case d.FuelType == "":
		errs["fuelType"] = "Vehicle type is required"
	case d.FuelType.Validate() != nil:
		errs["fuelType"] = "Vehicle type must be one of Electric, Gasoline, Diesel, Hybrid"
	}
	if d.Availability != "" && d.Availability.Validate() != nil {
		errs["availability"] = "Availability must be Available or Booked"
	}
	return VehicleDataResult{IsValid: len(errs) == 0, Errors: errs}
}

// ImageURL reports whether s is a syntactically valid absolute URL.
// The URL is not fetched, so it may be unreachable.
func ImageURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}
