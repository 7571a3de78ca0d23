// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON
// encoders) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
// The wire format of the remote vehicles and bookings APIs is not
// modeled here; it is mapped by the pkg/adapter/restclient package.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Vehicle models a rental listing as reported by the vehicles API.
// The ID, OwnerEmail, and CreatedAt fields are assigned by the server.
// Ownership is decided by comparing the OwnerEmail with the email of
// the signed-in identity (see sessionuc.Store.IsOwner).
type Vehicle struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	OwnerName     string       `json:"ownerName"`
	OwnerEmail    string       `json:"ownerEmail"`
	Category      Category     `json:"category"`
	FuelType      FuelType     `json:"fuelType"`
	PricePerDay   float64      `json:"pricePerDay"`
	Location      string       `json:"location"`
	Availability  Availability `json:"availability"`
	Description   string       `json:"description"`
	CoverImageURL string       `json:"coverImageUrl"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// VehicleData is the user provided record which is validated and sent
// to the vehicles API for creation or update of a listing. It contains
// all Vehicle attributes except those which are assigned by the server
// or derived from the signed-in identity.
type VehicleData struct {
	Name          string       `json:"name"`
	OwnerName     string       `json:"ownerName"`
	Category      Category     `json:"category"`
	FuelType      FuelType     `json:"fuelType"`
	PricePerDay   float64      `json:"pricePerDay"`
	Location      string       `json:"location"`
	Availability  Availability `json:"availability,omitempty"`
	Description   string       `json:"description"`
	CoverImageURL string       `json:"coverImageUrl"`
}

// Category specifies the body category of a vehicle.
type Category string

// Valid values for the Category enum.
const (
	CategorySedan    Category = "Sedan"
	CategorySUV      Category = "SUV"
	CategoryElectric Category = "Electric"
	CategoryVan      Category = "Van"
)

// Categories lists all known categories in their presentation order.
var Categories = []Category{
	CategorySedan, CategorySUV, CategoryElectric, CategoryVan,
}

// ErrUnknownCategory indicates that a given string may not be parsed
// as a known vehicle category. Similar to other parsing errors of this
// package, it does not repeat the invalid string since the caller of
// the Parse function knows about it already and can wrap it.
var ErrUnknownCategory = errors.New("unknown category")

// Validate returns nil if c is one of the known categories.
func (c Category) Validate() error {
	for _, k := range Categories {
		if c == k {
			return nil
		}
	}
	return ErrUnknownCategory
}

// ParseCategory parses the given string as a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

// FuelType specifies the propulsion of a vehicle. The original
// listings call it the vehicle type.
type FuelType string

// Valid values for the FuelType enum.
const (
	FuelElectric FuelType = "Electric"
	FuelGasoline FuelType = "Gasoline"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
)

// FuelTypes lists all known fuel types in their presentation order.
var FuelTypes = []FuelType{
	FuelElectric, FuelGasoline, FuelDiesel, FuelHybrid,
}

// ErrUnknownFuelType indicates an unknown fuel type string.
var ErrUnknownFuelType = errors.New("unknown fuel type")

// Validate returns nil if f is one of the known fuel types.
func (f FuelType) Validate() error {
	for _, k := range FuelTypes {
		if f == k {
			return nil
		}
	}
	return ErrUnknownFuelType
}

// ParseFuelType parses the given string as a FuelType.
func ParseFuelType(s string) (FuelType, error) {
	f := FuelType(s)
	if err := f.Validate(); err != nil {
		return "", err
	}
	return f, nil
}

// Availability is the coarse booking state of a vehicle. Owners may
// toggle it manually; no booking flow changes it in this project.
type Availability string

// Valid values for the Availability enum.
const (
	Available Availability = "Available"
	Booked    Availability = "Booked"
)

// AvailabilityError indicates an invalid availability value. It keeps
// the offending value because it is usually found while decoding a
// whole record (e.g., a vehicle received from the server) rather than
// a single argument.
type AvailabilityError string

// Error implements the error interface.
func (e AvailabilityError) Error() string {
	return fmt.Sprintf("invalid availability: %q", string(e))
}

// Validate returns nil if a is either Available or Booked. Otherwise,
// an AvailabilityError will be returned.
func (a Availability) Validate() error {
	switch a {
	case Available, Booked:
		return nil
	default:
		return AvailabilityError(a)
	}
}

// ParseAvailability parses the given string as an Availability.
func ParseAvailability(s string) (Availability, error) {
	a := Availability(s)
	if err := a.Validate(); err != nil {
		return "", err
	}
	return a, nil
}
