// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package restclient

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/validation"
)

// vehicleWire is a vehicle as exchanged with the backend. The vehicle
// type (fuel type) is named categories by the backend, but fuelType is
// accepted too.
type vehicleWire struct {
	ID           string  `json:"_id,omitempty"`
	AltID        string  `json:"id,omitempty"`
	VehicleName  string  `json:"vehicleName"`
	Owner        string  `json:"owner"`
	UserEmail    string  `json:"userEmail,omitempty"`
	Category     string  `json:"category"`
	Categories   string  `json:"categories,omitempty"`
	FuelType     string  `json:"fuelType,omitempty"`
	PricePerDay  float64 `json:"pricePerDay"`
	Location     string  `json:"location"`
	Availability string  `json:"availability,omitempty"`
	Description  string  `json:"description"`
	CoverImage   string  `json:"coverImage"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}

func (w *vehicleWire) model() model.Vehicle {
	v := model.Vehicle{
		ID:            w.ID,
		Name:          w.VehicleName,
		OwnerName:     w.Owner,
		OwnerEmail:    w.UserEmail,
		Category:      model.Category(w.Category),
		FuelType:      model.FuelType(w.Categories),
		PricePerDay:   w.PricePerDay,
		Location:      w.Location,
		Availability:  model.Availability(w.Availability),
		Description:   w.Description,
		CoverImageURL: w.CoverImage,
	}
	if v.ID == "" {
		v.ID = w.AltID
	}
	if v.FuelType == "" {
		v.FuelType = model.FuelType(w.FuelType)
	}
	if w.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, w.CreatedAt); err == nil {
			v.CreatedAt = t
		}
	}
	return v
}

func vehicleRequest(ownerEmail string, d model.VehicleData) vehicleWire {
	return vehicleWire{
		VehicleName:  d.Name,
		Owner:        d.OwnerName,
		UserEmail:    ownerEmail,
		Category:     string(d.Category),
		Categories:   string(d.FuelType),
		PricePerDay:  d.PricePerDay,
		Location:     d.Location,
		Availability: string(d.Availability),
		Description:  d.Description,
		CoverImage:   d.CoverImageURL,
	}
}

func vehicles(ws []vehicleWire) []model.Vehicle {
	vs := make([]model.Vehicle, 0, len(ws))
	for i := range ws {
		vs = append(vs, ws[i].model())
	}
	return vs
}

// bookingWire is a booking as returned by the backend. The vehicle
// member is either the vehicle id or the whole (populated) vehicle.
type bookingWire struct {
	ID         string          `json:"_id"`
	AltID      string          `json:"id"`
	VehicleID  string          `json:"vehicleId"`
	Vehicle    json.RawMessage `json:"vehicle"`
	UserEmail  string          `json:"userEmail"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	TotalPrice float64         `json:"totalPrice"`
	Status     string          `json:"status"`
	Notes      string          `json:"notes"`
}

func (w *bookingWire) model() (model.Booking, error) {
	b := model.Booking{
		ID:         w.ID,
		VehicleID:  w.VehicleID,
		UserEmail:  w.UserEmail,
		TotalPrice: w.TotalPrice,
		Status:     model.BookingStatus(w.Status),
		Notes:      w.Notes,
	}
	if b.ID == "" {
		b.ID = w.AltID
	}
	var err error
	if b.StartDate, err = validation.ParseDate(w.StartDate); err != nil {
		return b, cerr.Upstream(fmt.Errorf("booking %q startDate: %w", b.ID, err))
	}
	if b.EndDate, err = validation.ParseDate(w.EndDate); err != nil {
		return b, cerr.Upstream(fmt.Errorf("booking %q endDate: %w", b.ID, err))
	}
	raw := bytes.TrimSpace(w.Vehicle)
	switch {
	case len(raw) == 0 || string(raw) == "null":
	case raw[0] == '{':
		var vw vehicleWire
		if err := json.Unmarshal(raw, &vw); err != nil {
			return b, cerr.Upstream(fmt.Errorf("booking %q vehicle: %w", b.ID, err))
		}
		v := vw.model()
		b.Vehicle = &v
		if b.VehicleID == "" {
			b.VehicleID = v.ID
		}
	default:
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return b, cerr.Upstream(fmt.Errorf("booking %q vehicle: %w", b.ID, err))
		}
		if b.VehicleID == "" {
			b.VehicleID = id
		}
	}
	return b, nil
}

type bookingRequest struct {
	VehicleID  string  `json:"vehicleId"`
	UserEmail  string  `json:"userEmail"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	TotalPrice float64 `json:"totalPrice"`
	Notes      string  `json:"notes,omitempty"`
}

func newBookingRequest(r model.BookingRequest) bookingRequest {
	return bookingRequest{
		VehicleID:  r.VehicleID,
		UserEmail:  r.UserEmail,
		StartDate:  r.StartDate.Format(validation.DateLayout),
		EndDate:    r.EndDate.Format(validation.DateLayout),
		TotalPrice: r.TotalPrice,
		Notes:      r.Notes,
	}
}
