// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// Booking models a reservation request of a vehicle. The ID, Status,
// and the persisted TotalPrice are controlled by the bookings API.
// StartDate and EndDate are calendar dates (UTC midnight) and the
// EndDate must be strictly after the StartDate.
type Booking struct {
	ID         string        `json:"id"`
	VehicleID  string        `json:"vehicleId"`
	UserEmail  string        `json:"userEmail"`
	StartDate  time.Time     `json:"startDate"`
	EndDate    time.Time     `json:"endDate"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	Notes      string        `json:"notes,omitempty"`

	// Vehicle is the booked vehicle, if the listing embedded it.
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// BookingRequest is the payload which is sent to the bookings API for
// creation of a new booking. TotalPrice is computed locally and sent
// as a hint; the server response is authoritative.
type BookingRequest struct {
	VehicleID  string
	UserEmail  string
	StartDate  time.Time
	EndDate    time.Time
	TotalPrice float64
	Notes      string
}

// BookingStatus is the server-controlled state of a booking.
type BookingStatus string

// Known booking statuses.
const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)
