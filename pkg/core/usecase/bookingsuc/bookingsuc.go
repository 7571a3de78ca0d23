// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package bookingsuc contains the bookings UseCase which coordinates
// submission of booking requests for the signed-in identity. It also
// lists and cancels the bookings of that identity.
//
// A vehicle is booked at its price as reported by the vehicles API and
// only while it is Available. Bookings are not checked against other
// bookings of the same vehicle and the vehicle availability is not
// changed by a submission; the bookings API is the authority for both.
package bookingsuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/repo"
	"github.com/goride/goride/pkg/core/validation"
)

// User-facing messages of the bookings UseCase.
const (
	MsgSignInRequired = "Please login to book a vehicle."
	MsgInProgress     = "A booking request for this vehicle is already in progress."
	MsgUnavailable    = "This vehicle is not available for booking."
	MsgNotFound       = "Vehicle not found."
	MsgSubmitFailed   = "Failed to create booking"
	MsgListFailed     = "Failed to fetch bookings"
	MsgCancelFailed   = "Failed to cancel booking"
)

// Session is the view of the signed-in identity which is required by
// the bookings UseCase. It is implemented by the sessionuc.Store.
type Session interface {
	Identity() *model.Session
}

// Vehicles fetches the vehicle which is going to be booked. It is
// implemented by the vehicles API client.
type Vehicles interface {
	Get(ctx context.Context, id string) (*model.Vehicle, error)
}

// Proposal describes a booking which a user wants to submit.
type Proposal struct {
	VehicleID string
	StartDate time.Time
	EndDate   time.Time
	Notes     string
}

// UseCase represents the bookings use case. It holds the bookings API
// and the session of one client, and tracks the vehicles which have a
// submission in flight, so repeated submissions can be refused.
type UseCase struct {
	api      repo.BookingsAPI
	vehicles Vehicles
	session  Session

	submitTimeout time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// New instantiates a bookings use case.
// Required parameters are passed individually, while optional ones are
// passed as functional options.
func New(
	api repo.BookingsAPI, vehicles Vehicles, session Session, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{
		api:      api,
		vehicles: vehicles,
		session:  session,
		inFlight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return uc, nil
}

// Submit use case creates a booking for the p proposal on behalf of
// the signed-in identity. It fails with a cerr.Authentication error if
// no identity is signed in, with a cerr.BadRequest error which wraps
// the cerr.FieldErrors if the date range is invalid, and with a
// cerr.Conflict error if another submission for the same vehicle is
// still in flight. Otherwise, the vehicle is fetched; a missing vehicle
// gives a cerr.NotFound error and a vehicle which is not Available
// gives a cerr.Conflict error. The total price is computed from the
// fetched price per day and the bookings API is called once. The
// booking which is returned by the API is authoritative (e.g., for its
// ID, status, and price).
//
// API failures are returned with the server provided message if there
// is one, or the MsgSubmitFailed message, keeping their status class.
func (uc *UseCase) Submit(ctx context.Context, p Proposal) (*model.Booking, error) {
	s := uc.session.Identity()
	if s == nil {
		return nil, cerr.Authentication(errors.New(MsgSignInRequired))
	}
	if res := validation.DateRange(p.StartDate, p.EndDate); !res.Valid {
		return nil, cerr.BadRequest(res.Errors)
	}
	if !uc.acquire(p.VehicleID) {
		return nil, cerr.Conflict(errors.New(MsgInProgress))
	}
	defer uc.release(p.VehicleID)

	if uc.submitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.submitTimeout)
		defer cancel()
	}
	v, err := uc.bookable(ctx, p.VehicleID)
	if err != nil {
		return nil, err
	}
	r := model.BookingRequest{
		VehicleID:  p.VehicleID,
		UserEmail:  s.Email,
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		TotalPrice: validation.TotalPrice(p.StartDate, p.EndDate, v.PricePerDay),
		Notes:      p.Notes,
	}
	b, err := uc.api.Create(ctx, r)
	if err != nil {
		log.Warn(
			ctx, "booking submission failed",
			slog.String("vehicle", p.VehicleID), log.Err("err", err),
		)
		return nil, cerr.Rephrase(err, MsgSubmitFailed)
	}
	log.Info(
		ctx, "booking is submitted",
		slog.String("id", b.ID), slog.String("vehicle", b.VehicleID),
		slog.String("status", string(b.Status)),
	)
	return b, nil
}

// bookable fetches the vid vehicle and ensures that it is Available.
func (uc *UseCase) bookable(ctx context.Context, vid string) (*model.Vehicle, error) {
	v, err := uc.vehicles.Get(ctx, vid)
	switch {
	case cerr.Is(err, http.StatusNotFound):
		return nil, cerr.Rephrase(err, MsgNotFound)
	case err != nil:
		return nil, cerr.Rephrase(err, MsgSubmitFailed)
	case v.Availability != model.Available:
		log.Info(
			ctx, "booking refused",
			slog.String("vehicle", vid),
			slog.String("availability", string(v.Availability)),
		)
		return nil, cerr.Conflict(errors.New(MsgUnavailable))
	}
	return v, nil
}

// InFlight reports whether a submission for the vehicleID vehicle is
// in progress.
func (uc *UseCase) InFlight(vehicleID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.inFlight[vehicleID]
	return ok
}

func (uc *UseCase) acquire(vehicleID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, ok := uc.inFlight[vehicleID]; ok {
		return false
	}
	uc.inFlight[vehicleID] = struct{}{}
	return true
}

func (uc *UseCase) release(vehicleID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.inFlight, vehicleID)
}

// MyBookings lists bookings of the signed-in identity.
func (uc *UseCase) MyBookings(ctx context.Context) ([]model.Booking, error) {
	s := uc.session.Identity()
	if s == nil {
		return nil, cerr.Authentication(errors.New(MsgSignInRequired))
	}
	bs, err := uc.api.ListByUser(ctx, s.Email)
	if err != nil {
		return nil, cerr.Rephrase(err, MsgListFailed)
	}
	return bs, nil
}

// Cancel asks the bookings API to cancel the bid booking. Whether the
// booking may be cancelled (e.g., it belongs to the signed-in identity
// and it is not cancelled already) is decided by the API.
func (uc *UseCase) Cancel(ctx context.Context, bid string) (*model.Booking, error) {
	if uc.session.Identity() == nil {
		return nil, cerr.Authentication(errors.New(MsgSignInRequired))
	}
	b, err := uc.api.Cancel(ctx, bid)
	if err != nil {
		return nil, cerr.Rephrase(err, MsgCancelFailed)
	}
	log.Info(ctx, "booking is cancelled", slog.String("id", bid))
	return b, nil
}
