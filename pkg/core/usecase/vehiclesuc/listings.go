// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/repo"
	"github.com/goride/goride/pkg/core/validation"
)

// User-facing messages of the Listings use case. Failures of the
// vehicles API are reported with the server provided message if there
// is one, otherwise, the relevant fallback message is used.
const (
	MsgSignInRequired = "Please login to manage your vehicles."
	MsgNotOwner       = "You can only update your own vehicles."
	MsgNotFound       = "Vehicle not found."

	MsgGetFailed    = "Failed to fetch vehicle"
	MsgMineFailed   = "Failed to fetch your vehicles"
	MsgLatestFailed = "Failed to fetch latest vehicles"
	MsgCreateFailed = "Failed to add vehicle"
	MsgUpdateFailed = "Failed to update vehicle"
	MsgDeleteFailed = "Failed to delete vehicle"
)

// Session is the view of the signed-in identity which is required by
// the vehicles use cases. It is implemented by the sessionuc.Store.
type Session interface {
	// Identity returns the signed-in identity or nil.
	Identity() *model.Session

	// IsOwner reports whether the signed-in identity owns resources
	// which are attributed to the email address.
	IsOwner(email string) bool
}

// Listings represents the owner-side vehicles use cases, i.e., listing
// a new vehicle and managing those vehicles which are owned by the
// signed-in identity. It also provides the single vehicle queries
// which are not part of the catalog browsing state.
type Listings struct {
	api     repo.VehiclesAPI
	session Session
}

// NewListings instantiates a Listings use case. All mutations are
// authorized against the identity which is reported by the session.
func NewListings(api repo.VehiclesAPI, session Session) *Listings {
	return &Listings{api: api, session: session}
}

// Get fetches the id vehicle. A missing vehicle is reported as a
// cerr.NotFound error.
func (l *Listings) Get(ctx context.Context, id string) (*model.Vehicle, error) {
	v, err := l.api.Get(ctx, id)
	if err != nil {
		if cerr.Is(err, http.StatusNotFound) {
			return nil, cerr.Rephrase(err, MsgNotFound)
		}
		return nil, cerr.Rephrase(err, MsgGetFailed)
	}
	return v, nil
}

// Latest lists the most recently listed vehicles.
func (l *Listings) Latest(ctx context.Context) ([]model.Vehicle, error) {
	vs, err := l.api.ListLatest(ctx)
	if err != nil {
		return nil, cerr.Rephrase(err, MsgLatestFailed)
	}
	return vs, nil
}

// Mine lists vehicles of the signed-in identity. The vehicles API
// identifies the owner by the bearer credential, so the signed-in
// identity is only checked for presence here.
func (l *Listings) Mine(ctx context.Context) ([]model.Vehicle, error) {
	if _, err := l.identity(); err != nil {
		return nil, err
	}
	vs, err := l.api.ListMine(ctx)
	if err != nil {
		return nil, cerr.Rephrase(err, MsgMineFailed)
	}
	return vs, nil
}

// Create validates d and lists it as a new vehicle which is owned by
// the signed-in identity. A new listing is always Available, unless
// d asks for another valid availability explicitly.
func (l *Listings) Create(ctx context.Context, d model.VehicleData) (*model.Vehicle, error) {
	s, err := l.identity()
	if err != nil {
		return nil, err
	}
	if d.Availability == "" {
		d.Availability = model.Available
	}
	if res := validation.VehicleData(d); !res.IsValid {
		return nil, cerr.BadRequest(res.Errors)
	}
	v, err := l.api.Create(ctx, s.Email, d)
	if err != nil {
		return nil, cerr.Rephrase(err, MsgCreateFailed)
	}
	log.Info(
		ctx, "vehicle is listed",
		slog.String("id", v.ID), slog.String("owner", s.Email),
	)
	return v, nil
}

// Update replaces the attributes of the id vehicle by d after checking
// that the signed-in identity owns it.
func (l *Listings) Update(ctx context.Context, id string, d model.VehicleData) (*model.Vehicle, error) {
	current, err := l.owned(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Availability == "" {
		d.Availability = current.Availability
	}
	if res := validation.VehicleData(d); !res.IsValid {
		return nil, cerr.BadRequest(res.Errors)
	}
	v, err := l.api.Update(ctx, id, d)
	if err != nil {
		return nil, cerr.Rephrase(err, MsgUpdateFailed)
	}
	return v, nil
}

// SetAvailability toggles the availability of the id vehicle after
// checking that the signed-in identity owns it. Other attributes of
// the vehicle are sent back unchanged.
func (l *Listings) SetAvailability(ctx context.Context, id string, a model.Availability) (*model.Vehicle, error) {
	if err := a.Validate(); err != nil {
		return nil, cerr.BadRequest(cerr.FieldErrors{
			"availability": "Unknown availability",
		})
	}
	current, err := l.owned(ctx, id)
	if err != nil {
		return nil, err
	}
	d := DataOf(current)
	d.Availability = a
	v, err := l.api.Update(ctx, id, d)
	if err != nil {
		return nil, cerr.Rephrase(err, MsgUpdateFailed)
	}
	return v, nil
}

// Delete removes the id vehicle after checking that the signed-in
// identity owns it.
func (l *Listings) Delete(ctx context.Context, id string) error {
	if _, err := l.owned(ctx, id); err != nil {
		return err
	}
	if err := l.api.Delete(ctx, id); err != nil {
		return cerr.Rephrase(err, MsgDeleteFailed)
	}
	log.Info(ctx, "vehicle is deleted", slog.String("id", id))
	return nil
}

func (l *Listings) identity() (*model.Session, error) {
	s := l.session.Identity()
	if s == nil {
		return nil, cerr.Authentication(errors.New(MsgSignInRequired))
	}
	return s, nil
}

// owned fetches the id vehicle and returns it if it is owned by the
// signed-in identity. Otherwise, a cerr.Authentication (no identity),
// cerr.NotFound, or cerr.Authorization error is returned.
func (l *Listings) owned(ctx context.Context, id string) (*model.Vehicle, error) {
	if _, err := l.identity(); err != nil {
		return nil, err
	}
	v, err := l.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !l.session.IsOwner(v.OwnerEmail) {
		return nil, cerr.Authorization(errors.New(MsgNotOwner))
	}
	return v, nil
}

// DataOf returns the user editable attributes of v.
func DataOf(v *model.Vehicle) model.VehicleData {
	return model.VehicleData{
		Name:          v.Name,
		OwnerName:     v.OwnerName,
		Category:      v.Category,
		FuelType:      v.FuelType,
		PricePerDay:   v.PricePerDay,
		Location:      v.Location,
		Availability:  v.Availability,
		Description:   v.Description,
		CoverImageURL: v.CoverImageURL,
	}
}
