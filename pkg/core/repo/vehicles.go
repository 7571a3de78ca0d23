// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/goride/goride/pkg/core/model"
)

// VehiclesAPI represents the remote vehicles REST API. Implementations
// must attach the bearer credential of the current identity (if any)
// to every call and must convert their failures to *cerr.Error values
// (e.g., cerr.NotFound for a missing vehicle and cerr.Upstream for
// network failures), so use cases can classify them.
//
// Responses are canonical: any response envelope is removed by the
// implementation and the use cases layer sees plain models.
type VehiclesAPI interface {
	// List queries the vehicles which match the q query. Servers may
	// ignore some query parameters, so callers which need exact
	// semantics should filter and sort the result locally too.
	List(ctx context.Context, q model.FilterState) ([]model.Vehicle, error)

	// Get fetches one vehicle by its id.
	Get(ctx context.Context, id string) (*model.Vehicle, error)

	// ListMine lists vehicles of the identity which owns the bearer
	// credential.
	ListMine(ctx context.Context) ([]model.Vehicle, error)

	// ListLatest lists the most recently created vehicles.
	ListLatest(ctx context.Context) ([]model.Vehicle, error)

	// Create stores a new listing owned by ownerEmail.
	Create(ctx context.Context, ownerEmail string, d model.VehicleData) (*model.Vehicle, error)

	// Update replaces the attributes of the id listing.
	Update(ctx context.Context, id string, d model.VehicleData) (*model.Vehicle, error)

	// Delete removes the id listing.
	Delete(ctx context.Context, id string) error
}
