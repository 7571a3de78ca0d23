// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/model"
)

func ptr[T any](v T) *T {
	return &v
}

// memAPI is an in-memory vehicles API. Its List method ignores the
// query, as a server which does not support filtering would do.
type memAPI struct {
	mu       sync.Mutex
	vehicles []model.Vehicle
	listErr  error
	lastList model.FilterState
	nextID   int
}

func (m *memAPI) List(_ context.Context, q model.FilterState) ([]model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = q
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]model.Vehicle, len(m.vehicles))
	copy(out, m.vehicles)
	return out, nil
}

func (m *memAPI) Get(_ context.Context, id string) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vehicles {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, cerr.NotFound(errors.New("no such vehicle"))
}

func (m *memAPI) ListMine(context.Context) ([]model.Vehicle, error) {
	return nil, cerr.Upstream(cerr.ServerMessage("mine is not supported"))
}

func (m *memAPI) ListLatest(ctx context.Context) ([]model.Vehicle, error) {
	return m.List(ctx, model.FilterState{})
}

func (m *memAPI) Create(_ context.Context, owner string, d model.VehicleData) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	v := vehicleOf(fmt.Sprintf("v%d", m.nextID), owner, d)
	m.vehicles = append(m.vehicles, v)
	return &v, nil
}

func (m *memAPI) Update(_ context.Context, id string, d model.VehicleData) (*model.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.vehicles {
		if v.ID == id {
			m.vehicles[i] = vehicleOf(id, v.OwnerEmail, d)
			u := m.vehicles[i]
			return &u, nil
		}
	}
	return nil, cerr.NotFound(errors.New("no such vehicle"))
}

func (m *memAPI) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.vehicles {
		if v.ID == id {
			m.vehicles = append(m.vehicles[:i], m.vehicles[i+1:]...)
			return nil
		}
	}
	return cerr.NotFound(cerr.ServerMessage("Vehicle does not exist"))
}

func vehicleOf(id, owner string, d model.VehicleData) model.Vehicle {
	return model.Vehicle{
		ID:            id,
		Name:          d.Name,
		OwnerName:     d.OwnerName,
		OwnerEmail:    owner,
		Category:      d.Category,
		FuelType:      d.FuelType,
		PricePerDay:   d.PricePerDay,
		Location:      d.Location,
		Availability:  d.Availability,
		Description:   d.Description,
		CoverImageURL: d.CoverImageURL,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// gatedAPI reports every List call on its calls channel and blocks it
// until a reply is sent back, so tests can decide about the order of
// the responses.
type gatedAPI struct {
	memAPI
	calls chan gatedCall
}

type gatedCall struct {
	q     model.FilterState
	reply chan listReply
}

type listReply struct {
	vehicles []model.Vehicle
	err      error
}

func newGatedAPI() *gatedAPI {
	return &gatedAPI{calls: make(chan gatedCall)}
}

func (g *gatedAPI) List(_ context.Context, q model.FilterState) ([]model.Vehicle, error) {
	c := gatedCall{q: q, reply: make(chan listReply)}
	g.calls <- c
	r := <-c.reply
	return r.vehicles, r.err
}

type fakeSession struct {
	s *model.Session
}

func (f fakeSession) Identity() *model.Session {
	return f.s
}

func (f fakeSession) IsOwner(email string) bool {
	return f.s != nil && f.s.Email == email
}
