// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all use case and resource
// packages based on the user provided configuration settings.
package routes

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/goride/goride/pkg/adapter/auth/local"
	"github.com/goride/goride/pkg/adapter/restclient"
	"github.com/goride/goride/pkg/adapter/restful/gin"
	"github.com/goride/goride/pkg/adapter/restful/gin/bookingsrs"
	"github.com/goride/goride/pkg/adapter/restful/gin/browsers"
	"github.com/goride/goride/pkg/adapter/restful/gin/serdser"
	"github.com/goride/goride/pkg/adapter/restful/gin/sessionrs"
	"github.com/goride/goride/pkg/adapter/restful/gin/vehiclesrs"
	"github.com/goride/goride/pkg/core/repo"
	"github.com/goride/goride/pkg/core/usecase/bookingsuc"
	"github.com/goride/goride/pkg/core/usecase/sessionuc"
	"github.com/goride/goride/pkg/core/usecase/vehiclesuc"
)

// BasePath is the prefix of all REST APIs of the facade.
const BasePath = "/api/goride/v1"

// Deps contains the shared components which are used for creating the
// per-browser use cases. They are usually provided by the config
// package based on the configuration file.
type Deps struct {
	Identity local.Provider // accounts registration and sign in
	Tokens   repo.Tokens    // bearer tokens verification
	API      *restclient.Client

	CatalogOptions  []vehiclesuc.CatalogOption
	BookingsOptions []bookingsuc.Option
	BrowsersOptions []browsers.Option
}

// NewFactory returns a browsers.Factory which builds the use cases of
// one browser. Each browser has its own identity provider client,
// whose tokens authorize the requests of its own API client.
func (d Deps) NewFactory() browsers.Factory {
	return func(id uuid.UUID) (*browsers.Browser, error) {
		auth := local.New(d.Identity, d.Tokens)
		session := sessionuc.New()
		session.Attach(auth)
		api := d.API.Authorized(auth)
		catalog, err := vehiclesuc.NewCatalogStore(api, d.CatalogOptions...)
		if err != nil {
			session.Detach()
			return nil, fmt.Errorf("creating catalog store: %w", err)
		}
		bookings, err := bookingsuc.New(
			api.Bookings(), api, session, d.BookingsOptions...,
		)
		if err != nil {
			session.Detach()
			return nil, fmt.Errorf("creating bookings use case: %w", err)
		}
		return &browsers.Browser{
			ID:       id,
			Auth:     auth,
			Session:  session,
			Catalog:  catalog,
			Listings: vehiclesuc.NewListings(api, session),
			Bookings: bookings,
		}, nil
	}
}

// Register instantiates the browsers registry and resources based on
// the d dependencies, and registers them as request handlers of the e
// engine. The metrics middleware is installed on e and its registry
// is exposed at /metrics, outside of the BasePath group which needs
// a browser session. Caller is responsible for starting and stopping
// the sweep of the returned registry.
func Register(e *gin.Engine, d Deps) (*browsers.Registry, error) {
	switch {
	case d.Identity == nil:
		return nil, errors.New("identity provider is required")
	case d.Tokens == nil:
		return nil, errors.New("tokens are required")
	case d.API == nil:
		return nil, errors.New("API client is required")
	}
	reg, err := browsers.New(d.NewFactory(), d.BrowsersOptions...)
	if err != nil {
		return nil, fmt.Errorf("creating browsers registry: %w", err)
	}
	metrics := gin.NewMetrics()
	if err := metrics.Register(reg.Collector()); err != nil {
		return nil, fmt.Errorf("registering browsers gauge: %w", err)
	}
	serdser.UseJSONNames()
	e.Use(metrics.Middleware())
	e.GET("/metrics", metrics.Handler())

	r := e.Group(BasePath, reg.Middleware())
	sessionrs.Register(r)
	vehiclesrs.Register(r)
	bookingsrs.Register(r)
	return reg, nil
}
