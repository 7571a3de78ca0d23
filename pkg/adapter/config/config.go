// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the goride to instantiate different
// components, from the adapter or use cases layers, using those loaded
// configuration settings.
// The parsed and validated configurations are passed to their ultimate
// components as a series of individual params (for the mandatory items)
// and a series of functional options (for the optional items), so they
// are validated again by the relevant end-components.
//
// A few settings may be overridden by environment variables, which in
// turn may be loaded from a .env file (see LoadDotEnv):
//
//	GORIDE_API_URL       api.base-url
//	DATABASE_URL         database.url
//	GORIDE_TOKEN_SECRET  identity.token-secret
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goride/goride/pkg/adapter/db/postgres"
	"github.com/goride/goride/pkg/adapter/db/postgres/accountsrp"
	"github.com/goride/goride/pkg/adapter/restful/gin/routes"
)

// Names of the environment variables which override settings.
const (
	EnvAPIURL      = "GORIDE_API_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvTokenSecret = "GORIDE_TOKEN_SECRET"
)

// Config contains all settings which are required by different parts
// of the project, such as adapters or use cases. It is preferred to
// implement Config with primitive fields or other structs which are
// defined locally, not models or structs which are defined in lower
// layers, so the configuration format can be kept intact while other
// layers change freely.
type Config struct {
	API      API      // Remote vehicles and bookings API settings
	Database Database // PostgreSQL database of the accounts
	Identity Identity // Local identity provider settings
	Gin      Gin      // Gin-Gonic instantiation settings
	Sessions Sessions // Browser sessions settings
	Usecases Usecases // Supported use cases configuration settings
}

// LoadDotEnv loads environment variables from the given .env files
// (or the .env file of the working directory if no path is given)
// without overriding the variables which are set already. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		err := godotenv.Load(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %q: %w", p, err)
		}
	}
	return nil
}

// Load reads, parses, and validates the configuration file at path.
// See Parse for details.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals the data byte slice and loads a Config instance.
// Unknown settings are rejected, so typos are reported instead of
// being ignored silently, while missing settings take their default
// values. The environment variables override their settings before
// the loaded Config is validated and normalized.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	c.overrideFromEnv()
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

func (c *Config) overrideFromEnv() {
	if v, ok := os.LookupEnv(EnvAPIURL); ok {
		c.API.BaseURL = v
	}
	if v, ok := os.LookupEnv(EnvDatabaseURL); ok {
		c.Database.URL = v
	}
	if v, ok := os.LookupEnv(EnvTokenSecret); ok {
		c.Identity.TokenSecret = v
	}
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It can also modify
// settings in order to normalize them or replace some zero values with
// their expected default values (if any).
func (c *Config) ValidateAndNormalize() error {
	if err := c.API.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating api settings: %w", err)
	}
	if err := c.Database.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating database settings: %w", err)
	}
	if err := c.Identity.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating identity settings: %w", err)
	}
	c.Gin.normalize()
	if err := c.Sessions.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating sessions settings: %w", err)
	}
	if err := c.Usecases.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating use cases settings: %w", err)
	}
	return nil
}

// ConnectionPool creates a database connection pool using the
// connection information which are kept in the `c` settings.
func (c *Config) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	return c.Database.ConnectionPool(ctx)
}

// RouteDeps instantiates the shared components of the browser facade,
// namely the tokens, identity use case (storing accounts in p), and the
// remote API client, besides the options of per-browser use cases.
func (c *Config) RouteDeps(p *postgres.Pool) (routes.Deps, error) {
	tokens, err := c.Identity.NewTokens()
	if err != nil {
		return routes.Deps{}, fmt.Errorf("creating tokens: %w", err)
	}
	identity, err := c.Identity.NewUseCase(p, accountsrp.New(), tokens)
	if err != nil {
		return routes.Deps{}, fmt.Errorf("creating identity use case: %w", err)
	}
	api, err := c.API.NewClient()
	if err != nil {
		return routes.Deps{}, fmt.Errorf("creating API client: %w", err)
	}
	return routes.Deps{
		Identity:        identity,
		Tokens:          tokens,
		API:             api,
		CatalogOptions:  c.Usecases.Catalog.Options(),
		BookingsOptions: c.Usecases.Bookings.Options(),
		BrowsersOptions: c.Sessions.Options(c.Gin.SecureCookie),
	}, nil
}
