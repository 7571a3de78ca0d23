// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/goride/goride/pkg/adapter/auth/jwt"
	"github.com/goride/goride/pkg/adapter/config/settings"
	"github.com/goride/goride/pkg/adapter/db/postgres"
	"github.com/goride/goride/pkg/adapter/hash/scram"
	"github.com/goride/goride/pkg/adapter/restclient"
	"github.com/goride/goride/pkg/adapter/restful/gin"
	"github.com/goride/goride/pkg/adapter/restful/gin/browsers"
	"github.com/goride/goride/pkg/core/repo"
	scrami "github.com/goride/goride/pkg/core/scram"
	"github.com/goride/goride/pkg/core/usecase/bookingsuc"
	"github.com/goride/goride/pkg/core/usecase/identityuc"
	"github.com/goride/goride/pkg/core/usecase/vehiclesuc"
)

// Default values of optional settings.
const (
	DefaultAPIBaseURL    = "http://localhost:5000/api"
	DefaultTokenExpiry   = 24 * time.Hour
	DefaultAuthMethod    = "scram-sha-256"
	DefaultGinAddress    = ":8080"
	DefaultSweepSchedule = browsers.DefaultSweepSchedule
)

var (
	minTimeout = settings.Duration(100 * time.Millisecond)
	maxTimeout = settings.Duration(5 * time.Minute)
)

// API contains the remote vehicles and bookings API settings.
type API struct {
	BaseURL string             `yaml:"base-url"`
	Timeout *settings.Duration `yaml:"timeout,omitempty"`
}

// ValidateAndNormalize fills the default base URL and timeout and
// checks that the base URL is an absolute http(s) URL.
func (a *API) ValidateAndNormalize() error {
	if a.BaseURL == "" {
		a.BaseURL = DefaultAPIBaseURL
	}
	u, err := url.Parse(a.BaseURL)
	switch {
	case err != nil:
		return fmt.Errorf("parsing base-url: %w", err)
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		return fmt.Errorf("base-url %q is not an http(s) URL", a.BaseURL)
	}
	settings.Default(&a.Timeout, settings.Duration(restclient.DefaultTimeout))
	if err := settings.InRange(a.Timeout, minTimeout, maxTimeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}
	return nil
}

// NewClient instantiates the remote API client.
func (a API) NewClient() (*restclient.Client, error) {
	return restclient.New(
		a.BaseURL, restclient.WithTimeout(time.Duration(*a.Timeout)),
	)
}

// Database contains the PostgreSQL connection settings. The URL may
// be a postgres:// URL or a key=value connection string.
type Database struct {
	URL string `yaml:"url"`
}

// ValidateAndNormalize ensures that the database URL is provided.
func (d *Database) ValidateAndNormalize() error {
	if d.URL == "" {
		return errors.New("database url is required")
	}
	return nil
}

// ConnectionPool creates a database connection pool.
func (d Database) ConnectionPool(ctx context.Context) (*postgres.Pool, error) {
	p, err := postgres.NewPool(ctx, d.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres.NewPool: %w", err)
	}
	return p, nil
}

// Identity contains the local identity provider settings.
type Identity struct {
	// TokenSecret is the HMAC key of bearer tokens.
	TokenSecret string `yaml:"token-secret"`
	// TokenExpiry is the lifetime of bearer tokens.
	TokenExpiry *settings.Duration `yaml:"token-expiry,omitempty"`
	// HashIterations is the PBKDF2 iterations count of new password
	// hashes. Existing hashes keep their own iterations count.
	HashIterations *int `yaml:"hash-iterations,omitempty"`
	// AuthMethod specifies the password hashing method, either
	// scram-sha-1 or scram-sha-256 (default).
	AuthMethod string `yaml:"auth-method,omitempty"`

	hasher scrami.Hasher `yaml:"-"`
}

// ValidateAndNormalize checks the token secret length and the hash
// iterations count, and fills the defaults of optional settings.
func (id *Identity) ValidateAndNormalize() error {
	if len(id.TokenSecret) < jwt.MinSecretLength {
		return fmt.Errorf(
			"token-secret must have at least %d bytes",
			jwt.MinSecretLength,
		)
	}
	settings.Default(&id.TokenExpiry, settings.Duration(DefaultTokenExpiry))
	if *id.TokenExpiry <= 0 {
		return errors.New("token-expiry must be positive")
	}
	settings.Default(&id.HashIterations, identityuc.DefaultHashIterations)
	if *id.HashIterations < identityuc.MinHashIterations {
		return fmt.Errorf(
			"hash-iterations must be at least %d",
			identityuc.MinHashIterations,
		)
	}
	if id.AuthMethod == "" {
		id.AuthMethod = DefaultAuthMethod
	}
	switch id.AuthMethod {
	case "scram-sha-1":
		id.hasher = scram.SHA1()
	case "scram-sha-256":
		id.hasher = scram.SHA256()
	default:
		return fmt.Errorf("unsupported auth-method %q", id.AuthMethod)
	}
	return nil
}

// NewTokens instantiates the bearer tokens issuer and verifier.
func (id Identity) NewTokens() (*jwt.Tokens, error) {
	return jwt.New(id.TokenSecret, time.Duration(*id.TokenExpiry))
}

// NewUseCase instantiates the identity use case based on the settings.
func (id Identity) NewUseCase(
	p repo.Pool, a repo.Accounts, t repo.Tokens,
) (*identityuc.UseCase, error) {
	return identityuc.New(
		p, a, id.hasher, t,
		identityuc.WithHashIterations(*id.HashIterations),
	)
}

// Gin contains the gin-gonic engine settings.
type Gin struct {
	Address      string // listening address, like :8080
	Logger       *bool  // Whether to register the request logger
	Recovery     *bool  // Whether to register the gin.Recovery()
	SecureCookie *bool  `yaml:"secure-cookie,omitempty"`
}

func (g *Gin) normalize() {
	if g.Address == "" {
		g.Address = DefaultGinAddress
	}
	settings.Default(&g.Logger, true)
	settings.Default(&g.Recovery, true)
	settings.Default(&g.SecureCookie, false)
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Sessions contains the browser sessions settings.
type Sessions struct {
	// IdleTimeout is the idle duration after which a browser session
	// is forgotten.
	IdleTimeout *settings.Duration `yaml:"idle-timeout,omitempty"`
	// SweepSchedule is the cron schedule of idle sessions removal,
	// like "@every 1m" or "*/5 * * * *".
	SweepSchedule string `yaml:"sweep-schedule,omitempty"`
	// MaxBrowsers caps the live browser sessions. The least recently
	// seen session is evicted when a new one is needed at the cap.
	MaxBrowsers *int `yaml:"max-browsers,omitempty"`
}

// ValidateAndNormalize fills the defaults and parses the schedule.
func (s *Sessions) ValidateAndNormalize() error {
	settings.Default(&s.IdleTimeout, settings.Duration(browsers.DefaultIdleTimeout))
	if *s.IdleTimeout <= 0 {
		return errors.New("idle-timeout must be positive")
	}
	settings.Default(&s.MaxBrowsers, browsers.DefaultMaxBrowsers)
	if err := settings.InRange(s.MaxBrowsers, 1, 1_000_000); err != nil {
		return fmt.Errorf("max-browsers: %w", err)
	}
	if s.SweepSchedule == "" {
		s.SweepSchedule = DefaultSweepSchedule
	}
	if _, err := cron.ParseStandard(s.SweepSchedule); err != nil {
		return fmt.Errorf("parsing sweep-schedule: %w", err)
	}
	return nil
}

// Options returns the browsers registry options.
func (s Sessions) Options(secureCookie *bool) []browsers.Option {
	opts := []browsers.Option{
		browsers.WithIdleTimeout(time.Duration(*s.IdleTimeout)),
		browsers.WithMaxBrowsers(*s.MaxBrowsers),
	}
	if secureCookie != nil {
		opts = append(opts, browsers.WithSecureCookie(*secureCookie))
	}
	return opts
}

// Usecases contains the configuration settings for all use cases.
// Fields are defined as pointers, so it is possible to detect if they
// are or are not initialized. Missing timeouts mean that only the
// request context and the API client timeout bound the operations.
type Usecases struct {
	Catalog  Catalog
	Bookings Bookings
}

// Catalog contains the catalog store settings.
type Catalog struct {
	FetchTimeout *settings.Duration `yaml:"fetch-timeout,omitempty"`
}

// Bookings contains the bookings use case settings.
type Bookings struct {
	SubmitTimeout *settings.Duration `yaml:"submit-timeout,omitempty"`
}

// ValidateAndNormalize checks the optional timeouts ranges.
func (u *Usecases) ValidateAndNormalize() error {
	err := settings.InRange(u.Catalog.FetchTimeout, minTimeout, maxTimeout)
	if err != nil {
		return fmt.Errorf("catalog fetch-timeout: %w", err)
	}
	err = settings.InRange(u.Bookings.SubmitTimeout, minTimeout, maxTimeout)
	if err != nil {
		return fmt.Errorf("bookings submit-timeout: %w", err)
	}
	return nil
}

// Options returns the catalog store options.
func (c Catalog) Options() []vehiclesuc.CatalogOption {
	if c.FetchTimeout == nil {
		return nil
	}
	return []vehiclesuc.CatalogOption{
		vehiclesuc.WithFetchTimeout(time.Duration(*c.FetchTimeout)),
	}
}

// Options returns the bookings use case options.
func (b Bookings) Options() []bookingsuc.Option {
	if b.SubmitTimeout == nil {
		return nil
	}
	return []bookingsuc.Option{
		bookingsuc.WithSubmitTimeout(time.Duration(*b.SubmitTimeout)),
	}
}
