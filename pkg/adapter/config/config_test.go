// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goride/goride/pkg/adapter/config"
	"github.com/goride/goride/pkg/adapter/config/settings"
	"github.com/goride/goride/pkg/adapter/restful/gin/browsers"
)

const minimal = `
database:
  url: postgres://localhost/goride
identity:
  token-secret: 0123456789abcdef
`

func clearEnv(t *testing.T) {
	for _, k := range []string{
		config.EnvAPIURL, config.EnvDatabaseURL, config.EnvTokenSecret,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)
	c, err := config.Parse([]byte(minimal))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIBaseURL, c.API.BaseURL)
	assert.Equal(t, settings.Duration(10*time.Second), *c.API.Timeout)
	assert.Equal(t, settings.Duration(24*time.Hour), *c.Identity.TokenExpiry)
	assert.Equal(t, 15000, *c.Identity.HashIterations)
	assert.Equal(t, "scram-sha-256", c.Identity.AuthMethod)
	assert.Equal(t, ":8080", c.Gin.Address)
	assert.True(t, *c.Gin.Logger)
	assert.True(t, *c.Gin.Recovery)
	assert.False(t, *c.Gin.SecureCookie)
	assert.Equal(t, settings.Duration(30*time.Minute), *c.Sessions.IdleTimeout)
	assert.Equal(t, "@every 1m", c.Sessions.SweepSchedule)
	assert.Equal(t, browsers.DefaultMaxBrowsers, *c.Sessions.MaxBrowsers)
	assert.Nil(t, c.Usecases.Catalog.FetchTimeout)
	assert.Empty(t, c.Usecases.Catalog.Options())
	assert.Empty(t, c.Usecases.Bookings.Options())
}

func TestLoadSampleConfig(t *testing.T) {
	clearEnv(t)
	c, err := config.Load("../../../configs/sample-config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", c.API.BaseURL)
	assert.Equal(t, settings.Duration(15*time.Second), *c.Usecases.Catalog.FetchTimeout)
	assert.Len(t, c.Usecases.Bookings.Options(), 1)
	assert.Len(t, c.Sessions.Options(c.Gin.SecureCookie), 2)

	tokens, err := c.Identity.NewTokens()
	require.NoError(t, err)
	assert.NotNil(t, tokens)
	api, err := c.API.NewClient()
	require.NoError(t, err)
	assert.NotNil(t, api)
	assert.NotNil(t, c.Gin.NewEngine())
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvAPIURL, "https://api.example.com/v2")
	t.Setenv(config.EnvDatabaseURL, "postgres://db.example.com/goride")
	t.Setenv(config.EnvTokenSecret, "a-secret-from-the-environment")
	c, err := config.Parse([]byte(minimal))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v2", c.API.BaseURL)
	assert.Equal(t, "postgres://db.example.com/goride", c.Database.URL)
	assert.Equal(t, "a-secret-from-the-environment", c.Identity.TokenSecret)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(
		p, []byte(config.EnvTokenSecret+"=from-dot-env-file-123\n"), 0o600,
	))
	require.NoError(t, config.LoadDotEnv(p, filepath.Join(dir, "missing.env")))
	t.Cleanup(func() { os.Unsetenv(config.EnvTokenSecret) })
	c, err := config.Parse([]byte(minimal))
	require.NoError(t, err)
	assert.Equal(t, "from-dot-env-file-123", c.Identity.TokenSecret)
}

func TestParseRejectsInvalidSettings(t *testing.T) {
	clearEnv(t)
	for name, extra := range map[string]string{
		"unknown field":   "\nunknown: 1\n",
		"short secret":    "\nidentity:\n  token-secret: short\n",
		"bad scheme":      "\napi:\n  base-url: ftp://example.com\n",
		"timeout too big": "\napi:\n  timeout: 1h\n",
		"few iterations":  "\nidentity:\n  token-secret: 0123456789abcdef\n  hash-iterations: 10\n",
		"auth method":     "\nidentity:\n  token-secret: 0123456789abcdef\n  auth-method: md5\n",
		"bad schedule":    "\nsessions:\n  sweep-schedule: every minute\n",
		"bad duration":    "\nsessions:\n  idle-timeout: soon\n",
		"no browsers":     "\nsessions:\n  max-browsers: 0\n",
		"no database":     "\ndatabase:\n  url: \"\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			data := minimal + extra
			if name == "short secret" || name == "few iterations" || name == "auth method" {
				data = "database:\n  url: postgres://localhost/goride\n" + extra
			}
			if name == "no database" {
				data = "identity:\n  token-secret: 0123456789abcdef\n" + extra
			}
			_, err := config.Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestMarshalRedactsSecrets(t *testing.T) {
	clearEnv(t)
	c, err := config.Parse([]byte(`
database:
  url: postgres://app:s3cret@db:5432/goride
identity:
  token-secret: 0123456789abcdef
sessions:
  idle-timeout: 1h
`))
	require.NoError(t, err)
	data, err := c.Marshal()
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "s3cret")
	assert.NotContains(t, out, "0123456789abcdef")
	assert.Contains(t, out, "postgres://app:REDACTED@db:5432/goride")
	assert.Contains(t, out, "idle-timeout: 1h\n")
	assert.Equal(t, "0123456789abcdef", c.Identity.TokenSecret, "c is kept")

	restored := strings.Replace(
		out, "token-secret: REDACTED", "token-secret: 0123456789abcdef", 1,
	)
	c2, err := config.Parse([]byte(restored))
	require.NoError(t, err)
	assert.Equal(t, *c.Sessions.IdleTimeout, *c2.Sessions.IdleTimeout)
	assert.Equal(t, *c.API.Timeout, *c2.API.Timeout)
	assert.Equal(t, c.Gin.Address, c2.Gin.Address)

	c.Database.URL = "host=db user=app password=s3cret dbname=goride"
	assert.Equal(t,
		"host=db user=app password=REDACTED dbname=goride",
		c.Redacted().Database.URL,
	)
}

func ExampleParse() {
	os.Unsetenv(config.EnvAPIURL)
	os.Unsetenv(config.EnvDatabaseURL)
	os.Unsetenv(config.EnvTokenSecret)
	c, err := config.Parse([]byte(`
database:
  url: postgres://localhost/goride
identity:
  token-secret: 0123456789abcdef
  token-expiry: 2h
sessions:
  idle-timeout: 90m
`))
	fmt.Println(err)
	fmt.Println(c.Identity.TokenExpiry, c.Sessions.IdleTimeout, c.API.Timeout)
	// Output:
	// <nil>
	// 2h 1h30m 10s
}
