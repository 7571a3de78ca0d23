// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package browsers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goride/goride/pkg/adapter/restful/gin/browsers"
	"github.com/goride/goride/pkg/core/usecase/sessionuc"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newEngine(t *testing.T, opts ...browsers.Option) (*gin.Engine, *browsers.Registry, *int) {
	gin.SetMode(gin.TestMode)
	created := 0
	r, err := browsers.New(func(uuid.UUID) (*browsers.Browser, error) {
		created++
		return &browsers.Browser{Session: sessionuc.New()}, nil
	}, opts...)
	require.NoError(t, err)
	e := gin.New()
	e.Use(r.Middleware())
	e.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, browsers.From(c).ID.String())
	})
	return e, r, &created
}

func get(e *gin.Engine, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	e.ServeHTTP(w, req)
	return w
}

func sidCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == browsers.CookieName {
			return c
		}
	}
	require.Fail(t, "no browser cookie is set")
	return nil
}

func TestMiddlewareKeepsBrowserByCookie(t *testing.T) {
	e, r, created := newEngine(t)

	w := get(e, nil)
	require.Equal(t, http.StatusOK, w.Code)
	c := sidCookie(t, w)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, c.Value, w.Body.String())

	w2 := get(e, c)
	assert.Equal(t, c.Value, w2.Body.String(), "same browser expected")
	assert.Empty(t, w2.Result().Cookies(), "cookie must not be renewed")
	assert.Equal(t, 1, *created)
	assert.Equal(t, 1, r.Len())

	for _, v := range []string{"not-a-uuid", uuid.NewString()} {
		w3 := get(e, &http.Cookie{Name: browsers.CookieName, Value: v})
		assert.NotEqual(t, v, w3.Body.String())
		assert.NotEqual(t, c.Value, w3.Body.String())
	}
	assert.Equal(t, 3, *created)
}

func TestFactoryFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, err := browsers.New(func(uuid.UUID) (*browsers.Browser, error) {
		return nil, errors.New("boom")
	})
	require.NoError(t, err)
	e := gin.New()
	e.Use(r.Middleware())
	e.GET("/whoami", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w := get(e, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, r.Len())
}

func TestSweepRemovesIdleBrowsers(t *testing.T) {
	clk := &clock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	e, r, _ := newEngine(
		t,
		browsers.WithClock(clk.Now),
		browsers.WithIdleTimeout(10*time.Minute),
	)
	ctx := context.Background()

	old := sidCookie(t, get(e, nil))
	clk.Advance(6 * time.Minute)
	fresh := sidCookie(t, get(e, nil))
	clk.Advance(5 * time.Minute)

	assert.Equal(t, 1, r.Sweep(ctx))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, fresh.Value, get(e, fresh).Body.String())
	assert.NotEqual(t, old.Value, get(e, old).Body.String())
	assert.Zero(t, r.Sweep(ctx))
}

func TestStartAndStop(t *testing.T) {
	_, r, _ := newEngine(t)
	assert.Error(t, r.Start("not a schedule"))
	require.NoError(t, r.Start("@every 1h"))
	assert.Error(t, r.Start("@every 1h"), "second start must fail")
	r.Stop()
	assert.Zero(t, r.Len())
}

func TestNewValidation(t *testing.T) {
	_, err := browsers.New(nil)
	assert.Error(t, err)
	f := func(uuid.UUID) (*browsers.Browser, error) {
		return &browsers.Browser{}, nil
	}
	_, err = browsers.New(f, browsers.WithIdleTimeout(0))
	assert.Error(t, err)
	_, err = browsers.New(f, browsers.WithClock(nil))
	assert.Error(t, err)
	_, err = browsers.New(f, browsers.WithMaxBrowsers(0))
	assert.Error(t, err)
}

func TestMaxBrowsersEvictsLeastRecentlySeen(t *testing.T) {
	clk := &clock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	e, r, created := newEngine(
		t,
		browsers.WithClock(clk.Now),
		browsers.WithMaxBrowsers(2),
	)

	first := sidCookie(t, get(e, nil))
	clk.Advance(time.Minute)
	second := sidCookie(t, get(e, nil))
	clk.Advance(time.Minute)
	assert.Equal(t, first.Value, get(e, first).Body.String())
	clk.Advance(time.Minute)

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, get(e, nil).Code)
		assert.LessOrEqual(t, r.Len(), 2)
	}
	assert.Equal(t, 52, *created)
	assert.Equal(t, 2, r.Len())
	assert.NotEqual(t, second.Value, get(e, second).Body.String(), "evicted")
}

func TestMaxBrowsersKeepsRecentBrowser(t *testing.T) {
	clk := &clock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)}
	e, r, _ := newEngine(
		t,
		browsers.WithClock(clk.Now),
		browsers.WithMaxBrowsers(2),
	)

	first := sidCookie(t, get(e, nil))
	clk.Advance(time.Minute)
	second := sidCookie(t, get(e, nil))
	clk.Advance(time.Minute)
	assert.Equal(t, first.Value, get(e, first).Body.String())
	clk.Advance(time.Minute)

	get(e, nil)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, first.Value, get(e, first).Body.String(), "recently seen")
	assert.NotEqual(t, second.Value, get(e, second).Body.String())
}
