// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package browsers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/goride/goride/pkg/core/log"
)

// CookieName is the name of the cookie which identifies a browser.
const CookieName = "goride_sid"

// Default settings of a Registry.
const (
	DefaultIdleTimeout   = 30 * time.Minute
	DefaultSweepSchedule = "@every 1m"
	DefaultMaxBrowsers   = 10000
)

const browserKey = "goride.browser"

// Registry maps browser ids to their Browser instances.
type Registry struct {
	factory     Factory
	idleTimeout time.Duration
	maxBrowsers int
	secure      bool
	now         func() time.Time

	mu       sync.Mutex
	browsers map[uuid.UUID]*Browser
	cron     *cron.Cron
}

// Option represents a functional option for the Registry.
type Option func(r *Registry) error

// WithIdleTimeout sets the idle duration after which a browser is
// removed by Sweep.
func WithIdleTimeout(d time.Duration) Option {
	return func(r *Registry) error {
		if d <= 0 {
			return errors.New("idle timeout must be positive")
		}
		r.idleTimeout = d
		return nil
	}
}

// WithMaxBrowsers caps the number of live browsers. When a new browser
// is created at the cap, the least recently seen browser is evicted.
func WithMaxBrowsers(n int) Option {
	return func(r *Registry) error {
		if n <= 0 {
			return errors.New("max browsers must be positive")
		}
		r.maxBrowsers = n
		return nil
	}
}

// WithSecureCookie marks the browser cookie as Secure, so it is only
// sent over https.
func WithSecureCookie(secure bool) Option {
	return func(r *Registry) error {
		r.secure = secure
		return nil
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) error {
		if now == nil {
			return errors.New("clock must not be nil")
		}
		r.now = now
		return nil
	}
}

// New instantiates an empty Registry which creates browsers with f.
func New(f Factory, opts ...Option) (*Registry, error) {
	if f == nil {
		return nil, errors.New("factory must not be nil")
	}
	r := &Registry{
		factory:  f,
		browsers: make(map[uuid.UUID]*Browser),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if r.idleTimeout == 0 {
		r.idleTimeout = DefaultIdleTimeout
	}
	if r.maxBrowsers == 0 {
		r.maxBrowsers = DefaultMaxBrowsers
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r, nil
}

// Middleware finds the browser of each request by its cookie, creating
// a new browser (and cookie) when the cookie is missing, malformed, or
// belongs to a swept browser. Handlers obtain it by From.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := r.now()
		var b *Browser
		if v, err := c.Cookie(CookieName); err == nil {
			if id, err := uuid.Parse(v); err == nil {
				b = r.lookup(id)
			}
		}
		if b == nil {
			var err error
			b, err = r.create(c.Request.Context())
			if err != nil {
				log.Error(
					c.Request.Context(), "cannot create browser",
					log.Err("err", err),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"detail": "cannot create browser session",
				})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, b.ID.String(), 0, "/", "", r.secure, true)
		}
		b.touch(now)
		c.Set(browserKey, b)
		c.Next()
	}
}

// From returns the browser which is attached to c by the Middleware.
// It panics if the Middleware is not installed for the c route.
func From(c *gin.Context) *Browser {
	return c.MustGet(browserKey).(*Browser)
}

func (r *Registry) lookup(id uuid.UUID) *Browser {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.browsers[id]
}

func (r *Registry) create(ctx context.Context) (*Browser, error) {
	id := uuid.New()
	b, err := r.factory(id)
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	b.ID = id
	b.touch(r.now())
	var evicted []*Browser
	r.mu.Lock()
	for len(r.browsers) >= r.maxBrowsers {
		evicted = append(evicted, r.evictLocked())
	}
	r.browsers[id] = b
	r.mu.Unlock()
	for _, old := range evicted {
		old.close()
	}
	if n := len(evicted); n > 0 {
		log.Warn(
			ctx, "browser limit is reached, evicting the least recently seen",
			slog.Int("count", n), slog.Int("max", r.maxBrowsers),
		)
	}
	return b, nil
}

// evictLocked removes the least recently seen browser. The r.mu must
// be held and r.browsers must not be empty.
func (r *Registry) evictLocked() *Browser {
	var oldest *Browser
	for _, b := range r.browsers {
		if oldest == nil || b.lastSeen.Load() < oldest.lastSeen.Load() {
			oldest = b
		}
	}
	delete(r.browsers, oldest.ID)
	return oldest
}

// Len returns the number of live browsers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.browsers)
}

// Sweep removes the browsers which have been idle for the idle timeout
// or longer, and returns their count.
func (r *Registry) Sweep(ctx context.Context) int {
	now := r.now()
	var idle []*Browser
	r.mu.Lock()
	for id, b := range r.browsers {
		if b.idleSince(now) >= r.idleTimeout {
			delete(r.browsers, id)
			idle = append(idle, b)
		}
	}
	r.mu.Unlock()
	for _, b := range idle {
		b.close()
	}
	if n := len(idle); n > 0 {
		log.Debug(ctx, "idle browsers are swept", slog.Int("count", n))
	}
	return len(idle)
}

// Start schedules Sweep with the given cron schedule, such as
// "@every 1m" or a standard five fields cron expression.
func (r *Registry) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		r.Sweep(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling sweep %q: %w", schedule, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return errors.New("sweep is already started")
	}
	r.cron = c
	c.Start()
	return nil
}

// Stop stops the sweep job, waits for a running sweep to return, and
// closes all browsers.
func (r *Registry) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	bs := r.browsers
	r.browsers = make(map[uuid.UUID]*Browser)
	r.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
	for _, b := range bs {
		b.close()
	}
}

// Collector returns a gauge which reports the number of live browsers.
func (r *Registry) Collector() prometheus.Collector {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "goride",
		Name:      "browsers_active",
		Help:      "Number of browser sessions kept by the facade.",
	}, func() float64 {
		return float64(r.Len())
	})
}
