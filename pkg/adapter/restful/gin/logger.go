// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package gin

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goride/goride/pkg/core/log"
)

// RequestIDHeader is the header which carries the request id. A valid
// uuid received from the client is kept, otherwise, a new one is made.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "goride.request-id"

// Logger returns a middleware which binds the request id to the
// request context (see log.WithAttrs) and logs one slog record for
// each request after it is handled. Server errors are logged at the error
// level, client errors at the warning level, and others at the info
// level.
func Logger() HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(log.WithAttrs(
			c.Request.Context(), slog.String("request_id", rid),
		))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if errs := c.Errors.String(); errs != "" {
			attrs = append(attrs, slog.String("errors", errs))
		}
		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(ctx, "request completed", attrs...)
		case status >= http.StatusBadRequest:
			log.Warn(ctx, "request completed", attrs...)
		default:
			log.Info(ctx, "request completed", attrs...)
		}
	}
}

// RequestID returns the id which is assigned to the c request by the
// Logger middleware, or an empty string if it is not installed.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
