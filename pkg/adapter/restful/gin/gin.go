// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin is the browser facade adapter. It wraps the gin-gonic
// engine, so other packages (e.g., config and routes) can instantiate
// it with the request logging, recovery, and metrics middlewares
// without depending on gin-gonic names directly.
package gin

import "github.com/gin-gonic/gin"

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// New instantiates a gin-gonic engine which uses the given middlewares
// for all of its routes. Handlers may pass their *gin.Context as a
// context.Context, since it falls back to the request context.
func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.ContextWithFallback = true
	e.Use(middlewares...)
	return e
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// SetReleaseMode switches gin-gonic to its release mode, so routes
// are not printed on the standard output during registration.
func SetReleaseMode() {
	gin.SetMode(gin.ReleaseMode)
}
