// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sessionrs realizes the accounts and session resources,
// allowing a browser to register, sign in, observe its identity, and
// sign out.
package sessionrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/goride/goride/pkg/adapter/restful/gin/browsers"
	"github.com/goride/goride/pkg/adapter/restful/gin/serdser"
	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
)

type resource struct {
}

// Register instantiates a resource and registers its REST APIs:
//  1. POST /accounts in order to register and sign in,
//  2. POST /session in order to sign in,
//  3. GET /session in order to query the identity, and
//  4. DELETE /session in order to sign out.
func Register(r *gin.RouterGroup) {
	rs := &resource{}
	r.POST("accounts", rs.CreateAccount)
	r.POST("session", rs.SignIn)
	r.GET("session", rs.GetSession)
	r.DELETE("session", rs.SignOut)
}

type registerReq struct {
	Email       string `json:"email" binding:"max=254"`
	Password    string `json:"password" binding:"max=128"`
	DisplayName string `json:"displayName" binding:"max=100"`
	PhotoURL    string `json:"photoUrl" binding:"max=2048"`
}

type signInReq struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=128"`
}

// SessionResp is the body of session responses. Identity is null
// when no account is signed in.
type SessionResp struct {
	Identity  *model.Session `json:"identity"`
	Resolving bool           `json:"resolving"`
}

func (rs *resource) CreateAccount(c *gin.Context) {
	req := &registerReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}
	b := browsers.From(c)
	s, err := b.Auth.Register(
		c, req.Email, req.Password, req.DisplayName, req.PhotoURL,
	)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SessionResp{Identity: s})
}

func (rs *resource) SignIn(c *gin.Context) {
	req := &signInReq{}
	if !serdser.Bind(c, req, binding.JSON) {
		return
	}
	b := browsers.From(c)
	s, err := b.Auth.SignIn(c, req.Email, req.Password)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionResp{Identity: s})
}

// GetSession resolves the signed-in identity again before reporting
// it, so a revoked account is signed out. If the identity provider is
// unreachable, the last known identity is reported.
func (rs *resource) GetSession(c *gin.Context) {
	b := browsers.From(c)
	if _, err := b.Auth.Refresh(c); err != nil {
		log.Warn(c, "cannot refresh the identity", log.Err("err", err))
	}
	c.JSON(http.StatusOK, SessionResp{
		Identity:  b.Session.Identity(),
		Resolving: b.Session.IsResolving(),
	})
}

func (rs *resource) SignOut(c *gin.Context) {
	b := browsers.From(c)
	if err := b.Session.SignOut(c); err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
