// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package identityuc contains the identity UseCase which implements a
// local identity provider. Accounts are stored in the database with a
// SCRAM hash of their passwords, and signed-in identities are given a
// bearer token which can be resolved back to their sessions.
package identityuc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goride/goride/pkg/core/cerr"
	"github.com/goride/goride/pkg/core/log"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/repo"
	"github.com/goride/goride/pkg/core/scram"
	"github.com/goride/goride/pkg/core/validation"
)

// User-facing messages of the identity UseCase.
const (
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgWeakPassword       = "Password must have an uppercase letter, a lowercase letter, and at least 6 characters"
	MsgNameRequired       = "Name is required"
	MsgInvalidPhotoURL    = "Photo URL must be a valid URL"
	MsgEmailTaken         = "Email is already registered"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInvalidToken       = "Session is expired, please login again"
)

// Credentials is the outcome of a successful registration or sign-in.
type Credentials struct {
	Session *model.Session
	Token   string
}

// UseCase represents the identity use case. It holds a database
// connection pool, the accounts repository, a SCRAM hasher for the
// passwords, and the bearer tokens issuer.
type UseCase struct {
	pool     repo.Pool
	accounts repo.Accounts
	hasher   scram.Hasher
	tokens   repo.Tokens

	hashIters int
	now       func() time.Time
}

// New instantiates an identity use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, a repo.Accounts, h scram.Hasher, t repo.Tokens,
	opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, accounts: a, hasher: h, tokens: t}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.hashIters == 0 {
		uc.hashIters = DefaultHashIterations
	}
	if uc.now == nil {
		uc.now = time.Now
	}
	return uc, nil
}

// Register use case creates a new account and signs it in. The email
// and password are validated (see validation.Email and Password) and
// all invalid fields are reported together by a cerr.BadRequest error
// wrapping a cerr.FieldErrors. A taken email address is reported by a
// cerr.Conflict error. The photoURL is optional.
func (uc *UseCase) Register(
	ctx context.Context, email, password, displayName, photoURL string,
) (*Credentials, error) {
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	fe := cerr.FieldErrors{}
	if !validation.Email(email) {
		fe["email"] = MsgInvalidEmail
	}
	if !validation.Password(password).IsValid {
		fe["password"] = MsgWeakPassword
	}
	if displayName == "" {
		fe["displayName"] = MsgNameRequired
	}
	if photoURL != "" && !validation.ImageURL(photoURL) {
		fe["photoUrl"] = MsgInvalidPhotoURL
	}
	if len(fe) > 0 {
		return nil, cerr.BadRequest(fe)
	}
	hash, err := uc.hasher.Hash(password, "", uc.hashIters)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	a := &model.Account{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PhotoURL:     photoURL,
		PasswordHash: hash,
		CreatedAt:    uc.now().UTC(),
	}
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return uc.accounts.Conn(c).Create(ctx, a)
	})
	switch {
	case cerr.Is(err, http.StatusConflict):
		return nil, cerr.Conflict(errors.New(MsgEmailTaken))
	case err != nil:
		return nil, fmt.Errorf("creating account: %w", err)
	}
	log.Info(
		ctx, "account is registered",
		slog.String("id", a.ID.String()), slog.String("email", a.Email),
	)
	return uc.issue(a.Session())
}

// SignIn use case verifies the password of the email account and signs
// it in. Unknown emails and wrong passwords are reported by the same
// cerr.Authentication error.
func (uc *UseCase) SignIn(ctx context.Context, email, password string) (*Credentials, error) {
	a, err := uc.byEmail(ctx, strings.TrimSpace(email))
	switch {
	case cerr.Is(err, http.StatusNotFound):
		return nil, cerr.Authentication(errors.New(MsgInvalidCredentials))
	case err != nil:
		return nil, err
	}
	ok, err := uc.hasher.Verify(password, a.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		log.Info(ctx, "wrong password", slog.String("email", a.Email))
		return nil, cerr.Authentication(errors.New(MsgInvalidCredentials))
	}
	return uc.issue(a.Session())
}

// Resolve use case verifies the token bearer credential and returns the
// identity which it was issued for. The account is loaded again, so
// its latest profile is returned and deleted accounts are rejected.
// Invalid or expired tokens are reported by a cerr.Authentication
// error.
func (uc *UseCase) Resolve(ctx context.Context, token string) (*model.Session, error) {
	s, err := uc.tokens.Verify(token)
	if err != nil {
		log.Debug(ctx, "rejected a bearer token", log.Err("err", err))
		return nil, cerr.Authentication(errors.New(MsgInvalidToken))
	}
	a, err := uc.byEmail(ctx, s.Email)
	switch {
	case cerr.Is(err, http.StatusNotFound):
		return nil, cerr.Authentication(errors.New(MsgInvalidToken))
	case err != nil:
		return nil, err
	}
	return a.Session(), nil
}

func (uc *UseCase) byEmail(ctx context.Context, email string) (a *model.Account, err error) {
	err = uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		a, err = uc.accounts.Conn(c).ByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("finding account: %w", err)
	}
	return a, nil
}

func (uc *UseCase) issue(s *model.Session) (*Credentials, error) {
	token, err := uc.tokens.Issue(s, uc.now())
	if err != nil {
		return nil, fmt.Errorf("issuing token: %w", err)
	}
	return &Credentials{Session: s, Token: token}, nil
}
