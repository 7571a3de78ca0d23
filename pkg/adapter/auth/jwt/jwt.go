// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwt issues and verifies the bearer tokens of the local
// identity provider as HS256 signed JSON Web Tokens. The subject of a
// token is the email of its identity and the profile of that identity
// is kept in the name and picture claims.
//
// It implements the github.com/goride/goride/pkg/core/repo.Tokens
// interface and relies on the github.com/golang-jwt/jwt/v5 module.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/goride/goride/pkg/core/model"
)

// Issuer name which is put in (and expected from) the iss claim.
const Issuer = "goride"

// MinSecretLength is the minimum accepted length of the HMAC secret.
const MinSecretLength = 16

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type claims struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Tokens issues tokens which expire after a fixed duration.
type Tokens struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// Option is a functional option for the Tokens.
type Option func(t *Tokens) error

// WithClock option replaces the time source which is used while
// verifying the tokens expiration. It is useful for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tokens) error {
		if now == nil {
			return errors.New("clock must be non-nil")
		}
		t.now = now
		return nil
	}
}

// New instantiates a Tokens which signs tokens with the secret key and
// makes them expire after the expiry duration.
func New(secret string, expiry time.Duration, opts ...Option) (*Tokens, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf(
			"secret must have at least %d bytes", MinSecretLength,
		)
	}
	if expiry <= 0 {
		return nil, fmt.Errorf("expiry (%v) is not positive", expiry)
	}
	t := &Tokens{secret: []byte(secret), expiry: expiry, now: time.Now}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return t, nil
}

// Issue creates a token for the s identity which is valid from now
// until the configured expiry duration elapses.
func (t *Tokens) Issue(s *model.Session, now time.Time) (string, error) {
	c := &claims{
		Name:    s.DisplayName,
		Picture: s.PhotoURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   s.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer, and validity period of the
// token and returns its identity. Expired tokens are reported by the
// ErrExpiredToken and all other failures by the ErrInvalidToken.
func (t *Tokens) Verify(token string) (*model.Session, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(
		token, c,
		func(*jwt.Token) (any, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	case c.Subject == "":
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return &model.Session{
		Email:       c.Subject,
		DisplayName: c.Name,
		PhotoURL:    c.Picture,
	}, nil
}
