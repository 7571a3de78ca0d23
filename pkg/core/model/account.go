// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Account is a user of the local identity provider. PasswordHash keeps
// a SCRAM formatted hash string (see pkg/core/scram.Hasher) and never
// the plaintext password.
type Account struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PhotoURL     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session returns the identity which is exposed for an account.
func (a *Account) Session() *Session {
	return &Session{
		Email:       a.Email,
		DisplayName: a.DisplayName,
		PhotoURL:    a.PhotoURL,
	}
}
