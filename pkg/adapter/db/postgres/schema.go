// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/goride/goride/pkg/core/repo"
)

// Schema contains the DDL statements of the local identity provider
// tables. Vehicles and bookings are kept by the remote backend and have
// no tables here. Statements are idempotent, so Schema may be executed
// on an initialized database again.
const Schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL,
	display_name  TEXT NOT NULL,
	photo_url     TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_key ON accounts (email);
`

// CreateSchema executes the Schema statements in a transaction.
func CreateSchema(ctx context.Context, p *Pool) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := tx.Exec(ctx, Schema); err != nil {
				return fmt.Errorf("creating tables: %w", err)
			}
			return nil
		})
	})
}
