// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package accountsrp implements the repo.Accounts interface for the
// PostgreSQL database, keeping accounts of the local identity provider
// in the accounts table (see postgres.Schema).
package accountsrp

import (
	"context"

	"github.com/goride/goride/pkg/adapter/db/postgres"
	"github.com/goride/goride/pkg/core/model"
	"github.com/goride/goride/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (accounts *Repo) Conn(c repo.Conn) repo.AccountsConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Create(ctx context.Context, a *model.Account) error {
	return Create(ctx, cq.Conn, a)
}

func (cq connQueryer) ByEmail(ctx context.Context, email string) (*model.Account, error) {
	return ByEmail(ctx, cq.Conn, email)
}

type txQueryer struct {
	*postgres.Tx
}

func (accounts *Repo) Tx(tx repo.Tx) repo.AccountsTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Create(ctx context.Context, a *model.Account) error {
	return Create(ctx, tq.Tx, a)
}

func (tq txQueryer) ByEmail(ctx context.Context, email string) (*model.Account, error) {
	return ByEmail(ctx, tq.Tx, email)
}
