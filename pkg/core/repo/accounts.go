// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/goride/goride/pkg/core/model"
)

// AccountsConnQueryer interface indicates the accounts queries which
// may be executed with a connection.
type AccountsConnQueryer interface {
	AccountsQueryer
}

// AccountsTxQueryer interface indicates the accounts queries which may
// be executed within an ongoing transaction.
type AccountsTxQueryer interface {
	AccountsQueryer
}

// AccountsQueryer lists the accounts queries which may be executed
// either with a connection or a transaction.
type AccountsQueryer interface {
	// Create inserts the a account. If its email is taken, a
	// cerr.Conflict error will be returned.
	Create(ctx context.Context, a *model.Account) error

	// ByEmail finds an account by its email address. If no account
	// exists, a cerr.NotFound error will be returned.
	ByEmail(ctx context.Context, email string) (*model.Account, error)
}

// Accounts is the repository of the local identity provider accounts.
// It wraps a Conn or Tx and produces the relevant queryer, so the use
// cases layer can decide about the transaction boundaries.
type Accounts interface {
	Conn(Conn) AccountsConnQueryer
	Tx(Tx) AccountsTxQueryer
}
