// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo defines the interfaces which are implemented by the
// adapters layer and used by the use cases: the database Pool, Conn,
// and Tx abstractions, the accounts repository, and the collaborators
// which are reached over the network (the vehicles and bookings APIs,
// the identity provider, and the bearer tokens).
package repo

import "context"

// Pool hands out database connections to handlers. A connection is
// only valid while its handler runs.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}

// ConnHandler uses the c connection and returns its failure.
type ConnHandler func(ctx context.Context, c Conn) error

// TxHandler uses the tx transaction. Returning a non-nil error rolls
// the transaction back, while a nil error commits it.
type TxHandler func(ctx context.Context, tx Tx) error

// Queryer runs statements which return no rows, like DDL commands.
// Rows are read through the typed repositories (e.g., Accounts).
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
}

// Conn is a single database connection. It must not be used
// concurrently.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error
	IsConn()
}

// Tx is a READ-COMMITTED transaction which is open on a Conn.
// The accounts registration reads and inserts in one Tx, so two
// concurrent registrations of an email cannot both succeed.
type Tx interface {
	Queryer
	IsTx()
}
