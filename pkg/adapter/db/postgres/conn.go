// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/goride/goride/pkg/core/repo"
)

// session is embedded by Conn and Tx and wraps a *gorm.DB which is
// bound to one connection (or one transaction on it).
type session struct {
	db *gorm.DB
}

// Exec runs sql with args and returns the number of affected rows.
// Without args, sql may contain multiple semicolon separated
// statements. GORM accepts ? and @name placeholders besides $1.
func (s session) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	res := s.db.WithContext(ctx).Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

// GORM returns the wrapped *gorm.DB in a session which uses ctx.
// Repositories use it for their typed queries.
func (s session) GORM(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// Conn is a connection which is acquired from a Pool.
type Conn struct {
	session
}

// Tx begins a transaction, passes it to f, and commits it if f
// returns nil. Otherwise, or if f panics, the transaction is rolled
// back and the returned error reports both failures.
func (c *Conn) Tx(ctx context.Context, f repo.TxHandler) (err error) {
	gtx := c.db.WithContext(ctx).Begin()
	if err = gtx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		r := recover()
		switch {
		case r != nil:
			err = fmt.Errorf("panicked: %v", r)
		case err == nil:
			if err = gtx.Commit().Error; err != nil {
				err = fmt.Errorf("commit: %w", err)
			}
			return
		default:
			err = fmt.Errorf("handler: %w", err)
		}
		if err2 := gtx.Rollback().Error; err2 != nil {
			err = fmt.Errorf("%w, rollback: %w", err, err2)
		}
	}()
	return f(ctx, &Tx{session{db: gtx}})
}

func (c *Conn) IsConn() {
}

// Tx is an open transaction. It embeds the GORM session, so the
// repositories can use it exactly like a Conn.
type Tx struct {
	session
}

func (tx *Tx) IsTx() {
}

// Queryer is the type constraint of the generic repository functions
// which may run either with a Conn or a Tx.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}
