// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer starts a temporary postgres:16 container for the
// integration test suites and returns a *postgres.Pool which is
// connected to it, with the accounts tables already created.
//
// Containers are started with the docker API of DOCKER_HOST, e.g.,
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock for a rootless
// podman service. Tests are skipped if DOCKER_HOST is not set.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/goride/goride/pkg/adapter/db/postgres"
)

const dbmsVersion = "16"

// sqlStateStartingUp is reported while the database system is
// starting up and cannot accept connections yet.
const sqlStateStartingUp = "57P03"

// New starts the container and connects to it, giving up after the
// timeout. The container and the pool are released by t.Cleanup.
func New(t *testing.T, timeout time.Duration) *postgres.Pool {
	t.Helper()
	if os.Getenv("DOCKER_HOST") == "" {
		t.Skip("DOCKER_HOST is not set, skipping integration tests")
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(ctx, dbmsVersion)
	require.NoError(t, err, "failed to start a test database")
	t.Cleanup(func() {
		err := pg.Shutdown(context.Background())
		require.NoError(t, err, "failed to shutdown the test database")
	})
	pool := connect(ctx, t, pg.ConnectionString())
	t.Cleanup(func() {
		require.NoError(t, pool.Close(), "failed to close the pool")
	})
	err = postgres.CreateSchema(ctx, pool)
	require.NoError(t, err, "cannot create the accounts schema")
	return pool
}

// connect retries while the server is starting up or refuses
// connections, until ctx expires.
func connect(ctx context.Context, t *testing.T, url string) *postgres.Pool {
	for {
		pool, err := postgres.NewPool(ctx, url)
		if err == nil {
			return pool
		}
		var pgErr *pgconn.PgError
		var netErr net.Error
		retry := errors.As(err, &pgErr) && pgErr.SQLState() == sqlStateStartingUp
		retry = retry || errors.As(err, &netErr)
		if !retry || ctx.Err() != nil {
			require.NoError(t, err, "cannot connect to the test database")
		}
		time.Sleep(100 * time.Millisecond)
	}
}
