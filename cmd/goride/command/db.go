// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goride/goride/pkg/adapter/config"
	"github.com/goride/goride/pkg/adapter/db/postgres"
	"github.com/goride/goride/pkg/core/log"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
The accounts of the local identity provider are the only data which
are kept in the database.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the accounts tables",
	Long: `Create the accounts tables and indices in the database which
is specified in the configuration file (or DATABASE_URL). Existing
tables are kept, so running it again is harmless.`,
	RunE: initDB,
	Args: cobra.NoArgs,
}

func initDB(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	if err = postgres.CreateSchema(ctx, p); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	log.Info(ctx, "accounts schema is ready")
	return nil
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(dbCmd)
}
