// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goride/goride/pkg/adapter/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration file after applying the environment
variables and the default values, as yaml. The token secret and the
database password are redacted.`,
	RunE: printConfig,
	Args: cobra.NoArgs,
}

func printConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func init() {
	rootCmd.AddCommand(configCmd)
}
