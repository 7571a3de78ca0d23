// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the goride
// browser facade. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for creating the accounts tables.
//
//	./goride [-c /path/of/config.yaml] [--log-level debug]  # start server
//	./goride db init [-c /path/of/config.yaml]
//	./goride config [-c /path/of/config.yaml]             # print settings
//
// Environment variables may be put in a .env file of the working
// directory; see the config package for the supported variables.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goride/goride/pkg/adapter/config"
	"github.com/goride/goride/pkg/adapter/restful/gin"
	"github.com/goride/goride/pkg/adapter/restful/gin/routes"
	"github.com/goride/goride/pkg/core/log"
)

const shutdownTimeout = 10 * time.Second

var (
	cfgPath   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "goride",
	Short: "The GoRide vehicle rental browser facade",
	Long: `The GoRide vehicle rental browser facade keeps the state of
each browser (its identity, vehicles catalog query, and in-flight
bookings) and talks to the remote vehicles and bookings API on its
behalf. Accounts of the local identity provider are stored in a
PostgreSQL database which can be initialized by the "db init" command.
Prometheus metrics are exposed at /metrics.`,
	PersistentPreRunE: setUp,
	RunE:              startWebServer,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
}

func setUp(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch logFormat {
	case "text":
		h = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		h = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("unknown log format %q", logFormat)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()
	c, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	p, err := c.ConnectionPool(ctx)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	deps, err := c.RouteDeps(p)
	if err != nil {
		return fmt.Errorf("creating route dependencies: %w", err)
	}
	gin.SetReleaseMode()
	var e *gin.Engine = c.Gin.NewEngine()
	reg, err := routes.Register(e, deps)
	if err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = reg.Start(c.Sessions.SweepSchedule); err != nil {
		return fmt.Errorf("starting sessions sweep: %w", err)
	}
	defer reg.Stop()

	srv := &http.Server{
		Addr:              c.Gin.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info(
		ctx, "server is started",
		slog.String("address", c.Gin.Address),
		slog.String("api", c.API.BaseURL),
		slog.Any("api_timeout", c.API.Timeout),
		slog.Any("idle_timeout", c.Sessions.IdleTimeout),
	)
	select {
	case err = <-errCh:
		return fmt.Errorf("running Gin engine: %w", err)
	case <-ctx.Done():
	}
	log.Info(context.Background(), "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "info", "debug, info, warn, or error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFormat, "log-format", "text", "text or json",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
