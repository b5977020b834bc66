// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rosa/internal/bootstrap"
	"github.com/kraklabs/rosa/internal/errors"
	"github.com/kraklabs/rosa/internal/output"
	"github.com/kraklabs/rosa/internal/ui"
)

// initFlags holds parsed flags for the init command.
type initFlags struct {
	force                      bool
	masterURI, callerID        string
	reservedNamespace, metrics string
	timeout                    time.Duration
	blacklist                  []string
}

// runInit executes the 'init' CLI command, writing .rosa/config.yaml in
// the current directory.
//
// Examples:
//
//	rosa init
//	rosa init --master-uri http://robot:11311 --blacklist /rosa
//	rosa init --force
func runInit(args []string, globals GlobalFlags) {
	flags := parseInitFlags(args)

	cfg := initConfig(flags)
	if err := cfg.Validate(); err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid configuration values",
			err.Error(),
			"Check the flags passed to 'rosa init'",
		), globals.JSON)
	}
	data, err := MarshalConfig(cfg)
	if err != nil {
		errors.FatalError(errors.NewInternalError("Cannot render configuration", err.Error(), "", err), globals.JSON)
	}

	cwd, err := os.Getwd()
	if err != nil {
		errors.FatalError(errors.NewPermissionError(
			"Cannot get current directory", err.Error(), "Run rosa from a readable directory", err,
		), globals.JSON)
	}

	path, written, err := bootstrap.InitConfig(cwd, data, flags.force, newLogger(globals.Debug))
	if err != nil {
		errors.FatalError(errors.NewPermissionError(
			"Cannot write configuration", err.Error(), "Check write permissions for "+cwd, err,
		), globals.JSON)
	}
	if !written {
		errors.FatalError(errors.NewInputError(
			"Configuration already exists",
			path+" is already present",
			"Use --force to overwrite it",
		), globals.JSON)
	}

	if globals.JSON {
		_ = output.JSON(map[string]string{"config": path})
		return
	}
	p := ui.NewPrinter(os.Stdout)
	p.Success("Wrote %s", path)
	p.Println()
	p.Println("Next steps:")
	p.Println("  rosa status   Check the ROS master")
	p.Println("  rosa tools    See what an agent can call")
	p.Println("  rosa --mcp    Serve the tools over MCP")
}

func parseInitFlags(args []string) initFlags {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	defaults := DefaultConfig()

	var f initFlags
	fs.BoolVar(&f.force, "force", false, "Overwrite existing configuration")
	fs.StringVar(&f.masterURI, "master-uri", defaults.MasterURI, "ROS master URI")
	fs.StringVar(&f.callerID, "caller-id", defaults.CallerID, "Caller id sent to the master")
	fs.StringVar(&f.reservedNamespace, "reserved-namespace", defaults.ReservedNamespace, "Namespace for is_rosa_param writes")
	fs.StringVar(&f.metrics, "metrics-addr", "", "Prometheus metrics address in MCP mode (empty to disable)")
	fs.DurationVar(&f.timeout, "timeout", defaults.Timeout, "Timeout for each master call")
	fs.StringSliceVar(&f.blacklist, "blacklist", nil, "Regex patterns hidden from every tool (repeatable)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rosa init [options]

Creates .rosa/config.yaml in the current directory.

Examples:
  rosa init
  rosa init --master-uri http://robot:11311
  rosa init --blacklist /rosa --blacklist secret
  rosa init --force

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	return f
}

func initConfig(f initFlags) *Config {
	cfg := DefaultConfig()
	cfg.MasterURI = f.masterURI
	cfg.CallerID = f.callerID
	cfg.ReservedNamespace = f.reservedNamespace
	cfg.MetricsAddr = f.metrics
	cfg.Timeout = f.timeout
	cfg.TimeoutRaw = f.timeout.String()
	cfg.Blacklist = f.blacklist
	return cfg
}
