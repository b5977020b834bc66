// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rosa/internal/bootstrap"
	"github.com/kraklabs/rosa/internal/errors"
	"github.com/kraklabs/rosa/internal/output"
	"github.com/kraklabs/rosa/internal/ui"
)

// StatusResult is the --json output of 'rosa status'.
type StatusResult struct {
	*bootstrap.Status
	Config    string    `json:"config,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// runStatus executes the 'status' CLI command. It pings the ROS master and
// reports what rosa can see. An unreachable master exits with ExitNetwork.
//
// Examples:
//
//	rosa status
//	rosa --json status
func runStatus(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	timeout := fs.Duration("timeout", 10*time.Second, "Deadline for contacting the master")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rosa status [options]

Checks the ROS master and shows the package roots and log directory.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	session, cfg := openSession(configPath, globals)
	defer func() { _ = session.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result := &StatusResult{Status: session.Ping(ctx), Config: cfg.Source, Timestamp: time.Now()}
	if globals.JSON {
		if err := output.JSON(result); err != nil {
			errors.FatalError(err, true)
		}
	} else {
		printStatus(os.Stdout, result)
	}

	if err := statusError(result); err != nil {
		cancel()
		_ = session.Close()
		errors.FatalError(err, globals.JSON)
	}
}

// statusError returns the error 'rosa status' exits with, or nil when the
// master answered.
func statusError(result *StatusResult) *errors.UserError {
	if result.Reachable {
		return nil
	}
	return errors.NewNetworkError(
		"Cannot reach the ROS master",
		fmt.Sprintf("%s at %s", result.Error, result.MasterURI),
		"Start roscore or point ROS_MASTER_URI at a running master",
		nil,
	)
}

func printStatus(w io.Writer, result *StatusResult) {
	p := ui.NewPrinter(w)
	p.Header("ROS Environment")

	config := result.Config
	if config == "" {
		config = "(defaults)"
	}
	p.Field("Config", 10, ui.DimText(config))
	p.Field("Master", 10, result.MasterURI)
	p.Field("Log dir", 10, ui.DimText(result.LogDir))
	p.Field("Packages", 10, ui.CountText(result.PackageCount))
	p.Field("Tools", 10, ui.CountText(result.ToolsAvailable))
	p.Println()

	p.Println(ui.Label("Package roots:"))
	if len(result.PackageRoots) == 0 {
		p.Warning("ROS_PACKAGE_PATH is empty")
	} else {
		p.List(result.PackageRoots)
	}
	p.Println()

	if !result.Reachable {
		p.Error("ROS master unreachable: %s", result.Error)
		return
	}
	p.Success("ROS master reachable")
	p.Field("Topics", 10, ui.CountText(result.Topics))
	p.Field("Nodes", 10, ui.CountText(result.Nodes))
	p.Field("Services", 10, ui.CountText(result.Services))
	if result.Error != "" {
		p.Warning("%s", result.Error)
	}
}
