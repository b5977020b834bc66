// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"github.com/kraklabs/rosa/internal/bootstrap"
	"github.com/kraklabs/rosa/internal/errors"
)

// openSession loads the config and opens a session, exiting on failure.
func openSession(configPath string, globals GlobalFlags) (*bootstrap.Session, *Config) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot load rosa configuration",
			err.Error(),
			"Fix the file or run 'rosa init --force' to write a default one",
			err,
		), globals.JSON)
	}

	session, err := bootstrap.Open(cfg.EnvConfig(), newLogger(globals.Debug))
	if err != nil {
		errors.FatalError(errors.NewConfigError(
			"Cannot connect rosa to ROS",
			err.Error(),
			"Check master_uri in the config or ROS_MASTER_URI",
			err,
		), globals.JSON)
	}
	return session, cfg
}
