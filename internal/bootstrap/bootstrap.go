// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kraklabs/rosa/pkg/ros"
	"github.com/kraklabs/rosa/pkg/rospkg"
	"github.com/kraklabs/rosa/pkg/tools"
)

// EnvConfig holds what is needed to reach a ROS system.
type EnvConfig struct {
	// MasterURI of the ROS master. Defaults to ros.DefaultMasterURI.
	MasterURI string

	// CallerID sent with every master call. Defaults to ros.DefaultCallerID.
	CallerID string

	// Timeout bounds every master and node round trip.
	Timeout time.Duration

	// ReservedNamespace receives is_rosa_param writes. Defaults to /rosa.
	ReservedNamespace string

	// PackagePath overrides ROS_PACKAGE_PATH.
	PackagePath []string

	// LogDir overrides the ROS log directory lookup.
	LogDir string

	// Blacklist patterns applied to every tool call.
	Blacklist []string
}

// Session is an opened ROS environment ready for tool calls.
type Session struct {
	Env    *tools.Env
	Master *ros.Master
	Index  *rospkg.Index
}

// Close releases connections held by the session.
func (s *Session) Close() error {
	return s.Master.Close()
}

// Open builds a Session from config. It does not contact the master;
// use Ping for that.
func Open(config EnvConfig, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	master, err := ros.NewMaster(ros.MasterConfig{
		URI:      config.MasterURI,
		CallerID: config.CallerID,
		Timeout:  config.Timeout,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create master client: %w", err)
	}

	index := rospkg.NewIndex(rospkg.IndexConfig{
		Roots:  config.PackagePath,
		LogDir: config.LogDir,
		Logger: logger,
	})

	logger.Debug("bootstrap.env.open",
		"master_uri", master.URI(),
		"caller_id", master.CallerID(),
		"package_roots", index.Roots(),
	)

	return &Session{
		Env: &tools.Env{
			Graph:             master,
			Params:            master,
			Packages:          index,
			Blacklist:         config.Blacklist,
			ReservedNamespace: config.ReservedNamespace,
			Logger:            logger,
		},
		Master: master,
		Index:  index,
	}, nil
}

// Status summarizes a ROS environment.
type Status struct {
	MasterURI      string   `json:"master_uri"`
	Reachable      bool     `json:"reachable"`
	Error          string   `json:"error,omitempty"`
	PackageRoots   []string `json:"package_roots"`
	PackageCount   int      `json:"package_count"`
	LogDir         string   `json:"log_dir"`
	Topics         int      `json:"topics"`
	Nodes          int      `json:"nodes"`
	Services       int      `json:"services"`
	ToolsAvailable int      `json:"tools_available"`
}

// Ping checks the master and counts what the session can see. An
// unreachable master is reported in Status, not as an error.
func (s *Session) Ping(ctx context.Context) *Status {
	st := &Status{
		MasterURI:      s.Master.URI(),
		PackageRoots:   s.Index.Roots(),
		ToolsAvailable: len(tools.Registry()),
	}
	if st.PackageRoots == nil {
		st.PackageRoots = []string{}
	}
	if dir, err := s.Index.LogDir(); err == nil {
		st.LogDir = dir
	}
	if catalog, err := s.Index.Crawl(ctx); err == nil {
		st.PackageCount = catalog.Len()
	}

	if _, err := s.Master.Ping(ctx); err != nil {
		st.Error = err.Error()
		return st
	}
	st.Reachable = true

	state, err := s.Master.SystemState(ctx)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Topics = len(state.Topics())
	st.Nodes = len(state.Nodes())
	st.Services = len(state.ServiceNames())
	return st
}

// InitConfig writes data to <dir>/.rosa/config.yaml. An existing file is
// kept unless force is set. It reports whether the file was written.
func InitConfig(dir string, data []byte, force bool, logger *slog.Logger) (string, bool, error) {
	if logger == nil {
		logger = slog.Default()
	}

	path := filepath.Join(dir, ".rosa", "config.yaml")
	if _, err := os.Stat(path); err == nil && !force {
		logger.Info("bootstrap.config.exists", "path", path)
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("write config: %w", err)
	}

	logger.Info("bootstrap.config.written", "path", path)
	return path, true, nil
}
