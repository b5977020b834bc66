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

// Package main implements the rosa CLI, which exposes ROS1 introspection
// tools to agents and humans.
//
// Usage:
//
//	rosa init                          Create .rosa/config.yaml
//	rosa status [--json]               Check the ROS master and environment
//	rosa tools                         List available tools
//	rosa call <tool> ['<json-args>']   Run one tool
//	rosa --mcp                         Start as MCP server (JSON-RPC over stdio)
package main

import (
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rosa/internal/ui"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags are the flags accepted before the command name.
type GlobalFlags struct {
	JSON    bool
	NoColor bool
	Debug   bool
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version and exit")
		mcpMode     = flag.Bool("mcp", false, "Start as MCP server (JSON-RPC over stdio)")
		configPath  = flag.String("config", "", "Path to .rosa/config.yaml (default: ./.rosa/config.yaml, then ~/.rosa/config.yaml)")
		jsonOutput  = flag.Bool("json", false, "Output as JSON")
		noColor     = flag.Bool("no-color", false, "Disable colored output")
		debug       = flag.Bool("debug", false, "Enable debug logging on stderr")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `rosa - ROS agent tools

rosa lets an AI agent inspect and adjust a running ROS1 system: topics,
nodes, services, message types, parameters, packages and log files.
It talks to the ROS master over XML-RPC and reads packages and logs
from disk.

Usage:
  rosa [global options] <command> [options]

Commands:
  init          Create .rosa/config.yaml
  status        Check the ROS master and environment
  tools         List available tools and their arguments
  call          Run one tool and print its result
  serve         Start as MCP server (same as --mcp)
  completion    Generate shell completion script (bash|zsh|fish)

Global Options:
  --mcp         Start as MCP server (JSON-RPC over stdio)
  --config      Path to .rosa/config.yaml
  --json        Output as JSON
  --no-color    Disable colored output
  --debug       Enable debug logging on stderr
  --version     Show version and exit

Examples:
  rosa init                                  Write a default configuration
  rosa status                                Is the master up?
  rosa call rostopic_list                    List topics
  rosa call rosgraph_get '{"namespace": "/turtle1"}'
  rosa call rosparam_set '{"param": "speed", "value": "1.5", "is_rosa_param": true}'
  rosa --json call roslog_list | jq .        Machine-readable output
  rosa --mcp                                 Start as MCP server

Environment Variables:
  ROS_MASTER_URI     Master to query (default: http://localhost:11311)
  ROS_PACKAGE_PATH   Package roots, separated by ':'
  ROS_LOG_DIR        Log directory (default: $ROS_HOME/log or ~/.ros/log)
  NO_COLOR           Disable colored output

For detailed command help: rosa <command> --help

`)
	}

	// Stop at the command name so command flags reach their own flag set.
	flag.CommandLine.SetInterspersed(false)
	flag.Parse()

	if *showVersion {
		fmt.Printf("rosa version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	globals := GlobalFlags{JSON: *jsonOutput, NoColor: *noColor, Debug: *debug}
	ui.InitColors(globals.NoColor)

	// MCP mode takes precedence
	if *mcpMode {
		runMCPServer(nil, *configPath, globals)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "init":
		runInit(cmdArgs, globals)
	case "status":
		runStatus(cmdArgs, *configPath, globals)
	case "tools":
		runTools(cmdArgs, globals)
	case "call":
		runCall(cmdArgs, *configPath, globals)
	case "serve":
		runMCPServer(cmdArgs, *configPath, globals)
	case "completion":
		runCompletion(cmdArgs)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

// newLogger returns a text logger on stderr. stdout is reserved for results
// and the MCP channel.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
