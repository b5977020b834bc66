// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rosa/internal/errors"
	"github.com/kraklabs/rosa/internal/output"
	"github.com/kraklabs/rosa/pkg/tools"
)

// runCall executes the 'call' CLI command: run one tool and print its
// result.
//
// The arguments are a JSON object, given inline or as "-" to read stdin.
// Failed tools exit with a code derived from the failure kind.
//
// Examples:
//
//	rosa call rostopic_list
//	rosa call rostopic_info '{"topics": ["/chatter"]}'
//	echo '{"namespace": "/turtle1"}' | rosa call rosgraph_get -
func runCall(args []string, configPath string, globals GlobalFlags) {
	fs := flag.NewFlagSet("call", flag.ExitOnError)
	timeout := fs.Duration("timeout", 30*time.Second, "Deadline for the whole call")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rosa call <tool> ['<json-args>' | -] [options]

Runs one tool and prints its result. Arguments are a JSON object; use '-'
to read it from stdin. Run 'rosa tools' to see every tool's arguments.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  rosa call rosnode_list '{"namespace": "/turtle1"}'
  rosa call rosparam_get '{"params": ["/rosdistro"]}'
  rosa --json call rospkg_list | jq '.packages[]'
`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		errors.FatalError(errors.NewInputError(
			"Invalid arguments",
			"The call command takes a tool name and an optional JSON object",
			"Run 'rosa call <tool> '{...}'' or 'rosa tools' for the list",
		), globals.JSON)
	}

	name := fs.Arg(0)
	if _, ok := tools.Lookup(name); !ok {
		errors.FatalError(errors.NewNotFoundError(
			"Tool not found",
			fmt.Sprintf("No tool named '%s' is registered", name),
			"Run 'rosa tools' to list available tools",
		), globals.JSON)
	}

	raw, err := parseToolArgs(fs.Arg(1), os.Stdin)
	if err != nil {
		errors.FatalError(errors.NewInputError(
			"Invalid tool arguments",
			err.Error(),
			`Pass a JSON object, e.g. '{"namespace": "/"}'`,
		), globals.JSON)
	}

	session, _ := openSession(configPath, globals)
	defer func() { _ = session.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result := tools.Call(ctx, session.Env, name, raw)
	if code := emitResult(os.Stdout, os.Stderr, name, result, globals); code != errors.ExitSuccess {
		cancel()
		os.Exit(code)
	}
}

// parseToolArgs decodes a JSON object from arg, or from stdin when arg is
// "-". Numbers stay json.Number so integers keep their precision.
func parseToolArgs(arg string, stdin io.Reader) (map[string]any, error) {
	var data []byte
	switch strings.TrimSpace(arg) {
	case "":
		return nil, nil
	case "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		data = b
	default:
		data = []byte(arg)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("arguments must be a single JSON object")
	}
	return raw, nil
}

// emitResult prints result and returns the exit code. With --json the
// result goes to stdout either way; otherwise failures go to stderr as a
// formatted error.
func emitResult(stdout, stderr io.Writer, name string, result *tools.ToolResult, globals GlobalFlags) int {
	if globals.JSON {
		if err := output.JSONAuto(stdout, result); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return errors.ExitInternal
		}
		if result.IsError {
			return errors.ExitCodeForKind(string(result.Kind))
		}
		return errors.ExitSuccess
	}

	if result.IsError {
		return errors.Report(stderr, errors.NewToolError(name, string(result.Kind), result.Text), false, globals.NoColor)
	}
	if err := output.Text(stdout, result.Render()); err != nil {
		return errors.ExitInternal
	}
	return errors.ExitSuccess
}
