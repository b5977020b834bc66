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

package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rosa/internal/errors"
	"github.com/kraklabs/rosa/pkg/tools"
)

// command is one CLI command with its own flags, for completion scripts.
type command struct {
	name, desc string
	flags      []string
}

var commands = []command{
	{"init", "Create .rosa/config.yaml", []string{"--force", "--master-uri", "--caller-id", "--reserved-namespace", "--metrics-addr", "--timeout", "--blacklist"}},
	{"status", "Check the ROS master and environment", []string{"--timeout"}},
	{"tools", "List available tools", []string{"--brief"}},
	{"call", "Run one tool", []string{"--timeout"}},
	{"serve", "Start as MCP server", []string{"--metrics-addr"}},
	{"completion", "Generate shell completion script", nil},
}

var globalFlagNames = []string{"--version", "--mcp", "--config", "--json", "--no-color", "--debug"}

func commandNames() string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}
	return strings.Join(names, " ")
}

func toolNames() string {
	var names []string
	for _, t := range tools.Registry() {
		names = append(names, t.Name)
	}
	return strings.Join(names, " ")
}

// bashCompletion completes commands, flags and, after 'call', tool names.
func bashCompletion() string {
	var cases strings.Builder
	for _, c := range commands {
		if len(c.flags) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            if [[ ${cur} == -* ]] ; then\n                COMPREPLY=( $(compgen -W \"%s\" -- ${cur}) )\n            fi\n            ;;\n",
			c.name, strings.Join(c.flags, " "))
	}

	return fmt.Sprintf(`#!/bin/bash

# Bash completion script for rosa
# Installation:
#   source <(rosa completion bash)

_rosa_completion() {
    local cur commands tools cmd i
    commands="%s"
    tools="%s"
    cur="${COMP_WORDS[COMP_CWORD]}"

    # Find the command, skipping global flags.
    cmd=""
    for ((i=1; i < COMP_CWORD; i++)); do
        if [[ ${COMP_WORDS[i]} != -* ]]; then
            cmd="${COMP_WORDS[i]}"
            break
        fi
    done

    if [ -z "${cmd}" ]; then
        if [[ ${cur} == -* ]] ; then
            COMPREPLY=( $(compgen -W "%s" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -W "${commands}" -- ${cur}) )
        fi
        return 0
    fi

    if [ "${cmd}" = "call" ] && [ "${COMP_WORDS[COMP_CWORD-1]}" = "call" ]; then
        COMPREPLY=( $(compgen -W "${tools}" -- ${cur}) )
        return 0
    fi
    if [ "${cmd}" = "completion" ]; then
        COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
        return 0
    fi

    case "${cmd}" in
%s    esac
}

complete -F _rosa_completion rosa
`, commandNames(), toolNames(), strings.Join(globalFlagNames, " "), cases.String())
}

func zshCompletion() string {
	var described strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&described, "        '%s:%s'\n", c.name, c.desc)
	}
	return fmt.Sprintf(`#compdef rosa

# Zsh completion script for rosa
# Installation:
#   rosa completion zsh > "${fpath[1]}/_rosa"

_rosa() {
    local -a commands tools
    commands=(
%s    )
    tools=(%s)

    _arguments -C \
        '(- *)--version[Show version and exit]' \
        '--mcp[Start as MCP server (JSON-RPC over stdio)]' \
        '--config[Path to .rosa/config.yaml]:config file:_files -g "*.yaml"' \
        '--json[Output as JSON]' \
        '--no-color[Disable colored output]' \
        '--debug[Enable debug logging]' \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                call)
                    _arguments '1:tool:(${tools})' '2:json arguments:'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_rosa
`, described.String(), toolNames())
}

func fishCompletion() string {
	var b strings.Builder
	b.WriteString("# Fish completion script for rosa\n# Installation:\n#   rosa completion fish > ~/.config/fish/completions/rosa.fish\n\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "complete -c rosa -f -n \"__fish_use_subcommand\" -a %q -d %q\n", c.name, c.desc)
	}
	b.WriteString("\n")
	for _, f := range globalFlagNames {
		fmt.Fprintf(&b, "complete -c rosa -l %s\n", strings.TrimPrefix(f, "--"))
	}
	b.WriteString("\n")
	for _, t := range tools.Registry() {
		fmt.Fprintf(&b, "complete -c rosa -f -n \"__fish_seen_subcommand_from call\" -a %q -d %q\n", t.Name, firstSentence(t.Description))
	}
	for _, c := range commands {
		for _, f := range c.flags {
			fmt.Fprintf(&b, "complete -c rosa -n \"__fish_seen_subcommand_from %s\" -l %s\n", c.name, strings.TrimPrefix(f, "--"))
		}
	}
	b.WriteString("complete -c rosa -n \"__fish_seen_subcommand_from completion\" -f -a \"bash zsh fish\"\n")
	return b.String()
}

func firstSentence(s string) string {
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i]
	}
	return strings.TrimSuffix(s, ".")
}

// runCompletion executes the 'completion' CLI command, printing a completion
// script for bash, zsh or fish.
//
// Examples:
//
//	source <(rosa completion bash)
//	rosa completion zsh > "${fpath[1]}/_rosa"
//	rosa completion fish | source
func runCompletion(args []string) {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rosa completion <shell>

Generate a shell completion script for bash, zsh, or fish. After 'rosa call'
the scripts complete tool names.

Examples:
  source <(rosa completion bash)
  rosa completion zsh > "${fpath[1]}/_rosa"
  rosa completion fish > ~/.config/fish/completions/rosa.fish

`)
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		errors.FatalError(errors.NewInputError(
			"Invalid arguments",
			"The completion command requires exactly one argument: the shell name",
			"Run 'rosa completion bash', 'rosa completion zsh', or 'rosa completion fish'",
		), false)
	}

	script, err := completionScript(fs.Arg(0))
	if err != nil {
		errors.FatalError(err, false)
	}
	fmt.Print(script)
}

func completionScript(shell string) (string, error) {
	switch shell {
	case "bash":
		return bashCompletion(), nil
	case "zsh":
		return zshCompletion(), nil
	case "fish":
		return fishCompletion(), nil
	default:
		return "", errors.NewInputError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'rosa completion bash', 'rosa completion zsh', or 'rosa completion fish'",
		)
	}
}
