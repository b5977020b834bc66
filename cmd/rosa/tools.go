// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/rosa/internal/errors"
	"github.com/kraklabs/rosa/internal/output"
	"github.com/kraklabs/rosa/internal/ui"
	"github.com/kraklabs/rosa/pkg/tools"
)

// ToolSchema is the --json form of one registry entry.
type ToolSchema struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Arguments   []ArgumentDoc `json:"arguments"`
}

// ArgumentDoc describes one tool argument.
type ArgumentDoc struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description"`
}

// runTools executes the 'tools' CLI command, listing every tool with its
// arguments.
func runTools(args []string, globals GlobalFlags) {
	fs := flag.NewFlagSet("tools", flag.ExitOnError)
	brief := fs.Bool("brief", false, "Only print tool names and descriptions")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: rosa tools [options]

Lists the tools rosa exposes to agents, with their arguments.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	schemas := toolSchemas()
	if globals.JSON {
		if err := output.JSON(schemas); err != nil {
			errors.FatalError(err, true)
		}
		return
	}
	printTools(os.Stdout, schemas, *brief)
}

func toolSchemas() []ToolSchema {
	registry := tools.Registry()
	out := make([]ToolSchema, 0, len(registry))
	for _, t := range registry {
		s := ToolSchema{Name: t.Name, Description: t.Description, Arguments: []ArgumentDoc{}}
		for _, p := range t.Params {
			s.Arguments = append(s.Arguments, ArgumentDoc{
				Name:        p.Name,
				Type:        string(p.Type),
				Required:    p.Required,
				Default:     p.Default,
				Description: p.Description,
			})
		}
		out = append(out, s)
	}
	return out
}

func printTools(w io.Writer, schemas []ToolSchema, brief bool) {
	p := ui.NewPrinter(w)
	p.Header(fmt.Sprintf("rosa tools (%d)", len(schemas)))
	for _, s := range schemas {
		p.Println()
		p.Println(ui.Label(s.Name))
		p.Println("  " + s.Description)
		if brief {
			continue
		}
		for _, a := range s.Arguments {
			detail := a.Type
			switch {
			case a.Required:
				detail += ", required"
			case a.Default != nil:
				detail += fmt.Sprintf(", default %v", a.Default)
			}
			p.Println(fmt.Sprintf("    %s (%s) %s", a.Name, detail, ui.DimText(a.Description)))
		}
	}
}
