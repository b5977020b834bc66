// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output provides utilities for consistent CLI output formatting.
//
// This package handles JSON encoding for machine-readable output. It
// complements the ui package (human-readable output) and the errors package.
//
// # Usage
//
// Tool results in --json mode:
//
//	result := tools.Call(ctx, env, "rostopic_list", args)
//	if err := output.JSON(result); err != nil {
//	    errors.FatalError(err, true)
//	}
//
// JSON indents for a terminal and stays on one line when piped, so
// `rosa --json call rosnode_list | jq` gets one document per line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// JSON writes data to stdout, indented on a terminal and compact otherwise.
func JSON(data any) error {
	return JSONAuto(os.Stdout, data)
}

// JSONAuto writes data indented when w is a terminal and compact otherwise.
func JSONAuto(w io.Writer, data any) error {
	if IsTerminal(w) {
		return JSONTo(w, data)
	}
	return JSONCompactTo(w, data)
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// JSONTo writes data as pretty-printed JSON with 2-space indentation.
// Returns an error for unencodable types like channels or functions.
func JSONTo(w io.Writer, data any) error {
	enc := newEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// JSONCompactTo writes data as single-line JSON.
func JSONCompactTo(w io.Writer, data any) error {
	if err := newEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// Package manifests and message definitions contain '<' and '&'.
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// Text writes s followed by a newline unless it already ends in one.
func Text(w io.Writer, s string) error {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
