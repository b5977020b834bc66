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

// Package ui provides human-readable output for the rosa CLI.
//
// Colors respect the --no-color flag and the NO_COLOR environment variable,
// and are disabled when stdout is not a terminal.
//
// Color usage:
//   - Red: errors, unreachable master
//   - Yellow: warnings such as the large-graph notice
//   - Green: success, reachable master
//   - Cyan: counts and tool names
//   - Bold: headers and labels
//   - Dim: URIs and paths
package ui

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	Red    = color.New(color.FgRed)
	Yellow = color.New(color.FgYellow)
	Green  = color.New(color.FgGreen)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
	Dim    = color.New(color.Faint)
)

// InitColors turns color output off when noColor is set, NO_COLOR is
// present, or stdout is not a terminal.
func InitColors(noColor bool) {
	color.NoColor = noColor || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd())
}

// Printer writes styled lines to a writer.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer writing to w. A nil w means stdout.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{w: w}
}

// Success prints a green line with a checkmark, e.g. "✓ ROS master reachable".
func (p *Printer) Success(format string, args ...any) {
	p.line(Green, "✓ ", format, args...)
}

// Warning prints a yellow line with a warning sign.
func (p *Printer) Warning(format string, args ...any) {
	p.line(Yellow, "⚠ ", format, args...)
}

// Error prints a red line with a cross.
func (p *Printer) Error(format string, args ...any) {
	p.line(Red, "✗ ", format, args...)
}

// Info prints a cyan line with an info sign.
func (p *Printer) Info(format string, args ...any) {
	p.line(Cyan, "ℹ ", format, args...)
}

func (p *Printer) line(c *color.Color, prefix, format string, args ...any) {
	_, _ = c.Fprintf(p.w, prefix+format+"\n", args...)
}

// Header prints a bold header underlined with '='.
//
//	ROS Environment
//	===============
func (p *Printer) Header(text string) {
	_, _ = Bold.Fprintln(p.w, text)
	fmt.Fprintln(p.w, strings.Repeat("=", len([]rune(text))))
}

// Field prints "  Label: value" with the label bold and aligned to width.
func (p *Printer) Field(label string, width int, value any) {
	fmt.Fprintf(p.w, "  %s %v\n", Label(fmt.Sprintf("%-*s", width, label+":")), value)
}

// List prints each item as a dimmed bullet, sorted.
func (p *Printer) List(items []string) {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	for _, item := range sorted {
		fmt.Fprintf(p.w, "  %s %s\n", Dim.Sprint("*"), item)
	}
}

// Println prints a plain line.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// Label returns bold text for inline labels.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns dim text, used for URIs and paths.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a cyan count.
func CountText(count int) string {
	return Cyan.Sprint(count)
}
