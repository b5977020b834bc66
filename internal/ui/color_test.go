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

package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

// noColor disables colors for the duration of a test.
func noColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func TestInitColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	InitColors(true)
	if !color.NoColor {
		t.Error("InitColors(true): colors still enabled")
	}

	// go test output is never a terminal.
	InitColors(false)
	if !color.NoColor {
		t.Error("InitColors(false): colors enabled without a terminal")
	}
}

func TestPrinter_Messages(t *testing.T) {
	noColor(t)

	tests := []struct {
		name  string
		print func(p *Printer)
		want  string
	}{
		{"success", func(p *Printer) { p.Success("ROS master reachable at %s", "http://localhost:11311/") }, "✓ ROS master reachable at http://localhost:11311/\n"},
		{"warning", func(p *Printer) { p.Warning("%d connections", 51) }, "⚠ 51 connections\n"},
		{"error", func(p *Printer) { p.Error("ROS master unreachable") }, "✗ ROS master unreachable\n"},
		{"info", func(p *Printer) { p.Info("%d tools", 17) }, "ℹ 17 tools\n"},
		{"header", func(p *Printer) { p.Header("ROS Environment") }, "ROS Environment\n===============\n"},
		{"field", func(p *Printer) { p.Field("Master", 8, "http://robot:11311/") }, "  Master:  http://robot:11311/\n"},
		{"list", func(p *Printer) { p.List([]string{"/opt/ros/noetic/share", "/home/robot/ws/src"}) }, "  * /home/robot/ws/src\n  * /opt/ros/noetic/share\n"},
		{"println", func(p *Printer) { p.Println("plain") }, "plain\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(NewPrinter(&buf))
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinter_ListDoesNotReorderInput(t *testing.T) {
	noColor(t)
	items := []string{"b", "a"}
	NewPrinter(&bytes.Buffer{}).List(items)
	if items[0] != "b" {
		t.Errorf("List() sorted its input: %v", items)
	}
}

func TestInlineHelpers(t *testing.T) {
	noColor(t)
	if got := Label("Roots:"); got != "Roots:" {
		t.Errorf("Label() = %q", got)
	}
	if got := DimText("/tmp"); got != "/tmp" {
		t.Errorf("DimText() = %q", got)
	}
	if got := CountText(42); got != "42" {
		t.Errorf("CountText() = %q", got)
	}
}

func TestColorVariablesInitialized(t *testing.T) {
	for name, c := range map[string]*color.Color{
		"Red": Red, "Yellow": Yellow, "Green": Green, "Cyan": Cyan, "Bold": Bold, "Dim": Dim,
	} {
		if c == nil {
			t.Errorf("%s is nil", name)
		}
	}
}
