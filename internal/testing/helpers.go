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
// SPDX-License-Identifier: AGPL-3.0-or-later

package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WritePackage creates <root>/<name>/package.xml with the given run
// dependencies and returns the package directory.
//
// Example:
//
//	dir := testing.WritePackage(t, root, "turtlesim", "std_msgs", "roscpp")
func WritePackage(t *testing.T, root, name string, depends ...string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create package dir: %v", err)
	}

	var deps strings.Builder
	for _, d := range depends {
		fmt.Fprintf(&deps, "  <depend>%s</depend>\n", d)
	}

	manifest := fmt.Sprintf(`<?xml version="1.0"?>
<package format="2">
  <name>%s</name>
  <version>1.0.0</version>
  <description>The %s package</description>
  <maintainer email="dev@example.com">Dev</maintainer>
  <license>BSD</license>
  <buildtool_depend>catkin</buildtool_depend>
%s</package>
`, name, name, deps.String())

	WriteFile(t, filepath.Join(dir, "package.xml"), manifest)
	return dir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// WriteSizedFile writes a file of exactly size bytes.
//
// Example:
//
//	testing.WriteSizedFile(t, logDir, "master.log", 4096)
func WriteSizedFile(t *testing.T, dir, name string, size int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	WriteFile(t, path, strings.Repeat("x", size))
	return path
}
