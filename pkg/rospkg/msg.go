// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package rospkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MessageText returns the definition of a message type such as
// "std_msgs/String".
func (c *Catalog) MessageText(typ string, raw bool) (string, error) {
	return c.definition(typ, "msg", raw)
}

// ServiceText returns the definition of a service type such as
// "std_srvs/Trigger".
func (c *Catalog) ServiceText(typ string, raw bool) (string, error) {
	return c.definition(typ, "srv", raw)
}

// definition resolves pkg/Type to <pkg>/<ext>/Type.<ext>. A bare Type is
// looked up in every package, in name order.
func (c *Catalog) definition(typ, ext string, raw bool) (string, error) {
	typ = strings.TrimSuffix(strings.TrimSpace(typ), "."+ext)
	pkgName, base, qualified := strings.Cut(typ, "/")
	if !qualified {
		base = pkgName
	}
	if base == "" || strings.Contains(base, "/") {
		return "", fmt.Errorf("%s type %q: %w", ext, typ, ErrTypeNotFound)
	}

	candidates := []string{pkgName}
	if !qualified {
		candidates = c.List()
	}
	for _, name := range candidates {
		p, ok := c.packages[name]
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(p.Path, ext, base+"."+ext))
		if err != nil {
			continue
		}
		if raw {
			return string(data), nil
		}
		return stripDefinition(string(data)), nil
	}
	return "", fmt.Errorf("%s type %q: %w", ext, typ, ErrTypeNotFound)
}

// stripDefinition drops comments, trailing whitespace and blank lines. String
// constants keep everything after '=' since '#' is literal there.
func stripDefinition(text string) string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if !isStringConstant(line) {
			if i := strings.Index(line, "#"); i >= 0 {
				line = line[:i]
			}
		}
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isStringConstant(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != "string" {
		return false
	}
	eq := strings.Index(line, "=")
	hash := strings.Index(line, "#")
	return eq >= 0 && (hash < 0 || eq < hash)
}
