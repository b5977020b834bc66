// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"fmt"
	"regexp"
	"strings"
)

// NameMaxBytes is the longest name accepted by any validator.
const NameMaxBytes = 1024

var (
	packageNameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)
	typeBaseRe    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

func ok() *ValidationResult {
	return &ValidationResult{OK: true}
}

func fail(format string, args ...any) *ValidationResult {
	return &ValidationResult{OK: false, Message: fmt.Sprintf(format, args...)}
}

// ValidateResourceName checks a topic, node, service or parameter name.
// "/" alone is the root namespace and is valid.
func ValidateResourceName(name string) *ValidationResult {
	if name == "" {
		return fail("name is empty")
	}
	if len(name) > NameMaxBytes {
		return fail("name %q exceeds %d bytes", name[:32]+"...", NameMaxBytes)
	}
	if name == "/" {
		return ok()
	}

	first := name[0]
	if !isAlpha(first) && first != '/' && first != '~' {
		return fail("name %q must start with a letter, '/' or '~'", name)
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !isAlpha(c) && !isDigit(c) && c != '_' && c != '/' {
			return fail("name %q contains invalid character %q", name, c)
		}
	}
	if strings.Contains(name, "//") {
		return fail("name %q contains an empty segment", name)
	}
	if strings.HasSuffix(name, "/") {
		return fail("name %q must not end with '/'", name)
	}
	for _, seg := range strings.Split(strings.TrimLeft(name, "/~"), "/") {
		if seg != "" && isDigit(seg[0]) {
			return fail("name %q has a segment starting with a digit", name)
		}
	}
	return ok()
}

// ValidatePackageName checks a catkin package name.
func ValidatePackageName(name string) *ValidationResult {
	if name == "" {
		return fail("package name is empty")
	}
	if len(name) > NameMaxBytes || !packageNameRe.MatchString(name) {
		return fail("invalid package name %q", name)
	}
	return ok()
}

// ValidateTypeName checks a message or service type, either "pkg/Type" or
// a bare "Type".
func ValidateTypeName(name string) *ValidationResult {
	if name == "" {
		return fail("type name is empty")
	}
	pkg, base, qualified := strings.Cut(name, "/")
	if !qualified {
		base = pkg
	} else if res := ValidatePackageName(pkg); !res.OK {
		return fail("invalid type %q: %s", name, res.Message)
	}
	if !typeBaseRe.MatchString(base) {
		return fail("invalid type %q", name)
	}
	return ok()
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
