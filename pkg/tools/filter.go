// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"regexp"
	"strings"
)

// compileSearch compiles p so that it matches anywhere in a name, the way
// listing patterns and blacklists are applied.
func compileSearch(p string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^.*(?:" + p + ")")
	if err != nil {
		return nil, invalidArgf("pattern %q: %v", p, err)
	}
	return re, nil
}

// compilePrefix compiles p so that it must match at the start of a name,
// the way graph node and topic patterns are applied.
func compilePrefix(p string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + p + ")")
	if err != nil {
		return nil, invalidArgf("pattern %q: %v", p, err)
	}
	return re, nil
}

// blacklist is a set of compiled exclusion patterns.
type blacklist []*regexp.Regexp

func compileBlacklist(patterns []string) (blacklist, error) {
	out := make(blacklist, 0, len(patterns))
	for _, p := range patterns {
		re, err := compileSearch(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// matches reports whether any pattern matches s.
func (b blacklist) matches(s string) bool {
	for _, re := range b {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// filter returns the names no pattern matches. The input is not modified.
func (b blacklist) filter(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !b.matches(n) {
			out = append(out, n)
		}
	}
	return out
}

// keep returns the names re matches.
func keep(names []string, re *regexp.Regexp) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if re.MatchString(n) {
			out = append(out, n)
		}
	}
	return out
}

// normalizeNamespace trims a trailing slash. "" and "/" both mean the root.
func normalizeNamespace(ns string) string {
	ns = strings.TrimSpace(ns)
	if ns == "" || ns == "/" {
		return "/"
	}
	return strings.TrimRight(ns, "/")
}

// inNamespace reports whether name lives under ns. Every name is under the
// root namespace.
func inNamespace(name, ns string) bool {
	ns = normalizeNamespace(ns)
	if ns == "/" {
		return true
	}
	return strings.HasPrefix(name, ns+"/")
}

func inNamespaceAll(names []string, ns string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if inNamespace(n, ns) {
			out = append(out, n)
		}
	}
	return out
}
