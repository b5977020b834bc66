// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/kraklabs/rosa/internal/contract"
)

// ServiceListArgs holds arguments for ListServices. Use
// DefaultServiceListArgs for the usual exclusions.
type ServiceListArgs struct {
	// Node keeps services provided by this node.
	Node      string
	Namespace string
	// IncludeNodes returns {service, nodes} entries instead of names.
	IncludeNodes bool
	// Pattern keeps services it matches anywhere.
	Pattern string
	// ExcludeLogging drops /rosout* services and any name with "logger".
	ExcludeLogging bool
	// ExcludeRosapi drops /rosapi* services.
	ExcludeRosapi bool
	// ExcludeParameters drops any name with "param".
	ExcludeParameters bool
	// ExcludePattern drops services it matches anywhere.
	ExcludePattern string
	Blacklist      []string
}

// DefaultServiceListArgs excludes logging, rosapi and parameter services.
func DefaultServiceListArgs() ServiceListArgs {
	return ServiceListArgs{
		ExcludeLogging:    true,
		ExcludeRosapi:     true,
		ExcludeParameters: true,
	}
}

// ServiceEntry is a service with its providers.
type ServiceEntry struct {
	Service string   `json:"service"`
	Nodes   []string `json:"nodes"`
}

// ListServices lists services, applying node, namespace, exclusion,
// pattern and blacklist filters in that order.
func ListServices(ctx context.Context, env *Env, args ServiceListArgs) *ToolResult {
	var include, exclude *regexp.Regexp
	var err error
	if args.Pattern != "" {
		if include, err = compileSearch(args.Pattern); err != nil {
			return NewError(KindInvalidArgument, err.Error())
		}
	}
	if args.ExcludePattern != "" {
		if exclude, err = compileSearch(args.ExcludePattern); err != nil {
			return NewError(KindInvalidArgument, err.Error())
		}
	}
	bl, err := compileBlacklist(env.blacklist(args.Blacklist))
	if err != nil {
		return NewError(KindInvalidArgument, err.Error())
	}

	state, err := env.Graph.SystemState(ctx)
	if err != nil {
		return errorFrom("Failed to get ROS services", err)
	}

	providers := make(map[string][]string)
	for _, a := range state.Services {
		providers[a.Name] = append(providers[a.Name], a.Nodes...)
	}

	var names []string
	for name, nodes := range providers {
		if args.Node != "" && !containsString(nodes, args.Node) {
			continue
		}
		if !inNamespace(name, args.Namespace) {
			continue
		}
		if args.ExcludeLogging && (strings.HasPrefix(name, "/rosout") || strings.Contains(name, "logger")) {
			continue
		}
		if args.ExcludeRosapi && strings.HasPrefix(name, "/rosapi") {
			continue
		}
		if args.ExcludeParameters && strings.Contains(name, "param") {
			continue
		}
		if exclude != nil && exclude.MatchString(name) {
			continue
		}
		if include != nil && !include.MatchString(name) {
			continue
		}
		if bl.matches(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if !args.IncludeNodes {
		if names == nil {
			names = []string{}
		}
		return NewResult(names)
	}
	entries := make([]ServiceEntry, 0, len(names))
	for _, name := range names {
		nodes := dedupeSorted(providers[name])
		entries = append(entries, ServiceEntry{Service: name, Nodes: nodes})
	}
	return NewResult(entries)
}

// ServiceInfo fetches the URI and providers of each service.
func ServiceInfo(ctx context.Context, env *Env, services []string) *ToolResult {
	if res := requireNames("services", services); res != nil {
		return res
	}
	details, err := fetchEach(ctx, services, contract.ValidateResourceName,
		func(ctx context.Context, service string) (any, error) {
			return env.Graph.ServiceInfo(ctx, service)
		})
	if err != nil {
		return errorFrom("Failed to get ROS service details", err)
	}
	return NewResult(details)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
