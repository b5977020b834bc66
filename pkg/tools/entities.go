// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// EntityKind is the kind of graph entity an entity listing covers.
type EntityKind string

const (
	EntityTopic EntityKind = "topic"
	EntityNode  EntityKind = "node"
)

// ListArgs holds arguments for ListTopics and ListNodes.
type ListArgs struct {
	// Pattern keeps names it matches anywhere. Empty keeps everything.
	Pattern string
	// Namespace keeps names under it. Empty or "/" keeps everything.
	Namespace string
	Blacklist []string
}

// EntityListing reports how many names survived each filter stage. When a
// stage leaves nothing, Names holds a single sentence explaining which stage
// emptied the list.
type EntityListing struct {
	Kind         EntityKind
	Namespace    string
	Pattern      string
	Total        int
	InNamespace  int
	MatchPattern int
	Names        []string
}

// MarshalJSON emits the fields in a stable order, with the names under
// "topics" or "nodes".
func (l EntityListing) MarshalJSON() ([]byte, error) {
	m := orderedmap.New[string, any]()
	m.Set("namespace", l.Namespace)
	m.Set("pattern", l.Pattern)
	m.Set("total", l.Total)
	m.Set("in_namespace", l.InNamespace)
	m.Set("match_pattern", l.MatchPattern)
	m.Set(string(l.Kind)+"s", l.Names)
	return json.Marshal(m)
}

// ListTopics lists every topic with a publisher or subscriber.
func ListTopics(ctx context.Context, env *Env, args ListArgs) *ToolResult {
	state, err := env.Graph.SystemState(ctx)
	if err != nil {
		return errorFrom("Failed to get ROS topics", err)
	}
	return listEntities(EntityTopic, state.Topics(), env.blacklist(args.Blacklist), args)
}

// ListNodes lists every node known to the master.
func ListNodes(ctx context.Context, env *Env, args ListArgs) *ToolResult {
	state, err := env.Graph.SystemState(ctx)
	if err != nil {
		return errorFrom("Failed to get ROS nodes", err)
	}
	return listEntities(EntityNode, state.Nodes(), env.blacklist(args.Blacklist), args)
}

// listEntities runs the namespace, pattern and blacklist stages over names.
func listEntities(kind EntityKind, names, blacklistPatterns []string, args ListArgs) *ToolResult {
	var pattern *regexp.Regexp
	if args.Pattern != "" {
		re, err := compileSearch(args.Pattern)
		if err != nil {
			return NewError(KindInvalidArgument, err.Error())
		}
		pattern = re
	}
	bl, err := compileBlacklist(blacklistPatterns)
	if err != nil {
		return NewError(KindInvalidArgument, err.Error())
	}

	names = dedupeSorted(names)
	listing := EntityListing{
		Kind:      kind,
		Namespace: normalizeNamespace(args.Namespace),
		Pattern:   args.Pattern,
		Total:     len(names),
	}
	if listing.Pattern == "" {
		listing.Pattern = ".*"
	}

	names = inNamespaceAll(names, args.Namespace)
	listing.InNamespace = len(names)
	if pattern != nil {
		names = keep(names, pattern)
	}
	listing.MatchPattern = len(names)

	switch {
	case listing.Total == 0:
		names = []string{fmt.Sprintf("There are currently no %ss available in the system.", kind)}
	case listing.InNamespace == 0:
		names = []string{fmt.Sprintf("There are currently no %ss available using the '%s' namespace.", kind, listing.Namespace)}
	case listing.MatchPattern == 0:
		names = []string{fmt.Sprintf("There are currently no %ss available matching the specified pattern.", kind)}
	default:
		names = bl.filter(names)
		if len(names) == 0 {
			names = []string{fmt.Sprintf("There are currently no %ss available that are not blacklisted.", kind)}
		}
	}

	listing.Names = names
	return NewResult(&listing)
}

func dedupeSorted(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
