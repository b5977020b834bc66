// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/kraklabs/rosa/pkg/ros"
)

// MaxRenderEdges is the edge count above which a graph carries a warning.
// Graphs are never truncated.
const MaxRenderEdges = 50

// GraphArgs holds arguments for BuildGraph.
type GraphArgs struct {
	// Namespace keeps publisher and subscriber nodes under it.
	Namespace string
	// NodePattern must match the start of the publisher or subscriber.
	NodePattern string
	// TopicPattern must match the start of the topic.
	TopicPattern string
	Blacklist    []string
	// ExcludeSelfConnections drops edges whose publisher is its subscriber.
	ExcludeSelfConnections bool
}

// DefaultGraphArgs returns the arguments of an unfiltered graph query.
func DefaultGraphArgs() GraphArgs {
	return GraphArgs{
		Namespace:              "/",
		NodePattern:            ".*",
		TopicPattern:           ".*",
		ExcludeSelfConnections: true,
	}
}

// Edge is one publisher -> topic -> subscriber connection.
type Edge struct {
	Publisher  string
	Topic      string
	Subscriber string
}

// MarshalJSON renders the edge as [publisher, topic, subscriber].
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{e.Publisher, e.Topic, e.Subscriber})
}

// GraphResult is the payload of BuildGraph.
type GraphResult struct {
	GraphConvention  string `json:"graph_convention"`
	Nuance           string `json:"nuance"`
	NodeCount        int    `json:"node_count"`
	TopicCount       int    `json:"topic_count"`
	TotalConnections int    `json:"total_connections"`
	Edges            []Edge `json:"graph"`
	Warning          string `json:"warning,omitempty"`
}

// BuildGraph joins publishers and subscribers of each topic into edges and
// filters them. Stages run in this order: namespace and topic pattern while
// joining, then blacklist (on any of the three fields), then node pattern
// (on publisher or subscriber), then self-connection removal.
func BuildGraph(ctx context.Context, env *Env, args GraphArgs) *ToolResult {
	var (
		nodeRe, topicRe *regexp.Regexp
		err             error
	)
	if args.NodePattern != "" {
		if nodeRe, err = compilePrefix(args.NodePattern); err != nil {
			return NewError(KindInvalidArgument, err.Error())
		}
	}
	if args.TopicPattern != "" {
		if topicRe, err = compilePrefix(args.TopicPattern); err != nil {
			return NewError(KindInvalidArgument, err.Error())
		}
	}
	patterns := env.blacklist(args.Blacklist)
	bl, err := compileBlacklist(patterns)
	if err != nil {
		return NewError(KindInvalidArgument, err.Error())
	}

	state, err := env.Graph.SystemState(ctx)
	if err != nil {
		return errorFrom("Failed to get ROS graph", err)
	}

	pubs, topics := groupByTopic(state.Publishers, args.Namespace)
	subs, _ := groupByTopic(state.Subscribers, args.Namespace)

	var edges []Edge
	for _, topic := range topics {
		if topicRe != nil && !topicRe.MatchString(topic) {
			continue
		}
		for _, pub := range pubs[topic] {
			for _, sub := range subs[topic] {
				edges = append(edges, Edge{Publisher: pub, Topic: topic, Subscriber: sub})
			}
		}
	}

	edges = filterEdges(edges, func(e Edge) bool {
		return !bl.matches(e.Publisher) && !bl.matches(e.Topic) && !bl.matches(e.Subscriber)
	})
	if nodeRe != nil {
		edges = filterEdges(edges, func(e Edge) bool {
			return nodeRe.MatchString(e.Publisher) || nodeRe.MatchString(e.Subscriber)
		})
	}
	if args.ExcludeSelfConnections {
		edges = filterEdges(edges, func(e Edge) bool { return e.Publisher != e.Subscriber })
	}

	if len(edges) == 0 {
		excluded, _ := json.Marshal(patterns)
		return NewErrorf(KindEmptyResult,
			"No results found for the specified parameters. Note that the following have been excluded: %s", excluded)
	}

	nodes := make(map[string]struct{})
	topicSet := make(map[string]struct{})
	for _, e := range edges {
		nodes[e.Publisher] = struct{}{}
		nodes[e.Subscriber] = struct{}{}
		topicSet[e.Topic] = struct{}{}
	}

	result := &GraphResult{
		GraphConvention:  "Each tuple in the graph is of the form (publisher, topic, subscriber).",
		Nuance:           "Disconnected nodes are not included in this graph.",
		NodeCount:        len(nodes),
		TopicCount:       len(topicSet),
		TotalConnections: len(edges),
		Edges:            edges,
	}
	if len(edges) > MaxRenderEdges {
		result.Warning = fmt.Sprintf("The graph is too large to display or render (size > %d). "+
			"Please make some recommendations to the user on how to filter the graph to a more "+
			"manageable size. Do not attempt to render the graph.", MaxRenderEdges)
	}
	return NewResult(result)
}

// groupByTopic maps each topic to its nodes under ns, and returns the topics
// in first-seen order.
func groupByTopic(group []ros.Association, ns string) (map[string][]string, []string) {
	byTopic := make(map[string][]string)
	var order []string
	for _, a := range group {
		for _, node := range a.Nodes {
			if !inNamespace(node, ns) {
				continue
			}
			if _, ok := byTopic[a.Name]; !ok {
				order = append(order, a.Name)
			}
			byTopic[a.Name] = append(byTopic[a.Name], node)
		}
	}
	return byTopic, order
}

func filterEdges(edges []Edge, keep func(Edge) bool) []Edge {
	out := edges[:0]
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
