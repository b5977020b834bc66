// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ros

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Association is one row of the master's system state: a topic (or service)
// name and the nodes attached to it.
type Association struct {
	Name  string
	Nodes []string
}

// SystemState is a snapshot of publishers, subscribers and service providers
// as reported by getSystemState.
type SystemState struct {
	Publishers  []Association
	Subscribers []Association
	Services    []Association
}

// Topics returns the sorted, deduplicated names of every topic with at least
// one publisher or subscriber.
func (s *SystemState) Topics() []string {
	return uniqueNames(s.Publishers, s.Subscribers)
}

// Nodes returns the sorted, deduplicated names of every node that publishes,
// subscribes or provides a service.
func (s *SystemState) Nodes() []string {
	seen := make(map[string]struct{})
	for _, group := range [][]Association{s.Publishers, s.Subscribers, s.Services} {
		for _, a := range group {
			for _, n := range a.Nodes {
				seen[n] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// ServiceNames returns the sorted service names.
func (s *SystemState) ServiceNames() []string {
	return uniqueNames(s.Services)
}

// NodeInfo describes a single node as seen by the master.
type NodeInfo struct {
	Node          string      `json:"node"`
	URI           string      `json:"uri"`
	PID           int         `json:"pid,omitempty"`
	Reachable     bool        `json:"reachable"`
	Publications  []TopicType `json:"publications"`
	Subscriptions []TopicType `json:"subscriptions"`
	Services      []string    `json:"services"`
}

// TopicType pairs a topic name with its message type.
type TopicType struct {
	Topic string `json:"topic"`
	Type  string `json:"type"`
}

// ServiceInfo describes a service endpoint.
type ServiceInfo struct {
	Service string   `json:"service"`
	URI     string   `json:"uri"`
	Nodes   []string `json:"nodes"`
}

// SystemState queries getSystemState.
func (m *Master) SystemState(ctx context.Context) (*SystemState, error) {
	const method = "getSystemState"
	v, err := m.call(ctx, m.uri, method)
	if err != nil {
		return nil, err
	}
	groups, err := asSlice(method, v)
	if err != nil {
		return nil, err
	}
	if len(groups) != 3 {
		return nil, fmt.Errorf("%s: %w: expected 3 groups, got %d", method, ErrMalformed, len(groups))
	}

	parsed := make([][]Association, 3)
	for i, g := range groups {
		parsed[i], err = parseAssociations(method, g)
		if err != nil {
			return nil, err
		}
	}

	return &SystemState{
		Publishers:  parsed[0],
		Subscribers: parsed[1],
		Services:    parsed[2],
	}, nil
}

func parseAssociations(method string, v any) ([]Association, error) {
	rows, err := asSlice(method, v)
	if err != nil {
		return nil, err
	}
	out := make([]Association, 0, len(rows))
	for _, row := range rows {
		pair, err := asSlice(method, row)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("%s: %w: association has %d elements", method, ErrMalformed, len(pair))
		}
		name, err := asString(method, pair[0])
		if err != nil {
			return nil, err
		}
		nodes, err := asStrings(method, pair[1])
		if err != nil {
			return nil, err
		}
		out = append(out, Association{Name: name, Nodes: nodes})
	}
	return out, nil
}

// TopicTypes queries getTopicTypes and returns topic name -> message type.
func (m *Master) TopicTypes(ctx context.Context) (map[string]string, error) {
	const method = "getTopicTypes"
	v, err := m.call(ctx, m.uri, method)
	if err != nil {
		return nil, err
	}
	rows, err := asSlice(method, v)
	if err != nil {
		return nil, err
	}
	types := make(map[string]string, len(rows))
	for _, row := range rows {
		pair, err := asStrings(method, row)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("%s: %w: topic type has %d elements", method, ErrMalformed, len(pair))
		}
		types[pair[0]] = pair[1]
	}
	return types, nil
}

// LookupNode returns the XML-RPC URI of a node.
func (m *Master) LookupNode(ctx context.Context, node string) (string, error) {
	const method = "lookupNode"
	v, err := m.call(ctx, m.uri, method, node)
	if err != nil {
		return "", err
	}
	return asString(method, v)
}

// LookupService returns the rosrpc:// URI of a service.
func (m *Master) LookupService(ctx context.Context, service string) (string, error) {
	const method = "lookupService"
	v, err := m.call(ctx, m.uri, method, service)
	if err != nil {
		return "", err
	}
	return asString(method, v)
}

// TopicInfo renders the human-readable status block for a topic, in the same
// layout as `rostopic info`:
//
//	Type: std_msgs/String
//
//	Publishers:
//	 * /talker (http://host:4242/)
//
//	Subscribers: None
func (m *Master) TopicInfo(ctx context.Context, topic string) (string, error) {
	state, err := m.SystemState(ctx)
	if err != nil {
		return "", err
	}
	types, err := m.TopicTypes(ctx)
	if err != nil {
		return "", err
	}

	pubs := nodesFor(state.Publishers, topic)
	subs := nodesFor(state.Subscribers, topic)
	typ, known := types[topic]
	if !known && len(pubs) == 0 && len(subs) == 0 {
		return "", fmt.Errorf("topic %s: %w", topic, ErrNotFound)
	}
	if !known {
		typ = "*"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Type: %s\n\n", typ)
	m.writeNodeSection(ctx, &sb, "Publishers:", pubs)
	m.writeNodeSection(ctx, &sb, "Subscribers:", subs)
	return sb.String(), nil
}

func (m *Master) writeNodeSection(ctx context.Context, sb *strings.Builder, header string, nodes []string) {
	if len(nodes) == 0 {
		sb.WriteString(header + " None\n\n")
		return
	}
	sb.WriteString(header + " \n")
	for _, n := range nodes {
		if uri, err := m.LookupNode(ctx, n); err == nil {
			fmt.Fprintf(sb, " * %s (%s)\n", n, uri)
		} else {
			fmt.Fprintf(sb, " * %s\n", n)
		}
	}
	sb.WriteString("\n")
}

// NodeInfo collects what the master knows about a node plus its pid from the
// node's own slave API. An unreachable node is not an error: Reachable is
// false and PID is zero.
func (m *Master) NodeInfo(ctx context.Context, node string) (*NodeInfo, error) {
	uri, err := m.LookupNode(ctx, node)
	if err != nil {
		return nil, err
	}
	state, err := m.SystemState(ctx)
	if err != nil {
		return nil, err
	}
	types, err := m.TopicTypes(ctx)
	if err != nil {
		return nil, err
	}

	info := &NodeInfo{
		Node:          node,
		URI:           uri,
		Publications:  topicsOf(state.Publishers, node, types),
		Subscriptions: topicsOf(state.Subscribers, node, types),
		Services:      []string{},
	}
	for _, a := range state.Services {
		if contains(a.Nodes, node) {
			info.Services = append(info.Services, a.Name)
		}
	}
	sort.Strings(info.Services)

	if pid, err := m.nodePID(ctx, uri); err == nil {
		info.PID = pid
		info.Reachable = true
	} else {
		m.logger.Debug("ros.node.unreachable", "node", node, "uri", uri, "err", err)
	}
	return info, nil
}

func (m *Master) nodePID(ctx context.Context, uri string) (int, error) {
	const method = "getPid"
	v, err := m.call(ctx, uri, method)
	if err != nil {
		return 0, err
	}
	pid, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("%s: %w: pid is %T", method, ErrMalformed, v)
	}
	return pid, nil
}

// ServiceInfo resolves a service URI and the nodes providing it.
func (m *Master) ServiceInfo(ctx context.Context, service string) (*ServiceInfo, error) {
	uri, err := m.LookupService(ctx, service)
	if err != nil {
		return nil, err
	}
	state, err := m.SystemState(ctx)
	if err != nil {
		return nil, err
	}
	nodes := nodesFor(state.Services, service)
	if nodes == nil {
		nodes = []string{}
	}
	return &ServiceInfo{Service: service, URI: uri, Nodes: nodes}, nil
}

func nodesFor(group []Association, name string) []string {
	var out []string
	for _, a := range group {
		if a.Name == name {
			out = append(out, a.Nodes...)
		}
	}
	return out
}

func topicsOf(group []Association, node string, types map[string]string) []TopicType {
	out := []TopicType{}
	for _, a := range group {
		if contains(a.Nodes, node) {
			out = append(out, TopicType{Topic: a.Name, Type: types[a.Name]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

func uniqueNames(groups ...[]Association) []string {
	seen := make(map[string]struct{})
	for _, group := range groups {
		for _, a := range group {
			seen[a.Name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
