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

package tools

import (
	"context"
	"fmt"

	"github.com/kraklabs/rosa/pkg/ros"
	"github.com/kraklabs/rosa/pkg/rospkg"
)

// MockGraph is a mock implementation of the GraphClient interface for unit
// testing. Unset funcs answer with an empty graph or ErrNotFound.
//
// Usage:
//
//	graph := NewMockGraphWithState(stateOf(
//	    map[string][]string{"/chatter": {"/talker"}},
//	    map[string][]string{"/chatter": {"/listener"}},
//	))
type MockGraph struct {
	SystemStateFunc func(ctx context.Context) (*ros.SystemState, error)
	TopicInfoFunc   func(ctx context.Context, topic string) (string, error)
	NodeInfoFunc    func(ctx context.Context, node string) (*ros.NodeInfo, error)
	ServiceInfoFunc func(ctx context.Context, service string) (*ros.ServiceInfo, error)
}

// SystemState implements the GraphClient interface.
func (m *MockGraph) SystemState(ctx context.Context) (*ros.SystemState, error) {
	if m.SystemStateFunc != nil {
		return m.SystemStateFunc(ctx)
	}
	return &ros.SystemState{}, nil
}

// TopicInfo implements the GraphClient interface.
func (m *MockGraph) TopicInfo(ctx context.Context, topic string) (string, error) {
	if m.TopicInfoFunc != nil {
		return m.TopicInfoFunc(ctx, topic)
	}
	return "", fmt.Errorf("topic %s: %w", topic, ros.ErrNotFound)
}

// NodeInfo implements the GraphClient interface.
func (m *MockGraph) NodeInfo(ctx context.Context, node string) (*ros.NodeInfo, error) {
	if m.NodeInfoFunc != nil {
		return m.NodeInfoFunc(ctx, node)
	}
	return nil, fmt.Errorf("node %s: %w", node, ros.ErrNotFound)
}

// ServiceInfo implements the GraphClient interface.
func (m *MockGraph) ServiceInfo(ctx context.Context, service string) (*ros.ServiceInfo, error) {
	if m.ServiceInfoFunc != nil {
		return m.ServiceInfoFunc(ctx, service)
	}
	return nil, fmt.Errorf("service %s: %w", service, ros.ErrNotFound)
}

// NewMockGraphWithState creates a mock graph that always reports state.
func NewMockGraphWithState(state *ros.SystemState) *MockGraph {
	return &MockGraph{
		SystemStateFunc: func(context.Context) (*ros.SystemState, error) {
			return state, nil
		},
	}
}

// NewMockGraphWithError creates a mock graph whose every call fails with err.
func NewMockGraphWithError(err error) *MockGraph {
	return &MockGraph{
		SystemStateFunc: func(context.Context) (*ros.SystemState, error) { return nil, err },
		TopicInfoFunc:   func(context.Context, string) (string, error) { return "", err },
		NodeInfoFunc:    func(context.Context, string) (*ros.NodeInfo, error) { return nil, err },
		ServiceInfoFunc: func(context.Context, string) (*ros.ServiceInfo, error) { return nil, err },
	}
}

// MockParams is a mock implementation of the ParamClient interface backed by
// a map. Set SetParamFunc to fail writes.
type MockParams struct {
	Values       map[string]any
	Err          error
	SetParamFunc func(ctx context.Context, key string, value any) error
}

// ParamNames implements the ParamClient interface.
func (m *MockParams) ParamNames(context.Context) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	names := make([]string, 0, len(m.Values))
	for k := range m.Values {
		names = append(names, k)
	}
	return dedupeSorted(names), nil
}

// GetParam implements the ParamClient interface.
func (m *MockParams) GetParam(_ context.Context, key string) (any, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	v, ok := m.Values[key]
	if !ok {
		return nil, fmt.Errorf("getParam: %w: Parameter [%s] is not set", ros.ErrNotFound, key)
	}
	return v, nil
}

// SetParam implements the ParamClient interface.
func (m *MockParams) SetParam(ctx context.Context, key string, value any) error {
	if m.SetParamFunc != nil {
		return m.SetParamFunc(ctx, key, value)
	}
	if m.Err != nil {
		return m.Err
	}
	if m.Values == nil {
		m.Values = make(map[string]any)
	}
	m.Values[key] = value
	return nil
}

// MockPackages is a mock implementation of the PackageSource interface.
type MockPackages struct {
	Catalog  *rospkg.Catalog
	RootList []string
	Dir      string
	Err      error
}

// Crawl implements the PackageSource interface.
func (m *MockPackages) Crawl(context.Context) (*rospkg.Catalog, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Catalog == nil {
		return rospkg.NewCatalog(), nil
	}
	return m.Catalog, nil
}

// Roots implements the PackageSource interface.
func (m *MockPackages) Roots() []string {
	return m.RootList
}

// LogDir implements the PackageSource interface.
func (m *MockPackages) LogDir() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Dir, nil
}

// stateOf builds a system state from topic -> nodes maps. Topics are added
// in sorted order.
func stateOf(pubs, subs map[string][]string) *ros.SystemState {
	return &ros.SystemState{
		Publishers:  associations(pubs),
		Subscribers: associations(subs),
	}
}

func associations(m map[string][]string) []ros.Association {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	names = dedupeSorted(names)
	out := make([]ros.Association, 0, len(names))
	for _, n := range names {
		out = append(out, ros.Association{Name: n, Nodes: m[n]})
	}
	return out
}
