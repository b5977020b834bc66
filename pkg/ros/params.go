// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ros

import (
	"context"
	"sort"
)

// ParamNames lists every key on the parameter server, sorted.
func (m *Master) ParamNames(ctx context.Context) ([]string, error) {
	const method = "getParamNames"
	v, err := m.call(ctx, m.uri, method)
	if err != nil {
		return nil, err
	}
	names, err := asStrings(method, v)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// GetParam reads one parameter. Unset keys return ErrNotFound. Namespaces
// come back as map[string]any.
func (m *Master) GetParam(ctx context.Context, key string) (any, error) {
	return m.call(ctx, m.uri, "getParam", key)
}

// SetParam writes one parameter. value must be encodable as XML-RPC:
// strings, ints, floats, bools, slices and string-keyed maps.
func (m *Master) SetParam(ctx context.Context, key string, value any) error {
	_, err := m.call(ctx, m.uri, "setParam", key, value)
	return err
}
