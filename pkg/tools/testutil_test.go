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
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestEnv builds an Env with a discarded logger. Nil collaborators are
// replaced by empty mocks.
func newTestEnv(graph GraphClient, params ParamClient, pkgs PackageSource) *Env {
	if graph == nil {
		graph = &MockGraph{}
	}
	if params == nil {
		params = &MockParams{}
	}
	if pkgs == nil {
		pkgs = &MockPackages{}
	}
	return &Env{
		Graph:    graph,
		Params:   params,
		Packages: pkgs,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// decode round-trips a result through its JSON form.
//
// Example:
//
//	got := decode(t, ListTopics(ctx, env, ListArgs{}))
//	assert.Equal(t, float64(3), got["total"])
func decode(t *testing.T, r *ToolResult) map[string]any {
	t.Helper()
	require.NotNil(t, r)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

// assertErrorKind fails the test unless r is an error of the given kind.
func assertErrorKind(t *testing.T, r *ToolResult, kind ErrorKind) {
	t.Helper()
	require.NotNil(t, r)
	assert.True(t, r.IsError, "expected error result, got %s", r.Render())
	assert.Equal(t, kind, r.Kind, r.Text)
}

// assertOK fails the test if r is an error.
func assertOK(t *testing.T, r *ToolResult) {
	t.Helper()
	require.NotNil(t, r)
	require.False(t, r.IsError, "unexpected error result: %s (%s)", r.Text, r.Kind)
}
