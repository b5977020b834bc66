// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"

	"github.com/kraklabs/rosa/internal/contract"
)

// NodeInfo fetches what the master knows about each node, plus its pid when
// the node answers.
func NodeInfo(ctx context.Context, env *Env, nodes []string) *ToolResult {
	if res := requireNames("nodes", nodes); res != nil {
		return res
	}
	details, err := fetchEach(ctx, nodes, contract.ValidateResourceName,
		func(ctx context.Context, node string) (any, error) {
			return env.Graph.NodeInfo(ctx, node)
		})
	if err != nil {
		return errorFrom("Failed to get ROS node details", err)
	}
	return NewResult(details)
}
