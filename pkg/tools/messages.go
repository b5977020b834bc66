// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"

	"github.com/kraklabs/rosa/internal/contract"
)

// MessageInfo returns the definition of each message type, comments
// stripped.
func MessageInfo(ctx context.Context, env *Env, types []string) *ToolResult {
	if res := requireNames("msg_type", types); res != nil {
		return res
	}
	catalog, err := env.Packages.Crawl(ctx)
	if err != nil {
		return errorFrom("Failed to index ROS packages", err)
	}
	details, err := fetchEach(ctx, types, contract.ValidateTypeName,
		func(_ context.Context, typ string) (any, error) {
			return catalog.MessageText(typ, false)
		})
	if err != nil {
		return errorFrom("Failed to get ROS message details", err)
	}
	return NewResult(details)
}

// ServiceTypeInfo returns the definition of each service type. With raw,
// comments and blank lines are kept.
func ServiceTypeInfo(ctx context.Context, env *Env, types []string, raw bool) *ToolResult {
	if res := requireNames("srv_type", types); res != nil {
		return res
	}
	catalog, err := env.Packages.Crawl(ctx)
	if err != nil {
		return errorFrom("Failed to index ROS packages", err)
	}
	details, err := fetchEach(ctx, types, contract.ValidateTypeName,
		func(_ context.Context, typ string) (any, error) {
			return catalog.ServiceText(typ, raw)
		})
	if err != nil {
		return errorFrom("Failed to get ROS service type details", err)
	}
	return NewResult(details)
}
