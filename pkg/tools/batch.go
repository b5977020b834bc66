// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/kraklabs/rosa/internal/contract"
	"github.com/kraklabs/rosa/pkg/ros"
)

// Details maps each requested name to its record or to an EntityError, in
// request order.
type Details = orderedmap.OrderedMap[string, any]

// fetchEach looks up every name and collects the results. A failure for one
// name is recorded under that name and the batch continues; only an
// unreachable registry stops the batch, and that error is returned.
func fetchEach(
	ctx context.Context,
	names []string,
	validate func(string) *contract.ValidationResult,
	fetch func(context.Context, string) (any, error),
) (*Details, error) {
	details := orderedmap.New[string, any]()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if validate != nil {
			if res := validate(name); !res.OK {
				details.Set(name, entityError(invalidArgf("%s", res.Message)))
				continue
			}
		}
		v, err := fetch(ctx, name)
		if errors.Is(err, ros.ErrUnavailable) {
			return nil, err
		}
		if err != nil {
			details.Set(name, entityError(err))
			continue
		}
		details.Set(name, v)
	}
	return details, nil
}

// requireNames rejects an empty batch.
func requireNames(arg string, names []string) *ToolResult {
	if len(names) == 0 {
		return NewErrorf(KindInvalidArgument, "%s must list at least one name", arg)
	}
	return nil
}
