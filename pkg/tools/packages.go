// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"strings"

	"github.com/kraklabs/rosa/internal/contract"
)

// PackageListArgs holds arguments for ListPackages.
type PackageListArgs struct {
	// Pattern keeps packages it matches anywhere. Empty or ".*" keeps all.
	Pattern string
	// IgnoreMsgs drops packages whose name ends in "msgs".
	IgnoreMsgs bool
	Blacklist  []string
}

// PackageListing is the payload of ListPackages.
type PackageListing struct {
	Total        int      `json:"total"`
	MsgPkgCount  int      `json:"msg_pkg_count"`
	MatchPattern int      `json:"match_pattern"`
	Packages     []string `json:"packages"`
}

// ListPackages lists the packages found under the package roots.
func ListPackages(ctx context.Context, env *Env, args PackageListArgs) *ToolResult {
	bl, err := compileBlacklist(env.blacklist(args.Blacklist))
	if err != nil {
		return NewError(KindInvalidArgument, err.Error())
	}

	catalog, err := env.Packages.Crawl(ctx)
	if err != nil {
		return errorFrom("Failed to index ROS packages", err)
	}

	packages := catalog.List()
	listing := &PackageListing{Total: len(packages)}

	if args.IgnoreMsgs {
		kept := packages[:0]
		for _, p := range packages {
			if !strings.HasSuffix(p, "msgs") {
				kept = append(kept, p)
			}
		}
		packages = kept
	}
	listing.MsgPkgCount = listing.Total - len(packages)

	if args.Pattern != "" && args.Pattern != ".*" {
		re, err := compileSearch(args.Pattern)
		if err != nil {
			return NewError(KindInvalidArgument, err.Error())
		}
		packages = keep(packages, re)
	}
	packages = bl.filter(packages)

	listing.MatchPattern = len(packages)
	listing.Packages = packages
	return NewResult(listing)
}

// PackageInfo returns the path, dependents and manifest attributes of each
// package.
func PackageInfo(ctx context.Context, env *Env, packages []string) *ToolResult {
	if res := requireNames("packages", packages); res != nil {
		return res
	}
	catalog, err := env.Packages.Crawl(ctx)
	if err != nil {
		return errorFrom("Failed to index ROS packages", err)
	}

	details, err := fetchEach(ctx, packages, contract.ValidatePackageName,
		func(_ context.Context, name string) (any, error) {
			path, err := catalog.Path(name)
			if err != nil {
				return nil, err
			}
			dependents, err := catalog.DependsOn(name)
			if err != nil {
				return nil, err
			}
			manifest, err := catalog.Manifest(name)
			if err != nil {
				return nil, err
			}

			record := manifest.Attributes()
			record["path"] = path
			record["dependents"] = dependents
			return record, nil
		})
	if err != nil {
		return errorFrom("Failed to get ROS package details", err)
	}
	return NewResult(details)
}

// PackageRoots returns the package roots in search order.
func PackageRoots(_ context.Context, env *Env) *ToolResult {
	roots := env.Packages.Roots()
	if roots == nil {
		roots = []string{}
	}
	return NewResult(roots)
}
