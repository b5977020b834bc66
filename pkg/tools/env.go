// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"log/slog"

	"github.com/kraklabs/rosa/pkg/ros"
	"github.com/kraklabs/rosa/pkg/rospkg"
)

// DefaultReservedNamespace holds parameters written on behalf of the agent.
const DefaultReservedNamespace = "/rosa"

// GraphClient answers graph queries. *ros.Master implements it.
type GraphClient interface {
	SystemState(ctx context.Context) (*ros.SystemState, error)
	TopicInfo(ctx context.Context, topic string) (string, error)
	NodeInfo(ctx context.Context, node string) (*ros.NodeInfo, error)
	ServiceInfo(ctx context.Context, service string) (*ros.ServiceInfo, error)
}

// ParamClient reads and writes the parameter server. *ros.Master
// implements it.
type ParamClient interface {
	ParamNames(ctx context.Context) ([]string, error)
	GetParam(ctx context.Context, key string) (any, error)
	SetParam(ctx context.Context, key string, value any) error
}

// PackageSource indexes packages on disk. *rospkg.Index implements it.
type PackageSource interface {
	Crawl(ctx context.Context) (*rospkg.Catalog, error)
	Roots() []string
	LogDir() (string, error)
}

// Env is what every tool runs against.
type Env struct {
	Graph    GraphClient
	Params   ParamClient
	Packages PackageSource

	// Blacklist patterns apply to every call in addition to the per-call
	// blacklist argument.
	Blacklist []string

	// ReservedNamespace is where is_rosa_param writes go. Empty means
	// DefaultReservedNamespace.
	ReservedNamespace string

	Logger *slog.Logger
}

func (e *Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Env) reservedNamespace() string {
	if e.ReservedNamespace == "" {
		return DefaultReservedNamespace
	}
	return e.ReservedNamespace
}

// blacklist merges the configured and per-call patterns.
func (e *Env) blacklist(extra []string) []string {
	out := make([]string, 0, len(e.Blacklist)+len(extra))
	seen := make(map[string]struct{})
	for _, p := range append(append([]string{}, e.Blacklist...), extra...) {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
