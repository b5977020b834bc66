// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package rospkg

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	manifestFile = "package.xml"
	ignoreMarker = "CATKIN_IGNORE"
)

// IndexConfig configures an Index.
type IndexConfig struct {
	// Roots overrides ROS_PACKAGE_PATH.
	Roots []string

	// LogDir overrides the ROS_LOG_DIR / ROS_HOME lookup.
	LogDir string

	// Logger for crawl diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Index locates packages under a list of roots.
type Index struct {
	roots  []string
	logDir string
	logger *slog.Logger
}

// NewIndex creates an index. Without configured roots it reads
// ROS_PACKAGE_PATH.
func NewIndex(cfg IndexConfig) *Index {
	roots := cfg.Roots
	if len(roots) == 0 {
		roots = RootsFromEnv()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{roots: roots, logDir: cfg.LogDir, logger: logger}
}

// RootsFromEnv splits ROS_PACKAGE_PATH into its non-empty entries.
func RootsFromEnv() []string {
	return SplitRoots(os.Getenv("ROS_PACKAGE_PATH"))
}

// SplitRoots splits a path list using the OS list separator.
func SplitRoots(list string) []string {
	var roots []string
	for _, r := range filepath.SplitList(list) {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	return roots
}

// Roots returns the package roots in search order.
func (ix *Index) Roots() []string {
	out := make([]string, len(ix.roots))
	copy(out, ix.roots)
	return out
}

// LogDir resolves the ROS log directory.
func (ix *Index) LogDir() (string, error) {
	if ix.logDir != "" {
		return ix.logDir, nil
	}
	return LogDir()
}

// Crawl walks every root and returns the packages found. Roots that do not
// exist are skipped. Manifests that fail to parse are logged and skipped.
func (ix *Index) Crawl(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	catalog := newCatalog()

	for _, root := range ix.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					ix.logger.Debug("rospkg.crawl.root_missing", "root", root)
					return fs.SkipDir
				}
				ix.logger.Debug("rospkg.crawl.unreadable", "path", path, "err", err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			if exists(filepath.Join(path, ignoreMarker)) {
				return fs.SkipDir
			}
			if !exists(filepath.Join(path, manifestFile)) {
				return nil
			}

			manifest, err := ReadManifest(filepath.Join(path, manifestFile))
			if err != nil {
				ix.logger.Warn("rospkg.crawl.bad_manifest", "path", path, "err", err)
				return fs.SkipDir
			}
			if !catalog.add(&Package{Name: manifest.Name, Path: path, Manifest: manifest}) {
				ix.logger.Debug("rospkg.crawl.shadowed", "package", manifest.Name, "path", path)
			}
			return fs.SkipDir
		})
		if err != nil {
			return nil, err
		}
	}

	ix.logger.Debug("rospkg.crawl.done",
		"roots", len(ix.roots),
		"packages", len(catalog.packages),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return catalog, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
