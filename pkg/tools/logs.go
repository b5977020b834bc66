// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DefaultMinLogSize is the smallest log entry ListLogs reports by default.
const DefaultMinLogSize = 2048

const logNotes = "Recommend only displaying the top N log files when you present this list to the user."

// LogListing is the payload of ListLogs.
type LogListing struct {
	Directory string                                `json:"log_file_directory"`
	Logs      *orderedmap.OrderedMap[string, int64] `json:"logs_with_size_in_bytes"`
	Notes     string                                `json:"notes"`
}

type logEntry struct {
	name string
	size int64
}

// ListLogs lists the entries of the log directory that are at least minSize
// bytes, largest first. A directory counts as the total size of the files
// below it. Symlinks such as "latest" are skipped.
func ListLogs(ctx context.Context, env *Env, minSize int64, blacklistPatterns []string) *ToolResult {
	bl, err := compileBlacklist(env.blacklist(blacklistPatterns))
	if err != nil {
		return NewError(KindInvalidArgument, err.Error())
	}
	dir, err := env.Packages.LogDir()
	if err != nil {
		return errorFrom("Failed to resolve ROS log directory", err)
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return NewErrorf(KindNotFound, "ROS log directory %s does not exist", withSlash(dir))
	}
	if err != nil {
		return errorFrom("Failed to read ROS log directory", err)
	}

	var logs []logEntry
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return errorFrom("Failed to list ROS logs", err)
		}
		if e.Type()&fs.ModeSymlink != 0 || bl.matches(e.Name()) {
			continue
		}
		size, err := entrySize(filepath.Join(dir, e.Name()), e)
		if err != nil {
			env.logger().Debug("tools.logs.unreadable", "entry", e.Name(), "err", err)
			continue
		}
		if size >= minSize {
			logs = append(logs, logEntry{name: e.Name(), size: size})
		}
	}

	sort.Slice(logs, func(i, j int) bool {
		if logs[i].size != logs[j].size {
			return logs[i].size > logs[j].size
		}
		return logs[i].name < logs[j].name
	})

	sizes := orderedmap.New[string, int64]()
	for _, l := range logs {
		sizes.Set(l.name, l.size)
	}
	return NewResult(&LogListing{Directory: withSlash(dir), Logs: sizes, Notes: logNotes})
}

// LogDirectory returns the log directory path with a trailing slash.
func LogDirectory(_ context.Context, env *Env) *ToolResult {
	dir, err := env.Packages.LogDir()
	if err != nil {
		return errorFrom("Failed to resolve ROS log directory", err)
	}
	return NewResult(withSlash(dir))
}

func entrySize(path string, e fs.DirEntry) (int64, error) {
	if !e.IsDir() {
		info, err := e.Info()
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
		}
		return nil
	})
	return total, err
}

func withSlash(dir string) string {
	return strings.TrimRight(dir, "/") + "/"
}
