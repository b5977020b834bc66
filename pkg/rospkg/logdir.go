// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package rospkg

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogDir resolves the ROS log directory: ROS_LOG_DIR, then $ROS_HOME/log,
// then ~/.ros/log. The directory is not required to exist.
func LogDir() (string, error) {
	if dir := os.Getenv("ROS_LOG_DIR"); dir != "" {
		return dir, nil
	}
	if home := os.Getenv("ROS_HOME"); home != "" {
		return filepath.Join(home, "log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve log directory: %w", err)
	}
	return filepath.Join(home, ".ros", "log"), nil
}
