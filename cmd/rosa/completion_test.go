// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"
	"testing"
)

func TestCompletionScript(t *testing.T) {
	tests := []struct {
		shell string
		want  []string
	}{
		{"bash", []string{"complete -F _rosa_completion rosa", "rosgraph_get", "roslog_get_log_directory", "--master-uri"}},
		{"zsh", []string{"#compdef rosa", "'call:Run one tool'", "rospkg_info"}},
		{"fish", []string{`-a "status"`, `__fish_seen_subcommand_from call" -a "rosparam_set"`, "-l no-color"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			script, err := completionScript(tt.shell)
			if err != nil {
				t.Fatalf("completionScript(%q) error = %v", tt.shell, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(script, w) {
					t.Errorf("%s script missing %q", tt.shell, w)
				}
			}
		})
	}

	if _, err := completionScript("tcsh"); err == nil {
		t.Error("completionScript(tcsh) should fail")
	}
}

func TestFirstSentence(t *testing.T) {
	if got := firstSentence("Get the ROS graph. Node patterns must match."); got != "Get the ROS graph" {
		t.Errorf("firstSentence() = %q", got)
	}
	if got := firstSentence("Returns a list of ROS topics."); got != "Returns a list of ROS topics" {
		t.Errorf("firstSentence() = %q", got)
	}
}
