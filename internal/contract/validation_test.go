// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResourceName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		ok   bool
	}{
		{"root", "/", true},
		{"global", "/turtle1/cmd_vel", true},
		{"relative", "chatter", true},
		{"private", "~param", true},
		{"underscore", "/robot_state_publisher", true},
		{"empty", "", false},
		{"double slash", "/a//b", false},
		{"trailing slash", "/a/", false},
		{"space", "/a b", false},
		{"dash", "/a-b", false},
		{"leading digit", "1abc", false},
		{"segment digit", "/a/1b", false},
		{"tilde inside", "/a~b", false},
		{"too long", "/" + strings.Repeat("a", NameMaxBytes), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateResourceName(tt.in)
			assert.Equal(t, tt.ok, res.OK, res.Message)
			if !tt.ok {
				assert.NotEmpty(t, res.Message)
			}
		})
	}
}

func TestValidatePackageName(t *testing.T) {
	for _, name := range []string{"turtlesim", "std_msgs", "rosa-demo", "A1"} {
		assert.True(t, ValidatePackageName(name).OK, name)
	}
	for _, name := range []string{"", "1pkg", "pkg/x", "pkg name", "_pkg"} {
		assert.False(t, ValidatePackageName(name).OK, name)
	}
}

func TestValidateTypeName(t *testing.T) {
	for _, name := range []string{"std_msgs/String", "String", "geometry_msgs/Twist"} {
		assert.True(t, ValidateTypeName(name).OK, name)
	}
	for _, name := range []string{"", "std_msgs/", "/String", "a/b/c", "std_msgs/1x", "bad pkg/T"} {
		assert.False(t, ValidateTypeName(name).OK, name)
	}
}
