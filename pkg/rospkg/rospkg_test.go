// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package rospkg

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rosatest "github.com/kraklabs/rosa/internal/testing"
)

func quietIndex(roots ...string) *Index {
	return NewIndex(IndexConfig{
		Roots:  roots,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestCrawl(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	rosatest.WritePackage(t, first, "std_msgs")
	rosatest.WritePackage(t, filepath.Join(first, "nested", "deeper"), "turtlesim", "std_msgs")
	rosatest.WritePackage(t, filepath.Join(first, "ignored"), "hidden_pkg")
	rosatest.WriteFile(t, filepath.Join(first, "ignored", "CATKIN_IGNORE"), "")
	rosatest.WritePackage(t, filepath.Join(first, ".git"), "dotted")

	shadowDir := rosatest.WritePackage(t, second, "std_msgs")
	rosatest.WritePackage(t, second, "rospy")

	// A package is not descended into.
	rosatest.WritePackage(t, filepath.Join(first, "turtlesim_parent", "inner"), "inner_pkg")
	rosatest.WriteFile(t, filepath.Join(first, "turtlesim_parent", "package.xml"),
		`<package format="2"><name>outer_pkg</name></package>`)

	missing := filepath.Join(t.TempDir(), "does-not-exist")
	catalog, err := quietIndex(first, missing, second).Crawl(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"outer_pkg", "rospy", "std_msgs", "turtlesim"}, catalog.List())
	assert.Equal(t, 4, catalog.Len())

	path, err := catalog.Path("std_msgs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(first, "std_msgs"), path)
	assert.NotEqual(t, shadowDir, path)

	_, err = catalog.Path("hidden_pkg")
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestCrawl_BadManifestSkipped(t *testing.T) {
	root := t.TempDir()
	rosatest.WriteFile(t, filepath.Join(root, "broken", "package.xml"), "<package><name>")
	rosatest.WritePackage(t, root, "good")

	catalog, err := quietIndex(root).Crawl(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, catalog.List())
}

func TestCrawl_Canceled(t *testing.T) {
	root := t.TempDir()
	rosatest.WritePackage(t, root, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietIndex(root).Crawl(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDependsOn(t *testing.T) {
	root := t.TempDir()
	rosatest.WritePackage(t, root, "std_msgs")
	rosatest.WritePackage(t, root, "geometry_msgs", "std_msgs")
	rosatest.WritePackage(t, root, "turtlesim", "geometry_msgs")
	rosatest.WritePackage(t, root, "rosa_demo", "turtlesim", "std_msgs")
	rosatest.WritePackage(t, root, "unrelated")

	catalog, err := quietIndex(root).Crawl(context.Background())
	require.NoError(t, err)

	tests := []struct {
		pkg  string
		want []string
	}{
		{"std_msgs", []string{"geometry_msgs", "rosa_demo", "turtlesim"}},
		{"turtlesim", []string{"rosa_demo"}},
		{"unrelated", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			got, err := catalog.DependsOn(tt.pkg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = catalog.DependsOn("nope")
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestManifestAttributes(t *testing.T) {
	m, err := ParseManifest([]byte(`<?xml version="1.0"?>
<package format="2">
  <name>turtlesim</name>
  <version>0.10.2</version>
  <description>
    turtlesim is a tool made for teaching ROS. It shows turtles.
  </description>
  <maintainer email="dev@example.com">Dev One</maintainer>
  <license>BSD</license>
  <url type="website">http://www.ros.org/wiki/turtlesim</url>
  <author></author>
  <buildtool_depend>catkin</buildtool_depend>
  <depend>std_msgs</depend>
  <exec_depend>std_msgs</exec_depend>
  <test_depend>rostest</test_depend>
  <export><rosdoc config="rosdoc.yaml"/></export>
</package>`))
	require.NoError(t, err)

	attrs := m.Attributes()
	assert.Equal(t, "turtlesim", attrs["name"])
	assert.Equal(t, "0.10.2", attrs["version"])
	assert.Equal(t, "2", attrs["format"])
	assert.Equal(t, "turtlesim is a tool made for teaching ROS. It shows turtles.", attrs["description"])
	assert.Equal(t, "turtlesim is a tool made for teaching ROS.", attrs["brief"])
	assert.Equal(t, "Dev One <dev@example.com>", attrs["maintainer"])
	assert.Equal(t, "BSD", attrs["license"])
	assert.Equal(t, "http://www.ros.org/wiki/turtlesim", attrs["url"])
	assert.Equal(t, []string{"catkin", "std_msgs"}, attrs["depends"])
	assert.Equal(t, []string{"rostest"}, attrs["test_depends"])
	assert.Equal(t, []string{"rosdoc"}, attrs["exports"])
	assert.NotContains(t, attrs, "author")
}

func TestParseManifest_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not xml", "{}"},
		{"no name", `<package format="2"><version>1</version></package>`},
		{"truncated", `<package><name>x</name>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedManifest)
		})
	}
}

func TestMessageText(t *testing.T) {
	root := t.TempDir()
	dir := rosatest.WritePackage(t, root, "demo_msgs")
	rosatest.WriteFile(t, filepath.Join(dir, "msg", "Status.msg"),
		"# Robot status\n\nstring LABEL=ok#1\nint32 code   # status code\n\nstring text\n")
	rosatest.WriteFile(t, filepath.Join(dir, "srv", "Reset.srv"),
		"# reset\nbool hard\n---\nbool ok # done\n")

	catalog, err := quietIndex(root).Crawl(context.Background())
	require.NoError(t, err)

	text, err := catalog.MessageText("demo_msgs/Status", false)
	require.NoError(t, err)
	assert.Equal(t, "string LABEL=ok#1\nint32 code\nstring text", text)

	rawText, err := catalog.MessageText("demo_msgs/Status", true)
	require.NoError(t, err)
	assert.Contains(t, rawText, "# Robot status")

	bare, err := catalog.MessageText("Status", false)
	require.NoError(t, err)
	assert.Equal(t, text, bare)

	srv, err := catalog.ServiceText("demo_msgs/Reset", false)
	require.NoError(t, err)
	assert.Equal(t, "bool hard\n---\nbool ok", srv)

	for _, typ := range []string{"demo_msgs/Missing", "other/Status", "", "a/b/c"} {
		_, err := catalog.MessageText(typ, false)
		assert.ErrorIs(t, err, ErrTypeNotFound, typ)
	}
}

func TestLogDir(t *testing.T) {
	t.Run("ROS_LOG_DIR wins", func(t *testing.T) {
		t.Setenv("ROS_LOG_DIR", "/var/log/ros")
		t.Setenv("ROS_HOME", "/opt/roshome")
		dir, err := LogDir()
		require.NoError(t, err)
		assert.Equal(t, "/var/log/ros", dir)
	})

	t.Run("ROS_HOME", func(t *testing.T) {
		t.Setenv("ROS_LOG_DIR", "")
		t.Setenv("ROS_HOME", "/opt/roshome")
		dir, err := LogDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/opt/roshome", "log"), dir)
	})

	t.Run("home default", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("ROS_LOG_DIR", "")
		t.Setenv("ROS_HOME", "")
		t.Setenv("HOME", home)
		dir, err := LogDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".ros", "log"), dir)
	})

	t.Run("index override", func(t *testing.T) {
		ix := NewIndex(IndexConfig{Roots: []string{"/x"}, LogDir: "/tmp/logs"})
		dir, err := ix.LogDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/logs", dir)
	})
}

func TestSplitRoots(t *testing.T) {
	sep := string(filepath.ListSeparator)
	assert.Equal(t, []string{"/a", "/b"}, SplitRoots("/a"+sep+sep+" /b "))
	assert.Nil(t, SplitRoots(""))

	t.Setenv("ROS_PACKAGE_PATH", "/opt/ros/noetic/share")
	assert.Equal(t, []string{"/opt/ros/noetic/share"}, NewIndex(IndexConfig{}).Roots())
}
