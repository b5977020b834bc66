// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rosatest "github.com/kraklabs/rosa/internal/testing"
	"github.com/kraklabs/rosa/pkg/tools"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen_WiresEnv(t *testing.T) {
	master := rosatest.NewFakeMaster(t)
	master.Reply("getSystemState", []any{
		[]any{[]any{"/chatter", []any{"/talker"}}},
		[]any{[]any{"/chatter", []any{"/listener"}}},
		[]any{},
	})

	session, err := Open(EnvConfig{
		MasterURI:   master.URL,
		PackagePath: []string{t.TempDir()},
		Blacklist:   []string{"/rosout"},
	}, quietLogger())
	require.NoError(t, err)
	defer session.Close()

	assert.Equal(t, master.URL, session.Master.URI())
	assert.Equal(t, []string{"/rosout"}, session.Env.Blacklist)

	result := tools.Call(context.Background(), session.Env, "rosnode_list", nil)
	require.False(t, result.IsError, result.Text)
	assert.Equal(t, []string{"/listener", "/talker"}, result.Data.(*tools.EntityListing).Names)
}

func TestOpen_BadURI(t *testing.T) {
	_, err := Open(EnvConfig{MasterURI: "http://[::1"}, quietLogger())
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	root := t.TempDir()
	rosatest.WritePackage(t, root, "turtlesim")
	rosatest.WritePackage(t, root, "std_msgs")
	logDir := t.TempDir()

	master := rosatest.NewFakeMaster(t)
	master.Reply("getUri", master.URL)
	master.Reply("getSystemState", []any{
		[]any{[]any{"/chatter", []any{"/talker"}}, []any{"/rosout", []any{"/talker"}}},
		[]any{[]any{"/chatter", []any{"/listener"}}},
		[]any{[]any{"/talker/get_loggers", []any{"/talker"}}},
	})

	session, err := Open(EnvConfig{MasterURI: master.URL, PackagePath: []string{root}, LogDir: logDir}, quietLogger())
	require.NoError(t, err)
	defer session.Close()

	st := session.Ping(context.Background())
	assert.True(t, st.Reachable)
	assert.Empty(t, st.Error)
	assert.Equal(t, 2, st.Topics)
	assert.Equal(t, 2, st.Nodes)
	assert.Equal(t, 1, st.Services)
	assert.Equal(t, 2, st.PackageCount)
	assert.Equal(t, []string{root}, st.PackageRoots)
	assert.Equal(t, logDir, st.LogDir)
	assert.Equal(t, len(tools.Registry()), st.ToolsAvailable)
}

func TestPing_Unreachable(t *testing.T) {
	session, err := Open(EnvConfig{MasterURI: "http://127.0.0.1:1/", PackagePath: []string{t.TempDir()}}, quietLogger())
	require.NoError(t, err)
	defer session.Close()

	st := session.Ping(context.Background())
	assert.False(t, st.Reachable)
	assert.Contains(t, st.Error, "ros master unavailable")
	assert.Equal(t, "http://127.0.0.1:1/", st.MasterURI)
	assert.Zero(t, st.Topics)
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()

	path, written, err := InitConfig(dir, []byte("master_uri: http://a:11311\n"), false, quietLogger())
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, filepath.Join(dir, ".rosa", "config.yaml"), path)

	// Idempotent without force.
	_, written, err = InitConfig(dir, []byte("master_uri: http://b:11311\n"), false, quietLogger())
	require.NoError(t, err)
	assert.False(t, written)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "master_uri: http://a:11311\n", string(data))

	_, written, err = InitConfig(dir, []byte("master_uri: http://b:11311\n"), true, quietLogger())
	require.NoError(t, err)
	assert.True(t, written)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "master_uri: http://b:11311\n", string(data))
}
