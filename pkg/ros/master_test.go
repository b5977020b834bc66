// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ros

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rosatest "github.com/kraklabs/rosa/internal/testing"
)

func newTestMaster(t *testing.T, uri string) *Master {
	t.Helper()
	m, err := NewMaster(MasterConfig{
		URI:     uri,
		Timeout: 2 * time.Second,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func chatterState() []any {
	return []any{
		[]any{
			[]any{"/chatter", []any{"/talker"}},
			[]any{"/rosout", []any{"/talker", "/listener"}},
		},
		[]any{
			[]any{"/chatter", []any{"/listener"}},
			[]any{"/rosout", []any{"/rosout"}},
		},
		[]any{
			[]any{"/talker/get_loggers", []any{"/talker"}},
			[]any{"/rosout/set_logger_level", []any{"/rosout"}},
		},
	}
}

func TestMaster_SystemState(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Reply("getSystemState", chatterState())
	m := newTestMaster(t, fake.URL)

	state, err := m.SystemState(context.Background())
	require.NoError(t, err)

	require.Len(t, state.Publishers, 2)
	assert.Equal(t, "/chatter", state.Publishers[0].Name)
	assert.Equal(t, []string{"/talker"}, state.Publishers[0].Nodes)
	assert.Equal(t, []string{"/chatter", "/rosout"}, state.Topics())
	assert.Equal(t, []string{"/listener", "/rosout", "/talker"}, state.Nodes())
	assert.Equal(t, []string{"/rosout/set_logger_level", "/talker/get_loggers"}, state.ServiceNames())

	calls := fake.CallsTo("getSystemState")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{DefaultCallerID}, calls[0].Params)
}

func TestMaster_SystemStateMalformed(t *testing.T) {
	tests := []struct {
		name  string
		reply func([]string) any
	}{
		{"short triple", func([]string) any { return []any{1, ""} }},
		{"two groups", func([]string) any { return rosatest.Success([]any{[]any{}, []any{}}) }},
		{"association not a pair", func([]string) any {
			return rosatest.Success([]any{[]any{[]any{"/a"}}, []any{}, []any{}})
		}},
		{"status failure", func([]string) any { return []any{0, "internal", 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := rosatest.NewFakeMaster(t)
			fake.Handle("getSystemState", tt.reply)
			m := newTestMaster(t, fake.URL)

			_, err := m.SystemState(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestMaster_Fault(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Fault("getTopicTypes", "boom")
	m := newTestMaster(t, fake.URL)

	_, err := m.TopicTypes(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "boom")
}

func TestMaster_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	uri := srv.URL + "/"
	srv.Close()
	m := newTestMaster(t, uri)

	_, err := m.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMaster_CanceledContext(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Handle("getUri", func([]string) any {
		time.Sleep(200 * time.Millisecond)
		return rosatest.Success("http://localhost:11311/")
	})
	m := newTestMaster(t, fake.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Ping(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaster_TopicTypes(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Reply("getTopicTypes", []any{
		[]any{"/chatter", "std_msgs/String"},
		[]any{"/rosout", "rosgraph_msgs/Log"},
	})
	m := newTestMaster(t, fake.URL)

	types, err := m.TopicTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"/chatter": "std_msgs/String",
		"/rosout":  "rosgraph_msgs/Log",
	}, types)
}

func TestMaster_LookupNodeNotFound(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Status("lookupNode", -1, "unknown node [/ghost]")
	m := newTestMaster(t, fake.URL)

	_, err := m.LookupNode(context.Background(), "/ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "unknown node")

	calls := fake.CallsTo("lookupNode")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{DefaultCallerID, "/ghost"}, calls[0].Params)
}

func TestMaster_TopicInfo(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Reply("getSystemState", chatterState())
	fake.Reply("getTopicTypes", []any{[]any{"/chatter", "std_msgs/String"}})
	fake.Handle("lookupNode", func(params []string) any {
		if params[1] == "/talker" {
			return rosatest.Success("http://robot:4242/")
		}
		return []any{-1, "unknown node", 0}
	})
	m := newTestMaster(t, fake.URL)

	text, err := m.TopicInfo(context.Background(), "/chatter")
	require.NoError(t, err)
	assert.Equal(t, "Type: std_msgs/String\n\n"+
		"Publishers: \n * /talker (http://robot:4242/)\n\n"+
		"Subscribers: \n * /listener\n\n", text)

	_, err = m.TopicInfo(context.Background(), "/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMaster_NodeInfo(t *testing.T) {
	slave := rosatest.NewFakeMaster(t)
	slave.Reply("getPid", 4242)

	fake := rosatest.NewFakeMaster(t)
	fake.Reply("lookupNode", slave.URL)
	fake.Reply("getSystemState", chatterState())
	fake.Reply("getTopicTypes", []any{
		[]any{"/chatter", "std_msgs/String"},
		[]any{"/rosout", "rosgraph_msgs/Log"},
	})
	m := newTestMaster(t, fake.URL)

	info, err := m.NodeInfo(context.Background(), "/talker")
	require.NoError(t, err)
	assert.Equal(t, "/talker", info.Node)
	assert.Equal(t, slave.URL, info.URI)
	assert.Equal(t, 4242, info.PID)
	assert.True(t, info.Reachable)
	assert.Equal(t, []TopicType{
		{Topic: "/chatter", Type: "std_msgs/String"},
		{Topic: "/rosout", Type: "rosgraph_msgs/Log"},
	}, info.Publications)
	assert.Empty(t, info.Subscriptions)
	assert.Equal(t, []string{"/talker/get_loggers"}, info.Services)
}

func TestMaster_NodeInfoUnreachableSlave(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	deadURI := srv.URL + "/"
	srv.Close()

	fake := rosatest.NewFakeMaster(t)
	fake.Reply("lookupNode", deadURI)
	fake.Reply("getSystemState", chatterState())
	fake.Reply("getTopicTypes", []any{})
	m := newTestMaster(t, fake.URL)

	info, err := m.NodeInfo(context.Background(), "/listener")
	require.NoError(t, err)
	assert.False(t, info.Reachable)
	assert.Zero(t, info.PID)
	assert.Equal(t, []TopicType{{Topic: "/chatter"}}, info.Subscriptions)
}

func TestMaster_ServiceInfo(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Reply("lookupService", "rosrpc://robot:5000")
	fake.Reply("getSystemState", chatterState())
	m := newTestMaster(t, fake.URL)

	info, err := m.ServiceInfo(context.Background(), "/talker/get_loggers")
	require.NoError(t, err)
	assert.Equal(t, &ServiceInfo{
		Service: "/talker/get_loggers",
		URI:     "rosrpc://robot:5000",
		Nodes:   []string{"/talker"},
	}, info)
}

func TestMaster_Params(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Reply("getParamNames", []any{"/run_id", "/rosdistro", "/rosa/mode"})
	fake.Reply("getParam", "noetic")
	fake.Reply("setParam", 0)
	m := newTestMaster(t, fake.URL)
	ctx := context.Background()

	names, err := m.ParamNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/rosa/mode", "/rosdistro", "/run_id"}, names)

	v, err := m.GetParam(ctx, "/rosdistro")
	require.NoError(t, err)
	assert.Equal(t, "noetic", v)

	require.NoError(t, m.SetParam(ctx, "/rosa/foo", "bar"))
	calls := fake.CallsTo("setParam")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{DefaultCallerID, "/rosa/foo", "bar"}, calls[0].Params)
}

func TestMaster_GetParamUnset(t *testing.T) {
	fake := rosatest.NewFakeMaster(t)
	fake.Status("getParam", -1, "Parameter [/nope] is not set")
	m := newTestMaster(t, fake.URL)

	_, err := m.GetParam(context.Background(), "/nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
