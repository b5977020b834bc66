// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kraklabs/rosa/pkg/ros"
)

const chatterInfo = "Type: std_msgs/String\n\n" +
	"Publishers: \n * /talker (http://robot:4242/)\n\n" +
	"Subscribers: \n * /listener (http://robot:4343/)\n * /rosbag (http://robot:4444/)\n\n"

func TestParseTopicInfo(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    *TopicDetails
		wantErr bool
	}{
		{
			name: "full block",
			text: chatterInfo,
			want: &TopicDetails{
				Topic:       "/chatter",
				Type:        "std_msgs/String",
				Publishers:  []string{"/talker (http://robot:4242/)"},
				Subscribers: []string{"/listener (http://robot:4343/)", "/rosbag (http://robot:4444/)"},
			},
		},
		{
			name: "none sections",
			text: "Type: std_msgs/String\n\nPublishers: None\n\nSubscribers: None\n",
			want: &TopicDetails{
				Topic:       "/chatter",
				Type:        "std_msgs/String",
				Publishers:  []string{},
				Subscribers: []string{},
			},
		},
		{
			name: "indented and windows newlines",
			text: "  Type: std_msgs/String\r\n  Publishers:\r\n    * /talker\r\n  Subscribers:\r\n    None\r\n",
			want: &TopicDetails{
				Topic:       "/chatter",
				Type:        "std_msgs/String",
				Publishers:  []string{"/talker"},
				Subscribers: []string{},
			},
		},
		{name: "missing type", text: "Publishers: None\n\nSubscribers: None\n", wantErr: true},
		{name: "empty type", text: "Type:\nPublishers: None\nSubscribers: None\n", wantErr: true},
		{name: "missing subscribers", text: "Type: a/B\n\nPublishers: None\n", wantErr: true},
		{name: "unexpected text", text: "Type: a/B\ngarbage\nPublishers: None\nSubscribers: None\n", wantErr: true},
		{name: "empty", text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTopicInfo("/chatter", tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errMalformedTopicInfo))
				assert.Equal(t, KindMalformed, kindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopicInfo_Batch(t *testing.T) {
	graph := &MockGraph{
		TopicInfoFunc: func(_ context.Context, topic string) (string, error) {
			switch topic {
			case "/chatter":
				return chatterInfo, nil
			case "/garbled":
				return "no layout here", nil
			default:
				return "", fmt.Errorf("topic %s: %w", topic, ros.ErrNotFound)
			}
		},
	}
	env := newTestEnv(graph, nil, nil)

	result := TopicInfo(context.Background(), env, []string{"/chatter", "/missing", "/garbled", "bad name"})
	got := decode(t, result)

	chatter := got["/chatter"].(map[string]any)
	assert.Equal(t, "std_msgs/String", chatter["type"])
	assert.Len(t, chatter["subscribers"], 2)

	assert.Equal(t, string(KindNotFound), got["/missing"].(map[string]any)["kind"])
	assert.Equal(t, string(KindMalformed), got["/garbled"].(map[string]any)["kind"])
	assert.Equal(t, string(KindInvalidArgument), got["bad name"].(map[string]any)["kind"])

	details := result.Data.(*Details)
	var order []string
	for pair := details.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	assert.Equal(t, []string{"/chatter", "/missing", "/garbled", "bad name"}, order)
}

func TestTopicInfo_UnavailableAbortsBatch(t *testing.T) {
	calls := 0
	graph := &MockGraph{
		TopicInfoFunc: func(_ context.Context, topic string) (string, error) {
			calls++
			if topic == "/second" {
				return "", fmt.Errorf("getSystemState: %w: connection refused", ros.ErrUnavailable)
			}
			return chatterInfo, nil
		},
	}
	env := newTestEnv(graph, nil, nil)

	result := TopicInfo(context.Background(), env, []string{"/first", "/second", "/third"})
	assertErrorKind(t, result, KindRegistryUnavailable)
	assert.Contains(t, result.Text, "connection refused")
	assert.Equal(t, 2, calls)
}

func TestTopicInfo_EmptyList(t *testing.T) {
	env := newTestEnv(nil, nil, nil)
	assertErrorKind(t, TopicInfo(context.Background(), env, nil), KindInvalidArgument)
}
