// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kraklabs/rosa/internal/contract"
)

// errMalformedTopicInfo means a topic status block did not have the
// expected layout.
var errMalformedTopicInfo = errors.New("malformed topic info")

// TopicDetails is the structured form of a topic status block.
type TopicDetails struct {
	Topic       string   `json:"topic"`
	Type        string   `json:"type"`
	Publishers  []string `json:"publishers"`
	Subscribers []string `json:"subscribers"`
}

// TopicInfo fetches details for each topic.
func TopicInfo(ctx context.Context, env *Env, topics []string) *ToolResult {
	if res := requireNames("topics", topics); res != nil {
		return res
	}
	details, err := fetchEach(ctx, topics, contract.ValidateResourceName,
		func(ctx context.Context, topic string) (any, error) {
			text, err := env.Graph.TopicInfo(ctx, topic)
			if err != nil {
				return nil, err
			}
			return parseTopicInfo(topic, text)
		})
	if err != nil {
		return errorFrom("Failed to get ROS topic details", err)
	}
	return NewResult(details)
}

type topicSection int

const (
	sectionNone topicSection = iota
	sectionPublishers
	sectionSubscribers
)

// parseTopicInfo reads a status block of the form
//
//	Type: std_msgs/String
//
//	Publishers:
//	 * /talker (http://host:4242/)
//
//	Subscribers: None
//
// Lines are trimmed and "* " bullets stripped. Blank lines and "None" are
// skipped. A block without a Type line or without both section headers is
// rejected.
func parseTopicInfo(topic, text string) (*TopicDetails, error) {
	details := &TopicDetails{
		Topic:       topic,
		Publishers:  []string{},
		Subscribers: []string{},
	}

	var sawType, sawPubs, sawSubs bool
	section := sectionNone
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "Type:"):
			details.Type = strings.TrimSpace(strings.TrimPrefix(line, "Type:"))
			sawType = true
			section = sectionNone
			continue
		case strings.HasPrefix(line, "Publishers:"):
			sawPubs = true
			section = sectionPublishers
			line = strings.TrimSpace(strings.TrimPrefix(line, "Publishers:"))
		case strings.HasPrefix(line, "Subscribers:"):
			sawSubs = true
			section = sectionSubscribers
			line = strings.TrimSpace(strings.TrimPrefix(line, "Subscribers:"))
		}

		entry := strings.TrimSpace(strings.TrimPrefix(line, "* "))
		if entry == "" || entry == "None" {
			continue
		}
		switch section {
		case sectionPublishers:
			details.Publishers = append(details.Publishers, entry)
		case sectionSubscribers:
			details.Subscribers = append(details.Subscribers, entry)
		default:
			return nil, fmt.Errorf("topic %s: %w: unexpected line %q", topic, errMalformedTopicInfo, line)
		}
	}

	if !sawType || details.Type == "" {
		return nil, fmt.Errorf("topic %s: %w: missing Type line", topic, errMalformedTopicInfo)
	}
	if !sawPubs || !sawSubs {
		return nil, fmt.Errorf("topic %s: %w: missing Publishers or Subscribers section", topic, errMalformedTopicInfo)
	}
	return details, nil
}
