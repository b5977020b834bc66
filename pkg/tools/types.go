// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kraklabs/rosa/pkg/ros"
	"github.com/kraklabs/rosa/pkg/rospkg"
)

// ErrorKind classifies a failed tool call so callers can branch on cause.
type ErrorKind string

const (
	KindRegistryUnavailable ErrorKind = "registry_unavailable"
	KindNotFound            ErrorKind = "not_found"
	KindMalformed           ErrorKind = "malformed_response"
	KindInvalidArgument     ErrorKind = "invalid_argument"
	KindEmptyResult         ErrorKind = "empty_result"
	KindInternal            ErrorKind = "internal"
)

// ToolResult represents the result of a tool execution. A successful result
// carries Data, a failed one carries Kind and the message in Text.
type ToolResult struct {
	Data    any
	Text    string
	Kind    ErrorKind
	IsError bool
}

// NewResult creates a successful tool result.
func NewResult(data any) *ToolResult {
	return &ToolResult{Data: data}
}

// NewError creates an error tool result.
func NewError(kind ErrorKind, text string) *ToolResult {
	return &ToolResult{Text: text, Kind: kind, IsError: true}
}

// NewErrorf creates an error tool result with a formatted message.
func NewErrorf(kind ErrorKind, format string, args ...any) *ToolResult {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// errorFrom wraps err with a message prefix and its derived kind.
func errorFrom(prefix string, err error) *ToolResult {
	return NewErrorf(kindOf(err), "%s: %v", prefix, err)
}

// MarshalJSON renders the payload, or {"error": ..., "kind": ...} on failure.
func (r *ToolResult) MarshalJSON() ([]byte, error) {
	if r.IsError {
		return json.Marshal(EntityError{Error: r.Text, Kind: r.Kind})
	}
	return json.Marshal(r.Data)
}

// Render returns the text handed to an agent: plain strings as-is, anything
// else as indented JSON.
func (r *ToolResult) Render() string {
	if !r.IsError {
		if s, ok := r.Data.(string); ok {
			return s
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q, "kind": %q}`, err.Error(), KindInternal)
	}
	return string(data)
}

// EntityError is the failure record of one entity inside a batch result, and
// the JSON shape of every failed ToolResult.
type EntityError struct {
	Error string    `json:"error"`
	Kind  ErrorKind `json:"kind"`
}

func entityError(err error) EntityError {
	return EntityError{Error: err.Error(), Kind: kindOf(err)}
}

// errInvalidArgument marks caller mistakes such as a bad regex or name.
var errInvalidArgument = errors.New("invalid argument")

func invalidArgf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidArgument, fmt.Sprintf(format, args...))
}

// kindOf maps collaborator errors to an ErrorKind.
func kindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ros.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return KindRegistryUnavailable
	case errors.Is(err, ros.ErrNotFound),
		errors.Is(err, rospkg.ErrPackageNotFound),
		errors.Is(err, rospkg.ErrTypeNotFound):
		return KindNotFound
	case errors.Is(err, ros.ErrMalformed),
		errors.Is(err, rospkg.ErrMalformedManifest),
		errors.Is(err, errMalformedTopicInfo):
		return KindMalformed
	case errors.Is(err, errInvalidArgument):
		return KindInvalidArgument
	default:
		return KindInternal
	}
}
