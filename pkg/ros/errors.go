// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package ros

import "errors"

// Errors returned by Master. They are always wrapped with the failing
// method name, so callers should test with errors.Is.
var (
	// ErrUnavailable means the master (or a node's slave API) could not be
	// reached: connection refused, timeout, canceled context.
	ErrUnavailable = errors.New("ros master unavailable")

	// ErrNotFound means the master answered but does not know the entity
	// (unknown node or service, parameter not set).
	ErrNotFound = errors.New("entity not found")

	// ErrMalformed means the response did not have the expected
	// [code, statusMessage, value] shape, or the server raised a fault.
	ErrMalformed = errors.New("malformed response")
)
