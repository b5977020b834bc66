// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package rospkg

import "errors"

var (
	// ErrPackageNotFound means no crawled root holds the package.
	ErrPackageNotFound = errors.New("package not found")

	// ErrTypeNotFound means a message or service definition file is missing.
	ErrTypeNotFound = errors.New("type not found")

	// ErrMalformedManifest means package.xml could not be parsed.
	ErrMalformedManifest = errors.New("malformed package manifest")
)
