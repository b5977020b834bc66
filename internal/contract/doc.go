// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package contract validates the names callers hand to the tools before
// they reach the ROS master or the package index.
//
// ROS graph resource names (topics, nodes, services, parameters) follow
// the ROS naming rules: the first character is a letter, '/' or '~', the
// rest are letters, digits, '_' or '/', and there are no empty segments.
//
//	if res := contract.ValidateResourceName("/turtle1/cmd_vel"); !res.OK {
//	    return res.Message
//	}
//
// Package names and message/service type names ("std_msgs/String") have
// their own validators.
//
// # Constants
//
//   - NameMaxBytes: longest accepted name (1 KiB)
package contract
