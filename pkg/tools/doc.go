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

// Package tools provides agent-callable tools for inspecting a running ROS1
// system: topics, nodes, services, message types, parameters, packages and
// log files.
//
// Every tool runs against an Env holding the collaborators it queries:
//
//	master, _ := ros.NewMaster(ros.MasterConfig{URI: "http://localhost:11311"})
//	env := &tools.Env{
//		Graph:    master,
//		Params:   master,
//		Packages: rospkg.NewIndex(rospkg.IndexConfig{}),
//	}
//
//	result := tools.ListTopics(ctx, env, tools.ListArgs{Namespace: "/turtle1"})
//	fmt.Println(result.Render())
//
// Tools never return Go errors. A failure is a ToolResult with IsError set,
// a machine-readable Kind and a message; its JSON form is
// {"error": "...", "kind": "..."}.
//
// # Available Tools
//
// Graph:
//   - rosgraph_get (BuildGraph): publisher/topic/subscriber tuples
//   - rostopic_list, rosnode_list (ListTopics, ListNodes): names with
//     per-stage counts
//   - rosservice_list (ListServices)
//
// Details (batch; one entry per requested name):
//   - rostopic_info, rosnode_info, rosservice_info
//   - rosmsg_info, rossrv_info: message and service definitions
//   - rospkg_info: path, dependents and manifest of packages
//
// Parameters:
//   - rosparam_list, rosparam_get, rosparam_set
//
// Packages and logs:
//   - rospkg_list, rospkg_roots, roslog_list, roslog_get_log_directory
//
// # Empty Listings
//
// Listings that end up empty are not errors. The list holds one sentence
// saying which filter removed everything, so an agent can explain the
// absence instead of treating it as a failure. The graph is the exception:
// an empty graph is an empty_result error naming the active blacklist.
//
// # Batches
//
// Detail tools look up each name independently. A name that is invalid,
// unknown or answered with a malformed response gets an
// {"error", "kind"} record under its key; an unreachable master aborts the
// whole call. rosparam_get is stricter: the first failing key aborts it.
//
// # Registry
//
// Registry lists every tool with its argument schema, and Call runs one by
// name with JSON-decoded arguments, applying defaults, logging the call and
// recording Prometheus metrics.
package tools
