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
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package testing provides test helpers for ROSA integration tests.
//
// # Fake master
//
// NewFakeMaster starts an httptest XML-RPC server that answers like a ROS
// master. Register replies per method and point a ros.Master at its URL:
//
//	func TestSomething(t *testing.T) {
//	    master := testing.NewFakeMaster(t)
//	    master.Reply("getSystemState", []any{
//	        []any{[]any{"/chatter", []any{"/talker"}}}, // publishers
//	        []any{[]any{"/chatter", []any{"/listener"}}}, // subscribers
//	        []any{}, // services
//	    })
//	    master.Status("lookupNode", -1, "unknown node")
//
//	    client, err := ros.NewMaster(ros.MasterConfig{URI: master.URL})
//	    require.NoError(t, err)
//	    ...
//	    require.Len(t, master.CallsTo("getSystemState"), 1)
//	}
//
// The same server can stand in for a node's slave API (getPid).
//
// # Seeding the filesystem
//
// Package trees and log directories are plain files:
//   - WritePackage: create <root>/<name>/package.xml with dependencies
//   - WriteFile: write any file, creating parent directories
//   - WriteSizedFile: write a file of an exact byte size
package testing
