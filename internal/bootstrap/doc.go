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

// Package bootstrap wires the collaborators of a rosa session.
//
// Open turns configuration into a tools.Env backed by a ROS master client
// and a package index:
//
//	session, err := bootstrap.Open(bootstrap.EnvConfig{
//	    MasterURI: "http://localhost:11311",
//	    Blacklist: []string{"/rosa"},
//	}, logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	result := tools.Call(ctx, session.Env, "rostopic_list", nil)
//
// Open never contacts the master. Ping does, and reports what it sees:
//
//	status := session.Ping(ctx)
//	if !status.Reachable {
//	    fmt.Println(status.Error)
//	}
//
// # Configuration files
//
// InitConfig writes .rosa/config.yaml below a directory. It is idempotent:
// an existing file is left alone unless force is set.
package bootstrap
