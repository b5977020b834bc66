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

// Package ros is a thin client for the ROS1 master and parameter server.
//
// It speaks the master's XML-RPC API (getSystemState, getTopicTypes,
// lookupNode, lookupService, getParamNames, getParam, setParam) and, for
// node details, the getPid call of a node's slave API. It does not
// implement topic transport (TCPROS/UDPROS) and never registers itself as a
// publisher, subscriber or service.
//
// # Usage
//
//	master, err := ros.NewMaster(ros.MasterConfig{
//		URI:      "http://localhost:11311",
//		CallerID: "/rosa",
//	})
//	if err != nil {
//		return err
//	}
//	defer master.Close()
//
//	state, err := master.SystemState(ctx)
//	if errors.Is(err, ros.ErrUnavailable) {
//		// master not running
//	}
//
// # Errors
//
// Every method wraps one of ErrUnavailable, ErrNotFound or ErrMalformed so
// callers can branch on the cause with errors.Is.
package ros
