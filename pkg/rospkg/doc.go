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

// Package rospkg indexes ROS packages on disk and resolves the files that
// belong to them.
//
// An Index knows the package roots (ROS_PACKAGE_PATH) and the log
// directory. Crawl walks the roots and returns a Catalog, an immutable
// snapshot of every package found:
//
//	index := rospkg.NewIndex(rospkg.IndexConfig{})
//	catalog, err := index.Crawl(ctx)
//	if err != nil {
//	    return err
//	}
//	path, err := catalog.Path("turtlesim")
//
// # Crawl Rules
//
// A directory holding a package.xml is a package and is not descended
// into. A directory holding a CATKIN_IGNORE file is skipped together with
// everything below it, as are hidden directories. When the same package
// name appears under two roots, the first root wins.
//
// # Message Definitions
//
// MessageText and ServiceText resolve "pkg/Type" to pkg/msg/Type.msg and
// pkg/srv/Type.srv. Without raw, comments and blank lines are stripped.
package rospkg
