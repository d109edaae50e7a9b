// umu-wrapper
// Copyright (c) 2026 The umu-wrapper Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of umu-wrapper.
//
// umu-wrapper is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// umu-wrapper is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with umu-wrapper.  If not, see <http://www.gnu.org/licenses/>.

package helpers

import (
	"path"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" path element with home. Paths like
// "~user/x" are returned unchanged, as is everything when home is empty.
func ExpandHome(p, home string) string {
	if home == "" {
		return p
	}
	if p == "~" {
		return filepath.ToSlash(home)
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return path.Join(filepath.ToSlash(home), rest)
	}
	return p
}

// JoinSlash joins elem under root using forward slashes regardless of the
// host separator. Wine prefixes are always POSIX paths.
func JoinSlash(root string, elem ...string) string {
	return path.Join(append([]string{filepath.ToSlash(root)}, elem...)...)
}
