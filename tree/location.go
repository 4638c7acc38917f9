// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"strconv"
	"strings"
)

// Location identifies the path to a node in a [Tree] as the sequence
// of child indices from the root down: all but the last element
// select branches, and the last element selects the item within the
// innermost branch. An empty Location addresses the root sequence
// itself.
//
// Locations are snapshots: any structural mutation at or above the
// path invalidates them, so they must not be cached across mutations.
type Location []int

// Copy returns a copy of the location.
func (lc Location) Copy() Location {
	nc := make(Location, len(lc))
	copy(nc, lc)
	return nc
}

// String returns the location as a /-separated index path,
// such as "/0/2/1". The empty location is "/".
func (lc Location) String() string {
	if len(lc) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, idx := range lc {
		sb.WriteByte('/')
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}
