// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "errors"

// Sentinel errors returned by [Tree] and [Descriptor] operations.
// Both indicate programmer errors (a malformed location, or a
// descriptor paired with a raw source of the wrong shape) and are
// surfaced immediately; there is no retry or recovery path. Not-found
// lookups are not errors: they are signaled by nil items and empty
// locations.
var (
	// ErrBranchNotFound indicates that an intermediate segment of a
	// location did not resolve to a branch node.
	ErrBranchNotFound = errors.New("tree: branch not found")

	// ErrInvalidType indicates that a descriptor received a node of a
	// backing shape it does not understand.
	ErrInvalidType = errors.New("tree: invalid data type")
)
