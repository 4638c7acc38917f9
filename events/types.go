// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the change notification vocabulary shared by
// all Velt data collections, and the [Listeners] registry that
// collections embed to dispatch those notifications to UI renderers.
//
// The contract renderers rely on is that structural changes (an item
// appearing, disappearing, or being replaced at a position) are always
// distinguishable from value changes (an existing item mutated in
// place): the former arrive as [AddItem], [RemoveItem], [ReplaceItem],
// [Reset], or [RemoveAll], the latter as [UpdateItem] or [UpdateAll].
// Renderers can therefore do partial updates instead of rebuilding
// everything on every change.
package events

import "strconv"

// Types determines the type of collection event. Each mutation of a
// collection emits exactly one structural event type, and all but a
// filtered-out insertion also emit [Change] alongside it. The dispatch
// order is fixed per type: [Change] is emitted before [Reset],
// [AddItem], [RemoveItem], and [RemoveAll], whereas [ReplaceItem] is
// emitted before [Change]. Consumers that react only to the first
// event of a mutation can rely on this order never varying.
type Types int64

const (
	// UnknownType is the zero value, an unknown event type.
	UnknownType Types = iota

	// Reset is sent when the entire raw source has been swapped out
	// wholesale, for example by SetItems. Everything a renderer holds
	// about the old contents is invalid.
	Reset

	// Change is the generic "something about the collection changed"
	// event. It accompanies every structural mutation and every
	// filter/sort configuration change. Consumers that do not care
	// about the distinction can listen to Change alone.
	Change

	// AddItem is sent when an item became visible at a position.
	// An item inserted but excluded by the active filter sends
	// nothing at all, so renderers never see phantom rows.
	AddItem

	// RemoveItem is sent when an item disappeared from a position,
	// either by removal or by a replacement that no longer passes
	// the active filter.
	RemoveItem

	// ReplaceItem is sent when the item at an existing position was
	// replaced by a different item that is still visible.
	ReplaceItem

	// UpdateItem is a caller-driven signal that a property of the
	// item at a position changed and it should be re-rendered. It
	// implies no structural change and no Change event.
	UpdateItem

	// UpdateAll is the whole-collection variant of [UpdateItem].
	UpdateAll

	// FilterChange is sent when the filter function was set, cleared,
	// or refreshed. The visible view is recomputed lazily on the next
	// read, not at dispatch time.
	FilterChange

	// SortChange is sent when the sort comparator was set, cleared,
	// or refreshed. The visible view is recomputed lazily on the next
	// read, not at dispatch time.
	SortChange

	// RemoveAll is sent when the collection was cleared.
	RemoveAll

	// TypesN is the number of event types.
	TypesN
)

var typesNames = []string{"UnknownType", "Reset", "Change", "AddItem",
	"RemoveItem", "ReplaceItem", "UpdateItem", "UpdateAll",
	"FilterChange", "SortChange", "RemoveAll"}

// String returns the name of the event type.
func (tp Types) String() string {
	if tp < 0 || tp >= TypesN {
		return "Types(" + strconv.FormatInt(int64(tp), 10) + ")"
	}
	return typesNames[tp]
}

// IsStructural reports whether the event type signals a structural
// change (existence or identity at a position), as opposed to a value
// update or a view configuration change.
func (tp Types) IsStructural() bool {
	switch tp {
	case Reset, AddItem, RemoveItem, ReplaceItem, RemoveAll:
		return true
	}
	return false
}
