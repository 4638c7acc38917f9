// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Event is the payload delivered to collection listeners. Flat
// collections address items by Index; hierarchical collections by
// Location. Whichever coordinate does not apply is left at its zero
// value (-1 / nil).
//
// The Location slice is always a copy owned by the event, so handlers
// may retain it without observing later mutation of the caller's path.
// Locations are still snapshots of the structure at dispatch time:
// they are invalidated by any structural mutation at or above the
// path and must not be cached across mutations.
type Event struct {

	// Type is the event type.
	Type Types

	// Index is the visible index the event refers to, for events from
	// flat collections. It is -1 when the event has no index, such as
	// [Reset], [RemoveAll], and [UpdateAll].
	Index int

	// Location is the resolved path the event refers to, for events
	// from hierarchical collections. It is nil for flat collection
	// events and for whole-collection events.
	Location []int

	// Item is the item the event refers to: the added, removed, or
	// replacement item. It is nil for whole-collection events.
	Item any

	// OldItem is the item previously at the position, for
	// [ReplaceItem] and for a [RemoveItem] caused by a replacement
	// that no longer passes the filter. It is nil otherwise.
	OldItem any

	// handled indicates the event has been handled and dispatch
	// should stop.
	handled bool
}

// New returns a new whole-collection event of the given type.
func New(typ Types) *Event {
	return &Event{Type: typ, Index: -1}
}

// NewIndex returns a new event of the given type for the given
// visible index and item.
func NewIndex(typ Types, index int, item any) *Event {
	return &Event{Type: typ, Index: index, Item: item}
}

// NewLocation returns a new event of the given type for the given
// location and item. The location is copied.
func NewLocation(typ Types, loc []int, item any) *Event {
	lc := make([]int, len(loc))
	copy(lc, loc)
	return &Event{Type: typ, Index: -1, Location: lc, Item: item}
}

// SetHandled marks the event as handled, stopping any further
// dispatch for it.
func (ev *Event) SetHandled() {
	ev.handled = true
}

// IsHandled returns whether the event has been marked as handled.
func (ev *Event) IsHandled() bool {
	return ev.handled
}

// String implements the [fmt.Stringer] interface.
func (ev *Event) String() string {
	return ev.Type.String()
}
