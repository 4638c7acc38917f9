// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lists provides [List], an observable flat collection that
// wraps a caller-owned slice and presents it to UI controls as an
// optionally filtered and sorted view, with precise change events so
// list renderers can do partial instead of full updates.
//
// When neither a filter nor a sort comparator is configured, every
// operation passes straight through to the raw slice with no derived
// state at all. Configuring either one flags the visible view as
// pending; the view is recomputed lazily on the next read, so setting
// a filter and a comparator back to back costs one recompute, not two.
//
// Ownership of the raw slice is shared: the caller may mutate it
// directly behind the collection's back, and then call [List.Refresh]
// to re-derive the view. All operations are synchronous and
// single-threaded; concurrent use from multiple goroutines is not
// supported.
package lists

import (
	"slices"

	"github.com/veltkit/velt/base/reflectx"
	"github.com/veltkit/velt/base/slicesx"
	"github.com/veltkit/velt/events"
)

// List is an observable collection over a flat slice of items.
// Indices in all methods are in the visible (filtered/sorted)
// coordinate space when a view is active, except for the bulk
// operations [List.AddAll] and [List.AddAllAt], which address the raw
// slice directly.
//
// Item lookup is by identity ([reflectx.Same]): pointer-like items
// compare by reference, comparable values by equality.
type List[T any] struct {

	// Items is the raw backing slice. It may be read and mutated
	// directly by the owner of the data, followed by [List.Refresh]
	// to bring the visible view back in sync.
	Items []T

	// filter reports whether an item is included in the visible view.
	filter func(item T) bool

	// cmp is the 3-way sort comparator for the visible view.
	cmp func(a, b T) int

	// visible is the derived filtered/sorted view. It is nil whenever
	// neither filter nor cmp is configured, in which case all
	// operations pass through to Items.
	visible []T

	// pending flags the visible view for lazy recomputation on the
	// next read.
	pending bool

	listeners events.Listeners
}

// New returns a new [List] wrapping the given slice. The slice is
// referenced, not copied.
func New[T any](items []T) *List[T] {
	return &List[T]{Items: items}
}

// On adds an event listener for the given event type.
func (ls *List[T]) On(typ events.Types, fun func(ev *events.Event)) {
	ls.listeners.Add(typ, fun)
}

func (ls *List[T]) send(ev *events.Event) {
	ls.listeners.Call(ev)
}

// update recomputes the visible view if it is pending.
func (ls *List[T]) update() {
	if !ls.pending {
		return
	}
	ls.pending = false
	if ls.filter == nil && ls.cmp == nil {
		ls.visible = nil
		return
	}
	vis := make([]T, 0, len(ls.Items))
	for _, it := range ls.Items {
		if ls.filter == nil || ls.filter(it) {
			vis = append(vis, it)
		}
	}
	if ls.cmp != nil {
		slices.SortStableFunc(vis, ls.cmp)
	}
	ls.visible = vis
}

// rawIndexOf returns the index of the given item in the raw slice by
// identity, or -1.
func (ls *List[T]) rawIndexOf(item T) int {
	return slicesx.Search(ls.Items, func(e T) bool { return reflectx.Same(e, item) })
}

// sortedIndex returns the visible index at which the given item
// should be inserted per the comparator. The first position where the
// item does not sort after the existing element wins, so new items
// that compare equal land before existing equal ones.
func (ls *List[T]) sortedIndex(item T) int {
	for i, e := range ls.visible {
		if ls.cmp(item, e) <= 0 {
			return i
		}
	}
	return len(ls.visible)
}

// Len returns the number of visible items when a filter or sort is
// active, and the raw length otherwise. A pending view is recomputed
// first, so the length is never stale relative to the latest
// configuration or mutation.
func (ls *List[T]) Len() int {
	ls.update()
	if ls.visible != nil {
		return len(ls.visible)
	}
	return len(ls.Items)
}

// Filter returns the current filter function, or nil.
func (ls *List[T]) Filter() func(item T) bool {
	return ls.filter
}

// SetFilter sets the filter function determining which items are
// visible; nil clears it. The view is flagged for lazy recomputation
// on the next read, and Change and FilterChange are emitted now, so
// listeners must not assume the view already reflects the new filter.
func (ls *List[T]) SetFilter(filter func(item T) bool) {
	ls.filter = filter
	ls.pending = true
	ls.send(events.New(events.Change))
	ls.send(events.New(events.FilterChange))
}

// Sort returns the current sort comparator, or nil.
func (ls *List[T]) Sort() func(a, b T) int {
	return ls.cmp
}

// SetSort sets the 3-way comparator ordering the visible view; nil
// clears it. The view is flagged for lazy recomputation on the next
// read, and Change and SortChange are emitted now.
func (ls *List[T]) SetSort(cmp func(a, b T) int) {
	ls.cmp = cmp
	ls.pending = true
	ls.send(events.New(events.Change))
	ls.send(events.New(events.SortChange))
}

// Refresh flags the view for recomputation and re-emits the same
// events as setting the filter/comparator would, for the case where
// the functions are unchanged but capture external state that
// changed, or the raw slice was mutated directly. It is a no-op when
// neither a filter nor a comparator is configured.
func (ls *List[T]) Refresh() {
	if ls.filter == nil && ls.cmp == nil {
		return
	}
	ls.pending = true
	ls.send(events.New(events.Change))
	if ls.filter != nil {
		ls.send(events.New(events.FilterChange))
	}
	if ls.cmp != nil {
		ls.send(events.New(events.SortChange))
	}
}

// ItemAt returns the item at the given index in the current view,
// or the zero value if the index is out of range.
func (ls *List[T]) ItemAt(index int) T {
	ls.update()
	var zv T
	if ls.visible != nil {
		if index < 0 || index >= len(ls.visible) {
			return zv
		}
		return ls.visible[index]
	}
	if index < 0 || index >= len(ls.Items) {
		return zv
	}
	return ls.Items[index]
}

// IndexOf returns the index of the given item in the current view,
// or -1 if it is not there. An item present in the raw slice but
// excluded by the active filter yields -1; see [List.Contains] for a
// filter-independent membership test.
func (ls *List[T]) IndexOf(item T) int {
	ls.update()
	match := func(e T) bool { return reflectx.Same(e, item) }
	if ls.visible != nil {
		return slicesx.Search(ls.visible, match)
	}
	return slicesx.Search(ls.Items, match)
}

// Contains reports whether the given item is in the raw slice,
// regardless of any active filter.
func (ls *List[T]) Contains(item T) bool {
	return ls.rawIndexOf(item) >= 0
}

// InsertAt inserts the given item at the given visible index. When a
// view is active, the index is translated to the raw position of the
// visible item currently there, or the raw end if it names no visible
// item. An inserted item that the active filter excludes emits no
// events at all; a visible one is placed at its sorted position (new
// equal items go before existing equals; without a comparator it is
// appended to the view) and Change and AddItem are emitted with its
// final visible index.
func (ls *List[T]) InsertAt(index int, item T) {
	ls.update()
	if ls.visible == nil {
		if index < 0 || index > len(ls.Items) {
			index = len(ls.Items)
		}
		ls.Items = slices.Insert(ls.Items, index, item)
		ls.send(events.New(events.Change))
		ls.send(events.NewIndex(events.AddItem, index, item))
		return
	}
	ri := len(ls.Items)
	if index >= 0 && index < len(ls.visible) {
		if i := ls.rawIndexOf(ls.visible[index]); i >= 0 {
			ri = i
		}
	}
	ls.Items = slices.Insert(ls.Items, ri, item)
	if ls.filter != nil && !ls.filter(item) {
		return // hidden: renderers never see phantom rows
	}
	vi := len(ls.visible)
	if ls.cmp != nil {
		vi = ls.sortedIndex(item)
	}
	ls.visible = slices.Insert(ls.visible, vi, item)
	ls.send(events.New(events.Change))
	ls.send(events.NewIndex(events.AddItem, vi, item))
}

// Add appends the given item; see [List.InsertAt].
func (ls *List[T]) Add(item T) {
	ls.InsertAt(ls.Len(), item)
}

// RemoveAt removes and returns the item at the given index in the
// current view, also removing it from the raw slice by identity, and
// emits Change and RemoveItem. It returns the zero value and emits
// nothing if the index is out of range.
func (ls *List[T]) RemoveAt(index int) T {
	ls.update()
	var item T
	if ls.visible != nil {
		if index < 0 || index >= len(ls.visible) {
			return item
		}
		item = ls.visible[index]
		ls.visible = slices.Delete(ls.visible, index, index+1)
		if ri := ls.rawIndexOf(item); ri >= 0 {
			ls.Items = slices.Delete(ls.Items, ri, ri+1)
		}
	} else {
		if index < 0 || index >= len(ls.Items) {
			return item
		}
		item = ls.Items[index]
		ls.Items = slices.Delete(ls.Items, index, index+1)
	}
	ls.send(events.New(events.Change))
	ls.send(events.NewIndex(events.RemoveItem, index, item))
	return item
}

// Remove removes the given item from the collection. It is a no-op,
// with no events, if the item is not in the currently visible view.
func (ls *List[T]) Remove(item T) {
	idx := ls.IndexOf(item)
	if idx < 0 {
		return
	}
	ls.RemoveAt(idx)
}

// SetAt replaces the item at the given index in the current view,
// replacing it in the raw slice first. With a filter active, a
// replacement that still passes replaces in place and emits
// ReplaceItem, while one that now fails is spliced out of the view
// and emits RemoveItem instead: from the observer's perspective an
// item going from visible to hidden is a removal, not a replacement.
// With only a comparator active, the replacement is moved to its new
// sorted position, but ReplaceItem still carries the original index;
// sort-driven repositioning is not separately signaled.
func (ls *List[T]) SetAt(index int, item T) {
	ls.update()
	if ls.visible == nil {
		if index < 0 || index >= len(ls.Items) {
			return
		}
		old := ls.Items[index]
		ls.Items[index] = item
		ls.sendReplace(index, item, old)
		return
	}
	if index < 0 || index >= len(ls.visible) {
		return
	}
	old := ls.visible[index]
	if ri := ls.rawIndexOf(old); ri >= 0 {
		ls.Items[ri] = item
	}
	if ls.filter != nil {
		if ls.filter(item) {
			ls.visible[index] = item
			ls.sendReplace(index, item, old)
			return
		}
		ls.visible = slices.Delete(ls.visible, index, index+1)
		ls.send(events.New(events.Change))
		ls.send(events.NewIndex(events.RemoveItem, index, old))
		return
	}
	ls.visible = slices.Delete(ls.visible, index, index+1)
	ls.visible = slices.Insert(ls.visible, ls.sortedIndex(item), item)
	ls.sendReplace(index, item, old)
}

// sendReplace emits ReplaceItem followed by Change; ReplaceItem is
// the one event type dispatched before Change.
func (ls *List[T]) sendReplace(index int, item, old T) {
	ev := events.NewIndex(events.ReplaceItem, index, item)
	ev.OldItem = old
	ls.send(ev)
	ls.send(events.New(events.Change))
}

// AddAll appends the given items to the raw slice only, with no
// events and no view update; call [List.Refresh] afterwards. Bulk
// loads bypass the incremental view maintenance on purpose, since
// updating the view item by item would be quadratic.
func (ls *List[T]) AddAll(items ...T) {
	ls.Items = append(ls.Items, items...)
}

// AddAllAt inserts the given items at the given raw index, with the
// same raw-only semantics as [List.AddAll]. An out-of-range index
// appends.
func (ls *List[T]) AddAllAt(index int, items ...T) {
	if index < 0 || index > len(ls.Items) {
		index = len(ls.Items)
	}
	ls.Items = slices.Insert(ls.Items, index, items...)
}

// SetItems replaces the entire raw slice, flags the view for
// recomputation, and emits Change and Reset.
func (ls *List[T]) SetItems(items []T) {
	ls.Items = items
	ls.pending = true
	ls.send(events.New(events.Change))
	ls.send(events.New(events.Reset))
}

// Clear removes all items and emits Change and RemoveAll.
func (ls *List[T]) Clear() {
	ls.Items = nil
	if ls.filter != nil || ls.cmp != nil {
		ls.visible = []T{}
	} else {
		ls.visible = nil
	}
	ls.pending = false
	ls.send(events.New(events.Change))
	ls.send(events.New(events.RemoveAll))
}

// UpdateAt signals that a property of the item at the given visible
// index changed and it should be re-rendered. It emits only
// UpdateItem: no collection state changes, and the item is read from
// the current view as-is, without flushing a pending recompute.
func (ls *List[T]) UpdateAt(index int) {
	var item T
	if ls.visible != nil {
		if index >= 0 && index < len(ls.visible) {
			item = ls.visible[index]
		}
	} else if index >= 0 && index < len(ls.Items) {
		item = ls.Items[index]
	}
	ls.send(events.NewIndex(events.UpdateItem, index, item))
}

// UpdateAll signals that all items should be re-rendered. It emits
// only UpdateAll.
func (ls *List[T]) UpdateAll() {
	ls.send(events.New(events.UpdateAll))
}

// Dispose tears the collection down: it clears any active filter
// (filtering has no meaning during teardown), performs one final
// recompute so the raw slice is canonical, invokes the given function
// once per raw item in raw order if non-nil, and drops all
// references. Disposal reaches every item regardless of visibility.
func (ls *List[T]) Dispose(disposeItem func(item T)) {
	ls.filter = nil
	ls.pending = true
	ls.update()
	if disposeItem != nil {
		for _, it := range ls.Items {
			disposeItem(it)
		}
	}
	ls.Items = nil
	ls.visible = nil
	ls.cmp = nil
	ls.listeners = nil
}
