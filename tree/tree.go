// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides [Tree], an observable hierarchical collection
// that wraps a caller-owned nested data source and exposes it to UI
// controls through multi-level [Location] addressing, recursive
// length/item/branch queries, and the same change event contract as
// the flat [github.com/veltkit/velt/lists] package, generalized from
// scalar indices to paths.
//
// The shape of the raw nodes is abstracted behind [Descriptor]:
// [FieldDescriptor] handles map nodes with a children field (the
// default), [NodeDescriptor] handles statically typed [Node] trees,
// and [FuncDescriptor] adapts anything else through closures. The
// descriptor is an explicit constructor parameter, not a shared
// global.
//
// As with the flat collection, operations are synchronous and
// single-threaded, and ownership of the raw structure is shared with
// the caller.
package tree

import (
	"fmt"
	"slices"

	"github.com/veltkit/velt/base/reflectx"
	"github.com/veltkit/velt/events"
)

const (
	// Continue = true can be returned from walk functions to continue
	// processing down the tree, as compared to Break = false which
	// stops this branch.
	Continue = true

	// Break = false can be returned from walk functions to stop
	// processing this branch of the tree.
	Break = false
)

// Tree is an observable collection over a nested data source: a root
// sequence of opaque nodes, some of which are branches holding child
// sequences of their own, as determined by the [Descriptor].
type Tree struct {

	// Items is the raw root sequence. It may be read and mutated
	// directly by the owner of the data.
	Items []any

	// desc translates the raw node shape into the uniform branch and
	// children operations.
	desc Descriptor

	listeners events.Listeners
}

// New returns a new [Tree] over the given root sequence, using the
// default [FieldDescriptor]. The sequence is referenced, not copied.
func New(items []any) *Tree {
	return NewWith(FieldDescriptor{}, items)
}

// NewWith returns a new [Tree] over the given root sequence, using
// the given descriptor.
func NewWith(desc Descriptor, items []any) *Tree {
	return &Tree{Items: items, desc: desc}
}

// On adds an event listener for the given event type.
func (tr *Tree) On(typ events.Types, fun func(ev *events.Event)) {
	tr.listeners.Add(typ, fun)
}

func (tr *Tree) send(ev *events.Event) {
	tr.listeners.Call(ev)
}

// IsBranch reports whether the given node is a branch per the
// configured descriptor.
func (tr *Tree) IsBranch(node any) bool {
	return tr.desc.IsBranch(node)
}

// Len returns the number of nodes in the root sequence.
func (tr *Tree) Len() int {
	return len(tr.Items)
}

// lengthOf returns the child count of the given branch, where a nil
// branch stands for the root sequence.
func (tr *Tree) lengthOf(branch any) (int, error) {
	if branch == nil {
		return len(tr.Items), nil
	}
	return tr.desc.Length(branch)
}

// itemOf returns the child of the given branch at the given index,
// where a nil branch stands for the root sequence. Out-of-range
// indices yield nil.
func (tr *Tree) itemOf(branch any, index int) (any, error) {
	if branch == nil {
		if index < 0 || index >= len(tr.Items) {
			return nil, nil
		}
		return tr.Items[index], nil
	}
	return tr.desc.ItemAt(branch, index)
}

// resolveBranch descends from the root one level per location
// segment and returns the branch at the location, nil meaning the
// root. It fails with [ErrBranchNotFound] if any segment resolves to
// a missing node or a non-branch.
func (tr *Tree) resolveBranch(loc Location) (any, error) {
	var branch any
	for i, idx := range loc {
		item, err := tr.itemOf(branch, idx)
		if err != nil {
			return nil, err
		}
		if item == nil || !tr.desc.IsBranch(item) {
			return nil, fmt.Errorf("%w: no branch at segment %d of %v", ErrBranchNotFound, i, loc)
		}
		branch = item
	}
	return branch, nil
}

// LenAt returns the child count of the branch at the given location,
// or of the root sequence for an empty location. It fails with
// [ErrBranchNotFound] if any segment does not resolve to a branch.
func (tr *Tree) LenAt(loc Location) (int, error) {
	branch, err := tr.resolveBranch(loc)
	if err != nil {
		return 0, err
	}
	return tr.lengthOf(branch)
}

// ItemAt returns the item at the given location. An empty location
// returns nil, nil (the not-found sentinel), as does an out-of-range
// final index; an intermediate segment that does not resolve to a
// branch fails with [ErrBranchNotFound]. The sentinel-versus-error
// asymmetry distinguishes "nothing there" from a malformed path.
func (tr *Tree) ItemAt(loc Location) (any, error) {
	if len(loc) == 0 {
		return nil, nil
	}
	branch, err := tr.resolveBranch(loc[:len(loc)-1])
	if err != nil {
		return nil, err
	}
	return tr.itemOf(branch, loc[len(loc)-1])
}

// ItemLocation returns the location of the given item, found by
// pre-order depth-first search from the root: each node is checked by
// identity before its children are recursed into, and branches can be
// found as items themselves. It returns an empty, non-nil location if
// the item is not in the tree, so callers distinguish "not found"
// from "found at root" by length.
func (tr *Tree) ItemLocation(item any) Location {
	if found, ok := tr.findIn(nil, item, nil); ok {
		return found
	}
	return Location{}
}

func (tr *Tree) findIn(branch, item any, path Location) (Location, bool) {
	n, err := tr.lengthOf(branch)
	if err != nil {
		return nil, false
	}
	for i := 0; i < n; i++ {
		child, err := tr.itemOf(branch, i)
		if err != nil || child == nil {
			continue
		}
		loc := append(path[:len(path):len(path)], i)
		if reflectx.Same(child, item) {
			return loc, true
		}
		if tr.desc.IsBranch(child) {
			if found, ok := tr.findIn(child, item, loc); ok {
				return found, true
			}
		}
	}
	return nil, false
}

// Walk calls the given function on every node in the tree in
// pre-order, passing the node's location (valid only for the duration
// of the call) and the node itself. Returning [Break] skips the
// node's children; returning [Continue] descends into them.
func (tr *Tree) Walk(fun func(loc Location, node any) bool) {
	tr.walkIn(nil, nil, fun)
}

func (tr *Tree) walkIn(branch any, path Location, fun func(loc Location, node any) bool) {
	n, err := tr.lengthOf(branch)
	if err != nil {
		return
	}
	for i := 0; i < n; i++ {
		child, err := tr.itemOf(branch, i)
		if err != nil || child == nil {
			continue
		}
		loc := append(path[:len(path):len(path)], i)
		if !fun(loc, child) {
			continue
		}
		if tr.desc.IsBranch(child) {
			tr.walkIn(child, loc, fun)
		}
	}
}

// InsertAt inserts the given item at the given location: all but the
// last segment must resolve to a branch ([ErrBranchNotFound]
// otherwise), and the last segment is the insertion index within it,
// clamped to an append when out of range. On success it emits Change
// and AddItem carrying a copy of the resolved location.
func (tr *Tree) InsertAt(loc Location, item any) error {
	if len(loc) == 0 {
		return fmt.Errorf("%w: empty location", ErrBranchNotFound)
	}
	branch, err := tr.resolveBranch(loc[:len(loc)-1])
	if err != nil {
		return err
	}
	idx := loc[len(loc)-1]
	if branch == nil {
		if idx < 0 || idx > len(tr.Items) {
			idx = len(tr.Items)
		}
		tr.Items = slices.Insert(tr.Items, idx, item)
	} else {
		n, err := tr.lengthOf(branch)
		if err != nil {
			return err
		}
		if idx < 0 || idx > n {
			idx = n
		}
		if err := tr.desc.InsertAt(branch, idx, item); err != nil {
			return err
		}
	}
	res := append(loc[:len(loc)-1:len(loc)-1], idx)
	tr.send(events.New(events.Change))
	tr.send(events.NewLocation(events.AddItem, res, item))
	return nil
}

// RemoveAt removes and returns the item at the given location,
// emitting Change and RemoveItem with a copy of the location. An
// out-of-range final index returns nil, nil with no events; a bad
// intermediate segment fails with [ErrBranchNotFound].
func (tr *Tree) RemoveAt(loc Location) (any, error) {
	if len(loc) == 0 {
		return nil, nil
	}
	branch, err := tr.resolveBranch(loc[:len(loc)-1])
	if err != nil {
		return nil, err
	}
	idx := loc[len(loc)-1]
	n, err := tr.lengthOf(branch)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= n {
		return nil, nil
	}
	var item any
	if branch == nil {
		item = tr.Items[idx]
		tr.Items = slices.Delete(tr.Items, idx, idx+1)
	} else {
		item, err = tr.desc.RemoveAt(branch, idx)
		if err != nil {
			return nil, err
		}
	}
	tr.send(events.New(events.Change))
	tr.send(events.NewLocation(events.RemoveItem, loc, item))
	return item, nil
}

// Remove removes the given item from wherever it is in the tree,
// returning false, with no events, if it is not found.
func (tr *Tree) Remove(item any) bool {
	loc := tr.ItemLocation(item)
	if len(loc) == 0 {
		return false
	}
	_, err := tr.RemoveAt(loc)
	return err == nil
}

// SetAt replaces the item at the given location, emitting ReplaceItem
// (with the old item) followed by Change, both carrying a copy of the
// location. An out-of-range final index is a silent no-op; a bad
// intermediate segment fails with [ErrBranchNotFound].
func (tr *Tree) SetAt(loc Location, item any) error {
	if len(loc) == 0 {
		return fmt.Errorf("%w: empty location", ErrBranchNotFound)
	}
	branch, err := tr.resolveBranch(loc[:len(loc)-1])
	if err != nil {
		return err
	}
	idx := loc[len(loc)-1]
	n, err := tr.lengthOf(branch)
	if err != nil {
		return err
	}
	if idx < 0 || idx >= n {
		return nil
	}
	old, err := tr.itemOf(branch, idx)
	if err != nil {
		return err
	}
	if branch == nil {
		tr.Items[idx] = item
	} else if err := tr.desc.SetItemAt(branch, idx, item); err != nil {
		return err
	}
	ev := events.NewLocation(events.ReplaceItem, loc, item)
	ev.OldItem = old
	tr.send(ev)
	tr.send(events.New(events.Change))
	return nil
}

// SetItems replaces the entire root sequence and emits Change and
// Reset.
func (tr *Tree) SetItems(items []any) {
	tr.Items = items
	tr.send(events.New(events.Change))
	tr.send(events.New(events.Reset))
}

// Clear removes all nodes and emits Change and RemoveAll.
func (tr *Tree) Clear() {
	tr.Items = nil
	tr.send(events.New(events.Change))
	tr.send(events.New(events.RemoveAll))
}

// UpdateAt signals that a property of the item at the given location
// changed and it should be re-rendered. It emits only UpdateItem,
// with a copy of the location; no collection state changes.
func (tr *Tree) UpdateAt(loc Location) {
	item, _ := tr.ItemAt(loc)
	tr.send(events.NewLocation(events.UpdateItem, loc, item))
}

// UpdateAll signals that all items should be re-rendered. It emits
// only UpdateAll.
func (tr *Tree) UpdateAll() {
	tr.send(events.New(events.UpdateAll))
}

// Dispose tears the collection down, walking the raw structure in
// pre-order regardless of anything a consumer was shown: every branch
// is passed to disposeBranch (if non-nil) before its children are
// recursed into, and every leaf is passed to disposeItem (if
// non-nil). A branch is never also treated as a leaf. All references
// are dropped afterwards.
func (tr *Tree) Dispose(disposeBranch, disposeItem func(node any)) {
	tr.disposeIn(nil, disposeBranch, disposeItem)
	tr.Items = nil
	tr.listeners = nil
}

func (tr *Tree) disposeIn(branch any, disposeBranch, disposeItem func(node any)) {
	n, err := tr.lengthOf(branch)
	if err != nil {
		return
	}
	for i := 0; i < n; i++ {
		child, err := tr.itemOf(branch, i)
		if err != nil || child == nil {
			continue
		}
		if tr.desc.IsBranch(child) {
			if disposeBranch != nil {
				disposeBranch(child)
			}
			tr.disposeIn(child, disposeBranch, disposeItem)
		} else if disposeItem != nil {
			disposeItem(child)
		}
	}
}
