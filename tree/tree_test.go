// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltkit/velt/events"
)

// record registers a listener for every event type and returns the
// events in dispatch order.
func record(tr *Tree) *[]*events.Event {
	evs := &[]*events.Event{}
	for typ := events.Types(1); typ < events.TypesN; typ++ {
		tr.On(typ, func(ev *events.Event) { *evs = append(*evs, ev) })
	}
	return evs
}

func typesOf(evs []*events.Event) []events.Types {
	ts := make([]events.Types, len(evs))
	for i, ev := range evs {
		ts[i] = ev.Type
	}
	return ts
}

func branch(v any, children ...any) map[string]any {
	if children == nil {
		children = []any{}
	}
	return map[string]any{"v": v, "children": children}
}

func leaf(v any) map[string]any {
	return map[string]any{"v": v}
}

func TestLookup(t *testing.T) {
	l2 := leaf(2)
	b1 := branch(1, l2)
	tr := New([]any{b1})

	assert.Equal(t, Location{0, 0}, tr.ItemLocation(l2))
	assert.Equal(t, Location{0}, tr.ItemLocation(b1))

	n, err := tr.LenAt(Location{0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = tr.LenAt(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// out-of-range leaf index under a valid branch is a sentinel, not an error
	it, err := tr.ItemAt(Location{0, 1})
	require.NoError(t, err)
	assert.Nil(t, it)

	it, err = tr.ItemAt(Location{0, 0})
	require.NoError(t, err)
	assert.Equal(t, l2, it)

	// empty location is a sentinel, not an error
	it, err = tr.ItemAt(nil)
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestBranchNotFound(t *testing.T) {
	tr := New([]any{branch(1, leaf(2))})

	// descending through a leaf fails
	_, err := tr.ItemAt(Location{0, 0, 0})
	assert.ErrorIs(t, err, ErrBranchNotFound)

	_, err = tr.LenAt(Location{0, 0})
	assert.ErrorIs(t, err, ErrBranchNotFound)

	// missing intermediate node fails
	_, err = tr.LenAt(Location{5})
	assert.ErrorIs(t, err, ErrBranchNotFound)

	err = tr.InsertAt(nil, leaf(9))
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestItemLocationNotFound(t *testing.T) {
	tr := New([]any{branch(1, leaf(2))})
	loc := tr.ItemLocation(leaf(99))
	// empty but non-nil: "not found" is distinguished from
	// "found at root" by length alone
	assert.NotNil(t, loc)
	assert.Len(t, loc, 0)
}

func TestPreOrderSearch(t *testing.T) {
	shared := leaf("x")
	early := branch("a", shared)
	late := branch("b", leaf("x2"))
	tr := New([]any{early, late})
	// the first pre-order hit wins
	assert.Equal(t, Location{0, 0}, tr.ItemLocation(shared))
}

func TestInsertAt(t *testing.T) {
	b1 := branch(1, leaf(2))
	tr := New([]any{b1})

	evs := record(tr)
	nl := leaf(3)
	require.NoError(t, tr.InsertAt(Location{0, 0}, nl))
	n, err := tr.LenAt(Location{0})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	it, err := tr.ItemAt(Location{0, 0})
	require.NoError(t, err)
	assert.Equal(t, nl, it)

	require.Len(t, *evs, 2)
	assert.Equal(t, []events.Types{events.Change, events.AddItem}, typesOf(*evs))
	assert.Equal(t, []int{0, 0}, (*evs)[1].Location)

	// root-level insert, out-of-range index appends
	require.NoError(t, tr.InsertAt(Location{10}, leaf(4)))
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []int{1}, (*evs)[3].Location)
}

func TestEventLocationIsolated(t *testing.T) {
	tr := New([]any{branch(1, leaf(2))})
	var got []int
	tr.On(events.AddItem, func(ev *events.Event) { got = ev.Location })
	loc := Location{0, 0}
	require.NoError(t, tr.InsertAt(loc, leaf(3)))
	loc[0] = 99
	assert.Equal(t, []int{0, 0}, got)
}

func TestRemoveAt(t *testing.T) {
	l2 := leaf(2)
	tr := New([]any{branch(1, l2)})

	evs := record(tr)
	it, err := tr.RemoveAt(Location{0, 0})
	require.NoError(t, err)
	assert.Equal(t, l2, it)
	n, err := tr.LenAt(Location{0})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []events.Types{events.Change, events.RemoveItem}, typesOf(*evs))

	// out-of-range removal is a silent no-op
	*evs = nil
	it, err = tr.RemoveAt(Location{0, 5})
	require.NoError(t, err)
	assert.Nil(t, it)
	assert.Empty(t, *evs)
}

func TestRemoveItem(t *testing.T) {
	l2 := leaf(2)
	tr := New([]any{branch(1, l2)})
	assert.False(t, tr.Remove(leaf(9)))
	assert.True(t, tr.Remove(l2))
	n, err := tr.LenAt(Location{0})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSetAt(t *testing.T) {
	l2 := leaf(2)
	tr := New([]any{branch(1, l2)})

	evs := record(tr)
	nl := leaf(20)
	require.NoError(t, tr.SetAt(Location{0, 0}, nl))
	it, err := tr.ItemAt(Location{0, 0})
	require.NoError(t, err)
	assert.Equal(t, nl, it)

	require.Len(t, *evs, 2)
	assert.Equal(t, []events.Types{events.ReplaceItem, events.Change}, typesOf(*evs))
	assert.Equal(t, l2, (*evs)[0].OldItem)

	// out-of-range replacement is a silent no-op
	*evs = nil
	require.NoError(t, tr.SetAt(Location{0, 7}, leaf(9)))
	assert.Empty(t, *evs)
}

func TestSetItemsAndClear(t *testing.T) {
	tr := New([]any{leaf(1)})
	evs := record(tr)
	tr.SetItems([]any{leaf(2), leaf(3)})
	assert.Equal(t, []events.Types{events.Change, events.Reset}, typesOf(*evs))
	assert.Equal(t, 2, tr.Len())

	*evs = nil
	tr.Clear()
	assert.Equal(t, []events.Types{events.Change, events.RemoveAll}, typesOf(*evs))
	assert.Equal(t, 0, tr.Len())
}

func TestUpdateSignals(t *testing.T) {
	l2 := leaf(2)
	tr := New([]any{branch(1, l2)})
	evs := record(tr)
	tr.UpdateAt(Location{0, 0})
	tr.UpdateAll()
	assert.Equal(t, []events.Types{events.UpdateItem, events.UpdateAll}, typesOf(*evs))
	assert.Equal(t, l2, (*evs)[0].Item)
	assert.Equal(t, []int{0, 0}, (*evs)[0].Location)
}

func TestWalk(t *testing.T) {
	tr := New([]any{
		branch("b1", leaf("l1"), branch("b2", leaf("l2"))),
		leaf("l3"),
	})
	locs := []string{}
	tr.Walk(func(loc Location, node any) bool {
		locs = append(locs, loc.String())
		return Continue
	})
	assert.Equal(t, []string{"/0", "/0/0", "/0/1", "/0/1/0", "/1"}, locs)

	// Break skips the children of a branch, not its siblings
	locs = nil
	tr.Walk(func(loc Location, node any) bool {
		locs = append(locs, loc.String())
		return len(loc) < 2
	})
	assert.Equal(t, []string{"/0", "/0/0", "/0/1", "/1"}, locs)
}

func TestDispose(t *testing.T) {
	l1, l2, l3 := leaf("l1"), leaf("l2"), leaf("l3")
	b2 := branch("b2", l2)
	b1 := branch("b1", l1, b2)
	tr := New([]any{b1, l3})

	var order []any
	tr.Dispose(
		func(n any) { order = append(order, n) },
		func(n any) { order = append(order, n) },
	)
	// pre-order: every branch before its descendants, every leaf
	// exactly once, regardless of any view state
	assert.Equal(t, []any{b1, l1, b2, l2, l3}, order)
	assert.Nil(t, tr.Items)
}

func TestDisposeBranchNeverLeaf(t *testing.T) {
	b := branch("b") // childless branch still has a children field
	tr := New([]any{b})
	branches, leaves := 0, 0
	tr.Dispose(
		func(n any) { branches++ },
		func(n any) { leaves++ },
	)
	assert.Equal(t, 1, branches)
	assert.Equal(t, 0, leaves)
}

func TestCustomChildrenField(t *testing.T) {
	kid := map[string]any{"name": "kid"}
	root := map[string]any{"name": "root", "items": []any{kid}}
	tr := NewWith(FieldDescriptor{Field: "items"}, []any{root})
	assert.True(t, tr.IsBranch(root))
	assert.False(t, tr.IsBranch(kid))
	assert.Equal(t, Location{0, 0}, tr.ItemLocation(kid))
}

func TestFieldDescriptorInvalidType(t *testing.T) {
	fd := FieldDescriptor{}
	_, err := fd.Length(42)
	assert.ErrorIs(t, err, ErrInvalidType)
	_, err = fd.ItemAt(map[string]any{"children": "nope"}, 0)
	assert.ErrorIs(t, err, ErrInvalidType)
}

type group struct {
	name string
	kids []any
}

func groupDescriptor() FuncDescriptor {
	return FuncDescriptor{
		Branch: func(n any) bool {
			_, ok := n.(*group)
			return ok
		},
		Children: func(b any) ([]any, bool) {
			g, ok := b.(*group)
			if !ok {
				return nil, false
			}
			return g.kids, true
		},
		SetChildren: func(b any, kids []any) bool {
			g, ok := b.(*group)
			if !ok {
				return false
			}
			g.kids = kids
			return true
		},
	}
}

func TestFuncDescriptor(t *testing.T) {
	g := &group{name: "g", kids: []any{"a", "b"}}
	tr := NewWith(groupDescriptor(), []any{g, "c"})

	n, err := tr.LenAt(Location{0})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, tr.InsertAt(Location{0, 1}, "x"))
	assert.Equal(t, []any{"a", "x", "b"}, g.kids)

	it, err := tr.RemoveAt(Location{0, 0})
	require.NoError(t, err)
	assert.Equal(t, "a", it)
	assert.Equal(t, []any{"x", "b"}, g.kids)

	require.NoError(t, tr.SetAt(Location{0, 0}, "y"))
	assert.Equal(t, []any{"y", "b"}, g.kids)

	assert.Equal(t, Location{0, 1}, tr.ItemLocation("b"))
}

func TestFuncDescriptorInvalidType(t *testing.T) {
	fd := groupDescriptor()
	_, err := fd.Length("not a group")
	assert.ErrorIs(t, err, ErrInvalidType)
	err = fd.InsertAt(42, 0, "x")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestLocation(t *testing.T) {
	loc := Location{0, 2, 1}
	cp := loc.Copy()
	loc[0] = 9
	assert.Equal(t, Location{0, 2, 1}, cp)
	assert.Equal(t, "/9/2/1", loc.String())
	assert.Equal(t, "/", Location{}.String())
}
