// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"slices"
)

// Descriptor adapts a caller-supplied raw node shape to the uniform
// primitive operations [Tree] needs: a branch test plus length, get,
// set, insert, and remove on a branch's children. [Tree] handles the
// root sequence itself, so descriptors only ever see non-root nodes.
//
// Operations other than IsBranch return [ErrInvalidType] (wrapped
// with detail) when handed a node whose backing shape they do not
// understand. Indices are validated by [Tree] before mutation calls,
// so descriptors may assume them in range, except that InsertAt
// clamps an out-of-range index to an append and ItemAt returns nil
// for one.
type Descriptor interface {

	// IsBranch reports whether the given node is a branch with
	// children, as opposed to a leaf item. It must be pure and cheap;
	// it is called recursively during traversal, lookup, and
	// disposal.
	IsBranch(node any) bool

	// Length returns the number of children of the given branch.
	Length(branch any) (int, error)

	// ItemAt returns the child of the given branch at the given
	// index, or nil if the index is out of range.
	ItemAt(branch any, index int) (any, error)

	// SetItemAt replaces the child of the given branch at the given
	// index.
	SetItemAt(branch any, index int, item any) error

	// InsertAt inserts a child into the given branch at the given
	// index, appending if the index is out of range.
	InsertAt(branch any, index int, item any) error

	// RemoveAt removes and returns the child of the given branch at
	// the given index.
	RemoveAt(branch any, index int) (any, error)
}

// DefaultChildrenField is the field name [FieldDescriptor] resolves
// children under when none is configured.
const DefaultChildrenField = "children"

// FieldDescriptor is the dynamic children-field convention: nodes are
// map[string]any values, and a node is a branch exactly when it holds
// a []any under the configured field. It is the default descriptor
// for [New].
type FieldDescriptor struct {

	// Field is the key the children slice is stored under.
	// It defaults to [DefaultChildrenField].
	Field string
}

func (fd FieldDescriptor) field() string {
	if fd.Field == "" {
		return DefaultChildrenField
	}
	return fd.Field
}

// IsBranch reports whether the node is a map holding a []any under
// the children field.
func (fd FieldDescriptor) IsBranch(node any) bool {
	m, ok := node.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m[fd.field()].([]any)
	return ok
}

// children returns the branch map and its children slice.
func (fd FieldDescriptor) children(branch any) (map[string]any, []any, error) {
	m, ok := branch.(map[string]any)
	if !ok {
		return nil, nil, fmt.Errorf("%w: branch is %T, not map[string]any", ErrInvalidType, branch)
	}
	kids, ok := m[fd.field()].([]any)
	if !ok {
		return nil, nil, fmt.Errorf("%w: field %q is %T, not []any", ErrInvalidType, fd.field(), m[fd.field()])
	}
	return m, kids, nil
}

func (fd FieldDescriptor) Length(branch any) (int, error) {
	_, kids, err := fd.children(branch)
	return len(kids), err
}

func (fd FieldDescriptor) ItemAt(branch any, index int) (any, error) {
	_, kids, err := fd.children(branch)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(kids) {
		return nil, nil
	}
	return kids[index], nil
}

func (fd FieldDescriptor) SetItemAt(branch any, index int, item any) error {
	_, kids, err := fd.children(branch)
	if err != nil {
		return err
	}
	kids[index] = item
	return nil
}

func (fd FieldDescriptor) InsertAt(branch any, index int, item any) error {
	m, kids, err := fd.children(branch)
	if err != nil {
		return err
	}
	if index < 0 || index > len(kids) {
		index = len(kids)
	}
	m[fd.field()] = slices.Insert(kids, index, item)
	return nil
}

func (fd FieldDescriptor) RemoveAt(branch any, index int) (any, error) {
	m, kids, err := fd.children(branch)
	if err != nil {
		return nil, err
	}
	item := kids[index]
	m[fd.field()] = slices.Delete(kids, index, index+1)
	return item, nil
}

// FuncDescriptor adapts arbitrary backing structures (typed lists,
// fixed-size buffers, anything slice-like) through caller-supplied
// accessors. Branch reports branch-ness, Children returns a branch's
// children as a []any, and SetChildren stores a modified children
// slice back into the branch; the false return from the latter two
// signals a node of the wrong shape.
type FuncDescriptor struct {
	Branch      func(node any) bool
	Children    func(branch any) ([]any, bool)
	SetChildren func(branch any, children []any) bool
}

func (fd FuncDescriptor) IsBranch(node any) bool {
	return fd.Branch != nil && fd.Branch(node)
}

func (fd FuncDescriptor) children(branch any) ([]any, error) {
	if fd.Children == nil {
		return nil, fmt.Errorf("%w: FuncDescriptor has no Children accessor", ErrInvalidType)
	}
	kids, ok := fd.Children(branch)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a branch this descriptor understands", ErrInvalidType, branch)
	}
	return kids, nil
}

func (fd FuncDescriptor) setChildren(branch any, kids []any) error {
	if fd.SetChildren == nil || !fd.SetChildren(branch, kids) {
		return fmt.Errorf("%w: cannot store children back into %T", ErrInvalidType, branch)
	}
	return nil
}

func (fd FuncDescriptor) Length(branch any) (int, error) {
	kids, err := fd.children(branch)
	return len(kids), err
}

func (fd FuncDescriptor) ItemAt(branch any, index int) (any, error) {
	kids, err := fd.children(branch)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(kids) {
		return nil, nil
	}
	return kids[index], nil
}

func (fd FuncDescriptor) SetItemAt(branch any, index int, item any) error {
	kids, err := fd.children(branch)
	if err != nil {
		return err
	}
	kids[index] = item
	return fd.setChildren(branch, kids)
}

func (fd FuncDescriptor) InsertAt(branch any, index int, item any) error {
	kids, err := fd.children(branch)
	if err != nil {
		return err
	}
	if index < 0 || index > len(kids) {
		index = len(kids)
	}
	return fd.setChildren(branch, slices.Insert(kids, index, item))
}

func (fd FuncDescriptor) RemoveAt(branch any, index int) (any, error) {
	kids, err := fd.children(branch)
	if err != nil {
		return nil, err
	}
	item := kids[index]
	return item, fd.setChildren(branch, slices.Delete(kids, index, index+1))
}
