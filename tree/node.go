// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/jinzhu/copier"
)

func errNotNode(v any) error {
	return fmt.Errorf("%w: %T, expected a branch *tree.Node", ErrInvalidType, v)
}

// Node is a statically typed tree node: a tagged variant over leaf
// and branch. A Node with nil Children is a leaf; a Node with non-nil
// (possibly empty) Children is a branch. This removes the runtime
// shape probing of [FieldDescriptor] entirely: branch-ness is a field
// check, not a type assertion.
type Node struct {

	// Value is the caller-defined payload of the node. The collection
	// layer never interprets it.
	Value any

	// Children is the list of child nodes. It is nil for leaves and
	// non-nil for branches, including childless ones.
	Children []*Node
}

// NewLeaf returns a new leaf node with the given value.
func NewLeaf(value any) *Node {
	return &Node{Value: value}
}

// NewBranch returns a new branch node with the given value and
// children. A branch with no children still has non-nil Children.
func NewBranch(value any, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Value: value, Children: children}
}

// IsBranch reports whether the node is a branch.
func (nd *Node) IsBranch() bool {
	return nd.Children != nil
}

// Clone returns a deep copy of the node and all of its descendants,
// including a deep copy of the Values: pointer, map, and slice
// payloads are copied through, not aliased, so mutating a clone's
// payload never reaches the original. Other payload kinds are copied
// by assignment.
func (nd *Node) Clone() *Node {
	nc := &Node{Value: cloneValue(nd.Value)}
	if nd.Children != nil {
		nc.Children = make([]*Node, len(nd.Children))
		for i, kid := range nd.Children {
			nc.Children[i] = kid.Clone()
		}
	}
	return nc
}

// cloneValue deep-copies a node payload. Values must be copied per
// dynamic kind here: a whole-struct copy does not descend through the
// interface-typed Value field, which would leave reference payloads
// aliased between original and clone. A payload that fails to copy is
// reported and returned aliased.
func cloneValue(v any) any {
	rv := reflect.ValueOf(v)
	opt := copier.Option{CaseSensitive: true, DeepCopy: true}
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		nv := reflect.New(rv.Type().Elem())
		if err := copier.CopyWithOption(nv.Interface(), v, opt); err != nil {
			slog.Error("tree.Node.Clone", "err", err)
			return v
		}
		return nv.Interface()
	case reflect.Map, reflect.Slice:
		nv := reflect.New(rv.Type())
		if err := copier.CopyWithOption(nv.Interface(), v, opt); err != nil {
			slog.Error("tree.Node.Clone", "err", err)
			return v
		}
		return nv.Elem().Interface()
	}
	return v
}

// NodeDescriptor is the [Descriptor] for trees of [*Node] values.
type NodeDescriptor struct{}

func (NodeDescriptor) node(branch any) (*Node, error) {
	nd, ok := branch.(*Node)
	if !ok || nd == nil {
		return nil, errNotNode(branch)
	}
	if nd.Children == nil {
		return nil, errNotNode(branch)
	}
	return nd, nil
}

// IsBranch reports whether the node is a [*Node] branch.
func (NodeDescriptor) IsBranch(node any) bool {
	nd, ok := node.(*Node)
	return ok && nd != nil && nd.IsBranch()
}

func (d NodeDescriptor) Length(branch any) (int, error) {
	nd, err := d.node(branch)
	if err != nil {
		return 0, err
	}
	return len(nd.Children), nil
}

func (d NodeDescriptor) ItemAt(branch any, index int) (any, error) {
	nd, err := d.node(branch)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(nd.Children) {
		return nil, nil
	}
	return nd.Children[index], nil
}

func (d NodeDescriptor) SetItemAt(branch any, index int, item any) error {
	nd, err := d.node(branch)
	if err != nil {
		return err
	}
	child, ok := item.(*Node)
	if !ok {
		return errNotNode(item)
	}
	nd.Children[index] = child
	return nil
}

func (d NodeDescriptor) InsertAt(branch any, index int, item any) error {
	nd, err := d.node(branch)
	if err != nil {
		return err
	}
	child, ok := item.(*Node)
	if !ok {
		return errNotNode(item)
	}
	if index < 0 || index > len(nd.Children) {
		index = len(nd.Children)
	}
	nd.Children = append(nd.Children, nil)
	copy(nd.Children[index+1:], nd.Children[index:])
	nd.Children[index] = child
	return nil
}

func (d NodeDescriptor) RemoveAt(branch any, index int) (any, error) {
	nd, err := d.node(branch)
	if err != nil {
		return nil, err
	}
	child := nd.Children[index]
	nd.Children = append(nd.Children[:index], nd.Children[index+1:]...)
	return child, nil
}
