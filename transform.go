// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rast

// NodeID addresses a node in a TransformTree.
type NodeID int32

// NoParent marks a root node.
const NoParent NodeID = -1

// TransformTree is an arena of transform nodes. Parents are stored as
// indices, and a parent must exist before its children, so the tree is
// acyclic by construction.
//
// World matrices are computed lazily: every node carries a generation
// that increases whenever its local matrix or any ancestor changes, and a
// cached world matrix is reused while the generations it was built from
// still match.
type TransformTree struct {
	nodes []transformNode
}

type transformNode struct {
	parent NodeID
	local  Matrix

	// localGen counts SetLocal calls on this node.
	localGen uint64

	// Cached world matrix and the generations it was computed from.
	world     Matrix
	gen       uint64 // generation of world, seen by children
	builtFrom uint64 // localGen used for world
	parentGen uint64 // parent's gen used for world
	valid     bool
}

// NewTransformTree creates an empty tree.
func NewTransformTree() *TransformTree {
	return &TransformTree{}
}

// Len returns the number of nodes.
func (t *TransformTree) Len() int {
	return len(t.nodes)
}

func (t *TransformTree) node(id NodeID) (*transformNode, error) {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil, ErrUnknownNode
	}
	return &t.nodes[id], nil
}

// Add creates a node with the given local matrix under parent, which is
// NoParent for a root.
func (t *TransformTree) Add(parent NodeID, local Matrix) (NodeID, error) {
	if parent != NoParent {
		if _, err := t.node(parent); err != nil {
			return NoParent, err
		}
	}
	t.nodes = append(t.nodes, transformNode{parent: parent, local: local})
	return NodeID(len(t.nodes) - 1), nil
}

// Parent returns the parent of id, NoParent for a root.
func (t *TransformTree) Parent(id NodeID) (NodeID, error) {
	n, err := t.node(id)
	if err != nil {
		return NoParent, err
	}
	return n.parent, nil
}

// Local returns the local matrix of id.
func (t *TransformTree) Local(id NodeID) (Matrix, error) {
	n, err := t.node(id)
	if err != nil {
		return Identity(), err
	}
	return n.local, nil
}

// SetLocal replaces the local matrix of id. World matrices of id and its
// descendants are recomputed on their next World call.
func (t *TransformTree) SetLocal(id NodeID, m Matrix) error {
	n, err := t.node(id)
	if err != nil {
		return err
	}
	n.local = m
	n.localGen++
	return nil
}

// World returns the matrix mapping id's local space to the root space:
// the parent's world matrix applied after id's local matrix.
func (t *TransformTree) World(id NodeID) (Matrix, error) {
	if _, err := t.node(id); err != nil {
		return Identity(), err
	}

	// Collect the chain root-first, then refresh top-down.
	var chain []NodeID
	for n := id; n != NoParent; n = t.nodes[n].parent {
		chain = append(chain, n)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		t.refresh(chain[i])
	}
	return t.nodes[id].world, nil
}

// refresh recomputes the world matrix of id if its inputs changed. The
// parent must already be fresh.
func (t *TransformTree) refresh(id NodeID) {
	n := &t.nodes[id]
	var parentWorld Matrix
	var parentGen uint64
	if n.parent != NoParent {
		p := &t.nodes[n.parent]
		parentWorld, parentGen = p.world, p.gen
	} else {
		parentWorld = Identity()
	}

	if n.valid && n.builtFrom == n.localGen && n.parentGen == parentGen {
		return
	}
	n.world = parentWorld.Multiply(n.local)
	n.builtFrom = n.localGen
	n.parentGen = parentGen
	n.gen++
	n.valid = true
}
