// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package armmodel

import (
	"github.com/cpmech/gosl/chk"
	"github.com/jsdf/robot-control/armmath"
)

// Tree is a left-child/right-sibling kinematic tree. Nodes live in an
// arena (o.nodes) and are referenced by NodeID rather than Go pointers, so
// a forward-kinematics pass can walk parent/child/sibling links without
// any cyclic ownership. The node set is fixed once Init has run; the tree
// owns every node for the lifetime of the owning ArmSolution.
type Tree struct {
	nodes        []*Node
	root         NodeID
	numJoints    int
	numEffectors int
	initialized  bool
}

// NewTree returns an empty tree with no root.
func NewTree() *Tree {
	return &Tree{root: noNode}
}

// InsertRoot installs n as the tree's root. n.Attach is conventionally the
// world origin. Panics if a root already exists — a programmer error, not
// a runtime condition a caller can trigger after construction.
func (t *Tree) InsertRoot(n *Node) NodeID {
	if t.root != noNode {
		chk.Panic("InsertRoot: tree already has a root")
	}
	id := t.addNode(n)
	t.root = id
	return id
}

// InsertLeftChild attaches child as parent's first (leftmost) child. If
// parent already has a child, the new node is inserted and the old child
// becomes its right sibling — matching the classic left-child/right-sibling
// insertion rule (no rebalancing, insertion order only).
func (t *Tree) InsertLeftChild(parent NodeID, child *Node) NodeID {
	p := t.nodes[parent]
	id := t.addNode(child)
	child.parent = parent
	child.sibling = p.child
	p.child = id
	return id
}

// InsertRightSibling attaches newNode as sibling's immediate right sibling,
// splicing it ahead of whatever sibling.sibling previously pointed to.
func (t *Tree) InsertRightSibling(sibling NodeID, newNode *Node) NodeID {
	s := t.nodes[sibling]
	id := t.addNode(newNode)
	newNode.parent = s.parent
	newNode.sibling = s.sibling
	s.sibling = id
	return id
}

func (t *Tree) addNode(n *Node) NodeID {
	id := NodeID(len(t.nodes))
	n.id = id
	n.parent = noNode
	n.child = noNode
	n.sibling = noNode
	t.nodes = append(t.nodes, n)
	return id
}

// Node returns the node stored at id.
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// Root returns the root node's id, or noNode if the tree is empty.
func (t *Tree) Root() NodeID {
	return t.root
}

// Initialized reports whether Init has run on this tree.
func (t *Tree) Initialized() bool {
	return t.initialized
}

// NumNodes returns the total node count (joints + effectors).
func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// NumJoints returns the number of non-effector nodes, valid after Init.
func (t *Tree) NumJoints() int {
	return t.numJoints
}

// NumEffectors returns the number of effector nodes, valid after Init.
func (t *Tree) NumEffectors() int {
	return t.numEffectors
}

// Nodes returns every node in arena order (not tree order). Callers must
// not mutate tree topology through the returned slice.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// EffectorNodes returns every Effector node ordered by SeqNumEffector.
// Valid after Init.
func (t *Tree) EffectorNodes() []*Node {
	out := make([]*Node, t.numEffectors)
	for _, n := range t.nodes {
		if n.Purpose == Effector {
			out[n.SeqNumEffector] = n
		}
	}
	return out
}

// JointNodes returns every Joint node ordered by SeqNumJoint. Valid after
// Init.
func (t *Tree) JointNodes() []*Node {
	out := make([]*Node, t.numJoints)
	for _, n := range t.nodes {
		if n.Purpose == Joint {
			out[n.SeqNumJoint] = n
		}
	}
	return out
}

// IsAncestor reports whether joint is an ancestor of effector (including
// effector's direct parent), walking the parent chain from effector up to
// the root.
func (t *Tree) IsAncestor(joint, effector NodeID) bool {
	for id := t.nodes[effector].parent; id != noNode; id = t.nodes[id].parent {
		if id == joint {
			return true
		}
	}
	return false
}

// GetParent returns the structural parent of n, or noNode for the root.
// InsertLeftChild and InsertRightSibling record each node's parent id
// directly on the node at insertion time, so this is an O(1) lookup rather than the
// "walk siblings back to the left-child link" search a pure left-child/
// right-sibling representation would otherwise require.
func (t *Tree) GetParent(id NodeID) NodeID {
	return t.nodes[id].parent
}

// Init performs a pre-order traversal, assigning SeqNumJoint to every
// Joint node and SeqNumEffector to every Effector node using two separate,
// zero-based counters. These sequence numbers define Jacobian row/column
// positions and must not change for the lifetime of the tree.
func (t *Tree) Init() {
	t.numJoints = 0
	t.numEffectors = 0
	if t.root == noNode {
		t.initialized = true
		return
	}
	t.preOrder(t.root, func(n *Node) {
		switch n.Purpose {
		case Joint:
			n.SeqNumJoint = t.numJoints
			t.numJoints++
		case Effector:
			n.SeqNumEffector = t.numEffectors
			t.numEffectors++
		}
	})
	t.initialized = true
}

// preOrder visits id and its descendants: node, then children
// left-to-right, depth-first — no recursion stack beyond Go's own, no
// allocation per call.
func (t *Tree) preOrder(id NodeID, visit func(*Node)) {
	if id == noNode {
		return
	}
	n := t.nodes[id]
	visit(n)
	for c := n.child; c != noNode; c = t.nodes[c].sibling {
		t.preOrder(c, visit)
	}
}

// Compute runs one forward-kinematics pass: for every node, rotate its
// local Attach offset by the accumulated rotation of its ancestor chain
// (Rodrigues' formula about each ancestor's local RotationAxis, nearest
// ancestor applied first and the root applied last -- the same order a
// local-transform composition T_root*T_1*...*T_parent*v applies to v) to
// produce R, then S = parent.S + R. The root's S equals its Attach (the
// world origin by convention).
func (t *Tree) Compute() {
	if t.root == noNode {
		return
	}
	t.computeNode(t.root, armmath.NewVec3(0, 0, 0))
}

// computeNode recurses root-to-leaf, passing down the parent's already
// computed world position.
func (t *Tree) computeNode(id NodeID, parentS armmath.Vec3) {
	n := t.nodes[id]

	if n.parent == noNode {
		n.S = n.Attach
		n.R = armmath.NewVec3(0, 0, 0)
		n.W = n.RotationAxis
	} else {
		r := t.rotateByAncestors(n.parent, n.Attach)
		n.R = r
		n.S = parentS.Add(r)
		// propagate rotation axis: the node's own world axis is its local
		// axis rotated by the same ancestor chain.
		n.W = t.rotateByAncestors(n.parent, n.RotationAxis)
	}

	for c := n.child; c != noNode; c = t.nodes[c].sibling {
		t.computeNode(c, n.S)
	}
}

// rotateByAncestors rotates v by the accumulated rotation of the ancestor
// chain starting at (and including) startID, applied nearest-ancestor
// first and root last. Each joint rotates v about its own local
// RotationAxis -- v is always expressed in the frame that joint's local
// transform operates in, so no ancestor's axis needs to be pre-rotated
// into world space first; walking up to the root one joint at a time,
// applying each rotation as it's reached, already composes them in the
// right order.
func (t *Tree) rotateByAncestors(startID NodeID, v armmath.Vec3) armmath.Vec3 {
	out := v
	for id := startID; id != noNode; id = t.nodes[id].parent {
		n := t.nodes[id]
		if n.Purpose != Joint {
			continue
		}
		out = out.RotateAboutAxis(n.RotationAxis, n.theta)
	}
	return out
}
