// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package armmodel implements the kinematic tree: joints and end-effectors
// arranged as a left-child/right-sibling tree, plus the forward-kinematics
// pass that turns joint angles into world-space positions.
package armmodel

import "github.com/jsdf/robot-control/armmath"

// Purpose distinguishes a revolute joint from a terminal end-effector.
type Purpose int

const (
	// Joint is a node with one rotational degree of freedom.
	Joint Purpose = iota
	// Effector is a terminal node whose world position the solver drives
	// toward a target. Effectors have no children and theta is always 0.
	Effector
)

// NodeID is a stable index into a Tree's node arena. IDs are assigned at
// InsertRoot/InsertLeftChild/InsertRightSibling time and never reused;
// links between nodes are ids rather than Go pointers, so the tree holds no
// reference cycles.
type NodeID int

// noNode marks an absent link (root's parent, a leaf's child, ...).
const noNode NodeID = -1

// Node is one joint or end-effector in the kinematic tree.
type Node struct {
	id      NodeID
	Purpose Purpose

	Attach       armmath.Vec3 // local attachment offset relative to parent
	RotationAxis armmath.Vec3 // unit axis in local frame; unused for Effector

	theta    float64
	MinTheta float64
	MaxTheta float64
	frozen   bool

	// computed by Tree.Compute
	S armmath.Vec3 // world-space position
	W armmath.Vec3 // world-space rotation axis
	R armmath.Vec3 // vector from parent's S to this node's S

	// sequence numbers assigned by Tree.Init; -1 until then
	SeqNumJoint    int
	SeqNumEffector int

	// left-child/right-sibling tree links
	parent  NodeID
	child   NodeID
	sibling NodeID
}

// NewJoint builds a revolute-joint node. theta0 is clamped into
// [minTheta,maxTheta] before being stored.
func NewJoint(attach, axis armmath.Vec3, minTheta, maxTheta, theta0 float64) *Node {
	n := &Node{
		Purpose:        Joint,
		Attach:         attach,
		RotationAxis:   axis.Normalize(),
		MinTheta:       minTheta,
		MaxTheta:       maxTheta,
		SeqNumJoint:    -1,
		SeqNumEffector: -1,
		parent:         noNode,
		child:          noNode,
		sibling:        noNode,
	}
	n.SetTheta(theta0)
	return n
}

// NewEffector builds a terminal end-effector node. Effectors carry no
// rotation axis and theta is fixed at zero.
func NewEffector(attach armmath.Vec3) *Node {
	return &Node{
		Purpose:        Effector,
		Attach:         attach,
		MinTheta:       0,
		MaxTheta:       0,
		SeqNumJoint:    -1,
		SeqNumEffector: -1,
		parent:         noNode,
		child:          noNode,
		sibling:        noNode,
	}
}

// ID returns this node's stable arena index.
func (n *Node) ID() NodeID { return n.id }

// Theta returns the current joint angle in radians (always 0 for Effector).
func (n *Node) Theta() float64 { return n.theta }

// IsFrozen reports whether the solver must hold theta fixed.
func (n *Node) IsFrozen() bool { return n.frozen }

// Freeze locks the joint at its current angle; the solver skips frozen
// joints entirely when building Jacobian columns and applying updates.
func (n *Node) Freeze() { n.frozen = true }

// Unfreeze releases a previously frozen joint.
func (n *Node) Unfreeze() { n.frozen = false }

// SetTheta assigns theta, clamped into [MinTheta,MaxTheta]. Effector nodes
// ignore the call (theta stays 0).
func (n *Node) SetTheta(theta float64) {
	if n.Purpose == Effector {
		n.theta = 0
		return
	}
	n.theta = clamp(theta, n.MinTheta, n.MaxTheta)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
