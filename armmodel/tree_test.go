// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package armmodel

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jsdf/robot-control/armmath"
)

// buildTwoLinkArm builds root joint(Y) -> joint(Z) -> joint(Z) -> effector,
// offsets (0,1,0) and (0,2,0), effector offset (0,1,0); used across several
// tests.
func buildTwoLinkArm() (*Tree, NodeID, NodeID, NodeID, NodeID) {
	t := NewTree()
	root := NewJoint(armmath.NewVec3(0, 0, 0), armmath.NewVec3(0, 1, 0), -math.Pi, math.Pi, 0)
	rootID := t.InsertRoot(root)

	j1 := NewJoint(armmath.NewVec3(0, 1, 0), armmath.NewVec3(0, 0, 1), -math.Pi, math.Pi, 0)
	j1ID := t.InsertLeftChild(rootID, j1)

	j2 := NewJoint(armmath.NewVec3(0, 2, 0), armmath.NewVec3(0, 0, 1), -math.Pi, math.Pi, 0)
	j2ID := t.InsertLeftChild(j1ID, j2)

	eff := NewEffector(armmath.NewVec3(0, 1, 0))
	effID := t.InsertLeftChild(j2ID, eff)

	t.Init()
	return t, rootID, j1ID, j2ID, effID
}

func TestTreeSequenceNumbers(tst *testing.T) {

	chk.PrintTitle("TreeSequenceNumbers. pre-order numbering of joints and effectors")

	tr, rootID, j1ID, j2ID, effID := buildTwoLinkArm()

	if tr.NumJoints() != 3 {
		tst.Fatalf("expected 3 joints, got %d", tr.NumJoints())
	}
	if tr.NumEffectors() != 1 {
		tst.Fatalf("expected 1 effector, got %d", tr.NumEffectors())
	}

	if tr.Node(rootID).SeqNumJoint != 0 {
		tst.Errorf("root seqnum: got %d, want 0", tr.Node(rootID).SeqNumJoint)
	}
	if tr.Node(j1ID).SeqNumJoint != 1 {
		tst.Errorf("j1 seqnum: got %d, want 1", tr.Node(j1ID).SeqNumJoint)
	}
	if tr.Node(j2ID).SeqNumJoint != 2 {
		tst.Errorf("j2 seqnum: got %d, want 2", tr.Node(j2ID).SeqNumJoint)
	}
	if tr.Node(effID).SeqNumEffector != 0 {
		tst.Errorf("effector seqnum: got %d, want 0", tr.Node(effID).SeqNumEffector)
	}
}

func TestTreeGetParent(tst *testing.T) {

	chk.PrintTitle("TreeGetParent. structural parent lookups")

	tr, rootID, j1ID, j2ID, effID := buildTwoLinkArm()

	if tr.GetParent(rootID) != noNode {
		tst.Errorf("root must have no parent")
	}
	if tr.GetParent(j1ID) != rootID {
		tst.Errorf("j1's parent should be root")
	}
	if tr.GetParent(j2ID) != j1ID {
		tst.Errorf("j2's parent should be j1")
	}
	if tr.GetParent(effID) != j2ID {
		tst.Errorf("effector's parent should be j2")
	}
}

func TestTreeComputeRootIsOrigin(tst *testing.T) {

	chk.PrintTitle("TreeComputeRootIsOrigin. root.S equals its Attach after FK")

	tr, rootID, _, _, _ := buildTwoLinkArm()
	tr.Compute()

	root := tr.Node(rootID)
	if math.Abs(root.S.X-root.Attach.X) > 1e-12 ||
		math.Abs(root.S.Y-root.Attach.Y) > 1e-12 ||
		math.Abs(root.S.Z-root.Attach.Z) > 1e-12 {
		tst.Errorf("root.S = %v, want root.Attach = %v", root.S, root.Attach)
	}
}

func TestTreeComputeStraightChain(tst *testing.T) {

	chk.PrintTitle("TreeComputeStraightChain. zero angles => straight stack of offsets")

	tr, _, _, _, effID := buildTwoLinkArm()
	tr.Compute()

	eff := tr.Node(effID)
	// all thetas are zero, so every offset stacks along +Y unrotated:
	// 0 + 1 + 2 + 1 = 4
	want := armmath.NewVec3(0, 4, 0)
	if math.Abs(eff.S.X-want.X) > 1e-9 || math.Abs(eff.S.Y-want.Y) > 1e-9 || math.Abs(eff.S.Z-want.Z) > 1e-9 {
		tst.Errorf("effector.S = %v, want %v", eff.S, want)
	}
}

func TestTreeComputeRotatedChain(tst *testing.T) {

	chk.PrintTitle("TreeComputeRotatedChain. rotating base joint 90deg about Y leaves a chain along Y in place")

	tr, rootID, _, _, effID := buildTwoLinkArm()
	tr.Node(rootID).SetTheta(math.Pi / 2)
	tr.Compute()

	eff := tr.Node(effID)
	// rotating about Y by 90deg does not move anything that lies purely
	// along Y (the whole chain is along Y before rotation), so the
	// effector stays in place.
	want := armmath.NewVec3(0, 4, 0)
	if math.Abs(eff.S.X-want.X) > 1e-9 || math.Abs(eff.S.Y-want.Y) > 1e-9 || math.Abs(eff.S.Z-want.Z) > 1e-9 {
		tst.Errorf("effector.S = %v, want %v", eff.S, want)
	}
}

func TestTreeComputeTwoNonParallelJoints(tst *testing.T) {

	chk.PrintTitle("TreeComputeTwoNonParallelJoints. bending root(Y) and j1(Z) together must match hand-computed FK")

	tr, _, j1ID, j2ID, _ := buildTwoLinkArm()

	// rotate root (axis Y) and j1 (axis Z) together -- the only case that
	// distinguishes root-applied-first from root-applied-last composition.
	root := tr.Node(tr.Root())
	root.SetTheta(math.Pi / 2)
	j1 := tr.Node(j1ID)
	j1.SetTheta(math.Pi / 2)
	tr.Compute()

	// hand computation (Rodrigues, nearest-ancestor-first / root-last):
	// j1.S = root.S + rotateByAncestors(root, (0,1,0)) = (0,1,0), since
	// (0,1,0) is parallel to root's own axis Y and unaffected by it.
	// j2.S = j1.S + rotateByAncestors(j1, (0,2,0)):
	//   step 1 (j1, axis Z, 90deg): (0,2,0) -> (-2,0,0)
	//   step 2 (root, axis Y, 90deg): (-2,0,0) -> (0,0,2)
	//   j2.S = (0,1,0) + (0,0,2) = (0,1,2)
	j2 := tr.Node(j2ID)
	want := armmath.NewVec3(0, 1, 2)
	checkVec3(tst, "j2.S after bending two non-parallel joints", 1e-9, j2.S, want)
}

func TestTreeFrozenJointInvariance(tst *testing.T) {

	chk.PrintTitle("TreeFrozenJointInvariance. Freeze marks the node frozen; holding theta fixed is left to the solvers")

	tr, _, j1ID, _, _ := buildTwoLinkArm()
	j1 := tr.Node(j1ID)
	j1.Freeze()
	if !j1.IsFrozen() {
		tst.Errorf("expected j1 to report frozen")
	}
}

func TestNodeThetaClamping(tst *testing.T) {

	chk.PrintTitle("NodeThetaClamping. SetTheta respects [min,max]")

	n := NewJoint(armmath.NewVec3(0, 0, 0), armmath.NewVec3(0, 1, 0), -1, 1, 0)
	n.SetTheta(5)
	if n.Theta() != 1 {
		tst.Errorf("expected clamp to max=1, got %v", n.Theta())
	}
	n.SetTheta(-5)
	if n.Theta() != -1 {
		tst.Errorf("expected clamp to min=-1, got %v", n.Theta())
	}
}

func TestNodeEffectorThetaAlwaysZero(tst *testing.T) {

	chk.PrintTitle("NodeEffectorThetaAlwaysZero. effectors ignore SetTheta")

	e := NewEffector(armmath.NewVec3(0, 1, 0))
	e.SetTheta(2)
	if e.Theta() != 0 {
		tst.Errorf("effector theta must stay 0, got %v", e.Theta())
	}
}
