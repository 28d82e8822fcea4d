// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package armsolution composes the kinematic tree, the Jacobian solver and
// the self-collision detector into one planning session: ArmSolution is
// the unit a renderer pulls from and a plan is serialized out of, the way
// fem.Domain composes a mesh, a linear solver and boundary conditions into
// one assembled simulation state.
package armsolution

import (
	"fmt"

	"github.com/jsdf/robot-control/annealing"
	"github.com/jsdf/robot-control/armconfig"
	"github.com/jsdf/robot-control/armlog"
	"github.com/jsdf/robot-control/armmath"
	"github.com/jsdf/robot-control/armmodel"
	"github.com/jsdf/robot-control/collision"
	"github.com/jsdf/robot-control/kinematics"
)

// ArmSolution implements annealing.ArmState so the same instance can be
// driven by either solver (spec §4.8: SDLS and annealing are equally
// first-class alternatives, selected by the caller, not by the core).
var _ annealing.ArmState = (*ArmSolution)(nil)

// ArmSolution owns one Tree, one Jacobian solver, one Collision detector
// and the target list for a single planning session (spec §4.7).
type ArmSolution struct {
	cfg    armconfig.Config
	logger armlog.Logger

	tree      *armmodel.Tree
	solver    *kinematics.Solver
	collision *collision.Collision
	edges     [][2]int

	targets []armmath.Vec3
}

// New builds the default arm spec §4.7 describes: 4 revolute joints on
// Y,Z,Z,Z with segment offsets (0,1,0),(0,3,0),(0,4,0) and an effector at
// (0,3,0); a single target at (0,6,0); then initializes the tree and runs
// one IK step. If initialThetas is non-nil it is applied (ApplySolution
// semantics, node-id order) before that first step.
func New(initialThetas []float64, cfg armconfig.Config, logger armlog.Logger) (*ArmSolution, error) {
	tree := armmodel.NewTree()
	root := armmodel.NewJoint(armmath.NewVec3(0, 0, 0), armmath.NewVec3(0, 1, 0), -1e9, 1e9, 0)
	rootID := tree.InsertRoot(root)
	j1 := armmodel.NewJoint(armmath.NewVec3(0, 1, 0), armmath.NewVec3(0, 0, 1), -1e9, 1e9, 0)
	j1ID := tree.InsertLeftChild(rootID, j1)
	j2 := armmodel.NewJoint(armmath.NewVec3(0, 3, 0), armmath.NewVec3(0, 0, 1), -1e9, 1e9, 0)
	j2ID := tree.InsertLeftChild(j1ID, j2)
	j3 := armmodel.NewJoint(armmath.NewVec3(0, 4, 0), armmath.NewVec3(0, 0, 1), -1e9, 1e9, 0)
	j3ID := tree.InsertLeftChild(j2ID, j3)
	eff := armmodel.NewEffector(armmath.NewVec3(0, 3, 0))
	tree.InsertLeftChild(j3ID, eff)
	tree.Init()

	return NewWithTree(tree, []armmath.Vec3{armmath.NewVec3(0, 6, 0)}, initialThetas, cfg, logger)
}

// NewBranchingArm builds a two-effector arm that shares its first two
// joints (root on Y, then a shoulder twist on Z) and forks into a left and
// a right forearm off that shoulder joint -- InsertRightSibling is what
// attaches the second fork, since the two forearms are not a single
// linear chain. Exercises the (3E)xJ Jacobian shape and the edges-based
// Collision construction described in SPEC_FULL.md's multi-target
// supplement.
func NewBranchingArm(cfg armconfig.Config, logger armlog.Logger) (*ArmSolution, error) {
	tree := armmodel.NewTree()
	root := armmodel.NewJoint(armmath.NewVec3(0, 0, 0), armmath.NewVec3(0, 1, 0), -1e9, 1e9, 0)
	rootID := tree.InsertRoot(root)
	shoulder := armmodel.NewJoint(armmath.NewVec3(0, 1, 0), armmath.NewVec3(0, 0, 1), -1e9, 1e9, 0)
	shoulderID := tree.InsertLeftChild(rootID, shoulder)

	leftElbow := armmodel.NewJoint(armmath.NewVec3(1, 2, 0), armmath.NewVec3(0, 0, 1), -1e9, 1e9, 0)
	leftElbowID := tree.InsertLeftChild(shoulderID, leftElbow)
	leftEff := armmodel.NewEffector(armmath.NewVec3(0, 2, 0))
	tree.InsertLeftChild(leftElbowID, leftEff)

	rightElbow := armmodel.NewJoint(armmath.NewVec3(-1, 2, 0), armmath.NewVec3(0, 0, 1), -1e9, 1e9, 0)
	rightElbowID := tree.InsertRightSibling(leftElbowID, rightElbow)
	rightEff := armmodel.NewEffector(armmath.NewVec3(0, 2, 0))
	tree.InsertLeftChild(rightElbowID, rightEff)

	tree.Init()

	targets := []armmath.Vec3{armmath.NewVec3(2.2, 4.6, 0), armmath.NewVec3(-2.2, 4.6, 0)}
	return NewWithTree(tree, targets, nil, cfg, logger)
}

// NewWithTree wraps an already-built, already-Init'd tree (one or more
// effectors, linear or branching) into a solution: it derives the
// collision edge list from the tree's actual parent/child links rather
// than assuming one linear chain, so the same constructor serves both the
// default arm and NewBranchingArm.
func NewWithTree(tree *armmodel.Tree, targets []armmath.Vec3, initialThetas []float64, cfg armconfig.Config, logger armlog.Logger) (*ArmSolution, error) {
	if logger == nil {
		logger = armlog.NopLogger{}
	}

	a := &ArmSolution{
		cfg:     cfg,
		logger:  logger,
		tree:    tree,
		targets: targets,
	}

	if initialThetas != nil {
		if err := a.ApplySolution(initialThetas); err != nil {
			return nil, err
		}
	} else {
		tree.Compute()
	}

	a.edges = parentLinkEdges(tree)
	a.solver = kinematics.NewSolver(tree, cfg, logger)
	a.collision = collision.NewCollision(a.positionsByID(), a.edges, cfg)

	if _, err := a.Update(); err != nil {
		return nil, err
	}
	return a, nil
}

// parentLinkEdges returns one (parentID,childID) edge per non-root node,
// read directly off the tree's own structural links. For a single
// straight chain this reduces to the sequential (i-1,i) pairing spec.md
// describes; for a branching tree it instead yields one edge per fork, so
// the self-collision capsules follow the tree's actual shape rather than
// assuming node ids are laid out as one chain.
func parentLinkEdges(tree *armmodel.Tree) [][2]int {
	nodes := tree.Nodes()
	edges := make([][2]int, 0, len(nodes)-1)
	for _, n := range nodes {
		id := n.ID()
		if id == tree.Root() {
			continue
		}
		edges = append(edges, [2]int{int(tree.GetParent(id)), int(id)})
	}
	return edges
}

func (a *ArmSolution) positionsByID() []armmath.Vec3 {
	nodes := a.tree.Nodes()
	out := make([]armmath.Vec3, len(nodes))
	for i, n := range nodes {
		out[i] = n.S
	}
	return out
}

// Tree exposes the underlying kinematic tree for renderers and tests.
func (a *ArmSolution) Tree() *armmodel.Tree { return a.tree }

// Collision exposes the self-collision detector for renderers.
func (a *ArmSolution) Collision() *collision.Collision { return a.collision }

// Targets returns the current target list.
func (a *ArmSolution) Targets() []armmath.Vec3 { return a.targets }

// SetTarget assigns targets[i], nudging y up to 0 if below (spec §6's
// ground clamp on input devices). Grows the slice if i is past its
// current length.
func (a *ArmSolution) SetTarget(i int, p armmath.Vec3) {
	if p.Y < 0 {
		p.Y = 0
	}
	for len(a.targets) <= i {
		a.targets = append(a.targets, armmath.NewVec3(0, 0, 0))
	}
	a.targets[i] = p
}

// Update runs one IK step against the current targets, then refreshes
// collision state (spec §4.7/§5: target ingest -> IK step -> collision
// refresh, in that fixed order).
func (a *ArmSolution) Update() (kinematics.StepReport, error) {
	report, err := a.solver.Step(a.targets)
	a.collision.Update(a.positionsByID())
	return report, err
}

// StepIKState runs exactly one IK iteration without touching collision
// state, exposed for callers that want to drive IK and collision refresh
// on independent cadences.
func (a *ArmSolution) StepIKState() (kinematics.StepReport, error) {
	return a.solver.Step(a.targets)
}

// ValidatePoint reports whether node index i's position p is valid: the
// base (i==0) is always valid; every other node must be at or above the
// ground plane (spec §4.7).
func (a *ArmSolution) ValidatePoint(p armmath.Vec3, i int) bool {
	if i == 0 {
		return true
	}
	return p.Y >= 0
}

// SolutionIsValid reports whether every node passes ValidatePoint and no
// self-collision is flagged.
func (a *ArmSolution) SolutionIsValid() bool {
	for i, n := range a.tree.Nodes() {
		if !a.ValidatePoint(n.S, i) {
			return false
		}
	}
	return !a.collision.AreAnyColliding()
}

// Serialize returns every node's theta in node-insertion order
// (spec §4.7: "[θ_i] in node order").
func (a *ArmSolution) Serialize() []float64 {
	nodes := a.tree.Nodes()
	out := make([]float64, len(nodes))
	for i, n := range nodes {
		out[i] = n.Theta()
	}
	return out
}

// ApplySolution assigns theta (node-insertion order) and refreshes forward
// kinematics, without running the IK solver (spec §4.7). Returns
// ErrShapeMismatch if len(theta) != tree.NumNodes().
func (a *ArmSolution) ApplySolution(theta []float64) error {
	nodes := a.tree.Nodes()
	if len(theta) != len(nodes) {
		return fmt.Errorf("%w: armsolution: ApplySolution expected %d values, got %d", kinematics.ErrShapeMismatch, len(nodes), len(theta))
	}
	for i, n := range nodes {
		n.SetTheta(theta[i])
	}
	a.tree.Compute()
	if a.collision != nil {
		a.collision.Update(a.positionsByID())
	}
	return nil
}

// NumJoints satisfies annealing.ArmState.
func (a *ArmSolution) NumJoints() int {
	return a.tree.NumJoints()
}

// JointLimits satisfies annealing.ArmState, indexed by joint sequence
// number (not node id).
func (a *ArmSolution) JointLimits(j int) (float64, float64) {
	n := a.tree.JointNodes()[j]
	return n.MinTheta, n.MaxTheta
}

// Thetas satisfies annealing.ArmState: joint angles only, in joint
// sequence-number order.
func (a *ArmSolution) Thetas() []float64 {
	joints := a.tree.JointNodes()
	out := make([]float64, len(joints))
	for i, n := range joints {
		out[i] = n.Theta()
	}
	return out
}

// ApplyThetas satisfies annealing.ArmState: assigns joint angles (sequence
// order) and refreshes forward kinematics and collision state, leaving
// effector thetas untouched (they are always 0 regardless).
func (a *ArmSolution) ApplyThetas(theta []float64) {
	joints := a.tree.JointNodes()
	for i, n := range joints {
		if i < len(theta) {
			n.SetTheta(theta[i])
		}
	}
	a.tree.Compute()
	if a.collision != nil {
		a.collision.Update(a.positionsByID())
	}
}

// Positions satisfies annealing.ArmState: every node's world position, in
// node-insertion order.
func (a *ArmSolution) Positions() []armmath.Vec3 {
	return a.positionsByID()
}

// EffectorPositions satisfies annealing.ArmState: effector world
// positions, in effector sequence-number order (the order targets are
// matched against).
func (a *ArmSolution) EffectorPositions() []armmath.Vec3 {
	effectors := a.tree.EffectorNodes()
	out := make([]armmath.Vec3, len(effectors))
	for i, n := range effectors {
		out[i] = n.S
	}
	return out
}

// IsValid satisfies annealing.ArmState.
func (a *ArmSolution) IsValid() bool {
	return a.SolutionIsValid()
}

// AnnealSolve runs simulated annealing (as an alternative to SDLS descent)
// against the current targets, starting from the current configuration,
// and leaves the tree holding whichever configuration the schedule
// accepted last.
func (a *ArmSolution) AnnealSolve(solver *annealing.Solver) annealing.SolutionAndCost {
	initial := annealing.EvaluateInitial(a, a.targets)
	sol := solver.Solve(a, a.targets, initial)
	if a.collision != nil {
		a.collision.Update(a.positionsByID())
	}
	return sol
}
