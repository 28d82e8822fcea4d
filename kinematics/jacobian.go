// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kinematics implements the Jacobian-based inverse-kinematics
// solver: building J from the kinematic tree and solving for a per-step
// joint-angle update via Selectively Damped Least Squares (SDLS).
package kinematics

import (
	"github.com/jsdf/robot-control/armconfig"
	"github.com/jsdf/robot-control/armlog"
	"github.com/jsdf/robot-control/armmath"
	"github.com/jsdf/robot-control/armmodel"
)

// Mode selects what each effector treats as its goal.
type Mode int

const (
	// TargetMode drives every effector toward its assigned target point.
	// This is the default.
	TargetMode Mode = iota
	// EndMode treats every effector's own current position as its goal,
	// producing dS = 0 everywhere. Retained for parity with the source
	// system's passive-relaxation pass; it never moves the arm on its
	// own; it exists so a host can run a Jacobian step that only
	// re-validates state without injecting any target-seeking motion.
	EndMode
)

// Solver owns the dense Jacobian workspace for one Tree and runs one SDLS
// IK step at a time. The matrices are sized once, at NewSolver, the same
// way gofem's element matrices are allocated once per mesh and reused
// across Newton iterations (mdl/solid/driver.go's o.D = la.MatAlloc(...)).
type Solver struct {
	tree   *armmodel.Tree
	cfg    armconfig.Config
	logger armlog.Logger
	mode   Mode

	numEffectors int
	numJoints    int

	j            *armmath.Matrix // current Jacobian, 3E x J
	dS           []armmath.Vec3  // per-effector offset (goal - effector.S), clamped
	jointNormSum []float64       // per-joint Σ_e ‖J block(e,j)‖, rebuilt with J
}

// NewSolver allocates a Solver sized to tree's current shape. tree must
// already have had Init called.
func NewSolver(tree *armmodel.Tree, cfg armconfig.Config, logger armlog.Logger) *Solver {
	if logger == nil {
		logger = armlog.NopLogger{}
	}
	e := tree.NumEffectors()
	j := tree.NumJoints()
	return &Solver{
		tree:         tree,
		cfg:          cfg,
		logger:       logger,
		mode:         TargetMode,
		numEffectors: e,
		numJoints:    j,
		j:            armmath.NewMatrix(3*e, j),
		dS:           make([]armmath.Vec3, e),
		jointNormSum: make([]float64, j),
	}
}

// SetJtargetActive switches the solver into TargetMode.
func (s *Solver) SetJtargetActive() { s.mode = TargetMode }

// SetJendActive switches the solver into EndMode.
func (s *Solver) SetJendActive() { s.mode = EndMode }

// Mode returns the solver's current mode.
func (s *Solver) Mode() Mode { return s.mode }

// Jacobian exposes the current (already computed) Jacobian matrix, mainly
// for tests and diagnostics.
func (s *Solver) Jacobian() *armmath.Matrix { return s.j }

// DS returns the current per-effector clamped offset vector.
func (s *Solver) DS() []armmath.Vec3 { return s.dS }

// ComputeJacobian rebuilds dS and J for the tree's current configuration.
// In TargetMode, targets must have one entry per effector (seq-number
// order) or ErrShapeMismatch is returned and state is left unchanged. In
// EndMode targets is ignored and every dS entry is the zero vector.
func (s *Solver) ComputeJacobian(targets []armmath.Vec3) error {
	effectors := s.tree.EffectorNodes()

	if s.mode == TargetMode && len(targets) != len(effectors) {
		return shapeMismatchf(len(effectors), len(targets))
	}

	newDS := make([]armmath.Vec3, s.numEffectors)
	for _, eff := range effectors {
		if s.mode == EndMode {
			newDS[eff.SeqNumEffector] = armmath.NewVec3(0, 0, 0)
			continue
		}
		offset := targets[eff.SeqNumEffector].Sub(eff.S)
		newDS[eff.SeqNumEffector] = offset.ClampNorm(s.cfg.DeltaSMax)
	}
	s.dS = newDS

	joints := s.tree.JointNodes()
	s.j.SetZero()
	for i := range s.jointNormSum {
		s.jointNormSum[i] = 0
	}

	for _, eff := range effectors {
		row0 := 3 * eff.SeqNumEffector
		for _, jt := range joints {
			col := jt.SeqNumJoint
			if jt.IsFrozen() || !s.tree.IsAncestor(jt.ID(), eff.ID()) {
				continue
			}
			block := jt.W.Cross(eff.S.Sub(jt.S))
			s.j.SetCol3(row0, col, block)
			s.jointNormSum[col] += block.Norm()
		}
	}

	return nil
}

// UpdatedSClampValue recomputes dS for the tree's (now updated)
// configuration, ready for the next ComputeJacobian/CalcDeltaThetasSDLS
// call, without touching J. It is the last step of one IK iteration
// (spec §4.5 step 5).
func (s *Solver) UpdatedSClampValue(targets []armmath.Vec3) error {
	effectors := s.tree.EffectorNodes()
	if s.mode == TargetMode && len(targets) != len(effectors) {
		return shapeMismatchf(len(effectors), len(targets))
	}
	for _, eff := range effectors {
		if s.mode == EndMode {
			s.dS[eff.SeqNumEffector] = armmath.NewVec3(0, 0, 0)
			continue
		}
		offset := targets[eff.SeqNumEffector].Sub(eff.S)
		s.dS[eff.SeqNumEffector] = offset.ClampNorm(s.cfg.DeltaSMax)
	}
	return nil
}

// dsFlat lays dS out as a flat (3E)-length vector in effector seq-number
// order, the shape the Jacobian's rows use.
func (s *Solver) dsFlat() []float64 {
	flat := make([]float64, 3*s.numEffectors)
	for i, v := range s.dS {
		flat[3*i+0] = v.X
		flat[3*i+1] = v.Y
		flat[3*i+2] = v.Z
	}
	return flat
}
