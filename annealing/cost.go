// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package annealing implements the derivative-free alternative to the
// Jacobian/SDLS solver: a simulated-annealing search over joint angles,
// accepted/rejected via the Metropolis criterion.
package annealing

import "github.com/jsdf/robot-control/armmath"

// SolutionAndCost is an immutable candidate: a joint-angle vector, the
// world positions it produced, and its scalar cost.
type SolutionAndCost struct {
	Theta     []float64
	Positions []armmath.Vec3
	Cost      float64
}

// ArmState is the narrow view of an owning ArmSolution the annealing
// solver needs. It lives here (rather than depending on package
// armsolution directly) so armsolution can depend on annealing without a
// cycle: armsolution.ArmSolution implements this interface and passes
// itself in.
type ArmState interface {
	// NumJoints returns the number of joints (len(Thetas())).
	NumJoints() int
	// JointLimits returns (min,max) for joint j in seq-number order.
	JointLimits(j int) (min, max float64)
	// Thetas returns the current per-joint angles, seq-number order.
	Thetas() []float64
	// ApplyThetas assigns theta and refreshes forward kinematics, without
	// running the Jacobian solver (spec §4.7 applySolution semantics).
	ApplyThetas(theta []float64)
	// Positions returns the world position of every tree node (joints and
	// effectors), in a stable order, after the latest forward-kinematics
	// pass.
	Positions() []armmath.Vec3
	// EffectorPositions returns the world position of every effector, in
	// seq-number order, after the latest forward-kinematics pass.
	EffectorPositions() []armmath.Vec3
	// IsValid reports ground-plane and self-collision validity for the
	// current configuration (ArmSolution.solutionIsValid).
	IsValid() bool
}

// cost evaluates spec §4.8's cost function for a candidate configuration.
// The "signed mean joint drift" term is preserved literally even though it
// can go negative — see the open question recorded in spec.md §9 and
// DESIGN.md: this is not a bug fix, it is a faithful reproduction.
func cost(state ArmState, targets []armmath.Vec3, positions []armmath.Vec3, theta []float64, prev *SolutionAndCost) float64 {
	effPos := state.EffectorPositions()
	residual := 0.0
	for i, p := range effPos {
		if i < len(targets) {
			residual += p.Sub(targets[i]).Norm()
		}
	}

	if prev == nil {
		return residual
	}

	thetaDriftSum := 0.0
	for i, th := range theta {
		if i < len(prev.Theta) {
			thetaDriftSum += th - prev.Theta[i]
		}
	}
	meanThetaDrift := 0.0
	if len(theta) > 0 {
		meanThetaDrift = thetaDriftSum / float64(len(theta))
	}

	posDriftSum := 0.0
	n := len(positions)
	if len(prev.Positions) < n {
		n = len(prev.Positions)
	}
	for i := 0; i < n; i++ {
		posDriftSum += positions[i].Sub(prev.Positions[i]).Norm()
	}
	meanPosDrift := 0.0
	if n > 0 {
		meanPosDrift = posDriftSum / float64(n)
	}

	return residual + meanThetaDrift + 0.5*meanPosDrift
}
