// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annealing

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jsdf/robot-control/armconfig"
	"github.com/jsdf/robot-control/armlog"
	"github.com/jsdf/robot-control/armmath"
)

// fakeArmState is a minimal, test-only ArmState: a single joint rotating
// an effector on a circle of radius 1 in the XY plane about the origin.
type fakeArmState struct {
	theta     float64
	minTheta  float64
	maxTheta  float64
	positions []armmath.Vec3
}

func newFakeArmState() *fakeArmState {
	s := &fakeArmState{minTheta: -math.Pi, maxTheta: math.Pi}
	s.recompute()
	return s
}

func (s *fakeArmState) recompute() {
	s.positions = []armmath.Vec3{
		armmath.NewVec3(0, 0, 0),
		armmath.NewVec3(math.Cos(s.theta), math.Sin(s.theta), 0),
	}
}

func (s *fakeArmState) NumJoints() int { return 1 }
func (s *fakeArmState) JointLimits(j int) (float64, float64) {
	return s.minTheta, s.maxTheta
}
func (s *fakeArmState) Thetas() []float64 { return []float64{s.theta} }
func (s *fakeArmState) ApplyThetas(theta []float64) {
	s.theta = theta[0]
	s.recompute()
}
func (s *fakeArmState) Positions() []armmath.Vec3 { return s.positions }
func (s *fakeArmState) EffectorPositions() []armmath.Vec3 {
	return []armmath.Vec3{s.positions[1]}
}
func (s *fakeArmState) IsValid() bool { return true }

func TestAnnealingConvergesOnCircle(tst *testing.T) {

	chk.PrintTitle("AnnealingConvergesOnCircle. single-joint search reaches low cost")

	Seed(42)

	state := newFakeArmState()
	cfg := armconfig.DefaultConfig()
	solver := NewSolver(cfg, armlog.NopLogger{})

	target := []armmath.Vec3{armmath.NewVec3(0, 1, 0)} // theta = pi/2
	initial := evaluate(state, target, state.Thetas(), nil)

	result := solver.Solve(state, target, initial)

	if result.Cost > 1.0 {
		tst.Errorf("expected converged cost <= 1.0, got %v", result.Cost)
	}
	if !state.IsValid() {
		tst.Errorf("expected final state to be valid")
	}
}

func TestCostNoPreviousSolutionIsJustResidual(tst *testing.T) {

	chk.PrintTitle("CostNoPreviousSolutionIsJustResidual. cost == residual with no prev")

	state := newFakeArmState()
	state.ApplyThetas([]float64{0})
	target := []armmath.Vec3{armmath.NewVec3(0, 1, 0)}

	got := cost(state, target, state.Positions(), state.Thetas(), nil)
	want := state.EffectorPositions()[0].Sub(target[0]).Norm()
	if math.Abs(got-want) > 1e-12 {
		tst.Errorf("cost = %v, want %v", got, want)
	}
}

func TestCostIncludesSignedMeanDrift(tst *testing.T) {

	chk.PrintTitle("CostIncludesSignedMeanDrift. signed drift term can be negative, preserved literally")

	state := newFakeArmState()
	target := []armmath.Vec3{armmath.NewVec3(0, 1, 0)}

	state.ApplyThetas([]float64{0.5})
	prev := evaluate(state, target, state.Thetas(), nil)

	state.ApplyThetas([]float64{0.1}) // theta decreases => negative drift term
	got := cost(state, target, state.Positions(), state.Thetas(), &prev)

	residual := state.EffectorPositions()[0].Sub(target[0]).Norm()
	if got >= residual {
		tst.Errorf("expected signed drift to pull cost below residual alone: cost=%v residual=%v", got, residual)
	}
}
