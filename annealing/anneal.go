// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package annealing

import (
	"math"

	"github.com/cpmech/gosl/rnd"
	"github.com/jsdf/robot-control/armconfig"
	"github.com/jsdf/robot-control/armlog"
	"github.com/jsdf/robot-control/armmath"
)

// Solver runs simulated annealing over an ArmState's joint angles. Unlike
// kinematics.Solver it needs no Jacobian workspace; its only per-run state
// is the annealing schedule and the logger.
type Solver struct {
	cfg    armconfig.Config
	logger armlog.Logger
}

// NewSolver builds an annealing Solver with the given schedule.
func NewSolver(cfg armconfig.Config, logger armlog.Logger) *Solver {
	if logger == nil {
		logger = armlog.NopLogger{}
	}
	return &Solver{cfg: cfg, logger: logger}
}

// Seed re-initializes the shared gosl/rnd generator, matching gofem's
// usage of rnd as a process-wide utility rather than a per-instance
// collaborator (inp/sim.go). Call it once before Solve for a
// reproducible run (spec scenario S5).
func Seed(seed int64) {
	rnd.Init(int(seed))
}

// EvaluateInitial snapshots state's current configuration as a starting
// SolutionAndCost with no previous solution (plain residual cost, spec
// §4.8), for callers seeding Solve from the arm's current pose.
func EvaluateInitial(state ArmState, targets []armmath.Vec3) SolutionAndCost {
	return evaluate(state, targets, state.Thetas(), nil)
}

// evaluate snapshots state's current configuration into a SolutionAndCost
// against targets and prev. Caller must have already applied theta to
// state via ApplyThetas.
func evaluate(state ArmState, targets []armmath.Vec3, theta []float64, prev *SolutionAndCost) SolutionAndCost {
	positions := state.Positions()
	return SolutionAndCost{
		Theta:     theta,
		Positions: positions,
		Cost:      cost(state, targets, positions, theta, prev),
	}
}

// neighbor perturbs one randomly chosen joint to a uniform-random value in
// its limits, resampling until the resulting configuration is valid (spec
// §4.8's neighbor generator).
func (s *Solver) neighbor(state ArmState, targets []armmath.Vec3, cur SolutionAndCost) SolutionAndCost {
	n := state.NumJoints()
	for {
		candidate := make([]float64, n)
		copy(candidate, cur.Theta)

		j := rnd.Int(0, n-1)
		lo, hi := state.JointLimits(j)
		candidate[j] = rnd.Float64(lo, hi)

		state.ApplyThetas(candidate)
		if state.IsValid() {
			return evaluate(state, targets, candidate, &cur)
		}
	}
}

// Solve runs the annealing schedule from spec §4.8 starting at initial,
// returning the configuration accepted last (not necessarily the
// lowest-cost one seen). state is left holding that returned
// configuration; the caller (ArmSolution) decides whether/how to commit it.
func (s *Solver) Solve(state ArmState, targets []armmath.Vec3, initial SolutionAndCost) SolutionAndCost {
	temperature := s.cfg.AnnealT0
	sol := initial

	for temperature > s.cfg.AnnealTMin {
		for i := 0; i < s.cfg.AnnealInnerLoopLen; i++ {
			candidate := s.neighbor(state, targets, sol)
			p := math.Exp((sol.Cost - candidate.Cost) / temperature)
			if p > rnd.Float64(0, 1) {
				sol = candidate
			}
		}
		temperature *= s.cfg.AnnealAlpha
	}

	state.ApplyThetas(sol.Theta)
	return sol
}
