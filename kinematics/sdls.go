// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinematics

import (
	"math"

	"github.com/jsdf/robot-control/armmath"
)

// StepReport summarizes one IK step for the caller: whether a numerical
// breakdown forced delta-theta to zero this step (not a fatal condition,
// spec §7), and the per-joint update vector (frozen joints' entries are
// not applied).
type StepReport struct {
	Breakdown  bool
	DeltaTheta []float64
}

// CalcDeltaThetasSDLS computes the per-joint angle update via Selectively
// Damped Least Squares: SVD of J, then for each singular component
// (descending w) a raw contribution clamped per-joint so no singular
// direction alone can swing a joint past GammaMax, followed by a global
// clamp to GammaTotal on the summed result (spec §4.5 step 3).
//
// If every singular value is below numerical zero, the result is all
// zeros (spec: "nothing to do this step"). If NaN/Inf appears anywhere,
// the result is discarded (all zeros) and Breakdown is set; CalcDeltaThetasSDLS
// itself never returns an error for this case, since NumericalBreakdown is
// logged, not fatal (spec §7).
func (s *Solver) CalcDeltaThetasSDLS() StepReport {
	dTheta := make([]float64, s.numJoints)

	res, err := s.j.SVD()
	if err != nil {
		s.logger.Errorf("%v", numericalBreakdownf("SVD"))
		return StepReport{Breakdown: true, DeltaTheta: dTheta}
	}

	dS := s.dsFlat()

	for i, wi := range res.W {
		if res.IsZero(i) {
			continue
		}
		ui := res.U.Col(i)
		vi := res.V.Col(i)

		alpha := dot(ui, dS) / wi

		mi := 0.0
		for j := 0; j < s.numJoints; j++ {
			mi += math.Abs(vi[j]) * s.jointNormSum[j]
		}

		clamp := math.Inf(1)
		if mi > 1e-12 {
			clamp = s.cfg.GammaMax * wi / mi
		}

		for j := 0; j < s.numJoints; j++ {
			phi := alpha * vi[j]
			if phi > clamp {
				phi = clamp
			} else if phi < -clamp {
				phi = -clamp
			}
			dTheta[j] += phi
		}
	}

	if !allFinite(dTheta) {
		s.logger.Errorf("%v", numericalBreakdownf("delta-theta assembly"))
		for j := range dTheta {
			dTheta[j] = 0
		}
		return StepReport{Breakdown: true, DeltaTheta: dTheta}
	}

	// global clamp: rescale so max|dTheta_j| <= GammaTotal
	maxAbs := 0.0
	for _, v := range dTheta {
		if math.Abs(v) > maxAbs {
			maxAbs = math.Abs(v)
		}
	}
	if maxAbs > s.cfg.GammaTotal && maxAbs > 0 {
		scale := s.cfg.GammaTotal / maxAbs
		for j := range dTheta {
			dTheta[j] *= scale
		}
	}

	return StepReport{DeltaTheta: dTheta}
}

// UpdateThetas applies dTheta to every non-frozen joint, clamping into
// each joint's [MinTheta,MaxTheta] via Node.SetTheta, then refreshes the
// tree's forward kinematics (spec §4.5 step 4).
func (s *Solver) UpdateThetas(dTheta []float64) {
	for _, jt := range s.tree.JointNodes() {
		if jt.IsFrozen() {
			continue
		}
		jt.SetTheta(jt.Theta() + dTheta[jt.SeqNumJoint])
	}
	s.tree.Compute()
}

// Step runs one full IK iteration: ComputeJacobian, CalcDeltaThetasSDLS,
// UpdateThetas, then UpdatedSClampValue to prime the next call. Returns
// ErrShapeMismatch (state unchanged) if targets don't match the effector
// count; all other failures are non-fatal and reported through
// StepReport/the injected Logger.
func (s *Solver) Step(targets []armmath.Vec3) (StepReport, error) {
	if err := s.ComputeJacobian(targets); err != nil {
		return StepReport{}, err
	}
	report := s.CalcDeltaThetasSDLS()
	s.UpdateThetas(report.DeltaTheta)
	if err := s.UpdatedSClampValue(targets); err != nil {
		return report, err
	}
	return report, nil
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func allFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
