// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package animation

import (
	"github.com/jsdf/robot-control/armmath"
	"github.com/jsdf/robot-control/armsolution"
)

// Session owns two fully independent ArmSolution instances: planned
// live-solves against the user's current target, committed holds the last
// confirmed plan. They share no mutable state, including collision
// volumes, which are owned 1:1 by their own ArmSolution (spec §4.9).
type Session struct {
	Planned   *armsolution.ArmSolution
	Committed *armsolution.ArmSolution

	initialTheta  []float64
	initialTarget armmath.Vec3
}

// NewSession pairs planned and committed, snapshotting planned's current
// theta and first target as the resetToInitial baseline.
func NewSession(planned, committed *armsolution.ArmSolution) *Session {
	s := &Session{
		Planned:      planned,
		Committed:    committed,
		initialTheta: append([]float64(nil), planned.Serialize()...),
	}
	if targets := planned.Targets(); len(targets) > 0 {
		s.initialTarget = targets[0]
	}
	return s
}

// CommitPlan copies planned's theta via ApplySolution into committed and
// returns the theta vector, for the caller to forward over any transport
// (spec §4.9, §9's command-channel interface).
func (s *Session) CommitPlan() ([]float64, error) {
	theta := s.Planned.Serialize()
	if err := s.Committed.ApplySolution(theta); err != nil {
		return nil, err
	}
	return theta, nil
}

// GetPlan snapshots planned's current theta and first target into a Plan.
func (s *Session) GetPlan() Plan {
	plan := Plan{Theta: append([]float64(nil), s.Planned.Serialize()...)}
	if targets := s.Planned.Targets(); len(targets) > 0 {
		plan.Target = targets[0]
	}
	return plan
}

// LoadPlan assigns p's theta and target to planned via ApplySolution (no
// IK step).
func (s *Session) LoadPlan(p Plan) error {
	if err := s.Planned.ApplySolution(p.Theta); err != nil {
		return err
	}
	s.Planned.SetTarget(0, p.Target)
	return nil
}

// ResetToInitial restores the theta snapshot captured at NewSession,
// optionally also the initial target (spec §4.9).
func (s *Session) ResetToInitial(alsoResetTarget bool) error {
	if err := s.Planned.ApplySolution(s.initialTheta); err != nil {
		return err
	}
	if alsoResetTarget {
		s.Planned.SetTarget(0, s.initialTarget)
	}
	return nil
}
