// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package animation

import "github.com/jsdf/robot-control/armmath"

// Plan is a serialized joint-angle vector plus the target that produced
// it, sufficient to reproduce a posture without re-running IK (spec §4.9).
type Plan struct {
	Theta  []float64
	Target armmath.Vec3
}

// Keyframe pairs a Plan with the time, in seconds, the animator spends
// transitioning into it before advancing to the next one.
type Keyframe struct {
	IntervalSeconds float64
	Plan            Plan
}

// Animation is an ordered list of keyframes plus a loop flag.
type Animation struct {
	Frames []Keyframe
	Loop   bool
}
