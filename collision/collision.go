// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collision implements the capsule-approximated self-collision
// check: every arm segment (the span between two adjacent node positions)
// is represented as a chain of tapering spheres, and any two non-adjacent
// segments are tested sphere-against-sphere.
package collision

import (
	"github.com/jsdf/robot-control/armconfig"
	"github.com/jsdf/robot-control/armmath"
)

// Sphere is one collision primitive placed along a segment's inset span.
type Sphere struct {
	Center                  armmath.Vec3
	Radius                  float64
	DistanceAlongArmSegment float64 // t in [0,1] over the inset sub-span
	IsColliding             bool
}

// Segment owns the sphere chain approximating one capsule between two
// adjacent node positions.
type Segment struct {
	IndexRange [2]int // (parent, child) edge indices into the position array
	Spheres    []*Sphere
}

// sharesIndex reports whether a and b reference a common chain position,
// the adjacency test spec §4.6 uses to exclude neighboring segments from
// the self-collision check (they always touch at the shared joint).
func (s *Segment) sharesIndex(other *Segment) bool {
	return s.IndexRange[0] == other.IndexRange[0] || s.IndexRange[0] == other.IndexRange[1] ||
		s.IndexRange[1] == other.IndexRange[0] || s.IndexRange[1] == other.IndexRange[1]
}

// Collision owns one capsule chain per adjacent pair of positions in an
// arm's node chain, sized once at construction and refreshed on Update.
type Collision struct {
	cfg      armconfig.Config
	segments []*Segment
}

// NewCollision builds one capsule per edge, where edges[k] = (parentIdx,
// childIdx) indexes into positions. For the default single-chain arm this
// is the sequential (i-1,i) pairing spec §4.6 describes; a branching tree
// supplies one edge per parent/child link instead, so the same sphere-chain
// machinery generalizes to more than one effector. The position array's
// length and the edge list are fixed for the lifetime of the Collision
// instance; only the positions themselves move between updates.
func NewCollision(positions []armmath.Vec3, edges [][2]int, cfg armconfig.Config) *Collision {
	c := &Collision{cfg: cfg}
	for _, e := range edges {
		c.segments = append(c.segments, c.buildSegment(e[0], e[1], positions))
	}
	return c
}

func (c *Collision) buildSegment(i0, i1 int, chain []armmath.Vec3) *Segment {
	seg := &Segment{IndexRange: [2]int{i0, i1}}

	a, b := chain[i0], chain[i1]
	span := b.Sub(a)
	length := span.Norm()
	insetLen := length * c.cfg.Gap
	spanWithGap := length - 2*insetLen
	if spanWithGap <= 0 {
		return seg
	}

	numSpheres := int(spanWithGap / c.cfg.SphereInterval)
	for k := 0; k < numSpheres; k++ {
		t := (float64(k) + 0.5) / float64(numSpheres)
		scale := 1 - 2*abs(t-0.5)
		seg.Spheres = append(seg.Spheres, &Sphere{
			DistanceAlongArmSegment: t,
			Radius:                  c.cfg.SphereRadius * scale,
		})
	}
	c.placeSpheres(seg, a, b)
	return seg
}

func (c *Collision) placeSpheres(seg *Segment, a, b armmath.Vec3) {
	span := b.Sub(a)
	length := span.Norm()
	if length < 1e-15 {
		for _, sph := range seg.Spheres {
			sph.Center = a
		}
		return
	}
	dir := span.Scale(1 / length)
	insetLen := length * c.cfg.Gap
	insetStart := a.Add(dir.Scale(insetLen))
	insetEnd := b.Sub(dir.Scale(insetLen))
	for _, sph := range seg.Spheres {
		sph.Center = armmath.Lerp(insetStart, insetEnd, sph.DistanceAlongArmSegment)
	}
}

// Segments exposes the current collision volumes, grouped by the arm
// segment they approximate.
func (c *Collision) Segments() []*Segment {
	return c.segments
}

// Update recomputes every sphere's center from the latest node-position
// chain (taken fresh after a forward-kinematics pass), then re-runs the
// self-collision test.
func (c *Collision) Update(chain []armmath.Vec3) {
	for _, seg := range c.segments {
		a, b := chain[seg.IndexRange[0]], chain[seg.IndexRange[1]]
		c.placeSpheres(seg, a, b)
		for _, sph := range seg.Spheres {
			sph.IsColliding = false
		}
	}

	for i := 0; i < len(c.segments); i++ {
		for j := i + 1; j < len(c.segments); j++ {
			segA, segB := c.segments[i], c.segments[j]
			if segA.sharesIndex(segB) {
				continue
			}
			for _, sa := range segA.Spheres {
				for _, sb := range segB.Spheres {
					if sa.Center.Sub(sb.Center).Norm() < sa.Radius+sb.Radius {
						sa.IsColliding = true
						sb.IsColliding = true
					}
				}
			}
		}
	}
}

// AreAnyColliding reports whether any sphere, anywhere, is currently
// flagged as colliding.
func (c *Collision) AreAnyColliding() bool {
	for _, seg := range c.segments {
		for _, sph := range seg.Spheres {
			if sph.IsColliding {
				return true
			}
		}
	}
	return false
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
