// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package armmath implements the dense vector/matrix arithmetic that backs
// the kinematic tree and the Jacobian IK solver: 3-vectors, a fixed-size
// dense matrix, and a Golub-Reinsch SVD.
package armmath

import "math"

// Vec3 is a 3-component world or local-frame vector.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 builds a vector from components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns a+b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a-b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a*s.
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Dot returns a·b.
func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns a×b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Norm returns the Euclidean length of a.
func (a Vec3) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize returns a/‖a‖. A zero-length vector (within epsilon) is
// returned unchanged rather than producing NaN.
func (a Vec3) Normalize() Vec3 {
	n := a.Norm()
	if n < 1e-15 {
		return a
	}
	return a.Scale(1.0 / n)
}

// DirectionTo returns the unit vector pointing from a to b.
func DirectionTo(a, b Vec3) Vec3 {
	return b.Sub(a).Normalize()
}

// Lerp interpolates component-wise between a and b at parameter t.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X*(1-t) + b.X*t,
		a.Y*(1-t) + b.Y*t,
		a.Z*(1-t) + b.Z*t,
	}
}

// ClampNorm scales v down so its norm does not exceed max; v shorter than
// max (or max<=0, meaning "no limit") passes through unchanged.
func (a Vec3) ClampNorm(max float64) Vec3 {
	if max <= 0 {
		return a
	}
	n := a.Norm()
	if n <= max {
		return a
	}
	return a.Scale(max / n)
}

// RotateAboutAxis rotates v by angle theta (radians) about the unit axis,
// via Rodrigues' rotation formula:
//
//	v_rot = v·cosθ + (axis×v)·sinθ + axis·(axis·v)·(1-cosθ)
func (a Vec3) RotateAboutAxis(axis Vec3, theta float64) Vec3 {
	c := math.Cos(theta)
	s := math.Sin(theta)
	term1 := a.Scale(c)
	term2 := axis.Cross(a).Scale(s)
	term3 := axis.Scale(axis.Dot(a) * (1 - c))
	return term1.Add(term2).Add(term3)
}

// IsFinite reports whether every component is neither NaN nor +-Inf.
func (a Vec3) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsNaN(a.Z) &&
		!math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0) && !math.IsInf(a.Z, 0)
}
