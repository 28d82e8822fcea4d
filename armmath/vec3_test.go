// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package armmath

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func checkVec3(tst *testing.T, msg string, tol float64, a, b Vec3) {
	if math.Abs(a.X-b.X) > tol || math.Abs(a.Y-b.Y) > tol || math.Abs(a.Z-b.Z) > tol {
		tst.Errorf("%s: got %v, want %v", msg, a, b)
	}
}

func TestVec3Basics(tst *testing.T) {

	chk.PrintTitle("Vec3Basics. add, sub, dot, cross, norm")

	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	checkVec3(tst, "add", 1e-15, a.Add(b), NewVec3(5, 7, 9))
	checkVec3(tst, "sub", 1e-15, b.Sub(a), NewVec3(3, 3, 3))

	if math.Abs(a.Dot(b)-32) > 1e-12 {
		tst.Errorf("dot: got %v, want 32", a.Dot(b))
	}

	checkVec3(tst, "cross", 1e-12, NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1))

	if math.Abs(NewVec3(3, 4, 0).Norm()-5) > 1e-12 {
		tst.Errorf("norm: expected 5")
	}
}

func TestVec3NormalizeZero(tst *testing.T) {

	chk.PrintTitle("Vec3NormalizeZero. zero vector stays zero, never NaN")

	z := NewVec3(0, 0, 0)
	n := z.Normalize()
	checkVec3(tst, "normalize(0)", 0, n, z)
	if !n.IsFinite() {
		tst.Errorf("normalize(0) must stay finite")
	}
}

func TestVec3Lerp(tst *testing.T) {

	chk.PrintTitle("Vec3Lerp. component-wise interpolation")

	a := NewVec3(0, 0, 0)
	b := NewVec3(10, 20, 30)
	checkVec3(tst, "lerp(0.5)", 1e-12, Lerp(a, b, 0.5), NewVec3(5, 10, 15))
	checkVec3(tst, "lerp(0)", 1e-12, Lerp(a, b, 0), a)
	checkVec3(tst, "lerp(1)", 1e-12, Lerp(a, b, 1), b)
}

func TestVec3RotateAboutAxis(tst *testing.T) {

	chk.PrintTitle("Vec3RotateAboutAxis. Rodrigues rotation about Z by pi/2")

	v := NewVec3(1, 0, 0)
	axis := NewVec3(0, 0, 1)
	rotated := v.RotateAboutAxis(axis, math.Pi/2)
	checkVec3(tst, "rotate 90deg about Z", 1e-9, rotated, NewVec3(0, 1, 0))
}

func TestVec3ClampNorm(tst *testing.T) {

	chk.PrintTitle("Vec3ClampNorm. shrinks long vectors, passes short ones")

	long := NewVec3(10, 0, 0)
	clamped := long.ClampNorm(2)
	if math.Abs(clamped.Norm()-2) > 1e-12 {
		tst.Errorf("expected clamped norm 2, got %v", clamped.Norm())
	}

	short := NewVec3(0.1, 0, 0)
	checkVec3(tst, "short passthrough", 1e-15, short.ClampNorm(2), short)
}
