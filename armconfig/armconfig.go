// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package armconfig collects the tunable constants spec §6 names, playing
// the role gofem's fun.Params name/value parameter lists play for material
// models: a single struct a host can override, instead of compiled-in
// literals scattered across the solver packages.
package armconfig

// Config holds every tunable constant the planner needs. DefaultConfig
// returns the values spec.md names as defaults.
type Config struct {
	// DeltaSMax bounds ‖dS_i‖, the per-effector target-offset used to
	// build the Jacobian right-hand side (spec §4.5 step 2).
	DeltaSMax float64

	// GammaMax bounds the per-singular-component joint rotation SDLS
	// allows in one step (spec §4.5 step 3).
	GammaMax float64

	// GammaTotal bounds the combined per-step joint rotation after all
	// singular components are summed (spec §4.5 step 3).
	GammaTotal float64

	// SphereRadius is the nominal radius of a self-collision sphere
	// before per-sphere tapering (spec §4.6).
	SphereRadius float64

	// SphereInterval is the spacing between spheres along a segment
	// (spec §4.6: SphereRadius/4).
	SphereInterval float64

	// Gap insets each segment end inward by span*Gap before placing
	// spheres, avoiding shared-endpoint self-overlap (spec §4.6).
	Gap float64

	// Annealing schedule (spec §4.8).
	AnnealT0           float64
	AnnealTMin         float64
	AnnealAlpha        float64
	AnnealInnerLoopLen int
}

// DefaultConfig returns the constants spec.md §6 specifies as defaults.
func DefaultConfig() Config {
	sphereRadius := 0.1
	return Config{
		DeltaSMax:          0.4,
		GammaMax:           0.7853981633974483, // math.Pi / 4
		GammaTotal:         0.7853981633974483, // math.Pi / 4
		SphereRadius:       sphereRadius,
		SphereInterval:     sphereRadius / 4,
		Gap:                0.001,
		AnnealT0:           1.0,
		AnnealTMin:         1e-5,
		AnnealAlpha:        0.9,
		AnnealInnerLoopLen: 50,
	}
}
