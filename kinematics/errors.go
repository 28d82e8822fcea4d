// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kinematics

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is returned, wrapped with the offending counts, when a
// target vector's length does not match the tree's effector count (spec
// §7). The solver state is left unchanged.
var ErrShapeMismatch = errors.New("kinematics: shape mismatch")

// ErrNumericalBreakdown is the sentinel logged (not returned) when NaN/Inf
// appears during SVD or delta-theta assembly. It is not a fatal condition:
// the step is discarded (delta theta forced to zero) and the caller is not
// required to inspect it, but a host's Logger can match on it via
// errors.Is if it captures the formatted message as an error.
var ErrNumericalBreakdown = errors.New("kinematics: numerical breakdown")

func shapeMismatchf(wantEffectors, gotTargets int) error {
	return fmt.Errorf("%w: tree has %d effectors, got %d targets", ErrShapeMismatch, wantEffectors, gotTargets)
}

func numericalBreakdownf(stage string) error {
	return fmt.Errorf("%w: during %s", ErrNumericalBreakdown, stage)
}
