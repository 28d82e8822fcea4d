// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package animation layers a planned/committed dual-solution session and a
// pull-based keyframe animator on top of package armsolution, the way
// fem.Solver layers a time loop on top of fem.Domain: the host drives
// ticks, this package only ever reacts to them (spec §5, §9).
package animation

// Clock is the host-supplied timing collaborator. The core never reads a
// wall clock or spawns a goroutine on its own (spec §5's single-threaded,
// cooperative concurrency model); it asks Clock to schedule its next wake
// and trusts the host to call back.
type Clock interface {
	// Now returns host-monotonic seconds. Only ever called by the
	// animator to measure elapsed time between ticks; never assumed to
	// agree with wall-clock time.
	Now() float64
	// ScheduleNextTick asks the host to invoke cb at its next animation
	// frame (or after some host-chosen delay) and returns a token that a
	// later Cancel call can use to suppress that callback.
	ScheduleNextTick(cb func()) Token
	// Cancel suppresses a previously scheduled callback. Canceling a
	// token that already fired, or was already canceled, is a no-op.
	Cancel(tok Token)
}

// Token identifies one scheduled-but-not-yet-fired tick. Tokens are
// monotonically increasing so a stale callback (scheduled by a prior
// animation run) can tell it has been superseded.
type Token int64
