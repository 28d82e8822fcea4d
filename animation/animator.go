// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package animation

import "github.com/jsdf/robot-control/armmath"

// Animator plays an Animation against a Session's planned solution by
// pulling ticks from a host-supplied Clock: it never reads wall-clock
// time or spawns anything on its own (spec §5, §9).
type Animator struct {
	session *Session
	clock   Clock

	anim Animation

	startTime               float64
	elapsedFrameIntervalSum float64
	currentFrame            int
	playing                 bool
	pending                 Token
}

// NewAnimator builds an Animator bound to session and clock. Nothing runs
// until Play is called.
func NewAnimator(session *Session, clock Clock) *Animator {
	return &Animator{session: session, clock: clock}
}

// Play starts anim: applies the first frame's plan immediately, then
// schedules the first tick through Clock.
func (a *Animator) Play(anim Animation) {
	a.Stop()
	a.anim = anim
	a.startTime = a.clock.Now()
	a.elapsedFrameIntervalSum = 0
	a.currentFrame = 0
	a.playing = len(anim.Frames) > 0
	if !a.playing {
		return
	}
	a.session.LoadPlan(anim.Frames[0].Plan)
	a.scheduleNext()
}

// Stop cancels any pending tick and halts playback. Safe to call when not
// playing.
func (a *Animator) Stop() {
	if a.pending != 0 {
		a.clock.Cancel(a.pending)
		a.pending = 0
	}
	a.playing = false
}

// Playing reports whether an animation is currently advancing.
func (a *Animator) Playing() bool { return a.playing }

func (a *Animator) scheduleNext() {
	var tok Token
	tok = a.clock.ScheduleNextTick(func() {
		// a callback whose token is no longer the pending one was
		// superseded by Stop or a later Play and aborts itself.
		if tok != a.pending {
			return
		}
		a.tick(a.clock.Now())
	})
	a.pending = tok
}

// tick is the pull-based iterator spec §9 calls for in place of
// push-based host callbacks: the host's animation-frame mechanism is
// reduced to calling tick(now) once per frame.
func (a *Animator) tick(now float64) {
	if !a.playing {
		return
	}
	frames := a.anim.Frames
	sinceStart := now - a.startTime

	for a.currentFrame < len(frames) &&
		a.elapsedFrameIntervalSum+frames[a.currentFrame].IntervalSeconds < sinceStart {
		a.elapsedFrameIntervalSum += frames[a.currentFrame].IntervalSeconds
		a.currentFrame++
		if a.currentFrame < len(frames) {
			a.session.LoadPlan(frames[a.currentFrame].Plan)
		}
	}

	if a.currentFrame >= len(frames) {
		if a.anim.Loop && len(frames) > 0 {
			a.Play(a.anim)
			return
		}
		a.playing = false
		return
	}

	if a.currentFrame+1 < len(frames) {
		frame := frames[a.currentFrame]
		next := frames[a.currentFrame+1]
		// frameCompletion intentionally keeps the source's ambiguous
		// precedence: division binds to frame.IntervalSeconds alone, not
		// to the whole (sinceStart - elapsedFrameIntervalSum) span. See
		// the open question in the design notes; this is preserved, not
		// fixed.
		frameCompletion := sinceStart - a.elapsedFrameIntervalSum/frame.IntervalSeconds
		target := armmath.Lerp(frame.Plan.Target, next.Plan.Target, frameCompletion)
		a.session.Planned.SetTarget(0, target)
	}

	a.scheduleNext()
}
