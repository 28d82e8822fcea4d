// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package armlog gives the solver packages a caller-supplied logging
// collaborator instead of reaching for a process-global writer the way
// gosl/io's Pf-family does. The host injects a Logger; the default
// implementation formats through io.Pf so the on-screen texture matches
// the rest of the stack.
package armlog

import "github.com/cpmech/gosl/io"

// Logger receives diagnostic messages the core never escalates to a
// returned error, such as a recovered NumericalBreakdown (spec §7).
type Logger interface {
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// NopLogger discards everything. Useful in tests and in any host that
// doesn't care about diagnostics.
type NopLogger struct{}

// Errorf implements Logger.
func (NopLogger) Errorf(format string, args ...interface{}) {}

// Debugf implements Logger.
func (NopLogger) Debugf(format string, args ...interface{}) {}

// IOLogger formats through gosl/io.Pf, the same formatted-print family
// gofem uses for progress messages (fem/domain.go, fem/fem.go). Debug
// messages are suppressed unless Verbose is set, mirroring chk.Verbose.
type IOLogger struct {
	Verbose bool
}

// Errorf implements Logger, always printing in red via io.PfRed.
func (l IOLogger) Errorf(format string, args ...interface{}) {
	io.PfRed(format, args...)
}

// Debugf implements Logger, printing only when Verbose is set.
func (l IOLogger) Debugf(format string, args ...interface{}) {
	if !l.Verbose {
		return
	}
	io.Pf(format, args...)
}
