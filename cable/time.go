// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cable

// Time contains the timing state and parameters for running a simulation.
type Time struct {

	// accumulated simulation time, in msec (not real world time).
	Msec float32

	// step counter: number of integration steps taken since last reset.
	Step int

	// amount of simulation time per integration step, msec.  Must be
	// small relative to the fastest channel time constant in the model.
	DtMsec float32 `def:"0.01"`
}

// NewTime returns a new Time struct with default parameters.
func NewTime() *Time {
	tm := &Time{}
	tm.Defaults()
	return tm
}

// Defaults sets default values
func (tm *Time) Defaults() {
	tm.DtMsec = 0.01
}

// Reset resets the counters all back to zero
func (tm *Time) Reset() {
	tm.Msec = 0
	tm.Step = 0
	if tm.DtMsec == 0 {
		tm.Defaults()
	}
}

// StepInc increments the counters by one integration step
func (tm *Time) StepInc() {
	tm.Step++
	tm.Msec += tm.DtMsec
}
