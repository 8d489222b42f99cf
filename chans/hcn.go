// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

// HCNParams are the kinetics of the hyperpolarization-activated cation
// current (Ih), g = gbar * m, with a mixed Na/K reversal around -30 mV.
// The single gate (State.M) opens with hyperpolarization and closes with
// depolarization, producing voltage sag and pacemaking.  Time constant
// after the standard thalamocortical Ih fits.
type HCNParams struct {
	VHalf float32   `def:"-82" desc:"activation half point, mV"`
	K     float32   `def:"-7" desc:"activation slope, mV (negative: opens with hyperpolarization)"`
	Q10   Q10Params `view:"inline" desc:"temperature scaling of all rates"`
}

func (hp *HCNParams) Defaults() {
	hp.VHalf = -82
	hp.K = -7
	hp.Q10.Defaults()
	hp.Q10.RefC = 34
}

func (hp *HCNParams) Update(celsius float32) {
	hp.Q10.Update(celsius)
}

// MInf returns the steady-state activation at v.
func (hp *HCNParams) MInf(v float32) float32 {
	return Sigmoid(v, hp.VHalf, hp.K)
}

// MTau returns the activation time constant at v, in msec (unscaled).
func (hp *HCNParams) MTau(v float32) float32 {
	return 1 / (math32.Exp(-14.59-0.086*v) + math32.Exp(-1.87+0.0701*v))
}

// G returns conductance gbar * m in nS.
func (hp *HCNParams) G(gbar float32, st *State) float32 {
	return gbar * st.M
}

// UpdateState advances m one forward-Euler step of dt msec.
func (hp *HCNParams) UpdateState(v float32, st *State, dt float32) {
	st.M += dt * hp.Q10.Scale * (hp.MInf(v) - st.M) / hp.MTau(v)
}

// InitState sets m to steady state at v.
func (hp *HCNParams) InitState(v float32, st *State) {
	st.M = hp.MInf(v)
	st.H = 1
}
