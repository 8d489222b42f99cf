// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

// NMDAParams are the kinetics of the ligand-gated, voltage-dependent
// NMDA receptor channel.  Conductance is the product of the slowly
// integrating ligand-bound open fraction (State.M) and the instantaneous
// magnesium block factor: g = gbar * m * MgBlock(v).  The Mg2+ block
// 1 / (1 + ([Mg]/3.57) * exp(-0.062 * v)) relieves with depolarization,
// making the channel a coincidence detector of ligand and voltage.
type NMDAParams struct {
	Mg  float32 `def:"1" desc:"extracellular magnesium concentration, mM -- 1 mM is physiological"`
	Kd  float32 `def:"2.3" desc:"ligand binding half-saturation concentration, uM"`
	Tau float32 `def:"100" desc:"decay time constant for the bound open fraction, msec -- rise time is ~2 msec and not worth a biexponential"`
}

func (np *NMDAParams) Defaults() {
	np.Mg = 1
	np.Kd = 2.3
	np.Tau = 100
}

func (np *NMDAParams) Update(celsius float32) {
}

// MgBlock returns the voltage-dependent magnesium unblock fraction at
// membrane potential v in mV: monotonically increasing in v, near 0 at
// strong hyperpolarization and approaching 1 with depolarization.
func (np *NMDAParams) MgBlock(v float32) float32 {
	return 1 / (1 + (np.Mg/3.57)*math32.Exp(-0.062*v))
}

// BoundFrac returns the equilibrium ligand-bound fraction at ligand
// concentration lig in uM.
func (np *NMDAParams) BoundFrac(lig float32) float32 {
	return lig / (lig + np.Kd)
}

// G returns conductance gbar * m * MgBlock(v) in nS.  lig is accepted for
// interface symmetry but conductance depends on ligand only through the
// integrated bound fraction in st.M.
func (np *NMDAParams) G(gbar, v, lig float32, st *State) float32 {
	return gbar * st.M * np.MgBlock(v)
}

// UpdateState advances the bound open fraction toward the equilibrium
// binding for the current ligand concentration, one forward-Euler step.
func (np *NMDAParams) UpdateState(v, lig float32, st *State, dt float32) {
	st.M += dt * (np.BoundFrac(lig) - st.M) / np.Tau
}
