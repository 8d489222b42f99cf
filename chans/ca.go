// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

//////////////////////////////////////////////////////////////////////////////////////
//  CaHVA: L / N / P/Q types

// CaHVAParams are the shared kinetics shape for the high-voltage-activated
// calcium channel family (L, N, P/Q types), g = gbar * m^MPow * (h if
// inactivating), in steady-state / time-constant form.  The three types
// differ only in their defaults: half points, slopes, time constants, and
// whether they inactivate.
type CaHVAParams struct {
	MVHalf float32   `desc:"activation half point, mV"`
	MK     float32   `desc:"activation slope, mV"`
	MTau   float32   `desc:"activation time constant, msec"`
	MPow   int32     `desc:"power on the activation variable (1 or 2)"`
	HasH   bool      `desc:"whether this type inactivates"`
	HVHalf float32   `viewif:"HasH" desc:"inactivation half point, mV"`
	HK     float32   `viewif:"HasH" desc:"inactivation slope, mV (negative)"`
	HTau   float32   `viewif:"HasH" desc:"inactivation time constant, msec"`
	Q10    Q10Params `view:"inline" desc:"temperature scaling of all rates"`
}

// DefaultsL sets L-type defaults: high threshold, non-inactivating
// (calcium-dependent inactivation is not modeled), m^2.
func (hp *CaHVAParams) DefaultsL() {
	hp.MVHalf = -10
	hp.MK = 6
	hp.MTau = 1.5
	hp.MPow = 2
	hp.HasH = false
	hp.Q10.Defaults()
	hp.Q10.RefC = 22
}

// DefaultsN sets N-type defaults: intermediate threshold, slowly
// inactivating, m^2 h.
func (hp *CaHVAParams) DefaultsN() {
	hp.MVHalf = -20
	hp.MK = 4.5
	hp.MTau = 1.5
	hp.MPow = 2
	hp.HasH = true
	hp.HVHalf = -60
	hp.HK = -7
	hp.HTau = 70
	hp.Q10.Defaults()
	hp.Q10.RefC = 22
}

// DefaultsPQ sets P/Q-type defaults: high threshold, non-inactivating, m.
func (hp *CaHVAParams) DefaultsPQ() {
	hp.MVHalf = -17
	hp.MK = 3
	hp.MTau = 1
	hp.MPow = 1
	hp.HasH = false
	hp.Q10.Defaults()
	hp.Q10.RefC = 22
}

func (hp *CaHVAParams) Update(celsius float32) {
	hp.Q10.Update(celsius)
}

// MInf returns the steady-state activation at v.
func (hp *CaHVAParams) MInf(v float32) float32 {
	return Sigmoid(v, hp.MVHalf, hp.MK)
}

// HInf returns the steady-state inactivation at v (1 if non-inactivating).
func (hp *CaHVAParams) HInf(v float32) float32 {
	if !hp.HasH {
		return 1
	}
	return Sigmoid(v, hp.HVHalf, hp.HK)
}

// G returns conductance gbar * m^MPow * h in nS.
func (hp *CaHVAParams) G(gbar float32, st *State) float32 {
	m := st.M
	if hp.MPow == 2 {
		m *= st.M
	}
	return gbar * m * st.H
}

// UpdateState advances m (and h if inactivating) one forward-Euler step.
func (hp *CaHVAParams) UpdateState(v float32, st *State, dt float32) {
	q := hp.Q10.Scale
	st.M += dt * q * (hp.MInf(v) - st.M) / hp.MTau
	if hp.HasH {
		st.H += dt * q * (hp.HInf(v) - st.H) / hp.HTau
	}
}

// InitState sets m and h to steady state at v.
func (hp *CaHVAParams) InitState(v float32, st *State) {
	st.M = hp.MInf(v)
	st.H = hp.HInf(v)
}

//////////////////////////////////////////////////////////////////////////////////////
//  CaT

// CaTParams are the kinetics of the low-threshold transient (T-type)
// calcium channel, g = gbar * m^2 * h, which underlies rebound bursting.
// Voltage-dependent time constants after Huguenard & McCormick (1992)
// thalamic relay cell fits.
type CaTParams struct {
	MVHalf float32   `def:"-57" desc:"activation half point, mV"`
	MK     float32   `def:"6.2" desc:"activation slope, mV"`
	HVHalf float32   `def:"-81" desc:"inactivation half point, mV"`
	HK     float32   `def:"-4" desc:"inactivation slope, mV"`
	Q10    Q10Params `view:"inline" desc:"temperature scaling of all rates"`
}

func (tp *CaTParams) Defaults() {
	tp.MVHalf = -57
	tp.MK = 6.2
	tp.HVHalf = -81
	tp.HK = -4
	tp.Q10.Defaults()
	tp.Q10.RefC = 24
}

func (tp *CaTParams) Update(celsius float32) {
	tp.Q10.Update(celsius)
}

// MInf returns the steady-state activation at v.
func (tp *CaTParams) MInf(v float32) float32 {
	return Sigmoid(v, tp.MVHalf, tp.MK)
}

// MTau returns the activation time constant at v, in msec (unscaled).
func (tp *CaTParams) MTau(v float32) float32 {
	return 0.612 + 1/(math32.Exp(-(v+132)/16.7)+math32.Exp((v+16.8)/18.2))
}

// HInf returns the steady-state inactivation at v.
func (tp *CaTParams) HInf(v float32) float32 {
	return Sigmoid(v, tp.HVHalf, tp.HK)
}

// HTau returns the inactivation time constant at v, in msec (unscaled).
func (tp *CaTParams) HTau(v float32) float32 {
	if v < -80 {
		return math32.Exp((v + 467) / 66.6)
	}
	return 28 + math32.Exp(-(v+22)/10.5)
}

// G returns conductance gbar * m^2 * h in nS.
func (tp *CaTParams) G(gbar float32, st *State) float32 {
	return gbar * st.M * st.M * st.H
}

// UpdateState advances m and h one forward-Euler step of dt msec.
func (tp *CaTParams) UpdateState(v float32, st *State, dt float32) {
	q := tp.Q10.Scale
	st.M += dt * q * (tp.MInf(v) - st.M) / tp.MTau(v)
	st.H += dt * q * (tp.HInf(v) - st.H) / tp.HTau(v)
}

// InitState sets m and h to steady state at v.
func (tp *CaTParams) InitState(v float32, st *State) {
	st.M = tp.MInf(v)
	st.H = tp.HInf(v)
}
