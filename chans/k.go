// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

//////////////////////////////////////////////////////////////////////////////////////
//  KA

// KAParams are the kinetics of the fast-inactivating A-type potassium
// channel, g = gbar * m^3 * h, in steady-state / time-constant form:
// dx/dt = (xinf(v) - x) / tau(v).  Shapes after Connor-Stevens style
// somatodendritic A-currents.
type KAParams struct {
	MVHalf float32   `def:"-60" desc:"activation half point, mV"`
	MK     float32   `def:"8.5" desc:"activation slope, mV"`
	HVHalf float32   `def:"-78" desc:"inactivation half point, mV"`
	HK     float32   `def:"-6" desc:"inactivation slope, mV (negative: closes with depolarization)"`
	MTauMn float32   `def:"0.37" desc:"minimum activation time constant, msec"`
	HTau   float32   `def:"20" desc:"inactivation time constant, msec"`
	Q10    Q10Params `view:"inline" desc:"temperature scaling of all rates"`
}

func (ap *KAParams) Defaults() {
	ap.MVHalf = -60
	ap.MK = 8.5
	ap.HVHalf = -78
	ap.HK = -6
	ap.MTauMn = 0.37
	ap.HTau = 20
	ap.Q10.Defaults()
}

func (ap *KAParams) Update(celsius float32) {
	ap.Q10.Update(celsius)
}

// MInf returns the steady-state activation at v.
func (ap *KAParams) MInf(v float32) float32 {
	return Sigmoid(v, ap.MVHalf, ap.MK)
}

// MTau returns the activation time constant at v, in msec (unscaled).
func (ap *KAParams) MTau(v float32) float32 {
	return ap.MTauMn + 1/(math32.Exp((v+35.8)/19.7)+math32.Exp(-(v+79.7)/12.7))
}

// HInf returns the steady-state inactivation at v.
func (ap *KAParams) HInf(v float32) float32 {
	return Sigmoid(v, ap.HVHalf, ap.HK)
}

// G returns conductance gbar * m^3 * h in nS.
func (ap *KAParams) G(gbar float32, st *State) float32 {
	return gbar * st.M * st.M * st.M * st.H
}

// UpdateState advances m and h one forward-Euler step of dt msec.
func (ap *KAParams) UpdateState(v float32, st *State, dt float32) {
	q := ap.Q10.Scale
	st.M += dt * q * (ap.MInf(v) - st.M) / ap.MTau(v)
	st.H += dt * q * (ap.HInf(v) - st.H) / ap.HTau
}

// InitState sets m and h to steady state at v.
func (ap *KAParams) InitState(v float32, st *State) {
	st.M = ap.MInf(v)
	st.H = ap.HInf(v)
}

//////////////////////////////////////////////////////////////////////////////////////
//  KM

// KMParams are the kinetics of the slow, non-inactivating M-type potassium
// current, g = gbar * m, which dampens repetitive firing.  Single gating
// variable in State.M; steady-state / time-constant form with a bell-shaped
// tau peaking near the activation half point.
type KMParams struct {
	VHalf  float32   `def:"-35" desc:"activation half point, mV"`
	K      float32   `def:"10" desc:"activation slope, mV"`
	TauAmp float32   `def:"303" desc:"peak time constant amplitude, msec (= 1000 / 3.3)"`
	TauK   float32   `def:"20" desc:"voltage width of the tau bell curve, mV"`
	Q10    Q10Params `view:"inline" desc:"temperature scaling of all rates"`
}

func (mp *KMParams) Defaults() {
	mp.VHalf = -35
	mp.K = 10
	mp.TauAmp = 303
	mp.TauK = 20
	mp.Q10.Defaults()
	mp.Q10.Q10 = 2.3
	mp.Q10.RefC = 22
}

func (mp *KMParams) Update(celsius float32) {
	mp.Q10.Update(celsius)
}

// MInf returns the steady-state activation at v.
func (mp *KMParams) MInf(v float32) float32 {
	return Sigmoid(v, mp.VHalf, mp.K)
}

// MTau returns the activation time constant at v, in msec (unscaled).
func (mp *KMParams) MTau(v float32) float32 {
	x := (v - mp.VHalf) / mp.TauK
	return mp.TauAmp / (math32.Exp(x) + math32.Exp(-x))
}

// G returns conductance gbar * m in nS.
func (mp *KMParams) G(gbar float32, st *State) float32 {
	return gbar * st.M
}

// UpdateState advances m one forward-Euler step of dt msec.
func (mp *KMParams) UpdateState(v float32, st *State, dt float32) {
	st.M += dt * mp.Q10.Scale * (mp.MInf(v) - st.M) / mp.MTau(v)
}

// InitState sets m to steady state at v.
func (mp *KMParams) InitState(v float32, st *State) {
	st.M = mp.MInf(v)
	st.H = 1
}
