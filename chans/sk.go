// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

//////////////////////////////////////////////////////////////////////////////////////
//  CaPool

// CaPoolParams model the intracellular calcium concentration that drives
// the calcium-activated potassium channels.  The pool is channel-local,
// carried in the gating-state tuple: calcium enters through a
// high-voltage-activated-like influx function of the local membrane
// potential and decays first-order back to rest.  This keeps every channel
// a pure function over its own explicit state, with no cross-channel
// coupling to the Ca2+ current channels.
type CaPoolParams struct {
	Rest  float32 `def:"0.05" desc:"resting intracellular calcium concentration, uM"`
	Tau   float32 `def:"50" desc:"calcium clearance time constant, msec"`
	Gain  float32 `def:"2" desc:"peak calcium influx rate at full depolarization, uM/msec"`
	VHalf float32 `def:"-25" desc:"half point of the voltage-dependent influx, mV"`
	K     float32 `def:"5" desc:"slope of the voltage-dependent influx, mV"`
}

func (pp *CaPoolParams) Defaults() {
	pp.Rest = 0.05
	pp.Tau = 50
	pp.Gain = 2
	pp.VHalf = -25
	pp.K = 5
}

// Influx returns the calcium influx rate at v, in uM/msec.
func (pp *CaPoolParams) Influx(v float32) float32 {
	return pp.Gain * Sigmoid(v, pp.VHalf, pp.K)
}

// UpdateCa advances the calcium pool one forward-Euler step of dt msec.
func (pp *CaPoolParams) UpdateCa(v float32, ca *float32, dt float32) {
	*ca += dt * (pp.Influx(v) - (*ca-pp.Rest)/pp.Tau)
}

//////////////////////////////////////////////////////////////////////////////////////
//  SK

// SKParams are the kinetics of the small-conductance calcium-activated
// potassium channel, g = gbar * m, gated purely by intracellular calcium
// through a Hill function: minf = Ca^n / (Ca^n + EC50^n).  Underlies the
// medium afterhyperpolarization.
type SKParams struct {
	EC50 float32      `def:"0.3" desc:"calcium concentration of half activation, uM"`
	Hill float32      `def:"4" desc:"Hill coefficient of calcium binding"`
	MTau float32      `def:"6" desc:"activation time constant, msec"`
	Ca   CaPoolParams `view:"inline" desc:"channel-local calcium pool dynamics"`
	Q10  Q10Params    `view:"inline" desc:"temperature scaling of all rates"`
}

func (sp *SKParams) Defaults() {
	sp.EC50 = 0.3
	sp.Hill = 4
	sp.MTau = 6
	sp.Ca.Defaults()
	sp.Q10.Defaults()
}

func (sp *SKParams) Update(celsius float32) {
	sp.Q10.Update(celsius)
}

// MInf returns the steady-state activation at calcium concentration ca (uM).
func (sp *SKParams) MInf(ca float32) float32 {
	cn := math32.Pow(ca, sp.Hill)
	return cn / (cn + math32.Pow(sp.EC50, sp.Hill))
}

// G returns conductance gbar * m in nS.
func (sp *SKParams) G(gbar float32, st *State) float32 {
	return gbar * st.M
}

// UpdateState advances the calcium pool and m one forward-Euler step.
func (sp *SKParams) UpdateState(v float32, st *State, dt float32) {
	sp.Ca.UpdateCa(v, &st.Ca, dt)
	st.M += dt * sp.Q10.Scale * (sp.MInf(st.Ca) - st.M) / sp.MTau
}

// InitState sets the calcium pool to rest and m to its steady state there.
func (sp *SKParams) InitState(v float32, st *State) {
	st.Ca = sp.Ca.Rest
	st.M = sp.MInf(st.Ca)
	st.H = 1
}

//////////////////////////////////////////////////////////////////////////////////////
//  BK

// BKParams are the kinetics of the big-conductance calcium- and
// voltage-activated potassium channel, g = gbar * m.  The voltage
// half-activation point shifts leftward (more excitable) as intracellular
// calcium rises: vhalf(Ca) = VHalf0 - CaShift * ln(Ca / CaRef).  Underlies
// fast spike repolarization and the fast afterhyperpolarization.
type BKParams struct {
	VHalf0  float32      `def:"-20" desc:"voltage half point at the reference calcium concentration, mV"`
	K       float32      `def:"7" desc:"voltage slope, mV"`
	CaShift float32      `def:"15" desc:"leftward half-point shift per e-fold calcium increase, mV"`
	CaRef   float32      `def:"1" desc:"reference calcium concentration, uM"`
	CaMin   float32      `def:"0.001" desc:"floor on calcium used in the shift, to keep the log bounded, uM"`
	MTau    float32      `def:"1" desc:"activation time constant, msec"`
	Ca      CaPoolParams `view:"inline" desc:"channel-local calcium pool dynamics"`
	Q10     Q10Params    `view:"inline" desc:"temperature scaling of all rates"`
}

func (bp *BKParams) Defaults() {
	bp.VHalf0 = -20
	bp.K = 7
	bp.CaShift = 15
	bp.CaRef = 1
	bp.CaMin = 0.001
	bp.MTau = 1
	bp.Ca.Defaults()
	bp.Q10.Defaults()
}

func (bp *BKParams) Update(celsius float32) {
	bp.Q10.Update(celsius)
}

// VHalf returns the calcium-shifted voltage half point at ca (uM).
func (bp *BKParams) VHalf(ca float32) float32 {
	return bp.VHalf0 - bp.CaShift*math32.Log(math32.Max(ca, bp.CaMin)/bp.CaRef)
}

// MInf returns the steady-state activation at v and calcium ca.
func (bp *BKParams) MInf(v, ca float32) float32 {
	return Sigmoid(v, bp.VHalf(ca), bp.K)
}

// G returns conductance gbar * m in nS.
func (bp *BKParams) G(gbar float32, st *State) float32 {
	return gbar * st.M
}

// UpdateState advances the calcium pool and m one forward-Euler step.
func (bp *BKParams) UpdateState(v float32, st *State, dt float32) {
	bp.Ca.UpdateCa(v, &st.Ca, dt)
	st.M += dt * bp.Q10.Scale * (bp.MInf(v, st.Ca) - st.M) / bp.MTau
}

// InitState sets the calcium pool to rest and m to its steady state there.
func (bp *BKParams) InitState(v float32, st *State) {
	st.Ca = bp.Ca.Rest
	st.M = bp.MInf(v, st.Ca)
	st.H = 1
}
