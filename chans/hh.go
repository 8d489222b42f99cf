// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

//////////////////////////////////////////////////////////////////////////////////////
//  NaHH

// NaParams are the kinetics of the classic Hodgkin-Huxley transient sodium
// channel, g = gbar * m^3 * h, with alpha / beta rate-constant gating:
// dx/dt = alpha(v)*(1-x) - beta(v)*x.  Rate constants are the standard
// squid-axon forms shifted to a -65 mV resting potential, with Q10 scaling
// from the original 6.3 C recording temperature.
//
// The m deactivation rate is saturated at BetaMMax: the raw exponential
// grows without bound under hyperpolarization, where the squid-axon fits
// were never constrained, and an unbounded rate makes the fastest m time
// constant shorter than any usable explicit-Euler step.  The cap leaves the
// rate untouched above -92 mV and keeps alpha+beta <= 1/dt for dt up to
// 0.05 msec over the full -100..+60 mV range.
type NaParams struct {
	AlphaMA  float32   `def:"0.1" desc:"m activation alpha rate amplitude, 1/(msec*mV)"`
	AlphaMV  float32   `def:"-40" desc:"m activation alpha half point, mV"`
	AlphaMK  float32   `def:"10" desc:"m activation alpha slope, mV"`
	BetaMA   float32   `def:"4" desc:"m deactivation beta rate amplitude, 1/msec"`
	BetaMV   float32   `def:"-65" desc:"m deactivation beta half point, mV"`
	BetaMK   float32   `def:"-18" desc:"m deactivation beta slope, mV (negative: grows with hyperpolarization)"`
	BetaMMax float32   `def:"18" desc:"saturation ceiling on the m deactivation rate, 1/msec -- bounds the fastest m time constant under strong hyperpolarization"`
	AlphaHA  float32   `def:"0.07" desc:"h recovery alpha rate amplitude, 1/msec"`
	AlphaHV  float32   `def:"-65" desc:"h recovery alpha half point, mV"`
	AlphaHK  float32   `def:"-20" desc:"h recovery alpha slope, mV"`
	BetaHV   float32   `def:"-35" desc:"h inactivation beta half point, mV"`
	BetaHK   float32   `def:"10" desc:"h inactivation beta slope, mV"`
	Q10      Q10Params `view:"inline" desc:"temperature scaling of all rates"`
}

func (np *NaParams) Defaults() {
	np.AlphaMA = 0.1
	np.AlphaMV = -40
	np.AlphaMK = 10
	np.BetaMA = 4
	np.BetaMV = -65
	np.BetaMK = -18
	np.BetaMMax = 18
	np.AlphaHA = 0.07
	np.AlphaHV = -65
	np.AlphaHK = -20
	np.BetaHV = -35
	np.BetaHK = 10
	np.Q10.Defaults()
	np.Q10.RefC = 6.3
	// the classic rates are used as published: with Q10 = 3 from 6.3 C the
	// fastest rates become stiffer than explicit Euler at dt = 0.01 msec
	// can integrate.  Set Q10 explicitly for temperature studies, with a
	// correspondingly smaller dt.
	np.Q10.Q10 = 1
}

func (np *NaParams) Update(celsius float32) {
	np.Q10.Update(celsius)
}

// AlphaM returns the m-gate opening rate at v, in 1/msec (unscaled).
func (np *NaParams) AlphaM(v float32) float32 {
	return LinExpRate(np.AlphaMA, v, np.AlphaMV, np.AlphaMK)
}

// BetaM returns the m-gate closing rate at v, in 1/msec (unscaled),
// saturated at BetaMMax.
func (np *NaParams) BetaM(v float32) float32 {
	return math32.Min(ExpRate(np.BetaMA, v, np.BetaMV, np.BetaMK), np.BetaMMax)
}

// AlphaH returns the h-gate recovery rate at v, in 1/msec (unscaled).
func (np *NaParams) AlphaH(v float32) float32 {
	return ExpRate(np.AlphaHA, v, np.AlphaHV, np.AlphaHK)
}

// BetaH returns the h-gate inactivation rate at v, in 1/msec (unscaled).
func (np *NaParams) BetaH(v float32) float32 {
	return Sigmoid(v, np.BetaHV, np.BetaHK)
}

// G returns conductance gbar * m^3 * h in nS.
func (np *NaParams) G(gbar float32, st *State) float32 {
	return gbar * st.M * st.M * st.M * st.H
}

// UpdateState advances m and h one forward-Euler step of dt msec.
func (np *NaParams) UpdateState(v float32, st *State, dt float32) {
	q := np.Q10.Scale
	am, bm := q*np.AlphaM(v), q*np.BetaM(v)
	ah, bh := q*np.AlphaH(v), q*np.BetaH(v)
	st.M += dt * (am*(1-st.M) - bm*st.M)
	st.H += dt * (ah*(1-st.H) - bh*st.H)
}

// InitState sets m and h to steady state at v: x = alpha / (alpha + beta).
func (np *NaParams) InitState(v float32, st *State) {
	am, bm := np.AlphaM(v), np.BetaM(v)
	ah, bh := np.AlphaH(v), np.BetaH(v)
	st.M = am / (am + bm)
	st.H = ah / (ah + bh)
}

//////////////////////////////////////////////////////////////////////////////////////
//  KDr

// KdrParams are the kinetics of the delayed-rectifier potassium channel,
// g = gbar * n^4, with the standard Hodgkin-Huxley alpha / beta rates
// (the single gating variable n is stored in State.M).
type KdrParams struct {
	AlphaNA float32   `def:"0.01" desc:"n activation alpha rate amplitude, 1/(msec*mV)"`
	AlphaNV float32   `def:"-55" desc:"n activation alpha half point, mV"`
	AlphaNK float32   `def:"10" desc:"n activation alpha slope, mV"`
	BetaNA  float32   `def:"0.125" desc:"n deactivation beta rate amplitude, 1/msec"`
	BetaNV  float32   `def:"-65" desc:"n deactivation beta half point, mV"`
	BetaNK  float32   `def:"-80" desc:"n deactivation beta slope, mV"`
	Q10     Q10Params `view:"inline" desc:"temperature scaling of all rates"`
}

func (kp *KdrParams) Defaults() {
	kp.AlphaNA = 0.01
	kp.AlphaNV = -55
	kp.AlphaNK = 10
	kp.BetaNA = 0.125
	kp.BetaNV = -65
	kp.BetaNK = -80
	kp.Q10.Defaults()
	kp.Q10.RefC = 6.3
	kp.Q10.Q10 = 1 // as for NaParams: published rates used directly
}

func (kp *KdrParams) Update(celsius float32) {
	kp.Q10.Update(celsius)
}

// AlphaN returns the n-gate opening rate at v, in 1/msec (unscaled).
func (kp *KdrParams) AlphaN(v float32) float32 {
	return LinExpRate(kp.AlphaNA, v, kp.AlphaNV, kp.AlphaNK)
}

// BetaN returns the n-gate closing rate at v, in 1/msec (unscaled).
func (kp *KdrParams) BetaN(v float32) float32 {
	return ExpRate(kp.BetaNA, v, kp.BetaNV, kp.BetaNK)
}

// G returns conductance gbar * n^4 in nS.
func (kp *KdrParams) G(gbar float32, st *State) float32 {
	n2 := st.M * st.M
	return gbar * n2 * n2
}

// UpdateState advances n one forward-Euler step of dt msec.
func (kp *KdrParams) UpdateState(v float32, st *State, dt float32) {
	q := kp.Q10.Scale
	an, bn := q*kp.AlphaN(v), q*kp.BetaN(v)
	st.M += dt * (an*(1-st.M) - bn*st.M)
}

// InitState sets n to steady state at v.
func (kp *KdrParams) InitState(v float32, st *State) {
	an, bn := kp.AlphaN(v), kp.BetaN(v)
	st.M = an / (an + bn)
	st.H = 1
}
