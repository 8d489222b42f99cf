// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"github.com/chewxy/math32"
)

// LinExpRate computes the linear-over-exponential rate function
// a * (v - vh) / (1 - exp(-(v - vh)/k)) used in Hodgkin-Huxley style
// alpha / beta rate constants, guarding the removable singularity at v = vh.
// Units: a in 1/(msec*mV), v, vh, k in mV, result in 1/msec.
func LinExpRate(a, v, vh, k float32) float32 {
	x := v - vh
	if math32.Abs(x/k) < 1e-4 {
		// first-order expansion around the singularity
		return a * k * (1 + x/(2*k))
	}
	return a * x / (1 - math32.Exp(-x/k))
}

// ExpRate computes the exponential rate function a * exp((v - vh)/k),
// in 1/msec.  Negative k gives rates that grow with hyperpolarization.
func ExpRate(a, v, vh, k float32) float32 {
	return a * math32.Exp((v-vh)/k)
}

// Sigmoid computes the Boltzmann sigmoid 1 / (1 + exp(-(v - vh)/k)).
// Positive k yields a function increasing in v (activation),
// negative k a decreasing one (inactivation).
func Sigmoid(v, vh, k float32) float32 {
	return 1 / (1 + math32.Exp(-(v-vh)/k))
}

//////////////////////////////////////////////////////////////////////////////////////
//  Q10Params

// Q10Params implements temperature correction of channel rate constants:
// every rate (equivalently, the inverse of every time constant) of a channel
// that declares a Q10 is multiplied by Q10^((T - RefC)/10).  The scaling is
// strictly multiplicative and is applied uniformly to all rates of a given
// channel, preserving steady-state values while compressing time constants.
type Q10Params struct {
	Q10   float32 `def:"3" desc:"fold-change in rates per 10 degrees C"`
	RefC  float32 `desc:"reference temperature in degrees C at which the published rate constants were measured"`
	Scale float32 `view:"-" desc:"precomputed rate multiplier = Q10^((T-RefC)/10) -- set by Update"`
}

func (qp *Q10Params) Defaults() {
	qp.Q10 = 3
	qp.RefC = 23
	qp.Scale = 1
}

// Update precomputes the rate multiplier for the given simulation
// temperature (degrees C).  Must be called after any parameter change.
func (qp *Q10Params) Update(celsius float32) {
	qp.Scale = math32.Pow(qp.Q10, (celsius-qp.RefC)/10)
}
