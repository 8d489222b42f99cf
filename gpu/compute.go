// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/goki/mat32"

	"github.com/emer/cable/cable"
	"github.com/emer/cable/chans"
)

//gosl: start hhpop

// Unit is the state of one point neuron on the GPU: a single
// Hodgkin-Huxley compartment, 32 bytes, 16-byte aligned.
type Unit struct {
	V     float32 `desc:"membrane potential, mV"`
	M     float32 `desc:"Na activation gate"`
	H     float32 `desc:"Na inactivation gate"`
	N     float32 `desc:"K delayed-rectifier gate"`
	Iext  float32 `desc:"external injected current, pA"`
	Spike float32 `desc:"1 if V crossed SpikeThr on the last step, else 0"`
	Pad1  float32
	Pad2  float32
}

// Consts are the shared integration constants, uniform across the
// population, 48 bytes, 16-byte aligned.
type Consts struct {
	Dt       float32 `desc:"integration step size, msec"`
	GbarNa   float32 `desc:"max Na conductance, nS"`
	GbarK    float32 `desc:"max K delayed-rectifier conductance, nS"`
	GLeak    float32 `desc:"leak conductance, nS"`
	ENa      float32 `desc:"Na reversal potential, mV"`
	EK       float32 `desc:"K reversal potential, mV"`
	ELeak    float32 `desc:"leak reversal potential, mV"`
	Cm       float32 `desc:"membrane capacitance, pF"`
	SpikeThr float32 `desc:"spike detection threshold, mV"`
	NUnits   uint32  `desc:"number of units -- lanes at or past this index do nothing"`
	Pad1     float32
	Pad2     float32
}

// LinExpRate is the singularity-guarded a*(v-vh)/(1-exp(-(v-vh)/k))
// rate function, mirroring chans.LinExpRate.
func (cs *Consts) LinExpRate(a, v, vh, k float32) float32 {
	x := v - vh
	if mat32.Abs(x/k) < 1e-4 {
		return a * k * (1 + x/(2*k))
	}
	return a * x / (1 - mat32.FastExp(-x/k))
}

// StepUnit advances one unit by one Dt step: derivative from the
// pre-step voltage, gates at the pre-step voltage, then commit, exactly
// as the compartmental integrator does on the CPU.
func (cs *Consts) StepUnit(u *Unit) {
	v := u.V
	am := cs.LinExpRate(0.1, v, -40, 10)
	bm := mat32.Min(4*mat32.FastExp((v+65)/-18), 18)
	ah := 0.07 * mat32.FastExp((v+65)/-20)
	bh := 1 / (1 + mat32.FastExp(-(v+35)/10))
	an := cs.LinExpRate(0.01, v, -55, 10)
	bn := 0.125 * mat32.FastExp((v+65)/-80)

	gNa := cs.GbarNa * u.M * u.M * u.M * u.H
	n2 := u.N * u.N
	gK := cs.GbarK * n2 * n2
	iIon := gNa*(v-cs.ENa) + gK*(v-cs.EK) + cs.GLeak*(v-cs.ELeak)
	dvdt := (-iIon + u.Iext) / cs.Cm

	u.M += cs.Dt * (am*(1-u.M) - bm*u.M)
	u.H += cs.Dt * (ah*(1-u.H) - bh*u.H)
	u.N += cs.Dt * (an*(1-u.N) - bn*u.N)
	u.V = v + dvdt*cs.Dt
	if u.V >= cs.SpikeThr {
		u.Spike = 1
	} else {
		u.Spike = 0
	}
}

//gosl: end hhpop

// note: only the step code is in the shader -- all init is done CPU-side,
// from the same morphology builder the CPU backend uses.

// Defaults derives the constants from the standard single-compartment
// morphology, so CPU and GPU point neurons are parameter-identical.
func (cs *Consts) Defaults(n int, dt float32) error {
	nr, err := cable.NewPointNeuron()
	if err != nil {
		return err
	}
	sc := nr.Comp(nr.Root)
	cs.Dt = dt
	cs.GbarNa = sc.ChanByKind(chans.NaHH).Gbar
	cs.GbarK = sc.ChanByKind(chans.KDr).Gbar
	cs.GLeak = sc.GLeak
	cs.ENa = chans.ErevNa
	cs.EK = chans.ErevK
	cs.ELeak = sc.ELeak
	cs.Cm = sc.Cm
	cs.SpikeThr = nr.SpikeThr
	cs.NUnits = uint32(n)
	return nil
}

// InitUnit sets a unit to rest: V at the leak-complex resting potential,
// gates at steady state there, no input, no spike.
func (cs *Consts) InitUnit(u *Unit) {
	v := float32(chans.ErevLeak)
	var na chans.NaParams
	var kdr chans.KdrParams
	na.Defaults()
	kdr.Defaults()
	var st chans.State
	na.InitState(v, &st)
	u.M, u.H = st.M, st.H
	kdr.InitState(v, &st)
	u.N = st.M
	u.V = v
	u.Iext = 0
	u.Spike = 0
	u.Pad1 = 0
	u.Pad2 = 0
}
