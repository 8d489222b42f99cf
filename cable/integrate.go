// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cable

// Step advances the whole compartmental tree by one explicit-Euler step of
// dt msec, as a two-phase update.
//
// Phase 1 computes every compartment's total membrane current and voltage
// derivative from the shared pre-step voltage snapshot: leak, the summed
// ionic channel currents, axial currents to parent and children through
// the child-side axial resistances, and the external + synaptic input.
// Phase 2 then advances each channel's gating state at the pre-step
// voltage and commits the new voltages.  Because no voltage is mutated
// until every derivative has been computed, the result is independent of
// compartment visit order.
//
// The update is atomic from the caller's point of view: there is no error
// path, and no partially advanced tree is ever observable.  No numerical
// stability check is performed here -- dt must be small relative to the
// fastest channel time constant (see CheckState for post-hoc validation).
func (nr *Neuron) Step(dt float32) {
	// phase 1: derivatives from the pre-step snapshot
	for i := range nr.Comps {
		cm := &nr.Comps[i]
		v := cm.Vm
		iLeak := cm.GLeak * (v - cm.ELeak)
		iIon := float32(0)
		for j := range cm.Chans {
			ch := &cm.Chans[j]
			iIon += nr.Chan.G(ch, v, &nr.States[i][j]) * (v - nr.Chan.Erev(ch.Kind))
		}
		iAx := float32(0)
		if cm.Parent != NoParent {
			iAx += nAtoPA * (nr.Comps[cm.Parent].Vm - v) / cm.Raxial
		}
		for _, ci := range cm.Children {
			cc := &nr.Comps[ci]
			iAx += nAtoPA * (cc.Vm - v) / cc.Raxial
		}
		iIn := nr.Ext[i] + nr.Syn[i]
		nr.dVdt[i] = (-iLeak - iIon + iAx + iIn) / cm.Cm
	}
	// phase 2: gating at pre-step voltage, then commit voltages
	for i := range nr.Comps {
		cm := &nr.Comps[i]
		v := cm.Vm
		for j := range cm.Chans {
			nr.Chan.UpdateState(&cm.Chans[j], v, &nr.States[i][j], dt)
		}
		cm.Vm = v + nr.dVdt[i]*dt
	}
	// spike detection on the root only -- flag, never a voltage reset:
	// for multi-compartment neurons the Na/K complement repolarizes
	nr.Spiking = nr.Comps[nr.Root].Vm >= nr.SpikeThr
}

// StepN advances the tree n steps of dt msec each.
func (nr *Neuron) StepN(n int, dt float32) {
	for i := 0; i < n; i++ {
		nr.Step(dt)
	}
}
