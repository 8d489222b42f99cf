// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cable implements the compartmental cable-equation engine: a neuron
is a tree of electrically coupled cylindrical compartments held in an
index-addressed arena, advanced by a two-phase explicit-Euler integrator.

Within one step, all axial and channel currents are computed from the same
pre-step voltage snapshot (phase 1), and only then are voltages and gating
states committed (phase 2), so the result is independent of the order in
which compartments are visited.  Each neuron exclusively owns its
compartment and state arrays: nothing is shared across neurons, which makes
population stepping embarrassingly parallel (see the pop and gpu packages).
*/
package cable

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"

	"github.com/emer/cable/chans"
)

// NoParent marks the root compartment's parent index.
const NoParent = int32(-1)

// nAtoPA converts axial current in nA (mV / MOhm) to pA.
const nAtoPA = 1000

// Neuron is one multi-compartment neuron: the compartment arena with
// parallel gating-state arrays, per-compartment input-current slots, and
// the shared channel kinetics parameters.  Construct with NewNeuron (or a
// morphology builder in morph.go), add compartments, then call Build --
// configuration errors are rejected there, never at step time.
type Neuron struct {
	Comps  []Compartment   `desc:"compartment arena -- indices are stable slots for the life of the neuron"`
	States [][]chans.State `desc:"per-compartment gating states, one slot per channel entry, indexed identically to Comps"`
	Ext    []float32       `desc:"per-compartment external (injected) current, pA -- set by the caller before each step"`
	Syn    []float32       `desc:"per-compartment synaptic current, pA -- set by synapse models before each step"`

	Spiking  bool    `desc:"whether the root (soma) voltage is at/above SpikeThr after the last step -- flag only, no automatic reset"`
	SpikeThr float32 `def:"-20" desc:"soma spike detection threshold, mV"`
	Root     int32   `inactive:"+" desc:"arena index of the root compartment -- set by Build"`

	Mem  MembraneParams `view:"inline" desc:"passive membrane constants for deriving electrical parameters"`
	Chan chans.Params   `desc:"channel kinetics parameters, shared read-only by all compartments"`

	dVdt  []float32 `view:"-" desc:"phase-1 derivative scratch, mV/msec"`
	built bool      `view:"-"`
}

// NewNeuron returns a new empty neuron with default parameters.
func NewNeuron() *Neuron {
	nr := &Neuron{}
	nr.Defaults()
	return nr
}

func (nr *Neuron) Defaults() {
	nr.SpikeThr = -20
	nr.Root = NoParent
	nr.Mem.Defaults()
	nr.Chan.Defaults()
}

// NComps returns the number of compartments.
func (nr *Neuron) NComps() int {
	return len(nr.Comps)
}

// AddComp appends a compartment of the given kind and geometry, linked to
// the given parent arena index (NoParent for the root), and returns its
// arena index.  Channel densities are added on the returned compartment
// via AddChan before Build.
func (nr *Neuron) AddComp(kind CompKind, length, diam float32, parent int32) int32 {
	idx := int32(len(nr.Comps))
	cm := Compartment{Kind: kind, Parent: parent, ELeak: chans.ErevLeak, GLeakDens: 0.003}
	cm.Length = length
	cm.Diam = diam
	nr.Comps = append(nr.Comps, cm)
	return idx
}

// Comp returns the compartment at the given arena index.
func (nr *Neuron) Comp(idx int32) *Compartment {
	return &nr.Comps[idx]
}

// Build derives all electrical parameters and channel conductances from
// geometry and densities, derives the Children lists from the Parent links,
// validates the topology (exactly one root, connected, acyclic, valid
// channel kinds, positive geometry), allocates state and input arrays, and
// initializes all voltages and gating states to rest.  Must be called once
// before stepping; returns an error describing the first configuration
// problem found.
func (nr *Neuron) Build() error {
	n := len(nr.Comps)
	if n == 0 {
		return fmt.Errorf("cable.Neuron: no compartments")
	}
	nr.Chan.Update()
	nr.Root = NoParent
	for i := range nr.Comps {
		cm := &nr.Comps[i]
		if cm.Length <= 0 || cm.Diam <= 0 {
			return fmt.Errorf("cable.Neuron: compartment %d (%v) has non-positive geometry: length=%v diam=%v", i, cm.Kind, cm.Length, cm.Diam)
		}
		cm.SetGeom(cm.Length, cm.Diam, &nr.Mem)
		cm.Children = cm.Children[:0]
		if cm.Parent == NoParent {
			if nr.Root != NoParent {
				return fmt.Errorf("cable.Neuron: multiple root compartments: %d and %d", nr.Root, i)
			}
			nr.Root = int32(i)
			continue
		}
		if cm.Parent < 0 || int(cm.Parent) >= n {
			return fmt.Errorf("cable.Neuron: compartment %d parent index %d out of range", i, cm.Parent)
		}
		if cm.Parent == int32(i) {
			return fmt.Errorf("cable.Neuron: compartment %d is its own parent", i)
		}
	}
	if nr.Root == NoParent {
		return fmt.Errorf("cable.Neuron: no root compartment (parent = NoParent)")
	}
	for i := range nr.Comps {
		cm := &nr.Comps[i]
		if cm.Parent != NoParent {
			pc := &nr.Comps[cm.Parent]
			pc.Children = append(pc.Children, int32(i))
		}
	}
	// connectivity: every compartment must be reachable from the root --
	// with single-parent links this also rules out cycles
	seen := make([]bool, n)
	stack := []int32{nr.Root}
	nseen := 0
	for len(stack) > 0 {
		ci := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[ci] {
			return fmt.Errorf("cable.Neuron: cycle detected at compartment %d", ci)
		}
		seen[ci] = true
		nseen++
		stack = append(stack, nr.Comps[ci].Children...)
	}
	if nseen != n {
		return fmt.Errorf("cable.Neuron: %d of %d compartments not reachable from root", n-nseen, n)
	}
	// channel entries: density x area, unique kind per compartment
	for i := range nr.Comps {
		cm := &nr.Comps[i]
		cm.Chans = make([]chans.Chan, 0, len(cm.Dens))
		for _, cd := range cm.Dens {
			if cd.Kind < 0 || cd.Kind >= chans.ChanKindN {
				return fmt.Errorf("cable.Neuron: compartment %d references unknown channel kind %d", i, cd.Kind)
			}
			if cd.Density < 0 {
				return fmt.Errorf("cable.Neuron: compartment %d has negative density for %v", i, cd.Kind)
			}
			for _, ex := range cm.Chans {
				if ex.Kind == cd.Kind {
					return fmt.Errorf("cable.Neuron: compartment %d has duplicate channel kind %v", i, cd.Kind)
				}
			}
			cm.Chans = append(cm.Chans, chans.Chan{Kind: cd.Kind, Gbar: cd.Density * cm.Area, GScale: 1})
		}
	}
	nr.States = make([][]chans.State, n)
	for i := range nr.Comps {
		nr.States[i] = make([]chans.State, len(nr.Comps[i].Chans))
	}
	nr.Ext = make([]float32, n)
	nr.Syn = make([]float32, n)
	nr.dVdt = make([]float32, n)
	nr.built = true
	nr.InitVm(chans.ErevLeak)
	return nil
}

// InitVm sets every compartment's voltage to v and every gating state to
// its steady state at v, clears inputs and the spiking flag.
func (nr *Neuron) InitVm(v float32) {
	for i := range nr.Comps {
		cm := &nr.Comps[i]
		cm.Vm = v
		for j := range cm.Chans {
			nr.Chan.InitState(cm.Chans[j].Kind, v, &nr.States[i][j])
		}
		nr.Ext[i] = 0
		nr.Syn[i] = 0
	}
	nr.Spiking = false
}

// SetExt sets the external (injected) current for one compartment, in pA.
func (nr *Neuron) SetExt(idx int32, pa float32) {
	nr.Ext[idx] = pa
}

// SetSyn sets the synaptic current for one compartment, in pA.
func (nr *Neuron) SetSyn(idx int32, pa float32) {
	nr.Syn[idx] = pa
}

// Vm returns the membrane potential of the compartment at idx, in mV.
func (nr *Neuron) Vm(idx int32) float32 {
	return nr.Comps[idx].Vm
}

// SomaVm returns the root (soma) membrane potential, in mV.
func (nr *Neuron) SomaVm() float32 {
	return nr.Comps[nr.Root].Vm
}

// Voltages copies all compartment voltages into out, which must have
// length NComps.
func (nr *Neuron) Voltages(out []float32) error {
	if len(out) != len(nr.Comps) {
		return fmt.Errorf("cable.Neuron: Voltages output length %d != %d compartments", len(out), len(nr.Comps))
	}
	for i := range nr.Comps {
		out[i] = nr.Comps[i].Vm
	}
	return nil
}

// SetChanScale sets the pharmacological conductance scale factor for every
// channel entry of the given kind across all compartments.  The engine
// applies it multiplicatively and does not track why it changed.
func (nr *Neuron) SetChanScale(kind chans.ChanKind, scale float32) {
	for i := range nr.Comps {
		if ch := nr.Comps[i].ChanByKind(kind); ch != nil {
			ch.GScale = scale
		}
	}
}

// SetLigand sets the ligand concentration (uM) for every channel entry of
// the given ligand-gated kind across all compartments.
func (nr *Neuron) SetLigand(kind chans.ChanKind, lig float32) {
	for i := range nr.Comps {
		if ch := nr.Comps[i].ChanByKind(kind); ch != nil {
			ch.Lig = lig
		}
	}
}

//////////////////////////////////////////////////////////////////////////////////////
//  Post-step validation

// ValidParams are the sanity windows used by CheckState.  Divergence is
// never checked inline by the integrator (the dt / time-constant contract
// belongs to the caller); this is the explicit post-hoc validator.
type ValidParams struct {
	VmRange minmax.F32 `desc:"plausible membrane potential window, mV"`
	Gate    minmax.F32 `desc:"allowed gating-variable range"`
}

func (vp *ValidParams) Defaults() {
	vp.VmRange.Set(-120, 80)
	vp.Gate.Set(0, 1)
}

// CheckState validates all voltages and gating variables against the given
// windows (nil for defaults), returning an error naming the first
// out-of-range or non-finite value.  A failure here means the model or the
// step size is wrong, not that the engine can recover.
func (nr *Neuron) CheckState(vp *ValidParams) error {
	var def ValidParams
	if vp == nil {
		def.Defaults()
		vp = &def
	}
	for i := range nr.Comps {
		cm := &nr.Comps[i]
		if math32.IsNaN(cm.Vm) || math32.IsInf(cm.Vm, 0) {
			return fmt.Errorf("cable.Neuron: compartment %d Vm is not finite", i)
		}
		if !vp.VmRange.InRange(cm.Vm) {
			return fmt.Errorf("cable.Neuron: compartment %d Vm %v outside [%v, %v]", i, cm.Vm, vp.VmRange.Min, vp.VmRange.Max)
		}
		for j := range cm.Chans {
			st := &nr.States[i][j]
			if !chans.StateInRange(st) || !vp.Gate.InRange(st.M) || !vp.Gate.InRange(st.H) {
				return fmt.Errorf("cable.Neuron: compartment %d channel %v gating state out of range: %+v", i, cm.Chans[j].Kind, *st)
			}
		}
	}
	return nil
}
