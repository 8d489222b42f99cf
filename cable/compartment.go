// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cable

import (
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"

	"github.com/emer/cable/chans"
)

// CompKind is the anatomical kind of a compartment.
type CompKind int32

//go:generate stringer -type=CompKind

var KiT_CompKind = kit.Enums.AddEnum(CompKindN, kit.NotBitFlag, nil)

func (ev CompKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *CompKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Soma is the cell body -- the root compartment of every neuron.
	Soma CompKind = iota

	// Dend is a generic dendritic segment.
	Dend

	// ApicalDend is a segment of the apical dendritic tree.
	ApicalDend

	// BasalDend is a segment of the basal dendritic tree.
	BasalDend

	// Axon is an axonal segment.
	Axon

	// AIS is the axon initial segment, with high sodium channel density.
	AIS

	CompKindN
)

// MembraneParams are the passive membrane constants shared by all
// compartments of a neuron, used to derive per-compartment electrical
// parameters from geometry at build time.
type MembraneParams struct {
	CmSpec   float32 `def:"0.01" desc:"specific membrane capacitance, pF/um^2 (= 1 uF/cm^2)"`
	RhoAxial float32 `def:"1" desc:"intracellular (axial) resistivity, MOhm*um (= 100 Ohm*cm)"`
}

func (mp *MembraneParams) Defaults() {
	mp.CmSpec = 0.01
	mp.RhoAxial = 1
}

// ChanDens is one channel-density entry on a compartment: a channel kind
// and its conductance density.  Total channel conductance for the kind is
// density times compartment surface area, computed once at build time.
type ChanDens struct {
	Kind    chans.ChanKind `desc:"channel model kind"`
	Density float32        `desc:"conductance density, nS/um^2 (1 nS/um^2 = 100 mS/cm^2)"`
}

// Compartment is one cylindrical piece of membrane in the neuron's
// compartment arena.  All links are integer indices into the owning
// neuron's arrays -- there are no owning pointers.  Geometry-derived
// electrical parameters (Area, Cm, Raxial) and the built channel entries
// are computed once in Neuron.Build and fixed for the life of the neuron;
// only Vm changes during stepping.
type Compartment struct {
	Kind      CompKind `desc:"anatomical kind of this compartment"`
	Vm        float32  `desc:"membrane potential, mV -- updated every step"`
	Length    float32  `desc:"cylinder length, um"`
	Diam      float32  `desc:"cylinder diameter, um -- tapering branches set a smaller diameter per segment"`
	GLeakDens float32  `def:"0.003" desc:"leak conductance density, nS/um^2 (0.003 = 0.3 mS/cm^2)"`
	ELeak     float32  `desc:"leak reversal potential, mV"`

	GLeak  float32 `inactive:"+" desc:"leak conductance, nS = GLeakDens * Area -- derived at build"`
	Area   float32 `inactive:"+" desc:"surface area, um^2 = pi * diam * length -- derived at build"`
	Cm     float32 `inactive:"+" desc:"membrane capacitance, pF = CmSpec * Area -- derived at build"`
	Raxial float32 `inactive:"+" desc:"axial resistance to the parent compartment, MOhm = rho * length / (pi * r^2) -- derived at build"`

	Parent   int32   `desc:"arena index of the parent compartment, -1 for the root (soma)"`
	Children []int32 `desc:"arena indices of child compartments, in branch order -- derived at build from Parent links"`

	Dens  []ChanDens   `desc:"channel-density table, unique kind per entry"`
	Chans []chans.Chan `inactive:"+" desc:"built channel entries with absolute conductances -- derived at build"`
}

// SetGeom sets the geometry and computes the derived electrical parameters
// from the given membrane constants.
func (cm *Compartment) SetGeom(length, diam float32, mem *MembraneParams) {
	cm.Length = length
	cm.Diam = diam
	cm.Area = mat32.Pi * diam * length
	cm.Cm = mem.CmSpec * cm.Area
	cm.GLeak = cm.GLeakDens * cm.Area
	rad := diam / 2
	cm.Raxial = mem.RhoAxial * length / (mat32.Pi * rad * rad)
}

// AddChan adds a channel-density entry of the given kind.
func (cm *Compartment) AddChan(kind chans.ChanKind, density float32) {
	cm.Dens = append(cm.Dens, ChanDens{Kind: kind, Density: density})
}

// ChanByKind returns the built channel entry of the given kind, or nil.
func (cm *Compartment) ChanByKind(kind chans.ChanKind) *chans.Chan {
	for i := range cm.Chans {
		if cm.Chans[i].Kind == kind {
			return &cm.Chans[i]
		}
	}
	return nil
}
