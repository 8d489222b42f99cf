// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cable

import (
	"github.com/goki/ki/ints"

	"github.com/emer/cable/chans"
)

// morph.go provides standard morphology builders.  Morphology is otherwise
// an external concern: collaborators can construct arbitrary trees through
// AddComp / AddChan and Build.

// NewPointNeuron returns a built single-compartment Hodgkin-Huxley neuron:
// a 20 um soma with the classic Na / delayed-rectifier complement and a
// leak reversal tuned so the resting potential settles near -70 mV.
// This is the CPU-side equivalent of the GPU point-neuron record.
func NewPointNeuron() (*Neuron, error) {
	nr := NewNeuron()
	si := nr.AddComp(Soma, 20, 20, NoParent)
	sc := nr.Comp(si)
	sc.ELeak = -63 // rest emerges at ~-70 with the resting K conductance
	sc.AddChan(chans.NaHH, 1.2)
	sc.AddChan(chans.KDr, 0.36)
	if err := nr.Build(); err != nil {
		return nil, err
	}
	return nr, nil
}

// NewBallAndStick returns a built soma plus a single unbranched chain of
// nDend passive dendritic compartments -- the minimal multi-compartment
// morphology, useful for testing voltage attenuation along the cable.
func NewBallAndStick(nDend int) (*Neuron, error) {
	nr := NewNeuron()
	si := nr.AddComp(Soma, 20, 20, NoParent)
	sc := nr.Comp(si)
	sc.ELeak = -63
	sc.AddChan(chans.NaHH, 1.2)
	sc.AddChan(chans.KDr, 0.36)
	parent := si
	for d := 0; d < nDend; d++ {
		parent = nr.AddComp(Dend, 50, 2, parent)
	}
	if err := nr.Build(); err != nil {
		return nil, err
	}
	return nr, nil
}

// PyramidalParams configure the pyramidal-cell-like morphology builder.
type PyramidalParams struct {
	NApical  int     `def:"100" desc:"total apical compartments: a tapering trunk for the first half, then two equal oblique branches"`
	NBasal   int     `def:"50" desc:"total basal compartments, split over NBasalBr branches off the soma"`
	NBasalBr int     `def:"5" desc:"number of basal branches"`
	SegLen   float32 `def:"10" desc:"length of each dendritic segment, um"`
	TrunkDi  float32 `def:"4" desc:"apical trunk diameter at the soma, um"`
	TipDi    float32 `def:"0.8" desc:"dendritic diameter at branch tips, um -- taper is linear per segment"`
	BasalDi  float32 `def:"1.5" desc:"basal branch diameter, um"`
}

func (pp *PyramidalParams) Defaults() {
	pp.NApical = 100
	pp.NBasal = 50
	pp.NBasalBr = 5
	pp.SegLen = 10
	pp.TrunkDi = 4
	pp.TipDi = 0.8
	pp.BasalDi = 1.5
}

// NewPyramidal returns a built pyramidal-cell-like neuron: soma with the
// full somatic channel complement, an axon initial segment with high Na
// density, a tapering apical trunk that bifurcates into two oblique
// branches carrying KA / CaT / HCN / NMDA, and several basal branches with
// KA / NMDA.  nil params use defaults (1 soma + 100 apical + 50 basal +
// 1 AIS compartments).
func NewPyramidal(pp *PyramidalParams) (*Neuron, error) {
	var def PyramidalParams
	if pp == nil {
		def.Defaults()
		pp = &def
	}
	nr := NewNeuron()

	si := nr.AddComp(Soma, 25, 25, NoParent)
	sc := nr.Comp(si)
	sc.ELeak = -63
	sc.AddChan(chans.NaHH, 0.8)
	sc.AddChan(chans.KDr, 0.3)
	sc.AddChan(chans.KM, 0.004)
	sc.AddChan(chans.CaL, 0.003)
	sc.AddChan(chans.SK, 0.003)
	sc.AddChan(chans.BK, 0.005)

	ai := nr.AddComp(AIS, 30, 1.5, si)
	ac := nr.Comp(ai)
	ac.AddChan(chans.NaHH, 3)
	ac.AddChan(chans.KDr, 1)

	// apical: tapering trunk, then two equal oblique branches
	nTrunk := pp.NApical / 2
	nObliq := pp.NApical - nTrunk
	addBranch := func(kind CompKind, parent int32, n int, d0, d1 float32, apical bool) int32 {
		for s := 0; s < n; s++ {
			frac := float32(s) / float32(ints.MaxInt(n-1, 1))
			di := d0 + frac*(d1-d0)
			ci := nr.AddComp(kind, pp.SegLen, di, parent)
			cc := nr.Comp(ci)
			cc.AddChan(chans.KA, 0.01)
			cc.AddChan(chans.NMDA, 0.001)
			if apical {
				cc.AddChan(chans.CaT, 0.002)
				cc.AddChan(chans.HCN, 0.0005)
			}
			parent = ci
		}
		return parent
	}
	trunkEnd := addBranch(ApicalDend, si, nTrunk, pp.TrunkDi, (pp.TrunkDi+pp.TipDi)/2, true)
	nOb1 := nObliq / 2
	addBranch(ApicalDend, trunkEnd, nOb1, (pp.TrunkDi+pp.TipDi)/2, pp.TipDi, true)
	addBranch(ApicalDend, trunkEnd, nObliq-nOb1, (pp.TrunkDi+pp.TipDi)/2, pp.TipDi, true)

	// basal: NBasalBr branches straight off the soma
	per := pp.NBasal / pp.NBasalBr
	rem := pp.NBasal - per*pp.NBasalBr
	for b := 0; b < pp.NBasalBr; b++ {
		n := per
		if b < rem {
			n++
		}
		addBranch(BasalDend, si, n, pp.BasalDi, pp.TipDi, false)
	}

	if err := nr.Build(); err != nil {
		return nil, err
	}
	return nr, nil
}
