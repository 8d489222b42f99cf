// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package chans provides the ion-channel model library for the compartmental
cable engine: voltage-gated (Na, K, Ca families), calcium-activated (SK, BK),
hyperpolarization-activated (HCN) and ligand-gated (NMDA) conductances.

Channels are pure functions over explicit gating state: conductance never
mutates state, and the state update is an explicit forward-Euler step over
either alpha/beta rate constants or steady-state/time-constant kinetics.
No channel holds shared mutable state, so evaluation is safe to run in
parallel across compartments and neurons without any synchronization.

The set of channel kinds is closed: dispatch is a switch over ChanKind
rather than an interface, keeping the hot integration loop free of virtual
calls.  Adding a channel means adding a kind and a case, not a new
implementation behind an interface.
*/
package chans

import (
	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// ChanKind is the closed set of ion-channel model kinds.
type ChanKind int32

//go:generate stringer -type=ChanKind

var KiT_ChanKind = kit.Enums.AddEnum(ChanKindN, kit.NotBitFlag, nil)

func (ev ChanKind) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *ChanKind) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// Leak is the voltage-independent leak conductance -- normally expressed
	// through the compartment's own leak parameters, present here so every
	// conductance in the engine shares one kind space.
	Leak ChanKind = iota

	// NaHH is the classic Hodgkin-Huxley transient sodium channel (m^3 h).
	NaHH

	// KDr is the delayed-rectifier potassium channel (n^4).
	KDr

	// KA is the fast-inactivating A-type potassium channel (m^3 h).
	KA

	// KM is the slow non-inactivating M-type potassium current (m).
	KM

	// CaL is the L-type high-voltage-activated calcium channel (m^2).
	CaL

	// CaN is the N-type high-voltage-activated calcium channel (m^2 h).
	CaN

	// CaPQ is the P/Q-type high-voltage-activated calcium channel (m).
	CaPQ

	// CaT is the low-threshold transient (T-type) calcium channel (m^2 h).
	CaT

	// SK is the small-conductance calcium-activated potassium channel,
	// gated purely by intracellular calcium.
	SK

	// BK is the big-conductance calcium- and voltage-activated potassium
	// channel -- its voltage threshold shifts with intracellular calcium.
	BK

	// HCN is the hyperpolarization-activated cation current (Ih).
	HCN

	// NMDA is the ligand-gated, voltage-dependent-Mg2+-blocked NMDA
	// receptor channel.
	NMDA

	ChanKindN
)

// State is the gating-variable tuple for one (compartment, channel) slot.
// M and H are dimensionless open / available fractions in [0,1] -- values
// outside that range indicate a modeling or step-size error and are never
// produced by the kinetics at steady state.  Ca is the channel-local
// intracellular calcium concentration in uM, used only by the
// calcium-activated kinds.
type State struct {
	M  float32 `desc:"activation gating variable, fraction of open gates in [0,1]"`
	H  float32 `desc:"inactivation gating variable, fraction of available gates in [0,1] -- 1 for non-inactivating channels"`
	Ca float32 `desc:"intracellular calcium concentration in uM, for calcium-activated channels only"`
}

// Chan is one channel-density entry attached to a compartment.
// Gbar is the total maximal conductance for that compartment
// (conductance density times membrane surface area, fixed at build time);
// GScale is a runtime multiplicative scale factor, the hook through which
// pharmacology / receptor models modulate a channel without the engine
// tracking why.
type Chan struct {
	Kind   ChanKind `desc:"which channel model this entry uses"`
	Gbar   float32  `desc:"maximal conductance in nS = density x compartment surface area, computed at build time"`
	GScale float32  `def:"1" desc:"multiplicative conductance scale factor, set by external modulators (pharmacology), 1 = no modulation"`
	Lig    float32  `desc:"neurotransmitter / ligand concentration in uM, for ligand-gated kinds (NMDA) -- set by external collaborators before each step"`
}

//////////////////////////////////////////////////////////////////////////////////////
//  Params

// Reversal potentials in mV for each transported ion species.
const (
	ErevNa   = 50
	ErevK    = -90
	ErevCa   = 120
	ErevLeak = -70
	ErevHCN  = -30
	ErevNMDA = 0
)

// Params aggregates the kinetic parameters for every channel kind, plus the
// simulation temperature.  One Params is shared read-only by all
// compartments of a neuron (or a whole population) -- it is never mutated
// during stepping.
type Params struct {
	Celsius float32     `def:"35" desc:"simulation temperature in degrees C -- drives Q10 rate scaling"`
	Na      NaParams    `view:"inline" desc:"transient sodium channel kinetics"`
	Kdr     KdrParams   `view:"inline" desc:"delayed-rectifier potassium kinetics"`
	AK      KAParams    `view:"inline" desc:"A-type potassium kinetics"`
	MK      KMParams    `view:"inline" desc:"M-type potassium kinetics"`
	CaLP    CaHVAParams `view:"inline" desc:"L-type calcium kinetics"`
	CaNP    CaHVAParams `view:"inline" desc:"N-type calcium kinetics"`
	CaPQP   CaHVAParams `view:"inline" desc:"P/Q-type calcium kinetics"`
	CaTP    CaTParams   `view:"inline" desc:"T-type calcium kinetics"`
	SKP     SKParams    `view:"inline" desc:"SK calcium-activated potassium kinetics"`
	BKP     BKParams    `view:"inline" desc:"BK calcium- and voltage-activated potassium kinetics"`
	Ih      HCNParams   `view:"inline" desc:"HCN / Ih kinetics"`
	NMDAP   NMDAParams  `view:"inline" desc:"NMDA receptor channel kinetics"`
}

func (cp *Params) Defaults() {
	cp.Celsius = 35
	cp.Na.Defaults()
	cp.Kdr.Defaults()
	cp.AK.Defaults()
	cp.MK.Defaults()
	cp.CaLP.DefaultsL()
	cp.CaNP.DefaultsN()
	cp.CaPQP.DefaultsPQ()
	cp.CaTP.Defaults()
	cp.SKP.Defaults()
	cp.BKP.Defaults()
	cp.Ih.Defaults()
	cp.NMDAP.Defaults()
	cp.Update()
}

// Update precomputes all derived rate factors (Q10 scales) for the current
// temperature.  Must be called after any parameter change.
func (cp *Params) Update() {
	cp.Na.Update(cp.Celsius)
	cp.Kdr.Update(cp.Celsius)
	cp.AK.Update(cp.Celsius)
	cp.MK.Update(cp.Celsius)
	cp.CaLP.Update(cp.Celsius)
	cp.CaNP.Update(cp.Celsius)
	cp.CaPQP.Update(cp.Celsius)
	cp.CaTP.Update(cp.Celsius)
	cp.SKP.Update(cp.Celsius)
	cp.BKP.Update(cp.Celsius)
	cp.Ih.Update(cp.Celsius)
	cp.NMDAP.Update(cp.Celsius)
}

// Erev returns the reversal potential in mV for the given channel kind.
// For the calcium-activated potassium kinds the apparent threshold shift
// with calcium is carried in the gating state, not here.
func (cp *Params) Erev(kind ChanKind) float32 {
	switch kind {
	case NaHH:
		return ErevNa
	case KDr, KA, KM, SK, BK:
		return ErevK
	case CaL, CaN, CaPQ, CaT:
		return ErevCa
	case HCN:
		return ErevHCN
	case NMDA:
		return ErevNMDA
	default:
		return ErevLeak
	}
}

// G returns the instantaneous conductance in nS of the given channel entry
// at membrane potential v (mV) and gating state st.  Pure: never mutates
// state, never fails.
func (cp *Params) G(ch *Chan, v float32, st *State) float32 {
	gbar := ch.Gbar * ch.GScale
	switch ch.Kind {
	case NaHH:
		return cp.Na.G(gbar, st)
	case KDr:
		return cp.Kdr.G(gbar, st)
	case KA:
		return cp.AK.G(gbar, st)
	case KM:
		return cp.MK.G(gbar, st)
	case CaL:
		return cp.CaLP.G(gbar, st)
	case CaN:
		return cp.CaNP.G(gbar, st)
	case CaPQ:
		return cp.CaPQP.G(gbar, st)
	case CaT:
		return cp.CaTP.G(gbar, st)
	case SK:
		return cp.SKP.G(gbar, st)
	case BK:
		return cp.BKP.G(gbar, st)
	case HCN:
		return cp.Ih.G(gbar, st)
	case NMDA:
		return cp.NMDAP.G(gbar, v, ch.Lig, st)
	default: // Leak
		return gbar
	}
}

// UpdateState advances the gating state of the given channel entry by one
// explicit forward-Euler step of dt msec, using membrane potential v (mV).
// The result is not clamped: the caller is responsible for a dt small
// enough relative to the channel's fastest time constant.
func (cp *Params) UpdateState(ch *Chan, v float32, st *State, dt float32) {
	switch ch.Kind {
	case NaHH:
		cp.Na.UpdateState(v, st, dt)
	case KDr:
		cp.Kdr.UpdateState(v, st, dt)
	case KA:
		cp.AK.UpdateState(v, st, dt)
	case KM:
		cp.MK.UpdateState(v, st, dt)
	case CaL:
		cp.CaLP.UpdateState(v, st, dt)
	case CaN:
		cp.CaNP.UpdateState(v, st, dt)
	case CaPQ:
		cp.CaPQP.UpdateState(v, st, dt)
	case CaT:
		cp.CaTP.UpdateState(v, st, dt)
	case SK:
		cp.SKP.UpdateState(v, st, dt)
	case BK:
		cp.BKP.UpdateState(v, st, dt)
	case HCN:
		cp.Ih.UpdateState(v, st, dt)
	case NMDA:
		cp.NMDAP.UpdateState(v, ch.Lig, st, dt)
	}
}

// InitState initializes the gating state of the given kind to its steady
// state at membrane potential v (mV), so that neurons start at equilibrium.
func (cp *Params) InitState(kind ChanKind, v float32, st *State) {
	st.M = 0
	st.H = 1
	st.Ca = 0
	switch kind {
	case NaHH:
		cp.Na.InitState(v, st)
	case KDr:
		cp.Kdr.InitState(v, st)
	case KA:
		cp.AK.InitState(v, st)
	case KM:
		cp.MK.InitState(v, st)
	case CaL:
		cp.CaLP.InitState(v, st)
	case CaN:
		cp.CaNP.InitState(v, st)
	case CaPQ:
		cp.CaPQP.InitState(v, st)
	case CaT:
		cp.CaTP.InitState(v, st)
	case SK:
		cp.SKP.InitState(v, st)
	case BK:
		cp.BKP.InitState(v, st)
	case HCN:
		cp.Ih.InitState(v, st)
	case NMDA:
		// starts fully unbound; ligand drives binding during stepping
		st.M = 0
	}
}

// StateInRange reports whether all gating variables of st are finite and
// within [0,1] (Ca is only checked for being finite and non-negative).
// Used by post-step validation -- the integrator itself never checks.
func StateInRange(st *State) bool {
	if math32.IsNaN(st.M) || st.M < 0 || st.M > 1 {
		return false
	}
	if math32.IsNaN(st.H) || st.H < 0 || st.H > 1 {
		return false
	}
	if math32.IsNaN(st.Ca) || st.Ca < 0 {
		return false
	}
	return true
}
