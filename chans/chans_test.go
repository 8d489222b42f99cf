// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chans

import (
	"testing"

	"github.com/chewxy/math32"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

// gateKinds are all kinds with gating dynamics (everything but Leak)
var gateKinds = []ChanKind{NaHH, KDr, KA, KM, CaL, CaN, CaPQ, CaT, SK, BK, HCN, NMDA}

// TestGatingBounds sweeps the full physiological voltage range and verifies
// that a single update at dt = 0.05 msec, and a 100-step run at dt = 0.01,
// keep every gating variable in [0,1] from any steady-state starting point.
func TestGatingBounds(t *testing.T) {
	cp := &Params{}
	cp.Defaults()
	ch := &Chan{Gbar: 1, GScale: 1, Lig: 10}
	for _, kind := range gateKinds {
		ch.Kind = kind
		for v := float32(-100); v <= 60; v += 2 {
			// single coarse step from rest-equilibrated state
			st := &State{}
			cp.InitState(kind, -70, st)
			cp.UpdateState(ch, v, st, 0.05)
			if !StateInRange(st) {
				t.Errorf("%v: out of range after single dt=0.05 step at v=%v: %+v", kind, v, *st)
			}
			// fine-step run from local steady state
			cp.InitState(kind, v, st)
			for i := 0; i < 100; i++ {
				cp.UpdateState(ch, v, st, 0.01)
			}
			if !StateInRange(st) {
				t.Errorf("%v: out of range after 100 dt=0.01 steps at v=%v: %+v", kind, v, *st)
			}
		}
	}
}

// TestSteadyStateInit verifies that InitState produces a fixed point of the
// update: one step at the init voltage must leave the state essentially
// unchanged (small drift allowed for the calcium-pool channels, whose
// voltage-dependent influx is nonzero even at rest).
func TestSteadyStateInit(t *testing.T) {
	cp := &Params{}
	cp.Defaults()
	ch := &Chan{Gbar: 1, GScale: 1}
	for _, kind := range gateKinds {
		ch.Kind = kind
		for _, v := range []float32{-90, -70, -50} {
			st := &State{}
			cp.InitState(kind, v, st)
			m0, h0 := st.M, st.H
			cp.UpdateState(ch, v, st, 0.01)
			if math32.Abs(st.M-m0) > 1e-3 || math32.Abs(st.H-h0) > 1e-3 {
				t.Errorf("%v: init not at steady state at v=%v: dM=%v dH=%v", kind, v, st.M-m0, st.H-h0)
			}
		}
	}
}

// TestMgBlock verifies the NMDA magnesium block factor: monotonically
// increasing in v, below 0.1 at -70 mV and above 0.5 at 0 mV for 1 mM Mg.
func TestMgBlock(t *testing.T) {
	np := &NMDAParams{}
	np.Defaults()
	prev := float32(-1)
	for v := float32(-100); v <= 60; v++ {
		mb := np.MgBlock(v)
		if mb <= prev {
			t.Errorf("MgBlock not monotonically increasing at v=%v: %v <= %v", v, mb, prev)
		}
		if mb < 0 || mb > 1 {
			t.Errorf("MgBlock out of [0,1] at v=%v: %v", v, mb)
		}
		prev = mb
	}
	if mb := np.MgBlock(-70); mb >= 0.1 {
		t.Errorf("MgBlock(-70) = %v, want < 0.1", mb)
	}
	if mb := np.MgBlock(0); mb <= 0.5 {
		t.Errorf("MgBlock(0) = %v, want > 0.5", mb)
	}
}

// TestNMDALigand verifies that conductance requires both ligand binding and
// depolarization (coincidence detection).
func TestNMDALigand(t *testing.T) {
	cp := &Params{}
	cp.Defaults()
	ch := &Chan{Kind: NMDA, Gbar: 1, GScale: 1}
	st := &State{}
	cp.InitState(NMDA, -70, st)

	// no ligand: bound fraction stays 0, conductance 0 at any voltage
	for i := 0; i < 100; i++ {
		cp.UpdateState(ch, 0, st, 0.1)
	}
	if g := cp.G(ch, 0, st); g > difTol {
		t.Errorf("NMDA conducts without ligand: g=%v", g)
	}

	// saturating ligand: conductance appears, gated by voltage
	ch.Lig = 100
	for i := 0; i < 2000; i++ {
		cp.UpdateState(ch, -70, st, 0.1)
	}
	gLow := cp.G(ch, -70, st)
	gHigh := cp.G(ch, 0, st)
	if gHigh <= gLow {
		t.Errorf("NMDA conductance not voltage-relieved: g(-70)=%v g(0)=%v", gLow, gHigh)
	}
	if gHigh < 0.3 {
		t.Errorf("NMDA bound conductance too small at 0 mV: %v", gHigh)
	}
}

// TestHHActivation verifies the qualitative voltage dependence of the
// Hodgkin-Huxley gates: m activates and h inactivates with depolarization.
func TestHHActivation(t *testing.T) {
	cp := &Params{}
	cp.Defaults()
	lo, hi := &State{}, &State{}
	cp.InitState(NaHH, -80, lo)
	cp.InitState(NaHH, 0, hi)
	if hi.M <= lo.M {
		t.Errorf("Na m-inf not increasing: m(-80)=%v m(0)=%v", lo.M, hi.M)
	}
	if hi.H >= lo.H {
		t.Errorf("Na h-inf not decreasing: h(-80)=%v h(0)=%v", lo.H, hi.H)
	}
	cp.InitState(KDr, -80, lo)
	cp.InitState(KDr, 0, hi)
	if hi.M <= lo.M {
		t.Errorf("Kdr n-inf not increasing: n(-80)=%v n(0)=%v", lo.M, hi.M)
	}
}

// TestNaBetaMSaturation verifies the deactivation-rate ceiling: beta_m
// saturates at BetaMMax under strong hyperpolarization, keeping
// alpha+beta <= 1/dt for dt = 0.05 msec over the full voltage range so a
// single coarse step from the rest-equilibrated state cannot drive the
// m gate negative.
func TestNaBetaMSaturation(t *testing.T) {
	np := &NaParams{}
	np.Defaults()
	for v := float32(-100); v <= 60; v += 2 {
		bm := np.BetaM(v)
		if bm > np.BetaMMax {
			t.Errorf("BetaM(%v) = %v exceeds ceiling %v", v, bm, np.BetaMMax)
		}
		if rate := np.AlphaM(v) + bm; rate > 1/0.05 {
			t.Errorf("m rate sum at v=%v: %v > 1/dt for dt=0.05", v, rate)
		}
	}
	// above the saturation region the classic rate is untouched
	for _, v := range []float32{-90, -70, -50} {
		raw := ExpRate(np.BetaMA, v, np.BetaMV, np.BetaMK)
		if math32.Abs(np.BetaM(v)-raw) > difTol {
			t.Errorf("BetaM(%v) = %v differs from classic rate %v", v, np.BetaM(v), raw)
		}
	}
	// the worst case: one coarse step at -100 mV from rest equilibrium
	cp := &Params{}
	cp.Defaults()
	ch := &Chan{Kind: NaHH, Gbar: 1, GScale: 1}
	st := &State{}
	cp.InitState(NaHH, -70, st)
	cp.UpdateState(ch, -100, st, 0.05)
	if st.M < 0 || st.M > 1 {
		t.Errorf("m out of [0,1] after single dt=0.05 step at v=-100: %v", st.M)
	}
}

// TestLinExpRate verifies the singularity guard matches the analytic limit.
func TestLinExpRate(t *testing.T) {
	// limit of a*x/(1-exp(-x/k)) as x->0 is a*k
	got := LinExpRate(0.1, -40, -40, 10)
	want := float32(1.0)
	if math32.Abs(got-want) > 1e-4 {
		t.Errorf("LinExpRate at singularity: got %v want %v", got, want)
	}
	// continuity just off the singularity
	near := LinExpRate(0.1, -40.001, -40, 10)
	if math32.Abs(near-got) > 1e-3 {
		t.Errorf("LinExpRate discontinuous at singularity: %v vs %v", near, got)
	}
}

// TestQ10 verifies the multiplicative temperature scaling.
func TestQ10(t *testing.T) {
	qp := &Q10Params{}
	qp.Defaults()
	qp.RefC = 23
	qp.Update(23)
	if math32.Abs(qp.Scale-1) > difTol {
		t.Errorf("Q10 scale at reference temperature: got %v want 1", qp.Scale)
	}
	qp.Update(33)
	if math32.Abs(qp.Scale-3) > 1e-5 {
		t.Errorf("Q10 scale at +10 C: got %v want 3", qp.Scale)
	}
}

// TestErev checks the reversal potential assignments per ion species.
func TestErev(t *testing.T) {
	cp := &Params{}
	cp.Defaults()
	if e := cp.Erev(NaHH); e != ErevNa {
		t.Errorf("Na Erev: %v", e)
	}
	for _, k := range []ChanKind{KDr, KA, KM, SK, BK} {
		if e := cp.Erev(k); e != ErevK {
			t.Errorf("%v Erev: %v, want %v", k, e, float32(ErevK))
		}
	}
	for _, k := range []ChanKind{CaL, CaN, CaPQ, CaT} {
		if e := cp.Erev(k); e != ErevCa {
			t.Errorf("%v Erev: %v, want %v", k, e, float32(ErevCa))
		}
	}
	if e := cp.Erev(NMDA); e != ErevNMDA {
		t.Errorf("NMDA Erev: %v", e)
	}
}

// TestGScale verifies the pharmacological conductance scale factor is a
// pure multiplier on conductance.
func TestGScale(t *testing.T) {
	cp := &Params{}
	cp.Defaults()
	st := &State{}
	cp.InitState(KDr, -40, st)
	ch := &Chan{Kind: KDr, Gbar: 2, GScale: 1}
	g1 := cp.G(ch, -40, st)
	ch.GScale = 0.25
	g2 := cp.G(ch, -40, st)
	if math32.Abs(g2-0.25*g1) > difTol {
		t.Errorf("GScale not multiplicative: %v vs %v", g2, 0.25*g1)
	}
}
