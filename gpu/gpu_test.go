// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"testing"
	"unsafe"

	"github.com/emer/cable/cable"
	"github.com/emer/cable/pop"
)

func TestStepperConformance(t *testing.T) {
	var _ pop.Stepper = (*HHPop)(nil)
}

// difTol is the tolerance for CPU vs GPU voltage agreement in mV -- the
// shader and the Go mirror use the same step function, but fast-exp and
// device float ordering can differ in the last bits.
const difTol = float32(1.0e-2)

// TestStructAlign verifies the host structs match the 16-byte alignment
// contract of the shader structs.
func TestStructAlign(t *testing.T) {
	us := unsafe.Sizeof(Unit{})
	if us != 32 {
		t.Errorf("Unit size = %d, want 32", us)
	}
	cs := unsafe.Sizeof(Consts{})
	if cs != 48 {
		t.Errorf("Consts size = %d, want 48", cs)
	}
	if us%16 != 0 || cs%16 != 0 {
		t.Errorf("struct sizes %d, %d not multiples of 16", us, cs)
	}
}

func TestConstsDefaults(t *testing.T) {
	var cs Consts
	if err := cs.Defaults(100, 0.01); err != nil {
		t.Fatalf("Defaults error: %v", err)
	}
	if cs.NUnits != 100 || cs.Dt != 0.01 {
		t.Errorf("NUnits = %d, Dt = %v", cs.NUnits, cs.Dt)
	}
	if cs.GbarNa <= 0 || cs.GbarK <= 0 || cs.GLeak <= 0 || cs.Cm <= 0 {
		t.Errorf("non-positive derived conductances: %+v", cs)
	}
	// same morphology as the CPU point neuron
	nr, err := cable.NewPointNeuron()
	if err != nil {
		t.Fatalf("NewPointNeuron error: %v", err)
	}
	sc := nr.Comp(nr.Root)
	if cs.Cm != sc.Cm || cs.GLeak != sc.GLeak || cs.ELeak != sc.ELeak {
		t.Errorf("Consts passive params differ from point neuron: %+v", cs)
	}
}

// TestStepCPURest verifies the mirrored step function holds a unit near
// rest with no input.
func TestStepCPURest(t *testing.T) {
	var cs Consts
	if err := cs.Defaults(1, 0.01); err != nil {
		t.Fatalf("Defaults error: %v", err)
	}
	var u Unit
	cs.InitUnit(&u)
	for i := 0; i < 10000; i++ {
		cs.StepUnit(&u)
	}
	if u.V < -75 || u.V > -65 {
		t.Errorf("resting V = %v after 100 msec, expected near -70", u.V)
	}
	if u.Spike != 0 {
		t.Errorf("resting unit spiked")
	}
	for _, g := range []float32{u.M, u.H, u.N} {
		if g < 0 || g > 1 {
			t.Errorf("gate out of [0,1]: M=%v H=%v N=%v", u.M, u.H, u.N)
		}
	}
}

// TestStepCPUSpike verifies suprathreshold current drives a spike in the
// mirrored step function.
func TestStepCPUSpike(t *testing.T) {
	var cs Consts
	if err := cs.Defaults(1, 0.01); err != nil {
		t.Fatalf("Defaults error: %v", err)
	}
	var u Unit
	cs.InitUnit(&u)
	u.Iext = 200
	spiked := false
	for i := 0; i < 5000; i++ {
		cs.StepUnit(&u)
		if u.Spike > 0 {
			spiked = true
		}
	}
	if !spiked {
		t.Errorf("unit with 200 pA never spiked in 50 msec")
	}
}

// newDevicePop returns a device population or skips the test when no
// Vulkan device is available (CI, headless).
func newDevicePop(t *testing.T, n int) *HHPop {
	hp, err := New(n, 0.01)
	if err != nil {
		t.Skipf("no GPU available: %v", err)
	}
	return hp
}

// TestDeviceAgainstCPU compares device stepping against the Go mirror
// with subthreshold currents: trajectories relax to stable equilibria, so
// exp-implementation differences between shader and mirror stay bounded.
func TestDeviceAgainstCPU(t *testing.T) {
	hp := newDevicePop(t, 300) // not a workgroup multiple: exercises the range check
	defer hp.Destroy()

	ref := make([]Unit, hp.Size())
	copy(ref, hp.Units)
	cur := make([]float32, hp.Size())
	for i := range cur {
		if i%2 == 0 {
			cur[i] = 20
		}
		ref[i].Iext = cur[i]
	}
	if err := hp.SetExtCurrents(cur); err != nil {
		t.Fatalf("SetExtCurrents error: %v", err)
	}
	nsteps := 2000
	if err := hp.StepN(nsteps); err != nil {
		t.Fatalf("StepN error: %v", err)
	}
	for s := 0; s < nsteps; s++ {
		for i := range ref {
			hp.Consts.StepUnit(&ref[i])
		}
	}
	vs := make([]float32, hp.Size())
	if err := hp.Voltages(vs); err != nil {
		t.Fatalf("Voltages error: %v", err)
	}
	for i := range ref {
		d := vs[i] - ref[i].V
		if d < 0 {
			d = -d
		}
		if d > difTol {
			t.Errorf("unit %d: GPU V %v vs CPU V %v", i, vs[i], ref[i].V)
		}
	}
}

// TestDeviceSpiking is the qualitative population-independence check on
// the device: driven lanes spike, resting lanes do not.
func TestDeviceSpiking(t *testing.T) {
	hp := newDevicePop(t, 64)
	defer hp.Destroy()
	cur := make([]float32, hp.Size())
	for i := range cur {
		if i%2 == 0 {
			cur[i] = 200
		}
	}
	if err := hp.SetExtCurrents(cur); err != nil {
		t.Fatalf("SetExtCurrents error: %v", err)
	}
	spiked := make([]bool, hp.Size())
	spk := make([]bool, hp.Size())
	for st := 0; st < 50; st++ {
		if err := hp.StepN(100); err != nil {
			t.Fatalf("StepN error: %v", err)
		}
		if err := hp.Spiking(spk); err != nil {
			t.Fatalf("Spiking error: %v", err)
		}
		for i, s := range spk {
			if s {
				spiked[i] = true
			}
		}
	}
	vs := make([]float32, hp.Size())
	if err := hp.Voltages(vs); err != nil {
		t.Fatalf("Voltages error: %v", err)
	}
	for i := range spiked {
		if i%2 == 0 && !spiked[i] {
			t.Errorf("driven lane %d never spiked", i)
		}
		if i%2 == 1 && (vs[i] < -75 || vs[i] > -65) {
			t.Errorf("resting lane %d Vm = %v, expected near rest", i, vs[i])
		}
	}
}

func TestDeviceLengthErrors(t *testing.T) {
	hp := newDevicePop(t, 8)
	defer hp.Destroy()
	if err := hp.SetExtCurrents(make([]float32, 7)); err == nil {
		t.Errorf("SetExtCurrents with short slice did not error")
	}
	if err := hp.Voltages(make([]float32, 9)); err == nil {
		t.Errorf("Voltages with long slice did not error")
	}
}
