// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import (
	"testing"

	"github.com/emer/cable/cable"
)

// difTol is the tolerance for voltage differences that must be exact:
// parallel stepping must be bitwise identical to serial stepping.
const difTol = float32(0)

func newTestPop(t *testing.T, n, nThreads int) *Pop {
	neurons := make([]*cable.Neuron, n)
	for i := range neurons {
		nr, err := cable.NewPointNeuron()
		if err != nil {
			t.Fatalf("NewPointNeuron error: %v", err)
		}
		neurons[i] = nr
	}
	return NewPop(neurons, nThreads)
}

func TestStepperConformance(t *testing.T) {
	var _ Stepper = (*Pop)(nil)
}

func TestPopSizeAndVoltages(t *testing.T) {
	pp := newTestPop(t, 7, 2)
	defer pp.StopThreads()
	if pp.Size() != 7 {
		t.Errorf("Size = %d, want 7", pp.Size())
	}
	vs := make([]float32, 7)
	if err := pp.Voltages(vs); err != nil {
		t.Fatalf("Voltages error: %v", err)
	}
	for i, v := range vs {
		if v != pp.Neurons[i].SomaVm() {
			t.Errorf("neuron %d: Voltages %v != SomaVm %v", i, v, pp.Neurons[i].SomaVm())
		}
	}
}

func TestPopLengthErrors(t *testing.T) {
	pp := newTestPop(t, 4, 1)
	defer pp.StopThreads()
	if err := pp.SetExtCurrents(make([]float32, 3)); err == nil {
		t.Errorf("SetExtCurrents with short slice did not error")
	}
	if err := pp.Voltages(make([]float32, 5)); err == nil {
		t.Errorf("Voltages with long slice did not error")
	}
	if err := pp.Spiking(make([]bool, 3)); err == nil {
		t.Errorf("Spiking with short slice did not error")
	}
	if err := pp.SetCompCurrents(make([][]float32, 3)); err == nil {
		t.Errorf("SetCompCurrents with short outer slice did not error")
	}
	bad := make([][]float32, 4)
	for i := range bad {
		bad[i] = make([]float32, 2) // point neurons have 1 compartment
	}
	if err := pp.SetCompCurrents(bad); err == nil {
		t.Errorf("SetCompCurrents with wrong inner length did not error")
	}
}

// TestSetCompCurrentsAtomic verifies that an inner-length mismatch leaves
// every neuron's currents untouched, even when earlier entries were valid.
func TestSetCompCurrentsAtomic(t *testing.T) {
	pp := newTestPop(t, 3, 1)
	defer pp.StopThreads()
	if err := pp.SetCompCurrents([][]float32{{10}, {20}, {30}}); err != nil {
		t.Fatalf("SetCompCurrents error: %v", err)
	}
	bad := [][]float32{{40}, {50}, {60, 61}} // last inner length wrong
	if err := pp.SetCompCurrents(bad); err == nil {
		t.Fatalf("SetCompCurrents with wrong inner length did not error")
	}
	for i, want := range []float32{10, 20, 30} {
		nr := pp.Neurons[i]
		if nr.Ext[nr.Root] != want {
			t.Errorf("neuron %d: Ext = %v after failed call, want %v untouched", i, nr.Ext[nr.Root], want)
		}
	}
}

// TestPopIndependence drives even-indexed neurons with suprathreshold
// current and leaves odd ones at rest: driven neurons must spike, resting
// neurons must not move, regardless of thread count.
func TestPopIndependence(t *testing.T) {
	pp := newTestPop(t, 8, 4)
	defer pp.StopThreads()
	cur := make([]float32, 8)
	for i := range cur {
		if i%2 == 0 {
			cur[i] = 200
		}
	}
	if err := pp.SetExtCurrents(cur); err != nil {
		t.Fatalf("SetExtCurrents error: %v", err)
	}
	spiked := make([]bool, 8)
	spk := make([]bool, 8)
	for st := 0; st < 5000; st++ {
		if err := pp.Step(); err != nil {
			t.Fatalf("Step error: %v", err)
		}
		if err := pp.Spiking(spk); err != nil {
			t.Fatalf("Spiking error: %v", err)
		}
		for i, s := range spk {
			if s {
				spiked[i] = true
			}
		}
	}
	vs := make([]float32, 8)
	if err := pp.Voltages(vs); err != nil {
		t.Fatalf("Voltages error: %v", err)
	}
	for i := 0; i < 8; i++ {
		if i%2 == 0 {
			if !spiked[i] {
				t.Errorf("driven neuron %d never spiked", i)
			}
		} else {
			if spiked[i] {
				t.Errorf("resting neuron %d spiked", i)
			}
			if vs[i] < -75 || vs[i] > -65 {
				t.Errorf("resting neuron %d Vm = %v, expected near rest", i, vs[i])
			}
		}
	}
}

// TestPopThreadInvariance steps identical populations serially and with
// 4 threads: since neurons share no state, the results must be bitwise
// identical.
func TestPopThreadInvariance(t *testing.T) {
	p1 := newTestPop(t, 6, 1)
	defer p1.StopThreads()
	p4 := newTestPop(t, 6, 4)
	defer p4.StopThreads()
	cur := []float32{0, 50, 100, 150, 200, 250}
	if err := p1.SetExtCurrents(cur); err != nil {
		t.Fatalf("SetExtCurrents error: %v", err)
	}
	if err := p4.SetExtCurrents(cur); err != nil {
		t.Fatalf("SetExtCurrents error: %v", err)
	}
	if err := p1.StepN(2000); err != nil {
		t.Fatalf("StepN error: %v", err)
	}
	if err := p4.StepN(2000); err != nil {
		t.Fatalf("StepN error: %v", err)
	}
	v1 := make([]float32, 6)
	v4 := make([]float32, 6)
	if err := p1.Voltages(v1); err != nil {
		t.Fatalf("Voltages error: %v", err)
	}
	if err := p4.Voltages(v4); err != nil {
		t.Fatalf("Voltages error: %v", err)
	}
	for i := range v1 {
		if v1[i]-v4[i] > difTol || v4[i]-v1[i] > difTol {
			t.Errorf("neuron %d: serial Vm %v != threaded Vm %v", i, v1[i], v4[i])
		}
	}
}

func TestNoiseOff(t *testing.T) {
	pp := newTestPop(t, 3, 1)
	defer pp.StopThreads()
	var np NoiseParams
	np.Defaults()
	if err := pp.SetExtCurrentsNoise([]float32{10, 20, 30}, &np); err != nil {
		t.Fatalf("SetExtCurrentsNoise error: %v", err)
	}
	for i, want := range []float32{10, 20, 30} {
		nr := pp.Neurons[i]
		if nr.Ext[nr.Root] != want {
			t.Errorf("neuron %d: Ext = %v, want %v (noise off)", i, nr.Ext[nr.Root], want)
		}
	}
}
