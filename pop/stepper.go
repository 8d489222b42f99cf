// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package pop provides population-level stepping of many independent neurons.

The Stepper interface is the narrow contract shared by the CPU backend here
and the GPU backend in the gpu package: create, set external currents, step,
read voltages.  The two backends intentionally diverge beyond that surface
(multi-compartment trees on the CPU, single-compartment point neurons on the
GPU) and are not forced into any deeper common abstraction.
*/
package pop

// Stepper is the population stepping contract shared by the CPU and GPU
// execution backends.  Ticks on one stepper are strictly ordered: Step does
// not overlap with itself or with SetExtCurrents / Voltages on the same
// instance.
type Stepper interface {
	// Size returns the number of neurons in the population.
	Size() int

	// SetExtCurrents sets the per-neuron external (injected) current in
	// pA, applied at each neuron's root (soma) compartment.  The slice
	// length must equal Size -- a mismatch is an error, never silently
	// truncated or padded.
	SetExtCurrents(pa []float32) error

	// Step advances every neuron by one integration step.
	Step() error

	// Voltages copies each neuron's root (soma) membrane potential in mV
	// into out, which must have length Size.
	Voltages(out []float32) error
}
