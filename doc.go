// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package cable is the overall repository for the compartmental cable-equation
neuron simulation engine, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* chans: the ion-channel model library -- voltage-gated, calcium-activated,
and ligand-gated conductances expressed as pure functions over explicit
gating state, dispatched over a closed set of channel kinds.

* cable: the core engine -- compartments, the neuron-local arena of
parent / child indexed compartments (the compartmental tree), the two-phase
explicit-Euler cable integrator, morphology builders, and trace recording.

* pop: population-level stepping across many independent neurons, using
persistent worker goroutines (data parallel across neurons, sequential
cable integration within each neuron).

* gpu: a Vulkan compute backend (via vgpu) for large populations of
single-compartment Hodgkin-Huxley point neurons, one GPU lane per neuron.

* examples: these compile into runnable programs -- examples/pyramidal runs
a branching multi-compartment neuron on the CPU backend, examples/hhgpu
compares CPU and GPU stepping of a large point-neuron population.
*/
package cable
