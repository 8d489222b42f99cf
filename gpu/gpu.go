// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package gpu implements the Vulkan compute backend: a population of
single-compartment Hodgkin-Huxley point neurons advanced in lockstep on
the GPU, one thread lane per neuron.

The integration step lives in compute.go between the gosl markers, and is
the single source of truth for both the CPU mirror (Consts.StepUnit) and
the generated shader.  Unit and Consts are mirrored bit-for-bit between
the host structs and the shader structs; both are multiples of 16 bytes.
*/
package gpu

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/goki/vgpu/vgpu"
)

//go:generate gosl compute.go

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

// workGroupSize is the shader's [numthreads] x dimension; the dispatch
// rounds up and the shader range-checks against Consts.NUnits.
const workGroupSize = 256

// HHPop is the GPU population stepper.  Create with New, which fails with
// an error (never a panic) when no Vulkan device is available.  The host
// copy of Units is authoritative between steps: SetExtCurrents writes it,
// Step uploads it, runs one tick, and reads it back.
type HHPop struct {
	Units  []Unit `desc:"host copy of per-neuron state"`
	Consts Consts `desc:"shared integration constants"`

	gp  *vgpu.GPU
	sy  *vgpu.System
	pl  *vgpu.Pipeline
	cvl *vgpu.Val
	uvl *vgpu.Val
}

// New returns a GPU population of n point neurons stepping at dt msec,
// with all neurons initialized to rest.  Returns an error if Vulkan
// initialization or device setup fails.
func New(n int, dt float32) (*HHPop, error) {
	if n <= 0 {
		return nil, fmt.Errorf("gpu.New: population size %d must be positive", n)
	}
	if err := vgpu.Init(); err != nil {
		return nil, fmt.Errorf("gpu.New: vulkan init failed: %w", err)
	}
	hp := &HHPop{}
	if err := hp.Consts.Defaults(n, dt); err != nil {
		return nil, err
	}
	hp.Units = make([]Unit, n)
	for i := range hp.Units {
		hp.Consts.InitUnit(&hp.Units[i])
	}

	hp.gp = vgpu.NewComputeGPU()
	hp.gp.Config("hhpop")

	hp.sy = hp.gp.NewComputeSystem("hhpop")
	hp.pl = hp.sy.NewPipeline("hhpop")
	hp.pl.AddShaderFile("hhpop", vgpu.ComputeShader, "shaders/hhpop.spv")

	vars := hp.sy.Vars()
	setc := vars.AddSet()
	setu := vars.AddSet()

	constv := setc.AddStruct("Consts", int(unsafe.Sizeof(Consts{})), 1, vgpu.Uniform, vgpu.ComputeShader)
	unitv := setu.AddStruct("Units", int(unsafe.Sizeof(Unit{})), n, vgpu.Storage, vgpu.ComputeShader)

	setc.ConfigVals(1)
	setu.ConfigVals(1)
	hp.sy.Config()

	hp.cvl, _ = constv.Vals.ValByIdxTry(0)
	hp.uvl, _ = unitv.Vals.ValByIdxTry(0)

	hp.cvl.CopyFromBytes(unsafe.Pointer(&hp.Consts))
	hp.sy.Mem.SyncToGPU()
	vars.BindDynValIdx(0, "Consts", 0)
	vars.BindDynValIdx(1, "Units", 0)
	hp.sy.CmdResetBindVars(hp.sy.CmdPool.Buff, 0)
	return hp, nil
}

// Size returns the number of neurons in the population.
func (hp *HHPop) Size() int {
	return len(hp.Units)
}

// SetExtCurrents sets the per-neuron injected current in pA.  The slice
// length must equal Size.
func (hp *HHPop) SetExtCurrents(pa []float32) error {
	if len(pa) != len(hp.Units) {
		return fmt.Errorf("gpu.HHPop: SetExtCurrents length %d != population size %d", len(pa), len(hp.Units))
	}
	for i := range hp.Units {
		hp.Units[i].Iext = pa[i]
	}
	return nil
}

// Step uploads the host state, runs one integration tick on the GPU with
// one thread lane per neuron, and reads the state back.  Use StepN for
// many ticks to amortize the transfers.
func (hp *HHPop) Step() error {
	return hp.StepN(1)
}

// StepN runs n integration ticks on the GPU with a single upload before
// and a single readback after -- state stays device-resident in between.
func (hp *HHPop) StepN(n int) error {
	hp.uvl.CopyFromBytes(unsafe.Pointer(&hp.Units[0]))
	hp.sy.Mem.SyncToGPU()
	ngps := (len(hp.Units) + workGroupSize - 1) / workGroupSize
	for i := 0; i < n; i++ {
		hp.pl.RunComputeWait(hp.sy.CmdPool.Buff, ngps, 1, 1)
	}
	hp.sy.Mem.SyncValIdxFmGPU(1, "Units", 0)
	hp.uvl.CopyToBytes(unsafe.Pointer(&hp.Units[0]))
	return nil
}

// Voltages copies each neuron's membrane potential in mV into out, which
// must have length Size.
func (hp *HHPop) Voltages(out []float32) error {
	if len(out) != len(hp.Units) {
		return fmt.Errorf("gpu.HHPop: Voltages output length %d != population size %d", len(out), len(hp.Units))
	}
	for i := range hp.Units {
		out[i] = hp.Units[i].V
	}
	return nil
}

// Spiking copies each neuron's spike flag into out, which must have
// length Size.
func (hp *HHPop) Spiking(out []bool) error {
	if len(out) != len(hp.Units) {
		return fmt.Errorf("gpu.HHPop: Spiking output length %d != population size %d", len(out), len(hp.Units))
	}
	for i := range hp.Units {
		out[i] = hp.Units[i].Spike > 0
	}
	return nil
}

// StepCPU advances the host copy of every unit one tick on the CPU using
// the same step function the shader runs, without touching the device.
// Used for verification against the GPU path.
func (hp *HHPop) StepCPU() {
	for i := range hp.Units {
		hp.Consts.StepUnit(&hp.Units[i])
	}
}

// Destroy releases all device resources.  The HHPop is unusable after.
func (hp *HHPop) Destroy() {
	if hp.sy != nil {
		hp.sy.Destroy()
		hp.sy = nil
	}
	if hp.gp != nil {
		hp.gp.Destroy()
		hp.gp = nil
		vgpu.Terminate()
	}
}
