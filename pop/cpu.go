// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/emer/emergent/timer"
	"github.com/goki/ki/ints"

	"github.com/emer/cable/cable"
)

// NeuFunChan is a channel that funnels per-neuron functions to a worker thread
type NeuFunChan chan func(nr *cable.Neuron)

// Pop is the CPU execution backend: it advances a population of
// independently owned neurons, data-parallel across neurons with one
// persistent worker goroutine per thread (each neuron's compartments are
// integrated sequentially by the two-phase algorithm).  Neurons share no
// state, so no locks are used -- the only synchronization is the per-tick
// wait-group barrier.
type Pop struct {
	Neurons  []*cable.Neuron        `desc:"the population -- each neuron is exclusively owned by this Pop"`
	Dt       float32                `def:"0.01" desc:"integration step size, msec"`
	NThreads int                    `inactive:"+" desc:"number of worker threads (go routines) -- set at Build, capped at neuron count"`
	ThrNeus  [][]*cable.Neuron      `view:"-" desc:"neurons allocated per thread"`
	ThrChans []NeuFunChan           `view:"-" desc:"per-thread work channels"`
	ThrTimes []timer.Time           `view:"-" desc:"per-thread computation timers"`
	FunTimes map[string]*timer.Time `view:"-" desc:"timers for each named function"`
	WaitGp   sync.WaitGroup         `view:"-" desc:"wait group for synchronizing the per-tick barrier"`
}

// NewPop returns a population running the given neurons on nThreads worker
// threads (0 = GOMAXPROCS), starting the workers.  All neurons must already
// be built.  Call StopThreads when done.
func NewPop(neurons []*cable.Neuron, nThreads int) *Pop {
	pp := &Pop{Neurons: neurons, Dt: 0.01}
	if nThreads <= 0 {
		nThreads = runtime.GOMAXPROCS(0)
	}
	pp.NThreads = ints.MinInt(nThreads, ints.MaxInt(len(neurons), 1))
	pp.ThrNeus = make([][]*cable.Neuron, pp.NThreads)
	pp.ThrChans = make([]NeuFunChan, pp.NThreads)
	pp.ThrTimes = make([]timer.Time, pp.NThreads)
	pp.FunTimes = make(map[string]*timer.Time)
	for i, nr := range neurons {
		th := i % pp.NThreads
		pp.ThrNeus[th] = append(pp.ThrNeus[th], nr)
	}
	for th := 0; th < pp.NThreads; th++ {
		pp.ThrChans[th] = make(NeuFunChan)
	}
	pp.StartThreads()
	return pp
}

// Size returns the number of neurons in the population.
func (pp *Pop) Size() int {
	return len(pp.Neurons)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Threading infrastructure

// StartThreads starts up the computation threads, which monitor the channels for work
func (pp *Pop) StartThreads() {
	for th := 0; th < pp.NThreads; th++ {
		go pp.ThrWorker(th)
	}
}

// StopThreads stops the computation threads
func (pp *Pop) StopThreads() {
	for th := 0; th < pp.NThreads; th++ {
		close(pp.ThrChans[th])
	}
}

// ThrWorker is the worker function run by the worker threads
func (pp *Pop) ThrWorker(tt int) {
	for fun := range pp.ThrChans[tt] {
		thnr := pp.ThrNeus[tt]
		pp.ThrTimes[tt].Start()
		for _, nr := range thnr {
			fun(nr)
		}
		pp.ThrTimes[tt].Stop()
		pp.WaitGp.Done()
	}
}

// ThrNeuFun calls function on every neuron, using threaded (go routine
// worker) computation if NThreads > 1, and otherwise just iterating over
// neurons in the current thread.  The call returns only after every neuron
// has been processed (per-tick barrier).
func (pp *Pop) ThrNeuFun(fun func(nr *cable.Neuron), funame string) {
	pp.FunTimerStart(funame)
	if pp.NThreads <= 1 {
		for _, nr := range pp.Neurons {
			fun(nr)
		}
	} else {
		for th := 0; th < pp.NThreads; th++ {
			pp.WaitGp.Add(1)
			pp.ThrChans[th] <- fun
		}
		pp.WaitGp.Wait()
	}
	pp.FunTimerStop(funame)
}

//////////////////////////////////////////////////////////////////////////////////////
//  Stepper interface

// SetExtCurrents sets each neuron's soma external current in pA.
// The length of pa must equal Size.
func (pp *Pop) SetExtCurrents(pa []float32) error {
	if len(pa) != len(pp.Neurons) {
		return fmt.Errorf("pop.Pop: SetExtCurrents length %d != population size %d", len(pa), len(pp.Neurons))
	}
	for i, nr := range pp.Neurons {
		nr.SetExt(nr.Root, pa[i])
	}
	return nil
}

// SetCompCurrents sets full per-compartment external currents for every
// neuron: pa[i] must have one entry per compartment of neuron i.  All
// lengths are validated before any current is written, so an error leaves
// every neuron's currents untouched.
func (pp *Pop) SetCompCurrents(pa [][]float32) error {
	if len(pa) != len(pp.Neurons) {
		return fmt.Errorf("pop.Pop: SetCompCurrents length %d != population size %d", len(pa), len(pp.Neurons))
	}
	for i, nr := range pp.Neurons {
		if len(pa[i]) != nr.NComps() {
			return fmt.Errorf("pop.Pop: neuron %d currents length %d != %d compartments", i, len(pa[i]), nr.NComps())
		}
	}
	for i, nr := range pp.Neurons {
		for ci, c := range pa[i] {
			nr.SetExt(int32(ci), c)
		}
	}
	return nil
}

// Step advances every neuron one integration step of Dt msec, in parallel
// across neurons.  Side effects are confined to each neuron's own arrays;
// no cross-neuron read or write occurs during a step.
func (pp *Pop) Step() error {
	dt := pp.Dt
	pp.ThrNeuFun(func(nr *cable.Neuron) { nr.Step(dt) }, "Step")
	return nil
}

// StepN advances every neuron n integration steps.
func (pp *Pop) StepN(n int) error {
	for i := 0; i < n; i++ {
		if err := pp.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Voltages copies each neuron's soma membrane potential in mV into out,
// which must have length Size.
func (pp *Pop) Voltages(out []float32) error {
	if len(out) != len(pp.Neurons) {
		return fmt.Errorf("pop.Pop: Voltages output length %d != population size %d", len(out), len(pp.Neurons))
	}
	for i, nr := range pp.Neurons {
		out[i] = nr.SomaVm()
	}
	return nil
}

// Spiking copies each neuron's spiking flag into out, which must have
// length Size.
func (pp *Pop) Spiking(out []bool) error {
	if len(out) != len(pp.Neurons) {
		return fmt.Errorf("pop.Pop: Spiking output length %d != population size %d", len(out), len(pp.Neurons))
	}
	for i, nr := range pp.Neurons {
		out[i] = nr.Spiking
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////////////
//  Timing reports

// TimerReport reports the amount of time spent in each function, and in each thread
func (pp *Pop) TimerReport() {
	fmt.Printf("TimerReport: Pop of %v neurons, NThreads: %v\n", len(pp.Neurons), pp.NThreads)
	fmt.Printf("\tFunction Name\tTotal Secs\tPct\n")
	nfn := len(pp.FunTimes)
	fnms := make([]string, nfn)
	idx := 0
	for k := range pp.FunTimes {
		fnms[idx] = k
		idx++
	}
	sort.StringSlice(fnms).Sort()
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = pp.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Printf("\t%v \t%6.4g\t%6.4g\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Printf("\tTotal   \t%6.4g\n", tot)

	if pp.NThreads <= 1 {
		return
	}
	fmt.Printf("\n\tThr\tTotal Secs\tPct\n")
	pcts = make([]float64, pp.NThreads)
	tot = 0.0
	for th := 0; th < pp.NThreads; th++ {
		pcts[th] = pp.ThrTimes[th].TotalSecs()
		tot += pcts[th]
	}
	for th := 0; th < pp.NThreads; th++ {
		fmt.Printf("\t%v \t%6.4g\t%6.4g\n", th, pcts[th], 100*(pcts[th]/tot))
	}
}

// ThrTimerReset resets the per-thread timers
func (pp *Pop) ThrTimerReset() {
	for th := 0; th < pp.NThreads; th++ {
		pp.ThrTimes[th].Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer
func (pp *Pop) FunTimerStart(fun string) {
	ft, ok := pp.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		pp.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (pp *Pop) FunTimerStop(fun string) {
	ft := pp.FunTimes[fun]
	ft.Stop()
}
