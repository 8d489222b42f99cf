// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cable

import (
	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
)

// TraceRecorder accumulates per-step voltage (and optionally gating-state)
// snapshots from one neuron into an etable.Table, for downstream analysis
// and plotting.  The recorder only reads engine state -- it never mutates
// the neuron.
type TraceRecorder struct {
	Table *etable.Table `desc:"the trace table: Msec, Spiking, Vm tensor (one cell per compartment), optionally gating M"`
	Gates bool          `desc:"whether to also record the first gating variable (M) of every channel of the root compartment"`
	nrn   *Neuron
}

// NewTraceRecorder returns a recorder configured for the given built
// neuron.
func NewTraceRecorder(nr *Neuron, gates bool) *TraceRecorder {
	tr := &TraceRecorder{Gates: gates, nrn: nr}
	n := nr.NComps()
	sch := etable.Schema{
		{"Msec", etensor.FLOAT32, nil, nil},
		{"Spiking", etensor.FLOAT32, nil, nil},
		{"Vm", etensor.FLOAT32, []int{n}, []string{"Comp"}},
	}
	if gates {
		nch := len(nr.Comps[nr.Root].Chans)
		sch = append(sch, etable.Column{"GateM", etensor.FLOAT32, []int{nch}, []string{"Chan"}})
	}
	tr.Table = &etable.Table{}
	tr.Table.SetFromSchema(sch, 0)
	return tr
}

// Record appends one row with the neuron's current state at the given
// simulation time.
func (tr *TraceRecorder) Record(msec float32) {
	dt := tr.Table
	row := dt.Rows
	dt.AddRows(1)
	dt.SetCellFloat("Msec", row, float64(msec))
	spk := 0.0
	if tr.nrn.Spiking {
		spk = 1
	}
	dt.SetCellFloat("Spiking", row, spk)
	for i := range tr.nrn.Comps {
		dt.SetCellTensorFloat1D("Vm", row, i, float64(tr.nrn.Comps[i].Vm))
	}
	if tr.Gates {
		ri := tr.nrn.Root
		for j := range tr.nrn.States[ri] {
			dt.SetCellTensorFloat1D("GateM", row, j, float64(tr.nrn.States[ri][j].M))
		}
	}
}

// Reset discards all recorded rows.
func (tr *TraceRecorder) Reset() {
	tr.Table.SetNumRows(0)
}
