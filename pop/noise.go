// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pop

import (
	"fmt"

	"github.com/emer/emergent/erand"
)

// NoiseParams add random background current to each neuron's external
// input, drawn independently per neuron per tick.  The distribution
// parameters are in pA.
type NoiseParams struct {
	erand.RndParams
	On bool `desc:"whether to add background current noise"`
}

func (np *NoiseParams) Defaults() {
	np.On = false
	np.Dist = erand.Gaussian
	np.Mean = 0
	np.Var = 10
}

func (np *NoiseParams) Update() {
}

// Gen returns one background current sample in pA, or 0 when Off.
func (np *NoiseParams) Gen() float32 {
	if !np.On {
		return 0
	}
	return float32(np.RndParams.Gen(-1))
}

// SetExtCurrentsNoise sets each neuron's soma external current to the
// given base value plus a fresh noise sample.  The length of pa must
// equal Size.
func (pp *Pop) SetExtCurrentsNoise(pa []float32, np *NoiseParams) error {
	if len(pa) != len(pp.Neurons) {
		return fmt.Errorf("pop.Pop: SetExtCurrentsNoise length %d != population size %d", len(pa), len(pp.Neurons))
	}
	for i, nr := range pp.Neurons {
		nr.SetExt(nr.Root, pa[i]+np.Gen())
	}
	return nil
}
