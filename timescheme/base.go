// SPDX-License-Identifier: MIT

package timescheme

import (
	"fmt"
	"math"

	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
)

// base holds what every scheme shares: collaborators, steps, the working
// state and the stage buffers.
type base struct {
	name   string
	flux   FluxFunc
	source SourceFunc

	dt, dx, t0 float64
	state      *matrix.Dense
	stages     []*matrix.Dense
}

// init validates the run parameters and allocates the state plus nStages
// stage buffers.
func (b *base) init(p Params, geom mesh.Geometry, initial *matrix.Dense, nStages int) error {
	if b.flux == nil || b.source == nil {
		return schemeErrorf(b.name, "Initialize", ErrNilCollaborator)
	}
	if !(p.TimeStep > 0) || math.IsInf(p.TimeStep, 0) {
		return schemeErrorf(b.name, "Initialize", fmt.Errorf("dt=%g: %w", p.TimeStep, ErrTimeStep))
	}
	dx := geom.SpaceStep()
	if !(dx > 0) {
		return schemeErrorf(b.name, "Initialize", fmt.Errorf("dx=%g: %w", dx, ErrSpaceStep))
	}
	cells := geom.NumberOfCells()
	if err := matrix.ValidateState(initial, cells); err != nil {
		return schemeErrorf(b.name, "Initialize", fmt.Errorf("%w: %w", ErrShape, err))
	}

	state, err := matrix.NewState(cells)
	if err != nil {
		return schemeErrorf(b.name, "Initialize", err)
	}
	if err = state.CopyFrom(initial); err != nil {
		return schemeErrorf(b.name, "Initialize", err)
	}
	stages := make([]*matrix.Dense, nStages)
	for i := range stages {
		if stages[i], err = matrix.NewState(cells); err != nil {
			return schemeErrorf(b.name, "Initialize", err)
		}
	}

	b.dt, b.dx, b.t0 = p.TimeStep, dx, p.InitialTime
	b.state, b.stages = state, stages

	return nil
}

// rhs writes L(t, s) = Flux(t, s)/dx + Source(s) into dst. The source is
// evaluated first.
func (b *base) rhs(dst *matrix.Dense, t float64, s *matrix.Dense) error {
	src, err := b.source.SourceTerm(s)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	f, err := b.flux.Flux(t, s)
	if err != nil {
		return fmt.Errorf("flux(t=%g): %w", t, err)
	}

	return matrix.LinearCombination(dst, 1/b.dx, f, 1, src)
}

// ready reports ErrNotInitialized for a scheme without state.
func (b *base) ready() error {
	if b.state == nil {
		return schemeErrorf(b.name, "Step", ErrNotInitialized)
	}

	return nil
}

// State returns the working state.
func (b *base) State() *matrix.Dense { return b.state }

// InitialTime returns t0.
func (b *base) InitialTime() float64 { return b.t0 }

// Name identifies the scheme.
func (b *base) Name() string { return b.name }
