// SPDX-License-Identifier: MIT

package timescheme

import (
	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
)

// SSPRK3 is the three-stage strong stability preserving Runge-Kutta method
// of Shu and Osher, written in increment form:
//
//	k1 = L(t, S)
//	k2 = L(t+dt, S + dt·k1)
//	k3 = L(t+dt/2, S + dt/4·(k1 + k2))
//	S ← S + dt/6·(k1 + k2 + 4·k3)
//
// A zero right-hand side leaves S unchanged bit for bit.
type SSPRK3 struct{ base }

var _ Scheme = (*SSPRK3)(nil)

// NewSSPRK3 binds the flux and source collaborators.
func NewSSPRK3(f FluxFunc, s SourceFunc) *SSPRK3 {
	return &SSPRK3{base{name: "SSPRK3", flux: f, source: s}}
}

// Order returns 3.
func (r *SSPRK3) Order() int { return 3 }

// Initialize implements Scheme.
func (r *SSPRK3) Initialize(p Params, geom mesh.Geometry, initial *matrix.Dense) error {
	return r.init(p, geom, initial, 4)
}

// Step implements Scheme.
func (r *SSPRK3) Step(t float64) error {
	if err := r.ready(); err != nil {
		return err
	}
	k1, k2, k3, trial := r.stages[0], r.stages[1], r.stages[2], r.stages[3]
	dt := r.dt

	// stage 1
	if err := r.rhs(k1, t, r.state); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}
	if err := matrix.LinearCombination(trial, 1, r.state, dt, k1); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}

	// stage 2
	if err := r.rhs(k2, t+dt, trial); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}
	quarter := 0.25 * dt
	if err := matrix.LinearCombination(trial, 1, r.state, quarter, k1); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}
	if err := matrix.AddScaled(trial, quarter, k2); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}

	// stage 3
	if err := r.rhs(k3, t+0.5*dt, trial); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}
	sixth := dt / 6
	if err := matrix.AddScaled(r.state, sixth, k1); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}
	if err := matrix.AddScaled(r.state, sixth, k2); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}

	return matrix.AddScaled(r.state, 4*sixth, k3)
}
