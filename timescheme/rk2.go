// SPDX-License-Identifier: MIT

package timescheme

import (
	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
)

// RK2 is Heun's second-order Runge-Kutta method:
//
//	k1 = L(t, S)
//	S* = S + dt·k1
//	k2 = L(t+dt, S*)
//	S ← S + dt/2·(k1 + k2)
type RK2 struct{ base }

var _ Scheme = (*RK2)(nil)

// NewRK2 binds the flux and source collaborators.
func NewRK2(f FluxFunc, s SourceFunc) *RK2 {
	return &RK2{base{name: "RK2", flux: f, source: s}}
}

// Order returns 2.
func (r *RK2) Order() int { return 2 }

// Initialize implements Scheme.
func (r *RK2) Initialize(p Params, geom mesh.Geometry, initial *matrix.Dense) error {
	return r.init(p, geom, initial, 3)
}

// Step implements Scheme.
//
// Stage 1: k1 at (t, S).
// Stage 2: trial state S* = S + dt·k1, then k2 at (t+dt, S*); the source is
// evaluated at S* before the flux.
// Stage 3: S ← S + dt/2·k1 + dt/2·k2.
func (r *RK2) Step(t float64) error {
	if err := r.ready(); err != nil {
		return err
	}
	k1, k2, trial := r.stages[0], r.stages[1], r.stages[2]

	if err := r.rhs(k1, t, r.state); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}
	if err := matrix.LinearCombination(trial, 1, r.state, r.dt, k1); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}
	if err := r.rhs(k2, t+r.dt, trial); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}

	half := 0.5 * r.dt
	if err := matrix.AddScaled(r.state, half, k1); err != nil {
		return schemeErrorf(r.name, "Step", err)
	}

	return matrix.AddScaled(r.state, half, k2)
}
