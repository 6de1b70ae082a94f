// SPDX-License-Identifier: MIT

package timescheme

import (
	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
)

// ExplicitEuler is the forward Euler method S ← S + dt·L(t, S).
type ExplicitEuler struct{ base }

var _ Scheme = (*ExplicitEuler)(nil)

// NewExplicitEuler binds the flux and source collaborators.
func NewExplicitEuler(f FluxFunc, s SourceFunc) *ExplicitEuler {
	return &ExplicitEuler{base{name: "ExplicitEuler", flux: f, source: s}}
}

// Order returns 1.
func (e *ExplicitEuler) Order() int { return 1 }

// Initialize implements Scheme.
func (e *ExplicitEuler) Initialize(p Params, geom mesh.Geometry, initial *matrix.Dense) error {
	return e.init(p, geom, initial, 1)
}

// Step implements Scheme.
//
// Complexity: one flux and one source evaluation, O(N) extra work.
func (e *ExplicitEuler) Step(t float64) error {
	if err := e.ready(); err != nil {
		return err
	}
	k := e.stages[0]
	if err := e.rhs(k, t, e.state); err != nil {
		return schemeErrorf(e.name, "Step", err)
	}

	return matrix.AddScaled(e.state, e.dt, k)
}
