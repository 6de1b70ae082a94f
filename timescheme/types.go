// SPDX-License-Identifier: MIT

package timescheme

import (
	"errors"
	"fmt"

	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
)

var (
	// ErrTimeStep indicates a non-positive or non-finite time step.
	ErrTimeStep = errors.New("timescheme: time step must be > 0")

	// ErrSpaceStep indicates a non-positive space step from the geometry.
	ErrSpaceStep = errors.New("timescheme: space step must be > 0")

	// ErrShape indicates an initial state that is not N×2.
	ErrShape = errors.New("timescheme: initial state must be N×2")

	// ErrUnknownScheme indicates a scheme kind that New does not know.
	ErrUnknownScheme = errors.New("timescheme: unknown scheme")

	// ErrNilCollaborator indicates a missing flux or source provider.
	ErrNilCollaborator = errors.New("timescheme: nil flux or source provider")

	// ErrNotInitialized indicates Step was called before Initialize.
	ErrNotInitialized = errors.New("timescheme: scheme not initialized")
)

// FluxFunc returns the net flux contribution -(F_{i+1/2} - F_{i-1/2}) of
// every cell for state at time t.
type FluxFunc interface {
	Flux(t float64, state *matrix.Dense) (*matrix.Dense, error)
}

// SourceFunc returns the per-cell source term of state.
type SourceFunc interface {
	SourceTerm(state *matrix.Dense) (*matrix.Dense, error)
}

// Params are the time parameters a scheme needs.
type Params struct {
	TimeStep    float64 // dt, fixed for the whole run
	InitialTime float64 // t0
}

// Scheme is an explicit one-step time integrator.
type Scheme interface {
	// Name identifies the scheme in logs, e.g. "RK2".
	Name() string

	// Order is the formal order of accuracy in time.
	Order() int

	// Initialize copies initial into the working state, stores dt and dx
	// and resets the clock to p.InitialTime. It may be called again to
	// restart a run.
	Initialize(p Params, geom mesh.Geometry, initial *matrix.Dense) error

	// Step advances the working state in place by exactly one dt, starting
	// from clock value t.
	Step(t float64) error

	// State returns the working state. Callers must not modify it.
	State() *matrix.Dense

	// InitialTime returns the clock value set by Initialize.
	InitialTime() float64
}

// schemeErrorf wraps err with the scheme name and method.
func schemeErrorf(name, method string, err error) error {
	return fmt.Errorf("%s.%s: %w", name, method, err)
}
