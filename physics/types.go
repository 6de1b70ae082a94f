// SPDX-License-Identifier: MIT

package physics

import (
	"errors"
	"fmt"

	"github.com/YoshaTogame/TER/matrix"
)

// DefaultGravity is the gravitational acceleration in m/s².
const DefaultGravity = 9.81

var (
	// ErrUnknownCase indicates a case name that New does not know.
	ErrUnknownCase = errors.New("physics: unknown case")

	// ErrUnknownParam indicates a case parameter the case does not accept.
	ErrUnknownParam = errors.New("physics: unknown case parameter")

	// ErrBadParam indicates a case parameter outside its valid range.
	ErrBadParam = errors.New("physics: invalid case parameter")

	// ErrNoExactSolution is returned by ExactSolution for non-test cases.
	ErrNoExactSolution = errors.New("physics: case has no exact solution")

	// ErrGravity indicates a non-positive gravitational acceleration.
	ErrGravity = errors.New("physics: gravity must be > 0")

	// ErrDryState indicates a Riemann problem whose solution contains a dry region.
	ErrDryState = errors.New("physics: Riemann problem generates a dry region")

	// ErrNoConvergence indicates the star-depth Newton iteration did not converge.
	ErrNoConvergence = errors.New("physics: star depth iteration did not converge")
)

// physicsErrorf wraps err with the case name.
func physicsErrorf(name string, err error) error {
	return fmt.Errorf("physics[%s]: %w", name, err)
}

// Model is the physics collaborator of the time integrator.
type Model interface {
	// Name identifies the case.
	Name() string

	// Gravity returns g.
	Gravity() float64

	// InitialCondition returns a fresh N×2 state.
	InitialCondition() (*matrix.Dense, error)

	// Topography returns a copy of the bottom elevation z per cell.
	Topography() []float64

	// SourceTerm returns a fresh N×2 source array for state. It is a pure
	// function of state and never retains it.
	SourceTerm(state *matrix.Dense) (*matrix.Dense, error)

	// ExactSolution returns the exact N×2 state at time t, or
	// ErrNoExactSolution when the case has none. The result belongs to the
	// caller.
	ExactSolution(t float64) (*matrix.Dense, error)
}

// Params carries named case parameters, e.g. from the run configuration.
type Params map[string]float64

// take resolves the known keys of p against defaults and rejects extras.
func (p Params) take(caseName string, defaults map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range p {
		if _, ok := defaults[k]; !ok {
			return nil, physicsErrorf(caseName, fmt.Errorf("%q: %w", k, ErrUnknownParam))
		}
		out[k] = v
	}

	return out, nil
}
