// SPDX-License-Identifier: MIT

package flux

import (
	"errors"
	"fmt"

	"github.com/YoshaTogame/TER/matrix"
)

var (
	// ErrUnknownFlux indicates a numerical flux name that New does not know.
	ErrUnknownFlux = errors.New("flux: unknown numerical flux")

	// ErrUnknownBoundary indicates a boundary kind that ParseBoundary does not know.
	ErrUnknownBoundary = errors.New("flux: unknown boundary kind")

	// ErrGravity indicates a non-positive gravitational acceleration.
	ErrGravity = errors.New("flux: gravity must be > 0")
)

// Provider is the flux collaborator of the time integrator.
type Provider interface {
	// Name is used to namespace output files, e.g. "Rusanov".
	Name() string

	// Flux returns the fresh N×2 net flux contribution for state at time t.
	Flux(t float64, state *matrix.Dense) (*matrix.Dense, error)
}

// Boundary selects how a ghost cell is built from the adjacent interior cell.
type Boundary int

const (
	// Transmissive copies the interior cell (zero-gradient outflow).
	Transmissive Boundary = iota

	// Wall copies the depth and mirrors the discharge (reflective wall).
	Wall
)

// String returns the configuration spelling of b.
func (b Boundary) String() string {
	switch b {
	case Transmissive:
		return "transmissive"
	case Wall:
		return "wall"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary is the inverse of Boundary.String.
func ParseBoundary(s string) (Boundary, error) {
	switch s {
	case "transmissive", "":
		return Transmissive, nil
	case "wall":
		return Wall, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownBoundary)
	}
}

// ghost returns the ghost state next to interior cell (h, q).
func (b Boundary) ghost(h, q float64) (float64, float64) {
	if b == Wall {
		return h, -q
	}

	return h, q
}
