// SPDX-License-Identifier: MIT

// Package mesh provides the geometry of a fixed 1D finite-volume mesh.
//
// The time-integration core only needs three queries from a mesh: the
// number of cells, the cell centres (for probe lookup and output) and the
// uniform spacing dx. Geometry captures exactly that; Uniform is the
// concrete mesh used by the solver.
package mesh

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrCellCount indicates a mesh with fewer than one cell.
	ErrCellCount = errors.New("mesh: number of cells must be > 0")

	// ErrBadDomain indicates a domain whose bounds are non-finite or reversed.
	ErrBadDomain = errors.New("mesh: domain bounds must be finite with xmin < xmax")

	// ErrZeroSpaceStep indicates a spacing that underflowed to zero.
	ErrZeroSpaceStep = errors.New("mesh: space step is zero")
)

// Geometry is the read-only view of a mesh consumed by schemes, probes,
// writers and diagnostics.
type Geometry interface {
	// NumberOfCells returns N.
	NumberOfCells() int

	// CellCenters returns the N ordered cell centres. Callers own the slice.
	CellCenters() []float64

	// SpaceStep returns the uniform cell width dx.
	SpaceStep() float64
}

// Uniform is a mesh of N equal cells covering [xmin, xmax].
type Uniform struct {
	xmin, xmax float64
	dx         float64
	centers    []float64
}

var _ Geometry = (*Uniform)(nil)

// NewUniform builds a uniform mesh. Cell i spans [xmin+i·dx, xmin+(i+1)·dx]
// and its centre is xmin+(i+½)·dx.
//
// Errors: ErrCellCount, ErrBadDomain, ErrZeroSpaceStep.
// Complexity: O(N).
func NewUniform(xmin, xmax float64, cells int) (*Uniform, error) {
	if cells <= 0 {
		return nil, fmt.Errorf("NewUniform(%d): %w", cells, ErrCellCount)
	}
	if math.IsNaN(xmin) || math.IsNaN(xmax) || math.IsInf(xmin, 0) || math.IsInf(xmax, 0) || xmin >= xmax {
		return nil, fmt.Errorf("NewUniform[%g,%g]: %w", xmin, xmax, ErrBadDomain)
	}
	dx := (xmax - xmin) / float64(cells)
	if dx == 0 {
		return nil, fmt.Errorf("NewUniform: %w", ErrZeroSpaceStep)
	}

	centers := make([]float64, cells)
	for i := range centers {
		centers[i] = xmin + (float64(i)+0.5)*dx
	}

	return &Uniform{xmin: xmin, xmax: xmax, dx: dx, centers: centers}, nil
}

// NumberOfCells returns N.
func (u *Uniform) NumberOfCells() int { return len(u.centers) }

// SpaceStep returns dx.
func (u *Uniform) SpaceStep() float64 { return u.dx }

// Bounds returns (xmin, xmax).
func (u *Uniform) Bounds() (xmin, xmax float64) { return u.xmin, u.xmax }

// CellCenters returns a copy of the cell centres.
func (u *Uniform) CellCenters() []float64 {
	out := make([]float64, len(u.centers))
	copy(out, u.centers)

	return out
}

// Interfaces returns the N+1 cell interface positions.
func (u *Uniform) Interfaces() []float64 {
	out := make([]float64, len(u.centers)+1)
	for i := range out {
		out[i] = u.xmin + float64(i)*u.dx
	}

	return out
}
