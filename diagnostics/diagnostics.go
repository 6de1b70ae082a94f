// SPDX-License-Identifier: MIT

// Package diagnostics measures the distance between a computed state and a
// reference solution on a uniform mesh.
package diagnostics

import (
	"fmt"
	"math"

	"github.com/YoshaTogame/TER/matrix"
)

// Vec2 holds one value per conserved quantity: [0] depth, [1] discharge.
type Vec2 [2]float64

// L2Error returns dx·sqrt(Σ_i (s_i - e_i)²) per column.
func L2Error(state, exact *matrix.Dense, dx float64) (Vec2, error) {
	return columnError("L2Error", matrix.ColumnNormL2, state, exact, dx)
}

// L1Error returns dx·Σ_i |s_i - e_i| per column.
func L1Error(state, exact *matrix.Dense, dx float64) (Vec2, error) {
	return columnError("L1Error", matrix.ColumnNormL1, state, exact, dx)
}

func columnError(tag string, norm func(matrix.Matrix) ([]float64, error), state, exact *matrix.Dense, dx float64) (Vec2, error) {
	if err := matrix.ValidateNotNil(exact); err != nil {
		return Vec2{}, fmt.Errorf("%s: %w", tag, err)
	}
	if err := matrix.ValidateState(state, exact.Rows()); err != nil {
		return Vec2{}, fmt.Errorf("%s: %w", tag, err)
	}
	diff, err := matrix.Sub(state, exact)
	if err != nil {
		return Vec2{}, fmt.Errorf("%s: %w", tag, err)
	}
	n, err := norm(diff)
	if err != nil {
		return Vec2{}, fmt.Errorf("%s: %w", tag, err)
	}

	return Vec2{n[matrix.ColH] * dx, n[matrix.ColQ] * dx}, nil
}

// Report is the end-of-run error summary of a test case.
type Report struct {
	Time float64
	Dx   float64
	L1   Vec2
	L2   Vec2
}

// NewReport computes both norms of state against exact.
func NewReport(t float64, state, exact *matrix.Dense, dx float64) (*Report, error) {
	l2, err := L2Error(state, exact, dx)
	if err != nil {
		return nil, err
	}
	l1, err := L1Error(state, exact, dx)
	if err != nil {
		return nil, err
	}

	return &Report{Time: t, Dx: dx, L1: l1, L2: l2}, nil
}

// String renders the two console lines, L2 first.
func (r Report) String() string {
	return fmt.Sprintf("Error h  L2 = %g and error q L2 = %g for dx = %g\n"+
		"Error h  L1 = %g and error q L1 = %g for dx = %g\n",
		r.L2[0], r.L2[1], r.Dx, r.L1[0], r.L1[1], r.Dx)
}

// ObservedOrder returns log(coarse/fine) / log(ratio), the convergence
// order seen between two errors whose step sizes differ by ratio.
func ObservedOrder(coarse, fine, ratio float64) float64 {
	return math.Log(coarse/fine) / math.Log(ratio)
}
