// SPDX-License-Identifier: MIT

package flux

import (
	"fmt"
	"math"

	"github.com/YoshaTogame/TER/matrix"
)

// Names accepted by New, and the display names returned by Provider.Name.
const (
	KindRusanov = "rusanov"
	KindHLL     = "hll"

	nameRusanov = "Rusanov"
	nameHLL     = "HLL"
)

// Kinds lists the numerical flux names accepted by New.
func Kinds() []string { return []string{KindRusanov, KindHLL} }

// solver computes the interface flux between a left and a right state.
type solver func(hl, ql, hr, qr, g float64) (fh, fq float64)

// Numerical is a first-order finite-volume flux built on an approximate
// Riemann solver.
type Numerical struct {
	name  string
	g     float64
	solve solver
	opts  Options
}

var _ Provider = (*Numerical)(nil)

// New returns the named numerical flux.
//
// Errors: ErrGravity, ErrUnknownFlux.
func New(kind string, g float64, opts ...Option) (*Numerical, error) {
	if !(g > 0) || math.IsInf(g, 0) {
		return nil, ErrGravity
	}
	o := DefaultOptions()
	for _, set := range opts {
		set(&o)
	}

	n := &Numerical{g: g, opts: o}
	switch kind {
	case KindRusanov:
		n.name, n.solve = nameRusanov, rusanov
	case KindHLL:
		n.name, n.solve = nameHLL, hll
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownFlux)
	}

	return n, nil
}

// Name returns the display name used in output file names.
func (n *Numerical) Name() string { return n.name }

// Flux returns -(F_{i+1/2} - F_{i-1/2}) for every cell.
//
// Implementation:
//   - Stage 1: validate the state shape.
//   - Stage 2: sweep the N+1 interfaces left to right, using ghost cells at
//     both ends, and scatter each interface flux into its two cells.
//
// Complexity: O(N) time, one N×2 allocation.
func (n *Numerical) Flux(t float64, state *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(state); err != nil {
		return nil, fmt.Errorf("%s.Flux: %w", n.name, err)
	}
	cells := state.Rows()
	if state.Cols() != matrix.StateCols {
		return nil, fmt.Errorf("%s.Flux: %w", n.name, matrix.ErrDimensionMismatch)
	}
	out, err := matrix.NewState(cells)
	if err != nil {
		return nil, fmt.Errorf("%s.Flux: %w", n.name, err)
	}
	net := out.Raw()

	// left ghost
	h0, q0 := state.Row(0)
	hl, ql := n.opts.left.ghost(h0, q0)
	if n.opts.inflow != nil {
		hl, ql = h0, n.opts.inflow(t)
	}

	for i := 0; i <= cells; i++ {
		var hr, qr float64
		if i < cells {
			hr, qr = state.Row(i)
		} else {
			hr, qr = n.opts.right.ghost(hl, ql) // hl, ql hold the last interior cell here
		}
		fh, fq := n.solve(hl, ql, hr, qr, n.g)
		if i > 0 { // outflow of cell i-1
			net[(i-1)*matrix.StateCols+matrix.ColH] -= fh
			net[(i-1)*matrix.StateCols+matrix.ColQ] -= fq
		}
		if i < cells { // inflow of cell i
			net[i*matrix.StateCols+matrix.ColH] += fh
			net[i*matrix.StateCols+matrix.ColQ] += fq
		}
		hl, ql = hr, qr
	}

	return out, nil
}

// physical returns F(h, q) = (q, q²/h + g·h²/2).
func physical(h, q, g float64) (float64, float64) {
	return q, q*q/h + 0.5*g*h*h
}

// rusanov is the local Lax-Friedrichs flux
// ½(F_L + F_R) - ½·s·(U_R - U_L), s = max(|u_L| + c_L, |u_R| + c_R).
func rusanov(hl, ql, hr, qr, g float64) (float64, float64) {
	fhl, fql := physical(hl, ql, g)
	fhr, fqr := physical(hr, qr, g)
	s := math.Max(math.Abs(ql/hl)+math.Sqrt(g*hl), math.Abs(qr/hr)+math.Sqrt(g*hr))

	return 0.5*(fhl+fhr) - 0.5*s*(hr-hl), 0.5*(fql+fqr) - 0.5*s*(qr-ql)
}

// hll is the Harten-Lax-van Leer flux with Davis wave-speed estimates.
func hll(hl, ql, hr, qr, g float64) (float64, float64) {
	ul, ur := ql/hl, qr/hr
	cl, cr := math.Sqrt(g*hl), math.Sqrt(g*hr)
	sl := math.Min(ul-cl, ur-cr)
	sr := math.Max(ul+cl, ur+cr)

	fhl, fql := physical(hl, ql, g)
	if sl >= 0 {
		return fhl, fql
	}
	fhr, fqr := physical(hr, qr, g)
	if sr <= 0 {
		return fhr, fqr
	}
	inv := 1 / (sr - sl)

	return (sr*fhl - sl*fhr + sl*sr*(hr-hl)) * inv,
		(sr*fql - sl*fqr + sl*sr*(qr-ql)) * inv
}
