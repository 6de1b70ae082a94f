// SPDX-License-Identifier: MIT

package physics

import "math"

const (
	riemannTol     = 1e-12 // relative change in h* that stops the Newton loop
	riemannMaxIter = 50
)

// side is a constant (h, u) state on one side of a Riemann problem.
type side struct {
	h, u float64
}

// riemannSolution is the exact solution of a wet-bed shallow-water Riemann
// problem: the star depth/velocity plus what is needed to sample it at any
// similarity coordinate xi = (x - x0)/t.
type riemannSolution struct {
	l, r   side
	cl, cr float64 // sqrt(g h) on each side
	hs, us float64 // star region
	g      float64
}

// waveFunc is f_K(h) and its derivative for the wave separating side k from
// the star region: a rarefaction when h <= h_K, a shock otherwise.
func waveFunc(h float64, k side, g float64) (f, df float64) {
	if h <= k.h {
		c := math.Sqrt(g * h)
		return 2 * (c - math.Sqrt(g*k.h)), g / c
	}
	gk := math.Sqrt(0.5 * g * (h + k.h) / (h * k.h))

	return (h - k.h) * gk, gk - g*(h-k.h)/(4*h*h*gk)
}

// solveRiemann finds h* with Newton's method on
// f(h) = f_L(h) + f_R(h) + u_R - u_L = 0.
//
// Errors: ErrDryState when the data violate the depth-positivity condition
// 2(c_L + c_R) > u_R - u_L, ErrNoConvergence after riemannMaxIter sweeps.
func solveRiemann(l, r side, g float64) (*riemannSolution, error) {
	cl, cr := math.Sqrt(g*l.h), math.Sqrt(g*r.h)
	du := r.u - l.u
	if 2*(cl+cr) <= du {
		return nil, ErrDryState
	}

	// two-rarefaction guess
	c0 := 0.5*(cl+cr) - 0.25*du
	h := c0 * c0 / g
	converged := false
	for it := 0; it < riemannMaxIter; it++ {
		fl, dfl := waveFunc(h, l, g)
		fr, dfr := waveFunc(h, r, g)
		next := h - (fl+fr+du)/(dfl+dfr)
		if next <= 0 {
			next = 0.5 * h // keep the iterate wet
		}
		change := math.Abs(next-h) / (0.5 * (next + h))
		h = next
		if change < riemannTol {
			converged = true
			break
		}
	}
	if !converged {
		return nil, ErrNoConvergence
	}

	fl, _ := waveFunc(h, l, g)
	fr, _ := waveFunc(h, r, g)

	return &riemannSolution{
		l: l, r: r, cl: cl, cr: cr,
		hs: h,
		us: 0.5*(l.u+r.u) + 0.5*(fr-fl),
		g:  g,
	}, nil
}

// sample returns (h, u) at xi = (x - x0)/t.
func (s *riemannSolution) sample(xi float64) (h, u float64) {
	cs := math.Sqrt(s.g * s.hs)
	if xi <= s.us {
		if s.hs > s.l.h { // left shock
			ql := math.Sqrt(0.5 * (s.hs + s.l.h) * s.hs / (s.l.h * s.l.h))
			if xi <= s.l.u-s.cl*ql {
				return s.l.h, s.l.u
			}
			return s.hs, s.us
		}
		// left rarefaction
		if xi <= s.l.u-s.cl {
			return s.l.h, s.l.u
		}
		if xi >= s.us-cs {
			return s.hs, s.us
		}
		u = (s.l.u + 2*s.cl + 2*xi) / 3
		c := (s.l.u + 2*s.cl - xi) / 3
		return c * c / s.g, u
	}

	if s.hs > s.r.h { // right shock
		qr := math.Sqrt(0.5 * (s.hs + s.r.h) * s.hs / (s.r.h * s.r.h))
		if xi >= s.r.u+s.cr*qr {
			return s.r.h, s.r.u
		}
		return s.hs, s.us
	}
	// right rarefaction
	if xi >= s.r.u+s.cr {
		return s.r.h, s.r.u
	}
	if xi <= s.us+cs {
		return s.hs, s.us
	}
	u = (s.r.u - 2*s.cr + 2*xi) / 3
	c := (-s.r.u + 2*s.cr + xi) / 3

	return c * c / s.g, u
}
