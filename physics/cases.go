// SPDX-License-Identifier: MIT

package physics

import (
	"fmt"
	"math"

	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
)

// Case names accepted by New.
const (
	CaseUniform    = "uniform"
	CaseLakeAtRest = "lake_at_rest"
	CaseDamBreak   = "dam_break"
)

// Cases lists the case names accepted by New.
func Cases() []string {
	return []string{CaseUniform, CaseLakeAtRest, CaseDamBreak}
}

// New builds the named case on geom.
//
// Errors: ErrGravity, ErrUnknownCase, ErrUnknownParam, ErrBadParam.
func New(name string, geom mesh.Geometry, g float64, p Params) (Model, error) {
	if !(g > 0) || math.IsInf(g, 0) {
		return nil, physicsErrorf(name, ErrGravity)
	}
	switch name {
	case CaseUniform:
		return asModel(NewUniform(geom, g, p))
	case CaseLakeAtRest:
		return asModel(NewLakeAtRest(geom, g, p))
	case CaseDamBreak:
		return asModel(NewDamBreak(geom, g, p))
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownCase)
	}
}

// asModel keeps a failed constructor from leaking a typed nil into Model.
func asModel[M Model](m M, err error) (Model, error) {
	if err != nil {
		return nil, err
	}

	return m, nil
}

// base carries what every case shares.
type base struct {
	name  string
	g     float64
	geom  mesh.Geometry
	topo  []float64
	exact *exactCache
}

func newBase(name string, geom mesh.Geometry, g float64) base {
	return base{name: name, g: g, geom: geom, topo: make([]float64, geom.NumberOfCells())}
}

// Name identifies the case.
func (b *base) Name() string { return b.name }

// Gravity returns g.
func (b *base) Gravity() float64 { return b.g }

// Topography returns a copy of z per cell.
func (b *base) Topography() []float64 {
	out := make([]float64, len(b.topo))
	copy(out, b.topo)

	return out
}

// ExactSolution returns the memoised exact state at t.
func (b *base) ExactSolution(t float64) (*matrix.Dense, error) {
	if b.exact == nil {
		return nil, physicsErrorf(b.name, ErrNoExactSolution)
	}
	s, err := b.exact.at(t)
	if err != nil {
		return nil, physicsErrorf(b.name, err)
	}

	return s, nil
}

// fillState builds a finite N×2 state with value(i, col) in every entry.
// A non-finite value, which only a non-finite parameter can produce, is
// reported as ErrBadParam.
func (b *base) fillState(value func(i, col int) float64) (*matrix.Dense, error) {
	s, err := matrix.NewDense(len(b.topo), matrix.StateCols, matrix.WithValidateNaNInf())
	if err != nil {
		return nil, physicsErrorf(b.name, err)
	}
	if err = s.Apply(func(i, j int, _ float64) float64 { return value(i, j) }); err != nil {
		return nil, physicsErrorf(b.name, fmt.Errorf("%w: %w", ErrBadParam, err))
	}

	return s, nil
}

// flatSource returns the zero source of a flat-bottom, frictionless case
// after checking the state shape.
func (b *base) flatSource(state *matrix.Dense) (*matrix.Dense, error) {
	if err := matrix.ValidateState(state, len(b.topo)); err != nil {
		return nil, physicsErrorf(b.name, err)
	}

	return matrix.NewState(len(b.topo))
}

// ---------- uniform ----------

// Uniform is a flat-bottom case with a constant state. Its exact solution is
// the initial condition at every time.
type Uniform struct {
	base
	h0, q0 float64
}

// NewUniform builds the "uniform" case. Params: h0 (default 1), q0 (default 0).
func NewUniform(geom mesh.Geometry, g float64, p Params) (*Uniform, error) {
	v, err := p.take(CaseUniform, map[string]float64{"h0": 1, "q0": 0})
	if err != nil {
		return nil, err
	}
	if !(v["h0"] > 0) {
		return nil, physicsErrorf(CaseUniform, fmt.Errorf("h0=%g: %w", v["h0"], ErrBadParam))
	}
	u := &Uniform{base: newBase(CaseUniform, geom, g), h0: v["h0"], q0: v["q0"]}
	if u.exact, err = newExactCache(func(float64) (*matrix.Dense, error) { return u.InitialCondition() }); err != nil {
		return nil, physicsErrorf(CaseUniform, err)
	}

	return u, nil
}

// InitialCondition returns (h0, q0) in every cell.
func (u *Uniform) InitialCondition() (*matrix.Dense, error) {
	return u.fillState(func(_, col int) float64 {
		if col == matrix.ColH {
			return u.h0
		}

		return u.q0
	})
}

// SourceTerm is zero on a flat bottom.
func (u *Uniform) SourceTerm(state *matrix.Dense) (*matrix.Dense, error) {
	return u.flatSource(state)
}

// ---------- lake at rest ----------

// LakeAtRest is still water with free surface H0 over the bump
// z(x) = max(0, zb - a·(x - xc)²). It is a steady state: the exact solution
// is the initial condition.
type LakeAtRest struct {
	base
	surface float64
}

// NewLakeAtRest builds the "lake_at_rest" case. Params: H0 (2),
// bump_height (0.2), bump_center (10), bump_curvature (0.05).
func NewLakeAtRest(geom mesh.Geometry, g float64, p Params) (*LakeAtRest, error) {
	v, err := p.take(CaseLakeAtRest, map[string]float64{
		"H0": 2, "bump_height": 0.2, "bump_center": 10, "bump_curvature": 0.05,
	})
	if err != nil {
		return nil, err
	}
	l := &LakeAtRest{base: newBase(CaseLakeAtRest, geom, g), surface: v["H0"]}
	for i, x := range geom.CellCenters() {
		d := x - v["bump_center"]
		l.topo[i] = math.Max(0, v["bump_height"]-v["bump_curvature"]*d*d)
		if !(l.surface > l.topo[i]) {
			return nil, physicsErrorf(CaseLakeAtRest, fmt.Errorf("H0=%g below bottom %g: %w", l.surface, l.topo[i], ErrBadParam))
		}
	}
	if l.exact, err = newExactCache(func(float64) (*matrix.Dense, error) { return l.InitialCondition() }); err != nil {
		return nil, physicsErrorf(CaseLakeAtRest, err)
	}

	return l, nil
}

// InitialCondition returns h = H0 - z, q = 0.
func (l *LakeAtRest) InitialCondition() (*matrix.Dense, error) {
	return l.fillState(func(i, col int) float64 {
		if col == matrix.ColH {
			return l.surface - l.topo[i]
		}

		return 0
	})
}

// SourceTerm returns (0, -g·h·dz/dx) with centred differences inside the
// domain and one-sided differences in the end cells.
func (l *LakeAtRest) SourceTerm(state *matrix.Dense) (*matrix.Dense, error) {
	n := len(l.topo)
	if err := matrix.ValidateState(state, n); err != nil {
		return nil, physicsErrorf(l.name, err)
	}
	src, err := matrix.NewState(n)
	if err != nil {
		return nil, physicsErrorf(l.name, err)
	}
	if n == 1 {
		return src, nil
	}
	dx := l.geom.SpaceStep()
	for i := 0; i < n; i++ {
		var dz float64
		switch i {
		case 0:
			dz = (l.topo[1] - l.topo[0]) / dx
		case n - 1:
			dz = (l.topo[n-1] - l.topo[n-2]) / dx
		default:
			dz = (l.topo[i+1] - l.topo[i-1]) / (2 * dx)
		}
		h, _ := state.Row(i)
		src.Raw()[i*matrix.StateCols+matrix.ColQ] = -l.g * h * dz
	}

	return src, nil
}

// ---------- dam break ----------

// DamBreak is a flat-bottom Riemann problem: (hL, uL) for x < x0 and
// (hR, uR) otherwise, released at t = 0. With the default zero velocities
// and hL > hR > 0 it is Stoker's dam break.
type DamBreak struct {
	base
	x0   float64
	l, r side
	rs   *riemannSolution
}

// NewDamBreak builds the "dam_break" case. Params: hL (2), hR (1), uL (0),
// uR (0), x0 (domain midpoint).
func NewDamBreak(geom mesh.Geometry, g float64, p Params) (*DamBreak, error) {
	centers := geom.CellCenters()
	mid := 0.5 * (centers[0] + centers[len(centers)-1])
	v, err := p.take(CaseDamBreak, map[string]float64{"hL": 2, "hR": 1, "uL": 0, "uR": 0, "x0": mid})
	if err != nil {
		return nil, err
	}
	if !(v["hL"] > 0) || !(v["hR"] > 0) {
		return nil, physicsErrorf(CaseDamBreak, fmt.Errorf("hL=%g hR=%g: %w", v["hL"], v["hR"], ErrBadParam))
	}
	d := &DamBreak{
		base: newBase(CaseDamBreak, geom, g),
		x0:   v["x0"],
		l:    side{h: v["hL"], u: v["uL"]},
		r:    side{h: v["hR"], u: v["uR"]},
	}
	if d.rs, err = solveRiemann(d.l, d.r, g); err != nil {
		return nil, physicsErrorf(CaseDamBreak, err)
	}
	if d.exact, err = newExactCache(d.buildExact); err != nil {
		return nil, physicsErrorf(CaseDamBreak, err)
	}

	return d, nil
}

// StarState returns the depth and velocity of the star region.
func (d *DamBreak) StarState() (h, u float64) { return d.rs.hs, d.rs.us }

// InitialCondition returns the two constant states split at x0.
func (d *DamBreak) InitialCondition() (*matrix.Dense, error) {
	return d.buildExact(0)
}

// SourceTerm is zero on a flat bottom.
func (d *DamBreak) SourceTerm(state *matrix.Dense) (*matrix.Dense, error) {
	return d.flatSource(state)
}

// buildExact samples the Riemann solution at every cell centre.
func (d *DamBreak) buildExact(t float64) (*matrix.Dense, error) {
	centers := d.geom.CellCenters()
	s, err := matrix.NewState(len(centers))
	if err != nil {
		return nil, err
	}
	for i, x := range centers {
		var h, u float64
		switch {
		case t <= 0 && x < d.x0:
			h, u = d.l.h, d.l.u
		case t <= 0:
			h, u = d.r.h, d.r.u
		default:
			h, u = d.rs.sample((x - d.x0) / t)
		}
		s.Raw()[i*matrix.StateCols+matrix.ColH] = h
		s.Raw()[i*matrix.StateCols+matrix.ColQ] = h * u
	}

	return s, nil
}
