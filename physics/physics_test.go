// SPDX-License-Identifier: MIT

package physics_test

import (
	"math"
	"testing"

	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
	"github.com/YoshaTogame/TER/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const g = physics.DefaultGravity

func uniformMesh(t *testing.T, xmin, xmax float64, n int) *mesh.Uniform {
	t.Helper()
	m, err := mesh.NewUniform(xmin, xmax, n)
	require.NoError(t, err)

	return m
}

func TestHydraulics(t *testing.T) {
	assert.Equal(t, 2.0, physics.Velocity(1.5, 3))
	assert.InDelta(t, 2.0/math.Sqrt(g), physics.Froude(1, -2, g), 1e-15)
	assert.Equal(t, 3.5, physics.FreeSurface(1.5, 2))
	assert.InDelta(t, math.Sqrt(2*g), physics.WaveSpeed(2, g), 1e-15)

	// Unguarded: a dry cell produces non-finite diagnostics.
	assert.True(t, math.IsInf(physics.Velocity(0, 1), 1))
	assert.True(t, math.IsNaN(physics.Froude(0, 0, g)))
}

func TestNew_Errors(t *testing.T) {
	m := uniformMesh(t, 0, 1, 4)

	_, err := physics.New("tsunami", m, g, nil)
	require.ErrorIs(t, err, physics.ErrUnknownCase)

	_, err = physics.New(physics.CaseUniform, m, 0, nil)
	require.ErrorIs(t, err, physics.ErrGravity)

	_, err = physics.New(physics.CaseUniform, m, g, physics.Params{"depth": 1})
	require.ErrorIs(t, err, physics.ErrUnknownParam)

	_, err = physics.New(physics.CaseUniform, m, g, physics.Params{"h0": -1})
	require.ErrorIs(t, err, physics.ErrBadParam)

	_, err = physics.New(physics.CaseLakeAtRest, uniformMesh(t, 0, 20, 40), g, physics.Params{"H0": 0.1})
	require.ErrorIs(t, err, physics.ErrBadParam)

	_, err = physics.New(physics.CaseDamBreak, m, g, physics.Params{"hL": 1, "hR": 1, "uL": -10, "uR": 10})
	require.ErrorIs(t, err, physics.ErrDryState)
}

func TestUniform(t *testing.T) {
	m := uniformMesh(t, 0, 1, 10)
	model, err := physics.New(physics.CaseUniform, m, g, physics.Params{"h0": 1.5, "q0": 0.3})
	require.NoError(t, err)
	require.Equal(t, physics.CaseUniform, model.Name())
	require.Equal(t, g, model.Gravity())

	ic, err := model.InitialCondition()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		h, q := ic.Row(i)
		require.Equal(t, 1.5, h)
		require.Equal(t, 0.3, q)
	}
	require.Equal(t, make([]float64, 10), model.Topography())

	src, err := model.SourceTerm(ic)
	require.NoError(t, err)
	require.Equal(t, make([]float64, 20), src.Raw())

	exact, err := model.ExactSolution(3.7)
	require.NoError(t, err)
	require.Equal(t, ic.Raw(), exact.Raw())

	bad, _ := matrix.NewState(3)
	_, err = model.SourceTerm(bad)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestInitialCondition_NonFiniteParam(t *testing.T) {
	m := uniformMesh(t, 0, 20, 8)
	cases := []struct {
		name   string
		params physics.Params
	}{
		{physics.CaseUniform, physics.Params{"q0": math.NaN()}},
		{physics.CaseLakeAtRest, physics.Params{"H0": math.Inf(1)}},
	}
	for _, tc := range cases {
		model, err := physics.New(tc.name, m, g, tc.params)
		require.NoError(t, err, tc.name)

		_, err = model.InitialCondition()
		require.ErrorIs(t, err, physics.ErrBadParam, tc.name)
		require.ErrorIs(t, err, matrix.ErrNaNInf, tc.name)
	}
}

func TestLakeAtRest(t *testing.T) {
	m := uniformMesh(t, 0, 20, 20) // centres 0.5, 1.5, ..., 19.5
	model, err := physics.New(physics.CaseLakeAtRest, m, g, nil)
	require.NoError(t, err)

	topo := model.Topography()
	ic, err := model.InitialCondition()
	require.NoError(t, err)
	for i, z := range topo {
		h, q := ic.Row(i)
		require.InDelta(t, 2.0, physics.FreeSurface(h, z), 1e-14, "flat free surface at cell %d", i)
		require.Zero(t, q)
	}
	assert.Zero(t, topo[0])
	assert.InDelta(t, 0.2-0.05*0.25, topo[9], 1e-15) // x = 9.5

	src, err := model.SourceTerm(ic)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		sh, sq := src.Row(i)
		require.Zero(t, sh)
		switch {
		case topo[i] == 0 && (i == 0 || topo[i-1] == 0) && (i == 19 || topo[i+1] == 0):
			require.Zero(t, sq, "no slope at cell %d", i)
		case i == 8: // upstream flank: dz/dx > 0
			require.Less(t, sq, 0.0)
		case i == 11: // downstream flank: dz/dx < 0
			require.Greater(t, sq, 0.0)
		}
	}

	exact, err := model.ExactSolution(5)
	require.NoError(t, err)
	require.Equal(t, ic.Raw(), exact.Raw())
}

func TestDamBreak_StarState(t *testing.T) {
	m := uniformMesh(t, 0, 10, 100)
	model, err := physics.New(physics.CaseDamBreak, m, g, nil)
	require.NoError(t, err)
	db := model.(*physics.DamBreak)

	hs, us := db.StarState()
	require.Greater(t, hs, 1.0)
	require.Less(t, hs, 2.0)

	// left rarefaction and right shock must agree on u*
	fromLeft := 2 * (math.Sqrt(g*2) - math.Sqrt(g*hs))
	fromRight := (hs - 1) * math.Sqrt(0.5*g*(hs+1)/hs)
	require.InDelta(t, fromLeft, us, 1e-10)
	require.InDelta(t, fromRight, us, 1e-10)
}

func TestDamBreak_Exact(t *testing.T) {
	m := uniformMesh(t, 0, 10, 100)
	model, err := physics.New(physics.CaseDamBreak, m, g, nil)
	require.NoError(t, err)

	ic, err := model.InitialCondition()
	require.NoError(t, err)
	h0, _ := ic.Row(0)
	h99, _ := ic.Row(99)
	require.Equal(t, 2.0, h0)
	require.Equal(t, 1.0, h99)

	exact, err := model.ExactSolution(0.2)
	require.NoError(t, err)
	// waves travel at most ~5 m/s: the ends are untouched at t = 0.2
	h0, q0 := exact.Row(0)
	h99, q99 := exact.Row(99)
	require.Equal(t, 2.0, h0)
	require.Zero(t, q0)
	require.Equal(t, 1.0, h99)
	require.Zero(t, q99)

	// flow is to the right everywhere, depth decreases monotonically
	prev := math.Inf(1)
	for i := 0; i < 100; i++ {
		h, q := exact.Row(i)
		require.GreaterOrEqual(t, q, 0.0)
		require.LessOrEqual(t, h, prev+1e-12)
		prev = h
	}

	// callers own the returned matrix
	exact.Raw()[0] = -1
	again, err := model.ExactSolution(0.2)
	require.NoError(t, err)
	h0, _ = again.Row(0)
	require.Equal(t, 2.0, h0)
}
