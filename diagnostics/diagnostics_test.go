// SPDX-License-Identifier: MIT

package diagnostics_test

import (
	"math"
	"testing"

	"github.com/YoshaTogame/TER/diagnostics"
	"github.com/YoshaTogame/TER/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(t *testing.T, cells int, offset float64) *matrix.Dense {
	t.Helper()
	s, err := matrix.NewState(cells)
	require.NoError(t, err)
	for i := 0; i < cells; i++ {
		require.NoError(t, s.Set(i, matrix.ColH, 1+0.1*float64(i)+offset))
		require.NoError(t, s.Set(i, matrix.ColQ, -0.3*float64(i)+offset))
	}

	return s
}

func TestErrors_Identical(t *testing.T) {
	a := ramp(t, 10, 0)

	l1, err := diagnostics.L1Error(a, a.CloneDense(), 0.1)
	require.NoError(t, err)
	require.Equal(t, diagnostics.Vec2{0, 0}, l1)

	l2, err := diagnostics.L2Error(a, a.CloneDense(), 0.1)
	require.NoError(t, err)
	require.Equal(t, diagnostics.Vec2{0, 0}, l2)
}

func TestErrors_ConstantOffset(t *testing.T) {
	const (
		n  = 10
		c  = 0.5
		dx = 0.1
	)
	exact := ramp(t, n, 0)
	state := ramp(t, n, -c) // sign of the offset must not matter

	l1, err := diagnostics.L1Error(state, exact, dx)
	require.NoError(t, err)
	assert.InDelta(t, n*c*dx, l1[0], 1e-12)
	assert.InDelta(t, n*c*dx, l1[1], 1e-12)

	l2, err := diagnostics.L2Error(state, exact, dx)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(n)*c*dx, l2[0], 1e-12)
	assert.InDelta(t, math.Sqrt(n)*c*dx, l2[1], 1e-12)
}

func TestErrors_Shape(t *testing.T) {
	_, err := diagnostics.L2Error(ramp(t, 3, 0), ramp(t, 4, 0), 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = diagnostics.L1Error(nil, ramp(t, 4, 0), 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = diagnostics.L1Error(ramp(t, 4, 0), nil, 1)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestReport(t *testing.T) {
	state, _ := matrix.NewDenseFrom(4, 2, []float64{2, 1, 2, 1, 2, 1, 2, 1})
	exact, _ := matrix.NewDenseFrom(4, 2, []float64{1, 0, 1, 0, 1, 0, 1, 0})
	r, err := diagnostics.NewReport(2, state, exact, 0.5)
	require.NoError(t, err)
	assert.Equal(t, diagnostics.Vec2{2, 2}, r.L1)
	assert.Equal(t, diagnostics.Vec2{1, 1}, r.L2)

	want := "Error h  L2 = 1 and error q L2 = 1 for dx = 0.5\n" +
		"Error h  L1 = 2 and error q L1 = 2 for dx = 0.5\n"
	assert.Equal(t, want, r.String())
}

func TestObservedOrder(t *testing.T) {
	assert.InDelta(t, 2.0, diagnostics.ObservedOrder(0.04, 0.01, 2), 1e-12)
	assert.InDelta(t, 1.0, diagnostics.ObservedOrder(0.3, 0.1, 3), 1e-12)
}
