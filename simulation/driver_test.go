// SPDX-License-Identifier: MIT

package simulation_test

import (
	"bytes"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/YoshaTogame/TER/flux"
	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
	"github.com/YoshaTogame/TER/output"
	"github.com/YoshaTogame/TER/physics"
	"github.com/YoshaTogame/TER/probe"
	"github.com/YoshaTogame/TER/simulation"
	"github.com/YoshaTogame/TER/timescheme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run wires a full run of caseName and returns the scheme for inspection.
type run struct {
	geom    *mesh.Uniform
	model   physics.Model
	scheme  timescheme.Scheme
	results *output.Results
	logs    *bytes.Buffer
	driver  *simulation.Driver
}

func newRun(t *testing.T, caseName string, cells int, kind string, opts simulation.Options, probes []probe.Probe) *run {
	t.Helper()
	geom, err := mesh.NewUniform(0, 20, cells)
	require.NoError(t, err)
	if caseName == physics.CaseUniform {
		geom, err = mesh.NewUniform(0, 1, cells)
		require.NoError(t, err)
	}
	model, err := physics.New(caseName, geom, physics.DefaultGravity, nil)
	require.NoError(t, err)
	f, err := flux.New(flux.KindRusanov, model.Gravity())
	require.NoError(t, err)
	s, err := timescheme.New(kind, f, model)
	require.NoError(t, err)
	res, err := output.NewResults(filepath.Join(t.TempDir(), "results"))
	require.NoError(t, err)

	var sampler simulation.Sampler
	if len(probes) > 0 {
		sampler = probe.NewSampler(res.Dir(), probes, model.Gravity())
	}
	logs := &bytes.Buffer{}
	d, err := simulation.New(opts, geom, model, f.Name(), s, res, sampler, log.New(logs, "", 0))
	require.NoError(t, err)

	return &run{geom: geom, model: model, scheme: s, results: res, logs: logs, driver: d}
}

func lineCount(t *testing.T, path string) int {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	return strings.Count(string(raw), "\n")
}

// Water at rest with zero flux and source is not moved by any scheme.
func TestRun_FixedPoint(t *testing.T) {
	for _, kind := range timescheme.Kinds() {
		opts := simulation.Options{TimeStep: 0.1, FinalTime: 0.5, SaveFrequency: 1}
		r := newRun(t, physics.CaseUniform, 10, kind, opts, nil)
		init0, err := r.model.InitialCondition()
		require.NoError(t, err)

		res, err := r.driver.Run()
		require.NoError(t, err)
		assert.Equal(t, 5, res.Iterations, kind)
		assert.Equal(t, 0.5, res.FinalTime, kind)
		assert.Len(t, res.Snapshots, 6, kind)
		assert.Nil(t, res.Errors)
		assert.Equal(t, simulation.Finished, r.driver.Phase())
		same, err := matrix.AllClose(r.scheme.State(), init0, 0, 0)
		require.NoError(t, err)
		require.True(t, same, "%s: %v", kind, r.scheme.State())
	}
}

// The clock is t0 + n·dt: dt = 0.1 reaches tf = 1 after exactly 10 steps.
func TestRun_ClockCountsSteps(t *testing.T) {
	opts := simulation.Options{TimeStep: 0.1, FinalTime: 1, SaveFrequency: 5}
	r := newRun(t, physics.CaseUniform, 4, timescheme.KindEuler, opts, nil)

	res, err := r.driver.Run()
	require.NoError(t, err)
	assert.Equal(t, 10, res.Iterations)
	assert.Equal(t, 1.0, res.FinalTime)
	assert.Len(t, res.Snapshots, 3)
}

func TestRun_SaveFrequency(t *testing.T) {
	opts := simulation.Options{TimeStep: 0.25, FinalTime: 3, SaveFrequency: 4}
	r := newRun(t, physics.CaseUniform, 10, timescheme.KindRK2, opts, nil)

	res, err := r.driver.Run()
	require.NoError(t, err)
	require.Equal(t, 12, res.Iterations)

	want := make([]string, 0, 4)
	for k := 0; k <= 3; k++ {
		want = append(want, r.results.SolutionPath("Rusanov", k))
	}
	require.Equal(t, want, res.Snapshots)
	for _, p := range res.Snapshots {
		assert.Equal(t, 11, lineCount(t, p), p) // header + one row per cell
	}
	_, err = os.Stat(r.results.SolutionPath("Rusanov", 4))
	require.True(t, os.IsNotExist(err))
	assert.Equal(t, 10, lineCount(t, r.results.TopographyPath()))
}

func TestRun_SaveFinalOnly(t *testing.T) {
	opts := simulation.Options{TimeStep: 0.25, FinalTime: 2.9, SaveFrequency: 4, SaveFinalOnly: true}
	r := newRun(t, physics.CaseUniform, 10, timescheme.KindEuler, opts, nil)

	res, err := r.driver.Run()
	require.NoError(t, err)
	require.Equal(t, 12, res.Iterations)
	require.Equal(t, []string{
		r.results.SolutionPath("Rusanov", 0),
		r.results.SolutionPath("Rusanov", 3),
	}, res.Snapshots)
}

// A run shorter than the save frequency writes its final state over
// snapshot 0, which is listed once.
func TestRun_SaveFinalOnlyShortRun(t *testing.T) {
	opts := simulation.Options{TimeStep: 0.25, FinalTime: 0.5, SaveFrequency: 4, SaveFinalOnly: true}
	r := newRun(t, physics.CaseUniform, 10, timescheme.KindEuler, opts, nil)

	res, err := r.driver.Run()
	require.NoError(t, err)
	require.Equal(t, 2, res.Iterations)
	require.Equal(t, []string{r.results.SolutionPath("Rusanov", 0)}, res.Snapshots)
	assert.Equal(t, 11, lineCount(t, res.Snapshots[0]))
}

func TestRun_TestCaseReport(t *testing.T) {
	opts := simulation.Options{TimeStep: 0.1, FinalTime: 0.5, SaveFrequency: 10, TestCase: true}
	r := newRun(t, physics.CaseUniform, 10, timescheme.KindRK2, opts, nil)

	res, err := r.driver.Run()
	require.NoError(t, err)
	require.NotNil(t, res.Errors)
	assert.Equal(t, [2]float64{0, 0}, [2]float64(res.Errors.L1))
	assert.Equal(t, [2]float64{0, 0}, [2]float64(res.Errors.L2))
	assert.Contains(t, r.logs.String(), "Error h  L2 = 0 and error q L2 = 0 for dx = 0.1")
	assert.Contains(t, r.logs.String(), "Error h  L1 = 0 and error q L1 = 0 for dx = 0.1")
	assert.Equal(t, 11, lineCount(t, r.results.ExactPath()))
}

func TestRun_Verbosity(t *testing.T) {
	quiet := newRun(t, physics.CaseUniform, 4, timescheme.KindEuler,
		simulation.Options{TimeStep: 0.1, FinalTime: 0.3, SaveFrequency: 1}, nil)
	_, err := quiet.driver.Run()
	require.NoError(t, err)
	assert.Empty(t, quiet.logs.String())

	loud := newRun(t, physics.CaseUniform, 4, timescheme.KindEuler,
		simulation.Options{TimeStep: 0.1, FinalTime: 0.3, SaveFrequency: 1, Verbosity: 2}, nil)
	_, err = loud.driver.Run()
	require.NoError(t, err)
	assert.Contains(t, loud.logs.String(), "Saving solution at t = 0\n")
	assert.Contains(t, loud.logs.String(), "iteration 3, t = ")
}

// Probes are sampled every SaveFrequency/10 iterations, at least every one.
func TestRun_Probes(t *testing.T) {
	probes := []probe.Probe{{Ref: 1, Position: 0.05}, {Ref: 2, Position: 0.95}}

	for _, tc := range []struct {
		saveFreq, records int
	}{
		{20, 6}, // every 2nd of 12 iterations
		{4, 12}, // every iteration
	} {
		opts := simulation.Options{TimeStep: 0.25, FinalTime: 3, SaveFrequency: tc.saveFreq}
		r := newRun(t, physics.CaseUniform, 10, timescheme.KindEuler, opts, probes)
		_, err := r.driver.Run()
		require.NoError(t, err)

		for _, ref := range []string{"probe_1.txt", "probe_2.txt"} {
			assert.Equal(t, tc.records, lineCount(t, filepath.Join(r.results.Dir(), ref)), "save %d", tc.saveFreq)
		}
	}
}

// The dam break error shrinks under refinement.
func TestRun_DamBreakConverges(t *testing.T) {
	l1 := func(cells int, dt float64) float64 {
		opts := simulation.Options{TimeStep: dt, FinalTime: 1, SaveFrequency: 1000, TestCase: true, StrictDepth: true}
		r := newRun(t, physics.CaseDamBreak, cells, timescheme.KindRK2, opts, nil)
		res, err := r.driver.Run()
		require.NoError(t, err)

		return res.Errors.L1[matrix.ColH]
	}
	coarse, fine := l1(100, 0.01), l1(200, 0.005)
	assert.Less(t, fine, coarse)
	assert.Greater(t, coarse, 0.0)
}

// A ramped left inflow against a right wall fills the channel; the ramp is
// evaluated at the RK2 trial time t+dt.
func TestRun_LeftInflow(t *testing.T) {
	geom, err := mesh.NewUniform(0, 1, 10)
	require.NoError(t, err)
	model, err := physics.New(physics.CaseUniform, geom, physics.DefaultGravity, nil)
	require.NoError(t, err)

	ramp := flux.LinearRamp(0.2, 0.1)
	var seen []float64
	f, err := flux.New(flux.KindRusanov, model.Gravity(),
		flux.WithBoundaries(flux.Transmissive, flux.Wall),
		flux.WithLeftDischarge(func(tt float64) float64 {
			seen = append(seen, tt)
			return ramp(tt)
		}))
	require.NoError(t, err)
	s, err := timescheme.New(timescheme.KindRK2, f, model)
	require.NoError(t, err)
	res, err := output.NewResults(t.TempDir())
	require.NoError(t, err)
	opts := simulation.Options{TimeStep: 0.01, FinalTime: 0.3, SaveFrequency: 10, StrictDepth: true}
	d, err := simulation.New(opts, geom, model, f.Name(), s, res, nil, nil)
	require.NoError(t, err)

	out, err := d.Run()
	require.NoError(t, err)
	assert.Equal(t, 0.0, seen[0])
	assert.Equal(t, 0.01, seen[1])
	assert.Len(t, seen, 2*out.Iterations)

	mass := 0.0
	for i := 0; i < 10; i++ {
		h, _ := s.State().Row(i)
		mass += h
	}
	assert.Greater(t, mass, 10.0)
	_, q0 := s.State().Row(0)
	assert.Greater(t, q0, 0.0)
}

// drain is a scheme that removes depth at a fixed rate and can fail on a
// given step.
type drain struct {
	state  *matrix.Dense
	t0     float64
	rate   float64
	failAt int
	steps  int
}

var errBoom = errors.New("boom")

func (d *drain) Name() string { return "drain" }
func (d *drain) Order() int   { return 1 }
func (d *drain) Initialize(p timescheme.Params, _ mesh.Geometry, init0 *matrix.Dense) error {
	d.state, d.t0 = init0.CloneDense(), p.InitialTime
	return nil
}
func (d *drain) Step(float64) error {
	d.steps++
	if d.steps == d.failAt {
		return errBoom
	}
	for i := 0; i < d.state.Rows(); i++ {
		d.state.Raw()[i*matrix.StateCols+matrix.ColH] -= d.rate
	}

	return nil
}
func (d *drain) State() *matrix.Dense { return d.state }
func (d *drain) InitialTime() float64 { return d.t0 }

func newDrainDriver(t *testing.T, s *drain, strict bool) *simulation.Driver {
	t.Helper()
	geom, err := mesh.NewUniform(0, 1, 3)
	require.NoError(t, err)
	model, err := physics.New(physics.CaseUniform, geom, physics.DefaultGravity, nil)
	require.NoError(t, err)
	res, err := output.NewResults(t.TempDir())
	require.NoError(t, err)
	opts := simulation.Options{TimeStep: 0.5, FinalTime: 2, SaveFrequency: 1, StrictDepth: strict}
	d, err := simulation.New(opts, geom, model, "Test", s, res, nil, nil)
	require.NoError(t, err)

	return d
}

func TestRun_StrictDepth(t *testing.T) {
	_, err := newDrainDriver(t, &drain{rate: 0.5}, true).Run()
	var re *simulation.RunError
	require.ErrorAs(t, err, &re)
	require.ErrorIs(t, err, simulation.ErrNonPositiveDepth)
	assert.Equal(t, simulation.Stepping, re.Phase)
	assert.Equal(t, 2, re.Iteration)
	assert.Equal(t, 1.0, re.Time)

	// without strict mode the dry state is written out
	res, err := newDrainDriver(t, &drain{rate: 0.5}, false).Run()
	require.NoError(t, err)
	assert.Equal(t, 4, res.Iterations)
}

func TestRun_SchemeFailure(t *testing.T) {
	_, err := newDrainDriver(t, &drain{rate: 0.1, failAt: 3}, false).Run()
	var re *simulation.RunError
	require.ErrorAs(t, err, &re)
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, simulation.Stepping, re.Phase)
	assert.Equal(t, 2, re.Iteration)
	assert.Contains(t, err.Error(), "Stepping at iteration 2")
}

func TestRun_ResultsDirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	geom, _ := mesh.NewUniform(0, 1, 3)
	model, _ := physics.New(physics.CaseUniform, geom, physics.DefaultGravity, nil)
	res, _ := output.NewResults(filepath.Join(blocker, "results"))
	d, err := simulation.New(simulation.Options{TimeStep: 0.5, FinalTime: 1, SaveFrequency: 1},
		geom, model, "Test", &drain{}, res, nil, nil)
	require.NoError(t, err)

	_, err = d.Run()
	var re *simulation.RunError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, simulation.Initializing, re.Phase)
}

func TestNew_Errors(t *testing.T) {
	geom, _ := mesh.NewUniform(0, 1, 3)
	model, _ := physics.New(physics.CaseUniform, geom, physics.DefaultGravity, nil)
	res, _ := output.NewResults(t.TempDir())
	ok := simulation.Options{TimeStep: 0.5, FinalTime: 1, SaveFrequency: 1}

	_, err := simulation.New(ok, nil, model, "x", &drain{}, res, nil, nil)
	require.ErrorIs(t, err, simulation.ErrNilCollaborator)

	bad := ok
	bad.SaveFrequency = 0
	_, err = simulation.New(bad, geom, model, "x", &drain{}, res, nil, nil)
	require.ErrorIs(t, err, simulation.ErrSaveFrequency)

	bad = ok
	bad.FinalTime = 0
	_, err = simulation.New(bad, geom, model, "x", &drain{}, res, nil, nil)
	require.ErrorIs(t, err, simulation.ErrTimeWindow)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "Initializing", simulation.Initializing.String())
	assert.Equal(t, "Sampling", simulation.Sampling.String())
	assert.Equal(t, "Phase(9)", simulation.Phase(9).String())
}
