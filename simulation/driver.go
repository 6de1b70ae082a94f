// SPDX-License-Identifier: MIT

// Package simulation drives a run: it owns the simulation clock, calls the
// time scheme once per iteration and triggers snapshot, probe and
// diagnostic output.
//
// The driver is a four-phase state machine:
//
//	Initializing → (Stepping → Sampling)* → Finished
//
// The loop condition t < tf is tested before each step, so the last step
// may push the clock to or past tf. After n steps the clock reads
// t0 + n·dt, not a running sum of dt. Where the running sum rounds below
// tf the two disagree on the step count: dt = 0.1 on [0, 1] takes 10 steps
// here and 11 with an accumulated clock, and the snapshot and probe files
// shift with it. The first error of any collaborator ends the run; nothing is
// retried.
package simulation

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/YoshaTogame/TER/diagnostics"
	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
	"github.com/YoshaTogame/TER/output"
	"github.com/YoshaTogame/TER/physics"
	"github.com/YoshaTogame/TER/timescheme"
)

const banner = "===================================================================================================="

// Driver runs one simulation.
type Driver struct {
	opts     Options
	geom     mesh.Geometry
	model    physics.Model
	fluxName string
	scheme   timescheme.Scheme
	results  *output.Results
	sampler  Sampler
	log      *log.Logger

	phase     Phase
	iteration int
	clock     float64

	centers []float64
	topo    []float64
}

// New wires a driver. sampler may be nil when no probes are configured;
// a nil logger discards progress output.
//
// Errors: ErrNilCollaborator, ErrSaveFrequency, ErrTimeWindow.
func New(
	opts Options,
	geom mesh.Geometry,
	model physics.Model,
	fluxName string,
	scheme timescheme.Scheme,
	results *output.Results,
	sampler Sampler,
	logger *log.Logger,
) (*Driver, error) {
	if geom == nil || model == nil || scheme == nil || results == nil {
		return nil, ErrNilCollaborator
	}
	if opts.SaveFrequency < 1 {
		return nil, fmt.Errorf("save frequency %d: %w", opts.SaveFrequency, ErrSaveFrequency)
	}
	if !(opts.FinalTime > opts.InitialTime) {
		return nil, fmt.Errorf("[%g, %g]: %w", opts.InitialTime, opts.FinalTime, ErrTimeWindow)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Driver{
		opts:     opts,
		geom:     geom,
		model:    model,
		fluxName: fluxName,
		scheme:   scheme,
		results:  results,
		sampler:  sampler,
		log:      logger,
	}, nil
}

// Phase returns the current phase.
func (d *Driver) Phase() Phase { return d.phase }

// probePeriod is the probe cadence in iterations: a tenth of the save
// frequency, at least one.
func (d *Driver) probePeriod() int {
	if p := d.opts.SaveFrequency / 10; p > 1 {
		return p
	}

	return 1
}

func (d *Driver) fail(err error) error {
	return &RunError{Phase: d.phase, Iteration: d.iteration, Time: d.clock, Err: err}
}

// Run executes the whole simulation. A Driver runs once.
func (d *Driver) Run() (Result, error) {
	var res Result

	// Initializing
	d.phase, d.iteration, d.clock = Initializing, 0, d.opts.InitialTime
	if d.opts.Verbosity > 0 {
		d.log.Println(banner)
		d.log.Printf("Time loop... (%s, %s flux, %d cells)", d.scheme.Name(), d.fluxName, d.geom.NumberOfCells())
	}
	if err := d.initialize(&res); err != nil {
		return res, d.fail(err)
	}

	t0, dt, tf := d.opts.InitialTime, d.opts.TimeStep, d.opts.FinalTime
	saveFreq, probeEvery := d.opts.SaveFrequency, d.probePeriod()
	probes := d.sampler != nil && d.sampler.Len() > 0

	for d.clock < tf {
		d.phase = Stepping
		if err := d.scheme.Step(d.clock); err != nil {
			return res, d.fail(err)
		}
		d.iteration++
		d.clock = t0 + float64(d.iteration)*dt
		if d.opts.StrictDepth {
			if err := checkDepth(d.scheme.State()); err != nil {
				return res, d.fail(err)
			}
		}
		if d.opts.Verbosity > 1 {
			d.log.Printf("iteration %d, t = %g", d.iteration, d.clock)
		}

		d.phase = Sampling
		if !d.opts.SaveFinalOnly && d.iteration%saveFreq == 0 {
			if err := d.save(&res, d.iteration/saveFreq); err != nil {
				return res, d.fail(err)
			}
		}
		if probes && d.iteration%probeEvery == 0 {
			if err := d.sampler.Emit(d.clock, d.scheme.State(), d.topo); err != nil {
				return res, d.fail(err)
			}
		}
	}

	// Finished
	d.phase = Finished
	res.Iterations, res.FinalTime = d.iteration, d.clock
	if d.opts.SaveFinalOnly {
		if err := d.save(&res, d.iteration/saveFreq); err != nil {
			return res, d.fail(err)
		}
	}
	if d.opts.TestCase {
		report, err := d.compare()
		if err != nil {
			return res, d.fail(err)
		}
		res.Errors = report
		d.log.Print(report)
	}
	if d.opts.Verbosity > 0 {
		d.log.Printf("Solved in %d iterations, t = %g", d.iteration, d.clock)
		d.log.Println(banner)
	}

	return res, nil
}

// initialize sets up the scheme and writes the static output.
func (d *Driver) initialize(res *Result) error {
	init0, err := d.model.InitialCondition()
	if err != nil {
		return err
	}
	p := timescheme.Params{TimeStep: d.opts.TimeStep, InitialTime: d.opts.InitialTime}
	if err = d.scheme.Initialize(p, d.geom, init0); err != nil {
		return err
	}
	d.clock = d.scheme.InitialTime()
	d.centers, d.topo = d.geom.CellCenters(), d.model.Topography()

	if err = d.results.Prepare(); err != nil {
		return err
	}
	if err = d.save(res, 0); err != nil {
		return err
	}
	if err = output.WriteTopography(d.results.TopographyPath(), d.centers, d.topo); err != nil {
		return err
	}
	if d.sampler != nil {
		if err = d.sampler.Resolve(d.geom); err != nil {
			return err
		}
	}

	return nil
}

// save writes snapshot index of the current state. Rewriting an index
// already listed in res replaces that file and is not listed again.
func (d *Driver) save(res *Result, index int) error {
	if d.opts.Verbosity > 0 {
		d.log.Printf("Saving solution at t = %g", d.clock)
	}
	path := d.results.SolutionPath(d.fluxName, index)
	if err := output.WriteSnapshot(path, d.centers, d.scheme.State(), d.topo, d.model.Gravity()); err != nil {
		return err
	}
	if n := len(res.Snapshots); n == 0 || res.Snapshots[n-1] != path {
		res.Snapshots = append(res.Snapshots, path)
	}

	return nil
}

// compare writes the exact solution at the final clock and measures the
// error of the computed state against it.
func (d *Driver) compare() (*diagnostics.Report, error) {
	exact, err := d.model.ExactSolution(d.clock)
	if err != nil {
		return nil, err
	}
	if err = output.WriteSnapshot(d.results.ExactPath(), d.centers, exact, d.topo, d.model.Gravity()); err != nil {
		return nil, err
	}

	return diagnostics.NewReport(d.clock, d.scheme.State(), exact, d.geom.SpaceStep())
}

// checkDepth reports the first cell whose depth is not strictly positive.
func checkDepth(state *matrix.Dense) error {
	var err error
	state.Do(func(i, j int, v float64) bool {
		if j == matrix.ColH && (!(v > 0) || math.IsInf(v, 0)) {
			err = fmt.Errorf("cell %d: h=%g: %w", i, v, ErrNonPositiveDepth)
			return false
		}

		return true
	})

	return err
}
