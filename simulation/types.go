// SPDX-License-Identifier: MIT

package simulation

import (
	"errors"
	"fmt"

	"github.com/YoshaTogame/TER/diagnostics"
	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
)

var (
	// ErrNilCollaborator indicates a missing geometry, model, scheme or
	// results directory.
	ErrNilCollaborator = errors.New("simulation: nil collaborator")

	// ErrSaveFrequency indicates a save frequency below one iteration.
	ErrSaveFrequency = errors.New("simulation: save frequency must be >= 1")

	// ErrTimeWindow indicates a final time not after the initial time.
	ErrTimeWindow = errors.New("simulation: final time must be after initial time")

	// ErrNonPositiveDepth is reported in strict mode when a step leaves a
	// cell whose depth is not a finite positive number.
	ErrNonPositiveDepth = errors.New("simulation: non-positive depth")
)

// Phase is the state of the driver's state machine.
type Phase int

const (
	// Initializing covers scheme setup, the initial snapshot, topography
	// and probe resolution.
	Initializing Phase = iota

	// Stepping is one Scheme.Step plus the clock advance.
	Stepping

	// Sampling is the snapshot and probe output following a step.
	Sampling

	// Finished covers the final snapshot and the test-case report.
	Finished
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Initializing:
		return "Initializing"
	case Stepping:
		return "Stepping"
	case Sampling:
		return "Sampling"
	case Finished:
		return "Finished"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Options are the run parameters of the driver.
type Options struct {
	TimeStep      float64
	InitialTime   float64
	FinalTime     float64
	SaveFrequency int // iterations between snapshots

	// SaveFinalOnly writes one snapshot after the loop, with index
	// iterations/SaveFrequency, in addition to snapshot 0. A run shorter
	// than SaveFrequency therefore overwrites snapshot 0 with the final state.
	SaveFinalOnly bool

	TestCase bool // compare against the exact solution at the end

	// StrictDepth aborts the run on a non-positive depth. Off by default:
	// such a state is then written out as is.
	StrictDepth bool

	// Verbosity: 0 quiet, 1 progress, 2 one line per step. The test-case
	// report is logged at every level.
	Verbosity int
}

// Sampler receives probe sampling events.
type Sampler interface {
	Len() int
	Resolve(geom mesh.Geometry) error
	Emit(t float64, state *matrix.Dense, topo []float64) error
}

// Result summarises a finished run.
type Result struct {
	Iterations int
	FinalTime  float64
	Snapshots  []string            // distinct snapshot files, initial one first
	Errors     *diagnostics.Report // nil unless the run is a test case
}

// RunError is the error returned by Run. It records where the run stopped.
type RunError struct {
	Phase     Phase
	Iteration int
	Time      float64
	Err       error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("simulation: %s at iteration %d (t=%g): %v", e.Phase, e.Iteration, e.Time, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
