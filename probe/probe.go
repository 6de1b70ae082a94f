// SPDX-License-Identifier: MIT

// Package probe samples the solution at fixed positions of the domain.
//
// A probe is resolved once to the cell whose centre is nearest to its
// position; no interpolation is performed. Each sampling event appends one
// comma-separated record "time,H,h,u,q,Fr" to the probe's own file
// probe_<ref>.txt in the results directory.
package probe

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/mesh"
	"github.com/YoshaTogame/TER/physics"
)

var (
	// ErrNoCells indicates probe resolution against an empty set of centres.
	ErrNoCells = errors.New("probe: no cell centers to resolve against")

	// ErrNotResolved indicates Emit was called before Resolve.
	ErrNotResolved = errors.New("probe: indices not resolved")
)

// Probe is a fixed sampling location identified by Ref.
type Probe struct {
	Ref      int
	Position float64
}

// ResolveIndices returns, for every position, the index of the nearest
// centre. The scan keeps the first minimum, so a position exactly halfway
// between two centres resolves to the lower index.
//
// Complexity: O(len(positions)·len(centers)).
func ResolveIndices(positions, centers []float64) ([]int, error) {
	if len(centers) == 0 {
		return nil, ErrNoCells
	}
	out := make([]int, len(positions))
	for p, x := range positions {
		best, dist := 0, math.Abs(centers[0]-x)
		for i := 1; i < len(centers); i++ {
			if d := math.Abs(centers[i] - x); d < dist {
				best, dist = i, d
			}
		}
		out[p] = best
	}

	return out, nil
}

// Record is one probe sample.
type Record struct {
	Time        float64
	FreeSurface float64 // H = h + z
	Depth       float64 // h
	Velocity    float64 // u = q/h
	Discharge   float64 // q
	Froude      float64 // |u| / sqrt(g·h)
}

// NewRecord derives the sample of cell index from state and topography.
// Depth is not guarded: a dry cell yields non-finite velocity and Froude.
func NewRecord(t float64, state *matrix.Dense, topo []float64, index int, g float64) (Record, error) {
	h, err := state.At(index, matrix.ColH)
	if err != nil {
		return Record{}, err
	}
	q, _ := state.At(index, matrix.ColQ)
	if index >= len(topo) {
		return Record{}, fmt.Errorf("topography[%d]: %w", index, matrix.ErrOutOfRange)
	}

	return Record{
		Time:        t,
		FreeSurface: physics.FreeSurface(h, topo[index]),
		Depth:       h,
		Velocity:    physics.Velocity(h, q),
		Discharge:   q,
		Froude:      physics.Froude(h, q, g),
	}, nil
}

// AppendCSV appends "time,H,h,u,q,Fr\n" to buf.
func (r Record) AppendCSV(buf []byte) []byte {
	for i, v := range [...]float64{r.Time, r.FreeSurface, r.Depth, r.Velocity, r.Discharge, r.Froude} {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}

	return append(buf, '\n')
}

// Sampler owns the probes of a run and their output files.
type Sampler struct {
	dir     string
	probes  []Probe
	g       float64
	indices []int
}

// NewSampler returns a sampler writing into dir. Indices are resolved later
// by Resolve, once the mesh is known to the run.
func NewSampler(dir string, probes []Probe, g float64) *Sampler {
	return &Sampler{dir: dir, probes: append([]Probe(nil), probes...), g: g}
}

// Len returns the number of probes.
func (s *Sampler) Len() int { return len(s.probes) }

// Resolve maps every probe to its nearest cell of geom.
func (s *Sampler) Resolve(geom mesh.Geometry) error {
	pos := make([]float64, len(s.probes))
	for i, p := range s.probes {
		pos[i] = p.Position
	}
	idx, err := ResolveIndices(pos, geom.CellCenters())
	if err != nil {
		return err
	}
	s.indices = idx

	return nil
}

// Indices returns a copy of the resolved cell indices, nil before Resolve.
func (s *Sampler) Indices() []int {
	if s.indices == nil {
		return nil
	}

	return append([]int(nil), s.indices...)
}

// Path returns the output file of the probe with the given reference.
func (s *Sampler) Path(ref int) string {
	return filepath.Join(s.dir, "probe_"+strconv.Itoa(ref)+".txt")
}

// Emit appends one record per probe at time t. Each file is opened in
// append mode and closed again within the call.
func (s *Sampler) Emit(t float64, state *matrix.Dense, topo []float64) error {
	if len(s.probes) == 0 {
		return nil
	}
	if s.indices == nil {
		return ErrNotResolved
	}
	var buf []byte
	for i, p := range s.probes {
		rec, err := NewRecord(t, state, topo, s.indices[i], s.g)
		if err != nil {
			return fmt.Errorf("probe %d: %w", p.Ref, err)
		}
		buf = rec.AppendCSV(buf[:0])
		if err = appendFile(s.Path(p.Ref), buf); err != nil {
			return fmt.Errorf("probe %d: %w", p.Ref, err)
		}
	}

	return nil
}

func appendFile(path string, b []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err = f.Write(b); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
