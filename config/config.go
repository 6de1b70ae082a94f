// SPDX-License-Identifier: MIT

// Package config holds the run configuration of the solver.
//
// A configuration is built in three layers, later layers winning:
//
//  1. Default()
//  2. a YAML file (unknown keys are rejected)
//  3. TER_* environment variables; a .env file read with ReadEnvFile can be
//     layered under the process environment with FirstOf
//
// Validate reports the first invalid field with a sentinel error.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMesh indicates an invalid mesh section.
	ErrMesh = errors.New("config: mesh needs cells > 0 and xmin < xmax")

	// ErrTimeStep indicates a non-positive or non-finite time step.
	ErrTimeStep = errors.New("config: time step must be > 0")

	// ErrTimeWindow indicates a final time not after the initial time.
	ErrTimeWindow = errors.New("config: final time must be after initial time")

	// ErrSaveFrequency indicates a save frequency below one iteration.
	ErrSaveFrequency = errors.New("config: save frequency must be >= 1")

	// ErrGravity indicates a non-positive gravitational acceleration.
	ErrGravity = errors.New("config: gravity must be > 0")

	// ErrProbeMismatch indicates probe references and positions that do not
	// pair up one to one.
	ErrProbeMismatch = errors.New("config: probe references and positions mismatch")

	// ErrResultsDir indicates an empty results directory.
	ErrResultsDir = errors.New("config: results directory is empty")

	// ErrVerbosity indicates a verbosity outside 0..2.
	ErrVerbosity = errors.New("config: verbosity must be 0, 1 or 2")

	// ErrUpload indicates an enabled upload with missing settings.
	ErrUpload = errors.New("config: upload enabled but incomplete")

	// ErrInflow indicates a non-finite inflow discharge or a negative or
	// non-finite ramp duration.
	ErrInflow = errors.New("config: inflow needs a finite discharge and ramp >= 0")

	// ErrEnv indicates an environment override that cannot be parsed.
	ErrEnv = errors.New("config: invalid environment override")
)

// Config is the full run configuration.
type Config struct {
	Mesh        Mesh    `yaml:"mesh"`
	Time        Time    `yaml:"time"`
	Scheme      string  `yaml:"scheme"`
	Flux        string  `yaml:"flux"`
	Boundary    string  `yaml:"boundary"`
	Case        Case    `yaml:"case"`
	Output      Output  `yaml:"output"`
	TestCase    bool    `yaml:"test_case"`
	Gravity     float64 `yaml:"gravity"`
	Probes      Probes  `yaml:"probes"`
	Verbosity   int     `yaml:"verbosity"`
	StrictDepth bool    `yaml:"strict_depth"`
	Upload      Upload  `yaml:"upload"`

	// BoundaryLeft and BoundaryRight override Boundary on one end.
	BoundaryLeft  string  `yaml:"boundary_left"`
	BoundaryRight string  `yaml:"boundary_right"`
	Inflow        *Inflow `yaml:"inflow"`
}

// Inflow imposes a discharge at the left end, ramped linearly from zero
// over Ramp time units. It replaces the left boundary kind.
type Inflow struct {
	Discharge float64 `yaml:"discharge"`
	Ramp      float64 `yaml:"ramp"`
}

// Boundaries returns the boundary kind of each end after the per-end
// overrides.
func (c *Config) Boundaries() (left, right string) {
	left, right = c.Boundary, c.Boundary
	if c.BoundaryLeft != "" {
		left = c.BoundaryLeft
	}
	if c.BoundaryRight != "" {
		right = c.BoundaryRight
	}

	return left, right
}

// Mesh describes a uniform mesh of Cells cells on [XMin, XMax].
type Mesh struct {
	XMin  float64 `yaml:"xmin"`
	XMax  float64 `yaml:"xmax"`
	Cells int     `yaml:"cells"`
}

// Time holds the fixed step and the simulated window.
type Time struct {
	Dt      float64 `yaml:"dt"`
	Initial float64 `yaml:"initial"`
	Final   float64 `yaml:"final"`
}

// Case selects the physics case and overrides its parameters.
type Case struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params"`
}

// Output controls snapshot cadence and location.
type Output struct {
	Dir           string `yaml:"dir"`
	SaveFrequency int    `yaml:"save_frequency"`
	SaveFinalOnly bool   `yaml:"save_final_only"`
}

// Probes pairs Refs[i] with Positions[i].
type Probes struct {
	Refs      []int     `yaml:"refs"`
	Positions []float64 `yaml:"positions"`
}

// Upload configures copying the results directory to object storage.
type Upload struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Default returns a Stoker dam break on [0, 20] with 200 cells, RK2 and the
// Rusanov flux, run as a test case up to t = 1.
func Default() Config {
	return Config{
		Mesh:      Mesh{XMin: 0, XMax: 20, Cells: 200},
		Time:      Time{Dt: 0.005, Initial: 0, Final: 1},
		Scheme:    "rk2",
		Flux:      "rusanov",
		Boundary:  "transmissive",
		Case:      Case{Name: "dam_break"},
		Output:    Output{Dir: "results", SaveFrequency: 20},
		TestCase:  true,
		Gravity:   9.81,
		Verbosity: 1,
		Upload:    Upload{Region: "us-east-1", Bucket: "ter-results", UseSSL: true},
	}
}

// Parse decodes YAML from r on top of Default. An empty document yields
// the defaults. The result is not validated.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return c, nil
}

// Load is LoadWith on the process environment.
func Load(path string) (Config, error) {
	return LoadWith(path, os.LookupEnv)
}

// LoadWith reads path (skipped when empty), applies the TER_* variables
// seen through lookup and validates the result.
func LoadWith(path string, lookup LookupFunc) (Config, error) {
	c := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		c, err = Parse(f)
		_ = f.Close()
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := c.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}

// Validate checks every section and returns the first failure.
func (c *Config) Validate() error {
	finite := func(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

	switch {
	case c.Mesh.Cells <= 0 || !finite(c.Mesh.XMin) || !finite(c.Mesh.XMax) || c.Mesh.XMin >= c.Mesh.XMax:
		return fmt.Errorf("mesh %+v: %w", c.Mesh, ErrMesh)
	case !(c.Time.Dt > 0) || !finite(c.Time.Dt):
		return fmt.Errorf("time.dt=%g: %w", c.Time.Dt, ErrTimeStep)
	case !finite(c.Time.Initial) || !finite(c.Time.Final) || !(c.Time.Final > c.Time.Initial):
		return fmt.Errorf("time [%g, %g]: %w", c.Time.Initial, c.Time.Final, ErrTimeWindow)
	case c.Output.SaveFrequency < 1:
		return fmt.Errorf("output.save_frequency=%d: %w", c.Output.SaveFrequency, ErrSaveFrequency)
	case strings.TrimSpace(c.Output.Dir) == "":
		return fmt.Errorf("output.dir: %w", ErrResultsDir)
	case !(c.Gravity > 0) || !finite(c.Gravity):
		return fmt.Errorf("gravity=%g: %w", c.Gravity, ErrGravity)
	case c.Verbosity < 0 || c.Verbosity > 2:
		return fmt.Errorf("verbosity=%d: %w", c.Verbosity, ErrVerbosity)
	}

	if len(c.Probes.Refs) != len(c.Probes.Positions) {
		return fmt.Errorf("%d refs, %d positions: %w", len(c.Probes.Refs), len(c.Probes.Positions), ErrProbeMismatch)
	}
	seen := make(map[int]struct{}, len(c.Probes.Refs))
	for _, ref := range c.Probes.Refs {
		if _, dup := seen[ref]; dup {
			return fmt.Errorf("duplicate ref %d: %w", ref, ErrProbeMismatch)
		}
		seen[ref] = struct{}{}
	}

	if in := c.Inflow; in != nil && (!finite(in.Discharge) || !(in.Ramp >= 0) || !finite(in.Ramp)) {
		return fmt.Errorf("inflow %+v: %w", *in, ErrInflow)
	}

	if u := c.Upload; u.Enabled {
		required := [...]struct{ field, v string }{
			{"endpoint", u.Endpoint}, {"bucket", u.Bucket}, {"access_key", u.AccessKey}, {"secret_key", u.SecretKey},
		}
		for _, r := range required {
			if strings.TrimSpace(r.v) == "" {
				return fmt.Errorf("upload.%s: %w", r.field, ErrUpload)
			}
		}
	}

	return nil
}
