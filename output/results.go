// SPDX-License-Identifier: MIT

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrNoDir indicates an empty results directory.
var ErrNoDir = errors.New("output: results directory is empty")

// File names inside the results directory.
const (
	TopographyFile = "topography.txt"
	ExactFile      = "solution_exacte.txt"
)

// stale lists the files of an earlier run that Prepare removes.
var stale = []string{"solution_*.txt", "probe_*.txt", TopographyFile}

// Results is a results directory.
type Results struct {
	dir string
}

// NewResults returns the results directory rooted at dir.
func NewResults(dir string) (*Results, error) {
	if dir == "" {
		return nil, ErrNoDir
	}

	return &Results{dir: filepath.Clean(dir)}, nil
}

// Dir returns the directory path.
func (r *Results) Dir() string { return r.dir }

// Prepare creates the directory and removes output files of an earlier run.
// Probe files are appended to during a run, so leftovers would corrupt them.
func (r *Results) Prepare() error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("output: prepare %s: %w", r.dir, err)
	}
	for _, pattern := range stale {
		matches, err := filepath.Glob(filepath.Join(r.dir, pattern))
		if err != nil {
			return fmt.Errorf("output: prepare %s: %w", r.dir, err)
		}
		for _, m := range matches {
			if err = os.Remove(m); err != nil {
				return fmt.Errorf("output: prepare %s: %w", r.dir, err)
			}
		}
	}

	return nil
}

// SolutionPath returns solution_<flux>_<index>.txt.
func (r *Results) SolutionPath(flux string, index int) string {
	return filepath.Join(r.dir, "solution_"+flux+"_"+strconv.Itoa(index)+".txt")
}

// TopographyPath returns the topography file.
func (r *Results) TopographyPath() string { return filepath.Join(r.dir, TopographyFile) }

// ExactPath returns the exact-solution file.
func (r *Results) ExactPath() string { return filepath.Join(r.dir, ExactFile) }
