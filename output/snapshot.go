// SPDX-License-Identifier: MIT

package output

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/YoshaTogame/TER/matrix"
	"github.com/YoshaTogame/TER/physics"
)

// SnapshotHeader is the first line of every snapshot file.
const SnapshotHeader = "# x  H=h+z   h       u       q       Fr=|u|/sqrt(gh)"

// WriteSnapshot writes state at the given cell centres. Derived quantities
// are unguarded: a dry cell is written with non-finite u and Fr.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrDimensionMismatch, I/O errors.
func WriteSnapshot(path string, centers []float64, state *matrix.Dense, topo []float64, g float64) error {
	n := len(centers)
	if err := matrix.ValidateState(state, n); err != nil {
		return fmt.Errorf("output: snapshot %s: %w", path, err)
	}
	if err := matrix.ValidateVecLen(topo, n); err != nil {
		return fmt.Errorf("output: snapshot %s: topography: %w", path, err)
	}

	return writeLines(path, SnapshotHeader, n, func(buf []byte, i int) []byte {
		h, q := state.Row(i)
		return appendRow(buf,
			centers[i],
			physics.FreeSurface(h, topo[i]),
			h,
			physics.Velocity(h, q),
			q,
			physics.Froude(h, q, g))
	})
}

// WriteTopography writes one "x z" row per cell.
func WriteTopography(path string, centers, topo []float64) error {
	if err := matrix.ValidateVecLen(topo, len(centers)); err != nil {
		return fmt.Errorf("output: topography %s: %w", path, err)
	}

	return writeLines(path, "", len(centers), func(buf []byte, i int) []byte {
		return appendRow(buf, centers[i], topo[i])
	})
}

// writeLines truncates path and writes an optional header followed by n
// rows produced by row.
func writeLines(path, header string, n int, row func(buf []byte, i int) []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("output: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if header != "" {
		if _, err = w.WriteString(header + "\n"); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	var buf []byte
	for i := 0; i < n; i++ {
		buf = row(buf[:0], i)
		if _, err = w.Write(buf); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	return nil
}

// appendRow appends space-separated values and a newline.
func appendRow(buf []byte, vals ...float64) []byte {
	for i, v := range vals {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}

	return append(buf, '\n')
}
