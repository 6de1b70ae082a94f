// SPDX-License-Identifier: MIT

// Package output owns the on-disk layout of a run: the results directory,
// the snapshot/topography/exact-solution file formats and the optional
// upload of a finished results directory to S3-compatible object storage.
//
// File formats:
//
//	solution_<flux>_<k>.txt  "# x  H=h+z   h       u       q       Fr=|u|/sqrt(gh)"
//	                         then one "x H h u q Fr" row per cell
//	solution_exacte.txt      same layout, exact solution of a test case
//	topography.txt           one "x z" row per cell
//
// Numbers are written in shortest round-trip form.
package output
