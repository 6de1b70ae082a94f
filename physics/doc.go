// SPDX-License-Identifier: MIT

// Package physics describes the shallow-water model seen by the time
// integrator: initial condition, bottom topography, source term and, for
// test cases, the exact solution.
//
// Cases:
//
//   - "uniform"      flat bottom, constant (h0, q0); a trivial fixed point.
//   - "lake_at_rest" still water over a parabolic bump; steady state.
//   - "dam_break"    Stoker's wet-bed dam break on a flat bottom; the exact
//     solution comes from the exact Riemann solver in riemann.go.
//
// All models return fresh matrices: nothing a caller receives is reused by a
// later call, so a scheme may hold two evaluations at once.
//
// Exact solutions are memoised per time in a small LRU cache.
package physics
