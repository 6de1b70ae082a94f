// SPDX-License-Identifier: MIT

// Package matrix provides the dense row-major storage used for the
// cell-indexed solution of the 1D shallow-water system, together with the
// small set of kernels the time integrators and diagnostics need.
//
// What & Why:
//
//	A solution snapshot is an N×2 array: row i holds the conserved pair
//	(h_i, q_i) of cell i. Dense keeps these values in one flat slice so that
//	the integrator kernels (AddScaled, LinearCombination, CopyFrom) run as
//	single tight loops over contiguous memory with no per-element bounds
//	checks, while the public accessors (At, Set) stay safe and return
//	sentinel errors instead of panicking.
//
// Contents:
//
//   - Dense: row-major storage, safe At/Set, Clone, Do/Apply visitors.
//   - Validators: ValidateNotNil, ValidateSameShape, ValidateVecLen.
//   - Allocating difference: Sub.
//   - In-place kernels: CopyFrom, AddScaled, LinearCombination.
//   - Reductions: ColumnNormL1, ColumnNormL2, AllClose.
//
// Numeric policy:
//
//	Set and Apply reject NaN/±Inf when the policy is on (the default). The
//	in-place kernels never check: a step that drives a depth to zero
//	completes and its non-finite result is written out as is.
//
// Complexity:
//
//	At/Set O(1); Clone, kernels and reductions O(r·c) time, kernels O(1)
//	extra space.
package matrix
