// SPDX-License-Identifier: MIT

// Package flux assembles the finite-volume flux contribution of every cell.
//
// For the shallow-water system U = (h, q), F(U) = (q, q²/h + g·h²/2), a
// Provider returns for each cell i the net contribution
//
//	-(F_{i+1/2} - F_{i-1/2})
//
// so that a scheme updates a state with U ← U + dt·(flux/dx + source).
// Interface fluxes come from an approximate Riemann solver (Rusanov or HLL);
// the two outer interfaces use ghost cells built from the boundary kinds.
//
// Flux returns a fresh matrix on every call and never retains the state it
// was given.
package flux
