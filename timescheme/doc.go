// SPDX-License-Identifier: MIT

// Package timescheme advances the cell-averaged shallow-water state by one
// fixed time increment with an explicit one-step method.
//
// Every scheme integrates the semi-discrete system
//
//	dS/dt = L(t, S) = Flux(t, S)/dx + Source(S)
//
// where Flux and Source are supplied by collaborators bound at
// construction. Schemes differ only in how they combine stage evaluations:
//
//   - ExplicitEuler: one evaluation, first order.
//   - RK2 (Heun): two evaluations, second order.
//   - SSPRK3 (Shu-Osher): three evaluations, third order, strong stability
//     preserving.
//
// Collaborator contract:
//
//	Flux and SourceTerm must return fresh N×2 matrices (or buffers valid
//	until their next call) and must not retain the state they are given.
//	Within a stage the source term is always evaluated before the flux,
//	and both see the same state.
//
// Every scheme updates S by adding dt-weighted stage values to it, never by
// recombining copies of S, so a zero right-hand side leaves the state
// unchanged bit for bit.
//
// The working state is allocated once by Initialize and overwritten in
// place by every Step. Stage buffers are allocated once as well, so a step
// performs no allocation of its own.
package timescheme
