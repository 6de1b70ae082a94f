// SPDX-License-Identifier: MIT

// Package ter integrates the 1D shallow-water (Saint-Venant) equations on a
// uniform finite-volume mesh.
//
// A run advances the cell averages (h, q) with an explicit time scheme,
// writes state snapshots and probe time series, and, for cases with a
// known solution, reports L1 and L2 errors at the final time.
//
// Packages, leaf first:
//
//	matrix/       N×2 state storage and in-place kernels
//	mesh/         uniform 1D mesh
//	physics/      test cases, source terms, exact solutions
//	flux/         Rusanov and HLL numerical fluxes, boundary ghost cells
//	timescheme/   ExplicitEuler, RK2, SSPRK3
//	probe/        nearest-cell probes and their time series
//	diagnostics/  L1/L2 errors and convergence order
//	output/       results directory, file formats, S3 upload
//	config/       YAML and environment configuration
//	simulation/   the time loop
//
// The ter command (cmd/ter) wires them together:
//
//	go run ./cmd/ter -config configs/dam_break.yaml
package ter
