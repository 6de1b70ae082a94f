// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
//
// Design goals:
//   - Deterministic behavior: no global mutable state.
//   - No dead switches: each flag changes behavior and is covered by tests.
//   - Options fields are unexported; public constructors consume ...Option.
package matrix

// DefaultValidateNaNInf toggles strict finite-value validation in Set and Apply.
const DefaultValidateNaNInf = true

// Options holds the resolved numeric policy for a Dense constructor.
type Options struct {
	validateNaNInf bool // reject NaN/±Inf on Set/Apply
}

// Option mutates Options; apply in order, last-writer-wins.
type Option func(*Options)

// WithValidateNaNInf enables rejection of NaN/±Inf in Set and Apply.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables the finite-value guard, e.g. for buffers that
// must be able to hold the result of an unphysical step.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies user-provided setters on top of the defaults.
// Complexity: O(k) for k setters.
func gatherOptions(user ...Option) Options {
	o := Options{validateNaNInf: DefaultValidateNaNInf}
	for _, set := range user {
		set(&o) // last-writer-wins
	}

	return o
}
