// SPDX-License-Identifier: MIT

package flux

import "math"

// Options configures a numerical flux provider.
type Options struct {
	left, right Boundary
	inflow      func(t float64) float64 // imposed discharge at the left end, nil when unused
}

// Option mutates Options; last-writer-wins.
type Option func(*Options)

// DefaultOptions returns transmissive boundaries on both ends.
func DefaultOptions() Options {
	return Options{left: Transmissive, right: Transmissive}
}

// WithBoundary sets the same boundary kind on both ends.
func WithBoundary(b Boundary) Option {
	return func(o *Options) { o.left, o.right = b, b }
}

// WithBoundaries sets the left and right boundary kinds.
func WithBoundaries(left, right Boundary) Option {
	return func(o *Options) { o.left, o.right = left, right }
}

// WithLeftDischarge imposes q_in(t) in the left ghost cell; the ghost depth
// is copied from the first cell. This is the only time-dependent part of the
// flux.
func WithLeftDischarge(qin func(t float64) float64) Option {
	return func(o *Options) { o.inflow = qin }
}

// LinearRamp returns q(t) rising linearly from 0 at t = 0 to target at
// t = duration and held there afterwards. A non-positive duration imposes
// target from the start.
func LinearRamp(target, duration float64) func(t float64) float64 {
	if !(duration > 0) {
		return func(float64) float64 { return target }
	}

	return func(t float64) float64 {
		return target * math.Min(1, math.Max(0, t/duration))
	}
}
