// SPDX-License-Identifier: MIT

package physics

import "math"

// Velocity returns u = q/h. No guard on h: a dry or negative depth yields
// ±Inf or NaN, which is how an unphysical state shows up in the output.
func Velocity(h, q float64) float64 {
	return q / h
}

// Froude returns Fr = |q/h| / sqrt(g·h), unguarded like Velocity.
func Froude(h, q, g float64) float64 {
	return math.Abs(q/h) / math.Sqrt(g*h)
}

// FreeSurface returns H = h + z.
func FreeSurface(h, z float64) float64 {
	return h + z
}

// WaveSpeed returns sqrt(g·h).
func WaveSpeed(h, g float64) float64 {
	return math.Sqrt(g * h)
}
