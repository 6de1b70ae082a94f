// SPDX-License-Identifier: MIT

package timescheme

import (
	"fmt"
	"sort"
)

// Scheme kinds accepted by New.
const (
	KindEuler  = "euler"
	KindRK2    = "rk2"
	KindSSPRK3 = "ssprk3"
)

// allocators holds all available schemes.
var allocators = map[string]func(f FluxFunc, s SourceFunc) Scheme{
	KindEuler:  func(f FluxFunc, s SourceFunc) Scheme { return NewExplicitEuler(f, s) },
	KindRK2:    func(f FluxFunc, s SourceFunc) Scheme { return NewRK2(f, s) },
	KindSSPRK3: func(f FluxFunc, s SourceFunc) Scheme { return NewSSPRK3(f, s) },
}

// New returns the scheme registered under kind.
//
// Errors: ErrUnknownScheme, ErrNilCollaborator.
func New(kind string, f FluxFunc, s SourceFunc) (Scheme, error) {
	alloc, ok := allocators[kind]
	if !ok {
		return nil, fmt.Errorf("timescheme.New(%q): %w", kind, ErrUnknownScheme)
	}
	if f == nil || s == nil {
		return nil, fmt.Errorf("timescheme.New(%q): %w", kind, ErrNilCollaborator)
	}

	return alloc(f, s), nil
}

// Kinds returns the registered scheme kinds in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(allocators))
	for k := range allocators {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
