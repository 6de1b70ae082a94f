// SPDX-License-Identifier: MIT

package physics

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/YoshaTogame/TER/matrix"
)

// exactCacheSize bounds the number of memoised exact solutions per model.
// A run asks for one time; convergence studies ask for a handful.
const exactCacheSize = 16

// exactCache memoises exact solutions by time. Stored matrices are never
// handed out; callers receive clones.
type exactCache struct {
	cache *lru.Cache[float64, *matrix.Dense]
	build func(t float64) (*matrix.Dense, error)
}

func newExactCache(build func(t float64) (*matrix.Dense, error)) (*exactCache, error) {
	c, err := lru.New[float64, *matrix.Dense](exactCacheSize)
	if err != nil {
		return nil, err
	}

	return &exactCache{cache: c, build: build}, nil
}

// at returns the exact solution at t, building it on a miss.
func (e *exactCache) at(t float64) (*matrix.Dense, error) {
	if s, ok := e.cache.Get(t); ok {
		return s.CloneDense(), nil
	}
	s, err := e.build(t)
	if err != nil {
		return nil, err
	}
	e.cache.Add(t, s)

	return s.CloneDense(), nil
}

// len reports the number of cached solutions.
func (e *exactCache) len() int { return e.cache.Len() }
