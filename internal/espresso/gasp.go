// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"espresso/internal/cover"
	"espresso/internal/cube"
)

// lastGasp tries to escape a local minimum: every cube is reduced
// independently of the others (so coverage is judged against the original
// cover, not the evolving one), the reduced cubes are re-expanded against
// each other, and an IRREDUNDANT pass over the union picks the survivors.
// The result is kept only when strictly cheaper than f.
func lastGasp(ctx *Context, f, d, r *cover.Cover, opts Options) *cover.Cover {
	ctx.Stats.Gasps++
	lay := f.Lay
	before := costOf(f)

	// reduce_gasp: shrink each cube against (f \ {c}) ∪ d in isolation.
	// Reduced cubes may drop minterms others still cover, which is what
	// buys the move out of the minimum.
	reduced := cover.New(lay)
	for i, c := range f.Cubes {
		rc := reduceCube(lay, c, cover.Union(f.Without(i), d))
		if rc != nil && !cube.Equal(rc, c) {
			reduced.Push(rc)
		}
	}
	if len(reduced.Cubes) == 0 {
		return f
	}

	// expand_gasp: grow each reduced cube back against r, crediting only
	// raises that capture other reduced cubes; a cube that captures none
	// brings nothing the old cover did not have.
	gasp := cover.New(lay)
	for i := range reduced.Cubes {
		c := reduced.Cubes[i].Clone()
		for {
			p := bestRaise(lay, c, reduced, r, i, true)
			if p < 0 {
				break
			}
			c.Set(p)
		}
		for j, other := range reduced.Cubes {
			if j != i && cube.Contains(c, other) {
				gasp.Push(c)
				break
			}
		}
	}

	trial := irredundant(ctx, cover.Union(f, gasp), d, opts)
	if costOf(trial).Less(before) {
		ctx.Log.Debugf("last_gasp accepted: %d -> %d cubes", f.Len(), trial.Len())
		return trial
	}
	return f
}

// superGasp iterates lastGasp until it stops improving.
func superGasp(ctx *Context, f, d, r *cover.Cover, opts Options) *cover.Cover {
	for {
		cost := costOf(f)
		f = lastGasp(ctx, f, d, r, opts)
		if !costOf(f).Less(cost) || ctx.Expired() {
			return f
		}
	}
}
