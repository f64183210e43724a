// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"espresso/internal/cover"
	"espresso/internal/cube"
)

// reduce shrinks every cube of f to the smallest cube still covered by the
// rest of the evolving cover plus d, visiting cubes in descending weight
// order (see weightOrder) so the heaviest go first and their
// freed minterms constrain the cubes after them. Coverage of f ∪ d is
// preserved exactly; cubes that turn out fully covered elsewhere drop.
func reduce(ctx *Context, f, d *cover.Cover) *cover.Cover {
	ctx.Stats.Reduces++
	lay := f.Lay
	work := f.Clone()
	order := weightOrder(work, false)

	for _, i := range order {
		c := work.Cubes[i]
		if c == nil {
			continue
		}
		work.Cubes[i] = reduceCube(lay, c, restPlus(work, d, i))
	}

	out := cover.New(lay)
	for _, c := range work.Cubes {
		out.Add(c)
	}
	return out
}

// reduceCube returns the smallest cube containing the minterms of c not
// covered by rest: the supercube of the complement of rest cofactored
// against c, clipped back into c. Nil when rest covers c entirely.
func reduceCube(lay *cube.Layout, c cube.Cube, rest *cover.Cover) cube.Cube {
	comp := cover.Complement(cover.Cofactor(rest, c))
	if len(comp.Cubes) == 0 {
		return nil
	}
	sc := comp.Cubes[0].Clone()
	for _, k := range comp.Cubes[1:] {
		sc = lay.Supercube(sc, k)
	}
	return lay.Intersect(c, sc)
}

// restPlus builds (f \ {cube i}) ∪ d, skipping cubes already dropped.
func restPlus(f, d *cover.Cover, i int) *cover.Cover {
	rest := cover.New(f.Lay)
	for j, k := range f.Cubes {
		if j == i || k == nil {
			continue
		}
		rest.Add(k)
	}
	for _, k := range d.Cubes {
		rest.Add(k)
	}
	return rest
}
