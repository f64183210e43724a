// SPDX-License-Identifier: Apache-2.0
package cover

import "espresso/internal/cube"

// Cofactor returns the cofactor of f with respect to c: cubes disjoint from
// c are dropped, and in every kept cube each variable field is widened by
// the parts c does not have, so that the result covers everything outside c
// and tautology of the result is equivalent to c being contained in f.
func Cofactor(f *Cover, c cube.Cube) *Cover {
	lay := f.Lay
	full := lay.Universe()
	out := New(lay)
	for _, d := range f.Cubes {
		if lay.Intersect(d, c) == nil {
			continue
		}
		r := make(cube.Cube, lay.Words)
		for w := range r {
			r[w] = d[w] | (full[w] &^ c[w])
		}
		out.Push(r)
	}
	return out
}

// PartCube returns the cube that is full everywhere except variable v,
// whose field holds the single part p. It is the splitting cube of the
// Shannon recursions.
func PartCube(lay *cube.Layout, v, p int) cube.Cube {
	c := lay.Universe()
	for q := lay.First[v]; q < lay.First[v]+lay.Sizes[v]; q++ {
		if q != p {
			c.Clear(q)
		}
	}
	return c
}
