// SPDX-License-Identifier: Apache-2.0
package cover

import "espresso/internal/cube"

// Complement returns a cover of the points not covered by f, by recursive
// Shannon expansion over the most binate variable. Unate and single-cube
// covers terminate by sharping their cubes out of the universe; the result is
// canonicalized by containment.
func Complement(f *Cover) *Cover {
	return ContainSort(complement(f))
}

func complement(f *Cover) *Cover {
	lay := f.Lay
	if len(f.Cubes) == 0 {
		out := New(lay)
		out.Push(lay.Universe())
		return out
	}
	for _, c := range f.Cubes {
		if lay.IsUniverse(c) {
			return New(lay)
		}
	}
	if len(f.Cubes) == 1 {
		out := New(lay)
		for _, r := range lay.Sharp(lay.Universe(), f.Cubes[0]) {
			out.Push(r)
		}
		return out
	}

	v := MostBinate(f)
	if v < 0 {
		return complementUnate(f)
	}

	out := New(lay)
	for p := lay.First[v]; p < lay.First[v]+lay.Sizes[v]; p++ {
		pc := PartCube(lay, v, p)
		sub := complement(Cofactor(f, pc))
		// Re-anchor the branch result inside x_v = p.
		for _, c := range sub.Cubes {
			if r := lay.Intersect(c, pc); r != nil {
				out.Push(r)
			}
		}
	}
	return out
}

// complementUnate complements a unate cover by sharping each cube out of
// the universe in turn. Unate covers keep the intermediate result small
// because the sharp residues of nested fields collapse under containment.
func complementUnate(f *Cover) *Cover {
	lay := f.Lay
	res := New(lay)
	res.Push(lay.Universe())
	for _, c := range f.Cubes {
		next := New(lay)
		for _, r := range res.Cubes {
			for _, s := range lay.Sharp(r, c) {
				next.Push(s)
			}
		}
		res = ContainSort(next)
		if len(res.Cubes) == 0 {
			break
		}
	}
	return res
}

// SharpCover returns a cover of a's points not covered by g, computed as
// the intersection of a with the complement of g. The result is
// canonical by containment.
func SharpCover(a cube.Cube, g *Cover) *Cover {
	lay := g.Lay
	comp := Complement(g)
	out := New(lay)
	for _, c := range comp.Cubes {
		if r := lay.Intersect(c, a); r != nil {
			out.Push(r)
		}
	}
	return ContainSort(out)
}
