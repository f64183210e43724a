// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"espresso/internal/cover"
)

// essentials splits f into its essential cubes and the rest. A cube is
// essential when some minterm under it is covered by nothing else in
// (f \ {c}) ∪ d; such cubes can neither be reduced nor expanded away, so
// the driver peels them off and treats them as don't-care for the
// remaining iterations.
func essentials(f, d *cover.Cover) (ess, rest *cover.Cover) {
	ess = cover.New(f.Lay)
	rest = cover.New(f.Lay)
	for i, c := range f.Cubes {
		if isEssential(f, d, i) {
			ess.Add(c)
		} else {
			rest.Add(c)
		}
	}
	return ess, rest
}

// isEssential tests cube i of f: gather every other cube of f and d that
// touches c — distance-0 cubes as they are, distance-1 cubes replaced by
// their consensus with c — and check whether their cofactor against c
// covers all of c. If it falls short, some minterm of c is c's alone.
func isEssential(f, d *cover.Cover, i int) bool {
	lay := f.Lay
	c := f.Cubes[i]
	h := cover.New(lay)
	consider := func(g *cover.Cover, skip int) {
		for j, gc := range g.Cubes {
			if j == skip {
				continue
			}
			switch lay.Distance(gc, c) {
			case 0:
				h.Add(gc)
			case 1:
				h.Push(lay.Consensus(gc, c))
			}
		}
	}
	consider(f, i)
	consider(d, -1)
	return !cover.Tautology(cover.Cofactor(h, c))
}
