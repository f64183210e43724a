// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"sort"

	"espresso/internal/cover"
	"espresso/internal/cube"
)

// weightOrder returns cube indices sorted by cube weight: the sum, over a
// cube's set parts, of the number of cubes in f that also carry the part.
// Loner cubes score low. Ascending order puts the hard cubes first; the
// cube bit-vector order breaks ties.
func weightOrder(f *cover.Cover, ascending bool) []int {
	ws := make([]uint64, len(f.Cubes))
	lay := f.Lay
	colCount := make([]uint64, lay.Parts)
	for _, d := range f.Cubes {
		for p := 0; p < lay.Parts; p++ {
			if d.Test(p) {
				colCount[p]++
			}
		}
	}
	for i, c := range f.Cubes {
		var w uint64
		for p := 0; p < lay.Parts; p++ {
			if c.Test(p) {
				w = satAdd(w, colCount[p])
			}
		}
		ws[i] = w
	}
	order := make([]int, len(f.Cubes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		wi, wj := ws[order[i]], ws[order[j]]
		if wi != wj {
			if ascending {
				return wi < wj
			}
			return wi > wj
		}
		return cube.Compare(f.Cubes[order[i]], f.Cubes[order[j]]) < 0
	})
	return order
}

// expand grows every cube of f into a prime against r: cubes are visited
// in ascending weight order (hard cubes first) and repeatedly raised by
// the legal part that newly contains the most other cubes of f, lowest
// part index on merit ties. Contained cubes are dropped afterwards.
func expand(ctx *Context, f, r *cover.Cover) *cover.Cover {
	ctx.Stats.Expands++
	return expandWith(f, r, true)
}

// singleExpand is the cheap variant of the fast strategy: one raise sweep
// per cube taking the first legal part, no merit search.
func singleExpand(ctx *Context, f, r *cover.Cover) *cover.Cover {
	ctx.Stats.Expands++
	return expandWith(f, r, false)
}

func expandWith(f, r *cover.Cover, merit bool) *cover.Cover {
	lay := f.Lay
	work := f.Clone()
	order := weightOrder(work, true)

	for _, i := range order {
		c := work.Cubes[i]
		for {
			p := bestRaise(lay, c, work, r, i, merit)
			if p < 0 {
				break
			}
			c.Set(p)
		}
	}
	return cover.ContainSort(work)
}

// bestRaise picks the next part to raise in c, or -1 when c is prime.
// A raise is legal when the raised cube stays disjoint from every cube of
// r; among legal raises the one containing the most other cubes of f wins.
func bestRaise(lay *cube.Layout, c cube.Cube, f, r *cover.Cover, self int, merit bool) int {
	best, bestMerit := -1, -1
	for p := 0; p < lay.Parts; p++ {
		if c.Test(p) {
			continue
		}
		c.Set(p)
		legal := true
		for _, rc := range r.Cubes {
			if lay.Intersect(c, rc) != nil {
				legal = false
				break
			}
		}
		if legal && !merit {
			c.Clear(p)
			return p
		}
		if legal {
			m := 0
			for j, d := range f.Cubes {
				if j != self && cube.Contains(c, d) {
					m++
				}
			}
			if m > bestMerit {
				best, bestMerit = p, m
			}
		}
		c.Clear(p)
	}
	return best
}
