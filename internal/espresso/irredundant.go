// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"espresso/internal/cover"
	"espresso/internal/cube"
	"espresso/internal/mincov"
)

// irredundant removes redundant cubes from f with respect to d. The cover
// is partitioned into relatively essential cubes (kept), totally redundant
// cubes (dropped), and partially redundant cubes, over which a minimum
// cover problem decides the survivors.
func irredundant(ctx *Context, f, d *cover.Cover, opts Options) *cover.Cover {
	ctx.Stats.Irredundants++
	lay := f.Lay
	if len(f.Cubes) <= 1 {
		return f.Clone()
	}

	// Relatively essential: not covered by the rest of f plus d.
	var relEss, redund []int
	for i, c := range f.Cubes {
		rest := cover.Union(f.Without(i), d)
		if cover.Tautology(cover.Cofactor(rest, c)) {
			redund = append(redund, i)
		} else {
			relEss = append(relEss, i)
		}
	}

	er := cover.New(lay)
	for _, i := range relEss {
		er.Add(f.Cubes[i])
	}
	erd := cover.Union(er, d)

	// Totally redundant cubes vanish into Er ∪ D; the rest are the
	// partially redundant set the covering problem runs over.
	var partial []int
	for _, i := range redund {
		if !cover.Tautology(cover.Cofactor(erd, f.Cubes[i])) {
			partial = append(partial, i)
		}
	}
	if len(partial) == 0 {
		return cover.ContainSort(er)
	}

	sel := solvePartial(ctx, f, erd, partial, opts)
	out := er
	selected := make(map[int]bool, len(sel))
	for _, i := range sel {
		out.Add(f.Cubes[i])
		selected[i] = true
	}

	// The witness minterms stand in for whole leftover regions, so a
	// selection can satisfy the matrix yet still miss points. Re-add any
	// dropped cube that is not actually covered; coverage of f ∪ d must
	// survive this pass exactly.
	for _, i := range partial {
		if selected[i] {
			continue
		}
		outd := cover.Union(out, d)
		if !cover.Tautology(cover.Cofactor(outd, f.Cubes[i])) {
			out.Add(f.Cubes[i])
		}
	}
	return cover.ContainSort(out)
}

// solvePartial picks a minimum subset of the partially redundant cubes
// that keeps every witness minterm covered. Witnesses are representative
// minterms of r # (Er ∪ D) per partially redundant cube r; the matrix
// entry (r, k) is set when cube r covers witness k.
func solvePartial(ctx *Context, f, erd *cover.Cover, partial []int, opts Options) []int {
	lay := f.Lay
	m := mincov.New()
	witnessID := make(map[string]int)
	var witnesses []cube.Cube

	intern := func(w cube.Cube) int {
		key := string(cubeBytes(w))
		if id, ok := witnessID[key]; ok {
			return id
		}
		id := len(witnesses)
		witnessID[key] = id
		witnesses = append(witnesses, w)
		return id
	}

	for row := range partial {
		m.AddRow(row)
	}
	for _, i := range partial {
		leftover := cover.SharpCover(f.Cubes[i], erd)
		for _, lc := range leftover.Cubes {
			w := representative(lay, lc)
			id := intern(w)
			for row, j := range partial {
				if cube.Contains(f.Cubes[j], w) {
					m.Add(row, id)
				}
			}
		}
	}

	limits := mincov.Limits{MaxNodes: opts.maxCoverNodes(), Deadline: ctx.Deadline}
	sel, err := mincov.Solve(m, limits)
	if err != nil {
		// The greedy fallback cover is valid; a non-minimum pick here
		// costs quality, not correctness.
		ctx.Log.Warningf("irredundant cover search truncated: %s", err.Error())
	}
	out := make([]int, 0, len(sel))
	for _, row := range sel {
		out = append(out, partial[row])
	}
	return out
}

// representative collapses a cube to one of its minterms: the lowest set
// part of every field. Deterministic, so identical witnesses from
// different rows share a matrix column.
func representative(lay *cube.Layout, c cube.Cube) cube.Cube {
	w := c.Clone()
	for v := 0; v < lay.NumVars(); v++ {
		kept := false
		for p := lay.First[v]; p < lay.First[v]+lay.Sizes[v]; p++ {
			if !w.Test(p) {
				continue
			}
			if kept {
				w.Clear(p)
			}
			kept = true
		}
	}
	return w
}

// cubeBytes renders a cube's words as a byte key for interning.
func cubeBytes(c cube.Cube) []byte {
	b := make([]byte, 0, len(c)*8)
	for _, w := range c {
		for s := 0; s < 64; s += 8 {
			b = append(b, byte(w>>uint(s)))
		}
	}
	return b
}
