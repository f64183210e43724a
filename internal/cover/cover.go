// SPDX-License-Identifier: Apache-2.0

// Package cover implements operations on sets of cubes as a whole: cofactor,
// tautology, complement, containment filtering and the unate decomposition
// they all recurse through. A Cover owns its cubes exclusively; cubes move
// between covers by deep copy only.
package cover

import (
	"sort"
	"strings"

	"espresso/internal/cube"
)

// Cover is an ordered sequence of cubes over a shared layout.
type Cover struct {
	Lay   *cube.Layout
	Cubes []cube.Cube
}

// New returns an empty cover over lay.
func New(lay *cube.Layout) *Cover {
	return &Cover{Lay: lay}
}

// Of returns a cover owning deep copies of the given cubes.
func Of(lay *cube.Layout, cubes ...cube.Cube) *Cover {
	f := New(lay)
	for _, c := range cubes {
		f.Add(c)
	}
	return f
}

// Len is the cube count.
func (f *Cover) Len() int { return len(f.Cubes) }

// Add appends a deep copy of c. The empty-cube sentinel is ignored.
func (f *Cover) Add(c cube.Cube) {
	if c == nil {
		return
	}
	f.Cubes = append(f.Cubes, c.Clone())
}

// Push appends c, taking ownership. Only for cubes freshly produced by the
// caller; never for cubes still reachable from another cover.
func (f *Cover) Push(c cube.Cube) {
	if c == nil {
		return
	}
	f.Cubes = append(f.Cubes, c)
}

// Clone returns a deep copy of f.
func (f *Cover) Clone() *Cover {
	g := New(f.Lay)
	g.Cubes = make([]cube.Cube, 0, len(f.Cubes))
	for _, c := range f.Cubes {
		g.Cubes = append(g.Cubes, c.Clone())
	}
	return g
}

// Union returns a new cover holding copies of the cubes of f then g.
func Union(f, g *Cover) *Cover {
	u := New(f.Lay)
	u.Cubes = make([]cube.Cube, 0, len(f.Cubes)+len(g.Cubes))
	for _, c := range f.Cubes {
		u.Cubes = append(u.Cubes, c.Clone())
	}
	for _, c := range g.Cubes {
		u.Cubes = append(u.Cubes, c.Clone())
	}
	return u
}

// Without returns a copy of f with cube index i left out.
func (f *Cover) Without(i int) *Cover {
	g := New(f.Lay)
	g.Cubes = make([]cube.Cube, 0, len(f.Cubes)-1)
	for j, c := range f.Cubes {
		if j == i {
			continue
		}
		g.Cubes = append(g.Cubes, c.Clone())
	}
	return g
}

// Literals sums the literal counts of all cubes.
func (f *Cover) Literals() int {
	n := 0
	for _, c := range f.Cubes {
		n += f.Lay.Literals(c)
	}
	return n
}

// Sort orders the cubes by the total order on their bit vectors. Every
// ordering that reaches an output goes through here first.
func (f *Cover) Sort() {
	sort.SliceStable(f.Cubes, func(i, j int) bool {
		return cube.Compare(f.Cubes[i], f.Cubes[j]) < 0
	})
}

// String renders the cover one cube per line as raw part bits, fields
// separated by spaces. Debug aid only; the PLA printer owns the real
// output format.
func (f *Cover) String() string {
	var b strings.Builder
	for _, c := range f.Cubes {
		for v := 0; v < f.Lay.NumVars(); v++ {
			if v > 0 {
				b.WriteByte(' ')
			}
			for p := f.Lay.First[v]; p < f.Lay.First[v]+f.Lay.Sizes[v]; p++ {
				if c.Test(p) {
					b.WriteByte('1')
				} else {
					b.WriteByte('0')
				}
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
