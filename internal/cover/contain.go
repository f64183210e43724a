// SPDX-License-Identifier: Apache-2.0
package cover

import (
	"sort"

	"espresso/internal/cube"
)

// ContainSort sorts f by the total cube order and removes every cube
// contained in another. The result is a new cover with no containment
// between any two cubes; equal duplicates collapse to one.
func ContainSort(f *Cover) *Cover {
	lay := f.Lay
	cubes := make([]cube.Cube, len(f.Cubes))
	copy(cubes, f.Cubes)

	// Widest cubes first so a single forward scan finds every container.
	sort.SliceStable(cubes, func(i, j int) bool {
		ci := count(lay, cubes[i])
		cj := count(lay, cubes[j])
		if ci != cj {
			return ci > cj
		}
		return cube.Compare(cubes[i], cubes[j]) < 0
	})

	out := New(lay)
	for _, c := range cubes {
		kept := true
		for _, k := range out.Cubes {
			if cube.Contains(k, c) {
				kept = false
				break
			}
		}
		if kept {
			out.Add(c)
		}
	}
	out.Sort()
	return out
}

// count is the total set-part count of c.
func count(lay *cube.Layout, c cube.Cube) int {
	n := 0
	for v := 0; v < lay.NumVars(); v++ {
		n += lay.FieldCount(c, v)
	}
	return n
}
