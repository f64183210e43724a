// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"espresso/internal/cover"
)

// Check verifies a cover triple: the ON-set and OFF-set must be disjoint
// and the three sets together must cover the whole space. A nil return is
// Ok; otherwise the error is an OffsetConflict or CoverageGap carrying a
// witness cube.
func Check(ctx *Context, f, d, r *cover.Cover) error {
	if f == nil || f.Lay == nil {
		return newError(InvalidInput, "nil ON-set")
	}
	lay := f.Lay
	if err := validate(lay, f, d, r); err != nil {
		return err
	}

	for _, fc := range f.Cubes {
		for _, rc := range r.Cubes {
			if w := lay.Intersect(fc, rc); w != nil {
				e := newError(OffsetConflict, "ON-set and OFF-set share a point")
				e.Witness = w
				return e
			}
		}
	}

	all := cover.Union(cover.Union(f, d), r)
	if !cover.Tautology(all) {
		gap := cover.Complement(all)
		e := newError(CoverageGap, "ON, DC and OFF sets leave points unassigned")
		if len(gap.Cubes) > 0 {
			e.Witness = gap.Cubes[0].Clone()
		}
		return e
	}
	return nil
}
