// SPDX-License-Identifier: Apache-2.0
package cover

// Tautology reports whether f covers every point of the space, outputs
// included. Recursive Shannon decomposition over the most binate variable;
// terminal cases are a universe cube (true), a unate cover without one
// (false), and the empty cover (false).
func Tautology(f *Cover) bool {
	lay := f.Lay
	if len(f.Cubes) == 0 {
		return false
	}
	for _, c := range f.Cubes {
		if lay.IsUniverse(c) {
			return true
		}
	}

	// A part asserted by no cube leaves a point uncovered.
	union := lay.New()
	for _, c := range f.Cubes {
		for w := range union {
			union[w] |= c[w]
		}
	}
	if !lay.IsUniverse(union) {
		return false
	}

	v := MostBinate(f)
	if v < 0 {
		// Unate everywhere and no universe cube: picking any missing part
		// per constrained variable names an uncovered point.
		return false
	}
	for p := lay.First[v]; p < lay.First[v]+lay.Sizes[v]; p++ {
		if !Tautology(Cofactor(f, PartCube(lay, v, p))) {
			return false
		}
	}
	return true
}
