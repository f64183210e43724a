// SPDX-License-Identifier: Apache-2.0
package cover

import (
	"math/rand"
	"testing"

	"espresso/internal/cube"
)

func binLayout(t *testing.T, inputs int) *cube.Layout {
	t.Helper()
	lay, err := cube.NewBinaryLayout(inputs, 1)
	if err != nil {
		t.Fatalf("NewBinaryLayout: %v", err)
	}
	return lay
}

// row builds a cube from a binary input pattern over {0,1,-}, asserting
// the single output.
func row(t *testing.T, lay *cube.Layout, pattern string) cube.Cube {
	t.Helper()
	if len(pattern) != lay.NumInputs {
		t.Fatalf("pattern %q: want %d characters", pattern, lay.NumInputs)
	}
	c := lay.New()
	for v, ch := range pattern {
		p0 := lay.First[v]
		switch ch {
		case '0':
			c.Set(p0)
		case '1':
			c.Set(p0 + 1)
		case '-':
			c.Set(p0)
			c.Set(p0 + 1)
		default:
			t.Fatalf("bad pattern %q", pattern)
		}
	}
	c.Set(lay.First[lay.OutputVar()])
	return c
}

func coverOf(t *testing.T, lay *cube.Layout, patterns ...string) *Cover {
	t.Helper()
	f := New(lay)
	for _, p := range patterns {
		f.Push(row(t, lay, p))
	}
	return f
}

func TestTautologyTerminalCases(t *testing.T) {
	lay := binLayout(t, 2)

	if Tautology(New(lay)) {
		t.Error("empty cover is not a tautology")
	}

	full := New(lay)
	full.Push(lay.Universe())
	if !Tautology(full) {
		t.Error("universe cube is a tautology")
	}

	// All four minterms but output never asserted... row sets output, so
	// the four minterms only make an input tautology if the output part
	// count is 1, which it is here.
	f := coverOf(t, lay, "00", "01", "10", "11")
	if !Tautology(f) {
		t.Error("four minterms of two variables cover the space")
	}

	if Tautology(coverOf(t, lay, "0-", "10")) {
		t.Error("missing minterm 11 but reported tautology")
	}
}

func TestTautologyNeedsBinateSplit(t *testing.T) {
	lay := binLayout(t, 3)
	// a + a'b + a'b' covers everything; unate shortcuts alone can't see it.
	f := coverOf(t, lay, "1--", "01-", "00-")
	if !Tautology(f) {
		t.Error("cover of the whole space rejected")
	}
}

func TestCofactorContainment(t *testing.T) {
	lay := binLayout(t, 2)
	f := coverOf(t, lay, "1-", "-1")

	// 11 is inside the cover, 00 is not.
	if !Tautology(Cofactor(f, row(t, lay, "11"))) {
		t.Error("11 should be covered")
	}
	if Tautology(Cofactor(f, row(t, lay, "00"))) {
		t.Error("00 should not be covered")
	}
}

func TestComplementAgainstTautology(t *testing.T) {
	lay := binLayout(t, 2)

	f := coverOf(t, lay, "1-", "-1")
	comp := Complement(f)
	if comp.Len() == 0 {
		t.Fatal("or-cover is not a tautology; complement must be non-empty")
	}
	// The complement of a+b within the asserted output is a'b'.
	for _, c := range comp.Cubes {
		for _, fc := range f.Cubes {
			if lay.Intersect(c, fc) != nil {
				t.Errorf("complement cube %v meets the cover", c)
			}
		}
	}
	if !Tautology(Union(f, comp)) {
		t.Error("cover plus complement must be a tautology")
	}
}

func TestComplementRandomCovers(t *testing.T) {
	lay := binLayout(t, 4)
	rng := rand.New(rand.NewSource(11))

	randomCover := func(n int) *Cover {
		f := New(lay)
		for i := 0; i < n; i++ {
			pat := make([]byte, lay.NumInputs)
			for v := range pat {
				pat[v] = "01-"[rng.Intn(3)]
			}
			f.Push(row(t, lay, string(pat)))
		}
		return f
	}

	for i := 0; i < 30; i++ {
		f := randomCover(1 + rng.Intn(5))
		comp := Complement(f)

		if Tautology(f) != (comp.Len() == 0) {
			t.Fatalf("tautology/complement disagree on\n%s", f)
		}
		if !Tautology(Union(f, comp)) {
			t.Fatalf("cover plus complement not a tautology:\n%s", f)
		}
		for _, a := range f.Cubes {
			for _, b := range comp.Cubes {
				if lay.Intersect(a, b) != nil {
					t.Fatalf("complement overlaps cover:\n%s", f)
				}
			}
		}
	}
}

func TestContainSortRemovesContainedCubes(t *testing.T) {
	lay := binLayout(t, 2)
	f := coverOf(t, lay, "11", "1-", "11", "-1")

	out := ContainSort(f)
	if out.Len() != 2 {
		t.Fatalf("ContainSort kept %d cubes, want 2", out.Len())
	}
	for _, c := range out.Cubes {
		if cube.Equal(c, row(t, lay, "11")) {
			t.Error("contained cube 11 survived")
		}
	}
}

func TestMostBinate(t *testing.T) {
	lay := binLayout(t, 3)

	// Variable 0 appears in both polarities; 1 and 2 do not.
	f := coverOf(t, lay, "01-", "10-", "1-0")
	if got := MostBinate(f); got != 0 {
		t.Errorf("MostBinate = %d, want 0", got)
	}

	if got := MostBinate(coverOf(t, lay, "0--", "01-")); got != -1 {
		t.Errorf("unate cover reported binate variable %d", got)
	}
}

func TestUnate(t *testing.T) {
	lay := binLayout(t, 2)
	if !Unate(coverOf(t, lay, "0-", "01")) {
		t.Error("single-polarity cover reported binate")
	}
	if Unate(coverOf(t, lay, "0-", "1-")) {
		t.Error("both polarities of a reported unate")
	}
}

func TestIntersectCovers(t *testing.T) {
	lay := binLayout(t, 2)
	f := coverOf(t, lay, "1-")
	g := coverOf(t, lay, "-1")

	got := Intersect(f, g)
	if got.Len() != 1 || !cube.Equal(got.Cubes[0], row(t, lay, "11")) {
		t.Errorf("Intersect = %v, want the single cube 11", got)
	}
}
