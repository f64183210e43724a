// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"espresso/internal/cover"
	"espresso/pla"
)

func parseFixture(t *testing.T, src string) *pla.PLA {
	t.Helper()
	p, err := pla.Parse("fixture.pla", src)
	require.NoError(t, err)
	return p
}

// rowStrings renders a binary-input cover as sorted "input output" rows.
func rowStrings(f *cover.Cover) []string {
	lay := f.Lay
	var rows []string
	for _, c := range f.Cubes {
		b := make([]byte, 0, lay.NumInputs+lay.NumOutputs+1)
		for v := 0; v < lay.NumInputs; v++ {
			p0 := lay.First[v]
			switch {
			case c.Test(p0) && c.Test(p0+1):
				b = append(b, '-')
			case c.Test(p0 + 1):
				b = append(b, '1')
			default:
				b = append(b, '0')
			}
		}
		b = append(b, ' ')
		ov := lay.OutputVar()
		for p := lay.First[ov]; p < lay.First[ov]+lay.Sizes[ov]; p++ {
			if c.Test(p) {
				b = append(b, '1')
			} else {
				b = append(b, '0')
			}
		}
		rows = append(rows, string(b))
	}
	sort.Strings(rows)
	return rows
}

func minimize(t *testing.T, src string) (*cover.Cover, *pla.PLA) {
	t.Helper()
	p := parseFixture(t, src)
	got, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, DefaultOptions())
	require.NoError(t, err)
	return got, p
}

func TestTwoInputOrStaysMinimal(t *testing.T) {
	got, _ := minimize(t, `.i 2 .o 1 .ilb a b .ob f
1- 1
-1 1
.e
`)
	assert.Equal(t, []string{"-1 1", "1- 1"}, rowStrings(got))
}

func TestFullCoverCollapsesToUniverse(t *testing.T) {
	got, _ := minimize(t, `.i 2 .o 1
00 1
01 1
10 1
11 1
.e
`)
	assert.Equal(t, []string{"-- 1"}, rowStrings(got))
}

func TestXorDoesNotSimplify(t *testing.T) {
	got, p := minimize(t, `.i 2 .o 1
01 1
10 1
.e
`)
	assert.Equal(t, []string{"01 1", "10 1"}, rowStrings(got))

	// Both cubes are essential.
	ess, rest := essentials(got, p.D)
	assert.Equal(t, 2, ess.Len())
	assert.Equal(t, 0, rest.Len())
}

func TestAdjacentCubesMerge(t *testing.T) {
	got, _ := minimize(t, `.i 3 .o 1
00- 1
01- 1
.e
`)
	assert.Equal(t, []string{"0-- 1"}, rowStrings(got))
}

func TestDontCareAbsorption(t *testing.T) {
	got, _ := minimize(t, `.i 2 .o 1 .type fd
10 1
11 -
.e
`)
	assert.Equal(t, []string{"1- 1"}, rowStrings(got))
}

func TestDontCareSharedByTwoCubes(t *testing.T) {
	// Both ON-cubes expand through the don't-care at 11; neither can
	// absorb the other, so the minimum stays at two cubes.
	got, _ := minimize(t, `.i 2 .o 1 .type fd
10 1
01 1
11 -
.e
`)
	assert.Equal(t, []string{"-1 1", "1- 1"}, rowStrings(got))
}

const cyclicPLA = `.i 3 .o 1
000 1
001 1
010 1
101 1
110 1
111 1
.e
`

func TestCyclicCoreHeuristicVersusExact(t *testing.T) {
	p := parseFixture(t, cyclicPLA)

	exact, err := MinimizeExact(NewContext(), p.F, p.D, p.R, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3, exact.Len(), "the cyclic function needs exactly three primes")

	heur, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, DefaultOptions())
	require.NoError(t, err)
	assert.LessOrEqual(t, heur.Len(), 4)
}

func TestDeterministicOutput(t *testing.T) {
	run := func() []string {
		p := parseFixture(t, cyclicPLA)
		got, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, DefaultOptions())
		require.NoError(t, err)
		// Unsorted row order matters here: two runs must agree bit for bit.
		lay := got.Lay
		var rows []string
		for _, c := range got.Cubes {
			b := make([]byte, 0, lay.Parts)
			for q := 0; q < lay.Parts; q++ {
				if c.Test(q) {
					b = append(b, '1')
				} else {
					b = append(b, '0')
				}
			}
			rows = append(rows, string(b))
		}
		return rows
	}
	assert.Equal(t, run(), run())
}

func TestIdempotence(t *testing.T) {
	p := parseFixture(t, cyclicPLA)
	once, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, DefaultOptions())
	require.NoError(t, err)

	twice, err := MinimizeHeuristic(NewContext(), once, p.D, p.R, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, once.Len(), twice.Len())
	assert.Equal(t, once.Literals(), twice.Literals())
}

func TestCubeCountNeverWorsens(t *testing.T) {
	fixtures := []string{
		cyclicPLA,
		".i 2 .o 1\n01 1\n10 1\n.e\n",
		".i 3 .o 1\n000 1\n001 1\n011 1\n111 1\n.e\n",
		".i 4 .o 1\n0000 1\n0001 1\n1-11 1\n0-01 1\n1100 1\n.e\n",
	}
	for _, src := range fixtures {
		p := parseFixture(t, src)
		before := p.F.Len()
		got, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, DefaultOptions())
		require.NoError(t, err)
		assert.LessOrEqual(t, got.Len(), before, "fixture:\n%s", src)

		// F ⊆ F' ∪ D, stated explicitly on top of the driver's own check.
		fd := cover.Union(got, p.D)
		for _, c := range p.F.Cubes {
			assert.True(t, cover.Tautology(cover.Cofactor(fd, c)),
				"original cube no longer covered in fixture:\n%s", src)
		}
	}
}

func TestStrategies(t *testing.T) {
	p := parseFixture(t, cyclicPLA)

	for _, strat := range []Strategy{StrategyFast, StrategyDefault, StrategyStrong} {
		opts := DefaultOptions()
		opts.Strategy = strat
		got, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, opts)
		require.NoError(t, err, "strategy %s", strat)
		assert.LessOrEqual(t, got.Len(), p.F.Len(), "strategy %s", strat)
	}
}

func TestSimplifyKeepsCoverage(t *testing.T) {
	p := parseFixture(t, `.i 3 .o 1
000 1
001 1
00- 1
.e
`)
	got, err := Simplify(NewContext(), p.F, p.D, p.R)
	require.NoError(t, err)
	assert.Equal(t, []string{"00- 1"}, rowStrings(got))
}

func TestOffsetConflictRejected(t *testing.T) {
	p := parseFixture(t, `.i 2 .o 1 .type fdr
11 1
.e
`)
	// Force a conflicting OFF cube.
	p.R.Add(p.F.Cubes[0])

	_, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, DefaultOptions())
	require.Error(t, err)
	assert.True(t, IsKind(err, OffsetConflict), "got %v", err)
}

func TestSoftTimeoutReturnsValidCover(t *testing.T) {
	p := parseFixture(t, cyclicPLA)
	ctx := NewContext().WithDeadline(time.Now().Add(-time.Second))

	got, err := MinimizeHeuristic(ctx, p.F, p.D, p.R, DefaultOptions())
	require.Error(t, err)
	assert.True(t, IsKind(err, SoftTimeout), "got %v", err)
	require.NotNil(t, got)

	fd := cover.Union(got, p.D)
	for _, c := range p.F.Cubes {
		assert.True(t, cover.Tautology(cover.Cofactor(fd, c)))
	}
}

func TestSwapOnOffMinimizesOffset(t *testing.T) {
	p := parseFixture(t, `.i 2 .o 1
1- 1
-1 1
.e
`)
	opts := DefaultOptions()
	opts.SwapOnOff = true
	got, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"00 1"}, rowStrings(got))
}

func TestRecomputeOnsetFromDCAndOff(t *testing.T) {
	p := parseFixture(t, `.i 2 .o 1
1- 1
-1 1
.e
`)
	opts := DefaultOptions()
	opts.RecomputeOnset = true
	// The ON-set is rebuilt as the complement of D ∪ R, which describes
	// the same function here.
	got, err := MinimizeHeuristic(NewContext(), p.F, p.D, p.R, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"-1 1", "1- 1"}, rowStrings(got))
}

func TestUnwrapOnsetSplitsOutputs(t *testing.T) {
	p := parseFixture(t, `.i 2 .o 2 .type fr
11 11
.e
`)
	split := unwrapOnset(p.F)
	assert.Equal(t, 2, split.Len())
	for _, c := range split.Cubes {
		assert.Equal(t, 1, p.Lay.FieldCount(c, p.Lay.OutputVar()))
	}
}

func TestEssentialDetection(t *testing.T) {
	// XOR: every prime uniquely covers its minterms.
	p := parseFixture(t, ".i 2 .o 1\n01 1\n10 1\n.e\n")
	for i := range p.F.Cubes {
		assert.True(t, isEssential(p.F, p.D, i), "xor cube %d", i)
	}

	// The cyclic function has no essential primes at all: every minterm
	// sits under two primes.
	c := parseFixture(t, cyclicPLA)
	primes, err := allPrimes(cover.Union(c.F, c.D), DefaultMaxPrimes)
	require.NoError(t, err)
	for i := range primes.Cubes {
		assert.False(t, isEssential(primes, c.D, i), "prime %d of the cyclic function", i)
	}
}

func TestCheckAcceptsConsistentTriple(t *testing.T) {
	p := parseFixture(t, `.i 2 .o 1
1- 1
-1 1
.e
`)
	assert.NoError(t, Check(NewContext(), p.F, p.D, p.R))
}

func TestCheckReportsGapAndConflict(t *testing.T) {
	p := parseFixture(t, `.i 2 .o 1 .type fdr
11 1
.e
`)
	err := Check(NewContext(), p.F, p.D, p.R)
	require.Error(t, err)
	assert.True(t, IsKind(err, CoverageGap), "got %v", err)

	p.R.Add(p.F.Cubes[0])
	err = Check(NewContext(), p.F, p.D, p.R)
	require.Error(t, err)
	assert.True(t, IsKind(err, OffsetConflict), "got %v", err)
}
