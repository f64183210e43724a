// SPDX-License-Identifier: Apache-2.0
package mincov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEssentialRowIsForced(t *testing.T) {
	m := New()
	m.Add(1, 10)
	m.Add(1, 11)
	m.Add(2, 11)

	sel, err := Solve(m, Limits{})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sel, "row 1 is the only cover of column 10 and handles 11 too")
}

func TestDominatedRowNeverSelected(t *testing.T) {
	m := New()
	m.Add(1, 10)
	m.Add(2, 10)
	m.Add(2, 11)

	sel, err := Solve(m, Limits{})
	require.NoError(t, err)
	assert.Equal(t, []int{2}, sel)
}

func TestCyclicCoreFiveCycle(t *testing.T) {
	// Five rows in a cycle, each covering two adjacent columns; no
	// essential rows, no dominance. The minimum cover has three rows.
	m := New()
	for i := 0; i < 5; i++ {
		m.Add(i, 100+i)
		m.Add(i, 100+(i+1)%5)
	}

	sel, err := Solve(m.Clone(), Limits{})
	require.NoError(t, err)
	assert.Len(t, sel, 3)

	// Every column covered.
	covered := make(map[int]bool)
	for _, row := range sel {
		for _, col := range m.RowCols(row) {
			covered[col] = true
		}
	}
	for i := 0; i < 5; i++ {
		assert.True(t, covered[100+i], "column %d uncovered", 100+i)
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	build := func() *Matrix {
		m := New()
		for i := 0; i < 6; i++ {
			m.Add(i, i)
			m.Add(i, (i*3+1)%6)
			m.Add(i, (i*5+2)%6)
		}
		return m
	}
	a, err := Solve(build(), Limits{})
	require.NoError(t, err)
	b, err := Solve(build(), Limits{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNodeLimitFallsBackToGreedy(t *testing.T) {
	m := New()
	for i := 0; i < 5; i++ {
		m.Add(i, 100+i)
		m.Add(i, 100+(i+1)%5)
	}

	sel, err := Solve(m.Clone(), Limits{MaxNodes: 1})
	assert.ErrorIs(t, err, ErrLimit)
	require.NotEmpty(t, sel, "a valid cover is still returned")

	covered := make(map[int]bool)
	for _, row := range sel {
		for _, col := range m.RowCols(row) {
			covered[col] = true
		}
	}
	assert.Len(t, covered, 5)
}

func TestGreedyCovers(t *testing.T) {
	m := New()
	m.Add(1, 10)
	m.Add(1, 11)
	m.Add(2, 12)
	sel := Greedy(m)
	assert.Equal(t, []int{1, 2}, sel)
}

func TestInfeasibleBranchDetection(t *testing.T) {
	m := New()
	m.Add(1, 10)
	m.RemoveRow(1)
	assert.False(t, feasible(m), "column 10 has no rows left")
}
