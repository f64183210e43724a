// SPDX-License-Identifier: Apache-2.0
package mincov

import (
	"errors"
	"sort"
	"time"
)

// ErrLimit is returned when the branch-and-bound search exceeds its node
// ceiling before proving a minimum.
var ErrLimit = errors.New("mincov: node limit exceeded")

// ErrDeadline is returned when the search runs past its deadline.
var ErrDeadline = errors.New("mincov: deadline exceeded")

// Limits bounds the branch-and-bound search. Zero values mean unbounded.
type Limits struct {
	MaxNodes int
	Deadline time.Time
}

type solver struct {
	limits Limits
	nodes  int
	best   []int
	found  bool
	err    error
}

// Solve returns a minimum set of rows covering every column of m, in
// ascending id order. On ErrLimit or ErrDeadline the best cover found so
// far is still returned; it is valid but possibly not minimum.
func Solve(m *Matrix, limits Limits) ([]int, error) {
	s := &solver{limits: limits}
	s.search(m.Clone(), nil)
	if !s.found {
		// Reduction alone always yields some cover before the first
		// prune, so an absent solution means a limit tripped before the
		// search reached its first complete cover. Fall back to the greedy
		// cover.
		sel := Greedy(m)
		return sel, s.err
	}
	sel := append([]int(nil), s.best...)
	sort.Ints(sel)
	return sel, s.err
}

// search explores one node: reduce to the cyclic core, then branch on the
// hardest row. picked carries the rows selected on the path so far.
func (s *solver) search(m *Matrix, picked []int) {
	s.nodes++
	if s.limits.MaxNodes > 0 && s.nodes > s.limits.MaxNodes {
		s.err = ErrLimit
		return
	}
	if !s.limits.Deadline.IsZero() && time.Now().After(s.limits.Deadline) {
		s.err = ErrDeadline
		return
	}

	picked = append(picked, reduce(m)...)

	if len(m.cols) == 0 {
		if !s.found || len(picked) < len(s.best) {
			s.best = append([]int(nil), picked...)
			s.found = true
		}
		return
	}

	// Prune on the independent-set lower bound.
	lower := len(picked) + independentColumns(m)
	if s.found && lower >= len(s.best) {
		return
	}

	branch := hardestRow(m)
	if branch < 0 {
		return
	}

	in := m.Clone()
	in.SelectRow(branch)
	s.search(in, append(picked, branch))
	if s.err != nil {
		return
	}

	out := m.Clone()
	out.RemoveRow(branch)
	// A column only coverable by the excluded row makes this side
	// infeasible; reduce in the child will find no rows for it.
	if feasible(out) {
		s.search(out, picked)
	}
}

// reduce applies essential-row selection and row/column dominance to
// fixpoint, returning the rows forced into the solution. This is the same
// alternation as the classic covering-table simplification: each kind of
// reduction can enable the other, so they loop until neither applies.
func reduce(m *Matrix) []int {
	var forced []int
	for {
		changed := false

		// Essential rows: a column with a single live row selects it.
		for _, col := range m.Cols() {
			if m.ColLen(col) != 1 {
				continue
			}
			row := m.ColRows(col)[0]
			forced = append(forced, row)
			m.SelectRow(row)
			changed = true
		}

		// Row dominance: a row whose columns are a subset of another's
		// never beats it.
		rows := m.Rows()
		for _, b := range rows {
			if _, live := m.rows[b]; !live {
				continue
			}
			for _, a := range rows {
				if a == b {
					continue
				}
				if _, live := m.rows[a]; !live {
					continue
				}
				if m.rowContains(a, b) && (m.RowLen(a) > m.RowLen(b) || a < b) {
					m.RemoveRow(b)
					changed = true
					break
				}
			}
		}

		// Column dominance: a column covered whenever a harder one is
		// carries no information.
		cols := m.Cols()
		for _, y := range cols {
			if _, live := m.cols[y]; !live {
				continue
			}
			for _, x := range cols {
				if x == y {
					continue
				}
				if _, live := m.cols[x]; !live {
					continue
				}
				if m.colContains(x, y) && (m.ColLen(x) < m.ColLen(y) || x < y) {
					m.RemoveCol(y)
					changed = true
					break
				}
			}
		}

		if !changed {
			return forced
		}
	}
}

// independentColumns greedily builds a set of pairwise row-disjoint
// columns; its size lower-bounds any cover of m. Hardest (fewest-row)
// columns are taken first.
func independentColumns(m *Matrix) int {
	cols := m.Cols()
	sort.SliceStable(cols, func(i, j int) bool {
		li, lj := m.ColLen(cols[i]), m.ColLen(cols[j])
		if li != lj {
			return li < lj
		}
		return cols[i] < cols[j]
	})
	used := make(map[int]struct{})
	n := 0
	for _, col := range cols {
		hit := false
		for row := range m.cols[col] {
			if _, ok := used[row]; ok {
				hit = true
				break
			}
		}
		if hit {
			continue
		}
		for row := range m.cols[col] {
			used[row] = struct{}{}
		}
		n++
	}
	return n
}

// hardestRow picks the branching row: most columns, lowest id on ties.
func hardestRow(m *Matrix) int {
	best, bestLen := -1, -1
	for _, row := range m.Rows() {
		if n := m.RowLen(row); n > bestLen {
			best, bestLen = row, n
		}
	}
	return best
}

// feasible reports whether every column still has at least one row.
func feasible(m *Matrix) bool {
	for _, col := range m.Cols() {
		if m.ColLen(col) == 0 {
			return false
		}
	}
	return true
}

// Greedy returns a cover built by repeatedly taking the row covering the
// most remaining columns. Valid but not necessarily minimum; the fallback
// when Solve hits a limit.
func Greedy(m *Matrix) []int {
	w := m.Clone()
	var sel []int
	for len(w.cols) > 0 {
		row := hardestRow(w)
		if row < 0 || w.RowLen(row) == 0 {
			break
		}
		sel = append(sel, row)
		w.SelectRow(row)
	}
	sort.Ints(sel)
	return sel
}
