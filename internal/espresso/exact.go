// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"espresso/internal/cover"
	"espresso/internal/cube"
	"espresso/internal/mincov"
)

// MinimizeExact returns a minimum-cube cover of f against d and r: all
// primes of f ∪ d are generated, the essential primes are committed, and
// the residual prime/minterm covering table is solved exactly by
// branch-and-bound. LimitExceeded is returned when the prime table or
// minterm set outgrows the configured ceiling; the caller may retry
// heuristically.
func MinimizeExact(ctx *Context, f, d, r *cover.Cover, opts Options) (*cover.Cover, error) {
	f, d, r, err := prepare(f, d, r, opts)
	if err != nil {
		return nil, err
	}
	orig := f.Clone()
	lay := f.Lay

	primes, err := allPrimes(cover.Union(f, d), opts.maxPrimes())
	if err != nil {
		return nil, err
	}
	ctx.Log.Debugf("exact: %d primes", primes.Len())

	// Essential primes are in every minimum cover; commit them and stop
	// charging for the minterms they already handle.
	var ess, rest []cube.Cube
	for i, p := range primes.Cubes {
		others := cover.Union(primes.Without(i), d)
		if cover.Tautology(cover.Cofactor(others, p)) {
			rest = append(rest, p)
		} else {
			ess = append(ess, p)
		}
	}
	essCover := cover.Of(lay, ess...)
	essD := cover.Union(essCover, d)

	minterms, err := witnessMinterms(lay, f, essD, opts.maxPrimes())
	if err != nil {
		return nil, err
	}

	m := mincov.New()
	for row := range rest {
		m.AddRow(row)
	}
	for col, mt := range minterms {
		for row, p := range rest {
			if cube.Contains(p, mt) {
				m.Add(row, col)
			}
		}
	}

	limits := mincov.Limits{MaxNodes: opts.maxCoverNodes(), Deadline: ctx.Deadline}
	sel, solveErr := mincov.Solve(m, limits)

	result := essCover.Clone()
	for _, row := range sel {
		result.Add(rest[row])
	}

	// One literal-minimization pass; cube count is already minimum.
	result = reduce(ctx, result, d)
	result = expand(ctx, result, r)

	if err := verifyResult(orig, result, d, r); err != nil {
		return nil, err
	}
	switch solveErr {
	case mincov.ErrLimit:
		return result, newError(LimitExceeded, "covering search truncated at %d nodes", opts.maxCoverNodes())
	case mincov.ErrDeadline:
		return result, newError(SoftTimeout, "covering search hit the deadline")
	}
	return result, nil
}

// allPrimes computes every prime implicant of fd by iterated consensus
// with absorption: keep adding the per-variable consensus of near pairs
// until nothing new survives containment. The ceiling guards the
// exponential worst case.
func allPrimes(fd *cover.Cover, ceiling int) (*cover.Cover, error) {
	lay := fd.Lay
	ps := cover.ContainSort(fd)
	for {
		fresh := cover.New(lay)
		for i, a := range ps.Cubes {
			for _, b := range ps.Cubes[i+1:] {
				if lay.Distance(a, b) > 1 {
					continue
				}
				for v := 0; v < lay.NumVars(); v++ {
					c := lay.ConsensusVar(a, b, v)
					if c == nil {
						continue
					}
					if absorbed(ps, c) || absorbed(fresh, c) {
						continue
					}
					fresh.Push(c)
				}
			}
		}
		if len(fresh.Cubes) == 0 {
			return ps, nil
		}
		ps = cover.ContainSort(cover.Union(ps, fresh))
		if ps.Len() > ceiling {
			return nil, newError(LimitExceeded, "prime table exceeds %d cubes", ceiling)
		}
	}
}

func absorbed(f *cover.Cover, c cube.Cube) bool {
	for _, k := range f.Cubes {
		if cube.Contains(k, c) {
			return true
		}
	}
	return false
}

// witnessMinterms enumerates the minterms of f not covered by g, in
// deterministic order with duplicates collapsed.
func witnessMinterms(lay *cube.Layout, f, g *cover.Cover, ceiling int) ([]cube.Cube, error) {
	seen := make(map[string]struct{})
	var out []cube.Cube
	for _, c := range f.Cubes {
		region := cover.SharpCover(c, g)
		for _, rc := range region.Cubes {
			var err error
			out, err = enumerate(lay, rc, 0, lay.New(), seen, out, ceiling)
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// enumerate walks the parts of cube c variable by variable, emitting every
// minterm under it.
func enumerate(lay *cube.Layout, c cube.Cube, v int, acc cube.Cube, seen map[string]struct{}, out []cube.Cube, ceiling int) ([]cube.Cube, error) {
	if v == lay.NumVars() {
		key := string(cubeBytes(acc))
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			out = append(out, acc.Clone())
			if len(out) > ceiling {
				return nil, newError(LimitExceeded, "minterm table exceeds %d entries", ceiling)
			}
		}
		return out, nil
	}
	for p := lay.First[v]; p < lay.First[v]+lay.Sizes[v]; p++ {
		if !c.Test(p) {
			continue
		}
		acc.Set(p)
		var err error
		out, err = enumerate(lay, c, v+1, acc, seen, out, ceiling)
		acc.Clear(p)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
