// SPDX-License-Identifier: Apache-2.0
package espresso

import (
	"espresso/internal/cover"
)

// MinimizeHeuristic minimizes the ON-set f against the don't-care set d
// and OFF-set r: the returned cover F' satisfies f ⊆ F' ⊆ f ∪ d, is
// disjoint from r, and heuristically minimizes first the cube count and
// then the literal count. On deadline expiry the current best cover is
// returned together with a SoftTimeout error.
func MinimizeHeuristic(ctx *Context, f, d, r *cover.Cover, opts Options) (*cover.Cover, error) {
	f, d, r, err := prepare(f, d, r, opts)
	if err != nil {
		return nil, err
	}
	orig := f.Clone()

	work := expandPass(ctx, f, r, opts)
	work = irredundant(ctx, work, d, opts)

	var timeout error
	if opts.Strategy != StrategyFast {
		work, timeout = iterate(ctx, work, d, r, opts)
	}

	if opts.FinalIrredundant {
		work = irredundant(ctx, work, d, opts)
	}
	work = cover.ContainSort(work)

	if err := verifyResult(orig, work, d, r); err != nil {
		return nil, err
	}
	return work, timeout
}

// iterate runs the REDUCE / EXPAND / IRREDUNDANT loop with essential
// peeling until the cost stops improving, then lets the gasp escape have
// its try. Essential cubes sit out the loop as don't-care and rejoin at
// the end.
func iterate(ctx *Context, f, d, r *cover.Cover, opts Options) (*cover.Cover, error) {
	ess := cover.New(f.Lay)
	if opts.DetectEssentials {
		ess, f = essentials(f, d)
		d = cover.Union(d, ess)
		if ess.Len() > 0 {
			ctx.Log.Debugf("peeled %d essential primes", ess.Len())
		}
	}

	var timeout error
outer:
	for {
		cost := costOf(f)
		for {
			ctx.Stats.Iterations++
			if ctx.Expired() {
				timeout = newError(SoftTimeout, "deadline reached after %d iterations", ctx.Stats.Iterations)
				break outer
			}
			prev := f
			f = reduce(ctx, f, d)
			f = expand(ctx, f, r)
			f = irredundant(ctx, f, d, opts)
			next := costOf(f)
			ctx.Log.Debugf("iteration %d: %d cubes, %d literals", ctx.Stats.Iterations, next.Cubes, next.Literals)
			if !next.Less(cost) {
				if cost.Less(next) {
					f = prev
				}
				break
			}
			cost = next
		}

		// The gasp escape may buy another round of the loop; when it
		// changes nothing the cover is as good as this search gets.
		before := costOf(f)
		switch opts.Strategy {
		case StrategyStrong:
			f = superGasp(ctx, f, d, r, opts)
		default:
			f = lastGasp(ctx, f, d, r, opts)
		}
		if !costOf(f).Less(before) {
			break
		}
	}
	return cover.Union(ess, f), timeout
}

// Simplify runs a single EXPAND plus IRREDUNDANT pass: the cheap cleanup
// entry point.
func Simplify(ctx *Context, f, d, r *cover.Cover) (*cover.Cover, error) {
	opts := DefaultOptions()
	opts.Strategy = StrategyFast
	return MinimizeHeuristic(ctx, f, d, r, opts)
}

// expandPass dispatches between the full and the single-sweep EXPAND.
func expandPass(ctx *Context, f, r *cover.Cover, opts Options) *cover.Cover {
	if opts.Strategy == StrategyFast {
		return singleExpand(ctx, f, r)
	}
	return expand(ctx, f, r)
}

// prepare applies the input-shaping options, validates the covers and
// rejects conflicting ON/OFF sets before any transformation runs.
func prepare(f, d, r *cover.Cover, opts Options) (_, _, _ *cover.Cover, err error) {
	if f == nil || f.Lay == nil {
		return nil, nil, nil, newError(InvalidInput, "nil ON-set")
	}
	lay := f.Lay
	if err := validate(lay, f, d, r); err != nil {
		return nil, nil, nil, err
	}

	if opts.SwapOnOff {
		f, r = r, f
	}
	if opts.RecomputeOnset {
		f = cover.Complement(cover.Union(d, r))
	}
	if opts.UnwrapOnset {
		f = unwrapOnset(f)
	} else {
		f = f.Clone()
	}

	for _, fc := range f.Cubes {
		for _, rc := range r.Cubes {
			if lay.Intersect(fc, rc) != nil {
				e := newError(OffsetConflict, "ON-set and OFF-set share a point")
				e.Witness = lay.Intersect(fc, rc)
				return nil, nil, nil, e
			}
		}
	}
	return f, d.Clone(), r.Clone(), nil
}

// unwrapOnset splits every multi-output cube into one cube per asserted
// output.
func unwrapOnset(f *cover.Cover) *cover.Cover {
	lay := f.Lay
	out := cover.New(lay)
	ov := lay.OutputVar()
	for _, c := range f.Cubes {
		if lay.FieldCount(c, ov) == 1 {
			out.Add(c)
			continue
		}
		for p := lay.First[ov]; p < lay.First[ov]+lay.Sizes[ov]; p++ {
			if !c.Test(p) {
				continue
			}
			s := c.Clone()
			for q := lay.First[ov]; q < lay.First[ov]+lay.Sizes[ov]; q++ {
				if q != p {
					s.Clear(q)
				}
			}
			out.Push(s)
		}
	}
	return out
}

// verifyResult asserts the driver post-conditions: the result covers every
// original cube modulo d, and stays off the OFF-set. Violations are
// internal bugs surfaced as fatal errors.
func verifyResult(orig, result, d, r *cover.Cover) error {
	lay := orig.Lay
	rd := cover.Union(result, d)
	for _, c := range orig.Cubes {
		if !cover.Tautology(cover.Cofactor(rd, c)) {
			e := newError(CoverageGap, "minimized cover misses part of the ON-set")
			e.Witness = c.Clone()
			return e
		}
	}
	for _, c := range result.Cubes {
		for _, rc := range r.Cubes {
			if lay.Intersect(c, rc) != nil {
				e := newError(OffsetConflict, "minimized cover touches the OFF-set")
				e.Witness = lay.Intersect(c, rc)
				return e
			}
		}
	}
	return nil
}
