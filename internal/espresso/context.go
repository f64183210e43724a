// SPDX-License-Identifier: Apache-2.0

// Package espresso implements the two-level minimization core: essential
// prime extraction, EXPAND, IRREDUNDANT, REDUCE, the LAST_GASP escape, the
// heuristic driver loop and the exact cyclic-core solver. All operations
// are pure transformations on (F, D, R) cover triples; the PLA text layer
// and the CLI live outside this package.
package espresso

import (
	"time"

	"github.com/tliron/commonlog"

	"espresso/internal/cover"
	"espresso/internal/cube"
)

// Context carries the per-call state the passes share: the trace logger,
// the optional wall-clock deadline, and counters. Nothing in the core
// reads process-wide configuration.
type Context struct {
	Log      commonlog.Logger
	Deadline time.Time
	Stats    Stats
}

// Stats counts pass invocations for tracing.
type Stats struct {
	Expands      uint64
	Irredundants uint64
	Reduces      uint64
	Gasps        uint64
	Iterations   uint64
}

// NewContext returns a context logging under the "espresso" name with no
// deadline.
func NewContext() *Context {
	return &Context{Log: commonlog.GetLogger("espresso")}
}

// WithDeadline returns a copy of ctx bounded by the given wall-clock time.
func (ctx *Context) WithDeadline(t time.Time) *Context {
	c := *ctx
	c.Deadline = t
	return &c
}

// Expired reports whether the deadline has passed. Consulted at the top of
// each driver iteration and inside every minimum-cover search.
func (ctx *Context) Expired() bool {
	return !ctx.Deadline.IsZero() && time.Now().After(ctx.Deadline)
}

// Cost is the lexicographic (cube count, literal count) cost of a cover.
type Cost struct {
	Cubes    uint64
	Literals uint64
}

func costOf(f *cover.Cover) Cost {
	var lits uint64
	for _, c := range f.Cubes {
		lits = satAdd(lits, uint64(f.Lay.Literals(c)))
	}
	return Cost{Cubes: uint64(len(f.Cubes)), Literals: lits}
}

// Less reports whether c is strictly better than o.
func (c Cost) Less(o Cost) bool {
	if c.Cubes != o.Cubes {
		return c.Cubes < o.Cubes
	}
	return c.Literals < o.Literals
}

// satAdd adds with saturation at the top of the 64-bit range.
func satAdd(a, b uint64) uint64 {
	s := a + b
	if s < a {
		return ^uint64(0)
	}
	return s
}

// validate rejects malformed covers before any transformation runs.
func validate(lay *cube.Layout, covers ...*cover.Cover) error {
	for _, f := range covers {
		if f == nil {
			return newError(InvalidInput, "nil cover")
		}
		if f.Lay != lay {
			return newError(InvalidInput, "cover layout mismatch")
		}
		for _, c := range f.Cubes {
			if !lay.Valid(c) {
				e := newError(InvalidInput, "cube with empty variable field")
				e.Witness = c.Clone()
				return e
			}
		}
	}
	return nil
}
