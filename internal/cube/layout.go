// SPDX-License-Identifier: Apache-2.0

// Package cube implements the bit-packed representation of a multi-valued
// cube and the single-cube algebra built on it. A cube is a bit vector
// partitioned into one contiguous field per variable; bit j of field i set
// means "part j of variable i is in this cube". The output variable is the
// last field.
package cube

import (
	"errors"
	"fmt"
)

// ErrBadLayout is returned when a layout is requested with no variables or
// a variable with fewer than one part.
var ErrBadLayout = errors.New("cube: invalid variable layout")

const wordBits = 64

// Layout describes how a cube's bit vector is partitioned into per-variable
// fields. All cubes of a cover share one Layout; a Layout is immutable after
// construction.
type Layout struct {
	NumInputs  int   // number of multi-valued input variables
	NumOutputs int   // parts of the trailing output variable
	Sizes      []int // parts per variable, len NumInputs+1; Sizes[NumInputs] == NumOutputs
	First      []int // bit offset of each variable's field
	Parts      int   // total part count across all fields
	Words      int   // 64-bit words per cube

	// masks[v] is a Words-long word vector with exactly the bits of
	// variable v's field set. Precomputed once; every field-wise test in
	// the algebra runs off it.
	masks [][]uint64
}

// NewLayout builds a layout for the given input variable sizes plus one
// output variable with numOutputs parts. numOutputs may be zero only when
// the function has no outputs, which no valid cover has, so it must be
// at least 1.
func NewLayout(inputSizes []int, numOutputs int) (*Layout, error) {
	if numOutputs < 1 {
		return nil, fmt.Errorf("%w: %d output parts", ErrBadLayout, numOutputs)
	}
	for i, s := range inputSizes {
		if s < 2 {
			return nil, fmt.Errorf("%w: variable %d has %d parts", ErrBadLayout, i, s)
		}
	}

	lay := &Layout{
		NumInputs:  len(inputSizes),
		NumOutputs: numOutputs,
	}
	lay.Sizes = make([]int, 0, len(inputSizes)+1)
	lay.Sizes = append(lay.Sizes, inputSizes...)
	lay.Sizes = append(lay.Sizes, numOutputs)

	lay.First = make([]int, len(lay.Sizes))
	off := 0
	for v, s := range lay.Sizes {
		lay.First[v] = off
		off += s
	}
	lay.Parts = off
	lay.Words = (off + wordBits - 1) / wordBits

	lay.masks = make([][]uint64, len(lay.Sizes))
	for v := range lay.Sizes {
		m := make([]uint64, lay.Words)
		for p := lay.First[v]; p < lay.First[v]+lay.Sizes[v]; p++ {
			m[p/wordBits] |= 1 << uint(p%wordBits)
		}
		lay.masks[v] = m
	}
	return lay, nil
}

// NewBinaryLayout builds a layout with numInputs two-part (binary) input
// variables and numOutputs output parts.
func NewBinaryLayout(numInputs, numOutputs int) (*Layout, error) {
	sizes := make([]int, numInputs)
	for i := range sizes {
		sizes[i] = 2
	}
	return NewLayout(sizes, numOutputs)
}

// NumVars is the variable count including the output variable.
func (l *Layout) NumVars() int { return len(l.Sizes) }

// OutputVar is the index of the output variable's field.
func (l *Layout) OutputVar() int { return l.NumInputs }

// VarOfPart returns the variable whose field contains the given part index.
func (l *Layout) VarOfPart(part int) int {
	for v := len(l.Sizes) - 1; v >= 0; v-- {
		if part >= l.First[v] {
			return v
		}
	}
	return 0
}

// Mask returns the precomputed word mask of variable v's field. Callers
// must not modify the returned slice.
func (l *Layout) Mask(v int) []uint64 { return l.masks[v] }
