// SPDX-License-Identifier: Apache-2.0
package pla

import (
	"fmt"
	"io"
	"strings"

	"espresso/internal/cover"
	"espresso/internal/cube"
)

// Format renders p back into PLA text. The ON-set is always printed; the
// DC-set and OFF-set rows appear when the declared type carries them.
func Format(p *PLA) string {
	var b strings.Builder
	lay := p.Lay

	fmt.Fprintf(&b, ".i %d\n", lay.NumInputs)
	fmt.Fprintf(&b, ".o %d\n", lay.NumOutputs)
	if len(p.InLabels) > 0 {
		fmt.Fprintf(&b, ".ilb %s\n", strings.Join(p.InLabels, " "))
	}
	if len(p.OutLabels) > 0 {
		fmt.Fprintf(&b, ".ob %s\n", strings.Join(p.OutLabels, " "))
	}
	if p.Type != "" && p.Type != "fd" {
		fmt.Fprintf(&b, ".type %s\n", p.Type)
	}

	withD := strings.Contains(typeOrDefault(p.Type), "d") && p.D != nil && p.D.Len() > 0
	withR := strings.Contains(typeOrDefault(p.Type), "r") && p.R != nil && p.R.Len() > 0

	rows := p.F.Len()
	if withD {
		rows += p.D.Len()
	}
	if withR {
		rows += p.R.Len()
	}
	fmt.Fprintf(&b, ".p %d\n", rows)

	// In the explicit-OFF types a '0' output column means OFF, so the
	// no-claim character switches to '~'.
	blank := byte('0')
	if strings.Contains(typeOrDefault(p.Type), "r") {
		blank = '~'
	}
	writeRows(&b, p.F, '1', blank)
	if withD {
		writeRows(&b, p.D, '-', blank)
	}
	if withR {
		writeRows(&b, p.R, '0', blank)
	}

	b.WriteString(".e\n")
	return b.String()
}

// Write renders p to w.
func Write(w io.Writer, p *PLA) error {
	_, err := io.WriteString(w, Format(p))
	return err
}

func typeOrDefault(t string) string {
	if t == "" {
		return "fd"
	}
	return t
}

func writeRows(b *strings.Builder, f *cover.Cover, mark, blank byte) {
	for _, c := range f.Cubes {
		b.WriteString(rowText(f.Lay, c, mark, blank))
		b.WriteByte('\n')
	}
}

// rowText renders one cube: binary variables as single characters, wider
// fields as part bit-strings, the output column last with mark for each
// asserted output.
func rowText(lay *cube.Layout, c cube.Cube, mark, blank byte) string {
	var b strings.Builder
	for v := 0; v < lay.NumInputs; v++ {
		if lay.Sizes[v] == 2 {
			b.WriteByte(binaryChar(lay, c, v))
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if lay.FieldFull(c, v) {
			b.WriteByte('-')
			continue
		}
		for p := lay.First[v]; p < lay.First[v]+lay.Sizes[v]; p++ {
			if c.Test(p) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
	}
	b.WriteByte(' ')
	ov := lay.OutputVar()
	for p := lay.First[ov]; p < lay.First[ov]+lay.Sizes[ov]; p++ {
		if c.Test(p) {
			b.WriteByte(mark)
		} else {
			b.WriteByte(blank)
		}
	}
	return b.String()
}

func binaryChar(lay *cube.Layout, c cube.Cube, v int) byte {
	p0 := lay.First[v]
	has0, has1 := c.Test(p0), c.Test(p0+1)
	switch {
	case has0 && has1:
		return '-'
	case has1:
		return '1'
	case has0:
		return '0'
	default:
		return '~'
	}
}
