// SPDX-License-Identifier: Apache-2.0

// Package pla reads and writes the line-oriented PLA exchange format and
// converts it to and from the core's cover triples. The core itself never
// touches a file; this package is the external collaborator that feeds it.
package pla

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"espresso/internal/cover"
	"espresso/internal/cube"
)

// PLA is a parsed cover triple plus the declarations that shaped it.
type PLA struct {
	Lay       *cube.Layout
	F         *cover.Cover // ON-set
	D         *cover.Cover // DC-set
	R         *cover.Cover // OFF-set
	Type      string       // f, fd, fr or fdr
	InLabels  []string
	OutLabels []string
}

// ParseFile reads and parses a PLA file.
func ParseFile(path string) (*PLA, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(path, string(source))
}

// Parse parses PLA source text. The missing member of the cover triple is
// derived by complement according to the declared .type.
func Parse(path, source string) (*PLA, error) {
	parser, err := participle.Build[Document](
		participle.Lexer(PLALexer),
		participle.Elide("Whitespace", "ArgsWS", "Comment"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	doc, err := parser.ParseString(path, source)
	if err != nil {
		reportParseError(source, err)
		return nil, err
	}
	return build(doc)
}

// reportParseError prints a friendly caret-style parse error message.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("-> %s\n", pe.Message())
}

// builder accumulates directives and rows in file order.
type builder struct {
	numIn   int
	numOut  int
	mvSizes []int // non-binary variable sizes from .mv, output last
	typ     string
	inLab   []string
	outLab  []string

	lay *cube.Layout
	f   *cover.Cover
	d   *cover.Cover
	r   *cover.Cover
}

func build(doc *Document) (*PLA, error) {
	b := &builder{numIn: -1, numOut: -1, typ: "fd"}
	done := false
	for _, item := range doc.Items {
		if done {
			break
		}
		switch {
		case item.Directive != nil:
			stop, err := b.directive(item.Directive)
			if err != nil {
				return nil, err
			}
			done = stop
		case item.Row != nil:
			if err := b.row(item.Row.Fields); err != nil {
				return nil, err
			}
		}
	}
	if b.lay == nil {
		if err := b.makeLayout(); err != nil {
			return nil, err
		}
	}
	b.derive()
	return &PLA{
		Lay:       b.lay,
		F:         b.f,
		D:         b.d,
		R:         b.r,
		Type:      b.typ,
		InLabels:  b.inLab,
		OutLabels: b.outLab,
	}, nil
}

func (b *builder) directive(d *Directive) (stop bool, err error) {
	switch d.Name {
	case ".i":
		b.numIn, err = oneInt(d)
	case ".o":
		b.numOut, err = oneInt(d)
	case ".mv":
		err = b.parseMV(d.Args)
	case ".ilb":
		b.inLab = append([]string(nil), d.Args...)
	case ".ob":
		b.outLab = append([]string(nil), d.Args...)
	case ".type":
		if len(d.Args) != 1 {
			return false, fmt.Errorf("%s wants one argument", d.Name)
		}
		switch d.Args[0] {
		case "f", "fd", "fr", "fdr":
			b.typ = d.Args[0]
		default:
			return false, fmt.Errorf(".type %q is not one of f, fd, fr, fdr", d.Args[0])
		}
	case ".p":
		_, err = oneInt(d) // row count is advisory
	case ".e", ".end":
		return true, nil
	default:
		// Unknown directives are carried by many PLA producers; skip.
	}
	return false, err
}

func oneInt(d *Directive) (int, error) {
	if len(d.Args) != 1 {
		return 0, fmt.Errorf("%s wants one numeric argument", d.Name)
	}
	n, err := strconv.Atoi(d.Args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: bad count %q", d.Name, d.Args[0])
	}
	return n, nil
}

// parseMV handles ".mv nv nb s1 s2 ...": nv variables total of which the
// first nb are binary; the listed sizes cover the rest, the last being the
// output variable.
func (b *builder) parseMV(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(".mv wants at least two arguments")
	}
	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 {
			return fmt.Errorf(".mv: bad number %q", a)
		}
		nums[i] = n
	}
	nv, nb := nums[0], nums[1]
	sizes := nums[2:]
	if len(sizes) != nv-nb || len(sizes) == 0 {
		return fmt.Errorf(".mv: %d sizes listed, want %d", len(sizes), nv-nb)
	}
	b.numIn = nv - 1
	b.numOut = sizes[len(sizes)-1]
	b.mvSizes = sizes[:len(sizes)-1]
	return nil
}

func (b *builder) makeLayout() error {
	if b.numIn < 0 || b.numOut < 1 {
		return fmt.Errorf("missing .i/.o (or .mv) declaration")
	}
	nb := b.numIn - len(b.mvSizes)
	if nb < 0 {
		return fmt.Errorf(".mv sizes exceed the declared variable count")
	}
	sizes := make([]int, 0, b.numIn)
	for i := 0; i < nb; i++ {
		sizes = append(sizes, 2)
	}
	sizes = append(sizes, b.mvSizes...)
	lay, err := cube.NewLayout(sizes, b.numOut)
	if err != nil {
		return err
	}
	b.lay = lay
	b.f = cover.New(lay)
	b.d = cover.New(lay)
	b.r = cover.New(lay)
	return nil
}

// row converts one cube row. All fields but the last describe the inputs;
// the last carries one character per output.
func (b *builder) row(fields []string) error {
	if b.lay == nil {
		if err := b.makeLayout(); err != nil {
			return err
		}
	}
	if len(fields) < 2 {
		return fmt.Errorf("row %q: want input and output fields", strings.Join(fields, " "))
	}

	in, err := b.inputCube(fields[:len(fields)-1])
	if err != nil {
		return err
	}
	if in == nil {
		// A '~' emptied a field: the row covers no point.
		return nil
	}

	outs := fields[len(fields)-1]
	if len(outs) != b.numOut {
		return fmt.Errorf("row output %q: want %d characters", outs, b.numOut)
	}

	lay := b.lay
	ov := lay.OutputVar()
	on := lay.New()
	dc := lay.New()
	off := lay.New()
	for k, ch := range outs {
		p := lay.First[ov] + k
		switch ch {
		case '1':
			on.Set(p)
		case '0':
			if strings.Contains(b.typ, "r") {
				off.Set(p)
			}
		case '-':
			if strings.Contains(b.typ, "d") {
				dc.Set(p)
			}
		case '~':
		default:
			return fmt.Errorf("row output %q: bad character %q", outs, ch)
		}
	}
	b.addOut(b.f, in, on)
	b.addOut(b.d, in, dc)
	b.addOut(b.r, in, off)
	return nil
}

// addOut joins the input cube with a non-empty output mask into dst.
func (b *builder) addOut(dst *cover.Cover, in, outMask cube.Cube) {
	lay := b.lay
	if lay.FieldEmpty(outMask, lay.OutputVar()) {
		return
	}
	c := in.Clone()
	for w, m := range lay.Mask(lay.OutputVar()) {
		c[w] |= outMask[w] & m
	}
	dst.Push(c)
}

// inputCube builds the input fields of a row cube, output field left
// clear. Nil when a '~' leaves some field empty.
func (b *builder) inputCube(fields []string) (cube.Cube, error) {
	lay := b.lay
	var tokens []string
	for _, f := range fields {
		tokens = append(tokens, strings.Split(f, "|")...)
	}

	c := lay.New()
	if len(b.mvSizes) == 0 && len(tokens) == 1 {
		// Pure binary row: one character per variable.
		text := tokens[0]
		if len(text) != lay.NumInputs {
			return nil, fmt.Errorf("row input %q: want %d characters", text, lay.NumInputs)
		}
		for v, ch := range text {
			if err := setBinary(lay, c, v, byte(ch)); err != nil {
				return nil, err
			}
		}
	} else {
		if len(tokens) != lay.NumInputs {
			return nil, fmt.Errorf("row input has %d variable fields, want %d", len(tokens), lay.NumInputs)
		}
		for v, tok := range tokens {
			if err := setField(lay, c, v, tok); err != nil {
				return nil, err
			}
		}
	}
	for v := 0; v < lay.NumInputs; v++ {
		if lay.FieldEmpty(c, v) {
			return nil, nil
		}
	}
	return c, nil
}

func setBinary(lay *cube.Layout, c cube.Cube, v int, ch byte) error {
	p0 := lay.First[v]
	switch ch {
	case '0':
		c.Set(p0)
	case '1':
		c.Set(p0 + 1)
	case '-':
		c.Set(p0)
		c.Set(p0 + 1)
	case '~':
	default:
		return fmt.Errorf("bad input character %q", ch)
	}
	return nil
}

// setField fills a (possibly multi-valued) variable field from its token:
// "-" for the full field, otherwise one 0/1 digit per part.
func setField(lay *cube.Layout, c cube.Cube, v int, tok string) error {
	if tok == "-" {
		for p := lay.First[v]; p < lay.First[v]+lay.Sizes[v]; p++ {
			c.Set(p)
		}
		return nil
	}
	if lay.Sizes[v] == 2 && len(tok) == 1 {
		return setBinary(lay, c, v, tok[0])
	}
	if len(tok) != lay.Sizes[v] {
		return fmt.Errorf("field %q: want %d parts for variable %d", tok, lay.Sizes[v], v)
	}
	for i, ch := range tok {
		switch ch {
		case '1':
			c.Set(lay.First[v] + i)
		case '0', '~':
		default:
			return fmt.Errorf("field %q: bad part character %q", tok, ch)
		}
	}
	return nil
}

// derive fills in the cover-triple member the declared type leaves
// implicit.
func (b *builder) derive() {
	switch b.typ {
	case "f":
		b.d = cover.New(b.lay)
		b.r = cover.Complement(b.f)
	case "fd":
		b.r = cover.Complement(cover.Union(b.f, b.d))
	case "fr":
		b.d = cover.Complement(cover.Union(b.f, b.r))
	case "fdr":
		// All three given explicitly.
	}
}
