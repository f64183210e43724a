// SPDX-License-Identifier: Apache-2.0
package pla

// Document is the parse tree of a PLA file: an ordered mix of directives
// and cube rows.
type Document struct {
	Items []*Item `@@*`
}

type Item struct {
	Directive *Directive `  @@`
	Row       *Row       `| @@`
	Blank     bool       `| @EOL`
}

type Directive struct {
	Name string   `@Directive`
	Args []string `@Arg*`
	End  bool     `@ArgsEOL?`
}

type Row struct {
	Fields []string `@Term+`
	End    bool     `@EOL?`
}
