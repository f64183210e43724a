// SPDX-License-Identifier: Apache-2.0
package pla

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// PLALexer tokenizes the line-oriented PLA format. Directives switch into
// their own state so arguments like symbolic labels or counts never
// collide with the row character set.
var PLALexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `#[^\n]*`, nil},

		// Directives such as .i, .o, .type; arguments follow on the same line
		{"Directive", `\.[a-zA-Z][a-zA-Z0-9_]*`, lexer.Push("Args")},

		// Cube rows over {0,1,-,~} with | separating multi-valued parts
		{"Term", `[01~|\-]+`, nil},

		{"EOL", `\n`, nil},
		{"Whitespace", `[ \t\r]+`, nil},
	},
	"Args": {
		{"Comment", `#[^\n]*`, nil},
		// Several directives may share a line; a new one keeps the state
		// and the parser re-associates the arguments that follow.
		{"Directive", `\.[a-zA-Z][a-zA-Z0-9_]*`, nil},
		{"Arg", `[^ \t\r\n#]+`, nil},
		{"ArgsEOL", `\n`, lexer.Pop()},
		{"ArgsWS", `[ \t\r]+`, nil},
	},
})
