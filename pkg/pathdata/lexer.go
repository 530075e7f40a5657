package pathdata

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes SVG path data. Commas count as whitespace.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[\s,]+`},

	// Supported commands: moveto, lineto, horizontal/vertical lineto and
	// closepath, absolute and relative.
	{Name: "Command", Pattern: `[MmLlHhVvZz]`},

	{Name: "Number", Pattern: `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`},
})
