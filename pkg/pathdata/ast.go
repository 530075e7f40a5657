package pathdata

import "github.com/alecthomas/participle/v2/lexer"

// Data is the raw command list of a path "d" attribute.
type Data struct {
	Commands []*Command `parser:"@@*"`
}

// Command is one command letter and the numbers following it.
type Command struct {
	Pos  lexer.Position
	Op   string    `parser:"@Command"`
	Args []float64 `parser:"@Number*"`
}
