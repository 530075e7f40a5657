// Package kicadsexp is a streaming S-expression reader for KiCad files.
// Board files routinely exceed tens of megabytes because of zone fills, so
// the input is consumed through a buffered reader instead of being loaded
// whole.
package kicadsexp

import (
	"io"
	"strings"
)

// Sexp is a node of the parsed tree: either a Symbol or a *List.
type Sexp interface {
	// IsLeaf reports whether the node is an atom.
	IsLeaf() bool
	String() string
}

// Symbol is an atom. Quoted strings and bare words both become symbols; the
// quotes are removed by the lexer.
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) String() string { return string(s) }

// List is a parenthesised sequence of nodes. Line and Col locate its opening
// parenthesis in the source.
type List struct {
	elements []Sexp
	Line     int
	Col      int
}

func (l *List) IsLeaf() bool { return false }

// Len returns the number of elements, including the leading keyword.
func (l *List) Len() int {
	return len(l.elements)
}

// Get returns element i, or nil when out of range.
func (l *List) Get(i int) Sexp {
	if i < 0 || i >= len(l.elements) {
		return nil
	}
	return l.elements[i]
}

// Items returns the elements of the list. The slice must not be modified.
func (l *List) Items() []Sexp {
	return l.elements
}

// Name returns the leading keyword, e.g. "segment" for (segment ...).
func (l *List) Name() string {
	if len(l.elements) == 0 {
		return ""
	}
	if sym, ok := l.elements[0].(Symbol); ok {
		return string(sym)
	}
	return ""
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, elem := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(elem.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Parse reads every top-level expression from r.
func Parse(r io.Reader) ([]Sexp, error) {
	return NewParser(r).ParseAll()
}

// ParseString is Parse for in-memory input.
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}
