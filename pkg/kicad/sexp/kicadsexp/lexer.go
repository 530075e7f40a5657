package kicadsexp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// TokenType represents the type of a token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLeftParen
	TokenRightParen
	TokenSymbol
	TokenString
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenSymbol:
		return "symbol"
	case TokenString:
		return "string"
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexical token and the position of its first character.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

// SyntaxError reports malformed input with its 1-based source position.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer tokenizes S-expressions from an io.Reader
type Lexer struct {
	reader *bufio.Reader
	peeked *rune
	line   int
	col    int
}

// NewLexer creates a new lexer
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReaderSize(r, 64*1024),
		line:   1,
		col:    1,
	}
}

func (l *Lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// NextToken reads the next token from the input
func (l *Lexer) NextToken() (Token, error) {
	for {
		ch, err := l.peek()
		if errors.Is(err, io.EOF) {
			return Token{Type: TokenEOF, Line: l.line, Col: l.col}, nil
		}
		if err != nil {
			return Token{}, err
		}

		if unicode.IsSpace(ch) {
			l.read()
			continue
		}

		// # starts a comment running to the end of the line
		if ch == '#' {
			for {
				c, err := l.read()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}
		break
	}

	line, col := l.line, l.col
	ch, _ := l.peek()
	switch ch {
	case '(':
		l.read()
		return Token{Type: TokenLeftParen, Value: "(", Line: line, Col: col}, nil
	case ')':
		l.read()
		return Token{Type: TokenRightParen, Value: ")", Line: line, Col: col}, nil
	case '"':
		return l.readString(line, col)
	default:
		return l.readSymbol(line, col)
	}
}

func (l *Lexer) peek() (rune, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	ch, _, err := l.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	l.peeked = &ch
	return ch, nil
}

func (l *Lexer) read() (rune, error) {
	var ch rune
	if l.peeked != nil {
		ch = *l.peeked
		l.peeked = nil
	} else {
		var err error
		ch, _, err = l.reader.ReadRune()
		if err != nil {
			return 0, err
		}
	}
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch, nil
}

var escapes = map[rune]rune{'n': '\n', 't': '\t', 'r': '\r'}

// readString scans a double-quoted string. Unknown escapes keep the escaped
// character.
func (l *Lexer) readString(line, col int) (Token, error) {
	l.read()

	var sb strings.Builder
	for {
		ch, err := l.read()
		switch {
		case errors.Is(err, io.EOF):
			return Token{}, l.errorf(line, col, "unterminated string")
		case err != nil:
			return Token{}, err
		case ch == '"':
			return Token{Type: TokenString, Value: sb.String(), Line: line, Col: col}, nil
		case ch != '\\':
			sb.WriteRune(ch)
			continue
		}

		esc, err := l.read()
		if err != nil {
			return Token{}, l.errorf(line, col, "unterminated escape in string")
		}
		if r, ok := escapes[esc]; ok {
			esc = r
		}
		sb.WriteRune(esc)
	}
}

func isDelimiter(ch rune) bool {
	return unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"'
}

func (l *Lexer) readSymbol(line, col int) (Token, error) {
	var sb strings.Builder
	for {
		ch, err := l.peek()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Token{}, err
		}
		if isDelimiter(ch) {
			break
		}
		l.read()
		sb.WriteRune(ch)
	}

	if sb.Len() == 0 {
		return Token{}, l.errorf(line, col, "empty symbol")
	}
	return Token{Type: TokenSymbol, Value: sb.String(), Line: line, Col: col}, nil
}
