/*
Package csource reads the small subset of C emitted for the kernel font:
array declarations initialized with integer literals or with the names of
other arrays.

Comments, preprocessor directives and whitespace are skipped by the scanner
so the parser only ever sees declarations.
*/
package csource

import (
	"fmt"
	"strconv"
)

// Kind identifies a token
type Kind int

// Token kinds
const (
	EOF Kind = iota
	Ident
	Number
	Punct
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case Punct:
		return "punctuation"
	}
	return "unknown"
}

// Token is a single lexical element together with the line it started on
type Token struct {
	Kind Kind
	Text string
	Line int
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return strconv.Quote(t.Text)
}

// SyntaxError reports malformed input
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("csource: line %d: %s", e.Line, e.Msg)
}

type scanner struct {
	src  []byte
	off  int
	line int
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, line: 1}
}

func isLetter(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: s.line, Msg: fmt.Sprintf(format, args...)}
}

func (s *scanner) peek(n int) byte {
	if s.off+n < len(s.src) {
		return s.src[s.off+n]
	}
	return 0
}

// skip consumes whitespace, comments and directives
func (s *scanner) skip() error {
	atLineStart := s.off == 0
	for s.off < len(s.src) {
		c := s.src[s.off]
		switch {
		case c == '\n':
			s.line++
			s.off++
			atLineStart = true
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			s.off++
		case c == '/' && s.peek(1) == '/':
			for s.off < len(s.src) && s.src[s.off] != '\n' {
				s.off++
			}
		case c == '/' && s.peek(1) == '*':
			start := s.line
			s.off += 2
			for {
				if s.off >= len(s.src) {
					return &SyntaxError{Line: start, Msg: "unterminated comment"}
				}
				if s.src[s.off] == '*' && s.peek(1) == '/' {
					s.off += 2
					break
				}
				if s.src[s.off] == '\n' {
					s.line++
				}
				s.off++
			}
		case c == '#' && atLineStart:
			// Directives run to the end of the line, honouring continuations
			for s.off < len(s.src) && s.src[s.off] != '\n' {
				if s.src[s.off] == '\\' && s.peek(1) == '\n' {
					s.off++
					s.line++
				}
				s.off++
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *scanner) next() (Token, error) {
	if err := s.skip(); err != nil {
		return Token{}, err
	}
	if s.off >= len(s.src) {
		return Token{Kind: EOF, Line: s.line}, nil
	}

	start := s.off
	c := s.src[s.off]
	switch {
	case isLetter(c):
		for s.off < len(s.src) && (isLetter(s.src[s.off]) || isDigit(s.src[s.off])) {
			s.off++
		}
		return Token{Kind: Ident, Text: string(s.src[start:s.off]), Line: s.line}, nil
	case isDigit(c):
		// Swallow suffixes too, e.g. 0x10u, validated when the value is used
		for s.off < len(s.src) && (isLetter(s.src[s.off]) || isDigit(s.src[s.off])) {
			s.off++
		}
		return Token{Kind: Number, Text: string(s.src[start:s.off]), Line: s.line}, nil
	}

	switch c {
	case '{', '}', '[', ']', '(', ')', '=', ',', ';', '*':
		s.off++
		return Token{Kind: Punct, Text: string(c), Line: s.line}, nil
	}

	return Token{}, s.errorf("unexpected character %q", c)
}

// Tokenize splits src into tokens, the last of which is always EOF
func Tokenize(src []byte) ([]Token, error) {
	s := newScanner(src)
	var tokens []Token
	for {
		t, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
		if t.Kind == EOF {
			return tokens, nil
		}
	}
}
