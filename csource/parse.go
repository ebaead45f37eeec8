package csource

import (
	"fmt"
	"strconv"
	"strings"
)

// Decl is a single top-level declaration with an initializer. Brace
// initializers hold either integer Values or Refs to other declarations,
// never both. Anything else is kept as raw Scalar tokens.
type Decl struct {
	Name string
	Type []string
	Line int

	// Array is set for declarations of the form name[] or name[n]; Length
	// is n or -1 when unsized
	Array  bool
	Length int

	Values []uint64
	Refs   []string
	Scalar []Token
}

// File is the ordered list of declarations found in a source file
type File struct {
	Decls  []*Decl
	byName map[string]*Decl
}

// Lookup returns the declaration called name
func (f *File) Lookup(name string) (*Decl, bool) {
	d, ok := f.byName[name]
	return d, ok
}

type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() Token {
	return p.tokens[p.pos]
}

func (p *parser) next() Token {
	t := p.tokens[p.pos]
	if t.Kind != EOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t Token, format string, args ...interface{}) error {
	return &SyntaxError{Line: t.Line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(text string) (Token, error) {
	t := p.next()
	if t.Kind != Punct || t.Text != text {
		return t, p.errorf(t, "expected %q, found %s", text, t)
	}
	return t, nil
}

func (p *parser) is(text string) bool {
	t := p.peek()
	return t.Kind == Punct && t.Text == text
}

// ParseNumber converts a C integer literal, ignoring any u/l suffix
func ParseNumber(text string) (uint64, error) {
	return strconv.ParseUint(strings.TrimRight(text, "uUlL"), 0, 64)
}

func (p *parser) elements(d *Decl) error {
	if _, err := p.expect("{"); err != nil {
		return err
	}
	for !p.is("}") {
		t := p.next()
		switch t.Kind {
		case Number:
			if len(d.Refs) > 0 {
				return p.errorf(t, "%s mixes numbers and names", d.Name)
			}
			v, err := ParseNumber(t.Text)
			if err != nil {
				return p.errorf(t, "bad number %s", t)
			}
			d.Values = append(d.Values, v)
		case Ident:
			if len(d.Values) > 0 {
				return p.errorf(t, "%s mixes numbers and names", d.Name)
			}
			d.Refs = append(d.Refs, t.Text)
		default:
			return p.errorf(t, "unexpected %s in initializer of %s", t, d.Name)
		}
		if p.is(",") {
			p.next()
			continue
		}
		if !p.is("}") {
			t := p.peek()
			return p.errorf(t, "expected \",\" or \"}\", found %s", t)
		}
	}
	p.next()
	return nil
}

// scalar collects tokens up to the terminating semicolon
func (p *parser) scalar(d *Decl) error {
	depth := 0
	for {
		t := p.peek()
		switch {
		case t.Kind == EOF:
			return p.errorf(t, "unterminated declaration of %s", d.Name)
		case t.Kind == Punct && t.Text == "(":
			depth++
		case t.Kind == Punct && t.Text == ")":
			depth--
		case t.Kind == Punct && t.Text == ";" && depth == 0:
			return nil
		}
		d.Scalar = append(d.Scalar, p.next())
	}
}

func (p *parser) decl() (*Decl, error) {
	var words []Token
	for p.peek().Kind == Ident || p.is("*") {
		words = append(words, p.next())
	}
	if len(words) < 2 || words[len(words)-1].Kind != Ident {
		return nil, p.errorf(p.peek(), "expected declaration, found %s", p.peek())
	}

	name := words[len(words)-1]
	d := &Decl{
		Name:   name.Text,
		Line:   name.Line,
		Length: -1,
	}
	for _, w := range words[:len(words)-1] {
		d.Type = append(d.Type, w.Text)
	}

	if p.is("[") {
		p.next()
		d.Array = true
		if t := p.peek(); t.Kind == Number {
			p.next()
			n, err := ParseNumber(t.Text)
			if err != nil {
				return nil, p.errorf(t, "bad array length %s", t)
			}
			d.Length = int(n)
		}
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}
	}

	switch {
	case p.is(";"):
		// Declaration without initializer
		p.next()
		return nil, nil
	case p.is("="):
		p.next()
	default:
		return nil, p.errorf(p.peek(), "expected \"=\" after %s, found %s", d.Name, p.peek())
	}

	var err error
	if p.is("{") {
		err = p.elements(d)
	} else {
		err = p.scalar(d)
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse reads every declaration in src
func Parse(src []byte) (*File, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}

	p := &parser{tokens: tokens}
	f := &File{byName: make(map[string]*Decl)}
	for p.peek().Kind != EOF {
		d, err := p.decl()
		if err != nil {
			return nil, err
		}
		if d == nil {
			continue
		}
		if prev, ok := f.byName[d.Name]; ok {
			return nil, &SyntaxError{Line: d.Line, Msg: fmt.Sprintf("%s redeclared, previous declaration on line %d", d.Name, prev.Line)}
		}
		f.Decls = append(f.Decls, d)
		f.byName[d.Name] = d
	}
	return f, nil
}
