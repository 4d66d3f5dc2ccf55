// Package sexp provides a lightweight streaming S-expression parser for
// KiCad files, plus the shared geometry types used by the schematic
// document model. Unlike general-purpose sexp libraries, this parser can
// handle arbitrarily large files by streaming from an io.Reader.
package sexp

import (
	"fmt"
	"io"
	"strings"
)

// Sexp represents an S-expression node.
// It can be either a leaf (atom) or a list.
type Sexp interface {
	// IsLeaf returns true if this is an atom (not a list)
	IsLeaf() bool

	// Len returns the number of elements in a list (1 for atoms)
	Len() int

	// String returns the string representation
	String() string
}

// Symbol represents an atomic symbol (string, number, identifier)
type Symbol string

func (s Symbol) IsLeaf() bool   { return true }
func (s Symbol) Len() int       { return 1 }
func (s Symbol) String() string { return string(s) }

// List represents a list of S-expressions
type List struct {
	elements []Sexp
}

func (l *List) IsLeaf() bool { return false }

func (l *List) Len() int { return len(l.elements) }

// Get returns the element at the given index, or nil when out of range
func (l *List) Get(index int) Sexp {
	if index < 0 || index >= len(l.elements) {
		return nil
	}
	return l.elements[index]
}

// Items returns all elements of the list
func (l *List) Items() []Sexp { return l.elements }

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

// Parse parses all top-level S-expressions from an io.Reader
func Parse(r io.Reader) ([]Sexp, error) {
	lex := newLexer(r)

	var result []Sexp
	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return result, nil
		}
		expr, err := parseExpr(lex, tok)
		if err != nil {
			return nil, err
		}
		result = append(result, expr)
	}
}

// ParseString parses S-expressions from a string (convenience function)
func ParseString(s string) ([]Sexp, error) {
	return Parse(strings.NewReader(s))
}

// parseExpr parses a single expression starting at tok
func parseExpr(lex *lexer, tok token) (Sexp, error) {
	switch tok.kind {
	case tokenLeftParen:
		return parseList(lex)

	case tokenSymbol, tokenString:
		return Symbol(tok.value), nil

	case tokenRightParen:
		return nil, fmt.Errorf("unexpected ')'")

	default:
		return nil, fmt.Errorf("unexpected EOF")
	}
}

// parseList parses the elements of a list after the opening '('
func parseList(lex *lexer) (Sexp, error) {
	var elements []Sexp

	for {
		tok, err := lex.next()
		if err != nil {
			return nil, err
		}

		switch tok.kind {
		case tokenRightParen:
			return &List{elements: elements}, nil

		case tokenEOF:
			return nil, fmt.Errorf("unexpected EOF in list")

		default:
			elem, err := parseExpr(lex, tok)
			if err != nil {
				return nil, err
			}
			elements = append(elements, elem)
		}
	}
}
