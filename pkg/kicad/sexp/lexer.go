package sexp

import (
	"bufio"
	"fmt"
	"io"
	"unicode"
)

// tokenKind identifies the type of a lexical token
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenLeftParen
	tokenRightParen
	tokenSymbol
	tokenString
)

// token represents a lexical token
type token struct {
	kind  tokenKind
	value string
}

// lexer tokenizes S-expressions from an io.Reader
type lexer struct {
	reader *bufio.Reader
	peeked *rune
}

func newLexer(r io.Reader) *lexer {
	return &lexer{reader: bufio.NewReader(r)}
}

// next reads the next token from the input
func (l *lexer) next() (token, error) {
	// Skip whitespace and comments (# to end of line)
	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				return token{kind: tokenEOF}, nil
			}
			return token{}, err
		}

		if unicode.IsSpace(ch) {
			l.read()
			continue
		}

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

	ch, err := l.peek()
	if err != nil {
		if err == io.EOF {
			return token{kind: tokenEOF}, nil
		}
		return token{}, err
	}

	switch ch {
	case '(':
		l.read()
		return token{kind: tokenLeftParen, value: "("}, nil

	case ')':
		l.read()
		return token{kind: tokenRightParen, value: ")"}, nil

	case '"':
		return l.readString()

	default:
		return l.readSymbol()
	}
}

// peek looks at the next rune without consuming it
func (l *lexer) peek() (rune, error) {
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

// read consumes and returns the next rune
func (l *lexer) read() (rune, error) {
	if l.peeked != nil {
		ch := *l.peeked
		l.peeked = nil
		return ch, nil
	}

	ch, _, err := l.reader.ReadRune()
	return ch, err
}

// readString reads a quoted string, handling escapes and doubled quotes
func (l *lexer) readString() (token, error) {
	// Consume opening quote
	l.read()

	var result []rune
	for {
		ch, err := l.read()
		if err != nil {
			if err == io.EOF {
				return token{}, fmt.Errorf("unexpected EOF in string")
			}
			return token{}, err
		}

		if ch == '"' {
			// A doubled quote is an escaped quote
			next, err := l.peek()
			if err == nil && next == '"' {
				l.read()
				result = append(result, '"')
				continue
			}
			break
		}

		if ch == '\\' {
			next, err := l.read()
			if err != nil {
				return token{}, fmt.Errorf("unexpected EOF after backslash")
			}
			switch next {
			case 'n':
				result = append(result, '\n')
			case 't':
				result = append(result, '\t')
			case 'r':
				result = append(result, '\r')
			case '\\':
				result = append(result, '\\')
			case '"':
				result = append(result, '"')
			default:
				// Unknown escape - keep it as-is
				result = append(result, next)
			}
			continue
		}

		result = append(result, ch)
	}

	return token{kind: tokenString, value: string(result)}, nil
}

// readSymbol reads an unquoted symbol (identifier, number, etc.)
func (l *lexer) readSymbol() (token, error) {
	var result []rune

	for {
		ch, err := l.peek()
		if err != nil {
			if err == io.EOF {
				break
			}
			return token{}, err
		}

		if unicode.IsSpace(ch) || ch == '(' || ch == ')' || ch == '"' {
			break
		}

		l.read()
		result = append(result, ch)
	}

	if len(result) == 0 {
		return token{}, fmt.Errorf("empty symbol")
	}

	return token{kind: tokenSymbol, value: string(result)}, nil
}
