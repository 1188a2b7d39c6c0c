// Package dsl implements the schema definition language: a hand-written
// lexer, a recursive-descent parser producing validated schema
// definitions, and a canonical printer whose output parses back to a
// structurally equal schema.
package dsl

import (
	"github.com/schemaforge/forge/pkg/token"
)

// Lexer tokenizes schema DSL source text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
}

// NewLexer creates a Lexer for the given source text.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize runs the lexer over the whole input. The EOF token is not
// included in the result. Every region of input that matches no token
// rule is reported as an InvalidTokenError; the scan continues past
// invalid regions so a single pass reports them all.
func Tokenize(source string) ([]token.Token, error) {
	l := NewLexer(source)
	var tokens []token.Token
	var errs Errors

	for {
		tok := l.NextToken()
		if tok.Is(token.EOF) {
			break
		}
		if tok.Is(token.ILLEGAL) {
			errs = append(errs, &InvalidTokenError{Span: tok.Span})
			continue
		}
		tokens = append(tokens, tok)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return tokens, nil
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// NextToken returns the next token. Whitespace and comments are
// skipped. Unmatched bytes come back as single ILLEGAL tokens so the
// caller can collect every invalid region in one pass.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()
		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}
		if l.ch == '/' && l.peekChar() == '*' {
			start := l.pos
			if !l.skipBlockComment() {
				// Unterminated block comment swallows the rest of the
				// input as one invalid region.
				return token.Token{
					Type:    token.ILLEGAL,
					Literal: l.input[start:],
					Span:    token.NewSpan(start, len(l.input)),
				}
			}
			continue
		}
		break
	}

	start := l.pos

	switch {
	case l.ch == 0:
		return token.Token{Type: token.EOF, Span: token.NewSpan(start, start)}
	case l.ch == '{':
		return l.single(token.LBRACE)
	case l.ch == '}':
		return l.single(token.RBRACE)
	case l.ch == '(':
		return l.single(token.LPAREN)
	case l.ch == ')':
		return l.single(token.RPAREN)
	case l.ch == '[':
		return l.single(token.LBRACKET)
	case l.ch == ']':
		return l.single(token.RBRACKET)
	case l.ch == ':':
		return l.single(token.COLON)
	case l.ch == ',':
		return l.single(token.COMMA)
	case l.ch == '@':
		return l.single(token.AT)
	case l.ch == '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.ARROW, Literal: "->", Span: token.NewSpan(start, l.pos)}
		}
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.single(token.ILLEGAL)
	case l.ch == '"':
		return l.readString()
	case isDigit(l.ch):
		return l.readNumber()
	case isIdentStart(l.ch):
		return l.readIdentifier()
	default:
		return l.single(token.ILLEGAL)
	}
}

// single emits a one-byte token and advances past it.
func (l *Lexer) single(typ token.Type) token.Token {
	start := l.pos
	lit := string(l.ch)
	l.readChar()
	return token.Token{Type: typ, Literal: lit, Span: token.NewSpan(start, l.pos)}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' || l.ch == '\f' {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipBlockComment consumes a /* ... */ comment and reports whether it
// was terminated.
func (l *Lexer) skipBlockComment() bool {
	l.readChar() // /
	l.readChar() // *
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return true
		}
		l.readChar()
	}
	return false
}

// readNumber lexes an integer or float literal, optionally negative.
// A float requires digits on both sides of the decimal point, so the
// longer float match wins over the integer prefix.
func (l *Lexer) readNumber() token.Token {
	start := l.pos
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}

	typ := token.INT
	if l.ch == '.' && isDigit(l.peekChar()) {
		typ = token.FLOAT
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return token.Token{Type: typ, Literal: l.input[start:l.pos], Span: token.NewSpan(start, l.pos)}
}

// readString lexes a double-quoted string literal with backslash
// escapes. The literal keeps its surrounding quotes; the parser
// unquotes. An unterminated string is one ILLEGAL region to the end of
// input.
func (l *Lexer) readString() token.Token {
	start := l.pos
	l.readChar() // opening quote
	for {
		switch l.ch {
		case 0:
			return token.Token{
				Type:    token.ILLEGAL,
				Literal: l.input[start:],
				Span:    token.NewSpan(start, len(l.input)),
			}
		case '\\':
			l.readChar()
			if l.ch != 0 {
				l.readChar()
			}
		case '"':
			l.readChar()
			return token.Token{
				Type:    token.STRING,
				Literal: l.input[start:l.pos],
				Span:    token.NewSpan(start, l.pos),
			}
		default:
			l.readChar()
		}
	}
}

func (l *Lexer) readIdentifier() token.Token {
	start := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	return token.Token{
		Type:    token.LookupIdent(lit),
		Literal: lit,
		Span:    token.NewSpan(start, l.pos),
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
