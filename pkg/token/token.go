// Package token defines the lexical tokens of the schema definition
// language and the source positions attached to them.
package token

import "fmt"

// Type identifies the kind of a lexical token.
type Type int

const (
	// Special tokens
	EOF Type = iota
	ILLEGAL

	// Literals
	IDENT  // Contact, first_name
	INT    // 42, -10
	FLOAT  // 3.14, -2.5
	STRING // "hello"

	// Punctuation
	LBRACE   // {
	RBRACE   // }
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	COLON    // :
	COMMA    // ,
	ARROW    // ->
	AT       // @

	// Keywords
	SCHEMA
	TEXT
	RICHTEXT
	INTEGER
	FLOATKW
	BOOLEAN
	DATETIME
	ENUM
	JSON
	COMPOSITE
	REQUIRED
	INDEXED
	DEFAULT
	TRUE
	FALSE
)

var tokenNames = map[Type]string{
	EOF:      "end of input",
	ILLEGAL:  "illegal token",
	IDENT:    "identifier",
	INT:      "integer literal",
	FLOAT:    "float literal",
	STRING:   "string literal",
	LBRACE:   "'{'",
	RBRACE:   "'}'",
	LPAREN:   "'('",
	RPAREN:   "')'",
	LBRACKET: "'['",
	RBRACKET: "']'",
	COLON:    "':'",
	COMMA:    "','",
	ARROW:    "'->'",
	AT:       "'@'",

	SCHEMA:    "'schema'",
	TEXT:      "'text'",
	RICHTEXT:  "'richtext'",
	INTEGER:   "'integer'",
	FLOATKW:   "'float'",
	BOOLEAN:   "'boolean'",
	DATETIME:  "'datetime'",
	ENUM:      "'enum'",
	JSON:      "'json'",
	COMPOSITE: "'composite'",
	REQUIRED:  "'required'",
	INDEXED:   "'indexed'",
	DEFAULT:   "'default'",
	TRUE:      "'true'",
	FALSE:     "'false'",
}

// String returns a human-readable description of the token type,
// suitable for "expected X, found Y" diagnostics.
func (t Type) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

var keywords = map[string]Type{
	"schema":    SCHEMA,
	"text":      TEXT,
	"richtext":  RICHTEXT,
	"integer":   INTEGER,
	"float":     FLOATKW,
	"boolean":   BOOLEAN,
	"datetime":  DATETIME,
	"enum":      ENUM,
	"json":      JSON,
	"composite": COMPOSITE,
	"required":  REQUIRED,
	"indexed":   INDEXED,
	"default":   DEFAULT,
	"true":      TRUE,
	"false":     FALSE,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not
// a keyword. Keywords are case-sensitive.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Token is a lexical token with its matched source text and span.
type Token struct {
	Type    Type
	Literal string // the matched source text (unquoted raw form)
	Span    Span
}

// Is reports whether the token has the given type.
func (t Token) Is(typ Type) bool {
	return t.Type == typ
}
