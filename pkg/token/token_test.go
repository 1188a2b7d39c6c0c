package token

import "testing"

func TestLookupIdent(t *testing.T) {
	cases := map[string]Type{
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
		"Contact":   IDENT,
		"name":      IDENT,
		"Schema":    IDENT, // keywords are case-sensitive
	}
	for ident, want := range cases {
		if got := LookupIdent(ident); got != want {
			t.Errorf("LookupIdent(%q) = %v, want %v", ident, got, want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := SCHEMA.String(); got != "'schema'" {
		t.Errorf("SCHEMA.String() = %q", got)
	}
	if got := IDENT.String(); got != "identifier" {
		t.Errorf("IDENT.String() = %q", got)
	}
	if got := EOF.String(); got != "end of input" {
		t.Errorf("EOF.String() = %q", got)
	}
	if got := Type(9999).String(); got != "token(9999)" {
		t.Errorf("unknown type String() = %q", got)
	}
}

func TestSpan(t *testing.T) {
	s := NewSpan(10, 20)
	if s.Len() != 10 {
		t.Errorf("Len() = %d, want 10", s.Len())
	}
	if !s.Contains(10) || !s.Contains(19) {
		t.Error("span should contain its start and last byte")
	}
	if s.Contains(20) || s.Contains(9) {
		t.Error("span end is exclusive, start is inclusive")
	}
	if s.String() != "10..20" {
		t.Errorf("String() = %q", s.String())
	}
}
