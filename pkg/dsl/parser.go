package dsl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/schemaforge/forge/pkg/schema"
	"github.com/schemaforge/forge/pkg/token"
)

// Parser is a recursive descent parser over the lexer's token stream.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse lexes and parses source into an ordered list of schema
// definitions. Empty or comments-only input yields an empty, successful
// result. On failure the returned error is an Errors list: all lexer
// errors from one pass, or the parse errors encountered (parsing
// recovers to the next top-level schema after a hard syntax error).
func Parse(source string) ([]schema.SchemaDefinition, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	return p.parseProgram()
}

func (p *Parser) parseProgram() ([]schema.SchemaDefinition, error) {
	var schemas []schema.SchemaDefinition
	var errs Errors

	for p.pos < len(p.tokens) {
		s, err := p.parseSchema()
		if err != nil {
			errs = append(errs, err)
			p.recoverToNextSchema()
			continue
		}
		schemas = append(schemas, s)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return schemas, nil
}

// recoverToNextSchema skips tokens until the next 'schema' keyword or
// '@' annotation at top level, tracking brace depth so nested bodies
// are skipped whole.
func (p *Parser) recoverToNextSchema() {
	depth := 0
	for p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		switch tok.Type {
		case token.LBRACE:
			depth++
			p.pos++
		case token.RBRACE:
			depth--
			p.pos++
			if depth <= 0 {
				return
			}
		case token.SCHEMA, token.AT:
			if depth == 0 {
				return
			}
			p.pos++
		default:
			p.pos++
		}
	}
}

// -- Cursor helpers --

func (p *Parser) peek() (token.Token, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}
	return token.Token{}, false
}

func (p *Parser) peekIs(typ token.Type) bool {
	tok, ok := p.peek()
	return ok && tok.Is(typ)
}

func (p *Parser) advance() (token.Token, bool) {
	if p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		p.pos++
		return tok, true
	}
	return token.Token{}, false
}

func (p *Parser) expect(typ token.Type) (token.Token, error) {
	tok, ok := p.advance()
	if !ok {
		return token.Token{}, &UnexpectedEOFError{Expected: typ.String()}
	}
	if !tok.Is(typ) {
		return token.Token{}, &UnexpectedTokenError{
			Expected: typ.String(),
			Found:    describe(tok),
			Span:     tok.Span,
		}
	}
	return tok, nil
}

// expectIdent accepts an identifier, or a keyword in positions where
// keywords are valid names (parameter keys, field names that collide
// with type keywords).
func (p *Parser) expectIdent(context string) (token.Token, error) {
	tok, ok := p.advance()
	if !ok {
		return token.Token{}, &UnexpectedEOFError{Expected: context}
	}
	if tok.Is(token.IDENT) || isContextualIdent(tok.Type) {
		return tok, nil
	}
	return token.Token{}, &UnexpectedTokenError{
		Expected: context,
		Found:    describe(tok),
		Span:     tok.Span,
	}
}

func (p *Parser) expectString() (token.Token, error) {
	return p.expect(token.STRING)
}

func (p *Parser) expectInt() (token.Token, error) {
	return p.expect(token.INT)
}

// currentSpan is the span of the upcoming token, or an empty span just
// past the last token at end of input.
func (p *Parser) currentSpan() token.Span {
	if tok, ok := p.peek(); ok {
		return tok.Span
	}
	if len(p.tokens) > 0 {
		end := p.tokens[len(p.tokens)-1].Span.End
		return token.NewSpan(end, end)
	}
	return token.NewSpan(0, 0)
}

// -- Grammar productions --

// schema_def = annotation* "schema" IDENT "{" field_def* "}"
func (p *Parser) parseSchema() (schema.SchemaDefinition, error) {
	start := p.currentSpan().Start

	annotations, err := p.parseAnnotations()
	if err != nil {
		return schema.SchemaDefinition{}, err
	}

	if _, err := p.expect(token.SCHEMA); err != nil {
		return schema.SchemaDefinition{}, err
	}

	nameTok, err := p.expectIdent("schema name")
	if err != nil {
		return schema.SchemaDefinition{}, err
	}
	name, err := schema.NewSchemaName(nameTok.Literal)
	if err != nil {
		return schema.SchemaDefinition{}, &InvalidSchemaNameError{
			Name:       nameTok.Literal,
			Suggestion: ToPascalCase(nameTok.Literal),
			Span:       nameTok.Span,
		}
	}

	if _, err := p.expect(token.LBRACE); err != nil {
		return schema.SchemaDefinition{}, err
	}

	fields, err := p.parseFields()
	if err != nil {
		return schema.SchemaDefinition{}, err
	}

	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		return schema.SchemaDefinition{}, err
	}
	schemaSpan := token.NewSpan(start, rbrace.Span.End)

	if len(fields) == 0 {
		return schema.SchemaDefinition{}, &EmptySchemaError{Name: name.String(), Span: schemaSpan}
	}

	if err := checkDuplicateFields(fields, schemaSpan); err != nil {
		return schema.SchemaDefinition{}, err
	}

	seenKinds := make(map[string]struct{}, len(annotations))
	for _, a := range annotations {
		if _, dup := seenKinds[a.Kind()]; dup {
			return schema.SchemaDefinition{}, &DuplicateAnnotationError{Kind: a.Kind(), Span: schemaSpan}
		}
		seenKinds[a.Kind()] = struct{}{}
	}

	def, err := schema.NewSchemaDefinition(name, fields, annotations)
	if err != nil {
		return schema.SchemaDefinition{}, &ValidationError{Err: err, Span: schemaSpan}
	}
	return def, nil
}

func (p *Parser) parseAnnotations() ([]schema.Annotation, error) {
	var annotations []schema.Annotation
	for p.peekIs(token.AT) {
		a, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, a)
	}
	return annotations, nil
}

// annotation = "@version" "(" INT ")" | "@display" "(" STRING ")"
//            | "@system" | "@access" "(" role_params ")"
func (p *Parser) parseAnnotation() (schema.Annotation, error) {
	if _, err := p.expect(token.AT); err != nil {
		return nil, err
	}
	nameTok, err := p.expectIdent("annotation name")
	if err != nil {
		return nil, err
	}

	switch nameTok.Literal {
	case "version":
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		valueTok, err := p.expectInt()
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseUint(valueTok.Literal, 10, 32)
		if err != nil {
			return nil, &InvalidIntegerLiteralError{Text: valueTok.Literal, Span: valueTok.Span}
		}
		version, err := schema.NewVersion(uint32(n))
		if err != nil {
			return nil, &ValidationError{Err: err, Span: valueTok.Span}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return schema.VersionAnnotation{Version: version}, nil

	case "display":
		if _, err := p.expect(token.LPAREN); err != nil {
			return nil, err
		}
		valueTok, err := p.expectString()
		if err != nil {
			return nil, err
		}
		fieldStr := unquoteString(valueTok.Literal)
		field, err := schema.NewFieldName(fieldStr)
		if err != nil {
			return nil, &InvalidFieldNameError{
				Name:       fieldStr,
				Suggestion: ToSnakeCase(fieldStr),
				Span:       valueTok.Span,
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return schema.DisplayAnnotation{Field: field}, nil

	case "system":
		return schema.SystemAnnotation{}, nil

	case "access":
		lists, err := p.parseRoleParams([]string{"read", "write", "delete"})
		if err != nil {
			return nil, err
		}
		return schema.AccessAnnotation{
			Read:   lists["read"],
			Write:  lists["write"],
			Delete: lists["delete"],
		}, nil

	default:
		return nil, &UnexpectedTokenError{
			Expected: "annotation name ('version', 'display', 'system', or 'access')",
			Found:    fmt.Sprintf("'%s'", nameTok.Literal),
			Span:     nameTok.Span,
		}
	}
}

// role_params = key ":" "[" [ STRING { "," STRING } ] "]" { "," ... }
func (p *Parser) parseRoleParams(allowedKeys []string) (map[string][]string, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	lists := make(map[string][]string, len(allowedKeys))
	if p.peekIs(token.RPAREN) {
		p.advance()
		return lists, nil
	}

	for {
		keyTok, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		if !slices.Contains(allowedKeys, keyTok.Literal) {
			return nil, &UnexpectedTokenError{
				Expected: "one of " + quoteList(allowedKeys),
				Found:    fmt.Sprintf("'%s'", keyTok.Literal),
				Span:     keyTok.Span,
			}
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}

		roles, err := p.parseRoleList()
		if err != nil {
			return nil, err
		}
		lists[keyTok.Literal] = roles

		if p.peekIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return lists, nil
}

func (p *Parser) parseRoleList() ([]string, error) {
	if _, err := p.expect(token.LBRACKET); err != nil {
		return nil, err
	}
	roles := []string{}
	for !p.peekIs(token.RBRACKET) {
		strTok, err := p.expectString()
		if err != nil {
			return nil, err
		}
		roles = append(roles, unquoteString(strTok.Literal))
		if p.peekIs(token.COMMA) {
			p.advance()
		}
	}
	p.advance() // ]
	return roles, nil
}

func (p *Parser) parseFields() ([]schema.FieldDefinition, error) {
	var fields []schema.FieldDefinition
	for !p.peekIs(token.RBRACE) {
		if _, ok := p.peek(); !ok {
			break
		}
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// field_def = IDENT ":" type_expr modifier* field_annotation*
func (p *Parser) parseField() (schema.FieldDefinition, error) {
	nameTok, err := p.expectIdent("field name")
	if err != nil {
		return schema.FieldDefinition{}, err
	}
	name, err := schema.NewFieldName(nameTok.Literal)
	if err != nil {
		return schema.FieldDefinition{}, &InvalidFieldNameError{
			Name:       nameTok.Literal,
			Suggestion: ToSnakeCase(nameTok.Literal),
			Span:       nameTok.Span,
		}
	}

	if _, err := p.expect(token.COLON); err != nil {
		return schema.FieldDefinition{}, err
	}

	typ, err := p.parseType()
	if err != nil {
		return schema.FieldDefinition{}, err
	}

	modifiers, err := p.parseModifiers()
	if err != nil {
		return schema.FieldDefinition{}, err
	}

	annotations, err := p.parseFieldAnnotations()
	if err != nil {
		return schema.FieldDefinition{}, err
	}

	field := schema.NewField(name, typ)
	if len(modifiers) > 0 {
		field = field.WithModifiers(modifiers...)
	}
	if len(annotations) > 0 {
		field = field.WithAnnotations(annotations...)
	}
	return field, nil
}

// type_expr = relation_type | composite_type | primitive_type ("[]")?
func (p *Parser) parseType() (schema.FieldType, error) {
	if p.peekIs(token.ARROW) {
		return p.parseRelationType()
	}
	if p.peekIs(token.COMPOSITE) {
		return p.parseCompositeType()
	}

	base, err := p.parsePrimitiveType()
	if err != nil {
		return nil, err
	}
	if p.peekIs(token.LBRACKET) {
		p.advance()
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		return schema.ArrayType{Inner: base}, nil
	}
	return base, nil
}

func (p *Parser) parsePrimitiveType() (schema.FieldType, error) {
	tok, ok := p.advance()
	if !ok {
		return nil, &UnexpectedEOFError{Expected: "type name"}
	}

	switch tok.Type {
	case token.TEXT:
		constraints, err := p.parseTextParams()
		if err != nil {
			return nil, err
		}
		return schema.TextType{Constraints: constraints}, nil
	case token.RICHTEXT:
		return schema.RichTextType{}, nil
	case token.INTEGER:
		constraints, err := p.parseIntegerParams()
		if err != nil {
			return nil, err
		}
		return schema.IntegerType{Constraints: constraints}, nil
	case token.FLOATKW:
		constraints, err := p.parseFloatParams()
		if err != nil {
			return nil, err
		}
		return schema.FloatType{Constraints: constraints}, nil
	case token.BOOLEAN:
		return schema.BooleanType{}, nil
	case token.DATETIME:
		return schema.DateTimeType{}, nil
	case token.ENUM:
		return p.parseEnumType()
	case token.JSON:
		return schema.JSONType{}, nil
	default:
		return nil, &UnexpectedTokenError{
			Expected: "type name (text, integer, float, boolean, datetime, enum, richtext, json, composite, or ->)",
			Found:    describe(tok),
			Span:     tok.Span,
		}
	}
}

// Optional text params: (max: N)
func (p *Parser) parseTextParams() (schema.TextConstraints, error) {
	if !p.peekIs(token.LPAREN) {
		return schema.TextConstraints{}, nil
	}
	p.advance()
	params, err := p.parseNamedParams()
	if err != nil {
		return schema.TextConstraints{}, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return schema.TextConstraints{}, err
	}

	if raw, ok := lookupParam(params, "max"); ok {
		max, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return schema.TextConstraints{}, &InvalidIntegerLiteralError{Text: raw, Span: p.currentSpan()}
		}
		return schema.TextConstraints{}.WithMaxLength(uint32(max)), nil
	}
	return schema.TextConstraints{}, nil
}

// Optional integer params: (min: N, max: M)
func (p *Parser) parseIntegerParams() (schema.IntegerConstraints, error) {
	if !p.peekIs(token.LPAREN) {
		return schema.IntegerConstraints{}, nil
	}
	parenSpan := p.currentSpan()
	p.advance()
	params, err := p.parseNamedParams()
	if err != nil {
		return schema.IntegerConstraints{}, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return schema.IntegerConstraints{}, err
	}

	minVal, hasMin, err := lookupInt64Param(params, "min", parenSpan)
	if err != nil {
		return schema.IntegerConstraints{}, err
	}
	maxVal, hasMax, err := lookupInt64Param(params, "max", parenSpan)
	if err != nil {
		return schema.IntegerConstraints{}, err
	}

	switch {
	case hasMin && hasMax:
		if minVal > maxVal {
			return schema.IntegerConstraints{}, &InvalidIntegerRangeError{Min: minVal, Max: maxVal, Span: parenSpan}
		}
		constraints, err := schema.NewIntegerRange(minVal, maxVal)
		if err != nil {
			return schema.IntegerConstraints{}, &ValidationError{Err: err, Span: parenSpan}
		}
		return constraints, nil
	case hasMin:
		return schema.IntegerConstraints{}.WithMin(minVal), nil
	case hasMax:
		return schema.IntegerConstraints{}.WithMax(maxVal), nil
	default:
		return schema.IntegerConstraints{}, nil
	}
}

// Optional float params: (precision: N)
func (p *Parser) parseFloatParams() (schema.FloatConstraints, error) {
	if !p.peekIs(token.LPAREN) {
		return schema.FloatConstraints{}, nil
	}
	p.advance()
	params, err := p.parseNamedParams()
	if err != nil {
		return schema.FloatConstraints{}, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return schema.FloatConstraints{}, err
	}

	if raw, ok := lookupParam(params, "precision"); ok {
		precision, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return schema.FloatConstraints{}, &InvalidIntegerLiteralError{Text: raw, Span: p.currentSpan()}
		}
		return schema.FloatConstraints{}.WithPrecision(uint8(precision)), nil
	}
	return schema.FloatConstraints{}, nil
}

type namedParam struct {
	key   string
	value string
}

// Named parameters: key: value, key: value, ... Values are collected as
// raw strings; callers parse them.
func (p *Parser) parseNamedParams() ([]namedParam, error) {
	var params []namedParam

	if p.peekIs(token.RPAREN) {
		return params, nil
	}

	for {
		keyTok, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}

		valueTok, ok := p.advance()
		if !ok {
			return nil, &UnexpectedEOFError{Expected: "parameter value"}
		}
		var value string
		switch valueTok.Type {
		case token.INT, token.FLOAT, token.IDENT:
			value = valueTok.Literal
		case token.STRING:
			value = unquoteString(valueTok.Literal)
		case token.TRUE:
			value = "true"
		case token.FALSE:
			value = "false"
		default:
			return nil, &UnexpectedTokenError{
				Expected: "parameter value",
				Found:    describe(valueTok),
				Span:     valueTok.Span,
			}
		}
		params = append(params, namedParam{key: keyTok.Literal, value: value})

		if p.peekIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return params, nil
}

// enum_type = "enum" "(" STRING { "," STRING } ")"
// The "enum" keyword has already been consumed.
func (p *Parser) parseEnumType() (schema.FieldType, error) {
	parenSpan := p.currentSpan()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	if p.peekIs(token.RPAREN) {
		closeTok, _ := p.advance()
		return nil, &EmptyEnumVariantsError{Span: token.NewSpan(parenSpan.Start, closeTok.Span.End)}
	}

	var variants []string
	seen := make(map[string]struct{})
	for {
		strTok, err := p.expectString()
		if err != nil {
			return nil, err
		}
		variant := unquoteString(strTok.Literal)
		if _, dup := seen[variant]; dup {
			return nil, &DuplicateEnumVariantError{Variant: variant, Span: strTok.Span}
		}
		seen[variant] = struct{}{}
		variants = append(variants, variant)

		if p.peekIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	enumVariants, err := schema.NewEnumVariants(variants)
	if err != nil {
		return nil, &ValidationError{Err: err, Span: parenSpan}
	}
	return schema.EnumType{Variants: enumVariants}, nil
}

// relation_type = "->" IDENT ("[]")?
func (p *Parser) parseRelationType() (schema.FieldType, error) {
	if _, err := p.expect(token.ARROW); err != nil {
		return nil, err
	}
	targetTok, err := p.expectIdent("relation target schema name")
	if err != nil {
		return nil, err
	}
	target, err := schema.NewSchemaName(targetTok.Literal)
	if err != nil {
		return nil, &InvalidSchemaNameError{
			Name:       targetTok.Literal,
			Suggestion: ToPascalCase(targetTok.Literal),
			Span:       targetTok.Span,
		}
	}

	cardinality := schema.One
	if p.peekIs(token.LBRACKET) {
		p.advance()
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		cardinality = schema.Many
	}

	return schema.RelationType{Target: target, Cardinality: cardinality}, nil
}

// composite_type = "composite" "{" field_def* "}"
func (p *Parser) parseCompositeType() (schema.FieldType, error) {
	if _, err := p.expect(token.COMPOSITE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	fields, err := p.parseFields()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	if err := checkDuplicateFields(fields, p.currentSpan()); err != nil {
		return nil, err
	}

	return schema.CompositeType{Fields: fields}, nil
}

// modifier* = { "required" | "indexed" | "default" "(" literal ")" }
func (p *Parser) parseModifiers() ([]schema.FieldModifier, error) {
	var modifiers []schema.FieldModifier
	for {
		switch {
		case p.peekIs(token.REQUIRED):
			p.advance()
			modifiers = append(modifiers, schema.Required{})
		case p.peekIs(token.INDEXED):
			p.advance()
			modifiers = append(modifiers, schema.Indexed{})
		case p.peekIs(token.DEFAULT):
			p.advance()
			value, err := p.parseDefaultValue()
			if err != nil {
				return nil, err
			}
			modifiers = append(modifiers, schema.Default{Value: value})
		default:
			return modifiers, nil
		}
	}
}

// Default value: "default" already consumed, expects "(" literal ")".
func (p *Parser) parseDefaultValue() (schema.DefaultValue, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return schema.DefaultValue{}, err
	}

	tok, ok := p.advance()
	if !ok {
		return schema.DefaultValue{}, &UnexpectedEOFError{Expected: "default value"}
	}

	var value schema.DefaultValue
	switch tok.Type {
	case token.STRING:
		value = schema.StringDefault(unquoteString(tok.Literal))
	case token.INT:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return schema.DefaultValue{}, &InvalidIntegerLiteralError{Text: tok.Literal, Span: tok.Span}
		}
		value = schema.IntegerDefault(n)
	case token.FLOAT:
		v, err := schema.FloatDefault(tok.Literal)
		if err != nil {
			return schema.DefaultValue{}, &ValidationError{Err: err, Span: tok.Span}
		}
		value = v
	case token.TRUE:
		value = schema.BooleanDefault(true)
	case token.FALSE:
		value = schema.BooleanDefault(false)
	default:
		return schema.DefaultValue{}, &UnexpectedTokenError{
			Expected: "default value (string, integer, float, or boolean)",
			Found:    describe(tok),
			Span:     tok.Span,
		}
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return schema.DefaultValue{}, err
	}
	return value, nil
}

// field_annotation* = { "@owner" | "@field_access" "(" role_params ")" }
func (p *Parser) parseFieldAnnotations() ([]schema.FieldAnnotation, error) {
	var annotations []schema.FieldAnnotation
	seen := make(map[string]struct{})

	for p.peekIs(token.AT) {
		atTok, _ := p.advance()
		nameTok, err := p.expectIdent("field annotation name")
		if err != nil {
			return nil, err
		}

		var ann schema.FieldAnnotation
		switch nameTok.Literal {
		case "owner":
			ann = schema.OwnerAnnotation{}
		case "field_access":
			lists, err := p.parseRoleParams([]string{"read", "write"})
			if err != nil {
				return nil, err
			}
			ann = schema.FieldAccessAnnotation{Read: lists["read"], Write: lists["write"]}
		default:
			return nil, &UnexpectedTokenError{
				Expected: "field annotation name ('owner' or 'field_access')",
				Found:    fmt.Sprintf("'%s'", nameTok.Literal),
				Span:     nameTok.Span,
			}
		}

		if _, dup := seen[ann.Kind()]; dup {
			return nil, &DuplicateAnnotationError{
				Kind: ann.Kind(),
				Span: token.NewSpan(atTok.Span.Start, p.currentSpan().Start),
			}
		}
		seen[ann.Kind()] = struct{}{}
		annotations = append(annotations, ann)
	}

	return annotations, nil
}

// -- Helpers --

func checkDuplicateFields(fields []schema.FieldDefinition, span token.Span) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		name := f.Name.String()
		if _, dup := seen[name]; dup {
			return &DuplicateFieldNameError{Name: name, Span: span}
		}
		seen[name] = struct{}{}
	}
	return nil
}

// describe renders a token for "expected X, found Y" diagnostics.
func describe(tok token.Token) string {
	return fmt.Sprintf("%s ('%s')", tok.Type, tok.Literal)
}

func isContextualIdent(typ token.Type) bool {
	switch typ {
	case token.TEXT, token.INTEGER, token.FLOATKW, token.BOOLEAN, token.DATETIME,
		token.JSON, token.DEFAULT, token.REQUIRED, token.INDEXED, token.SCHEMA:
		return true
	default:
		return false
	}
}

// unquoteString strips the surrounding quotes from a string literal and
// resolves backslash escapes. Unknown escapes keep the backslash.
func unquoteString(s string) string {
	inner := s[1 : len(s)-1]
	if !strings.ContainsRune(inner, '\\') {
		return inner
	}
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(inner) {
			b.WriteByte('\\')
			break
		}
		switch inner[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(inner[i])
		}
	}
	return b.String()
}

func lookupParam(params []namedParam, key string) (string, bool) {
	for _, p := range params {
		if p.key == key {
			return p.value, true
		}
	}
	return "", false
}

func lookupInt64Param(params []namedParam, key string, span token.Span) (int64, bool, error) {
	raw, ok := lookupParam(params, key)
	if !ok {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, &InvalidIntegerLiteralError{Text: raw, Span: span}
	}
	return v, true, nil
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}
