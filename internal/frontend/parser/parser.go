package parser

import (
	"slc/internal/diagnostics"
	"slc/internal/frontend/ast"
	"slc/internal/frontend/lexer"
)

// Parser holds temporary state during parsing of a single file.
// It is created per file and reports syntax errors through the shared
// DiagnosticBag; parsing always produces a module, possibly partial, so
// later phases can still run over whatever was recognized.
type Parser struct {
	tokens      []lexer.Token
	current     int
	diagnostics *diagnostics.DiagnosticBag
	filepath    string
}

// Parse builds the AST for one token stream
func Parse(tokens []lexer.Token, filepath string, diag *diagnostics.DiagnosticBag) *ast.Module {
	p := &Parser{
		tokens:      tokens,
		diagnostics: diag,
		filepath:    filepath,
	}

	return p.parseModule()
}

// parseModule parses the entire module (all top-level declarations)
func (p *Parser) parseModule() *ast.Module {
	module := &ast.Module{
		FullPath: p.filepath,
		Nodes:    []ast.Node{},
	}

	for !p.isAtEnd() {
		before := p.current
		node := p.parseTopLevel()
		if node != nil {
			module.Nodes = append(module.Nodes, node)
		}
		if p.current == before {
			// Nothing was consumed; skip the offending token so a bad
			// declaration can't stall the parse.
			p.advance()
		}
	}

	return module
}

// parseTopLevel parses a single top-level declaration
func (p *Parser) parseTopLevel() ast.Node {
	if p.check(lexer.STRUCT_TOKEN) {
		return p.parseStructDecl()
	}
	return p.parseDeclaration()
}

// parseDeclaration parses qualifiers followed by an interface block,
// a function declaration or a variable declaration
func (p *Parser) parseDeclaration() ast.Node {
	start := p.peek()
	qual := p.parseQualifier()

	if qual == ast.QualifierUniform && p.check(lexer.IDENT_TOKEN) && p.checkNext(lexer.OPEN_CURLY) {
		return p.parseInterfaceBlock(start)
	}

	typ := p.parseTypeSpec()
	if typ == nil {
		p.synchronize()
		return nil
	}

	name := p.parseIdent()
	if name == nil {
		p.synchronize()
		return nil
	}

	if p.check(lexer.OPEN_PAREN) {
		return p.parseFuncDecl(start, typ, name)
	}
	return p.parseVarRest(start, qual, typ, name)
}

// parseQualifier consumes an optional storage qualifier
func (p *Parser) parseQualifier() ast.Qualifier {
	switch p.peek().Kind {
	case lexer.CONST_TOKEN:
		p.advance()
		return ast.QualifierConst
	case lexer.UNIFORM_TOKEN:
		p.advance()
		return ast.QualifierUniform
	case lexer.IN_TOKEN:
		p.advance()
		return ast.QualifierIn
	case lexer.OUT_TOKEN:
		p.advance()
		return ast.QualifierOut
	default:
		return ast.QualifierNone
	}
}

// parseTypeSpec parses a type name. Array dimensions follow the
// declarator (C style), so the caller attaches them afterwards.
func (p *Parser) parseTypeSpec() *ast.TypeSpec {
	if !p.check(lexer.IDENT_TOKEN) {
		p.diagnostics.Add(diagnostics.UnexpectedToken(p.filepath, p.peek().Location, p.peek().Kind.String(), "a type name"))
		return nil
	}
	tok := p.advance()
	return &ast.TypeSpec{
		Name:     &ast.Ident{Name: tok.Value, Location: *tok.Location},
		Location: *tok.Location,
	}
}

// parseStructDecl: struct Light { float3 dir; float intensity; };
func (p *Parser) parseStructDecl() ast.Node {
	start := p.expect(lexer.STRUCT_TOKEN).Location

	name := p.parseIdent()
	if name == nil {
		p.synchronize()
		return nil
	}

	p.expect(lexer.OPEN_CURLY)
	fields := p.parseFieldList()
	p.expect(lexer.CLOSE_CURLY)
	p.expect(lexer.SEMICOLON_TOKEN)

	return &ast.StructDecl{
		Name:     name,
		Fields:   fields,
		Location: *start,
	}
}

// parseInterfaceBlock: uniform Constants { float4 color; } [inst] ;
func (p *Parser) parseInterfaceBlock(start *lexer.Token) ast.Node {
	name := p.parseIdent()

	p.expect(lexer.OPEN_CURLY)
	fields := p.parseFieldList()
	p.expect(lexer.CLOSE_CURLY)

	var instance *ast.Ident
	if p.check(lexer.IDENT_TOKEN) {
		instance = p.parseIdent()
	}
	p.expect(lexer.SEMICOLON_TOKEN)

	return &ast.InterfaceBlock{
		Name:     name,
		Fields:   fields,
		Instance: instance,
		Location: *start.Location,
	}
}

// parseFieldList parses struct/block members up to the closing brace
func (p *Parser) parseFieldList() []*ast.FieldDecl {
	fields := []*ast.FieldDecl{}

	for !p.check(lexer.CLOSE_CURLY) && !p.isAtEnd() {
		before := p.current

		typ := p.parseTypeSpec()
		if typ == nil {
			p.synchronize()
			continue
		}
		name := p.parseIdent()
		if name == nil {
			p.synchronize()
			continue
		}
		p.parseArraySuffix(typ)
		p.expect(lexer.SEMICOLON_TOKEN)

		fields = append(fields, &ast.FieldDecl{
			Type:     typ,
			Name:     name,
			Location: *name.Loc(),
		})

		if p.current == before {
			p.advance()
		}
	}

	return fields
}

// parseFuncDecl parses the parameter list and body after the name
func (p *Parser) parseFuncDecl(start *lexer.Token, returnType *ast.TypeSpec, name *ast.Ident) ast.Node {
	p.expect(lexer.OPEN_PAREN)

	params := []*ast.ParamDecl{}
	for !p.check(lexer.CLOSE_PAREN) && !p.isAtEnd() {
		if len(params) > 0 && !p.match(lexer.COMMA_TOKEN) {
			p.diagnostics.Add(diagnostics.ExpectedToken(p.filepath, p.peek().Location, "','"))
			break
		}

		typ := p.parseTypeSpec()
		if typ == nil {
			break
		}
		var paramName *ast.Ident
		if p.check(lexer.IDENT_TOKEN) {
			paramName = p.parseIdent()
			p.parseArraySuffix(typ)
		}
		loc := typ.Location
		params = append(params, &ast.ParamDecl{Type: typ, Name: paramName, Location: loc})
	}
	p.expect(lexer.CLOSE_PAREN)

	var body *ast.Block
	if p.check(lexer.OPEN_CURLY) {
		body = p.parseBlock()
	} else {
		p.expect(lexer.SEMICOLON_TOKEN)
	}

	return &ast.FuncDecl{
		ReturnType: returnType,
		Name:       name,
		Params:     params,
		Body:       body,
		Location:   *start.Location,
	}
}

// parseVarRest finishes a variable declaration after type and name
func (p *Parser) parseVarRest(start *lexer.Token, qual ast.Qualifier, typ *ast.TypeSpec, name *ast.Ident) ast.Node {
	p.parseArraySuffix(typ)

	var init ast.Expression
	if p.match(lexer.ASSIGN_TOKEN) {
		init = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON_TOKEN)

	return &ast.VarDecl{
		Qualifier: qual,
		Type:      typ,
		Name:      name,
		Init:      init,
		Location:  *start.Location,
	}
}

// parseArraySuffix attaches an optional [size] declarator suffix
func (p *Parser) parseArraySuffix(typ *ast.TypeSpec) {
	if p.match(lexer.OPEN_BRACKET) {
		typ.ArraySize = p.parseExpression()
		p.expect(lexer.CLOSE_BRACKET)
	}
}

// parseIdent consumes an identifier, reporting if absent
func (p *Parser) parseIdent() *ast.Ident {
	if !p.check(lexer.IDENT_TOKEN) {
		p.diagnostics.Add(diagnostics.MissingIdentifier(p.filepath, p.peek().Location))
		return nil
	}
	tok := p.advance()
	return &ast.Ident{Name: tok.Value, Location: *tok.Location}
}

// synchronize skips ahead to the next statement boundary so one syntax
// error doesn't cascade
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.advance().Kind == lexer.SEMICOLON_TOKEN {
			return
		}
		if p.check(lexer.CLOSE_CURLY) {
			return
		}
	}
}

// Token stream helpers

func (p *Parser) peek() *lexer.Token {
	return &p.tokens[p.current]
}

func (p *Parser) peekNext() *lexer.Token {
	if p.current+1 < len(p.tokens) {
		return &p.tokens[p.current+1]
	}
	return &p.tokens[len(p.tokens)-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.EOF_TOKEN
}

func (p *Parser) advance() *lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(kind lexer.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkNext(kind lexer.TokenKind) bool {
	return p.peekNext().Kind == kind
}

func (p *Parser) match(kind lexer.TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind, reporting if it is missing
func (p *Parser) expect(kind lexer.TokenKind) *lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.diagnostics.Add(diagnostics.ExpectedToken(p.filepath, p.peek().Location, kind.String()))
	return p.peek()
}
