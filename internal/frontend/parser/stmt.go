package parser

import (
	"slc/internal/frontend/ast"
	"slc/internal/frontend/lexer"
)

// parseBlock parses a braced statement list
func (p *Parser) parseBlock() *ast.Block {
	start := p.expect(lexer.OPEN_CURLY)

	block := &ast.Block{
		Nodes:    []ast.Node{},
		Location: *start.Location,
	}

	for !p.check(lexer.CLOSE_CURLY) && !p.isAtEnd() {
		before := p.current
		stmt := p.parseStatement()
		if stmt != nil {
			block.Nodes = append(block.Nodes, stmt)
		}
		if p.current == before {
			p.advance()
		}
	}
	p.expect(lexer.CLOSE_CURLY)

	return block
}

// parseStatement parses a single statement inside a function body
func (p *Parser) parseStatement() ast.Node {
	switch p.peek().Kind {
	case lexer.RETURN_TOKEN:
		return p.parseReturnStmt()
	case lexer.IF_TOKEN:
		return p.parseIfStmt()
	case lexer.OPEN_CURLY:
		return p.parseBlock()
	case lexer.CONST_TOKEN:
		return p.parseLocalVarDecl()
	case lexer.IDENT_TOKEN:
		// Two consecutive identifiers start a local declaration;
		// anything else is an expression statement.
		if p.checkNext(lexer.IDENT_TOKEN) {
			return p.parseLocalVarDecl()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseReturnStmt: return expr? ;
func (p *Parser) parseReturnStmt() ast.Node {
	start := p.expect(lexer.RETURN_TOKEN)

	var value ast.Expression
	if !p.check(lexer.SEMICOLON_TOKEN) {
		value = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON_TOKEN)

	return &ast.ReturnStmt{
		Value:    value,
		Location: *start.Location,
	}
}

// parseIfStmt: if (cond) { ... } else ...
func (p *Parser) parseIfStmt() ast.Node {
	start := p.expect(lexer.IF_TOKEN)

	p.expect(lexer.OPEN_PAREN)
	cond := p.parseExpression()
	p.expect(lexer.CLOSE_PAREN)

	body := p.parseBranchBody()

	var elseNode ast.Node
	if p.match(lexer.ELSE_TOKEN) {
		if p.check(lexer.IF_TOKEN) {
			elseNode = p.parseIfStmt()
		} else {
			elseNode = p.parseBranchBody()
		}
	}

	return &ast.IfStmt{
		Cond:     cond,
		Body:     body,
		Else:     elseNode,
		Location: *start.Location,
	}
}

// parseBranchBody parses a branch of an if statement. A single unbraced
// statement is wrapped in a block so every branch opens a scope.
func (p *Parser) parseBranchBody() *ast.Block {
	if p.check(lexer.OPEN_CURLY) {
		return p.parseBlock()
	}

	loc := *p.peek().Location
	block := &ast.Block{Location: loc}
	if stmt := p.parseStatement(); stmt != nil {
		block.Nodes = []ast.Node{stmt}
	}
	return block
}

// parseLocalVarDecl: const float scale = 2.0;
func (p *Parser) parseLocalVarDecl() ast.Node {
	start := p.peek()
	qual := p.parseQualifier()

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
	return p.parseVarRest(start, qual, typ, name)
}

// parseExprStmt: expr ;
func (p *Parser) parseExprStmt() ast.Node {
	start := p.peek().Location
	expr := p.parseExpression()
	p.expect(lexer.SEMICOLON_TOKEN)

	if expr == nil {
		return nil
	}
	return &ast.ExprStmt{
		X:        expr,
		Location: *start,
	}
}
