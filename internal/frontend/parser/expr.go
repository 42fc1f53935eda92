package parser

import (
	"slc/internal/diagnostics"
	"slc/internal/frontend/ast"
	"slc/internal/frontend/lexer"
)

// binaryPrec maps operator tokens to binding strength; higher binds tighter
var binaryPrec = map[lexer.TokenKind]int{
	lexer.OR_TOKEN:    1,
	lexer.AND_TOKEN:   2,
	lexer.EQ_TOKEN:    3,
	lexer.NEQ_TOKEN:   3,
	lexer.LT_TOKEN:    4,
	lexer.GT_TOKEN:    4,
	lexer.LE_TOKEN:    4,
	lexer.GE_TOKEN:    4,
	lexer.PLUS_TOKEN:  5,
	lexer.MINUS_TOKEN: 5,
	lexer.STAR_TOKEN:  6,
	lexer.SLASH_TOKEN: 6,
}

// parseExpression parses any expression, assignment included
func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment handles right-associative assignment: a = b = c
func (p *Parser) parseAssignment() ast.Expression {
	expr := p.parseBinary(1)
	if expr == nil {
		return nil
	}

	if p.check(lexer.ASSIGN_TOKEN) {
		tok := p.advance()
		value := p.parseAssignment()
		return &ast.AssignExpr{
			Target:   expr,
			Value:    value,
			Location: *tok.Location,
		}
	}
	return expr
}

// parseBinary is a precedence climber over binaryPrec
func (p *Parser) parseBinary(minPrec int) ast.Expression {
	left := p.parseUnary()
	if left == nil {
		return nil
	}

	for {
		prec, ok := binaryPrec[p.peek().Kind]
		if !ok || prec < minPrec {
			return left
		}
		op := p.advance()
		right := p.parseBinary(prec + 1)
		left = &ast.BinaryExpr{
			Op:       op.Value,
			Left:     left,
			Right:    right,
			Location: *op.Location,
		}
	}
}

// parseUnary: -x, !x
func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.MINUS_TOKEN) || p.check(lexer.NOT_TOKEN) {
		op := p.advance()
		return &ast.PrefixExpr{
			Op:       op.Value,
			X:        p.parseUnary(),
			Location: *op.Location,
		}
	}
	return p.parsePostfix()
}

// parsePostfix parses calls, member selection and indexing
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}

	for {
		switch {
		case p.check(lexer.OPEN_PAREN):
			tok := p.advance()
			args := []ast.Expression{}
			for !p.check(lexer.CLOSE_PAREN) && !p.isAtEnd() {
				if len(args) > 0 && !p.match(lexer.COMMA_TOKEN) {
					p.diagnostics.Add(diagnostics.ExpectedToken(p.filepath, p.peek().Location, "','"))
					break
				}
				arg := p.parseExpression()
				if arg == nil {
					break
				}
				args = append(args, arg)
			}
			p.expect(lexer.CLOSE_PAREN)
			expr = &ast.CallExpr{Callee: expr, Args: args, Location: *tok.Location}

		case p.check(lexer.DOT_TOKEN):
			p.advance()
			name := p.parseIdent()
			if name == nil {
				return expr
			}
			expr = &ast.FieldExpr{X: expr, Name: name, Location: *name.Loc()}

		case p.check(lexer.OPEN_BRACKET):
			tok := p.advance()
			index := p.parseExpression()
			p.expect(lexer.CLOSE_BRACKET)
			expr = &ast.IndexExpr{X: expr, Index: index, Location: *tok.Location}

		default:
			return expr
		}
	}
}

// parsePrimary: identifiers, literals and parenthesized expressions
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.peek()

	switch tok.Kind {
	case lexer.IDENT_TOKEN:
		p.advance()
		return &ast.Ident{Name: tok.Value, Location: *tok.Location}

	case lexer.INT_TOKEN:
		p.advance()
		return &ast.BasicLit{Kind: ast.INT, Value: tok.Value, Location: *tok.Location}

	case lexer.FLOAT_TOKEN:
		p.advance()
		return &ast.BasicLit{Kind: ast.FLOAT, Value: tok.Value, Location: *tok.Location}

	case lexer.TRUE_TOKEN, lexer.FALSE_TOKEN:
		p.advance()
		return &ast.BasicLit{Kind: ast.BOOL, Value: tok.Value, Location: *tok.Location}

	case lexer.OPEN_PAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.CLOSE_PAREN)
		return expr

	default:
		p.diagnostics.Add(diagnostics.UnexpectedToken(p.filepath, tok.Location, tok.Kind.String(), "an expression"))
		return nil
	}
}
