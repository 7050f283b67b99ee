package parser

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/lexer"
)

func (p *Parser) parseExpression() ast.Expr {
	return p.parsePrecedence(PrecAssignment)
}

func (p *Parser) parsePrecedence(min Precedence) ast.Expr {
	left := p.parsePrefix()
	for min <= getPrecedence(p.current.Type) {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) parsePrefix() ast.Expr {
	start := p.current.Position

	switch p.current.Type {
	case lexer.TokenNumber:
		return p.tokenLiteral(ast.TokenLitNumber)
	case lexer.TokenString:
		return p.tokenLiteral(ast.TokenLitString)
	case lexer.TokenChar:
		return p.tokenLiteral(ast.TokenLitChar)
	case lexer.TokenTrue, lexer.TokenFalse:
		return p.tokenLiteral(ast.TokenLitBool)
	case lexer.TokenNil:
		return p.tokenLiteral(ast.TokenLitNil)
	case lexer.TokenIdentifier, lexer.TokenThis:
		return p.tokenLiteral(ast.TokenIdent)
	case lexer.TokenLeftParen:
		if lambda, ok := p.tryParseLambda(); ok {
			return lambda
		}
		return p.parseParenExprOrTuple()
	case lexer.TokenLeftBracket:
		return p.parseListExpr()
	case lexer.TokenLeftBrace:
		return p.parseMapExpr()
	case lexer.TokenMinus, lexer.TokenNot, lexer.TokenBitNot:
		return p.parseUnary()
	case lexer.TokenSwitch:
		return p.parseSwitchExpr()
	case lexer.TokenWith:
		return p.parseWithExpr()
	default:
		p.errorAt(p.current, "expected an expression")
		return &ast.TokenExpr{BaseNode: bn(start, start), Kind: ast.TokenIdent}
	}
}

func (p *Parser) tokenLiteral(kind ast.TokenKind) ast.Expr {
	tok := p.current
	p.advance()
	return &ast.TokenExpr{BaseNode: bn(tok.Position, tok.Span().End), Kind: kind, Lexeme: tok.Lexeme}
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.current.Position
	op := p.current.Type
	p.advance()
	operand := p.parsePrecedence(PrecUnary)
	return &ast.UnaryExpr{BaseNode: bn(start, operand.End()), Operand: operand, Op: op}
}

// parseParenExprOrTuple handles `(expr)` grouping and `(a, b, ...)` tuples;
// lambda parameter lists are peeled off earlier by tryParseLambda.
func (p *Parser) parseParenExprOrTuple() ast.Expr {
	start := p.current.Position
	p.advance() // '('
	if p.match(lexer.TokenRightParen) {
		return &ast.TupleExpr{BaseNode: bn(start, p.previous.Span().End)}
	}
	first := p.parseExpression()
	if p.check(lexer.TokenComma) {
		elements := []ast.Expr{first}
		for p.match(lexer.TokenComma) {
			elements = append(elements, p.parseExpression())
		}
		p.consume(lexer.TokenRightParen, "expected ')' to close tuple")
		return &ast.TupleExpr{BaseNode: bn(start, p.previous.Span().End), Elements: elements}
	}
	p.consume(lexer.TokenRightParen, "expected ')' to close grouping")
	return &ast.GroupingExpr{BaseNode: bn(start, p.previous.Span().End), Inner: first}
}

func (p *Parser) parseListExpr() ast.Expr {
	start := p.current.Position
	p.advance() // '['
	list := &ast.ListExpr{}
	if !p.check(lexer.TokenRightBracket) {
		list.Elements = append(list.Elements, p.parseExpression())
		for p.match(lexer.TokenComma) {
			list.Elements = append(list.Elements, p.parseExpression())
		}
	}
	p.consume(lexer.TokenRightBracket, "expected ']' to close list literal")
	list.BaseNode = bn(start, p.previous.Span().End)
	return list
}

func (p *Parser) parseMapExpr() ast.Expr {
	start := p.current.Position
	p.advance() // '{'
	m := &ast.MapExpr{}
	if !p.check(lexer.TokenRightBrace) {
		p.parseMapEntry(m)
		for p.match(lexer.TokenComma) {
			p.parseMapEntry(m)
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to close map literal")
	m.BaseNode = bn(start, p.previous.Span().End)
	return m
}

func (p *Parser) parseMapEntry(m *ast.MapExpr) {
	key := p.parseExpression()
	p.consume(lexer.TokenColon, "expected ':' after map key")
	value := p.parseExpression()
	m.Keys = append(m.Keys, key)
	m.Values = append(m.Values, value)
}

func (p *Parser) parseSwitchExpr() ast.Expr {
	start := p.current.Position
	p.advance() // 'switch'
	subject := p.parseExpression()
	p.consume(lexer.TokenLeftBrace, "expected '{' to open switch expression")
	expr := &ast.SwitchExpr{Subject: subject}
	for p.check(lexer.TokenCase) || p.check(lexer.TokenDefault) {
		var c ast.SwitchCase
		if p.match(lexer.TokenCase) {
			c.Patterns = append(c.Patterns, p.parseExpression())
			for p.match(lexer.TokenComma) {
				c.Patterns = append(c.Patterns, p.parseExpression())
			}
		} else {
			p.consume(lexer.TokenDefault, "expected 'case' or 'default'")
		}
		p.consume(lexer.TokenFatArrow, "expected '=>' after case pattern")
		c.Body = p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after switch-expression arm")
		expr.Cases = append(expr.Cases, c)
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to close switch expression")
	expr.BaseNode = bn(start, p.previous.Span().End)
	return expr
}

func (p *Parser) parseWithExpr() ast.Expr {
	start := p.current.Position
	p.advance() // 'with'
	name := p.consumeIdentName("expected a name after 'with'")
	p.consume(lexer.TokenAssign, "expected '=' in with-expression binding")
	value := p.parseExpression()
	p.consume(lexer.TokenLeftBrace, "expected '{' after with-expression binding")
	body := p.parseExpression()
	p.consume(lexer.TokenRightBrace, "expected '}' to close with-expression")
	return &ast.WithExpr{BaseNode: bn(start, p.previous.Span().End), Name: name, Value: value, Body: body}
}

// --- infix ------------------------------------------------------------

func (p *Parser) parseInfix(left ast.Expr) ast.Expr {
	switch p.current.Type {
	case lexer.TokenAssign:
		return p.parseAssignment(left)
	case lexer.TokenQuestion:
		return p.parseConditional(left)
	case lexer.TokenDot:
		return p.parseAccess(left)
	case lexer.TokenLeftParen:
		return p.parseCall(left)
	case lexer.TokenLeftBracket:
		return p.parseIndex(left)
	case lexer.TokenAs:
		return p.parseCast(left)
	default:
		return p.parseBinary(left)
	}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	op := p.current.Type
	prec := getPrecedence(op)
	p.advance()
	nextMin := prec + 1
	if isRightAssociative(op) {
		nextMin = prec
	}
	right := p.parsePrecedence(nextMin)
	return &ast.BinaryExpr{BaseNode: bn(left.Pos(), right.End()), Left: left, Right: right, Op: op}
}

func (p *Parser) parseAssignment(left ast.Expr) ast.Expr {
	p.advance() // '='
	value := p.parsePrecedence(PrecAssignment)
	return &ast.AssignmentExpr{BaseNode: bn(left.Pos(), value.End()), Target: left, Value: value}
}

func (p *Parser) parseConditional(left ast.Expr) ast.Expr {
	p.advance() // '?'
	then := p.parsePrecedence(PrecAssignment)
	p.consume(lexer.TokenColon, "expected ':' in conditional expression")
	els := p.parsePrecedence(PrecConditional)
	return &ast.ConditionalExpr{BaseNode: bn(left.Pos(), els.End()), Cond: left, Then: then, Else: els}
}

func (p *Parser) parseAccess(left ast.Expr) ast.Expr {
	p.advance() // '.'
	name := p.consumeIdentName("expected a member name after '.'")
	return &ast.AccessExpr{BaseNode: bn(left.Pos(), p.previous.Span().End), Target: left, Name: name}
}

func (p *Parser) parseCall(left ast.Expr) ast.Expr {
	p.advance() // '('
	call := &ast.CallExpr{Callee: left}
	if !p.check(lexer.TokenRightParen) {
		call.Args = append(call.Args, p.parseExpression())
		for p.match(lexer.TokenComma) {
			call.Args = append(call.Args, p.parseExpression())
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after call arguments")
	call.BaseNode = bn(left.Pos(), p.previous.Span().End)
	return call
}

func (p *Parser) parseIndex(left ast.Expr) ast.Expr {
	p.advance() // '['
	index := p.parseExpression()
	p.consume(lexer.TokenRightBracket, "expected ']' after index expression")
	return &ast.IndexExpr{BaseNode: bn(left.Pos(), p.previous.Span().End), Target: left, Index: index}
}

func (p *Parser) parseCast(left ast.Expr) ast.Expr {
	p.advance() // 'as'
	typ := p.parseTypeExpr()
	return &ast.CastExpr{BaseNode: bn(left.Pos(), p.previous.Span().End), Operand: left, Type: typ}
}
