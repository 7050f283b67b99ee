package parser

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/lexer"
)

// tryParseLambda distinguishes `(params) => body` from a grouped or tuple
// expression starting with the same '(' — the two are indistinguishable
// until the closing ')' and a following '=>' is seen. Rather than
// restructure the whole Pratt loop around unbounded lookahead, it takes a
// lexer.Mark, attempts the lambda-parameter grammar with a silent (non-
// panicking) variant of the type parser, and rewinds everything — lexer
// position, current/peek tokens, accumulated errors/comments, panic mode —
// on any mismatch.
func (p *Parser) tryParseLambda() (ast.Expr, bool) {
	start := p.current.Position
	mark := p.lexer.Mark()
	savedCurrent, savedPrevious := p.current, p.previous
	savedHasPeek, savedPeekTok := p.hasPeek, p.peekTok
	savedErrLen := len(p.errors)
	savedCommentLen := len(p.comments)
	savedPanic := p.panicMode

	rewind := func() {
		p.lexer.Reset(mark)
		p.current, p.previous = savedCurrent, savedPrevious
		p.hasPeek, p.peekTok = savedHasPeek, savedPeekTok
		p.errors = p.errors[:savedErrLen]
		p.comments = p.comments[:savedCommentLen]
		p.panicMode = savedPanic
	}

	params, ok := p.tryParseLambdaParams()
	if !ok || !p.check(lexer.TokenFatArrow) {
		rewind()
		return nil, false
	}

	p.advance() // '=>'
	lambda := &ast.LambdaExpr{Params: params}
	if p.check(lexer.TokenLeftBrace) {
		lambda.Body = p.parseBlockStmt()
	} else {
		lambda.ExprBody = p.parseExpression()
	}
	lambda.BaseNode = bn(start, p.previous.Span().End)
	return lambda, true
}

// tryParseLambdaParams parses `(name: Type, ...)` without ever calling
// errorAt: any mismatch reports failure instead of panicking, since a
// mismatch here just means "this wasn't a lambda after all".
func (p *Parser) tryParseLambdaParams() ([]ast.Param, bool) {
	if !p.check(lexer.TokenLeftParen) {
		return nil, false
	}
	p.advance() // '('

	var params []ast.Param
	if p.check(lexer.TokenRightParen) {
		p.advance()
		return params, true
	}

	for {
		variadic := false
		if p.check(lexer.TokenEllipsis) {
			variadic = true
			p.advance()
		}
		if !p.check(lexer.TokenIdentifier) {
			return nil, false
		}
		name := p.current.Lexeme
		p.advance()
		if !p.check(lexer.TokenColon) {
			return nil, false
		}
		p.advance()
		typ, ok := p.parseTypeExprSilent()
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: name, Type: typ, Variadic: variadic})
		if p.check(lexer.TokenComma) {
			p.advance()
			continue
		}
		break
	}
	if !p.check(lexer.TokenRightParen) {
		return nil, false
	}
	p.advance()
	return params, true
}

// parseTypeExprSilent mirrors parseTypeExpr but reports failure instead of
// calling errorAt, so a malformed type inside a speculative lambda param
// list falls back to grouping/tuple parsing rather than surfacing a
// confusing diagnostic for what turns out not to be a lambda at all.
func (p *Parser) parseTypeExprSilent() (ast.TypeExpr, bool) {
	start := p.current.Position

	if p.match(lexer.TokenMutable) {
		inner, ok := p.parseTypeExprSilent()
		if !ok {
			return nil, false
		}
		return &ast.MutableTypeExpr{BaseNode: bn(start, p.previous.Span().End), Inner: inner}, true
	}
	if p.match(lexer.TokenRef) {
		immutable := p.match(lexer.TokenImmutable)
		inner, ok := p.parseTypeExprSilent()
		if !ok {
			return nil, false
		}
		return &ast.ReferenceTypeExpr{BaseNode: bn(start, p.previous.Span().End), Inner: inner, Immutable: immutable}, true
	}

	var base ast.TypeExpr
	switch {
	case p.check(lexer.TokenLeftParen):
		b, ok := p.parseParenTypeExprSilent(start)
		if !ok {
			return nil, false
		}
		base = b
	case p.check(lexer.TokenIdentifier):
		name := p.current.Lexeme
		p.advance()
		base = &ast.BaseTypeExpr{BaseNode: bn(start, p.previous.Span().End), Name: name}
	default:
		return nil, false
	}

	for {
		switch {
		case p.check(lexer.TokenLess):
			b, ok := p.parseGenericArgsSilent(base, start)
			if !ok {
				return nil, false
			}
			base = b
		case p.check(lexer.TokenLeftBracket) && p.peek().Type == lexer.TokenRightBracket:
			p.advance()
			p.advance()
			base = &ast.ArrayTypeExpr{BaseNode: bn(start, p.previous.Span().End), Element: base}
		case p.match(lexer.TokenQuestion):
			base = &ast.NullableTypeExpr{BaseNode: bn(start, p.previous.Span().End), Inner: base}
		default:
			return base, true
		}
	}
}

func (p *Parser) parseGenericArgsSilent(base ast.TypeExpr, start lexer.Position) (ast.TypeExpr, bool) {
	p.advance() // '<'
	var args []ast.TypeExpr
	if !p.check(lexer.TokenGreater) {
		for {
			arg, ok := p.parseTypeExprSilent()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	if !p.check(lexer.TokenGreater) {
		return nil, false
	}
	p.advance()
	return &ast.GenericTypeExpr{BaseNode: bn(start, p.previous.Span().End), Base: base, Args: args}, true
}

func (p *Parser) parseParenTypeExprSilent(start lexer.Position) (ast.TypeExpr, bool) {
	p.advance() // '('
	var elements []ast.TypeExpr
	if !p.check(lexer.TokenRightParen) {
		for {
			elem, ok := p.parseTypeExprSilent()
			if !ok {
				return nil, false
			}
			elements = append(elements, elem)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	if !p.check(lexer.TokenRightParen) {
		return nil, false
	}
	p.advance()

	if p.match(lexer.TokenColonGreater) {
		result, ok := p.parseTypeExprSilent()
		if !ok {
			return nil, false
		}
		return &ast.LambdaTypeExpr{BaseNode: bn(start, p.previous.Span().End), Params: elements, Result: result}, true
	}
	return &ast.TupleTypeExpr{BaseNode: bn(start, p.previous.Span().End), Elements: elements}, true
}
