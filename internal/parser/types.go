package parser

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/lexer"
)

// parseTypeExpr parses a syntactic type reference: a bare name, a
// parenthesized tuple or lambda signature, or any of those wrapped in the
// prefix qualifiers `mutable`/`ref`/`ref immutable` and the postfix
// qualifiers `<...>` (generic args), `[]` (array), `?` (nullable).
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	start := p.current.Position

	if p.match(lexer.TokenMutable) {
		inner := p.parseTypeExpr()
		return &ast.MutableTypeExpr{BaseNode: bn(start, p.previous.Span().End), Inner: inner}
	}
	if p.match(lexer.TokenRef) {
		immutable := p.match(lexer.TokenImmutable)
		inner := p.parseTypeExpr()
		return &ast.ReferenceTypeExpr{BaseNode: bn(start, p.previous.Span().End), Inner: inner, Immutable: immutable}
	}

	var base ast.TypeExpr
	switch {
	case p.check(lexer.TokenLeftParen):
		base = p.parseParenTypeExpr(start)
	case p.check(lexer.TokenIdentifier):
		name := p.current.Lexeme
		p.advance()
		base = &ast.BaseTypeExpr{BaseNode: bn(start, p.previous.Span().End), Name: name}
	default:
		p.errorAt(p.current, "expected a type")
		return &ast.BaseTypeExpr{BaseNode: bn(start, start), Name: ""}
	}

	for {
		switch {
		case p.check(lexer.TokenLess):
			base = p.parseGenericArgs(base, start)
		case p.check(lexer.TokenLeftBracket) && p.peek().Type == lexer.TokenRightBracket:
			p.advance() // '['
			p.advance() // ']'
			base = &ast.ArrayTypeExpr{BaseNode: bn(start, p.previous.Span().End), Element: base}
		case p.match(lexer.TokenQuestion):
			base = &ast.NullableTypeExpr{BaseNode: bn(start, p.previous.Span().End), Inner: base}
		default:
			return base
		}
	}
}

func (p *Parser) parseGenericArgs(base ast.TypeExpr, start lexer.Position) ast.TypeExpr {
	p.advance() // '<'
	var args []ast.TypeExpr
	if !p.check(lexer.TokenGreater) {
		for {
			args = append(args, p.parseTypeExpr())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenGreater, "expected '>' to close generic arguments")
	return &ast.GenericTypeExpr{BaseNode: bn(start, p.previous.Span().End), Base: base, Args: args}
}

// parseParenTypeExpr parses `(T1, T2, ...)`, which is either a tuple type or,
// if followed by `:>`, a lambda/function type's parameter list.
func (p *Parser) parseParenTypeExpr(start lexer.Position) ast.TypeExpr {
	p.advance() // '('
	var elements []ast.TypeExpr
	if !p.check(lexer.TokenRightParen) {
		for {
			elements = append(elements, p.parseTypeExpr())
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' to close type list")

	if p.match(lexer.TokenColonGreater) {
		result := p.parseTypeExpr()
		return &ast.LambdaTypeExpr{BaseNode: bn(start, p.previous.Span().End), Params: elements, Result: result}
	}
	return &ast.TupleTypeExpr{BaseNode: bn(start, p.previous.Span().End), Elements: elements}
}
