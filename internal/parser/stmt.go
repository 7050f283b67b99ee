package parser

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/lexer"
)

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.current.Position
	p.consume(lexer.TokenLeftBrace, "expected '{' to open a block")
	block := &ast.BlockStmt{}
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		block.Stmts = append(block.Stmts, p.parseStmt())
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to close a block")
	block.BaseNode = bn(start, p.previous.Span().End)
	return block
}

func (p *Parser) parseStmt() ast.Stmt {
	defer p.recoverFromPanic()

	switch {
	case p.check(lexer.TokenLeftBrace):
		return p.parseBlockStmt()
	case p.check(lexer.TokenIf):
		return p.parseIfStmt()
	case p.check(lexer.TokenFor):
		return p.parseForStmt()
	case p.check(lexer.TokenWhile):
		return p.parseWhileStmt()
	case p.check(lexer.TokenReturn):
		return p.parseReturnStmt()
	case p.check(lexer.TokenBreak):
		return p.parseBreakStmt()
	case p.check(lexer.TokenContinue):
		return p.parseContinueStmt()
	case p.check(lexer.TokenSwitch):
		return p.parseSwitchStmt()
	case p.check(lexer.TokenVar), p.check(lexer.TokenLet), p.check(lexer.TokenConst):
		return p.parseVarStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseVarStmt() *ast.VarStmt {
	start := p.current.Position
	mut := ast.Mutable
	switch p.current.Type {
	case lexer.TokenLet:
		mut = ast.Immutable
	case lexer.TokenConst:
		mut = ast.Const
	}
	p.advance() // var/let/const

	stmt := &ast.VarStmt{Name: p.consumeIdentName("expected a variable name"), Mutability: mut}
	if p.match(lexer.TokenColon) {
		stmt.Type = p.parseTypeExpr()
	}
	if p.match(lexer.TokenAssign) {
		stmt.Init = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after variable declaration")
	stmt.BaseNode = bn(start, p.previous.Span().End)
	return stmt
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.current.Position
	p.advance() // 'return'
	stmt := &ast.ReturnStmt{}
	if !p.check(lexer.TokenSemicolon) {
		stmt.Value = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after return statement")
	stmt.BaseNode = bn(start, p.previous.Span().End)
	return stmt
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.current.Position
	p.advance() // 'if'
	stmt := &ast.IfStmt{Cond: p.parseExpression(), Then: p.parseBlockStmt()}
	if p.match(lexer.TokenElse) {
		if p.check(lexer.TokenIf) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlockStmt()
		}
	}
	stmt.BaseNode = bn(start, p.previous.Span().End)
	return stmt
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.current.Position
	p.advance() // 'for'
	stmt := &ast.ForStmt{}

	if !p.check(lexer.TokenSemicolon) {
		stmt.Init = p.parseForClauseStmt()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after for-loop initializer")

	if !p.check(lexer.TokenSemicolon) {
		stmt.Cond = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after for-loop condition")

	if !p.check(lexer.TokenLeftBrace) {
		stmt.Post = p.parseForClauseStmt()
	}
	stmt.Body = p.parseBlockStmt()
	stmt.BaseNode = bn(start, p.previous.Span().End)
	return stmt
}

// parseForClauseStmt parses the init/post clause of a for-loop: either a
// var declaration or a bare expression, without the trailing ';' that the
// surrounding for-loop grammar consumes itself.
func (p *Parser) parseForClauseStmt() ast.Stmt {
	start := p.current.Position
	if p.check(lexer.TokenVar) || p.check(lexer.TokenLet) || p.check(lexer.TokenConst) {
		mut := ast.Mutable
		switch p.current.Type {
		case lexer.TokenLet:
			mut = ast.Immutable
		case lexer.TokenConst:
			mut = ast.Const
		}
		p.advance()
		stmt := &ast.VarStmt{Name: p.consumeIdentName("expected a variable name"), Mutability: mut}
		if p.match(lexer.TokenColon) {
			stmt.Type = p.parseTypeExpr()
		}
		if p.match(lexer.TokenAssign) {
			stmt.Init = p.parseExpression()
		}
		stmt.BaseNode = bn(start, p.previous.Span().End)
		return stmt
	}
	expr := p.parseExpression()
	return &ast.ExprStmt{BaseNode: bn(start, p.previous.Span().End), X: expr}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.current.Position
	p.advance() // 'while'
	stmt := &ast.WhileStmt{Cond: p.parseExpression(), Body: p.parseBlockStmt()}
	stmt.BaseNode = bn(start, p.previous.Span().End)
	return stmt
}

func (p *Parser) parseBreakStmt() *ast.BreakStmt {
	start := p.current.Position
	p.advance() // 'break'
	p.consume(lexer.TokenSemicolon, "expected ';' after break")
	return &ast.BreakStmt{BaseNode: bn(start, p.previous.Span().End)}
}

func (p *Parser) parseContinueStmt() *ast.ContinueStmt {
	start := p.current.Position
	p.advance() // 'continue'
	p.consume(lexer.TokenSemicolon, "expected ';' after continue")
	return &ast.ContinueStmt{BaseNode: bn(start, p.previous.Span().End)}
}

func (p *Parser) parseSwitchStmt() *ast.SwitchStmt {
	start := p.current.Position
	p.advance() // 'switch'
	stmt := &ast.SwitchStmt{Subject: p.parseExpression()}
	p.consume(lexer.TokenLeftBrace, "expected '{' to open switch body")
	for p.check(lexer.TokenCase) || p.check(lexer.TokenDefault) {
		stmt.Cases = append(stmt.Cases, p.parseSwitchStmtCase())
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to close switch body")
	stmt.BaseNode = bn(start, p.previous.Span().End)
	return stmt
}

func (p *Parser) parseSwitchStmtCase() ast.SwitchStmtCase {
	var c ast.SwitchStmtCase
	if p.match(lexer.TokenCase) {
		c.Patterns = append(c.Patterns, p.parseExpression())
		for p.match(lexer.TokenComma) {
			c.Patterns = append(c.Patterns, p.parseExpression())
		}
	} else {
		p.consume(lexer.TokenDefault, "expected 'case' or 'default'")
	}
	p.consume(lexer.TokenColon, "expected ':' after case pattern")
	for !p.check(lexer.TokenCase) && !p.check(lexer.TokenDefault) && !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		c.Body = append(c.Body, p.parseStmt())
	}
	return c
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	start := p.current.Position
	expr := p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after expression statement")
	return &ast.ExprStmt{BaseNode: bn(start, p.previous.Span().End), X: expr}
}
