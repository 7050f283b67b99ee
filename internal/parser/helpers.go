package parser

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/lexer"
)

// parseError is panicked by consume/errorAt and caught by recoverFromPanic,
// mirroring the teacher's panic/recover synchronize() pattern: syntax
// recovery unwinds to the nearest declaration or statement boundary instead
// of threading an error return through every single parse method.
type parseError struct{ diagnostic diag.Diagnostic }

func (p *Parser) advance() {
	p.previous = p.current
	p.current = p.nextNonComment()
}

// nextNonComment pulls tokens from the peek buffer (if primed) or the
// lexer, collecting comments into p.comments rather than surfacing them as
// ordinary tokens — simplifies every grammar rule above this file, which
// never has to special-case TokenComment.
func (p *Parser) nextNonComment() lexer.Token {
	for {
		var tok lexer.Token
		if p.hasPeek {
			tok = p.peekTok
			p.hasPeek = false
		} else {
			t, err := p.lexer.NextToken()
			if err != nil {
				p.errors = append(p.errors, diag.Diagnostic{Message: err.Error(), File: p.filename})
			}
			tok = t
		}
		if tok.Type == lexer.TokenComment {
			p.comments = append(p.comments, &ast.Comment{
				Position: tok.Position,
				Text:     tok.Lexeme,
				IsBlock:  len(tok.Lexeme) >= 2 && tok.Lexeme[1] == '*',
			})
			continue
		}
		return tok
	}
}

// peek returns the token after p.current without consuming it.
func (p *Parser) peek() lexer.Token {
	if !p.hasPeek {
		p.peekTok = p.nextNonComment()
		p.hasPeek = true
	}
	return p.peekTok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current.Type == tt
}

func (p *Parser) match(tt lexer.TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(tt lexer.TokenType, message string) lexer.Token {
	if p.check(tt) {
		tok := p.current
		p.advance()
		return tok
	}
	p.errorAt(p.current, message)
	return p.current
}

func (p *Parser) consumeIdentName(message string) string {
	if p.check(lexer.TokenIdentifier) {
		name := p.current.Lexeme
		p.advance()
		return name
	}
	p.errorAt(p.current, message)
	return ""
}

func (p *Parser) isAtEnd() bool {
	return p.current.Type == lexer.TokenEOF
}

// errorAt, outside panic mode, records a diagnostic and unwinds to the
// nearest recovery point; inside panic mode it does nothing, so one
// malformed declaration doesn't cascade into dozens of misleading
// follow-on errors.
func (p *Parser) errorAt(tok lexer.Token, message string) {
	d := diag.Diagnostic{
		Message: message,
		Span:    spanPtr(tok.Span()),
		File:    p.filename,
	}
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.errors = append(p.errors, d)
	panic(parseError{diagnostic: d})
}

func spanPtr(s lexer.Span) *lexer.Span { return &s }

// recoverFromPanic catches a parseError thrown by errorAt, leaving the
// token stream at whatever point synchronize left it, and clears panicMode
// so later declarations are parsed normally again.
func (p *Parser) recoverFromPanic() {
	if r := recover(); r != nil {
		if _, ok := r.(parseError); !ok {
			panic(r)
		}
		p.synchronize()
	}
}

// synchronize skips tokens until a plausible declaration or statement
// boundary, matching the teacher's resync token set extended with this
// language's declaration keywords.
func (p *Parser) synchronize() {
	p.panicMode = false
	for !p.isAtEnd() {
		if p.previous.Type == lexer.TokenSemicolon || p.previous.Type == lexer.TokenRightBrace {
			return
		}
		switch p.current.Type {
		case lexer.TokenStruct, lexer.TokenFun, lexer.TokenConst, lexer.TokenDef,
			lexer.TokenEntry, lexer.TokenFor, lexer.TokenIf, lexer.TokenWhile,
			lexer.TokenReturn, lexer.TokenConstructor, lexer.TokenDestructor,
			lexer.TokenCast, lexer.TokenOperator, lexer.TokenVar, lexer.TokenLet,
			lexer.TokenMutable, lexer.TokenImmutable, lexer.TokenImport, lexer.TokenModule:
			return
		}
		p.advance()
	}
}
