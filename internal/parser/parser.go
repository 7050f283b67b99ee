// Package parser turns a token stream into the syntax tree defined by
// internal/ast. It follows the teacher's Pratt-parsing recursive-descent
// approach (parsePrecedence/parsePrefix/parseInfix, panic/recover
// synchronization on a parse error) retargeted at this language's larger
// declaration and type grammar.
package parser

import (
	"fmt"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/lexer"
)

// Parser consumes a Lexer one token at a time and builds an ast.File. Errors
// are accumulated as diag.Diagnostics rather than returned immediately so a
// single file can report more than one syntax error per parse.
type Parser struct {
	lexer    *lexer.Lexer
	filename string

	current  lexer.Token
	previous lexer.Token

	hasPeek bool
	peekTok lexer.Token

	comments  []*ast.Comment
	errors    []diag.Diagnostic
	panicMode bool
}

func New(l *lexer.Lexer, filename string) *Parser {
	p := &Parser{lexer: l, filename: filename}
	p.advance()
	return p
}

// ParseFile parses one source file: an optional module declaration, its
// imports, and its top-level declarations.
func (p *Parser) ParseFile() (*ast.File, []diag.Diagnostic) {
	file := &ast.File{Filename: p.filename}

	if p.check(lexer.TokenModule) {
		file.Module = p.parseModuleDecl()
	}

	for p.check(lexer.TokenImport) && p.peek().Type != lexer.TokenFun {
		file.Imports = append(file.Imports, p.parseImportDecl())
	}

	for !p.isAtEnd() {
		decl := p.parseTopDecl()
		if decl != nil {
			file.Decls = append(file.Decls, decl)
		}
	}

	file.Comments = p.comments
	return file, p.errors
}

// --- module / import -------------------------------------------------

func (p *Parser) parseModuleDecl() *ast.ModuleDecl {
	start := p.current.Position
	p.advance() // 'module'
	path := p.parseDottedPath()
	p.consume(lexer.TokenSemicolon, "expected ';' after module declaration")
	return &ast.ModuleDecl{BaseNode: bn(start, p.previous.Span().End), Path: path}
}

func (p *Parser) parseDottedPath() []string {
	var path []string
	path = append(path, p.consumeIdentName("expected a name"))
	for p.match(lexer.TokenDot) {
		if p.check(lexer.TokenStar) {
			break
		}
		path = append(path, p.consumeIdentName("expected a name after '.'"))
	}
	return path
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.current.Position
	p.advance() // 'import'
	decl := &ast.ImportDecl{}

	decl.Path = append(decl.Path, p.consumeIdentName("expected an import path"))
	for p.match(lexer.TokenDot) {
		if p.match(lexer.TokenStar) {
			decl.Wildcard = true
			break
		}
		if p.check(lexer.TokenLeftBrace) {
			p.advance()
			decl.Items = p.parseImportItems()
			break
		}
		decl.Path = append(decl.Path, p.consumeIdentName("expected a name after '.'"))
	}

	if p.match(lexer.TokenAs) {
		decl.Alias = p.consumeIdentName("expected an alias after 'as'")
	}

	p.consume(lexer.TokenSemicolon, "expected ';' after import")
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseImportItems() []ast.ImportItem {
	var items []ast.ImportItem
	if !p.check(lexer.TokenRightBrace) {
		for {
			item := ast.ImportItem{Name: p.consumeIdentName("expected an import item name")}
			if p.match(lexer.TokenAs) {
				item.Alias = p.consumeIdentName("expected an alias after 'as'")
			}
			items = append(items, item)
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' after import group")
	return items
}

// --- top-level declarations -------------------------------------------

func (p *Parser) parseTopDecl() ast.Decl {
	defer p.recoverFromPanic()

	static := p.match(lexer.TokenStatic)

	switch {
	case p.check(lexer.TokenMutable) && p.peek().Type == lexer.TokenStruct:
		p.advance() // 'mutable'
		decl := p.parseStructDecl()
		decl.Mutable = true
		return decl
	case p.check(lexer.TokenStruct):
		return p.parseStructDecl()
	case p.check(lexer.TokenConst):
		return p.parseConstDecl()
	case p.check(lexer.TokenDef):
		return p.parseDefineDecl()
	case p.check(lexer.TokenEntry):
		return p.parseEntryDecl()
	case p.check(lexer.TokenFun):
		return p.parseFuncDecl(static)
	case p.check(lexer.TokenImport) && p.peek().Type == lexer.TokenFun:
		p.advance() // 'import'
		return p.parseExternFuncDecl()
	default:
		p.errorAt(p.current, fmt.Sprintf("unexpected token %s at top level", p.current.Type))
		p.synchronize()
		return nil
	}
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	start := p.current.Position
	p.advance() // 'struct'
	decl := &ast.StructDecl{Name: p.consumeIdentName("expected a struct name")}
	decl.TypeParams = p.parseOptionalTypeParams()

	p.consume(lexer.TokenLeftBrace, "expected '{' to open struct body")
	for !p.check(lexer.TokenRightBrace) && !p.isAtEnd() {
		member := p.parseStructMember()
		if member != nil {
			decl.Members = append(decl.Members, member)
		}
	}
	p.consume(lexer.TokenRightBrace, "expected '}' to close struct body")
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseOptionalTypeParams() []ast.TypeParam {
	if !p.match(lexer.TokenLess) {
		return nil
	}
	var params []ast.TypeParam
	for {
		params = append(params, ast.TypeParam{Name: p.consumeIdentName("expected a type parameter name")})
		if !p.match(lexer.TokenComma) {
			break
		}
	}
	p.consume(lexer.TokenGreater, "expected '>' after type parameters")
	return params
}

func (p *Parser) parseStructMember() ast.Decl {
	defer p.recoverFromPanic()

	static := p.match(lexer.TokenStatic)

	switch {
	case p.check(lexer.TokenConstructor):
		return p.parseConstructorDecl()
	case p.check(lexer.TokenDestructor):
		return p.parseDestructorDecl()
	case p.check(lexer.TokenCast):
		return p.parseCastDecl()
	case p.check(lexer.TokenOperator):
		return p.parseOperatorDecl()
	case p.check(lexer.TokenFun):
		return p.parseFuncDecl(static)
	case p.check(lexer.TokenConst):
		return p.parseFieldDecl(ast.Const, static)
	case p.check(lexer.TokenMutable):
		return p.parseFieldDecl(ast.Mutable, static)
	case p.check(lexer.TokenImmutable):
		return p.parseFieldDecl(ast.Immutable, static)
	case p.check(lexer.TokenDef):
		return p.parseDefineDecl()
	case p.isStringConvDecl():
		return p.parseStringConvDecl()
	default:
		p.errorAt(p.current, fmt.Sprintf("unexpected token %s in struct body", p.current.Type))
		p.synchronize()
		return nil
	}
}

// isStringConvDecl recognizes the `string() :> ... { ... }` conversion
// member. "string" is never a keyword (native type names stay ordinary
// identifiers, spec §3.1), so the parser disambiguates it contextually: an
// identifier literally spelled "string" immediately followed by '(' is the
// conversion declaration, not a type or field reference.
func (p *Parser) isStringConvDecl() bool {
	return p.check(lexer.TokenIdentifier) && p.current.Lexeme == "string" && p.peek().Type == lexer.TokenLeftParen
}

func (p *Parser) parseFieldDecl(mut ast.Mutability, static bool) *ast.FieldDecl {
	start := p.current.Position
	p.advance() // mutability keyword
	decl := &ast.FieldDecl{Name: p.consumeIdentName("expected a field name"), Mutability: mut, Static: static}
	if p.match(lexer.TokenColon) {
		decl.Type = p.parseTypeExpr()
	}
	if p.match(lexer.TokenAssign) {
		decl.Init = p.parseExpression()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after field declaration")
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseConstDecl() *ast.ConstDecl {
	start := p.current.Position
	p.advance() // 'const'
	decl := &ast.ConstDecl{Name: p.consumeIdentName("expected a constant name")}
	if p.match(lexer.TokenColon) {
		decl.Type = p.parseTypeExpr()
	}
	p.consume(lexer.TokenAssign, "expected '=' in constant declaration")
	decl.Init = p.parseExpression()
	p.consume(lexer.TokenSemicolon, "expected ';' after constant declaration")
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseDefineDecl() *ast.DefineDecl {
	start := p.current.Position
	p.advance() // 'def'
	decl := &ast.DefineDecl{Name: p.consumeIdentName("expected a type alias name")}
	p.consume(lexer.TokenAssign, "expected '=' in type alias")
	decl.Type = p.parseTypeExpr()
	p.consume(lexer.TokenSemicolon, "expected ';' after type alias")
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseEntryDecl() *ast.EntryDecl {
	start := p.current.Position
	p.advance() // 'entry'
	p.consume(lexer.TokenLeftParen, "expected '(' after 'entry'")
	params := p.parseParamList()
	decl := &ast.EntryDecl{Params: params, Body: p.parseBlockStmt()}
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseFuncDecl(static bool) *ast.FuncDecl {
	start := p.current.Position
	p.advance() // 'fun'
	decl := &ast.FuncDecl{Name: p.consumeIdentName("expected a function name"), Static: static}
	decl.TypeParams = p.parseOptionalTypeParams()
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	decl.Params = p.parseParamList()
	if p.match(lexer.TokenColonGreater) {
		decl.Result = p.parseTypeExpr()
	}
	p.parseFuncBody(&decl.Body, &decl.ExprBody)
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseExternFuncDecl() *ast.ExternFuncDecl {
	start := p.previous.Position // 'import'
	p.consume(lexer.TokenFun, "expected 'fun' after 'import'")
	decl := &ast.ExternFuncDecl{Name: p.consumeIdentName("expected a function name")}
	p.consume(lexer.TokenLeftParen, "expected '(' after function name")
	decl.Params = p.parseParamList()
	if p.match(lexer.TokenColonGreater) {
		decl.Result = p.parseTypeExpr()
	}
	p.consume(lexer.TokenSemicolon, "expected ';' after external function declaration")
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseConstructorDecl() *ast.ConstructorDecl {
	start := p.current.Position
	p.advance() // 'constructor'
	p.consume(lexer.TokenLeftParen, "expected '(' after 'constructor'")
	decl := &ast.ConstructorDecl{Params: p.parseParamList(), Body: p.parseBlockStmt()}
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseDestructorDecl() *ast.DestructorDecl {
	start := p.current.Position
	p.advance() // 'destructor'
	p.consume(lexer.TokenLeftParen, "expected '(' after 'destructor'")
	p.consume(lexer.TokenRightParen, "destructor takes no parameters")
	decl := &ast.DestructorDecl{Body: p.parseBlockStmt()}
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseStringConvDecl() *ast.StringConvDecl {
	start := p.current.Position
	p.advance() // 'string'
	p.consume(lexer.TokenLeftParen, "expected '(' after 'string'")
	p.consume(lexer.TokenRightParen, "the string conversion takes no parameters")
	if p.match(lexer.TokenColonGreater) {
		p.parseTypeExpr() // result is always string; parsed for grammar symmetry and discarded
	}
	decl := &ast.StringConvDecl{}
	p.parseFuncBody(&decl.Body, &decl.ExprBody)
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseCastDecl() *ast.CastDecl {
	start := p.current.Position
	p.advance() // 'cast'
	decl := &ast.CastDecl{}
	switch {
	case p.match(lexer.TokenExplicit):
		decl.Explicit = true
	case p.match(lexer.TokenImplicit):
		decl.Explicit = false
	}
	p.consume(lexer.TokenColonGreater, "expected ':>' in cast declaration")
	decl.Result = p.parseTypeExpr()
	p.parseFuncBody(&decl.Body, &decl.ExprBody)
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) parseOperatorDecl() *ast.OperatorDecl {
	start := p.current.Position
	p.advance() // 'operator'
	decl := &ast.OperatorDecl{Symbol: p.operatorSymbolText()}
	p.advance() // the operator token itself
	p.consume(lexer.TokenLeftParen, "expected '(' after operator symbol")
	decl.Params = p.parseParamList()
	if p.match(lexer.TokenColonGreater) {
		decl.Result = p.parseTypeExpr()
	}
	p.parseFuncBody(&decl.Body, &decl.ExprBody)
	decl.BaseNode = bn(start, p.previous.Span().End)
	return decl
}

func (p *Parser) operatorSymbolText() string {
	if p.current.Type.IsOperator() || p.current.Type == lexer.TokenBitNot || p.current.Type == lexer.TokenAssign {
		return p.current.Lexeme
	}
	p.errorAt(p.current, "expected an operator symbol")
	return p.current.Lexeme
}

// parseFuncBody fills exactly one of body/exprBody, matching every
// `{ ... }` / `=> expr;` bearing declaration in the grammar.
func (p *Parser) parseFuncBody(body **ast.BlockStmt, exprBody *ast.Expr) {
	if p.match(lexer.TokenFatArrow) {
		*exprBody = p.parseExpression()
		p.consume(lexer.TokenSemicolon, "expected ';' after expression body")
		return
	}
	*body = p.parseBlockStmt()
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if !p.check(lexer.TokenRightParen) {
		for {
			variadic := p.match(lexer.TokenEllipsis)
			name := p.consumeIdentName("expected a parameter name")
			p.consume(lexer.TokenColon, "expected ':' after parameter name")
			typ := p.parseTypeExpr()
			var def ast.Expr
			if p.match(lexer.TokenAssign) {
				def = p.parseExpression()
			}
			params = append(params, ast.Param{Name: name, Type: typ, Variadic: variadic, Default: def})
			if !p.match(lexer.TokenComma) {
				break
			}
		}
	}
	p.consume(lexer.TokenRightParen, "expected ')' after parameters")
	return params
}

func bn(start, end lexer.Position) ast.BaseNode {
	return ast.BaseNode{StartPos: start, EndPos: end}
}
