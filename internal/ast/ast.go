// Package ast defines the syntax tree the parser builds and the Collector
// and Resolver consume. Nodes are plain tagged structs switched on by
// concrete type, not a Visitor interface: the node set here is large and
// grows with the language's grammar, and a type switch in each pass reads
// closer to the spec's per-kind case lists than a matching Visitor method
// per node would.
package ast

import (
	"github.com/hassan/langcore/internal/lexer"
)

// Node is the base interface for every syntax tree node.
type Node interface {
	Pos() lexer.Position
	End() lexer.Position
}

// Expr is a node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that performs an action inside a function or entry body.
type Stmt interface {
	Node
	stmtNode()
}

// Decl is a top-level or struct-body declaration.
type Decl interface {
	Node
	declNode()
}

// TypeExpr is a syntactic type reference as written in source, before the
// Collector resolves it against the Type Model (internal/types).
type TypeExpr interface {
	Node
	typeExprNode()
}

// BaseNode supplies Pos/End for nodes with a simple start/end span.
type BaseNode struct {
	StartPos lexer.Position
	EndPos   lexer.Position
}

func (b BaseNode) Pos() lexer.Position { return b.StartPos }
func (b BaseNode) End() lexer.Position { return b.EndPos }

// File is a single source file: one optional module declaration, its
// imports, and its top-level declarations. Mirrors the teacher's File but
// swaps PackageDecl for ModuleDecl and broadens Decls to this language's
// declaration set.
type File struct {
	Module   *ModuleDecl
	Imports  []*ImportDecl
	Decls    []Decl
	Comments []*Comment
	Filename string
}

func (f *File) Pos() lexer.Position {
	if f.Module != nil {
		return f.Module.Pos()
	}
	if len(f.Imports) > 0 {
		return f.Imports[0].Pos()
	}
	if len(f.Decls) > 0 {
		return f.Decls[0].Pos()
	}
	return lexer.Position{Filename: f.Filename, Line: 1, Column: 1}
}

func (f *File) End() lexer.Position {
	if n := len(f.Decls); n > 0 {
		return f.Decls[n-1].End()
	}
	return f.Pos()
}

// ModuleDecl names the module this file belongs to, e.g. `module app.core`.
type ModuleDecl struct {
	BaseNode
	Path []string
}

// ImportDecl covers every import shape spec §3.2/§4.3 requires the
// Collector to resolve: a single name, a brace-grouped aggregate of names
// (each independently aliasable), or a wildcard (`import a.b.*`), with an
// optional alias on the import path itself.
type ImportDecl struct {
	BaseNode
	Path  []string
	Alias string // "" if unaliased

	Wildcard bool
	Items    []ImportItem // non-nil for aggregate imports: `import a.b.{X, Y as Z}`
}

// ImportItem is one name inside an aggregate import group, with its own
// optional alias.
type ImportItem struct {
	Name  string
	Alias string
}

// Comment is tracked separately from the syntax tree, matching the
// teacher's rationale: not needed by the Collector/Resolver, but kept for
// any future documentation or formatting tool built on this tree.
type Comment struct {
	Position lexer.Position
	Text     string
	IsBlock  bool
}

func (c *Comment) Pos() lexer.Position { return c.Position }
func (c *Comment) End() lexer.Position {
	lines, lastNewline := 0, -1
	for i, ch := range c.Text {
		if ch == '\n' {
			lines++
			lastNewline = i
		}
	}
	endLine := c.Position.Line + lines
	endCol := c.Position.Column
	if lines > 0 {
		endCol = len(c.Text) - lastNewline
	} else {
		endCol += len(c.Text)
	}
	return lexer.Position{
		Filename: c.Position.Filename,
		Line:     endLine,
		Column:   endCol,
		Offset:   c.Position.Offset + len(c.Text),
	}
}
