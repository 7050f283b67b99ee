package resolver

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/collector"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/symtab"
)

// resolveStmt dispatches one statement per spec §4.4.1's statement rules.
// New child scopes (Block/Loop/Switch) nest under r.scope(), and each case
// chooses the symtab.ScopeKind for the scope it pushes.
func (r *Resolver) resolveStmt(cf *collector.CollectedFile, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(cf, s.X)

	case *ast.BlockStmt:
		r.resolveBlock(cf, s, r.scope())

	case *ast.VarStmt:
		r.resolveVarStmt(cf, s)

	case *ast.ReturnStmt:
		if s.Value != nil {
			r.resolveExpr(cf, s.Value)
		}

	case *ast.IfStmt:
		r.resolveExpr(cf, s.Cond)
		r.resolveBlock(cf, s.Then, r.scope())
		if s.Else != nil {
			r.resolveStmt(cf, s.Else)
		}

	case *ast.ForStmt:
		loopScope := symtab.NewScope(symtab.ScopeLoop, r.scope())
		r.pushScope(loopScope)
		if s.Init != nil {
			r.resolveStmt(cf, s.Init)
		}
		if s.Cond != nil {
			r.resolveExpr(cf, s.Cond)
		}
		if s.Post != nil {
			r.resolveStmt(cf, s.Post)
		}
		r.resolveBlock(cf, s.Body, loopScope)
		r.popScope()

	case *ast.WhileStmt:
		loopScope := symtab.NewScope(symtab.ScopeLoop, r.scope())
		r.pushScope(loopScope)
		r.resolveExpr(cf, s.Cond)
		r.resolveBlock(cf, s.Body, loopScope)
		r.popScope()

	case *ast.BreakStmt:
		if r.scope().FindEnclosingLoopOrSwitch() == nil {
			r.report(cf.Filename, diag.BreakOutsideLoop(cf.Filename, spanOf(s)))
		}

	case *ast.ContinueStmt:
		if r.scope().FindEnclosingLoop() == nil {
			r.report(cf.Filename, diag.ContinueOutsideLoop(cf.Filename, spanOf(s)))
		}

	case *ast.SwitchStmt:
		r.resolveSwitchStmt(cf, s)
	}
}

// resolveBlock implements the Block rule: push a new scope, resolve every
// statement in order, pop. parent is where the new scope nests; block
// scopes are never stashed on the CollectedFile the way function/struct
// scopes are, since the Collector's two passes never walk into statement
// bodies — the Resolver builds this part of the scope tree as it goes,
// per SPEC_FULL's Open Question resolution deferring local/nested-block
// scope construction to this single walk.
func (r *Resolver) resolveBlock(cf *collector.CollectedFile, block *ast.BlockStmt, parent *symtab.Scope) {
	scope := symtab.NewScope(symtab.ScopeBlock, parent)
	r.pushScope(scope)
	for _, stmt := range block.Stmts {
		r.resolveStmt(cf, stmt)
	}
	r.popScope()
}

func (r *Resolver) resolveVarStmt(cf *collector.CollectedFile, s *ast.VarStmt) {
	sym := r.arena.New(s.Name, symtab.KindVar)
	sym.Pos = s.Pos()
	sym.Mutability = int(s.Mutability)

	var declaredType = s.Type != nil

	if declaredType {
		if ty, ok := r.resolveTypeExpr(cf, r.scope(), s.Type); ok {
			sym.Type = ty
		}
	}
	if s.Init != nil {
		resolved := r.resolveExpr(cf, s.Init)
		sym.ConstantValue = resolved
		if !declaredType {
			sym.Type = resolved.Type
		}
	}
	if !declaredType && s.Init == nil {
		r.report(cf.Filename, diag.TypeCannotBeInferred(cf.Filename, spanOf(s), s.Name))
	}

	if existing, inserted := r.scope().Define(s.Name, sym.ID); !inserted {
		_ = existing
		r.report(cf.Filename, diag.DuplicateDeclaration(cf.Filename, spanOf(s), s.Name))
	}
}

func (r *Resolver) resolveSwitchStmt(cf *collector.CollectedFile, s *ast.SwitchStmt) {
	r.resolveExpr(cf, s.Subject)
	switchScope := symtab.NewScope(symtab.ScopeSwitch, r.scope())
	r.pushScope(switchScope)
	for _, c := range s.Cases {
		for _, pat := range c.Patterns {
			r.resolveExpr(cf, pat)
		}
		caseScope := symtab.NewScope(symtab.ScopeBlock, switchScope)
		r.pushScope(caseScope)
		for _, stmt := range c.Body {
			r.resolveStmt(cf, stmt)
		}
		r.popScope()
	}
	r.popScope()
}
