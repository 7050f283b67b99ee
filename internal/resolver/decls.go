package resolver

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/collector"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/symtab"
)

// resolveField implements spec §4.4.1's Field rule: reject a mutable field
// on an immutable owner, resolve its initializer if present, infer its type
// from the initializer when no syntactic type was given, and mark the owner
// struct as carrying static fields.
func (r *Resolver) resolveField(cf *collector.CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.FieldDecl) {
	symID, ok := cf.SymbolOf(d)
	if !ok {
		return
	}
	sym := r.arena.Get(symID)
	if sym == nil {
		return
	}
	ownerSym := r.arena.Get(owner)

	if d.Mutability == ast.Mutable && ownerSym != nil && !ownerSym.StructMutable {
		r.report(cf.Filename, diag.ImmutableFieldMutableDecl(cf.Filename, spanOf(d), d.Name))
	}
	if d.Static && ownerSym != nil {
		ownerSym.HasStaticFields = true
	}

	if d.Init == nil {
		return
	}
	resolved := r.resolveExpr(cf, d.Init)
	sym.ConstantValue = resolved
	if d.Type == nil {
		sym.Type = resolved.Type
	}
}

// resolveFunctionLike implements spec §4.4.1's shared rule for Entry,
// Function, Constructor, Destructor, String, Cast, and Operator: push the
// body scope Collector Pass A already built plus the now-finalized symbol,
// resolve the body (statement block or expression form), pop both.
func (r *Resolver) resolveFunctionLike(cf *collector.CollectedFile, decl ast.Decl, params []ast.Param, exprBody ast.Expr, body *ast.BlockStmt) {
	symID, ok := cf.SymbolOf(decl)
	if !ok {
		return
	}
	sym := r.arena.Get(symID)
	if sym == nil {
		return
	}
	bodyScope, ok := cf.ScopeOf(decl)
	if !ok {
		return
	}

	r.pushScope(bodyScope)
	r.pushFunc(sym)
	if owner := r.arena.Get(sym.OwnerStruct); owner != nil {
		r.pushType(owner)
		defer r.popType()
	}

	switch {
	case exprBody != nil:
		resolved := r.resolveExpr(cf, exprBody)
		if sym.Result == nil {
			sym.Result = resolved.Type
		}
	case body != nil:
		r.resolveBlock(cf, body, bodyScope)
	}

	r.popFunc()
	r.popScope()

	_ = params // parameter symbols were already inserted into bodyScope during Collector Pass B
}
