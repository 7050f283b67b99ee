package collector

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/symtab"
	"github.com/hassan/langcore/internal/types"
)

// CollectFileB runs Pass B (spec §4.3) over a file Pass A already
// collected: it builds the file's own import table, then walks every
// top-level declaration evaluating syntactic types, completing function-like
// signatures, and registering overloads. Must run strictly after every
// file's Pass A has completed (SPEC_FULL §2), since imports may name
// symbols Pass A inserted while collecting a different file.
func (c *Collector) CollectFileB(cf *CollectedFile) {
	cf.Imports = make(map[string]symtab.SymbolID)
	for _, imp := range cf.File.Imports {
		c.resolveImport(cf, imp)
	}

	for _, decl := range cf.File.Decls {
		c.collectDeclB(cf, cf.Scope, symtab.NoSymbol, decl)
	}
}

// resolveImport descends the imported module's path and merges whatever it
// names into cf's own import table, per the three shapes spec §4.3
// distinguishes.
func (c *Collector) resolveImport(cf *CollectedFile, imp *ast.ImportDecl) {
	scope := c.ctx.GlobalScope
	for _, segment := range imp.Path {
		id, ok := scope.LookupTyped(c.ctx.Arena, segment, symtab.KindModule)
		if !ok {
			c.report(cf.Filename, diag.ModuleNotFound(cf.Filename, spanOf(imp), segment))
			return
		}
		scope = c.ctx.Arena.Get(id).OwnedScope
	}

	switch {
	case imp.Wildcard:
		names := scope.Snapshot()
		if imp.Alias != "" {
			grouping := c.ctx.Arena.New(imp.Alias, symtab.KindImportGrouping)
			grouping.Pos = imp.Pos()
			grouping.OwnedScope = symtab.NewScope(symtab.ScopeModule, nil)
			for name, id := range names {
				grouping.OwnedScope.Define(name, id)
			}
			cf.Imports[imp.Alias] = grouping.ID
			return
		}
		for name, id := range names {
			cf.Imports[name] = id
		}

	case imp.Items != nil:
		var grouping *symtab.Symbol
		if imp.Alias != "" {
			grouping = c.ctx.Arena.New(imp.Alias, symtab.KindImportGrouping)
			grouping.Pos = imp.Pos()
			grouping.OwnedScope = symtab.NewScope(symtab.ScopeModule, nil)
		}
		for _, item := range imp.Items {
			id, ok := scope.LookupLocal(item.Name)
			if !ok {
				c.report(cf.Filename, diag.UnresolvedImport(cf.Filename, spanOf(imp), item.Name))
				continue
			}
			key := item.Name
			target := id
			if item.Alias != "" {
				alias := c.ctx.Arena.New(item.Alias, symtab.KindAliased)
				alias.Pos = imp.Pos()
				alias.AliasOf = id
				key = item.Alias
				target = alias.ID
			}
			if grouping != nil {
				grouping.OwnedScope.Define(key, target)
			} else {
				cf.Imports[key] = target
			}
		}
		if grouping != nil {
			cf.Imports[imp.Alias] = grouping.ID
		}

	default:
		name := imp.Path[len(imp.Path)-1]
		id, ok := scope.LookupLocal(name)
		if !ok {
			c.report(cf.Filename, diag.UnresolvedImport(cf.Filename, spanOf(imp), name))
			return
		}
		key := name
		if imp.Alias != "" {
			alias := c.ctx.Arena.New(imp.Alias, symtab.KindAliased)
			alias.Pos = imp.Pos()
			alias.AliasOf = id
			cf.Imports[imp.Alias] = alias.ID
			return
		}
		cf.Imports[key] = id
	}
}

// lookupWithImports checks the file's own import table before falling back
// to ordinary lexical lookup, since an imported name is visible only to the
// file that imported it, never written into the shared module scope.
func (c *Collector) lookupWithImports(cf *CollectedFile, scope *symtab.Scope, name string) (symtab.SymbolID, bool) {
	return LookupWithImports(cf, scope, name)
}

// LookupWithImports is lookupWithImports without a *Collector receiver, so
// the Resolver can reuse the exact same name-resolution order (import table
// first, then lexical scope) when it re-enters a file's declarations.
func LookupWithImports(cf *CollectedFile, scope *symtab.Scope, name string) (symtab.SymbolID, bool) {
	if id, ok := cf.Imports[name]; ok {
		return id, true
	}
	return scope.Lookup(name)
}

// ResolveType evaluates a syntactic type expression to a semantic Type,
// short-circuiting (returning false) the instant any leaf fails to resolve,
// per spec §4.3's ResolveType contract.
func (c *Collector) ResolveType(cf *CollectedFile, scope *symtab.Scope, syntax ast.TypeExpr) (types.Type, bool) {
	switch t := syntax.(type) {
	case *ast.BaseTypeExpr:
		id, ok := c.lookupWithImports(cf, scope, t.Name)
		if !ok {
			c.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), t.Name))
			return nil, false
		}
		sym := c.ctx.Arena.Resolve(id)
		if sym == nil {
			c.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), t.Name))
			return nil, false
		}
		switch sym.Kind {
		case symtab.KindTypeParameter:
			return types.GenericType{Param: sym.Name}, true
		case symtab.KindTypeNative, symtab.KindTypeStruct:
			return sym.Type, true
		default:
			c.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), t.Name))
			return nil, false
		}

	case *ast.GenericTypeExpr:
		base, ok := c.ResolveType(cf, scope, t.Base)
		if !ok {
			return nil, false
		}
		baseType, ok := base.(types.BaseType)
		if !ok {
			c.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), base.String()))
			return nil, false
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			arg, ok := c.ResolveType(cf, scope, a)
			if !ok {
				return nil, false
			}
			args[i] = arg
		}
		return types.BaseType{Name: baseType.Name, Args: args}, true

	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(t.Elements))
		for i, e := range t.Elements {
			el, ok := c.ResolveType(cf, scope, e)
			if !ok {
				return nil, false
			}
			elems[i] = el
		}
		return types.TupleType{Elements: elems}, true

	case *ast.MutableTypeExpr:
		inner, ok := c.ResolveType(cf, scope, t.Inner)
		if !ok {
			return nil, false
		}
		return types.MutableType{Inner: inner}, true

	case *ast.ArrayTypeExpr:
		inner, ok := c.ResolveType(cf, scope, t.Element)
		if !ok {
			return nil, false
		}
		return types.ArrayType{Element: inner}, true

	case *ast.NullableTypeExpr:
		inner, ok := c.ResolveType(cf, scope, t.Inner)
		if !ok {
			return nil, false
		}
		return types.NullableType{Inner: inner}, true

	case *ast.ReferenceTypeExpr:
		inner, ok := c.ResolveType(cf, scope, t.Inner)
		if !ok {
			return nil, false
		}
		return types.ReferenceType{Inner: inner, Immutable: t.Immutable}, true

	case *ast.LambdaTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			pt, ok := c.ResolveType(cf, scope, p)
			if !ok {
				return nil, false
			}
			params[i] = pt
		}
		var result types.Type
		if t.Result != nil {
			r, ok := c.ResolveType(cf, scope, t.Result)
			if !ok {
				return nil, false
			}
			result = r
		}
		return types.FunctionType{Params: params, Result: result}, true

	default:
		return nil, false
	}
}

// collectDeclB is Pass B's declaration walk, mirroring collectDeclA's
// dispatch but operating on the symbols and scopes Pass A already produced.
func (c *Collector) collectDeclB(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.StructDecl:
		sym := c.ctx.Arena.Get(cf.declSym[d])
		if sym == nil {
			return
		}
		structScope := cf.declScope[d]
		for _, member := range d.Members {
			c.collectDeclB(cf, structScope, sym.ID, member)
		}

	case *ast.FieldDecl:
		c.resolveFieldB(cf, scope, d)

	case *ast.ConstDecl:
		if sym := c.ctx.Arena.Get(cf.declSym[d]); sym != nil && d.Type != nil {
			if ty, ok := c.ResolveType(cf, scope, d.Type); ok {
				sym.Type = ty
			}
		}

	case *ast.DefineDecl:
		if sym := c.ctx.Arena.Get(cf.declSym[d]); sym != nil {
			if ty, ok := c.ResolveType(cf, scope, d.Type); ok {
				sym.Type = ty
			}
		}

	case *ast.EntryDecl:
		c.finalizeEntry(cf, scope, owner, d)
	case *ast.FuncDecl:
		c.finalizeFunc(cf, scope, owner, d)
	case *ast.ConstructorDecl:
		c.finalizeConstructor(cf, scope, owner, d)
	case *ast.DestructorDecl:
		c.finalizeDestructor(cf, scope, owner, d)
	case *ast.StringConvDecl:
		c.finalizeStringConv(cf, scope, owner, d)
	case *ast.CastDecl:
		c.finalizeCast(cf, scope, owner, d)
	case *ast.OperatorDecl:
		c.finalizeOperator(cf, scope, owner, d)
	case *ast.ExternFuncDecl:
		c.finalizeExternFunc(cf, scope, owner, d)
	}
}

func (c *Collector) resolveFieldB(cf *CollectedFile, scope *symtab.Scope, d *ast.FieldDecl) {
	sym := c.ctx.Arena.Get(cf.declSym[d])
	if sym == nil {
		return
	}
	if d.Type == nil {
		return // inferred from the initializer by the Resolver
	}
	ty, ok := c.ResolveType(cf, scope, d.Type)
	if !ok {
		return
	}
	sym.Type = ty
}
