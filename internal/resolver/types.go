package resolver

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/collector"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/symtab"
	"github.com/hassan/langcore/internal/types"
)

// resolveTypeExpr evaluates a syntactic type the way collector.ResolveType
// does for Pass B (same lookup order, same leaf cases), since the Resolver
// needs to evaluate a `var x: T` declared type too — a syntactic type the
// Collector's two passes never see because it lives inside a statement
// body, not a declaration header.
func (r *Resolver) resolveTypeExpr(cf *collector.CollectedFile, scope *symtab.Scope, syntax ast.TypeExpr) (types.Type, bool) {
	switch t := syntax.(type) {
	case *ast.BaseTypeExpr:
		id, ok := collector.LookupWithImports(cf, scope, t.Name)
		if !ok {
			r.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), t.Name))
			return nil, false
		}
		sym := r.arena.Resolve(id)
		if sym == nil {
			r.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), t.Name))
			return nil, false
		}
		switch sym.Kind {
		case symtab.KindTypeParameter:
			return types.GenericType{Param: sym.Name}, true
		case symtab.KindTypeNative, symtab.KindTypeStruct:
			return sym.Type, true
		default:
			r.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), t.Name))
			return nil, false
		}

	case *ast.GenericTypeExpr:
		base, ok := r.resolveTypeExpr(cf, scope, t.Base)
		if !ok {
			return nil, false
		}
		baseType, ok := base.(types.BaseType)
		if !ok {
			r.report(cf.Filename, diag.UnresolvedType(cf.Filename, spanOf(t), base.String()))
			return nil, false
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			arg, ok := r.resolveTypeExpr(cf, scope, a)
			if !ok {
				return nil, false
			}
			args[i] = arg
		}
		return types.BaseType{Name: baseType.Name, Args: args}, true

	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(t.Elements))
		for i, e := range t.Elements {
			el, ok := r.resolveTypeExpr(cf, scope, e)
			if !ok {
				return nil, false
			}
			elems[i] = el
		}
		return types.TupleType{Elements: elems}, true

	case *ast.MutableTypeExpr:
		inner, ok := r.resolveTypeExpr(cf, scope, t.Inner)
		if !ok {
			return nil, false
		}
		return types.MutableType{Inner: inner}, true

	case *ast.ArrayTypeExpr:
		inner, ok := r.resolveTypeExpr(cf, scope, t.Element)
		if !ok {
			return nil, false
		}
		return types.ArrayType{Element: inner}, true

	case *ast.NullableTypeExpr:
		inner, ok := r.resolveTypeExpr(cf, scope, t.Inner)
		if !ok {
			return nil, false
		}
		return types.NullableType{Inner: inner}, true

	case *ast.ReferenceTypeExpr:
		inner, ok := r.resolveTypeExpr(cf, scope, t.Inner)
		if !ok {
			return nil, false
		}
		return types.ReferenceType{Inner: inner, Immutable: t.Immutable}, true

	case *ast.LambdaTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			pt, ok := r.resolveTypeExpr(cf, scope, p)
			if !ok {
				return nil, false
			}
			params[i] = pt
		}
		var result types.Type
		if t.Result != nil {
			res, ok := r.resolveTypeExpr(cf, scope, t.Result)
			if !ok {
				return nil, false
			}
			result = res
		}
		return types.FunctionType{Params: params, Result: result}, true

	default:
		return nil, false
	}
}
