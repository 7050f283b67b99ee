package resolver

import (
	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/collector"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/symtab"
	"github.com/hassan/langcore/internal/types"
)

// ResolvedExpr is the tagged result spec §4.4.2 calls a "resolved
// expression": a Type plus an IsConstant flag. Sym/IsTypeRef are kept
// alongside for the Resolver's own internal bookkeeping (assignment-target
// validation, access-expression static/instance classification, call
// dispatch) — the spec only asks for the pair the public two fields carry.
type ResolvedExpr struct {
	Type       types.Type
	IsConstant bool

	// Sym is the symbol this expression ultimately named, when it names
	// one directly (an identifier or an access expression). nil for a
	// computed value (a binary/call/index result, a literal).
	Sym *symtab.Symbol

	// IsTypeRef is true when this expression is a bare reference to a
	// type symbol itself, not a value of that type — the distinction
	// Access expression resolution needs to classify static vs. instance
	// access (spec §4.4.2).
	IsTypeRef bool
}

// resolveExpr dispatches one expression per spec §4.4.2. Unhandled
// (deferred) expression kinds report NotYetImplemented and return a zero
// ResolvedExpr, matching the source's own `throw NotImplementedException`
// for the same subset (spec §9 Design Notes).
func (r *Resolver) resolveExpr(cf *collector.CollectedFile, expr ast.Expr) ResolvedExpr {
	switch e := expr.(type) {
	case *ast.TokenExpr:
		return r.resolveToken(cf, e)
	case *ast.GroupingExpr:
		return r.resolveExpr(cf, e.Inner)
	case *ast.TupleExpr:
		return r.resolveTuple(cf, e)
	case *ast.BinaryExpr:
		return r.resolveBinary(cf, e)
	case *ast.UnaryExpr:
		return r.resolveUnary(cf, e)
	case *ast.AssignmentExpr:
		return r.resolveAssignment(cf, e)
	case *ast.CallExpr:
		return r.resolveCall(cf, e)
	case *ast.AccessExpr:
		return r.resolveAccess(cf, e)
	case *ast.IndexExpr:
		return r.resolveIndex(cf, e)

	case *ast.ListExpr:
		return r.deferExpr(cf, e, "list expressions")
	case *ast.MapExpr:
		return r.deferExpr(cf, e, "map expressions")
	case *ast.InstantiationExpr:
		return r.deferExpr(cf, e, "generic instantiation")
	case *ast.CastExpr:
		return r.deferExpr(cf, e, "cast-as expressions")
	case *ast.LambdaExpr:
		return r.deferExpr(cf, e, "lambda expressions")
	case *ast.ConditionalExpr:
		return r.deferExpr(cf, e, "conditional expressions")
	case *ast.SwitchExpr:
		return r.deferExpr(cf, e, "switch expressions")
	case *ast.WithExpr:
		return r.deferExpr(cf, e, "with expressions")
	case *ast.InterpolatedStringExpr:
		return r.deferExpr(cf, e, "interpolated strings")

	default:
		return ResolvedExpr{}
	}
}

func (r *Resolver) deferExpr(cf *collector.CollectedFile, e ast.Expr, what string) ResolvedExpr {
	r.report(cf.Filename, diag.NotYetImplemented(cf.Filename, spanOf(e), what))
	return ResolvedExpr{}
}

// resolvedFromSymbol builds the ResolvedExpr a name lookup or access
// resolves to, once the underlying symbol is known.
func resolvedFromSymbol(sym *symtab.Symbol) ResolvedExpr {
	if sym == nil {
		return ResolvedExpr{}
	}
	switch sym.Kind {
	case symtab.KindTypeNative, symtab.KindTypeStruct, symtab.KindTypeParameter:
		return ResolvedExpr{Type: sym.Type, IsConstant: false, Sym: sym, IsTypeRef: true}
	case symtab.KindFunction, symtab.KindExternalFunction, symtab.KindStringConversion,
		symtab.KindConstructor, symtab.KindCastOverload, symtab.KindOperatorOverload:
		return ResolvedExpr{Type: functionTypeOf(sym), IsConstant: sym.Constant, Sym: sym}
	default:
		return ResolvedExpr{Type: sym.Type, IsConstant: sym.Constant, Sym: sym}
	}
}

func functionTypeOf(sym *symtab.Symbol) types.Type {
	params := make([]types.Type, len(sym.Params))
	for i, p := range sym.Params {
		params[i] = p.Type
	}
	return types.FunctionType{Params: params, Result: sym.Result}
}

func (r *Resolver) resolveToken(cf *collector.CollectedFile, t *ast.TokenExpr) ResolvedExpr {
	switch t.Kind {
	case ast.TokenLitChar:
		return ResolvedExpr{Type: types.BaseType{Name: "char"}, IsConstant: true}
	case ast.TokenLitBool:
		return ResolvedExpr{Type: types.BaseType{Name: "bool"}, IsConstant: true}
	case ast.TokenLitString:
		return ResolvedExpr{Type: types.BaseType{Name: "string"}, IsConstant: true}
	case ast.TokenLitNumber:
		return ResolvedExpr{Type: types.BaseType{Name: classifyNumberLiteral(t.Lexeme)}, IsConstant: true}
	case ast.TokenLitNil:
		r.report(cf.Filename, diag.NotYetImplemented(cf.Filename, spanOf(t), "nil literals"))
		return ResolvedExpr{}
	case ast.TokenIdent:
		return r.resolveIdentifier(cf, t)
	default:
		return ResolvedExpr{}
	}
}

// resolveIdentifier implements spec §4.4.2's identifier classification:
// `this` resolves against the enclosing-type stack instead of ordinary
// lookup; everything else goes through the same import-then-lexical
// lookup Collector Pass B uses, then is classified by symbol kind.
func (r *Resolver) resolveIdentifier(cf *collector.CollectedFile, t *ast.TokenExpr) ResolvedExpr {
	if t.Lexeme == "this" {
		return r.resolveThis(cf, t)
	}

	sym := r.lookupBareName(cf, t.Lexeme)
	if sym == nil {
		r.report(cf.Filename, diag.UnresolvedName(cf.Filename, spanOf(t), t.Lexeme))
		return ResolvedExpr{}
	}

	if r.isInstanceMember(sym) && r.staticContext() {
		r.report(cf.Filename, diag.StaticInstanceMismatch(cf.Filename, spanOf(t), t.Lexeme, true))
		return ResolvedExpr{}
	}
	return resolvedFromSymbol(sym)
}

// lookupBareName resolves a bare identifier against both single-definition
// names (collector.LookupWithImports, backed by Scope.Lookup) and the
// overload table (Scope.LookupOverloads): Function, External Function, and
// Operator Overload declarations are registered only via
// registerOverload/DefineOverload (collector/passb_functions.go), never
// Scope.Define, so a bare call to a declared free function would otherwise
// never resolve. Picks the first overload candidate, the same
// existence-only simplification resolveCall already makes for constructors.
func (r *Resolver) lookupBareName(cf *collector.CollectedFile, name string) *symtab.Symbol {
	if id, ok := collector.LookupWithImports(cf, r.scope(), name); ok {
		return r.arena.Resolve(id)
	}
	if overloads := r.scope().LookupOverloads(name); len(overloads) > 0 {
		return r.arena.Get(overloads[0])
	}
	return nil
}

// isInstanceMember reports whether sym is the kind of member a bare
// reference can only reach through an implicit `this` (spec §4.4.2's
// Field/Function/String-function static-context rule). External
// Functions are always accessible regardless of context.
func (r *Resolver) isInstanceMember(sym *symtab.Symbol) bool {
	switch sym.Kind {
	case symtab.KindField, symtab.KindFunction, symtab.KindStringConversion:
		return !sym.Static
	default:
		return false
	}
}

func (r *Resolver) resolveThis(cf *collector.CollectedFile, t *ast.TokenExpr) ResolvedExpr {
	if r.staticContext() {
		r.report(cf.Filename, diag.StaticInstanceMismatch(cf.Filename, spanOf(t), "this", true))
		return ResolvedExpr{}
	}
	owner := r.currentType()
	if owner == nil {
		r.report(cf.Filename, diag.UnresolvedName(cf.Filename, spanOf(t), "this"))
		return ResolvedExpr{}
	}
	return ResolvedExpr{Type: owner.Type, IsConstant: false, Sym: owner}
}

func (r *Resolver) resolveTuple(cf *collector.CollectedFile, e *ast.TupleExpr) ResolvedExpr {
	elems := make([]types.Type, len(e.Elements))
	constant := true
	ok := true
	for i, el := range e.Elements {
		resolved := r.resolveExpr(cf, el)
		if resolved.Type == nil {
			ok = false
			continue
		}
		elems[i] = resolved.Type
		constant = constant && resolved.IsConstant
	}
	if !ok {
		return ResolvedExpr{}
	}
	return ResolvedExpr{Type: types.TupleType{Elements: elems}, IsConstant: constant}
}

func (r *Resolver) resolveBinary(cf *collector.CollectedFile, e *ast.BinaryExpr) ResolvedExpr {
	left := r.resolveExpr(cf, e.Left)
	right := r.resolveExpr(cf, e.Right)
	if left.Type == nil || right.Type == nil {
		return ResolvedExpr{}
	}
	symbol, ok := operatorSymbol(e.Op)
	if !ok {
		return ResolvedExpr{}
	}
	ty, ok := r.resolveBinaryOperator(cf.Filename, spanOf(e), symbol, left.Type, right.Type)
	if !ok {
		return ResolvedExpr{}
	}
	return ResolvedExpr{Type: ty, IsConstant: left.IsConstant && right.IsConstant}
}

func (r *Resolver) resolveUnary(cf *collector.CollectedFile, e *ast.UnaryExpr) ResolvedExpr {
	operand := r.resolveExpr(cf, e.Operand)
	if operand.Type == nil {
		return ResolvedExpr{}
	}
	symbol, ok := operatorSymbol(e.Op)
	if !ok {
		return ResolvedExpr{}
	}
	ty, ok := r.resolveUnaryOperator(cf.Filename, spanOf(e), symbol, operand.Type)
	if !ok {
		return ResolvedExpr{}
	}
	return ResolvedExpr{Type: ty, IsConstant: operand.IsConstant}
}

// resolveAssignment implements spec §4.4.2's Assignment rule: validate the
// left side is a mutable target, then take the left side's type/constancy
// as the expression's own (spec §4.4.3: "an assignment whose left is
// constant").
func (r *Resolver) resolveAssignment(cf *collector.CollectedFile, e *ast.AssignmentExpr) ResolvedExpr {
	target := r.resolveExpr(cf, e.Target)
	r.resolveExpr(cf, e.Value)

	if !r.checkAssignTarget(cf, e.Target, target) {
		return ResolvedExpr{}
	}
	return ResolvedExpr{Type: target.Type, IsConstant: target.IsConstant}
}

// checkAssignTarget implements the per-kind validity rules spec §4.4.2
// lists: a mutable Field (inside its struct's constructor if not yet
// mutable-accessible otherwise), a mutable Var/Parameter are valid;
// Const, Function, Constructor, String-conversion, and External Function
// are all invalid, as is anything that didn't resolve to a symbol at all.
func (r *Resolver) checkAssignTarget(cf *collector.CollectedFile, targetExpr ast.Expr, target ResolvedExpr) bool {
	sym := target.Sym
	if sym == nil {
		r.report(cf.Filename, diag.InvalidAssignmentTarget(cf.Filename, spanOf(targetExpr)))
		return false
	}

	switch sym.Kind {
	case symtab.KindField:
		if sym.Mutability == int(ast.Mutable) {
			return true
		}
		if r.inOwnConstructor(sym.OwnerStruct) {
			return true
		}
		r.report(cf.Filename, diag.ImmutableFieldAssignment(cf.Filename, spanOf(targetExpr), sym.Name))
		return false

	case symtab.KindVar, symtab.KindParameter:
		if sym.Mutability == int(ast.Mutable) {
			return true
		}
		r.report(cf.Filename, diag.AssignToImmutable(cf.Filename, spanOf(targetExpr), sym.Name))
		return false

	default:
		r.report(cf.Filename, diag.AssignToImmutable(cf.Filename, spanOf(targetExpr), sym.Name))
		return false
	}
}

// inOwnConstructor reports whether the innermost enclosing function-like
// symbol is the constructor of ownerStruct, the one context an otherwise
// immutable field may still be assigned in (its own initialization).
func (r *Resolver) inOwnConstructor(ownerStruct symtab.SymbolID) bool {
	if len(r.funcs) == 0 {
		return false
	}
	fn := r.funcs[len(r.funcs)-1]
	return fn.Kind == symtab.KindConstructor && fn.OwnerStruct == ownerStruct
}

// resolveCall implements spec §4.4.2's call dispatch, keyed by the
// resolved callee's symbol kind rather than its syntactic shape.
func (r *Resolver) resolveCall(cf *collector.CollectedFile, e *ast.CallExpr) ResolvedExpr {
	for _, a := range e.Args {
		r.resolveExpr(cf, a)
	}
	callee := r.resolveExpr(cf, e.Callee)
	if callee.Sym == nil {
		r.report(cf.Filename, diag.NotCallable(cf.Filename, spanOf(e)))
		return ResolvedExpr{}
	}

	switch callee.Sym.Kind {
	case symtab.KindFunction, symtab.KindExternalFunction, symtab.KindStringConversion:
		return ResolvedExpr{Type: callee.Sym.Result, IsConstant: false}

	case symtab.KindTypeStruct:
		ctors := callee.Sym.OwnedScope.LookupOverloads("$constructor")
		if len(ctors) == 0 {
			r.report(cf.Filename, diag.NotCallable(cf.Filename, spanOf(e)))
			return ResolvedExpr{}
		}
		return ResolvedExpr{Type: callee.Sym.Type, IsConstant: false}

	default:
		r.report(cf.Filename, diag.NotCallable(cf.Filename, spanOf(e)))
		return ResolvedExpr{}
	}
}

// resolveAccess implements spec §4.4.2's Access expression rule: a type
// reference on the left makes this a static access (the member must be
// static, a constructor, or a string-conversion); any other left makes it
// an instance access (the member must be non-static), with a dedicated
// diagnostic suggesting `Type.symbol` on misuse.
func (r *Resolver) resolveAccess(cf *collector.CollectedFile, e *ast.AccessExpr) ResolvedExpr {
	target := r.resolveExpr(cf, e.Target)
	if target.Type == nil {
		return ResolvedExpr{}
	}

	owner := r.ownerStructSymbolForAccess(target)
	if owner == nil || owner.OwnedScope == nil {
		r.report(cf.Filename, diag.UnresolvedName(cf.Filename, spanOf(e), e.Name))
		return ResolvedExpr{}
	}

	sym := r.lookupMember(owner, e.Name)
	if sym == nil {
		r.report(cf.Filename, diag.UnresolvedName(cf.Filename, spanOf(e), e.Name))
		return ResolvedExpr{}
	}

	isStaticLike := sym.Static || sym.Kind == symtab.KindConstructor || sym.Kind == symtab.KindStringConversion

	if target.IsTypeRef {
		if !isStaticLike {
			r.report(cf.Filename, diag.StaticInstanceMismatch(cf.Filename, spanOf(e), e.Name, true))
			return ResolvedExpr{}
		}
	} else {
		if sym.Static {
			r.report(cf.Filename, diag.InstanceAccessOfStatic(cf.Filename, spanOf(e), e.Name, owner.Name))
			return ResolvedExpr{}
		}
	}

	return resolvedFromSymbol(sym)
}

func (r *Resolver) ownerStructSymbolForAccess(target ResolvedExpr) *symtab.Symbol {
	if target.IsTypeRef {
		return target.Sym
	}
	base, ok := target.Type.(types.BaseType)
	if !ok {
		return nil
	}
	return r.lookupTypeOwner(base.Name)
}

// lookupMember checks owner's own single-definition names first (fields,
// casts, the string conversion, ...), falling back to its overload table
// (methods/constructors/operators share that append-only list, spec §3.2).
func (r *Resolver) lookupMember(owner *symtab.Symbol, name string) *symtab.Symbol {
	if id, ok := owner.OwnedScope.LookupLocal(name); ok {
		return r.arena.Resolve(id)
	}
	if overloads := owner.OwnedScope.LookupOverloads(name); len(overloads) > 0 {
		return r.arena.Get(overloads[0])
	}
	return nil
}

// resolveIndex implements one of the two deferred-by-default kinds that are
// fully resolved (index and tuple, SPEC_FULL §3): the target must be an
// Array, the index should be
// integer-typed, and the result is the array's element type — grounded on
// the teacher's VisitIndexExpr (internal/semantic/expressions.go).
func (r *Resolver) resolveIndex(cf *collector.CollectedFile, e *ast.IndexExpr) ResolvedExpr {
	target := r.resolveExpr(cf, e.Target)
	index := r.resolveExpr(cf, e.Index)
	if target.Type == nil {
		return ResolvedExpr{}
	}

	arr, ok := target.Type.(types.ArrayType)
	if !ok {
		r.report(cf.Filename, diag.TypeMismatch(cf.Filename, spanOf(e.Target), "array", target.Type.String()))
		return ResolvedExpr{}
	}
	if index.Type != nil {
		base, ok := index.Type.(types.BaseType)
		if !ok || !types.IsIntegerType(base.Name) {
			r.report(cf.Filename, diag.TypeMismatch(cf.Filename, spanOf(e.Index), "integer", index.Type.String()))
		}
	}
	return ResolvedExpr{Type: arr.Element, IsConstant: false}
}
