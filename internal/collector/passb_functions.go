package collector

import (
	"fmt"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/symtab"
	"github.com/hassan/langcore/internal/types"
)

// buildFunctionLike resolves one function-like declaration's signature
// against the body scope Pass A already created for it: type parameters,
// parameters (enforcing variadic-last, variadic-must-be-array, and
// defaults-must-trail), and return type, synthesizing a `this` Parameter
// entry for Constructor/StringConversion/Destructor per spec §4.3. Returns
// nil only if Pass A never recorded a body scope for decl, which would be
// an internal inconsistency between the two passes.
func (c *Collector) buildFunctionLike(
	cf *CollectedFile,
	declScope *symtab.Scope,
	owner symtab.SymbolID,
	decl ast.Decl,
	kind symtab.Kind,
	name string,
	typeParams []ast.TypeParam,
	params []ast.Param,
	resultExpr ast.TypeExpr,
	static bool,
	synthesizeThis bool,
) *symtab.Symbol {
	bodyScope, ok := cf.declScope[decl]
	if !ok {
		c.report(cf.Filename, diag.ScopeStackUnbalanced(cf.Filename))
		return nil
	}

	sym := c.ctx.Arena.New(name, kind)
	sym.Pos = decl.Pos()
	sym.Static = static
	sym.OwnerStruct = owner
	bodyScope.Owner = sym.ID

	for _, tp := range typeParams {
		tpSym := c.ctx.Arena.New(tp.Name, symtab.KindTypeParameter)
		tpSym.Pos = decl.Pos()
		bodyScope.Define(tp.Name, tpSym.ID)
		sym.TypeParams = append(sym.TypeParams, tp.Name)
	}

	if synthesizeThis {
		ownerSym := c.ctx.Arena.Get(owner)
		var ownerType types.Type
		if ownerSym != nil {
			ownerType = ownerSym.Type
		}
		sym.Params = append(sym.Params, symtab.Param{Name: "this", Type: types.ReferenceType{Inner: ownerType}})
	}

	sawDefault := false
	for i, p := range params {
		if p.Variadic && i != len(params)-1 {
			c.report(cf.Filename, diag.VariadicNotLast(cf.Filename, spanOf(decl), p.Name))
		}
		if p.Default != nil {
			sawDefault = true
		} else if sawDefault {
			c.report(cf.Filename, diag.DefaultParameterOrder(cf.Filename, spanOf(decl), p.Name))
		}

		ty, ok := c.ResolveType(cf, bodyScope, p.Type)
		if !ok {
			continue
		}
		if p.Variadic {
			if _, isArray := ty.(types.ArrayType); !isArray {
				c.report(cf.Filename, diag.VariadicNotArray(cf.Filename, spanOf(decl), p.Name))
			}
		}

		paramSym := c.ctx.Arena.New(p.Name, symtab.KindParameter)
		paramSym.Pos = decl.Pos()
		paramSym.Type = ty
		bodyScope.Define(p.Name, paramSym.ID)
		sym.Params = append(sym.Params, symtab.Param{Name: p.Name, Type: ty, Variadic: p.Variadic})
	}

	if resultExpr != nil {
		if ty, ok := c.ResolveType(cf, bodyScope, resultExpr); ok {
			sym.Result = ty
		}
	}

	cf.declSym[decl] = sym.ID
	return sym
}

// registerOverload implements spec §4.3's "overload registration" bullet:
// look up key's existing overload set in scope; if sym's signature matches
// any of them, report a duplicate and drop sym, else append it.
func (c *Collector) registerOverload(cf *CollectedFile, scope *symtab.Scope, key string, sym *symtab.Symbol) {
	for _, id := range scope.LookupOverloads(key) {
		other := c.ctx.Arena.Get(id)
		if other == nil {
			continue
		}
		if SignatureMatches(sym.Params, other.Params) {
			c.report(cf.Filename, diag.DuplicateSignature(cf.Filename, lexer.Span{Start: sym.Pos, End: sym.Pos}, sym.Name))
			return
		}
	}
	scope.DefineOverload(key, sym.ID)
}

func (c *Collector) finalizeEntry(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.EntryDecl) {
	sym := c.buildFunctionLike(cf, scope, owner, d, symtab.KindEntry, "$entry", nil, d.Params, nil, true, false)
	if sym == nil {
		return
	}
	if _, ok := c.ctx.GlobalScope.Define("$entry", sym.ID); !ok {
		c.report(cf.Filename, diag.DuplicateDeclaration(cf.Filename, spanOf(d), "entry"))
	}
}

func (c *Collector) finalizeFunc(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.FuncDecl) {
	sym := c.buildFunctionLike(cf, scope, owner, d, symtab.KindFunction, d.Name, d.TypeParams, d.Params, d.Result, d.Static, false)
	if sym == nil {
		return
	}
	c.registerOverload(cf, scope, d.Name, sym)
}

func (c *Collector) finalizeConstructor(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.ConstructorDecl) {
	sym := c.buildFunctionLike(cf, scope, owner, d, symtab.KindConstructor, "$constructor", nil, d.Params, nil, false, true)
	if sym == nil {
		return
	}
	c.registerOverload(cf, scope, "$constructor", sym)
}

func (c *Collector) finalizeDestructor(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.DestructorDecl) {
	sym := c.buildFunctionLike(cf, scope, owner, d, symtab.KindDestructor, "$destructor", nil, nil, nil, false, true)
	if sym == nil {
		return
	}
	if _, ok := scope.Define("$destructor", sym.ID); !ok {
		c.report(cf.Filename, diag.DuplicateMember(cf.Filename, spanOf(d), "destructor", ownerName(c.ctx.Arena, owner)))
	}
}

func (c *Collector) finalizeStringConv(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.StringConvDecl) {
	sym := c.buildFunctionLike(cf, scope, owner, d, symtab.KindStringConversion, "$string", nil, nil, nil, false, true)
	if sym == nil {
		return
	}
	if stringID, ok := c.ctx.GlobalScope.LookupTyped(c.ctx.Arena, "string", symtab.KindTypeNative); ok {
		sym.Result = c.ctx.Arena.Get(stringID).Type
	}
	if _, ok := scope.Define("$string", sym.ID); !ok {
		c.report(cf.Filename, diag.DuplicateMember(cf.Filename, spanOf(d), "string conversion", ownerName(c.ctx.Arena, owner)))
	}
}

// finalizeCast registers a cast under a key composed from its
// explicit/implicit flag and resolved return type rather than through
// registerOverload: a Cast's only real parameter is the implicit receiver,
// identical across every cast on a type, so SignatureMatches (which ignores
// return type entirely) could never tell two casts to different targets
// apart. Keying by (explicit, result) instead makes Scope.Define itself the
// duplicate check, matching spec §3.2's "name generated from the tuple ...
// so duplicates collide in the scope table".
func (c *Collector) finalizeCast(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.CastDecl) {
	sym := c.buildFunctionLike(cf, scope, owner, d, symtab.KindCastOverload, "$cast", nil, nil, d.Result, false, true)
	if sym == nil {
		return
	}
	sym.Explicit = d.Explicit
	if sym.Result == nil {
		return
	}
	key := fmt.Sprintf("$cast_%t_%s", d.Explicit, sym.Result.String())
	if _, ok := scope.Define(key, sym.ID); !ok {
		c.report(cf.Filename, diag.DuplicateSignature(cf.Filename, spanOf(d), "cast"))
	}
}

func (c *Collector) finalizeOperator(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.OperatorDecl) {
	sym := c.buildFunctionLike(cf, scope, owner, d, symtab.KindOperatorOverload, "$operator_"+d.Symbol, nil, d.Params, d.Result, false, false)
	if sym == nil {
		return
	}
	c.registerOverload(cf, scope, d.Symbol, sym)
}

func (c *Collector) finalizeExternFunc(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.ExternFuncDecl) {
	sym := c.ctx.Arena.New(d.Name, symtab.KindExternalFunction)
	sym.Pos = d.Pos()
	sym.Static = true
	sym.OwnerStruct = owner

	for _, p := range d.Params {
		ty, ok := c.ResolveType(cf, scope, p.Type)
		if !ok {
			continue
		}
		sym.Params = append(sym.Params, symtab.Param{Name: p.Name, Type: ty, Variadic: p.Variadic})
	}
	if d.Result != nil {
		if ty, ok := c.ResolveType(cf, scope, d.Result); ok {
			sym.Result = ty
		}
	}

	cf.declSym[d] = sym.ID
	c.registerOverload(cf, scope, d.Name, sym)
}
