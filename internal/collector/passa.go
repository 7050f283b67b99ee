package collector

import (
	"strings"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/symtab"
	"github.com/hassan/langcore/internal/types"
)

// CollectFileA runs Pass A (spec §4.3) over a single file: it resolves (or
// creates) the Module scope named by the file's own module declaration,
// then walks every top-level Decl inserting placeholder symbols and scopes.
// Independent across files except for the shared Module registry, so the
// caller may run this concurrently per file (SPEC_FULL §2).
func (c *Collector) CollectFileA(file *ast.File) *CollectedFile {
	scope := c.ctx.GlobalScope
	if file.Module != nil {
		scope = c.enterModulePath(file.Module)
	}

	cf := newCollectedFile(file, file.Filename, scope)
	for _, decl := range file.Decls {
		c.collectDeclA(cf, scope, symtab.NoSymbol, decl)
	}
	return cf
}

// enterModulePath resolves file's `module a.b.c` declaration to the
// innermost Module scope, creating one KindModule symbol per path segment
// the first time it's seen and reusing it on every later file that shares
// the prefix. Each segment's lookup-or-create is serialized by lockFor so
// two files collected concurrently under the same module never race to
// create the same segment twice (SPEC_FULL §2).
func (c *Collector) enterModulePath(mod *ast.ModuleDecl) *symtab.Scope {
	scope := c.ctx.GlobalScope
	prefix := ""
	for _, segment := range mod.Path {
		if prefix == "" {
			prefix = segment
		} else {
			prefix = prefix + "." + segment
		}

		mu := c.lockFor(prefix)
		mu.Lock()
		id, ok := scope.LookupTyped(c.ctx.Arena, segment, symtab.KindModule)
		if !ok {
			sym := c.ctx.Arena.New(segment, symtab.KindModule)
			sym.Pos = mod.Pos()
			sym.OwnedScope = symtab.NewScope(symtab.ScopeModule, scope)
			sym.OwnedScope.Owner = sym.ID
			scope.Define(segment, sym.ID)
			id = sym.ID
		}
		mu.Unlock()

		scope = c.ctx.Arena.Get(id).OwnedScope
	}
	return scope
}

// qualifiedName prefixes name with the dotted chain of enclosing Module
// names, so two structs named the same thing in different modules get
// distinct BaseType identities without the caller threading a path string
// through every call site.
func qualifiedName(arena *symtab.Arena, scope *symtab.Scope, name string) string {
	var parts []string
	for s := scope; s != nil && s.Kind == symtab.ScopeModule; s = s.Parent {
		if owner := arena.Get(s.Owner); owner != nil {
			parts = append([]string{owner.Name}, parts...)
		}
	}
	parts = append(parts, name)
	return strings.Join(parts, ".")
}

// collectDeclA dispatches one top-level or struct-member declaration to its
// Pass A handler. owner is the enclosing struct's symbol, or NoSymbol for
// declarations outside of any struct.
func (c *Collector) collectDeclA(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.StructDecl:
		c.collectStructA(cf, scope, d)
	case *ast.FieldDecl:
		c.collectFieldA(cf, scope, owner, d)
	case *ast.ConstDecl:
		c.collectConstA(cf, scope, owner, d)
	case *ast.DefineDecl:
		c.collectDefineA(cf, scope, owner, d)
	case *ast.EntryDecl:
		c.collectFunctionLikeA(cf, scope, owner, d)
	case *ast.FuncDecl:
		c.collectFunctionLikeA(cf, scope, owner, d)
	case *ast.ConstructorDecl:
		c.collectFunctionLikeA(cf, scope, owner, d)
	case *ast.DestructorDecl:
		c.collectFunctionLikeA(cf, scope, owner, d)
	case *ast.StringConvDecl:
		c.collectFunctionLikeA(cf, scope, owner, d)
	case *ast.CastDecl:
		c.collectFunctionLikeA(cf, scope, owner, d)
	case *ast.OperatorDecl:
		c.collectFunctionLikeA(cf, scope, owner, d)
	case *ast.ExternFuncDecl:
		// No body scope: like a Function but fully built in Pass B, where
		// its signature is registered straight into the overload set.
	}
}

// collectStructA creates the struct's symbol and member scope, then
// recurses into its members with this struct as their owner. Unlike
// function-like decls, a struct's symbol is finalized here in Pass A: its
// identity (SymbolID, StructID, BaseType name) never depends on anything
// Pass B discovers, and member declarations need the owner symbol to exist
// immediately to attach FieldIndex/OwnerStruct.
func (c *Collector) collectStructA(cf *CollectedFile, scope *symtab.Scope, d *ast.StructDecl) {
	if types.IsNativeTypeName(d.Name) {
		c.report(cf.Filename, diag.NativeTypeShadowed(cf.Filename, spanOf(d), d.Name))
		return
	}

	sym := c.ctx.Arena.New(d.Name, symtab.KindTypeStruct)
	sym.Pos = d.Pos()
	sym.Type = types.BaseType{Name: qualifiedName(c.ctx.Arena, scope, d.Name)}
	sym.StructMutable = d.Mutable
	sym.StructID = c.ctx.NextStructID()

	structScope := symtab.NewScope(symtab.ScopeStruct, scope)
	structScope.Owner = sym.ID
	sym.OwnedScope = structScope

	if _, ok := scope.Define(d.Name, sym.ID); !ok {
		c.report(cf.Filename, diag.DuplicateDeclaration(cf.Filename, spanOf(d), d.Name))
		return
	}
	cf.declScope[d] = structScope
	cf.declSym[d] = sym.ID

	for _, tp := range d.TypeParams {
		tpSym := c.ctx.Arena.New(tp.Name, symtab.KindTypeParameter)
		tpSym.Pos = d.Pos()
		structScope.Define(tp.Name, tpSym.ID)
		sym.TypeParams = append(sym.TypeParams, tp.Name)
	}

	for _, member := range d.Members {
		c.collectDeclA(cf, structScope, sym.ID, member)
	}
}

// collectFieldA inserts a Field symbol, or defers to collectFieldConstA for
// a field-position `const` declaration (spec §3.2: constants declared at
// field position are modeled as Const symbols, not Field symbols).
func (c *Collector) collectFieldA(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.FieldDecl) {
	if d.Mutability == ast.Const {
		c.collectFieldConstA(cf, scope, owner, d)
		return
	}
	if _, ok := scope.LookupLocal(d.Name); ok {
		c.report(cf.Filename, diag.DuplicateMember(cf.Filename, spanOf(d), d.Name, ownerName(c.ctx.Arena, owner)))
		return
	}

	sym := c.ctx.Arena.New(d.Name, symtab.KindField)
	sym.Pos = d.Pos()
	sym.Mutability = int(d.Mutability)
	sym.Static = d.Static
	sym.OwnerStruct = owner

	// The mutable-field-on-immutable-struct check (spec §4.4.1 "Field") is
	// the Resolver's job, not Pass A's: it reads sym.StructMutable off the
	// already-inserted owner symbol once the Resolver pushes it, so it's
	// reported exactly once and against the phase the spec's testable
	// properties (§8 item 8) attribute it to.

	if !d.Static {
		if ownerSym := c.ctx.Arena.Get(owner); ownerSym != nil {
			sym.FieldIndex = ownerSym.FieldCount
			ownerSym.FieldCount++
		}
	}

	scope.Define(d.Name, sym.ID)
	cf.declSym[d] = sym.ID
}

// collectFieldConstA handles `const` declared at field position: always
// static and compile-time constant, never assigned a FieldIndex.
func (c *Collector) collectFieldConstA(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.FieldDecl) {
	if _, ok := scope.LookupLocal(d.Name); ok {
		c.report(cf.Filename, diag.DuplicateMember(cf.Filename, spanOf(d), d.Name, ownerName(c.ctx.Arena, owner)))
		return
	}
	sym := c.ctx.Arena.New(d.Name, symtab.KindConst)
	sym.Pos = d.Pos()
	sym.Static = true
	sym.Constant = true
	sym.OwnerStruct = owner
	scope.Define(d.Name, sym.ID)
	cf.declSym[d] = sym.ID
}

func (c *Collector) collectConstA(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.ConstDecl) {
	if _, ok := scope.LookupLocal(d.Name); ok {
		c.report(cf.Filename, diag.DuplicateDeclaration(cf.Filename, spanOf(d), d.Name))
		return
	}
	sym := c.ctx.Arena.New(d.Name, symtab.KindConst)
	sym.Pos = d.Pos()
	sym.Static = true
	sym.Constant = true
	sym.OwnerStruct = owner
	scope.Define(d.Name, sym.ID)
	cf.declSym[d] = sym.ID
}

func (c *Collector) collectDefineA(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, d *ast.DefineDecl) {
	if _, ok := scope.LookupLocal(d.Name); ok {
		c.report(cf.Filename, diag.DuplicateDeclaration(cf.Filename, spanOf(d), d.Name))
		return
	}
	sym := c.ctx.Arena.New(d.Name, symtab.KindDef)
	sym.Pos = d.Pos()
	sym.Constant = true
	sym.OwnerStruct = owner
	scope.Define(d.Name, sym.ID)
	cf.declSym[d] = sym.ID
}

// collectFunctionLikeA creates the body scope for an Entry, Function,
// Constructor, Destructor, StringConversion, Cast, or Operator declaration
// and records it against d, without finalizing a symbol: function-like
// symbols aren't known to be well-formed until Pass B resolves their
// signature, so registering one here would let the Resolver see a symbol
// with no Params/Result yet. decl-body statements (including local Var
// placeholders) are handled entirely by the Resolver, which builds nested
// block scopes on the fly during its single combined declare-and-resolve
// walk — forward references only matter for top-level/member names, never
// for locals, so Pass A has no reason to pre-walk bodies.
func (c *Collector) collectFunctionLikeA(cf *CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, decl ast.Decl) {
	bodyScope := symtab.NewScope(symtab.ScopeFunction, scope)
	bodyScope.Owner = owner
	cf.declScope[decl] = bodyScope
}

func ownerName(arena *symtab.Arena, owner symtab.SymbolID) string {
	if sym := arena.Get(owner); sym != nil {
		return sym.Name
	}
	return "<module scope>"
}
