// Package resolver implements the Resolver (spec §4.4): the pass that walks
// a Collector's collected tree node by node, producing resolved expressions
// (a type plus an isConstant flag) and enforcing the checks that need a
// fully populated symbol/scope graph — mutability, constancy, static-vs-
// instance context, operator/cast binding — that the Collector's two passes
// deliberately left for this single combined walk.
//
// Generalizes the teacher's two-visitor split (internal/semantic/analyzer.go
// plus statements.go/expressions.go: a void StatementVisitor and a
// typed-return ExpressionVisitor) into the shape spec §9's Design Notes
// recommend: one tagged ResolvedExpr sum type and plain functions that
// switch on the AST node's concrete type, rather than two parallel visitor
// interfaces.
package resolver

import (
	"sync"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/collector"
	"github.com/hassan/langcore/internal/config"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/symtab"
)

// Resolver drives the declare-and-check walk over one or more Collector
// CollectedFiles sharing a config.AnalysisContext. Not safe for concurrent
// use on the same Resolver: spec §5 keeps the Resolver strictly sequential
// across files, unlike Collector Pass A/B's per-file fan-out.
type Resolver struct {
	ctx   *config.AnalysisContext
	arena *symtab.Arena

	errMu      sync.Mutex
	errs       []diag.Diagnostic
	fileCounts map[string]int
	fileCapped map[string]bool

	scopes []*symtab.Scope     // scope stack; bottom is the file's own scope (its module scope, or the global scope)
	types  []*symtab.Symbol    // enclosing-type stack, for `this` and static/instance decisions
	funcs  []*symtab.Symbol    // enclosing function-like stack
}

func New(ctx *config.AnalysisContext) *Resolver {
	return &Resolver{
		ctx:        ctx,
		arena:      ctx.Arena,
		fileCounts: make(map[string]int),
		fileCapped: make(map[string]bool),
	}
}

// Errors returns every diagnostic the Resolver has reported so far, across
// every file it has resolved. Kept as its own accumulator (not shared with
// Collector.Errors) per spec §6.3's "three diagnostic lists".
func (r *Resolver) Errors() []diag.Diagnostic {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	out := make([]diag.Diagnostic, len(r.errs))
	copy(out, r.errs)
	return out
}

func (r *Resolver) report(filename string, d diag.Diagnostic) {
	r.errMu.Lock()
	defer r.errMu.Unlock()
	max := r.ctx.Config.MaxDiagnosticsPerFile
	if max > 0 && r.fileCounts[filename] >= max {
		if !r.fileCapped[filename] {
			r.fileCapped[filename] = true
			r.errs = append(r.errs, diag.MaxDiagnosticsExceeded(filename, max))
		}
		return
	}
	r.fileCounts[filename]++
	r.errs = append(r.errs, d)
}

func (r *Resolver) pushScope(s *symtab.Scope) { r.scopes = append(r.scopes, s) }
func (r *Resolver) popScope()                 { r.scopes = r.scopes[:len(r.scopes)-1] }
func (r *Resolver) scope() *symtab.Scope      { return r.scopes[len(r.scopes)-1] }

func (r *Resolver) pushType(sym *symtab.Symbol) { r.types = append(r.types, sym) }
func (r *Resolver) popType()                    { r.types = r.types[:len(r.types)-1] }

// currentType returns the struct the innermost enclosing Struct body
// belongs to, used to resolve `this` and to classify static/instance member
// access; nil outside of any struct.
func (r *Resolver) currentType() *symtab.Symbol {
	if len(r.types) == 0 {
		return nil
	}
	return r.types[len(r.types)-1]
}

func (r *Resolver) pushFunc(sym *symtab.Symbol) { r.funcs = append(r.funcs, sym) }
func (r *Resolver) popFunc()                    { r.funcs = r.funcs[:len(r.funcs)-1] }

// staticContext reports whether code at the current point in the walk runs
// without an implicit `this`: true outside of any function-like body, or
// inside one whose own symbol is static (spec §4.4's staticContext rule).
func (r *Resolver) staticContext() bool {
	if len(r.funcs) == 0 {
		return true
	}
	return r.funcs[len(r.funcs)-1].Static
}

// ResolveFile runs the Resolver over one file Collector Pass A/B has
// already produced, per spec §4.4.1's Program rule: push the file's module
// scope (if any), resolve each top-level declaration under its own
// scope-depth guard, pop.
func (r *Resolver) ResolveFile(cf *collector.CollectedFile) {
	r.pushScope(cf.Scope)
	for _, decl := range cf.File.Decls {
		r.resolveTopDecl(cf, decl)
	}
	r.popScope()
}

// resolveTopDecl wraps one top-level declaration's resolution with spec
// §4.5's scope-stack invariant: the depth on exit must equal the depth on
// entry, even after a reported error, or a bug-class diagnostic fires and
// the stack is forcibly restored. This is the Go-idiomatic replacement spec
// §9's Design Notes call for in place of exception-driven stack unwinding:
// explicit scope-depth restoration via defer rather than RAII or a
// try/except block.
func (r *Resolver) resolveTopDecl(cf *collector.CollectedFile, decl ast.Decl) {
	depth := len(r.scopes)
	defer func() {
		if len(r.scopes) != depth {
			r.report(cf.Filename, diag.ScopeStackUnbalanced(cf.Filename))
			r.scopes = r.scopes[:depth]
		}
	}()
	r.resolveDecl(cf, r.scope(), symtab.NoSymbol, decl)
}

// resolveDecl is shared between top-level declarations and struct members,
// mirroring collector's collectDeclA/collectDeclB dual-owner dispatch.
func (r *Resolver) resolveDecl(cf *collector.CollectedFile, scope *symtab.Scope, owner symtab.SymbolID, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.StructDecl:
		r.resolveStruct(cf, d)
	case *ast.FieldDecl:
		r.resolveField(cf, scope, owner, d)
	case *ast.ConstDecl:
		r.resolveConstDecl(cf, d)
	case *ast.DefineDecl:
		// Passthrough: its type was already set in Pass B (spec §4.4.1 Def).
	case *ast.EntryDecl:
		r.resolveFunctionLike(cf, d, d.Params, nil, d.Body)
	case *ast.FuncDecl:
		r.resolveFunctionLike(cf, d, d.Params, d.ExprBody, d.Body)
	case *ast.ConstructorDecl:
		r.resolveFunctionLike(cf, d, d.Params, nil, d.Body)
	case *ast.DestructorDecl:
		r.resolveFunctionLike(cf, d, nil, nil, d.Body)
	case *ast.StringConvDecl:
		r.resolveFunctionLike(cf, d, nil, d.ExprBody, d.Body)
	case *ast.CastDecl:
		r.resolveFunctionLike(cf, d, nil, d.ExprBody, d.Body)
	case *ast.OperatorDecl:
		r.resolveFunctionLike(cf, d, d.Params, d.ExprBody, d.Body)
	case *ast.ExternFuncDecl:
		// No body scope, nothing further to resolve.
	}
}

func (r *Resolver) resolveStruct(cf *collector.CollectedFile, d *ast.StructDecl) {
	symID, ok := cf.SymbolOf(d)
	if !ok {
		return
	}
	sym := r.arena.Get(symID)
	if sym == nil {
		return
	}
	structScope, ok := cf.ScopeOf(d)
	if !ok {
		return
	}
	r.pushScope(structScope)
	r.pushType(sym)
	for _, member := range d.Members {
		r.resolveDecl(cf, structScope, sym.ID, member)
	}
	r.popType()
	r.popScope()
}

func (r *Resolver) resolveConstDecl(cf *collector.CollectedFile, d *ast.ConstDecl) {
	symID, ok := cf.SymbolOf(d)
	if !ok {
		return
	}
	sym := r.arena.Get(symID)
	if sym == nil || d.Init == nil {
		return
	}
	resolved := r.resolveExpr(cf, d.Init)
	if !resolved.IsConstant {
		r.report(cf.Filename, diag.ConstantInitializerNotConstant(cf.Filename, spanOf(d), d.Name))
	}
	sym.ConstantValue = resolved
}

func spanOf(n ast.Node) lexer.Span {
	return lexer.Span{Start: n.Pos(), End: n.End()}
}
