// Package collector implements the Collector (spec §4.3): the two-pass
// walk that turns a parsed ast.File into scopes and placeholder symbols
// (Pass A), then resolves imports and completes every signature against
// those symbols (Pass B). Generalizes the teacher's single-pass
// `declareDecl` + `Accept` split (internal/semantic/analyzer.go) into two
// properly separated phases so cross-file imports and overload signatures
// can be resolved after every file's declarations exist.
package collector

import (
	"sync"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/config"
	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/symtab"
)

// CollectedFile is the per-file shadow tree spec §3.4 describes: the AST
// unchanged, plus the scope and symbol each declaration produced, so the
// Resolver can walk a Decl's body without repeating any of this lookup.
type CollectedFile struct {
	File     *ast.File
	Filename string

	// Scope is where the file's top-level declarations live: the
	// innermost Module scope on the file's module path, or the global
	// scope if the file has no module declaration.
	Scope *symtab.Scope

	// Imports is this file's own import table (spec §4.3), filled during
	// Pass B. Nil until Pass B has run for this file.
	Imports map[string]symtab.SymbolID

	// declScope/declSym record, per top-level or struct-member Decl, the
	// scope its body was collected into and the symbol it produced.
	// declScope is set during Pass A; declSym is finalized during Pass B,
	// since Pass A only inserts placeholders for function-like decls.
	declScope map[ast.Decl]*symtab.Scope
	declSym   map[ast.Decl]symtab.SymbolID
}

func newCollectedFile(file *ast.File, filename string, scope *symtab.Scope) *CollectedFile {
	return &CollectedFile{
		File:      file,
		Filename:  filename,
		Scope:     scope,
		declScope: make(map[ast.Decl]*symtab.Scope),
		declSym:   make(map[ast.Decl]symtab.SymbolID),
	}
}

// ScopeOf returns the scope Pass A recorded for d: its body scope for a
// function-like decl, its member scope for a struct.
func (cf *CollectedFile) ScopeOf(d ast.Decl) (*symtab.Scope, bool) {
	s, ok := cf.declScope[d]
	return s, ok
}

// SymbolOf returns the symbol Pass B finalized for d.
func (cf *CollectedFile) SymbolOf(d ast.Decl) (symtab.SymbolID, bool) {
	id, ok := cf.declSym[d]
	return id, ok
}

// Collector drives both passes of spec §4.3 across however many files
// share one config.AnalysisContext. Safe for concurrent per-file use:
// module-scope insertion is serialized by path prefix (lockFor), and error
// accumulation is mutex-guarded, matching SPEC_FULL §2's concurrency model.
type Collector struct {
	ctx *config.AnalysisContext

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex

	errMu      sync.Mutex
	errs       []diag.Diagnostic
	fileCounts map[string]int
	fileCapped map[string]bool
}

func New(ctx *config.AnalysisContext) *Collector {
	return &Collector{
		ctx:        ctx,
		locks:      make(map[string]*sync.Mutex),
		fileCounts: make(map[string]int),
		fileCapped: make(map[string]bool),
	}
}

// Errors returns every diagnostic collected so far, across every file
// passed through Pass A and Pass B.
func (c *Collector) Errors() []diag.Diagnostic {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	out := make([]diag.Diagnostic, len(c.errs))
	copy(out, c.errs)
	return out
}

// report records a diagnostic against filename's cap (config
// §MaxDiagnosticsPerFile), appending exactly one MaxDiagnosticsExceeded
// marker the first time that file's cap is hit and silently dropping
// everything after.
func (c *Collector) report(filename string, d diag.Diagnostic) {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	max := c.ctx.Config.MaxDiagnosticsPerFile
	if max > 0 && c.fileCounts[filename] >= max {
		if !c.fileCapped[filename] {
			c.fileCapped[filename] = true
			c.errs = append(c.errs, diag.MaxDiagnosticsExceeded(filename, max))
		}
		return
	}
	c.fileCounts[filename]++
	c.errs = append(c.errs, d)
}

// lockFor returns the mutex guarding insertion under the given dotted
// module-path prefix, creating it on first use.
func (c *Collector) lockFor(path string) *sync.Mutex {
	c.lockMu.Lock()
	defer c.lockMu.Unlock()
	m, ok := c.locks[path]
	if !ok {
		m = &sync.Mutex{}
		c.locks[path] = m
	}
	return m
}

func spanOf(n ast.Node) lexer.Span {
	return lexer.Span{Start: n.Pos(), End: n.End()}
}
