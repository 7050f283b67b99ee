package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/collector"
	"github.com/hassan/langcore/internal/config"
	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/parser"
)

func parseSource(t *testing.T, filename, src string) *ast.File {
	t.Helper()
	p := parser.New(lexer.New(src, filename), filename)
	file, errs := p.ParseFile()
	require.Empty(t, errs, "unexpected parse errors in %s", filename)
	return file
}

// analyze runs the full three-stage pipeline (Pass A, Pass B, Resolver)
// over one source file, matching the phase ordering SPEC_FULL §2 requires.
func analyze(t *testing.T, filename, src string) (*config.AnalysisContext, *Resolver, *collector.CollectedFile) {
	t.Helper()
	ctx := config.NewContext(config.Default())
	c := collector.New(ctx)
	file := parseSource(t, filename, src)
	cf := c.CollectFileA(file)
	c.CollectFileB(cf)
	require.Empty(t, c.Errors(), "unexpected collector diagnostics")

	r := New(ctx)
	r.ResolveFile(cf)
	return ctx, r, cf
}

func TestResolver_MutableFieldOnImmutableStructRejected(t *testing.T) {
	src := `struct Point {
    mutable x: int32;
}
`
	_, r, _ := analyze(t, "point.lc", src)
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "immutable")
}

func TestResolver_MutableStructAllowsMutableFields(t *testing.T) {
	src := `mutable struct Counter {
    mutable count: int32;
}
`
	_, r, _ := analyze(t, "counter.lc", src)
	assert.Empty(t, r.Errors())
}

func TestResolver_ConstantInitializerMustBeConstant(t *testing.T) {
	src := `struct App {
    fun sideEffect() :> int32 {
        return 1;
    }
}

const k: int32 = App().sideEffect();
`
	_, r, _ := analyze(t, "const.lc", src)
	errs := r.Errors()
	require.NotEmpty(t, errs)
}

func TestResolver_LocalVarWithoutTypeOrInitFails(t *testing.T) {
	src := `fun run() {
    var x;
}
`
	_, r, _ := analyze(t, "var.lc", src)
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "cannot be inferred")
}

func TestResolver_BreakOutsideLoopRejected(t *testing.T) {
	src := `fun run() {
    break;
}
`
	_, r, _ := analyze(t, "break.lc", src)
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "break")
}

func TestResolver_AssignToImmutableVarRejected(t *testing.T) {
	src := `fun run() {
    let n = 3;
    n = 4;
}
`
	_, r, _ := analyze(t, "assign.lc", src)
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "not mutable")
}

func TestResolver_NumericOperatorOnLiteralsResolves(t *testing.T) {
	src := `const total: int32 = 1 + 2;
`
	_, r, _ := analyze(t, "add.lc", src)
	assert.Empty(t, r.Errors())
}

func TestResolver_StaticFieldMarksOwner(t *testing.T) {
	src := `struct Registry {
    static immutable count: int32 = 0;
}
`
	_, r, cf := analyze(t, "registry.lc", src)
	assert.Empty(t, r.Errors())

	structID, ok := cf.SymbolOf(cf.File.Decls[0])
	require.True(t, ok)
	assert.True(t, r.arena.Get(structID).HasStaticFields)
}

func TestResolver_OverloadedFreeFunctionCallResolves(t *testing.T) {
	src := `fun add(x: int32, y: int32) :> int32 => x + y;
fun add(x: float32, y: float32) :> float32 => x + y;

entry() {
    let a = add(1, 2);
    let b = add(1.0f32, 2.0f32);
}
`
	_, r, _ := analyze(t, "add.lc", src)
	assert.Empty(t, r.Errors())
}

func TestResolver_InstanceFieldFromStaticContextRejected(t *testing.T) {
	src := `struct Widget {
    immutable x: int32;

    static fun describe() :> int32 {
        return x;
    }
}
`
	_, r, _ := analyze(t, "widget.lc", src)
	errs := r.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "not a static member")
}
