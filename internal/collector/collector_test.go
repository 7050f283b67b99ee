package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/config"
	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/parser"
	"github.com/hassan/langcore/internal/symtab"
)

func parseSource(t *testing.T, filename, src string) *ast.File {
	t.Helper()
	p := parser.New(lexer.New(src, filename), filename)
	file, errs := p.ParseFile()
	require.Empty(t, errs, "unexpected parse errors in %s", filename)
	return file
}

// collectAll runs Pass A over every file, then Pass B over every file,
// matching the phase ordering SPEC_FULL §2 requires even when run
// sequentially in a test.
func collectAll(ctx *config.AnalysisContext, files ...*ast.File) (*Collector, []*CollectedFile) {
	c := New(ctx)
	collected := make([]*CollectedFile, len(files))
	for i, f := range files {
		collected[i] = c.CollectFileA(f)
	}
	for _, cf := range collected {
		c.CollectFileB(cf)
	}
	return c, collected
}

func TestCollector_StructFieldsAndMethodResolve(t *testing.T) {
	src := `module app.core;

struct Point {
    immutable x: int32;
    immutable y: int32;

    fun sum() :> int32 {
        return x;
    }
}
`
	ctx := config.NewContext(config.Default())
	c, collected := collectAll(ctx, parseSource(t, "point.lc", src))
	require.Empty(t, c.Errors())

	moduleID, ok := ctx.GlobalScope.LookupTyped(ctx.Arena, "app", symtab.KindModule)
	require.True(t, ok)
	coreID, ok := ctx.Arena.Get(moduleID).OwnedScope.LookupTyped(ctx.Arena, "core", symtab.KindModule)
	require.True(t, ok)
	coreScope := ctx.Arena.Get(coreID).OwnedScope

	pointID, ok := coreScope.LookupTyped(ctx.Arena, "Point", symtab.KindTypeStruct)
	require.True(t, ok)
	point := ctx.Arena.Get(pointID)
	assert.Equal(t, "app.core.Point", point.Type.String())
	assert.NotZero(t, point.StructID)

	xID, ok := point.OwnedScope.LookupTyped(ctx.Arena, "x", symtab.KindField)
	require.True(t, ok)
	x := ctx.Arena.Get(xID)
	assert.Equal(t, "int32", x.Type.String())
	assert.Equal(t, 0, x.FieldIndex)

	yID, _ := point.OwnedScope.LookupTyped(ctx.Arena, "y", symtab.KindField)
	y := ctx.Arena.Get(yID)
	assert.Equal(t, 1, y.FieldIndex)

	sumOverloads := point.OwnedScope.LookupOverloads("sum")
	require.Len(t, sumOverloads, 1)
	sum := ctx.Arena.Get(sumOverloads[0])
	assert.Equal(t, "int32", sum.Result.String())

	require.Len(t, collected, 1)
	structSym, ok := collected[0].SymbolOf(collected[0].File.Decls[0])
	require.True(t, ok)
	assert.Equal(t, pointID, structSym)
}

func TestCollector_DuplicateSignatureRejected(t *testing.T) {
	src := `module app;

fun add(a: int32, b: int32) :> int32 {
    return a;
}

fun add(x: int32, y: int32) :> int32 {
    return x;
}
`
	ctx := config.NewContext(config.Default())
	c, _ := collectAll(ctx, parseSource(t, "dup.lc", src))

	errs := c.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "signature")
}

func TestCollector_DistinctSignaturesBothRegister(t *testing.T) {
	src := `module app;

fun add(a: int32, b: int32) :> int32 {
    return a;
}

fun add(a: string, b: string) :> string {
    return a;
}
`
	ctx := config.NewContext(config.Default())
	c, _ := collectAll(ctx, parseSource(t, "over.lc", src))
	require.Empty(t, c.Errors())

	appID, ok := ctx.GlobalScope.LookupTyped(ctx.Arena, "app", symtab.KindModule)
	require.True(t, ok)
	appScope := ctx.Arena.Get(appID).OwnedScope
	overloads := appScope.LookupOverloads("add")
	assert.Len(t, overloads, 2)
}

func TestCollector_WildcardImportWithGroupingAlias(t *testing.T) {
	libSrc := `module lib;

struct Helper {
    immutable value: int32;
}
`
	useSrc := `module app;

import lib.* as L;
`
	ctx := config.NewContext(config.Default())
	c, collected := collectAll(ctx,
		parseSource(t, "lib.lc", libSrc),
		parseSource(t, "use.lc", useSrc),
	)
	require.Empty(t, c.Errors())

	useFile := collected[1]
	groupingID, ok := useFile.Imports["L"]
	require.True(t, ok)
	grouping := ctx.Arena.Get(groupingID)
	require.Equal(t, symtab.KindImportGrouping, grouping.Kind)

	helperID, ok := grouping.OwnedScope.LookupTyped(ctx.Arena, "Helper", symtab.KindTypeStruct)
	require.True(t, ok)
	assert.Equal(t, "lib.Helper", ctx.Arena.Get(helperID).Type.String())
}

func TestCollector_OperatorOverloadRegistration(t *testing.T) {
	src := `module app;

struct Money {
    immutable cents: int64;

    operator +(other: Money) :> Money {
        return this;
    }
}
`
	ctx := config.NewContext(config.Default())
	c, _ := collectAll(ctx, parseSource(t, "money.lc", src))
	require.Empty(t, c.Errors())

	appID, _ := ctx.GlobalScope.LookupTyped(ctx.Arena, "app", symtab.KindModule)
	appScope := ctx.Arena.Get(appID).OwnedScope
	moneyID, ok := appScope.LookupTyped(ctx.Arena, "Money", symtab.KindTypeStruct)
	require.True(t, ok)
	money := ctx.Arena.Get(moneyID)

	plusOverloads := money.OwnedScope.LookupOverloads("+")
	require.Len(t, plusOverloads, 1)
	plus := ctx.Arena.Get(plusOverloads[0])
	assert.Equal(t, "app.Money", plus.Result.String())
	require.Len(t, plus.Params, 1)
	assert.Equal(t, "other", plus.Params[0].Name)
}

func TestCollector_NativeTypeShadowRejected(t *testing.T) {
	src := `struct int32 {
    immutable x: int32;
}
`
	ctx := config.NewContext(config.Default())
	c, _ := collectAll(ctx, parseSource(t, "shadow.lc", src))

	errs := c.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "native type")
}

// The mutable-field-on-immutable-struct check is the Resolver's job (spec
// §8 item 8); see resolver.TestResolver_MutableFieldOnImmutableStructRejected.
// Pass A still records the struct's mutability flag (StructMutable) on the
// owner symbol that check reads; no test in this file asserts that flag
// directly.

func TestCollector_CastOverloadsToDistinctTargetsBothRegister(t *testing.T) {
	src := `struct Money {
    immutable cents: int64;

    cast implicit :> int64 {
        return cents;
    }

    cast explicit :> string {
        return "money";
    }
}
`
	ctx := config.NewContext(config.Default())
	c, _ := collectAll(ctx, parseSource(t, "cast.lc", src))
	require.Empty(t, c.Errors())

	moneyID, ok := ctx.GlobalScope.LookupTyped(ctx.Arena, "Money", symtab.KindTypeStruct)
	require.True(t, ok)
	money := ctx.Arena.Get(moneyID)

	_, okInt := money.OwnedScope.LookupLocal("$cast_false_int64")
	_, okStr := money.OwnedScope.LookupLocal("$cast_true_string")
	assert.True(t, okInt)
	assert.True(t, okStr)
}
