package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hassan/langcore/internal/ast"
	"github.com/hassan/langcore/internal/lexer"
)

func parseSource(t *testing.T, source string) *ast.File {
	t.Helper()
	l := lexer.New(source, "test.lc")
	p := New(l, "test.lc")
	file, errs := p.ParseFile()
	require.Empty(t, errs, "unexpected parse errors: %v", errs)
	return file
}

func TestParser_ModuleAndImports(t *testing.T) {
	file := parseSource(t, `
module app.core;
import std.io;
import std.collections.*;
import app.util.{Logger, Formatter as Fmt};
`)
	require.NotNil(t, file.Module)
	assert.Equal(t, []string{"app", "core"}, file.Module.Path)
	require.Len(t, file.Imports, 3)
	assert.Equal(t, []string{"std", "io"}, file.Imports[0].Path)
	assert.True(t, file.Imports[1].Wildcard)
	require.Len(t, file.Imports[2].Items, 2)
	assert.Equal(t, "Formatter", file.Imports[2].Items[1].Name)
	assert.Equal(t, "Fmt", file.Imports[2].Items[1].Alias)
}

func TestParser_StructWithFieldsAndMethods(t *testing.T) {
	file := parseSource(t, `
struct Point {
    mutable x: int32 = 0;
    mutable y: int32 = 0;

    constructor(x: int32, y: int32) {
        this.x = x;
        this.y = y;
    }

    fun length() :> float64 => 0.0;

    string() :> string => "point";

    operator +(other: Point) :> Point {
        return this;
    }
}
`)
	require.Len(t, file.Decls, 1)
	st, ok := file.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Members, 6)

	field, ok := st.Members[0].(*ast.FieldDecl)
	require.True(t, ok)
	assert.Equal(t, "x", field.Name)
	assert.Equal(t, ast.Mutable, field.Mutability)

	_, ok = st.Members[2].(*ast.ConstructorDecl)
	assert.True(t, ok)

	fn, ok := st.Members[3].(*ast.FuncDecl)
	require.True(t, ok)
	assert.Equal(t, "length", fn.Name)
	assert.NotNil(t, fn.ExprBody)

	conv, ok := st.Members[4].(*ast.StringConvDecl)
	require.True(t, ok)
	assert.NotNil(t, conv.ExprBody)
}

func TestParser_GenericStructAndNullableArrayType(t *testing.T) {
	file := parseSource(t, `
struct Box<T> {
    mutable value: T?[] = nil;
}
`)
	st := file.Decls[0].(*ast.StructDecl)
	require.Len(t, st.TypeParams, 1)
	assert.Equal(t, "T", st.TypeParams[0].Name)

	field := st.Members[0].(*ast.FieldDecl)
	arr, ok := field.Type.(*ast.ArrayTypeExpr)
	require.True(t, ok)
	_, ok = arr.Element.(*ast.NullableTypeExpr)
	assert.True(t, ok)
}

func TestParser_FunctionTypeAndTupleType(t *testing.T) {
	file := parseSource(t, `
def Callback = (int32, string) :> bool;
def Pair = (int32, int32);
`)
	require.Len(t, file.Decls, 2)
	cb := file.Decls[0].(*ast.DefineDecl)
	lambda, ok := cb.Type.(*ast.LambdaTypeExpr)
	require.True(t, ok)
	assert.Len(t, lambda.Params, 2)

	pair := file.Decls[1].(*ast.DefineDecl)
	tuple, ok := pair.Type.(*ast.TupleTypeExpr)
	require.True(t, ok)
	assert.Len(t, tuple.Elements, 2)
}

func TestParser_IfWhileForLoops(t *testing.T) {
	file := parseSource(t, `
entry(args: string[]) {
    if args.length > 0 {
        return;
    } else if args.length == 0 {
        return;
    } else {
        return;
    }

    var i: int32 = 0;
    while i < 10 {
        i = i + 1;
    }

    for var j: int32 = 0; j < 10; j = j + 1 {
        continue;
    }
}
`)
	entry := file.Decls[0].(*ast.EntryDecl)
	ifStmt, ok := entry.Body.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	require.True(t, ok)
	_, ok = elseIf.Else.(*ast.BlockStmt)
	assert.True(t, ok)

	_, ok = entry.Body.Stmts[2].(*ast.WhileStmt)
	assert.True(t, ok)

	forStmt, ok := entry.Body.Stmts[3].(*ast.ForStmt)
	require.True(t, ok)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Cond)
	assert.NotNil(t, forStmt.Post)
}

func TestParser_SwitchStatement(t *testing.T) {
	file := parseSource(t, `
entry(args: string[]) {
    switch args.length {
    case 0:
        return;
    case 1, 2:
        return;
    default:
        return;
    }
}
`)
	entry := file.Decls[0].(*ast.EntryDecl)
	sw, ok := entry.Body.Stmts[0].(*ast.SwitchStmt)
	require.True(t, ok)
	require.Len(t, sw.Cases, 3)
	assert.Len(t, sw.Cases[1].Patterns, 2)
	assert.Empty(t, sw.Cases[2].Patterns)
}

func TestParser_ExpressionPrecedence(t *testing.T) {
	file := parseSource(t, `const X: int32 = 1 + 2 * 3;`)
	c := file.Decls[0].(*ast.ConstDecl)
	bin, ok := c.Init.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenPlus, bin.Op)
	right, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenStar, right.Op)
}

func TestParser_CallAccessIndexChain(t *testing.T) {
	file := parseSource(t, `const X: int32 = a.b(1, 2)[0];`)
	c := file.Decls[0].(*ast.ConstDecl)
	idx, ok := c.Init.(*ast.IndexExpr)
	require.True(t, ok)
	call, ok := idx.Target.(*ast.CallExpr)
	require.True(t, ok)
	access, ok := call.Callee.(*ast.AccessExpr)
	require.True(t, ok)
	assert.Equal(t, "b", access.Name)
}

func TestParser_CastExpression(t *testing.T) {
	file := parseSource(t, `const X: float64 = 1 as float64;`)
	c := file.Decls[0].(*ast.ConstDecl)
	cast, ok := c.Init.(*ast.CastExpr)
	require.True(t, ok)
	base, ok := cast.Type.(*ast.BaseTypeExpr)
	require.True(t, ok)
	assert.Equal(t, "float64", base.Name)
}

func TestParser_LambdaVersusGroupingAndTuple(t *testing.T) {
	file := parseSource(t, `
def Adder = (int32, int32) :> int32;
const A: Adder = (x: int32, y: int32) => x + y;
const B: int32 = (1 + 2);
const C: (int32, int32) = (1, 2);
`)
	lambdaDecl := file.Decls[1].(*ast.ConstDecl)
	lambda, ok := lambdaDecl.Init.(*ast.LambdaExpr)
	require.True(t, ok)
	require.Len(t, lambda.Params, 2)
	assert.NotNil(t, lambda.ExprBody)

	grouping := file.Decls[2].(*ast.ConstDecl)
	_, ok = grouping.Init.(*ast.GroupingExpr)
	assert.True(t, ok)

	tuple := file.Decls[3].(*ast.ConstDecl)
	tup, ok := tuple.Init.(*ast.TupleExpr)
	require.True(t, ok)
	assert.Len(t, tup.Elements, 2)
}

func TestParser_ConditionalAndListMapLiterals(t *testing.T) {
	file := parseSource(t, `
const A: int32 = true ? 1 : 2;
const B: int32[] = [1, 2, 3];
const C: int32 = {1: 2, 3: 4}.length;
`)
	cond := file.Decls[0].(*ast.ConstDecl)
	_, ok := cond.Init.(*ast.ConditionalExpr)
	assert.True(t, ok)

	list := file.Decls[1].(*ast.ConstDecl)
	listExpr, ok := list.Init.(*ast.ListExpr)
	require.True(t, ok)
	assert.Len(t, listExpr.Elements, 3)

	m := file.Decls[2].(*ast.ConstDecl)
	access, ok := m.Init.(*ast.AccessExpr)
	require.True(t, ok)
	mapExpr, ok := access.Target.(*ast.MapExpr)
	require.True(t, ok)
	assert.Len(t, mapExpr.Keys, 2)
}

func TestParser_SyntaxErrorRecoversAtNextDeclaration(t *testing.T) {
	l := lexer.New(`
const A: int32 = ;
const B: int32 = 5;
`, "test.lc")
	p := New(l, "test.lc")
	file, errs := p.ParseFile()
	assert.NotEmpty(t, errs)
	require.Len(t, file.Decls, 1)
	b, ok := file.Decls[0].(*ast.ConstDecl)
	require.True(t, ok)
	assert.Equal(t, "B", b.Name)
}
