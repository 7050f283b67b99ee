package symtab

import (
	"testing"

	"github.com/hassan/langcore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbol_String(t *testing.T) {
	arena := NewArena()
	sym := arena.New("x", KindVar)
	sym.Type = types.BaseType{Name: "int32"}

	assert.Equal(t, "variable x: int32 at :0:0", sym.String())
}

func TestArena_NewAssignsIncreasingIDs(t *testing.T) {
	arena := NewArena()
	a := arena.New("a", KindVar)
	b := arena.New("b", KindVar)

	assert.NotEqual(t, NoSymbol, a.ID)
	assert.Greater(t, int(b.ID), int(a.ID))
	assert.Same(t, a, arena.Get(a.ID))
}

func TestArena_ResolveChasesAliases(t *testing.T) {
	arena := NewArena()
	target := arena.New("Real", KindTypeStruct)
	alias1 := arena.New("Alias1", KindAliased)
	alias1.AliasOf = target.ID
	alias2 := arena.New("Alias2", KindAliased)
	alias2.AliasOf = alias1.ID

	resolved := arena.Resolve(alias2.ID)
	require.NotNil(t, resolved)
	assert.Equal(t, target.ID, resolved.ID)
}

func TestArena_ResolveStopsOnCycle(t *testing.T) {
	arena := NewArena()
	a := arena.New("A", KindAliased)
	b := arena.New("B", KindAliased)
	a.AliasOf = b.ID
	b.AliasOf = a.ID

	// Must terminate rather than loop forever.
	resolved := arena.Resolve(a.ID)
	require.NotNil(t, resolved)
}

func TestScope_DefineRejectsDuplicateInSameScope(t *testing.T) {
	arena := NewArena()
	scope := NewScope(ScopeGlobal, nil)
	x := arena.New("x", KindVar)

	_, ok := scope.Define("x", x.ID)
	require.True(t, ok)

	y := arena.New("x", KindVar)
	existing, ok := scope.Define("x", y.ID)
	assert.False(t, ok, "redefining x in the same scope must fail (shadowing is an error)")
	assert.Equal(t, x.ID, existing)
}

func TestScope_DefineAllowsShadowingOuterScope(t *testing.T) {
	arena := NewArena()
	global := NewScope(ScopeGlobal, nil)
	block := NewScope(ScopeBlock, global)

	outer := arena.New("x", KindVar)
	global.Define("x", outer.ID)

	inner := arena.New("x", KindVar)
	_, ok := block.Define("x", inner.ID)
	assert.True(t, ok, "shadowing an outer scope's name is allowed")

	found, ok := block.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, inner.ID, found)
}

func TestScope_Lookup(t *testing.T) {
	arena := NewArena()
	global := NewScope(ScopeGlobal, nil)
	local := NewScope(ScopeBlock, global)

	gx := arena.New("x", KindVar)
	ly := arena.New("y", KindVar)
	global.Define("x", gx.ID)
	local.Define("y", ly.ID)

	found, ok := local.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, ly.ID, found)

	found, ok = local.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, gx.ID, found)

	_, ok = local.Lookup("z")
	assert.False(t, ok)
}

func TestScope_LookupLocalDoesNotSeeParent(t *testing.T) {
	arena := NewArena()
	global := NewScope(ScopeGlobal, nil)
	local := NewScope(ScopeBlock, global)

	gx := arena.New("x", KindVar)
	global.Define("x", gx.ID)

	_, ok := local.LookupLocal("x")
	assert.False(t, ok)
}

func TestScope_LookupTypedNarrows(t *testing.T) {
	arena := NewArena()
	scope := NewScope(ScopeGlobal, nil)

	v := arena.New("Thing", KindVar)
	scope.Define("Thing", v.ID)

	_, ok := scope.LookupTyped(arena, "Thing", KindTypeStruct)
	assert.False(t, ok, "a variable named Thing must not satisfy a type lookup")

	_, ok = scope.LookupTyped(arena, "Thing", KindVar)
	assert.True(t, ok)
}

func TestScope_DefineOverloadAppendsWithoutConflict(t *testing.T) {
	arena := NewArena()
	scope := NewScope(ScopeGlobal, nil)

	f1 := arena.New("add", KindFunction)
	f2 := arena.New("add", KindFunction)
	scope.DefineOverload("add", f1.ID)
	scope.DefineOverload("add", f2.ID)

	list := scope.LookupOverloads("add")
	assert.ElementsMatch(t, []SymbolID{f1.ID, f2.ID}, list)
}

func TestScope_FindEnclosingFunction(t *testing.T) {
	global := NewScope(ScopeGlobal, nil)
	funcScope := NewScope(ScopeFunction, global)
	blockScope := NewScope(ScopeBlock, funcScope)

	assert.Same(t, funcScope, blockScope.FindEnclosingFunction())
	assert.Nil(t, global.FindEnclosingFunction())
}

func TestScope_FindEnclosingLoop(t *testing.T) {
	funcScope := NewScope(ScopeFunction, nil)
	loopScope := NewScope(ScopeLoop, funcScope)
	blockScope := NewScope(ScopeBlock, loopScope)

	assert.Same(t, loopScope, blockScope.FindEnclosingLoop())
	assert.Nil(t, funcScope.FindEnclosingLoop())
}

func TestScope_FindEnclosingLoopOrSwitch(t *testing.T) {
	funcScope := NewScope(ScopeFunction, nil)
	switchScope := NewScope(ScopeSwitch, funcScope)
	blockScope := NewScope(ScopeBlock, switchScope)

	assert.Same(t, switchScope, blockScope.FindEnclosingLoopOrSwitch())
}

func TestScope_Snapshot(t *testing.T) {
	arena := NewArena()
	scope := NewScope(ScopeModule, nil)
	x := arena.New("X", KindTypeStruct)
	scope.Define("X", x.ID)

	snap := scope.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, x.ID, snap["X"])

	// Mutating the scope after the snapshot must not affect it.
	y := arena.New("Y", KindTypeStruct)
	scope.Define("Y", y.ID)
	assert.Len(t, snap, 1)
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindVar, "variable"},
		{KindFunction, "function"},
		{KindParameter, "parameter"},
		{KindTypeStruct, "struct"},
		{KindField, "field"},
		{KindModule, "module"},
		{KindOperatorOverload, "operator overload"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestScopeKind_String(t *testing.T) {
	tests := []struct {
		kind ScopeKind
		want string
	}{
		{ScopeGlobal, "global"},
		{ScopeFunction, "function"},
		{ScopeBlock, "block"},
		{ScopeLoop, "loop"},
		{ScopeSwitch, "switch"},
		{ScopeStruct, "struct"},
		{ScopeModule, "module"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}
