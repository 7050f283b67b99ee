package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hassan/langcore/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.NativeWidth)
	assert.Equal(t, 200, cfg.MaxDiagnosticsPerFile)
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "langcore.yaml")
	content := "native_width: 32\nmodule_search_paths:\n  - ./vendor\nmax_diagnostics_per_file: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.NativeWidth)
	assert.Equal(t, []string{"./vendor"}, cfg.ModuleSearchPaths)
	assert.Equal(t, 50, cfg.MaxDiagnosticsPerFile)
}

func TestNewContext_InsertsNativeCatalogue(t *testing.T) {
	ctx := NewContext(Default())

	id, ok := ctx.GlobalScope.LookupTyped(ctx.Arena, "int32", symtab.KindTypeNative)
	require.True(t, ok)
	sym := ctx.Arena.Get(id)
	require.NotNil(t, sym)
	assert.Equal(t, "int32", sym.Type.String())
}

func TestNewContext_NativeWidthResolvesNintNuint(t *testing.T) {
	ctx := NewContext(&Config{NativeWidth: 32, MaxDiagnosticsPerFile: 10})

	id, ok := ctx.GlobalScope.LookupLocal("nint")
	require.True(t, ok)
	alias := ctx.Arena.Get(id)
	require.Equal(t, symtab.KindAliased, alias.Kind)

	sym := ctx.Arena.Resolve(id)
	assert.Equal(t, "int32", sym.Type.String())
}

func TestNewContext_SeedsBuiltinOperators(t *testing.T) {
	ctx := NewContext(Default())

	id, ok := ctx.GlobalScope.LookupTyped(ctx.Arena, "int32", symtab.KindTypeNative)
	require.True(t, ok)
	sym := ctx.Arena.Get(id)
	require.NotNil(t, sym.OwnedScope)

	overloads := sym.OwnedScope.LookupOverloads("+")
	require.Len(t, overloads, 1)
	opSym := ctx.Arena.Get(overloads[0])
	assert.Equal(t, symtab.KindOperatorOverload, opSym.Kind)
	assert.Equal(t, "int32", opSym.Result.String())

	stringID, _ := ctx.GlobalScope.LookupTyped(ctx.Arena, "string", symtab.KindTypeNative)
	stringSym := ctx.Arena.Get(stringID)
	assert.Len(t, stringSym.OwnedScope.LookupOverloads("+"), 1)
	assert.Empty(t, stringSym.OwnedScope.LookupOverloads("*"))
}

func TestAnalysisContext_NextStructIDIsMonotonic(t *testing.T) {
	ctx := NewContext(Default())
	a := ctx.NextStructID()
	b := ctx.NextStructID()
	assert.Greater(t, b, a)
}
