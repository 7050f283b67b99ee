// Package config loads langcore.yaml and builds the AnalysisContext every
// other package threads through instead of reaching for process globals,
// per spec §9's design note: the native-type catalogue and the struct-ID
// counter both need exactly one instance per analysis run, and an explicit
// struct makes that instance (and its lifetime) visible at every call site
// that needs it.
package config

import (
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"

	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/symtab"
	"github.com/hassan/langcore/internal/types"
)

// Config is the shape of langcore.yaml.
type Config struct {
	NativeWidth           int      `yaml:"native_width"`
	ModuleSearchPaths     []string `yaml:"module_search_paths"`
	MaxDiagnosticsPerFile int      `yaml:"max_diagnostics_per_file"`
}

// Default returns the configuration used when no langcore.yaml is present:
// 64-bit nint/nuint, no extra search paths, and a generous but finite
// diagnostics cap so one pathological file can't produce unbounded output.
func Default() *Config {
	return &Config{
		NativeWidth:           64,
		ModuleSearchPaths:     nil,
		MaxDiagnosticsPerFile: 200,
	}
}

// Load reads and parses a langcore.yaml file. A missing file is not an
// error — callers fall back to Default() — but a malformed one is.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) nativeWidth() types.NativeWidth {
	if c.NativeWidth == 32 {
		return types.Width32
	}
	return types.Width64
}

// AnalysisContext is the one mutable home for everything the Collector and
// Resolver need that must not be process-global: the symbol arena, the
// global scope pre-populated with the native type catalogue, the
// native-width setting those types were built under, and the monotonic
// counter spec §3.2 requires for distinguishing struct instances
// structurally-equal-but-not-identical across a single run.
type AnalysisContext struct {
	Config      *Config
	Arena       *symtab.Arena
	GlobalScope *symtab.Scope

	nativeWidth   types.NativeWidth
	structIDCount int64
}

// NewContext builds a fresh AnalysisContext: a new Arena, a new global
// Scope, and every native type name inserted as a KindTypeNative symbol so
// the Collector's "cannot be shadowed" check (spec §3.1) is enforced by an
// ordinary Scope.Define collision rather than a special case.
func NewContext(cfg *Config) *AnalysisContext {
	if cfg == nil {
		cfg = Default()
	}
	arena := symtab.NewArena()
	global := symtab.NewScope(symtab.ScopeGlobal, nil)

	ctx := &AnalysisContext{
		Config:      cfg,
		Arena:       arena,
		GlobalScope: global,
		nativeWidth: cfg.nativeWidth(),
	}

	for _, name := range types.NativeTypeNames {
		if name == "nint" || name == "nuint" {
			continue // aliased below, once their target exists
		}
		sym := arena.New(name, symtab.KindTypeNative)
		sym.Type = types.BaseType{Name: name}
		sym.Pos = lexer.Position{Filename: "<native>"}
		sym.OwnedScope = symtab.NewScope(symtab.ScopeStruct, global)
		sym.OwnedScope.Owner = sym.ID
		global.Define(name, sym.ID)
	}

	// $Array is the synthetic owner spec §4.1 routes every ArrayType operator
	// lookup to (types.OperatorOwner). It carries no language-visible name
	// (the `$` prefix can't appear in a source identifier), only an operator
	// table a future `[]` overload would register into.
	arraySym := arena.New("$Array", symtab.KindTypeNative)
	arraySym.Type = types.BaseType{Name: "$Array"}
	arraySym.Pos = lexer.Position{Filename: "<native>"}
	arraySym.OwnedScope = symtab.NewScope(symtab.ScopeStruct, global)
	arraySym.OwnedScope.Owner = arraySym.ID
	global.Define("$Array", arraySym.ID)

	// nint/nuint are Aliased Symbols targeting the concrete native-width
	// type selected by config, per spec §4.2 — not distinct type symbols of
	// their own, so `nint` and `int64` (under a 64-bit config) share one
	// operator table and one identity once alias-chased.
	for _, alias := range []string{"nint", "nuint"} {
		targetName := types.ResolveNativeWidth(alias, ctx.nativeWidth)
		targetID, _ := global.LookupLocal(targetName)
		sym := arena.New(alias, symtab.KindAliased)
		sym.Pos = lexer.Position{Filename: "<native>"}
		sym.AliasOf = targetID
		global.Define(alias, sym.ID)
	}

	seedBuiltinOperators(arena, global)

	return ctx
}

// seedBuiltinOperators installs the built-in overloads spec §4.2 requires:
// every numeric native type gets "+" and "*" returning its own type, and
// `string` gets "+" (concatenation), so arithmetic and string
// concatenation on literals resolve without any user declaration.
func seedBuiltinOperators(arena *symtab.Arena, global *symtab.Scope) {
	define := func(ownerName, opSymbol string) {
		ownerID, _ := global.LookupLocal(ownerName)
		owner := arena.Get(ownerID)
		sym := arena.New("$operator_"+ownerName+"_"+opSymbol, symtab.KindOperatorOverload)
		sym.Pos = lexer.Position{Filename: "<native>"}
		sym.Static = true
		sym.OwnerStruct = ownerID
		sym.Result = owner.Type
		sym.Params = []symtab.Param{{Name: "other", Type: owner.Type}}
		owner.OwnedScope.DefineOverload(opSymbol, sym.ID)
	}

	for _, name := range types.NativeTypeNames {
		if name == "nint" || name == "nuint" {
			continue // alias-chases to a concrete type's own table
		}
		if types.IsNumericType(name) {
			define(name, "+")
			define(name, "*")
		}
	}
	define("string", "+")
}

// NativeWidth reports which width nint/nuint resolved to for this run.
func (c *AnalysisContext) NativeWidth() types.NativeWidth { return c.nativeWidth }

// NextStructID returns a fresh, monotonically increasing struct instance
// ID, safe to call from the concurrent Collector Pass A fan-out (spec §5).
func (c *AnalysisContext) NextStructID() int64 {
	return atomic.AddInt64(&c.structIDCount, 1)
}
