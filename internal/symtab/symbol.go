// Package symtab implements the Symbol & Scope Model: the arena of symbols
// every declaration registers into, and the lexical scope tree that maps
// names to them. Symbols reference each other (a Field's type names a
// Struct, an OperatorOverload's owner is the Struct it's declared on) by
// SymbolID rather than by pointer, per spec §9's design note — an arena
// indexed by a monotonic ID sidesteps reference cycles in that graph
// entirely, where the teacher's original *Symbol-pointer model would have
// needed one.
package symtab

import (
	"fmt"
	"sync"

	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/types"
)

// SymbolID indexes into an Arena. The zero value never denotes a real
// symbol (arenas reserve index 0), so a zero SymbolID in a struct field
// reads unambiguously as "absent".
type SymbolID int

const NoSymbol SymbolID = 0

// Kind enumerates every symbol variant spec §3.2 names.
type Kind int

const (
	KindModule Kind = iota
	KindTypeNative
	KindTypeStruct
	KindTypeParameter
	KindAliased
	KindField
	KindConst
	KindDef
	KindVar
	KindParameter
	KindFunction
	KindExternalFunction
	KindConstructor
	KindDestructor
	KindStringConversion
	KindCastOverload
	KindOperatorOverload
	KindEntry
	KindImportGrouping
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindTypeNative:
		return "native type"
	case KindTypeStruct:
		return "struct"
	case KindTypeParameter:
		return "type parameter"
	case KindAliased:
		return "alias"
	case KindField:
		return "field"
	case KindConst:
		return "const"
	case KindDef:
		return "define"
	case KindVar:
		return "variable"
	case KindParameter:
		return "parameter"
	case KindFunction:
		return "function"
	case KindExternalFunction:
		return "external function"
	case KindConstructor:
		return "constructor"
	case KindDestructor:
		return "destructor"
	case KindStringConversion:
		return "string conversion"
	case KindCastOverload:
		return "cast overload"
	case KindOperatorOverload:
		return "operator overload"
	case KindEntry:
		return "entry"
	case KindImportGrouping:
		return "import grouping"
	default:
		return "unknown"
	}
}

// Symbol is the one struct every symbol kind shares, following the
// teacher's "one struct, not one per kind" rationale (symbol.go): fields
// unused by a given Kind cost nothing but a little memory, and callers
// never need a type switch just to read a Name or Pos.
type Symbol struct {
	ID   SymbolID
	Name string
	Kind Kind
	Type types.Type // the symbol's own type; nil where not applicable (Module, ImportGrouping)
	Pos  lexer.Position

	Scope *Scope // the scope this symbol is declared in

	Mutability    int  // ast.Mutability, duplicated here to avoid an import cycle with ast
	Static        bool // true for `static` fields/functions
	Constant      bool // true for compile-time-constant values (spec §4.4.3)
	ConstantValue interface{}

	// OwnedScope is the scope this symbol owns: a Module's inner scope, a
	// struct's fields/methods/constructors/operators, or a native type's
	// built-in operator overloads (spec §4.2's seeded `add`/`multiply`).
	// nil for every other Kind.
	OwnedScope *Scope

	// StructMutable records whether a KindTypeStruct was declared `mutable
	// struct`; the Resolver rejects `mutable` fields inside a struct where
	// this is false (spec §8 boundary behavior 8).
	StructMutable bool

	// StructID is a monotonically increasing identifier assigned to every
	// KindTypeStruct at declaration (config.AnalysisContext.NextStructID),
	// distinct from the struct's SymbolID so struct identity survives
	// independent of arena layout.
	StructID int64

	// AliasOf is the SymbolID an KindAliased symbol forwards to.
	// Arena.Resolve chases this until it lands on a non-alias symbol (spec
	// §3.3); Scope.Lookup itself returns the alias's own ID.
	AliasOf SymbolID

	// TypeParams lists the names bound inside a generic struct or generic
	// function's own scope.
	TypeParams []string

	// Params/Result describe a callable symbol's signature (Function,
	// ExternalFunction, Constructor, Destructor, StringConversion,
	// CastOverload, OperatorOverload, Entry).
	Params []Param
	Result types.Type

	// Explicit marks a CastOverload declared `cast explicit`, per spec
	// §4.1's implicit/explicit cast distinction.
	Explicit bool

	// OwnerStruct is the struct symbol a member (Field, Constructor,
	// Destructor, StringConversion, CastOverload, OperatorOverload,
	// static Function) belongs to.
	OwnerStruct SymbolID

	// FieldIndex is an instance KindField's position among its owning
	// struct's instance fields, assigned in declaration order; unused by
	// static fields and every other Kind.
	FieldIndex int

	// FieldCount lives on the KindTypeStruct symbol itself: the number of
	// instance fields assigned an index so far, so Pass A can hand out
	// FieldIndex values while walking a struct's members in order.
	FieldCount int

	// HasStaticFields is set on a KindTypeStruct symbol by the Resolver the
	// first time it resolves one of the struct's `static` fields (spec
	// §4.4.1 Field: "mark the owner as having static fields if
	// applicable") — bookkeeping a future backend would use to decide
	// whether a type needs static-storage initialization.
	HasStaticFields bool
}

// Param is one parameter of a callable symbol's registered signature.
type Param struct {
	Name     string
	Type     types.Type
	Variadic bool
}

func (s *Symbol) String() string {
	if s.Type != nil {
		return s.Kind.String() + " " + s.Name + ": " + s.Type.String() + " at " + s.Pos.String()
	}
	return s.Kind.String() + " " + s.Name + " at " + s.Pos.String()
}

// Arena owns every Symbol ever created during an analysis run. It is built
// fresh per config.AnalysisContext (spec §9: no process-global symbol
// table), so two independent analyses never share symbol identity.
type Arena struct {
	mu      sync.Mutex
	symbols []*Symbol // index 0 reserved, unused
}

func NewArena() *Arena {
	return &Arena{symbols: make([]*Symbol, 1)}
}

// New allocates a fresh Symbol with the next SymbolID and returns it. The
// caller fills in the remaining fields before publishing it into a Scope.
func (a *Arena) New(name string, kind Kind) *Symbol {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := SymbolID(len(a.symbols))
	sym := &Symbol{ID: id, Name: name, Kind: kind}
	a.symbols = append(a.symbols, sym)
	return sym
}

// Get resolves a SymbolID back to its Symbol, or nil if id is NoSymbol or
// out of range.
func (a *Arena) Get(id SymbolID) *Symbol {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id <= NoSymbol || int(id) >= len(a.symbols) {
		return nil
	}
	return a.symbols[id]
}

// Resolve chases a chain of KindAliased symbols until it reaches a
// non-alias symbol, per spec §3.3. Returns nil if id doesn't resolve, and
// stops (returning the last alias seen) if it detects a cycle — which
// should never occur if the Collector rejects self-referential aliases,
// but a resolver that trusted that invariant blindly would spin forever on
// a bug elsewhere.
func (a *Arena) Resolve(id SymbolID) *Symbol {
	seen := map[SymbolID]bool{}
	for {
		sym := a.Get(id)
		if sym == nil || sym.Kind != KindAliased {
			return sym
		}
		if seen[sym.ID] {
			return sym
		}
		seen[sym.ID] = true
		id = sym.AliasOf
	}
}

func (a *Arena) String() string {
	return fmt.Sprintf("arena(%d symbols)", len(a.symbols)-1)
}
