package symtab

import (
	"fmt"
	"sync"
)

// ScopeKind distinguishes the lexical contexts spec §3.2/§3.3 assigns
// different rules to: a Function scope allows `return`, a Loop scope
// allows `break`/`continue`, a Struct scope is where `this` and static
// members resolve, and so on.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeModule
	ScopeStruct
	ScopeFunction
	ScopeBlock
	ScopeLoop
	ScopeSwitch
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeStruct:
		return "struct"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeLoop:
		return "loop"
	case ScopeSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// Scope is one node of the lexical scope tree. Unlike the symbol graph,
// the scope tree itself is a strict tree (no back-references beyond
// Parent), so it keeps direct *Scope pointers rather than an arena index —
// only the Symbol graph needed the SymbolID indirection.
type Scope struct {
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope
	Depth    int

	// Owner is the symbol this scope belongs to: the Module symbol for a
	// ScopeModule, the struct symbol for a ScopeStruct, the function/
	// constructor/etc. symbol for a ScopeFunction. NoSymbol otherwise.
	Owner SymbolID

	mu        sync.Mutex
	symbols   map[string]SymbolID   // single-definition namespace
	overloads map[string][]SymbolID // append-only: functions/constructors/operators
}

func NewScope(kind ScopeKind, parent *Scope) *Scope {
	depth := 0
	if parent != nil {
		depth = parent.Depth + 1
	}
	s := &Scope{
		Kind:      kind,
		Parent:    parent,
		Depth:     depth,
		symbols:   make(map[string]SymbolID),
		overloads: make(map[string][]SymbolID),
	}
	if parent != nil {
		parent.mu.Lock()
		parent.Children = append(parent.Children, s)
		parent.mu.Unlock()
	}
	return s
}

// Define inserts a single-definition symbol (var, const, field, struct,
// module, define, type parameter, import alias). Returns the SymbolID
// already occupying name if one exists — shadowing within the same scope
// is always an error (spec §9 Open Question, resolved in SPEC_FULL §3);
// shadowing an outer scope's name is permitted and simply not checked
// here, matching the teacher's original Define.
func (s *Scope) Define(name string, id SymbolID) (SymbolID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.symbols[name]; ok {
		return existing, false
	}
	s.symbols[name] = id
	return NoSymbol, true
}

// DefineOverload appends id to name's overload list without checking for
// a prior entry: multiple Function/Constructor/OperatorOverload
// declarations legitimately share a name, distinguished later by
// SignatureMatches during Collector Pass B. Cast overloads and string
// conversions are not registered here; Collector Pass B gives them
// single-definition names (`$cast_...`, `$string`) through Define.
// Mutex-guarded per SPEC_FULL §2 so Pass B's per-file fan-out can append
// concurrently without losing writes.
func (s *Scope) DefineOverload(name string, id SymbolID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overloads[name] = append(s.overloads[name], id)
}

// LookupLocal finds name only in this scope, not parents.
func (s *Scope) LookupLocal(name string) (SymbolID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.symbols[name]
	return id, ok
}

// Lookup finds name in this scope or any ancestor, innermost first — the
// standard lexical-scoping walk.
func (s *Scope) Lookup(name string) (SymbolID, bool) {
	for scope := s; scope != nil; scope = scope.Parent {
		if id, ok := scope.LookupLocal(name); ok {
			return id, true
		}
	}
	return NoSymbol, false
}

// LookupOverloads returns name's overload list visible from this scope,
// searching outward and stopping at the first scope that defines any
// overloads for name (overload sets do not merge across scopes).
func (s *Scope) LookupOverloads(name string) []SymbolID {
	for scope := s; scope != nil; scope = scope.Parent {
		scope.mu.Lock()
		list := scope.overloads[name]
		scope.mu.Unlock()
		if len(list) > 0 {
			out := make([]SymbolID, len(list))
			copy(out, list)
			return out
		}
	}
	return nil
}

// LookupTyped finds name visible from this scope and returns it only if
// its Arena entry has the given Kind, narrowing e.g. a type lookup so a
// variable named the same as a struct doesn't satisfy a type reference.
func (s *Scope) LookupTyped(arena *Arena, name string, kind Kind) (SymbolID, bool) {
	id, ok := s.Lookup(name)
	if !ok {
		return NoSymbol, false
	}
	sym := arena.Resolve(id)
	if sym == nil || sym.Kind != kind {
		return NoSymbol, false
	}
	return sym.ID, true
}

// Snapshot returns a shallow copy of this scope's single-definition names,
// used by Pass B to give each file its own, independently mutable view of
// what a wildcard or aggregate import pulled in without mutating the
// imported module's own scope (spec §4.3's per-file import snapshot).
func (s *Scope) Snapshot() map[string]SymbolID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]SymbolID, len(s.symbols))
	for k, v := range s.symbols {
		out[k] = v
	}
	return out
}

func (s *Scope) IsGlobal() bool { return s.Kind == ScopeGlobal }
func (s *Scope) IsFunction() bool { return s.Kind == ScopeFunction }
func (s *Scope) IsLoop() bool   { return s.Kind == ScopeLoop }
func (s *Scope) IsSwitch() bool { return s.Kind == ScopeSwitch }
func (s *Scope) IsStruct() bool { return s.Kind == ScopeStruct }

// FindEnclosingFunction walks outward to the nearest ScopeFunction, or nil.
func (s *Scope) FindEnclosingFunction() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.IsFunction() {
			return scope
		}
	}
	return nil
}

// FindEnclosingLoopOrSwitch walks outward to the nearest Loop or Switch
// scope, or nil — used to validate `break`; FindEnclosingLoop (Loop only)
// validates `continue`.
func (s *Scope) FindEnclosingLoopOrSwitch() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.IsLoop() || scope.IsSwitch() {
			return scope
		}
	}
	return nil
}

func (s *Scope) FindEnclosingLoop() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.IsLoop() {
			return scope
		}
	}
	return nil
}

// FindEnclosingStruct walks outward to the nearest ScopeStruct, or nil.
// The Resolver does not call it: it resolves `this` and static-vs-instance
// access from its own enclosing-type stack.
func (s *Scope) FindEnclosingStruct() *Scope {
	for scope := s; scope != nil; scope = scope.Parent {
		if scope.IsStruct() {
			return scope
		}
	}
	return nil
}

func (s *Scope) String() string {
	s.mu.Lock()
	n := len(s.symbols)
	s.mu.Unlock()
	return fmt.Sprintf("%s scope (depth %d, %d symbols)", s.Kind.String(), s.Depth, n)
}

// DebugString recursively renders the scope tree, resolving each entry
// through arena so names show their kind and type — the shape
// `langcore dump-scope` prints (SPEC_FULL §2).
func (s *Scope) DebugString(arena *Arena) string {
	return s.debugStringIndent(arena, 0)
}

func (s *Scope) debugStringIndent(arena *Arena, indent int) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}
	result := prefix + s.String() + "\n"

	s.mu.Lock()
	names := make(map[string]SymbolID, len(s.symbols))
	for k, v := range s.symbols {
		names[k] = v
	}
	s.mu.Unlock()

	for _, id := range names {
		if sym := arena.Get(id); sym != nil {
			result += prefix + "  " + sym.String() + "\n"
		}
	}
	for _, child := range s.Children {
		result += child.debugStringIndent(arena, indent+1)
	}
	return result
}
