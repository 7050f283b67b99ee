package resolver

import (
	"strings"

	"github.com/hassan/langcore/internal/diag"
	"github.com/hassan/langcore/internal/lexer"
	"github.com/hassan/langcore/internal/symtab"
	"github.com/hassan/langcore/internal/types"
)

// operatorSymbol maps a lexer.TokenType to the exact lexeme
// ast.OperatorDecl.Symbol registers overloads under (parser.operatorSymbolText
// records the raw source text there, not a token name). Every operator
// token has exactly one fixed spelling, so this mapping is total.
func operatorSymbol(t lexer.TokenType) (string, bool) {
	switch t {
	case lexer.TokenPlus:
		return "+", true
	case lexer.TokenMinus:
		return "-", true
	case lexer.TokenStar:
		return "*", true
	case lexer.TokenSlash:
		return "/", true
	case lexer.TokenPercent:
		return "%", true
	case lexer.TokenEqual:
		return "==", true
	case lexer.TokenNotEqual:
		return "!=", true
	case lexer.TokenLess:
		return "<", true
	case lexer.TokenLessEqual:
		return "<=", true
	case lexer.TokenGreater:
		return ">", true
	case lexer.TokenGreaterEqual:
		return ">=", true
	case lexer.TokenAnd:
		return "&&", true
	case lexer.TokenOr:
		return "||", true
	case lexer.TokenNot:
		return "!", true
	case lexer.TokenBitAnd:
		return "&", true
	case lexer.TokenBitOr:
		return "|", true
	case lexer.TokenBitXor:
		return "^", true
	case lexer.TokenBitNot:
		return "~", true
	case lexer.TokenShl:
		return "<<", true
	case lexer.TokenShr:
		return ">>", true
	default:
		return "", false
	}
}

// lookupTypeOwner reverse-resolves a types.BaseType's dotted Name back to
// the *symtab.Symbol whose OwnedScope holds its operator overloads.
// OperatorOwner only ever returns a name, not a Symbol, so operator
// dispatch needs this to reach the owner's overload table. Walks the
// name's module-path prefix the same way collector.enterModulePath does,
// but looks the final segment up as a type (native or struct) rather than
// a module.
func (r *Resolver) lookupTypeOwner(name string) *symtab.Symbol {
	segments := strings.Split(name, ".")
	scope := r.ctx.GlobalScope
	for i, seg := range segments {
		if i == len(segments)-1 {
			if id, ok := scope.LookupTyped(r.arena, seg, symtab.KindTypeStruct); ok {
				return r.arena.Get(id)
			}
			if id, ok := scope.LookupTyped(r.arena, seg, symtab.KindTypeNative); ok {
				return r.arena.Get(id)
			}
			return nil
		}
		id, ok := scope.LookupTyped(r.arena, seg, symtab.KindModule)
		if !ok {
			return nil
		}
		scope = r.arena.Get(id).OwnedScope
	}
	return nil
}

// ownerSymbolFor composes types.OperatorOwner with lookupTypeOwner into the
// single step binary/unary operator dispatch both need.
func (r *Resolver) ownerSymbolFor(t types.Type) *symtab.Symbol {
	base, ok := types.OperatorOwner(t)
	if !ok {
		return nil
	}
	return r.lookupTypeOwner(base.Name)
}

// findOperatorCandidate searches owner's overload list for symbol for the
// one whose single parameter Matches other, per spec §4.1.
func (r *Resolver) findOperatorCandidate(owner *symtab.Symbol, symbol string, other types.Type) *symtab.Symbol {
	for _, id := range owner.OwnedScope.LookupOverloads(symbol) {
		cand := r.arena.Get(id)
		if cand == nil || len(cand.Params) != 1 {
			continue
		}
		if types.Matches(cand.Params[0].Type, other) {
			return cand
		}
	}
	return nil
}

// resolveBinaryOperator implements spec §4.1's binary dispatch: compute
// each operand's OperatorOwner, look for a candidate on each side whose
// parameter matches the other operand, and report ambiguous/not-found.
// The teacher itself exposes no user operator overloads (only a built-in,
// type-checked switch over arithmetic/comparison tokens), so this
// algorithm's two-sided overload search is grounded in spec §4.1 directly
// rather than adapted from teacher code.
func (r *Resolver) resolveBinaryOperator(filename string, span lexer.Span, symbol string, left, right types.Type) (types.Type, bool) {
	var leftCand, rightCand *symtab.Symbol

	if owner := r.ownerSymbolFor(left); owner != nil {
		leftCand = r.findOperatorCandidate(owner, symbol, right)
	}
	if owner := r.ownerSymbolFor(right); owner != nil {
		rightCand = r.findOperatorCandidate(owner, symbol, left)
	}

	switch {
	case leftCand != nil && rightCand != nil:
		if !left.Equal(right) {
			r.report(filename, diag.AmbiguousOperator(filename, span, symbol, left.String(), right.String()))
			return nil, false
		}
		return leftCand.Result, true
	case leftCand != nil:
		return leftCand.Result, true
	case rightCand != nil:
		return rightCand.Result, true
	default:
		r.report(filename, diag.OperatorNotFound(filename, span, symbol, left.String()))
		return nil, false
	}
}

// resolveUnaryOperator mirrors resolveBinaryOperator for a zero-parameter
// operator overload (OperatorDecl covers "both binary (one parameter) and
// unary (zero parameters) overloads").
func (r *Resolver) resolveUnaryOperator(filename string, span lexer.Span, symbol string, operand types.Type) (types.Type, bool) {
	owner := r.ownerSymbolFor(operand)
	if owner != nil {
		for _, id := range owner.OwnedScope.LookupOverloads(symbol) {
			cand := r.arena.Get(id)
			if cand != nil && len(cand.Params) == 0 {
				return cand.Result, true
			}
		}
	}
	r.report(filename, diag.OperatorNotFound(filename, span, symbol, operand.String()))
	return nil, false
}

// classifyNumberLiteral strips the lexer's optional width/kind suffix off a
// numeric lexeme and returns the native type name it denotes. A suffixless
// literal defaults to int32 (no decimal point or exponent) or float32
// (otherwise) — the catalogue has no bare "int"/"float" type, so some
// default has to be picked; this picks the 32-bit member of each family
// rather than the widest, so a literal never silently claims more precision
// than its spelling shows.
func classifyNumberLiteral(lexeme string) string {
	base, suffix := splitNumericSuffix(lexeme)
	if name, ok := numericSuffixes[suffix]; ok {
		return name
	}
	if strings.ContainsAny(base, ".eE") {
		return "float32"
	}
	return "int32"
}

var numericSuffixes = map[string]string{
	"i8": "int8", "i16": "int16", "i32": "int32", "i64": "int64", "i128": "int128",
	"u8": "uint8", "u16": "uint16", "u32": "uint32", "u64": "uint64", "u128": "uint128",
	"fx32": "fixed32", "fx128": "fixed128",
	"f32": "float32", "f128": "float128",
}

// numericSuffixesByLength lists every recognized suffix longest-first, so a
// longer suffix is always tried before any shorter one.
var numericSuffixesByLength = []string{"fx128", "fx32", "i128", "u128", "f128", "i64", "u64", "i32", "u32", "i16", "u16", "f32", "i8", "u8"}

func splitNumericSuffix(lexeme string) (base, suffix string) {
	for _, s := range numericSuffixesByLength {
		if strings.HasSuffix(lexeme, s) {
			return strings.TrimSuffix(lexeme, s), s
		}
	}
	return lexeme, ""
}
