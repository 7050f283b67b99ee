// Package types implements the semantic Type Model: the shapes a resolved
// expression or declaration can have, independent of how they were spelled
// in source (that's ast.TypeExpr's job). Every Type is a small immutable
// value; composite kinds hold other Types by value, so two Type values
// describe the same type iff Equal reports true — there is no separate
// interning step.
package types

import "strings"

// Type is any semantic type: Base, Tuple, Generic, Mutable, Array,
// Nullable, Reference, or Function, per spec §3.1/§4.1.
type Type interface {
	String() string
	// Equal reports structural equality, not identity: two separately
	// built BaseTypes naming the same struct are Equal.
	Equal(other Type) bool
	isType()
}

// BaseType names a native type or a user-declared struct by its qualified
// name (e.g. "int32", "app.core.Point"). Two BaseTypes are Equal iff their
// Name matches and, for generic structs, their type arguments match
// pairwise.
type BaseType struct {
	Name string
	Args []Type // non-nil only when Name refers to a generic struct
}

func (b BaseType) isType() {}
func (b BaseType) String() string {
	if len(b.Args) == 0 {
		return b.Name
	}
	parts := make([]string, len(b.Args))
	for i, a := range b.Args {
		parts[i] = a.String()
	}
	return b.Name + "<" + strings.Join(parts, ", ") + ">"
}
func (b BaseType) Equal(other Type) bool {
	o, ok := other.(BaseType)
	if !ok || o.Name != b.Name || len(o.Args) != len(b.Args) {
		return false
	}
	for i := range b.Args {
		if !b.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// TupleType is a fixed-arity, fixed-shape aggregate `(T1, T2, ...)`.
type TupleType struct {
	Elements []Type
}

func (t TupleType) isType() {}
func (t TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (t TupleType) Equal(other Type) bool {
	o, ok := other.(TupleType)
	if !ok || len(o.Elements) != len(t.Elements) {
		return false
	}
	for i := range t.Elements {
		if !t.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// GenericType is a yet-uninstantiated reference to a generic struct's own
// type parameter, distinct from BaseType so the Resolver can tell "T" (a
// type parameter in scope) from "Point" (a concrete struct name) without a
// symbol-table round trip at type-equality time.
type GenericType struct {
	Param string
}

func (g GenericType) isType() {}
func (g GenericType) String() string { return g.Param }
func (g GenericType) Equal(other Type) bool {
	o, ok := other.(GenericType)
	return ok && o.Param == g.Param
}

// MutableType wraps a type declared `mutable T`. Mutability participates in
// equality: `mutable int` and `int` are different Types, matching spec
// §3.1's field/variable mutability distinction.
type MutableType struct {
	Inner Type
}

func (m MutableType) isType() {}
func (m MutableType) String() string { return "mutable " + m.Inner.String() }
func (m MutableType) Equal(other Type) bool {
	o, ok := other.(MutableType)
	return ok && m.Inner.Equal(o.Inner)
}

// ArrayType is `T[]`. Operator lookup on an ArrayType routes to the native
// `$Array` type's operator list rather than T's, per spec §4.1.
type ArrayType struct {
	Element Type
}

func (a ArrayType) isType() {}
func (a ArrayType) String() string { return a.Element.String() + "[]" }
func (a ArrayType) Equal(other Type) bool {
	o, ok := other.(ArrayType)
	return ok && a.Element.Equal(o.Element)
}

// NullableType is `T?`. Equality has the one structural relaxation spec
// §3.1 requires: a non-Nullable T matches (but is not Equal to) T?; callers
// that need that relaxed comparison use Matches, not Equal.
type NullableType struct {
	Inner Type
}

func (n NullableType) isType() {}
func (n NullableType) String() string { return n.Inner.String() + "?" }
func (n NullableType) Equal(other Type) bool {
	o, ok := other.(NullableType)
	return ok && n.Inner.Equal(o.Inner)
}

// ReferenceType is `ref T`, a by-reference parameter or binding. Immutable
// marks a `ref immutable T` that may not be assigned through; it is excluded
// from Equal, per spec §3.1's "flag excluded from equality" — two references
// to the same inner type are the same type whether or not either is
// immutable.
type ReferenceType struct {
	Inner     Type
	Immutable bool
}

func (r ReferenceType) isType() {}
func (r ReferenceType) String() string {
	if r.Immutable {
		return "ref immutable " + r.Inner.String()
	}
	return "ref " + r.Inner.String()
}
func (r ReferenceType) Equal(other Type) bool {
	o, ok := other.(ReferenceType)
	return ok && r.Inner.Equal(o.Inner)
}

// FunctionType is a lambda/function value's signature.
type FunctionType struct {
	Params []Type
	Result Type // nil if the function returns nothing
}

func (f FunctionType) isType() {}
func (f FunctionType) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	s := "(" + strings.Join(parts, ", ") + ")"
	if f.Result != nil {
		s += " :> " + f.Result.String()
	}
	return s
}
func (f FunctionType) Equal(other Type) bool {
	o, ok := other.(FunctionType)
	if !ok || len(o.Params) != len(f.Params) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	if (f.Result == nil) != (o.Result == nil) {
		return false
	}
	if f.Result == nil {
		return true
	}
	return f.Result.Equal(o.Result)
}

// Matches reports whether a value of type `have` can be used where `want`
// is expected, under the single implicit conversion this module allows
// (spec §9 Open Question, resolved in SPEC_FULL §3): a non-Nullable T
// matches T?. No arithmetic promotion, no other relaxation.
func Matches(want, have Type) bool {
	if want.Equal(have) {
		return true
	}
	if wn, ok := want.(NullableType); ok {
		if hn, ok := have.(NullableType); ok {
			return Matches(wn.Inner, hn.Inner)
		}
		return Matches(wn.Inner, have)
	}
	return false
}

// OperatorOwner returns the BaseType whose operator-overload list a lookup
// for t should search, per spec §4.1's routing rules: Base routes to
// itself, Array routes to the native `$Array` type, Nullable and Mutable
// recurse into their inner type. A Nullable operand is therefore dispatched
// against its inner type's overloads: a candidate binds when its parameter
// Matches the other operand. Tuple, Generic, Reference, and Function have no
// operator owner.
func OperatorOwner(t Type) (BaseType, bool) {
	switch v := t.(type) {
	case BaseType:
		return v, true
	case ArrayType:
		return BaseType{Name: "$Array"}, true
	case NullableType:
		return OperatorOwner(v.Inner)
	case MutableType:
		return OperatorOwner(v.Inner)
	default:
		return BaseType{}, false
	}
}
