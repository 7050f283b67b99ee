package types

// NativeWidth selects whether `nint`/`nuint` alias the 64-bit or 32-bit
// integer types, per spec §4.2. Config (internal/config) reads this from
// langcore.yaml; the default is 64-bit.
type NativeWidth int

const (
	Width64 NativeWidth = iota
	Width32
)

// NativeTypeNames lists every native type name the language reserves, in
// the catalogue order spec §3.1 groups them: signed integers, unsigned
// integers, floats, fixed-point, bool, char, string. `nint`/`nuint` resolve
// to BaseType{Name: "int64"|"int32"} (etc.) via ResolveNativeWidth, not to a
// distinct type — so `nint` and `int64` are Equal under a 64-bit config,
// matching how the rest of the catalogue has no separate alias identity.
var NativeTypeNames = []string{
	"int8", "int16", "int32", "int64", "int128",
	"uint8", "uint16", "uint32", "uint64", "uint128",
	"nint", "nuint",
	"float32", "float128",
	"fixed32", "fixed128",
	"bool", "char", "string",
}

// IsNativeTypeName reports whether name is one of the reserved native type
// names. These names cannot be shadowed by a struct, type parameter, or
// import alias (spec §3.1's "cannot be shadowed" invariant); the Collector
// enforces that by checking this before inserting any competing symbol.
func IsNativeTypeName(name string) bool {
	for _, n := range NativeTypeNames {
		if n == name {
			return true
		}
	}
	return false
}

// ResolveNativeWidth maps "nint"/"nuint" to their concrete width-specific
// BaseType under the given NativeWidth; every other native name maps to
// itself unchanged.
func ResolveNativeWidth(name string, width NativeWidth) string {
	switch name {
	case "nint":
		if width == Width32 {
			return "int32"
		}
		return "int64"
	case "nuint":
		if width == Width32 {
			return "uint32"
		}
		return "uint64"
	default:
		return name
	}
}

// IsIntegerType reports whether name is one of the signed or unsigned
// integer native types (nint/nuint included, pre- or post-resolution).
func IsIntegerType(name string) bool {
	switch name {
	case "int8", "int16", "int32", "int64", "int128",
		"uint8", "uint16", "uint32", "uint64", "uint128",
		"nint", "nuint":
		return true
	default:
		return false
	}
}

// IsFloatType reports whether name is one of the floating-point or
// fixed-point native types.
func IsFloatType(name string) bool {
	switch name {
	case "float32", "float128", "fixed32", "fixed128":
		return true
	default:
		return false
	}
}

// IsNumericType reports whether name is any native numeric type.
func IsNumericType(name string) bool {
	return IsIntegerType(name) || IsFloatType(name)
}
