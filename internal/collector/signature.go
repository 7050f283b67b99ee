package collector

import "github.com/hassan/langcore/internal/symtab"

// SignatureMatches reports whether two function-like symbols collide under
// spec §4.3's overload-uniqueness rule: names equal (callers compare that
// separately, since both lists always share a lookup key already), parameter
// counts equal, and each position's parameter type structurally equal — a
// missing type at the same position on both sides counts as equal, one
// missing and one present counts as a mismatch. Variadic-ness, default
// values, and return type never participate.
func SignatureMatches(a, b []symtab.Param) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		aNil, bNil := a[i].Type == nil, b[i].Type == nil
		if aNil != bNil {
			return false
		}
		if aNil {
			continue
		}
		if !a[i].Type.Equal(b[i].Type) {
			return false
		}
	}
	return true
}
