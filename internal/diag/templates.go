package diag

import (
	"fmt"

	"github.com/hassan/langcore/internal/lexer"
)

// Each function below is a named constructor for one §7 error kind,
// generalizing the teacher's single `(a *Analyzer) error(pos, message)`
// helper into one constructor per diagnosis so every call site states
// which kind of problem it found instead of formatting ad hoc text.

func DuplicateDeclaration(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("%q is already declared in this scope", name),
		Span:    &span,
		File:    file,
	}
}

func ShadowedDeclaration(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("%q shadows a declaration in the same scope", name),
		Span:    &span,
		File:    file,
	}
}

func UnresolvedName(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("undefined name %q", name),
		Span:    &span,
		File:    file,
	}
}

func UnresolvedImport(file string, span lexer.Span, path string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("cannot resolve import %q", path),
		Span:    &span,
		File:    file,
	}
}

func UnresolvedType(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("undefined type %q", name),
		Span:    &span,
		File:    file,
	}
}

func OperatorNotFound(file string, span lexer.Span, symbol, owner string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("no overload of operator %q is defined for %s", symbol, owner),
		Span:    &span,
		File:    file,
	}
}

func CastNotFound(file string, span lexer.Span, from, to string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("no cast from %s to %s is defined", from, to),
		Span:    &span,
		File:    file,
	}
}

func TypeMismatch(file string, span lexer.Span, want, have string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("expected type %s, got %s", want, have),
		Span:    &span,
		File:    file,
	}
}

func DuplicateSignature(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("an overload of %q with an identical signature already exists", name),
		Span:    &span,
		File:    file,
	}
}

func AssignToImmutable(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("cannot assign to %q: it is not mutable", name),
		Span:    &span,
		File:    file,
	}
}

func StaticInstanceMismatch(file string, span lexer.Span, name string, wantStatic bool) Diagnostic {
	verb := "an instance member"
	if wantStatic {
		verb = "a static member"
	}
	return Diagnostic{
		Message: fmt.Sprintf("%q is not %s here", name, verb),
		Span:    &span,
		File:    file,
	}
}

func BreakOutsideLoop(file string, span lexer.Span) Diagnostic {
	return Diagnostic{Message: "break outside of a loop or switch", Span: &span, File: file}
}

func ContinueOutsideLoop(file string, span lexer.Span) Diagnostic {
	return Diagnostic{Message: "continue outside of a loop", Span: &span, File: file}
}

func NotYetImplemented(file string, span lexer.Span, what string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("%s is not yet supported by this analyzer", what),
		Span:    &span,
		File:    file,
	}
}

func MaxDiagnosticsExceeded(file string, max int) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("more than %d diagnostics reported in %s; suppressing the rest", max, file),
		File:    file,
	}
}

func NativeTypeShadowed(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("%q is a native type and cannot be redeclared", name),
		Span:    &span,
		File:    file,
	}
}

func ModuleNotFound(file string, span lexer.Span, path string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("module %q not found", path),
		Span:    &span,
		File:    file,
	}
}

func AmbiguousOperator(file string, span lexer.Span, symbol, left, right string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("ambiguous invocation of operator %q between %s and %s", symbol, left, right),
		Span:    &span,
		File:    file,
	}
}

func VariadicNotLast(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("variadic parameter %q must be the last parameter", name),
		Span:    &span,
		File:    file,
	}
}

func VariadicNotArray(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("variadic parameter %q must have an array type", name),
		Span:    &span,
		File:    file,
	}
}

func DefaultParameterOrder(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("parameter %q must have a default value because a preceding parameter has one", name),
		Span:    &span,
		File:    file,
	}
}

func TypeCannotBeInferred(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("type of %q cannot be inferred without a declared type or initializer", name),
		Span:    &span,
		File:    file,
	}
}

func DuplicateMember(file string, span lexer.Span, what, typeName string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("%s already declared for %s", what, typeName),
		Span:    &span,
		File:    file,
	}
}

func ImmutableFieldMutableDecl(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("cannot declare field %q as mutable because the parent type is immutable", name),
		Span:    &span,
		File:    file,
	}
}

func ImmutableFieldAssignment(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("%q is immutable and cannot be modified outside of a constructor", name),
		Span:    &span,
		File:    file,
	}
}

func ConstantInitializerNotConstant(file string, span lexer.Span, name string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("constant initializer for %q must be a compile-time constant expression", name),
		Span:    &span,
		File:    file,
	}
}

func InstanceAccessOfStatic(file string, span lexer.Span, name, typeName string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("%q is static; use %s.%s instead", name, typeName, name),
		Span:    &span,
		File:    file,
	}
}

func NotCallable(file string, span lexer.Span) Diagnostic {
	return Diagnostic{
		Message: "expression is not callable",
		Span:    &span,
		File:    file,
	}
}

func InvalidAssignmentTarget(file string, span lexer.Span) Diagnostic {
	return Diagnostic{
		Message: "invalid assignment target",
		Span:    &span,
		File:    file,
	}
}

func ScopeStackUnbalanced(file string) Diagnostic {
	return Diagnostic{
		Message: fmt.Sprintf("internal error: scope stack unbalanced while analyzing %s", file),
		File:    file,
	}
}
