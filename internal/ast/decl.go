package ast

func (*StructDecl) declNode()      {}
func (*FieldDecl) declNode()       {}
func (*ConstDecl) declNode()       {}
func (*DefineDecl) declNode()      {}
func (*EntryDecl) declNode()       {}
func (*FuncDecl) declNode()        {}
func (*ConstructorDecl) declNode() {}
func (*DestructorDecl) declNode() {}
func (*StringConvDecl) declNode()  {}
func (*CastDecl) declNode()        {}
func (*OperatorDecl) declNode()    {}
func (*ExternFuncDecl) declNode()  {}

// Mutability is the field/var declaration qualifier: spec §3.2 distinguishes
// const (compile-time, foldable), immutable (write-once), and mutable.
type Mutability int

const (
	Immutable Mutability = iota
	Mutable
	Const
)

// TypeParam is one entry in a declaration's `<T, U>` type-parameter list.
type TypeParam struct {
	Name string
}

// Param is one function/constructor/operator parameter.
type Param struct {
	Name     string
	Type     TypeExpr
	Variadic bool
	Default  Expr // nil if the parameter has no default value
}

// StructDecl is `struct Name<T> { ... }`, containing every other
// declaration kind that can live inside a struct body.
type StructDecl struct {
	BaseNode
	Name       string
	Mutable    bool // true for `mutable struct`; propagates to member mutability checks
	TypeParams []TypeParam
	Members    []Decl
}

// FieldDecl is a field: `mutable x: int`, `const Pi: float64 = 3.14`,
// optionally `static`.
type FieldDecl struct {
	BaseNode
	Name       string
	Type       TypeExpr // nil if inferred from Init
	Init       Expr     // nil if none
	Mutability Mutability
	Static     bool
}

// ConstDecl is a top-level `const Name: T = expr`.
type ConstDecl struct {
	BaseNode
	Name string
	Type TypeExpr
	Init Expr
}

// DefineDecl is a type alias: `def Name = T`.
type DefineDecl struct {
	BaseNode
	Name string
	Type TypeExpr
}

// EntryDecl is the program entry point: `entry(args: string[]) { ... }`.
type EntryDecl struct {
	BaseNode
	Params []Param
	Body   *BlockStmt
}

// FuncDecl is `fun name<T>(params) :> Result { ... }` or `=> expr`,
// optionally `static`.
type FuncDecl struct {
	BaseNode
	Name       string
	TypeParams []TypeParam
	Params     []Param
	Result     TypeExpr // nil for no declared return value
	Body       *BlockStmt
	ExprBody   Expr // non-nil for `=> expr` form; mutually exclusive with Body
	Static     bool
}

// ConstructorDecl is `constructor(params) { ... }`.
type ConstructorDecl struct {
	BaseNode
	Params []Param
	Body   *BlockStmt
}

// DestructorDecl is `destructor() { ... }`.
type DestructorDecl struct {
	BaseNode
	Body *BlockStmt
}

// StringConvDecl is the `string` conversion-function declaration:
// `string() :> string => expr`, distinct from the native `string` type.
type StringConvDecl struct {
	BaseNode
	Body     *BlockStmt
	ExprBody Expr
}

// CastDecl is `cast implicit/explicit :> T { ... }`.
type CastDecl struct {
	BaseNode
	Explicit bool
	Result   TypeExpr
	Body     *BlockStmt
	ExprBody Expr
}

// OperatorDecl is `operator +(other: T) :> R { ... }`, covering both binary
// (one parameter) and unary (zero parameters) overloads.
type OperatorDecl struct {
	BaseNode
	Symbol string
	Params []Param
	Result TypeExpr
	Body   *BlockStmt
	ExprBody Expr
}

// ExternFuncDecl declares an external function signature pulled in through
// an import (spec §4.3's external-function import case): no body, just a
// name and signature to register.
type ExternFuncDecl struct {
	BaseNode
	Name   string
	Params []Param
	Result TypeExpr
}
