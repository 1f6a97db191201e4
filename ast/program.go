package ast

// Mode is the as-written input/output visibility annotation.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeConstant
	ModePublic
	ModePrivate
)

// FunctionVariant is the as-written function kind.
type FunctionVariant uint8

const (
	VariantInline FunctionVariant = iota
	VariantFunction
	VariantTransition
	VariantAsyncTransition
	VariantAsyncFunction
)

// Param is one function input: a name, declared type, and mode.
type Param struct {
	Base
	Name Identifier
	Type *TypeExpr
	Mode Mode
}

// Output is one declared return slot: a type and a mode (constant-mode
// outputs are rejected by the signature checker, never by the parser).
type Output struct {
	Type *TypeExpr
	Mode Mode
}

// FunctionDecl is a top-level (or module-path-qualified) function
// definition of any FunctionVariant.
type FunctionDecl struct {
	Base
	Name         Identifier
	Variant      FunctionVariant
	ConstParams  []Param
	Inputs       []Param
	Outputs      []Output
	Body         *Block
	ModulePath   []string
}

// Member is one field of a struct or record.
type Member struct {
	Name Identifier
	Type *TypeExpr
}

// CompositeDecl is a struct or record type definition.
type CompositeDecl struct {
	Base
	Name        Identifier
	IsRecord    bool
	ConstParams []Param
	Members     []Member
}

// MappingDecl is a program-storage `mapping` declaration.
type MappingDecl struct {
	Base
	Name  Identifier
	Key   *TypeExpr
	Value *TypeExpr
}

// ConstDecl is a top-level `const` declaration.
type ConstDecl struct {
	Base
	Name    Identifier
	Type    *TypeExpr
	Value   Expression
}

// Program is one compilation unit: a single Leo program with its own
// declarations, optionally importing other programs by their external
// path (e.g. "token.aleo").
type Program struct {
	Name      string
	Imports   []string
	Consts    []*ConstDecl
	Structs   []*CompositeDecl
	Mappings  []*MappingDecl
	Functions []*FunctionDecl
}

// SymbolSeed is the pre-resolution view of one or more programs (the
// current program plus every program it imports) handed to the checker
// before it begins signature checking. It is produced by the ambient
// loader, never by the checker itself.
type SymbolSeed struct {
	Current *Program
	Imports map[string]*Program // keyed by external program name, e.g. "token.aleo"
}
