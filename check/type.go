// Package check is the type-checking and static-analysis core: the type
// lattice, symbol table, type table, intrinsic dispatch, and the
// expression/statement/signature checkers that walk a parsed AST and
// produce a filled type table, a call graph, a struct graph, and a
// stream of diagnostics.
//
// The package is laid out the way the teacher's interp package is laid
// out: one flat package, many concern-scoped files, a long-lived driver
// struct (Checker) built through a functional-options constructor.
package check

import (
	"fmt"

	"github.com/leo-lang/leotype/ast"
)

// Cat discriminates the type lattice's tagged variants.
type Cat uint8

const (
	AddressT Cat = iota
	BooleanT
	FieldT
	GroupT
	ScalarT
	SignatureT
	StringT
	UnitT
	IntegerT
	ArrayT
	TupleT
	MappingT
	OptionalT
	VectorT
	CompositeT
	FutureT
	NumericT // unresolved-literal placeholder; never user-observable at pass exit
	ErrT     // propagation sink; absorbs in UserEq
)

// CompositeRef names a struct or record type, optionally in another
// program, with its const-generic arguments.
type CompositeRef struct {
	Program    string // empty when the composite belongs to the current program
	Name       string
	ConstArgs  []int64 // resolved const-argument values, in declaration order
}

// FutureInfo carries a Future type's inferred input-type list and the
// provenance needed by the finalizer bridge.
type FutureInfo struct {
	Inputs   []Type
	Origin   string // qualified name of the async function that produced it, "" if unknown
	Explicit bool   // false => produced by an async block: no externally observable input list
}

// Type is the tagged union every expression and declared slot resolves
// to. Only the fields relevant to Cat are meaningful; the zero value of
// every other field is ignored.
type Type struct {
	Cat       Cat
	Integer   ast.IntegerWidth // IntegerT
	Elem      *Type            // ArrayT, VectorT, OptionalT
	ArrayLen  uint32           // ArrayT
	LenKnown  bool             // ArrayT: false while the length expression is still being resolved
	Elems     []Type           // TupleT, arity >= 2
	Key       *Type            // MappingT
	Value     *Type            // MappingT
	Composite *CompositeRef    // CompositeT
	Future    *FutureInfo      // FutureT
}

// Unit, Err, Numeric, Address, Boolean, Field, Group, Scalar, Signature,
// and String are stateless and so are exposed as constructors rather
// than package-level values, to avoid callers accidentally aliasing and
// mutating shared Type values through a pointer field.
func Unit() Type      { return Type{Cat: UnitT} }
func Err() Type       { return Type{Cat: ErrT} }
func Numeric() Type   { return Type{Cat: NumericT} }
func Address() Type   { return Type{Cat: AddressT} }
func Boolean() Type   { return Type{Cat: BooleanT} }
func Field() Type     { return Type{Cat: FieldT} }
func Group() Type     { return Type{Cat: GroupT} }
func Scalar() Type    { return Type{Cat: ScalarT} }
func Signature() Type { return Type{Cat: SignatureT} }
func String() Type    { return Type{Cat: StringT} }

// Integer constructs a fixed-width signed/unsigned integer type.
func Integer(w ast.IntegerWidth) Type { return Type{Cat: IntegerT, Integer: w} }

// Array constructs a fixed-length array type with a known length.
func Array(elem Type, length uint32) Type {
	return Type{Cat: ArrayT, Elem: &elem, ArrayLen: length, LenKnown: true}
}

// Tuple constructs a tuple type; panics if called with arity < 2, since
// the parser never produces a 0- or 1-element TupleExpr (nesting of
// tuples is forbidden and enforced by resolveTypeExpr and the signature
// checks, not by this constructor).
func Tuple(elems ...Type) Type {
	if len(elems) < 2 {
		panic("check: Tuple requires arity >= 2")
	}
	return Type{Cat: TupleT, Elems: elems}
}

// Mapping constructs a persistent key/value storage type.
func Mapping(key, value Type) Type {
	return Type{Cat: MappingT, Key: &key, Value: &value}
}

// Optional constructs Optional{inner}. Callers that need to enforce the
// inner-type restriction (spec §4.2) call IsValidOptionalInner first.
func Optional(inner Type) Type {
	return Type{Cat: OptionalT, Elem: &inner}
}

// Vector constructs an unbounded, growable, finalize-only collection type.
func Vector(elem Type) Type {
	return Type{Cat: VectorT, Elem: &elem}
}

// Composite constructs a named struct/record reference.
func Composite(ref CompositeRef) Type {
	return Type{Cat: CompositeT, Composite: &ref}
}

// Future constructs a Future handle type.
func Future(info FutureInfo) Type {
	return Type{Cat: FutureT, Future: &info}
}

func (t Type) String() string {
	switch t.Cat {
	case AddressT:
		return "address"
	case BooleanT:
		return "boolean"
	case FieldT:
		return "field"
	case GroupT:
		return "group"
	case ScalarT:
		return "scalar"
	case SignatureT:
		return "signature"
	case StringT:
		return "string"
	case UnitT:
		return "()"
	case IntegerT:
		return integerName(t.Integer)
	case ArrayT:
		if t.LenKnown {
			return fmt.Sprintf("[%s; %d]", t.Elem.String(), t.ArrayLen)
		}
		return fmt.Sprintf("[%s; ?]", t.Elem.String())
	case TupleT:
		s := "("
		for i, e := range t.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	case MappingT:
		return fmt.Sprintf("mapping[%s => %s]", t.Key.String(), t.Value.String())
	case OptionalT:
		return fmt.Sprintf("Optional<%s>", t.Elem.String())
	case VectorT:
		return fmt.Sprintf("Vector<%s>", t.Elem.String())
	case CompositeT:
		if t.Composite.Program != "" {
			return fmt.Sprintf("%s/%s", t.Composite.Program, t.Composite.Name)
		}
		return t.Composite.Name
	case FutureT:
		return "Future"
	case NumericT:
		return "{numeric}"
	case ErrT:
		return "{err}"
	default:
		return "{unknown}"
	}
}

func integerName(w ast.IntegerWidth) string {
	switch w {
	case ast.I8:
		return "i8"
	case ast.I16:
		return "i16"
	case ast.I32:
		return "i32"
	case ast.I64:
		return "i64"
	case ast.I128:
		return "i128"
	case ast.U8:
		return "u8"
	case ast.U16:
		return "u16"
	case ast.U32:
		return "u32"
	case ast.U64:
		return "u64"
	case ast.U128:
		return "u128"
	default:
		return "?int"
	}
}

// IsSignedInteger reports whether w is one of I8..I128.
func IsSignedInteger(w ast.IntegerWidth) bool {
	switch w {
	case ast.I8, ast.I16, ast.I32, ast.I64, ast.I128:
		return true
	default:
		return false
	}
}

// BitWidth returns the bit width of an integer kind.
func BitWidth(w ast.IntegerWidth) int {
	switch w {
	case ast.I8, ast.U8:
		return 8
	case ast.I16, ast.U16:
		return 16
	case ast.I32, ast.U32:
		return 32
	case ast.I64, ast.U64:
		return 64
	case ast.I128, ast.U128:
		return 128
	default:
		return 0
	}
}

// IsVector reports whether t is a VectorT.
func (t Type) IsVector() bool { return t.Cat == VectorT }

// IsMapping reports whether t is a MappingT.
func (t Type) IsMapping() bool { return t.Cat == MappingT }

// IsEmpty reports whether t is the Unit type.
func (t Type) IsEmpty() bool { return t.Cat == UnitT }

// IsErr reports whether t is the Err sink.
func (t Type) IsErr() bool { return t.Cat == ErrT }

// IsNumeric reports whether t is the unresolved numeric placeholder.
func (t Type) IsNumeric() bool { return t.Cat == NumericT }

// BaseElementType returns the leaf element type of nested arrays, or t
// itself if t is not an array.
func (t Type) BaseElementType() Type {
	for t.Cat == ArrayT {
		t = *t.Elem
	}
	return t
}

// UnwrapOptional peels one Optional layer, reporting whether t was one.
func UnwrapOptional(t Type) (Type, bool) {
	if t.Cat == OptionalT {
		return *t.Elem, true
	}
	return t, false
}

// IsIntegerOrBool reports whether t is an integer or boolean type,
// matching the "bool_or_int" operand-class predicate used by bitwise
// operators.
func (t Type) IsIntegerOrBool() bool {
	return t.Cat == IntegerT || t.Cat == BooleanT || t.Cat == NumericT
}

// IsFieldOrInteger matches the "field_or_int" operand-class predicate.
func (t Type) IsFieldOrInteger() bool {
	return t.Cat == FieldT || t.Cat == IntegerT || t.Cat == NumericT
}

// IsFieldGroupOrInteger matches the "field_group_or_int" operand-class
// predicate used by `*`/`+`/`-` which additionally accept Group.
func (t Type) IsFieldGroupOrInteger() bool {
	return t.Cat == FieldT || t.Cat == GroupT || t.Cat == IntegerT || t.Cat == NumericT
}

// UserEq is the "user equality" relation of spec.md §3: Err is compatible
// with anything, unqualified Composite paths compare against the current
// program, and two Futures are equal if either is non-explicit or their
// input lists are pointwise user-equal.
func UserEq(currentProgram string, a, b Type) bool {
	if a.Cat == ErrT || b.Cat == ErrT {
		return true
	}
	if a.Cat != b.Cat {
		return false
	}
	switch a.Cat {
	case IntegerT:
		return a.Integer == b.Integer
	case ArrayT:
		if a.LenKnown && b.LenKnown && a.ArrayLen != b.ArrayLen {
			return false
		}
		return UserEq(currentProgram, *a.Elem, *b.Elem)
	case TupleT:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !UserEq(currentProgram, a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	case MappingT:
		return UserEq(currentProgram, *a.Key, *b.Key) && UserEq(currentProgram, *a.Value, *b.Value)
	case OptionalT:
		return UserEq(currentProgram, *a.Elem, *b.Elem)
	case VectorT:
		return UserEq(currentProgram, *a.Elem, *b.Elem)
	case CompositeT:
		return compositeUserEq(currentProgram, a.Composite, b.Composite)
	case FutureT:
		if !a.Future.Explicit || !b.Future.Explicit {
			return true
		}
		if len(a.Future.Inputs) != len(b.Future.Inputs) {
			return false
		}
		for i := range a.Future.Inputs {
			if !UserEq(currentProgram, a.Future.Inputs[i], b.Future.Inputs[i]) {
				return false
			}
		}
		return true
	default:
		return true // same Cat, no further payload to compare
	}
}

func compositeUserEq(currentProgram string, a, b *CompositeRef) bool {
	if a.Name != b.Name {
		return false
	}
	ap, bp := a.Program, b.Program
	if ap == "" {
		ap = currentProgram
	}
	if bp == "" {
		bp = currentProgram
	}
	if ap != bp {
		return false
	}
	if len(a.ConstArgs) != len(b.ConstArgs) {
		return false
	}
	for i := range a.ConstArgs {
		if a.ConstArgs[i] != b.ConstArgs[i] {
			return false
		}
	}
	return true
}

// FlatRelaxedEq is the structural equality relation of spec.md §3: like
// UserEq but a top-level Err does not absorb — an Err-typed operand is
// equal to another Err and never to a non-Err type. Below the top level
// the comparison is UserEq's, so an Err element, member or input still
// matches any type there.
func FlatRelaxedEq(currentProgram string, a, b Type) bool {
	if a.Cat != b.Cat {
		return false
	}
	if a.Cat == ErrT {
		return true
	}
	return UserEq(currentProgram, a, b)
}

// CanCoerceTo implements spec.md §3's can_coerce_to: reflexive, plus
// T -> Optional{T}, plus struct -> record when isRecord reports the
// target composite is a record the caller holds.
func CanCoerceTo(currentProgram string, from, to Type, isRecord func(CompositeRef) bool) bool {
	if from.Cat == NumericT {
		return false // Numeric never coerces: it must be resolved first
	}
	if UserEq(currentProgram, from, to) {
		return true
	}
	if to.Cat == OptionalT {
		return CanCoerceTo(currentProgram, from, *to.Elem, isRecord)
	}
	if from.Cat == CompositeT && to.Cat == CompositeT && isRecord != nil {
		if from.Composite.Name == to.Composite.Name && isRecord(*to.Composite) {
			return true
		}
	}
	return false
}

// structResolver looks up a composite's descriptor so SizeInBits and
// IsValidOptionalInner can reach its member types.
type structResolver func(CompositeRef) (*CompositeDescriptor, bool)

// SizeInBits computes the serialized bit-width of t by summing the widths
// of its leaves; it returns an error for types containing mappings,
// futures, or unresolved structs (spec.md §4.1). The raw flag names the
// standard or *raw mode but does not change the result: both modes
// return the same width, with no alignment applied.
func SizeInBits(t Type, raw bool, resolve structResolver) (int, error) {
	switch t.Cat {
	case BooleanT:
		return 1, nil
	case AddressT, GroupT:
		return 256, nil
	case FieldT, ScalarT:
		return 251, nil
	case SignatureT:
		return 512, nil
	case IntegerT:
		return BitWidth(t.Integer), nil
	case ArrayT:
		if !t.LenKnown {
			return 0, fmt.Errorf("size_in_bits: array length not yet resolved")
		}
		elemBits, err := SizeInBits(*t.Elem, raw, resolve)
		if err != nil {
			return 0, err
		}
		return elemBits * int(t.ArrayLen), nil
	case TupleT:
		total := 0
		for _, e := range t.Elems {
			b, err := SizeInBits(e, raw, resolve)
			if err != nil {
				return 0, err
			}
			total += b
		}
		return total, nil
	case OptionalT:
		inner, err := SizeInBits(*t.Elem, raw, resolve)
		if err != nil {
			return 0, err
		}
		return inner + 1, nil // +1 discriminant bit
	case CompositeT:
		if resolve == nil {
			return 0, fmt.Errorf("size_in_bits: struct %s is unresolved", t.Composite.Name)
		}
		desc, ok := resolve(*t.Composite)
		if !ok {
			return 0, fmt.Errorf("size_in_bits: struct %s is unresolved", t.Composite.Name)
		}
		total := 0
		for _, m := range desc.Members {
			b, err := SizeInBits(m.Type, raw, resolve)
			if err != nil {
				return 0, err
			}
			total += b
		}
		return total, nil
	case MappingT:
		return 0, fmt.Errorf("size_in_bits: mapping has no serialized size")
	case FutureT:
		return 0, fmt.Errorf("size_in_bits: future has no serialized size")
	case StringT:
		return 0, fmt.Errorf("size_in_bits: string has no fixed serialized size")
	case UnitT:
		return 0, nil
	default:
		return 0, fmt.Errorf("size_in_bits: type %s has no serialized size", t.String())
	}
}
