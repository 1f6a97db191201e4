package check

import (
	"strconv"

	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

// foldArrayLength evaluates the narrow class of compile-time expressions
// the checker is willing to fold on its own: an integer literal, or a
// reference to a global const with a foldable literal initializer.
// Anything else yields LenKnown=false; later passes (out of core scope)
// are responsible for full constant evaluation.
func (c *Checker) foldArrayLength(expr ast.Expression) (uint32, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Kind == ast.LitInteger || e.Kind == ast.LitUnsuffixedInt {
			if n, err := strconv.ParseUint(e.Raw, 10, 32); err == nil {
				return uint32(n), true
			}
		}
	case *ast.PathExpr:
		if !e.Path.Qualified() {
			if n, ok := c.sym.ConstIntValue(e.Path.Name); ok && n >= 0 {
				return uint32(n), true
			}
		}
	}
	return 0, false
}

// resolveTypeExpr converts the parser's as-written TypeExpr into the
// checker's resolved Type lattice value, validating the Optional
// restriction (spec.md §4.2) and array-length typing (spec.md §4.1) as
// it goes. te's span is the one its diagnostics report.
func (c *Checker) resolveTypeExpr(te *ast.TypeExpr) Type {
	if te == nil {
		return Unit()
	}
	switch te.Kind {
	case ast.TypeUnit:
		return Unit()
	case ast.TypeAddress:
		return Address()
	case ast.TypeBoolean:
		return Boolean()
	case ast.TypeField:
		return Field()
	case ast.TypeGroup:
		return Group()
	case ast.TypeScalar:
		return Scalar()
	case ast.TypeSignature:
		return Signature()
	case ast.TypeString:
		return String()
	case ast.TypeInteger:
		return Integer(te.Integer)
	case ast.TypeArray:
		elem := c.resolveTypeExpr(te.Elem)
		length, known := c.foldArrayLength(te.Length)
		if !known {
			return Type{Cat: ArrayT, Elem: &elem, LenKnown: false}
		}
		if int(length) > c.cfg.MaxArrayElements {
			c.diags.Error(diag.Error{Code: diag.CodeArrayTooLarge, Span: te.Span(), Msg: "array length exceeds the configured maximum"})
		}
		if length == 0 {
			c.diags.Error(diag.Error{Code: diag.CodeArrayEmpty, Span: te.Span(), Msg: "array type may not have length 0"})
		}
		return Array(elem, length)
	case ast.TypeTuple:
		if len(te.Elems) < 2 {
			c.diags.Error(diag.Error{Code: diag.CodeIncorrectTupleLength, Span: te.Span(), Msg: "tuple type requires at least 2 elements"})
			return Err()
		}
		elems := make([]Type, len(te.Elems))
		for i, et := range te.Elems {
			elems[i] = c.resolveTypeExpr(et)
			if elems[i].Cat == TupleT {
				c.diags.Error(diag.Error{Code: diag.CodeNestedTupleType, Span: et.Span(), Msg: "tuple types may not nest"})
				elems[i] = Err()
			}
		}
		return Tuple(elems...)
	case ast.TypeMapping:
		key := c.resolveTypeExpr(te.Key)
		value := c.resolveTypeExpr(te.Value)
		return Mapping(key, value)
	case ast.TypeOptional:
		inner := c.resolveTypeExpr(te.Elem)
		if !IsValidOptionalInner(inner, c.sym.ResolveComposite, c.cfg.MaxRecordDepth) {
			c.diags.Error(diag.Error{Code: diag.CodeTypeNotAllowedInOption, Span: te.Span(), Msg: "type " + inner.String() + " is not allowed inside an optional"})
			return Optional(Err())
		}
		return Optional(inner)
	case ast.TypeVector:
		return Vector(c.resolveTypeExpr(te.Elem))
	case ast.TypeComposite:
		ref := CompositeRef{Program: te.Path.Program, Name: te.Path.Name}
		for _, arg := range te.ConstArgs {
			if n, ok := c.foldArrayLength(arg); ok {
				ref.ConstArgs = append(ref.ConstArgs, int64(n))
			}
		}
		if desc, ok := c.sym.LookupStruct(te.Path); ok {
			c.structs.AddEdge(c.currentStructName, desc.Name)
			c.structs.MarkUsed(desc.Name)
		}
		return Composite(ref)
	case ast.TypeFuture:
		inputs := make([]Type, len(te.FutureArgs))
		for i, f := range te.FutureArgs {
			inputs[i] = c.resolveTypeExpr(f)
		}
		return Future(FutureInfo{Inputs: inputs, Explicit: len(te.FutureArgs) > 0})
	default:
		return Err()
	}
}
