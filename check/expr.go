package check

import (
	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

// LHSKind classifies the result of visitAssignTarget (spec.md §4.5,
// "visit_expression_assign returns {type, kind}").
type LHSKind uint8

const (
	LHSErr LHSKind = iota
	LHSLocal
	LHSStorage
	LHSExternalStorage
)

func numericAllowedTarget(t Type) bool {
	switch t.Cat {
	case IntegerT, FieldT, GroupT, ScalarT:
		return true
	default:
		return false
	}
}

func (c *Checker) errAt(code diag.Code, span ast.Span, msg string) {
	c.diags.Error(diag.Error{Code: code, Span: span, Msg: msg})
}

func (c *Checker) isRecordComposite(ref CompositeRef) bool {
	desc, ok := c.sym.LookupStruct(ast.Path{Program: ref.Program, Name: ref.Name})
	return ok && desc.IsRecord
}

// checkAgainstExpected applies the final "assert the result against
// expected" step every VisitExpr case ends with (spec.md §4.5 step 5).
func (c *Checker) checkAgainstExpected(result Type, expected *Type, span ast.Span) Type {
	if expected == nil || result.Cat == ErrT {
		return result
	}
	if !CanCoerceTo(c.currentProgram, result, *expected, c.isRecordComposite) {
		c.errAt(diag.CodeExpectedGotType, span, "expected "+expected.String()+", got "+result.String())
		return Err()
	}
	return result
}

func (c *Checker) inFinalizeContext() bool {
	return c.state.variant == ast.VariantAsyncFunction || c.state.inAsyncBlock
}

// reconcileNumeric is the "numeric-inference reconciliation" of spec.md
// §4.5 binary-operator rule 2: both-Numeric is an inference failure on
// both; one-Numeric is resolved to the other's concrete type.
func (c *Checker) reconcileNumeric(a, b Type, span ast.Span) (Type, Type) {
	if a.Cat == NumericT && b.Cat == NumericT {
		c.errAt(diag.CodeCouldNotDetermineType, span, "could not determine type")
		return Err(), Err()
	}
	if a.Cat == NumericT {
		return b, b
	}
	if b.Cat == NumericT {
		return a, a
	}
	return a, b
}

// VisitExpr is the bidirectional synthesis/checking entry point (spec.md
// §4.5): every call stores the resulting type in the type table keyed by
// the node's ID.
func (c *Checker) VisitExpr(e ast.Expression, expected *Type) Type {
	switch n := e.(type) {
	case *ast.Literal:
		return c.visitLiteral(n, expected)
	case *ast.PathExpr:
		return c.visitPath(n, expected)
	case *ast.Unary:
		return c.visitUnary(n, expected)
	case *ast.Binary:
		return c.visitBinary(n, expected)
	case *ast.Ternary:
		return c.visitTernary(n, expected)
	case *ast.Cast:
		return c.visitCast(n, expected)
	case *ast.Call:
		return c.visitCall(n, expected)
	case *ast.CompositeExpr:
		return c.visitComposite(n, expected)
	case *ast.ArrayExpr:
		return c.visitArray(n, expected)
	case *ast.RepeatExpr:
		return c.visitRepeat(n, expected)
	case *ast.TupleExpr:
		return c.visitTuple(n, expected)
	case *ast.Access:
		return c.visitAccess(n, expected)
	case *ast.AsyncExpr:
		return c.visitAsyncExpr(n, expected)
	default:
		return Err()
	}
}

func (c *Checker) visitLiteral(lit *ast.Literal, expected *Type) Type {
	var t Type
	switch lit.Kind {
	case ast.LitUnsuffixedInt:
		if expected != nil {
			target := *expected
			if target.Cat == OptionalT {
				target = *target.Elem
			}
			if numericAllowedTarget(target) {
				c.types.Set(lit.ID(), target)
				return target
			}
		}
		t = Numeric()
	case ast.LitInteger:
		t = Integer(lit.Integer)
	case ast.LitBoolean:
		t = Boolean()
	case ast.LitField:
		t = Field()
	case ast.LitGroup:
		t = Group()
	case ast.LitScalar:
		t = Scalar()
	case ast.LitString:
		t = String()
	case ast.LitAddress:
		t = Address()
	case ast.LitNone:
		if expected != nil && expected.Cat == OptionalT {
			t = *expected
		} else {
			t = Optional(Err())
		}
	default:
		t = Err()
	}
	c.types.Set(lit.ID(), t)
	return t
}

func (c *Checker) visitPath(pe *ast.PathExpr, expected *Type) Type {
	v, ok := c.sym.LookupVariable(pe.Path.Name)
	if !ok {
		sym, okSym := c.sym.LookupPath(pe.Path)
		if !okSym {
			c.errAt(diag.CodeSymbolNotFound, pe.Span(), "unknown name "+pe.Path.Name)
			c.types.Set(pe.ID(), Err())
			return Err()
		}
		if sym.Kind == symVar {
			v = sym.Var
		} else {
			c.errAt(diag.CodeSymbolNotFound, pe.Span(), pe.Path.Name+" is not a value")
			c.types.Set(pe.ID(), Err())
			return Err()
		}
	}
	c.types.Set(pe.ID(), v.Type)
	return c.checkAgainstExpected(v.Type, expected, pe.Span())
}

func (c *Checker) visitUnary(u *ast.Unary, expected *Type) Type {
	operand := c.VisitExpr(u.Operand, expected)
	var result Type
	switch u.Op {
	case ast.OpNeg:
		if !operand.IsFieldGroupOrInteger() {
			c.errAt(diag.CodeOperationTypeMismatch, u.Span(), "negation requires a field, group, or integer operand")
			result = Err()
		} else {
			result = operand
		}
	case ast.OpNot:
		if !operand.IsIntegerOrBool() {
			c.errAt(diag.CodeOperationTypeMismatch, u.Span(), "logical not requires a boolean or integer operand")
			result = Err()
		} else {
			result = operand
		}
	case ast.OpBitNot:
		if !operand.IsIntegerOrBool() {
			c.errAt(diag.CodeOperationTypeMismatch, u.Span(), "bitwise not requires a boolean or integer operand")
			result = Err()
		} else {
			result = operand
		}
	case ast.OpSquare, ast.OpSquareRoot, ast.OpInverse, ast.OpDouble:
		if operand.Cat != FieldT && operand.Cat != NumericT {
			c.errAt(diag.CodeOperationTypeMismatch, u.Span(), "expected a field operand")
			result = Err()
		} else {
			result = Field()
		}
	case ast.OpAbs, ast.OpAbsWrapped:
		if operand.Cat != IntegerT || !IsSignedInteger(operand.Integer) {
			c.errAt(diag.CodeOperationTypeMismatch, u.Span(), "expected a signed integer operand")
			result = Err()
		} else {
			result = operand
		}
	case ast.OpToXCoordinate, ast.OpToYCoordinate:
		if operand.Cat != GroupT {
			c.errAt(diag.CodeOperationTypeMismatch, u.Span(), "expected a group operand")
			result = Err()
		} else {
			result = Field()
		}
	default:
		result = Err()
	}
	c.types.Set(u.ID(), result)
	return c.checkAgainstExpected(result, expected, u.Span())
}

func isNoneLiteral(e ast.Expression) bool {
	lit, ok := e.(*ast.Literal)
	return ok && lit.Kind == ast.LitNone
}

func (c *Checker) visitBinary(b *ast.Binary, expected *Type) Type {
	if b.Op == ast.OpEq || b.Op == ast.OpNeq {
		return c.visitEquality(b, expected)
	}

	var opExpected *Type
	if expected != nil {
		e := *expected
		if e.Cat == OptionalT {
			e = *e.Elem
		}
		opExpected = &e
	}

	switch b.Op {
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		left := c.VisitExpr(b.Left, nil)
		right := c.VisitExpr(b.Right, nil)
		left, right = c.reconcileNumeric(left, right, b.Span())
		if !left.IsFieldOrInteger() || !UserEq(c.currentProgram, left, right) {
			c.errAt(diag.CodeOperationTypeMismatch, b.Span(), "comparison requires matching field or integer operands")
		}
		result := Boolean()
		c.types.Set(b.ID(), result)
		return c.checkAgainstExpected(result, expected, b.Span())
	case ast.OpShl, ast.OpShr:
		left := c.VisitExpr(b.Left, opExpected)
		u32 := Integer(ast.U32)
		right := c.VisitExpr(b.Right, nil)
		if right.Cat != IntegerT || !(right.Integer == ast.U8 || right.Integer == ast.U16 || right.Integer == ast.U32) {
			if right.Cat != NumericT {
				c.errAt(diag.CodeOperationTypeMismatch, b.Span(), "shift amount must be u8, u16, or u32")
			} else {
				c.VisitExpr(b.Right, &u32)
			}
		}
		if !left.IsFieldOrInteger() {
			c.errAt(diag.CodeOperationTypeMismatch, b.Span(), "shift requires an integer operand")
		}
		c.types.Set(b.ID(), left)
		return c.checkAgainstExpected(left, expected, b.Span())
	case ast.OpPow:
		left := c.VisitExpr(b.Left, nil)
		right := c.VisitExpr(b.Right, nil)
		var result Type
		switch {
		case left.Cat == FieldT && (right.Cat == FieldT || right.Cat == NumericT):
			result = Field()
		case left.Cat == IntegerT && (right.Cat == NumericT || (right.Cat == IntegerT && (right.Integer == ast.U8 || right.Integer == ast.U16 || right.Integer == ast.U32))):
			result = left
			if right.Cat == NumericT {
				if opExpected != nil {
					c.VisitExpr(b.Right, opExpected)
				} else {
					u32 := Integer(ast.U32)
					c.VisitExpr(b.Right, &u32)
				}
			}
		default:
			c.errAt(diag.CodeMulPowTypeMismatch, b.Span(), "exponent operand types are incompatible")
			result = Err()
		}
		c.types.Set(b.ID(), result)
		return c.checkAgainstExpected(result, expected, b.Span())
	case ast.OpMul:
		left := c.VisitExpr(b.Left, opExpected)
		right := c.VisitExpr(b.Right, opExpected)
		var result Type
		switch {
		case left.Cat == GroupT && right.Cat == ScalarT:
			result = Group()
		case left.Cat == ScalarT && right.Cat == GroupT:
			result = Group()
		default:
			left, right = c.reconcileNumeric(left, right, b.Span())
			if !left.IsFieldGroupOrInteger() || !UserEq(c.currentProgram, left, right) {
				c.errAt(diag.CodeMulPowTypeMismatch, b.Span(), "multiplication operand types are incompatible")
				result = Err()
			} else {
				result = left
			}
		}
		c.types.Set(b.ID(), result)
		return c.checkAgainstExpected(result, expected, b.Span())
	case ast.OpAdd, ast.OpSub:
		left := c.VisitExpr(b.Left, opExpected)
		right := c.VisitExpr(b.Right, opExpected)
		left, right = c.reconcileNumeric(left, right, b.Span())
		if !left.IsFieldGroupOrInteger() || !UserEq(c.currentProgram, left, right) {
			c.errAt(diag.CodeOperationTypeMismatch, b.Span(), "operand types mismatch")
			left = Err()
		}
		c.types.Set(b.ID(), left)
		return c.checkAgainstExpected(left, expected, b.Span())
	case ast.OpDiv, ast.OpRem:
		left := c.VisitExpr(b.Left, opExpected)
		right := c.VisitExpr(b.Right, opExpected)
		left, right = c.reconcileNumeric(left, right, b.Span())
		if !left.IsFieldOrInteger() || !UserEq(c.currentProgram, left, right) {
			c.errAt(diag.CodeOperationTypeMismatch, b.Span(), "operand types mismatch")
			left = Err()
		}
		c.types.Set(b.ID(), left)
		return c.checkAgainstExpected(left, expected, b.Span())
	case ast.OpAnd, ast.OpOr, ast.OpXor, ast.OpBitAnd, ast.OpBitOr, ast.OpBitXor:
		left := c.VisitExpr(b.Left, opExpected)
		right := c.VisitExpr(b.Right, opExpected)
		left, right = c.reconcileNumeric(left, right, b.Span())
		if !left.IsIntegerOrBool() || !UserEq(c.currentProgram, left, right) {
			c.errAt(diag.CodeOperationTypeMismatch, b.Span(), "operand types mismatch")
			left = Err()
		}
		c.types.Set(b.ID(), left)
		return c.checkAgainstExpected(left, expected, b.Span())
	default:
		c.types.Set(b.ID(), Err())
		return Err()
	}
}

func (c *Checker) visitEquality(b *ast.Binary, expected *Type) Type {
	var left, right Type
	switch {
	case isNoneLiteral(b.Left):
		right = c.VisitExpr(b.Right, nil)
		wrapped := Optional(right)
		left = c.VisitExpr(b.Left, &wrapped)
	case isNoneLiteral(b.Right):
		left = c.VisitExpr(b.Left, nil)
		wrapped := Optional(left)
		right = c.VisitExpr(b.Right, &wrapped)
	default:
		left = c.VisitExpr(b.Left, nil)
		right = c.VisitExpr(b.Right, nil)
		left, right = c.reconcileNumeric(left, right, b.Span())
	}
	if !UserEq(c.currentProgram, left, right) {
		c.errAt(diag.CodeOperationTypeMismatch, b.Span(), "operation types mismatch")
	}
	result := Boolean()
	c.types.Set(b.ID(), result)
	return c.checkAgainstExpected(result, expected, b.Span())
}

func (c *Checker) visitTernary(t *ast.Ternary, expected *Type) Type {
	cond := Boolean()
	c.VisitExpr(t.Cond, &cond)
	var thenExp, elseExp *Type
	if expected != nil {
		thenExp, elseExp = expected, expected
	}
	thenT := c.VisitExpr(t.Then, thenExp)
	elseT := c.VisitExpr(t.Else, elseExp)

	var result Type
	switch {
	case isNoneLiteral(t.Then):
		result = elseT
	case isNoneLiteral(t.Else):
		result = thenT
	case CanCoerceTo(c.currentProgram, thenT, elseT, c.isRecordComposite):
		result = elseT
	case CanCoerceTo(c.currentProgram, elseT, thenT, c.isRecordComposite):
		result = thenT
	default:
		c.errAt(diag.CodeExpectedGotType, t.Span(), "ternary branches have incompatible types")
		result = Err()
	}
	// A None branch makes the result Optional of the other branch's type.
	if (isNoneLiteral(t.Then) || isNoneLiteral(t.Else)) && result.Cat != OptionalT && result.Cat != ErrT {
		result = Optional(result)
	}
	if result.Cat == CompositeT && result.Composite.Program != "" {
		c.errAt(diag.CodeExpectedGotType, t.Span(), "ternary may not produce an external record type")
		result = Err()
	}
	c.types.Set(t.ID(), result)
	return c.checkAgainstExpected(result, expected, t.Span())
}

func isCastable(t Type) bool {
	switch t.Cat {
	case IntegerT, BooleanT, FieldT, GroupT, ScalarT, AddressT, NumericT:
		return true
	default:
		return false
	}
}

func (c *Checker) visitCast(ce *ast.Cast, expected *Type) Type {
	src := c.VisitExpr(ce.Operand, nil)
	target := c.resolveTypeExpr(ce.Target)
	if !isCastable(src) || !isCastable(target) {
		c.errAt(diag.CodeExpectedGotType, ce.Span(), "invalid cast: both operand and target must be address, boolean, field, group, integer, or scalar")
		target = Err()
	}
	c.types.Set(ce.ID(), target)
	return c.checkAgainstExpected(target, expected, ce.Span())
}

func (c *Checker) visitArray(ae *ast.ArrayExpr, expected *Type) Type {
	if len(ae.Elements) == 0 {
		c.errAt(diag.CodeArrayEmpty, ae.Span(), "array literal may not be empty")
		t := Err()
		c.types.Set(ae.ID(), t)
		return t
	}
	if len(ae.Elements) > c.cfg.MaxArrayElements {
		c.errAt(diag.CodeArrayTooLarge, ae.Span(), "array literal exceeds the configured maximum element count")
	}
	var elemExpected *Type
	if expected != nil {
		e := *expected
		if e.Cat == OptionalT && e.Elem.Cat == ArrayT {
			e = *e.Elem
		}
		if e.Cat == ArrayT {
			t := *e.Elem
			elemExpected = &t
		}
	}
	first := c.VisitExpr(ae.Elements[0], elemExpected)
	for _, el := range ae.Elements[1:] {
		t := c.VisitExpr(el, &first)
		if !UserEq(c.currentProgram, first, t) {
			c.errAt(diag.CodeOperationTypeMismatch, el.Span(), "array element types mismatch")
		}
	}
	arr := Array(first, uint32(len(ae.Elements)))
	c.types.Set(ae.ID(), arr)
	return c.checkAgainstExpected(arr, expected, ae.Span())
}

func (c *Checker) visitRepeat(re *ast.RepeatExpr, expected *Type) Type {
	var elemExpected *Type
	if expected != nil {
		e := *expected
		if e.Cat == OptionalT && e.Elem.Cat == ArrayT {
			e = *e.Elem
		}
		if e.Cat == ArrayT {
			t := *e.Elem
			elemExpected = &t
		}
	}
	elem := c.VisitExpr(re.Value, elemExpected)
	u32 := Integer(ast.U32)
	c.VisitExpr(re.Count, &u32)
	length, known := c.foldArrayLength(re.Count)
	if !known {
		length = 0
	}
	arr := Array(elem, length)
	c.types.Set(re.ID(), arr)
	return c.checkAgainstExpected(arr, expected, re.Span())
}

func (c *Checker) visitTuple(te *ast.TupleExpr, expected *Type) Type {
	var elemExpecteds []Type
	haveExpecteds := false
	if expected != nil && expected.Cat == TupleT && len(expected.Elems) == len(te.Elements) {
		elemExpecteds = expected.Elems
		haveExpecteds = true
	}
	elems := make([]Type, len(te.Elements))
	for i, el := range te.Elements {
		var exp *Type
		if haveExpecteds {
			exp = &elemExpecteds[i]
		}
		elems[i] = c.VisitExpr(el, exp)
	}
	t := Tuple(elems...)
	c.types.Set(te.ID(), t)
	return t
}

func (c *Checker) visitAccess(a *ast.Access, expected *Type) Type {
	base := c.VisitExpr(a.Target, nil)
	var result Type
	switch a.Kind {
	case ast.AccessMember:
		if base.Cat != CompositeT {
			c.errAt(diag.CodeExpectedGotType, a.Span(), "member access requires a struct or record value")
			result = Err()
			break
		}
		desc, ok := c.sym.LookupStruct(ast.Path{Program: base.Composite.Program, Name: base.Composite.Name})
		if !ok {
			result = Err()
			break
		}
		found := false
		for _, m := range desc.Members {
			if m.Name == a.Member.Name {
				result, found = m.Type, true
				break
			}
		}
		if !found {
			c.errAt(diag.CodeExpectedGotType, a.Span(), "no member "+a.Member.Name+" on "+desc.Name)
			result = Err()
		}
	case ast.AccessArray:
		u32 := Integer(ast.U32)
		c.VisitExpr(a.Index, &u32)
		if base.Cat != ArrayT {
			c.errAt(diag.CodeExpectedGotType, a.Span(), "index access requires an array value")
			result = Err()
			break
		}
		result = *base.Elem
	case ast.AccessTuple:
		if base.Cat != TupleT || a.Tuple >= len(base.Elems) {
			c.errAt(diag.CodeExpectedGotType, a.Span(), "tuple index out of range")
			result = Err()
			break
		}
		result = base.Elems[a.Tuple]
	}
	c.types.Set(a.ID(), result)
	return c.checkAgainstExpected(result, expected, a.Span())
}

func (c *Checker) visitAsyncExpr(ae *ast.AsyncExpr, expected *Type) Type {
	if c.state.isConditional {
		c.errAt(diag.CodeMustBeInAsyncContext, ae.Span(), "an async block may not appear inside a conditional")
	}
	if c.state.variant != ast.VariantAsyncTransition {
		c.errAt(diag.CodeMustBeInAsyncContext, ae.Span(), "an async block is only legal inside an async transition")
	}
	if c.state.alreadyContainsAsyncBlock {
		c.errAt(diag.CodeMustCallAsyncFunctionOnce, ae.Span(), "at most one async block is permitted per scope")
	}
	if c.state.hasCalledFinalize {
		c.errAt(diag.CodeMustCallAsyncFunctionOnce, ae.Span(), "an async function has already been called in this scope")
	}
	c.state.alreadyContainsAsyncBlock = true
	restore := c.state.withAsyncBlock(ae.ID())
	defer restore()
	for _, s := range ae.Body {
		c.CheckStatement(s)
	}
	t := Future(FutureInfo{Explicit: false})
	c.types.Set(ae.ID(), t)
	return t
}

// visitAssignTarget classifies an expression as an assignment LHS
// (spec.md §4.5, "LHS-of-assignment classification").
func (c *Checker) visitAssignTarget(e ast.Expression) (Type, LHSKind) {
	switch t := e.(type) {
	case *ast.PathExpr:
		return c.visitAssignPath(t)
	case *ast.Access:
		base, kind := c.visitAssignTarget(t.Target)
		if kind == LHSErr {
			return Err(), LHSErr
		}
		switch t.Kind {
		case ast.AccessMember:
			if base.Cat != CompositeT {
				c.errAt(diag.CodeInvalidAssignmentTarget, t.Span(), "member assignment requires a struct value")
				return Err(), LHSErr
			}
			desc, ok := c.sym.LookupStruct(ast.Path{Program: base.Composite.Program, Name: base.Composite.Name})
			if !ok {
				return Err(), LHSErr
			}
			for _, m := range desc.Members {
				if m.Name == t.Member.Name {
					c.types.Set(t.ID(), m.Type)
					return m.Type, kind
				}
			}
			c.errAt(diag.CodeInvalidAssignmentTarget, t.Span(), "no member "+t.Member.Name)
			return Err(), LHSErr
		case ast.AccessArray:
			u32 := Integer(ast.U32)
			c.VisitExpr(t.Index, &u32)
			if base.Cat != ArrayT {
				c.errAt(diag.CodeInvalidAssignmentTarget, t.Span(), "index assignment requires an array value")
				return Err(), LHSErr
			}
			c.types.Set(t.ID(), *base.Elem)
			return *base.Elem, kind
		case ast.AccessTuple:
			if base.Cat != TupleT || t.Tuple >= len(base.Elems) {
				c.errAt(diag.CodeInvalidAssignmentTarget, t.Span(), "tuple index out of range")
				return Err(), LHSErr
			}
			c.types.Set(t.ID(), base.Elems[t.Tuple])
			return base.Elems[t.Tuple], kind
		}
		return Err(), LHSErr
	default:
		c.errAt(diag.CodeInvalidAssignmentTarget, e.Span(), "only a name, array access, member access, or tuple access may be assigned to")
		return Err(), LHSErr
	}
}

func (c *Checker) visitAssignPath(pe *ast.PathExpr) (Type, LHSKind) {
	path := pe.Path
	sym, ok := c.sym.LookupPath(path)
	if !ok {
		c.errAt(diag.CodeSymbolNotFound, pe.Span(), "unknown name "+path.Name)
		return Err(), LHSErr
	}
	if sym.Kind != symVar {
		c.errAt(diag.CodeInvalidAssignmentTarget, pe.Span(), path.Name+" is not assignable")
		return Err(), LHSErr
	}
	v := sym.Var
	if path.Qualified() {
		if v.Decl == DeclStorage {
			c.errAt(diag.CodeCannotModifyExternalStorage, pe.Span(), "cannot modify another program's storage")
		} else {
			c.errAt(diag.CodeInvalidAssignmentTarget, pe.Span(), "cannot assign to an external value")
		}
		return Err(), LHSErr
	}
	switch v.Decl {
	case DeclConst, DeclConstParameter:
		c.errAt(diag.CodeInvalidAssignmentTarget, pe.Span(), "cannot assign to a constant")
		c.types.Set(pe.ID(), Err())
		return Err(), LHSErr
	case DeclInput:
		if v.Mode == ast.ModeConstant {
			c.errAt(diag.CodeInvalidAssignmentTarget, pe.Span(), "cannot assign to a constant-mode input")
			c.types.Set(pe.ID(), Err())
			return Err(), LHSErr
		}
	case DeclStorage:
		c.errAt(diag.CodeInvalidAssignmentTarget, pe.Span(), "storage is mutated through Mapping/Vector intrinsics, not assignment")
		c.types.Set(pe.ID(), Err())
		return Err(), LHSErr
	}
	if v.Type.Cat == FutureT {
		c.errAt(diag.CodeCannotReassignFuture, pe.Span(), "cannot reassign a future-typed variable")
		c.types.Set(pe.ID(), Err())
		return Err(), LHSErr
	}
	if v.Type.Cat == MappingT {
		c.errAt(diag.CodeInvalidAssignmentTarget, pe.Span(), "cannot reassign a mapping value")
		c.types.Set(pe.ID(), Err())
		return Err(), LHSErr
	}
	if c.state.variant == ast.VariantAsyncFunction && !c.state.declaredInConditionalScope(path.Name) {
		c.errAt(diag.CodeAsyncAssignOutsideConditional, pe.Span(), "inside an async function, assignment outside a conditional branch is only allowed to a name declared within that branch")
		c.types.Set(pe.ID(), Err())
		return Err(), LHSErr
	}
	if c.state.inAsyncBlock && !c.state.assignableInAsyncBlock(path.Name) {
		c.errAt(diag.CodeInvalidAsyncBlockFutureAcc, pe.Span(), "cannot assign to a name declared outside the current async block")
		c.types.Set(pe.ID(), Err())
		return Err(), LHSErr
	}
	c.types.Set(pe.ID(), v.Type)
	return v.Type, LHSLocal
}
