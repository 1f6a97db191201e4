package check

import (
	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

// CheckStatement walks one statement, threading scopeState updates and
// recording types/diagnostics as it goes (spec.md §4.6).
func (c *Checker) CheckStatement(s ast.Statement) {
	switch st := s.(type) {
	case *ast.Block:
		c.checkBlock(st)
	case *ast.Assign:
		c.checkAssign(st)
	case *ast.Definition:
		c.checkDefinition(st)
	case *ast.Conditional:
		c.checkConditional(st)
	case *ast.Loop:
		c.checkLoop(st)
	case *ast.Return:
		c.checkReturn(st)
	case *ast.Assert:
		c.checkAssert(st)
	case *ast.ExprStatement:
		c.checkExprStatement(st)
	}
}

func (c *Checker) checkBlock(b *ast.Block) {
	c.sym.EnterExistingScope(b.ID())
	for _, inner := range b.Statements {
		c.CheckStatement(inner)
	}
	c.sym.ExitScope()
}

func assignOpClass(op ast.AssignOp) string {
	switch op {
	case ast.AssignAdd, ast.AssignSub, ast.AssignMul, ast.AssignDiv, ast.AssignRem, ast.AssignPow:
		return "arithmetic"
	case ast.AssignAnd, ast.AssignOr, ast.AssignXor, ast.AssignBitAnd, ast.AssignBitOr, ast.AssignBitXor:
		return "bitwise"
	case ast.AssignShl, ast.AssignShr:
		return "shift"
	default:
		return "plain"
	}
}

// checkAssign implements the assignment rule of spec.md §4.6. The RHS is
// checked against the full LHS type: when the LHS is Optional{T},
// checkAgainstExpected's CanCoerceTo(T, Optional{T}) lets a plain T RHS
// fill it without any extra casing here, while compound operators are
// class-checked against the unwrapped T.
func (c *Checker) checkAssign(a *ast.Assign) {
	lhsType, kind := c.visitAssignTarget(a.LHS)
	if kind == LHSErr {
		c.VisitExpr(a.RHS, nil)
		return
	}

	opExpected := lhsType
	if opExpected.Cat == OptionalT {
		opExpected = *opExpected.Elem
	}
	rhs := c.VisitExpr(a.RHS, &lhsType)

	switch assignOpClass(a.Op) {
	case "arithmetic":
		if !opExpected.IsFieldGroupOrInteger() {
			c.errAt(diag.CodeOperationTypeMismatch, a.Span(), "compound arithmetic assignment requires a field, group, or integer target")
		}
	case "bitwise":
		if !opExpected.IsIntegerOrBool() {
			c.errAt(diag.CodeOperationTypeMismatch, a.Span(), "compound bitwise assignment requires a boolean or integer target")
		}
	case "shift":
		if !opExpected.IsFieldOrInteger() {
			c.errAt(diag.CodeOperationTypeMismatch, a.Span(), "compound shift assignment requires an integer target")
		}
	}
	_ = rhs
}

func declKindFor(k ast.DefKind) DeclKind {
	if k == ast.DefConst {
		return DeclConst
	}
	return DeclMut
}

func (c *Checker) checkDefinition(d *ast.Definition) {
	var declared *Type
	if d.Declared != nil {
		t := c.resolveTypeExpr(d.Declared)
		declared = &t
	}
	value := c.VisitExpr(d.Value, declared)
	if value.Cat == NumericT {
		if declared != nil {
			value = *declared
		} else {
			c.errAt(diag.CodeCouldNotDetermineType, d.Span(), "could not determine a type for this definition")
			value = Err()
		}
	}

	decl := declKindFor(d.Kind)
	if len(d.Names) == 1 {
		final := value
		if declared != nil {
			final = *declared
		}
		name := d.Names[0].Name
		if err := c.sym.InsertVariable(d.Span(), name, Variable{Type: final, Decl: decl, Span: d.Span()}); err != nil {
			c.errAt(diag.CodeShadowedSymbol, d.Span(), err.Error())
		}
		c.state.introduce(name)
		if d.Kind == ast.DefConst {
			if n, ok := c.foldArrayLength(d.Value); ok {
				c.sym.SetConstInt(name, int64(n))
			}
		}
		if final.Cat == FutureT {
			c.state.addFuture(name, d.Span())
		}
		return
	}

	if value.Cat != TupleT || len(value.Elems) != len(d.Names) {
		c.errAt(diag.CodeIncorrectTupleLength, d.Span(), "destructuring arity does not match the right-hand side")
		for _, n := range d.Names {
			_ = c.sym.InsertVariable(d.Span(), n.Name, Variable{Type: Err(), Decl: decl, Span: d.Span()})
			c.state.introduce(n.Name)
		}
		return
	}
	for i, n := range d.Names {
		t := value.Elems[i]
		if err := c.sym.InsertVariable(d.Span(), n.Name, Variable{Type: t, Decl: decl, Span: d.Span()}); err != nil {
			c.errAt(diag.CodeShadowedSymbol, d.Span(), err.Error())
		}
		c.state.introduce(n.Name)
		if t.Cat == FutureT {
			c.state.addFuture(n.Name, d.Span())
		}
	}
}

func (c *Checker) checkConditional(cond *ast.Conditional) {
	b := Boolean()
	c.VisitExpr(cond.Cond, &b)

	restore := c.state.withConditional()
	defer restore()

	prevReturn := c.state.hasReturn
	c.state.hasReturn = false
	restoreThen := c.state.withConditionalScope()
	c.checkBlock(cond.Then)
	restoreThen()
	thenReturn := c.state.hasReturn

	var elseReturn bool
	if cond.Else != nil {
		c.state.hasReturn = false
		restoreElse := c.state.withConditionalScope()
		c.CheckStatement(cond.Else)
		restoreElse()
		elseReturn = c.state.hasReturn
	}

	c.state.hasReturn = prevReturn || (thenReturn && elseReturn)
}

func (c *Checker) checkLoop(l *ast.Loop) {
	varType := c.resolveTypeExpr(l.VarType)
	if varType.Cat != IntegerT {
		c.errAt(diag.CodeExpectedGotType, l.Span(), "loop variable must have an integer type")
	}
	c.VisitExpr(l.Start, &varType)
	c.VisitExpr(l.Stop, &varType)

	c.sym.EnterExistingScope(l.Body.ID())
	_ = c.sym.InsertVariable(l.Var.Span(), l.Var.Name, Variable{Type: varType, Decl: DeclMut, Span: l.Var.Span()})

	prevReturn := c.state.hasReturn
	prevFinalize := c.state.hasCalledFinalize
	prevAsyncBlock := c.state.alreadyContainsAsyncBlock
	for _, inner := range l.Body.Statements {
		c.CheckStatement(inner)
	}
	if c.state.hasReturn != prevReturn {
		c.errAt(diag.CodeLoopBodyInvalid, l.Span(), "a loop body may not return")
	}
	if c.state.hasCalledFinalize != prevFinalize {
		c.errAt(diag.CodeLoopBodyInvalid, l.Span(), "a loop body may not call an async function")
	}
	if c.state.alreadyContainsAsyncBlock != prevAsyncBlock {
		c.errAt(diag.CodeLoopBodyInvalid, l.Span(), "a loop body may not contain an async block")
	}
	c.state.hasReturn = prevReturn

	c.sym.ExitScope()
}

func (c *Checker) checkReturn(r *ast.Return) {
	if c.state.inAsyncBlock {
		c.errAt(diag.CodeAsyncBlockCannotReturn, r.Span(), "an async block may not contain a return statement")
		if r.Value != nil {
			c.VisitExpr(r.Value, nil)
		}
		c.state.hasReturn = true
		return
	}

	if c.state.isConstructor {
		if r.Value != nil {
			rt := c.VisitExpr(r.Value, nil)
			if rt.Cat != UnitT {
				c.errAt(diag.CodeConstructorMustReturnUnit, r.Span(), "a constructor may only return unit")
			}
		}
		c.state.hasReturn = true
		return
	}

	var expected *Type
	switch len(c.state.outputs) {
	case 0:
	case 1:
		expected = &c.state.outputs[0]
	default:
		t := Tuple(c.state.outputs...)
		expected = &t
	}

	if r.Value == nil {
		if len(c.state.outputs) != 0 {
			c.errAt(diag.CodeExpectedGotType, r.Span(), "missing return value")
		}
	} else {
		c.VisitExpr(r.Value, expected)
	}
	c.state.hasReturn = true
}

func (c *Checker) checkAssert(a *ast.Assert) {
	switch a.Kind {
	case ast.AssertTrue:
		b := Boolean()
		c.VisitExpr(a.Cond, &b)
	case ast.AssertEq, ast.AssertNeq:
		l := c.VisitExpr(a.Left, nil)
		r := c.VisitExpr(a.Right, nil)
		l, r = c.reconcileNumeric(l, r, a.Span())
		if !UserEq(c.currentProgram, l, r) {
			c.errAt(diag.CodeOperationTypeMismatch, a.Span(), "operands do not have the same type")
		}
	}
}

func (c *Checker) checkExprStatement(e *ast.ExprStatement) {
	t := c.VisitExpr(e.Value, nil)
	if _, isCall := e.Value.(*ast.Call); !isCall && t.Cat != UnitT {
		c.errAt(diag.CodeExpectedGotType, e.Span(), "an expression statement must be a call or evaluate to unit")
	}
}
