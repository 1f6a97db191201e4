package check

import (
	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

// visitCall dispatches a call expression to either the intrinsic catalog
// or a user-declared function, per spec.md §4.5's call-resolution rule:
// the (module, method) pair is tried against the catalog first.
func (c *Checker) visitCall(call *ast.Call, expected *Type) Type {
	var module string
	if len(call.Path.Modules) > 0 {
		module = call.Path.Modules[len(call.Path.Modules)-1]
	}
	if in, ok := c.catalog.Lookup(module, call.Path.Name); ok {
		return c.visitIntrinsicCall(call, in, expected)
	}
	return c.visitUserCall(call, expected)
}

func (c *Checker) visitIntrinsicCall(call *ast.Call, in *Intrinsic, expected *Type) Type {
	if in.MinNetwork > c.cfg.Network {
		c.errAt(diag.CodeIntrinsicNotOnNetwork, call.Span(), "intrinsic is not available on the configured network")
	}
	if in.IsFinalizeCommand() && !c.inFinalizeContext() {
		c.errAt(diag.CodeInvalidOutsideFinalize, call.Span(), "this operation is only legal inside an async function or async block")
	}
	args := make([]Type, len(call.Args))
	for i, a := range call.Args {
		args[i] = c.VisitExpr(a, nil)
	}
	if len(args) != in.NumArgs() {
		c.errAt(diag.CodeIncorrectNumArgs, call.Span(), "incorrect number of arguments")
	}
	result, aerr := in.TypeCheck(c.cfg, args, call.Span(), c.sym.ResolveComposite)
	if aerr != nil {
		c.diags.Error(*aerr)
		result = Err()
	}
	c.types.Set(call.ID(), result)
	return c.checkAgainstExpected(result, expected, call.Span())
}

func isSelfCallerExpr(e ast.Expression) bool {
	call, ok := e.(*ast.Call)
	if !ok {
		return false
	}
	return len(call.Path.Modules) == 1 && call.Path.Modules[0] == "self" && call.Path.Name == "caller"
}

// visitUserCall resolves a call to a user-declared inline/function/
// transition/async-function/async-transition, applying the cross-
// function call rules of spec.md §4.5 and, for async functions, the
// two-phase finalizer-inference protocol of §4.7. A call to an async
// transition is checked like any other call.
func (c *Checker) visitUserCall(call *ast.Call, expected *Type) Type {
	fn, ok := c.sym.LookupFunction(call.Path)
	if !ok {
		c.errAt(diag.CodeSymbolNotFound, call.Span(), "unknown function "+call.Path.Name)
		c.types.Set(call.ID(), Err())
		return Err()
	}
	external := call.Path.Qualified()

	switch {
	case external && fn.Variant == ast.VariantInline:
		c.errAt(diag.CodeCannotCallExternalInline, call.Span(), "an inline function may not be called across programs")
	case !external && fn.Variant == ast.VariantTransition && c.state.variant == ast.VariantTransition:
		c.errAt(diag.CodeCannotCallLocalTransition, call.Span(), "a transition may not directly invoke another local transition")
	case fn.Variant != ast.VariantInline && c.state.inAsyncBlock:
		c.errAt(diag.CodeInvalidInsideFinalize, call.Span(), "only inline calls are permitted inside an async block")
	}
	if external && c.state.hasCalledFinalize {
		c.errAt(diag.CodeExternalCallAfterAsync, call.Span(), "an external call may not follow the async-function call in a transition")
	}

	if len(call.ConstArgs) != len(fn.ConstParams) {
		c.errAt(diag.CodeIncorrectNumConstArgs, call.Span(), "incorrect number of const arguments")
	}
	for i, a := range call.ConstArgs {
		if i < len(fn.ConstParams) {
			t := fn.ConstParams[i].Type
			c.VisitExpr(a, &t)
		}
	}

	if len(call.Args) != len(fn.Inputs) {
		c.errAt(diag.CodeIncorrectNumArgs, call.Span(), "incorrect number of arguments")
	}

	var result Type
	switch fn.Variant {
	case ast.VariantAsyncFunction:
		result = c.visitAsyncFunctionCall(call, fn)
	case ast.VariantAsyncTransition:
		for i, a := range call.Args {
			var exp *Type
			if i < len(fn.Inputs) {
				t := fn.Inputs[i].Type
				exp = &t
			}
			c.VisitExpr(a, exp)
		}
		result = resultTypeFromOutputs(fn.Outputs)
	default:
		for i, a := range call.Args {
			var exp *Type
			if i < len(fn.Inputs) {
				t := fn.Inputs[i].Type
				exp = &t
			}
			c.VisitExpr(a, exp)
		}
		result = resultTypeFromOutputs(fn.Outputs)
	}

	if !external {
		c.calls.AddEdge(c.currentFunctionKey, fn.QualifiedName())
	}
	c.types.Set(call.ID(), result)
	return c.checkAgainstExpected(result, expected, call.Span())
}

func resultTypeFromOutputs(outputs []Type) Type {
	switch len(outputs) {
	case 0:
		return Unit()
	case 1:
		return outputs[0]
	default:
		return Tuple(outputs...)
	}
}

// visitAsyncFunctionCall implements phase one of the finalizer-inference
// protocol (spec.md §4.7): the caller's argument types are inferred and
// recorded against the callee's qualified name for the callee's own
// signature check to merge later.
func (c *Checker) visitAsyncFunctionCall(call *ast.Call, fn *FunctionSymbol) Type {
	if c.state.variant != ast.VariantAsyncTransition {
		c.errAt(diag.CodeInvalidInsideFinalize, call.Span(), "an async function may only be called by its paired async transition")
	}
	if c.state.isConditional {
		c.errAt(diag.CodeAsyncCallInConditional, call.Span(), "an async function call may not appear inside a conditional")
	}
	if c.state.hasCalledFinalize {
		c.errAt(diag.CodeMustCallAsyncFunctionOnce, call.Span(), "an async transition may call an async function at most once")
	}

	inferred := make([]Type, len(call.Args))
	var consumed []string
	for i, a := range call.Args {
		var exp *Type
		if i < len(fn.Inputs) {
			t := fn.Inputs[i].Type
			exp = &t
		}
		at := c.VisitExpr(a, exp)
		inferred[i] = at
		if exp != nil && exp.Cat == FutureT {
			pe, ok := a.(*ast.PathExpr)
			if !ok {
				c.errAt(diag.CodeUnknownFutureConsumed, a.Span(), "a future argument must be a bare variable reference")
				continue
			}
			if _, ok := c.state.consumeFuture(pe.Path.Name); !ok {
				c.errAt(diag.CodeUnknownFutureConsumed, a.Span(), "no unconsumed future named "+pe.Path.Name)
				continue
			}
			consumed = append(consumed, pe.Path.Name)
		}
	}
	c.sym.AttachFinalizer(fn.QualifiedName(), FinalizerInferenceSite{
		CallerLocation:  call.Span(),
		ConsumedFutures: consumed,
		InferredInputs:  inferred,
	})
	if remaining := c.state.unconsumedFutures(); len(remaining) > 0 {
		c.errAt(diag.CodeNotAllFuturesConsumed, call.Span(), "not every future reaching this point was consumed")
	}
	c.state.hasCalledFinalize = true
	if !call.Path.Qualified() {
		c.calls.AddEdge(c.currentFunctionKey, fn.QualifiedName())
	}
	return Future(FutureInfo{Inputs: inferred, Origin: fn.QualifiedName(), Explicit: true})
}

// visitComposite constructs a struct/record value (spec.md §4.5): every
// declared member must be present exactly once, by name or shorthand, and
// type-compatible with its declared member type.
func (c *Checker) visitComposite(ce *ast.CompositeExpr, expected *Type) Type {
	desc, ok := c.sym.LookupStruct(ce.Path)
	if !ok {
		c.errAt(diag.CodeSymbolNotFound, ce.Span(), "unknown struct/record "+ce.Path.Name)
		c.types.Set(ce.ID(), Err())
		return Err()
	}
	if desc.IsRecord {
		if c.state.variant == ast.VariantAsyncFunction || c.state.inAsyncBlock {
			c.errAt(diag.CodeRecordInAsync, ce.Span(), "a record may not be constructed inside a finalize context")
		}
		if ce.Path.Qualified() {
			c.errAt(diag.CodeCannotInstantiateExternalRecord, ce.Span(), "a record belonging to another program may not be constructed here")
		}
	}

	seen := map[string]bool{}
	for _, f := range ce.Fields {
		var memberType Type
		found := false
		for _, m := range desc.Members {
			if m.Name == f.Name.Name {
				memberType, found = m.Type, true
				break
			}
		}
		if !found {
			c.errAt(diag.CodeExpectedGotType, f.Name.Span(), "no member "+f.Name.Name+" on "+desc.Name)
			continue
		}
		if seen[f.Name.Name] {
			c.errAt(diag.CodeExpectedGotType, f.Name.Span(), "member "+f.Name.Name+" supplied more than once")
			continue
		}
		seen[f.Name.Name] = true
		if f.Shorthand {
			v, ok := c.sym.LookupVariable(f.Name.Name)
			if !ok {
				c.errAt(diag.CodeSymbolNotFound, f.Name.Span(), "unknown name "+f.Name.Name)
				continue
			}
			if !CanCoerceTo(c.currentProgram, v.Type, memberType, c.isRecordComposite) {
				c.errAt(diag.CodeExpectedGotType, f.Name.Span(), "field "+f.Name.Name+" has the wrong type")
			}
		} else {
			c.VisitExpr(f.Value, &memberType)
			if desc.IsRecord && f.Name.Name == "owner" && isSelfCallerExpr(f.Value) {
				c.diags.Warning(diag.Warning{Code: diag.CodeCallerAsRecordOwner, Span: f.Value.Span(), Msg: "record owner is set from self.caller; confirm this is intentional"})
			}
		}
	}
	for _, m := range desc.Members {
		if !seen[m.Name] {
			c.errAt(diag.CodeExpectedGotType, ce.Span(), "missing member "+m.Name)
		}
	}

	t := Composite(CompositeRef{Program: ce.Path.Program, Name: desc.Name})
	c.structs.MarkUsed(desc.Name)
	c.types.Set(ce.ID(), t)
	return c.checkAgainstExpected(t, expected, ce.Span())
}
