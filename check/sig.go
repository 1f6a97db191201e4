package check

import (
	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/diag"
)

func isConstGenericType(t Type) bool {
	switch t.Cat {
	case BooleanT, IntegerT, AddressT, ScalarT, GroupT, FieldT:
		return true
	default:
		return false
	}
}

// CheckSignature validates one function declaration's signature
// (spec.md §4.7) and returns the FunctionSymbol to install in the
// symbol table. It does not walk the body.
func (c *Checker) CheckSignature(program string, modulePath []string, fn *ast.FunctionDecl) *FunctionSymbol {
	fs := &FunctionSymbol{
		Program:    program,
		ModulePath: modulePath,
		Name:       fn.Name.Name,
		Variant:    fn.Variant,
		Span:       fn.Span(),
	}

	if len(fn.ConstParams) > 0 && fn.Variant != ast.VariantInline {
		c.diags.Error(diag.Error{Code: diag.CodeExpectedGotType, Span: fn.Span(), Msg: "only inline functions may declare const generic parameters"})
	}
	for _, p := range fn.ConstParams {
		t := c.resolveTypeExpr(p.Type)
		if !isConstGenericType(t) {
			c.diags.Error(diag.Error{Code: diag.CodeExpectedGotType, Span: p.Span(), Msg: "const generic parameters must be boolean, integer, address, scalar, group, or field"})
			t = Err()
		}
		fs.ConstParams = append(fs.ConstParams, Variable{Type: t, Decl: DeclConstParameter, Span: p.Span()})
		fs.ConstNames = append(fs.ConstNames, p.Name.Name)
	}

	if len(fn.Inputs) > c.cfg.MaxFunctionInputs {
		c.diags.Error(diag.Error{Code: diag.CodeIncorrectNumArgs, Span: fn.Span(), Msg: "too many function inputs"})
	}

	for _, p := range fn.Inputs {
		t := c.resolveTypeExpr(p.Type)
		if t.Cat == TupleT {
			c.diags.Error(diag.Error{Code: diag.CodeTupleAsParameter, Span: p.Span(), Msg: "tuple types may not be used as a function parameter"})
			t = Err()
		}
		if t.Cat == CompositeT {
			if desc, ok := c.sym.LookupStruct(ast.Path{Program: t.Composite.Program, Name: t.Composite.Name}); ok && desc.IsRecord {
				if fn.Variant != ast.VariantTransition && fn.Variant != ast.VariantAsyncTransition {
					c.diags.Error(diag.Error{Code: diag.CodeRecordNotAllowed, Span: p.Span(), Msg: "only a transition may input or output a record"})
				}
			}
		}
		decl := DeclInput
		switch fn.Variant {
		case ast.VariantTransition:
			// constant-mode inputs are legal on a plain transition
		case ast.VariantAsyncTransition:
			if p.Mode == ast.ModeConstant {
				c.diags.Error(diag.Error{Code: diag.CodeExpectedGotType, Span: p.Span(), Msg: "an async transition may not declare a constant-mode input"})
			}
		case ast.VariantFunction, ast.VariantInline:
			if p.Mode != ast.ModeNone {
				c.diags.Error(diag.Error{Code: diag.CodeExpectedGotType, Span: p.Span(), Msg: "regular function and inline parameters may not carry a visibility mode"})
			}
		case ast.VariantAsyncFunction:
			if p.Mode != ast.ModePublic && t.Cat != FutureT {
				c.diags.Error(diag.Error{Code: diag.CodeExpectedGotType, Span: p.Span(), Msg: "async function parameters must be public"})
			}
		}
		v := Variable{Type: t, Decl: decl, Mode: p.Mode, Span: p.Span()}
		if err := checkNameCollision(fs, p.Name.Name); err != nil {
			c.diags.Error(diag.Error{Code: diag.CodeDuplicateInputName, Span: p.Span(), Msg: err.Error()})
		}
		for _, cn := range fs.ConstNames {
			if cn == p.Name.Name {
				c.diags.Error(diag.Error{Code: diag.CodeConstParamShadowsInput, Span: p.Span(), Msg: "const parameter " + cn + " shadows input"})
			}
		}
		fs.Inputs = append(fs.Inputs, v)
		fs.InputNames = append(fs.InputNames, p.Name.Name)
	}

	var futureOutputs int
	for i, o := range fn.Outputs {
		t := c.resolveTypeExpr(o.Type)
		if t.Cat == TupleT {
			c.diags.Error(diag.Error{Code: diag.CodeNestedTupleType, Span: fn.Span(), Msg: "a single output may not itself be a tuple type"})
			t = Err()
		}
		if t.Cat == CompositeT {
			if desc, ok := c.sym.LookupStruct(ast.Path{Program: t.Composite.Program, Name: t.Composite.Name}); ok && desc.IsRecord {
				if fn.Variant != ast.VariantTransition && fn.Variant != ast.VariantAsyncTransition {
					c.diags.Error(diag.Error{Code: diag.CodeRecordNotAllowed, Span: fn.Span(), Msg: "only a transition may input or output a record"})
				}
			}
		}
		if o.Mode == ast.ModeConstant {
			c.diags.Error(diag.Error{Code: diag.CodeExpectedGotType, Span: fn.Span(), Msg: "a function output may not be constant-mode"})
		}
		if t.Cat == FutureT {
			futureOutputs++
			if fn.Variant == ast.VariantAsyncTransition && i != len(fn.Outputs)-1 {
				c.diags.Error(diag.Error{Code: diag.CodeFinalizerShapeInvalid, Span: fn.Span(), Msg: "an async transition's Future output must be last"})
			}
		}
		fs.Outputs = append(fs.Outputs, t)
	}
	if fn.Variant == ast.VariantAsyncTransition && futureOutputs != 1 {
		c.diags.Error(diag.Error{Code: diag.CodeFinalizerShapeInvalid, Span: fn.Span(), Msg: "an async transition must return exactly one Future"})
	}
	if len(fn.Outputs) > c.cfg.MaxFunctionOutputs {
		c.diags.Error(diag.Error{Code: diag.CodeIncorrectNumArgs, Span: fn.Span(), Msg: "too many function outputs"})
	}

	if fn.Variant == ast.VariantAsyncFunction {
		c.mergeAsyncFunctionInputs(fs)
	}

	return fs
}

func checkNameCollision(fs *FunctionSymbol, name string) error {
	for _, n := range fs.InputNames {
		if n == name {
			return &collisionError{name}
		}
	}
	return nil
}

type collisionError struct{ name string }

func (e *collisionError) Error() string { return "duplicate input name " + e.name }

// mergeAsyncFunctionInputs implements the second half of the two-phase
// future-inference protocol (spec.md §4.7, DESIGN NOTES §9): every
// async-transition call site recorded an inferred input list against
// this async function's qualified name; merge them elementwise, falling
// back to the declared type for any slot no site ever supplied, and
// install the merge result directly as the parameter types. The
// declared type is a per-slot fallback only, never something the merged
// value is meetType'd against — a bare declared Future (users never
// write an inner Future shape) would otherwise collapse every inferred
// future-typed parameter to Err on a length mismatch.
func (c *Checker) mergeAsyncFunctionInputs(fs *FunctionSymbol) {
	sites := c.sym.AsyncInputTypes[fs.QualifiedName()]
	if len(sites) == 0 {
		c.diags.Warning(diag.Warning{Code: diag.CodeAsyncFunctionNeverCalled, Span: fs.Span, Msg: "async function " + fs.Name + " is never called by a transition"})
		return
	}
	declared := make([]Type, len(fs.Inputs))
	for i := range fs.Inputs {
		declared[i] = fs.Inputs[i].Type
	}
	merged := mergeAsyncInputs(sites, declared)
	for i := range fs.Inputs {
		fs.Inputs[i].Type = merged[i]
	}
}
