package check

import (
	"log/slog"

	"github.com/leo-lang/leotype/ast"
	"github.com/leo-lang/leotype/config"
	"github.com/leo-lang/leotype/diag"
)

// Options configures a Checker. Fields left zero take the defaults New
// installs: config.Default() and a fresh diag.Collector.
type Options struct {
	Config      config.Config
	Diagnostics diag.Handler
	Trace       *slog.Logger
}

// Option mutates an Options value; New applies them in order, mirroring
// the functional-options constructor the rest of this codebase's ambient
// stack (config, loader) is built with.
type Option func(*Options)

// WithConfig overrides the default Config (network, size limits).
func WithConfig(cfg config.Config) Option {
	return func(o *Options) { o.Config = cfg }
}

// WithDiagnostics overrides the default diag.Collector with a caller-
// supplied sink, e.g. one that streams diagnostics to an LSP client.
func WithDiagnostics(h diag.Handler) Option {
	return func(o *Options) { o.Diagnostics = h }
}

// WithTrace turns on slog-based tracing of the checker's pass structure.
// Left nil (the default), the checker logs nothing.
func WithTrace(l *slog.Logger) Option {
	return func(o *Options) { o.Trace = l }
}

// Checker is the long-lived driver that walks a SymbolSeed to completion,
// the same "functional-options-constructed driver struct holding every
// collaborator" shape the ambient stack uses elsewhere.
type Checker struct {
	cfg   config.Config
	diags diag.Handler
	trace *slog.Logger

	sym     *SymbolTable
	types   *TypeTable
	catalog *Catalog
	calls   *CallGraph
	structs *StructGraph

	seed ast.SymbolSeed

	currentProgram     string // "" while checking the current program's own declarations
	currentStructName  string // set while resolving a struct's own member types
	currentFunctionKey string // QualifiedName of the function body currently being walked

	state *scopeState
}

// New constructs a Checker ready to Run over seed.
func New(seed ast.SymbolSeed, opts ...Option) *Checker {
	o := Options{Config: config.Default(), Diagnostics: diag.NewCollector()}
	for _, opt := range opts {
		opt(&o)
	}
	o.Config = config.WithDefaults(o.Config)
	if o.Diagnostics == nil {
		o.Diagnostics = diag.NewCollector()
	}
	sym := NewSymbolTable(seed.Current.Name)
	for name := range seed.Imports {
		sym.ImportProgram(name)
	}
	return &Checker{
		cfg:     o.Config,
		diags:   o.Diagnostics,
		trace:   o.Trace,
		sym:     sym,
		types:   NewTypeTable(),
		catalog: NewCatalog(o.Config.Network),
		calls:   NewCallGraph(),
		structs: NewStructGraph(),
		seed:    seed,
	}
}

// Types returns the completed type table. Only meaningful after Run.
func (c *Checker) Types() *TypeTable { return c.types }

// Calls returns the completed call graph. Only meaningful after Run.
func (c *Checker) Calls() *CallGraph { return c.calls }

// Structs returns the completed struct graph. Only meaningful after Run.
func (c *Checker) Structs() *StructGraph { return c.structs }

// AsyncInputTypes returns the finalizer-inference sites recorded per
// async-function qualified name. Only meaningful after Run.
func (c *Checker) AsyncInputTypes() map[string][]FinalizerInferenceSite {
	return c.sym.AsyncInputTypes
}

func (c *Checker) logf(msg string, args ...any) {
	if c.trace != nil {
		c.trace.Debug(msg, args...)
	}
}

// Run performs the full pass documented in spec.md §4: register every
// composite and storage declaration, fold top-level consts, signature-
// check and body-walk every non-async-function function, then do the
// same for async functions last so their signature check can consume the
// finalizer-inference sites recorded by phase one's async-transition call
// sites (spec.md §4.7). Each async function is registered under a
// provisional signature before any body is walked, so those call sites
// can resolve it; the provisional entry is replaced when the async
// function itself is checked.
func (c *Checker) Run() {
	c.logf("registering composites")
	c.registerComposites("", c.seed.Current)
	for name, p := range c.seed.Imports {
		c.registerComposites(name, p)
	}

	c.logf("registering storage and consts")
	c.registerMappings(c.seed.Current)
	c.registerConsts(c.seed.Current)

	c.logf("registering imported signatures")
	for name, p := range c.seed.Imports {
		for _, fn := range p.Functions {
			fs := c.CheckSignature(name, fn.ModulePath, fn)
			if err := c.sym.InsertFunction(fs); err != nil {
				c.errAt(diag.CodeShadowedSymbol, fn.Span(), err.Error())
			}
		}
	}

	// Diagnostics of the provisional check are discarded; the real check
	// of each async function reports them.
	provisional := map[*ast.FunctionDecl]bool{}
	realDiags := c.diags
	c.diags = diag.NewCollector()
	for _, fn := range c.seed.Current.Functions {
		if fn.Variant == ast.VariantAsyncFunction && c.sym.InsertFunction(c.CheckSignature("", fn.ModulePath, fn)) == nil {
			provisional[fn] = true
		}
	}
	c.diags = realDiags

	var asyncFns []*ast.FunctionDecl
	c.logf("checking non-async functions", "count", len(c.seed.Current.Functions))
	for _, fn := range c.seed.Current.Functions {
		if fn.Variant == ast.VariantAsyncFunction {
			asyncFns = append(asyncFns, fn)
			continue
		}
		c.checkFunction(fn)
	}
	c.logf("checking async functions", "count", len(asyncFns))
	for _, fn := range asyncFns {
		if provisional[fn] {
			delete(c.sym.globals[""].sym, fn.Name.Name)
		}
		c.checkFunction(fn)
	}
}

func (c *Checker) registerComposites(program string, p *ast.Program) {
	if p == nil {
		return
	}
	for _, sd := range p.Structs {
		c.currentStructName = sd.Name.Name
		desc := &CompositeDescriptor{Program: program, Name: sd.Name.Name, IsRecord: sd.IsRecord}
		for _, cp := range sd.ConstParams {
			t := c.resolveTypeExpr(cp.Type)
			desc.ConstParams = append(desc.ConstParams, Variable{Type: t, Decl: DeclConstParameter, Span: cp.Span()})
		}
		for _, m := range sd.Members {
			t := c.resolveTypeExpr(m.Type)
			desc.Members = append(desc.Members, Member{Name: m.Name.Name, Type: t})
		}
		if err := c.sym.InsertComposite(desc); err != nil {
			c.errAt(diag.CodeShadowedSymbol, sd.Span(), err.Error())
		}
	}
	c.currentStructName = ""
}

func (c *Checker) registerMappings(p *ast.Program) {
	for _, md := range p.Mappings {
		kt := c.resolveTypeExpr(md.Key)
		vt := c.resolveTypeExpr(md.Value)
		if !isStorageKind(kt) || !isStorageKind(vt) {
			c.errAt(diag.CodeTypeNotAllowedInStorage, md.Span(), "mapping key/value may not be a mapping, vector, or future")
		}
		mt := Mapping(kt, vt)
		if err := c.sym.InsertVariable(md.Span(), md.Name.Name, Variable{Type: mt, Decl: DeclStorage, Span: md.Span()}); err != nil {
			c.errAt(diag.CodeShadowedSymbol, md.Span(), err.Error())
		}
	}
}

func isStorageKind(t Type) bool {
	switch t.Cat {
	case MappingT, VectorT, FutureT:
		return false
	default:
		return true
	}
}

func (c *Checker) registerConsts(p *ast.Program) {
	for _, cd := range p.Consts {
		var declared *Type
		if cd.Type != nil {
			t := c.resolveTypeExpr(cd.Type)
			declared = &t
		}
		vt := c.VisitExpr(cd.Value, declared)
		final := vt
		if declared != nil {
			final = *declared
		}
		if err := c.sym.InsertVariable(cd.Span(), cd.Name.Name, Variable{Type: final, Decl: DeclConst, Span: cd.Span()}); err != nil {
			c.errAt(diag.CodeShadowedSymbol, cd.Span(), err.Error())
		}
		if n, ok := c.foldArrayLength(cd.Value); ok {
			c.sym.SetConstInt(cd.Name.Name, int64(n))
		}
	}
}

func (c *Checker) checkFunction(fn *ast.FunctionDecl) {
	fs := c.CheckSignature("", fn.ModulePath, fn)
	if err := c.sym.InsertFunction(fs); err != nil {
		c.errAt(diag.CodeShadowedSymbol, fn.Span(), err.Error())
	}
	if fn.Body == nil {
		return
	}

	prevState, prevKey := c.state, c.currentFunctionKey
	c.state = newScopeState(c.currentProgram, "", fn.Name.Name, fn.Variant)
	c.state.outputs = fs.Outputs
	c.state.isConstructor = fn.Name.Name == "constructor"
	c.currentFunctionKey = fs.QualifiedName()

	c.sym.EnterExistingScope(fn.Body.ID())
	for i, p := range fn.ConstParams {
		if i < len(fs.ConstParams) {
			_ = c.sym.InsertVariable(p.Span(), p.Name.Name, fs.ConstParams[i])
		}
	}
	for i, p := range fn.Inputs {
		if i < len(fs.Inputs) {
			_ = c.sym.InsertVariable(p.Span(), p.Name.Name, fs.Inputs[i])
		}
	}
	for _, s := range fn.Body.Statements {
		c.CheckStatement(s)
	}
	if len(fs.Outputs) > 0 && !c.state.hasReturn {
		c.errAt(diag.CodeExpectedGotType, fn.Span(), "function must return a value on every path")
	}
	if fn.Variant == ast.VariantAsyncTransition && !c.state.hasCalledFinalize {
		c.errAt(diag.CodeMustCallAsyncFunctionOnce, fn.Span(), "an async transition must call its paired async function exactly once")
	}
	c.sym.ExitScope()

	c.state, c.currentFunctionKey = prevState, prevKey
}
