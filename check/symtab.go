package check

import (
	"fmt"

	"github.com/leo-lang/leotype/ast"
)

// DeclKind classifies how a variable entered scope.
type DeclKind uint8

const (
	DeclMut DeclKind = iota
	DeclConst
	DeclConstParameter
	DeclStorage
	DeclInput
)

// Variable is one symbol-table entry for a value binding.
type Variable struct {
	Type Type
	Decl DeclKind
	Mode ast.Mode // meaningful when Decl == DeclInput
	Span ast.Span
}

// Member is a resolved struct/record field.
type Member struct {
	Name string
	Type Type
}

// CompositeDescriptor is the resolved view of a struct or record
// declaration, looked up by the type lattice and the expression checker.
type CompositeDescriptor struct {
	Program     string
	Name        string
	IsRecord    bool
	ConstParams []Variable
	Members     []Member
}

// FinalizerInfo describes an async transition's call to its paired async
// function (spec.md §3, "Functions"). The checker does not populate it:
// each call site is recorded as a FinalizerInferenceSite in
// SymbolTable.AsyncInputTypes instead.
type FinalizerInfo struct {
	ConsumedFutures []string
	InferredInputs  []Type
}

// FinalizerInferenceSite is one call-site's contribution to an async
// function's eventual input types, recorded by AttachFinalizer and later
// read back (and meet-merged) by the signature checker when that async
// function's own signature is checked. This realizes the two-phase
// future-inference protocol of DESIGN NOTES §9.
type FinalizerInferenceSite struct {
	CallerLocation  ast.Span
	ConsumedFutures []string
	InferredInputs  []Type
}

// FunctionSymbol is one function/transition/inline declaration's
// resolved signature and metadata.
type FunctionSymbol struct {
	Program     string
	ModulePath  []string
	Name        string
	Variant     ast.FunctionVariant
	ConstParams []Variable
	ConstNames  []string
	Inputs      []Variable
	InputNames  []string
	Outputs     []Type
	Span        ast.Span

	Finalizer *FinalizerInfo // not set by the checker; see FinalizerInfo

	CalledByTransition bool // not set by the checker; the never-called warning reads AsyncInputTypes
}

// QualifiedName returns "program/module.../name" used as the map key for
// cross-call bookkeeping (call graph, async input-type accumulation).
func (f *FunctionSymbol) QualifiedName() string {
	prog := f.Program
	if prog == "" {
		prog = "<current>"
	}
	name := f.Name
	for _, m := range f.ModulePath {
		name = m + "::" + name
	}
	return prog + "/" + name
}

type symKind uint8

const (
	symVar symKind = iota
	symFunc
	symComposite
)

// Symbol is the tagged union stored in a scope's name table.
type Symbol struct {
	Kind      symKind
	Var       *Variable
	Func      *FunctionSymbol
	Composite *CompositeDescriptor
}

// scope is one nested lexical level. Block-level scopes form a stack via
// anc; a program's top-level declarations live in a global scope with no
// ancestor.
type scope struct {
	anc    *scope
	id     ast.NodeID
	global bool
	sym    map[string]*Symbol
}

func newScope(anc *scope, id ast.NodeID, global bool) *scope {
	return &scope{anc: anc, id: id, global: global, sym: map[string]*Symbol{}}
}

// SymbolTable is the nested-scope-stack symbol table of spec.md §4.3. It
// is owned and mutated by the checker during the walk; scope transitions
// are strict push/pop, and the checker pairs every EnterExistingScope or
// InsertBlock with a direct ExitScope call.
type SymbolTable struct {
	currentProgram string

	// globals holds one global scope per program: "" is the current
	// program, anything else is an imported program's exported namespace.
	globals map[string]*scope

	stack []*scope

	nextSyntheticID ast.NodeID

	// AsyncInputTypes accumulates, per async-function qualified name, the
	// inferred-input contribution of every async-transition call site
	// that calls it. Populated by AttachFinalizer, read and merged (not
	// removed) by the signature checker (sig.go) when that async function's own
	// signature is checked. This is also one of the pass's documented
	// outputs (spec.md §9).
	AsyncInputTypes map[string][]FinalizerInferenceSite

	// constInts holds the folded value of every global or local const
	// whose initializer folds to an integer, keyed by unqualified name. It
	// exists solely so array-length expressions that reference a const
	// (`[u8; LEN]`) can resolve to a concrete length; the checker never
	// folds arbitrary constant expressions beyond this narrow case.
	constInts map[string]int64
}

// NewSymbolTable creates a symbol table for currentProgram with an empty
// global scope, ready for the signature checker to populate.
func NewSymbolTable(currentProgram string) *SymbolTable {
	global := newScope(nil, 0, true)
	st := &SymbolTable{
		currentProgram:  currentProgram,
		globals:         map[string]*scope{"": global},
		AsyncInputTypes: map[string][]FinalizerInferenceSite{},
		constInts:       map[string]int64{},
	}
	st.stack = []*scope{global}
	return st
}

// ImportProgram registers an empty global scope for an imported program
// name so later declarations (struct/function) can be seeded into it.
func (st *SymbolTable) ImportProgram(name string) {
	if _, ok := st.globals[name]; !ok {
		st.globals[name] = newScope(nil, 0, true)
	}
}

func (st *SymbolTable) top() *scope { return st.stack[len(st.stack)-1] }

// EnterExistingScope pushes a fresh child scope tagged with an AST node
// ID that already exists (a Block, a Loop body, an async block), so a
// second pass over the same AST can re-associate scope state with the
// same node.
func (st *SymbolTable) EnterExistingScope(id ast.NodeID) {
	st.stack = append(st.stack, newScope(st.top(), id, false))
}

// InsertBlock pushes a fresh child scope with a synthesized ID for a
// syntactic position that has no AST node of its own (e.g. the implicit
// scope wrapping a conditional arm), returning the assigned ID.
func (st *SymbolTable) InsertBlock() ast.NodeID {
	st.nextSyntheticID++
	id := ast.NodeID(1<<31) + st.nextSyntheticID
	st.stack = append(st.stack, newScope(st.top(), id, false))
	return id
}

// EnterParent pops back to the parent of the current scope. It is the
// same operation as ExitScope; the distinct name mirrors spec.md §4.3's
// enter_parent/enter_existing_scope pairing vocabulary.
func (st *SymbolTable) EnterParent() { st.ExitScope() }

// ExitScope pops the current scope. Panics on stack underflow: callers
// must never exit more scopes than they entered.
func (st *SymbolTable) ExitScope() {
	if len(st.stack) <= 1 {
		panic("check: ExitScope called with no non-global scope active")
	}
	st.stack = st.stack[:len(st.stack)-1]
}

// Depth reports how many scopes (including the global scope) are active.
func (st *SymbolTable) Depth() int { return len(st.stack) }

// InsertVariable rejects shadowing at the same scope with a named error,
// distinguishing a const-generic/input name collision from a plain
// duplicate-input collision per SPEC_FULL.md's supplemented feature #2.
func (st *SymbolTable) InsertVariable(span ast.Span, name string, v Variable) error {
	s := st.top()
	if existing, ok := s.sym[name]; ok {
		if existing.Kind == symVar && existing.Var.Decl == DeclConstParameter && v.Decl == DeclInput {
			return fmt.Errorf("const parameter %q shadows input", name)
		}
		return fmt.Errorf("symbol %q already declared in this scope", name)
	}
	s.sym[name] = &Symbol{Kind: symVar, Var: &v}
	return nil
}

// InsertFunction seeds a function signature into the appropriate global
// scope (current program unless fn.Program names an import).
func (st *SymbolTable) InsertFunction(fn *FunctionSymbol) error {
	g, ok := st.globals[fn.Program]
	if !ok {
		st.ImportProgram(fn.Program)
		g = st.globals[fn.Program]
	}
	if _, exists := g.sym[fn.Name]; exists {
		return fmt.Errorf("function %q already declared", fn.Name)
	}
	g.sym[fn.Name] = &Symbol{Kind: symFunc, Func: fn}
	return nil
}

// InsertComposite seeds a struct/record descriptor into the appropriate
// global scope.
func (st *SymbolTable) InsertComposite(desc *CompositeDescriptor) error {
	g, ok := st.globals[desc.Program]
	if !ok {
		st.ImportProgram(desc.Program)
		g = st.globals[desc.Program]
	}
	if _, exists := g.sym[desc.Name]; exists {
		return fmt.Errorf("struct %q already declared", desc.Name)
	}
	g.sym[desc.Name] = &Symbol{Kind: symComposite, Composite: desc}
	return nil
}

// SetLocalType installs or updates the resolved type of a name visible in
// the current scope chain. It is used both to seed parameter types and
// to install the type inferred for a `let`/`const` definition.
func (st *SymbolTable) SetLocalType(name string, t Type) bool {
	for s := st.top(); s != nil; s = s.anc {
		if sym, ok := s.sym[name]; ok && sym.Kind == symVar {
			sym.Var.Type = t
			return true
		}
		if s.global {
			break
		}
	}
	return false
}

// LookupPath resolves a (possibly qualified) path: local scope chain
// first, then the global scope of the path's program (or the current
// program if unqualified).
func (st *SymbolTable) LookupPath(path ast.Path) (*Symbol, bool) {
	if !path.Qualified() {
		for s := st.top(); s != nil; s = s.anc {
			if sym, ok := s.sym[path.Name]; ok {
				return sym, true
			}
			if s.global {
				break
			}
		}
	}
	prog := path.Program
	g, ok := st.globals[prog]
	if !ok {
		return nil, false
	}
	sym, ok := g.sym[path.Name]
	return sym, ok
}

// LookupVariable is a convenience wrapper over LookupPath for the common
// unqualified-name-lookup case.
func (st *SymbolTable) LookupVariable(name string) (*Variable, bool) {
	sym, ok := st.LookupPath(ast.Path{Name: name})
	if !ok || sym.Kind != symVar {
		return nil, false
	}
	return sym.Var, true
}

// LookupFunction resolves a path to a function symbol.
func (st *SymbolTable) LookupFunction(path ast.Path) (*FunctionSymbol, bool) {
	sym, ok := st.LookupPath(path)
	if !ok || sym.Kind != symFunc {
		return nil, false
	}
	return sym.Func, true
}

// LookupStruct resolves a path to a composite descriptor of either kind.
func (st *SymbolTable) LookupStruct(path ast.Path) (*CompositeDescriptor, bool) {
	sym, ok := st.LookupPath(path)
	if !ok || sym.Kind != symComposite {
		return nil, false
	}
	return sym.Composite, true
}

// LookupRecord is LookupStruct restricted to record composites.
func (st *SymbolTable) LookupRecord(path ast.Path) (*CompositeDescriptor, bool) {
	desc, ok := st.LookupStruct(path)
	if !ok || !desc.IsRecord {
		return nil, false
	}
	return desc, true
}

// AttachFinalizer records, on the callee's async-function bookkeeping,
// the futures a caller consumed and the inferred argument types at one
// async-transition call site (spec.md §4.3). calleeName must be the
// callee FunctionSymbol's QualifiedName().
func (st *SymbolTable) AttachFinalizer(calleeName string, site FinalizerInferenceSite) {
	st.AsyncInputTypes[calleeName] = append(st.AsyncInputTypes[calleeName], site)
}

// SetConstInt records the folded integer value of a global or local const.
func (st *SymbolTable) SetConstInt(name string, v int64) { st.constInts[name] = v }

// ConstIntValue returns the folded integer value of a const, if its
// initializer was foldable.
func (st *SymbolTable) ConstIntValue(name string) (int64, bool) {
	v, ok := st.constInts[name]
	return v, ok
}

// ResolveComposite adapts LookupStruct to the structResolver shape used
// by the type lattice's SizeInBits/IsValidOptionalInner helpers.
func (st *SymbolTable) ResolveComposite(ref CompositeRef) (*CompositeDescriptor, bool) {
	return st.LookupStruct(ast.Path{Program: ref.Program, Name: ref.Name})
}
