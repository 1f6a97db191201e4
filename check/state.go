package check

import "github.com/leo-lang/leotype/ast"

// futureEntry is one unconsumed Future binding: the name it was bound to
// and the call site that produced it.
type futureEntry struct {
	name string
	call ast.Span
}

// scopeState is the single mutable record threaded through the body walk,
// per DESIGN NOTES §9: "model it as a single owned struct threaded
// through the walk with save/restore guards for each scoped flag."
type scopeState struct {
	programName string
	moduleName  string
	function    string
	variant     ast.FunctionVariant

	isConditional  bool
	isConstructor  bool
	hasReturn      bool
	hasCalledFinalize bool
	alreadyContainsAsyncBlock bool

	// conditionalLocals holds the names declared since entering the
	// innermost conditional branch (nil outside any conditional branch),
	// mirroring the Rust checker's conditional_scopes stack top.
	conditionalLocals map[string]bool

	// outputs is the enclosing function's declared return-type list,
	// consulted by the return-statement checker to build its expected type.
	outputs []Type

	// futures is an ordered map (insertion order matters for diagnostic
	// ordering): local name -> producing call location.
	futureOrder []string
	futures     map[string]ast.Span

	callLocation ast.Span

	// asyncBlockID is set while inside the body of an `async { ... }`
	// expression; zero value (0, false) otherwise.
	asyncBlockID      ast.NodeID
	inAsyncBlock      bool
	asyncBlockEntered map[string]bool // names introduced since entering the block
}

func newScopeState(program, module, function string, variant ast.FunctionVariant) *scopeState {
	return &scopeState{
		programName: program,
		moduleName:  module,
		function:    function,
		variant:     variant,
		futures:     map[string]ast.Span{},
	}
}

func (s *scopeState) addFuture(name string, at ast.Span) {
	if _, exists := s.futures[name]; !exists {
		s.futureOrder = append(s.futureOrder, name)
	}
	s.futures[name] = at
}

func (s *scopeState) consumeFuture(name string) (ast.Span, bool) {
	at, ok := s.futures[name]
	if !ok {
		return ast.Span{}, false
	}
	delete(s.futures, name)
	for i, n := range s.futureOrder {
		if n == name {
			s.futureOrder = append(s.futureOrder[:i], s.futureOrder[i+1:]...)
			break
		}
	}
	return at, true
}

// unconsumedFutures returns the remaining futures in insertion order, the
// ordering the "not all futures consumed" diagnostic must respect.
func (s *scopeState) unconsumedFutures() []string {
	out := make([]string, len(s.futureOrder))
	copy(out, s.futureOrder)
	return out
}

// --- save/restore guards -----------------------------------------------
//
// Every nested visit that mutates one of these flags must restore the
// prior value on every exit path, including error returns. Each guard
// method returns a closure to defer, matching the "scoped-acquisition
// idiom" of DESIGN NOTES §9.

func (s *scopeState) withConditional() func() {
	prev := s.isConditional
	s.isConditional = true
	return func() { s.isConditional = prev }
}

func (s *scopeState) withHasReturn(v bool) func() {
	prev := s.hasReturn
	s.hasReturn = v
	return func() { s.hasReturn = prev }
}

func (s *scopeState) withHasCalledFinalize(v bool) func() {
	prev := s.hasCalledFinalize
	s.hasCalledFinalize = v
	return func() { s.hasCalledFinalize = prev }
}

// withConditionalScope opens a fresh conditional branch: only names
// introduced since this call count as "declared in that conditional
// scope" for the async-function assignment restriction (spec.md §4.5).
// Each branch (then, else) gets its own scope, not a shared one.
func (s *scopeState) withConditionalScope() func() {
	prev := s.conditionalLocals
	s.conditionalLocals = map[string]bool{}
	return func() { s.conditionalLocals = prev }
}

func (s *scopeState) withAsyncBlock(id ast.NodeID) func() {
	prevID, prevIn, prevSet := s.asyncBlockID, s.inAsyncBlock, s.asyncBlockEntered
	s.asyncBlockID = id
	s.inAsyncBlock = true
	s.asyncBlockEntered = map[string]bool{}
	return func() {
		s.asyncBlockID, s.inAsyncBlock, s.asyncBlockEntered = prevID, prevIn, prevSet
	}
}

// introduce records that name was bound inside the current async block,
// so the assignability rule of spec.md §3 invariant 5 can recognize it.
func (s *scopeState) introduce(name string) {
	if s.inAsyncBlock {
		s.asyncBlockEntered[name] = true
	}
	if s.conditionalLocals != nil {
		s.conditionalLocals[name] = true
	}
}

// declaredInConditionalScope reports whether name was declared since
// entering the innermost conditional branch. Outside any conditional
// branch this is always false, matching the Rust checker's empty-stack
// behavior (spec.md §4.5).
func (s *scopeState) declaredInConditionalScope(name string) bool {
	if s.conditionalLocals == nil {
		return false
	}
	return s.conditionalLocals[name]
}

// assignableInAsyncBlock reports whether name was introduced since
// entering the current async block (spec.md §3 invariant 5).
func (s *scopeState) assignableInAsyncBlock(name string) bool {
	if !s.inAsyncBlock {
		return true
	}
	return s.asyncBlockEntered[name]
}
