package check

// CallGraph records caller->callee edges for every same-program call
// expression the expression checker resolves (spec.md §4.5, "The call
// graph gains an edge caller->callee except across program boundaries").
type CallGraph struct {
	edges map[string]map[string]bool
}

// NewCallGraph returns an empty call graph.
func NewCallGraph() *CallGraph {
	return &CallGraph{edges: map[string]map[string]bool{}}
}

// AddEdge records that caller calls callee.
func (g *CallGraph) AddEdge(caller, callee string) {
	m, ok := g.edges[caller]
	if !ok {
		m = map[string]bool{}
		g.edges[caller] = m
	}
	m[callee] = true
}

// Callees returns the set of functions caller is known to call.
func (g *CallGraph) Callees(caller string) []string {
	var out []string
	for callee := range g.edges[caller] {
		out = append(out, callee)
	}
	return out
}

// StructGraph records struct->struct member-type dependency edges,
// mutated on every composite reference (spec.md §5).
type StructGraph struct {
	edges map[string]map[string]bool
	used  map[string]bool
}

// NewStructGraph returns an empty struct graph.
func NewStructGraph() *StructGraph {
	return &StructGraph{edges: map[string]map[string]bool{}, used: map[string]bool{}}
}

// AddEdge records that struct `from` has a field of (possibly nested)
// type `to`.
func (g *StructGraph) AddEdge(from, to string) {
	m, ok := g.edges[from]
	if !ok {
		m = map[string]bool{}
		g.edges[from] = m
	}
	m[to] = true
}

// MarkUsed records that a struct was actually referenced somewhere in the
// checked program (spec.md §2, "the set of structs actually referenced").
func (g *StructGraph) MarkUsed(name string) { g.used[name] = true }

// Used returns the set of structs actually referenced.
func (g *StructGraph) Used() []string {
	var out []string
	for name := range g.used {
		out = append(out, name)
	}
	return out
}
