package symbols

// Named is anything a Namespace can hold.
type Named interface {
	Name() string
}

// Namespace is a chained scope of named symbols.
//
// Add fails when the name already exists directly in this scope; Lookup
// checks this scope and then the parent chain.
type Namespace interface {
	Add(sym Named) bool
	Lookup(name string) Named
	LookupLocal(name string) Named
	Parent() Namespace
	SetParent(parent Namespace)
}

// Scope is a plain chained scope that remembers insertion order.
type Scope struct {
	parent Namespace
	names  map[string]Named
	order  []Named
}

func NewScope(parent Namespace) *Scope {
	return &Scope{parent: parent, names: make(map[string]Named)}
}

func (s *Scope) Add(sym Named) bool {
	if _, ok := s.names[sym.Name()]; ok {
		return false
	}
	s.names[sym.Name()] = sym
	s.order = append(s.order, sym)
	return true
}

func (s *Scope) LookupLocal(name string) Named {
	return s.names[name]
}

func (s *Scope) Lookup(name string) Named {
	return lookupChain(s, name)
}

func (s *Scope) Parent() Namespace { return s.parent }

func (s *Scope) SetParent(parent Namespace) { s.parent = parent }

// Symbols returns the symbols of this scope in insertion order.
func (s *Scope) Symbols() []Named {
	out := make([]Named, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Scope) Len() int { return len(s.order) }

// lookupChain walks ns and its parents. A chain that loops back on itself
// (inheritance cycle) ends at the first revisited scope.
func lookupChain(ns Namespace, name string) Named {
	seen := make(map[Namespace]bool)
	for ns != nil && !seen[ns] {
		seen[ns] = true
		if sym := ns.LookupLocal(name); sym != nil {
			return sym
		}
		ns = ns.Parent()
	}
	return nil
}
