package typesystem

import "github.com/funvibe/coolc/internal/symbols"

// Lattice orders classes by inheritance. A chain that stops before Object
// (undefined parent, cycle) is treated as hanging directly under Object.
//
// The lattice knows nothing about SELF_TYPE; callers substitute it first.
type Lattice struct {
	object *symbols.TypeSymbol
}

func NewLattice(object *symbols.TypeSymbol) *Lattice {
	return &Lattice{object: object}
}

// chain returns t and its superclasses, nearest first, ending at Object.
func (l *Lattice) chain(t *symbols.TypeSymbol) []*symbols.TypeSymbol {
	var out []*symbols.TypeSymbol
	seen := make(map[*symbols.TypeSymbol]bool)
	for t != nil && !seen[t] {
		seen[t] = true
		out = append(out, t)
		t = t.Super()
	}
	if !seen[l.object] {
		out = append(out, l.object)
	}
	return out
}

// IsSubclass reports whether t equals ancestor or inherits from it.
func (l *Lattice) IsSubclass(ancestor, t *symbols.TypeSymbol) bool {
	if ancestor == nil || t == nil {
		return false
	}
	for _, c := range l.chain(t) {
		if c == ancestor {
			return true
		}
	}
	return false
}

// Join is the least common ancestor of t1 and t2. A nil side yields the
// other side.
func (l *Lattice) Join(t1, t2 *symbols.TypeSymbol) *symbols.TypeSymbol {
	if t1 == nil {
		return t2
	}
	if t2 == nil {
		return t1
	}
	ancestors := make(map[*symbols.TypeSymbol]bool)
	for _, c := range l.chain(t1) {
		ancestors[c] = true
	}
	for _, c := range l.chain(t2) {
		if ancestors[c] {
			return c
		}
	}
	return l.object
}
