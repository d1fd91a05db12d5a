package symbols

import "github.com/funvibe/coolc/internal/ast"

// Decorations are the facts the passes attach to tree nodes. The Definition
// Pass fills the symbol maps; the Resolution Pass fills Scopes and Types.
type Decorations struct {
	Classes    map[*ast.Class]*TypeSymbol
	Methods    map[*ast.Method]*MethodSymbol
	Attributes map[*ast.Attribute]*IdSymbol
	Formals    map[*ast.Formal]*IdSymbol

	// Let bindings and case branches
	Bindings map[ast.Node]*IdSymbol
	Scopes   map[ast.Node]*Scope

	// Types is the static type of every checked expression; nil means the
	// expression has no type.
	Types map[ast.Expression]*TypeSymbol
}

func NewDecorations() *Decorations {
	return &Decorations{
		Classes:    make(map[*ast.Class]*TypeSymbol),
		Methods:    make(map[*ast.Method]*MethodSymbol),
		Attributes: make(map[*ast.Attribute]*IdSymbol),
		Formals:    make(map[*ast.Formal]*IdSymbol),
		Bindings:   make(map[ast.Node]*IdSymbol),
		Scopes:     make(map[ast.Node]*Scope),
		Types:      make(map[ast.Expression]*TypeSymbol),
	}
}

// TypeOf returns the recorded type of e.
func (d *Decorations) TypeOf(e ast.Expression) *TypeSymbol {
	if d == nil {
		return nil
	}
	return d.Types[e]
}
