package symbols

import (
	"fmt"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/token"
)

// Registry is the global class table of one analysis run together with its
// diagnostic sink. Runs never share a Registry.
type Registry struct {
	globals  *Scope
	builtins Builtins

	fileNames map[*ast.Class]string
	owners    ast.Owners

	diagnostics []*diagnostics.DiagnosticError
}

// NewRegistry returns a registry seeded with the builtin classes.
func NewRegistry() *Registry {
	r := &Registry{
		globals:  NewScope(nil),
		builtins: newBuiltins(),
	}
	for _, t := range r.builtins.All() {
		r.globals.Add(t)
	}
	r.builtins.Object.SetParent(r.globals)
	for _, t := range r.builtins.All() {
		r.LinkClass(t)
		if t != r.builtins.Object {
			t.SetParent(r.builtins.Object)
		}
	}
	return r
}

func (r *Registry) Globals() *Scope { return r.globals }

func (r *Registry) Builtins() Builtins { return r.builtins }

// SetSources tells the registry which file each class came from. owners maps
// any node to its class.
func (r *Registry) SetSources(fileNames map[*ast.Class]string, owners ast.Owners) {
	r.fileNames = fileNames
	r.owners = owners
}

// Define registers a class; false if the name is taken.
func (r *Registry) Define(t *TypeSymbol) bool {
	return r.globals.Add(t)
}

// Resolve looks a class up by name.
func (r *Registry) Resolve(name string) *TypeSymbol {
	t, _ := r.globals.LookupLocal(name).(*TypeSymbol)
	return t
}

// Classes returns every registered class, builtins first.
func (r *Registry) Classes() []*TypeSymbol {
	var out []*TypeSymbol
	for _, sym := range r.globals.Symbols() {
		if t, ok := sym.(*TypeSymbol); ok {
			out = append(out, t)
		}
	}
	return out
}

// Ancestors returns t and its superclasses, nearest first. The walk stops at
// a missing superclass or at the first class seen twice.
func (r *Registry) Ancestors(t *TypeSymbol) []*TypeSymbol {
	var chain []*TypeSymbol
	seen := make(map[*TypeSymbol]bool)
	for t != nil && !seen[t] {
		seen[t] = true
		chain = append(chain, t)
		t = t.Super()
	}
	return chain
}

// FindMethod returns the first method called name on the ancestor chain of
// start, together with the class that declares it.
func (r *Registry) FindMethod(start *TypeSymbol, name string) (*MethodSymbol, *TypeSymbol) {
	for _, t := range r.Ancestors(start) {
		if m := t.Method(name); m != nil {
			return m, t
		}
	}
	return nil, nil
}

// Link resolves the raw type names of every registered class once.
func (r *Registry) Link() {
	for _, t := range r.Classes() {
		r.LinkClass(t)
	}
}

// LinkClass resolves the superclass, attribute types and method signatures
// of t.
func (r *Registry) LinkClass(t *TypeSymbol) {
	if t.SuperName != "" {
		t.SetSuper(r.Resolve(t.SuperName))
	}
	for _, a := range t.Attributes() {
		r.TypeOf(a)
	}
	for _, m := range t.Methods() {
		r.LinkMethod(m)
	}
}

// LinkMethod resolves the return type and formal types of m.
func (r *Registry) LinkMethod(m *MethodSymbol) {
	r.TypeOf(&m.IdSymbol)
	for _, f := range m.Formals() {
		r.TypeOf(f)
	}
}

// TypeOf returns the declared type of id, resolving it on first use.
func (r *Registry) TypeOf(id *IdSymbol) *TypeSymbol {
	if id == nil {
		return nil
	}
	if !id.linked {
		id.setType(r.Resolve(id.TypeName))
	}
	return id.typ
}

// Errorf records a semantic diagnostic at tok. The file is the one that
// declared the class owning node.
func (r *Registry) Errorf(node ast.Node, tok token.Token, code diagnostics.ErrorCode, format string, args ...any) {
	err := diagnostics.NewError(code, tok, fmt.Sprintf(format, args...))
	err.File = r.fileOf(node)
	r.diagnostics = append(r.diagnostics, err)
}

// Report records a diagnostic that has no source position.
func (r *Registry) Report(code diagnostics.ErrorCode, format string, args ...any) {
	r.diagnostics = append(r.diagnostics, diagnostics.Errorf(code, token.Token{}, format, args...))
}

func (r *Registry) fileOf(node ast.Node) string {
	if class, ok := node.(*ast.Class); ok {
		return r.fileNames[class]
	}
	if class := r.owners.Of(node); class != nil {
		return r.fileNames[class]
	}
	return ""
}

// Diagnostics returns every diagnostic in report order.
func (r *Registry) Diagnostics() []*diagnostics.DiagnosticError {
	return r.diagnostics
}

func (r *Registry) HasErrors() bool {
	return len(r.diagnostics) > 0
}
