package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/config"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
)

// Definer is the Definition Pass. It registers every class with its methods
// and attributes, reporting duplicates. It does not resolve type names.
type Definer struct {
	registry    *symbols.Registry
	decorations *symbols.Decorations
}

func NewDefiner(registry *symbols.Registry, decorations *symbols.Decorations) *Definer {
	return &Definer{registry: registry, decorations: decorations}
}

func (d *Definer) Define(program *ast.Program) {
	for _, class := range program.Classes {
		d.defineClass(class)
	}
}

func (d *Definer) defineClass(class *ast.Class) {
	name := class.Name.Value
	superName := class.ParentName()
	if superName == "" {
		superName = config.ObjectClass
	}

	// A rejected class keeps its own symbol so its features are still checked.
	t := symbols.NewTypeSymbol(name, superName)
	switch {
	case name == config.SelfTypeClass:
		d.registry.Errorf(class, class.Name.Token, diagnostics.ErrS001, "Class has illegal name SELF_TYPE")
	case !d.registry.Define(t):
		d.registry.Errorf(class, class.Name.Token, diagnostics.ErrS001, "Class %s is redefined", name)
	}
	d.decorations.Classes[class] = t

	for _, feature := range class.Features {
		switch f := feature.(type) {
		case *ast.Method:
			d.defineMethod(t, f)
		case *ast.Attribute:
			d.defineAttribute(t, f)
		}
	}
}

func (d *Definer) defineMethod(class *symbols.TypeSymbol, method *ast.Method) {
	m := symbols.NewMethodSymbol(method.Name.Value, method.ReturnType.Value, class)
	if !class.AddMethod(m) {
		d.registry.Errorf(method, method.Name.Token, diagnostics.ErrS001,
			"Class %s redefines method %s", class.Name(), method.Name.Value)
	}
	d.decorations.Methods[method] = m

	for _, formal := range method.Formals {
		id := symbols.NewIdSymbol(formal.Name.Value, formal.Type.Value)
		if !m.Add(id) {
			d.registry.Errorf(formal, formal.Name.Token, diagnostics.ErrS001,
				"Method %s of class %s redefines formal parameter %s", method.Name.Value, class.Name(), formal.Name.Value)
		}
		d.decorations.Formals[formal] = id
	}
}

func (d *Definer) defineAttribute(class *symbols.TypeSymbol, attr *ast.Attribute) {
	name := attr.Name.Value
	id := symbols.NewIdSymbol(name, attr.Type.Value)
	d.decorations.Attributes[attr] = id

	switch {
	case name == config.SelfName:
		d.registry.Errorf(attr, attr.Name.Token, diagnostics.ErrS001,
			"Class %s has attribute with illegal name self", class.Name())
	case !class.Add(id):
		d.registry.Errorf(attr, attr.Name.Token, diagnostics.ErrS001,
			"Class %s redefines attribute %s", class.Name(), name)
	}
}
