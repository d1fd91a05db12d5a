package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/config"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/typesystem"
)

// resolver is the Resolution Pass. Class headers are validated and spliced
// for every class before any feature is checked, so inherited attributes are
// visible no matter in which order classes were declared.
type resolver struct {
	registry    *symbols.Registry
	decorations *symbols.Decorations
	builtins    symbols.Builtins
	lattice     *typesystem.Lattice
}

func newResolver(registry *symbols.Registry, decorations *symbols.Decorations) *resolver {
	b := registry.Builtins()
	return &resolver{
		registry:    registry,
		decorations: decorations,
		builtins:    b,
		lattice:     typesystem.NewLattice(b.Object),
	}
}

func (r *resolver) resolve(program *ast.Program) {
	for _, class := range program.Classes {
		r.resolveHeader(class)
	}
	for _, class := range program.Classes {
		r.resolveFeatures(class)
	}
}

// resolveHeader checks the parent of class and chains its attribute scope
// onto the parent's.
func (r *resolver) resolveHeader(class *ast.Class) {
	t := r.decorations.Classes[class]
	if class.Parent == nil {
		t.SetParent(r.builtins.Object)
		return
	}

	parent := r.registry.Resolve(class.Parent.Value)
	if parent == nil {
		r.registry.Errorf(class, class.Parent.Token, diagnostics.ErrS003,
			"Class %s has undefined parent %s", class.Name.Value, class.Parent.Value)
		t.SetParent(r.registry.Globals())
		return
	}
	if r.builtins.IllegalParent(parent) {
		r.registry.Errorf(class, class.Parent.Token, diagnostics.ErrS003,
			"Class %s has illegal parent %s", class.Name.Value, class.Parent.Value)
	}

	t.SetParent(parent)
	if r.inCycle(t) {
		r.registry.Errorf(class, class.Name.Token, diagnostics.ErrS003,
			"Inheritance cycle for class %s", class.Name.Value)
		t.SetParent(r.registry.Globals())
	}
}

// inCycle reports whether the superclass chain of t leads back to t.
func (r *resolver) inCycle(t *symbols.TypeSymbol) bool {
	seen := make(map[*symbols.TypeSymbol]bool)
	for s := t.Super(); s != nil && !seen[s]; s = s.Super() {
		if s == t {
			return true
		}
		seen[s] = true
	}
	return false
}

func (r *resolver) resolveFeatures(class *ast.Class) {
	t := r.decorations.Classes[class]
	for _, feature := range class.Features {
		switch f := feature.(type) {
		case *ast.Attribute:
			r.checkAttribute(t, f)
		case *ast.Method:
			r.checkMethod(t, f)
		}
	}
}

// inheritsAttribute reports whether an ancestor of t declares name.
func (r *resolver) inheritsAttribute(t *symbols.TypeSymbol, name string) bool {
	for _, anc := range r.registry.Ancestors(t.Super()) {
		if anc != t && anc.Attribute(name) != nil {
			return true
		}
	}
	return false
}

func (r *resolver) checkAttribute(t *symbols.TypeSymbol, attr *ast.Attribute) {
	id := r.decorations.Attributes[attr]
	// Rejected by the Definition Pass.
	if t.Attribute(id.Name()) != id {
		return
	}

	switch declared := r.registry.TypeOf(id); {
	case r.inheritsAttribute(t, id.Name()):
		r.registry.Errorf(attr, attr.Name.Token, diagnostics.ErrS001,
			"Class %s redefines inherited attribute %s", t.Name(), id.Name())
	case declared == nil:
		r.registry.Errorf(attr, attr.Type.Token, diagnostics.ErrS002,
			"Class %s has attribute %s with undefined type %s", t.Name(), id.Name(), attr.Type.Value)
	case attr.Init != nil:
		c := r.newChecker(t, t)
		initType := c.check(attr.Init)
		if initType != nil && !c.conforms(initType, declared) {
			r.registry.Errorf(attr.Init, attr.Init.GetToken(), diagnostics.ErrS004,
				"Type %s of initialization expression of attribute %s is incompatible with declared type %s",
				initType.Name(), id.Name(), declared.Name())
		}
	}
}

func (r *resolver) checkMethod(t *symbols.TypeSymbol, method *ast.Method) {
	m := r.decorations.Methods[method]
	r.registry.LinkMethod(m)
	name := method.Name.Value

	returns := m.ReturnType()
	if returns == nil {
		r.registry.Errorf(method, method.ReturnType.Token, diagnostics.ErrS002,
			"Class %s has method %s with undefined return type %s", t.Name(), name, method.ReturnType.Value)
	}

	for _, formal := range method.Formals {
		if formal.Name.Value == config.SelfName {
			r.registry.Errorf(formal, formal.Name.Token, diagnostics.ErrS001,
				"Method %s of class %s has formal parameter with illegal name self", name, t.Name())
		}
		switch {
		case formal.Type.Value == config.SelfTypeClass:
			r.registry.Errorf(formal, formal.Type.Token, diagnostics.ErrS001,
				"Method %s of class %s has formal parameter %s with illegal type SELF_TYPE", name, t.Name(), formal.Name.Value)
		case r.registry.TypeOf(r.decorations.Formals[formal]) == nil:
			r.registry.Errorf(formal, formal.Type.Token, diagnostics.ErrS002,
				"Method %s of class %s has formal parameter %s with undefined type %s", name, t.Name(), formal.Name.Value, formal.Type.Value)
		}
	}

	r.checkOverride(t, method, m)

	c := r.newChecker(t, m)
	bodyType := c.check(method.Body)
	if returns == nil || bodyType == nil {
		return
	}
	if bodyType == r.builtins.SelfType && returns != r.builtins.SelfType {
		bodyType = t
	}
	if !c.conforms(bodyType, returns) {
		r.registry.Errorf(method.Body, method.Body.GetToken(), diagnostics.ErrS004,
			"Type %s of the body of method %s is incompatible with declared return type %s",
			bodyType.Name(), name, method.ReturnType.Value)
	}
}

// checkOverride compares method against the nearest inherited method of the
// same name. Every mismatch is reported on its own.
func (r *resolver) checkOverride(t *symbols.TypeSymbol, method *ast.Method, m *symbols.MethodSymbol) {
	inherited, owner := r.registry.FindMethod(t.Super(), m.Name())
	if inherited == nil || owner == t {
		return
	}
	name := m.Name()

	if m.TypeName != inherited.TypeName {
		r.registry.Errorf(method, method.ReturnType.Token, diagnostics.ErrS004,
			"Class %s overrides method %s but changes return type from %s to %s",
			t.Name(), name, inherited.TypeName, m.TypeName)
	}

	formals := inherited.Formals()
	if len(formals) != len(method.Formals) {
		r.registry.Errorf(method, method.Name.Token, diagnostics.ErrS004,
			"Class %s overrides method %s with different number of formal parameters", t.Name(), name)
		return
	}
	for i, formal := range method.Formals {
		if formal.Type.Value != formals[i].TypeName {
			r.registry.Errorf(formal, formal.Type.Token, diagnostics.ErrS004,
				"Class %s overrides method %s but changes type of formal parameter %s from %s to %s",
				t.Name(), name, formal.Name.Value, formals[i].TypeName, formal.Type.Value)
		}
	}
}

// checkEntryPoint requires class Main with a method main.
func (r *resolver) checkEntryPoint() {
	main := r.registry.Resolve(config.MainClass)
	if main == nil {
		r.registry.Report(diagnostics.ErrS006, "No class Main")
		return
	}
	if m, _ := r.registry.FindMethod(main, config.MainMethod); m == nil {
		r.registry.Report(diagnostics.ErrS006, "Class Main has no method main")
	}
}
