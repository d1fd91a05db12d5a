package symbols

// IdSymbol is a typed name: attribute, formal, let local or case binding.
// TypeName is the declared type as written; the resolved class is cached by
// Registry.Link or Registry.TypeOf.
type IdSymbol struct {
	name     string
	TypeName string
	typ      *TypeSymbol
	linked   bool
}

func NewIdSymbol(name, typeName string) *IdSymbol {
	return &IdSymbol{name: name, TypeName: typeName}
}

// NewUntypedSymbol returns a symbol whose declared type is known to be
// unusable; it resolves to no type.
func NewUntypedSymbol(name, typeName string) *IdSymbol {
	s := NewIdSymbol(name, typeName)
	s.setType(nil)
	return s
}

func (s *IdSymbol) Name() string { return s.name }

// Type is the resolved declared type, nil when unresolved or undefined.
func (s *IdSymbol) Type() *TypeSymbol { return s.typ }

func (s *IdSymbol) setType(t *TypeSymbol) {
	s.typ = t
	s.linked = true
}

// MethodSymbol is a method signature. It is also the scope of its formals,
// chained onto the owning class so a body sees formals before attributes.
type MethodSymbol struct {
	IdSymbol
	formals *Scope
	Owner   *TypeSymbol
}

func NewMethodSymbol(name, returnType string, owner *TypeSymbol) *MethodSymbol {
	m := &MethodSymbol{IdSymbol: IdSymbol{name: name, TypeName: returnType}, Owner: owner}
	if owner != nil {
		m.formals = NewScope(owner)
	} else {
		m.formals = NewScope(nil)
	}
	return m
}

// ReturnType is the resolved return type.
func (m *MethodSymbol) ReturnType() *TypeSymbol { return m.Type() }

// Formals returns the formal parameters in declaration order.
func (m *MethodSymbol) Formals() []*IdSymbol {
	out := make([]*IdSymbol, 0, m.formals.Len())
	for _, sym := range m.formals.Symbols() {
		if id, ok := sym.(*IdSymbol); ok {
			out = append(out, id)
		}
	}
	return out
}

func (m *MethodSymbol) Add(sym Named) bool            { return m.formals.Add(sym) }
func (m *MethodSymbol) Lookup(name string) Named      { return lookupChain(m, name) }
func (m *MethodSymbol) LookupLocal(name string) Named { return m.formals.LookupLocal(name) }
func (m *MethodSymbol) Parent() Namespace             { return m.formals.Parent() }
func (m *MethodSymbol) SetParent(parent Namespace)    { m.formals.SetParent(parent) }

// TypeSymbol is a class. As a Namespace it is the attribute scope, which the
// Resolution Pass chains onto the superclass. Methods live in a separate
// scope that is never chained; inherited methods are found with
// Registry.FindMethod.
type TypeSymbol struct {
	name      string
	SuperName string
	super     *TypeSymbol

	attributes *Scope
	methods    *Scope

	Builtin bool
}

func NewTypeSymbol(name, superName string) *TypeSymbol {
	return &TypeSymbol{
		name:       name,
		SuperName:  superName,
		attributes: NewScope(nil),
		methods:    NewScope(nil),
	}
}

func (t *TypeSymbol) Name() string { return t.name }

// Super is the resolved superclass, nil for Object and for an undefined
// parent.
func (t *TypeSymbol) Super() *TypeSymbol { return t.super }

func (t *TypeSymbol) SetSuper(super *TypeSymbol) { t.super = super }

func (t *TypeSymbol) Add(sym Named) bool            { return t.attributes.Add(sym) }
func (t *TypeSymbol) Lookup(name string) Named      { return lookupChain(t, name) }
func (t *TypeSymbol) LookupLocal(name string) Named { return t.attributes.LookupLocal(name) }
func (t *TypeSymbol) Parent() Namespace             { return t.attributes.Parent() }
func (t *TypeSymbol) SetParent(parent Namespace)    { t.attributes.SetParent(parent) }

// Attribute returns the attribute declared directly in this class.
func (t *TypeSymbol) Attribute(name string) *IdSymbol {
	id, _ := t.attributes.LookupLocal(name).(*IdSymbol)
	return id
}

// Attributes returns the attributes declared directly in this class.
func (t *TypeSymbol) Attributes() []*IdSymbol {
	out := make([]*IdSymbol, 0, t.attributes.Len())
	for _, sym := range t.attributes.Symbols() {
		if id, ok := sym.(*IdSymbol); ok {
			out = append(out, id)
		}
	}
	return out
}

// AddMethod registers m in this class; false if the name is taken.
func (t *TypeSymbol) AddMethod(m *MethodSymbol) bool {
	return t.methods.Add(m)
}

// Method returns the method declared directly in this class.
func (t *TypeSymbol) Method(name string) *MethodSymbol {
	m, _ := t.methods.LookupLocal(name).(*MethodSymbol)
	return m
}

// Methods returns the methods declared directly in this class.
func (t *TypeSymbol) Methods() []*MethodSymbol {
	out := make([]*MethodSymbol, 0, t.methods.Len())
	for _, sym := range t.methods.Symbols() {
		if m, ok := sym.(*MethodSymbol); ok {
			out = append(out, m)
		}
	}
	return out
}

func (t *TypeSymbol) String() string { return t.name }
