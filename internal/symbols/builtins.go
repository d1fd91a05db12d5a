package symbols

import "github.com/funvibe/coolc/internal/config"

// Builtins holds the predefined classes of one run.
type Builtins struct {
	Object   *TypeSymbol
	IO       *TypeSymbol
	Int      *TypeSymbol
	String   *TypeSymbol
	Bool     *TypeSymbol
	SelfType *TypeSymbol
}

type builtinMethod struct {
	name    string
	returns string
	formals [][2]string
}

var builtinMethods = map[string][]builtinMethod{
	config.ObjectClass: {
		{name: config.AbortMethod, returns: config.ObjectClass},
		{name: config.TypeNameMethod, returns: config.StringClass},
		{name: config.CopyMethod, returns: config.SelfTypeClass},
	},
	config.IOClass: {
		{name: config.OutStringMethod, returns: config.SelfTypeClass, formals: [][2]string{{"x", config.StringClass}}},
		{name: config.OutIntMethod, returns: config.SelfTypeClass, formals: [][2]string{{"x", config.IntClass}}},
		{name: config.InStringMethod, returns: config.StringClass},
		{name: config.InIntMethod, returns: config.IntClass},
	},
	config.StringClass: {
		{name: config.LengthMethod, returns: config.IntClass},
		{name: config.ConcatMethod, returns: config.StringClass, formals: [][2]string{{"s", config.StringClass}}},
		{name: config.SubstrMethod, returns: config.StringClass, formals: [][2]string{{"i", config.IntClass}, {"l", config.IntClass}}},
	},
}

func newBuiltins() Builtins {
	b := Builtins{
		Object:   NewTypeSymbol(config.ObjectClass, ""),
		IO:       NewTypeSymbol(config.IOClass, config.ObjectClass),
		Int:      NewTypeSymbol(config.IntClass, config.ObjectClass),
		String:   NewTypeSymbol(config.StringClass, config.ObjectClass),
		Bool:     NewTypeSymbol(config.BoolClass, config.ObjectClass),
		SelfType: NewTypeSymbol(config.SelfTypeClass, config.ObjectClass),
	}
	for _, t := range b.All() {
		t.Builtin = true
		for _, bm := range builtinMethods[t.Name()] {
			m := NewMethodSymbol(bm.name, bm.returns, t)
			for _, f := range bm.formals {
				m.Add(NewIdSymbol(f[0], f[1]))
			}
			t.AddMethod(m)
		}
	}
	return b
}

// All returns the builtin classes in registration order.
func (b Builtins) All() []*TypeSymbol {
	return []*TypeSymbol{b.Object, b.IO, b.Int, b.String, b.Bool, b.SelfType}
}

// IsBasic reports whether t is Int, String or Bool. Basic classes cannot be
// inherited from and compare only with themselves.
func (b Builtins) IsBasic(t *TypeSymbol) bool {
	return t != nil && (t == b.Int || t == b.String || t == b.Bool)
}

// IllegalParent reports whether a class may not inherit from t.
func (b Builtins) IllegalParent(t *TypeSymbol) bool {
	return b.IsBasic(t) || t == b.SelfType
}
