package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/token"
)

func TestScopeAddAndLookup(t *testing.T) {
	outer := NewScope(nil)
	inner := NewScope(outer)

	require.True(t, outer.Add(NewIdSymbol("x", "Int")))
	require.False(t, outer.Add(NewIdSymbol("x", "String")), "duplicate in the same scope")
	require.True(t, inner.Add(NewIdSymbol("x", "Bool")), "shadowing in a child scope")

	assert.Equal(t, "Bool", inner.Lookup("x").(*IdSymbol).TypeName)
	assert.Equal(t, "Int", outer.Lookup("x").(*IdSymbol).TypeName)
	assert.Nil(t, inner.LookupLocal("y"))
	assert.Nil(t, inner.Lookup("y"))

	inner.SetParent(nil)
	assert.Equal(t, Namespace(nil), inner.Parent())
}

func TestScopeKeepsInsertionOrder(t *testing.T) {
	s := NewScope(nil)
	for _, name := range []string{"c", "a", "b"} {
		s.Add(NewIdSymbol(name, "Int"))
	}
	var names []string
	for _, sym := range s.Symbols() {
		names = append(names, sym.Name())
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestLookupStopsOnCycle(t *testing.T) {
	a := NewTypeSymbol("A", "B")
	b := NewTypeSymbol("B", "A")
	a.SetParent(b)
	b.SetParent(a)
	a.Add(NewIdSymbol("x", "Int"))

	assert.NotNil(t, b.Lookup("x"))
	assert.Nil(t, a.Lookup("missing"))
}

func TestMethodFormalsOrderAndChain(t *testing.T) {
	class := NewTypeSymbol("A", "Object")
	class.Add(NewIdSymbol("attr", "Int"))
	m := NewMethodSymbol("f", "Int", class)

	require.True(t, m.Add(NewIdSymbol("b", "Int")))
	require.True(t, m.Add(NewIdSymbol("a", "String")))
	require.False(t, m.Add(NewIdSymbol("b", "Bool")))

	formals := m.Formals()
	require.Len(t, formals, 2)
	assert.Equal(t, "b", formals[0].Name())
	assert.Equal(t, "a", formals[1].Name())
	assert.NotNil(t, m.Lookup("attr"), "formals scope chains onto the class")
	assert.Nil(t, m.LookupLocal("attr"))
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()
	b := r.Builtins()

	for _, name := range []string{"Object", "IO", "Int", "String", "Bool", "SELF_TYPE"} {
		require.NotNil(t, r.Resolve(name), name)
	}
	assert.Nil(t, b.Object.Super())
	assert.Equal(t, b.Object, b.IO.Super())

	substr := b.String.Method("substr")
	require.NotNil(t, substr)
	require.Len(t, substr.Formals(), 2)
	assert.Equal(t, b.Int, substr.Formals()[1].Type())
	assert.Equal(t, b.String, substr.ReturnType())

	outString := b.IO.Method("out_string")
	require.NotNil(t, outString)
	assert.Equal(t, b.SelfType, outString.ReturnType())

	assert.True(t, b.IllegalParent(b.Int))
	assert.True(t, b.IllegalParent(b.SelfType))
	assert.False(t, b.IllegalParent(b.IO))
}

func TestRegistriesAreIndependent(t *testing.T) {
	r1, r2 := NewRegistry(), NewRegistry()
	require.True(t, r1.Define(NewTypeSymbol("A", "Object")))
	assert.Nil(t, r2.Resolve("A"))
	assert.NotSame(t, r1.Builtins().Object, r2.Builtins().Object)
}

func TestFindMethodWalksAncestors(t *testing.T) {
	r := NewRegistry()
	a := NewTypeSymbol("A", "IO")
	b := NewTypeSymbol("B", "A")
	a.AddMethod(NewMethodSymbol("f", "Int", a))
	r.Define(a)
	r.Define(b)
	r.Link()

	m, owner := r.FindMethod(b, "f")
	require.NotNil(t, m)
	assert.Same(t, a, owner)

	m, owner = r.FindMethod(b, "out_int")
	require.NotNil(t, m)
	assert.Same(t, r.Builtins().IO, owner)

	m, _ = r.FindMethod(b, "nope")
	assert.Nil(t, m)
}

func TestAncestorsBoundedOnCycle(t *testing.T) {
	r := NewRegistry()
	a := NewTypeSymbol("A", "B")
	b := NewTypeSymbol("B", "A")
	r.Define(a)
	r.Define(b)
	r.Link()

	chain := r.Ancestors(a)
	require.Len(t, chain, 2)
	m, _ := r.FindMethod(a, "abort")
	assert.Nil(t, m)
}

func TestLinkCachesUndefinedTypes(t *testing.T) {
	r := NewRegistry()
	a := NewTypeSymbol("A", "Missing")
	attr := NewIdSymbol("x", "Nope")
	a.Add(attr)
	r.Define(a)
	r.Link()

	assert.Nil(t, a.Super())
	assert.Nil(t, attr.Type())
	assert.Nil(t, r.TypeOf(attr))

	local := NewIdSymbol("y", "Int")
	assert.Same(t, r.Builtins().Int, r.TypeOf(local))
}

func TestRegistryErrorfUsesOwningFile(t *testing.T) {
	ident := &ast.ObjectIdentifier{Token: token.Token{Type: token.OBJECTID, Lexeme: "x", Line: 4, Column: 9}, Value: "x"}
	class := &ast.Class{
		Name: &ast.TypeIdentifier{Value: "A"},
		Features: []ast.Feature{
			&ast.Method{Name: &ast.ObjectIdentifier{Value: "f"}, ReturnType: &ast.TypeIdentifier{Value: "Int"}, Body: ident},
		},
	}
	program := &ast.Program{Classes: []*ast.Class{class}}

	r := NewRegistry()
	r.SetSources(map[*ast.Class]string{class: "dir/a.cl"}, ast.IndexOwners(program))
	r.Errorf(ident, ident.Token, diagnostics.ErrS002, "Undefined identifier %s", "x")
	r.Report(diagnostics.ErrS006, "No class Main")

	require.True(t, r.HasErrors())
	errs := r.Diagnostics()
	require.Len(t, errs, 2)
	assert.Equal(t, `"a.cl", line 4:9, Semantic error: Undefined identifier x`, errs[0].Error())
	assert.Equal(t, "Semantic error: No class Main", errs[1].Error())
}
