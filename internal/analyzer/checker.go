package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/config"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
)

// checker types the expressions of one feature. A nil type means the
// expression could not be typed; it is never reported again by the caller.
type checker struct {
	*resolver
	current *symbols.TypeSymbol
	scope   symbols.Namespace
}

var _ ast.ExprVisitor[*symbols.TypeSymbol] = (*checker)(nil)

func (r *resolver) newChecker(current *symbols.TypeSymbol, scope symbols.Namespace) *checker {
	return &checker{resolver: r, current: current, scope: scope}
}

// check types e and records the result.
func (c *checker) check(e ast.Expression) *symbols.TypeSymbol {
	if e == nil {
		return nil
	}
	t := ast.VisitExpr[*symbols.TypeSymbol](c, e)
	c.decorations.Types[e] = t
	return t
}

func (c *checker) checkAll(list []ast.Expression) []*symbols.TypeSymbol {
	types := make([]*symbols.TypeSymbol, len(list))
	for i, e := range list {
		types[i] = c.check(e)
	}
	return types
}

func (c *checker) errorf(node ast.Node, tok token.Token, code diagnostics.ErrorCode, format string, args ...any) {
	c.registry.Errorf(node, tok, code, format, args...)
}

// subst replaces SELF_TYPE with the current class.
func (c *checker) subst(t *symbols.TypeSymbol) *symbols.TypeSymbol {
	if t == c.builtins.SelfType {
		return c.current
	}
	return t
}

// conforms reports t ⊑ declared. Only SELF_TYPE conforms to SELF_TYPE.
func (c *checker) conforms(t, declared *symbols.TypeSymbol) bool {
	if t == nil || declared == nil {
		return true
	}
	if declared == c.builtins.SelfType {
		return t == c.builtins.SelfType
	}
	return c.lattice.IsSubclass(declared, c.subst(t))
}

func (c *checker) join(a, b *symbols.TypeSymbol) *symbols.TypeSymbol {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a == c.builtins.SelfType && b == c.builtins.SelfType {
		return a
	}
	return c.lattice.Join(c.subst(a), c.subst(b))
}

// lookup finds a variable in the current scope chain. Class names live in
// the same chain but are not variables.
func (c *checker) lookup(name string) *symbols.IdSymbol {
	id, _ := c.scope.Lookup(name).(*symbols.IdSymbol)
	return id
}

// withScope runs body with scope as the current scope.
func (c *checker) withScope(scope symbols.Namespace, body func() *symbols.TypeSymbol) *symbols.TypeSymbol {
	saved := c.scope
	c.scope = scope
	defer func() { c.scope = saved }()
	return body()
}

func (c *checker) ObjectIdentifier(n *ast.ObjectIdentifier) *symbols.TypeSymbol {
	if n.Value == config.SelfName {
		return c.builtins.SelfType
	}
	id := c.lookup(n.Value)
	if id == nil {
		c.errorf(n, n.Token, diagnostics.ErrS002, "Undefined identifier %s", n.Value)
		return nil
	}
	return c.registry.TypeOf(id)
}

func (c *checker) IntegerLiteral(n *ast.IntegerLiteral) *symbols.TypeSymbol { return c.builtins.Int }
func (c *checker) StringLiteral(n *ast.StringLiteral) *symbols.TypeSymbol   { return c.builtins.String }
func (c *checker) BooleanLiteral(n *ast.BooleanLiteral) *symbols.TypeSymbol { return c.builtins.Bool }

func (c *checker) Assignment(n *ast.Assignment) *symbols.TypeSymbol {
	name := n.Name.Value
	if name == config.SelfName {
		c.errorf(n, n.Name.Token, diagnostics.ErrS001, "Cannot assign to self")
		c.check(n.Value)
		return nil
	}

	id := c.lookup(name)
	if id == nil {
		c.errorf(n, n.Name.Token, diagnostics.ErrS002, "Undefined identifier %s", name)
		c.check(n.Value)
		return nil
	}

	declared := c.registry.TypeOf(id)
	valueType := c.check(n.Value)
	// Both sides stand for the current class here, unlike conforms.
	if valueType != nil && declared != nil && !c.lattice.IsSubclass(c.subst(declared), c.subst(valueType)) {
		c.errorf(n.Value, n.Value.GetToken(), diagnostics.ErrS004,
			"Type %s of assigned expression is incompatible with declared type %s of identifier %s",
			valueType.Name(), declared.Name(), name)
		return nil
	}
	return valueType
}

func (c *checker) Unary(n *ast.UnaryExpression) *symbols.TypeSymbol {
	operand := c.check(n.Right)
	want := c.builtins.Int
	if n.Operator == "not" {
		want = c.builtins.Bool
	}
	if operand != nil && operand != want {
		c.errorf(n.Right, n.Right.GetToken(), diagnostics.ErrS004,
			"Operand of %s has type %s instead of %s", n.Operator, operand.Name(), want.Name())
		return nil
	}
	return want
}

func (c *checker) IsVoid(n *ast.IsVoidExpression) *symbols.TypeSymbol {
	c.check(n.Right)
	return c.builtins.Bool
}

func (c *checker) Binary(n *ast.BinaryExpression) *symbols.TypeSymbol {
	left := c.check(n.Left)
	right := c.check(n.Right)

	if n.Operator == "=" {
		if left != nil && right != nil && left != right &&
			(c.builtins.IsBasic(left) || c.builtins.IsBasic(right)) {
			c.errorf(n, n.Token, diagnostics.ErrS004, "Cannot compare %s with %s", left.Name(), right.Name())
			return nil
		}
		return c.builtins.Bool
	}

	ok := true
	for _, operand := range []struct {
		expr ast.Expression
		typ  *symbols.TypeSymbol
	}{{n.Left, left}, {n.Right, right}} {
		if operand.typ != nil && operand.typ != c.builtins.Int {
			c.errorf(operand.expr, operand.expr.GetToken(), diagnostics.ErrS004,
				"Operand of %s has type %s instead of Int", n.Operator, operand.typ.Name())
			ok = false
		}
	}
	if !ok {
		return nil
	}
	switch n.Operator {
	case "<", "<=":
		return c.builtins.Bool
	default:
		return c.builtins.Int
	}
}

func (c *checker) New(n *ast.NewExpression) *symbols.TypeSymbol {
	t := c.registry.Resolve(n.Type.Value)
	if t == nil {
		c.errorf(n, n.Type.Token, diagnostics.ErrS002, "new is used with undefined type %s", n.Type.Value)
	}
	return t
}

func (c *checker) Call(n *ast.CallExpression) *symbols.TypeSymbol {
	args := c.checkAll(n.Arguments)
	return c.dispatch(n, n.Method, c.current, c.current, n.Arguments, args, c.current)
}

func (c *checker) Dispatch(n *ast.DispatchExpression) *symbols.TypeSymbol {
	receiver := c.check(n.Receiver)
	args := c.checkAll(n.Arguments)
	if receiver == nil {
		return nil
	}
	receiver = c.subst(receiver)
	return c.dispatch(n, n.Method, receiver, receiver, n.Arguments, args, receiver)
}

func (c *checker) StaticDispatch(n *ast.StaticDispatchExpression) *symbols.TypeSymbol {
	receiver := c.check(n.Receiver)
	args := c.checkAll(n.Arguments)

	if n.Type.Value == config.SelfTypeClass {
		c.errorf(n, n.Type.Token, diagnostics.ErrS001, "Type of static dispatch cannot be SELF_TYPE")
		return nil
	}
	static := c.registry.Resolve(n.Type.Value)
	if static == nil {
		c.errorf(n, n.Type.Token, diagnostics.ErrS002, "Type %s of static dispatch is undefined", n.Type.Value)
		return nil
	}
	if receiver == nil {
		return nil
	}
	receiver = c.subst(receiver)
	if !c.lattice.IsSubclass(static, receiver) {
		c.errorf(n, n.Type.Token, diagnostics.ErrS004,
			"Type %s of static dispatch is not a superclass of type %s", static.Name(), receiver.Name())
		return nil
	}
	return c.dispatch(n, n.Method, static, receiver, n.Arguments, args, receiver)
}

// dispatch finds method on the ancestor chain of start and checks the call
// against its signature. Arity and argument messages name the receiver class
// called. A SELF_TYPE result becomes selfType.
func (c *checker) dispatch(node ast.Node, method *ast.ObjectIdentifier, start, called *symbols.TypeSymbol,
	args []ast.Expression, argTypes []*symbols.TypeSymbol, selfType *symbols.TypeSymbol) *symbols.TypeSymbol {
	m, _ := c.registry.FindMethod(start, method.Value)
	if m == nil {
		c.errorf(node, method.Token, diagnostics.ErrS002, "Undefined method %s in class %s", method.Value, start.Name())
		return nil
	}

	formals := m.Formals()
	if len(formals) != len(args) {
		c.errorf(node, method.Token, diagnostics.ErrS005,
			"Method %s of class %s is applied to wrong number of arguments", method.Value, called.Name())
		return nil
	}
	for i, formal := range formals {
		declared := c.registry.TypeOf(formal)
		if declared == nil || declared == c.builtins.SelfType {
			continue
		}
		if actual := argTypes[i]; actual != nil && !c.conforms(actual, declared) {
			c.errorf(args[i], args[i].GetToken(), diagnostics.ErrS004,
				"In call to method %s of class %s, actual type %s of formal parameter %s is incompatible with declared type %s",
				method.Value, called.Name(), actual.Name(), formal.Name(), declared.Name())
		}
	}

	result := m.ReturnType()
	if result == c.builtins.SelfType {
		return selfType
	}
	return result
}

func (c *checker) If(n *ast.IfExpression) *symbols.TypeSymbol {
	if cond := c.check(n.Condition); cond != nil && cond != c.builtins.Bool {
		c.errorf(n.Condition, n.Condition.GetToken(), diagnostics.ErrS004,
			"If condition has type %s instead of Bool", cond.Name())
	}
	return c.join(c.check(n.Consequence), c.check(n.Alternative))
}

func (c *checker) While(n *ast.WhileExpression) *symbols.TypeSymbol {
	if cond := c.check(n.Condition); cond != nil && cond != c.builtins.Bool {
		c.errorf(n.Condition, n.Condition.GetToken(), diagnostics.ErrS004,
			"While condition has type %s instead of Bool", cond.Name())
	}
	c.check(n.Body)
	return c.builtins.Object
}

func (c *checker) Block(n *ast.BlockExpression) *symbols.TypeSymbol {
	var last *symbols.TypeSymbol
	for _, e := range n.Expressions {
		last = c.check(e)
	}
	return last
}

// Let opens one scope for the whole let. A name bound twice in the same let
// gets a nested scope, so the later binding shadows the earlier one.
func (c *checker) Let(n *ast.LetExpression) *symbols.TypeSymbol {
	scope := symbols.NewScope(c.scope)
	c.decorations.Scopes[n] = scope
	return c.withScope(scope, func() *symbols.TypeSymbol {
		for _, b := range n.Bindings {
			c.bind(b)
		}
		return c.check(n.Body)
	})
}

func (c *checker) bind(b *ast.LetBinding) {
	name := b.Name.Value
	declared := c.registry.Resolve(b.Type.Value)
	if name == config.SelfName {
		c.errorf(b, b.Name.Token, diagnostics.ErrS001, "Let variable has illegal name self")
	}
	if declared == nil {
		c.errorf(b, b.Type.Token, diagnostics.ErrS002, "Let variable %s has undefined type %s", name, b.Type.Value)
	}

	if b.Init != nil {
		initType := c.check(b.Init)
		if initType != nil && declared != nil && !c.conforms(initType, declared) {
			c.errorf(b.Init, b.Init.GetToken(), diagnostics.ErrS004,
				"Type %s of initialization expression of identifier %s is incompatible with declared type %s",
				initType.Name(), name, b.Type.Value)
		}
	}

	id := symbols.NewIdSymbol(name, b.Type.Value)
	c.registry.TypeOf(id)
	c.decorations.Bindings[b] = id
	if name == config.SelfName {
		return
	}
	if !c.scope.Add(id) {
		shadow := symbols.NewScope(c.scope)
		shadow.Add(id)
		c.scope = shadow
	}
}

func (c *checker) Case(n *ast.CaseExpression) *symbols.TypeSymbol {
	c.check(n.Expression)

	var result *symbols.TypeSymbol
	for i, branch := range n.Branches {
		t := c.branch(branch)
		if i == 0 {
			result = t
			continue
		}
		result = c.join(result, t)
	}
	return result
}

func (c *checker) branch(br *ast.CaseBranch) *symbols.TypeSymbol {
	name := br.Name.Value
	if name == config.SelfName {
		c.errorf(br, br.Name.Token, diagnostics.ErrS001, "Case variable has illegal name self")
	}

	id := symbols.NewIdSymbol(name, br.Type.Value)
	switch declared := c.registry.TypeOf(id); {
	case declared == nil:
		c.errorf(br, br.Type.Token, diagnostics.ErrS002, "Case variable %s has undefined type %s", name, br.Type.Value)
	case declared == c.builtins.SelfType:
		c.errorf(br, br.Type.Token, diagnostics.ErrS001, "Case variable %s has illegal type SELF_TYPE", name)
		id = symbols.NewUntypedSymbol(name, br.Type.Value)
	}
	c.decorations.Bindings[br] = id

	scope := symbols.NewScope(c.scope)
	if name != config.SelfName {
		scope.Add(id)
	}
	c.decorations.Scopes[br] = scope
	return c.withScope(scope, func() *symbols.TypeSymbol {
		return c.check(br.Body)
	})
}
