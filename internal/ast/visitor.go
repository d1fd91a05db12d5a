package ast

import "fmt"

// Visitor is implemented by passes that walk the whole tree for side effects.
type Visitor interface {
	VisitProgram(node *Program)
	VisitClass(node *Class)
	VisitMethod(node *Method)
	VisitAttribute(node *Attribute)
	VisitFormal(node *Formal)
	VisitTypeIdentifier(node *TypeIdentifier)
	VisitObjectIdentifier(node *ObjectIdentifier)
	VisitIntegerLiteral(node *IntegerLiteral)
	VisitStringLiteral(node *StringLiteral)
	VisitBooleanLiteral(node *BooleanLiteral)
	VisitAssignment(node *Assignment)
	VisitUnaryExpression(node *UnaryExpression)
	VisitIsVoidExpression(node *IsVoidExpression)
	VisitBinaryExpression(node *BinaryExpression)
	VisitNewExpression(node *NewExpression)
	VisitCallExpression(node *CallExpression)
	VisitDispatchExpression(node *DispatchExpression)
	VisitStaticDispatchExpression(node *StaticDispatchExpression)
	VisitIfExpression(node *IfExpression)
	VisitWhileExpression(node *WhileExpression)
	VisitBlockExpression(node *BlockExpression)
	VisitLetBinding(node *LetBinding)
	VisitLetExpression(node *LetExpression)
	VisitCaseBranch(node *CaseBranch)
	VisitCaseExpression(node *CaseExpression)
}

// ExprVisitor computes a value of type T for each expression kind.
// Adding an expression kind breaks every implementation at compile time.
type ExprVisitor[T any] interface {
	ObjectIdentifier(node *ObjectIdentifier) T
	IntegerLiteral(node *IntegerLiteral) T
	StringLiteral(node *StringLiteral) T
	BooleanLiteral(node *BooleanLiteral) T
	Assignment(node *Assignment) T
	Unary(node *UnaryExpression) T
	IsVoid(node *IsVoidExpression) T
	Binary(node *BinaryExpression) T
	New(node *NewExpression) T
	Call(node *CallExpression) T
	Dispatch(node *DispatchExpression) T
	StaticDispatch(node *StaticDispatchExpression) T
	If(node *IfExpression) T
	While(node *WhileExpression) T
	Block(node *BlockExpression) T
	Let(node *LetExpression) T
	Case(node *CaseExpression) T
}

// VisitExpr dispatches e to the matching method of v.
// A nil expression yields the zero value of T.
func VisitExpr[T any](v ExprVisitor[T], e Expression) T {
	switch n := e.(type) {
	case nil:
		var zero T
		return zero
	case *ObjectIdentifier:
		return v.ObjectIdentifier(n)
	case *IntegerLiteral:
		return v.IntegerLiteral(n)
	case *StringLiteral:
		return v.StringLiteral(n)
	case *BooleanLiteral:
		return v.BooleanLiteral(n)
	case *Assignment:
		return v.Assignment(n)
	case *UnaryExpression:
		return v.Unary(n)
	case *IsVoidExpression:
		return v.IsVoid(n)
	case *BinaryExpression:
		return v.Binary(n)
	case *NewExpression:
		return v.New(n)
	case *CallExpression:
		return v.Call(n)
	case *DispatchExpression:
		return v.Dispatch(n)
	case *StaticDispatchExpression:
		return v.StaticDispatch(n)
	case *IfExpression:
		return v.If(n)
	case *WhileExpression:
		return v.While(n)
	case *BlockExpression:
		return v.Block(n)
	case *LetExpression:
		return v.Let(n)
	case *CaseExpression:
		return v.Case(n)
	default:
		panic(fmt.Sprintf("ast: unhandled expression %T", e))
	}
}

// BaseVisitor walks every child and does nothing else. Embed it and
// override the methods of interest; call the Walk helpers to keep descending.
type BaseVisitor struct {
	// Self is the outermost visitor, so overridden methods are reached
	// while descending.
	Self Visitor
}

func (b *BaseVisitor) v() Visitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b *BaseVisitor) VisitProgram(node *Program) {
	for _, c := range node.Classes {
		c.Accept(b.v())
	}
}

func (b *BaseVisitor) VisitClass(node *Class) {
	node.Name.Accept(b.v())
	if node.Parent != nil {
		node.Parent.Accept(b.v())
	}
	for _, f := range node.Features {
		f.Accept(b.v())
	}
}

func (b *BaseVisitor) VisitMethod(node *Method) {
	node.Name.Accept(b.v())
	for _, f := range node.Formals {
		f.Accept(b.v())
	}
	node.ReturnType.Accept(b.v())
	acceptExpr(node.Body, b.v())
}

func (b *BaseVisitor) VisitAttribute(node *Attribute) {
	node.Name.Accept(b.v())
	node.Type.Accept(b.v())
	acceptExpr(node.Init, b.v())
}

func (b *BaseVisitor) VisitFormal(node *Formal) {
	node.Name.Accept(b.v())
	node.Type.Accept(b.v())
}

func (b *BaseVisitor) VisitTypeIdentifier(node *TypeIdentifier)     {}
func (b *BaseVisitor) VisitObjectIdentifier(node *ObjectIdentifier) {}
func (b *BaseVisitor) VisitIntegerLiteral(node *IntegerLiteral)     {}
func (b *BaseVisitor) VisitStringLiteral(node *StringLiteral)       {}
func (b *BaseVisitor) VisitBooleanLiteral(node *BooleanLiteral)     {}

func (b *BaseVisitor) VisitAssignment(node *Assignment) {
	node.Name.Accept(b.v())
	acceptExpr(node.Value, b.v())
}

func (b *BaseVisitor) VisitUnaryExpression(node *UnaryExpression) {
	acceptExpr(node.Right, b.v())
}

func (b *BaseVisitor) VisitIsVoidExpression(node *IsVoidExpression) {
	acceptExpr(node.Right, b.v())
}

func (b *BaseVisitor) VisitBinaryExpression(node *BinaryExpression) {
	acceptExpr(node.Left, b.v())
	acceptExpr(node.Right, b.v())
}

func (b *BaseVisitor) VisitNewExpression(node *NewExpression) {
	node.Type.Accept(b.v())
}

func (b *BaseVisitor) VisitCallExpression(node *CallExpression) {
	node.Method.Accept(b.v())
	for _, a := range node.Arguments {
		acceptExpr(a, b.v())
	}
}

func (b *BaseVisitor) VisitDispatchExpression(node *DispatchExpression) {
	acceptExpr(node.Receiver, b.v())
	node.Method.Accept(b.v())
	for _, a := range node.Arguments {
		acceptExpr(a, b.v())
	}
}

func (b *BaseVisitor) VisitStaticDispatchExpression(node *StaticDispatchExpression) {
	acceptExpr(node.Receiver, b.v())
	node.Type.Accept(b.v())
	node.Method.Accept(b.v())
	for _, a := range node.Arguments {
		acceptExpr(a, b.v())
	}
}

func (b *BaseVisitor) VisitIfExpression(node *IfExpression) {
	acceptExpr(node.Condition, b.v())
	acceptExpr(node.Consequence, b.v())
	acceptExpr(node.Alternative, b.v())
}

func (b *BaseVisitor) VisitWhileExpression(node *WhileExpression) {
	acceptExpr(node.Condition, b.v())
	acceptExpr(node.Body, b.v())
}

func (b *BaseVisitor) VisitBlockExpression(node *BlockExpression) {
	for _, e := range node.Expressions {
		acceptExpr(e, b.v())
	}
}

func (b *BaseVisitor) VisitLetBinding(node *LetBinding) {
	node.Name.Accept(b.v())
	node.Type.Accept(b.v())
	acceptExpr(node.Init, b.v())
}

func (b *BaseVisitor) VisitLetExpression(node *LetExpression) {
	for _, lb := range node.Bindings {
		lb.Accept(b.v())
	}
	acceptExpr(node.Body, b.v())
}

func (b *BaseVisitor) VisitCaseBranch(node *CaseBranch) {
	node.Name.Accept(b.v())
	node.Type.Accept(b.v())
	acceptExpr(node.Body, b.v())
}

func (b *BaseVisitor) VisitCaseExpression(node *CaseExpression) {
	acceptExpr(node.Expression, b.v())
	for _, br := range node.Branches {
		br.Accept(b.v())
	}
}

func acceptExpr(e Expression, v Visitor) {
	if e != nil {
		e.Accept(v)
	}
}
