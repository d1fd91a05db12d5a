package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/symbols"
)

// --- Tree Printer (Output shows AST structure) ---

// NoType marks an expression the checker could not type.
const NoType = "_no_type"

type TreePrinter struct {
	buf    bytes.Buffer
	indent int
	types  map[ast.Expression]*symbols.TypeSymbol
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// WithTypes annotates every expression with its resolved type.
func (p *TreePrinter) WithTypes(types map[ast.Expression]*symbols.TypeSymbol) *TreePrinter {
	p.types = types
	return p
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) line(parts ...string) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	p.buf.WriteString(strings.Join(parts, " "))
	p.buf.WriteByte('\n')
}

// expr writes an expression line, with its type when types are known.
func (p *TreePrinter) expr(e ast.Expression, parts ...string) {
	if p.types != nil {
		name := NoType
		if t := p.types[e]; t != nil {
			name = t.Name()
		}
		parts = append(parts, ":", name)
	}
	p.line(parts...)
}

func (p *TreePrinter) nested(nodes ...ast.Node) {
	p.indent++
	for _, n := range nodes {
		if n != nil {
			n.Accept(p)
		}
	}
	p.indent--
}

func exprs(list []ast.Expression) []ast.Node {
	nodes := make([]ast.Node, 0, len(list))
	for _, e := range list {
		if e != nil {
			nodes = append(nodes, e)
		}
	}
	return nodes
}

func (p *TreePrinter) VisitProgram(n *ast.Program) {
	p.line("program")
	p.indent++
	for _, c := range n.Classes {
		c.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitClass(n *ast.Class) {
	if n.Parent != nil {
		p.line("class", n.Name.Value, "inherits", n.Parent.Value)
	} else {
		p.line("class", n.Name.Value)
	}
	p.indent++
	for _, f := range n.Features {
		f.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitMethod(n *ast.Method) {
	p.line("method", n.Name.Value, ":", n.ReturnType.Value)
	p.indent++
	for _, f := range n.Formals {
		f.Accept(p)
	}
	if n.Body != nil {
		n.Body.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitAttribute(n *ast.Attribute) {
	p.line("attribute", n.Name.Value, ":", n.Type.Value)
	if n.Init != nil {
		p.nested(n.Init)
	}
}

func (p *TreePrinter) VisitFormal(n *ast.Formal) {
	p.line("formal", n.Name.Value, ":", n.Type.Value)
}

func (p *TreePrinter) VisitTypeIdentifier(n *ast.TypeIdentifier) {
	p.line("type", n.Value)
}

func (p *TreePrinter) VisitObjectIdentifier(n *ast.ObjectIdentifier) {
	p.expr(n, "object", n.Value)
}

func (p *TreePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.expr(n, "int", n.Value)
}

func (p *TreePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.expr(n, "string", Quote(n.Value))
}

func (p *TreePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	if n.Value {
		p.expr(n, "bool", "true")
	} else {
		p.expr(n, "bool", "false")
	}
}

func (p *TreePrinter) VisitAssignment(n *ast.Assignment) {
	p.expr(n, "assign", n.Name.Value)
	p.nested(n.Value)
}

func (p *TreePrinter) VisitUnaryExpression(n *ast.UnaryExpression) {
	p.expr(n, "unary", n.Operator)
	p.nested(n.Right)
}

func (p *TreePrinter) VisitIsVoidExpression(n *ast.IsVoidExpression) {
	p.expr(n, "isvoid")
	p.nested(n.Right)
}

func (p *TreePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	p.expr(n, "binary", n.Operator)
	p.nested(n.Left, n.Right)
}

func (p *TreePrinter) VisitNewExpression(n *ast.NewExpression) {
	p.expr(n, "new", n.Type.Value)
}

func (p *TreePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.expr(n, "call", n.Method.Value)
	p.nested(exprs(n.Arguments)...)
}

func (p *TreePrinter) VisitDispatchExpression(n *ast.DispatchExpression) {
	p.expr(n, "dispatch", n.Method.Value)
	p.nested(append([]ast.Node{n.Receiver}, exprs(n.Arguments)...)...)
}

func (p *TreePrinter) VisitStaticDispatchExpression(n *ast.StaticDispatchExpression) {
	p.expr(n, "static-dispatch", n.Type.Value+"."+n.Method.Value)
	p.nested(append([]ast.Node{n.Receiver}, exprs(n.Arguments)...)...)
}

func (p *TreePrinter) VisitIfExpression(n *ast.IfExpression) {
	p.expr(n, "if")
	p.nested(n.Condition, n.Consequence, n.Alternative)
}

func (p *TreePrinter) VisitWhileExpression(n *ast.WhileExpression) {
	p.expr(n, "while")
	p.nested(n.Condition, n.Body)
}

func (p *TreePrinter) VisitBlockExpression(n *ast.BlockExpression) {
	p.expr(n, "block")
	p.nested(exprs(n.Expressions)...)
}

func (p *TreePrinter) VisitLetBinding(n *ast.LetBinding) {
	p.line("binding", n.Name.Value, ":", n.Type.Value)
	if n.Init != nil {
		p.nested(n.Init)
	}
}

func (p *TreePrinter) VisitLetExpression(n *ast.LetExpression) {
	p.expr(n, "let")
	p.indent++
	for _, b := range n.Bindings {
		b.Accept(p)
	}
	if n.Body != nil {
		n.Body.Accept(p)
	}
	p.indent--
}

func (p *TreePrinter) VisitCaseBranch(n *ast.CaseBranch) {
	p.line("branch", n.Name.Value, ":", n.Type.Value)
	if n.Body != nil {
		p.nested(n.Body)
	}
}

func (p *TreePrinter) VisitCaseExpression(n *ast.CaseExpression) {
	p.expr(n, "case")
	p.indent++
	if n.Expression != nil {
		n.Expression.Accept(p)
	}
	for _, b := range n.Branches {
		b.Accept(p)
	}
	p.indent--
}
