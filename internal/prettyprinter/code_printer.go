package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/coolc/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"<-":  1,
	"not": 2,
	"<":   3,
	"<=":  3,
	"=":   3,
	"+":   4,
	"-":   4,
	"*":   5,
	"/":   5,
}

const (
	precIsVoid   = 6
	precNeg      = 7
	precDispatch = 8
)

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Format renders a program as source code.
func Format(program *ast.Program) string {
	p := NewCodePrinter()
	program.Accept(p)
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("    ")
	}
}

// printExpr prints an expression, adding parentheses only if needed.
// parentPrec 0 means a delimited position (method body, argument, block
// element) where nothing needs parentheses.
func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec
		// Left-associative; comparisons do not associate at all
		if prec == parentPrec && (isRight || prec == operatorPrecedence["="]) {
			needParens = true
		}
		p.wrap(needParens, func() {
			p.printExpr(e.Left, prec, false)
			p.write(" " + e.Operator + " ")
			p.printExpr(e.Right, prec, true)
		})
	case *ast.UnaryExpression:
		if e.Operator == "not" {
			// not extends to the right, like let and assignment
			p.wrap(parentPrec > 0, func() {
				p.write("not ")
				p.printExpr(e.Right, getPrecedence("not"), false)
			})
			return
		}
		p.wrap(precNeg < parentPrec, func() {
			p.write("~")
			p.printExpr(e.Right, precNeg, false)
		})
	case *ast.IsVoidExpression:
		p.wrap(precIsVoid < parentPrec, func() {
			p.write("isvoid ")
			p.printExpr(e.Right, precIsVoid, false)
		})
	case *ast.Assignment, *ast.LetExpression:
		p.wrap(parentPrec > 0, func() { expr.Accept(p) })
	default:
		// For other expressions, just use visitor
		expr.Accept(p)
	}
}

func (p *CodePrinter) wrap(parens bool, body func()) {
	if parens {
		p.write("(")
	}
	body()
	if parens {
		p.write(")")
	}
}

func (p *CodePrinter) printArgs(args []ast.Expression) {
	p.write("(")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg, 0, false)
	}
	p.write(")")
}

func (p *CodePrinter) VisitProgram(n *ast.Program) {
	for i, class := range n.Classes {
		if i > 0 {
			p.write("\n")
		}
		class.Accept(p)
	}
}

func (p *CodePrinter) VisitClass(n *ast.Class) {
	p.write("class " + n.Name.Value)
	if n.Parent != nil {
		p.write(" inherits " + n.Parent.Value)
	}
	p.write(" {\n")
	p.indent++
	for _, f := range n.Features {
		p.writeIndent()
		f.Accept(p)
		p.write(";\n")
	}
	p.indent--
	p.write("};\n")
}

func (p *CodePrinter) VisitMethod(n *ast.Method) {
	p.write(n.Name.Value + "(")
	for i, f := range n.Formals {
		if i > 0 {
			p.write(", ")
		}
		f.Accept(p)
	}
	p.write(") : " + n.ReturnType.Value + " {\n")
	p.indent++
	p.writeIndent()
	p.printExpr(n.Body, 0, false)
	p.write("\n")
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitAttribute(n *ast.Attribute) {
	p.write(n.Name.Value + " : " + n.Type.Value)
	if n.Init != nil {
		p.write(" <- ")
		p.printExpr(n.Init, 0, false)
	}
}

func (p *CodePrinter) VisitFormal(n *ast.Formal) {
	p.write(n.Name.Value + " : " + n.Type.Value)
}

func (p *CodePrinter) VisitTypeIdentifier(n *ast.TypeIdentifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitObjectIdentifier(n *ast.ObjectIdentifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(Quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitAssignment(n *ast.Assignment) {
	p.write(n.Name.Value + " <- ")
	p.printExpr(n.Value, 0, false)
}

func (p *CodePrinter) VisitUnaryExpression(n *ast.UnaryExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitIsVoidExpression(n *ast.IsVoidExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitBinaryExpression(n *ast.BinaryExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitNewExpression(n *ast.NewExpression) {
	p.write("new " + n.Type.Value)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	p.write(n.Method.Value)
	p.printArgs(n.Arguments)
}

func (p *CodePrinter) VisitDispatchExpression(n *ast.DispatchExpression) {
	p.printExpr(n.Receiver, precDispatch, false)
	p.write("." + n.Method.Value)
	p.printArgs(n.Arguments)
}

func (p *CodePrinter) VisitStaticDispatchExpression(n *ast.StaticDispatchExpression) {
	p.printExpr(n.Receiver, precDispatch, false)
	p.write("@" + n.Type.Value + "." + n.Method.Value)
	p.printArgs(n.Arguments)
}

func (p *CodePrinter) VisitIfExpression(n *ast.IfExpression) {
	p.write("if ")
	p.printExpr(n.Condition, 0, false)
	p.write(" then ")
	p.printExpr(n.Consequence, 0, false)
	p.write(" else ")
	p.printExpr(n.Alternative, 0, false)
	p.write(" fi")
}

func (p *CodePrinter) VisitWhileExpression(n *ast.WhileExpression) {
	p.write("while ")
	p.printExpr(n.Condition, 0, false)
	p.write(" loop ")
	p.printExpr(n.Body, 0, false)
	p.write(" pool")
}

func (p *CodePrinter) VisitBlockExpression(n *ast.BlockExpression) {
	p.write("{\n")
	p.indent++
	for _, e := range n.Expressions {
		p.writeIndent()
		p.printExpr(e, 0, false)
		p.write(";\n")
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CodePrinter) VisitLetBinding(n *ast.LetBinding) {
	p.write(n.Name.Value + " : " + n.Type.Value)
	if n.Init != nil {
		p.write(" <- ")
		p.printExpr(n.Init, 0, false)
	}
}

func (p *CodePrinter) VisitLetExpression(n *ast.LetExpression) {
	p.write("let ")
	for i, b := range n.Bindings {
		if i > 0 {
			p.write(", ")
		}
		b.Accept(p)
	}
	p.write(" in ")
	p.printExpr(n.Body, 0, false)
}

func (p *CodePrinter) VisitCaseBranch(n *ast.CaseBranch) {
	p.write(n.Name.Value + " : " + n.Type.Value + " => ")
	p.printExpr(n.Body, 0, false)
	p.write(";")
}

func (p *CodePrinter) VisitCaseExpression(n *ast.CaseExpression) {
	p.write("case ")
	p.printExpr(n.Expression, 0, false)
	p.write(" of\n")
	p.indent++
	for _, b := range n.Branches {
		p.writeIndent()
		b.Accept(p)
		p.write("\n")
	}
	p.indent--
	p.writeIndent()
	p.write("esac")
}

// Quote renders s as a string constant with escapes.
func Quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
