package ast

import (
	"github.com/funvibe/coolc/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	// GetToken returns the first token of the node, used for error reporting.
	GetToken() token.Token
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Feature is a class member: *Method or *Attribute.
type Feature interface {
	Node
	featureNode()
	FeatureName() *ObjectIdentifier
}

// Program is the root node: every class of every source file.
type Program struct {
	Classes []*Class
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Classes) > 0 {
		return p.Classes[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if len(p.Classes) > 0 {
		return p.Classes[0].GetToken()
	}
	return token.Token{}
}

// TypeIdentifier is a class name in a type position.
type TypeIdentifier struct {
	Token token.Token
	Value string
}

func (ti *TypeIdentifier) Accept(v Visitor)      { v.VisitTypeIdentifier(ti) }
func (ti *TypeIdentifier) TokenLiteral() string  { return ti.Token.Lexeme }
func (ti *TypeIdentifier) GetToken() token.Token { return ti.Token }

// Class represents
// class Name [inherits Parent] { features };
type Class struct {
	Token    token.Token // The 'class' token
	Name     *TypeIdentifier
	Parent   *TypeIdentifier // nil when no parent is declared
	Features []Feature
}

func (c *Class) Accept(v Visitor)      { v.VisitClass(c) }
func (c *Class) TokenLiteral() string  { return c.Token.Lexeme }
func (c *Class) GetToken() token.Token { return c.Token }

// ParentName is the declared parent, or "" when none is declared.
func (c *Class) ParentName() string {
	if c.Parent == nil {
		return ""
	}
	return c.Parent.Value
}

// Method represents
// name(formals) : ReturnType { body }
type Method struct {
	Name       *ObjectIdentifier
	Formals    []*Formal
	ReturnType *TypeIdentifier
	Body       Expression
}

func (m *Method) Accept(v Visitor)               { v.VisitMethod(m) }
func (m *Method) featureNode()                   {}
func (m *Method) FeatureName() *ObjectIdentifier { return m.Name }
func (m *Method) TokenLiteral() string           { return m.Name.Token.Lexeme }
func (m *Method) GetToken() token.Token          { return m.Name.Token }

// Attribute represents
// name : Type [<- init]
type Attribute struct {
	Name *ObjectIdentifier
	Type *TypeIdentifier
	Init Expression // Optional
}

func (a *Attribute) Accept(v Visitor)               { v.VisitAttribute(a) }
func (a *Attribute) featureNode()                   {}
func (a *Attribute) FeatureName() *ObjectIdentifier { return a.Name }
func (a *Attribute) TokenLiteral() string           { return a.Name.Token.Lexeme }
func (a *Attribute) GetToken() token.Token          { return a.Name.Token }

// Formal is a method parameter: name : Type
type Formal struct {
	Name *ObjectIdentifier
	Type *TypeIdentifier
}

func (f *Formal) Accept(v Visitor)      { v.VisitFormal(f) }
func (f *Formal) TokenLiteral() string  { return f.Name.Token.Lexeme }
func (f *Formal) GetToken() token.Token { return f.Name.Token }
