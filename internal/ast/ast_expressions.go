package ast

import (
	"github.com/funvibe/coolc/internal/token"
)

// ObjectIdentifier is a lowercase name: a variable reference, a feature
// name, or self.
type ObjectIdentifier struct {
	Token token.Token
	Value string
}

func (oi *ObjectIdentifier) Accept(v Visitor)      { v.VisitObjectIdentifier(oi) }
func (oi *ObjectIdentifier) expressionNode()       {}
func (oi *ObjectIdentifier) TokenLiteral() string  { return oi.Token.Lexeme }
func (oi *ObjectIdentifier) GetToken() token.Token { return oi.Token }

type IntegerLiteral struct {
	Token token.Token
	Value string // digits as written; COOL does no arithmetic at check time
}

func (il *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type StringLiteral struct {
	Token token.Token
	Value string // unescaped
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// Assignment represents name <- value
type Assignment struct {
	Token token.Token // The '<-' token
	Name  *ObjectIdentifier
	Value Expression
}

func (a *Assignment) Accept(v Visitor)      { v.VisitAssignment(a) }
func (a *Assignment) expressionNode()       {}
func (a *Assignment) TokenLiteral() string  { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token { return a.Name.Token }

// UnaryExpression is ~e or not e.
type UnaryExpression struct {
	Token    token.Token // The operator token
	Operator string
	Right    Expression
}

func (ue *UnaryExpression) Accept(v Visitor)      { v.VisitUnaryExpression(ue) }
func (ue *UnaryExpression) expressionNode()       {}
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Token.Lexeme }
func (ue *UnaryExpression) GetToken() token.Token { return ue.Token }

type IsVoidExpression struct {
	Token token.Token // The 'isvoid' token
	Right Expression
}

func (iv *IsVoidExpression) Accept(v Visitor)      { v.VisitIsVoidExpression(iv) }
func (iv *IsVoidExpression) expressionNode()       {}
func (iv *IsVoidExpression) TokenLiteral() string  { return iv.Token.Lexeme }
func (iv *IsVoidExpression) GetToken() token.Token { return iv.Token }

// BinaryExpression covers + - * / < <= =.
type BinaryExpression struct {
	Token    token.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) Accept(v Visitor)     { v.VisitBinaryExpression(be) }
func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Lexeme }

// GetToken returns the left operand's token: errors on a binary expression
// point at where it starts.
func (be *BinaryExpression) GetToken() token.Token { return be.Left.GetToken() }

// NewExpression represents new T
type NewExpression struct {
	Token token.Token // The 'new' token
	Type  *TypeIdentifier
}

func (ne *NewExpression) Accept(v Visitor)      { v.VisitNewExpression(ne) }
func (ne *NewExpression) expressionNode()       {}
func (ne *NewExpression) TokenLiteral() string  { return ne.Token.Lexeme }
func (ne *NewExpression) GetToken() token.Token { return ne.Token }

// CallExpression is an implicit dispatch on self: m(args)
type CallExpression struct {
	Method    *ObjectIdentifier
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Method.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Method.Token }

// DispatchExpression represents receiver.m(args)
type DispatchExpression struct {
	Token     token.Token // The '.' token
	Receiver  Expression
	Method    *ObjectIdentifier
	Arguments []Expression
}

func (de *DispatchExpression) Accept(v Visitor)      { v.VisitDispatchExpression(de) }
func (de *DispatchExpression) expressionNode()       {}
func (de *DispatchExpression) TokenLiteral() string  { return de.Token.Lexeme }
func (de *DispatchExpression) GetToken() token.Token { return de.Receiver.GetToken() }

// StaticDispatchExpression represents receiver@T.m(args)
type StaticDispatchExpression struct {
	Token     token.Token // The '@' token
	Receiver  Expression
	Type      *TypeIdentifier
	Method    *ObjectIdentifier
	Arguments []Expression
}

func (sd *StaticDispatchExpression) Accept(v Visitor)      { v.VisitStaticDispatchExpression(sd) }
func (sd *StaticDispatchExpression) expressionNode()       {}
func (sd *StaticDispatchExpression) TokenLiteral() string  { return sd.Token.Lexeme }
func (sd *StaticDispatchExpression) GetToken() token.Token { return sd.Receiver.GetToken() }

// IfExpression represents if c then a else b fi
type IfExpression struct {
	Token       token.Token // The 'if' token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (ie *IfExpression) Accept(v Visitor)      { v.VisitIfExpression(ie) }
func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// WhileExpression represents while c loop body pool
type WhileExpression struct {
	Token     token.Token // The 'while' token
	Condition Expression
	Body      Expression
}

func (we *WhileExpression) Accept(v Visitor)      { v.VisitWhileExpression(we) }
func (we *WhileExpression) expressionNode()       {}
func (we *WhileExpression) TokenLiteral() string  { return we.Token.Lexeme }
func (we *WhileExpression) GetToken() token.Token { return we.Token }

// BlockExpression represents { e1; e2; ... }
type BlockExpression struct {
	Token       token.Token // The '{' token
	Expressions []Expression
}

func (be *BlockExpression) Accept(v Visitor)      { v.VisitBlockExpression(be) }
func (be *BlockExpression) expressionNode()       {}
func (be *BlockExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BlockExpression) GetToken() token.Token { return be.Token }

// LetBinding is one name : Type [<- init] of a let.
type LetBinding struct {
	Name *ObjectIdentifier
	Type *TypeIdentifier
	Init Expression // Optional
}

func (lb *LetBinding) Accept(v Visitor)      { v.VisitLetBinding(lb) }
func (lb *LetBinding) TokenLiteral() string  { return lb.Name.Token.Lexeme }
func (lb *LetBinding) GetToken() token.Token { return lb.Name.Token }

// LetExpression represents let b1, b2, ... in body
// Each binding opens a scope nested in the previous one.
type LetExpression struct {
	Token    token.Token // The 'let' token
	Bindings []*LetBinding
	Body     Expression
}

func (le *LetExpression) Accept(v Visitor)      { v.VisitLetExpression(le) }
func (le *LetExpression) expressionNode()       {}
func (le *LetExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LetExpression) GetToken() token.Token { return le.Token }

// CaseBranch is name : Type => body
type CaseBranch struct {
	Name *ObjectIdentifier
	Type *TypeIdentifier
	Body Expression
}

func (cb *CaseBranch) Accept(v Visitor)      { v.VisitCaseBranch(cb) }
func (cb *CaseBranch) TokenLiteral() string  { return cb.Name.Token.Lexeme }
func (cb *CaseBranch) GetToken() token.Token { return cb.Name.Token }

// CaseExpression represents case e of branches esac
type CaseExpression struct {
	Token      token.Token // The 'case' token
	Expression Expression
	Branches   []*CaseBranch
}

func (ce *CaseExpression) Accept(v Visitor)      { v.VisitCaseExpression(ce) }
func (ce *CaseExpression) expressionNode()       {}
func (ce *CaseExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CaseExpression) GetToken() token.Token { return ce.Token }
