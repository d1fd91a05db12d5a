package ast

// Owners maps every node below a class to the class that contains it.
// Classes map to themselves.
type Owners map[Node]*Class

// IndexOwners walks the program once and records each node's class.
func IndexOwners(program *Program) Owners {
	idx := &ownerIndexer{owners: Owners{}}
	idx.Self = idx
	if program != nil {
		program.Accept(idx)
	}
	return idx.owners
}

// Of returns the class owning n, or nil for nodes outside the program.
func (o Owners) Of(n Node) *Class {
	if n == nil {
		return nil
	}
	return o[n]
}

type ownerIndexer struct {
	BaseVisitor
	owners  Owners
	current *Class
}

func (o *ownerIndexer) VisitClass(node *Class) {
	o.current = node
	o.owners[node] = node
	o.BaseVisitor.VisitClass(node)
	o.current = nil
}

func (o *ownerIndexer) mark(n Node) {
	if o.current != nil {
		o.owners[n] = o.current
	}
}

func (o *ownerIndexer) VisitMethod(node *Method)       { o.mark(node); o.BaseVisitor.VisitMethod(node) }
func (o *ownerIndexer) VisitAttribute(node *Attribute) { o.mark(node); o.BaseVisitor.VisitAttribute(node) }
func (o *ownerIndexer) VisitFormal(node *Formal)       { o.mark(node); o.BaseVisitor.VisitFormal(node) }

func (o *ownerIndexer) VisitTypeIdentifier(node *TypeIdentifier)     { o.mark(node) }
func (o *ownerIndexer) VisitObjectIdentifier(node *ObjectIdentifier) { o.mark(node) }
func (o *ownerIndexer) VisitIntegerLiteral(node *IntegerLiteral)     { o.mark(node) }
func (o *ownerIndexer) VisitStringLiteral(node *StringLiteral)       { o.mark(node) }
func (o *ownerIndexer) VisitBooleanLiteral(node *BooleanLiteral)     { o.mark(node) }

func (o *ownerIndexer) VisitAssignment(node *Assignment) {
	o.mark(node)
	o.BaseVisitor.VisitAssignment(node)
}

func (o *ownerIndexer) VisitUnaryExpression(node *UnaryExpression) {
	o.mark(node)
	o.BaseVisitor.VisitUnaryExpression(node)
}

func (o *ownerIndexer) VisitIsVoidExpression(node *IsVoidExpression) {
	o.mark(node)
	o.BaseVisitor.VisitIsVoidExpression(node)
}

func (o *ownerIndexer) VisitBinaryExpression(node *BinaryExpression) {
	o.mark(node)
	o.BaseVisitor.VisitBinaryExpression(node)
}

func (o *ownerIndexer) VisitNewExpression(node *NewExpression) {
	o.mark(node)
	o.BaseVisitor.VisitNewExpression(node)
}

func (o *ownerIndexer) VisitCallExpression(node *CallExpression) {
	o.mark(node)
	o.BaseVisitor.VisitCallExpression(node)
}

func (o *ownerIndexer) VisitDispatchExpression(node *DispatchExpression) {
	o.mark(node)
	o.BaseVisitor.VisitDispatchExpression(node)
}

func (o *ownerIndexer) VisitStaticDispatchExpression(node *StaticDispatchExpression) {
	o.mark(node)
	o.BaseVisitor.VisitStaticDispatchExpression(node)
}

func (o *ownerIndexer) VisitIfExpression(node *IfExpression) {
	o.mark(node)
	o.BaseVisitor.VisitIfExpression(node)
}

func (o *ownerIndexer) VisitWhileExpression(node *WhileExpression) {
	o.mark(node)
	o.BaseVisitor.VisitWhileExpression(node)
}

func (o *ownerIndexer) VisitBlockExpression(node *BlockExpression) {
	o.mark(node)
	o.BaseVisitor.VisitBlockExpression(node)
}

func (o *ownerIndexer) VisitLetBinding(node *LetBinding) {
	o.mark(node)
	o.BaseVisitor.VisitLetBinding(node)
}

func (o *ownerIndexer) VisitLetExpression(node *LetExpression) {
	o.mark(node)
	o.BaseVisitor.VisitLetExpression(node)
}

func (o *ownerIndexer) VisitCaseBranch(node *CaseBranch) {
	o.mark(node)
	o.BaseVisitor.VisitCaseBranch(node)
}

func (o *ownerIndexer) VisitCaseExpression(node *CaseExpression) {
	o.mark(node)
	o.BaseVisitor.VisitCaseExpression(node)
}
