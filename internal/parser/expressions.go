package parser

import (
	"strings"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/token"
)

// parseExpression parses an expression starting at curToken and leaves
// curToken on its last token. It returns nil after reporting a syntax error.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		if !p.recovering {
			p.addError(diagnostics.NewError(diagnostics.ErrP001, p.curToken,
				"expression too complex: recursion depth limit exceeded"))
			p.recovering = true
		}
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.syntaxError(p.curToken)
		return nil
	}
	leftExp := prefix()
	if leftExp == nil {
		return nil
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

// parseObjectIdentifier covers a plain identifier, an assignment and an
// implicit dispatch on self.
func (p *Parser) parseObjectIdentifier() ast.Expression {
	ident := p.objectIdent()

	switch {
	case p.peekTokenIs(token.ASSIGN):
		p.nextToken()
		assign := &ast.Assignment{Token: p.curToken, Name: ident}
		p.nextToken()
		// Right-associative: a <- b <- c is a <- (b <- c)
		assign.Value = p.parseExpression(LOWEST)
		if assign.Value == nil {
			return nil
		}
		return assign

	case p.peekTokenIs(token.LPAREN):
		p.nextToken()
		args, ok := p.parseExpressionList(token.RPAREN)
		if !ok {
			return nil
		}
		return &ast.CallExpression{Method: ident, Arguments: args}
	}

	return ident
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	return &ast.IntegerLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: strings.EqualFold(p.curToken.Lexeme, "true")}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken() // consume '('
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

// parseBlockExpression parses { expr; expr; ... } with at least one expression.
func (p *Parser) parseBlockExpression() ast.Expression {
	block := &ast.BlockExpression{Token: p.curToken}
	p.nextToken()

	for {
		exp := p.parseExpression(LOWEST)
		if exp == nil {
			return nil
		}
		block.Expressions = append(block.Expressions, exp)
		if !p.expectPeek(token.SEMI) {
			return nil
		}
		if p.peekTokenIs(token.RBRACE) {
			p.nextToken()
			return block
		}
		p.nextToken()
	}
}

func (p *Parser) parseIfExpression() ast.Expression {
	exp := &ast.IfExpression{Token: p.curToken}

	p.nextToken()
	if exp.Condition = p.parseExpression(LOWEST); exp.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	if exp.Consequence = p.parseExpression(LOWEST); exp.Consequence == nil {
		return nil
	}
	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	if exp.Alternative = p.parseExpression(LOWEST); exp.Alternative == nil {
		return nil
	}
	if !p.expectPeek(token.FI) {
		return nil
	}
	return exp
}

func (p *Parser) parseWhileExpression() ast.Expression {
	exp := &ast.WhileExpression{Token: p.curToken}

	p.nextToken()
	if exp.Condition = p.parseExpression(LOWEST); exp.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.LOOP) {
		return nil
	}
	p.nextToken()
	if exp.Body = p.parseExpression(LOWEST); exp.Body == nil {
		return nil
	}
	if !p.expectPeek(token.POOL) {
		return nil
	}
	return exp
}

// parseLetExpression parses let bindings in body. The body extends as far
// to the right as possible.
func (p *Parser) parseLetExpression() ast.Expression {
	exp := &ast.LetExpression{Token: p.curToken}

	for {
		if !p.expectPeek(token.OBJECTID) {
			return nil
		}
		binding := &ast.LetBinding{Name: p.objectIdent()}
		if !p.expectPeek(token.COLON) || !p.expectPeek(token.TYPEID) {
			return nil
		}
		binding.Type = p.typeIdent()

		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			if binding.Init = p.parseExpression(LOWEST); binding.Init == nil {
				return nil
			}
		}
		exp.Bindings = append(exp.Bindings, binding)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	if exp.Body = p.parseExpression(LOWEST); exp.Body == nil {
		return nil
	}
	return exp
}

// parseCaseExpression parses case expr of name : TYPE => expr; ... esac
// with at least one branch.
func (p *Parser) parseCaseExpression() ast.Expression {
	exp := &ast.CaseExpression{Token: p.curToken}

	p.nextToken()
	if exp.Expression = p.parseExpression(LOWEST); exp.Expression == nil {
		return nil
	}
	if !p.expectPeek(token.OF) {
		return nil
	}

	for {
		if !p.expectPeek(token.OBJECTID) {
			return nil
		}
		branch := &ast.CaseBranch{Name: p.objectIdent()}
		if !p.expectPeek(token.COLON) || !p.expectPeek(token.TYPEID) {
			return nil
		}
		branch.Type = p.typeIdent()
		if !p.expectPeek(token.DARROW) {
			return nil
		}
		p.nextToken()
		if branch.Body = p.parseExpression(LOWEST); branch.Body == nil {
			return nil
		}
		if !p.expectPeek(token.SEMI) {
			return nil
		}
		exp.Branches = append(exp.Branches, branch)

		if p.peekTokenIs(token.ESAC) {
			p.nextToken()
			return exp
		}
	}
}

func (p *Parser) parseNewExpression() ast.Expression {
	exp := &ast.NewExpression{Token: p.curToken}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	exp.Type = p.typeIdent()
	return exp
}

func (p *Parser) parseIsVoidExpression() ast.Expression {
	exp := &ast.IsVoidExpression{Token: p.curToken}
	p.nextToken()
	if exp.Right = p.parseExpression(ISVOID); exp.Right == nil {
		return nil
	}
	return exp
}

// parseUnaryExpression parses ~e and not e.
func (p *Parser) parseUnaryExpression() ast.Expression {
	exp := &ast.UnaryExpression{Token: p.curToken, Operator: strings.ToLower(p.curToken.Lexeme)}
	precedence := NEG
	if p.curTokenIs(token.NOT) {
		precedence = NOT
	}
	p.nextToken()
	if exp.Right = p.parseExpression(precedence); exp.Right == nil {
		return nil
	}
	return exp
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	exp := &ast.BinaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	if exp.Right = p.parseExpression(precedence); exp.Right == nil {
		return nil
	}
	return exp
}

// parseComparison is parseBinaryExpression for the non-associative
// comparison operators: a < b < c is a syntax error.
func (p *Parser) parseComparison(left ast.Expression) ast.Expression {
	exp := p.parseBinaryExpression(left)
	if exp == nil {
		return nil
	}
	if p.peekPrecedence() == COMPARE {
		p.syntaxError(p.peekToken)
		return nil
	}
	return exp
}

// parseDispatchExpression parses .m(args) after a receiver.
func (p *Parser) parseDispatchExpression(receiver ast.Expression) ast.Expression {
	exp := &ast.DispatchExpression{Token: p.curToken, Receiver: receiver}
	if !p.expectPeek(token.OBJECTID) {
		return nil
	}
	exp.Method = p.objectIdent()
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	exp.Arguments = args
	return exp
}

// parseStaticDispatchExpression parses @T.m(args) after a receiver.
func (p *Parser) parseStaticDispatchExpression(receiver ast.Expression) ast.Expression {
	exp := &ast.StaticDispatchExpression{Token: p.curToken, Receiver: receiver}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	exp.Type = p.typeIdent()
	if !p.expectPeek(token.DOT) || !p.expectPeek(token.OBJECTID) {
		return nil
	}
	exp.Method = p.objectIdent()
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	args, ok := p.parseExpressionList(token.RPAREN)
	if !ok {
		return nil
	}
	exp.Arguments = args
	return exp
}

// parseExpressionList parses comma-separated expressions up to end,
// starting at the opening token.
func (p *Parser) parseExpressionList(end token.TokenType) ([]ast.Expression, bool) {
	list := []ast.Expression{}
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}

	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil, false
	}
	list = append(list, exp)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if exp = p.parseExpression(LOWEST); exp == nil {
			return nil, false
		}
		list = append(list, exp)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return list, true
}
