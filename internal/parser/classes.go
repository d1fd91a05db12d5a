package parser

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/token"
)

// parseClass parses
// class TYPE [inherits TYPE] { feature; ... }
// leaving curToken on the terminating ';'.
// It returns nil after a syntax error in the header or at EOF.
func (p *Parser) parseClass() *ast.Class {
	class := &ast.Class{Token: p.curToken}

	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	class.Name = p.typeIdent()

	if p.peekTokenIs(token.INHERITS) {
		p.nextToken()
		if !p.expectPeek(token.TYPEID) {
			return nil
		}
		class.Parent = p.typeIdent()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	bodyDepth := p.braces
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		feature := p.parseFeature()
		// The last feature may omit its ';'.
		if feature != nil && p.peekTokenIs(token.RBRACE) {
			class.Features = append(class.Features, feature)
			p.nextToken()
			continue
		}
		if feature != nil && p.expectPeek(token.SEMI) {
			class.Features = append(class.Features, feature)
			p.nextToken()
			continue
		}
		p.skipToFeatureEnd(bodyDepth)
		if p.curTokenIs(token.SEMI) {
			p.nextToken()
		}
		p.recovering = false
	}

	if !p.curTokenIs(token.RBRACE) {
		p.syntaxError(p.curToken)
		return nil
	}
	if !p.expectPeek(token.SEMI) {
		return nil
	}
	return class
}

// parseFeature parses a method or an attribute, leaving curToken on its
// last token.
func (p *Parser) parseFeature() ast.Feature {
	if !p.curTokenIs(token.OBJECTID) {
		p.syntaxError(p.curToken)
		return nil
	}
	name := p.objectIdent()

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		return p.parseMethod(name)
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	return p.parseAttribute(name)
}

// parseMethod parses
// (formals) : TYPE { expr }
// starting at '('.
func (p *Parser) parseMethod(name *ast.ObjectIdentifier) ast.Feature {
	method := &ast.Method{Name: name}

	formals, ok := p.parseFormals()
	if !ok {
		return nil
	}
	method.Formals = formals

	if !p.expectPeek(token.COLON) || !p.expectPeek(token.TYPEID) {
		return nil
	}
	method.ReturnType = p.typeIdent()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()
	method.Body = p.parseExpression(LOWEST)
	if method.Body == nil {
		return nil
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return method
}

func (p *Parser) parseFormals() ([]*ast.Formal, bool) {
	formals := []*ast.Formal{}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return formals, true
	}

	for {
		if !p.expectPeek(token.OBJECTID) {
			return nil, false
		}
		formal := &ast.Formal{Name: p.objectIdent()}
		if !p.expectPeek(token.COLON) || !p.expectPeek(token.TYPEID) {
			return nil, false
		}
		formal.Type = p.typeIdent()
		formals = append(formals, formal)

		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.RPAREN) {
		return nil, false
	}
	return formals, true
}

// parseAttribute parses
// TYPE [<- expr]
// starting at ':'.
func (p *Parser) parseAttribute(name *ast.ObjectIdentifier) ast.Feature {
	attr := &ast.Attribute{Name: name}
	if !p.expectPeek(token.TYPEID) {
		return nil
	}
	attr.Type = p.typeIdent()

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		attr.Init = p.parseExpression(LOWEST)
		if attr.Init == nil {
			return nil
		}
	}
	return attr
}

func (p *Parser) typeIdent() *ast.TypeIdentifier {
	return &ast.TypeIdentifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) objectIdent() *ast.ObjectIdentifier {
	return &ast.ObjectIdentifier{Token: p.curToken, Value: p.curToken.Lexeme}
}
