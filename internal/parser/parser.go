package parser

import (
	"fmt"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/pipeline"
	"github.com/funvibe/coolc/internal/token"
)

// MaxRecursionDepth bounds expression nesting.
const MaxRecursionDepth = 1000

// Precedences, loosest first.
const (
	_ int = iota
	LOWEST
	ASSIGN  // <-
	NOT     // not
	COMPARE // < <= =
	SUM     // + -
	PRODUCT // * /
	ISVOID  // isvoid
	NEG     // ~
	AT      // @
	DOT     // .
)

var precedences = map[token.TokenType]int{
	token.LT:     COMPARE,
	token.LE:     COMPARE,
	token.EQ:     COMPARE,
	token.PLUS:   SUM,
	token.MINUS:  SUM,
	token.TIMES:  PRODUCT,
	token.DIVIDE: PRODUCT,
	token.AT:     AT,
	token.DOT:    DOT,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	stream token.TokenStream
	ctx    *pipeline.PipelineContext
	file   string

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	depth  int
	braces int // '{' minus '}' up to and including curToken
	// recovering suppresses cascading syntax errors until the parser
	// resynchronizes at a feature or class boundary.
	recovering bool
}

// New creates a parser reading from stream. Diagnostics are appended to
// ctx.Errors with file set.
func New(stream token.TokenStream, ctx *pipeline.PipelineContext, file string) *Parser {
	p := &Parser{stream: stream, ctx: ctx, file: file}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.OBJECTID:   p.parseObjectIdentifier,
		token.INT_CONST:  p.parseIntegerLiteral,
		token.STR_CONST:  p.parseStringLiteral,
		token.BOOL_CONST: p.parseBoolean,
		token.LPAREN:     p.parseGroupedExpression,
		token.LBRACE:     p.parseBlockExpression,
		token.IF:         p.parseIfExpression,
		token.WHILE:      p.parseWhileExpression,
		token.LET:        p.parseLetExpression,
		token.CASE:       p.parseCaseExpression,
		token.NEW:        p.parseNewExpression,
		token.ISVOID:     p.parseIsVoidExpression,
		token.NEG:        p.parseUnaryExpression,
		token.NOT:        p.parseUnaryExpression,
	}
	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:   p.parseBinaryExpression,
		token.MINUS:  p.parseBinaryExpression,
		token.TIMES:  p.parseBinaryExpression,
		token.DIVIDE: p.parseBinaryExpression,
		token.LT:     p.parseComparison,
		token.LE:     p.parseComparison,
		token.EQ:     p.parseComparison,
		token.DOT:    p.parseDispatchExpression,
		token.AT:     p.parseStaticDispatchExpression,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()
	return p
}

// nextToken advances, reporting and skipping lexical error tokens.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	switch p.curToken.Type {
	case token.LBRACE:
		p.braces++
	case token.RBRACE:
		p.braces--
	}
	for {
		tok := p.stream.NextToken()
		if tok.Type != token.ERROR {
			p.peekToken = tok
			return
		}
		p.addError(diagnostics.NewError(diagnostics.ErrL001, tok, tok.Literal))
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

// expectPeek advances when the next token has type t and reports a syntax
// error otherwise.
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.syntaxError(p.peekToken)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) addError(err *diagnostics.DiagnosticError) {
	err.File = p.file
	p.ctx.Errors = append(p.ctx.Errors, err)
}

// syntaxError reports tok as unexpected, once per recovery region.
func (p *Parser) syntaxError(tok token.Token) {
	if p.recovering {
		return
	}
	p.recovering = true
	p.addError(diagnostics.NewError(diagnostics.ErrP001, tok, "syntax error at or near "+describe(tok)))
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.TYPEID, token.OBJECTID, token.INT_CONST, token.BOOL_CONST:
		return fmt.Sprintf("%s = %s", tok.Type, tok.Lexeme)
	case token.STR_CONST:
		return fmt.Sprintf("%s = %q", tok.Type, tok.Literal)
	}
	return tok.Lexeme
}

// ParseProgram parses classes until EOF. It never returns nil; a file with
// syntax errors yields the classes that parsed cleanly.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	if p.curTokenIs(token.EOF) {
		p.syntaxError(p.curToken)
		return program
	}

	for !p.curTokenIs(token.EOF) {
		if !p.curTokenIs(token.CLASS) {
			p.syntaxError(p.curToken)
			p.skipToClass()
			continue
		}
		class := p.parseClass()
		if class != nil {
			program.Classes = append(program.Classes, class)
			p.nextToken() // past ';'
			continue
		}
		p.nextToken()
		p.skipToClass()
	}
	return program
}

// skipToClass advances to the next 'class' keyword.
func (p *Parser) skipToClass() {
	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.CLASS) {
		p.nextToken()
	}
	p.recovering = false
}

// skipToFeatureEnd advances to the ';' ending the current feature of a class
// body opened at brace depth bodyDepth, or to the body's closing brace.
func (p *Parser) skipToFeatureEnd(bodyDepth int) {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMI) && p.braces == bodyDepth {
			return
		}
		if p.curTokenIs(token.RBRACE) && p.braces == bodyDepth-1 {
			return
		}
		p.nextToken()
	}
}
