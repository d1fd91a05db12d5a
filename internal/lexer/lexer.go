package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/funvibe/coolc/internal/config"
	"github.com/funvibe/coolc/internal/token"
)

// Lexical error messages, carried in the Literal of ERROR tokens.
const (
	ErrUnterminatedString = "Unterminated string constant"
	ErrEOFInString        = "EOF in string constant"
	ErrStringTooLong      = "String constant too long"
	ErrNullInString       = "String contains null character"
	ErrEOFInComment       = "EOF in comment"
	ErrUnmatchedComment   = "Unmatched *)"
)

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number
}

func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		l.readPosition = len(l.input) + 1
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// NextToken returns the next token. Lexical errors are returned as ERROR
// tokens and lexing resumes after them. After EOF it keeps returning EOF.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()
		if l.atEOF() {
			return token.Token{Type: token.EOF, Line: l.line, Column: l.column}
		}

		line, col := l.line, l.column

		// Comments
		if l.ch == '-' && l.peekChar() == '-' {
			l.skipLineComment()
			continue
		}
		if l.ch == '(' && l.peekChar() == '*' {
			if msg := l.skipBlockComment(); msg != "" {
				return errorToken(msg, line, col)
			}
			continue
		}
		if l.ch == '*' && l.peekChar() == ')' {
			l.readChar()
			l.readChar()
			return errorToken(ErrUnmatchedComment, line, col)
		}

		switch {
		case l.ch == '"':
			return l.readString(line, col)
		case isDigit(l.ch):
			digits := l.readWhile(isDigit)
			return token.Token{Type: token.INT_CONST, Lexeme: digits, Literal: digits, Line: line, Column: col}
		case isLetter(l.ch):
			word := l.readWhile(isIdentChar)
			return token.Token{Type: token.LookupIdent(word), Lexeme: word, Literal: word, Line: line, Column: col}
		}

		return l.readOperator(line, col)
	}
}

// Tokenize lexes the whole input, EOF token included.
func Tokenize(input string) []token.Token {
	l := New(input)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) readOperator(line, col int) token.Token {
	two := func(t token.TokenType, lexeme string) token.Token {
		l.readChar()
		l.readChar()
		return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
	}
	one := func(t token.TokenType) token.Token {
		lexeme := string(l.ch)
		l.readChar()
		return token.Token{Type: t, Lexeme: lexeme, Literal: lexeme, Line: line, Column: col}
	}

	switch l.ch {
	case '<':
		if l.peekChar() == '-' {
			return two(token.ASSIGN, "<-")
		}
		if l.peekChar() == '=' {
			return two(token.LE, "<=")
		}
		return one(token.LT)
	case '=':
		if l.peekChar() == '>' {
			return two(token.DARROW, "=>")
		}
		return one(token.EQ)
	case '+':
		return one(token.PLUS)
	case '-':
		return one(token.MINUS)
	case '*':
		return one(token.TIMES)
	case '/':
		return one(token.DIVIDE)
	case '~':
		return one(token.NEG)
	case '@':
		return one(token.AT)
	case '.':
		return one(token.DOT)
	case ',':
		return one(token.COMMA)
	case ':':
		return one(token.COLON)
	case ';':
		return one(token.SEMI)
	case '(':
		return one(token.LPAREN)
	case ')':
		return one(token.RPAREN)
	case '{':
		return one(token.LBRACE)
	case '}':
		return one(token.RBRACE)
	}

	ch := l.ch
	l.readChar()
	return errorToken(fmt.Sprintf("Invalid character: %s", string(ch)), line, col)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && isSpace(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) skipLineComment() {
	for !l.atEOF() && l.ch != '\n' {
		l.readChar()
	}
}

// skipBlockComment consumes a possibly nested (* ... *) comment.
// It returns an error message when the input ends inside the comment.
func (l *Lexer) skipBlockComment() string {
	depth := 0
	for !l.atEOF() {
		switch {
		case l.ch == '(' && l.peekChar() == '*':
			depth++
			l.readChar()
			l.readChar()
		case l.ch == '*' && l.peekChar() == ')':
			depth--
			l.readChar()
			l.readChar()
			if depth == 0 {
				return ""
			}
		default:
			l.readChar()
		}
	}
	return ErrEOFInComment
}

// readString reads a string constant starting at the opening quote.
// On error it recovers after the closing quote or at the end of the line.
func (l *Lexer) readString(line, col int) token.Token {
	start := l.position
	l.readChar() // opening quote

	var sb strings.Builder
	errMsg := ""
	for {
		if l.atEOF() {
			return errorToken(ErrEOFInString, line, col)
		}
		switch l.ch {
		case '"':
			l.readChar()
			if errMsg != "" {
				return errorToken(errMsg, line, col)
			}
			if sb.Len() > config.MaxStringLength {
				return errorToken(ErrStringTooLong, line, col)
			}
			return token.Token{
				Type:    token.STR_CONST,
				Lexeme:  l.input[start:l.position],
				Literal: sb.String(),
				Line:    line,
				Column:  col,
			}
		case '\n':
			l.readChar()
			return errorToken(ErrUnterminatedString, line, col)
		case 0:
			errMsg = ErrNullInString
			l.readChar()
		case '\\':
			l.readChar()
			if l.atEOF() {
				return errorToken(ErrEOFInString, line, col)
			}
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 0:
				errMsg = ErrNullInString
			default:
				// \c is c, including an escaped newline
				sb.WriteRune(l.ch)
			}
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.position
	for !l.atEOF() && pred(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func errorToken(msg string, line, col int) token.Token {
	return token.Token{Type: token.ERROR, Literal: msg, Line: line, Column: col}
}

func isSpace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isLetter(ch rune) bool {
	return ch < utf8.RuneSelf && unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch rune) bool {
	return isLetter(ch) || isDigit(ch) || ch == '_'
}
