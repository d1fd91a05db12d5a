package token

import "strings"

type TokenType string

// Token is a single lexical unit. Line and Column are 1-based.
type Token struct {
	Type    TokenType
	Lexeme  string // raw source text
	Literal string // processed value (unescaped string contents, identifier text)
	Line    int
	Column  int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	ERROR   TokenType = "ERROR" // lexical error, Literal holds the message
	EOF     TokenType = "EOF"

	TYPEID     TokenType = "TYPEID"
	OBJECTID   TokenType = "OBJECTID"
	INT_CONST  TokenType = "INT_CONST"
	STR_CONST  TokenType = "STR_CONST"
	BOOL_CONST TokenType = "BOOL_CONST"

	// Operators
	ASSIGN TokenType = "<-"
	DARROW TokenType = "=>"
	LE     TokenType = "<="
	LT     TokenType = "<"
	EQ     TokenType = "="
	PLUS   TokenType = "+"
	MINUS  TokenType = "-"
	TIMES  TokenType = "*"
	DIVIDE TokenType = "/"
	NEG    TokenType = "~"
	AT     TokenType = "@"
	DOT    TokenType = "."

	// Delimiters
	COMMA  TokenType = ","
	COLON  TokenType = ":"
	SEMI   TokenType = ";"
	LPAREN TokenType = "("
	RPAREN TokenType = ")"
	LBRACE TokenType = "{"
	RBRACE TokenType = "}"

	// Keywords
	CLASS    TokenType = "CLASS"
	INHERITS TokenType = "INHERITS"
	IF       TokenType = "IF"
	THEN     TokenType = "THEN"
	ELSE     TokenType = "ELSE"
	FI       TokenType = "FI"
	WHILE    TokenType = "WHILE"
	LOOP     TokenType = "LOOP"
	POOL     TokenType = "POOL"
	LET      TokenType = "LET"
	IN       TokenType = "IN"
	CASE     TokenType = "CASE"
	OF       TokenType = "OF"
	ESAC     TokenType = "ESAC"
	NEW      TokenType = "NEW"
	ISVOID   TokenType = "ISVOID"
	NOT      TokenType = "NOT"
)

// Keywords are case-insensitive.
var keywords = map[string]TokenType{
	"class":    CLASS,
	"inherits": INHERITS,
	"if":       IF,
	"then":     THEN,
	"else":     ELSE,
	"fi":       FI,
	"while":    WHILE,
	"loop":     LOOP,
	"pool":     POOL,
	"let":      LET,
	"in":       IN,
	"case":     CASE,
	"of":       OF,
	"esac":     ESAC,
	"new":      NEW,
	"isvoid":   ISVOID,
	"not":      NOT,
}

// LookupIdent classifies an identifier-shaped word. Boolean constants must
// start with a lowercase letter; the rest of the word is case-insensitive.
func LookupIdent(word string) TokenType {
	lower := strings.ToLower(word)
	if tok, ok := keywords[lower]; ok {
		return tok
	}
	if (lower == "true" || lower == "false") && word[0] >= 'a' && word[0] <= 'z' {
		return BOOL_CONST
	}
	if word[0] >= 'A' && word[0] <= 'Z' {
		return TYPEID
	}
	return OBJECTID
}

// TokenStream is consumed by the parser.
type TokenStream interface {
	NextToken() Token
}

// SliceStream replays a pre-lexed token slice. Once exhausted it keeps
// returning the final EOF token.
type SliceStream struct {
	tokens []Token
	pos    int
}

func NewSliceStream(tokens []Token) *SliceStream {
	return &SliceStream{tokens: tokens}
}

func (s *SliceStream) NextToken() Token {
	if len(s.tokens) == 0 {
		return Token{Type: EOF}
	}
	if s.pos >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}
