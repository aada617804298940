package syntax

import "fmt"

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	INT
	IDENT

	// keywords
	LET
	MUT
	IF
	ELSE
	WHILE
	FREE
	TRUE
	FALSE
	NEW

	ASSIGN
	PLUS
	MINUS
	ASTERISK
	SLASH
	PERCENT
	EQ
	NOT_EQ
	LT
	LTE
	GT
	GTE
	AND
	OR
	AMPERSAND
	QUESTION
	COLON
	SEMICOLON
	LPAREN
	RPAREN
	LBRACE
	RBRACE
)

var tokenNames = map[TokenType]string{
	ILLEGAL:   "ILLEGAL",
	EOF:       "EOF",
	INT:       "INT",
	IDENT:     "IDENT",
	LET:       "let",
	MUT:       "mut",
	IF:        "if",
	ELSE:      "else",
	WHILE:     "while",
	FREE:      "free",
	TRUE:      "true",
	FALSE:     "false",
	NEW:       "new",
	ASSIGN:    "=",
	PLUS:      "+",
	MINUS:     "-",
	ASTERISK:  "*",
	SLASH:     "/",
	PERCENT:   "%",
	EQ:        "==",
	NOT_EQ:    "!=",
	LT:        "<",
	LTE:       "<=",
	GT:        ">",
	GTE:       ">=",
	AND:       "&&",
	OR:        "||",
	AMPERSAND: "&",
	QUESTION:  "?",
	COLON:     ":",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

var keywords = map[string]TokenType{
	"let":   LET,
	"mut":   MUT,
	"if":    IF,
	"else":  ELSE,
	"while": WHILE,
	"free":  FREE,
	"true":  TRUE,
	"false": FALSE,
	"new":   NEW,
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Pos
}

// Pos is a 1-based line and column, counted in runes.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }
