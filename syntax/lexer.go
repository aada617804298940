package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const ptrNewSuffix = "::new()"

type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int
	column       int
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	l.position = l.readPosition
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.readPosition++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) atEOF() bool { return l.position >= len(l.input) }

func (l *Lexer) NextToken() Token {
	l.skipWhitespace()
	pos := Pos{Line: l.line, Column: l.column}

	if l.atEOF() {
		return Token{Type: EOF, Pos: pos}
	}

	single := func(t TokenType) Token {
		tok := Token{Type: t, Literal: string(l.ch), Pos: pos}
		l.readChar()
		return tok
	}
	double := func(t TokenType) Token {
		lit := string(l.ch) + string(l.peekChar())
		l.readChar()
		l.readChar()
		return Token{Type: t, Literal: lit, Pos: pos}
	}

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			return double(EQ)
		}
		return single(ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			return double(NOT_EQ)
		}
		return single(ILLEGAL)
	case '<':
		if l.peekChar() == '=' {
			return double(LTE)
		}
		return single(LT)
	case '>':
		if l.peekChar() == '=' {
			return double(GTE)
		}
		return single(GT)
	case '&':
		if l.peekChar() == '&' {
			return double(AND)
		}
		return single(AMPERSAND)
	case '|':
		if l.peekChar() == '|' {
			return double(OR)
		}
		return single(ILLEGAL)
	case '+':
		return single(PLUS)
	case '-':
		return single(MINUS)
	case '*':
		return single(ASTERISK)
	case '/':
		return single(SLASH)
	case '%':
		return single(PERCENT)
	case '?':
		return single(QUESTION)
	case ':':
		return single(COLON)
	case ';':
		return single(SEMICOLON)
	case '(':
		return single(LPAREN)
	case ')':
		return single(RPAREN)
	case '{':
		return single(LBRACE)
	case '}':
		return single(RBRACE)
	}

	if isDigit(l.ch) {
		return Token{Type: INT, Literal: l.readNumber(), Pos: pos}
	}
	if isLetter(l.ch) {
		lit := l.readIdentifier()
		if lit == "Ptr" && strings.HasPrefix(l.input[l.position:], ptrNewSuffix) {
			for range ptrNewSuffix {
				l.readChar()
			}
			return Token{Type: NEW, Literal: lit + ptrNewSuffix, Pos: pos}
		}
		if t, ok := keywords[lit]; ok {
			return Token{Type: t, Literal: lit, Pos: pos}
		}
		return Token{Type: IDENT, Literal: lit, Pos: pos}
	}
	return single(ILLEGAL)
}

// skipWhitespace also skips // comments.
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() {
		switch {
		case unicode.IsSpace(l.ch):
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}
