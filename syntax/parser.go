package syntax

import (
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/vm"
)

const (
	_ int = iota
	LOWEST
	TERNARY // ?:
	LOGIC   // && ||
	COMPARE // == != <= >= < >
	SUM     // + -
	PRODUCT // * / %
	PREFIX  // *x &x
)

var precedences = map[TokenType]int{
	QUESTION: TERNARY,
	AND:      LOGIC,
	OR:       LOGIC,
	EQ:       COMPARE,
	NOT_EQ:   COMPARE,
	LT:       COMPARE,
	LTE:      COMPARE,
	GT:       COMPARE,
	GTE:      COMPARE,
	PLUS:     SUM,
	MINUS:    SUM,
	ASTERISK: PRODUCT,
	SLASH:    PRODUCT,
	PERCENT:  PRODUCT,
}

var binops = map[TokenType]vm.BinOp{
	AND:      vm.And,
	OR:       vm.Or,
	EQ:       vm.Eq,
	NOT_EQ:   vm.Neq,
	LT:       vm.Lt,
	LTE:      vm.Leq,
	GT:       vm.Gt,
	GTE:      vm.Geq,
	PLUS:     vm.Add,
	MINUS:    vm.Sub,
	ASTERISK: vm.Mul,
	SLASH:    vm.Div,
	PERCENT:  vm.Mod,
}

type Parser struct {
	l   *Lexer
	cur Token
}

func NewParser(l *Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	return p
}

func (p *Parser) next() { p.cur = p.l.NextToken() }

func (p *Parser) expect(t TokenType) error {
	if p.cur.Type != t {
		return p.unexpected()
	}
	p.next()
	return nil
}

func (p *Parser) unexpected() *Error {
	if p.cur.Type == EOF {
		return errorf(CannotParse, p.cur.Pos, "unexpected end of input")
	}
	return errorf(CannotParse, p.cur.Pos, "unexpected `%s`", p.cur.Literal)
}

// ParseStmt parses one instruction. A trailing `;` is allowed; anything else
// after the instruction is an error.
func ParseStmt(src string) (vm.Stmt, error) {
	p := NewParser(NewLexer(src))
	s, err := p.parseStatement()
	if err != nil {
		log.Trace().Str("src", src).Err(err).Msg("parse: failed")
		return nil, err
	}
	for p.cur.Type == SEMICOLON {
		p.next()
	}
	if p.cur.Type != EOF {
		return nil, p.unexpected()
	}
	return s, nil
}

// ParseExpr parses a single expression.
func ParseExpr(src string) (vm.Expr, error) {
	p := NewParser(NewLexer(src))
	e, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != EOF {
		return nil, p.unexpected()
	}
	return e, nil
}

// Blank reports whether src holds nothing but whitespace and comments.
func Blank(src string) bool {
	return NewLexer(src).NextToken().Type == EOF
}

func (p *Parser) parseStatement() (vm.Stmt, error) {
	switch p.cur.Type {
	case LET:
		return p.parseLet()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case LBRACE:
		return p.parseBlock()
	case FREE:
		p.next()
		x, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		return &vm.FreeStmt{X: x}, nil
	}

	pos := p.cur.Pos
	x, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != ASSIGN {
		return &vm.ExprStmt{X: x}, nil
	}
	switch x.(type) {
	case *vm.Ident, *vm.DerefExpr:
	default:
		return nil, errorf(SyntaxNotSupported, pos, "cannot assign to `%s`", x)
	}
	p.next()
	rhs, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &vm.AssignStmt{LHS: x, RHS: rhs}, nil
}

func (p *Parser) parseLet() (vm.Stmt, error) {
	p.next()
	s := &vm.LetStmt{}
	if p.cur.Type == MUT {
		s.Mutable = true
		p.next()
	}
	if p.cur.Type != IDENT {
		return nil, p.unexpected()
	}
	s.Name = vm.NewIdentifier(p.cur.Literal)
	p.next()
	if err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	x, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	s.X = x
	return s, nil
}

// parseIf always produces blocks on both sides. A missing else is an empty
// block and `else if` nests the inner if in a block of its own.
func (p *Parser) parseIf() (vm.Stmt, error) {
	p.next()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	s := &vm.IfStmt{Cond: cond, True: then, False: &vm.BlockStmt{}}
	if p.cur.Type != ELSE {
		return s, nil
	}
	p.next()
	if p.cur.Type == IF {
		inner, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		s.False = &vm.BlockStmt{Body: []vm.Stmt{inner}}
		return s, nil
	}
	if s.False, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseWhile() (vm.Stmt, error) {
	p.next()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &vm.WhileStmt{Cond: cond, Body: body}, nil
}

// parseBlock reads `{ s1; s2; ... }`. Instructions ending in a block do not
// need a separator.
func (p *Parser) parseBlock() (*vm.BlockStmt, error) {
	if err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	b := &vm.BlockStmt{}
	for {
		for p.cur.Type == SEMICOLON {
			p.next()
		}
		if p.cur.Type == RBRACE {
			p.next()
			return b, nil
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		b.Body = append(b.Body, s)
		switch s.(type) {
		case *vm.BlockStmt, *vm.IfStmt, *vm.WhileStmt:
			continue
		}
		if p.cur.Type != SEMICOLON && p.cur.Type != RBRACE {
			return nil, p.unexpected()
		}
	}
}

func (p *Parser) parseExpression(precedence int) (vm.Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := precedences[p.cur.Type]
		if !ok || prec <= precedence {
			return left, nil
		}
		if p.cur.Type == QUESTION {
			left, err = p.parseConditional(left)
			if err != nil {
				return nil, err
			}
			continue
		}
		op := binops[p.cur.Type]
		p.next()
		right, err := p.parseExpression(prec)
		if err != nil {
			return nil, err
		}
		left = &vm.BinaryExpr{X: left, Op: op, Y: right}
	}
}

// parseConditional parses `? a : b` after cond. It is right associative.
func (p *Parser) parseConditional(cond vm.Expr) (vm.Expr, error) {
	p.next()
	t, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if err := p.expect(COLON); err != nil {
		return nil, err
	}
	f, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	return &vm.CondExpr{Cond: cond, True: t, False: f}, nil
}

func (p *Parser) parsePrefix() (vm.Expr, error) {
	tok := p.cur
	switch tok.Type {
	case INT:
		p.next()
		return p.intLiteral(tok.Literal, tok.Pos)
	case MINUS:
		p.next()
		if p.cur.Type != INT {
			return nil, errorf(SyntaxNotSupported, tok.Pos, "unary minus applies to integer literals only")
		}
		lit := p.cur.Literal
		p.next()
		return p.intLiteral("-"+lit, tok.Pos)
	case TRUE:
		p.next()
		return &vm.Literal{Value: vm.BoolTrue}, nil
	case FALSE:
		p.next()
		return &vm.Literal{Value: vm.BoolFalse}, nil
	case IDENT:
		p.next()
		return &vm.Ident{Name: vm.NewIdentifier(tok.Literal)}, nil
	case NEW:
		p.next()
		return &vm.NewExpr{}, nil
	case LPAREN:
		p.next()
		if p.cur.Type == RPAREN {
			p.next()
			return &vm.Literal{Value: vm.Unit}, nil
		}
		x, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		if err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return x, nil
	case ASTERISK:
		p.next()
		x, err := p.parseExpression(PREFIX)
		if err != nil {
			return nil, err
		}
		return &vm.DerefExpr{X: x}, nil
	case AMPERSAND:
		p.next()
		x, err := p.parseExpression(PREFIX)
		if err != nil {
			return nil, err
		}
		return &vm.AddrExpr{X: x}, nil
	}
	return nil, p.unexpected()
}

func (p *Parser) intLiteral(lit string, pos Pos) (vm.Expr, error) {
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return nil, errorf(CannotParse, pos, "integer literal %s out of range", lit)
	}
	return &vm.Literal{Value: vm.IntValue(n)}, nil
}
