package vm

import (
	"fmt"
	"strings"
)

type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Leq
	Geq
	Lt
	Gt
	Eq
	Neq
	And
	Or
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "%"
	case Leq:
		return "<="
	case Geq:
		return ">="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Eq:
		return "=="
	case Neq:
		return "!="
	case And:
		return "&&"
	case Or:
		return "||"
	}
	return fmt.Sprintf("BinOp(%d)", int(op))
}

// Expr is a node of the expression tree.
type Expr interface {
	isExpr()
	String() string
}

type Literal struct {
	Value Value
}

type Ident struct {
	Name Identifier
}

type BinaryExpr struct {
	X  Expr
	Op BinOp
	Y  Expr
}

// CondExpr is the ternary `Cond ? True : False`.
type CondExpr struct {
	Cond  Expr
	True  Expr
	False Expr
}

// NewExpr allocates one heap slot.
type NewExpr struct{}

type DerefExpr struct {
	X Expr
}

// AddrExpr is `&X`. X must be an *Ident to evaluate.
type AddrExpr struct {
	X Expr
}

func (*Literal) isExpr()    {}
func (*Ident) isExpr()      {}
func (*BinaryExpr) isExpr() {}
func (*CondExpr) isExpr()   {}
func (*NewExpr) isExpr()    {}
func (*DerefExpr) isExpr()  {}
func (*AddrExpr) isExpr()   {}

func (e *Literal) String() string { return e.Value.String() }
func (e *Ident) String() string   { return e.Name.String() }
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.X, e.Op, e.Y)
}
func (e *CondExpr) String() string {
	return fmt.Sprintf("(%s) ? %s : %s", e.Cond, e.True, e.False)
}
func (*NewExpr) String() string     { return "Ptr::new()" }
func (e *DerefExpr) String() string { return "*" + e.X.String() }
func (e *AddrExpr) String() string  { return "&" + e.X.String() }

// Stmt is a node of the instruction tree.
type Stmt interface {
	isStmt()
	String() string
}

type ExprStmt struct {
	X Expr
}

type LetStmt struct {
	Name    Identifier
	Mutable bool
	X       Expr
}

type BlockStmt struct {
	Body []Stmt
}

// IfStmt runs exactly one of True or False. The parser always supplies
// blocks for both.
type IfStmt struct {
	Cond  Expr
	True  Stmt
	False Stmt
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// AssignStmt writes RHS to LHS, which is either an *Ident or a *DerefExpr.
type AssignStmt struct {
	LHS Expr
	RHS Expr
}

type FreeStmt struct {
	X Expr
}

func (*ExprStmt) isStmt()   {}
func (*LetStmt) isStmt()    {}
func (*BlockStmt) isStmt()  {}
func (*IfStmt) isStmt()     {}
func (*WhileStmt) isStmt()  {}
func (*AssignStmt) isStmt() {}
func (*FreeStmt) isStmt()   {}

func (s *ExprStmt) String() string { return s.X.String() }
func (s *LetStmt) String() string {
	if s.Mutable {
		return fmt.Sprintf("let mut %s = %s", s.Name, s.X)
	}
	return fmt.Sprintf("let %s = %s", s.Name, s.X)
}
func (s *BlockStmt) String() string {
	parts := make([]string, len(s.Body))
	for i, b := range s.Body {
		parts[i] = b.String()
	}
	return "{" + strings.Join(parts, ";") + "}"
}
func (s *IfStmt) String() string {
	return fmt.Sprintf("if %s %s else %s", s.Cond, s.True, s.False)
}
func (s *WhileStmt) String() string {
	return fmt.Sprintf("while %s %s", s.Cond, s.Body)
}
func (s *AssignStmt) String() string {
	return fmt.Sprintf("%s = %s", s.LHS, s.RHS)
}
func (s *FreeStmt) String() string { return "free " + s.X.String() }
