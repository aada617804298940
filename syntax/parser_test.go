package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timewinder-dev/murust/vm"
)

func TestParseStmt(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"-5 - -3", "(-5 - -3)"},
		{"3-5", "(3 - 5)"},
		{"x == 1 && y", "((x == 1) && y)"},
		{"a || b && c", "((a || b) && c)"},
		{"x % 2 == 0", "((x % 2) == 0)"},
		{"()", "()"},
		{"true", "true"},
		{"let x = 5", "let x = 5"},
		{"let mut x = 5;", "let mut x = 5"},
		{"let p = Ptr::new()", "let p = Ptr::new()"},
		{"let p = new", "let p = Ptr::new()"},
		{"x = x + 1", "x = (x + 1)"},
		{"*p = *p + 1", "*p = (*p + 1)"},
		{"**pp", "**pp"},
		{"&x", "&x"},
		{"free p", "free p"},
		{"a ? 1 : 2", "(a) ? 1 : 2"},
		{"a ? 1 : b ? 2 : 3", "(a) ? 1 : (b) ? 2 : 3"},
		{"x < 1 ? x : 0", "((x < 1)) ? x : 0"},
		{"{ let x = 1; x }", "{let x = 1;x}"},
		{"{ }", "{}"},
		{"{ x; }", "{x}"},
		{"if x < 3 { x = x + 1 }", "if (x < 3) {x = (x + 1)} else {}"},
		{"if a { 1 } else { 2 }", "if a {1} else {2}"},
		{"if a { 1 } else if b { 2 } else { 3 }", "if a {1} else {if b {2} else {3}}"},
		{"while i < 10 { i = i + 1; }", "while (i < 10) {i = (i + 1)}"},
		{"{ if a { 1 } x }", "{if a {1} else {};x}"},
		{"x = 3; // trailing comment", "x = 3"},
		{"é = 1", "é = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			s, err := ParseStmt(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestParseStmtShapes(t *testing.T) {
	s, err := ParseStmt("let mut x = 1")
	require.NoError(t, err)
	let, ok := s.(*vm.LetStmt)
	require.True(t, ok)
	assert.True(t, let.Mutable)
	assert.Equal(t, vm.NewIdentifier("x"), let.Name)
	assert.Equal(t, vm.IntValue(1), let.X.(*vm.Literal).Value)

	s, err = ParseStmt("*p = 2")
	require.NoError(t, err)
	assign, ok := s.(*vm.AssignStmt)
	require.True(t, ok)
	_, ok = assign.LHS.(*vm.DerefExpr)
	assert.True(t, ok)

	s, err = ParseStmt("if c { 1 }")
	require.NoError(t, err)
	ifs := s.(*vm.IfStmt)
	assert.IsType(t, &vm.BlockStmt{}, ifs.True)
	assert.IsType(t, &vm.BlockStmt{}, ifs.False)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"let = 5", ErrCannotParse},
		{"let x 5", ErrCannotParse},
		{"1 +", ErrCannotParse},
		{"(1", ErrCannotParse},
		{"let x = 1 let y = 2", ErrCannotParse},
		{"99999999999999999999", ErrCannotParse},
		{"x $ 1", ErrCannotParse},
		{"{ x y }", ErrCannotParse},
		{"if x 1", ErrCannotParse},
		{"a ? 1", ErrCannotParse},
		{"1 = 2", ErrSyntaxNotSupported},
		{"x + 1 = 2", ErrSyntaxNotSupported},
		{"-x", ErrSyntaxNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseStmt(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseStmt("(1")
	require.Error(t, err)
	assert.Equal(t, "Cannot parse: unexpected end of input at 1:3", err.Error())

	_, err = ParseStmt("1 = 2")
	require.Error(t, err)
	assert.Equal(t, "Syntax not supported: cannot assign to `1` at 1:1", err.Error())
}

func TestParseExpr(t *testing.T) {
	e, err := ParseExpr("*p + 1")
	require.NoError(t, err)
	assert.Equal(t, "(*p + 1)", e.String())

	_, err = ParseExpr("let x = 1")
	assert.ErrorIs(t, err, ErrCannotParse)
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank("   // just a comment"))
	assert.False(t, Blank("x"))
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer("let µ =\n 12")
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	require.Len(t, toks, 5)
	assert.Equal(t, LET, toks[0].Type)
	assert.Equal(t, IDENT, toks[1].Type)
	assert.Equal(t, "µ", toks[1].Literal)
	assert.Equal(t, Pos{Line: 1, Column: 5}, toks[1].Pos)
	assert.Equal(t, ASSIGN, toks[2].Type)
	assert.Equal(t, Pos{Line: 1, Column: 7}, toks[2].Pos)
	assert.Equal(t, INT, toks[3].Type)
	assert.Equal(t, Pos{Line: 2, Column: 2}, toks[3].Pos)
}
