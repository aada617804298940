package vm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifierNormalization(t *testing.T) {
	composed := NewIdentifier("caf\u00e9")
	decomposed := NewIdentifier("cafe\u0301")
	assert.Equal(t, composed, decomposed)
	assert.Equal(t, "caf\u00e9", decomposed.String())
	assert.NotEqual(t, composed, NewIdentifier("cafe"))

	var zero Identifier
	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())

	var back Identifier
	text, err := composed.MarshalText()
	require.NoError(t, err)
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, composed, back)
}

func TestValueDisplay(t *testing.T) {
	x := NewIdentifier("x")
	tests := []struct {
		v    Value
		str  string
		kind Type
	}{
		{Unit, "()", UnitType},
		{BoolTrue, "true", BoolType},
		{IntValue(-12), "-12", IntType},
		{NewPointer(HeapAddress{Slot: 3}, 1), "@3", PointerType},
		{NewPointer(StackAddress{Frame: 2, ID: x}, 1), "@[2,x]", PointerType},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.v.String())
			assert.Equal(t, tt.kind, tt.v.Type())
			assert.Equal(t, tt.kind, TypeOf(tt.v))
		})
	}
	assert.Equal(t, NoType, TypeOf(nil))
	assert.Equal(t, "isize", IntType.String())
	assert.Equal(t, "ptr", PointerType.String())
}

func TestEqual(t *testing.T) {
	a := NewPointer(HeapAddress{Slot: 1}, 1)
	b := NewPointer(HeapAddress{Slot: 1}, 2)
	assert.True(t, Equal(a, b), "generation does not take part in equality")
	assert.False(t, Equal(a, NewPointer(HeapAddress{Slot: 2}, 1)))
	assert.True(t, Equal(Unit, Unit))
	assert.False(t, Equal(IntValue(1), BoolTrue))
	assert.True(t, IsOwning(a))
	assert.False(t, IsOwning(NewPointer(StackAddress{Frame: 0, ID: NewIdentifier("x")}, 1)))
	assert.False(t, IsOwning(IntValue(1)))
}

func TestTreeDisplay(t *testing.T) {
	x := &Ident{Name: NewIdentifier("x")}
	one := &Literal{Value: IntValue(1)}
	cond := &CondExpr{Cond: &BinaryExpr{X: x, Op: Lt, Y: one}, True: x, False: &NewExpr{}}
	assert.Equal(t, "((x < 1)) ? x : Ptr::new()", cond.String())

	s := &BlockStmt{Body: []Stmt{
		&LetStmt{Name: NewIdentifier("p"), Mutable: true, X: &NewExpr{}},
		&AssignStmt{LHS: &DerefExpr{X: x}, RHS: &AddrExpr{X: x}},
		&WhileStmt{Cond: &Literal{Value: BoolFalse}, Body: &BlockStmt{}},
		&FreeStmt{X: x},
	}}
	assert.Equal(t, "{let mut p = Ptr::new();*x = &x;while false {};free x}", s.String())
}

func TestErrorMessages(t *testing.T) {
	x := &Ident{Name: NewIdentifier("x")}
	tests := []struct {
		err  *EvalError
		want string
	}{
		{NewError(NotMutable), "Cell is not mutable."},
		{NewError(NotMutable).WithExpr(x), "Cell at `x` is not mutable."},
		{NewError(NonAllocatedCell), "Cell is not allocated."},
		{NewError(NonInitializedValue).WithExpr(x), "Value in `x` is not initialized."},
		{NewError(UseAfterFree), "use after free."},
		{NewError(MovedValue), "value has been moved"},
		{&EvalError{Kind: MovedValue, ID: NewIdentifier("p")}, "`p` has been moved"},
		{NewError(CannotMoveOwnedValue), "cannot move this value, owned value with move semantics"},
		{NewError(CannotFreeOwnedValue).WithExpr(x), "cannot free `x`, owned value"},
		{NewTypeMismatch(x, BoolType, NoType), "Type mismatch in expression `x`. Expected: bool."},
		{NewUndefined(NewIdentifier("y")).WithExpr(x), "Undefined identifier `y`."},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("line 3: %w", NewError(NotMutable).WithExpr(&Ident{Name: NewIdentifier("x")}))
	assert.ErrorIs(t, err, ErrNotMutable)
	assert.False(t, errors.Is(err, ErrUndefined))

	var ee *EvalError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, NotMutable, ee.Kind)
	assert.Equal(t, "NotMutable", ee.Kind.String())
}

func TestWithExprKeepsFirst(t *testing.T) {
	inner := &Ident{Name: NewIdentifier("inner")}
	outer := &Ident{Name: NewIdentifier("outer")}
	err := NewError(NonAllocatedCell).WithExpr(inner).WithExpr(outer)
	assert.Equal(t, inner, err.Expr)

	base := NewError(NonAllocatedCell)
	_ = base.WithExpr(inner)
	assert.Nil(t, base.Expr, "WithExpr copies")
}
