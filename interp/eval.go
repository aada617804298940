package interp

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/memory"
	"github.com/timewinder-dev/murust/vm"
)

// Eval evaluates e against mem. Memory is only changed through allocation.
func Eval(e vm.Expr, mem *memory.Memory) (vm.Value, error) {
	v, err := eval(e, mem)
	if err != nil {
		log.Trace().Str("expr", e.String()).Err(err).Msg("eval: error")
		return nil, err
	}
	log.Trace().Str("expr", e.String()).Str("value", v.String()).Msg("eval")
	return v, nil
}

func eval(e vm.Expr, mem *memory.Memory) (vm.Value, error) {
	switch x := e.(type) {
	case *vm.Literal:
		return x.Value, nil
	case *vm.Ident:
		v, err := mem.Find(x.Name)
		if err != nil {
			return nil, annotate(err, x)
		}
		return v, nil
	case *vm.BinaryExpr:
		return evalBinary(x, mem)
	case *vm.CondExpr:
		c, err := evalBool(x.Cond, mem)
		if err != nil {
			return nil, err
		}
		if c {
			return Eval(x.True, mem)
		}
		return Eval(x.False, mem)
	case *vm.NewExpr:
		return mem.Allocate(), nil
	case *vm.AddrExpr:
		id, ok := x.X.(*vm.Ident)
		if !ok {
			return nil, vm.NewTypeMismatch(x.X, vm.PointerType, vm.NoType)
		}
		p, err := mem.AddressOf(id.Name)
		if err != nil {
			return nil, annotate(err, x.X)
		}
		return p, nil
	case *vm.DerefExpr:
		return evalDeref(x, mem)
	}
	panic(fmt.Sprintf("eval: unexpected expression %T", e))
}

func evalDeref(x *vm.DerefExpr, mem *memory.Memory) (vm.Value, error) {
	v, err := Eval(x.X, mem)
	if err != nil {
		return nil, err
	}
	p, ok := v.(vm.Pointer)
	if !ok {
		return nil, vm.NewTypeMismatch(x, vm.PointerType, v.Type())
	}
	out, err := mem.ReadPointer(p)
	if err != nil {
		return nil, annotate(err, x.X)
	}
	return out, nil
}

func evalBinary(x *vm.BinaryExpr, mem *memory.Memory) (vm.Value, error) {
	switch x.Op {
	case vm.Add, vm.Sub, vm.Mul, vm.Div, vm.Mod:
		a, err := evalInt(x.X, mem)
		if err != nil {
			return nil, err
		}
		b, err := evalInt(x.Y, mem)
		if err != nil {
			return nil, err
		}
		return arith(x, a, b)
	case vm.Leq, vm.Geq, vm.Lt, vm.Gt:
		a, err := evalInt(x.X, mem)
		if err != nil {
			return nil, err
		}
		b, err := evalInt(x.Y, mem)
		if err != nil {
			return nil, err
		}
		return vm.BoolValue(compare(x.Op, a, b)), nil
	case vm.Eq, vm.Neq:
		a, err := Eval(x.X, mem)
		if err != nil {
			return nil, err
		}
		b, err := Eval(x.Y, mem)
		if err != nil {
			return nil, err
		}
		if a.Type() != b.Type() {
			return nil, vm.NewTypeMismatch(x.Y, a.Type(), b.Type())
		}
		eq := vm.Equal(a, b)
		if x.Op == vm.Neq {
			eq = !eq
		}
		return vm.BoolValue(eq), nil
	case vm.And, vm.Or:
		// Both operands are evaluated; there is no short-circuit.
		a, err := evalBool(x.X, mem)
		if err != nil {
			return nil, err
		}
		b, err := evalBool(x.Y, mem)
		if err != nil {
			return nil, err
		}
		if x.Op == vm.And {
			return vm.BoolValue(a && b), nil
		}
		return vm.BoolValue(a || b), nil
	}
	panic(fmt.Sprintf("eval: unexpected operator %s", x.Op))
}

func arith(x *vm.BinaryExpr, a, b int64) (vm.Value, error) {
	switch x.Op {
	case vm.Add:
		return vm.IntValue(a + b), nil
	case vm.Sub:
		return vm.IntValue(a - b), nil
	case vm.Mul:
		return vm.IntValue(a * b), nil
	case vm.Div:
		if b == 0 {
			return nil, &vm.EvalError{Kind: vm.DivisionByZero, Expr: x.Y}
		}
		return vm.IntValue(a / b), nil
	case vm.Mod:
		if b == 0 {
			return nil, &vm.EvalError{Kind: vm.DivisionByZero, Expr: x.Y}
		}
		return vm.IntValue(a % b), nil
	}
	panic(fmt.Sprintf("arith: unexpected operator %s", x.Op))
}

func compare(op vm.BinOp, a, b int64) bool {
	switch op {
	case vm.Leq:
		return a <= b
	case vm.Geq:
		return a >= b
	case vm.Lt:
		return a < b
	default:
		return a > b
	}
}

func evalInt(e vm.Expr, mem *memory.Memory) (int64, error) {
	v, err := Eval(e, mem)
	if err != nil {
		return 0, err
	}
	i, ok := v.(vm.IntValue)
	if !ok {
		return 0, vm.NewTypeMismatch(e, vm.IntType, v.Type())
	}
	return int64(i), nil
}

func evalBool(e vm.Expr, mem *memory.Memory) (bool, error) {
	v, err := Eval(e, mem)
	if err != nil {
		return false, err
	}
	b, ok := v.(vm.BoolValue)
	if !ok {
		return false, vm.NewTypeMismatch(e, vm.BoolType, v.Type())
	}
	return bool(b), nil
}

// annotate names e in a structural error coming up from memory.
func annotate(err error, e vm.Expr) error {
	var ee *vm.EvalError
	if errors.As(err, &ee) {
		return ee.WithExpr(e)
	}
	return err
}
