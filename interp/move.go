package interp

import (
	"github.com/timewinder-dev/murust/memory"
	"github.com/timewinder-dev/murust/vm"
)

// pendingMove is a move out of a binding that only takes effect once the
// instruction that consumes the value has succeeded.
type pendingMove struct {
	from vm.StackAddress
	ok   bool
}

// commit marks the source binding as moved, unless the value went straight
// back into the same binding.
func (mv pendingMove) commit(mem *memory.Memory, dest *vm.StackAddress) {
	if !mv.ok {
		return
	}
	if dest != nil && *dest == mv.from {
		return
	}
	mem.MarkMoved(mv.from)
}

// evalOperand evaluates the right-hand side of a let or an assignment.
// Owning pointers read from a name are moved out of it; owning pointers
// reached through a dereference cannot be moved at all.
func evalOperand(e vm.Expr, mem *memory.Memory) (vm.Value, pendingMove, error) {
	switch x := e.(type) {
	case *vm.Ident:
		v, err := Eval(x, mem)
		if err != nil {
			return nil, pendingMove{}, err
		}
		if !vm.IsOwning(v) {
			return v, pendingMove{}, nil
		}
		addr, err := mem.ResolveAddress(x.Name)
		if err != nil {
			return nil, pendingMove{}, annotate(err, x)
		}
		return v, pendingMove{from: addr, ok: true}, nil
	case *vm.CondExpr:
		c, err := evalBool(x.Cond, mem)
		if err != nil {
			return nil, pendingMove{}, err
		}
		if c {
			return evalOperand(x.True, mem)
		}
		return evalOperand(x.False, mem)
	case *vm.DerefExpr:
		v, err := Eval(x, mem)
		if err != nil {
			return nil, pendingMove{}, err
		}
		if vm.IsOwning(v) {
			return nil, pendingMove{}, &vm.EvalError{Kind: vm.CannotMoveOwnedValue, Expr: x}
		}
		return v, pendingMove{}, nil
	}
	v, err := Eval(e, mem)
	return v, pendingMove{}, err
}
