package interp

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/memory"
	"github.com/timewinder-dev/murust/vm"
)

// Result is the outcome of one instruction. ID is set only by let and by
// assignment to a plain name.
type Result struct {
	ID    vm.Identifier
	Value vm.Value
}

func (r Result) Bound() bool { return !r.ID.IsZero() }

// Exec runs one instruction against mem.
func Exec(s vm.Stmt, mem *memory.Memory) (Result, error) {
	r, err := exec(s, mem)
	if err != nil {
		log.Trace().Str("stmt", s.String()).Err(err).Msg("exec: error")
		return Result{}, err
	}
	log.Trace().Str("stmt", s.String()).Str("value", r.Value.String()).Msg("exec")
	return r, nil
}

func exec(s vm.Stmt, mem *memory.Memory) (Result, error) {
	switch x := s.(type) {
	case *vm.ExprStmt:
		v, err := Eval(x.X, mem)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: v}, nil
	case *vm.LetStmt:
		v, mv, err := evalOperand(x.X, mem)
		if err != nil {
			return Result{}, err
		}
		if err := mem.Declare(x.Name, x.Mutable, v); err != nil {
			return Result{}, err
		}
		mv.commit(mem, nil)
		return Result{ID: x.Name, Value: v}, nil
	case *vm.BlockStmt:
		return execBlock(x, mem)
	case *vm.IfStmt:
		c, err := evalBool(x.Cond, mem)
		if err != nil {
			return Result{}, err
		}
		branch := x.False
		if c {
			branch = x.True
		}
		r, err := Exec(branch, mem)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: r.Value}, nil
	case *vm.WhileStmt:
		for {
			c, err := evalBool(x.Cond, mem)
			if err != nil {
				return Result{}, err
			}
			if !c {
				return Result{Value: vm.Unit}, nil
			}
			if _, err := Exec(x.Body, mem); err != nil {
				return Result{}, err
			}
		}
	case *vm.AssignStmt:
		return execAssign(x, mem)
	case *vm.FreeStmt:
		v, err := Eval(x.X, mem)
		if err != nil {
			return Result{}, err
		}
		if err := mem.Free(v); err != nil {
			return Result{}, annotate(err, x.X)
		}
		return Result{Value: vm.Unit}, nil
	}
	panic(fmt.Sprintf("exec: unexpected instruction %T", s))
}

// execBlock runs the body in its own scope and yields the value of the last
// instruction.
func execBlock(b *vm.BlockStmt, mem *memory.Memory) (Result, error) {
	var last vm.Value = vm.Unit
	err := mem.Scoped(func() error {
		for _, s := range b.Body {
			r, err := Exec(s, mem)
			if err != nil {
				return err
			}
			last = r.Value
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Value: last}, nil
}

func execAssign(x *vm.AssignStmt, mem *memory.Memory) (Result, error) {
	switch lhs := x.LHS.(type) {
	case *vm.DerefExpr:
		pv, err := Eval(lhs.X, mem)
		if err != nil {
			return Result{}, err
		}
		p, ok := pv.(vm.Pointer)
		if !ok {
			return Result{}, vm.NewTypeMismatch(lhs.X, vm.PointerType, pv.Type())
		}
		v, mv, err := evalOperand(x.RHS, mem)
		if err != nil {
			return Result{}, err
		}
		if err := mem.WritePointer(p, v); err != nil {
			return Result{}, annotateWrite(err, lhs, x.RHS)
		}
		var dest *vm.StackAddress
		if sa, ok := p.Address().(vm.StackAddress); ok {
			dest = &sa
		}
		mv.commit(mem, dest)
		return Result{Value: v}, nil
	case *vm.Ident:
		v, mv, err := evalOperand(x.RHS, mem)
		if err != nil {
			return Result{}, err
		}
		if err := mem.Set(lhs.Name, v); err != nil {
			return Result{}, annotateWrite(err, lhs, x.RHS)
		}
		dest, _ := mem.ResolveAddress(lhs.Name)
		mv.commit(mem, &dest)
		return Result{ID: lhs.Name, Value: v}, nil
	}
	panic(fmt.Sprintf("exec: unsupported assignment target %s", x.LHS))
}

// annotateWrite names the offending side of an assignment: the value for a
// type mismatch, the target for everything else.
func annotateWrite(err error, lhs, rhs vm.Expr) error {
	if errors.Is(err, vm.ErrTypeMismatch) {
		return annotate(err, rhs)
	}
	return annotate(err, lhs)
}
