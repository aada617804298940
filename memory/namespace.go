package memory

import (
	"errors"
	"sort"

	"github.com/timewinder-dev/murust/vm"
)

// NameSpace is one lexical scope. Serial is assigned when the scope is
// pushed and is never reused, so a StackAddress into a popped scope can be
// recognised even when another scope later occupies the same index.
type NameSpace struct {
	serial uint64
	cells  map[vm.Identifier]*Cell
}

func NewNameSpace() *NameSpace {
	return &NameSpace{cells: make(map[vm.Identifier]*Cell)}
}

func (ns *NameSpace) Serial() uint64 { return ns.serial }

func (ns *NameSpace) Len() int { return len(ns.cells) }

func (ns *NameSpace) Declare(id vm.Identifier, mutable bool, v vm.Value) error {
	if _, ok := ns.cells[id]; ok {
		return vm.NewAlreadyDefined(id)
	}
	c := NewCell(mutable, v)
	ns.cells[id] = &c
	return nil
}

func (ns *NameSpace) Find(id vm.Identifier) (vm.Value, error) {
	c, ok := ns.cells[id]
	if !ok {
		return nil, vm.NewUndefined(id)
	}
	v, err := c.Get()
	if err != nil {
		return nil, withID(err, id)
	}
	return v, nil
}

// Set overwrites an existing binding. A binding keeps the type of the value
// it was declared with.
func (ns *NameSpace) Set(id vm.Identifier, v vm.Value) error {
	c, ok := ns.cells[id]
	if !ok {
		return vm.NewUndefined(id)
	}
	if !c.IsMutable() {
		return withID(vm.NewError(vm.NotMutable), id)
	}
	if want := vm.TypeOf(c.value); want != v.Type() {
		return vm.NewTypeMismatch(nil, want, v.Type())
	}
	return c.Set(v)
}

func (ns *NameSpace) Contains(id vm.Identifier) bool {
	_, ok := ns.cells[id]
	return ok
}

// Names returns the bound identifiers sorted by name.
func (ns *NameSpace) Names() []vm.Identifier {
	out := make([]vm.Identifier, 0, len(ns.cells))
	for id := range ns.cells {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func (ns *NameSpace) markMoved(id vm.Identifier) {
	if c, ok := ns.cells[id]; ok {
		c.moved = true
	}
}

func withID(err error, id vm.Identifier) error {
	var ee *vm.EvalError
	if errors.As(err, &ee) && ee.ID.IsZero() {
		out := *ee
		out.ID = id
		return &out
	}
	return err
}
