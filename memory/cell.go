package memory

import "github.com/timewinder-dev/murust/vm"

// Cell is one storage slot. The zero Cell is not allocated. An allocated
// cell with a nil value is uninitialized.
type Cell struct {
	allocated bool
	mutable   bool
	moved     bool
	value     vm.Value
	gen       uint64
}

func NewCell(mutable bool, v vm.Value) Cell {
	return Cell{allocated: true, mutable: mutable, value: v}
}

func newUninitialized(gen uint64) Cell {
	return Cell{allocated: true, mutable: true, gen: gen}
}

func (c *Cell) IsAllocated() bool { return c.allocated }

func (c *Cell) IsMutable() bool { return c.allocated && c.mutable }

func (c *Cell) IsMoved() bool { return c.moved }

func (c *Cell) Gen() uint64 { return c.gen }

func (c *Cell) Get() (vm.Value, error) {
	switch {
	case !c.allocated:
		return nil, vm.NewError(vm.NonAllocatedCell)
	case c.moved:
		return nil, vm.NewError(vm.MovedValue)
	case c.value == nil:
		return nil, vm.NewError(vm.NonInitializedValue)
	}
	return c.value, nil
}

// Set stores v. Writing a moved cell revives it.
func (c *Cell) Set(v vm.Value) error {
	if !c.allocated {
		return vm.NewError(vm.NonAllocatedCell)
	}
	if !c.mutable {
		return vm.NewError(vm.NotMutable)
	}
	c.value = v
	c.moved = false
	return nil
}
