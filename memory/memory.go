package memory

import (
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/vm"
)

// Memory owns the stack and the heap and resolves addresses of either kind.
type Memory struct {
	stack *NameSpaceStack
	heap  *Heap
}

func New() *Memory {
	return &Memory{stack: NewNameSpaceStack(), heap: NewHeap()}
}

func (m *Memory) Stack() *NameSpaceStack { return m.stack }
func (m *Memory) Heap() *Heap            { return m.heap }

func (m *Memory) Push() { m.stack.Push(NewNameSpace()) }

func (m *Memory) Pop() (*NameSpace, bool) { return m.stack.Pop() }

// Scoped runs fn inside a fresh scope. The scope is popped on every exit
// path, including errors and panics.
func (m *Memory) Scoped(fn func() error) error {
	m.Push()
	defer m.Pop()
	return fn()
}

// Allocate reserves a heap slot and returns an owning pointer to it.
func (m *Memory) Allocate() vm.Pointer {
	addr, gen := m.heap.Allocate()
	return vm.NewPointer(addr, gen)
}

func (m *Memory) Declare(id vm.Identifier, mutable bool, v vm.Value) error {
	return m.stack.Declare(id, mutable, v)
}

func (m *Memory) Find(id vm.Identifier) (vm.Value, error) {
	return m.stack.Find(id)
}

func (m *Memory) Set(id vm.Identifier, v vm.Value) error {
	return m.stack.Set(id, v)
}

func (m *Memory) ResolveAddress(id vm.Identifier) (vm.StackAddress, error) {
	return m.stack.ResolveAddress(id)
}

// AddressOf returns a borrowing pointer to the innermost binding of id.
func (m *Memory) AddressOf(id vm.Identifier) (vm.Pointer, error) {
	addr, err := m.stack.ResolveAddress(id)
	if err != nil {
		return vm.Pointer{}, err
	}
	ns, _ := m.stack.Frame(addr.Frame)
	return vm.NewPointer(addr, ns.Serial()), nil
}

// Read follows addr. Stack addresses read the named frame directly, so a
// pointer keeps designating the binding it was taken from even when an
// inner scope shadows the name.
func (m *Memory) Read(addr vm.Address) (vm.Value, error) {
	switch a := addr.(type) {
	case vm.HeapAddress:
		return m.heap.Read(a.Slot)
	case vm.StackAddress:
		return m.stack.FindAt(a.Frame, a.ID)
	}
	return nil, vm.NewError(vm.NonAllocatedCell)
}

// WriteThrough stores v at addr. Stack targets follow the same mutability
// and type rules as Set.
func (m *Memory) WriteThrough(addr vm.Address, v vm.Value) error {
	switch a := addr.(type) {
	case vm.HeapAddress:
		return m.heap.Write(a.Slot, v)
	case vm.StackAddress:
		return m.stack.SetAt(a.Frame, a.ID, v)
	}
	return vm.NewError(vm.NonAllocatedCell)
}

// ReadPointer is Read after checking that p still designates the cell it
// was created for.
func (m *Memory) ReadPointer(p vm.Pointer) (vm.Value, error) {
	if err := m.checkLive(p); err != nil {
		return nil, err
	}
	return m.Read(p.Address())
}

func (m *Memory) WritePointer(p vm.Pointer, v vm.Value) error {
	if err := m.checkLive(p); err != nil {
		return err
	}
	return m.WriteThrough(p.Address(), v)
}

// Free releases the heap slot behind v. Only pointers to heap slots can be
// freed; freeing a slot twice fails.
func (m *Memory) Free(v vm.Value) error {
	p, ok := v.(vm.Pointer)
	if !ok {
		return vm.NewTypeMismatch(nil, vm.PointerType, vm.TypeOf(v))
	}
	a, ok := p.Address().(vm.HeapAddress)
	if !ok {
		return vm.NewError(vm.CannotFreeOwnedValue)
	}
	if err := m.checkLive(p); err != nil {
		return err
	}
	m.heap.Free(a.Slot)
	log.Trace().Int("slot", a.Slot).Msg("memory: freed")
	return nil
}

// MarkMoved records that the owning value bound at addr was moved out.
func (m *Memory) MarkMoved(addr vm.StackAddress) {
	if ns, ok := m.stack.Frame(addr.Frame); ok {
		ns.markMoved(addr.ID)
	}
}

func (m *Memory) checkLive(p vm.Pointer) error {
	switch a := p.Address().(type) {
	case vm.HeapAddress:
		c, ok := m.heap.cell(a.Slot)
		if !ok {
			return vm.NewError(vm.NonAllocatedCell)
		}
		if c.gen != p.Gen() {
			return vm.NewError(vm.UseAfterFree)
		}
	case vm.StackAddress:
		ns, ok := m.stack.Frame(a.Frame)
		if !ok || ns.Serial() != p.Gen() {
			return vm.NewError(vm.UseAfterFree)
		}
	}
	return nil
}
