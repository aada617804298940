package memory

import (
	"fmt"

	"github.com/timewinder-dev/murust/vm"
)

// Snapshot is a plain, serializable copy of a Memory. Bindings are sorted
// by name so equal memories produce equal snapshots.
type Snapshot struct {
	Frames []FrameSnapshot
	Heap   []CellSnapshot
	Serial uint64
	Gen    uint64
}

type FrameSnapshot struct {
	Serial   uint64
	Bindings []BindingSnapshot
}

type BindingSnapshot struct {
	Name string
	Cell CellSnapshot
}

type CellSnapshot struct {
	Allocated bool
	Mutable   bool
	Moved     bool
	Gen       uint64
	Value     *ValueSnapshot
}

type ValueSnapshot struct {
	Type  vm.Type
	Int   int64
	Bool  bool
	Heap  bool
	Slot  int
	Frame int
	Name  string
	Gen   uint64
}

func (m *Memory) Snapshot() *Snapshot {
	out := &Snapshot{Serial: m.stack.serial, Gen: m.heap.gen}
	for _, ns := range m.stack.frames {
		f := FrameSnapshot{Serial: ns.serial}
		for _, id := range ns.Names() {
			f.Bindings = append(f.Bindings, BindingSnapshot{
				Name: id.String(),
				Cell: snapshotCell(ns.cells[id]),
			})
		}
		out.Frames = append(out.Frames, f)
	}
	for i := range m.heap.cells {
		out.Heap = append(out.Heap, snapshotCell(&m.heap.cells[i]))
	}
	return out
}

// Restore rebuilds a Memory from s.
func Restore(s *Snapshot) (*Memory, error) {
	if len(s.Frames) == 0 {
		return nil, fmt.Errorf("snapshot has no global frame")
	}
	m := &Memory{
		stack: &NameSpaceStack{serial: s.Serial},
		heap:  &Heap{gen: s.Gen},
	}
	for _, f := range s.Frames {
		ns := NewNameSpace()
		ns.serial = f.Serial
		for _, b := range f.Bindings {
			c, err := restoreCell(b.Cell)
			if err != nil {
				return nil, fmt.Errorf("binding %s: %w", b.Name, err)
			}
			ns.cells[vm.NewIdentifier(b.Name)] = &c
		}
		m.stack.frames = append(m.stack.frames, ns)
	}
	for i, cs := range s.Heap {
		c, err := restoreCell(cs)
		if err != nil {
			return nil, fmt.Errorf("heap slot %d: %w", i, err)
		}
		m.heap.cells = append(m.heap.cells, c)
	}
	return m, nil
}

func snapshotCell(c *Cell) CellSnapshot {
	out := CellSnapshot{
		Allocated: c.allocated,
		Mutable:   c.mutable,
		Moved:     c.moved,
		Gen:       c.gen,
	}
	if c.value != nil {
		out.Value = snapshotValue(c.value)
	}
	return out
}

func restoreCell(cs CellSnapshot) (Cell, error) {
	c := Cell{
		allocated: cs.Allocated,
		mutable:   cs.Mutable,
		moved:     cs.Moved,
		gen:       cs.Gen,
	}
	if cs.Value != nil {
		v, err := cs.Value.Restore()
		if err != nil {
			return Cell{}, err
		}
		c.value = v
	}
	return c, nil
}

func snapshotValue(v vm.Value) *ValueSnapshot {
	out := &ValueSnapshot{Type: v.Type()}
	switch x := v.(type) {
	case vm.IntValue:
		out.Int = int64(x)
	case vm.BoolValue:
		out.Bool = bool(x)
	case vm.Pointer:
		out.Gen = x.Gen()
		switch a := x.Address().(type) {
		case vm.HeapAddress:
			out.Heap = true
			out.Slot = a.Slot
		case vm.StackAddress:
			out.Frame = a.Frame
			out.Name = a.ID.String()
		}
	}
	return out
}

func (vs *ValueSnapshot) Restore() (vm.Value, error) {
	switch vs.Type {
	case vm.UnitType:
		return vm.Unit, nil
	case vm.BoolType:
		return vm.BoolValue(vs.Bool), nil
	case vm.IntType:
		return vm.IntValue(vs.Int), nil
	case vm.PointerType:
		if vs.Heap {
			return vm.NewPointer(vm.HeapAddress{Slot: vs.Slot}, vs.Gen), nil
		}
		return vm.NewPointer(vm.StackAddress{Frame: vs.Frame, ID: vm.NewIdentifier(vs.Name)}, vs.Gen), nil
	}
	return nil, fmt.Errorf("unknown value type %d", int(vs.Type))
}
