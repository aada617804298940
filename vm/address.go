package vm

import "fmt"

// Address locates a storage cell: either a named binding in one specific
// stack frame, or a heap slot.
type Address interface {
	isAddress()
	String() string
}

// StackAddress pins the binding ID in the frame at index Frame, where 0 is
// the global frame.
type StackAddress struct {
	Frame int
	ID    Identifier
}

func (StackAddress) isAddress() {}
func (a StackAddress) String() string {
	return fmt.Sprintf("@[%d,%s]", a.Frame, a.ID)
}

type HeapAddress struct {
	Slot int
}

func (HeapAddress) isAddress() {}
func (a HeapAddress) String() string {
	return fmt.Sprintf("@%d", a.Slot)
}

// Pointer is an immutable reference to an Address. Gen records the
// generation of the target (heap slot allocation or frame serial) at the
// time the pointer was made, so stale pointers can be told apart from live
// ones. It does not take part in equality.
type Pointer struct {
	addr Address
	gen  uint64
}

func NewPointer(addr Address, gen uint64) Pointer {
	return Pointer{addr: addr, gen: gen}
}

func (p Pointer) Address() Address { return p.addr }
func (p Pointer) Gen() uint64      { return p.gen }

func (p Pointer) IsHeap() bool {
	_, ok := p.addr.(HeapAddress)
	return ok
}

func (p Pointer) Equal(o Pointer) bool {
	return p.addr == o.addr
}

func (p Pointer) String() string {
	if p.addr == nil {
		return "@nil"
	}
	return p.addr.String()
}
