package vm

import "fmt"

// Type is the runtime type tag of a Value. NoType stands for "no type
// found", used by errors that have nothing to report on that side.
type Type int

const (
	NoType Type = iota
	UnitType
	BoolType
	IntType
	PointerType
)

func (t Type) String() string {
	switch t {
	case NoType:
		return "none"
	case UnitType:
		return "unit"
	case BoolType:
		return "bool"
	case IntType:
		return "isize"
	case PointerType:
		return "ptr"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}
