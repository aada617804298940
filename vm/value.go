package vm

import "strconv"

// Value is a runtime value. The set of implementations is closed:
// UnitValue, BoolValue, IntValue and Pointer.
type Value interface {
	isValue()
	Type() Type
	String() string
}

type UnitValue struct{}

var Unit = UnitValue{}

func (UnitValue) isValue()       {}
func (UnitValue) Type() Type     { return UnitType }
func (UnitValue) String() string { return "()" }

type BoolValue bool

var (
	BoolTrue  = BoolValue(true)
	BoolFalse = BoolValue(false)
)

func (BoolValue) isValue()   {}
func (BoolValue) Type() Type { return BoolType }
func (b BoolValue) String() string {
	return strconv.FormatBool(bool(b))
}

type IntValue int64

func (IntValue) isValue()   {}
func (IntValue) Type() Type { return IntType }
func (i IntValue) String() string {
	return strconv.FormatInt(int64(i), 10)
}

func (Pointer) isValue()   {}
func (Pointer) Type() Type { return PointerType }

// TypeOf returns the type tag of v, or NoType for a nil value.
func TypeOf(v Value) Type {
	if v == nil {
		return NoType
	}
	return v.Type()
}

// Equal compares two values of the same type. Values of different types are
// never equal.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case UnitValue:
		_, ok := b.(UnitValue)
		return ok
	case BoolValue:
		y, ok := b.(BoolValue)
		return ok && x == y
	case IntValue:
		y, ok := b.(IntValue)
		return ok && x == y
	case Pointer:
		y, ok := b.(Pointer)
		return ok && x.Equal(y)
	}
	return false
}

// IsOwning reports whether v is a pointer to a heap slot. Owning pointers
// have move semantics; everything else is copied.
func IsOwning(v Value) bool {
	p, ok := v.(Pointer)
	return ok && p.IsHeap()
}
