package memory

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/vm"
)

// NameSpaceStack is the stack region: frame 0 is the global scope and the
// last frame is the innermost one. It always holds at least one frame.
type NameSpaceStack struct {
	frames []*NameSpace
	serial uint64
}

func NewNameSpaceStack() *NameSpaceStack {
	s := &NameSpaceStack{}
	s.Push(NewNameSpace())
	return s
}

func (s *NameSpaceStack) Depth() int { return len(s.frames) }

func (s *NameSpaceStack) Frame(i int) (*NameSpace, bool) {
	if i < 0 || i >= len(s.frames) {
		return nil, false
	}
	return s.frames[i], true
}

func (s *NameSpaceStack) Push(ns *NameSpace) {
	s.serial++
	ns.serial = s.serial
	s.frames = append(s.frames, ns)
	log.Trace().Int("depth", len(s.frames)).Uint64("serial", ns.serial).Msg("stack: push")
}

// Pop removes the innermost frame. The global frame is never popped.
func (s *NameSpaceStack) Pop() (*NameSpace, bool) {
	if len(s.frames) <= 1 {
		return nil, false
	}
	ns := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	log.Trace().Int("depth", len(s.frames)).Uint64("serial", ns.serial).Msg("stack: pop")
	return ns, true
}

func (s *NameSpaceStack) current() *NameSpace {
	return s.frames[len(s.frames)-1]
}

func (s *NameSpaceStack) Declare(id vm.Identifier, mutable bool, v vm.Value) error {
	return s.current().Declare(id, mutable, v)
}

func (s *NameSpaceStack) Find(id vm.Identifier) (vm.Value, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Contains(id) {
			return s.frames[i].Find(id)
		}
	}
	return nil, vm.NewUndefined(id)
}

// Set writes the innermost binding of id. A frame that holds id decides the
// outcome, even when it refuses the write.
func (s *NameSpaceStack) Set(id vm.Identifier, v vm.Value) error {
	for i := len(s.frames) - 1; i >= 0; i-- {
		err := s.frames[i].Set(id, v)
		if err == nil {
			return nil
		}
		if !errors.Is(err, vm.ErrUndefined) {
			return err
		}
	}
	return vm.NewUndefined(id)
}

func (s *NameSpaceStack) ResolveAddress(id vm.Identifier) (vm.StackAddress, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].Contains(id) {
			return vm.StackAddress{Frame: i, ID: id}, nil
		}
	}
	return vm.StackAddress{}, vm.NewUndefined(id)
}

// FindAt reads id from exactly the frame at index frame, without searching
// enclosing scopes.
func (s *NameSpaceStack) FindAt(frame int, id vm.Identifier) (vm.Value, error) {
	ns, ok := s.Frame(frame)
	if !ok {
		return nil, withID(vm.NewError(vm.UseAfterFree), id)
	}
	return ns.Find(id)
}

func (s *NameSpaceStack) SetAt(frame int, id vm.Identifier, v vm.Value) error {
	ns, ok := s.Frame(frame)
	if !ok {
		return withID(vm.NewError(vm.UseAfterFree), id)
	}
	return ns.Set(id, v)
}
