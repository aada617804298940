package memory

import (
	"github.com/rs/zerolog/log"
	"github.com/timewinder-dev/murust/vm"
)

// Heap is an arena of cells addressed by slot index. Slots are never
// removed; freeing tombstones a slot and the next allocation reuses the
// lowest free one.
type Heap struct {
	cells []Cell
	gen   uint64
}

func NewHeap() *Heap {
	return &Heap{}
}

func (h *Heap) Len() int { return len(h.cells) }

// Allocate returns the lowest free slot (growing the heap if there is
// none) as a fresh uninitialized cell, with the generation it was given.
func (h *Heap) Allocate() (vm.HeapAddress, uint64) {
	h.gen++
	for i := range h.cells {
		if !h.cells[i].allocated {
			h.cells[i] = newUninitialized(h.gen)
			log.Trace().Int("slot", i).Uint64("gen", h.gen).Msg("heap: reuse slot")
			return vm.HeapAddress{Slot: i}, h.gen
		}
	}
	h.cells = append(h.cells, newUninitialized(h.gen))
	log.Trace().Int("slot", len(h.cells)-1).Uint64("gen", h.gen).Msg("heap: grow")
	return vm.HeapAddress{Slot: len(h.cells) - 1}, h.gen
}

// Free marks the slot NotAllocated whatever its state was.
func (h *Heap) Free(slot int) {
	if slot < 0 || slot >= len(h.cells) {
		return
	}
	h.cells[slot] = Cell{}
	log.Trace().Int("slot", slot).Msg("heap: free")
}

func (h *Heap) cell(slot int) (*Cell, bool) {
	if slot < 0 || slot >= len(h.cells) || !h.cells[slot].allocated {
		return nil, false
	}
	return &h.cells[slot], true
}

func (h *Heap) Read(slot int) (vm.Value, error) {
	c, ok := h.cell(slot)
	if !ok {
		return nil, vm.NewError(vm.NonAllocatedCell)
	}
	return c.Get()
}

func (h *Heap) Write(slot int, v vm.Value) error {
	c, ok := h.cell(slot)
	if !ok {
		return vm.NewError(vm.NonAllocatedCell)
	}
	return c.Set(v)
}
