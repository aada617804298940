package cas

import (
	"fmt"

	"github.com/timewinder-dev/murust/memory"
)

// PutSnapshot stores snap as a SnapshotRef plus one entry per frame and
// one for the heap, and returns the hash of the SnapshotRef.
func PutSnapshot(s Store, snap *memory.Snapshot) (Hash, error) {
	if snap == nil {
		return 0, fmt.Errorf("cannot store nil snapshot")
	}
	ref := &SnapshotRef{Serial: snap.Serial, Gen: snap.Gen}
	for i := range snap.Frames {
		f := FrameRef(snap.Frames[i])
		h, err := s.Put(&f)
		if err != nil {
			return 0, fmt.Errorf("storing frame %d: %w", i, err)
		}
		ref.FrameHashes = append(ref.FrameHashes, h)
	}
	h, err := s.Put(&HeapRef{Cells: snap.Heap})
	if err != nil {
		return 0, fmt.Errorf("storing heap: %w", err)
	}
	ref.HeapHash = h
	return s.Put(ref)
}
