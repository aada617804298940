package cas

import (
	"fmt"

	"github.com/timewinder-dev/murust/memory"
)

// GetSnapshot reassembles the snapshot stored by PutSnapshot under hash.
func GetSnapshot(s Store, hash Hash) (*memory.Snapshot, error) {
	ref, err := Retrieve[SnapshotRef](s, hash)
	if err != nil {
		return nil, fmt.Errorf("retrieving SnapshotRef: %w", err)
	}
	snap := &memory.Snapshot{Serial: ref.Serial, Gen: ref.Gen}
	for i, fh := range ref.FrameHashes {
		f, err := Retrieve[FrameRef](s, fh)
		if err != nil {
			return nil, fmt.Errorf("retrieving frame %d: %w", i, err)
		}
		snap.Frames = append(snap.Frames, memory.FrameSnapshot(*f))
	}
	heap, err := Retrieve[HeapRef](s, ref.HeapHash)
	if err != nil {
		return nil, fmt.Errorf("retrieving heap: %w", err)
	}
	snap.Heap = heap.Cells
	return snap, nil
}
