package cas

import (
	"io"

	"github.com/shamaton/msgpack/v2"
	"github.com/timewinder-dev/murust/memory"
)

// SnapshotRef is the stored form of a memory.Snapshot. Frames and the heap
// are stored as their own entries so that unchanged scopes are shared
// between consecutive snapshots.
type SnapshotRef struct {
	FrameHashes []Hash
	HeapHash    Hash
	Serial      uint64
	Gen         uint64
}

func (s *SnapshotRef) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, s)
}

func (s *SnapshotRef) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, s)
}

// FrameRef is one stack frame, stored inline.
type FrameRef memory.FrameSnapshot

func (f *FrameRef) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, f)
}

func (f *FrameRef) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, f)
}

type HeapRef struct {
	Cells []memory.CellSnapshot
}

func (h *HeapRef) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, h)
}

func (h *HeapRef) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, h)
}
