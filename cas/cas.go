package cas

import (
	"bytes"
	"fmt"
	"io"
)

// Store holds immutable entries keyed by the farm hash of their encoding.
type Store interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool
	Close() error
	getValue(h Hash) (bool, []byte, error)
}

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

type Hash uint64

func (h Hash) String() string { return fmt.Sprintf("%016x", uint64(h)) }

// ParseHash reads the form produced by Hash.String.
func ParseHash(s string) (Hash, error) {
	var h uint64
	if _, err := fmt.Sscanf(s, "%x", &h); err != nil {
		return 0, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return Hash(h), nil
}

// Retrieve loads the entry stored under hash and decodes it as a T. The
// stored type tag must match T.
func Retrieve[T any, PT interface {
	*T
	Hashable
}](s Store, hash Hash) (PT, error) {
	var zero PT
	has, data, err := s.getValue(hash)
	if err != nil {
		return zero, err
	}
	if !has {
		return zero, fmt.Errorf("hash not found in store: %s", hash)
	}

	entry := &TypedEntry{}
	if err := entry.Deserialize(bytes.NewReader(data)); err != nil {
		return zero, fmt.Errorf("deserializing TypedEntry: %w", err)
	}

	var t T
	out := PT(&t)
	if tag := typeTag(out); entry.TypeTag != tag {
		return zero, fmt.Errorf("type mismatch at %s: expected %s, got %s", hash, tag, entry.TypeTag)
	}
	if err := out.Deserialize(bytes.NewReader(entry.Data)); err != nil {
		return zero, fmt.Errorf("deserializing %s: %w", entry.TypeTag, err)
	}
	return out, nil
}
