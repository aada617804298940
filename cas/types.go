package cas

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/dgryski/go-farm"
	"github.com/shamaton/msgpack/v2"
)

// TypedEntry wraps an encoded Hashable with its type tag.
type TypedEntry struct {
	TypeTag string
	Data    []byte
}

func (t *TypedEntry) Serialize(w io.Writer) error {
	return msgpack.MarshalWrite(w, t)
}

func (t *TypedEntry) Deserialize(r io.Reader) error {
	return msgpack.UnmarshalRead(r, t)
}

func typeTag(item Hashable) string {
	t := reflect.TypeOf(item)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// encode produces the stored bytes of item and their hash.
func encode(item Hashable) (Hash, []byte, error) {
	var buf bytes.Buffer
	if err := item.Serialize(&buf); err != nil {
		return 0, nil, fmt.Errorf("serializing item: %w", err)
	}
	entry := &TypedEntry{TypeTag: typeTag(item), Data: buf.Bytes()}

	var out bytes.Buffer
	if err := entry.Serialize(&out); err != nil {
		return 0, nil, fmt.Errorf("serializing TypedEntry: %w", err)
	}
	data := out.Bytes()
	return Hash(farm.Hash64(data)), data, nil
}
