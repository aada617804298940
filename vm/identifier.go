package vm

import (
	"unique"

	"golang.org/x/text/unicode/norm"
)

// Identifier is an interned name. Two identifiers are equal iff their
// NFC-normalized text is equal, so == and map keys work directly.
type Identifier struct {
	h unique.Handle[string]
}

func NewIdentifier(name string) Identifier {
	return Identifier{h: unique.Make(norm.NFC.String(name))}
}

func (id Identifier) String() string {
	if id.IsZero() {
		return ""
	}
	return id.h.Value()
}

// IsZero reports whether id was never assigned a name.
func (id Identifier) IsZero() bool {
	return id == Identifier{}
}

func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identifier) UnmarshalText(b []byte) error {
	*id = NewIdentifier(string(b))
	return nil
}
