package session

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/timewinder-dev/murust/memory"
	"github.com/timewinder-dev/murust/vm"
)

// Printer renders results for the terminal. With color off every method
// returns plain text.
type Printer struct {
	Color bool
}

func (p Printer) paint(c color.Color, s string) string {
	if !p.Color {
		return s
	}
	return c.Sprint(s)
}

// Result formats a successful instruction as `id : type = value`, using
// `-` when nothing was bound.
func (p Printer) Result(id vm.Identifier, v vm.Value) string {
	name := "-"
	if !id.IsZero() {
		name = id.String()
	}
	return fmt.Sprintf("%s : %s = %s",
		p.paint(color.Bold, name),
		p.paint(color.Cyan, v.Type().String()),
		v.String())
}

func (p Printer) ParseError(err error) string {
	return p.paint(color.Red, "Parse Error: ") + err.Error()
}

func (p Printer) EvalError(err error) string {
	return p.paint(color.Red, "Evaluation Error: ") + err.Error()
}

func (p Printer) Notice(s string) string {
	return p.paint(color.Yellow, s)
}

// Memory dumps every frame, innermost last, followed by the heap.
func (p Printer) Memory(s *memory.Snapshot) string {
	var b strings.Builder
	for i, f := range s.Frames {
		b.WriteString(p.paint(color.Gray, fmt.Sprintf("frame %d", i)))
		b.WriteString("\n")
		if len(f.Bindings) == 0 {
			b.WriteString("  (empty)\n")
		}
		for _, bind := range f.Bindings {
			name := bind.Name
			if bind.Cell.Mutable {
				name = "mut " + name
			}
			fmt.Fprintf(&b, "  %s : %s\n", p.paint(color.Bold, name), p.cell(bind.Cell))
		}
	}
	b.WriteString(p.paint(color.Gray, "heap"))
	b.WriteString("\n")
	if len(s.Heap) == 0 {
		b.WriteString("  (empty)\n")
	}
	for i, c := range s.Heap {
		fmt.Fprintf(&b, "  @%d : %s\n", i, p.cell(c))
	}
	return b.String()
}

func (p Printer) cell(c memory.CellSnapshot) string {
	switch {
	case !c.Allocated:
		return p.paint(color.Gray, "<free>")
	case c.Moved:
		return p.paint(color.Gray, "<moved>")
	case c.Value == nil:
		return p.paint(color.Gray, "<uninitialized>")
	}
	v, err := c.Value.Restore()
	if err != nil {
		return p.paint(color.Red, err.Error())
	}
	return fmt.Sprintf("%s = %s", p.paint(color.Cyan, v.Type().String()), v)
}
