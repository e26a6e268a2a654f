package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/tuannm99/pagestore/internal/record"
)

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Fprintf(format string, a ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, a...)
}

// Dump writes one line per occupied slot, in ascending slot order:
//
//	Slot <i>: <f0> <f1> ...
//
// Empty slots are skipped silently. This is a diagnostic trace for
// humans and tests, not an interchange format.
func (p *Page) Dump(w io.Writer) error {
	ew := &errWriter{w: w}
	for i := 0; i < MaxSlots; i++ {
		s := p.getSlot(i)
		if !s.Occupied {
			continue
		}
		rec, err := record.Deserialize(p.Buf[s.Offset : s.Offset+s.Length])
		if err != nil {
			return fmt.Errorf("dump slot %d: %w", i, err)
		}
		ew.Fprintf("Slot %d: %s\n", i, rec)
	}
	return ew.err
}

func (p *Page) DumpString() string {
	var b bytes.Buffer
	if err := p.Dump(&b); err != nil {
		// best-effort: surface the error in the output so callers see it
		b.WriteString("<dump error: " + err.Error() + ">\n")
	}
	return b.String()
}
