package storage

import (
	"encoding/binary"

	"github.com/tuannm99/pagestore/internal/record"
)

// Slot is one decoded directory entry. The directory itself lives inside
// the page buffer; Slot is only the explicit codec view of an entry.
type Slot struct {
	Occupied bool
	Offset   uint16
	Length   uint16
}

// +------------------+ 0
// | Slot directory   |
// | (MaxSlots slots) |
// +------------------+ DirSize
// |  Record payloads |
// |  (grow upward)   |
// +------------------+ <-- cursor
// |   Free space     |
// +------------------+ PageSize
type Page struct {
	Buf []byte // fixed-size PageSize buffer, directory included

	// cursor is the next free payload byte. It is the single source of
	// truth for where the next record lands: insert and relocation
	// advance it, compaction rewinds it. Deriving it from slot arithmetic
	// instead would silently break once deletes punch holes in the
	// directory.
	cursor uint16
}

// NewPage returns an empty page: every slot unoccupied with sentinel
// offset/length, cursor at the end of the directory.
func NewPage() *Page {
	p := &Page{Buf: make([]byte, PageSize), cursor: DirSize}
	for i := 0; i < MaxSlots; i++ {
		p.putSlot(i, Slot{Offset: InvalidValue, Length: InvalidValue})
	}
	return p
}

// ---- slot directory codec ----

func slotOff(i int) int {
	return i * SlotSize
}

func (p *Page) getSlot(i int) Slot {
	o := slotOff(i)
	return Slot{
		Occupied: binary.LittleEndian.Uint16(p.Buf[o+0:]) != 0,
		Offset:   binary.LittleEndian.Uint16(p.Buf[o+2:]),
		Length:   binary.LittleEndian.Uint16(p.Buf[o+4:]),
	}
}

func (p *Page) putSlot(i int, s Slot) {
	o := slotOff(i)
	var occ uint16
	if s.Occupied {
		occ = 1
	}
	binary.LittleEndian.PutUint16(p.Buf[o+0:], occ)
	binary.LittleEndian.PutUint16(p.Buf[o+2:], s.Offset)
	binary.LittleEndian.PutUint16(p.Buf[o+4:], s.Length)
}

// ---- public helpers ----

// Occupied reports whether slot i currently holds a record.
func (p *Page) Occupied(i int) bool {
	if i < 0 || i >= MaxSlots {
		return false
	}
	return p.getSlot(i).Occupied
}

// NumRecords counts occupied slots.
func (p *Page) NumRecords() int {
	n := 0
	for i := 0; i < MaxSlots; i++ {
		if p.getSlot(i).Occupied {
			n++
		}
	}
	return n
}

// Cursor is the page's high-water mark: the next free payload byte.
func (p *Page) Cursor() uint16 {
	return p.cursor
}

func (p *Page) FreeSpace() int {
	return PageSize - int(p.cursor)
}

// ---- records (payload) ----

// Insert serializes the record and appends it into the first unoccupied
// slot. On failure the page is unchanged.
func (p *Page) Insert(r record.Record) (slot int, err error) {
	return p.AppendPayload(r.Serialize())
}

// AppendPayload places already-serialized bytes at the cursor and claims
// the first unoccupied slot for them. Insert and cross-page relocation
// share this path so both obey the same capacity rule: an append whose
// end would reach PageSize exactly is refused.
func (p *Page) AppendPayload(data []byte) (slot int, err error) {
	slot = -1
	for i := 0; i < MaxSlots; i++ {
		if !p.getSlot(i).Occupied {
			slot = i
			break
		}
	}
	if slot < 0 {
		return -1, ErrNoFreeSlot
	}
	off := int(p.cursor)
	if off+len(data) >= PageSize {
		return -1, ErrNoSpace
	}
	copy(p.Buf[off:], data)
	p.putSlot(slot, Slot{Occupied: true, Offset: uint16(off), Length: uint16(len(data))})
	p.cursor = uint16(off + len(data))
	return slot, nil
}

// Delete marks the slot unoccupied. Out-of-range or already-empty slots
// are ignored, so deletion is idempotent. Payload bytes stay in place,
// dead, until the next Compact.
func (p *Page) Delete(slot int) {
	if slot < 0 || slot >= MaxSlots {
		return
	}
	if !p.getSlot(slot).Occupied {
		return
	}
	p.putSlot(slot, Slot{Offset: InvalidValue, Length: InvalidValue})
}

// Compact squeezes dead bytes out: live payloads end up contiguous from
// DirSize in slot-index order, slot offsets updated, cursor rewound.
// Slot indexes and record contents never change. A payload shifting down
// may overlap its old range; copy handles that like memmove.
func (p *Page) Compact() {
	next := uint16(DirSize)
	for i := 0; i < MaxSlots; i++ {
		s := p.getSlot(i)
		if !s.Occupied {
			continue
		}
		if s.Offset != next {
			copy(p.Buf[next:next+s.Length], p.Buf[s.Offset:s.Offset+s.Length])
			s.Offset = next
			p.putSlot(i, s)
		}
		next += s.Length
	}
	p.cursor = next
}

// Payload returns the occupied slot's byte range as a view into the page
// buffer, not a copy.
func (p *Page) Payload(slot int) ([]byte, error) {
	if slot < 0 || slot >= MaxSlots {
		return nil, ErrBadSlot
	}
	s := p.getSlot(slot)
	if !s.Occupied {
		return nil, ErrBadSlot
	}
	return p.Buf[s.Offset : s.Offset+s.Length], nil
}

// ReadRecord deserializes the record stored in the given slot.
func (p *Page) ReadRecord(slot int) (record.Record, error) {
	data, err := p.Payload(slot)
	if err != nil {
		return record.Record{}, err
	}
	return record.Deserialize(data)
}
