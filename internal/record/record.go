package record

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is an ordered sequence of integer fields. Records are plain
// values: copy and pass them around freely, nothing is shared.
type Record struct {
	Fields []int
}

func New(fields ...int) Record {
	return Record{Fields: fields}
}

// Serialize renders each field as decimal text followed by a single
// space. The trailing separator is part of the encoding.
func (r Record) Serialize() []byte {
	b := make([]byte, 0, r.StorageSize())
	for _, f := range r.Fields {
		b = strconv.AppendInt(b, int64(f), 10)
		b = append(b, ' ')
	}
	return b
}

// StorageSize is the exact byte footprint Serialize produces. Pages use
// it for both allocation and copy, so the two can never disagree.
func (r Record) StorageSize() int {
	n := 0
	for _, f := range r.Fields {
		n += len(strconv.Itoa(f)) + 1
	}
	return n
}

// Deserialize parses whitespace-separated decimal tokens until the input
// is exhausted. It is the exact left inverse of Serialize.
func Deserialize(b []byte) (Record, error) {
	var r Record
	for _, tok := range strings.Fields(string(b)) {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return Record{}, fmt.Errorf("record: bad field %q: %w", tok, err)
		}
		r.Fields = append(r.Fields, v)
	}
	return r, nil
}

func (r Record) String() string {
	return string(r.Serialize())
}
