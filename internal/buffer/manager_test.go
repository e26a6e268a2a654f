package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/pagestore/internal/record"
	"github.com/tuannm99/pagestore/internal/storage"
)

// fillTo grows the page until exactly n payload bytes are used.
func fillTo(t *testing.T, p *storage.Page, n int) {
	t.Helper()
	var fields []int
	if n%2 != 0 {
		fields = append(fields, 99) // "99 " = 3 bytes
		n -= 3
	}
	for ; n > 0; n -= 2 {
		fields = append(fields, 9) // "9 " = 2 bytes
	}
	_, err := p.Insert(record.New(fields...))
	require.NoError(t, err)
}

func TestMoveAllSuccess(t *testing.T) {
	mgr := NewManager(storage.NewPageTable())
	from := mgr.PageTable().Load(0)
	to := mgr.PageTable().Load(1)

	_, err := from.Insert(record.New(1))
	require.NoError(t, err)
	_, err = from.Insert(record.New(2, 3))
	require.NoError(t, err)
	_, err = to.Insert(record.New(7))
	require.NoError(t, err)

	require.NoError(t, mgr.MoveAll(0, 1))

	// source fully drained and reclaimed
	assert.Equal(t, 0, from.NumRecords())
	assert.Equal(t, uint16(storage.DirSize), from.Cursor())

	// destination holds the union, movers in its first free slots
	assert.Equal(t, 3, to.NumRecords())
	for slot, want := range map[int][]int{0: {7}, 1: {1}, 2: {2, 3}} {
		got, err := to.ReadRecord(slot)
		require.NoError(t, err)
		assert.Equal(t, want, got.Fields)
	}
}

func TestMoveAllEmptySource(t *testing.T) {
	mgr := NewManager(storage.NewPageTable())
	to := mgr.PageTable().Load(1)
	_, err := to.Insert(record.New(5))
	require.NoError(t, err)
	before := to.DumpString()

	require.NoError(t, mgr.MoveAll(0, 1))
	assert.Equal(t, before, to.DumpString())
}

func TestMoveAllSamePage(t *testing.T) {
	mgr := NewManager(storage.NewPageTable())
	p := mgr.PageTable().Load(3)
	_, err := p.Insert(record.New(1, 2))
	require.NoError(t, err)

	require.NoError(t, mgr.MoveAll(3, 3))
	assert.Equal(t, 1, p.NumRecords())
	assert.Equal(t, "Slot 0: 1 2 \n", p.DumpString())
}

func TestMoveAllPartialOnFullDestination(t *testing.T) {
	mgr := NewManager(storage.NewPageTable())
	from := mgr.PageTable().Load(0)
	to := mgr.PageTable().Load(1)

	// leave 13 usable bytes in the destination (appends must end strictly
	// before PageSize)
	fillTo(t, to, storage.PageSize-storage.DirSize-14)

	_, err := from.Insert(record.New(1, 2, 3)) // "1 2 3 " = 6 bytes, fits
	require.NoError(t, err)
	r2 := record.New(111, 222, 333, 444) // 16 bytes, does not fit
	slot2, err := from.Insert(r2)
	require.NoError(t, err)

	err = mgr.MoveAll(0, 1)
	require.ErrorIs(t, err, storage.ErrNoSpace)

	// the first record migrated and stays migrated
	assert.Equal(t, 2, to.NumRecords())
	got, err := to.ReadRecord(1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got.Fields)

	// the source kept only the second record, compacted
	assert.Equal(t, 1, from.NumRecords())
	got, err = from.ReadRecord(slot2)
	require.NoError(t, err)
	assert.Equal(t, r2.Fields, got.Fields)
	assert.Equal(t, uint16(storage.DirSize+r2.StorageSize()), from.Cursor())
}

func TestMoveAllNoFreeDestinationSlot(t *testing.T) {
	mgr := NewManager(storage.NewPageTable())
	from := mgr.PageTable().Load(0)
	to := mgr.PageTable().Load(1)

	// exhaust the destination directory with zero-length records
	for i := 0; i < storage.MaxSlots; i++ {
		_, err := to.Insert(record.New())
		require.NoError(t, err)
	}
	_, err := from.Insert(record.New(10))
	require.NoError(t, err)

	err = mgr.MoveAll(0, 1)
	require.ErrorIs(t, err, storage.ErrNoFreeSlot)

	// nothing migrated; the source keeps its record, compacted in place
	assert.Equal(t, 1, from.NumRecords())
	got, err := from.ReadRecord(0)
	require.NoError(t, err)
	assert.Equal(t, []int{10}, got.Fields)
}
