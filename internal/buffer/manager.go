// Package buffer sits above the page table and moves records between
// pages. It assumes the same single-actor model as the storage layer.
package buffer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tuannm99/pagestore/internal/storage"
)

type Manager struct {
	table *storage.PageTable
}

func NewManager(table *storage.PageTable) *Manager {
	return &Manager{table: table}
}

// PageTable exposes the table for callers that need direct page access.
func (m *Manager) PageTable() *storage.PageTable {
	return m.table
}

// MoveAll migrates every occupied record from page fromID to page toID,
// in source slot order. Each record lands at the destination's cursor in
// the destination's first unoccupied slot, so destination indexes need
// not match source indexes.
//
// Migration is not transactional. If the destination runs out of space
// or slots mid-loop, MoveAll stops and returns an error, and the records
// moved so far stay moved: callers must treat a failure as "some prefix
// of the records migrated", never retry expecting all-or-nothing. The
// source page is compacted before returning on both paths, reclaiming
// whatever bytes the move vacated.
//
// Moving a page onto itself is a no-op: the page already holds all of
// its own records, so MoveAll returns nil without touching it.
func (m *Manager) MoveAll(fromID, toID uint16) error {
	if fromID == toID {
		return nil
	}
	from := m.table.Load(fromID)
	to := m.table.Load(toID)

	slog.Debug("buffer: migrating records", "from", fromID, "to", toID, "count", from.NumRecords())

	for i := 0; i < storage.MaxSlots; i++ {
		data, err := from.Payload(i)
		if errors.Is(err, storage.ErrBadSlot) {
			continue // unoccupied slot
		}
		if _, err := to.AppendPayload(data); err != nil {
			from.Compact()
			slog.Warn("buffer: migration aborted", "from", fromID, "to", toID, "slot", i, "err", err)
			return fmt.Errorf("move page %d to page %d at slot %d: %w", fromID, toID, i, err)
		}
		from.Delete(i)
	}

	from.Compact()
	slog.Debug("buffer: migration done", "from", fromID, "to", toID)
	return nil
}
