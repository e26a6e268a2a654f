package storage

import "log/slog"

// PageTable maps a page id to its Page, creating pages lazily. It owns
// every page it hands out for the life of the process; callers share the
// returned pointers. No locking: the table assumes a single actor, as do
// the pages themselves.
type PageTable struct {
	pages map[uint16]*Page
}

func NewPageTable() *PageTable {
	return &PageTable{pages: make(map[uint16]*Page)}
}

// Load returns the page for id, creating a fresh empty page on first
// reference. Every later Load of the same id returns the same page.
func (t *PageTable) Load(id uint16) *Page {
	p, ok := t.pages[id]
	if !ok {
		p = NewPage()
		t.pages[id] = p
		slog.Debug("pagetable: created page", "id", id)
	}
	return p
}

// Len reports how many pages have been created so far.
func (t *PageTable) Len() int {
	return len(t.pages)
}
