package storage

import "errors"

const (
	PageSize = 4096 // fixed page buffer size in bytes
	MaxSlots = 512  // slot directory entries per page
	SlotSize = 6    // 6 (3 * uint16: occupancy, offset, length)

	// DirSize is the static slot directory footprint at the head of every
	// page; payloads are appended from this offset upward.
	DirSize = MaxSlots * SlotSize
)

// InvalidValue marks an unoccupied slot's offset and length.
const InvalidValue = ^uint16(0)

var (
	ErrNoSpace    = errors.New("page: not enough free space")
	ErrNoFreeSlot = errors.New("page: slot directory full")
	ErrBadSlot    = errors.New("page: invalid slot")
)
