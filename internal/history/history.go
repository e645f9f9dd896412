// Package history persists per-item usage state (use counts, last-used
// timestamps, pin flags) across fsel invocations. The ranking engine reads
// it; only the selection-confirmation path writes it.
package history

import "time"

// Record is the persisted usage state for one identity. The zero value
// means "never used, not pinned".
type Record struct {
	UseCount int64
	LastUsed time.Time
	Pinned   bool
}

// Store is the usage-history contract. At most one record exists per
// identity; records are created on first use (or first pin) and only
// removed by ClearAll.
type Store interface {
	// Get returns the record for identity and whether one exists.
	Get(identity string) (Record, bool)

	// RecordUse increments the use count and refreshes the last-used
	// timestamp, creating the record if needed.
	RecordUse(identity string, now time.Time) error

	// SetPinned toggles the pin flag independently of use tracking.
	SetPinned(identity string, pinned bool) error

	// ClearAll removes every record.
	ClearAll() error

	Close() error
}
