package journal

import "time"

// NormalisedEntry is the unit of ingestion: one journal record after
// version-specific decoding, parent-id resolution, and filtering. Entries
// are appended to the entry log in strict USN order and never mutated
// afterward.
type NormalisedEntry struct {
	FileID    FileIdKey
	USN       uint64
	Name      string
	Timestamp time.Time
	Reasons   string
	ReasonSet ReasonSet
	Directory string
}

// FileEvent is the compact form an entry takes inside an Aggregation. It
// carries no FileID, since the enclosing Aggregation already identifies the
// file all of its events share.
type FileEvent struct {
	Timestamp time.Time
	Reasons   string
	ReasonSet ReasonSet
	Name      string
	Directory string
}

// Aggregation is the time-ordered event timeline for a single file id. Name
// and Directory mirror the last event by timestamp.
type Aggregation struct {
	FileID    FileIdKey
	Name      string
	Directory string
	Events    []FileEvent
}

// JournalState is the opaque snapshot obtained at Open: the journal's
// identity and the cursor USN the next read should start from.
type JournalState struct {
	FirstUSN  uint64
	JournalID uint64
	CursorUSN uint64
}
