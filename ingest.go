package journal

import (
	"sync"

	"github.com/orbdiff/usnjournal/internal/clock"
)

// Ingestor drives a JournalReader to exhaustion, resolving each record's
// parent id through a PathCache and admitting it through a FilterPipeline.
// Surviving entries accumulate in a single in-memory log guarded by
// entriesMu; the log itself is the only state shared across the run.
type Ingestor struct {
	cache  *PathCache
	filter *FilterPipeline

	entriesMu sync.Mutex
	entries   []NormalisedEntry
}

// NewIngestor builds an Ingestor over cache and filter. Passing a nil filter
// admits every record.
func NewIngestor(cache *PathCache, filter *FilterPipeline) *Ingestor {
	return &Ingestor{cache: cache, filter: filter}
}

// Run drains reader one batch at a time until it signals completion or a
// read fails. A read failure (ErrIoctlFailed-class) ends the loop but is not
// itself returned: whatever was collected before the failure is kept, per
// spec's "terminate gracefully" policy for mid-run ioctl failures.
func (ing *Ingestor) Run(reader *JournalReader) {
	for {
		batch, ok, err := reader.NextBatch()
		if err != nil || !ok {
			return
		}
		for _, raw := range batch {
			ing.admit(raw)
		}
	}
}

func (ing *Ingestor) admit(raw RawRecord) {
	dir := ing.cache.Resolve(raw.ParentID)
	entry := NormalisedEntry{
		FileID:    raw.FileID,
		USN:       raw.USN,
		Name:      raw.Name,
		Timestamp: clock.FromUTCTicks(raw.Ticks),
		Reasons:   DecodeReasons(raw.Reason),
		ReasonSet: NewReasonSet(raw.Reason),
		Directory: dir,
	}

	if ing.filter != nil && !ing.filter.Match(entry) {
		return
	}

	ing.entriesMu.Lock()
	ing.entries = append(ing.entries, entry)
	ing.entriesMu.Unlock()
}

// Entries returns a snapshot copy of the entry log collected so far. Callers
// never see the Ingestor's internal slice, so they can range over the
// result without holding entriesMu.
func (ing *Ingestor) Entries() []NormalisedEntry {
	ing.entriesMu.Lock()
	defer ing.entriesMu.Unlock()
	out := make([]NormalisedEntry, len(ing.entries))
	copy(out, ing.entries)
	return out
}
