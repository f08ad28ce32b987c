package journal

import (
	"testing"
)

type fakeDevice struct {
	batches [][]byte
	next    int
	closed  bool
}

func (d *fakeDevice) queryJournal() (uint64, uint64, error) { return 1, 0, nil }

func (d *fakeDevice) readJournal(startUSN uint64) ([]byte, error) {
	if d.next >= len(d.batches) {
		return nil, nil
	}
	b := d.batches[d.next]
	d.next++
	return b, nil
}

func (d *fakeDevice) pathResolver() PathResolver { return &stubResolver{paths: map[FileIdKey]string{}} }

func (d *fakeDevice) close() error {
	d.closed = true
	return nil
}

func TestIngestorRunDrainsAllBatches(t *testing.T) {
	rec := buildV2Record(1, 0, 10, 0, uint32(ReasonFileCreate), "a.txt")
	header := make([]byte, 8)
	batch1 := append(header, rec...)

	dev := &fakeDevice{batches: [][]byte{batch1}}
	reader := &JournalReader{dev: dev}

	cache := NewPathCache(dev.pathResolver())
	ing := NewIngestor(cache, nil)
	ing.Run(reader)

	entries := ing.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Name != "a.txt" {
		t.Errorf("Name = %q, want %q", entries[0].Name, "a.txt")
	}
}

func TestIngestorRunStopsOnEmptyBatch(t *testing.T) {
	dev := &fakeDevice{batches: nil}
	reader := &JournalReader{dev: dev}
	cache := NewPathCache(dev.pathResolver())
	ing := NewIngestor(cache, nil)
	ing.Run(reader)

	if len(ing.Entries()) != 0 {
		t.Fatalf("expected no entries from an empty journal, got %d", len(ing.Entries()))
	}
}
