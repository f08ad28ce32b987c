package journal

import (
	"testing"
	"time"
)

func TestAggregateGroupsByFileIDAndSortsEvents(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	entries := []NormalisedEntry{
		{FileID: FileID64(1), Timestamp: t0.Add(2 * time.Second), Name: "b.txt", Directory: `C:\a`},
		{FileID: FileID64(2), Timestamp: t0, Name: "other.txt", Directory: `C:\b`},
		{FileID: FileID64(1), Timestamp: t0, Name: "a.txt", Directory: `C:\a`},
	}

	aggs := NewAggregator().Aggregate(entries)
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregations, got %d", len(aggs))
	}

	var one Aggregation
	for _, a := range aggs {
		if a.FileID == FileID64(1) {
			one = a
		}
	}
	if len(one.Events) != 2 {
		t.Fatalf("expected 2 events for file id 1, got %d", len(one.Events))
	}
	if !one.Events[0].Timestamp.Before(one.Events[1].Timestamp) {
		t.Error("events must be sorted ascending by timestamp")
	}
	if one.Name != "b.txt" || one.Directory != `C:\a` {
		t.Errorf("aggregation name/directory should mirror the last event, got %q/%q", one.Name, one.Directory)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	aggs := NewAggregator().Aggregate(nil)
	if len(aggs) != 0 {
		t.Fatalf("expected no aggregations for an empty entry log, got %d", len(aggs))
	}
}
