package journal

import (
	"testing"
	"time"
)

func entryAt(name, dir string, ts time.Time) NormalisedEntry {
	return NormalisedEntry{FileID: FileID64(1), Name: name, Directory: dir, Timestamp: ts, Reasons: "File Create"}
}

func TestFilterPipelineEmptyMeansNoConstraint(t *testing.T) {
	f := NewFilterPipeline(FilterOptions{})
	if !f.Match(entryAt("a.txt", `C:\tmp`, time.Now())) {
		t.Fatal("empty FilterPipeline should admit every entry")
	}
}

func TestFilterPipelineNamesOr(t *testing.T) {
	f := NewFilterPipeline(FilterOptions{Names: []string{"foo", "bar"}})
	if !f.Match(entryAt("somebar.txt", `C:\`, time.Now())) {
		t.Error("expected substring match on 'bar'")
	}
	if f.Match(entryAt("baz.txt", `C:\`, time.Now())) {
		t.Error("did not expect a match for unrelated name")
	}
}

func TestFilterPipelineAfterDateStrict(t *testing.T) {
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFilterPipeline(FilterOptions{AfterDate: cutoff})
	if !f.Match(entryAt("a", "C:\\", cutoff)) {
		t.Error("entry exactly at cutoff should pass: only strictly-earlier entries are dropped")
	}
	if f.Match(entryAt("a", "C:\\", cutoff.Add(-time.Second))) {
		t.Error("entry strictly before cutoff should be dropped")
	}
}

func TestFilterPipelinePathNonRecursiveBoundary(t *testing.T) {
	f := NewFilterPipeline(FilterOptions{Paths: []string{`C:\Users\bob`}})

	if !f.Match(entryAt("a", `C:\Users\bob`, time.Now())) {
		t.Error("exact directory match should pass")
	}
	if !f.Match(entryAt("a", `C:\Users\bob\Documents`, time.Now())) {
		t.Error("direct child directory should pass")
	}
	if f.Match(entryAt("a", `C:\Users\bobby`, time.Now())) {
		t.Error("a sibling whose name merely shares the prefix must not pass")
	}
}

func TestFilterPipelinePathRecursive(t *testing.T) {
	f := NewFilterPipeline(FilterOptions{Paths: []string{`Documents`}, Recursive: true})
	if !f.Match(entryAt("a", `C:\Users\bob\Documents\Deep\Nested`, time.Now())) {
		t.Error("recursive path filter should match anywhere below")
	}
}

func TestFilterPipelineAndAcrossDimensions(t *testing.T) {
	f := NewFilterPipeline(FilterOptions{Names: []string{"a"}, Reasons: []string{"Close"}})
	e := entryAt("a.txt", `C:\`, time.Now())
	e.Reasons = "File Create"
	if f.Match(e) {
		t.Error("entry matching only one dimension should be excluded (AND across dimensions)")
	}
}
