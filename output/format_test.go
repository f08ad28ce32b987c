package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestReplaceRowsCSVRepeatsTypeInTwoColumns(t *testing.T) {
	rows := replaceRows{{
		Name: "a.txt", Directory: `C:\tmp`, FileID: "5", ReplaceType: "Copy",
		Events: []replaceEventRecord{{Date: "2026-01-01 00:00:00", Reason: "Data Truncation", Directory: `C:\tmp`}},
	}}
	var buf bytes.Buffer
	if err := rows.writeCSV(&buf); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, ",Copy,") || !strings.Contains(out, "Copy: Data Truncation") {
		t.Errorf("expected replace type in both its own column and the reason column, got %q", out)
	}
}

func TestEntryRowsJSONHasFileIDField(t *testing.T) {
	rows := entryRows{{Name: "a.txt", Directory: `C:\tmp`, FileID: "1", USN: 10, Date: "2026-01-01 00:00:00", Reason: "File Create"}}
	var buf bytes.Buffer
	if err := rows.writeJSON(&buf); err != nil {
		t.Fatalf("writeJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"file_id": "1"`) {
		t.Errorf("expected file_id field in JSON output, got %q", buf.String())
	}
}
