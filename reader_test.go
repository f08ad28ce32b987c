package journal

import (
	"encoding/binary"
	"testing"
	"time"
	"unicode/utf16"

	"github.com/orbdiff/usnjournal/internal/clock"
	"github.com/orbdiff/usnjournal/internal/usnapi"
)

// TestDecodeBatchEmpty covers scenario S1: an empty record area, which is
// what a header-only response leaves after its 8-byte next-USN, decodes to
// nothing.
func TestDecodeBatchEmpty(t *testing.T) {
	if got := decodeBatch(nil); got != nil {
		t.Fatalf("decodeBatch(nil) = %+v, want nil", got)
	}
}

// buildV2Record assembles one synthetic USN_RECORD_V2 with the given field
// values, for scenario S2 and related decode tests.
func buildV2Record(fileID, parentID, usn uint64, ticks int64, reason uint32, name string) []byte {
	units := utf16.Encode([]rune(name))
	nameBytes := len(units) * 2
	recLen := usnapi.V2MinLength + nameBytes
	buf := make([]byte, recLen)

	binary.LittleEndian.PutUint32(buf[usnapi.OffRecordLength:], uint32(recLen))
	binary.LittleEndian.PutUint16(buf[usnapi.OffMajorVersion:], 2)
	binary.LittleEndian.PutUint16(buf[usnapi.OffMinorVersion:], 0)
	binary.LittleEndian.PutUint64(buf[usnapi.V2OffFileReferenceNumber:], fileID)
	binary.LittleEndian.PutUint64(buf[usnapi.V2OffParentFileReferenceNumber:], parentID)
	binary.LittleEndian.PutUint64(buf[usnapi.V2OffUsn:], usn)
	binary.LittleEndian.PutUint64(buf[usnapi.V2OffTimeStamp:], uint64(ticks))
	binary.LittleEndian.PutUint32(buf[usnapi.V2OffReason:], reason)
	binary.LittleEndian.PutUint16(buf[usnapi.V2OffFileNameLength:], uint16(nameBytes))
	binary.LittleEndian.PutUint16(buf[usnapi.V2OffFileNameOffset:], uint16(usnapi.V2MinLength))
	for i, u := range units {
		binary.LittleEndian.PutUint16(buf[usnapi.V2MinLength+2*i:], u)
	}
	return buf
}

// TestDecodeBatchSingleV2Record covers scenario S2: one V2 record decodes
// with every field matching exactly what was written.
func TestDecodeBatchSingleV2Record(t *testing.T) {
	when := clock.ToUTCTicks(parseTestTime(t, "2026-03-01 10:00:00"))
	rec := buildV2Record(100, 50, 12345, when, uint32(ReasonFileCreate), "hello.txt")

	got := decodeBatch(rec)
	if len(got) != 1 {
		t.Fatalf("expected 1 decoded record, got %d", len(got))
	}
	r := got[0]
	if r.Version != 2 {
		t.Errorf("Version = %d, want 2", r.Version)
	}
	if id, ok := r.FileID.Uint64(); !ok || id != 100 {
		t.Errorf("FileID = %v (ok=%v), want 100", id, ok)
	}
	if id, ok := r.ParentID.Uint64(); !ok || id != 50 {
		t.Errorf("ParentID = %v (ok=%v), want 50", id, ok)
	}
	if r.USN != 12345 {
		t.Errorf("USN = %d, want 12345", r.USN)
	}
	if r.Name != "hello.txt" {
		t.Errorf("Name = %q, want %q", r.Name, "hello.txt")
	}
	if r.Reason != uint32(ReasonFileCreate) {
		t.Errorf("Reason = %#x, want %#x", r.Reason, uint32(ReasonFileCreate))
	}
	if r.Ticks != when {
		t.Errorf("Ticks = %d, want %d", r.Ticks, when)
	}
}

func TestDecodeBatchZeroLengthTerminates(t *testing.T) {
	rec := buildV2Record(1, 1, 1, 0, uint32(ReasonFileCreate), "a")
	buf := append(rec, make([]byte, 8)...) // trailing zero-length terminator
	got := decodeBatch(buf)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 record before the terminator, got %d", len(got))
	}
}

func TestDecodeV4HasNoNameOrTimestamp(t *testing.T) {
	buf := make([]byte, usnapi.V4MinLength)
	binary.LittleEndian.PutUint32(buf[usnapi.OffRecordLength:], uint32(usnapi.V4MinLength))
	binary.LittleEndian.PutUint16(buf[usnapi.OffMajorVersion:], 4)
	binary.LittleEndian.PutUint64(buf[usnapi.V4OffFileReferenceNumber:], 7)
	binary.LittleEndian.PutUint64(buf[usnapi.V4OffFileReferenceNumber+8:], 9)
	binary.LittleEndian.PutUint64(buf[usnapi.V4OffUsn:], 42)
	binary.LittleEndian.PutUint32(buf[usnapi.V4OffReason:], uint32(ReasonFileCreate))

	got := decodeBatch(buf)
	if len(got) != 1 {
		t.Fatalf("expected 1 decoded v4 record, got %d", len(got))
	}
	r := got[0]
	if r.Name != usnapi.NameRequiresLookup {
		t.Errorf("Name = %q, want %q", r.Name, usnapi.NameRequiresLookup)
	}
	if r.Ticks != 0 {
		t.Errorf("Ticks = %d, want 0 (v4 carries no timestamp)", r.Ticks)
	}
	if r.FileID != r.ParentID {
		t.Error("v4's own file reference must double as its parent id")
	}
}

func parseTestTime(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		t.Fatalf("parse test time %q: %v", s, err)
	}
	return parsed
}
