package journal

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/orbdiff/usnjournal/internal/usnapi"
)

// RawRecord is a version-normalised journal record: the union of what
// USN_RECORD_V2/V3/V4 all provide, before parent-id resolution or
// filtering. Producing this shape is JournalReader's whole job; turning it
// into a NormalisedEntry is Ingestor's.
type RawRecord struct {
	Version  int
	FileID   FileIdKey
	ParentID FileIdKey
	USN      uint64
	Name     string
	Reason   uint32
	// Ticks is the UTC FILETIME tick count from the record, or 0 for a v4
	// record (which carries no timestamp).
	Ticks int64
}

// volumeDevice abstracts the OS-specific journal I/O so the record-walking
// logic below can be exercised with synthetic buffers on any platform.
// reader_windows.go and reader_other.go each provide one implementation.
type volumeDevice interface {
	queryJournal() (journalID uint64, firstUSN uint64, err error)
	// readJournal issues one FSCTL_READ_USN_JOURNAL call starting at
	// startUSN and returns the raw response buffer (next-USN header plus
	// records), or an empty buffer once the journal is drained for now.
	readJournal(startUSN uint64) ([]byte, error)
	// pathResolver returns the PathResolver that resolves file ids against
	// this same open volume.
	pathResolver() PathResolver
	close() error
}

// PathResolver returns the resolver Ingestor should hand to PathCache for
// this run's volume.
func (r *JournalReader) PathResolver() PathResolver { return r.dev.pathResolver() }

// JournalReader owns the volume device and the journal cursor for one run.
// It is not safe for concurrent use — per spec.md §5 the ingestion pipeline
// is single-reader, single-writer.
type JournalReader struct {
	dev   volumeDevice
	state JournalState
}

// OpenJournal opens volume (e.g. "C:"), queries its USN journal, and
// initialises the read cursor at the journal's first USN.
func OpenJournal(volume string) (*JournalReader, error) {
	dev, err := openVolumeDevice(volume)
	if err != nil {
		return nil, err
	}
	journalID, firstUSN, err := dev.queryJournal()
	if err != nil {
		dev.close()
		return nil, err
	}
	return &JournalReader{
		dev: dev,
		state: JournalState{
			FirstUSN:  firstUSN,
			JournalID: journalID,
			CursorUSN: firstUSN,
		},
	}, nil
}

// State returns a copy of the reader's current journal snapshot.
func (r *JournalReader) State() JournalState { return r.state }

// NextBatch issues one journal read and returns the records it decoded.
// ok is false once the journal reports no further records are available
// right now (a header-only response) — this is the normal end-of-run
// signal, not an error. A non-nil error means the underlying device call
// failed (ErrIoctlFailed-class); the caller should stop the ingestion loop
// but keep whatever was collected so far.
func (r *JournalReader) NextBatch() (records []RawRecord, ok bool, err error) {
	buf, err := r.dev.readJournal(r.state.CursorUSN)
	if err != nil {
		return nil, false, err
	}
	if len(buf) <= 8 {
		return nil, false, nil
	}
	r.state.CursorUSN = binary.LittleEndian.Uint64(buf[:8])
	return decodeBatch(buf[8:]), true, nil
}

// Close releases the volume device.
func (r *JournalReader) Close() error { return r.dev.close() }

// decodeBatch walks the variable-length records in buf. A record length of
// zero terminates the batch; a record whose declared length runs past the
// end of buf is dropped along with everything after it, since the buffer is
// truncated mid-record.
func decodeBatch(buf []byte) []RawRecord {
	var out []RawRecord
	offset := 0
	for offset+usnapi.OffMinorVersion+2 <= len(buf) {
		recLen := int(binary.LittleEndian.Uint32(buf[offset+usnapi.OffRecordLength:]))
		if recLen <= 0 || offset+recLen > len(buf) {
			break
		}
		major := binary.LittleEndian.Uint16(buf[offset+usnapi.OffMajorVersion:])
		rec := buf[offset : offset+recLen]
		if raw, ok := decodeRecord(rec, major); ok {
			out = append(out, raw)
		}
		offset += recLen
	}
	return out
}

func decodeRecord(rec []byte, major uint16) (RawRecord, bool) {
	switch major {
	case 2:
		return decodeV2(rec)
	case 3:
		return decodeV3(rec)
	case 4:
		return decodeV4(rec)
	default:
		return RawRecord{}, false
	}
}

func decodeV2(rec []byte) (RawRecord, bool) {
	if len(rec) < usnapi.V2MinLength {
		return RawRecord{}, false
	}
	fileRef := binary.LittleEndian.Uint64(rec[usnapi.V2OffFileReferenceNumber:])
	parentRef := binary.LittleEndian.Uint64(rec[usnapi.V2OffParentFileReferenceNumber:])
	usn := binary.LittleEndian.Uint64(rec[usnapi.V2OffUsn:])
	ticks := int64(binary.LittleEndian.Uint64(rec[usnapi.V2OffTimeStamp:]))
	reason := binary.LittleEndian.Uint32(rec[usnapi.V2OffReason:])
	nameLen := int(binary.LittleEndian.Uint16(rec[usnapi.V2OffFileNameLength:]))
	nameOff := int(binary.LittleEndian.Uint16(rec[usnapi.V2OffFileNameOffset:]))
	name, ok := decodeName(rec, nameOff, nameLen)
	if !ok {
		return RawRecord{}, false
	}
	return RawRecord{
		Version:  2,
		FileID:   FileID64(fileRef),
		ParentID: FileID64(parentRef),
		USN:      usn,
		Name:     name,
		Reason:   reason,
		Ticks:    ticks,
	}, true
}

func decodeV3(rec []byte) (RawRecord, bool) {
	if len(rec) < usnapi.V3MinLength {
		return RawRecord{}, false
	}
	fileLo := binary.LittleEndian.Uint64(rec[usnapi.V3OffFileReferenceNumber:])
	fileHi := binary.LittleEndian.Uint64(rec[usnapi.V3OffFileReferenceNumber+8:])
	parentLo := binary.LittleEndian.Uint64(rec[usnapi.V3OffParentFileReferenceNumber:])
	parentHi := binary.LittleEndian.Uint64(rec[usnapi.V3OffParentFileReferenceNumber+8:])
	usn := binary.LittleEndian.Uint64(rec[usnapi.V3OffUsn:])
	ticks := int64(binary.LittleEndian.Uint64(rec[usnapi.V3OffTimeStamp:]))
	reason := binary.LittleEndian.Uint32(rec[usnapi.V3OffReason:])
	nameLen := int(binary.LittleEndian.Uint16(rec[usnapi.V3OffFileNameLength:]))
	nameOff := int(binary.LittleEndian.Uint16(rec[usnapi.V3OffFileNameOffset:]))
	name, ok := decodeName(rec, nameOff, nameLen)
	if !ok {
		return RawRecord{}, false
	}
	return RawRecord{
		Version:  3,
		FileID:   FileID128(fileLo, fileHi),
		ParentID: FileID128(parentLo, parentHi),
		USN:      usn,
		Name:     name,
		Reason:   reason,
		Ticks:    ticks,
	}, true
}

func decodeV4(rec []byte) (RawRecord, bool) {
	if len(rec) < usnapi.V4MinLength {
		return RawRecord{}, false
	}
	fileLo := binary.LittleEndian.Uint64(rec[usnapi.V4OffFileReferenceNumber:])
	fileHi := binary.LittleEndian.Uint64(rec[usnapi.V4OffFileReferenceNumber+8:])
	usn := binary.LittleEndian.Uint64(rec[usnapi.V4OffUsn:])
	reason := binary.LittleEndian.Uint32(rec[usnapi.V4OffReason:])
	id := FileID128(fileLo, fileHi)
	// V4 carries no separate parent reference worth resolving and no inline
	// name or timestamp; its own file reference doubles as the "parent" for
	// directory resolution, matching the original tool's behaviour.
	return RawRecord{
		Version:  4,
		FileID:   id,
		ParentID: id,
		USN:      usn,
		Name:     usnapi.NameRequiresLookup,
		Reason:   reason,
		Ticks:    0,
	}, true
}

func decodeName(rec []byte, off, length int) (string, bool) {
	if off < 0 || length < 0 || off+length > len(rec) {
		return "", false
	}
	n := length / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = binary.LittleEndian.Uint16(rec[off+2*i:])
	}
	return string(utf16.Decode(units)), true
}
