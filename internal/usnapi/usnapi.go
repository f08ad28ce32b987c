// Package usnapi holds the USN journal wire constants this repository
// depends on: the FSCTL control codes, and the record-header layout shared
// by USN_RECORD_V2/V3/V4. Values are taken from winioctl.h.
//
// https://learn.microsoft.com/en-us/windows/win32/api/winioctl/ni-winioctl-fsctl_query_usn_journal
// https://learn.microsoft.com/en-us/windows/win32/api/winioctl/ni-winioctl-fsctl_read_usn_journal
package usnapi

const (
	FSCTLQueryUSNJournal = 0x000900F4
	FSCTLReadUSNJournal  = 0x000900BB

	// ReadBufferSize is the size of the single heap buffer the reader
	// allocates once at Open and reuses for every subsequent read.
	ReadBufferSize = 32 * 1024 * 1024

	// AllReasonsMask requests every reason flag the journal can report; the
	// FilterPipeline, not the device read, decides what survives.
	AllReasonsMask = 0xFFFFFFFF
)

// Record header field offsets common to V2, V3 and V4 (the per-version
// field offsets follow below).
const (
	OffRecordLength = 0
	OffMajorVersion = 4
	OffMinorVersion = 6
)

// USN_RECORD_V2 field offsets (64-bit ids).
// https://learn.microsoft.com/en-us/windows/win32/api/winioctl/ns-winioctl-usn_record_v2
const (
	V2OffFileReferenceNumber       = 8
	V2OffParentFileReferenceNumber = 16
	V2OffUsn                       = 24
	V2OffTimeStamp                 = 32
	V2OffReason                    = 40
	V2OffFileNameLength            = 56
	V2OffFileNameOffset            = 58
	V2MinLength                    = 60
)

// USN_RECORD_V3 field offsets (128-bit FILE_ID_128 ids).
// https://learn.microsoft.com/en-us/windows/win32/api/winioctl/ns-winioctl-usn_record_v3
const (
	V3OffFileReferenceNumber       = 8
	V3OffParentFileReferenceNumber = 24
	V3OffUsn                       = 40
	V3OffTimeStamp                 = 48
	V3OffReason                    = 56
	V3OffFileNameLength            = 72
	V3OffFileNameOffset            = 74
	V3MinLength                    = 76
)

// USN_RECORD_V4 field offsets. V4 has no inline name and no separate parent
// reference worth resolving on its own — per spec, its own
// FileReferenceNumber doubles as the id used for directory resolution.
// https://learn.microsoft.com/en-us/windows/win32/api/winioctl/ns-winioctl-usn_record_v4
const (
	V4OffFileReferenceNumber = 8
	V4OffUsn                 = 40
	V4OffReason              = 48
	V4MinLength              = 52
)

// NameRequiresLookup is emitted for V4 records, which never carry an inline
// name.
const NameRequiresLookup = "[Requires lookup]"
