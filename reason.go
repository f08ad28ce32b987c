package journal

import "strings"

// ReasonFlag is a single USN change-reason bit, using the real values
// defined by winioctl.h so a mask read straight off the wire needs no
// translation.
type ReasonFlag uint32

const (
	ReasonDataOverwrite       ReasonFlag = 0x00000001
	ReasonDataExtend          ReasonFlag = 0x00000002
	ReasonDataTruncation      ReasonFlag = 0x00000004
	ReasonNamedDataOverwrite  ReasonFlag = 0x00000010
	ReasonNamedDataExtend     ReasonFlag = 0x00000020
	ReasonNamedDataTruncation ReasonFlag = 0x00000040
	ReasonFileCreate          ReasonFlag = 0x00000100
	ReasonFileDelete          ReasonFlag = 0x00000200
	ReasonEAChange            ReasonFlag = 0x00000400
	ReasonSecurityChange      ReasonFlag = 0x00000800
	ReasonRenameOldName       ReasonFlag = 0x00001000
	ReasonRenameNewName       ReasonFlag = 0x00002000
	ReasonIndexableChange     ReasonFlag = 0x00004000
	ReasonBasicInfoChange     ReasonFlag = 0x00008000
	ReasonHardLinkChange      ReasonFlag = 0x00010000
	ReasonCompressionChange   ReasonFlag = 0x00020000
	ReasonEncryptionChange    ReasonFlag = 0x00040000
	ReasonObjectIDChange      ReasonFlag = 0x00080000
	ReasonReparsePointChange  ReasonFlag = 0x00100000
	ReasonStreamChange        ReasonFlag = 0x00200000
	ReasonTransactedChange    ReasonFlag = 0x00400000
	ReasonIntegrityChange     ReasonFlag = 0x00800000
	ReasonClose               ReasonFlag = 0x80000000
)

// reasonNames is the fixed enumeration order Decode walks. Tests rely on
// byte-equal output, so this order must never change.
var reasonNames = [...]struct {
	flag ReasonFlag
	name string
}{
	{ReasonDataOverwrite, "Data Overwrite"},
	{ReasonDataExtend, "Data Extend"},
	{ReasonDataTruncation, "Data Truncation"},
	{ReasonNamedDataOverwrite, "Named Data Overwrite"},
	{ReasonNamedDataExtend, "Named Data Extend"},
	{ReasonNamedDataTruncation, "Named Data Truncation"},
	{ReasonFileCreate, "File Create"},
	{ReasonFileDelete, "File Delete"},
	{ReasonEAChange, "EA Change"},
	{ReasonSecurityChange, "Security Change"},
	{ReasonRenameOldName, "Rename Old Name"},
	{ReasonRenameNewName, "Rename New Name"},
	{ReasonIndexableChange, "Indexable Change"},
	{ReasonBasicInfoChange, "Basic Info Change"},
	{ReasonHardLinkChange, "Hard Link Change"},
	{ReasonCompressionChange, "Compression Change"},
	{ReasonEncryptionChange, "Encryption Change"},
	{ReasonObjectIDChange, "Object ID Change"},
	{ReasonReparsePointChange, "Reparse Point Change"},
	{ReasonStreamChange, "Stream Change"},
	{ReasonTransactedChange, "Transacted Change"},
	{ReasonIntegrityChange, "Integrity Change"},
	{ReasonClose, "Close"},
}

// unresolvedReasons is emitted for an all-zero mask.
const unresolvedReasons = "?"

// DecodeReasons converts a reason bitmask into the canonical " | "-joined
// flag list, in fixed enumeration order. Unknown bits are ignored silently;
// an all-zero mask decodes to "?".
func DecodeReasons(mask uint32) string {
	var b strings.Builder
	for _, r := range reasonNames {
		if mask&uint32(r.flag) != 0 {
			if b.Len() > 0 {
				b.WriteString(" | ")
			}
			b.WriteString(r.name)
		}
	}
	if b.Len() == 0 {
		return unresolvedReasons
	}
	return b.String()
}

// ReasonSet is a bitmask of change reasons. PatternMatcher tests windows for
// required-flag containment against a ReasonSet rather than substring
// searching the canonical text, per the "duck-typed reason strings" design
// note; the canonical text form is still carried alongside for output.
type ReasonSet uint32

// NewReasonSet wraps a raw reason mask as a ReasonSet.
func NewReasonSet(mask uint32) ReasonSet { return ReasonSet(mask) }

// Has reports whether flag is present in the set.
func (s ReasonSet) Has(flag ReasonFlag) bool { return uint32(s)&uint32(flag) != 0 }

// HasAll reports whether every flag in flags is present in the set.
func (s ReasonSet) HasAll(flags ...ReasonFlag) bool {
	for _, f := range flags {
		if !s.Has(f) {
			return false
		}
	}
	return true
}
