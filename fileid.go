package journal

import (
	"encoding/binary"
	"strconv"
)

// FileIdKey is the sum-typed identifier used to key the path cache and the
// per-file aggregations. Legacy volumes identify files with a 64-bit file
// reference number; modern volumes use a 128-bit id. The two variants never
// compare equal to each other, even when their payload bits coincide, since
// the variant tag is one of the fields struct equality compares.
//
// FileIdKey is a plain comparable struct, so it works as a map key directly
// — Go's built-in struct equality already gives us the tagged-variant
// semantics a hand-written hash/equality pair would in a language without
// structural map keys.
type FileIdKey struct {
	wide bool
	lo   uint64
	hi   uint64
}

// FileID64 builds a FileIdKey from a 64-bit file reference number.
func FileID64(id uint64) FileIdKey { return FileIdKey{lo: id} }

// FileID128 builds a FileIdKey from a 128-bit file reference number.
func FileID128(lo, hi uint64) FileIdKey { return FileIdKey{wide: true, lo: lo, hi: hi} }

// Wide reports whether this key holds a 128-bit identifier.
func (k FileIdKey) Wide() bool { return k.wide }

// Uint64 returns the payload for a 64-bit key; ok is false for a 128-bit key.
func (k FileIdKey) Uint64() (id uint64, ok bool) {
	if k.wide {
		return 0, false
	}
	return k.lo, true
}

// halves returns the raw 64-bit words backing the key, regardless of
// variant. Used only by the Windows OpenFileById call, which needs the
// bytes either way.
func (k FileIdKey) halves() (lo, hi uint64) { return k.lo, k.hi }

// String renders the key the way FileIdToString does for filtering and
// display: decimal for a 64-bit id, or the raw 16 bytes of a 128-bit id
// reinterpreted as a string. The 128-bit form is not required to be
// printable — it exists only for substring matching (-i) and for embedding
// in output records.
func (k FileIdKey) String() string {
	if !k.wide {
		return strconv.FormatUint(k.lo, 10)
	}
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint64(buf[:8], k.lo)
	binary.LittleEndian.PutUint64(buf[8:], k.hi)
	return string(buf)
}
