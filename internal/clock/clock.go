// Package clock converts the USN journal's UTC FILETIME tick counts into
// local wall-clock time without depending on any Windows-only API, so the
// conversion can be exercised on any GOOS.
package clock

import "time"

// windowsEpochOffset is the number of 100ns ticks between the FILETIME
// epoch (1601-01-01T00:00:00Z) and the Unix epoch (1970-01-01T00:00:00Z).
const windowsEpochOffset = 116444736000000000

// FromUTCTicks converts a UTC 100ns tick count, as carried by a USN_RECORD's
// TimeStamp field, into local wall-clock time. A zero tick count (v4 records
// carry no timestamp) maps to the Unix epoch, matching the original tool's
// "emit epoch time" behaviour for records that don't carry one.
func FromUTCTicks(ticks int64) time.Time {
	if ticks == 0 {
		return time.Unix(0, 0).Local()
	}
	unixNano := (ticks - windowsEpochOffset) * 100
	return time.Unix(0, unixNano).Local()
}

// ToUTCTicks is the inverse of FromUTCTicks, used by tests to build
// synthetic records from a wall-clock time.
func ToUTCTicks(t time.Time) int64 {
	return t.UTC().UnixNano()/100 + windowsEpochOffset
}
