//go:build windows

package journal

import (
	"time"
	"unsafe"

	"github.com/orbdiff/usnjournal/internal/clock"
	"golang.org/x/sys/windows"
)

// golang.org/x/sys/windows does not export the LSA logon-session
// enumeration calls, so they're loaded directly off secur32.dll the same
// way the rest of this package reaches for OpenFileById on kernel32.dll.
var (
	modsecur32                      = windows.NewLazySystemDLL("secur32.dll")
	procLsaEnumerateLogonSessions   = modsecur32.NewProc("LsaEnumerateLogonSessions")
	procLsaGetLogonSessionData      = modsecur32.NewProc("LsaGetLogonSessionData")
	procLsaFreeReturnBuffer         = modsecur32.NewProc("LsaFreeReturnBuffer")
	logonTypeInteractive      uint32 = 2
)

// lsaUnicodeString mirrors LSA_UNICODE_STRING.
type lsaUnicodeString struct {
	Length        uint16
	MaximumLength uint16
	Buffer        *uint16
}

func (s lsaUnicodeString) String() string {
	if s.Buffer == nil || s.Length == 0 {
		return ""
	}
	n := int(s.Length / 2)
	slice := unsafe.Slice(s.Buffer, n)
	return windows.UTF16ToString(slice)
}

// securityLogonSessionData mirrors the fields of SECURITY_LOGON_SESSION_DATA
// this package needs; the struct's full definition carries several more
// LSA_UNICODE_STRING fields after LogonTime that are left unread here.
type securityLogonSessionData struct {
	Size                  uint32
	LogonID               windows.LUID
	UserName              lsaUnicodeString
	LogonDomain           lsaUnicodeString
	AuthenticationPackage lsaUnicodeString
	LogonType             uint32
	Session               uint32
	Sid                   uintptr
	LogonTime             uint64 // FILETIME packed as a single 64-bit value
}

type logonSession struct {
	username    string
	interactive bool
	logonTime   time.Time
}

// enumerateLogonSessions walks every logon session currently registered
// with the LSA and decodes the ones this package cares about.
func enumerateLogonSessions() ([]logonSession, error) {
	var count uint32
	var luids uintptr
	r, _, _ := procLsaEnumerateLogonSessions.Call(
		uintptr(unsafe.Pointer(&count)),
		uintptr(unsafe.Pointer(&luids)),
	)
	if r != 0 {
		return nil, windows.NTStatus(r)
	}
	defer procLsaFreeReturnBuffer.Call(luids)

	sessions := unsafe.Slice((*windows.LUID)(unsafe.Pointer(luids)), count)
	out := make([]logonSession, 0, count)
	for i := range sessions {
		var data uintptr
		status, _, _ := procLsaGetLogonSessionData.Call(
			uintptr(unsafe.Pointer(&sessions[i])),
			uintptr(unsafe.Pointer(&data)),
		)
		if status != 0 || data == 0 {
			continue
		}
		sd := (*securityLogonSessionData)(unsafe.Pointer(data))
		out = append(out, logonSession{
			username:    sd.UserName.String(),
			interactive: sd.LogonType == logonTypeInteractive,
			logonTime:   filetimeUint64ToTime(sd.LogonTime),
		})
		procLsaFreeReturnBuffer.Call(data)
	}
	return out, nil
}

func filetimeUint64ToTime(ft uint64) time.Time {
	return clock.FromUTCTicks(int64(ft))
}
