//go:build windows

package journal

import (
	"os/user"
	"strings"
	"time"

	"golang.org/x/sys/windows"
)

// EnableDebugPrivilege adjusts the calling process's token to hold
// SE_DEBUG_NAME, which OpenFileById otherwise refuses for files owned by
// another user's process. Its absence is a host-level warning, not fatal:
// the run proceeds and simply can't open every file id on the volume.
func EnableDebugPrivilege() error {
	var token windows.Token
	proc := windows.CurrentProcess()
	if err := windows.OpenProcessToken(proc, windows.TOKEN_ADJUST_PRIVILEGES|windows.TOKEN_QUERY, &token); err != nil {
		return ErrPrivilegeNotElevated
	}
	defer token.Close()

	var luid windows.LUID
	if err := windows.LookupPrivilegeValue(nil, windows.StringToUTF16Ptr("SeDebugPrivilege"), &luid); err != nil {
		return ErrPrivilegeNotElevated
	}

	privs := windows.Tokenprivileges{
		PrivilegeCount: 1,
		Privileges: [1]windows.LUIDAndAttributes{{
			Luid:       luid,
			Attributes: windows.SE_PRIVILEGE_ENABLED,
		}},
	}
	if err := windows.AdjustTokenPrivileges(token, false, &privs, 0, nil, nil); err != nil {
		return ErrPrivilegeNotElevated
	}
	return nil
}

// CurrentUserLogonTime looks up the current interactive session's logon
// time via the LSA, for the -L (after-logon) filter. It returns the zero
// time if no interactive session can be found for the current user.
func CurrentUserLogonTime() time.Time {
	u, err := user.Current()
	if err != nil {
		return time.Time{}
	}
	// user.Current on Windows reports "DOMAIN\name"; LSA session data only
	// carries the bare account name.
	username := u.Username
	if i := strings.LastIndexByte(username, '\\'); i >= 0 {
		username = username[i+1:]
	}

	sessions, err := enumerateLogonSessions()
	if err != nil {
		return time.Time{}
	}

	for _, s := range sessions {
		if s.interactive && strings.EqualFold(s.username, username) {
			return s.logonTime
		}
	}
	return time.Time{}
}
