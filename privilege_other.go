//go:build !windows

package journal

import "time"

// EnableDebugPrivilege is a no-op outside Windows; there is no process
// token to adjust.
func EnableDebugPrivilege() error { return nil }

// CurrentUserLogonTime has no session store to query outside Windows.
func CurrentUserLogonTime() time.Time { return time.Time{} }
