package journal

import "errors"

// Error taxonomy, per spec.md §7. Fatal errors abort the run; the rest are
// absorbed locally (logged as a warning, or turned into a sentinel value)
// and never stop ingestion.
var (
	// ErrPrivilegeNotElevated is a host-level warning: the run proceeds
	// without SeDebugPrivilege, which only affects whether every file id on
	// the volume is openable.
	ErrPrivilegeNotElevated = errors.New("privilege not elevated")

	// ErrCannotOpenVolume, ErrCannotQueryJournal and ErrCannotAllocate are
	// fatal at Open: the run aborts after printing a diagnostic.
	ErrCannotOpenVolume   = errors.New("cannot open volume")
	ErrCannotQueryJournal = errors.New("cannot query usn journal")
	ErrCannotAllocate     = errors.New("cannot allocate journal read buffer")

	// ErrIoctlFailed during a read terminates the ingestion loop gracefully;
	// whatever was collected before the failure is kept.
	ErrIoctlFailed = errors.New("usn journal read failed")

	// ErrPathResolutionFailed is never surfaced to a caller: Ingestor
	// absorbs it into the "?" directory sentinel via PathCache.
	ErrPathResolutionFailed = errors.New("path resolution failed")

	// ErrInvalidArgument is fatal at argument parsing (bad date, bad enum
	// literal); the CLI exits with code 1.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutputFileOpenFailed is non-fatal: the output layer logs and skips
	// that one target, continuing with the rest.
	ErrOutputFileOpenFailed = errors.New("cannot open output file")

	// ErrUnsupportedPlatform is returned by OpenJournal on any OS without a
	// change-journal implementation.
	ErrUnsupportedPlatform = errors.New("usn journal is only supported on windows")
)
